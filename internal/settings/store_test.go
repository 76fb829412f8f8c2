package settings

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/nguyentantai21042004/wiki-transcript/internal/logger"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadLegacyJSON(t *testing.T) {
	path := writeFile(t, "transcript_processor_settings.json",
		`{"hosts": ["AJ", "Harrison", "Sam"], "api_key": "k-123", "find_replace": [{"find": "teh", "replace": "the"}]}`)

	got, err := NewStore(path, logger.NewNop()).Load(context.Background(), Default())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Settings{
		Hosts:       []string{"AJ", "Harrison", "Sam"},
		APIKey:      "k-123",
		FindReplace: []Pair{{"teh", "the"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestLoadMissingFieldKeepsFallback(t *testing.T) {
	path := writeFile(t, "settings.yaml", "api_key: abc\n")

	fallback := Settings{
		Hosts:       []string{"Lee"},
		FindReplace: []Pair{{"x", "y"}},
	}
	got, err := NewStore(path, logger.NewNop()).Load(context.Background(), fallback)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got.Hosts, []string{"Lee"}) {
		t.Errorf("Hosts = %v, want fallback", got.Hosts)
	}
	if !reflect.DeepEqual(got.FindReplace, []Pair{{"x", "y"}}) {
		t.Errorf("FindReplace = %v, want fallback", got.FindReplace)
	}
	if got.APIKey != "abc" {
		t.Errorf("APIKey = %q, want %q", got.APIKey, "abc")
	}
}

func TestLoadMalformedFieldOnlyAffectsThatField(t *testing.T) {
	path := writeFile(t, "settings.yaml", "hosts:\n  nested: true\napi_key: abc\n")

	got, err := NewStore(path, logger.NewNop()).Load(context.Background(), Default())
	if !errors.Is(err, ErrSettingsInvalid) {
		t.Fatalf("Load() error = %v, want %v", err, ErrSettingsInvalid)
	}
	if !reflect.DeepEqual(got.Hosts, Default().Hosts) {
		t.Errorf("Hosts = %v, want defaults", got.Hosts)
	}
	if got.APIKey != "abc" {
		t.Errorf("APIKey = %q, want %q", got.APIKey, "abc")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr error
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") },
			wantErr: ErrSettingsMissing,
		},
		{
			name:    "not a mapping",
			path:    func(t *testing.T) string { return writeFile(t, "s.yaml", "- just\n- a list\n") },
			wantErr: ErrSettingsInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewStore(tt.path(t), logger.NewNop()).Load(context.Background(), Default())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
			if !reflect.DeepEqual(got, Default()) {
				t.Errorf("Load() = %+v, want defaults", got)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, name := range []string{"settings.yaml", "settings.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			store := NewStore(path, logger.NewNop())
			want := Settings{
				Hosts:       []string{"AJ", "Sam"},
				APIKey:      "k",
				FindReplace: []Pair{{"a", "b"}, {"b", "c"}},
			}

			if err := store.Save(context.Background(), want); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, err := store.Load(context.Background(), Default())
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Load() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestLoadJSONWithEscapedAstralCharacters(t *testing.T) {
	// json.dumps output: non-ASCII escaped, the emoji as a surrogate pair.
	path := writeFile(t, "transcript_processor_settings.json",
		`{"hosts": ["Zoë", "Sam 😀"], "api_key": "k", "find_replace": [{"find": "😀", "replace": "(laughs)"}]}`)

	got, err := NewStore(path, logger.NewNop()).Load(context.Background(), Default())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Settings{
		Hosts:       []string{"Zoë", "Sam 😀"},
		APIKey:      "k",
		FindReplace: []Pair{{"😀", "(laughs)"}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestLoadJSONMalformedFieldOnlyAffectsThatField(t *testing.T) {
	path := writeFile(t, "settings.json", `{"hosts": {"nested": true}, "api_key": "abc"}`)

	got, err := NewStore(path, logger.NewNop()).Load(context.Background(), Default())
	if !errors.Is(err, ErrSettingsInvalid) {
		t.Fatalf("Load() error = %v, want %v", err, ErrSettingsInvalid)
	}
	if !reflect.DeepEqual(got.Hosts, Default().Hosts) {
		t.Errorf("Hosts = %v, want defaults", got.Hosts)
	}
	if got.APIKey != "abc" {
		t.Errorf("APIKey = %q, want %q", got.APIKey, "abc")
	}
}

func TestSaveBacksUpDamagedFile(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unparsable json", "settings.json", `{"hosts": ["AJ",`},
		{"malformed yaml field", "settings.yaml", "hosts:\n  nested: true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			store := NewStore(path, logger.NewNop())
			ctx := context.Background()

			if _, err := store.Load(ctx, Default()); !errors.Is(err, ErrSettingsInvalid) {
				t.Fatalf("Load() error = %v, want %v", err, ErrSettingsInvalid)
			}
			if err := store.Save(ctx, Default()); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			backup, err := os.ReadFile(path + ".bak")
			if err != nil {
				t.Fatalf("backup not written: %v", err)
			}
			if string(backup) != tt.content {
				t.Errorf("backup = %q, want %q", backup, tt.content)
			}

			// A second save after a clean state must not clobber the backup.
			if err := store.Save(ctx, Settings{Hosts: []string{"Sam"}}); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			backup, _ = os.ReadFile(path + ".bak")
			if string(backup) != tt.content {
				t.Errorf("backup overwritten: %q", backup)
			}
		})
	}
}

func TestSaveWithoutDamageWritesNoBackup(t *testing.T) {
	path := writeFile(t, "settings.yaml", "hosts: [AJ]\n")
	store := NewStore(path, logger.NewNop())

	if _, err := store.Load(context.Background(), Default()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := store.Save(context.Background(), Default()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(path + ".bak"); !os.IsNotExist(err) {
		t.Errorf("unexpected backup, stat error = %v", err)
	}
}

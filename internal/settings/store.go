package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nguyentantai21042004/wiki-transcript/pkg/atomicfile"
)

func (s *implStore) Path() string {
	return s.path
}

// fieldDecoder decodes one top-level settings field into v.
type fieldDecoder func(v interface{}) error

// Load decodes each known field on its own so one bad field does not
// discard the others.
func (s *implStore) Load(ctx context.Context, fallback Settings) (Settings, error) {
	out := fallback.Clone()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.setDamaged(false)
			return out, fmt.Errorf("%w: %s", ErrSettingsMissing, s.path)
		}
		return out, fmt.Errorf("%w: read %s: %v", ErrSettingsInvalid, s.path, err)
	}

	fields, err := s.splitFields(data)
	if err != nil {
		s.setDamaged(true)
		return out, fmt.Errorf("%w: parse %s: %v", ErrSettingsInvalid, s.path, err)
	}

	var problems []error

	if decode, ok := fields["hosts"]; ok {
		var hosts []string
		if err := decode(&hosts); err != nil {
			problems = append(problems, fmt.Errorf("hosts: %w", err))
		} else {
			out.Hosts = normalizeHosts(hosts)
		}
	}

	if decode, ok := fields["api_key"]; ok {
		var key string
		if err := decode(&key); err != nil {
			problems = append(problems, fmt.Errorf("api_key: %w", err))
		} else {
			out.APIKey = strings.TrimSpace(key)
		}
	}

	if decode, ok := fields["find_replace"]; ok {
		var pairs []Pair
		if err := decode(&pairs); err != nil {
			problems = append(problems, fmt.Errorf("find_replace: %w", err))
		} else {
			out.FindReplace = pairs
		}
	}

	s.setDamaged(len(problems) > 0)
	s.logger.Debug(ctx, "Loaded settings from %s: %d hosts, %d substitutions",
		s.path, len(out.Hosts), len(out.FindReplace))

	if len(problems) > 0 {
		return out, fmt.Errorf("%w: %s: %w", ErrSettingsInvalid, s.path, errors.Join(problems...))
	}
	return out, nil
}

// splitFields parses the document into per-field decoders. JSON files go
// through encoding/json, which accepts the surrogate-pair escapes that
// yaml.v3 rejects.
func (s *implStore) splitFields(data []byte) (map[string]fieldDecoder, error) {
	fields := make(map[string]fieldDecoder)

	if s.isJSON() {
		var doc map[string]json.RawMessage
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		for k, raw := range doc {
			raw := raw
			fields[k] = func(v interface{}) error { return json.Unmarshal(raw, v) }
		}
		return fields, nil
	}

	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	for k, node := range doc {
		node := node
		fields[k] = node.Decode
	}
	return fields, nil
}

func (s *implStore) isJSON() bool {
	return strings.EqualFold(filepath.Ext(s.path), ".json")
}

func (s *implStore) setDamaged(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.damaged = v
}

// backupDamaged copies a file that did not load cleanly to <path>.bak
// before it is overwritten.
func (s *implStore) backupDamaged(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.damaged {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.damaged = false
			return nil
		}
		return fmt.Errorf("read settings for backup: %w", err)
	}
	backup := s.path + ".bak"
	if err := atomicfile.Write(backup, data, 0600); err != nil {
		return fmt.Errorf("back up settings: %w", err)
	}
	s.damaged = false
	s.logger.Warn(ctx, "Settings file %s did not load cleanly; previous contents kept in %s", s.path, backup)
	return nil
}

func (s *implStore) Save(ctx context.Context, st Settings) error {
	st = st.Clone()

	var (
		data []byte
		err  error
	)
	if s.isJSON() {
		data, err = json.MarshalIndent(st, "", "  ")
	} else {
		data, err = yaml.Marshal(st)
	}
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
	}
	if err := s.backupDamaged(ctx); err != nil {
		return err
	}
	if err := atomicfile.Write(s.path, data, 0600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	s.logger.Info(ctx, "Settings saved to %s", s.path)
	return nil
}

package executor

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

func TestOpenCommand(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
		wantArgs []string
	}{
		{"darwin", "open", []string{"/tmp/a.txt"}},
		{"windows", "cmd", []string{"/c", "start", "", "/tmp/a.txt"}},
		{"linux", "xdg-open", []string{"/tmp/a.txt"}},
		{"freebsd", "xdg-open", []string{"/tmp/a.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args := openCommand(tt.goos, "/tmp/a.txt")
			if name != tt.wantName {
				t.Errorf("openCommand() name = %v, want %v", name, tt.wantName)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("openCommand() args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}

func TestExecuteMissingBinary(t *testing.T) {
	_, err := New().Execute(context.Background(), "definitely-not-a-real-binary-xyz")
	if err == nil {
		t.Fatal("Execute() should fail for a missing binary")
	}
	if !strings.Contains(err.Error(), "definitely-not-a-real-binary-xyz") {
		t.Errorf("Execute() error = %v, want command name in message", err)
	}
}

func TestOpenCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New().Open(ctx, "/tmp/a.txt")
	if err == nil {
		t.Fatal("Open() with canceled context should fail")
	}
	if !strings.Contains(err.Error(), "open /tmp/a.txt") {
		t.Errorf("Open() error = %v, want path in message", err)
	}
}

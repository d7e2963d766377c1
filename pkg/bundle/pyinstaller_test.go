package bundle

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/superpicky/releaser/pkg/toolchain"
)

func TestResolveTool(t *testing.T) {
	tests := []struct {
		name      string
		search    []string
		available map[string]bool
		want      string
		wantErr   bool
	}{
		{
			name:      "first candidate on PATH",
			search:    []string{"pyinstaller", "/usr/local/bin/pyinstaller"},
			available: map[string]bool{"pyinstaller": true},
			want:      "pyinstaller",
		},
		{
			name:      "fallback location",
			search:    []string{"pyinstaller", "/opt/homebrew/bin/pyinstaller", "/usr/local/bin/pyinstaller"},
			available: map[string]bool{"/usr/local/bin/pyinstaller": true},
			want:      "/usr/local/bin/pyinstaller",
		},
		{
			name:      "earlier candidate preferred",
			search:    []string{"/opt/homebrew/bin/pyinstaller", "/usr/local/bin/pyinstaller"},
			available: map[string]bool{"/opt/homebrew/bin/pyinstaller": true, "/usr/local/bin/pyinstaller": true},
			want:      "/opt/homebrew/bin/pyinstaller",
		},
		{
			name:      "not found anywhere",
			search:    []string{"pyinstaller", "/usr/local/bin/pyinstaller"},
			available: map[string]bool{},
			wantErr:   true,
		},
		{
			name:    "empty search list",
			search:  nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &toolchain.Fake{
				LookPathFunc: func(name string) (string, error) {
					if tt.available[name] {
						return name, nil
					}
					return "", fmt.Errorf("%s: executable file not found", name)
				},
			}

			got, err := ResolveTool(fake, tt.search)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolveTool() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ResolveTool() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunArgs(t *testing.T) {
	fake := &toolchain.Fake{}

	_, err := Run(context.Background(), fake, "pyinstaller", "packaging/SuperPicky.spec")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	line := fake.CommandLines()[0]
	if line != "pyinstaller --noconfirm --clean packaging/SuperPicky.spec" {
		t.Errorf("unexpected invocation: %s", line)
	}
}

func TestVerifyOutput(t *testing.T) {
	dir := t.TempDir()

	appPath := filepath.Join(dir, "SuperPicky.app")
	if err := VerifyOutput(appPath); err == nil {
		t.Fatal("expected error when the bundle directory is missing")
	}

	if err := os.WriteFile(appPath, []byte("not a dir"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := VerifyOutput(appPath); err == nil || !strings.Contains(err.Error(), "found a file") {
		t.Errorf("VerifyOutput() on a file = %v, want bundle-directory error", err)
	}

	if err := os.Remove(appPath); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(appPath, 0755); err != nil {
		t.Fatal(err)
	}
	if err := VerifyOutput(appPath); err != nil {
		t.Errorf("VerifyOutput() on a directory = %v, want nil", err)
	}
}

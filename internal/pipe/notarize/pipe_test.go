package notarize

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/superpicky/releaser/pkg/config"
	runctx "github.com/superpicky/releaser/pkg/context"
	"github.com/superpicky/releaser/pkg/toolchain"
)

const acceptedOutput = `Processing complete
  id: 12345678-abcd-1234-abcd-123456789012
  status: Accepted`

const rejectedOutput = `Processing complete
  id: 87654321-dcba-4321-dcba-210987654321
  status: Invalid`

func newContext(mode config.Mode, fake *toolchain.Fake) *runctx.Context {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	ctx := runctx.NewContext(context.Background(), config.Default(), mode, logger)
	ctx.Config.Notarize.TeamID = "TEAM123456"
	ctx.Tools = fake
	ctx.Artifacts.ImagePath = "dist/SuperPicky_v2.3.1.dmg"
	return ctx
}

func TestPipeSkipsInTestMode(t *testing.T) {
	fake := &toolchain.Fake{}
	ctx := newContext(config.ModeTest, fake)

	err := Pipe{}.Run(ctx)
	if err == nil {
		t.Fatal("expected a skip error in test mode")
	}
	if !strings.Contains(err.Error(), "skipped in test mode") {
		t.Errorf("error = %v, want skip", err)
	}
	if len(fake.Calls) != 0 {
		t.Errorf("test mode must not invoke any tool, got %v", fake.CommandLines())
	}
}

func TestPipeAccepted(t *testing.T) {
	var credentialLookups int
	fake := &toolchain.Fake{
		RunFunc: func(name string, args []string) (string, error) {
			if name == "security" {
				credentialLookups++
				return "secret\n", nil
			}
			return acceptedOutput, nil
		},
	}
	ctx := newContext(config.ModeRelease, fake)

	if err := (Pipe{}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !ctx.Artifacts.Notarized {
		t.Error("Artifacts.Notarized = false after acceptance")
	}
	if credentialLookups != 1 {
		t.Errorf("credential lookups = %d, want exactly 1", credentialLookups)
	}
}

func TestPipeRejectedFetchesLog(t *testing.T) {
	var logFetches int
	fake := &toolchain.Fake{
		RunFunc: func(name string, args []string) (string, error) {
			if name == "security" {
				return "secret\n", nil
			}
			if len(args) > 1 && args[0] == "notarytool" && args[1] == "log" {
				logFetches++
				return `{"status": "Invalid", "issues": [{"message": "binary is not signed"}]}`, nil
			}
			return rejectedOutput, errors.New("exit status 1")
		},
	}
	ctx := newContext(config.ModeRelease, fake)

	err := Pipe{}.Run(ctx)
	if err == nil {
		t.Fatal("rejection must fail the stage")
	}
	if ctx.Artifacts.Notarized {
		t.Error("Artifacts.Notarized = true after rejection")
	}
	if logFetches != 1 {
		t.Errorf("diagnostic log fetches = %d, want exactly 1", logFetches)
	}
}

func TestPipeRejectedWithoutID(t *testing.T) {
	fake := &toolchain.Fake{
		RunFunc: func(name string, args []string) (string, error) {
			if name == "security" {
				return "secret\n", nil
			}
			return "status: Invalid", errors.New("exit status 1")
		},
	}
	ctx := newContext(config.ModeRelease, fake)

	if err := (Pipe{}).Run(ctx); err == nil {
		t.Fatal("rejection must fail the stage")
	}

	for _, line := range fake.CommandLines() {
		if strings.Contains(line, "notarytool log") {
			t.Errorf("no log fetch should happen without a submission id: %s", line)
		}
	}
}

func TestCheckPipeSkipsInTestMode(t *testing.T) {
	fake := &toolchain.Fake{}
	ctx := newContext(config.ModeTest, fake)

	err := CheckPipe{}.Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "test mode") {
		t.Fatalf("CheckPipe in test mode = %v, want skip", err)
	}
	if len(fake.Calls) != 0 {
		t.Errorf("test mode must not consult the keychain, got %v", fake.CommandLines())
	}
}

func TestCheckPipeDefaultConfig(t *testing.T) {
	t.Setenv("SUPERPICKY_TEAM_ID", "TEAM123456")

	cfg, err := config.LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}

	fake := &toolchain.Fake{
		RunFunc: func(name string, args []string) (string, error) {
			return "secret\n", nil
		},
	}
	logger := logrus.New()
	ctx := runctx.NewContext(context.Background(), cfg, config.ModeRelease, logger)
	ctx.Tools = fake

	if err := (CheckPipe{}).Run(ctx); err != nil {
		t.Fatalf("CheckPipe on built-in defaults = %v", err)
	}
}

func TestCheckPipeMissingCredential(t *testing.T) {
	fake := &toolchain.Fake{
		RunFunc: func(name string, args []string) (string, error) {
			return "The specified item could not be found in the keychain.", errors.New("exit status 44")
		},
	}
	ctx := newContext(config.ModeRelease, fake)

	err := CheckPipe{}.Run(ctx)
	if err == nil {
		t.Fatal("expected missing-credential failure")
	}
	if !strings.Contains(err.Error(), "missing credential") {
		t.Errorf("error = %v, want missing credential", err)
	}
}

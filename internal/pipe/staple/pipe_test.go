package staple

import (
	"context"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/superpicky/releaser/pkg/config"
	runctx "github.com/superpicky/releaser/pkg/context"
	"github.com/superpicky/releaser/pkg/toolchain"
)

func newContext(mode config.Mode, fake *toolchain.Fake) *runctx.Context {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	ctx := runctx.NewContext(context.Background(), config.Default(), mode, logger)
	ctx.Tools = fake
	ctx.Artifacts.ImagePath = "dist/SuperPicky_v2.3.1.dmg"
	ctx.Artifacts.Notarized = true
	return ctx
}

func TestPipeSkipsInTestMode(t *testing.T) {
	fake := &toolchain.Fake{}
	ctx := newContext(config.ModeTest, fake)

	err := Pipe{}.Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "test mode") {
		t.Fatalf("Run() = %v, want skip in test mode", err)
	}
	if len(fake.Calls) != 0 {
		t.Errorf("test mode must not invoke stapler, got %v", fake.CommandLines())
	}
}

func TestPipeStaplesAndValidates(t *testing.T) {
	fake := &toolchain.Fake{}
	ctx := newContext(config.ModeRelease, fake)

	if err := (Pipe{}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	lines := fake.CommandLines()
	if len(lines) != 2 {
		t.Fatalf("expected staple then validate, got %v", lines)
	}
	if !strings.Contains(lines[0], "stapler staple") {
		t.Errorf("first call = %s", lines[0])
	}
	if !strings.Contains(lines[1], "stapler validate") {
		t.Errorf("second call = %s", lines[1])
	}
}

func TestPipeRefusesUnnotarizedImage(t *testing.T) {
	fake := &toolchain.Fake{}
	ctx := newContext(config.ModeRelease, fake)
	ctx.Artifacts.Notarized = false

	if err := (Pipe{}).Run(ctx); err == nil {
		t.Fatal("expected refusal without an accepted notarization")
	}
	if len(fake.Calls) != 0 {
		t.Errorf("no stapler call may happen for an unnotarized image, got %v", fake.CommandLines())
	}
}

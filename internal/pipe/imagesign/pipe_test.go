package imagesign

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/superpicky/releaser/pkg/config"
	runctx "github.com/superpicky/releaser/pkg/context"
	"github.com/superpicky/releaser/pkg/toolchain"
)

func newContext(fake *toolchain.Fake) *runctx.Context {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	ctx := runctx.NewContext(context.Background(), config.Default(), config.ModeTest, logger)
	ctx.Tools = fake
	ctx.Artifacts.ImagePath = "dist/SuperPicky_v2.3.1_test.dmg"
	return ctx
}

func TestPipeSignsAndVerifies(t *testing.T) {
	fake := &toolchain.Fake{}
	ctx := newContext(fake)

	if err := (Pipe{}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	lines := fake.CommandLines()
	if len(lines) != 2 {
		t.Fatalf("expected sign then verify, got %v", lines)
	}
	if strings.Contains(lines[0], "--deep") {
		t.Errorf("image signing must not be recursive: %s", lines[0])
	}
	if !strings.Contains(lines[0], "--timestamp") {
		t.Errorf("image signing must carry a secure timestamp: %s", lines[0])
	}
	if !strings.Contains(lines[1], "--verify --strict") {
		t.Errorf("second call must verify: %s", lines[1])
	}
}

func TestPipeVerifyFailureIsFatal(t *testing.T) {
	fake := &toolchain.Fake{
		RunFunc: func(name string, args []string) (string, error) {
			for _, arg := range args {
				if arg == "--verify" {
					return "invalid signature", errors.New("exit status 1")
				}
			}
			return "", nil
		},
	}
	ctx := newContext(fake)

	if err := (Pipe{}).Run(ctx); err == nil {
		t.Fatal("verification failure must be fatal")
	}
}

func TestPipeRequiresImage(t *testing.T) {
	fake := &toolchain.Fake{}
	ctx := newContext(fake)
	ctx.Artifacts.ImagePath = ""

	if err := (Pipe{}).Run(ctx); err == nil {
		t.Fatal("expected error without a disk image")
	}
	if len(fake.Calls) != 0 {
		t.Errorf("no codesign call may happen without an image, got %v", fake.CommandLines())
	}
}

package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/superpicky/releaser/pkg/config"
	runctx "github.com/superpicky/releaser/pkg/context"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0ms"},
		{523 * time.Millisecond, "523ms"},
		{time.Second, "1s"},
		{45 * time.Second, "45s"},
		{90 * time.Second, "1m30s"},
		{2 * time.Minute, "2m"},
		{3*time.Minute + 7*time.Second, "3m7s"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestSummaryTable(t *testing.T) {
	ctx := runctx.NewContext(nil, config.Default(), config.ModeRelease, logrus.New())
	ctx.Artifacts.AppPath = "dist/SuperPicky.app"
	ctx.Artifacts.ImagePath = "dist/SuperPicky_v2.3.1.dmg"
	ctx.Artifacts.Notarized = true

	out := summaryTable(ctx)
	for _, want := range []string{"dist/SuperPicky.app", "dist/SuperPicky_v2.3.1.dmg", "yes"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestSummaryTableNotNotarized(t *testing.T) {
	ctx := runctx.NewContext(nil, config.Default(), config.ModeTest, logrus.New())
	ctx.Artifacts.ImagePath = "dist/SuperPicky_v2.3.1_test.dmg"

	out := summaryTable(ctx)
	if !strings.Contains(out, "no") {
		t.Errorf("summary should report the image as not notarized:\n%s", out)
	}
}

package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/superpicky/releaser/pkg/config"
	runctx "github.com/superpicky/releaser/pkg/context"
	"github.com/superpicky/releaser/pkg/logging"
	"github.com/superpicky/releaser/pkg/pipeline"
)

// SetupLogger creates and configures a logger based on debug mode
func SetupLogger(debug bool) *logrus.Logger {
	logger := logrus.New()

	if debug {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logging.BulletFormatter{})
	}

	return logger
}

// ExitWithErrorf logs an error with the provided logger and exits with code 1
func ExitWithErrorf(logger *logrus.Logger, format string, args ...interface{}) {
	logger.Errorf(format, args...)
	os.Exit(1)
}

// runPipelineCommand loads configuration, runs the full pipeline in the
// given mode, and prints the final report. Any stage failure exits 1.
func runPipelineCommand(mode config.Mode, skipPublish bool) {
	logger := SetupLogger(GetDebugMode())

	cfg, err := config.LoadOrDefault(GetConfigPath())
	if err != nil {
		ExitWithErrorf(logger, "Failed to load configuration: %v", err)
	}

	ctx := runctx.NewContext(context.Background(), cfg, mode, logger)
	ctx.SkipPublish = skipPublish

	start := time.Now()
	logger.Infof("Starting %s run", mode)

	if err := pipeline.RunAll(ctx); err != nil {
		ExitWithErrorf(logger, "Release failed: %v", err)
	}

	logger.Infof("Release succeeded in %s", formatDuration(time.Since(start)))
	fmt.Println(summaryTable(ctx))
}

// formatDuration renders a duration compactly: 523ms, 45s, 1m32s.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) - minutes*60
	if seconds == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dm%ds", minutes, seconds)
}

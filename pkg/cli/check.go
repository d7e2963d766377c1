package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/superpicky/releaser/pkg/config"
	runctx "github.com/superpicky/releaser/pkg/context"
	"github.com/superpicky/releaser/pkg/pipeline"
)

// checkCmd runs preflight only. Preflight performs read-only lookups, so
// this command never touches build output.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run preflight checks without building",
	Long: `Verify the environment can complete a release: signing identity in
the keychain, stored notarization credential, packaging tool, and input
descriptors. With --release the credential check is included.`,
	Run: runCheck,
}

func init() {
	checkCmd.Flags().Bool("release", false, "check release-mode requirements (notarization credential)")
}

// runCheck executes the check command
func runCheck(cmd *cobra.Command, args []string) {
	logger := SetupLogger(GetDebugMode())

	cfg, err := config.LoadOrDefault(GetConfigPath())
	if err != nil {
		ExitWithErrorf(logger, "Failed to load configuration: %v", err)
	}

	mode := config.ModeTest
	if release, _ := cmd.Flags().GetBool("release"); release {
		mode = config.ModeRelease
	}

	ctx := runctx.NewContext(context.Background(), cfg, mode, logger)

	if err := pipeline.RunPreflight(ctx); err != nil {
		ExitWithErrorf(logger, "Preflight failed: %v", err)
	}

	logger.Info("Environment is ready")
}

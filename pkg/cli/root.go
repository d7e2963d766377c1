package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/superpicky/releaser/pkg/config"
	"github.com/superpicky/releaser/pkg/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "superpicky-release",
	Short:   "SuperPicky release packaging pipeline",
	Version: version.VersionInfo(),
	Long: `superpicky-release turns the built SuperPicky application into a
distributable, Apple-trusted disk image. It runs preflight checks, then
version discovery, bundling, deep code signing, dmg creation and
signing. In release mode it also notarizes, staples, and publishes.

Run with --test to exercise everything short of notarization, or
--release for the full sequence. Without a mode flag, usage is printed.`,
}

// RunE is assigned here rather than in the rootCmd literal to avoid an
// initialization cycle (runRoot reads rootCmd's flags via GetDebugMode).
func init() {
	rootCmd.RunE = runRoot
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	registerCommands()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	return rootCmd.Execute()
}

// registerCommands initializes flags and registers all subcommands
func registerCommands() {
	rootCmd.PersistentFlags().String("config", ".superpicky-release.yaml", "config file path")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug mode")

	rootCmd.Flags().Bool("test", false, "run all stages through disk-image signing; skip notarization")
	rootCmd.Flags().Bool("release", false, "run the full stage sequence including notarization and stapling")
	rootCmd.Flags().Bool("skip-publish", false, "skip the GitHub upload stage")

	rootCmd.AddCommand(checkCmd)
}

// runRoot maps the mode flags onto a pipeline run. No mode flag prints
// usage; both flags, or a stray positional argument, is an error.
func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument: %q", args[0])
	}

	test, _ := cmd.Flags().GetBool("test")
	release, _ := cmd.Flags().GetBool("release")

	if test && release {
		return fmt.Errorf("--test and --release are mutually exclusive")
	}
	if !test && !release {
		return cmd.Help()
	}

	mode := config.ModeTest
	if release {
		mode = config.ModeRelease
	}

	skipPublish, _ := cmd.Flags().GetBool("skip-publish")
	runPipelineCommand(mode, skipPublish)
	return nil
}

// GetConfigPath returns the config file path from flags
func GetConfigPath() string {
	configPath, _ := rootCmd.PersistentFlags().GetString("config")
	return configPath
}

// GetDebugMode returns debug mode flag value
func GetDebugMode() bool {
	debug, _ := rootCmd.PersistentFlags().GetBool("debug")
	return debug
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/parser"
	"github.com/superpicky/releaser/pkg/env"
)

// Config holds every constant the pipeline needs: app identity, signing
// identity, notarization account, input paths, and optional publishing
// coordinates. It is constructed once at startup and never mutated.
type Config struct {
	App      AppConfig      `yaml:"app"`
	Sign     SignConfig     `yaml:"sign"`
	Bundle   BundleConfig   `yaml:"bundle"`
	Version  VersionConfig  `yaml:"version"`
	Notarize NotarizeConfig `yaml:"notarize"`
	Release  ReleaseConfig  `yaml:"release"`
}

// AppConfig identifies the application being packaged
type AppConfig struct {
	Name     string `yaml:"name"`
	BundleID string `yaml:"bundle_id"`
}

// SignConfig contains code signing configuration
type SignConfig struct {
	Identity     string `yaml:"identity"`
	Entitlements string `yaml:"entitlements"`
}

// BundleConfig drives the external packaging tool.
// ToolPaths is an ordered search list: the first entry that resolves to an
// executable (by PATH lookup or as a direct path) is used.
type BundleConfig struct {
	Spec      string   `yaml:"spec"`
	ToolPaths []string `yaml:"tool_paths"`
}

// VersionConfig names the text file scanned for the release version
type VersionConfig struct {
	Source string `yaml:"source"`
}

// NotarizeConfig contains Apple notarization configuration.
// The app-specific password is never stored here: it is looked up from the
// login keychain under KeychainItem at notarization time and held only in
// memory for the duration of that stage.
type NotarizeConfig struct {
	AppleID      string `yaml:"apple_id"`
	TeamID       string `yaml:"team_id"`
	KeychainItem string `yaml:"keychain_item"`
}

// ReleaseConfig contains optional publishing configuration
type ReleaseConfig struct {
	GitHub GitHubConfig `yaml:"github,omitempty"`
}

// GitHubConfig contains GitHub release coordinates
type GitHubConfig struct {
	Owner string `yaml:"owner"`
	Repo  string `yaml:"repo"`
	Draft bool   `yaml:"draft"`
}

// Default returns the built-in SuperPicky configuration, used when no
// config file is present.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name:     "SuperPicky",
			BundleID: "com.superpicky.app",
		},
		Sign: SignConfig{
			Identity:     "Developer ID Application: SuperPicky Software",
			Entitlements: "packaging/entitlements.plist",
		},
		Bundle: BundleConfig{
			Spec: "packaging/SuperPicky.spec",
			ToolPaths: []string{
				"pyinstaller",
				"/opt/homebrew/bin/pyinstaller",
				"/usr/local/bin/pyinstaller",
			},
		},
		Version: VersionConfig{
			Source: "superpicky/cli_processor.py",
		},
		Notarize: NotarizeConfig{
			AppleID:      "releases@superpicky.app",
			TeamID:       envOrRef("SUPERPICKY_TEAM_ID"),
			KeychainItem: "SuperPicky-Notarization",
		},
	}
}

// envOrRef resolves key immediately so the built-in defaults work without
// a config file. When the variable is unset the env() reference is kept,
// letting preflight name the missing variable instead of failing on an
// empty field.
func envOrRef(key string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return "env(" + key + ")"
}

// Load loads and parses a configuration file, applying env(VAR)
// substitution to value nodes before decoding.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config file path is required")
	}

	cleanPath, err := validateConfigPath(path)
	if err != nil {
		return nil, err
	}

	data, err := readConfigFile(cleanPath)
	if err != nil {
		return nil, err
	}

	file, err := parser.ParseBytes(data, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return nil, fmt.Errorf("failed to parse config: empty document")
	}

	if err := env.Expand(file.Docs[0].Body); err != nil {
		return nil, fmt.Errorf("environment variable substitution failed: %w", err)
	}

	var config Config
	if err := yaml.NodeToValue(file.Docs[0].Body, &config, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// LoadOrDefault loads the config at path, falling back to the built-in
// defaults when the file does not exist. Any other load error is fatal.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

func validateConfigPath(path string) (string, error) {
	// Prevent path traversal through a user-supplied --config value
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	cleanPath := filepath.Clean(absPath)

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	wd = filepath.Clean(wd)

	if strings.HasPrefix(cleanPath, wd+string(filepath.Separator)) || cleanPath == wd {
		relPath, err := filepath.Rel(wd, cleanPath)
		if err != nil {
			return "", fmt.Errorf("invalid config path: %w", err)
		}
		if !filepath.IsLocal(relPath) {
			return "", fmt.Errorf("invalid config path: path traversal detected")
		}
	}
	// Absolute paths outside the working directory are allowed (tests, CI)

	return cleanPath, nil
}

func readConfigFile(cleanPath string) ([]byte, error) {
	// os.Stat (not Lstat) so symlinked configs resolve to their target
	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access config file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("config path is not a regular file")
	}

	const maxConfigSize = 1024 * 1024 // 1MB
	if info.Size() > maxConfigSize {
		return nil, fmt.Errorf("config file too large: maximum size is 1MB")
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return data, nil
}

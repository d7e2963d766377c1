package version

import (
	"fmt"
	"os"
	"regexp"
)

// releasePattern matches the first v<major>.<minor>.<patch> occurrence in
// the version source text. The leading v is not captured.
var releasePattern = regexp.MustCompile(`v(\d+\.\d+\.\d+)`)

// Scan returns the first release version found in text, with the leading v
// stripped. Returns an error when no version marker is present.
func Scan(text string) (string, error) {
	matches := releasePattern.FindStringSubmatch(text)
	if len(matches) < 2 {
		return "", fmt.Errorf("no version marker found — expected a v<major>.<minor>.<patch> string")
	}
	return matches[1], nil
}

// ResolveFromFile scans the file at sourcePath for the release version.
// The file is a read-only input; it is never modified.
func ResolveFromFile(sourcePath string) (string, error) {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return "", fmt.Errorf("failed to read version source %s: %w", sourcePath, err)
	}

	version, err := Scan(string(data))
	if err != nil {
		return "", fmt.Errorf("%s: %w", sourcePath, err)
	}
	return version, nil
}

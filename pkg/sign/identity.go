package sign

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/superpicky/releaser/pkg/toolchain"
)

// identityPattern matches lines from `security find-identity -v -p codesigning` output.
// Format: "  N) <hex hash> "<identity string>""
var identityPattern = regexp.MustCompile(`^\s*\d+\)\s+[0-9A-Fa-f]+\s+"(.+)"`)

// ParseIdentityOutput parses the output of `security find-identity -v -p codesigning`
// and returns the list of identity strings (the quoted names).
func ParseIdentityOutput(output string) []string {
	var identities []string

	for _, line := range strings.Split(output, "\n") {
		matches := identityPattern.FindStringSubmatch(line)
		if len(matches) == 2 {
			identities = append(identities, matches[1])
		}
	}

	return identities
}

// ValidateIdentity checks whether configuredIdentity appears in the list of
// available identities. Returns nil on match, or an error listing available
// identities if not found.
func ValidateIdentity(configuredIdentity string, availableIdentities []string) error {
	for _, id := range availableIdentities {
		if id == configuredIdentity {
			return nil
		}
	}

	if len(availableIdentities) == 0 {
		return fmt.Errorf(
			"signing identity %q not found in keychain — no valid signing identities are installed\n"+
				"run: security find-identity -v -p codesigning",
			configuredIdentity,
		)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "signing identity %q not found in keychain\navailable identities:\n", configuredIdentity)
	for _, id := range availableIdentities {
		fmt.Fprintf(&b, "  - %s\n", id)
	}
	b.WriteString("run: security find-identity -v -p codesigning")

	return fmt.Errorf("%s", b.String())
}

// CheckIdentityInKeychain lists the codesigning identities in the local
// trust store and validates that the configured identity is present.
func CheckIdentityInKeychain(ctx context.Context, tools toolchain.Runner, configuredIdentity string) error {
	if _, err := tools.LookPath("security"); err != nil {
		return fmt.Errorf("security command not found — this tool requires macOS")
	}

	output, err := tools.Run(ctx, "security", "find-identity", "-v", "-p", "codesigning")
	if err != nil {
		return fmt.Errorf("failed to list signing identities: %s: %w", output, err)
	}

	identities := ParseIdentityOutput(output)
	return ValidateIdentity(configuredIdentity, identities)
}

// Package keychain looks up stored credentials through security(1).
// Only the lookup contract is implemented: the pipeline never writes to the
// keychain and never persists a retrieved secret.
package keychain

import (
	"context"
	"fmt"
	"strings"

	"github.com/superpicky/releaser/pkg/toolchain"
)

// FindPassword retrieves the generic password stored under the given
// service (item name) and account from the login keychain. The returned
// secret must be held in memory only and never logged.
func FindPassword(ctx context.Context, tools toolchain.Runner, service, account string) (string, error) {
	if _, err := tools.LookPath("security"); err != nil {
		return "", fmt.Errorf("security command not found — this tool requires macOS")
	}

	out, err := tools.Run(ctx, "security",
		"find-generic-password",
		"-s", service,
		"-a", account,
		"-w",
	)
	if err != nil {
		if strings.Contains(out, "could not be found") {
			return "", fmt.Errorf(
				"no credential stored for %s under item %q — add one with: security add-generic-password -s %q -a %q -w",
				account, service, service, account,
			)
		}
		return "", fmt.Errorf("keychain lookup failed: %w", err)
	}

	password := strings.TrimSpace(out)
	if password == "" {
		return "", fmt.Errorf("keychain item %q for %s is empty", service, account)
	}
	return password, nil
}

// HasCredential reports whether a non-empty credential exists, discarding
// the secret immediately. Used by preflight so release runs fail before any
// side effect when the credential is missing.
func HasCredential(ctx context.Context, tools toolchain.Runner, service, account string) error {
	_, err := FindPassword(ctx, tools, service, account)
	return err
}

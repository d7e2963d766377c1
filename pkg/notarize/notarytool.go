package notarize

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/superpicky/releaser/pkg/toolchain"
)

var submissionIDRe = regexp.MustCompile(`id:\s*([0-9a-fA-F-]{36})`)

// acceptedMarker is the status line notarytool prints when the notary
// service accepts a submission.
const acceptedMarker = "status: Accepted"

// Verdict is the parsed outcome of a notarization submission.
type Verdict struct {
	Accepted bool

	// SubmissionID is the request identifier extracted from the output,
	// empty when none could be recovered. On rejection it keys the
	// diagnostic log fetch.
	SubmissionID string
}

// Submit sends the disk image to the notary service and waits for the
// verdict. The --wait flag makes this call block for the duration of
// remote processing, potentially minutes; it is the pipeline's one long
// suspension point. The password is passed through to notarytool and must
// never be logged. Returns the raw output for verdict parsing.
func Submit(ctx context.Context, tools toolchain.Runner, imagePath, appleID, teamID, password string) (string, error) {
	if _, err := tools.LookPath("xcrun"); err != nil {
		return "", fmt.Errorf("xcrun not found — install Xcode Command Line Tools with: xcode-select --install")
	}

	out, err := tools.Run(ctx, "xcrun",
		"notarytool", "submit", imagePath,
		"--apple-id", appleID,
		"--team-id", teamID,
		"--password", password,
		"--wait",
	)
	if err != nil {
		if strings.Contains(out, "Unable to authenticate") {
			return out, fmt.Errorf("notarytool authentication failed — verify the account, team id, and stored app-specific password")
		}
		// A rejection still produces parseable output; let the caller
		// decide after reading the verdict.
		return out, fmt.Errorf("notarytool submit failed: %s: %w", strings.TrimSpace(out), err)
	}

	return out, nil
}

// ParseVerdict scans submission output for the acceptance marker and the
// submission id.
func ParseVerdict(output string) Verdict {
	return Verdict{
		Accepted:     strings.Contains(output, acceptedMarker),
		SubmissionID: ParseSubmissionID(output),
	}
}

// ParseSubmissionID extracts the submission UUID from notarytool output.
// Returns an empty string if no UUID is found.
func ParseSubmissionID(output string) string {
	matches := submissionIDRe.FindStringSubmatch(output)
	if len(matches) < 2 {
		return ""
	}
	return matches[1]
}

// FetchLog retrieves the diagnostic log for a submission, using the same
// credential as the submission itself. Called on rejection so the detailed
// reasons reach the operator before the pipeline aborts.
func FetchLog(ctx context.Context, tools toolchain.Runner, submissionID, appleID, teamID, password string) (string, error) {
	out, err := tools.Run(ctx, "xcrun",
		"notarytool", "log", submissionID,
		"--apple-id", appleID,
		"--team-id", teamID,
		"--password", password,
	)
	if err != nil {
		return out, fmt.Errorf("failed to fetch notarization log for %s: %w", submissionID, err)
	}
	return out, nil
}

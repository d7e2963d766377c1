package config

import "fmt"

// Mode selects how much of the pipeline runs. It is set once from the CLI
// argument and immutable for the rest of the process.
type Mode string

const (
	// ModeTest runs every stage through disk-image signing and skips
	// notarization, stapling, and publishing. The output name carries a
	// _test suffix.
	ModeTest Mode = "test"

	// ModeRelease runs the full stage sequence.
	ModeRelease Mode = "release"
)

// IsRelease reports whether notarization, stapling, and publishing apply.
func (m Mode) IsRelease() bool {
	return m == ModeRelease
}

// Validate returns an error for any value other than the two known modes.
func (m Mode) Validate() error {
	switch m {
	case ModeTest, ModeRelease:
		return nil
	default:
		return fmt.Errorf("unknown mode %q: must be %q or %q", string(m), ModeTest, ModeRelease)
	}
}

// Package validate holds the small field checks shared by the preflight
// pipes.
package validate

import "fmt"

// RequiredString fails when a config string is empty.
func RequiredString(value, field string) error {
	if value == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// RequiredSlice fails when a config list has no entries.
func RequiredSlice(values []string, field string) error {
	if len(values) == 0 {
		return fmt.Errorf("%s requires at least one entry", field)
	}
	return nil
}

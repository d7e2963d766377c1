// Package env expands env(VAR) references in configuration values.
//
// References are expanded in YAML scalar values only, never in mapping
// keys. An unset variable is left in place so preflight can report the
// missing name instead of silently writing an empty string into the
// config.
package env

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml/ast"
)

// refPattern matches env(VAR_NAME) references
var refPattern = regexp.MustCompile(`env\(([^)]+)\)`)

// unsafeChars rejects control characters in expanded values. Newline and
// tab stay allowed so multiline secrets survive.
var unsafeChars = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`)

// Expand walks a parsed YAML document and replaces every env(VAR)
// reference in scalar values with the variable's current value.
func Expand(node ast.Node) error {
	if node == nil {
		return nil
	}
	return expandNode(node)
}

func expandNode(node ast.Node) error {
	switch n := node.(type) {
	case *ast.DocumentNode:
		if n.Body == nil {
			return nil
		}
		return expandNode(n.Body)
	case *ast.MappingNode:
		for _, value := range n.Values {
			if err := expandNode(value); err != nil {
				return err
			}
		}
	case *ast.MappingValueNode:
		// Only the value side is visited; keys never expand
		if n.Value != nil {
			return expandNode(n.Value)
		}
	case *ast.SequenceNode:
		for _, value := range n.Values {
			if err := expandNode(value); err != nil {
				return err
			}
		}
	case *ast.TagNode:
		if n.Value != nil {
			return expandNode(n.Value)
		}
	case *ast.AnchorNode:
		if n.Value != nil {
			return expandNode(n.Value)
		}
	case *ast.LiteralNode:
		if n.Value == nil {
			return nil
		}
		expanded, err := expandString(n.Value.Value)
		if err != nil {
			return err
		}
		n.Value.Value = expanded
	case *ast.StringNode:
		expanded, err := expandString(n.Value)
		if err != nil {
			return err
		}
		n.Value = expanded
	}
	return nil
}

// CheckResolved reports an unresolved env(VAR) reference left in a config
// value. Stage checks call it after their skip guards so the failure names
// the variable, such as "notarize.team_id: environment variable
// SUPERPICKY_TEAM_ID is not set".
func CheckResolved(value, field string) error {
	if m := refPattern.FindStringSubmatch(value); m != nil {
		return fmt.Errorf("%s: environment variable %s is not set", field, m[1])
	}
	return nil
}

func expandString(input string) (string, error) {
	var err error
	result := refPattern.ReplaceAllStringFunc(input, func(match string) string {
		key := strings.TrimSuffix(strings.TrimPrefix(match, "env("), ")")
		value, ok := os.LookupEnv(key)
		if !ok {
			// Left unresolved for CheckResolved to catch later
			return match
		}

		if unsafeChars.MatchString(value) {
			err = fmt.Errorf("environment variable %s contains disallowed control characters", key)
			return ""
		}

		return value
	})

	if err != nil {
		return "", err
	}
	return result, nil
}

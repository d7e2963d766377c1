package env

import (
	"fmt"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/parser"
)

func TestExpand(t *testing.T) {
	t.Setenv("SUPERPICKY_TEAM_ID", "TEAM123456")
	t.Setenv("RELEASE_CHANNEL", "stable")
	t.Setenv("SPECIAL_VAR", "test@#$%")
	t.Setenv("EMPTY_VAR", "")
	t.Setenv("MULTILINE_VAR", "line\nfeed")
	t.Setenv("CONTROL_VAR", "bad\x01value")
	t.Setenv("KEY_VAR", "key-value")

	tests := []struct {
		name       string
		yamlInput  string
		expectErr  bool
		checkKey   string
		checkValue string
		isSequence bool
	}{
		{
			name:       "single reference",
			yamlInput:  "team_id: env(SUPERPICKY_TEAM_ID)\n",
			checkKey:   "team_id",
			checkValue: "TEAM123456",
		},
		{
			name:       "reference with prefix and suffix",
			yamlInput:  "value: prefix-env(SUPERPICKY_TEAM_ID)-suffix\n",
			checkKey:   "value",
			checkValue: "prefix-TEAM123456-suffix",
		},
		{
			name:       "multiple references in one value",
			yamlInput:  "value: env(SUPERPICKY_TEAM_ID)-env(RELEASE_CHANNEL)\n",
			checkKey:   "value",
			checkValue: "TEAM123456-stable",
		},
		{
			name:       "unset variable left as literal",
			yamlInput:  "value: env(NONEXISTENT_RANDOM_VAR_12345)\n",
			checkKey:   "value",
			checkValue: "env(NONEXISTENT_RANDOM_VAR_12345)",
		},
		{
			name:       "no references",
			yamlInput:  "value: no-env-here\n",
			checkKey:   "value",
			checkValue: "no-env-here",
		},
		{
			name:       "empty variable expands to empty string",
			yamlInput:  "value: env(EMPTY_VAR)\n",
			checkKey:   "value",
			checkValue: "",
		},
		{
			name:       "malformed reference untouched",
			yamlInput:  "value: env(SUPERPICKY_TEAM_ID\n",
			checkKey:   "value",
			checkValue: "env(SUPERPICKY_TEAM_ID",
		},
		{
			name:       "special characters survive",
			yamlInput:  "value: env(SPECIAL_VAR)\n",
			checkKey:   "value",
			checkValue: "test@#$%",
		},
		{
			name:       "newlines allowed for multiline secrets",
			yamlInput:  "value: env(MULTILINE_VAR)\n",
			checkKey:   "value",
			checkValue: "line\nfeed",
		},
		{
			name:      "control characters rejected",
			yamlInput: "value: env(CONTROL_VAR)\n",
			expectErr: true,
			checkKey:  "value",
		},
		{
			name:       "mapping key never expands",
			yamlInput:  "env(KEY_VAR): env(KEY_VAR)\n",
			checkKey:   "env(KEY_VAR)",
			checkValue: "key-value",
		},
		{
			name:       "sequence values expand",
			yamlInput:  "tool_paths:\n  - env(SUPERPICKY_TEAM_ID)\n",
			checkKey:   "tool_paths",
			checkValue: "TEAM123456",
			isSequence: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := expandAndDecode(tt.yamlInput)
			if err != nil {
				if !tt.expectErr {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if tt.expectErr {
				t.Fatal("expected error but got none")
			}

			raw, ok := data[tt.checkKey]
			if !ok {
				t.Fatalf("expected key %q", tt.checkKey)
			}

			if tt.isSequence {
				slice, ok := raw.([]interface{})
				if !ok || len(slice) != 1 {
					t.Fatalf("expected a one-element sequence, got %v", raw)
				}
				raw = slice[0]
			}

			value, ok := raw.(string)
			if !ok {
				t.Fatalf("expected a string for key %q, got %T", tt.checkKey, raw)
			}
			if value != tt.checkValue {
				t.Errorf("value = %q, want %q", value, tt.checkValue)
			}
		})
	}
}

func TestCheckResolved(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		field   string
		wantErr bool
		errMsg  string
	}{
		{
			name:  "resolved value",
			value: "TEAM123456",
			field: "notarize.team_id",
		},
		{
			name:  "empty value",
			value: "",
			field: "notarize.team_id",
		},
		{
			name:    "unresolved reference",
			value:   "env(SUPERPICKY_TEAM_ID)",
			field:   "notarize.team_id",
			wantErr: true,
			errMsg:  "notarize.team_id: environment variable SUPERPICKY_TEAM_ID is not set",
		},
		{
			name:    "unresolved reference inside larger value",
			value:   "prefix-env(MISSING_VAR)-suffix",
			field:   "notarize.apple_id",
			wantErr: true,
			errMsg:  "notarize.apple_id: environment variable MISSING_VAR is not set",
		},
		{
			name:  "malformed pattern not matched",
			value: "env(MISSING_VAR",
			field: "notarize.team_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckResolved(tt.value, tt.field)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if err.Error() != tt.errMsg {
					t.Errorf("error = %q, want %q", err.Error(), tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func expandAndDecode(input string) (map[string]any, error) {
	file, err := parser.ParseBytes([]byte(input), 0)
	if err != nil {
		return nil, err
	}
	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return nil, fmt.Errorf("empty document")
	}
	if err := Expand(file.Docs[0].Body); err != nil {
		return nil, err
	}
	var out map[string]any
	if err := yaml.NodeToValue(file.Docs[0].Body, &out, yaml.Strict()); err != nil {
		return nil, err
	}
	return out, nil
}

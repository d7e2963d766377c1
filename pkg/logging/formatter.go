// Package logging provides the bullet-style console formatter used for
// normal (non-debug) runs. Debug runs use logrus.TextFormatter instead.
package logging

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// StageKey marks an entry as a top-level stage bullet. The pipeline sets
// it when a stage starts; everything a stage logs afterwards renders as a
// sub-bullet beneath it.
const StageKey = "stage"

// BulletFormatter renders hierarchical console output for a packaging run:
//
//	  * signing application
//	    * Signing 12 embedded libraries
//	    ! Could not pre-sign dist/SuperPicky.app/Contents/Frameworks/libfoo.dylib
//	  x signature verification failed
//
// Remaining key-value fields are appended sorted as key=value pairs.
type BulletFormatter struct{}

func (f *BulletFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var buf bytes.Buffer

	if stage, ok := entry.Data[StageKey]; ok {
		fmt.Fprintf(&buf, "  * %v", stage)
		buf.WriteString(fieldPairs(entry.Data, StageKey))
		buf.WriteByte('\n')
		return buf.Bytes(), nil
	}

	switch entry.Level {
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		fmt.Fprintf(&buf, "  x %s", entry.Message)
	case logrus.WarnLevel:
		fmt.Fprintf(&buf, "    ! %s", entry.Message)
	case logrus.InfoLevel:
		fmt.Fprintf(&buf, "    * %s", entry.Message)
	default:
		fmt.Fprintf(&buf, "      %s", entry.Message)
	}

	buf.WriteString(fieldPairs(entry.Data))
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// fieldPairs renders the remaining fields as "  k=v k=v", sorted by key
// for deterministic output. Empty string when nothing remains.
func fieldPairs(fields logrus.Fields, skip ...string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		skipped := false
		for _, s := range skip {
			if k == s {
				skipped = true
				break
			}
		}
		if !skipped {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, fields[k])
	}
	return "  " + strings.Join(parts, " ")
}

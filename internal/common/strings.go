package common

import "strings"

// UnknownStr is what String methods return for out-of-range enum values.
const UnknownStr = "unknown"

// SplitList splits a comma-separated list, trimming blanks and dropping
// empty items. An empty input yields nil.
func SplitList(s string) []string {
	var out []string

	for item := range strings.SplitSeq(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}

	return out
}

package ledconfig

import (
	"strconv"
	"strings"
)

// docPath builds a readable location inside a document.
// Examples:
//   - "leds" for the group list
//   - "leds[1]" for the second group entry
//   - "leds[1].members[0].Priority" for a member field
//
// The zero value is the document root and prints as "(root)".
type docPath struct {
	parts []string
}

// Field appends a key to the path.
func (p docPath) Field(name string) docPath {
	return docPath{parts: append(append([]string{}, p.parts...), name)}
}

// Index appends an array index to the last key.
func (p docPath) Index(i int) docPath {
	if len(p.parts) == 0 {
		return docPath{parts: []string{"[" + strconv.Itoa(i) + "]"}}
	}

	newParts := make([]string, len(p.parts))
	copy(newParts, p.parts)
	newParts[len(newParts)-1] += "[" + strconv.Itoa(i) + "]"

	return docPath{parts: newParts}
}

// String returns the full path string.
func (p docPath) String() string {
	if len(p.parts) == 0 {
		return "(root)"
	}

	return strings.Join(p.parts, ".")
}

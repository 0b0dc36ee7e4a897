package layout

import (
	"maps"
	"slices"
)

// Defaults applied to member fields the document leaves out.
const (
	DefaultDutyOn   uint8  = 50
	DefaultPeriod   uint16 = 0
	DefaultPriority        = ActionBlink
)

// LedAction is one member LED's behavior within one group.
type LedAction struct {
	// Name is the logical LED identifier. Unique within a group.
	Name string `json:"name" yaml:"name"`
	// Action is the visual state requested by the group.
	Action Action `json:"action" yaml:"action"`
	// DutyOn is the percentage of Period the LED is lit while blinking.
	DutyOn uint8 `json:"duty_on" yaml:"duty_on"`
	// Period is the blink cycle in milliseconds. Zero means no blink timing.
	Period uint16 `json:"period" yaml:"period"`
	// Priority arbitrates between groups asserting the same LED. It must be
	// identical for an LED across every group it belongs to.
	Priority Action `json:"priority" yaml:"priority"`
}

// ActionSet holds a group's members keyed by LED name.
type ActionSet map[string]LedAction

// Add inserts a, reporting false if a record for a.Name already exists.
// An existing record is never replaced.
func (s ActionSet) Add(a LedAction) bool {
	if _, ok := s[a.Name]; ok {
		return false
	}

	s[a.Name] = a

	return true
}

// Names returns the member names in sorted order.
func (s ActionSet) Names() []string {
	return slices.Sorted(maps.Keys(s))
}

// GroupMap maps a group object path to its member set.
type GroupMap map[string]ActionSet

// Paths returns the group paths in sorted order.
func (m GroupMap) Paths() []string {
	return slices.Sorted(maps.Keys(m))
}

// Members returns the total number of member records across all groups.
func (m GroupMap) Members() int {
	n := 0
	for _, set := range m {
		n += len(set)
	}

	return n
}

// Groups returns the paths of every group that lists the named LED.
func (m GroupMap) Groups(led string) []string {
	var out []string

	for _, p := range m.Paths() {
		if _, ok := m[p][led]; ok {
			out = append(out, p)
		}
	}

	return out
}

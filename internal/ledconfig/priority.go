package ledconfig

import "led-layout/internal/layout"

// PriorityMap records the single priority each LED may carry across all
// groups of one document. Build one per load and drop it afterwards.
type PriorityMap map[string]layout.Action

// Record accepts the first priority seen for name and any later identical
// one. A different priority is a *PriorityConflictError and leaves the map
// unchanged.
func (m PriorityMap) Record(name string, priority layout.Action) error {
	old, ok := m[name]
	if !ok {
		m[name] = priority
		return nil
	}

	if old != priority {
		return &PriorityConflictError{Name: name, Old: old, New: priority}
	}

	return nil
}

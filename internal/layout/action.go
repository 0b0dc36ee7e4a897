package layout

import (
	"errors"
	"fmt"

	"led-layout/internal/match"
)

//go:generate go tool stringer -type=Action -trimprefix=Action -output=action_string.go

// Action is the visual state of an LED, also reused as its priority tag.
type Action int

const (
	_ Action = iota // zero value is never a valid action

	ActionOn
	ActionBlink
)

// ErrInvalidAction is matched by every *InvalidActionError.
var ErrInvalidAction = errors.New("invalid action")

// actionNames lists the accepted spellings in declaration order.
var actionNames = []string{ActionOn.String(), ActionBlink.String()}

// ActionNames returns the accepted action spellings.
func ActionNames() []string {
	return append([]string(nil), actionNames...)
}

// ParseAction decodes "On" or "Blink". Matching is case-sensitive.
func ParseAction(s string) (Action, error) {
	switch s {
	case "On":
		return ActionOn, nil
	case "Blink":
		return ActionBlink, nil
	default:
		return 0, &InvalidActionError{
			Value:       s,
			Suggestions: match.Suggest(s, actionNames, 1),
		}
	}
}

// IsValid reports whether a is one of the declared actions.
func (a Action) IsValid() bool {
	return a == ActionOn || a == ActionBlink
}

// MarshalText implements encoding.TextMarshaler.
func (a Action) MarshalText() ([]byte, error) {
	if !a.IsValid() {
		return nil, &InvalidActionError{Value: a.String()}
	}

	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}

	*a = parsed

	return nil
}

// InvalidActionError reports an Action or Priority value outside {On, Blink}.
type InvalidActionError struct {
	Value       string
	Suggestions []string
}

func (e *InvalidActionError) Error() string {
	msg := fmt.Sprintf("invalid action %q: must be one of On, Blink", e.Value)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestions[0])
	}

	return msg
}

// Is makes errors.Is(err, ErrInvalidAction) succeed.
func (e *InvalidActionError) Is(target error) bool {
	return target == ErrInvalidAction
}

package ledconfig

import (
	"errors"
	"fmt"

	"led-layout/internal/layout"
)

// Sentinels matched through errors.Is by the structured errors below.
var (
	ErrMissingOrEmptyFile = errors.New("LED config missing or empty")
	ErrParse              = errors.New("LED config is not well-formed")
	ErrUnsupportedVersion = errors.New("unsupported LED config version")
	ErrPriorityConflict   = errors.New("LED priority differs across groups")
	ErrOutOfRange         = errors.New("value out of range")
	ErrDuplicateGroup     = errors.New("duplicate LED group")
	ErrDuplicateMember    = errors.New("duplicate LED group member")

	// ErrInvalidAction is re-exported so callers need only this package.
	ErrInvalidAction = layout.ErrInvalidAction
)

// MissingFileError reports a config path that does not exist or holds zero bytes.
type MissingFileError struct {
	Path string
	Err  error // underlying fs error; nil when the file exists but is empty
}

func (e *MissingFileError) Error() string {
	switch {
	case e.Path == "":
		return "no LED config found"
	case e.Err == nil:
		return fmt.Sprintf("LED config %s is empty", e.Path)
	default:
		return fmt.Sprintf("LED config %s not found: %v", e.Path, e.Err)
	}
}

func (e *MissingFileError) Unwrap() error { return e.Err }

func (e *MissingFileError) Is(target error) bool { return target == ErrMissingOrEmptyFile }

// ParseError wraps a syntax or type error from the JSON decoder.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to parse LED config: %v", e.Err)
	}

	return fmt.Sprintf("failed to parse LED config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// UnsupportedVersionError carries a schema version no builder is registered for.
type UnsupportedVersionError struct {
	Version int64
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported LED config version %d", e.Version)
}

func (e *UnsupportedVersionError) Is(target error) bool { return target == ErrUnsupportedVersion }

// PriorityConflictError reports an LED declared with two different priorities.
type PriorityConflictError struct {
	Name string
	Old  layout.Action
	New  layout.Action
}

func (e *PriorityConflictError) Error() string {
	return fmt.Sprintf("priority of LED %q is not the same across groups: old %s, new %s", e.Name, e.Old, e.New)
}

func (e *PriorityConflictError) Is(target error) bool { return target == ErrPriorityConflict }

// RangeError reports a numeric member field that does not fit its width.
type RangeError struct {
	Field string
	Value string
	Max   uint64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s value %s is not an integer in 0..%d", e.Field, e.Value, e.Max)
}

func (e *RangeError) Is(target error) bool { return target == ErrOutOfRange }

// DuplicateGroupError reports two group entries resolving to the same path.
type DuplicateGroupError struct {
	Path string
}

func (e *DuplicateGroupError) Error() string {
	return fmt.Sprintf("group %s is defined more than once", e.Path)
}

func (e *DuplicateGroupError) Is(target error) bool { return target == ErrDuplicateGroup }

// DuplicateMemberError reports an LED listed twice in one group.
type DuplicateMemberError struct {
	Group string
	Name  string
}

func (e *DuplicateMemberError) Error() string {
	return fmt.Sprintf("LED %q is listed more than once in group %s", e.Name, e.Group)
}

func (e *DuplicateMemberError) Is(target error) bool { return target == ErrDuplicateMember }

// LocationError attaches a document location such as "leds[1].members[0]" to err.
type LocationError struct {
	Location string
	Err      error
}

func (e *LocationError) Error() string {
	return e.Location + ": " + e.Err.Error()
}

func (e *LocationError) Unwrap() error { return e.Err }

func at(location string, err error) error {
	if err == nil {
		return nil
	}

	return &LocationError{Location: location, Err: err}
}

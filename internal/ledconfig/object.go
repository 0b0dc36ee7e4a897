package ledconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"led-layout/internal/common"
)

// object is a decoded JSON object. Keys are matched exactly, unlike
// encoding/json struct decoding which folds case.
type object map[string]json.RawMessage

func decodeObject(raw json.RawMessage) (object, error) {
	if kind := jsonKind(raw); kind != "object" {
		return nil, fmt.Errorf("expected an object, got %s", kind)
	}

	var o object
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, err
	}

	return o, nil
}

// field returns the raw value for key. JSON null counts as absent.
func (o object) field(key string) (json.RawMessage, bool) {
	raw, ok := o[key]
	if !ok || jsonKind(raw) == "null" {
		return nil, false
	}

	return raw, true
}

func (o object) stringOr(key, def string) (string, error) {
	raw, ok := o.field(key)
	if !ok {
		return def, nil
	}

	if kind := jsonKind(raw); kind != "string" {
		return "", fmt.Errorf("expected a string, got %s", kind)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}

	return s, nil
}

func (o object) list(key string) ([]json.RawMessage, error) {
	raw, ok := o.field(key)
	if !ok {
		return nil, nil
	}

	if kind := jsonKind(raw); kind != "array" {
		return nil, fmt.Errorf("expected an array, got %s", kind)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}

	return items, nil
}

// uintOr reads key as an unsigned integer no larger than maxVal. Values that
// are negative, fractional or too large are a *RangeError; they are never
// truncated.
func (o object) uintOr(key string, def, maxVal uint64) (uint64, error) {
	raw, ok := o.field(key)
	if !ok {
		return def, nil
	}

	if kind := jsonKind(raw); kind != "number" {
		return 0, fmt.Errorf("expected a number, got %s", kind)
	}

	lit := string(bytes.TrimSpace(raw))

	if u, err := strconv.ParseUint(lit, 10, 64); err == nil && common.IsInRange(0, u, maxVal) {
		return u, nil
	}

	if f, ok := wholeNumber(lit); ok && common.IsInRange(0, f, float64(maxVal)) {
		return uint64(f), nil
	}

	return 0, &RangeError{Field: key, Value: lit, Max: maxVal}
}

// versionNumber reads the "version" header, which must be a whole number.
// Quoted numbers are rejected.
func versionNumber(raw json.RawMessage) (int64, error) {
	if kind := jsonKind(raw); kind != "number" {
		return 0, fmt.Errorf("version must be an integer, got %s", kind)
	}

	lit := string(bytes.TrimSpace(raw))

	if v, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return v, nil
	}

	if f, ok := wholeNumber(lit); ok && f >= math.MinInt64 && f < math.MaxInt64 {
		return int64(f), nil
	}

	return 0, fmt.Errorf("version %s is not an integer", lit)
}

// wholeNumber parses a number literal written with a fraction or exponent,
// such as 50.0 or 5e1, and reports whether it is integral.
func wholeNumber(lit string) (float64, bool) {
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, false
	}

	return f, true
}

// jsonKind names the JSON type of a syntactically valid raw value.
func jsonKind(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "nothing"
	}

	switch raw[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case '"':
		return "string"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

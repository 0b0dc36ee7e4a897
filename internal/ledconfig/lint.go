package ledconfig

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"sort"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"led-layout/internal/diagnostic"
	"led-layout/internal/layout"
	"led-layout/internal/match"
)

// Diagnostic codes for load failures. Schema violations use "schema_" plus
// the validator's error type, e.g. "schema_enum" or "schema_required".
const (
	CodeMissingOrEmpty     = "missing_or_empty"
	CodeParseError         = "parse_error"
	CodeUnsupportedVersion = "unsupported_version"
	CodePriorityConflict   = "priority_conflict"
	CodeInvalidAction      = "invalid_action"
	CodeOutOfRange         = "out_of_range"
	CodeDuplicateGroup     = "duplicate_group"
	CodeDuplicateMember    = "duplicate_member"
	CodeLoadFailed         = "load_failed"

	CodeBlinkWithoutPeriod = "blink_without_period"
	CodeUnknownMemberKey   = "unknown_member_key"
	CodeEmptyGroupName     = "empty_group_name"

	CodeSummary = "summary"
)

//go:embed schema/led-group-config.schema.json
var schemaJSON []byte

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
})

// SchemaV1 returns the JSON Schema for version 1 documents.
func SchemaV1() []byte {
	return slices.Clone(schemaJSON)
}

// ErrorCode maps a load error to its diagnostic code.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrMissingOrEmptyFile):
		return CodeMissingOrEmpty
	case errors.Is(err, ErrUnsupportedVersion):
		return CodeUnsupportedVersion
	case errors.Is(err, ErrPriorityConflict):
		return CodePriorityConflict
	case errors.Is(err, ErrInvalidAction):
		return CodeInvalidAction
	case errors.Is(err, ErrOutOfRange):
		return CodeOutOfRange
	case errors.Is(err, ErrDuplicateGroup):
		return CodeDuplicateGroup
	case errors.Is(err, ErrDuplicateMember):
		return CodeDuplicateMember
	case errors.Is(err, ErrParse):
		return CodeParseError
	default:
		return CodeLoadFailed
	}
}

// ErrorDiagnostic converts a load error into a single error diagnostic.
func ErrorDiagnostic(err error) diagnostic.Diagnostic {
	d := diagnostic.Diagnostic{
		Severity: diagnostic.SeverityError,
		Code:     ErrorCode(err),
		Message:  err.Error(),
	}

	var loc *LocationError
	if errors.As(err, &loc) {
		d.Field = loc.Location
		d.Message = loc.Err.Error()
	}

	var invalid *layout.InvalidActionError
	if errors.As(err, &invalid) {
		d.Suggestions = invalid.Suggestions
	}

	return d
}

// Lint checks data the way a build would, but collects everything it can
// instead of stopping at the first problem. Schema violations are reported
// first. The build-level checks that a schema cannot express, such as
// priority conflicts and duplicate groups, run only once the schema passes.
func Lint(ctx context.Context, data []byte, opts BuildOptions) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}

	doc, err := Parse(data)
	if err != nil {
		res.Add(ErrorDiagnostic(err))
		return res
	}

	if doc.Version() != DefaultVersion {
		res.Add(ErrorDiagnostic(&UnsupportedVersionError{Version: doc.Version()}))
		return res
	}

	lintSchema(res, doc)
	lintWarnings(res, doc)

	if res.HasErrors() {
		return res
	}

	ledMap, err := DefaultRegistry().Dispatch(ctx, doc, opts)
	if err != nil {
		res.Add(ErrorDiagnostic(err))
		return res
	}

	res.AddInfo(CodeSummary, fmt.Sprintf("%d groups with %d members", len(ledMap), ledMap.Members()), "", "")

	return res
}

func lintSchema(res *diagnostic.Diagnostics, doc *Document) {
	schema, err := compiledSchema()
	if err != nil {
		res.AddError("schema_unavailable", fmt.Sprintf("failed to compile schema: %v", err), "", "")
		return
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc.data))
	if err != nil {
		res.AddError(CodeParseError, err.Error(), "", "")
		return
	}

	errs := result.Errors()
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Field() < errs[j].Field() })

	for _, re := range errs {
		var suggestions []string
		if s, ok := re.Value().(string); ok && re.Type() == "enum" {
			suggestions = match.Suggest(s, layout.ActionNames(), 1)
		}

		res.AddError("schema_"+re.Type(), re.Description(), "", re.Field(), suggestions...)
	}
}

// lintWarnings walks the document loosely. Shapes the schema rejects are
// skipped here since they are already reported as errors.
func lintWarnings(res *diagnostic.Diagnostics, doc *Document) {
	root, err := decodeObject(doc.data)
	if err != nil {
		return
	}

	groups, err := root.list("leds")
	if err != nil {
		return
	}

	leds := docPath{}.Field("leds")

	for i, rawGroup := range groups {
		entry, err := decodeObject(rawGroup)
		if err != nil {
			continue
		}

		loc := leds.Index(i)

		name, err := entry.stringOr("group", "")
		if err == nil && name == "" {
			res.AddWarning(CodeEmptyGroupName, "group name is empty; the group path is the base path itself", "", loc.Field("group").String())
		}

		members, err := entry.list("members")
		if err != nil {
			continue
		}

		for j, rawMember := range members {
			member, err := decodeObject(rawMember)
			if err != nil {
				continue
			}

			lintMember(res, name, loc.Field("members").Index(j), member)
		}
	}
}

func lintMember(res *diagnostic.Diagnostics, group string, loc docPath, member object) {
	for _, key := range slices.Sorted(maps.Keys(member)) {
		if slices.Contains(MemberKeysV1, key) {
			continue
		}

		res.AddWarning(CodeUnknownMemberKey, fmt.Sprintf("unknown member key %q is ignored", key), group, loc.Field(key).String(),
			match.Suggest(key, MemberKeysV1, 1)...)
	}

	action, err := member.stringOr(keyAction, "")
	if err != nil || action != layout.ActionBlink.String() {
		return
	}

	period, err := member.uintOr(keyPeriod, uint64(layout.DefaultPeriod), math.MaxUint16)
	if err == nil && period == 0 {
		res.AddWarning(CodeBlinkWithoutPeriod, "member blinks but has no Period", group, loc.Field(keyPeriod).String())
	}
}

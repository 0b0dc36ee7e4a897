package ledconfig

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"

	"led-layout/internal/ctxlog"
	"led-layout/internal/layout"
)

// Member keys understood by schema version 1.
const (
	keyName     = "Name"
	keyAction   = "Action"
	keyDutyOn   = "DutyOn"
	keyPeriod   = "Period"
	keyPriority = "Priority"
)

// MemberKeysV1 lists the member keys of schema version 1.
var MemberKeysV1 = []string{keyName, keyAction, keyDutyOn, keyPeriod, keyPriority}

// BuilderV1 builds a GroupMap from a version 1 document:
//
//	{"version": 1, "leds": [{"group": "...", "members": [{"Name": ..., "Action": ...}]}]}
type BuilderV1 struct{}

// Build walks every group in document order. Any error aborts the build and
// no partial map is returned.
func (BuilderV1) Build(ctx context.Context, doc *Document, opts BuildOptions) (layout.GroupMap, error) {
	b := &v1Build{
		path:       doc.Path(),
		opts:       opts,
		logger:     ctxlog.FromContext(ctx),
		ledMap:     layout.GroupMap{},
		priorities: PriorityMap{},
	}

	var raw json.RawMessage
	if err := doc.Decode(&raw); err != nil {
		return nil, err
	}

	root, err := decodeObject(raw)
	if err != nil {
		return nil, b.fieldErr(docPath{}, err)
	}

	leds := docPath{}.Field("leds")

	groups, err := root.list("leds")
	if err != nil {
		return nil, b.fieldErr(leds, err)
	}

	for i, rawGroup := range groups {
		if err := b.group(leds.Index(i), rawGroup); err != nil {
			return nil, err
		}
	}

	return b.ledMap, nil
}

// v1Build is the state of one Build call.
type v1Build struct {
	path       string
	opts       BuildOptions
	logger     *slog.Logger
	ledMap     layout.GroupMap
	priorities PriorityMap
}

func (b *v1Build) group(loc docPath, raw json.RawMessage) error {
	entry, err := decodeObject(raw)
	if err != nil {
		return b.fieldErr(loc, err)
	}

	name, err := entry.stringOr("group", "")
	if err != nil {
		return b.fieldErr(loc.Field("group"), err)
	}

	groupPath := GroupPath(b.opts.BasePath, name)

	members, err := entry.list("members")
	if err != nil {
		return b.fieldErr(loc.Field("members"), err)
	}

	actions := layout.ActionSet{}

	for j, rawMember := range members {
		mloc := loc.Field("members").Index(j)

		action, err := b.member(mloc, rawMember)
		if err != nil {
			return err
		}

		if !actions.Add(action) {
			return at(mloc.Field(keyName).String(), &DuplicateMemberError{Group: groupPath, Name: action.Name})
		}
	}

	if err := b.insert(groupPath, actions); err != nil {
		return at(loc.Field("group").String(), err)
	}

	b.logger.Debug("LED group built", "group", groupPath, "members", len(actions))

	return nil
}

func (b *v1Build) member(loc docPath, raw json.RawMessage) (layout.LedAction, error) {
	member, err := decodeObject(raw)
	if err != nil {
		return layout.LedAction{}, b.fieldErr(loc, err)
	}

	name, err := member.stringOr(keyName, "")
	if err != nil {
		return layout.LedAction{}, b.fieldErr(loc.Field(keyName), err)
	}

	action, err := b.action(member, keyAction, "", loc)
	if err != nil {
		return layout.LedAction{}, err
	}

	dutyOn, err := member.uintOr(keyDutyOn, uint64(layout.DefaultDutyOn), math.MaxUint8)
	if err != nil {
		return layout.LedAction{}, b.fieldErr(loc.Field(keyDutyOn), err)
	}

	period, err := member.uintOr(keyPeriod, uint64(layout.DefaultPeriod), math.MaxUint16)
	if err != nil {
		return layout.LedAction{}, b.fieldErr(loc.Field(keyPeriod), err)
	}

	priority, err := b.action(member, keyPriority, layout.DefaultPriority.String(), loc)
	if err != nil {
		return layout.LedAction{}, err
	}

	// The same LED may sit in several groups, but only with one priority.
	if err := b.priorities.Record(name, priority); err != nil {
		return layout.LedAction{}, at(loc.Field(keyPriority).String(), err)
	}

	return layout.LedAction{
		Name:     name,
		Action:   action,
		DutyOn:   uint8(dutyOn),
		Period:   uint16(period),
		Priority: priority,
	}, nil
}

func (b *v1Build) action(member object, key, def string, loc docPath) (layout.Action, error) {
	s, err := member.stringOr(key, def)
	if err != nil {
		return 0, b.fieldErr(loc.Field(key), err)
	}

	action, err := layout.ParseAction(s)
	if err != nil {
		return 0, at(loc.Field(key).String(), err)
	}

	return action, nil
}

func (b *v1Build) insert(groupPath string, actions layout.ActionSet) error {
	existing, ok := b.ledMap[groupPath]
	if !ok {
		b.ledMap[groupPath] = actions
		return nil
	}

	switch b.opts.DuplicateGroups {
	case DuplicateGroupOverwrite:
		b.logger.Warn("LED group redefined, dropping earlier members", "group", groupPath, "dropped", len(existing))
		b.ledMap[groupPath] = actions

		return nil
	case DuplicateGroupMerge:
		for _, name := range actions.Names() {
			if !existing.Add(actions[name]) {
				return &DuplicateMemberError{Group: groupPath, Name: name}
			}
		}

		return nil
	default:
		return &DuplicateGroupError{Path: groupPath}
	}
}

// fieldErr keeps range errors typed and reports anything else as a parse
// error, both tagged with the document location.
func (b *v1Build) fieldErr(loc docPath, err error) error {
	if errors.Is(err, ErrOutOfRange) {
		return at(loc.String(), err)
	}

	return at(loc.String(), &ParseError{Path: b.path, Err: err})
}

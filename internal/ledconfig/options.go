package ledconfig

import (
	"fmt"
	"strings"

	"led-layout/internal/common"
)

// DefaultBasePath is the object path every group path is rooted at.
const DefaultBasePath = "/xyz/openbmc_project/led/groups"

// DuplicateGroupPolicy decides what happens when two group entries resolve
// to the same group path.
type DuplicateGroupPolicy int

const (
	// DuplicateGroupReject fails the load with *DuplicateGroupError.
	DuplicateGroupReject DuplicateGroupPolicy = iota
	// DuplicateGroupOverwrite keeps only the later entry.
	DuplicateGroupOverwrite
	// DuplicateGroupMerge unions the member sets. A member name present in
	// both entries is still a *DuplicateMemberError.
	DuplicateGroupMerge
)

// String returns the flag spelling of the policy.
func (p DuplicateGroupPolicy) String() string {
	switch p {
	case DuplicateGroupReject:
		return "reject"
	case DuplicateGroupOverwrite:
		return "overwrite"
	case DuplicateGroupMerge:
		return "merge"
	default:
		return common.UnknownStr
	}
}

// ParseDuplicateGroupPolicy accepts reject, overwrite or merge.
func ParseDuplicateGroupPolicy(s string) (DuplicateGroupPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return DuplicateGroupReject, nil
	case "overwrite":
		return DuplicateGroupOverwrite, nil
	case "merge":
		return DuplicateGroupMerge, nil
	default:
		return 0, fmt.Errorf("invalid duplicate group policy %q: must be reject, overwrite or merge", s)
	}
}

// BuildOptions are the externally supplied inputs of a build that are not
// part of the document.
type BuildOptions struct {
	// BasePath prefixes every group path.
	BasePath string
	// DuplicateGroups selects the handling of repeated group paths.
	DuplicateGroups DuplicateGroupPolicy
}

// DefaultBuildOptions roots groups at DefaultBasePath and rejects duplicates.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		BasePath:        DefaultBasePath,
		DuplicateGroups: DuplicateGroupReject,
	}
}

// GroupPath joins base and group with exactly one "/" between them.
func GroupPath(base, group string) string {
	return strings.TrimRight(base, "/") + "/" + group
}

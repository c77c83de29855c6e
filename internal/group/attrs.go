package group

import (
	"fmt"
	"regexp"
	"sort"
)

// validNamePattern is the naming rule for groups and nodes.
var validNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)

// ValidName reports whether name is acceptable as a group or node name.
func ValidName(name string) bool {
	return validNamePattern.MatchString(name)
}

// AttrType describes the accepted value shape for a recognized attribute.
type AttrType int

const (
	StringAttr AttrType = iota
	OptionalStringAttr
	BoolAttr
	StringsAttr
	IntsAttr
	MapAttr
)

// Schema maps recognized attribute names to their accepted value shape.
type Schema map[string]AttrType

// groupAttrSchema is the recognized group attribute schema. Loaders must
// not pass any key outside this table; adding an attribute requires
// extending this table and DefaultAttributes in lockstep.
var groupAttrSchema = Schema{
	"bundles":              StringsAttr,
	"cmd_wrapper_inner":    StringAttr,
	"cmd_wrapper_outer":    StringAttr,
	"dummy":                BoolAttr,
	"kubectl_context":      OptionalStringAttr,
	"locking_node":         OptionalStringAttr,
	"member_patterns":      StringsAttr,
	"metadata":             MapAttr,
	"os":                   StringAttr,
	"os_version":           IntsAttr,
	"subgroups":            StringsAttr,
	"subgroup_patterns":    StringsAttr,
	"use_shadow_passwords": BoolAttr,
}

// Attributes holds the generic per-group settings. Nil fields are unset;
// defaults are applied by the node layer, never by Group itself.
type Attributes struct {
	CmdWrapperInner    *string
	CmdWrapperOuter    *string
	Dummy              *bool
	KubectlContext     *string
	LockingNode        *string
	OS                 *string
	OSVersion          []int
	UseShadowPasswords *bool
}

// ResolvedAttributes is the fully-defaulted view of Attributes, produced
// by the node layer after walking a node's groups.
type ResolvedAttributes struct {
	CmdWrapperInner    string
	CmdWrapperOuter    string
	Dummy              bool
	KubectlContext     string
	LockingNode        string
	OS                 string
	OSVersion          []int
	UseShadowPasswords bool
}

// DefaultAttributes returns the documented default for every generic
// attribute. KubectlContext and LockingNode default to "" (unset).
func DefaultAttributes() ResolvedAttributes {
	return ResolvedAttributes{
		CmdWrapperInner: "export LANG=C; {}",
		CmdWrapperOuter: "sudo sh -c {}",
		Dummy:           false,
		KubectlContext:  "",
		LockingNode:     "",
		OS:              "linux",
		// Defaulting os_version to (0,) instead of a large value means
		// nodes without an explicit version keep old behavior until
		// someone raises their version, rather than silently adopting
		// every new version-gated behavior added to the repo.
		OSVersion:          []int{0},
		UseShadowPasswords: true,
	}
}

// ValidateDict checks attrs against a recognized schema, returning a
// SchemaError for the first unknown key or mistyped value. Keys are
// checked in sorted order so the reported error is deterministic.
func ValidateDict(owner string, attrs map[string]interface{}, schema Schema) error {
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		expected, ok := schema[key]
		if !ok {
			return &SchemaError{Group: owner, Key: key, Reason: "unrecognized attribute"}
		}
		if reason := checkAttrValue(expected, attrs[key]); reason != "" {
			return &SchemaError{Group: owner, Key: key, Reason: reason}
		}
	}
	return nil
}

func checkAttrValue(expected AttrType, value interface{}) string {
	if value == nil {
		// Explicit null is treated as unset.
		return ""
	}
	switch expected {
	case StringAttr, OptionalStringAttr:
		if _, ok := value.(string); !ok {
			return fmt.Sprintf("expected string, got %T", value)
		}
	case BoolAttr:
		if _, ok := value.(bool); !ok {
			return fmt.Sprintf("expected bool, got %T", value)
		}
	case StringsAttr:
		if _, ok := StringSlice(value); !ok {
			return fmt.Sprintf("expected collection of strings, got %T", value)
		}
	case IntsAttr:
		if _, ok := IntSlice(value); !ok {
			return fmt.Sprintf("expected tuple of integers, got %T", value)
		}
	case MapAttr:
		if _, ok := value.(map[string]interface{}); !ok {
			return fmt.Sprintf("expected mapping, got %T", value)
		}
	}
	return ""
}

// ExtractAttributes pulls the generic attribute subset out of an already
// validated dictionary, leaving absent keys as unset sentinels.
func ExtractAttributes(attrs map[string]interface{}) Attributes {
	extracted := Attributes{
		CmdWrapperInner:    optionalString(attrs, "cmd_wrapper_inner"),
		CmdWrapperOuter:    optionalString(attrs, "cmd_wrapper_outer"),
		Dummy:              optionalBool(attrs, "dummy"),
		KubectlContext:     optionalString(attrs, "kubectl_context"),
		LockingNode:        optionalString(attrs, "locking_node"),
		OS:                 optionalString(attrs, "os"),
		UseShadowPasswords: optionalBool(attrs, "use_shadow_passwords"),
	}
	if value, ok := attrs["os_version"]; ok && value != nil {
		extracted.OSVersion, _ = IntSlice(value)
	}
	return extracted
}

// StringSlice coerces a decoded YAML sequence into []string.
func StringSlice(value interface{}) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, true
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

// IntSlice coerces a decoded YAML sequence into []int.
func IntSlice(value interface{}) ([]int, bool) {
	switch v := value.(type) {
	case []int:
		out := make([]int, len(v))
		copy(out, v)
		return out, true
	case []interface{}:
		out := make([]int, 0, len(v))
		for _, item := range v {
			n, ok := item.(int)
			if !ok {
				return nil, false
			}
			out = append(out, n)
		}
		return out, true
	}
	return nil, false
}

func optionalString(attrs map[string]interface{}, key string) *string {
	if value, ok := attrs[key]; ok && value != nil {
		s := value.(string)
		return &s
	}
	return nil
}

func optionalBool(attrs map[string]interface{}, key string) *bool {
	if value, ok := attrs[key]; ok && value != nil {
		b := value.(bool)
		return &b
	}
	return nil
}

package group

import (
	"fmt"
	"strings"
)

// InvalidNameError reports an entity name that fails the naming rule.
type InvalidNameError struct {
	Name string
}

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("'%s' is not a valid group name", e.Name)
}

// SchemaError reports an attribute dictionary that does not conform to
// the recognized attribute schema: an unknown key, or a value of the
// wrong type for a known key.
type SchemaError struct {
	Group  string
	Key    string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("group '%s': attribute '%s': %s", e.Group, e.Key, e.Reason)
}

// PatternError reports a subgroup or member pattern that failed to
// compile.
type PatternError struct {
	Group   string
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("group '%s': invalid pattern '%s': %v", e.Group, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

// NoSuchGroupError is returned by a Registry when a name resolves to no
// group.
type NoSuchGroupError struct {
	Name string
}

func (e *NoSuchGroupError) Error() string {
	return fmt.Sprintf("no such group: %s", e.Name)
}

// MissingSubgroupError reports a subgroup reference (explicit or
// pattern-implied) to a group that does not exist in the registry.
type MissingSubgroupError struct {
	Group    string
	Subgroup string
}

func (e *MissingSubgroupError) Error() string {
	return fmt.Sprintf(
		"group '%s' has '%s' listed as a subgroup, but no such group could be found",
		e.Group, e.Subgroup,
	)
}

// SubgroupLoopError reports a group that is reachable from itself via the
// subgroup relation. Chain holds the minimal cyclic name sequence; it
// starts and ends with the same group name.
type SubgroupLoopError struct {
	Group string
	Chain []string
}

func (e *SubgroupLoopError) Error() string {
	return fmt.Sprintf(
		"group '%s' can't be a subgroup of itself (%s)",
		e.Group, strings.Join(e.Chain, " -> "),
	)
}

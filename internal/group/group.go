package group

import (
	"fmt"
	"regexp"
	"sort"
)

// Group is a named collection of nodes and/or other groups, with its own
// attributes and metadata. Groups are constructed once per configuration
// load and are immutable afterwards, except for the registry
// back-reference injected via SetRegistry.
type Group struct {
	name                   string
	bundleNames            []string
	immediateSubgroupNames []string
	subgroupPatterns       []*regexp.Regexp
	memberPatterns         []*regexp.Regexp
	metadata               map[string]interface{}
	attrs                  Attributes

	registry Registry

	// memoized derived views, valid for the lifetime of the instance
	cachedSubgroupNames []string
	cachedNodes         []Node
	nodesCached         bool
	cachedStateDict     map[string]string
}

// New constructs a Group from its name and a raw attribute dictionary as
// decoded from configuration. It validates the name and the dictionary
// against the recognized attribute schema and compiles every subgroup
// and member pattern eagerly.
func New(name string, attrs map[string]interface{}) (*Group, error) {
	if !ValidName(name) {
		return nil, &InvalidNameError{Name: name}
	}
	if attrs == nil {
		attrs = map[string]interface{}{}
	}
	if err := ValidateDict(name, attrs, groupAttrSchema); err != nil {
		return nil, err
	}

	g := &Group{
		name:     name,
		metadata: map[string]interface{}{},
		attrs:    ExtractAttributes(attrs),
	}

	if value, ok := attrs["bundles"]; ok && value != nil {
		g.bundleNames, _ = StringSlice(value)
		sort.Strings(g.bundleNames)
	}
	if value, ok := attrs["subgroups"]; ok && value != nil {
		g.immediateSubgroupNames, _ = StringSlice(value)
		sort.Strings(g.immediateSubgroupNames)
	}
	if value, ok := attrs["metadata"]; ok && value != nil {
		g.metadata = value.(map[string]interface{})
	}

	var err error
	g.subgroupPatterns, err = compilePatterns(name, attrs, "subgroup_patterns")
	if err != nil {
		return nil, err
	}
	g.memberPatterns, err = compilePatterns(name, attrs, "member_patterns")
	if err != nil {
		return nil, err
	}

	return g, nil
}

func compilePatterns(groupName string, attrs map[string]interface{}, key string) ([]*regexp.Regexp, error) {
	value, ok := attrs[key]
	if !ok || value == nil {
		return nil, nil
	}
	sources, _ := StringSlice(value)
	sort.Strings(sources)

	patterns := make([]*regexp.Regexp, 0, len(sources))
	for _, source := range sources {
		compiled, err := regexp.Compile(source)
		if err != nil {
			return nil, &PatternError{Group: groupName, Pattern: source, Err: err}
		}
		patterns = append(patterns, compiled)
	}
	return patterns, nil
}

// SetRegistry injects the back-reference to the registry that owns this
// group. It must be called exactly once, before any derived view is
// queried.
func (g *Group) SetRegistry(registry Registry) {
	g.registry = registry
}

// Name returns the group's unique name.
func (g *Group) Name() string {
	return g.name
}

// BundleNames returns the names of the configuration bundles attached to
// this group. The core does not interpret them.
func (g *Group) BundleNames() []string {
	return g.bundleNames
}

// ImmediateSubgroupNames returns the explicitly listed subgroup names.
func (g *Group) ImmediateSubgroupNames() []string {
	return g.immediateSubgroupNames
}

// SubgroupPatterns returns the compiled subgroup patterns.
func (g *Group) SubgroupPatterns() []*regexp.Regexp {
	return g.subgroupPatterns
}

// MemberPatterns returns the compiled member patterns. They are matched
// against node names by the node layer, not by the group core.
func (g *Group) MemberPatterns() []*regexp.Regexp {
	return g.memberPatterns
}

// MatchesMember reports whether any member pattern matches nodeName.
func (g *Group) MatchesMember(nodeName string) bool {
	for _, pattern := range g.memberPatterns {
		if pattern.MatchString(nodeName) {
			return true
		}
	}
	return false
}

// Metadata returns the group's metadata mapping. The core stores it
// opaquely; merging and inheritance are owned by other layers.
func (g *Group) Metadata() map[string]interface{} {
	return g.metadata
}

// Attrs returns the group's generic attributes with unset fields left
// nil. Defaults are resolved by the node layer.
func (g *Group) Attrs() Attributes {
	return g.attrs
}

// Less orders groups lexicographically by name.
func (g *Group) Less(other *Group) bool {
	return g.name < other.name
}

func (g *Group) String() string {
	return g.name
}

// SortGroups sorts groups by name, in place.
func SortGroups(groups []*Group) {
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Less(groups[j])
	})
}

func (g *Group) mustRegistry() Registry {
	if g.registry == nil {
		panic(fmt.Sprintf("group '%s' queried before SetRegistry", g.name))
	}
	return g.registry
}

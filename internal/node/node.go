package node

import (
	"sort"

	"drover/internal/group"
)

// nodeAttrSchema is the recognized node attribute schema: the generic
// attributes shared with groups, plus node-only keys.
var nodeAttrSchema = group.Schema{
	"bundles":              group.StringsAttr,
	"cmd_wrapper_inner":    group.StringAttr,
	"cmd_wrapper_outer":    group.StringAttr,
	"dummy":                group.BoolAttr,
	"groups":               group.StringsAttr,
	"hostname":             group.StringAttr,
	"kubectl_context":      group.OptionalStringAttr,
	"locking_node":         group.OptionalStringAttr,
	"metadata":             group.MapAttr,
	"os":                   group.StringAttr,
	"os_version":           group.IntsAttr,
	"use_shadow_passwords": group.BoolAttr,
}

// Node is a managed host. It implements the group.Node interface
// consumed by the hierarchy core.
type Node struct {
	name        string
	hostname    string
	groupNames  []string
	bundleNames []string
	metadata    map[string]interface{}
	attrs       group.Attributes

	registry group.Registry

	cachedGroupNames []string
}

// New constructs a Node from its name and a raw attribute dictionary as
// decoded from configuration, validating both.
func New(name string, attrs map[string]interface{}) (*Node, error) {
	if !group.ValidName(name) {
		return nil, &group.InvalidNameError{Name: name}
	}
	if attrs == nil {
		attrs = map[string]interface{}{}
	}
	if err := group.ValidateDict(name, attrs, nodeAttrSchema); err != nil {
		return nil, err
	}

	n := &Node{
		name:     name,
		hostname: name,
		metadata: map[string]interface{}{},
		attrs:    group.ExtractAttributes(attrs),
	}
	if value, ok := attrs["hostname"]; ok && value != nil {
		n.hostname = value.(string)
	}
	if value, ok := attrs["groups"]; ok && value != nil {
		n.groupNames, _ = group.StringSlice(value)
		sort.Strings(n.groupNames)
	}
	if value, ok := attrs["bundles"]; ok && value != nil {
		n.bundleNames, _ = group.StringSlice(value)
		sort.Strings(n.bundleNames)
	}
	if value, ok := attrs["metadata"]; ok && value != nil {
		n.metadata = value.(map[string]interface{})
	}
	return n, nil
}

// SetRegistry injects the back-reference to the registry that owns this
// node. It must be called exactly once, before any membership or digest
// query.
func (n *Node) SetRegistry(registry group.Registry) {
	n.registry = registry
}

// Name returns the node's unique name.
func (n *Node) Name() string {
	return n.name
}

// Hostname returns the address used to reach the node. Defaults to the
// node name.
func (n *Node) Hostname() string {
	return n.hostname
}

// ExplicitGroupNames returns the group names listed in the node's own
// configuration, before pattern or hierarchy expansion.
func (n *Node) ExplicitGroupNames() []string {
	return n.groupNames
}

// Metadata returns the node's own metadata mapping.
func (n *Node) Metadata() map[string]interface{} {
	return n.metadata
}

func (n *Node) String() string {
	return n.name
}

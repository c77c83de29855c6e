package node

import (
	"fmt"
	"sort"

	"drover/internal/group"
	"drover/pkg/statehash"
)

func (n *Node) mustRegistry() group.Registry {
	if n.registry == nil {
		panic(fmt.Sprintf("node '%s' queried before SetRegistry", n.name))
	}
	return n.registry
}

// GroupNames returns the sorted names of every group this node belongs
// to: explicitly listed groups, groups whose member patterns match the
// node name, and every group above those in the hierarchy. Memoized per
// instance.
func (n *Node) GroupNames() ([]string, error) {
	if n.cachedGroupNames != nil {
		return n.cachedGroupNames, nil
	}

	direct := map[string]bool{}
	for _, name := range n.groupNames {
		if _, err := n.mustRegistry().GetGroup(name); err != nil {
			return nil, fmt.Errorf("node '%s': %w", n.name, err)
		}
		direct[name] = true
	}
	for _, g := range n.mustRegistry().Groups() {
		if g.MatchesMember(n.name) {
			direct[g.Name()] = true
		}
	}

	// A node in a subgroup is also in every group above it, so pull in
	// each group whose closure reaches one of the direct memberships.
	all := map[string]bool{}
	for name := range direct {
		all[name] = true
	}
	for _, g := range n.mustRegistry().Groups() {
		if all[g.Name()] {
			continue
		}
		subNames, err := g.SubgroupNames()
		if err != nil {
			return nil, err
		}
		for _, subName := range subNames {
			if direct[subName] {
				all[g.Name()] = true
				break
			}
		}
	}

	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	n.cachedGroupNames = names
	return names, nil
}

// Groups resolves GroupNames to Group objects, sorted by name.
func (n *Node) Groups() ([]*group.Group, error) {
	names, err := n.GroupNames()
	if err != nil {
		return nil, err
	}
	groups := make([]*group.Group, 0, len(names))
	for _, name := range names {
		g, err := n.mustRegistry().GetGroup(name)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// InGroup reports whether the node is a member of the named group.
func (n *Node) InGroup(groupName string) (bool, error) {
	names, err := n.GroupNames()
	if err != nil {
		return false, err
	}
	for _, name := range names {
		if name == groupName {
			return true, nil
		}
	}
	return false, nil
}

// ResolvedAttrs returns the node's generic attributes after override
// resolution: the node's own value wins, then the node's groups walked
// in name order, then the documented defaults.
func (n *Node) ResolvedAttrs() (group.ResolvedAttributes, error) {
	resolved := group.DefaultAttributes()
	groups, err := n.Groups()
	if err != nil {
		return resolved, err
	}

	// Later sources override earlier ones, so apply groups in reverse
	// name order and the node's own attributes last.
	for i := len(groups) - 1; i >= 0; i-- {
		applyAttrs(&resolved, groups[i].Attrs())
	}
	applyAttrs(&resolved, n.attrs)
	return resolved, nil
}

func applyAttrs(resolved *group.ResolvedAttributes, attrs group.Attributes) {
	if attrs.CmdWrapperInner != nil {
		resolved.CmdWrapperInner = *attrs.CmdWrapperInner
	}
	if attrs.CmdWrapperOuter != nil {
		resolved.CmdWrapperOuter = *attrs.CmdWrapperOuter
	}
	if attrs.Dummy != nil {
		resolved.Dummy = *attrs.Dummy
	}
	if attrs.KubectlContext != nil {
		resolved.KubectlContext = *attrs.KubectlContext
	}
	if attrs.LockingNode != nil {
		resolved.LockingNode = *attrs.LockingNode
	}
	if attrs.OS != nil {
		resolved.OS = *attrs.OS
	}
	if attrs.OSVersion != nil {
		resolved.OSVersion = attrs.OSVersion
	}
	if attrs.UseShadowPasswords != nil {
		resolved.UseShadowPasswords = *attrs.UseShadowPasswords
	}
}

// Bundles returns the sorted union of the node's own bundles and the
// bundles of every group it belongs to.
func (n *Node) Bundles() ([]string, error) {
	groups, err := n.Groups()
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var bundles []string
	for _, name := range n.bundleNames {
		if !seen[name] {
			seen[name] = true
			bundles = append(bundles, name)
		}
	}
	for _, g := range groups {
		for _, name := range g.BundleNames() {
			if !seen[name] {
				seen[name] = true
				bundles = append(bundles, name)
			}
		}
	}
	sort.Strings(bundles)
	return bundles, nil
}

// StateDigest returns a deterministic fingerprint of the node's resolved
// configuration view.
func (n *Node) StateDigest() (string, error) {
	resolved, err := n.ResolvedAttrs()
	if err != nil {
		return "", err
	}
	bundles, err := n.Bundles()
	if err != nil {
		return "", err
	}
	return statehash.Digest(map[string]interface{}{
		"bundles":              bundles,
		"cmd_wrapper_inner":    resolved.CmdWrapperInner,
		"cmd_wrapper_outer":    resolved.CmdWrapperOuter,
		"dummy":                resolved.Dummy,
		"hostname":             n.hostname,
		"kubectl_context":      resolved.KubectlContext,
		"locking_node":         resolved.LockingNode,
		"os":                   resolved.OS,
		"os_version":           resolved.OSVersion,
		"use_shadow_passwords": resolved.UseShadowPasswords,
	})
}

// MetadataDigest returns a deterministic fingerprint of the node's own
// metadata mapping. Metadata merging across groups is out of scope here;
// the group layer digests per-node metadata as supplied.
func (n *Node) MetadataDigest() (string, error) {
	return statehash.Digest(n.metadata)
}

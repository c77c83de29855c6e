package group

import (
	"errors"
	"sort"
)

// subgroupNamesFromPatterns expands the group's subgroup patterns against
// every other group in the registry. A group never matches its own
// patterns against itself.
func (g *Group) subgroupNamesFromPatterns() []string {
	if len(g.subgroupPatterns) == 0 {
		return nil
	}
	var names []string
	for _, candidate := range g.mustRegistry().Groups() {
		if candidate.name == g.name {
			continue
		}
		for _, pattern := range g.subgroupPatterns {
			if pattern.MatchString(candidate.name) {
				names = append(names, candidate.name)
				break
			}
		}
	}
	return names
}

// candidateSubgroupNames returns the deduplicated union of the explicit
// and pattern-derived subgroup names, sorted for deterministic traversal.
func (g *Group) candidateSubgroupNames() []string {
	seen := map[string]bool{}
	var names []string
	for _, name := range g.immediateSubgroupNames {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, name := range g.subgroupNamesFromPatterns() {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// collectSubgroupNames recursively gathers the names of all groups below
// g while checking for reference loops.
//
// path holds the group names on the current recursion stack, from the
// resolution root down to and including g. A candidate name that already
// appears on the path proves a cycle; the diagnostic chain is the path
// sliced from the first occurrence of that name, with the name appended
// again to close the loop. Every group except the root contributes its
// own name to the result, which is how nested descendants register
// themselves while the root stays excluded (its name seeds the path).
func (g *Group) collectSubgroupNames(path []string) ([]string, error) {
	var collected []string
	for _, name := range g.candidateSubgroupNames() {
		if at := indexOf(path, name); at >= 0 {
			chain := make([]string, 0, len(path)-at+1)
			chain = append(chain, path[at:]...)
			chain = append(chain, name)
			return nil, &SubgroupLoopError{Group: name, Chain: chain}
		}

		sub, err := g.mustRegistry().GetGroup(name)
		if err != nil {
			var notFound *NoSuchGroupError
			if errors.As(err, &notFound) {
				return nil, &MissingSubgroupError{Group: g.name, Subgroup: name}
			}
			return nil, err
		}
		below, err := sub.collectSubgroupNames(append(path, name))
		if err != nil {
			return nil, err
		}
		collected = append(collected, below...)
	}
	if g.name != path[0] {
		collected = append(collected, g.name)
	}
	return collected, nil
}

// SubgroupNames returns the deduplicated, sorted names of every group in
// g's transitive subgroup closure. The result never contains g's own
// name; a cycle back to g fails with a SubgroupLoopError instead. The
// result is memoized for the lifetime of the instance.
func (g *Group) SubgroupNames() ([]string, error) {
	if g.cachedSubgroupNames != nil {
		return g.cachedSubgroupNames, nil
	}
	names, err := g.collectSubgroupNames([]string{g.name})
	if err != nil {
		return nil, err
	}
	g.cachedSubgroupNames = dedupeSorted(names)
	return g.cachedSubgroupNames, nil
}

// Subgroups resolves the transitive subgroup closure to Group objects,
// sorted by name.
func (g *Group) Subgroups() ([]*Group, error) {
	names, err := g.SubgroupNames()
	if err != nil {
		return nil, err
	}
	return g.resolveNames(names)
}

// ImmediateSubgroups resolves only the explicit and pattern-derived
// subgroup names, without any transitive walk or cycle check.
func (g *Group) ImmediateSubgroups() ([]*Group, error) {
	return g.resolveNames(g.candidateSubgroupNames())
}

func (g *Group) resolveNames(names []string) ([]*Group, error) {
	groups := make([]*Group, 0, len(names))
	for _, name := range names {
		sub, err := g.mustRegistry().GetGroup(name)
		if err != nil {
			var notFound *NoSuchGroupError
			if errors.As(err, &notFound) {
				return nil, &MissingSubgroupError{Group: g.name, Subgroup: name}
			}
			return nil, err
		}
		groups = append(groups, sub)
	}
	SortGroups(groups)
	return groups, nil
}

// ParentGroups returns every group in the registry whose transitive
// subgroup closure contains g, sorted by name.
func (g *Group) ParentGroups() ([]*Group, error) {
	var parents []*Group
	for _, candidate := range g.mustRegistry().Groups() {
		names, err := candidate.SubgroupNames()
		if err != nil {
			return nil, err
		}
		if indexOf(names, g.name) >= 0 {
			parents = append(parents, candidate)
		}
	}
	SortGroups(parents)
	return parents, nil
}

// ImmediateParentGroups returns every group whose immediate subgroups
// (explicit or pattern-derived) contain g, sorted by name.
func (g *Group) ImmediateParentGroups() ([]*Group, error) {
	var parents []*Group
	for _, candidate := range g.mustRegistry().Groups() {
		if indexOf(candidate.candidateSubgroupNames(), g.name) >= 0 {
			parents = append(parents, candidate)
		}
	}
	SortGroups(parents)
	return parents, nil
}

// Nodes returns every node in the registry that is a member of this
// group, in registry (name-sorted) order. Membership evaluation is owned
// by the node layer. The result is memoized per instance.
func (g *Group) Nodes() ([]Node, error) {
	if g.nodesCached {
		return g.cachedNodes, nil
	}
	var members []Node
	for _, node := range g.mustRegistry().Nodes() {
		in, err := node.InGroup(g.name)
		if err != nil {
			return nil, err
		}
		if in {
			members = append(members, node)
		}
	}
	g.cachedNodes = members
	g.nodesCached = true
	return members, nil
}

func indexOf(names []string, name string) int {
	for i, candidate := range names {
		if candidate == name {
			return i
		}
	}
	return -1
}

func dedupeSorted(names []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(names))
	for _, name := range names {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

package repo

import (
	"fmt"
	"sort"

	"drover/internal/group"
	"drover/internal/node"
)

// Repo owns the canonical group and node collections. It implements
// group.Registry.
type Repo struct {
	path   string
	groups map[string]*group.Group
	nodes  map[string]*node.Node
}

// New returns an empty Repo. Entities are added with AddGroup and
// AddNode; most callers should use Load instead.
func New(path string) *Repo {
	return &Repo{
		path:   path,
		groups: make(map[string]*group.Group),
		nodes:  make(map[string]*node.Node),
	}
}

// Path returns the configuration directory this Repo was built from.
func (r *Repo) Path() string {
	return r.path
}

// AddGroup registers a group and injects the registry back-reference.
// Duplicate names are an error.
func (r *Repo) AddGroup(g *group.Group) error {
	if _, exists := r.groups[g.Name()]; exists {
		return fmt.Errorf("duplicate group '%s'", g.Name())
	}
	g.SetRegistry(r)
	r.groups[g.Name()] = g
	return nil
}

// AddNode registers a node and injects the registry back-reference.
// Duplicate names are an error.
func (r *Repo) AddNode(n *node.Node) error {
	if _, exists := r.nodes[n.Name()]; exists {
		return fmt.Errorf("duplicate node '%s'", n.Name())
	}
	n.SetRegistry(r)
	r.nodes[n.Name()] = n
	return nil
}

// GetGroup returns the group with the given name, or a
// *group.NoSuchGroupError.
func (r *Repo) GetGroup(name string) (*group.Group, error) {
	g, ok := r.groups[name]
	if !ok {
		return nil, &group.NoSuchGroupError{Name: name}
	}
	return g, nil
}

// GetNode returns the node with the given name.
func (r *Repo) GetNode(name string) (*node.Node, error) {
	n, ok := r.nodes[name]
	if !ok {
		return nil, fmt.Errorf("no such node: %s", name)
	}
	return n, nil
}

// Groups returns all groups, sorted by name.
func (r *Repo) Groups() []*group.Group {
	groups := make([]*group.Group, 0, len(r.groups))
	for _, g := range r.groups {
		groups = append(groups, g)
	}
	group.SortGroups(groups)
	return groups
}

// Nodes returns all nodes as the interface consumed by the group core,
// sorted by name.
func (r *Repo) Nodes() []group.Node {
	nodes := r.NodeList()
	out := make([]group.Node, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}
	return out
}

// NodeList returns all nodes as their concrete type, sorted by name.
func (r *Repo) NodeList() []*node.Node {
	nodes := make([]*node.Node, 0, len(r.nodes))
	for _, n := range r.nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Name() < nodes[j].Name()
	})
	return nodes
}

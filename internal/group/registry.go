package group

// Registry is the collaborator that owns the canonical group and node
// collections. Groups hold a non-owning reference to the Registry that
// contains them; the Registry outlives every group it contains.
//
// Implementations must return name-sorted slices from Groups and Nodes
// so that derived views are deterministic, and must not mutate their
// collections while resolution is in progress.
type Registry interface {
	// GetGroup returns the group with the given name, or a
	// *NoSuchGroupError if no such group exists.
	GetGroup(name string) (*Group, error)

	// Groups returns all groups, sorted by name.
	Groups() []*Group

	// Nodes returns all nodes, sorted by name.
	Nodes() []Node
}

// Node is the managed-host abstraction consumed by the group core. The
// membership test and the per-node digests are owned by the node layer;
// the core treats them as opaque operations.
type Node interface {
	// Name returns the node's unique name.
	Name() string

	// InGroup reports whether the node is a member of the named group.
	InGroup(groupName string) (bool, error)

	// StateDigest returns a deterministic fingerprint of the node's
	// resolved configuration state.
	StateDigest() (string, error)

	// MetadataDigest returns a deterministic fingerprint of the node's
	// metadata.
	MetadataDigest() (string, error)
}

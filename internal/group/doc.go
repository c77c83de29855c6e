// Package group implements the group hierarchy core of drover.
//
// A Group is a named collection of nodes and/or other groups. Groups
// reference their subgroups either explicitly by name or by regular
// expression patterns that are expanded against the registry at
// resolution time. The package resolves the transitive subgroup closure,
// detects and diagnoses reference cycles, and computes deterministic
// content hashes used for configuration-drift detection.
//
// # Hierarchy Resolution
//
// The subgroup relation, viewed as a directed graph over group names,
// must be acyclic. Construction does not enforce this: cycles are
// discovered lazily on the first closure computation and reported with
// the minimal cyclic name chain (for example "a -> b -> a"). Resolution
// walks the graph recursively, keeping the names visited on the current
// recursion stack; a candidate name that is already on the stack proves
// a cycle. Recursion depth is bounded by the number of groups in the
// registry, since a name can appear on the stack at most once.
//
// # Registry Contract
//
// Groups hold a non-owning back-reference to the Registry that contains
// them, injected via SetRegistry after construction. All derived views
// (Subgroups, ParentGroups, Nodes, the hashes) are pure functions of the
// group's own fields and the registry's current contents. They are
// memoized per instance; the registry must not be mutated while a group
// instance is live. Configuration reloads must discard the whole
// registry and rebuild it rather than mutate it in place.
//
// # Hashing
//
// MembershipHash fingerprints the sorted member node names. StateHash
// and MetadataHash fingerprint a mapping from each member node's name to
// that node's own state or metadata digest, using a canonical key-sorted
// serialization so the result is independent of iteration order.
package group

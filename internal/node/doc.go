// Package node implements the managed-host abstraction of drover.
//
// A Node belongs to groups three ways: by listing them explicitly in its
// configuration, by having its name match a group's member patterns, and
// transitively, because membership in a subgroup implies membership in
// every group above it. Group resolution walks the registry once and is
// memoized per instance, like the group-side closures.
//
// Per-node digests (state and metadata) are the opaque inputs consumed
// by the group hashing layer. The state digest covers the node's fully
// resolved configuration view: generic attributes after override and
// default resolution, plus the bundles contributed by the node itself
// and its groups. Attribute resolution order is node override first,
// then the node's groups walked in name order, then the documented
// defaults.
package node

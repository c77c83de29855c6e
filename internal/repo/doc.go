// Package repo implements the drover registry: the owner of the
// canonical group and node collections, built from a YAML configuration
// directory.
//
// A Repo is constructed once per configuration load and never mutated
// afterwards. Derived views on groups and nodes (closures, hashes) are
// memoized per instance, so a reload must discard the whole Repo and
// build a fresh one; Watcher does exactly that when the configuration
// directory changes on disk.
//
// # Configuration Layout
//
// The configuration directory contains groups and nodes, one entity per
// file, with the filename stem as the entity name:
//
//	<config-path>/groups/<name>.yaml
//	<config-path>/nodes/<name>.yaml
//
// Alternatively, groups.yaml and nodes.yaml at the directory root may
// each hold a mapping from entity name to attributes. Both forms can be
// mixed; a name defined twice is a load error.
package repo

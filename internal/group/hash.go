package group

import "drover/pkg/statehash"

// MembershipHash returns a deterministic digest of the sorted member
// node names. It is independent of registry iteration order and changes
// exactly when the set of member names changes.
func (g *Group) MembershipHash() (string, error) {
	nodes, err := g.Nodes()
	if err != nil {
		return "", err
	}
	names := make([]string, 0, len(nodes))
	for _, node := range nodes {
		names = append(names, node.Name())
	}
	return statehash.DigestNames(names), nil
}

// stateDict maps each member node's name to that node's own state
// digest. Memoized per instance, like the closures.
func (g *Group) stateDict() (map[string]string, error) {
	if g.cachedStateDict != nil {
		return g.cachedStateDict, nil
	}
	nodes, err := g.Nodes()
	if err != nil {
		return nil, err
	}
	dict := make(map[string]string, len(nodes))
	for _, node := range nodes {
		digest, err := node.StateDigest()
		if err != nil {
			return nil, err
		}
		dict[node.Name()] = digest
	}
	g.cachedStateDict = dict
	return dict, nil
}

// StateHash returns a deterministic digest of the mapping from each
// member node's name to that node's state digest. Two registries with
// identical membership and per-node state hash identically regardless of
// iteration order.
func (g *Group) StateHash() (string, error) {
	dict, err := g.stateDict()
	if err != nil {
		return "", err
	}
	return statehash.DigestPairs(dict), nil
}

// MetadataHash is shaped like StateHash but digests each member node's
// metadata digest instead of its state digest.
func (g *Group) MetadataHash() (string, error) {
	nodes, err := g.Nodes()
	if err != nil {
		return "", err
	}
	dict := make(map[string]string, len(nodes))
	for _, node := range nodes {
		digest, err := node.MetadataDigest()
		if err != nil {
			return "", err
		}
		dict[node.Name()] = digest
	}
	return statehash.DigestPairs(dict), nil
}

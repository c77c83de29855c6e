package group

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// fakeNode is a canned Node implementation for hashing tests.
type fakeNode struct {
	name   string
	groups map[string]bool
	state  string
	meta   string
}

func (n *fakeNode) Name() string { return n.name }

func (n *fakeNode) InGroup(groupName string) (bool, error) {
	return n.groups[groupName], nil
}

func (n *fakeNode) StateDigest() (string, error) { return n.state, nil }

func (n *fakeNode) MetadataDigest() (string, error) { return n.meta, nil }

func member(name, state, meta string, groups ...string) *fakeNode {
	in := map[string]bool{}
	for _, g := range groups {
		in[g] = true
	}
	return &fakeNode{name: name, groups: in, state: state, meta: meta}
}

func hashFixture(t *testing.T, nodes ...Node) *Group {
	t.Helper()
	r := newFakeRegistry()
	g := r.addGroup(t, "g", nil)
	r.nodes = nodes
	return g
}

func TestNodes_DelegatesMembership(t *testing.T) {
	g := hashFixture(t,
		member("n1", "h1", "m1", "g"),
		member("n2", "h2", "m2", "other"),
		member("n3", "h3", "m3", "g"),
	)

	nodes, err := g.Nodes()
	require.NoError(t, err)
	names := make([]string, len(nodes))
	for i, n := range nodes {
		names[i] = n.Name()
	}
	assert.Equal(t, []string{"n1", "n3"}, names)
}

func TestMembershipHash_IterationOrderIndependent(t *testing.T) {
	forward := hashFixture(t,
		member("n1", "h1", "m1", "g"),
		member("n2", "h2", "m2", "g"),
	)
	reversed := hashFixture(t,
		member("n2", "h2", "m2", "g"),
		member("n1", "h1", "m1", "g"),
	)

	a, err := forward.MembershipHash()
	require.NoError(t, err)
	b, err := reversed.MembershipHash()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestMembershipHash_ChangesWithMembership(t *testing.T) {
	two := hashFixture(t,
		member("n1", "h1", "m1", "g"),
		member("n2", "h2", "m2", "g"),
	)
	three := hashFixture(t,
		member("n1", "h1", "m1", "g"),
		member("n2", "h2", "m2", "g"),
		member("n3", "h3", "m3", "g"),
	)

	a, err := two.MembershipHash()
	require.NoError(t, err)
	b, err := three.MembershipHash()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestStateHash_IterationOrderIndependent(t *testing.T) {
	forward := hashFixture(t,
		member("n1", "h1", "m1", "g"),
		member("n2", "h2", "m2", "g"),
	)
	reversed := hashFixture(t,
		member("n2", "h2", "m2", "g"),
		member("n1", "h1", "m1", "g"),
	)

	a, err := forward.StateHash()
	require.NoError(t, err)
	b, err := reversed.StateHash()
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestStateHash_ChangesWithSingleDigest(t *testing.T) {
	before := hashFixture(t,
		member("n1", "h1", "m1", "g"),
		member("n2", "h2", "m2", "g"),
	)
	after := hashFixture(t,
		member("n1", "h1-changed", "m1", "g"),
		member("n2", "h2", "m2", "g"),
	)

	a, err := before.StateHash()
	require.NoError(t, err)
	b, err := after.StateHash()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestMetadataHash_UsesMetadataDigests(t *testing.T) {
	sameState := hashFixture(t,
		member("n1", "h1", "m1", "g"),
	)
	changedMeta := hashFixture(t,
		member("n1", "h1", "m1-changed", "g"),
	)

	a, err := sameState.MetadataHash()
	require.NoError(t, err)
	b, err := changedMeta.MetadataHash()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	// State hash must be blind to metadata changes.
	sa, err := sameState.StateHash()
	require.NoError(t, err)
	sb, err := changedMeta.StateHash()
	require.NoError(t, err)
	assert.Equal(t, sa, sb)
}

func TestHashes_EmptyGroup(t *testing.T) {
	g := hashFixture(t)

	membership, err := g.MembershipHash()
	require.NoError(t, err)
	state, err := g.StateHash()
	require.NoError(t, err)
	assert.NotEmpty(t, membership)
	assert.NotEmpty(t, state)
}

func rapidHashFixture(nodes []Node) *Group {
	r := newFakeRegistry()
	g, _ := New("g", nil)
	g.SetRegistry(r)
	r.groups["g"] = g
	r.nodes = nodes
	return g
}

func TestStateHash_PermutationInvariance(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		count := rapid.IntRange(1, 8).Draw(t, "count")
		nodes := make([]Node, count)
		for i := 0; i < count; i++ {
			name := fmt.Sprintf("%s%d", rapid.StringMatching(`[a-z]{1,6}`).Draw(t, "name"), i)
			state := rapid.StringMatching(`[0-9a-f]{8}`).Draw(t, "state")
			nodes[i] = member(name, state, "meta", "g")
		}
		perm := rapid.Permutation(nodes).Draw(t, "perm")

		original := rapidHashFixture(nodes)
		permuted := rapidHashFixture(perm)

		a, err := original.StateHash()
		if err != nil {
			t.Fatal(err)
		}
		b, err := permuted.StateHash()
		if err != nil {
			t.Fatal(err)
		}
		if a != b {
			t.Fatalf("state hash not permutation invariant: %s != %s", a, b)
		}

		am, err := original.MembershipHash()
		if err != nil {
			t.Fatal(err)
		}
		bm, err := permuted.MembershipHash()
		if err != nil {
			t.Fatal(err)
		}
		if am != bm {
			t.Fatalf("membership hash not permutation invariant: %s != %s", am, bm)
		}
	})
}

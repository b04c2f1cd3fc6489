package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/omnigen/omni"
	"github.com/broady/omnigen/omni/traverse"
	"github.com/broady/omnigen/testutil"
)

func objectA() *omni.Object {
	return testutil.NewObject("A").Prop("x", testutil.Prim(omni.Integer)).Build()
}

func TestHashDeterministic(t *testing.T) {
	a := objectA()
	h := NewHasher()
	first := h.Hash(a, nil)
	assert.Equal(t, first, h.Hash(a, nil))
	assert.Equal(t, first, StructuralHash(a))
}

func TestHashStructuralEquality(t *testing.T) {
	assert.Equal(t, StructuralHash(objectA()), StructuralHash(objectA()))

	b := testutil.NewObject("B").Prop("x", testutil.Prim(omni.Integer)).Build()
	assert.NotEqual(t, StructuralHash(objectA()), StructuralHash(b))

	d := testutil.NewObject("A").Prop("x", testutil.Prim(omni.Double)).Build()
	assert.NotEqual(t, StructuralHash(objectA()), StructuralHash(d))
}

func TestHashIgnoresDebugAndOwner(t *testing.T) {
	a1, a2 := objectA(), objectA()
	a2.Meta().Debug = []string{"parsed from file.json"}
	a2.Properties[0].Debug = []string{"line 4"}
	a2.Properties[0].Owner = nil
	assert.Equal(t, StructuralHash(a1), StructuralHash(a2))
}

func TestHashFirstCandidateName(t *testing.T) {
	a1 := objectA()
	a2 := objectA()
	a2.Name = omni.OneOfNames{omni.LiteralName("A"), omni.LiteralName("Alternative")}
	assert.Equal(t, StructuralHash(a1), StructuralHash(a2))

	// Only the first candidate counts, even when a later one would match.
	a3 := objectA()
	a3.Name = omni.OneOfNames{omni.LiteralName("Other"), omni.LiteralName("A")}
	assert.NotEqual(t, StructuralHash(a1), StructuralHash(a3))
}

func TestHashParentSensitive(t *testing.T) {
	h := NewHasher()
	p1 := testutil.NewObject("P1").Build()
	p2 := testutil.NewObject("P2").Build()
	h.Hash(p1, nil)
	h.Hash(p2, nil)

	a := objectA()
	viaP1 := h.Hash(a, p1)
	viaP2 := h.Hash(a, p2)
	assert.NotEqual(t, viaP1, viaP2)

	unhashedParent := testutil.NewObject("P3").Build()
	assert.Equal(t, NewHasher().Hash(objectA(), nil), h.Hash(a, unhashedParent))
}

func TestHashMemoSubstitution(t *testing.T) {
	h := NewHasher()
	x := testutil.Prim(omni.Integer)
	h.Hash(x, nil)
	d, ok := h.Memoized(x)
	require.True(t, ok)
	assert.NotEmpty(t, d)

	// A shared child hashed in context hashes its container differently.
	parent := testutil.NewObject("Ctx").Build()
	h.Hash(parent, nil)
	h.Hash(x, parent)
	a := testutil.NewObject("A").Prop("x", x).Build()
	assert.NotEqual(t, StructuralHash(objectA()), h.Hash(a, nil))
}

func TestHashCycle(t *testing.T) {
	node := testutil.NewObject("Node").Build()
	omni.AddProperty(node, omni.NewProperty("next", node))
	other := testutil.NewObject("Node").Build()
	omni.AddProperty(other, omni.NewProperty("next", other))
	assert.Equal(t, StructuralHash(node), StructuralHash(other))
}

func TestGetReplacementsSimilar(t *testing.T) {
	a1, a2 := objectA(), objectA()
	m1, m2 := testutil.Model("m1", a1), testutil.Model("m2", a2)

	got := GetReplacements(m1, m2)
	require.Len(t, got, 2)
	assert.Equal(t, Replacement{Root: m1, From: a1, To: a1}, got[0])
	assert.Equal(t, Replacement{Root: m2, From: a2, To: a1}, got[1])
}

func TestGetReplacementsEmptyObjects(t *testing.T) {
	a1, a2 := testutil.NewObject("A").Build(), testutil.NewObject("A").Build()
	got := GetReplacements(testutil.Model("m1", a1), testutil.Model("m2", a2))
	require.Len(t, got, 2)
	assert.Same(t, a1, got[1].To)
}

func TestGetReplacementsSameIdentity(t *testing.T) {
	m := testutil.Model("m", objectA())
	assert.Empty(t, GetReplacements(m, m))
}

func TestGetReplacementsDifferent(t *testing.T) {
	tests := []struct {
		name string
		a, b *omni.Object
	}{
		{"property names", objectA(), testutil.NewObject("A").Prop("y", testutil.Prim(omni.Integer)).Build()},
		{"property types", objectA(), testutil.NewObject("A").Prop("x", testutil.Prim(omni.Double)).Build()},
		{"object names", objectA(), testutil.NewObject("B").Prop("x", testutil.Prim(omni.Integer)).Build()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, GetReplacements(testutil.Model("m1", tt.a), testutil.Model("m2", tt.b)))
		})
	}
}

func TestGetReplacementsSupertypes(t *testing.T) {
	a1 := testutil.NewObject("a").Build()
	b1 := testutil.NewObject("b1").Extends(a1).Build()
	a2 := testutil.NewObject("a").Build()
	b2 := testutil.NewObject("b2").Extends(a2).Build()

	got := GetReplacements(testutil.Model("m1", b1), testutil.Model("m2", b2))
	require.Len(t, got, 2)
	assert.Same(t, a1, got[0].From)
	assert.Same(t, a2, got[1].From)
	assert.Same(t, a1, got[1].To)
}

func TestApplyReplacements(t *testing.T) {
	a1, a2 := objectA(), objectA()
	holder := testutil.NewObject("Holder").Prop("a", a2).Build()
	m1, m2 := testutil.Model("m1", a1), testutil.Model("m2", holder)

	plan := GetReplacements(m1, m2)
	require.Len(t, plan, 2)
	require.NoError(t, ApplyReplacements(plan, traverse.DefaultSwapDepth))
	assert.Same(t, a1, holder.Properties[0].Type)
	assert.Same(t, a1, m1.Types[0])
}

package composition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/omnigen/omni"
	"github.com/broady/omnigen/omni/traverse"
	"github.com/broady/omnigen/testutil"
)

func TestBuildEmpty(t *testing.T) {
	assert.Nil(t, Build(nil, nil, nil, nil))
}

func TestBuildSingletons(t *testing.T) {
	a := testutil.Prim(omni.String)
	assert.Same(t, a, Build([]omni.Type{a}, nil, nil, nil))
	assert.Same(t, a, Build(nil, nil, []omni.Type{a}, nil))

	got := Build(nil, nil, nil, a).(*omni.Composition)
	assert.Equal(t, omni.Not, got.CompositionKind)
	assert.Equal(t, []omni.Type{a}, got.Types)
}

func TestBuildScenario(t *testing.T) {
	number := testutil.Prim(omni.Number)
	str := testutil.Prim(omni.String)
	boolean := testutil.Prim(omni.Bool)
	float := testutil.Prim(omni.Float)

	got := Build(nil, []omni.Type{number}, []omni.Type{str, boolean}, float)

	outer, ok := got.(*omni.Composition)
	require.True(t, ok)
	assert.Equal(t, omni.And, outer.CompositionKind)
	require.Len(t, outer.Types, 2)

	left := outer.Types[0].(*omni.Composition)
	assert.Equal(t, omni.And, left.CompositionKind)
	require.Len(t, left.Types, 2)
	assert.Same(t, number, left.Types[0])
	xor := left.Types[1].(*omni.Composition)
	assert.Equal(t, omni.Xor, xor.CompositionKind)
	assert.Equal(t, []omni.Type{str, boolean}, xor.Types)

	not := outer.Types[1].(*omni.Composition)
	assert.Equal(t, omni.Not, not.CompositionKind)
	assert.Equal(t, []omni.Type{float}, not.Types)
}

func TestBuildAllLists(t *testing.T) {
	a, b, c, d := testutil.Prim(omni.Integer), testutil.Prim(omni.Long), testutil.Prim(omni.String), testutil.Prim(omni.Bool)
	got := Build([]omni.Type{a, b}, []omni.Type{c}, []omni.Type{d}, nil).(*omni.Composition)

	// AND[AND[OR[a,b], c], d]
	assert.Equal(t, omni.And, got.CompositionKind)
	assert.Same(t, d, got.Types[1])
	inner := got.Types[0].(*omni.Composition)
	assert.Same(t, c, inner.Types[1])
	assert.Equal(t, omni.Or, inner.Types[0].(*omni.Composition).CompositionKind)
}

func TestSimplifyNestedRedundant(t *testing.T) {
	a := testutil.NewObject("A").Build()
	b := testutil.NewObject("B").Build()
	c := omni.NewComposition(omni.And, a, omni.NewComposition(omni.And, a, b))

	got, err := Simplify(c, nil, traverse.DefaultSwapDepth, nil)
	require.NoError(t, err)
	assert.Same(t, c, got)
	assert.Equal(t, []omni.Type{a, b}, c.Types)
}

func TestSimplifyDuplicates(t *testing.T) {
	a := testutil.NewObject("A").Build()
	b := testutil.NewObject("B").Build()
	c := omni.NewComposition(omni.And, a, b, a)

	_, err := Simplify(c, nil, traverse.DefaultSwapDepth, nil)
	require.NoError(t, err)
	assert.Equal(t, []omni.Type{a, b}, c.Types)
}

func TestSimplifyHierarchyReplacesAtParent(t *testing.T) {
	a := testutil.NewObject("A").Build()
	b := testutil.NewObject("B").Extends(a).Build()
	c := omni.NewComposition(omni.And, a, b)
	child := testutil.NewObject("Child").Extends(c).Build()

	got, err := Simplify(c, child, traverse.DefaultSwapDepth, nil)
	require.NoError(t, err)
	assert.Same(t, b, got)
	assert.Same(t, b, child.ExtendedBy)
}

func TestSimplifyNoParent(t *testing.T) {
	a := testutil.NewObject("A").Build()
	b := testutil.NewObject("B").Extends(a).Build()
	c := omni.NewComposition(omni.And, a, b)

	var diags omni.Diagnostics
	got, err := Simplify(c, nil, traverse.DefaultSwapDepth, &diags)
	require.NoError(t, err)
	assert.Same(t, c, got)
	assert.Equal(t, []omni.Type{b}, c.Types)
	require.Len(t, diags, 1)
	assert.Equal(t, omni.DiagCompositionNoParent, diags[0].Code)
}

func TestSimplifyIgnoresOtherKinds(t *testing.T) {
	a := testutil.NewObject("A").Build()
	c := omni.NewComposition(omni.Or, a, a)
	got, err := Simplify(c, nil, 1, nil)
	require.NoError(t, err)
	assert.Same(t, c, got)
	assert.Len(t, c.Types, 2)
}

package traverse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/omnigen/omni"
	"github.com/broady/omnigen/testutil"
)

func TestBreadthFirstDepths(t *testing.T) {
	integer := testutil.Prim(omni.Integer)
	a := testutil.NewObject("A").Prop("x", integer).Build()
	b := testutil.NewObject("B").Extends(a).Prop("items", &omni.Array{Of: integer}).Build()
	model := testutil.Model("m", b)

	got := map[omni.Type][2]int{}
	BreadthFirst(testutil.Owners(model), true, func(ctx *BFSContext) bool {
		got[ctx.Type] = [2]int{ctx.TypeDepth, ctx.UseDepth}
		return true
	})

	assert.Equal(t, [2]int{0, 0}, got[b])
	assert.Equal(t, [2]int{1, 1}, got[a], "inheritance is structural")
	arr := b.Properties[0].Type
	assert.Equal(t, [2]int{0, 1}, got[arr], "properties only count as use")
	// integer is first reached through A.x, before the array element.
	assert.Equal(t, [2]int{1, 2}, got[integer])
}

func TestBreadthFirstOwnerAndParent(t *testing.T) {
	a := testutil.NewObject("A").Build()
	b := testutil.NewObject("B").Extends(a).Prop("self", a).Build()

	var owners []omni.TypeOwner
	BreadthFirst([]omni.TypeOwner{b}, false, func(ctx *BFSContext) bool {
		if ctx.Type == a {
			owners = append(owners, ctx.Owner)
			if ctx.Owner == omni.TypeOwner(b) {
				assert.Equal(t, omni.Type(b), ctx.Parent)
			} else {
				assert.Nil(t, ctx.Parent)
			}
		}
		return true
	})
	require.Len(t, owners, 2)
	assert.Equal(t, omni.TypeOwner(b), owners[0])
	assert.Equal(t, omni.TypeOwner(b.Properties[0]), owners[1])
}

func TestBreadthFirstSkipAndStop(t *testing.T) {
	leaf := testutil.Prim(omni.String)
	a := testutil.NewObject("A").Prop("s", leaf).Build()
	b := testutil.NewObject("B").Prop("a", a).Build()

	var seen []omni.Type
	BreadthFirst([]omni.TypeOwner{b}, true, func(ctx *BFSContext) bool {
		seen = append(seen, ctx.Type)
		ctx.Skip = ctx.Type == a
		return true
	})
	assert.Equal(t, []omni.Type{b, a}, seen)

	seen = nil
	BreadthFirst([]omni.TypeOwner{b}, true, func(ctx *BFSContext) bool {
		seen = append(seen, ctx.Type)
		return false
	})
	assert.Equal(t, []omni.Type{b}, seen)
}

func TestBreadthFirstCycle(t *testing.T) {
	node := testutil.NewObject("Node").Build()
	omni.AddProperty(node, omni.NewProperty("next", node))
	omni.AddProperty(node, omni.NewProperty("children", &omni.Array{Of: node}))

	for _, once := range []bool{true, false} {
		count := 0
		BreadthFirst([]omni.TypeOwner{node}, once, func(*BFSContext) bool {
			count++
			return true
		})
		assert.Less(t, count, 10, "once=%v", once)
	}
}

func TestDepthFirstSiblingRevisit(t *testing.T) {
	shared := testutil.Prim(omni.Integer)
	a := testutil.NewObject("A").Prop("x", shared).Prop("y", shared).Build()
	omni.AddProperty(a, omni.NewProperty("self", a))

	count := map[omni.Type]int{}
	w := &DepthFirst{Down: func(ctx *DFSContext) Step {
		count[ctx.Type]++
		return Continue
	}}
	require.NoError(t, w.Walk(a))
	assert.Equal(t, 2, count[shared], "shared node is revisited in sibling branches")
	assert.Equal(t, 1, count[a], "ancestor is never re-entered")

	count = map[omni.Type]int{}
	w.Once = true
	require.NoError(t, w.Walk(a))
	assert.Equal(t, 1, count[shared])
}

func TestDepthFirstUpOrder(t *testing.T) {
	leaf := testutil.Prim(omni.Bool)
	a := testutil.NewObject("A").Prop("b", leaf).Build()

	var order []string
	w := &DepthFirst{
		Down: func(ctx *DFSContext) Step { order = append(order, "down "+ctx.Type.Kind().String()); return Continue },
		Up:   func(ctx *DFSContext) { order = append(order, "up "+ctx.Type.Kind().String()) },
	}
	require.NoError(t, w.Walk(a))
	assert.Equal(t, []string{"down OBJECT", "down PRIMITIVE", "up PRIMITIVE", "up OBJECT"}, order)
}

func TestDepthFirstReplace(t *testing.T) {
	old := testutil.Prim(omni.Integer)
	replacement := testutil.Prim(omni.Long)
	a := testutil.NewObject("A").Prop("x", old).Build()
	model := testutil.Model("m", a)

	var visited []omni.Type
	w := &DepthFirst{Down: func(ctx *DFSContext) Step {
		visited = append(visited, ctx.Type)
		if ctx.Type == old {
			return ReplaceWith(replacement)
		}
		return Continue
	}}
	require.NoError(t, w.Walk(model))
	assert.Same(t, replacement, a.Properties[0].Type)
	assert.Equal(t, []omni.Type{a, old, replacement}, visited)
}

func TestDepthFirstSkip(t *testing.T) {
	a := testutil.NewObject("A").Prop("x", testutil.Prim(omni.Integer)).Build()
	n := 0
	w := &DepthFirst{Down: func(*DFSContext) Step { n++; return Skip }}
	require.NoError(t, w.Walk(a))
	assert.Equal(t, 1, n)
}

func TestSwapTypeReturnsReplacementAtParent(t *testing.T) {
	a := testutil.NewObject("A").Build()
	b := testutil.NewObject("B").Build()
	got, err := SwapType(a, a, b, 1)
	require.NoError(t, err)
	assert.Same(t, b, got)
}

func TestSwapTypeMissLeavesParentUnchanged(t *testing.T) {
	needle := testutil.Prim(omni.Integer)
	deep := testutil.NewObject("Deep").Prop("v", needle).Build()
	mid := testutil.NewObject("Mid").Prop("d", deep).Build()
	top := testutil.NewObject("Top").Prop("m", mid).Build()
	replacement := testutil.Prim(omni.Long)

	got, err := SwapType(top, needle, replacement, 2)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Same(t, needle, deep.Properties[0].Type)

	got, err = SwapType(top, testutil.Prim(omni.Bool), replacement, 10)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = SwapType(top, needle, replacement, 3)
	require.NoError(t, err)
	assert.Same(t, replacement, deep.Properties[0].Type)
}

func TestSwapTypeComposition(t *testing.T) {
	a, b, c := testutil.NewObject("A").Build(), testutil.NewObject("B").Build(), testutil.NewObject("C").Build()
	comp := omni.NewComposition(omni.Or, a, b)
	_, err := SwapType(comp, b, c, 1)
	require.NoError(t, err)
	assert.Equal(t, []omni.Type{a, c}, comp.Types)
}

func TestSwapTypeExtendedBy(t *testing.T) {
	a := testutil.NewObject("A").Build()
	b := testutil.NewObject("B").Extends(a).Build()

	// Not a supertype: silently skipped.
	_, err := SwapType(b, a, testutil.Prim(omni.String), 1)
	require.NoError(t, err)
	assert.Same(t, a, b.ExtendedBy)

	c := testutil.NewObject("C").Build()
	_, err = SwapType(b, a, c, 1)
	require.NoError(t, err)
	assert.Same(t, c, b.ExtendedBy)
}

func TestSwapTypeExtendedByThroughComposition(t *testing.T) {
	a := testutil.NewObject("A").Build()
	x := testutil.NewObject("X").Build()
	b := testutil.NewObject("B").Extends(omni.NewComposition(omni.And, a, x)).Build()
	c := testutil.NewObject("C").Build()

	// The composition wrapper does not consume depth.
	_, err := SwapType(b, a, c, 1)
	require.NoError(t, err)
	assert.Equal(t, []omni.Type{c, x}, b.ExtendedBy.(*omni.Composition).Types)
}

func TestSwapTypeInvariantErrors(t *testing.T) {
	a := testutil.NewObject("A").Build()
	iface := &omni.Interface{Of: a}
	_, err := SwapType(iface, a, testutil.Prim(omni.String), 1)
	var inv *omni.InvariantError
	require.ErrorAs(t, err, &inv)
	assert.Contains(t, err.Error(), "STRING")

	src := &omni.GenericSource{Of: a}
	target := &omni.GenericTarget{Source: src}
	_, err = SwapType(target, src, a, 1)
	require.ErrorAs(t, err, &inv)
	assert.Same(t, src, target.Source)
}

func TestSwapTypeInModel(t *testing.T) {
	a := testutil.NewObject("A").Build()
	holder := testutil.NewObject("Holder").Prop("a", a).Prop("list", &omni.Array{Of: a}).Build()
	out := &omni.Output{Type: a}
	model := testutil.Model("m", a, holder)
	model.Endpoints = []*omni.Endpoint{{Name: "get", Responses: []*omni.Output{out}}}

	a2 := testutil.NewObject("A").Build()
	require.NoError(t, SwapTypeInModel(model, a, a2, DefaultSwapDepth))

	assert.Same(t, a2, model.Types[0])
	assert.Same(t, a2, holder.Properties[0].Type)
	assert.Same(t, a2, holder.Properties[1].Type.(*omni.Array).Of)
	assert.Same(t, a2, out.Type)
}

func TestSuperTypeToSubTypes(t *testing.T) {
	root := testutil.NewObject("Root").Build()
	mid := testutil.NewObject("Mid").Extends(root).Build()
	leaf1 := testutil.NewObject("Leaf1").Extends(mid).Build()
	other := testutil.NewObject("Other").Build()
	leaf2 := testutil.NewObject("Leaf2").Extends(omni.NewComposition(omni.And, mid, other)).Build()
	model := testutil.Model("m", leaf1, leaf2)

	subs := SuperTypeToSubTypes(model)
	assert.Equal(t, []omni.Type{leaf1, leaf2}, subs.Of(mid))
	assert.Equal(t, []omni.Type{leaf2}, subs.Of(other))
	assert.Equal(t, []omni.Type{mid}, subs.Of(root))

	idx := func(t omni.Type) int {
		for i, s := range subs.Supers {
			if s == t {
				return i
			}
		}
		return -1
	}
	assert.Less(t, idx(root), idx(mid))

	assert.ElementsMatch(t, []omni.Type{mid, leaf1, leaf2}, TypesThatInheritFrom(root, model))
	assert.Equal(t, []omni.Type{mid, other}, SubTypeToSuperTypes(model)[leaf2])
}

func TestAllExportableTypes(t *testing.T) {
	a := testutil.NewObject("A").Prop("x", testutil.Prim(omni.Integer)).Prop("n", &omni.Null{}).Build()
	model := testutil.Model("m", a)
	assert.Equal(t, []omni.Type{a}, AllExportableTypes(model))
}

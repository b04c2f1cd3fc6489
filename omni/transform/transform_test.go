package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/omnigen/omni"
	"github.com/broady/omnigen/omni/equality"
	"github.com/broady/omnigen/testutil"
)

func genericOptions() Options {
	return Options{
		GenerifyTypes:           true,
		PrimitiveGenerification: PrimitiveWrapOrBox,
		PrimitiveGenerics:       true,
	}
}

func TestGenericsHoisting(t *testing.T) {
	b := testutil.NewObject("B").Build()
	a := testutil.NewObject("A").Extends(b).Prop("x", testutil.Prim(omni.Double)).Build()
	c := testutil.NewObject("C").Extends(b).Prop("x", testutil.Prim(omni.Integer)).Build()
	model := testutil.Model("m", a, b, c)

	res, err := Generics(model, genericOptions())
	require.NoError(t, err)
	require.Len(t, res.Mappings, 1)

	require.Len(t, b.Properties, 1)
	x := b.Properties[0]
	assert.Equal(t, "x", x.Name)
	id, ok := x.Type.(*omni.GenericSourceIdentifier)
	require.True(t, ok)
	assert.Equal(t, "T", id.PlaceholderName)
	require.NotNil(t, id.UpperBound)
	assert.Equal(t, omni.Double, id.UpperBound.(*omni.Primitive).PrimitiveKind)

	ta, ok := a.ExtendedBy.(*omni.GenericTarget)
	require.True(t, ok)
	tc, ok := c.ExtendedBy.(*omni.GenericTarget)
	require.True(t, ok)
	assert.NotSame(t, ta, tc)
	assert.Same(t, ta.Source, tc.Source)
	assert.Same(t, b, ta.Source.Of)
	assert.Empty(t, a.Properties)
	assert.Empty(t, c.Properties)

	require.Len(t, ta.TargetIdentifiers, 1)
	assert.Same(t, id, ta.TargetIdentifiers[0].SourceIdentifier)
	assert.Equal(t, omni.Double, ta.TargetIdentifiers[0].Type.(*omni.Primitive).PrimitiveKind)
	assert.Equal(t, omni.Integer, tc.TargetIdentifiers[0].Type.(*omni.Primitive).PrimitiveKind)

	assert.Same(t, ta.Source, model.Types[1], "references to the supertype use the generic source")

	m := res.Mappings[0]
	assert.Same(t, b, m.Supertype)
	assert.Same(t, ta.Source, m.Source)
	require.Len(t, m.Targets, 2)
	assert.Same(t, a, m.Targets[0].Subtype)
	assert.Same(t, ta, m.Targets[0].Target)
}

func TestGenericsDisabled(t *testing.T) {
	b := testutil.NewObject("B").Build()
	a := testutil.NewObject("A").Extends(b).Prop("x", testutil.Prim(omni.Double)).Build()
	c := testutil.NewObject("C").Extends(b).Prop("x", testutil.Prim(omni.Integer)).Build()
	model := testutil.Model("m", a, b, c)

	res, err := Generics(model, Options{})
	require.NoError(t, err)
	assert.Empty(t, res.Mappings)
	assert.Same(t, b, a.ExtendedBy)
	assert.Len(t, a.Properties, 1)
}

func TestGenericsSameTypesNotHoisted(t *testing.T) {
	b := testutil.NewObject("B").Build()
	a := testutil.NewObject("A").Extends(b).Prop("x", testutil.Prim(omni.String)).Build()
	c := testutil.NewObject("C").Extends(b).Prop("x", testutil.Prim(omni.String)).Build()
	model := testutil.Model("m", a, b, c)

	res, err := Generics(model, genericOptions())
	require.NoError(t, err)
	assert.Empty(t, res.Mappings)
	assert.Same(t, b, a.ExtendedBy)
}

func TestGenericsPlaceholderPerProperty(t *testing.T) {
	b := testutil.NewObject("B").Build()
	a := testutil.NewObject("A").Extends(b).
		Prop("value", testutil.Prim(omni.Double)).
		Prop("key", testutil.Prim(omni.String)).Build()
	c := testutil.NewObject("C").Extends(b).
		Prop("value", testutil.Prim(omni.Integer)).
		Prop("key", testutil.Prim(omni.Char)).Build()
	model := testutil.Model("m", a, b, c)

	res, err := Generics(model, genericOptions())
	require.NoError(t, err)
	require.Len(t, res.Mappings, 1)
	ids := res.Mappings[0].Source.SourceIdentifiers
	require.Len(t, ids, 2)
	assert.Equal(t, "TValue", ids[0].PlaceholderName)
	assert.Equal(t, "TKey", ids[1].PlaceholderName)
	assert.Len(t, a.ExtendedBy.(*omni.GenericTarget).TargetIdentifiers, 2)
}

func TestGenericsPrimitivePolicy(t *testing.T) {
	build := func() (*omni.Model, *omni.Object, *omni.Object) {
		b := testutil.NewObject("B").Build()
		a := testutil.NewObject("A").Extends(b).Prop("x", testutil.Prim(omni.Double)).Build()
		c := testutil.NewObject("C").Extends(b).Prop("x", testutil.Prim(omni.Integer)).Build()
		return testutil.Model("m", a, b, c), a, b
	}

	model, a, _ := build()
	opts := genericOptions()
	opts.PrimitiveGenerics = false
	opts.PrimitiveGenerification = PrimitiveAbort
	res, err := Generics(model, opts)
	require.NoError(t, err)
	assert.Empty(t, res.Mappings)
	assert.Len(t, a.Properties, 1)
	require.NotEmpty(t, res.Diagnostics)
	assert.Equal(t, omni.DiagGenericPrimitiveAbort, res.Diagnostics[0].Code)

	model, a, b := build()
	original := a.Properties[0].Type
	opts.PrimitiveGenerification = PrimitiveWrapOrBox
	res, err = Generics(model, opts)
	require.NoError(t, err)
	require.Len(t, res.Mappings, 1)
	bound := b.Properties[0].Type.(*omni.GenericSourceIdentifier).UpperBound.(*omni.Primitive)
	assert.True(t, bound.Nullable)
	arg := a.ExtendedBy.(*omni.GenericTarget).TargetIdentifiers[0].Type.(*omni.Primitive)
	assert.True(t, arg.Nullable)
	assert.False(t, original.(*omni.Primitive).Nullable, "original primitive is not mutated")
}

func TestGenericsUnrelatedTypesHaveNoBound(t *testing.T) {
	b := testutil.NewObject("B").Build()
	a := testutil.NewObject("A").Extends(b).Prop("x", testutil.Prim(omni.String)).Build()
	c := testutil.NewObject("C").Extends(b).Prop("x", testutil.Prim(omni.Bool)).Build()
	model := testutil.Model("m", a, b, c)

	res, err := Generics(model, genericOptions())
	require.NoError(t, err)
	require.Len(t, res.Mappings, 1)
	assert.Nil(t, res.Mappings[0].Source.SourceIdentifiers[0].UpperBound)
}

func TestGenericsAmbiguousFamilies(t *testing.T) {
	b := testutil.NewObject("B").Build()
	a1 := testutil.NewObject("A1").Extends(b).Prop("x", testutil.Prim(omni.Double)).Build()
	a2 := testutil.NewObject("A2").Extends(b).Prop("x", testutil.Prim(omni.Integer)).Build()
	c1 := testutil.NewObject("C1").Extends(b).Prop("y", testutil.Prim(omni.Double)).Build()
	c2 := testutil.NewObject("C2").Extends(b).Prop("y", testutil.Prim(omni.Integer)).Build()
	model := testutil.Model("m", a1, a2, c1, c2, b)

	res, err := Generics(model, genericOptions())
	require.NoError(t, err)
	assert.Empty(t, res.Mappings)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, omni.DiagGenericAmbiguousSignature, res.Diagnostics[0].Code)
	assert.Same(t, b, a1.ExtendedBy)
}

func TestWildcard(t *testing.T) {
	id := &omni.GenericSourceIdentifier{PlaceholderName: "T"}
	src := &omni.GenericSource{Of: testutil.NewObject("Box").Build(), SourceIdentifiers: []*omni.GenericSourceIdentifier{id}}
	pet := testutil.NewObject("Pet").Build()
	gt := &omni.GenericTarget{Source: src, TargetIdentifiers: []*omni.GenericTargetIdentifier{{SourceIdentifier: id, Type: pet}}}
	prim := &omni.GenericTarget{Source: src, TargetIdentifiers: []*omni.GenericTargetIdentifier{{SourceIdentifier: id, Type: testutil.Prim(omni.String)}}}

	got := wildcard(gt)
	assert.NotSame(t, gt, got)
	u, ok := got.TargetIdentifiers[0].Type.(*omni.Unknown)
	require.True(t, ok)
	assert.Same(t, pet, u.UpperBound)
	assert.Same(t, pet, gt.TargetIdentifiers[0].Type, "input is copied, not mutated")

	assert.IsType(t, &omni.Primitive{}, wildcard(prim).TargetIdentifiers[0].Type)
}

func TestElevateProperties(t *testing.T) {
	root := testutil.NewObject("Root").Build()
	a := testutil.NewObject("A").Extends(root).Required("id", testutil.Prim(omni.String)).Prop("a", testutil.Prim(omni.Bool)).Build()
	b := testutil.NewObject("B").Extends(root).Required("id", testutil.Prim(omni.String)).Prop("b", testutil.Prim(omni.Bool)).Build()
	model := testutil.Model("m", a, b)

	assert.Equal(t, 0, ElevateProperties(model, Options{}))

	n := ElevateProperties(model, Options{CompressPropertiesToAncestor: true, ElevateMinLevel: equality.FunctionMin})
	assert.Equal(t, 1, n)
	require.Len(t, root.Properties, 1)
	assert.Equal(t, "id", root.Properties[0].Name)
	assert.True(t, root.Properties[0].Required)
	assert.Same(t, root, root.Properties[0].Owner)
	assert.Len(t, a.Properties, 1)
	assert.Len(t, b.Properties, 1)
}

func TestElevatePropertiesRequiresEqualSignature(t *testing.T) {
	root := testutil.NewObject("Root").Build()
	a := testutil.NewObject("A").Extends(root).Required("id", testutil.Prim(omni.String)).Build()
	b := testutil.NewObject("B").Extends(root).Prop("id", testutil.Prim(omni.String)).Build()
	model := testutil.Model("m", a, b)

	assert.Equal(t, 0, ElevateProperties(model, Options{CompressPropertiesToAncestor: true}))
	assert.Empty(t, root.Properties)
}

func TestSimplifyInheritance(t *testing.T) {
	a := testutil.NewObject("A").Build()
	b := testutil.NewObject("B").Extends(a).Build()
	child := testutil.NewObject("Child").Extends(omni.NewComposition(omni.And, a, b)).Build()

	shared := testutil.Prim(omni.Integer)
	holder := testutil.NewObject("Holder").
		Prop("maybe", omni.NewComposition(omni.Or, shared, &omni.Null{})).
		Prop("plain", shared).Build()
	model := testutil.Model("m", child, holder)

	require.NoError(t, SimplifyInheritance(model, Options{}))
	assert.IsType(t, &omni.Composition{}, child.ExtendedBy)

	require.NoError(t, SimplifyInheritance(model, Options{SimplifyTypeHierarchy: true}))
	assert.Same(t, b, child.ExtendedBy)

	maybe := holder.Properties[0].Type.(*omni.Primitive)
	assert.True(t, maybe.Nullable)
	assert.Equal(t, omni.Integer, maybe.PrimitiveKind)
	assert.False(t, shared.Nullable)
	assert.Same(t, shared, holder.Properties[1].Type)
}

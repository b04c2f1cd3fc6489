package equality

import (
	"fmt"
	"reflect"

	"github.com/hashicorp/go-set/v3"

	"github.com/broady/omnigen/omni"
)

// CommonDenominator is the most specific type generalizing two types,
// with the equality level at which they meet.
type CommonDenominator struct {
	Type  omni.Type
	Level Level
	Diffs []TypeDiff
}

// Resolver computes common denominators. It remembers the pairs it is
// currently comparing so recursive types terminate, and collects diagnostics.
// A Resolver must not be shared between goroutines.
type Resolver struct {
	Diagnostics omni.Diagnostics

	visiting *set.Set[pair]
}

type pair struct {
	a, b omni.Type
}

// NewResolver returns an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{visiting: set.New[pair](0)}
}

// Between returns the common denominator of a and b, or nil if they are not equal
// at any level. With create, new container or Unknown nodes may be synthesized
// to represent the result; otherwise the result is always a or b.
func Between(a, b omni.Type, create bool) *CommonDenominator {
	return NewResolver().Between(a, b, create)
}

// Common folds Between over types. It returns nil if any step fails.
func Common(create bool, types ...omni.Type) *CommonDenominator {
	return NewResolver().Common(create, types...)
}

// Common folds Between over types. It returns nil if any step fails.
func (r *Resolver) Common(create bool, types ...omni.Type) *CommonDenominator {
	if len(types) == 0 {
		return nil
	}
	acc := &CommonDenominator{Type: types[0], Level: IdentityMin}
	for _, t := range types[1:] {
		c := r.Between(acc.Type, t, create)
		if c == nil {
			return nil
		}
		acc = &CommonDenominator{
			Type:  c.Type,
			Level: minLevel(acc.Level, c.Level),
			Diffs: mergeDiffs(append([]TypeDiff(nil), acc.Diffs...), c.Diffs...),
		}
	}
	return acc
}

// Between returns the common denominator of a and b. See the package-level Between.
func (r *Resolver) Between(a, b omni.Type, create bool) *CommonDenominator {
	if a == nil || b == nil {
		return nil
	}
	if a == b {
		return &CommonDenominator{Type: a, Level: IdentityMin}
	}
	if r.visiting == nil {
		r.visiting = set.New[pair](0)
	}
	key := pair{a, b}
	if r.visiting.Contains(key) {
		// Already comparing this pair further up; assume they match.
		return &CommonDenominator{Type: a, Level: CloneMin}
	}
	r.visiting.Insert(key)
	defer r.visiting.Remove(key)

	c := r.dispatch(a, b, create)
	if c != nil && c.Level >= CloneMin && metaDiffers(a, b) {
		c.Level = FunctionMax
	}
	return c
}

func (r *Resolver) dispatch(a, b omni.Type, create bool) *CommonDenominator {
	if ea, ok := a.(*omni.ExternalModelReference); ok && ea.Of != nil {
		return r.Between(ea.Of, b, create)
	}
	if eb, ok := b.(*omni.ExternalModelReference); ok && eb.Of != nil {
		return r.Between(a, eb.Of, create)
	}

	switch a := a.(type) {
	case *omni.Primitive:
		switch b := b.(type) {
		case *omni.Primitive:
			return primitives(a, b)
		case *omni.Enum:
			return enumAndPrimitive(b, a)
		}
	case *omni.Enum:
		switch b := b.(type) {
		case *omni.Enum:
			return enums(a, b, create)
		case *omni.Primitive:
			return enumAndPrimitive(a, b)
		}
	case *omni.Null:
		if _, ok := b.(*omni.Null); ok {
			return &CommonDenominator{Type: a, Level: CloneMax}
		}
	case *omni.HardcodedReference:
		if b, ok := b.(*omni.HardcodedReference); ok && a.FQN == b.FQN {
			return &CommonDenominator{Type: a, Level: CloneMax}
		}
	case *omni.Unknown:
		if b, ok := b.(*omni.Unknown); ok {
			return r.unknowns(a, b)
		}
	case *omni.Array:
		if b, ok := b.(*omni.Array); ok {
			return r.arrays(a, b, create)
		}
	case *omni.Dictionary:
		if b, ok := b.(*omni.Dictionary); ok {
			return r.dictionaries(a, b, create)
		}
	case *omni.ArrayTypesByPosition:
		if b, ok := b.(*omni.ArrayTypesByPosition); ok {
			return r.typeTuples(a, b, create)
		}
	case *omni.ArrayPropertiesByPosition:
		if b, ok := b.(*omni.ArrayPropertiesByPosition); ok {
			return r.propertyTuples(a, b, create)
		}
	case *omni.Interface:
		if b, ok := b.(*omni.Interface); ok {
			c := r.Between(a.Of, b.Of, false)
			if c == nil {
				return nil
			}
			return &CommonDenominator{Type: a, Level: minLevel(c.Level, CloneMax), Diffs: c.Diffs}
		}
	case *omni.Composition:
		if b, ok := b.(*omni.Composition); ok {
			return r.compositions(a, b)
		}
	case *omni.GenericTarget:
		if b, ok := b.(*omni.GenericTarget); ok {
			return r.genericTargets(a, b, create)
		}
	case *omni.Object:
		if b, ok := b.(*omni.Object); ok {
			if c := r.objects(a, b); c != nil {
				return c
			}
		}
	}

	_, aObj := a.(*omni.Object)
	_, bObj := b.(*omni.Object)
	if aObj || bObj {
		return r.objectAndOther(a, b, create)
	}
	return nil
}

type widening struct {
	from, to omni.PrimitiveKind
}

var wideningTable = map[widening][]TypeDiff{
	{omni.IntegerSmall, omni.Integer}: {Size},
	{omni.IntegerSmall, omni.Long}:    {Size},
	{omni.IntegerSmall, omni.Float}:   {Size, Precision},
	{omni.IntegerSmall, omni.Double}:  {Size, Precision},
	{omni.IntegerSmall, omni.Decimal}: {Size, Precision},
	{omni.Integer, omni.Long}:         {Size},
	{omni.Integer, omni.Float}:        {Precision},
	{omni.Integer, omni.Double}:       {Precision},
	{omni.Integer, omni.Decimal}:      {Precision},
	{omni.Long, omni.Float}:           {Precision},
	{omni.Long, omni.Double}:          {Precision},
	{omni.Long, omni.Decimal}:         {Precision},
	{omni.Float, omni.Double}:         {Size},
	{omni.Float, omni.Decimal}:        {Size},
	{omni.Decimal, omni.Double}:       {Precision},
	{omni.Char, omni.String}:          {IsomorphicType},
}

// widen returns the wider of a and b with the diffs and level of the conversion.
func widen(a, b *omni.Primitive) (*omni.Primitive, []TypeDiff, Level, bool) {
	if diffs, ok := wideningTable[widening{a.PrimitiveKind, b.PrimitiveKind}]; ok {
		return b, diffs, IsomorphicMax, true
	}
	if diffs, ok := wideningTable[widening{b.PrimitiveKind, a.PrimitiveKind}]; ok {
		return a, diffs, IsomorphicMax, true
	}
	if a.PrimitiveKind == omni.Number && b.PrimitiveKind.IsNumeric() {
		return a, []TypeDiff{IsomorphicType}, SemanticsMin, true
	}
	if b.PrimitiveKind == omni.Number && a.PrimitiveKind.IsNumeric() {
		return b, []TypeDiff{IsomorphicType}, SemanticsMin, true
	}
	return nil, nil, 0, false
}

func primitives(a, b *omni.Primitive) *CommonDenominator {
	if a.Nullable != b.Nullable {
		return nil
	}
	if a.PrimitiveKind == b.PrimitiveKind {
		if reflect.DeepEqual(a.Value, b.Value) {
			return &CommonDenominator{Type: a, Level: CloneMax}
		}
		// A non-literal side already encompasses the literal one.
		switch {
		case a.Value == nil:
			return &CommonDenominator{Type: a, Level: SemanticsMin, Diffs: []TypeDiff{PolymorphicLiteral}}
		case b.Value == nil:
			return &CommonDenominator{Type: b, Level: SemanticsMin, Diffs: []TypeDiff{PolymorphicLiteral}}
		}
		return &CommonDenominator{Type: omni.Generalized(a), Level: SemanticsMin, Diffs: []TypeDiff{PolymorphicLiteral}}
	}

	wide, diffs, level, ok := widen(a, b)
	if !ok {
		return nil
	}
	diffs = append([]TypeDiff(nil), diffs...)
	var result omni.Type = wide
	if a.Value != nil || b.Value != nil {
		result = omni.Generalized(wide)
		diffs = mergeDiffs(diffs, PolymorphicLiteral)
	}
	return &CommonDenominator{Type: result, Level: level, Diffs: diffs}
}

func enums(a, b *omni.Enum, create bool) *CommonDenominator {
	if a.ItemKind != b.ItemKind {
		return nil
	}
	if sameConstants(a.Constants, b.Constants) {
		level := CloneMax
		var diffs []TypeDiff
		if !omni.NamesIntersect(a.Name, b.Name) {
			level = FunctionMax
			diffs = []TypeDiff{NameMismatch}
		}
		return &CommonDenominator{Type: a, Level: level, Diffs: diffs}
	}
	if !create {
		return nil
	}
	return &CommonDenominator{Type: omni.NewPrimitive(a.ItemKind), Level: SemanticsMin, Diffs: []TypeDiff{PolymorphicLiteral}}
}

func sameConstants(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		found := false
		for _, y := range b {
			if reflect.DeepEqual(x, y) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// enumAndPrimitive generalizes an enum to a primitive of its item kind.
func enumAndPrimitive(e *omni.Enum, p *omni.Primitive) *CommonDenominator {
	if p.PrimitiveKind != e.ItemKind || p.Value != nil {
		return nil
	}
	return &CommonDenominator{Type: p, Level: SemanticsMin, Diffs: []TypeDiff{PolymorphicLiteral}}
}

func (r *Resolver) unknowns(a, b *omni.Unknown) *CommonDenominator {
	if a.IsAny != b.IsAny {
		return nil
	}
	switch {
	case a.UpperBound == nil && b.UpperBound == nil:
		return &CommonDenominator{Type: a, Level: CloneMax}
	case a.UpperBound == nil || b.UpperBound == nil:
		return nil
	}
	c := r.Between(a.UpperBound, b.UpperBound, false)
	if c == nil {
		return nil
	}
	return &CommonDenominator{Type: a, Level: minLevel(c.Level, CloneMax), Diffs: c.Diffs}
}

func (r *Resolver) arrays(a, b *omni.Array, create bool) *CommonDenominator {
	c := r.Between(a.Of, b.Of, create)
	if c == nil {
		return nil
	}
	if c.Level >= CloneMin {
		return &CommonDenominator{Type: a, Level: minLevel(c.Level, CloneMax)}
	}
	if !create {
		return nil
	}
	return &CommonDenominator{Type: &omni.Array{Of: c.Type}, Level: c.Level, Diffs: c.Diffs}
}

func (r *Resolver) dictionaries(a, b *omni.Dictionary, create bool) *CommonDenominator {
	key := r.Between(a.KeyType, b.KeyType, create)
	if key == nil {
		return nil
	}
	value := r.Between(a.ValueType, b.ValueType, create)
	if value == nil {
		return nil
	}
	level := minLevel(key.Level, value.Level)
	if level >= CloneMin {
		return &CommonDenominator{Type: a, Level: minLevel(level, CloneMax)}
	}
	if !create {
		return nil
	}
	return &CommonDenominator{
		Type:  &omni.Dictionary{KeyType: key.Type, ValueType: value.Type},
		Level: level,
		Diffs: mergeDiffs(append([]TypeDiff(nil), key.Diffs...), value.Diffs...),
	}
}

func (r *Resolver) typeTuples(a, b *omni.ArrayTypesByPosition, create bool) *CommonDenominator {
	if len(a.Types) != len(b.Types) {
		return nil
	}
	level := CloneMax
	var diffs []TypeDiff
	types := make([]omni.Type, len(a.Types))
	for i := range a.Types {
		c := r.Between(a.Types[i], b.Types[i], create)
		if c == nil {
			return nil
		}
		level = minLevel(level, c.Level)
		diffs = mergeDiffs(diffs, c.Diffs...)
		types[i] = c.Type
	}
	if level >= CloneMin {
		return &CommonDenominator{Type: a, Level: level}
	}
	if !create {
		return nil
	}
	return &CommonDenominator{Type: &omni.ArrayTypesByPosition{Types: types}, Level: level, Diffs: diffs}
}

func (r *Resolver) propertyTuples(a, b *omni.ArrayPropertiesByPosition, create bool) *CommonDenominator {
	if len(a.Properties) != len(b.Properties) {
		return nil
	}
	level := CloneMax
	var diffs []TypeDiff
	props := make([]*omni.Property, len(a.Properties))
	for i, pa := range a.Properties {
		pb := b.Properties[i]
		pl := PropertyLevel(pa, pb)
		if pl < FunctionMin {
			return nil
		}
		c := r.Between(pa.Type, pb.Type, create)
		if c == nil {
			return nil
		}
		level = minLevel(level, minLevel(pl, c.Level))
		diffs = mergeDiffs(diffs, c.Diffs...)
		cp := *pa
		cp.Type = c.Type
		props[i] = &cp
	}
	if level >= CloneMin {
		return &CommonDenominator{Type: a, Level: level}
	}
	if !create {
		return nil
	}
	tuple := &omni.ArrayPropertiesByPosition{}
	for _, p := range props {
		omni.AddProperty(tuple, p)
	}
	return &CommonDenominator{Type: tuple, Level: level, Diffs: diffs}
}

func (r *Resolver) compositions(a, b *omni.Composition) *CommonDenominator {
	if a.CompositionKind != b.CompositionKind || len(a.Types) != len(b.Types) {
		return nil
	}
	level := CloneMax
	for i := range a.Types {
		c := r.Between(a.Types[i], b.Types[i], false)
		if c == nil || c.Level < FunctionMin {
			return nil
		}
		level = minLevel(level, c.Level)
	}
	return &CommonDenominator{Type: a, Level: level}
}

func (r *Resolver) genericTargets(a, b *omni.GenericTarget, create bool) *CommonDenominator {
	if a.Source != b.Source || len(a.TargetIdentifiers) != len(b.TargetIdentifiers) {
		return nil
	}
	level := CloneMax
	var diffs []TypeDiff
	changed := false
	ids := make([]*omni.GenericTargetIdentifier, 0, len(a.TargetIdentifiers))
	for _, ia := range a.TargetIdentifiers {
		var ib *omni.GenericTargetIdentifier
		for _, x := range b.TargetIdentifiers {
			if x.SourceIdentifier == ia.SourceIdentifier {
				ib = x
				break
			}
		}
		if ib == nil {
			return nil
		}

		t := ia.Type
		c := r.Between(ia.Type, ib.Type, create)
		if c == nil {
			t = &omni.Unknown{}
			level = minLevel(level, IsomorphicMin)
			diffs = mergeDiffs(diffs, NoGenericOverlap)
			changed = true
		} else {
			level = minLevel(level, c.Level)
			diffs = mergeDiffs(diffs, c.Diffs...)
			if c.Type != ia.Type {
				t = c.Type
				changed = true
			}
		}
		ids = append(ids, &omni.GenericTargetIdentifier{SourceIdentifier: ia.SourceIdentifier, Type: t})
	}
	if !changed || !create {
		return &CommonDenominator{Type: a, Level: level, Diffs: diffs}
	}
	return &CommonDenominator{Type: &omni.GenericTarget{Source: a.Source, TargetIdentifiers: ids}, Level: level, Diffs: diffs}
}

func (r *Resolver) objects(a, b *omni.Object) *CommonDenominator {
	if len(a.Properties) != len(b.Properties) || a.AdditionalProperties != b.AdditionalProperties {
		return nil
	}
	level := CloneMax
	var diffs []TypeDiff
	for _, pa := range a.Properties {
		pb := omni.FindProperty(b, pa.Name)
		if pb == nil {
			return nil
		}
		pl := PropertyLevel(pa, pb)
		if pl < FunctionMin {
			return nil
		}
		c := r.Between(pa.Type, pb.Type, false)
		if c == nil || c.Level < FunctionMin {
			return nil
		}
		level = minLevel(level, minLevel(pl, c.Level))
	}

	switch {
	case a.ExtendedBy == nil && b.ExtendedBy == nil:
	case a.ExtendedBy == nil || b.ExtendedBy == nil:
		return nil
	default:
		c := r.Between(a.ExtendedBy, b.ExtendedBy, false)
		if c == nil || c.Level < FunctionMin {
			return nil
		}
		level = minLevel(level, c.Level)
	}

	if !omni.NamesIntersect(a.Name, b.Name) {
		level = minLevel(level, FunctionMax)
		diffs = append(diffs, NameMismatch)
		r.Diagnostics.Add(omni.DiagCommonNameFallback, a,
			fmt.Sprintf("objects share shape but no name, falling back to %q", omni.Resolve(a.Name)))
	}
	return &CommonDenominator{Type: a, Level: level, Diffs: diffs}
}

// objectAndOther looks for a common type through either side's supertypes.
func (r *Resolver) objectAndOther(a, b omni.Type, create bool) *CommonDenominator {
	for _, super := range omni.FlattenedSuperTypes(b) {
		if c := r.Between(a, super, false); c != nil {
			return &CommonDenominator{Type: c.Type, Level: degrade(c.Level), Diffs: mergeDiffs(c.Diffs, IsSupertype)}
		}
	}
	for _, super := range omni.FlattenedSuperTypes(a) {
		if c := r.Between(super, b, false); c != nil {
			return &CommonDenominator{Type: c.Type, Level: degrade(c.Level), Diffs: mergeDiffs(c.Diffs, IsSupertype)}
		}
	}
	if !create {
		return nil
	}
	return &CommonDenominator{Type: &omni.Unknown{}, Level: IsomorphicMin, Diffs: []TypeDiff{FundamentalType}}
}

func metaDiffers(a, b omni.Type) bool {
	ma, mb := a.Meta(), b.Meta()
	return ma.Title != mb.Title || ma.Description != mb.Description || ma.Summary != mb.Summary
}

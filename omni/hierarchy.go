package omni

// SuperTypeOf returns the declared supertype of t, or nil.
func SuperTypeOf(t Type) Type {
	switch t := t.(type) {
	case *Object:
		return t.ExtendedBy
	case *Enum:
		return t.ExtendedBy
	case *Interface:
		return t.ExtendedBy
	}
	return nil
}

// SetSuperType sets the declared supertype of t and reports whether t can have one.
func SetSuperType(t, super Type) bool {
	switch t := t.(type) {
	case *Object:
		t.ExtendedBy = super
	case *Enum:
		t.ExtendedBy = super
	case *Interface:
		t.ExtendedBy = super
	default:
		return false
	}
	return true
}

// IsSuperType reports whether t may appear as the supertype of another type.
// Primitives, arrays, dictionaries, tuples, unknowns and null never can.
func IsSuperType(t Type) bool {
	switch t := t.(type) {
	case *Object, *GenericTarget, *Enum, *Interface, *HardcodedReference:
		return true
	case *ExternalModelReference:
		return t.Of != nil && IsSuperType(t.Of)
	case *Composition:
		if len(t.Types) == 0 {
			return false
		}
		for _, c := range t.Types {
			if !IsSuperType(c) {
				return false
			}
		}
		return true
	}
	return false
}

// IsGenericSuperType reports whether t can become the Of of a GenericSource.
func IsGenericSuperType(t Type) bool {
	switch t := t.(type) {
	case *Object, *Interface:
		return true
	case *ExternalModelReference:
		return t.Of != nil && IsGenericSuperType(t.Of)
	}
	return false
}

// IsGenericAllowed reports whether t may be used as a generic type argument.
// Non-nullable primitives cannot be.
func IsGenericAllowed(t Type) bool {
	if p, ok := t.(*Primitive); ok {
		return p.Nullable
	}
	return true
}

// FlattenedSuperTypes returns the types t directly inherits from,
// expanding AND compositions into their members.
func FlattenedSuperTypes(t Type) []Type {
	super := SuperTypeOf(t)
	if super == nil {
		return nil
	}
	return FlattenAnd(super)
}

// FlattenAnd expands nested AND compositions into their members.
// Any other type is returned as the only element.
func FlattenAnd(t Type) []Type {
	c, ok := t.(*Composition)
	if !ok || c.CompositionKind != And {
		return []Type{t}
	}
	var out []Type
	for _, m := range c.Types {
		out = append(out, FlattenAnd(m)...)
	}
	return out
}

// Hierarchy returns every type reachable from t through AND membership
// and supertype edges, excluding t itself, in discovery order.
func Hierarchy(t Type) []Type {
	var out []Type
	seen := map[Type]bool{t: true}
	var visit func(Type)
	visit = func(n Type) {
		var next []Type
		if c, ok := n.(*Composition); ok && c.CompositionKind == And {
			next = append(next, c.Types...)
		}
		if s := SuperTypeOf(n); s != nil {
			next = append(next, s)
		}
		for _, x := range next {
			if x == nil || seen[x] {
				continue
			}
			seen[x] = true
			out = append(out, x)
			visit(x)
		}
	}
	visit(t)
	return out
}

// HierarchyDepth returns the length of the longest supertype chain above t.
func HierarchyDepth(t Type) int {
	return hierarchyDepth(t, map[Type]bool{})
}

func hierarchyDepth(t Type, visiting map[Type]bool) int {
	if visiting[t] {
		return 0
	}
	visiting[t] = true
	defer delete(visiting, t)
	best := 0
	for _, s := range FlattenedSuperTypes(t) {
		if d := 1 + hierarchyDepth(s, visiting); d > best {
			best = d
		}
	}
	return best
}

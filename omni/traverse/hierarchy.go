package traverse

import (
	"sort"

	"github.com/broady/omnigen/omni"
)

// SubTypes maps supertypes to the types that declare them, preserving discovery order.
type SubTypes struct {
	Supers []omni.Type
	Subs   map[omni.Type][]omni.Type
}

// Of returns the subtypes declaring super.
func (s *SubTypes) Of(super omni.Type) []omni.Type {
	return s.Subs[super]
}

// SuperTypeToSubTypes collects, for every supertype reachable from inputs,
// the types that inherit from it directly. AND compositions are flattened,
// so a type extending AND[A, B] is a subtype of both A and B.
//
// Supers is ordered top-down: a supertype comes before any of its own subtypes.
func SuperTypeToSubTypes(inputs ...omni.TypeOwner) *SubTypes {
	out := &SubTypes{Subs: map[omni.Type][]omni.Type{}}
	for _, t := range AllTypes(inputs...) {
		for _, super := range omni.FlattenedSuperTypes(t) {
			if _, ok := out.Subs[super]; !ok {
				out.Supers = append(out.Supers, super)
			}
			if !containsType(out.Subs[super], t) {
				out.Subs[super] = append(out.Subs[super], t)
			}
		}
	}
	depth := make(map[omni.Type]int, len(out.Supers))
	for _, s := range out.Supers {
		depth[s] = omni.HierarchyDepth(s)
	}
	sort.SliceStable(out.Supers, func(i, j int) bool {
		return depth[out.Supers[i]] < depth[out.Supers[j]]
	})
	return out
}

// SubTypeToSuperTypes maps every reachable type that declares supertypes to
// its flattened direct supertypes.
func SubTypeToSuperTypes(inputs ...omni.TypeOwner) map[omni.Type][]omni.Type {
	out := map[omni.Type][]omni.Type{}
	for _, t := range AllTypes(inputs...) {
		if supers := omni.FlattenedSuperTypes(t); len(supers) > 0 {
			out[t] = supers
		}
	}
	return out
}

// TypesThatInheritFrom returns every reachable type whose hierarchy contains super.
func TypesThatInheritFrom(super omni.Type, inputs ...omni.TypeOwner) []omni.Type {
	var out []omni.Type
	for _, t := range AllTypes(inputs...) {
		if t != super && omni.SuperTypeOf(t) != nil && containsType(omni.Hierarchy(t), super) {
			out = append(out, t)
		}
	}
	return out
}

// AllExportableTypes returns the reachable types that a renderer would emit
// as standalone declarations, skipping primitives, nulls and identifiers.
func AllExportableTypes(model *omni.Model) []omni.Type {
	var out []omni.Type
	for _, t := range AllTypes(model) {
		switch t.(type) {
		case *omni.Primitive, *omni.Null, *omni.GenericSourceIdentifier, *omni.GenericTargetIdentifier:
			continue
		}
		out = append(out, t)
	}
	return out
}

func containsType(list []omni.Type, t omni.Type) bool {
	for _, x := range list {
		if x == t {
			return true
		}
	}
	return false
}

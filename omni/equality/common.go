package equality

import (
	"github.com/hashicorp/go-set/v3"

	"github.com/broady/omnigen/omni"
)

// DistinctTypes removes types that are clone-equal to an earlier type,
// keeping the first of each group.
func DistinctTypes(types ...omni.Type) []omni.Type {
	r := NewResolver()
	var out []omni.Type
	for _, t := range types {
		dup := false
		for _, d := range out {
			if c := r.Between(d, t, false); c != nil && c.Level >= CloneMin {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, t)
		}
	}
	return out
}

// PropertyInfo describes one property name shared by several types.
type PropertyInfo struct {
	Name string

	// Properties holds each type's property, in the order the types were given.
	Properties []*omni.Property

	// DistinctTypes holds the property types with clone-equal types removed.
	DistinctTypes []omni.Type

	// CommonType generalizes every property type. It is an Unknown if nothing does.
	CommonType omni.Type

	// Level is the lowest equality across the properties and their types.
	Level Level

	// TypeDiffs lists how the property types differ from each other.
	TypeDiffs []TypeDiff

	// Diffs lists the differences that separate the first property type from the rest.
	Diffs []Diff
}

// Common reports whether CommonType relates every property type structurally.
func (pi *PropertyInfo) Common() bool {
	if _, ok := pi.CommonType.(*omni.Unknown); ok {
		return false
	}
	return !HasDiff(pi.TypeDiffs, FundamentalType)
}

// CommonProperties returns one entry per property name declared by every one
// of types, ordered as the names appear on the first type.
func CommonProperties(types ...omni.Type) []*PropertyInfo {
	if len(types) == 0 {
		return nil
	}

	shared := set.New[string](0)
	for _, p := range omni.PropertiesOf(types[0]) {
		shared.Insert(p.Name)
	}
	for _, t := range types[1:] {
		names := set.New[string](0)
		for _, p := range omni.PropertiesOf(t) {
			names.Insert(p.Name)
		}
		for _, n := range shared.Slice() {
			if !names.Contains(n) {
				shared.Remove(n)
			}
		}
	}

	r := NewResolver()
	var out []*PropertyInfo
	for _, first := range omni.PropertiesOf(types[0]) {
		if !shared.Contains(first.Name) {
			continue
		}
		info := &PropertyInfo{Name: first.Name, Level: CloneMax}
		var propTypes []omni.Type
		for _, t := range types {
			p := omni.FindProperty(t, first.Name)
			info.Properties = append(info.Properties, p)
			propTypes = append(propTypes, p.Type)
			info.Level = minLevel(info.Level, PropertyLevel(first, p))
		}
		info.DistinctTypes = DistinctTypes(propTypes...)

		if c := r.Common(true, info.DistinctTypes...); c != nil {
			info.CommonType = c.Type
			info.Level = minLevel(info.Level, c.Level)
			info.TypeDiffs = c.Diffs
		} else {
			info.CommonType = &omni.Unknown{}
			info.Level = minLevel(info.Level, IsomorphicMin)
			info.TypeDiffs = []TypeDiff{FundamentalType}
		}
		if len(propTypes) > 1 {
			info.Diffs = AllEncompassingDiffs(propTypes[0], propTypes[1:]...)
		}
		out = append(out, info)
	}
	return out
}

package equality

import (
	"github.com/broady/omnigen/omni"
)

// DiffKind classifies a Diff.
type DiffKind int

const (
	MissingProperty DiffKind = iota + 1
	ExtraProperty
	PropertyType
	TypeDifference
)

// String returns the string representation of the diff kind.
func (k DiffKind) String() string {
	switch k {
	case MissingProperty:
		return "MISSING_PROPERTY"
	case ExtraProperty:
		return "EXTRA_PROPERTY"
	case PropertyType:
		return "PROPERTY_TYPE"
	case TypeDifference:
		return "TYPE"
	default:
		return "INVALID"
	}
}

// Diff is one named difference between a baseline type and another type.
// PropertyName is set for property diffs, TypeDiffs for TypeDifference.
type Diff struct {
	Kind         DiffKind
	PropertyName string
	TypeDiffs    []TypeDiff
}

// GetDiff lists how other differs from baseline.
func GetDiff(baseline, other omni.Type) []Diff {
	if baseline == other {
		return nil
	}
	bo, ok1 := baseline.(*omni.Object)
	oo, ok2 := other.(*omni.Object)
	if ok1 && ok2 {
		return objectDiff(bo, oo)
	}

	c := Between(baseline, other, false)
	switch {
	case c == nil:
		return []Diff{{Kind: TypeDifference, TypeDiffs: []TypeDiff{FundamentalType}}}
	case len(c.Diffs) > 0:
		return []Diff{{Kind: TypeDifference, TypeDiffs: c.Diffs}}
	case c.Type == baseline:
		return nil
	default:
		return []Diff{{Kind: TypeDifference, TypeDiffs: []TypeDiff{FundamentalType}}}
	}
}

func objectDiff(baseline, other *omni.Object) []Diff {
	var diffs []Diff
	for _, bp := range baseline.Properties {
		op := omni.FindProperty(other, bp.Name)
		if op == nil {
			diffs = append(diffs, Diff{Kind: MissingProperty, PropertyName: bp.Name})
			continue
		}
		c := Between(bp.Type, op.Type, false)
		if c == nil || len(c.Diffs) > 0 {
			diffs = append(diffs, Diff{Kind: PropertyType, PropertyName: bp.Name})
		}
	}
	for _, op := range other.Properties {
		if omni.FindProperty(baseline, op.Name) == nil {
			diffs = append(diffs, Diff{Kind: ExtraProperty, PropertyName: op.Name})
		}
	}
	return diffs
}

// AllEncompassingDiffs returns the diffs that distinguish baseline from every
// one of others. A diff is kept only if it appears against each other type.
// Property existence differences are flipped to describe the baseline: a
// property all others lack is reported as extra on the baseline.
func AllEncompassingDiffs(baseline omni.Type, others ...omni.Type) []Diff {
	missing := newCounter()
	extra := newCounter()
	propertyType := newCounter()
	typeCount := 0
	var typeDiffs []TypeDiff

	for _, other := range others {
		for _, d := range GetDiff(baseline, other) {
			switch d.Kind {
			case MissingProperty:
				missing.inc(d.PropertyName)
				propertyType.inc(d.PropertyName)
			case ExtraProperty:
				extra.inc(d.PropertyName)
				propertyType.inc(d.PropertyName)
			case TypeDifference:
				typeCount++
				typeDiffs = mergeDiffs(typeDiffs, d.TypeDiffs...)
				if o, ok := baseline.(*omni.Object); ok {
					for _, p := range o.Properties {
						missing.inc(p.Name)
					}
				} else if o, ok := other.(*omni.Object); ok {
					for _, p := range o.Properties {
						missing.inc(p.Name)
					}
				}
			case PropertyType:
				propertyType.inc(d.PropertyName)
			}
		}
	}

	var out []Diff
	for _, name := range missing.keys {
		if missing.counts[name] == len(others) {
			out = append(out, Diff{Kind: ExtraProperty, PropertyName: name})
			propertyType.remove(name)
		}
	}
	for _, name := range extra.keys {
		if extra.counts[name] == len(others) {
			out = append(out, Diff{Kind: MissingProperty, PropertyName: name})
			propertyType.remove(name)
		}
	}
	for _, name := range propertyType.keys {
		if n, ok := propertyType.counts[name]; ok && n == len(others) {
			out = append(out, Diff{Kind: PropertyType, PropertyName: name})
		}
	}
	if len(others) > 0 && typeCount == len(others) {
		out = append(out, Diff{Kind: TypeDifference, TypeDiffs: typeDiffs})
	}
	return out
}

// counter counts occurrences per key, remembering first-seen order.
type counter struct {
	keys   []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: map[string]int{}}
}

func (c *counter) inc(key string) {
	if _, ok := c.counts[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.counts[key]++
}

func (c *counter) remove(key string) {
	delete(c.counts, key)
}

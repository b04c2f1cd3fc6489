// Package composition builds and simplifies AND/OR/XOR/NOT compositions.
package composition

import (
	"github.com/hashicorp/go-set/v3"
	"github.com/pkg/errors"

	"github.com/broady/omnigen/omni"
	"github.com/broady/omnigen/omni/traverse"
)

// Build folds schema constraint lists into one type.
//
// Each non-empty list becomes its lone member, or an OR (anyOf), AND (allOf)
// or XOR (oneOf) of its members. Lists are combined in that order by wrapping
// the result so far and the next list in an AND. A not constraint is added
// last as AND[result, NOT[not]]. Build returns nil if there are no constraints.
func Build(anyOf, allOf, oneOf []omni.Type, not omni.Type) omni.Type {
	var result omni.Type
	add := func(t omni.Type) {
		if result == nil {
			result = t
			return
		}
		result = omni.NewComposition(omni.And, result, t)
	}

	lists := []struct {
		kind  omni.CompositionKind
		types []omni.Type
	}{
		{omni.Or, anyOf},
		{omni.And, allOf},
		{omni.Xor, oneOf},
	}
	for _, l := range lists {
		switch len(l.types) {
		case 0:
		case 1:
			add(l.types[0])
		default:
			add(omni.NewComposition(l.kind, append([]omni.Type(nil), l.types...)...))
		}
	}

	if not != nil {
		negated := omni.NewComposition(omni.Not, not)
		if result == nil {
			return negated
		}
		result = omni.NewComposition(omni.And, result, negated)
	}
	return result
}

// Reduce removes redundant members from an AND composition in place.
//
// Duplicate members and members already implied by another member's
// hierarchy are dropped. If a single member remains and it is itself an
// AND, its members are spliced in. If a single non-AND member remains, that
// member is returned and the caller should put it in place of c; otherwise
// c is returned. Non-AND compositions are returned unchanged.
func Reduce(c *omni.Composition) omni.Type {
	if c.CompositionKind != omni.And {
		return c
	}

	seen := set.New[omni.Type](len(c.Types))
	var members []omni.Type
	for _, m := range c.Types {
		if m != nil && seen.Insert(m) {
			members = append(members, m)
		}
	}

	implied := make([]*set.Set[omni.Type], len(members))
	for i, m := range members {
		implied[i] = set.New[omni.Type](0)
		implied[i].InsertSlice(omni.Hierarchy(m))
	}

	var kept []omni.Type
	for i, m := range members {
		redundant := false
		for j := range members {
			if i == j || !implied[j].Contains(m) {
				continue
			}
			// Two members implying each other is a cycle; keep the earlier one.
			if implied[i].Contains(members[j]) && i < j {
				continue
			}
			redundant = true
			break
		}
		if !redundant {
			kept = append(kept, m)
		}
	}
	c.Types = kept

	if len(kept) != 1 {
		return c
	}
	if inner, ok := kept[0].(*omni.Composition); ok && inner.CompositionKind == omni.And {
		c.Types = append([]omni.Type(nil), inner.Types...)
		return Reduce(c)
	}
	return kept[0]
}

// Simplify reduces c and, when a single member remains, replaces c by that
// member at parent and returns it. Without a parent the single-member
// composition is kept and a diagnostic is recorded.
func Simplify(c *omni.Composition, parent omni.TypeOwner, maxDepth int, diags *omni.Diagnostics) (omni.Type, error) {
	lone := Reduce(c)
	if lone == omni.Type(c) {
		return c, nil
	}
	if parent == nil {
		if diags != nil {
			diags.Add(omni.DiagCompositionNoParent, c, "single-member composition kept, no parent to replace it at")
		}
		return c, nil
	}
	if _, err := traverse.SwapType(parent, c, lone, maxDepth); err != nil {
		return nil, errors.Wrapf(err, "simplify %s", omni.Describe(c))
	}
	return lone, nil
}

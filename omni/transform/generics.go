package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/broady/omnigen/omni"
	"github.com/broady/omnigen/omni/equality"
	"github.com/broady/omnigen/omni/traverse"
)

// GenericMapping links a hoisted supertype to its generic form.
type GenericMapping struct {
	Supertype *omni.Object
	Source    *omni.GenericSource
	Targets   []TargetMapping
}

// TargetMapping links one subtype to the generic target it now extends.
type TargetMapping struct {
	Subtype *omni.Object
	Target  *omni.GenericTarget
}

// GenericsResult reports what Generics did.
type GenericsResult struct {
	Mappings    []*GenericMapping
	Diagnostics omni.Diagnostics
}

// Generics hoists properties that sibling subtypes declare with different
// but related types into a type parameter on their shared supertype.
//
// For a supertype S with direct object subtypes T1..Tn (n >= 2), every
// property name declared by all Ti with at least two distinct types becomes
// a GenericSourceIdentifier on a new GenericSource wrapping S. S gains a
// property typed as that identifier, each Ti loses its own copy, and each Ti
// extends a GenericTarget binding the identifier to its original type.
// All other references to S in the model are replaced by the GenericSource.
func Generics(model *omni.Model, opts Options) (*GenericsResult, error) {
	res := &GenericsResult{}
	if !opts.GenerifyTypes {
		return res, nil
	}

	hierarchy := traverse.SuperTypeToSubTypes(model)
	for _, super := range hierarchy.Supers {
		s, ok := super.(*omni.Object)
		if !ok {
			continue
		}
		var children []*omni.Object
		for _, sub := range hierarchy.Of(super) {
			if o, ok := sub.(*omni.Object); ok && o.ExtendedBy == super {
				children = append(children, o)
			}
		}
		if len(children) < 2 {
			continue
		}
		if ambiguousFamilies(children) {
			res.Diagnostics.Add(omni.DiagGenericAmbiguousSignature, s,
				"subtypes form more than one sibling family with distinct signatures")
			continue
		}

		m, err := hoist(model, s, children, opts, &res.Diagnostics)
		if err != nil {
			return res, errors.Wrapf(err, "hoist generics into %s", omni.Describe(s))
		}
		if m != nil {
			res.Mappings = append(res.Mappings, m)
		}
	}
	return res, nil
}

// ambiguousFamilies reports whether more than one group of two or more
// subtypes shares a property-name signature.
func ambiguousFamilies(children []*omni.Object) bool {
	families := map[string]int{}
	for _, c := range children {
		names := make([]string, len(c.Properties))
		for i, p := range c.Properties {
			names[i] = p.Name
		}
		sort.Strings(names)
		families[strings.Join(names, ",")]++
	}
	n := 0
	for _, count := range families {
		if count >= 2 {
			n++
		}
	}
	return n > 1
}

type hoistPlan struct {
	info  *equality.PropertyInfo
	bound omni.Type
	args  []omni.Type
}

func hoist(model *omni.Model, s *omni.Object, children []*omni.Object, opts Options, diags *omni.Diagnostics) (*GenericMapping, error) {
	types := make([]omni.Type, len(children))
	for i, c := range children {
		types[i] = c
	}
	infos := equality.CommonProperties(types...)
	reportPartial(s, children, infos, diags)

	var plans []*hoistPlan
	for _, info := range infos {
		if len(info.DistinctTypes) < 2 {
			continue
		}
		plan := &hoistPlan{info: info}
		for _, p := range info.Properties {
			plan.args = append(plan.args, p.Type)
		}
		if info.Common() {
			plan.bound = info.CommonType
		}

		if !opts.PrimitiveGenerics && anyPrimitiveArgument(info.DistinctTypes) {
			if opts.PrimitiveGenerification == PrimitiveAbort {
				diags.Add(omni.DiagGenericPrimitiveAbort, s,
					fmt.Sprintf("property %q has primitive types that cannot be generic arguments", info.Name))
				continue
			}
			for i, a := range plan.args {
				plan.args[i] = boxed(a)
			}
			if plan.bound != nil {
				plan.bound = boxed(plan.bound)
			}
		}
		if gt, ok := plan.bound.(*omni.GenericTarget); ok {
			plan.bound = wildcard(gt)
		}
		if plan.bound != nil && len(info.TypeDiffs) > 0 {
			diags.Add(omni.DiagGenericBoundWidened, s,
				fmt.Sprintf("property %q bound widened to %s", info.Name, omni.Describe(plan.bound)))
		}
		plans = append(plans, plan)
	}
	if len(plans) == 0 {
		return nil, nil
	}

	src := &omni.GenericSource{Of: s}
	targets := map[*omni.Object]*omni.GenericTarget{}
	swapped := false

	for _, plan := range plans {
		placeholder := "T"
		if len(plans) > 1 {
			placeholder = "T" + omni.PascalCase(plan.info.Name)
		}
		id := &omni.GenericSourceIdentifier{PlaceholderName: placeholder, UpperBound: plan.bound}
		src.SourceIdentifiers = append(src.SourceIdentifiers, id)

		hoisted := hoistedProperty(plan.info.Properties, id)
		if existing := omni.FindProperty(s, plan.info.Name); existing != nil {
			omni.ReplaceProperty(s, existing, hoisted)
		} else {
			omni.AddProperty(s, hoisted)
		}

		for i, child := range children {
			omni.RemoveProperty(child, plan.info.Properties[i])

			target := targets[child]
			if target == nil {
				target = &omni.GenericTarget{Source: src}
				if !swapped {
					if err := traverse.SwapTypeInModel(model, s, src, opts.swapDepth()); err != nil {
						return nil, err
					}
					swapped = true
				}
				targets[child] = target
			}
			target.TargetIdentifiers = append(target.TargetIdentifiers, &omni.GenericTargetIdentifier{
				SourceIdentifier: id,
				Type:             plan.args[i],
			})
			child.ExtendedBy = target
		}
	}

	m := &GenericMapping{Supertype: s, Source: src}
	for _, child := range children {
		target := targets[child]
		if target == nil || len(target.TargetIdentifiers) == 0 {
			child.ExtendedBy = s
			diags.Add(omni.DiagGenericNoBenefit, child, "no property was hoisted for this subtype")
			continue
		}
		m.Targets = append(m.Targets, TargetMapping{Subtype: child, Target: target})
	}
	return m, nil
}

// reportPartial notes properties declared by some but not all subtypes;
// those stay where they are.
func reportPartial(s *omni.Object, children []*omni.Object, common []*equality.PropertyInfo, diags *omni.Diagnostics) {
	isCommon := map[string]bool{}
	for _, info := range common {
		isCommon[info.Name] = true
	}
	counts := map[string]int{}
	var order []string
	for _, c := range children {
		for _, p := range c.Properties {
			if isCommon[p.Name] {
				continue
			}
			if counts[p.Name] == 0 {
				order = append(order, p.Name)
			}
			counts[p.Name]++
		}
	}
	for _, name := range order {
		if counts[name] >= 2 {
			diags.Add(omni.DiagGenericPropertyMissing, s,
				fmt.Sprintf("property %q is declared by %d of %d subtypes", name, counts[name], len(children)))
		}
	}
}

func anyPrimitiveArgument(types []omni.Type) bool {
	for _, t := range types {
		if !omni.IsGenericAllowed(t) {
			return true
		}
	}
	return false
}

func boxed(t omni.Type) omni.Type {
	if p, ok := t.(*omni.Primitive); ok {
		return omni.AsNullable(p)
	}
	return t
}

// hoistedProperty builds the supertype's property typed as id. Flags are
// kept only when every original property has them.
func hoistedProperty(originals []*omni.Property, id *omni.GenericSourceIdentifier) *omni.Property {
	first := originals[0]
	p := &omni.Property{
		Name:        first.Name,
		FieldName:   first.FieldName,
		Type:        id,
		Required:    true,
		ReadOnly:    true,
		WriteOnly:   true,
		Deprecated:  true,
		Description: first.Description,
	}
	for _, o := range originals {
		p.Required = p.Required && o.Required
		p.ReadOnly = p.ReadOnly && o.ReadOnly
		p.WriteOnly = p.WriteOnly && o.WriteOnly
		p.Deprecated = p.Deprecated && o.Deprecated
		if o.Description != first.Description {
			p.Description = ""
		}
	}
	return p
}

// wildcard copies t, replacing every supertype-capable argument with an
// Unknown bounded by it, so subtypes may bind a narrower type.
func wildcard(t *omni.GenericTarget) *omni.GenericTarget {
	out := &omni.GenericTarget{Source: t.Source}
	for _, id := range t.TargetIdentifiers {
		arg := id.Type
		if omni.IsSuperType(arg) {
			if inner, ok := arg.(*omni.GenericTarget); ok {
				arg = wildcard(inner)
			}
			arg = &omni.Unknown{UpperBound: arg}
		}
		out.TargetIdentifiers = append(out.TargetIdentifiers, &omni.GenericTargetIdentifier{
			SourceIdentifier: id.SourceIdentifier,
			Type:             arg,
		})
	}
	return out
}

package transform

import (
	"github.com/broady/omnigen/omni"
	"github.com/broady/omnigen/omni/equality"
	"github.com/broady/omnigen/omni/traverse"
)

// ElevateProperties moves a property up to the supertype when every subtype
// declares it with an equal signature. Hierarchies are processed bottom-up
// so properties can climb more than one level. It returns the number of
// properties moved.
func ElevateProperties(model *omni.Model, opts Options) int {
	if !opts.CompressPropertiesToAncestor {
		return 0
	}
	floor := opts.ElevateMinLevel
	if floor == 0 {
		floor = equality.FunctionMin
	}

	moved := 0
	hierarchy := traverse.SuperTypeToSubTypes(model)
	for i := len(hierarchy.Supers) - 1; i >= 0; i-- {
		s, ok := hierarchy.Supers[i].(*omni.Object)
		if !ok {
			continue
		}
		subs := hierarchy.Of(s)
		if len(subs) < 2 || !allObjects(subs) {
			continue
		}
		for _, info := range equality.CommonProperties(subs...) {
			if len(info.DistinctTypes) != 1 || info.Level < floor || omni.FindProperty(s, info.Name) != nil {
				continue
			}
			up := *info.Properties[0]
			up.Owner = nil
			omni.AddProperty(s, &up)
			for j, sub := range subs {
				omni.RemoveProperty(sub.(*omni.Object), info.Properties[j])
			}
			moved++
		}
	}
	return moved
}

func allObjects(types []omni.Type) bool {
	for _, t := range types {
		if _, ok := t.(*omni.Object); !ok {
			return false
		}
	}
	return true
}

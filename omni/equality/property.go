package equality

import (
	"reflect"

	"github.com/broady/omnigen/omni"
)

// PropertyLevel grades two properties on their own metadata, not their types.
// Checks run in order and the first difference decides the level:
// name, literal value and access mode, required flag, field and accessor
// names, then documentation.
func PropertyLevel(a, b *omni.Property) Level {
	if a.Name != b.Name {
		return NotEqualMin
	}
	if !sameLiteral(a.Type, b.Type) || a.ReadOnly != b.ReadOnly || a.WriteOnly != b.WriteOnly {
		return SemanticsMin
	}
	if a.Required != b.Required {
		return IsomorphicMin
	}
	if a.FieldName != b.FieldName || a.AccessorName != b.AccessorName {
		return SemanticsMax
	}
	if a.Description != b.Description || a.Deprecated != b.Deprecated {
		return FunctionMax
	}
	return CloneMax
}

func sameLiteral(a, b omni.Type) bool {
	pa, aok := a.(*omni.Primitive)
	pb, bok := b.(*omni.Primitive)
	if !aok || !bok || (pa.Value == nil && pb.Value == nil) {
		return true
	}
	return reflect.DeepEqual(pa.Value, pb.Value)
}

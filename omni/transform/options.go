// Package transform rewrites omni models: hoisting generics, moving shared
// properties to ancestors, and simplifying inheritance.
package transform

import (
	"github.com/broady/omnigen/omni/equality"
	"github.com/broady/omnigen/omni/traverse"
)

// PrimitivePolicy decides what generics hoisting does with non-nullable
// primitive arguments when the target cannot use primitives as generic arguments.
type PrimitivePolicy string

const (
	// PrimitiveAbort skips the property.
	PrimitiveAbort PrimitivePolicy = "abort"
	// PrimitiveWrapOrBox uses the nullable form of the primitive.
	PrimitiveWrapOrBox PrimitivePolicy = "wrap_or_box"
	// PrimitiveSpecialize uses the nullable form; renderers may emit specialized classes.
	PrimitiveSpecialize PrimitivePolicy = "specialize"
)

// Options controls the transformers. Each transformer is a no-op when its toggle is off.
type Options struct {
	GenerifyTypes                bool
	CompressPropertiesToAncestor bool
	SimplifyTypeHierarchy        bool
	PrimitiveGenerification      PrimitivePolicy
	PrimitiveGenerics            bool
	SwapMaxDepth                 int
	ElevateMinLevel              equality.Level
}

func (o Options) swapDepth() int {
	if o.SwapMaxDepth <= 0 {
		return traverse.DefaultSwapDepth
	}
	return o.SwapMaxDepth
}

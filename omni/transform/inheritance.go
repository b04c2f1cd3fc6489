package transform

import (
	"github.com/pkg/errors"

	"github.com/broady/omnigen/omni"
	"github.com/broady/omnigen/omni/composition"
	"github.com/broady/omnigen/omni/traverse"
)

// SimplifyInheritance removes redundant AND members throughout the model and
// collapses two-member unions of a primitive and null into a nullable primitive.
// Shared primitives are copied, never mutated.
func SimplifyInheritance(model *omni.Model, opts Options) error {
	if !opts.SimplifyTypeHierarchy {
		return nil
	}
	w := &traverse.DepthFirst{
		Down: func(ctx *traverse.DFSContext) traverse.Step {
			c, ok := ctx.Type.(*omni.Composition)
			if !ok {
				return traverse.Continue
			}
			switch c.CompositionKind {
			case omni.And:
				if lone := composition.Reduce(c); lone != omni.Type(c) {
					return traverse.ReplaceWith(lone)
				}
			case omni.Or, omni.Xor:
				if p := nullablePrimitive(c); p != nil {
					return traverse.ReplaceWith(p)
				}
			}
			return traverse.Continue
		},
	}
	if err := w.Walk(model); err != nil {
		return errors.Wrap(err, "simplify inheritance")
	}
	return nil
}

func nullablePrimitive(c *omni.Composition) *omni.Primitive {
	if len(c.Types) != 2 {
		return nil
	}
	for i, t := range c.Types {
		if _, ok := t.(*omni.Null); !ok {
			continue
		}
		if p, ok := c.Types[1-i].(*omni.Primitive); ok {
			return omni.AsNullable(p)
		}
	}
	return nil
}

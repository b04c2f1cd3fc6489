// Package traverse walks and rewrites omni type graphs.
package traverse

import (
	"github.com/hashicorp/go-set/v3"

	"github.com/broady/omnigen/omni"
)

// BFSContext describes one node reached by a breadth-first walk.
type BFSContext struct {
	Type omni.Type

	// Parent is the type whose structural edge led here, if any.
	Parent omni.Type

	// Owner is the property, endpoint input or output, or type that references Type.
	Owner omni.TypeOwner

	// TypeDepth counts structural edges only (inheritance, containers, generics).
	TypeDepth int

	// UseDepth counts every edge.
	UseDepth int

	// Skip may be set by the callback to stop descending below Type.
	Skip bool
}

// BreadthFirst visits every type reachable from inputs, level by level.
// Inputs may be models, endpoint inputs or outputs, properties or types.
// With once, each type is visited at most once; otherwise a type is only
// suppressed when it is revisited along an edge already taken.
// fn returning false stops the walk.
func BreadthFirst(inputs []omni.TypeOwner, once bool, fn func(*BFSContext) bool) {
	var queue []*BFSContext
	for _, in := range inputs {
		queue = append(queue, rootContexts(in)...)
	}

	visited := set.New[omni.Type](len(queue))
	seenEdges := set.New[edge](len(queue))

	for len(queue) > 0 {
		ctx := queue[0]
		queue = queue[1:]
		if ctx.Type == nil {
			continue
		}
		if once {
			if !visited.Insert(ctx.Type) {
				continue
			}
		} else if !seenEdges.Insert(edge{ctx.Owner, ctx.Type}) {
			continue
		}

		if !fn(ctx) {
			return
		}
		if ctx.Skip {
			continue
		}
		queue = append(queue, children(ctx)...)
	}
}

type edge struct {
	owner omni.TypeOwner
	t     omni.Type
}

func rootContexts(in omni.TypeOwner) []*BFSContext {
	switch in := in.(type) {
	case *omni.Model:
		var out []*BFSContext
		for _, e := range in.Endpoints {
			if e.Request != nil && e.Request.Type != nil {
				out = append(out, &BFSContext{Type: e.Request.Type, Owner: e.Request})
			}
			for _, r := range e.Responses {
				out = append(out, &BFSContext{Type: r.Type, Owner: r})
			}
		}
		for _, c := range in.Continuations {
			for _, m := range c.Mappings {
				for _, p := range m.Source {
					out = append(out, &BFSContext{Type: p.Type, Owner: p})
				}
				for _, p := range m.Target {
					out = append(out, &BFSContext{Type: p.Type, Owner: p})
				}
			}
		}
		for _, t := range in.Types {
			out = append(out, &BFSContext{Type: t, Owner: in})
		}
		return out
	case *omni.Input:
		return []*BFSContext{{Type: in.Type, Owner: in}}
	case *omni.Output:
		return []*BFSContext{{Type: in.Type, Owner: in}}
	case *omni.Property:
		return []*BFSContext{{Type: in.Type, Owner: in}}
	case omni.Type:
		return []*BFSContext{{Type: in}}
	}
	return nil
}

func children(ctx *BFSContext) []*BFSContext {
	var out []*BFSContext
	structural := func(child omni.Type) {
		if child != nil {
			out = append(out, &BFSContext{Type: child, Parent: ctx.Type, Owner: ctx.Type, TypeDepth: ctx.TypeDepth + 1, UseDepth: ctx.UseDepth + 1})
		}
	}
	use := func(child omni.Type, owner omni.TypeOwner) {
		if child != nil {
			out = append(out, &BFSContext{Type: child, Owner: owner, TypeDepth: ctx.TypeDepth, UseDepth: ctx.UseDepth + 1})
		}
	}
	props := func(ps []*omni.Property) {
		for _, p := range ps {
			use(p.Type, p)
		}
	}

	switch t := ctx.Type.(type) {
	case *omni.Object:
		structural(t.ExtendedBy)
		props(t.Properties)
	case *omni.Enum:
		structural(t.ExtendedBy)
	case *omni.Interface:
		structural(t.Of)
		structural(t.ExtendedBy)
	case *omni.Array:
		structural(t.Of)
	case *omni.Dictionary:
		structural(t.KeyType)
		structural(t.ValueType)
	case *omni.ArrayTypesByPosition:
		for _, c := range t.Types {
			use(c, t)
		}
		structural(t.CommonDenominator)
	case *omni.ArrayPropertiesByPosition:
		props(t.Properties)
		structural(t.CommonDenominator)
	case *omni.Composition:
		for _, c := range t.Types {
			use(c, t)
		}
	case *omni.Unknown:
		structural(t.UpperBound)
	case *omni.GenericSource:
		structural(t.Of)
		for _, id := range t.SourceIdentifiers {
			use(id, t)
		}
	case *omni.GenericSourceIdentifier:
		structural(t.LowerBound)
		structural(t.UpperBound)
	case *omni.GenericTarget:
		for _, id := range t.TargetIdentifiers {
			use(id, t)
		}
		if t.Source != nil {
			structural(t.Source)
		}
	case *omni.GenericTargetIdentifier:
		use(t.Type, t)
	}
	return out
}

// AllTypes returns every type reachable from inputs, each once, in breadth-first order.
func AllTypes(inputs ...omni.TypeOwner) []omni.Type {
	var out []omni.Type
	BreadthFirst(inputs, true, func(ctx *BFSContext) bool {
		out = append(out, ctx.Type)
		return true
	})
	return out
}

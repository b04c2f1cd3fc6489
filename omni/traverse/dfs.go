package traverse

import (
	"github.com/hashicorp/go-set/v3"

	"github.com/broady/omnigen/omni"
)

// Step is what a DepthFirst callback asks the walker to do next.
type Step struct {
	action      action
	replacement omni.Type
}

type action int

const (
	actionContinue action = iota
	actionSkip
	actionReplace
)

var (
	// Continue descends into the current node's children.
	Continue = Step{}

	// Skip leaves the current node's children unvisited.
	Skip = Step{action: actionSkip}
)

// ReplaceWith swaps the current node for t at its parent and continues into t.
func ReplaceWith(t omni.Type) Step {
	return Step{action: actionReplace, replacement: t}
}

// DFSContext describes one node reached by a depth-first walk.
type DFSContext struct {
	Type   omni.Type
	Parent omni.TypeOwner
	Depth  int
}

// DepthFirst walks a type graph depth first, calling Down before a node's
// children and Up after them.
//
// By default a node is suppressed only when it already appears among its own
// ancestors, so shared nodes are revisited in sibling branches. With Once,
// every node is visited at most once per walk.
type DepthFirst struct {
	Down func(*DFSContext) Step
	Up   func(*DFSContext)
	Once bool
}

// Walk runs the traversal from input. A replacement that cannot be applied
// at its parent is returned as an error.
func (w *DepthFirst) Walk(input omni.TypeOwner) error {
	st := &dfsState{w: w, visited: set.New[omni.Type](0)}
	switch in := input.(type) {
	case *omni.Model:
		for _, e := range in.Endpoints {
			if e.Request != nil {
				if err := st.visit(e.Request.Type, e.Request, 0); err != nil {
					return err
				}
			}
			for _, r := range e.Responses {
				if err := st.visit(r.Type, r, 0); err != nil {
					return err
				}
			}
		}
		// Replacements may splice the root list, so iterate over a copy.
		for _, t := range append([]omni.Type(nil), in.Types...) {
			if err := st.visit(t, in, 0); err != nil {
				return err
			}
		}
		return nil
	case *omni.Input:
		return st.visit(in.Type, in, 0)
	case *omni.Output:
		return st.visit(in.Type, in, 0)
	case *omni.Property:
		return st.visit(in.Type, in, 0)
	case omni.Type:
		return st.visit(in, nil, 0)
	}
	return nil
}

type dfsState struct {
	w       *DepthFirst
	visited *set.Set[omni.Type]
}

func (st *dfsState) visit(t omni.Type, parent omni.TypeOwner, depth int) error {
	if t == nil {
		return nil
	}
	if st.visited.Contains(t) {
		return nil
	}

	ctx := &DFSContext{Type: t, Parent: parent, Depth: depth}
	step := Continue
	if st.w.Down != nil {
		step = st.w.Down(ctx)
	}

	switch step.action {
	case actionSkip:
		return nil
	case actionReplace:
		if step.replacement != nil && step.replacement != t {
			if parent != nil {
				if _, err := SwapType(parent, t, step.replacement, 1); err != nil {
					return err
				}
			}
			return st.visit(step.replacement, parent, depth)
		}
	}

	st.visited.Insert(t)
	if err := st.descend(t, depth+1); err != nil {
		return err
	}
	if !st.w.Once {
		st.visited.Remove(t)
	}

	if st.w.Up != nil {
		st.w.Up(ctx)
	}
	return nil
}

func (st *dfsState) descend(t omni.Type, depth int) error {
	var children []omni.Type
	switch t := t.(type) {
	case *omni.Object:
		children = append(children, t.ExtendedBy)
		for _, p := range t.Properties {
			if err := st.visit(p.Type, p, depth); err != nil {
				return err
			}
		}
	case *omni.Enum:
		children = append(children, t.ExtendedBy)
	case *omni.Interface:
		children = append(children, t.Of, t.ExtendedBy)
	case *omni.Array:
		children = append(children, t.Of)
	case *omni.Dictionary:
		children = append(children, t.KeyType, t.ValueType)
	case *omni.ArrayTypesByPosition:
		children = append(children, t.Types...)
		children = append(children, t.CommonDenominator)
	case *omni.ArrayPropertiesByPosition:
		for _, p := range t.Properties {
			if err := st.visit(p.Type, p, depth); err != nil {
				return err
			}
		}
		children = append(children, t.CommonDenominator)
	case *omni.Composition:
		children = append(children, t.Types...)
	case *omni.Unknown:
		children = append(children, t.UpperBound)
	case *omni.GenericSource:
		children = append(children, t.Of)
		for _, id := range t.SourceIdentifiers {
			children = append(children, id)
		}
	case *omni.GenericSourceIdentifier:
		children = append(children, t.LowerBound, t.UpperBound)
	case *omni.GenericTarget:
		for _, id := range t.TargetIdentifiers {
			children = append(children, id)
		}
		if t.Source != nil {
			children = append(children, t.Source)
		}
	case *omni.GenericTargetIdentifier:
		children = append(children, t.Type)
	}

	for _, c := range children {
		if err := st.visit(c, t, depth); err != nil {
			return err
		}
	}
	return nil
}

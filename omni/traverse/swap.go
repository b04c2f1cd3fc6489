package traverse

import (
	"github.com/broady/omnigen/omni"
)

// DefaultSwapDepth bounds how far below the parent SwapType searches.
const DefaultSwapDepth = 10

// SwapType replaces every reference to from with to inside parent, searching
// at most maxDepth levels down. If parent is itself from, nothing is mutated
// and to is returned so the caller can substitute it one level up; otherwise
// the result is nil.
//
// A slot that only accepts supertypes is left untouched when to is not one,
// except for interfaces and generic slots, where the swap is an error.
func SwapType(parent omni.TypeOwner, from, to omni.Type, maxDepth int) (omni.Type, error) {
	if pt, ok := parent.(omni.Type); ok && pt == from {
		return to, nil
	}
	if maxDepth <= 0 || parent == nil {
		return nil, nil
	}
	s := swapper{from: from, to: to}
	return nil, s.swapIn(parent, maxDepth)
}

// SwapTypeInModel replaces from with to throughout model.
func SwapTypeInModel(model *omni.Model, from, to omni.Type, maxDepth int) error {
	_, err := SwapType(model, from, to, maxDepth)
	return err
}

type swapper struct {
	from, to omni.Type
}

// child swaps within c and returns the node that should occupy c's slot,
// or nil if the slot is unchanged.
func (s swapper) child(c omni.Type, depth int) (omni.Type, error) {
	if c == nil {
		return nil, nil
	}
	return SwapType(c, s.from, s.to, depth)
}

func (s swapper) property(p *omni.Property, depth int) error {
	found, err := s.child(p.Type, depth)
	if err != nil {
		return err
	}
	if found != nil {
		p.Type = found
	}
	return nil
}

func (s swapper) list(types []omni.Type, depth int) error {
	for i, c := range types {
		found, err := s.child(c, depth)
		if err != nil {
			return err
		}
		if found != nil {
			types[i] = found
		}
	}
	return nil
}

// superSlot handles an extendedBy edge. A composition keeps the same depth
// since it only groups the real supertypes.
func (s swapper) superSlot(t omni.Type, depth int) error {
	super := omni.SuperTypeOf(t)
	if super == nil {
		return nil
	}
	d := depth - 1
	if _, ok := super.(*omni.Composition); ok {
		d = depth
	}
	found, err := s.child(super, d)
	if err != nil {
		return err
	}
	if found != nil && omni.IsSuperType(found) {
		omni.SetSuperType(t, found)
	}
	return nil
}

func (s swapper) swapIn(parent omni.TypeOwner, depth int) error {
	d := depth - 1
	switch p := parent.(type) {
	case *omni.Model:
		if err := s.list(p.Types, depth); err != nil {
			return err
		}
		for _, e := range p.Endpoints {
			if e.Request != nil {
				if err := s.swapIn(e.Request, depth); err != nil {
					return err
				}
			}
			for _, r := range e.Responses {
				if err := s.swapIn(r, depth); err != nil {
					return err
				}
			}
		}
		for _, c := range p.Continuations {
			for _, m := range c.Mappings {
				for _, prop := range append(append([]*omni.Property(nil), m.Source...), m.Target...) {
					if err := s.property(prop, depth); err != nil {
						return err
					}
				}
			}
		}
	case *omni.Input:
		found, err := s.child(p.Type, depth)
		if err != nil {
			return err
		}
		if found != nil {
			p.Type = found
		}
	case *omni.Output:
		found, err := s.child(p.Type, depth)
		if err != nil {
			return err
		}
		if found != nil {
			p.Type = found
		}
	case *omni.Property:
		return s.property(p, depth)

	case *omni.Composition:
		return s.list(p.Types, d)
	case *omni.Object:
		if err := s.superSlot(p, depth); err != nil {
			return err
		}
		for _, prop := range p.Properties {
			if err := s.property(prop, d); err != nil {
				return err
			}
		}
	case *omni.Enum:
		return s.superSlot(p, depth)
	case *omni.Interface:
		if err := s.superSlot(p, depth); err != nil {
			return err
		}
		found, err := s.child(p.Of, d)
		if err != nil {
			return err
		}
		if found != nil {
			if !omni.IsSuperType(found) {
				return omni.NewInvariantError("swap", found, "interface can only wrap a supertype")
			}
			p.Of = found
		}
	case *omni.Array:
		found, err := s.child(p.Of, d)
		if err != nil {
			return err
		}
		if found != nil {
			p.Of = found
		}
	case *omni.Dictionary:
		key, err := s.child(p.KeyType, d)
		if err != nil {
			return err
		}
		if key != nil {
			p.KeyType = key
		}
		value, err := s.child(p.ValueType, d)
		if err != nil {
			return err
		}
		if value != nil {
			p.ValueType = value
		}
	case *omni.ArrayTypesByPosition:
		if err := s.list(p.Types, d); err != nil {
			return err
		}
		found, err := s.child(p.CommonDenominator, d)
		if err != nil {
			return err
		}
		if found != nil {
			p.CommonDenominator = found
		}
	case *omni.ArrayPropertiesByPosition:
		for _, prop := range p.Properties {
			if err := s.property(prop, d); err != nil {
				return err
			}
		}
		found, err := s.child(p.CommonDenominator, d)
		if err != nil {
			return err
		}
		if found != nil {
			p.CommonDenominator = found
		}
	case *omni.Unknown:
		found, err := s.child(p.UpperBound, d)
		if err != nil {
			return err
		}
		if found != nil {
			p.UpperBound = found
		}
	case *omni.GenericSourceIdentifier:
		lower, err := s.child(p.LowerBound, d)
		if err != nil {
			return err
		}
		if lower != nil {
			p.LowerBound = lower
		}
		upper, err := s.child(p.UpperBound, d)
		if err != nil {
			return err
		}
		if upper != nil {
			p.UpperBound = upper
		}
	case *omni.GenericTargetIdentifier:
		found, err := s.child(p.Type, d)
		if err != nil {
			return err
		}
		if found != nil {
			p.Type = found
		}
	case *omni.GenericSource:
		for i, id := range p.SourceIdentifiers {
			found, err := s.child(id, depth)
			if err != nil {
				return err
			}
			if found == nil {
				continue
			}
			replacement, ok := found.(*omni.GenericSourceIdentifier)
			if !ok {
				return omni.NewInvariantError("swap", found, "generic source identifier can only be replaced by another identifier")
			}
			p.SourceIdentifiers[i] = replacement
		}
		found, err := s.child(p.Of, d)
		if err != nil {
			return err
		}
		if found != nil {
			if !omni.IsGenericSuperType(found) {
				return omni.NewInvariantError("swap", found, "generic source can only wrap a generic supertype")
			}
			p.Of = found
		}
	case *omni.GenericTarget:
		for i, id := range p.TargetIdentifiers {
			found, err := s.child(id, depth)
			if err != nil {
				return err
			}
			if found == nil {
				continue
			}
			replacement, ok := found.(*omni.GenericTargetIdentifier)
			if !ok {
				return omni.NewInvariantError("swap", found, "generic target identifier can only be replaced by another identifier")
			}
			p.TargetIdentifiers[i] = replacement
		}
		if p.Source != nil {
			found, err := s.child(p.Source, d)
			if err != nil {
				return err
			}
			if found != nil {
				source, ok := found.(*omni.GenericSource)
				if !ok {
					return omni.NewInvariantError("swap", found, "generic target source can only be replaced by another generic source")
				}
				p.Source = source
			}
		}
	}
	return nil
}

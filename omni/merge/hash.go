// Package merge finds structurally identical types across models so they can
// be unified into one canonical node.
package merge

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/broady/omnigen/omni"
)

// Hasher computes structural digests of types, memoizing each hashed node.
// One Hasher serves one model; it must not be shared between goroutines.
type Hasher struct {
	memo     map[omni.Type]string
	visiting map[omni.Type]bool
}

// NewHasher returns a Hasher with an empty memo.
func NewHasher() *Hasher {
	return &Hasher{memo: map[omni.Type]string{}, visiting: map[omni.Type]bool{}}
}

// Memoized returns the stored digest of t, if t has been hashed.
func (h *Hasher) Memoized(t omni.Type) (string, bool) {
	d, ok := h.memo[t]
	return d, ok
}

// Hash returns the structural digest of t and memoizes it.
//
// Owners and debug lines are ignored and names are reduced to their first
// candidate. Children that were hashed before contribute their memoized
// digest. If parent has been hashed, its digest is folded in, so equal
// shapes under different parents hash differently.
func (h *Hasher) Hash(t, parent omni.Type) string {
	own := h.digest(t)
	if parent != nil {
		if pd, ok := h.memo[parent]; ok {
			sum := sha256.Sum256([]byte(own + pd))
			own = hex.EncodeToString(sum[:])
		}
	}
	h.memo[t] = own
	return own
}

// StructuralHash hashes t with a fresh memo.
func StructuralHash(t omni.Type) string {
	return NewHasher().Hash(t, nil)
}

func (h *Hasher) digest(t omni.Type) string {
	w := sha256.New()
	h.write(w, t)
	return hex.EncodeToString(w.Sum(nil))
}

func (h *Hasher) child(w io.Writer, field string, t omni.Type) {
	io.WriteString(w, field)
	io.WriteString(w, "{")
	switch {
	case t == nil:
		io.WriteString(w, "nil")
	case h.memo[t] != "":
		io.WriteString(w, "#"+h.memo[t])
	case h.visiting[t]:
		io.WriteString(w, "cycle:"+t.Kind().String()+":"+omni.Resolve(omni.NameOf(t)))
	default:
		h.write(w, t)
	}
	io.WriteString(w, "}")
}

func (h *Hasher) properties(w io.Writer, props []*omni.Property) {
	for _, p := range props {
		fmt.Fprintf(w, "prop[%q,%q,%q,%t,%t,%t,%t,%q]", p.Name, p.FieldName, p.AccessorName,
			p.Required, p.ReadOnly, p.WriteOnly, p.Deprecated, p.Description)
		h.child(w, "type", p.Type)
	}
}

func (h *Hasher) write(w io.Writer, t omni.Type) {
	h.visiting[t] = true
	defer delete(h.visiting, t)

	m := t.Meta()
	fmt.Fprintf(w, "%s(%q,%q,%q)", t.Kind(), m.Title, m.Description, m.Summary)

	switch t := t.(type) {
	case *omni.Primitive:
		fmt.Fprintf(w, "%s,%t,%T:%v", t.PrimitiveKind, t.Nullable, t.Value, t.Value)
	case *omni.Object:
		fmt.Fprintf(w, "name=%q,additional=%t", omni.Resolve(t.Name), t.AdditionalProperties)
		h.child(w, "extends", t.ExtendedBy)
		h.properties(w, t.Properties)
	case *omni.Array:
		fmt.Fprintf(w, "min=%d,max=%d", t.MinItems, t.MaxItems)
		h.child(w, "of", t.Of)
	case *omni.Dictionary:
		h.child(w, "key", t.KeyType)
		h.child(w, "value", t.ValueType)
	case *omni.ArrayTypesByPosition:
		for _, c := range t.Types {
			h.child(w, "item", c)
		}
		h.child(w, "common", t.CommonDenominator)
	case *omni.ArrayPropertiesByPosition:
		h.properties(w, t.Properties)
		h.child(w, "common", t.CommonDenominator)
	case *omni.Composition:
		io.WriteString(w, t.CompositionKind.String())
		for _, c := range t.Types {
			h.child(w, "member", c)
		}
	case *omni.Enum:
		fmt.Fprintf(w, "name=%q,item=%s", omni.Resolve(t.Name), t.ItemKind)
		for _, c := range t.Constants {
			fmt.Fprintf(w, ",%T:%v", c, c)
		}
		h.child(w, "extends", t.ExtendedBy)
	case *omni.Interface:
		fmt.Fprintf(w, "name=%q", omni.Resolve(t.Name))
		h.child(w, "of", t.Of)
		h.child(w, "extends", t.ExtendedBy)
	case *omni.HardcodedReference:
		io.WriteString(w, t.FQN)
	case *omni.Unknown:
		fmt.Fprintf(w, "any=%t", t.IsAny)
		h.child(w, "upper", t.UpperBound)
	case *omni.ExternalModelReference:
		modelName := ""
		if t.Model != nil {
			modelName = t.Model.Name
		}
		fmt.Fprintf(w, "model=%q,name=%q", modelName, omni.Resolve(t.Name))
		h.child(w, "of", t.Of)
	case *omni.GenericSource:
		h.child(w, "of", t.Of)
		for _, id := range t.SourceIdentifiers {
			h.child(w, "id", id)
		}
	case *omni.GenericSourceIdentifier:
		fmt.Fprintf(w, "placeholder=%q", t.PlaceholderName)
		h.child(w, "lower", t.LowerBound)
		h.child(w, "upper", t.UpperBound)
	case *omni.GenericTarget:
		if t.Source != nil {
			h.child(w, "source", t.Source)
		}
		for _, id := range t.TargetIdentifiers {
			h.child(w, "id", id)
		}
	case *omni.GenericTargetIdentifier:
		if t.SourceIdentifier != nil {
			fmt.Fprintf(w, "for=%q", t.SourceIdentifier.PlaceholderName)
		}
		h.child(w, "type", t.Type)
	}
}

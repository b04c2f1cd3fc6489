package omni

import "strings"

// Name is a possibly ambiguous type name. A name may offer several
// candidates; Resolve picks the first.
type Name interface {
	// Candidates returns the concrete names this name may resolve to, in preference order.
	Candidates() []string

	sealedName()
}

// LiteralName is a single fixed name.
type LiteralName string

func (n LiteralName) Candidates() []string {
	if n == "" {
		return nil
	}
	return []string{string(n)}
}
func (LiteralName) sealedName() {}

// OneOfNames offers each of its names as alternatives.
type OneOfNames []Name

func (n OneOfNames) Candidates() []string {
	var out []string
	for _, c := range n {
		if c != nil {
			out = append(out, c.Candidates()...)
		}
	}
	return out
}
func (OneOfNames) sealedName() {}

// AffixName decorates every candidate of Name with Prefix and Suffix.
type AffixName struct {
	Prefix string
	Name   Name
	Suffix string
}

func (n AffixName) Candidates() []string {
	if n.Name == nil {
		return nil
	}
	inner := n.Name.Candidates()
	out := make([]string, len(inner))
	for i, c := range inner {
		out[i] = n.Prefix + c + n.Suffix
	}
	return out
}
func (AffixName) sealedName() {}

// Resolve returns the first candidate of n, or "" if there is none.
func Resolve(n Name) string {
	if n == nil {
		return ""
	}
	if c := n.Candidates(); len(c) > 0 {
		return c[0]
	}
	return ""
}

// NamesIntersect reports whether a and b share at least one candidate.
// Two absent names intersect.
func NamesIntersect(a, b Name) bool {
	ac, bc := candidatesOf(a), candidatesOf(b)
	if len(ac) == 0 && len(bc) == 0 {
		return true
	}
	for _, x := range ac {
		for _, y := range bc {
			if x == y {
				return true
			}
		}
	}
	return false
}

func candidatesOf(n Name) []string {
	if n == nil {
		return nil
	}
	return n.Candidates()
}

// NameOf returns the declared name of t, or nil if t kind carries none.
func NameOf(t Type) Name {
	switch t := t.(type) {
	case *Object:
		return t.Name
	case *Enum:
		return t.Name
	case *Interface:
		if t.Name != nil {
			return t.Name
		}
		if t.Of != nil {
			return AffixName{Prefix: "I", Name: NameOf(t.Of)}
		}
	case *ExternalModelReference:
		if t.Name != nil {
			return t.Name
		}
		if t.Of != nil {
			return NameOf(t.Of)
		}
	case *GenericSource:
		if t.Of != nil {
			return NameOf(t.Of)
		}
	case *GenericTarget:
		if t.Source != nil {
			return NameOf(t.Source)
		}
	case *HardcodedReference:
		if i := strings.LastIndexByte(t.FQN, '.'); i >= 0 {
			return LiteralName(t.FQN[i+1:])
		}
		return LiteralName(t.FQN)
	}
	return nil
}

// PascalCase upper-cases the first letter of each word of s and drops separators.
func PascalCase(s string) string {
	var b strings.Builder
	upper := true
	for _, r := range s {
		if r == '_' || r == '-' || r == ' ' || r == '.' {
			upper = true
			continue
		}
		if upper {
			b.WriteString(strings.ToUpper(string(r)))
			upper = false
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

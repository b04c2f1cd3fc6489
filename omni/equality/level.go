// Package equality grades how equal two omni types are and computes common
// denominators that generalize them.
package equality

// Level is a graded equality score. Each band spans 100 values so callers can
// compare against band boundaries such as SemanticsMin.
type Level int

const (
	NotEqualMin   Level = 0
	NotEqualMax   Level = 99
	IsomorphicMin Level = 100
	IsomorphicMax Level = 199
	SemanticsMin  Level = 200
	SemanticsMax  Level = 299
	FunctionMin   Level = 300
	FunctionMax   Level = 399
	CloneMin      Level = 400
	CloneMax      Level = 499
	IdentityMin   Level = 500
	IdentityMax   Level = 599
)

// String returns the band name of l.
func (l Level) String() string {
	switch {
	case l < IsomorphicMin:
		return "NOT_EQUAL"
	case l < SemanticsMin:
		return "ISOMORPHIC"
	case l < FunctionMin:
		return "SEMANTICS"
	case l < CloneMin:
		return "FUNCTION"
	case l < IdentityMin:
		return "CLONE"
	default:
		return "IDENTITY"
	}
}

// ParseLevel maps a band name to its lower bound, or a *_MIN/*_MAX name to its exact value.
func ParseLevel(s string) (Level, bool) {
	switch s {
	case "NOT_EQUAL", "NOT_EQUAL_MIN":
		return NotEqualMin, true
	case "NOT_EQUAL_MAX":
		return NotEqualMax, true
	case "ISOMORPHIC", "ISOMORPHIC_MIN":
		return IsomorphicMin, true
	case "ISOMORPHIC_MAX":
		return IsomorphicMax, true
	case "SEMANTICS", "SEMANTICS_MIN":
		return SemanticsMin, true
	case "SEMANTICS_MAX":
		return SemanticsMax, true
	case "FUNCTION", "FUNCTION_MIN":
		return FunctionMin, true
	case "FUNCTION_MAX":
		return FunctionMax, true
	case "CLONE", "CLONE_MIN":
		return CloneMin, true
	case "CLONE_MAX":
		return CloneMax, true
	case "IDENTITY", "IDENTITY_MIN":
		return IdentityMin, true
	case "IDENTITY_MAX":
		return IdentityMax, true
	}
	return 0, false
}

func minLevel(a, b Level) Level {
	if a < b {
		return a
	}
	return b
}

// degrade lowers l by one band, landing inside the isomorphic band at most.
func degrade(l Level) Level {
	l -= 100
	if l > IsomorphicMax {
		l = IsomorphicMax
	}
	if l < IsomorphicMin {
		l = IsomorphicMin
	}
	return l
}

// TypeDiff names one reason two types are not interchangeable.
type TypeDiff int

const (
	// Size means the common type is wider in range.
	Size TypeDiff = iota + 1
	// Precision means the common type may lose or gain fractional precision.
	Precision
	// FundamentalType means the types have no structural relationship.
	FundamentalType
	// PolymorphicLiteral means the types are literals of different values.
	PolymorphicLiteral
	// IsomorphicType means the types are coercible representations of one value space.
	IsomorphicType
	// IsSupertype means one type was reached through the other's hierarchy.
	IsSupertype
	// NoGenericOverlap means two generic targets bind a parameter to unrelated types.
	NoGenericOverlap
	// NameMismatch means the types share no candidate name.
	NameMismatch
)

// String returns the string representation of the diff.
func (d TypeDiff) String() string {
	switch d {
	case Size:
		return "SIZE"
	case Precision:
		return "PRECISION"
	case FundamentalType:
		return "FUNDAMENTAL_TYPE"
	case PolymorphicLiteral:
		return "POLYMORPHIC_LITERAL"
	case IsomorphicType:
		return "ISOMORPHIC_TYPE"
	case IsSupertype:
		return "IS_SUPERTYPE"
	case NoGenericOverlap:
		return "NO_GENERIC_OVERLAP"
	case NameMismatch:
		return "NAME"
	default:
		return "INVALID"
	}
}

// HasDiff reports whether diffs contains d.
func HasDiff(diffs []TypeDiff, d TypeDiff) bool {
	for _, x := range diffs {
		if x == d {
			return true
		}
	}
	return false
}

func mergeDiffs(into []TypeDiff, more ...TypeDiff) []TypeDiff {
	for _, d := range more {
		if !HasDiff(into, d) {
			into = append(into, d)
		}
	}
	return into
}

package omni

// Kind identifies the category of a type node.
type Kind int

const (
	KindPrimitive Kind = iota
	KindObject
	KindArray
	KindDictionary
	KindArrayTypesByPosition
	KindArrayPropertiesByPosition
	KindComposition
	KindEnum
	KindInterface
	KindHardcodedReference
	KindUnknown
	KindNull
	KindExternalModelReference
	KindGenericSource
	KindGenericSourceIdentifier
	KindGenericTarget
	KindGenericTargetIdentifier
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "PRIMITIVE"
	case KindObject:
		return "OBJECT"
	case KindArray:
		return "ARRAY"
	case KindDictionary:
		return "DICTIONARY"
	case KindArrayTypesByPosition:
		return "ARRAY_TYPES_BY_POSITION"
	case KindArrayPropertiesByPosition:
		return "ARRAY_PROPERTIES_BY_POSITION"
	case KindComposition:
		return "COMPOSITION"
	case KindEnum:
		return "ENUM"
	case KindInterface:
		return "INTERFACE"
	case KindHardcodedReference:
		return "HARDCODED_REFERENCE"
	case KindUnknown:
		return "UNKNOWN"
	case KindNull:
		return "NULL"
	case KindExternalModelReference:
		return "EXTERNAL_MODEL_REFERENCE"
	case KindGenericSource:
		return "GENERIC_SOURCE"
	case KindGenericSourceIdentifier:
		return "GENERIC_SOURCE_IDENTIFIER"
	case KindGenericTarget:
		return "GENERIC_TARGET"
	case KindGenericTargetIdentifier:
		return "GENERIC_TARGET_IDENTIFIER"
	default:
		return "INVALID"
	}
}

// PrimitiveKind identifies a scalar value type.
type PrimitiveKind int

const (
	IntegerSmall PrimitiveKind = iota
	Integer
	Long
	Float
	Double
	Decimal
	Number
	String
	Char
	Bool
	Void
)

var primitiveKindNames = [...]string{
	IntegerSmall: "INTEGER_SMALL",
	Integer:      "INTEGER",
	Long:         "LONG",
	Float:        "FLOAT",
	Double:       "DOUBLE",
	Decimal:      "DECIMAL",
	Number:       "NUMBER",
	String:       "STRING",
	Char:         "CHAR",
	Bool:         "BOOL",
	Void:         "VOID",
}

// String returns the string representation of the primitive kind.
func (k PrimitiveKind) String() string {
	if k < 0 || int(k) >= len(primitiveKindNames) {
		return "INVALID"
	}
	return primitiveKindNames[k]
}

// IsNumeric reports whether the kind carries a numeric value.
func (k PrimitiveKind) IsNumeric() bool {
	switch k {
	case IntegerSmall, Integer, Long, Float, Double, Decimal, Number:
		return true
	}
	return false
}

// ParsePrimitiveKind returns the kind named s, case-sensitively matching String.
func ParsePrimitiveKind(s string) (PrimitiveKind, bool) {
	for i, name := range primitiveKindNames {
		if name == s {
			return PrimitiveKind(i), true
		}
	}
	return 0, false
}

// CompositionKind is the set operator of a Composition.
type CompositionKind int

const (
	And CompositionKind = iota
	Or
	Xor
	Not
)

// String returns the string representation of the composition kind.
func (k CompositionKind) String() string {
	switch k {
	case And:
		return "AND"
	case Or:
		return "OR"
	case Xor:
		return "XOR"
	case Not:
		return "NOT"
	default:
		return "INVALID"
	}
}

// ParseCompositionKind returns the composition kind named s.
func ParseCompositionKind(s string) (CompositionKind, bool) {
	switch s {
	case "AND":
		return And, true
	case "OR":
		return Or, true
	case "XOR":
		return Xor, true
	case "NOT":
		return Not, true
	}
	return 0, false
}

package omni

// Type is the base interface for every node in the type graph.
//
// Nodes are shared by pointer: two properties referring to the same
// *Object refer to the same type, and identity comparison is pointer
// comparison on the interface value. Cycles are permitted.
type Type interface {
	TypeOwner

	// Kind returns the node kind for type switching.
	Kind() Kind

	// Meta returns the documentation attached to the node.
	Meta() *Meta

	// Ensure only types in this package can implement Type.
	sealed()
}

// TypeOwner is anything that can hold a reference to a type: a model,
// an endpoint input or output, a property, or another type.
type TypeOwner interface {
	ownsTypes()
}

// Meta holds documentation carried by a type node.
// Debug lines are diagnostic only and never affect equality or hashing.
type Meta struct {
	Title       string
	Description string
	Summary     string
	Debug       []string
}

type base struct {
	meta Meta
}

func (b *base) Meta() *Meta { return &b.meta }
func (*base) ownsTypes()    {}
func (*base) sealed()       {}

// Primitive is a scalar value type. A non-nil Value makes it a literal.
type Primitive struct {
	base
	PrimitiveKind PrimitiveKind
	Nullable      bool
	Value         any
}

func (*Primitive) Kind() Kind { return KindPrimitive }

// IsLiteral reports whether the primitive is restricted to a single value.
func (p *Primitive) IsLiteral() bool { return p.Value != nil }

// Object is a named record with ordered properties and optional inheritance.
type Object struct {
	base
	Name                 Name
	Properties           []*Property
	ExtendedBy           Type
	AdditionalProperties bool
}

func (*Object) Kind() Kind { return KindObject }

// Array is a homogeneous list of Of.
type Array struct {
	base
	Of       Type
	MinItems int
	MaxItems int
}

func (*Array) Kind() Kind { return KindArray }

// Dictionary maps KeyType to ValueType.
type Dictionary struct {
	base
	KeyType   Type
	ValueType Type
}

func (*Dictionary) Kind() Kind { return KindDictionary }

// ArrayTypesByPosition is a tuple addressed by index.
type ArrayTypesByPosition struct {
	base
	Types             []Type
	CommonDenominator Type
}

func (*ArrayTypesByPosition) Kind() Kind { return KindArrayTypesByPosition }

// ArrayPropertiesByPosition is a tuple whose slots are named properties.
type ArrayPropertiesByPosition struct {
	base
	Properties        []*Property
	CommonDenominator Type
}

func (*ArrayPropertiesByPosition) Kind() Kind { return KindArrayPropertiesByPosition }

// Composition combines Types with a set operator.
type Composition struct {
	base
	CompositionKind CompositionKind
	Types           []Type
}

func (*Composition) Kind() Kind { return KindComposition }

// Enum is a closed set of constants of one primitive kind.
type Enum struct {
	base
	Name       Name
	ItemKind   PrimitiveKind
	Constants  []any
	ExtendedBy Type
}

func (*Enum) Kind() Kind { return KindEnum }

// Interface exposes the contract of Of without its implementation.
type Interface struct {
	base
	Name       Name
	Of         Type
	ExtendedBy Type
}

func (*Interface) Kind() Kind { return KindInterface }

// HardcodedReference names a type defined outside of any model.
type HardcodedReference struct {
	base
	FQN string
}

func (*HardcodedReference) Kind() Kind { return KindHardcodedReference }

// Unknown is a type about which nothing, or only an upper bound, is known.
type Unknown struct {
	base
	IsAny      bool
	UpperBound Type
}

func (*Unknown) Kind() Kind { return KindUnknown }

// Null is the type of the null value.
type Null struct {
	base
}

func (*Null) Kind() Kind { return KindNull }

// ExternalModelReference points at a type owned by another model.
type ExternalModelReference struct {
	base
	Model *Model
	Of    Type
	Name  Name
}

func (*ExternalModelReference) Kind() Kind { return KindExternalModelReference }

// GenericSource declares Of as a generic type with the given parameters.
type GenericSource struct {
	base
	Of                Type
	SourceIdentifiers []*GenericSourceIdentifier
}

func (*GenericSource) Kind() Kind { return KindGenericSource }

// GenericSourceIdentifier is a type parameter placeholder such as T.
type GenericSourceIdentifier struct {
	base
	PlaceholderName string
	LowerBound      Type
	UpperBound      Type
}

func (*GenericSourceIdentifier) Kind() Kind { return KindGenericSourceIdentifier }

// GenericTarget is an instantiation of Source.
type GenericTarget struct {
	base
	Source            *GenericSource
	TargetIdentifiers []*GenericTargetIdentifier
}

func (*GenericTarget) Kind() Kind { return KindGenericTarget }

// GenericTargetIdentifier binds one source identifier to a concrete type.
type GenericTargetIdentifier struct {
	base
	SourceIdentifier *GenericSourceIdentifier
	Type             Type
}

func (*GenericTargetIdentifier) Kind() Kind { return KindGenericTargetIdentifier }

// Compile-time interface checks.
var (
	_ Type = (*Primitive)(nil)
	_ Type = (*Object)(nil)
	_ Type = (*Array)(nil)
	_ Type = (*Dictionary)(nil)
	_ Type = (*ArrayTypesByPosition)(nil)
	_ Type = (*ArrayPropertiesByPosition)(nil)
	_ Type = (*Composition)(nil)
	_ Type = (*Enum)(nil)
	_ Type = (*Interface)(nil)
	_ Type = (*HardcodedReference)(nil)
	_ Type = (*Unknown)(nil)
	_ Type = (*Null)(nil)
	_ Type = (*ExternalModelReference)(nil)
	_ Type = (*GenericSource)(nil)
	_ Type = (*GenericSourceIdentifier)(nil)
	_ Type = (*GenericTarget)(nil)
	_ Type = (*GenericTargetIdentifier)(nil)
)

// NewPrimitive returns a non-nullable primitive of kind k.
func NewPrimitive(k PrimitiveKind) *Primitive {
	return &Primitive{PrimitiveKind: k}
}

// NewLiteral returns a primitive restricted to value v.
func NewLiteral(k PrimitiveKind, v any) *Primitive {
	return &Primitive{PrimitiveKind: k, Value: v}
}

// NewObject returns an object named name with the given properties.
// Each property's Owner is set to the new object.
func NewObject(name string, props ...*Property) *Object {
	o := &Object{Name: LiteralName(name)}
	for _, p := range props {
		AddProperty(o, p)
	}
	return o
}

// NewComposition returns a composition of kind k over types.
func NewComposition(k CompositionKind, types ...Type) *Composition {
	return &Composition{CompositionKind: k, Types: types}
}

// AsNullable returns a nullable copy of p, or p itself if already nullable.
func AsNullable(p *Primitive) *Primitive {
	if p.Nullable {
		return p
	}
	c := *p
	c.Nullable = true
	return &c
}

// Generalized returns a non-literal copy of p, or p itself if not a literal.
func Generalized(p *Primitive) *Primitive {
	if p.Value == nil {
		return p
	}
	c := *p
	c.Value = nil
	return &c
}

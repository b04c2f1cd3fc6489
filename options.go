package omnigen

import (
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"github.com/broady/omnigen/omni/equality"
	"github.com/broady/omnigen/omni/transform"
)

// Options configures a Pipeline.
//
// Options can be loaded from flat key/value pairs with ParseOptions, from a
// model document (see the modelfile package), or built in code starting from
// DefaultOptions.
type Options struct {
	// GenerifyTypes hoists differing property types of sibling subtypes into
	// generic parameters of their common supertype.
	GenerifyTypes bool `schema:"generify_types" json:"generify_types" yaml:"generify_types"`

	// CompressPropertiesToAncestor moves properties shared by every subtype
	// onto the supertype.
	CompressPropertiesToAncestor bool `schema:"compress_properties" json:"compress_properties" yaml:"compress_properties"`

	// SimplifyTypeHierarchy reduces redundant compositions.
	SimplifyTypeHierarchy bool `schema:"simplify_hierarchy" json:"simplify_hierarchy" yaml:"simplify_hierarchy"`

	// PrimitiveGenerics reports whether the target language accepts
	// non-nullable primitives as generic arguments.
	PrimitiveGenerics bool `schema:"primitive_generics" json:"primitive_generics" yaml:"primitive_generics"`

	// PrimitiveGenerification decides what to do with primitive generic
	// arguments when PrimitiveGenerics is false.
	PrimitiveGenerification string `schema:"primitive_generification" json:"primitive_generification" yaml:"primitive_generification" validate:"oneof=abort wrap_or_box specialize"`

	// SwapMaxDepth bounds how deep a type swap descends from its starting node.
	SwapMaxDepth int `schema:"swap_max_depth" json:"swap_max_depth" yaml:"swap_max_depth" validate:"gte=1,lte=64"`

	// ElevateMinLevel is the equality band a shared property type must reach
	// before it is moved to the supertype, e.g. "FUNCTION" or "SEMANTICS_MAX".
	ElevateMinLevel string `schema:"elevate_min_level" json:"elevate_min_level" yaml:"elevate_min_level" validate:"required,level"`

	// Deduplicate merges structurally identical types across models in RunAll.
	Deduplicate bool `schema:"deduplicate" json:"deduplicate" yaml:"deduplicate"`
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		GenerifyTypes:                true,
		CompressPropertiesToAncestor: true,
		SimplifyTypeHierarchy:        true,
		PrimitiveGenerification:      string(transform.PrimitiveWrapOrBox),
		SwapMaxDepth:                 10,
		ElevateMinLevel:              equality.FunctionMin.String(),
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("level", func(fl validator.FieldLevel) bool {
		_, ok := equality.ParseLevel(fl.Field().String())
		return ok
	})
	return v
}

// Validate checks the options for out-of-range values.
func (o Options) Validate() error {
	return validate.Struct(o)
}

// ParseOptions decodes options from flat key/value pairs, such as URL query
// values or repeated --set flags. Keys missing from values keep their
// DefaultOptions value.
func ParseOptions(values map[string][]string) (Options, error) {
	return DefaultOptions().With(values)
}

// With returns a copy of o with values decoded on top, validated.
func (o Options) With(values map[string][]string) (Options, error) {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(false)
	if err := dec.Decode(&o, values); err != nil {
		return Options{}, DefaultErrorTransformer(err)
	}
	if err := o.Validate(); err != nil {
		return Options{}, DefaultErrorTransformer(err)
	}
	return o, nil
}

func (o Options) toTransform() transform.Options {
	level, ok := equality.ParseLevel(o.ElevateMinLevel)
	if !ok {
		level = equality.FunctionMin
	}
	return transform.Options{
		GenerifyTypes:                o.GenerifyTypes,
		CompressPropertiesToAncestor: o.CompressPropertiesToAncestor,
		SimplifyTypeHierarchy:        o.SimplifyTypeHierarchy,
		PrimitiveGenerification:      transform.PrimitivePolicy(o.PrimitiveGenerification),
		PrimitiveGenerics:            o.PrimitiveGenerics,
		SwapMaxDepth:                 o.SwapMaxDepth,
		ElevateMinLevel:              level,
	}
}

// Package modelfile reads and writes omni models as JSON or YAML documents.
//
// A document lists named type definitions in order. Any type position may
// reference a definition with {"$ref": "Name"}, so cycles and shared
// subgraphs can be expressed:
//
//	name: pets
//	types:
//	  - name: Animal
//	    kind: object
//	    properties:
//	      - {name: id, required: true, type: {primitive: string}}
//	  - name: Dog
//	    kind: object
//	    extends: {$ref: Animal}
package modelfile

import (
	"path/filepath"
	"strings"

	"github.com/broady/omnigen"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
// Anything other than .json is treated as YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Type kinds accepted in documents.
const (
	KindPrimitive     = "primitive"
	KindObject        = "object"
	KindArray         = "array"
	KindDictionary    = "dictionary"
	KindTuple         = "tuple"
	KindPropertyTuple = "property_tuple"
	KindComposition   = "composition"
	KindEnum          = "enum"
	KindInterface     = "interface"
	KindHardcoded     = "hardcoded"
	KindUnknown       = "unknown"
	KindNull          = "null"
)

// Document is the serialized form of one model.
type Document struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`

	// Options holds pipeline options. Decode starts from omnigen.DefaultOptions,
	// so a document only needs to list the values it changes.
	Options *omnigen.Options `json:"options,omitempty" yaml:"options,omitempty"`

	// Types are the named definitions, exported in order.
	Types     []*TypeNode     `json:"types" yaml:"types"`
	Endpoints []*EndpointNode `json:"endpoints,omitempty" yaml:"endpoints,omitempty"`
}

// TypeNode is one type. Which fields apply depends on Kind.
type TypeNode struct {
	Ref string `json:"$ref,omitempty" yaml:"$ref,omitempty"`

	Kind        string   `json:"kind,omitempty" yaml:"kind,omitempty"`
	Name        string   `json:"name,omitempty" yaml:"name,omitempty"`
	Aliases     []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Title       string   `json:"title,omitempty" yaml:"title,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`

	// primitive and enum
	Primitive string `json:"primitive,omitempty" yaml:"primitive,omitempty"`
	Nullable  bool   `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Value     any    `json:"value,omitempty" yaml:"value,omitempty"`
	Constants []any  `json:"constants,omitempty" yaml:"constants,omitempty"`

	// object and property_tuple
	Properties           []*PropertyNode `json:"properties,omitempty" yaml:"properties,omitempty"`
	AdditionalProperties bool            `json:"additional_properties,omitempty" yaml:"additional_properties,omitempty"`

	// object, enum and interface
	Extends *TypeNode `json:"extends,omitempty" yaml:"extends,omitempty"`

	// array items, interface target, unknown upper bound
	Of       *TypeNode `json:"of,omitempty" yaml:"of,omitempty"`
	MinItems int       `json:"min_items,omitempty" yaml:"min_items,omitempty"`
	MaxItems int       `json:"max_items,omitempty" yaml:"max_items,omitempty"`

	// dictionary
	Keys   *TypeNode `json:"keys,omitempty" yaml:"keys,omitempty"`
	Values *TypeNode `json:"values,omitempty" yaml:"values,omitempty"`

	// composition operands and tuple slots
	Operator string      `json:"operator,omitempty" yaml:"operator,omitempty"`
	Types    []*TypeNode `json:"types,omitempty" yaml:"types,omitempty"`

	// hardcoded
	FQN string `json:"fqn,omitempty" yaml:"fqn,omitempty"`

	// unknown
	Any bool `json:"any,omitempty" yaml:"any,omitempty"`
}

// kind returns the node's kind, inferring primitive from a bare primitive field.
func (n *TypeNode) kind() string {
	if n.Kind == "" && n.Primitive != "" {
		return KindPrimitive
	}
	return n.Kind
}

// PropertyNode is one property of an object or property tuple.
type PropertyNode struct {
	Name         string    `json:"name" yaml:"name"`
	FieldName    string    `json:"field_name,omitempty" yaml:"field_name,omitempty"`
	AccessorName string    `json:"accessor_name,omitempty" yaml:"accessor_name,omitempty"`
	Type         *TypeNode `json:"type" yaml:"type"`
	Required     bool      `json:"required,omitempty" yaml:"required,omitempty"`
	ReadOnly     bool      `json:"read_only,omitempty" yaml:"read_only,omitempty"`
	WriteOnly    bool      `json:"write_only,omitempty" yaml:"write_only,omitempty"`
	Deprecated   bool      `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Description  string    `json:"description,omitempty" yaml:"description,omitempty"`
}

// EndpointNode is one endpoint of the model.
type EndpointNode struct {
	Name      string      `json:"name" yaml:"name"`
	Path      string      `json:"path,omitempty" yaml:"path,omitempty"`
	Request   *BodyNode   `json:"request,omitempty" yaml:"request,omitempty"`
	Responses []*BodyNode `json:"responses,omitempty" yaml:"responses,omitempty"`
}

// BodyNode is a request or response body.
type BodyNode struct {
	Name        string    `json:"name,omitempty" yaml:"name,omitempty"`
	ContentType string    `json:"content_type,omitempty" yaml:"content_type,omitempty"`
	Error       bool      `json:"error,omitempty" yaml:"error,omitempty"`
	Type        *TypeNode `json:"type" yaml:"type"`
}

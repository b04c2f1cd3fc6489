package modelfile

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/broady/omnigen"
	"github.com/broady/omnigen/omni"
)

// Load reads the document at path, choosing the format from its extension.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data, FormatFromPath(path))
}

// Decode parses a document. Unknown fields are rejected.
func Decode(data []byte, format Format) (*Document, error) {
	opts := omnigen.DefaultOptions()
	doc := &Document{Options: &opts}

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(doc); err != nil {
			return nil, omnigen.Errorf(omnigen.CodeInvalidModel, "decode json: %v", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(doc); err != nil {
			return nil, omnigen.Errorf(omnigen.CodeInvalidModel, "decode yaml: %v", err)
		}
	default:
		return nil, omnigen.Errorf(omnigen.CodeInvalidModel, "unknown format %q", format)
	}

	if doc.Options == nil {
		doc.Options = &opts
	}
	if err := doc.Options.Validate(); err != nil {
		return nil, omnigen.DefaultErrorTransformer(err)
	}
	return doc, nil
}

// LoadModel loads the document at path and builds its model.
func LoadModel(path string) (*omni.Model, omnigen.Options, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, omnigen.Options{}, err
	}
	m, err := doc.Model()
	if err != nil {
		return nil, omnigen.Options{}, err
	}
	return m, *doc.Options, nil
}

// Model builds a fresh type graph from the document. Every call returns new
// nodes; a definition referenced from several places is a single shared node.
func (d *Document) Model() (*omni.Model, error) {
	m := &omni.Model{Name: d.Name, Description: d.Description, Version: d.Version}
	b := &builder{defs: make(map[string]omni.Type, len(d.Types))}

	// Allocate every definition first so references, including cyclic
	// ones, resolve to the final node.
	for i, n := range d.Types {
		path := fmt.Sprintf("types[%d]", i)
		switch {
		case n == nil:
			return nil, invalid(path, "empty definition")
		case n.Ref != "":
			return nil, invalid(path, "a definition cannot be a $ref")
		case n.Name == "":
			return nil, invalid(path, "definition has no name")
		case b.defs[n.Name] != nil:
			return nil, invalid(path, "duplicate definition %q", n.Name)
		}
		t, err := alloc(n, path)
		if err != nil {
			return nil, err
		}
		b.defs[n.Name] = t
		m.Types = append(m.Types, t)
	}
	for i, n := range d.Types {
		if err := b.fill(b.defs[n.Name], n, fmt.Sprintf("types[%d]", i)); err != nil {
			return nil, err
		}
	}

	for i, e := range d.Endpoints {
		path := fmt.Sprintf("endpoints[%d]", i)
		ep := &omni.Endpoint{Name: e.Name, Path: e.Path}
		if e.Request != nil {
			t, err := b.typeOf(e.Request.Type, path+".request.type")
			if err != nil {
				return nil, err
			}
			ep.Request = &omni.Input{ContentType: e.Request.ContentType, Type: t}
		}
		for j, r := range e.Responses {
			t, err := b.typeOf(r.Type, fmt.Sprintf("%s.responses[%d].type", path, j))
			if err != nil {
				return nil, err
			}
			ep.Responses = append(ep.Responses, &omni.Output{
				Name:        r.Name,
				ContentType: r.ContentType,
				Type:        t,
				Error:       r.Error,
			})
		}
		m.Endpoints = append(m.Endpoints, ep)
	}

	for _, s := range b.supers {
		if !omni.IsSuperType(s.super) {
			return nil, invalid(s.path, "%s cannot be a supertype", omni.Describe(s.super))
		}
	}
	return m, nil
}

type pendingSuper struct {
	super omni.Type
	path  string
}

type builder struct {
	defs   map[string]omni.Type
	supers []pendingSuper
}

func invalid(path, format string, args ...any) *omnigen.Error {
	return omnigen.Errorf(omnigen.CodeInvalidModel, "%s: %s", path, fmt.Sprintf(format, args...)).
		WithDetail("path", path)
}

func alloc(n *TypeNode, path string) (omni.Type, error) {
	switch n.kind() {
	case KindPrimitive:
		return &omni.Primitive{}, nil
	case KindObject:
		return &omni.Object{}, nil
	case KindArray:
		return &omni.Array{}, nil
	case KindDictionary:
		return &omni.Dictionary{}, nil
	case KindTuple:
		return &omni.ArrayTypesByPosition{}, nil
	case KindPropertyTuple:
		return &omni.ArrayPropertiesByPosition{}, nil
	case KindComposition:
		return &omni.Composition{}, nil
	case KindEnum:
		return &omni.Enum{}, nil
	case KindInterface:
		return &omni.Interface{}, nil
	case KindHardcoded:
		return &omni.HardcodedReference{}, nil
	case KindUnknown:
		return &omni.Unknown{}, nil
	case KindNull:
		return &omni.Null{}, nil
	case "":
		return nil, invalid(path, "missing kind")
	}
	return nil, invalid(path, "unknown kind %q", n.Kind)
}

func (b *builder) typeOf(n *TypeNode, path string) (omni.Type, error) {
	if n == nil {
		return nil, invalid(path, "missing type")
	}
	if n.Ref != "" {
		t := b.defs[n.Ref]
		if t == nil {
			return nil, invalid(path, "unresolved $ref %q", n.Ref)
		}
		return t, nil
	}
	t, err := alloc(n, path)
	if err != nil {
		return nil, err
	}
	if err := b.fill(t, n, path); err != nil {
		return nil, err
	}
	return t, nil
}

func (b *builder) optional(n *TypeNode, path string) (omni.Type, error) {
	if n == nil {
		return nil, nil
	}
	return b.typeOf(n, path)
}

func (b *builder) types(nodes []*TypeNode, path string) ([]omni.Type, error) {
	out := make([]omni.Type, 0, len(nodes))
	for i, n := range nodes {
		t, err := b.typeOf(n, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (b *builder) properties(owner omni.PropertyOwner, nodes []*PropertyNode, path string) error {
	for i, pn := range nodes {
		ppath := fmt.Sprintf("%s.properties[%d]", path, i)
		if pn == nil || pn.Name == "" {
			return invalid(ppath, "property has no name")
		}
		if omni.FindProperty(owner, pn.Name) != nil {
			return invalid(ppath, "duplicate property %q", pn.Name)
		}
		t, err := b.typeOf(pn.Type, ppath+".type")
		if err != nil {
			return err
		}
		omni.AddProperty(owner, &omni.Property{
			Name:         pn.Name,
			FieldName:    pn.FieldName,
			AccessorName: pn.AccessorName,
			Type:         t,
			Required:     pn.Required,
			ReadOnly:     pn.ReadOnly,
			WriteOnly:    pn.WriteOnly,
			Deprecated:   pn.Deprecated,
			Description:  pn.Description,
		})
	}
	return nil
}

func (b *builder) extends(n *TypeNode, path string) (omni.Type, error) {
	super, err := b.optional(n, path+".extends")
	if super != nil {
		b.supers = append(b.supers, pendingSuper{super: super, path: path + ".extends"})
	}
	return super, err
}

func (b *builder) fill(t omni.Type, n *TypeNode, path string) error {
	t.Meta().Title = n.Title
	t.Meta().Description = n.Description

	var err error
	switch t := t.(type) {
	case *omni.Primitive:
		if t.PrimitiveKind, err = primitiveKind(n.Primitive, path); err != nil {
			return err
		}
		t.Nullable = n.Nullable
		t.Value, err = literal(t.PrimitiveKind, n.Value, path+".value")
	case *omni.Object:
		t.Name = nameOf(n)
		t.AdditionalProperties = n.AdditionalProperties
		if err := b.properties(t, n.Properties, path); err != nil {
			return err
		}
		t.ExtendedBy, err = b.extends(n.Extends, path)
	case *omni.Array:
		t.MinItems, t.MaxItems = n.MinItems, n.MaxItems
		t.Of, err = b.typeOf(n.Of, path+".of")
	case *omni.Dictionary:
		if n.Keys == nil {
			t.KeyType = omni.NewPrimitive(omni.String)
		} else if t.KeyType, err = b.typeOf(n.Keys, path+".keys"); err != nil {
			return err
		}
		t.ValueType, err = b.typeOf(n.Values, path+".values")
	case *omni.ArrayTypesByPosition:
		t.Types, err = b.types(n.Types, path+".types")
	case *omni.ArrayPropertiesByPosition:
		err = b.properties(t, n.Properties, path)
	case *omni.Composition:
		k, ok := omni.ParseCompositionKind(strings.ToUpper(n.Operator))
		if !ok {
			return invalid(path, "unknown composition operator %q", n.Operator)
		}
		t.CompositionKind = k
		t.Types, err = b.types(n.Types, path+".types")
	case *omni.Enum:
		t.Name = nameOf(n)
		t.ItemKind = omni.String
		if n.Primitive != "" {
			if t.ItemKind, err = primitiveKind(n.Primitive, path); err != nil {
				return err
			}
		}
		for i, c := range n.Constants {
			v, err := literal(t.ItemKind, c, fmt.Sprintf("%s.constants[%d]", path, i))
			if err != nil {
				return err
			}
			t.Constants = append(t.Constants, v)
		}
		t.ExtendedBy, err = b.extends(n.Extends, path)
	case *omni.Interface:
		t.Name = nameOf(n)
		if t.Of, err = b.typeOf(n.Of, path+".of"); err != nil {
			return err
		}
		t.ExtendedBy, err = b.extends(n.Extends, path)
	case *omni.HardcodedReference:
		if n.FQN == "" {
			return invalid(path, "hardcoded reference has no fqn")
		}
		t.FQN = n.FQN
	case *omni.Unknown:
		t.IsAny = n.Any
		t.UpperBound, err = b.optional(n.Of, path+".of")
	case *omni.Null:
	}
	return err
}

func nameOf(n *TypeNode) omni.Name {
	if n.Name == "" {
		return nil
	}
	if len(n.Aliases) == 0 {
		return omni.LiteralName(n.Name)
	}
	names := omni.OneOfNames{omni.LiteralName(n.Name)}
	for _, a := range n.Aliases {
		names = append(names, omni.LiteralName(a))
	}
	return names
}

func primitiveKind(s, path string) (omni.PrimitiveKind, error) {
	k, ok := omni.ParsePrimitiveKind(strings.ToUpper(s))
	if !ok {
		return 0, invalid(path, "unknown primitive %q", s)
	}
	return k, nil
}

// literal normalizes a decoded value so JSON and YAML documents produce
// equal literals: integers become int64 and other numbers float64.
func literal(k omni.PrimitiveKind, v any, path string) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch k {
	case omni.IntegerSmall, omni.Integer, omni.Long:
		switch x := v.(type) {
		case int:
			return int64(x), nil
		case int64:
			return x, nil
		case uint64:
			if x <= math.MaxInt64 {
				return int64(x), nil
			}
		case float64:
			if x == math.Trunc(x) {
				return int64(x), nil
			}
		}
	case omni.Float, omni.Double, omni.Decimal, omni.Number:
		switch x := v.(type) {
		case int:
			return float64(x), nil
		case int64:
			return float64(x), nil
		case uint64:
			return float64(x), nil
		case float64:
			return x, nil
		}
	case omni.String, omni.Char:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case omni.Bool:
		if x, ok := v.(bool); ok {
			return x, nil
		}
	}
	return nil, invalid(path, "%v is not a valid %s value", v, k)
}

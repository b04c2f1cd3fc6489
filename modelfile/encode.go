package modelfile

import (
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/broady/omnigen"
	"github.com/broady/omnigen/omni"
	"github.com/broady/omnigen/omni/traverse"
)

// Summary is a flat, readable view of a transformed model.
type Summary struct {
	Name        string           `json:"name" yaml:"name"`
	Types       []TypeSummary    `json:"types" yaml:"types"`
	Generics    []GenericSummary `json:"generics,omitempty" yaml:"generics,omitempty"`
	Diagnostics []string         `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// TypeSummary describes one exportable type.
type TypeSummary struct {
	Name       string            `json:"name" yaml:"name"`
	Kind       string            `json:"kind" yaml:"kind"`
	Extends    string            `json:"extends,omitempty" yaml:"extends,omitempty"`
	Properties []PropertySummary `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// PropertySummary describes one property.
type PropertySummary struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty"`
}

// GenericSummary describes one hoisted supertype.
type GenericSummary struct {
	Source  string   `json:"source" yaml:"source"`
	Targets []string `json:"targets" yaml:"targets"`
}

// Summarize flattens a pipeline result.
func Summarize(res *omnigen.Result) *Summary {
	s := &Summary{Name: res.Model.Name}
	for _, t := range traverse.AllExportableTypes(res.Model) {
		ts := TypeSummary{Name: typeName(t), Kind: t.Kind().String()}
		if super := omni.SuperTypeOf(t); super != nil {
			ts.Extends = omni.Describe(super)
		}
		for _, p := range omni.PropertiesOf(t) {
			ts.Properties = append(ts.Properties, PropertySummary{
				Name:     p.Name,
				Type:     omni.Describe(p.Type),
				Required: p.Required,
			})
		}
		s.Types = append(s.Types, ts)
	}
	for _, m := range res.GenericMappings {
		g := GenericSummary{Source: omni.Describe(m.Source)}
		for _, tm := range m.Targets {
			g.Targets = append(g.Targets, typeName(tm.Subtype)+" extends "+omni.Describe(tm.Target))
		}
		s.Generics = append(s.Generics, g)
	}
	for _, d := range res.Diagnostics {
		s.Diagnostics = append(s.Diagnostics, d.String())
	}
	return s
}

func typeName(t omni.Type) string {
	if n := omni.NameOf(t); n != nil {
		if name := omni.Resolve(n); name != "" {
			return name
		}
	}
	return omni.Describe(t)
}

// Encode writes v, typically a *Document or *Summary, in the given format.
func Encode(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return omnigen.Errorf(omnigen.CodeInvalidModel, "unknown format %q", format)
}

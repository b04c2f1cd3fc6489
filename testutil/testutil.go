// Package testutil provides helpers for building omni type graphs in tests.
// This package is designed to be import-cycle safe and can be used from any package.
package testutil

import (
	"github.com/broady/omnigen/omni"
)

// ObjectBuilder helps construct test objects with a fluent API.
type ObjectBuilder struct {
	obj *omni.Object
}

// NewObject creates a new object builder for an object named name.
func NewObject(name string) *ObjectBuilder {
	return &ObjectBuilder{obj: omni.NewObject(name)}
}

// Prop appends a property named name of type t.
func (b *ObjectBuilder) Prop(name string, t omni.Type) *ObjectBuilder {
	omni.AddProperty(b.obj, omni.NewProperty(name, t))
	return b
}

// Required appends a required property named name of type t.
func (b *ObjectBuilder) Required(name string, t omni.Type) *ObjectBuilder {
	p := omni.NewProperty(name, t)
	p.Required = true
	omni.AddProperty(b.obj, p)
	return b
}

// Extends sets the supertype.
func (b *ObjectBuilder) Extends(super omni.Type) *ObjectBuilder {
	b.obj.ExtendedBy = super
	return b
}

// Describe sets the object's description.
func (b *ObjectBuilder) Describe(description string) *ObjectBuilder {
	b.obj.Meta().Description = description
	return b
}

// Build returns the constructed object.
func (b *ObjectBuilder) Build() *omni.Object {
	return b.obj
}

// Prim returns a new non-nullable primitive of kind k.
func Prim(k omni.PrimitiveKind) *omni.Primitive {
	return omni.NewPrimitive(k)
}

// Model returns a model named name exporting types.
func Model(name string, types ...omni.Type) *omni.Model {
	return &omni.Model{Name: name, Types: types}
}

// Owners converts models to traversal inputs.
func Owners(models ...*omni.Model) []omni.TypeOwner {
	out := make([]omni.TypeOwner, len(models))
	for i, m := range models {
		out[i] = m
	}
	return out
}

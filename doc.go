// Package omnigen optimizes omni type models before code generation.
//
// A Pipeline moves shared properties to supertypes, hoists differing
// property types of sibling subtypes into generic parameters, and removes
// redundant compositions. RunAll processes independent models in parallel
// and can merge types that are structurally identical across them.
//
// The type graph itself lives in package omni and its subpackages; model
// documents are read and written by package modelfile.
package omnigen

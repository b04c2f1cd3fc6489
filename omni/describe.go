package omni

import (
	"fmt"
	"strings"
)

// Describe returns a short human-readable rendering of t for logs and diagnostics.
// The output is not stable and must not be parsed.
func Describe(t Type) string {
	return describe(t, 0)
}

const describeMaxDepth = 8

func describe(t Type, depth int) string {
	if t == nil {
		return "[undefined]"
	}
	if depth > describeMaxDepth {
		return "..."
	}
	d := depth + 1

	switch t := t.(type) {
	case *GenericSourceIdentifier:
		var parts []string
		if t.UpperBound != nil {
			parts = append(parts, "upper="+describe(t.UpperBound, d))
		}
		if t.LowerBound != nil {
			parts = append(parts, "lower="+describe(t.LowerBound, d))
		}
		if len(parts) == 0 {
			return t.PlaceholderName
		}
		return t.PlaceholderName + ": " + strings.Join(parts, ", ")
	case *GenericTargetIdentifier:
		placeholder := ""
		if t.SourceIdentifier != nil {
			placeholder = t.SourceIdentifier.PlaceholderName
		}
		return fmt.Sprintf("[%s -> %s]", describe(t.Type, d), placeholder)
	case *GenericTarget:
		ids := make([]string, len(t.TargetIdentifiers))
		for i, id := range t.TargetIdentifiers {
			ids[i] = describe(id, d)
		}
		return fmt.Sprintf("Target:%s<%s>", Resolve(NameOf(t)), strings.Join(ids, ","))
	case *GenericSource:
		ids := make([]string, len(t.SourceIdentifiers))
		for i, id := range t.SourceIdentifiers {
			ids[i] = describe(id, d)
		}
		return fmt.Sprintf("Source:%s<%s>", Resolve(NameOf(t)), strings.Join(ids, ","))
	case *Object:
		if t.ExtendedBy != nil {
			return fmt.Sprintf("%s [%s, with %s]", virtualName(t, d), t.Kind(), describe(t.ExtendedBy, d))
		}
	case *Primitive:
		prefix := "!"
		if t.Nullable {
			prefix = "?"
		}
		suffix := ""
		if t.Value != nil {
			suffix = fmt.Sprintf("=%v", t.Value)
		}
		return fmt.Sprintf("%s [%s%s %s]", t.PrimitiveKind, t.Kind(), prefix, suffix)
	case *Unknown:
		label := "?"
		if t.IsAny {
			label = "?any?"
		}
		if t.UpperBound != nil {
			return label + " : " + describe(t.UpperBound, d)
		}
		return label
	}
	return fmt.Sprintf("%s [%s]", virtualName(t, d), t.Kind())
}

// virtualName names t, inventing a structural name for anonymous kinds.
func virtualName(t Type, depth int) string {
	if n := Resolve(NameOf(t)); n != "" {
		return n
	}
	switch t := t.(type) {
	case *Array:
		return "ArrayOf" + shortName(t.Of, depth)
	case *Dictionary:
		return "DictionaryOf" + shortName(t.KeyType, depth) + "And" + shortName(t.ValueType, depth)
	case *ArrayTypesByPosition:
		names := make([]string, len(t.Types))
		for i, c := range t.Types {
			names[i] = shortName(c, depth)
		}
		return "TupleOf" + strings.Join(names, "And")
	case *ArrayPropertiesByPosition:
		names := make([]string, len(t.Properties))
		for i, p := range t.Properties {
			names[i] = PascalCase(p.Name)
		}
		return "TupleOf" + strings.Join(names, "And")
	case *Composition:
		names := make([]string, len(t.Types))
		for i, c := range t.Types {
			names[i] = shortName(c, depth)
		}
		return strings.Join(names, PascalCase(strings.ToLower(t.CompositionKind.String())))
	case *Null:
		return "Null"
	}
	return ""
}

func shortName(t Type, depth int) string {
	if t == nil {
		return "Undefined"
	}
	if depth > describeMaxDepth {
		return "Nested"
	}
	if p, ok := t.(*Primitive); ok {
		return PascalCase(strings.ToLower(p.PrimitiveKind.String()))
	}
	if u, ok := t.(*Unknown); ok {
		if u.UpperBound != nil {
			return shortName(u.UpperBound, depth+1)
		}
		return "Unknown"
	}
	if n := virtualName(t, depth+1); n != "" {
		return n
	}
	return PascalCase(strings.ToLower(t.Kind().String()))
}

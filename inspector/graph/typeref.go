package graph

import "strings"

// RefKind represents syntactic type shape
type RefKind int

const (
	RefSimple RefKind = iota
	RefOptional
	RefImplicitlyUnwrapped
	RefTuple
	RefFunction
	RefAttributed
	RefArray
	RefDictionary
)

// Placeholder is used for variables without type annotation
const Placeholder = "<#Type#>"

// TypeRef represents type annotation, compared textually
type TypeRef struct {
	Kind       RefKind
	Text       string     // Normalized text
	Name       string     // Base name for simple types, i.e. Binding for Binding<Int>
	Wrapped    *TypeRef   // Optional, implicitly unwrapped, attributed and array element
	Elements   []*TypeRef // Tuple elements, dictionary key and value, generic arguments
	Attributes []string   // Attributed type specifiers, i.e. @escaping, inout
}

// NewTypeRef creates simple type reference
func NewTypeRef(text string) *TypeRef {
	return &TypeRef{Kind: RefSimple, Text: text, Name: text}
}

// Unwrapped strips optional, implicitly unwrapped, attributed and tuple wrappers recursively
func (t *TypeRef) Unwrapped() *TypeRef {
	switch t.Kind {
	case RefOptional, RefImplicitlyUnwrapped, RefAttributed:
		if t.Wrapped != nil {
			return t.Wrapped.Unwrapped()
		}
	case RefTuple:
		if len(t.Elements) > 0 {
			return t.Elements[0].Unwrapped()
		}
	}
	return t
}

// IsFunction returns true for function types
func (t *TypeRef) IsFunction() bool {
	return t.Kind == RefFunction
}

// IsOptional returns true for T? and T!
func (t *TypeRef) IsOptional() bool {
	return t.Kind == RefOptional || t.Kind == RefImplicitlyUnwrapped
}

// Escaping returns @escaping attributed copy
func (t *TypeRef) Escaping() *TypeRef {
	return &TypeRef{Kind: RefAttributed, Text: "@escaping " + t.Text, Wrapped: t, Attributes: []string{"@escaping"}}
}

// Generic returns name<t> type
func (t *TypeRef) Generic(name string) *TypeRef {
	return &TypeRef{Kind: RefSimple, Text: name + "<" + t.Text + ">", Name: name, Elements: []*TypeRef{t}}
}

// Identifiers returns type names referenced by the type
func (t *TypeRef) Identifiers() []string {
	var result []string
	var visit func(t *TypeRef)
	visit = func(t *TypeRef) {
		if t == nil {
			return
		}
		if t.Kind == RefSimple && t.Name != "" {
			result = append(result, strings.SplitN(t.Name, ".", 2)[0])
		}
		visit(t.Wrapped)
		for _, elem := range t.Elements {
			visit(elem)
		}
	}
	visit(t)
	return result
}

// NormalizeText collapses whitespace runs
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

package graph

import "strings"

// Initializer represents init declaration
type Initializer struct {
	Attributes   []string // Attribute names without @
	Modifiers    []string
	Span         Span // From the first attribute or modifier to closing brace
	Head         Span // From Span.Start up to the parameter clause, i.e. "public init?"
	ParamClause  Span // Parameter clause including parentheses
	Parameters   []*Parameter
	Effects      string // Text between parameter clause and body, i.e. "async throws"
	Body         *Block // Nil for body-less requirements
	IsMultiline  bool   // Parameter clause spans more than one line
	IsSynthetic  bool   // Inserted initializer
}

// HasModifier returns true if initializer has modifier
func (i *Initializer) HasModifier(name string) bool {
	return contains(i.Modifiers, name)
}

// Parameter represents function or initializer parameter
type Parameter struct {
	FirstName  string
	SecondName string
	Type       *TypeRef
	Default    string
	Text       string // Verbatim parameter text
	Span       Span
}

// NewParameter creates synthesized parameter
func NewParameter(name string, typ *TypeRef) *Parameter {
	return &Parameter{
		FirstName: name,
		Type:      typ,
		Text:      name + ": " + typ.Text,
	}
}

// Name returns internal parameter name
func (p *Parameter) Name() string {
	if p.SecondName != "" {
		return p.SecondName
	}
	return p.FirstName
}

// Content returns trimmed parameter text
func (p *Parameter) Content() string {
	return strings.TrimSpace(p.Text)
}

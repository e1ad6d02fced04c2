package graph

// VariableDecl represents let/var declaration in a member block
type VariableDecl struct {
	Attributes []string // Attribute names without @
	Modifiers  []string
	Specifier  string // let or var
	Bindings   []*Binding
	Span       Span
}

// Binding represents a single pattern binding of a variable declaration
type Binding struct {
	Names          []string // Bound names, tuple patterns bind more than one
	Type           *TypeRef // Type annotation, nil if absent
	HasInitializer bool
	Initializer    string   // Initializer expression text
	Accessors      []string // Accessor keywords: get, set, willSet, didSet...
	HasGetter      bool     // Accessor block without accessor keywords
}

// HasModifier returns true if declaration has modifier
func (v *VariableDecl) HasModifier(name string) bool {
	return contains(v.Modifiers, name)
}

// HasAttribute returns true if declaration has attribute, name without @
func (v *VariableDecl) HasAttribute(name string) bool {
	return contains(v.Attributes, name)
}

// Names returns all names bound by the declaration
func (v *VariableDecl) Names() []string {
	var result []string
	for _, binding := range v.Bindings {
		result = append(result, binding.Names...)
	}
	return result
}

// IsObserverOnly returns true if binding accessors are only property observers
func (b *Binding) IsObserverOnly() bool {
	if b.HasGetter {
		return false
	}
	for _, accessor := range b.Accessors {
		if accessor != "willSet" && accessor != "didSet" {
			return false
		}
	}
	return true
}

func contains(items []string, item string) bool {
	for _, candidate := range items {
		if candidate == item {
			return true
		}
	}
	return false
}

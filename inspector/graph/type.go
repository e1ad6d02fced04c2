package graph

// TypeKind represents declaration keyword of a type
type TypeKind string

const (
	TypeClass     TypeKind = "class"
	TypeStruct    TypeKind = "struct"
	TypeActor     TypeKind = "actor"
	TypeEnum      TypeKind = "enum"
	TypeExtension TypeKind = "extension"
	TypeProtocol  TypeKind = "protocol"
)

// Type represents a type declaration with its member block
type Type struct {
	Kind       TypeKind
	Name       string
	Attributes []string // Attribute names without @
	Modifiers  []string
	Span       Span   // Declaration including attributes, modifiers and member block
	Body       Span   // Member block including braces
	Indent     string // Indentation of the line holding the declaration
	Members    []*Member

	memberMap map[string]int
}

// MemberKind represents member block item kind
type MemberKind int

const (
	MemberOther MemberKind = iota
	MemberVariable
	MemberInitializer
	MemberType
)

// Member represents member block item
type Member struct {
	Kind        MemberKind
	Span        Span // Member text including attributes and modifiers, without leading comments
	Variable    *VariableDecl
	Initializer *Initializer
	Type        *Type
}

// IsSynthesizable returns true for types owning stored properties with memberwise initializers
func (t *Type) IsSynthesizable() bool {
	switch t.Kind {
	case TypeClass, TypeStruct, TypeActor:
		return true
	}
	return false
}

// Variables returns variable members
func (t *Type) Variables() []*VariableDecl {
	var result []*VariableDecl
	for _, member := range t.Members {
		if member.Kind == MemberVariable {
			result = append(result, member.Variable)
		}
	}
	return result
}

// Initializers returns initializer members
func (t *Type) Initializers() []*Initializer {
	var result []*Initializer
	for _, member := range t.Members {
		if member.Kind == MemberInitializer {
			result = append(result, member.Initializer)
		}
	}
	return result
}

// LastVariable returns last variable member, or nil
func (t *Type) LastVariable() *Member {
	for i := len(t.Members) - 1; i >= 0; i-- {
		if t.Members[i].Kind == MemberVariable {
			return t.Members[i]
		}
	}
	return nil
}

// MemberAfter returns the member following m, or nil
func (t *Type) MemberAfter(m *Member) *Member {
	for i, member := range t.Members {
		if member == m && i+1 < len(t.Members) {
			return t.Members[i+1]
		}
	}
	return nil
}

// LookupType retrieves a member type by name
func (t *Type) LookupType(name string) *Type {
	if len(t.memberMap) == 0 {
		t.IndexMembers()
	}
	if idx, ok := t.memberMap[name]; ok && idx < len(t.Members) {
		return t.Members[idx].Type
	}
	return nil
}

func (t *Type) IndexMembers() {
	t.memberMap = make(map[string]int)
	for i, member := range t.Members {
		if member.Kind != MemberType || member.Type == nil {
			continue
		}
		if _, ok := t.memberMap[member.Type.Name]; !ok {
			t.memberMap[member.Type.Name] = i
		}
	}
}

// Walk visits nested types first, then the type itself
func (t *Type) Walk(visitor func(typ *Type) error) error {
	for _, member := range t.Members {
		switch member.Kind {
		case MemberType:
			if err := member.Type.Walk(visitor); err != nil {
				return err
			}
		case MemberInitializer:
			if member.Initializer.Body == nil {
				continue
			}
			for _, nested := range member.Initializer.Body.Types() {
				if err := nested.Walk(visitor); err != nil {
					return err
				}
			}
		}
	}
	return visitor(t)
}

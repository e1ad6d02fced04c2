package synthesizer

import "github.com/viant/interlinked/inspector/graph"

// property wrappers owning their storage
var computedAttributes = []string{"EnvironmentObject", "StateObject", "Environment", "Query"}

// Variable represents a stored property of a type declaration
type Variable struct {
	Name       string
	Type       *graph.TypeRef
	IsSet      bool // Initialized inline
	IsOptional bool // var of T? or T!
	IsComputed bool
	IsBinding  bool // @Binding property wrapper
}

// IsSettable returns true if variable needs to be initialized
func (v *Variable) IsSettable() bool {
	return !v.IsComputed
}

// Unwrapped returns type stripped of optional, attribute and tuple wrappers
func (v *Variable) Unwrapped() *graph.TypeRef {
	return v.Type.Unwrapped()
}

// IsEscaping returns true for function typed variables
func (v *Variable) IsEscaping() bool {
	return v.Type.IsFunction()
}

// ParameterType returns type of the synthesized parameter
func (v *Variable) ParameterType() *graph.TypeRef {
	switch {
	case v.IsBinding:
		return v.Type.Generic("Binding")
	case v.IsEscaping():
		return v.Type.Escaping()
	}
	return v.Type
}

// Parameter returns synthesized initializer parameter
func (v *Variable) Parameter() *graph.Parameter {
	return graph.NewParameter(v.Name, v.ParameterType())
}

// Assignment returns synthesized assignment statement
func (v *Variable) Assignment() *graph.Statement {
	if v.IsBinding {
		return graph.NewAssignmentStatement("_"+v.Name, v.Name)
	}
	return graph.NewAssignmentStatement(v.Name, v.Name)
}

// Variables returns variables of type members in declaration order, one per bound name
func Variables(typ *graph.Type) []*Variable {
	var result []*Variable
	for _, decl := range typ.Variables() {
		result = append(result, expand(decl)...)
	}
	return result
}

func expand(decl *graph.VariableDecl) []*Variable {
	if len(decl.Bindings) == 0 {
		return nil
	}
	var typeRef *graph.TypeRef
	isSet := false
	for _, binding := range decl.Bindings {
		if binding.Type != nil {
			typeRef = binding.Type
		}
		if binding.HasInitializer {
			isSet = true
		}
	}
	if typeRef == nil {
		typeRef = graph.NewTypeRef(graph.Placeholder)
	}
	last := decl.Bindings[len(decl.Bindings)-1]
	isComputed := !last.IsObserverOnly() || decl.HasModifier("lazy") || decl.HasModifier("static") || decl.HasModifier("class")
	for _, attribute := range computedAttributes {
		if decl.HasAttribute(attribute) {
			isComputed = true
		}
	}
	var result []*Variable
	for _, name := range decl.Names() {
		result = append(result, &Variable{
			Name:       name,
			Type:       typeRef,
			IsSet:      isSet,
			IsOptional: decl.Specifier == "var" && typeRef.IsOptional(),
			IsComputed: isComputed,
			IsBinding:  decl.HasAttribute("Binding"),
		})
	}
	return result
}

package swift

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/interlinked/inspector/graph"
)

// parseTypeAnnotation extracts type of ": Type" annotation
func (b *builder) parseTypeAnnotation(node *sitter.Node) *graph.TypeRef {
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child.Type() == ":" && !child.IsNamed() {
			return b.parseAnnotatedType(node, i+1)
		}
	}
	return b.parseAnnotatedType(node, 0)
}

// parseAnnotatedType extracts the type following child index from, with its attributes,
// parameter modifiers and implicit unwrapping
func (b *builder) parseAnnotatedType(node *sitter.Node, from int) *graph.TypeRef {
	var ref *graph.TypeRef
	var attributes []string
	start, end := -1, -1
	typeStart := -1
	for i := from; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "comment", "multiline_comment", "...":
			continue
		case "parameter_modifiers", "type_modifiers":
			for j := uint32(0); j < child.NamedChildCount(); j++ {
				attributes = append(attributes, graph.NormalizeText(b.text(child.NamedChild(int(j)))))
			}
		case "!":
			if ref == nil {
				continue
			}
			ref = &graph.TypeRef{
				Kind:    graph.RefImplicitlyUnwrapped,
				Text:    graph.NormalizeText(string(b.src[typeStart:int(child.EndByte())])),
				Wrapped: ref,
			}
		default:
			if ref != nil || node.FieldNameForChild(i) != "name" {
				continue
			}
			ref = b.parseTypeRef(child)
			typeStart = int(child.StartByte())
		}
		if start == -1 {
			start = int(child.StartByte())
		}
		end = int(child.EndByte())
	}
	if ref == nil || len(attributes) == 0 {
		return ref
	}
	return &graph.TypeRef{
		Kind:       graph.RefAttributed,
		Text:       graph.NormalizeText(string(b.src[start:end])),
		Wrapped:    ref,
		Attributes: attributes,
	}
}

// parseTypeRef extracts type reference
func (b *builder) parseTypeRef(node *sitter.Node) *graph.TypeRef {
	if node == nil {
		return nil
	}
	ref := &graph.TypeRef{Kind: graph.RefSimple, Text: graph.NormalizeText(b.text(node))}
	switch node.Type() {
	case "user_type":
		var names []string
		for i := uint32(0); i < node.NamedChildCount(); i++ {
			child := node.NamedChild(int(i))
			switch child.Type() {
			case "type_identifier":
				names = append(names, b.identifier(child))
			case "type_arguments":
				ref.Elements = append(ref.Elements, b.parseTypeRefs(child, "name")...)
			}
		}
		ref.Name = strings.Join(names, ".")
	case "optional_type":
		ref.Kind = graph.RefOptional
		ref.Wrapped = b.parseTypeRef(node.ChildByFieldName("wrapped"))
	case "tuple_type":
		ref.Kind = graph.RefTuple
		ref.Elements = b.tupleElements(node)
	case "function_type":
		ref.Kind = graph.RefFunction
		if params := node.ChildByFieldName("params"); params != nil {
			ref.Elements = b.tupleElements(params)
		}
		ref.Wrapped = b.parseTypeRef(node.ChildByFieldName("name"))
	case "array_type":
		ref.Kind = graph.RefArray
		ref.Wrapped = b.parseTypeRef(node.ChildByFieldName("name"))
	case "dictionary_type":
		ref.Kind = graph.RefDictionary
		ref.Elements = b.parseTypeRefs(node, "name")
	case "opaque_type", "existential_type":
		ref.Kind = graph.RefAttributed
		if node.ChildCount() > 0 {
			ref.Attributes = []string{b.text(node.Child(0))}
		}
		if node.NamedChildCount() > 0 {
			ref.Wrapped = b.parseTypeRef(node.NamedChild(0))
		}
	case "protocol_composition_type":
		for i := uint32(0); i < node.NamedChildCount(); i++ {
			ref.Elements = append(ref.Elements, b.parseTypeRef(node.NamedChild(int(i))))
		}
	default:
		ref.Name = ref.Text
	}
	return ref
}

// parseTypeRefs extracts types of node children holding field
func (b *builder) parseTypeRefs(node *sitter.Node, field string) []*graph.TypeRef {
	var result []*graph.TypeRef
	for i := 0; i < int(node.ChildCount()); i++ {
		if node.FieldNameForChild(i) == field {
			result = append(result, b.parseTypeRef(node.Child(i)))
		}
	}
	return result
}

// tupleElements extracts tuple element types, element labels share the name field with the type
func (b *builder) tupleElements(node *sitter.Node) []*graph.TypeRef {
	var result []*graph.TypeRef
	for i := uint32(0); i < node.NamedChildCount(); i++ {
		item := node.NamedChild(int(i))
		if item.Type() != "tuple_type_item" {
			continue
		}
		var typeNode *sitter.Node
		for j := 0; j < int(item.ChildCount()); j++ {
			if child := item.Child(j); item.FieldNameForChild(j) == "name" && child.Type() != "simple_identifier" {
				typeNode = child
			}
		}
		if typeNode != nil {
			result = append(result, b.parseTypeRef(typeNode))
		}
	}
	return result
}

// typeIdents returns identifier references of a type
func typeIdents(ref *graph.TypeRef) []graph.Ident {
	if ref == nil {
		return nil
	}
	var result []graph.Ident
	for _, name := range ref.Identifiers() {
		result = append(result, graph.Ident{Name: name, Pos: -1})
	}
	return result
}

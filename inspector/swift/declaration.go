package swift

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/interlinked/inspector/graph"
)

// parseTypeDeclaration extracts class, struct, enum, actor, extension or protocol declaration
func (b *builder) parseTypeDeclaration(node *sitter.Node) *graph.Type {
	typ := &graph.Type{
		Span:   b.span(node),
		Indent: b.lineIndent(int(node.StartByte())),
	}
	if node.Type() == "protocol_declaration" {
		typ.Kind = graph.TypeProtocol
	} else if kind := node.ChildByFieldName("declaration_kind"); kind != nil {
		typ.Kind = graph.TypeKind(b.text(kind))
	}
	if name := node.ChildByFieldName("name"); name != nil {
		typ.Name = graph.NormalizeText(b.text(name))
	}
	for i := uint32(0); i < node.NamedChildCount(); i++ {
		if child := node.NamedChild(int(i)); child.Type() == "modifiers" {
			typ.Attributes, typ.Modifiers = b.parseModifiers(child)
		}
	}
	body := node.ChildByFieldName("body")
	if body == nil {
		return typ
	}
	typ.Body = b.span(body)
	count := int(body.NamedChildCount())
	for i := 0; i < count; i++ {
		child := body.NamedChild(i)
		switch child.Type() {
		case "comment", "multiline_comment", "ERROR":
		case "directive":
			// conditional compilation blocks are kept as text
			end := b.directiveEnd(body, i)
			if end == i {
				continue
			}
			span := graph.Span{Start: int(child.StartByte()), End: int(body.NamedChild(end).EndByte())}
			b.opaque = append(b.opaque, span)
			typ.Members = append(typ.Members, &graph.Member{Kind: graph.MemberOther, Span: span})
			i = end
		case "property_declaration", "protocol_property_declaration":
			decl := b.parseVariableDeclaration(child)
			typ.Members = append(typ.Members, &graph.Member{Kind: graph.MemberVariable, Span: decl.Span, Variable: decl})
		case "init_declaration":
			init := b.parseInitializer(child)
			typ.Members = append(typ.Members, &graph.Member{Kind: graph.MemberInitializer, Span: init.Span, Initializer: init})
		case "class_declaration", "protocol_declaration":
			nested := b.parseTypeDeclaration(child)
			typ.Members = append(typ.Members, &graph.Member{Kind: graph.MemberType, Span: nested.Span, Type: nested})
		default:
			span := b.span(child)
			b.opaque = append(b.opaque, span)
			typ.Members = append(typ.Members, &graph.Member{Kind: graph.MemberOther, Span: span})
		}
	}
	typ.IndexMembers()
	return typ
}

// directiveEnd returns index of the #endif closing the #if at named child idx, the last child
// for unterminated blocks, or idx for other directives
func (b *builder) directiveEnd(body *sitter.Node, idx int) int {
	if directiveKeyword(b.text(body.NamedChild(idx))) != "#if" {
		return idx
	}
	count := int(body.NamedChildCount())
	depth := 0
	for i := idx; i < count; i++ {
		child := body.NamedChild(i)
		if child.Type() != "directive" {
			continue
		}
		switch directiveKeyword(b.text(child)) {
		case "#if":
			depth++
		case "#endif":
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return count - 1
}

func directiveKeyword(text string) string {
	if fields := strings.Fields(text); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

// parseModifiers splits a modifiers node into attribute names without @ and modifier keywords
func (b *builder) parseModifiers(node *sitter.Node) ([]string, []string) {
	var attributes, modifiers []string
	for i := uint32(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(int(i))
		switch child.Type() {
		case "attribute":
			attributes = append(attributes, b.attributeName(child))
		case "comment", "multiline_comment":
		default:
			modifiers = append(modifiers, b.modifierKeyword(child))
		}
	}
	return attributes, modifiers
}

func (b *builder) attributeName(node *sitter.Node) string {
	for i := uint32(0); i < node.NamedChildCount(); i++ {
		if child := node.NamedChild(int(i)); child.Type() == "user_type" {
			return graph.NormalizeText(b.text(child))
		}
	}
	return strings.TrimPrefix(b.text(node), "@")
}

// modifierKeyword returns modifier keyword without arguments, i.e. private for private(set)
func (b *builder) modifierKeyword(node *sitter.Node) string {
	if node.ChildCount() > 0 {
		return b.text(node.Child(0))
	}
	return b.text(node)
}

// parseVariableDeclaration extracts member let/var declaration with its bindings
func (b *builder) parseVariableDeclaration(node *sitter.Node) *graph.VariableDecl {
	decl := &graph.VariableDecl{Span: b.span(node)}
	var binding *graph.Binding
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		kind := child.Type()
		switch {
		case kind == "modifiers":
			decl.Attributes, decl.Modifiers = b.parseModifiers(child)
		case kind == "attribute":
			decl.Attributes = append(decl.Attributes, b.attributeName(child))
		case strings.HasSuffix(kind, "_modifier"):
			decl.Modifiers = append(decl.Modifiers, b.modifierKeyword(child))
		case kind == "value_binding_pattern":
			decl.Specifier = b.specifier(child)
		case node.FieldNameForChild(i) == "name":
			binding = &graph.Binding{Names: b.patternNames(child)}
			decl.Bindings = append(decl.Bindings, binding)
			if decl.Specifier == "" {
				decl.Specifier = b.nestedSpecifier(child)
			}
		case binding == nil:
		case kind == "type_annotation":
			binding.Type = b.parseTypeAnnotation(child)
		case node.FieldNameForChild(i) == "value":
			binding.HasInitializer = true
			binding.Initializer = strings.TrimSpace(b.text(child))
		case kind == "computed_property":
			accessors := accessorNodes(child)
			if len(accessors) == 0 {
				binding.HasGetter = true
			}
			for _, accessor := range accessors {
				binding.Accessors = append(binding.Accessors, accessorNames[accessor.Type()])
			}
		case kind == "willset_didset_block", kind == "protocol_property_requirements":
			for j := uint32(0); j < child.NamedChildCount(); j++ {
				if name, ok := accessorNames[child.NamedChild(int(j)).Type()]; ok {
					binding.Accessors = append(binding.Accessors, name)
				}
			}
		}
	}
	return decl
}

var accessorNames = map[string]string{
	"computed_getter":  "get",
	"computed_setter":  "set",
	"computed_modify":  "_modify",
	"willset_clause":   "willSet",
	"didset_clause":    "didSet",
	"getter_specifier": "get",
	"setter_specifier": "set",
}

// accessorNodes returns explicit accessors of a computed property, none for a getter shorthand
func accessorNodes(node *sitter.Node) []*sitter.Node {
	var result []*sitter.Node
	for i := uint32(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(int(i))
		switch child.Type() {
		case "computed_getter", "computed_setter", "computed_modify":
			result = append(result, child)
		}
	}
	return result
}

func (b *builder) specifier(node *sitter.Node) string {
	if mutability := node.ChildByFieldName("mutability"); mutability != nil {
		return b.text(mutability)
	}
	return strings.TrimSpace(b.text(node))
}

// nestedSpecifier returns let or var of a protocol requirement pattern
func (b *builder) nestedSpecifier(node *sitter.Node) string {
	for i := uint32(0); i < node.NamedChildCount(); i++ {
		if child := node.NamedChild(int(i)); child.Type() == "value_binding_pattern" {
			return b.specifier(child)
		}
	}
	return ""
}

// patternNames returns names bound by identifier or tuple pattern
func (b *builder) patternNames(node *sitter.Node) []string {
	var result []string
	var visit func(node *sitter.Node)
	visit = func(node *sitter.Node) {
		switch node.Type() {
		case "simple_identifier":
			if name := b.identifier(node); name != "_" {
				result = append(result, name)
			}
			return
		case "value_binding_pattern", "type_annotation":
			return
		}
		prev := ""
		for i := 0; i < int(node.ChildCount()); i++ {
			child := node.Child(i)
			if prev != "." {
				visit(child)
			}
			prev = child.Type()
		}
	}
	visit(node)
	return result
}

// parseInitializer extracts init declaration
func (b *builder) parseInitializer(node *sitter.Node) *graph.Initializer {
	init := &graph.Initializer{Span: b.span(node)}
	init.Parameters, init.ParamClause = b.parseParameters(node)
	headEnd := init.Span.Start
	var effects []string
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		start := int(child.StartByte())
		switch {
		case isComment(child):
		case child.Type() == "modifiers":
			init.Attributes, init.Modifiers = b.parseModifiers(child)
			headEnd = int(child.EndByte())
		case start < init.ParamClause.Start:
			headEnd = int(child.EndByte())
		case start < init.ParamClause.End:
		case child.Type() == "function_body":
			init.Body, _ = b.parseBlock(child, 0)
		default:
			effects = append(effects, graph.NormalizeText(b.text(child)))
		}
	}
	init.Head = graph.Span{Start: init.Span.Start, End: headEnd}
	init.Effects = strings.Join(effects, " ")
	init.IsMultiline = strings.Contains(init.ParamClause.Text(b.src), "\n")
	return init
}

// parseParameters extracts parameters of the first parameter clause of an init or function declaration,
// default values follow their parameter as siblings
func (b *builder) parseParameters(node *sitter.Node) ([]*graph.Parameter, graph.Span) {
	var params []*graph.Parameter
	clause := graph.Span{Start: -1}
	var param *graph.Parameter
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch {
		case clause.Start == -1:
			if child.Type() == "(" && !child.IsNamed() {
				clause.Start = int(child.StartByte())
			}
		case child.Type() == ")" && !child.IsNamed():
			clause.End = int(child.EndByte())
			return params, clause
		case child.Type() == "parameter":
			param = b.parseParameter(child)
			params = append(params, param)
		case node.FieldNameForChild(i) == "default_value" && param != nil:
			param.Default = strings.TrimSpace(b.text(child))
			param.Span.End = int(child.EndByte())
			param.Text = param.Span.Text(b.src)
		}
	}
	if clause.Start == -1 {
		return params, graph.Span{}
	}
	clause.End = int(node.EndByte())
	return params, clause
}

func (b *builder) parseParameter(node *sitter.Node) *graph.Parameter {
	param := &graph.Parameter{Span: b.span(node)}
	param.Text = param.Span.Text(b.src)
	if name := node.ChildByFieldName("name"); name != nil {
		param.FirstName = b.identifier(name)
	}
	if external := node.ChildByFieldName("external_name"); external != nil {
		param.SecondName = param.FirstName
		param.FirstName = b.identifier(external)
	}
	if param.SecondName == "_" {
		param.SecondName = ""
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child.Type() == ":" && !child.IsNamed() {
			param.Type = b.parseAnnotatedType(node, i+1)
			break
		}
	}
	return param
}

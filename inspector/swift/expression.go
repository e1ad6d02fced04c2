package swift

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/interlinked/inspector/graph"
)

// parseExpr collects identifier references and closures of nodes
func (b *builder) parseExpr(nodes ...*sitter.Node) *graph.Expr {
	expr := &graph.Expr{}
	for _, node := range nodes {
		if node == nil {
			continue
		}
		if expr.Span.IsZero() {
			expr.Span.Start = int(node.StartByte())
		}
		expr.Span.End = int(node.EndByte())
		b.collectExpr(node, expr)
	}
	return expr
}

// collectExpr walks an expression, members after ".", argument labels and closure bodies are not references
func (b *builder) collectExpr(node *sitter.Node, expr *graph.Expr) {
	switch node.Type() {
	case "comment", "multiline_comment", "navigation_suffix", "value_argument_label", "availability_condition", "statement_label":
		return
	case "lambda_literal":
		expr.Closures = append(expr.Closures, b.parseClosure(node))
		return
	case "simple_identifier", "type_identifier":
		b.addIdent(node, expr)
		return
	}
	prev := ""
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		kind := child.Type()
		switch {
		case child.IsExtra():
			continue
		case isLabel(node.Type(), node.FieldNameForChild(i)):
		case kind == "simple_identifier" || kind == "type_identifier":
			if prev != "." {
				b.addIdent(child, expr)
			}
		default:
			b.collectExpr(child, expr)
		}
		prev = kind
	}
}

// isLabel returns true for argument and tuple element labels
func isLabel(parent, field string) bool {
	switch parent {
	case "tuple_expression", "call_suffix", "value_argument":
		return field == "name" || field == "reference_specifier"
	}
	return false
}

func (b *builder) addIdent(node *sitter.Node, expr *graph.Expr) {
	switch name := b.identifier(node); name {
	case "self", "Self", "super", "_":
	default:
		expr.Idents = append(expr.Idents, graph.Ident{Name: name, Pos: int(node.StartByte())})
	}
}

// merge appends src facts to dest
func merge(dest, src *graph.Expr) {
	if src == nil {
		return
	}
	dest.Idents = append(dest.Idents, src.Idents...)
	dest.Closures = append(dest.Closures, src.Closures...)
	if dest.Span.IsZero() {
		dest.Span = src.Span
	} else if src.Span.End > dest.Span.End {
		dest.Span.End = src.Span.End
	}
}

// parseClosure extracts { [captures] (params) -> T in statements }
func (b *builder) parseClosure(node *sitter.Node) *graph.Closure {
	closure := &graph.Closure{Span: b.span(node), Uses: &graph.Expr{}}
	if captures := node.ChildByFieldName("captures"); captures != nil {
		for i := uint32(0); i < captures.NamedChildCount(); i++ {
			item := captures.NamedChild(int(i))
			name := item.ChildByFieldName("name")
			if item.Type() != "capture_list_item" || name == nil {
				continue
			}
			closure.Captures = append(closure.Captures, b.identifier(name))
			if value := item.ChildByFieldName("value"); value != nil {
				b.collectExpr(value, closure.Uses)
				continue
			}
			b.addIdent(name, closure.Uses)
		}
	}
	if signature := node.ChildByFieldName("type"); signature != nil {
		b.parseClosureSignature(signature, closure)
	}
	closure.Body, _ = b.parseBlock(node, 0)
	return closure
}

// parseClosureSignature extracts parameter names, parameter and result types are references
func (b *builder) parseClosureSignature(node *sitter.Node, closure *graph.Closure) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch {
		case child.Type() == "lambda_function_type_parameters":
			for j := uint32(0); j < child.NamedChildCount(); j++ {
				param := child.NamedChild(int(j))
				if param.Type() != "lambda_parameter" {
					continue
				}
				for k := 0; k < int(param.ChildCount()); k++ {
					if param.FieldNameForChild(k) != "name" {
						continue
					}
					if name := param.Child(k); name.Type() == "simple_identifier" {
						closure.Params = append(closure.Params, b.identifier(name))
					} else {
						closure.Uses.Idents = append(closure.Uses.Idents, typeIdents(b.parseTypeRef(name))...)
					}
				}
			}
		case node.FieldNameForChild(i) == "name":
			closure.Uses.Idents = append(closure.Uses.Idents, typeIdents(b.parseTypeRef(child))...)
		}
	}
}

// collectPattern walks case, catch and for-in patterns. Identifiers following let or var, or every
// identifier when bind is set, are bound names; types and expressions are references
func (b *builder) collectPattern(nodes []*sitter.Node, bind bool, names *[]string, uses *graph.Expr) {
	prev := ""
	for _, node := range nodes {
		kind := node.Type()
		switch {
		case node.IsExtra():
			continue
		case kind == "value_binding_pattern":
			bind = true
		case kind == "simple_identifier":
			if prev == "." {
				break
			}
			if bind {
				if name := b.identifier(node); name != "_" {
					*names = append(*names, name)
				}
				break
			}
			b.addIdent(node, uses)
		case kind == "pattern", kind == "switch_pattern", kind == "ERROR":
			b.collectPattern(childrenOf(node), bind, names, uses)
		case node.IsNamed():
			b.collectExpr(node, uses)
		}
		prev = kind
	}
	if len(nodes) > 0 {
		merge(uses, &graph.Expr{Span: graph.Span{Start: int(nodes[0].StartByte()), End: int(nodes[len(nodes)-1].EndByte())}})
	}
}

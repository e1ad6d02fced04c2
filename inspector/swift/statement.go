package swift

import (
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/interlinked/inspector/graph"
)

// parseBlock builds the block opening with the first "{" child at or after index from,
// returns the block and the index following its closing brace
func (b *builder) parseBlock(parent *sitter.Node, from int) (*graph.Block, int) {
	if parent == nil {
		return nil, 0
	}
	count := int(parent.ChildCount())
	for i := from; i < count; i++ {
		open := parent.Child(i)
		if open.Type() != "{" || open.IsNamed() {
			continue
		}
		block := &graph.Block{Span: graph.Span{Start: int(open.StartByte()), End: int(parent.EndByte())}}
		gap := int(open.EndByte())
		var items []*sitter.Node
		for i++; i < count; i++ {
			child := parent.Child(i)
			switch child.Type() {
			case "}":
				block.Span.End = int(child.EndByte())
				block.Statements = b.parseStatements(items, b.trailingEnd(gap))
				return block, i + 1
			case "statements":
				for j := uint32(0); j < child.NamedChildCount(); j++ {
					if item := child.NamedChild(int(j)); !isComment(item) {
						items = append(items, item)
					}
				}
			case "directive", "statement_label":
				items = append(items, child)
			default:
				if len(items) == 0 && !isComment(child) {
					gap = int(child.EndByte())
				}
			}
		}
		block.Statements = b.parseStatements(items, b.trailingEnd(gap))
		return block, count
	}
	return nil, count
}

// parseStatements builds code block items; statement labels are merged into the labeled statement
func (b *builder) parseStatements(items []*sitter.Node, gap int) []*graph.Statement {
	// directives may sit outside of the statements node
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].StartByte() < items[j].StartByte()
	})
	var result []*graph.Statement
	label := -1
	for _, item := range items {
		if item.Type() == "statement_label" {
			if label == -1 {
				label = int(item.StartByte())
			}
			continue
		}
		stmt := b.parseStatement(item)
		span := b.span(item)
		if label != -1 {
			span.Start = label
			label = -1
		}
		b.finishStatement(stmt, span, gap)
		gap = b.gapStart(stmt.Extent.End)
		result = append(result, stmt)
	}
	return result
}

// finishStatement sets statement span, extent over attached comments and blank line marker
func (b *builder) finishStatement(stmt *graph.Statement, span graph.Span, gap int) {
	stmt.Span = span
	stmt.Extent = graph.Span{Start: span.Start, End: b.trailingEnd(span.End)}
	if start, ok := b.leadingComment(gap, span.Start); ok {
		stmt.Extent.Start = start
	}
	if gap < stmt.Extent.Start {
		stmt.BlankLine = strings.Count(string(b.src[gap:stmt.Extent.Start]), "\n") >= 2
	}
}

func (b *builder) parseStatement(node *sitter.Node) *graph.Statement {
	stmt := &graph.Statement{}
	switch node.Type() {
	case "directive":
		stmt.Kind = graph.StatementOther
	case "property_declaration":
		b.parseLocalVariable(node, stmt)
	case "function_declaration":
		stmt.Kind = graph.StatementFunction
		if name := node.ChildByFieldName("name"); name != nil {
			stmt.Name = b.identifier(name)
		}
		stmt.Parameters, _ = b.parseParameters(node)
		stmt.Body, _ = b.parseBlock(node.ChildByFieldName("body"), 0)
	case "class_declaration", "protocol_declaration":
		stmt.Kind = graph.StatementType
		stmt.Type = b.parseTypeDeclaration(node)
		stmt.Name = stmt.Type.Name
	case "typealias_declaration":
		stmt.Kind = graph.StatementTypeAlias
		names := b.fieldChildren(node, "name")
		if len(names) > 0 {
			stmt.Name = b.identifier(names[0])
		}
		if len(names) > 1 {
			stmt.Values = append(stmt.Values, &graph.Expr{Idents: typeIdents(b.parseTypeRef(names[len(names)-1]))})
		}
	case "if_statement":
		b.parseIf(node, stmt)
	case "guard_statement":
		stmt.Kind = graph.StatementGuard
		var next int
		stmt.Conditions, next = b.parseConditions(node, 1)
		stmt.Else, _ = b.parseBlock(node, next)
	case "while_statement":
		stmt.Kind = graph.StatementWhile
		var next int
		stmt.Conditions, next = b.parseConditions(node, 1)
		stmt.Body, _ = b.parseBlock(node, next)
	case "repeat_while_statement":
		stmt.Kind = graph.StatementRepeat
		stmt.Body, _ = b.parseBlock(node, 0)
		stmt.Expr = b.parseExpr(node.ChildByFieldName("condition"))
	case "for_statement":
		b.parseFor(node, stmt)
	case "switch_statement":
		b.parseSwitch(node, stmt)
	case "do_statement":
		b.parseDo(node, stmt)
	case "control_transfer_statement":
		stmt.Kind = graph.StatementControlTransfer
		switch node.Child(0).Type() {
		case "return", "throw_keyword":
			var values []*sitter.Node
			for i := uint32(0); i < node.NamedChildCount(); i++ {
				if child := node.NamedChild(int(i)); child.Type() != "throw_keyword" && !isComment(child) {
					values = append(values, child)
				}
			}
			if len(values) > 0 {
				stmt.Expr = b.parseExpr(values...)
			}
		}
	case "call_expression":
		if body := deferBody(node, b.src); body != nil {
			stmt.Kind = graph.StatementDefer
			stmt.Body, _ = b.parseBlock(body, 0)
			return stmt
		}
		stmt.Kind = graph.StatementExpression
		stmt.Expr = b.parseExpr(node)
	case "assignment":
		stmt.Kind = graph.StatementExpression
		stmt.Expr = b.parseExpr(node)
		stmt.Assignment = b.parseAssignment(node)
	default:
		stmt.Kind = graph.StatementExpression
		stmt.Expr = b.parseExpr(node)
	}
	return stmt
}

// deferBody returns closure of defer { } which the grammar reads as a call with trailing closure
func deferBody(node *sitter.Node, src []byte) *sitter.Node {
	if node.NamedChildCount() != 2 {
		return nil
	}
	callee, suffix := node.NamedChild(0), node.NamedChild(1)
	if callee.Type() != "simple_identifier" || callee.Content(src) != "defer" || suffix.Type() != "call_suffix" {
		return nil
	}
	if suffix.NamedChildCount() == 1 && suffix.NamedChild(0).Type() == "lambda_literal" {
		return suffix.NamedChild(0)
	}
	return nil
}

func (b *builder) fieldChildren(node *sitter.Node, field string) []*sitter.Node {
	var result []*sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		if node.FieldNameForChild(i) == field {
			result = append(result, node.Child(i))
		}
	}
	return result
}

// parseAssignment returns facts of "=" assignment to self.name or name
func (b *builder) parseAssignment(node *sitter.Node) *graph.Assignment {
	operator := node.ChildByFieldName("operator")
	target := node.ChildByFieldName("target")
	result := node.ChildByFieldName("result")
	if operator == nil || operator.Type() != "=" || target == nil || result == nil {
		return nil
	}
	if target.Type() == "directly_assignable_expression" && target.NamedChildCount() == 1 {
		target = target.NamedChild(0)
	}
	assigner := strings.TrimSpace(string(b.src[result.StartByte():node.EndByte()]))
	switch target.Type() {
	case "simple_identifier":
		return &graph.Assignment{Assignee: b.identifier(target), Assigner: assigner}
	case "navigation_expression":
		object := target.ChildByFieldName("target")
		suffix := target.ChildByFieldName("suffix")
		if target.ChildCount() != 2 || object == nil || object.Type() != "self_expression" || suffix == nil {
			return nil
		}
		name := suffix.ChildByFieldName("suffix")
		if name == nil || name.Type() != "simple_identifier" {
			return nil
		}
		return &graph.Assignment{Assignee: b.identifier(name), Assigner: assigner, IsInstance: true}
	}
	return nil
}

// parseLocalVariable extracts local let/var declaration, type annotations and initializers are references
func (b *builder) parseLocalVariable(node *sitter.Node, stmt *graph.Statement) {
	stmt.Kind = graph.StatementVariable
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch kind := child.Type(); {
		case kind == "value_binding_pattern":
			stmt.Specifier = b.specifier(child)
		case node.FieldNameForChild(i) == "name":
			stmt.Names = append(stmt.Names, b.patternNames(child)...)
		case kind == "type_annotation":
			stmt.Values = append(stmt.Values, &graph.Expr{Span: b.span(child), Idents: typeIdents(b.parseTypeAnnotation(child))})
		case node.FieldNameForChild(i) == "value":
			stmt.Values = append(stmt.Values, b.parseExpr(child))
		case kind == "computed_property":
			accessors := accessorNodes(child)
			if len(accessors) == 0 {
				body, _ := b.parseBlock(child, 0)
				stmt.Accessors = append(stmt.Accessors, body)
			}
			for _, accessor := range accessors {
				if body, _ := b.parseBlock(accessor, 0); body != nil {
					stmt.Accessors = append(stmt.Accessors, body)
				}
			}
		case kind == "willset_didset_block":
			for j := uint32(0); j < child.NamedChildCount(); j++ {
				if body, _ := b.parseBlock(child.NamedChild(int(j)), 0); body != nil {
					stmt.Accessors = append(stmt.Accessors, body)
				}
			}
		}
	}
}

func (b *builder) parseIf(node *sitter.Node, stmt *graph.Statement) {
	stmt.Kind = graph.StatementIf
	var next int
	stmt.Conditions, next = b.parseConditions(node, 1)
	stmt.Body, next = b.parseBlock(node, next)
	for i := next; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "if_statement":
			elseIf := &graph.Statement{}
			b.parseIf(child, elseIf)
			elseIf.Span = b.span(child)
			elseIf.Extent = elseIf.Span
			stmt.ElseIf = elseIf
			return
		case "{":
			stmt.Else, _ = b.parseBlock(node, i)
			return
		}
	}
}

// parseConditions builds condition list starting at child index from, elements are separated by
// commas without field, returns index of the token ending the list
func (b *builder) parseConditions(node *sitter.Node, from int) ([]*graph.Condition, int) {
	var result []*graph.Condition
	var group []*sitter.Node
	flush := func() {
		if len(group) > 0 {
			result = append(result, b.parseCondition(group))
			group = nil
		}
	}
	i := from
	for ; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.IsExtra() {
			continue
		}
		if !child.IsNamed() && node.FieldNameForChild(i) == "" {
			switch child.Type() {
			case ",":
				flush()
				continue
			case "{", "else":
				flush()
				return result, i
			}
		}
		group = append(group, child)
	}
	flush()
	return result, i
}

func (b *builder) parseCondition(nodes []*sitter.Node) *graph.Condition {
	assign := -1
	for i, node := range nodes {
		if node.Type() == "=" && !node.IsNamed() {
			assign = i
			break
		}
	}
	switch nodes[0].Type() {
	case "case":
		condition := &graph.Condition{Kind: graph.ConditionCase, Expr: &graph.Expr{}}
		if assign == -1 {
			b.collectPattern(nodes[1:], false, &condition.Names, condition.Expr)
			return condition
		}
		b.collectPattern(nodes[1:assign], false, &condition.Names, condition.Expr)
		merge(condition.Expr, b.parseExpr(nodes[assign+1:]...))
		return condition
	case "value_binding_pattern":
		condition := &graph.Condition{Kind: graph.ConditionBinding, Expr: &graph.Expr{}}
		if assign == -1 {
			b.collectPattern(nodes, false, &condition.Names, condition.Expr)
			// if let name shorthand reads the outer name
			for _, name := range condition.Names {
				condition.Expr.Idents = append(condition.Expr.Idents, graph.Ident{Name: name, Pos: int(nodes[0].StartByte())})
			}
			return condition
		}
		b.collectPattern(nodes[:assign], false, &condition.Names, condition.Expr)
		merge(condition.Expr, b.parseExpr(nodes[assign+1:]...))
		return condition
	case "availability_condition":
		return &graph.Condition{Kind: graph.ConditionExpr, Expr: &graph.Expr{}}
	}
	return &graph.Condition{Kind: graph.ConditionExpr, Expr: b.parseExpr(nodes...)}
}

func (b *builder) parseFor(node *sitter.Node, stmt *graph.Statement) {
	stmt.Kind = graph.StatementFor
	uses := &graph.Expr{}
	item := node.ChildByFieldName("item")
	isCase := false
	for i := 0; i < int(node.ChildCount()); i++ {
		if node.Child(i).Type() == "case" {
			isCase = true
		}
	}
	if item != nil {
		if item.ChildCount() > 0 && item.Child(0).Type() == "case" {
			isCase = true
		}
		b.collectPattern([]*sitter.Node{item}, !isCase, &stmt.Names, uses)
	}
	merge(uses, b.parseExpr(node.ChildByFieldName("collection")))
	for i := uint32(0); i < node.NamedChildCount(); i++ {
		if child := node.NamedChild(int(i)); child.Type() == "where_clause" {
			merge(uses, b.parseExpr(child))
		}
	}
	stmt.Expr = uses
	stmt.Body, _ = b.parseBlock(node, 0)
}

func (b *builder) parseSwitch(node *sitter.Node, stmt *graph.Statement) {
	stmt.Kind = graph.StatementSwitch
	stmt.Expr = b.parseExpr(node.ChildByFieldName("expr"))
	for i := uint32(0); i < node.NamedChildCount(); i++ {
		if child := node.NamedChild(int(i)); child.Type() == "switch_entry" {
			stmt.Cases = append(stmt.Cases, b.parseCase(child))
		}
	}
}

// parseCase builds switch case, the body spans from the colon to the last statement
func (b *builder) parseCase(node *sitter.Node) *graph.Case {
	c := &graph.Case{Expr: &graph.Expr{}}
	colon := -1
	where := false
	var items []*sitter.Node
	for _, child := range childrenOf(node) {
		switch kind := child.Type(); {
		case child.IsExtra():
		case colon != -1:
			if kind == "statements" {
				for j := uint32(0); j < child.NamedChildCount(); j++ {
					if item := child.NamedChild(int(j)); !isComment(item) {
						items = append(items, item)
					}
				}
			}
		case kind == ":" && !child.IsNamed():
			colon = int(child.EndByte())
		case kind == "where_keyword":
			where = true
		case where:
			b.collectExpr(child, c.Expr)
		case kind == "switch_pattern":
			b.collectPattern([]*sitter.Node{child}, false, &c.Names, c.Expr)
		}
	}
	if colon == -1 {
		colon = int(node.EndByte())
	}
	c.Body = &graph.Block{Span: graph.Span{Start: colon, End: colon}}
	if len(items) > 0 {
		c.Body.Span.End = int(items[len(items)-1].EndByte())
	}
	c.Body.Statements = b.parseStatements(items, b.trailingEnd(colon))
	return c
}

func (b *builder) parseDo(node *sitter.Node, stmt *graph.Statement) {
	stmt.Kind = graph.StatementDo
	stmt.Body, _ = b.parseBlock(node, 0)
	for i := uint32(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(int(i))
		if child.Type() != "catch_block" {
			continue
		}
		c := &graph.Catch{Expr: &graph.Expr{}}
		patterns := b.fieldChildren(child, "error")
		if len(patterns) > 0 {
			c.HasPattern = true
			b.collectPattern(patterns, false, &c.Names, c.Expr)
		}
		c.Body, _ = b.parseBlock(child, 0)
		stmt.Catches = append(stmt.Catches, c)
	}
}

package scope

import "github.com/viant/interlinked/inspector/graph"

// Item represents a root initializer statement tagged with its position
type Item interface {
	ItemID() int
	Node() *graph.Statement
}

// Build builds scope tree of items, nested facts are tagged with the id of their root item
func Build[T Item](items []T) *Scope {
	b := &builder{}
	root := b.push()
	for _, item := range items {
		b.itemID = item.ItemID()
		b.statement(item.Node())
	}
	b.stack = nil
	return root
}

type builder struct {
	stack  []*Scope
	itemID int
}

func (b *builder) push() *Scope {
	scope := &Scope{}
	if len(b.stack) > 0 {
		parent := b.current()
		parent.Children = append(parent.Children, scope)
	}
	b.stack = append(b.stack, scope)
	return scope
}

func (b *builder) pop() {
	b.stack = b.stack[:len(b.stack)-1]
}

func (b *builder) current() *Scope {
	return b.stack[len(b.stack)-1]
}

func (b *builder) declare(kind DeclarationKind, names ...string) {
	scope := b.current()
	for _, name := range names {
		if name == "" || name == "_" {
			continue
		}
		scope.Declarations = append(scope.Declarations, &Declaration{Identifier: name, ItemID: b.itemID, Kind: kind})
	}
}

func (b *builder) use(names []string) {
	scope := b.current()
	seen := make(map[string]bool, len(scope.Used))
	for _, usage := range scope.Used {
		if usage.ItemID == b.itemID {
			seen[usage.Identifier] = true
		}
	}
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		scope.Used = append(scope.Used, &Usage{Identifier: name, ItemID: b.itemID})
	}
}

// block walks nested statements in a new scope declaring names first
func (b *builder) block(block *graph.Block, names ...string) {
	if block == nil {
		return
	}
	b.push()
	b.declare(Variable, names...)
	for _, stmt := range block.Statements {
		b.statement(stmt)
	}
	b.pop()
}

func (b *builder) statement(stmt *graph.Statement) {
	b.use(stmt.Identifiers())
	if assignment := stmt.Assignment; assignment != nil {
		b.current().Assignments = append(b.current().Assignments, &Assignment{
			ItemID: b.itemID,
			Info:   &AssignmentInfo{Assignee: assignment.Assignee, Assigner: assignment.Assigner, IsInstance: assignment.IsInstance},
		})
	}
	for _, expr := range stmt.Exprs() {
		b.closures(expr)
	}
	switch stmt.Kind {
	case graph.StatementVariable:
		for _, accessor := range stmt.Accessors {
			b.block(accessor)
		}
		b.declare(Variable, stmt.Names...)
	case graph.StatementFunction:
		b.declare(Function, stmt.Name)
		var names []string
		for _, param := range stmt.Parameters {
			names = append(names, param.Name())
		}
		b.block(stmt.Body, names...)
	case graph.StatementType:
		if kind, ok := typeDeclarationKinds[stmt.Type.Kind]; ok {
			b.declare(kind, stmt.Name)
		}
	case graph.StatementTypeAlias:
		b.declare(TypeAlias, stmt.Name)
	case graph.StatementIf:
		b.ifStatement(stmt)
	case graph.StatementGuard:
		b.declare(Variable, conditionNames(stmt.Conditions)...)
		b.block(stmt.Else)
	case graph.StatementWhile:
		b.block(stmt.Body, conditionNames(stmt.Conditions)...)
	case graph.StatementFor:
		b.block(stmt.Body, stmt.Names...)
	case graph.StatementSwitch:
		for _, c := range stmt.Cases {
			b.block(c.Body, c.Names...)
		}
	case graph.StatementDo:
		b.block(stmt.Body)
		for _, c := range stmt.Catches {
			if c.HasPattern {
				b.block(c.Body, c.Names...)
				continue
			}
			b.block(c.Body, "error")
		}
	case graph.StatementRepeat, graph.StatementDefer:
		b.block(stmt.Body)
	}
}

func (b *builder) ifStatement(stmt *graph.Statement) {
	names := conditionNames(stmt.Conditions)
	b.block(stmt.Body, names...)
	if stmt.ElseIf != nil {
		for _, expr := range stmt.ElseIf.Exprs() {
			b.closures(expr)
		}
		b.ifStatement(stmt.ElseIf)
		return
	}
	b.block(stmt.Else, names...)
}

func (b *builder) closures(expr *graph.Expr) {
	for _, closure := range expr.Closures {
		b.block(closure.Body, closure.Params...)
	}
}

var typeDeclarationKinds = map[graph.TypeKind]DeclarationKind{
	graph.TypeClass:  Class,
	graph.TypeStruct: Struct,
	graph.TypeActor:  Actor,
	graph.TypeEnum:   Enum,
}

func conditionNames(conditions []*graph.Condition) []string {
	var result []string
	for _, condition := range conditions {
		result = append(result, condition.Names...)
	}
	return result
}

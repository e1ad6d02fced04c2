package synthesizer

import (
	"github.com/viant/interlinked/inspector/graph"
	"github.com/viant/interlinked/synthesizer/scope"
)

// Pass represents initializer reconciliation step
type Pass interface {
	Name() string
	Apply(definitions *Definitions)
}

// ParameterRemover drops parameters the body never references
type ParameterRemover struct{}

func (r *ParameterRemover) Name() string {
	return "parameterRemover"
}

func (r *ParameterRemover) Apply(definitions *Definitions) {
	for i := len(definitions.Parameters) - 1; i >= 0; i-- {
		if !definitions.Scope.ContainsUsed(definitions.Parameters[i].Name(), false) {
			definitions.RemoveParameter(i)
		}
	}
}

// AssignmentRemover drops assignments, at any depth, to neither local variables nor settable properties
type AssignmentRemover struct{}

func (r *AssignmentRemover) Name() string {
	return "assignmentRemover"
}

func (r *AssignmentRemover) Apply(definitions *Definitions) {
	var result []Statement
	for _, stmt := range definitions.Statements {
		if stmt.Assignment != nil && !r.keep(definitions, stmt.Assignment) {
			continue
		}
		node := stmt.Statement
		for _, nested := range nestedStatements(stmt.Statement) {
			if nested.Assignment == nil || r.keep(definitions, nested.Assignment) {
				continue
			}
			node, _ = node.Without(nested)
		}
		result = append(result, Statement{Statement: node})
	}
	definitions.ReplaceStatements(result)
}

func (r *AssignmentRemover) keep(definitions *Definitions, assignment *graph.Assignment) bool {
	info := scope.AssignmentInfo{Assignee: assignment.Assignee, Assigner: assignment.Assigner, IsInstance: assignment.IsInstance}
	raw := info.RawAssignee()
	if definitions.Scope.LocalAssignment(raw) != nil {
		return true
	}
	if definitions.Scope.InstanceAssignment(raw) == nil {
		return false
	}
	for _, variable := range definitions.Variables {
		if variable.Name == raw && variable.IsSettable() {
			return true
		}
	}
	return false
}

// DeclarationRemover drops local declarations nothing references, in every statement list
type DeclarationRemover struct{}

func (r *DeclarationRemover) Name() string {
	return "declarationRemover"
}

func (r *DeclarationRemover) Apply(definitions *Definitions) {
	unused := unusedDeclarations(definitions.GraphStatements())
	var result []Statement
	for i, stmt := range definitions.Statements {
		if unused[i] {
			continue
		}
		node := stmt.Statement
		for _, nested := range r.nestedUnused(stmt.Statement) {
			node, _ = node.Without(nested)
		}
		result = append(result, Statement{Statement: node})
	}
	definitions.ReplaceStatements(result)
}

// nestedUnused returns unused declarations of nested lists, outer lists first
func (r *DeclarationRemover) nestedUnused(stmt *graph.Statement) []*graph.Statement {
	var result []*graph.Statement
	for _, block := range stmt.Blocks() {
		unused := unusedDeclarations(block.Statements)
		for i, nested := range block.Statements {
			if unused[i] {
				result = append(result, nested)
				continue
			}
			result = append(result, r.nestedUnused(nested)...)
		}
	}
	return result
}

// unusedDeclarations returns indexes of declarations list items do not reference
func unusedDeclarations(list []*graph.Statement) map[int]bool {
	result := map[int]bool{}
	var whole *scope.Scope
	for i, stmt := range list {
		switch stmt.Kind {
		case graph.StatementFunction, graph.StatementType:
			if stmt.Name == "" {
				continue
			}
			if whole == nil {
				whole = scope.Build(items(list))
			}
			if !whole.ContainsUsed(stmt.Name, true) {
				result[i] = true
			}
		case graph.StatementVariable:
			if len(stmt.Names) == 0 {
				continue
			}
			following := scope.Build(items(list[i+1:]))
			used := false
			for _, name := range stmt.Names {
				if following.ContainsUsed(name, true) {
					used = true
					break
				}
			}
			if !used {
				result[i] = true
			}
		}
	}
	return result
}

func items(list []*graph.Statement) []Statement {
	result := make([]Statement, len(list))
	for i, stmt := range list {
		result[i] = Statement{ID: i, Statement: stmt}
	}
	return result
}

// nestedStatements returns statements of nested blocks in pre-order
func nestedStatements(stmt *graph.Statement) []*graph.Statement {
	var result []*graph.Statement
	for _, block := range stmt.Blocks() {
		for _, nested := range block.Statements {
			result = append(result, nested)
			result = append(result, nestedStatements(nested)...)
		}
	}
	return result
}

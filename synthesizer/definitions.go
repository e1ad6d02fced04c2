package synthesizer

import (
	"fmt"
	"strings"

	"github.com/viant/interlinked/inspector/graph"
	"github.com/viant/interlinked/synthesizer/scope"
)

// Definitions represents initializer working set, ids stay dense after every mutation
type Definitions struct {
	Variables  []*Variable
	Parameters []Parameter
	Statements []Statement
	Scope      *scope.Scope

	parameterCache map[int]Parameter
	statementCache map[int]Statement
}

// NewDefinitions creates definitions for initializer parameters and body statements
func NewDefinitions(variables []*Variable, parameters []*graph.Parameter, statements []*graph.Statement) *Definitions {
	d := &Definitions{Variables: variables}
	params := make([]Parameter, len(parameters))
	for i, param := range parameters {
		params[i] = Parameter{Parameter: param}
	}
	items := make([]Statement, len(statements))
	for i, stmt := range statements {
		items[i] = Statement{Statement: stmt}
	}
	d.ReplaceParameters(params)
	d.ReplaceStatements(items)
	return d
}

// Parameter returns parameter by id
func (d *Definitions) Parameter(id int) (Parameter, bool) {
	param, ok := d.parameterCache[id]
	return param, ok
}

// Statement returns statement by id
func (d *Definitions) Statement(id int) (Statement, bool) {
	stmt, ok := d.statementCache[id]
	return stmt, ok
}

// LastAssignmentIndex returns id of the last root statement holding an assignment
func (d *Definitions) LastAssignmentIndex() (int, bool) {
	return d.Scope.LastAssignmentIndex()
}

// ReplaceParameters replaces parameters
func (d *Definitions) ReplaceParameters(parameters []Parameter) {
	d.Parameters = append([]Parameter{}, parameters...)
	d.reindexParameters()
}

// InsertParameter appends parameter
func (d *Definitions) InsertParameter(parameter *graph.Parameter) {
	d.Parameters = append(d.Parameters, Parameter{Parameter: parameter})
	d.reindexParameters()
}

// RemoveParameter removes parameter at index
func (d *Definitions) RemoveParameter(index int) {
	d.Parameters = append(d.Parameters[:index:index], d.Parameters[index+1:]...)
	d.reindexParameters()
}

// ReplaceStatements replaces statements and rebuilds the scope
func (d *Definitions) ReplaceStatements(statements []Statement) {
	d.Statements = append([]Statement{}, statements...)
	d.reindexStatements()
}

// InsertStatement inserts statement right after the last root assignment, or at the top of the body
func (d *Definitions) InsertStatement(statement *graph.Statement) {
	index := 0
	if last, ok := d.LastAssignmentIndex(); ok {
		index = last + 1
	}
	statements := make([]Statement, 0, len(d.Statements)+1)
	statements = append(statements, d.Statements[:index]...)
	statements = append(statements, Statement{Statement: statement})
	statements = append(statements, d.Statements[index:]...)
	d.Statements = statements
	d.reindexStatements()
}

// RemoveStatement removes statement at index and rebuilds the scope
func (d *Definitions) RemoveStatement(index int) {
	d.Statements = append(d.Statements[:index:index], d.Statements[index+1:]...)
	d.reindexStatements()
}

// GraphParameters returns parameters in current order
func (d *Definitions) GraphParameters() []*graph.Parameter {
	result := make([]*graph.Parameter, len(d.Parameters))
	for i, param := range d.Parameters {
		result[i] = param.Parameter
	}
	return result
}

// GraphStatements returns statements in current order
func (d *Definitions) GraphStatements() []*graph.Statement {
	result := make([]*graph.Statement, len(d.Statements))
	for i, stmt := range d.Statements {
		result[i] = stmt.Statement
	}
	return result
}

func (d *Definitions) reindexParameters() {
	d.parameterCache = make(map[int]Parameter, len(d.Parameters))
	for i := range d.Parameters {
		d.Parameters[i].ID = i
		d.parameterCache[i] = d.Parameters[i]
	}
}

func (d *Definitions) reindexStatements() {
	d.statementCache = make(map[int]Statement, len(d.Statements))
	for i := range d.Statements {
		d.Statements[i].ID = i
		d.statementCache[i] = d.Statements[i]
	}
	d.Scope = scope.Build(d.Statements)
}

func (d *Definitions) String() string {
	builder := strings.Builder{}
	builder.WriteString("parameters:")
	for _, param := range d.Parameters {
		builder.WriteString(fmt.Sprintf(" %d:%s", param.ID, param.Name()))
	}
	builder.WriteString(" statements:")
	for _, stmt := range d.Statements {
		builder.WriteString(fmt.Sprintf(" %d:%s", stmt.ID, stmt.Kind))
	}
	return builder.String()
}

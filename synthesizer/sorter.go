package synthesizer

import (
	"sort"

	"github.com/viant/interlinked/synthesizer/scope"
)

// Sorter orders parameters and statements by the variables they feed
type Sorter struct{}

func (s *Sorter) Name() string {
	return "sorter"
}

func (s *Sorter) Apply(definitions *Definitions) {
	dependencies := s.graph(definitions)
	last, hasLast := definitions.LastAssignmentIndex()

	remainingParameters := map[int]bool{}
	for _, param := range definitions.Parameters {
		remainingParameters[param.ID] = true
	}
	remainingStatements := map[int]bool{}
	for _, stmt := range definitions.Statements {
		remainingStatements[stmt.ID] = true
	}

	var parameters []Parameter
	var statements []Statement
	for _, variable := range definitions.Variables {
		if !variable.IsSettable() {
			continue
		}
		assignment := definitions.Scope.InstanceAssignment(variable.Name)
		if assignment == nil {
			continue
		}
		stmt, ok := definitions.Statement(assignment.ItemID)
		if !ok {
			continue
		}
		var parameterIDs, statementIDs []int
		for _, vertex := range dependencies.ancestors(stmt.Vertex()) {
			switch vertex.Kind {
			case VertexParameter:
				parameterIDs = append(parameterIDs, vertex.ID)
			case VertexStatement:
				if hasLast && vertex.ID > last {
					continue
				}
				statementIDs = append(statementIDs, vertex.ID)
			}
		}
		sort.Ints(parameterIDs)
		sort.Ints(statementIDs)
		for _, id := range parameterIDs {
			param, _ := definitions.Parameter(id)
			parameters = append(parameters, param)
			delete(remainingParameters, id)
		}
		for _, id := range statementIDs {
			item, _ := definitions.Statement(id)
			statements = append(statements, item)
			delete(remainingStatements, id)
		}
	}

	for _, id := range sortedKeys(remainingParameters) {
		param, _ := definitions.Parameter(id)
		parameters = append(parameters, param)
	}
	for _, id := range sortedKeys(remainingStatements) {
		item, _ := definitions.Statement(id)
		switch {
		case id == 0:
			statements = append([]Statement{item}, statements...)
		case hasLast && id == last+1:
			statements = append(statements, item)
		default:
			index := -1
			for i, candidate := range statements {
				if candidate.ID == id-1 {
					index = i
					break
				}
			}
			if index == -1 {
				statements = append(statements, item)
				continue
			}
			statements = append(statements[:index+1], append([]Statement{item}, statements[index+1:]...)...)
		}
	}
	definitions.ReplaceParameters(uniqueParameters(parameters))
	definitions.ReplaceStatements(uniqueStatements(statements))
}

// graph links parameters to statements using them, and statements to later statements using their declarations
func (s *Sorter) graph(definitions *Definitions) *digraph {
	result := newDigraph()
	scopes := make([]*scope.Scope, len(definitions.Statements))
	for i, stmt := range definitions.Statements {
		scopes[i] = scope.Build([]Statement{stmt})
	}
	for _, param := range definitions.Parameters {
		for i, stmt := range definitions.Statements {
			if scopes[i].ContainsUsed(param.Name(), true) {
				result.addEdge(param.Vertex(), stmt.Vertex())
			}
		}
	}
	for i, stmt := range definitions.Statements {
		for _, declaration := range scopes[i].Declarations {
			for j := i + 1; j < len(definitions.Statements); j++ {
				if scopes[j].ContainsUsed(declaration.Identifier, true) {
					result.addEdge(stmt.Vertex(), definitions.Statements[j].Vertex())
				}
			}
		}
	}
	return result
}

func sortedKeys(set map[int]bool) []int {
	result := make([]int, 0, len(set))
	for key := range set {
		result = append(result, key)
	}
	sort.Ints(result)
	return result
}

func uniqueParameters(parameters []Parameter) []Parameter {
	seen := map[int]bool{}
	var result []Parameter
	for _, param := range parameters {
		if seen[param.ID] {
			continue
		}
		seen[param.ID] = true
		result = append(result, param)
	}
	return result
}

func uniqueStatements(statements []Statement) []Statement {
	seen := map[int]bool{}
	var result []Statement
	for _, stmt := range statements {
		if seen[stmt.ID] {
			continue
		}
		seen[stmt.ID] = true
		result = append(result, stmt)
	}
	return result
}

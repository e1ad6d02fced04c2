package synthesizer

import (
	"github.com/viant/interlinked/synthesizer/scope"
)

// Injector adds parameters and assignments missing for settable variables
type Injector struct{}

func (i *Injector) Name() string {
	return "injector"
}

func (i *Injector) Apply(definitions *Definitions) {
	for _, variable := range definitions.Variables {
		if !variable.IsSettable() {
			continue
		}
		_, hasParameter := matchingParameter(definitions, variable)
		assignment := definitions.Scope.InstanceAssignment(variable.Name)
		switch {
		case hasParameter && assignment != nil:
		case hasParameter:
			definitions.InsertStatement(variable.Assignment())
		case assignment != nil:
			declared := false
			if assignment.ItemID > 0 {
				previous := scope.Build(definitions.Statements[:assignment.ItemID])
				declared = previous.ContainsDeclaration(variable.Name, scope.Variable)
			}
			if assignment.Info.RawAssignee() == assignment.Info.Assigner && !declared {
				definitions.InsertParameter(variable.Parameter())
			}
		default:
			if variable.IsOptional || variable.IsSet {
				continue
			}
			definitions.InsertParameter(variable.Parameter())
			definitions.InsertStatement(variable.Assignment())
		}
	}
}

// matchingParameter returns parameter with variable name and the unwrapped type of its synthesized parameter
func matchingParameter(definitions *Definitions, variable *Variable) (Parameter, bool) {
	expected := variable.ParameterType().Unwrapped().Text
	for _, param := range definitions.Parameters {
		if param.Name() == variable.Name && param.Unwrapped() == expected {
			return param, true
		}
	}
	return Parameter{}, false
}

package scope

import "strings"

// DeclarationKind represents kind of a declared identifier
type DeclarationKind string

const (
	Variable  DeclarationKind = "variable"
	Function  DeclarationKind = "function"
	TypeAlias DeclarationKind = "typealias"
	Actor     DeclarationKind = "actor"
	Class     DeclarationKind = "class"
	Struct    DeclarationKind = "struct"
	Enum      DeclarationKind = "enum"
)

// AssignmentInfo represents "self.x = y" or "x = y" statement facts
type AssignmentInfo struct {
	Assignee   string
	Assigner   string
	IsInstance bool
}

// RawAssignee returns assignee without a leading underscore of property wrapper storage
func (a *AssignmentInfo) RawAssignee() string {
	return strings.TrimPrefix(a.Assignee, "_")
}

// Declaration represents declared identifier, ItemID is the id of the root statement holding it
type Declaration struct {
	Identifier string          `yaml:"identifier"`
	ItemID     int             `yaml:"itemId"`
	Kind       DeclarationKind `yaml:"kind"`
}

// Assignment represents assignment held by a root statement
type Assignment struct {
	ItemID int             `yaml:"itemId"`
	Info   *AssignmentInfo `yaml:"info"`
}

// Usage represents identifier reference held by a root statement
type Usage struct {
	Identifier string `yaml:"identifier"`
	ItemID     int    `yaml:"itemId"`
}

// Scope represents lexical scope of initializer statements
type Scope struct {
	Declarations []*Declaration `yaml:"declarations,omitempty"`
	Assignments  []*Assignment  `yaml:"assignments,omitempty"`
	Used         []*Usage       `yaml:"used,omitempty"`
	Children     []*Scope       `yaml:"children,omitempty"`
}

// Walk visits scopes depth first, parent before children, until visitor returns false
func (s *Scope) Walk(visitor func(scope *Scope) bool) bool {
	if !visitor(s) {
		return false
	}
	for _, child := range s.Children {
		if !child.Walk(visitor) {
			return false
		}
	}
	return true
}

func (s *Scope) uses(identifier string) bool {
	for _, usage := range s.Used {
		if usage.Identifier == identifier {
			return true
		}
	}
	return false
}

// ContainsDeclaration returns true if identifier is declared with kind in any scope
func (s *Scope) ContainsDeclaration(identifier string, kind DeclarationKind) bool {
	found := false
	s.Walk(func(scope *Scope) bool {
		for _, declaration := range scope.Declarations {
			if declaration.Identifier == identifier && declaration.Kind == kind {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

// ContainsUsed returns true if identifier is referenced. Unless skipLocalDeclarations is set, a reference
// only counts when identifier was not declared by the scopes visited before or at the referencing scope
func (s *Scope) ContainsUsed(identifier string, skipLocalDeclarations bool) bool {
	found := false
	declared := false
	s.Walk(func(scope *Scope) bool {
		if !skipLocalDeclarations && !declared {
			for _, declaration := range scope.Declarations {
				if declaration.Identifier == identifier {
					declared = true
					break
				}
			}
		}
		if scope.uses(identifier) && (skipLocalDeclarations || !declared) {
			found = true
			return false
		}
		return true
	})
	return found
}

// InstanceAssignment returns the first assignment to the instance property identifier, either through self or
// through a bare name that no visited scope declares as a variable
func (s *Scope) InstanceAssignment(identifier string) *Assignment {
	var result *Assignment
	declared := false
	s.Walk(func(scope *Scope) bool {
		for _, declaration := range scope.Declarations {
			if declaration.Identifier == identifier && declaration.Kind == Variable {
				declared = true
			}
		}
		for _, assignment := range scope.Assignments {
			if assignment.Info.IsInstance && assignment.Info.RawAssignee() == identifier {
				result = assignment
				return false
			}
		}
		if declared {
			return true
		}
		for _, assignment := range scope.Assignments {
			if !assignment.Info.IsInstance && assignment.Info.Assignee == identifier {
				result = assignment
				return false
			}
		}
		return true
	})
	return result
}

// LocalAssignment returns the first assignment to a bare identifier
func (s *Scope) LocalAssignment(identifier string) *Assignment {
	var result *Assignment
	s.Walk(func(scope *Scope) bool {
		for _, assignment := range scope.Assignments {
			if !assignment.Info.IsInstance && assignment.Info.Assignee == identifier {
				result = assignment
				return false
			}
		}
		return true
	})
	return result
}

// LastAssignmentIndex returns the highest root statement id among root scope assignments
func (s *Scope) LastAssignmentIndex() (int, bool) {
	index, ok := -1, false
	for _, assignment := range s.Assignments {
		if assignment.ItemID > index {
			index, ok = assignment.ItemID, true
		}
	}
	return index, ok
}

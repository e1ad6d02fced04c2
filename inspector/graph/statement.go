package graph

// StatementKind represents code block item kind
type StatementKind int

const (
	StatementExpression StatementKind = iota
	StatementVariable
	StatementFunction
	StatementType
	StatementTypeAlias
	StatementIf
	StatementGuard
	StatementWhile
	StatementRepeat
	StatementFor
	StatementSwitch
	StatementDo
	StatementDefer
	StatementControlTransfer
	StatementOther
)

var statementKindNames = []string{"expression", "variable", "function", "type", "typealias", "if", "guard", "while", "repeat", "for", "switch", "do", "defer", "controlTransfer", "other"}

func (k StatementKind) String() string {
	if int(k) < len(statementKindNames) {
		return statementKindNames[k]
	}
	return "unknown"
}

// Statement represents code block item
type Statement struct {
	Kind       StatementKind
	Span       Span // Statement tokens
	Extent     Span // Span extended over comments attached above the statement
	BlankLine  bool // Preceded by an empty line
	Synthetic  string
	Expr       *Expr // Expression statement, return value, initializer values, loop sequence, switch subject
	Assignment *Assignment
	Specifier  string // let or var for variable statements
	Names      []string
	Values     []*Expr // Binding initializers and type annotations of variable statements
	Name       string  // Function, type or typealias name
	Parameters []*Parameter
	Conditions []*Condition
	Body       *Block
	Else       *Block
	ElseIf     *Statement
	Accessors  []*Block // Local computed variable accessor bodies
	Cases      []*Case
	Catches    []*Catch
	Type       *Type
}

// Assignment represents single "=" assignment expression statement
type Assignment struct {
	Assignee   string
	Assigner   string
	IsInstance bool
}

// ConditionKind represents condition element kind
type ConditionKind int

const (
	ConditionExpr ConditionKind = iota
	ConditionBinding
	ConditionCase
)

// Condition represents if/guard/while condition element
type Condition struct {
	Kind  ConditionKind
	Names []string // Bound names
	Expr  *Expr
}

// Case represents switch case
type Case struct {
	Names []string // Names bound by case patterns
	Expr  *Expr    // Case patterns and where clause
	Body  *Block
}

// Catch represents catch clause
type Catch struct {
	HasPattern bool
	Names      []string
	Expr       *Expr
	Body       *Block
}

// Block represents code block item list
type Block struct {
	Span       Span // Including braces when present
	Statements []*Statement
	Removed    []*Statement // Statements dropped from the original list
}

// Expr represents identifier usage facts of an expression
type Expr struct {
	Span     Span
	Idents   []Ident
	Closures []*Closure
}

// Ident represents identifier reference
type Ident struct {
	Name string
	Pos  int
}

// Closure represents closure expression
type Closure struct {
	Span     Span
	Params   []string
	Captures []string
	Uses     *Expr // Capture list values and signature types
	Body     *Block
}

// NewAssignmentStatement creates synthesized self.assignee = assigner statement
func NewAssignmentStatement(assignee, assigner string) *Statement {
	return &Statement{
		Kind:       StatementExpression,
		Synthetic:  "self." + assignee + " = " + assigner,
		Expr:       &Expr{Idents: []Ident{{Name: assigner, Pos: -1}}},
		Assignment: &Assignment{Assignee: assignee, Assigner: assigner, IsInstance: true},
	}
}

// IsDeclaration returns true for declaration statements
func (s *Statement) IsDeclaration() bool {
	switch s.Kind {
	case StatementVariable, StatementFunction, StatementType, StatementTypeAlias:
		return true
	}
	return false
}

// Blocks returns directly nested blocks
func (s *Statement) Blocks() []*Block {
	var result []*Block
	add := func(block *Block) {
		if block != nil {
			result = append(result, block)
		}
	}
	add(s.Body)
	add(s.Else)
	if s.ElseIf != nil {
		result = append(result, s.ElseIf.Blocks()...)
	}
	for _, accessor := range s.Accessors {
		add(accessor)
	}
	for _, c := range s.Cases {
		add(c.Body)
	}
	for _, c := range s.Catches {
		add(c.Body)
	}
	for _, expr := range s.Exprs() {
		for _, closure := range expr.Closures {
			add(closure.Body)
		}
	}
	return result
}

// Exprs returns expressions owned directly by the statement
func (s *Statement) Exprs() []*Expr {
	var result []*Expr
	add := func(expr *Expr) {
		if expr != nil {
			result = append(result, expr)
		}
	}
	add(s.Expr)
	for _, value := range s.Values {
		add(value)
	}
	for _, condition := range s.Conditions {
		add(condition.Expr)
	}
	for _, c := range s.Cases {
		add(c.Expr)
	}
	for _, c := range s.Catches {
		add(c.Expr)
	}
	return result
}

// Identifiers returns all identifier references in the statement subtree, nested type bodies excluded
func (s *Statement) Identifiers() []string {
	var result []string
	s.collectIdentifiers(&result)
	return result
}

func (s *Statement) collectIdentifiers(result *[]string) {
	for _, expr := range s.Exprs() {
		expr.collectIdentifiers(result)
	}
	for _, param := range s.Parameters {
		if param.Type != nil {
			*result = append(*result, param.Type.Identifiers()...)
		}
	}
	if s.ElseIf != nil {
		s.ElseIf.collectIdentifiers(result)
	}
	for _, block := range []*Block{s.Body, s.Else} {
		block.collectIdentifiers(result)
	}
	for _, accessor := range s.Accessors {
		accessor.collectIdentifiers(result)
	}
	for _, c := range s.Cases {
		c.Body.collectIdentifiers(result)
	}
	for _, c := range s.Catches {
		c.Body.collectIdentifiers(result)
	}
}

func (b *Block) collectIdentifiers(result *[]string) {
	if b == nil {
		return
	}
	for _, stmt := range b.Statements {
		stmt.collectIdentifiers(result)
	}
}

func (e *Expr) collectIdentifiers(result *[]string) {
	for _, ident := range e.Idents {
		*result = append(*result, ident.Name)
	}
	for _, closure := range e.Closures {
		if closure.Uses != nil {
			closure.Uses.collectIdentifiers(result)
		}
		closure.Body.collectIdentifiers(result)
	}
}

// Types returns types declared in block, at any statement depth
func (b *Block) Types() []*Type {
	var result []*Type
	var visit func(block *Block)
	visit = func(block *Block) {
		if block == nil {
			return
		}
		for _, stmt := range block.Statements {
			if stmt.Kind == StatementType && stmt.Type != nil {
				result = append(result, stmt.Type)
				continue
			}
			for _, nested := range stmt.Blocks() {
				visit(nested)
			}
		}
	}
	visit(b)
	return result
}

// Without returns block copy without target statement at any depth, and true if target was found
func (b *Block) Without(target *Statement) (*Block, bool) {
	if b == nil {
		return nil, false
	}
	for i, stmt := range b.Statements {
		if stmt == target {
			clone := *b
			clone.Statements = append(append([]*Statement{}, b.Statements[:i]...), b.Statements[i+1:]...)
			clone.Removed = append(append([]*Statement{}, b.Removed...), target)
			return &clone, true
		}
	}
	for i, stmt := range b.Statements {
		if updated, ok := stmt.Without(target); ok {
			clone := *b
			clone.Statements = append([]*Statement{}, b.Statements...)
			clone.Statements[i] = updated
			return &clone, true
		}
	}
	return b, false
}

// Without returns statement copy without target in any nested block
func (s *Statement) Without(target *Statement) (*Statement, bool) {
	clone := *s
	if block, ok := s.Body.Without(target); ok {
		clone.Body = block
		return &clone, true
	}
	if block, ok := s.Else.Without(target); ok {
		clone.Else = block
		return &clone, true
	}
	if s.ElseIf != nil {
		if elseIf, ok := s.ElseIf.Without(target); ok {
			clone.ElseIf = elseIf
			return &clone, true
		}
	}
	for i, accessor := range s.Accessors {
		if block, ok := accessor.Without(target); ok {
			clone.Accessors = append([]*Block{}, s.Accessors...)
			clone.Accessors[i] = block
			return &clone, true
		}
	}
	for i, c := range s.Cases {
		if block, ok := c.Body.Without(target); ok {
			updated := *c
			updated.Body = block
			clone.Cases = append([]*Case{}, s.Cases...)
			clone.Cases[i] = &updated
			return &clone, true
		}
	}
	for i, c := range s.Catches {
		if block, ok := c.Body.Without(target); ok {
			updated := *c
			updated.Body = block
			clone.Catches = append([]*Catch{}, s.Catches...)
			clone.Catches[i] = &updated
			return &clone, true
		}
	}
	if expr, ok := s.Expr.without(target); ok {
		clone.Expr = expr
		return &clone, true
	}
	for i, value := range s.Values {
		if expr, ok := value.without(target); ok {
			clone.Values = append([]*Expr{}, s.Values...)
			clone.Values[i] = expr
			return &clone, true
		}
	}
	for i, condition := range s.Conditions {
		if expr, ok := condition.Expr.without(target); ok {
			updated := *condition
			updated.Expr = expr
			clone.Conditions = append([]*Condition{}, s.Conditions...)
			clone.Conditions[i] = &updated
			return &clone, true
		}
	}
	return s, false
}

func (e *Expr) without(target *Statement) (*Expr, bool) {
	if e == nil {
		return nil, false
	}
	for i, closure := range e.Closures {
		if block, ok := closure.Body.Without(target); ok {
			updated := *closure
			updated.Body = block
			clone := *e
			clone.Closures = append([]*Closure{}, e.Closures...)
			clone.Closures[i] = &updated
			return &clone, true
		}
	}
	return e, false
}

// RemovedStatements returns statements dropped from nested blocks at any depth
func (s *Statement) RemovedStatements() []*Statement {
	var result []*Statement
	for _, block := range s.Blocks() {
		result = append(result, block.Removed...)
		for _, stmt := range block.Statements {
			result = append(result, stmt.RemovedStatements()...)
		}
	}
	return result
}

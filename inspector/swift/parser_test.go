package swift

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/interlinked/inspector/graph"
)

func TestParse_Members(t *testing.T) {
	src := `import SwiftUI

/// A model
public final class Model: Codable {
    @Published var name: String
    let id: Int = 0
    var a, b: Double
    lazy var cache = [String: Int]()
    var computed: Int { 1 }
    var observed: Int = 0 {
        didSet { print(oldValue) }
    }
    static let shared = Model(name: "")

    struct Inner {
        let value: Int
    }

    init(name: String, id userID: Int = 1, handler: @escaping () -> Void) async throws {
        self.name = name
    }

    func reset() {}
}
`
	file, err := Parse("Model.swift", []byte(src))
	require.NoError(t, err)
	require.Len(t, file.Types, 1)
	model := file.LookupType("Model")
	require.NotNil(t, model)
	assert.Equal(t, graph.TypeClass, model.Kind)
	assert.Equal(t, []string{"public", "final"}, model.Modifiers)
	assert.Equal(t, "", model.Indent)
	assert.NotZero(t, file.Hash)

	variables := model.Variables()
	require.Len(t, variables, 7)
	assert.Equal(t, []string{"Published"}, variables[0].Attributes)
	assert.Equal(t, "String", variables[0].Bindings[0].Type.Text)
	assert.Equal(t, "0", variables[1].Bindings[0].Initializer)
	assert.Equal(t, []string{"a", "b"}, variables[2].Names())
	assert.Nil(t, variables[2].Bindings[0].Type)
	assert.Equal(t, "Double", variables[2].Bindings[1].Type.Text)
	assert.True(t, variables[3].HasModifier("lazy"))
	assert.True(t, variables[4].Bindings[0].HasGetter)
	assert.Equal(t, []string{"didSet"}, variables[5].Bindings[0].Accessors)
	assert.True(t, variables[5].Bindings[0].IsObserverOnly())
	assert.True(t, variables[6].HasModifier("static"))

	inner := model.LookupType("Inner")
	require.NotNil(t, inner)
	assert.Equal(t, "    ", inner.Indent)

	inits := model.Initializers()
	require.Len(t, inits, 1)
	init := inits[0]
	assert.Equal(t, "async throws", init.Effects)
	assert.False(t, init.IsMultiline)
	assert.Equal(t, "init", init.Head.Text(file.Source))
	require.Len(t, init.Parameters, 3)
	assert.Equal(t, "name", init.Parameters[0].Name())
	assert.Equal(t, "id", init.Parameters[1].FirstName)
	assert.Equal(t, "userID", init.Parameters[1].Name())
	assert.Equal(t, "1", init.Parameters[1].Default)
	assert.Equal(t, "id userID: Int = 1", init.Parameters[1].Text)
	assert.Equal(t, "@escaping () -> Void", init.Parameters[2].Type.Text)
	assert.Equal(t, "() -> Void", init.Parameters[2].Type.Unwrapped().Text)
	assert.True(t, init.Parameters[2].Type.Unwrapped().IsFunction())

	require.Len(t, init.Body.Statements, 1)
	assert.Equal(t, &graph.Assignment{Assignee: "name", Assigner: "name", IsInstance: true}, init.Body.Statements[0].Assignment)

	var walked []string
	require.NoError(t, file.Walk(func(typ *graph.Type) error {
		walked = append(walked, typ.Name)
		return nil
	}))
	assert.Equal(t, []string{"Inner", "Model"}, walked)
}

func TestParse_Statements(t *testing.T) {
	src := `struct S {
    let total: Int
    init(values: [Int], flag: Bool) {
        var sum = 0
        for value in values where value > 0 {
            sum += value
        }
        if let first = values.first, flag {
            print(first)
        } else if flag {
            sum = 1
        } else {
            return
        }
        guard flag else { return }
        switch sum {
        case let x where x > 10:
            print(x)
        default:
            break
        }
        values.forEach { item in print(item) }
        self.total = sum
    }
}
`
	file, err := Parse("S.swift", []byte(src))
	require.NoError(t, err)
	body := file.Types[0].Initializers()[0].Body
	var kinds []graph.StatementKind
	for _, stmt := range body.Statements {
		kinds = append(kinds, stmt.Kind)
	}
	assert.Equal(t, []graph.StatementKind{
		graph.StatementVariable, graph.StatementFor, graph.StatementIf, graph.StatementGuard,
		graph.StatementSwitch, graph.StatementExpression, graph.StatementExpression,
	}, kinds)

	assert.Equal(t, []string{"sum"}, body.Statements[0].Names)

	loop := body.Statements[1]
	assert.Equal(t, []string{"value"}, loop.Names)
	assert.Nil(t, loop.Body.Statements[0].Assignment)

	ifStmt := body.Statements[2]
	require.Len(t, ifStmt.Conditions, 2)
	assert.Equal(t, graph.ConditionBinding, ifStmt.Conditions[0].Kind)
	assert.Equal(t, []string{"first"}, ifStmt.Conditions[0].Names)
	require.NotNil(t, ifStmt.ElseIf)
	assert.NotNil(t, ifStmt.ElseIf.Else)
	assert.Equal(t, &graph.Assignment{Assignee: "sum", Assigner: "1"}, ifStmt.ElseIf.Body.Statements[0].Assignment)

	switchStmt := body.Statements[4]
	require.Len(t, switchStmt.Cases, 2)
	assert.Equal(t, []string{"x"}, switchStmt.Cases[0].Names)
	assert.Len(t, switchStmt.Cases[1].Body.Statements, 1)

	forEach := body.Statements[5]
	require.Len(t, forEach.Expr.Closures, 1)
	assert.Equal(t, []string{"item"}, forEach.Expr.Closures[0].Params)
	assert.Contains(t, forEach.Identifiers(), "item")
	assert.Contains(t, forEach.Identifiers(), "values")
	assert.NotContains(t, forEach.Identifiers(), "forEach")

	assert.Equal(t, &graph.Assignment{Assignee: "total", Assigner: "sum", IsInstance: true}, body.Statements[6].Assignment)
}

func TestParse_Extent(t *testing.T) {
	src := `struct S {
    var a: Int
    init(a: Int) {
        // leading
        print(a) // trailing

        self.a = a
    }
}
`
	file, err := Parse("S.swift", []byte(src))
	require.NoError(t, err)
	statements := file.Types[0].Initializers()[0].Body.Statements
	require.Len(t, statements, 2)
	assert.Equal(t, "// leading\n        print(a) // trailing", statements[0].Extent.Text(file.Source))
	assert.Equal(t, "print(a)", statements[0].Span.Text(file.Source))
	assert.False(t, statements[0].BlankLine)
	assert.True(t, statements[1].BlankLine)
}

func TestParse_Closures(t *testing.T) {
	var testCases = []struct {
		description string
		statement   string
		params      []string
		captures    []string
		uses        []string
	}{
		{
			description: "capture list and typed parameters",
			statement:   "load { [weak self, store] (value: Item, _ flag: Bool) in self?.apply(value) }",
			params:      []string{"value", "flag"},
			captures:    []string{"self", "store"},
			uses:        []string{"store", "Item", "Bool"},
		},
		{
			description: "shorthand arguments",
			statement:   "items.map { $0 * factor }",
			uses:        nil,
		},
		{
			description: "capture with value",
			statement:   "run { [total = sum] in print(total) }",
			captures:    []string{"total"},
			uses:        []string{"sum"},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			src := "struct S {\n    init() {\n        " + testCase.statement + "\n    }\n}\n"
			file, err := Parse("S.swift", []byte(src))
			require.NoError(t, err)
			stmt := file.Types[0].Initializers()[0].Body.Statements[0]
			require.Len(t, stmt.Expr.Closures, 1)
			closure := stmt.Expr.Closures[0]
			assert.Equal(t, testCase.params, closure.Params)
			assert.Equal(t, testCase.captures, closure.Captures)
			var uses []string
			for _, ident := range closure.Uses.Idents {
				uses = append(uses, ident.Name)
			}
			assert.Equal(t, testCase.uses, uses)
		})
	}
}

func TestParse_RegexLiteral(t *testing.T) {
	src := "struct A {\n    let x: Int\n    init(x: Int) { let pattern = /a+b/; register(pattern); self.x = x }\n}\n"
	file, err := Parse("A.swift", []byte(src))
	require.NoError(t, err)
	statements := file.Types[0].Initializers()[0].Body.Statements
	require.Len(t, statements, 3)
	assert.Equal(t, graph.StatementVariable, statements[0].Kind)
	assert.Equal(t, "let pattern = /a+b/", statements[0].Span.Text(file.Source))
	assert.Equal(t, "register(pattern)", statements[1].Span.Text(file.Source))
	assert.Equal(t, []string{"register", "pattern"}, statements[1].Identifiers())
	assert.Equal(t, &graph.Assignment{Assignee: "x", Assigner: "x", IsInstance: true}, statements[2].Assignment)
}

func TestParse_ConditionalCompilation(t *testing.T) {
	src := `struct A {
    let a: Int
    #if DEBUG
    let b: Int
    #else
    let c: Int
    #endif
    init(a: Int) {
        #if DEBUG
        print(a)
        #endif
        self.a = a
    }
}
`
	file, err := Parse("A.swift", []byte(src))
	require.NoError(t, err)
	typ := file.Types[0]
	require.Len(t, typ.Members, 3)
	assert.Equal(t, []string{"a"}, typ.Variables()[0].Names())
	assert.Len(t, typ.Variables(), 1)
	block := typ.Members[1]
	assert.Equal(t, graph.MemberOther, block.Kind)
	assert.Equal(t, "#if DEBUG\n    let b: Int\n    #else\n    let c: Int\n    #endif", block.Span.Text(file.Source))
	assert.Equal(t, "a", typ.LastVariable().Variable.Names()[0])

	statements := typ.Initializers()[0].Body.Statements
	var kinds []graph.StatementKind
	for _, stmt := range statements {
		kinds = append(kinds, stmt.Kind)
	}
	assert.Equal(t, []graph.StatementKind{graph.StatementOther, graph.StatementExpression, graph.StatementOther, graph.StatementExpression}, kinds)
	assert.Equal(t, "#endif", statements[2].Span.Text(file.Source))
}

func TestParse_Labels(t *testing.T) {
	src := `struct A {
    init(list: [Int]) {
        outer: for (i, v) in list where v > 0 {
            continue outer
        }
        if case .some(let y) = list.first, let list {
            print(y)
        }
        do {
            try run()
        } catch let err as RunError {
            print(err)
        } catch {
            print(error)
        }
    }
}
`
	file, err := Parse("A.swift", []byte(src))
	require.NoError(t, err)
	statements := file.Types[0].Initializers()[0].Body.Statements
	require.Len(t, statements, 3)

	loop := statements[0]
	assert.Equal(t, graph.StatementFor, loop.Kind)
	assert.True(t, strings.HasPrefix(loop.Span.Text(file.Source), "outer: for"))
	assert.Equal(t, []string{"i", "v"}, loop.Names)
	assert.Equal(t, []string{"list", "v"}, loop.Identifiers())

	ifStmt := statements[1]
	require.Len(t, ifStmt.Conditions, 2)
	assert.Equal(t, graph.ConditionCase, ifStmt.Conditions[0].Kind)
	assert.Equal(t, []string{"y"}, ifStmt.Conditions[0].Names)
	assert.Equal(t, graph.ConditionBinding, ifStmt.Conditions[1].Kind)
	assert.Equal(t, []string{"list"}, ifStmt.Conditions[1].Names)

	doStmt := statements[2]
	require.Len(t, doStmt.Catches, 2)
	assert.True(t, doStmt.Catches[0].HasPattern)
	assert.Equal(t, []string{"err"}, doStmt.Catches[0].Names)
	assert.Equal(t, "RunError", doStmt.Catches[0].Expr.Idents[0].Name)
	assert.False(t, doStmt.Catches[1].HasPattern)
}

func TestParse_Errors(t *testing.T) {
	var testCases = []struct {
		description string
		src         string
		line        int
		column      int
	}{
		{description: "unterminated member block", src: "struct A {\n    let x: Int\n", line: 3, column: 1},
		{description: "unterminated string", src: "struct A {\n    let x = \"abc\n}\n", line: 1, column: 1},
		{description: "missing parameter type", src: "struct A {\n    init(a) {}\n}\n", line: 2, column: 10},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			_, err := Parse("A.swift", []byte(testCase.src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrParseFailed))
			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, "A.swift", parseErr.Path)
			assert.Equal(t, testCase.line, parseErr.Line)
			assert.Equal(t, testCase.column, parseErr.Column)
		})
	}
}

func TestParse_ToleratedErrors(t *testing.T) {
	var testCases = []struct {
		description string
		src         string
		variables   int
	}{
		{description: "error inside method", src: "struct A {\n    func f() { let = }\n    let x: Int\n}\n", variables: 1},
		{description: "error inside top level function", src: "func f() { let = }\nstruct A {\n    let x: Int\n}\n", variables: 1},
		{description: "case listing bindings", src: "struct A {\n    let x: Int\n    init(k: K) {\n        switch k {\n        case .a(let q), .b(let q) where q > 1: x = q\n        default: x = 0\n        }\n    }\n}\n", variables: 1},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			file, err := Parse("A.swift", []byte(testCase.src))
			require.NoError(t, err)
			typ := file.LookupType("A")
			require.NotNil(t, typ)
			assert.Len(t, typ.Variables(), testCase.variables)
		})
	}
}

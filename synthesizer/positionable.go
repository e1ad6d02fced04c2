package synthesizer

import (
	"fmt"

	"github.com/viant/interlinked/inspector/graph"
)

// VertexKind represents dependency graph vertex kind
type VertexKind int

const (
	VertexParameter VertexKind = iota
	VertexStatement
)

// Vertex represents dependency graph vertex
type Vertex struct {
	Kind VertexKind
	ID   int
}

func (v Vertex) String() string {
	if v.Kind == VertexParameter {
		return fmt.Sprintf("parameter(%d)", v.ID)
	}
	return fmt.Sprintf("statement(%d)", v.ID)
}

// Parameter represents initializer parameter tagged with its position
type Parameter struct {
	ID int
	*graph.Parameter
}

// Vertex returns parameter vertex
func (p Parameter) Vertex() Vertex {
	return Vertex{Kind: VertexParameter, ID: p.ID}
}

// Unwrapped returns unwrapped parameter type text
func (p Parameter) Unwrapped() string {
	if p.Type == nil {
		return ""
	}
	return p.Type.Unwrapped().Text
}

// Statement represents initializer body root statement tagged with its position
type Statement struct {
	ID int
	*graph.Statement
}

func (s Statement) ItemID() int {
	return s.ID
}

func (s Statement) Node() *graph.Statement {
	return s.Statement
}

// Vertex returns statement vertex
func (s Statement) Vertex() Vertex {
	return Vertex{Kind: VertexStatement, ID: s.ID}
}

package swift

import (
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// ErrParseFailed is matched by every ParseError
var ErrParseFailed = errors.New("parse failed")

// ParseError represents malformed source
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
}

func (e *ParseError) Unwrap() error {
	return ErrParseFailed
}

// newParseError reports ERROR or MISSING node at its 1-based line and column
func newParseError(path string, node *sitter.Node, src []byte) *ParseError {
	point := node.StartPoint()
	message := "syntax error"
	if node.IsMissing() {
		message = fmt.Sprintf("missing %s", node.Type())
	} else if start, end := node.StartByte(), node.EndByte(); end > start && end-start < 40 && int(end) <= len(src) {
		message = fmt.Sprintf("unexpected %q", string(src[start:end]))
	}
	return &ParseError{Path: path, Line: int(point.Row) + 1, Column: int(point.Column) + 1, Message: message}
}

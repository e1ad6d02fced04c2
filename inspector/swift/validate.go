package swift

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/swift"
)

// Validate parses src with the tree-sitter swift grammar and reports the first ERROR or MISSING node
func Validate(ctx context.Context, path string, src []byte) error {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(swift.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	defer tree.Close()
	root := tree.RootNode()
	if !root.HasError() {
		return nil
	}
	node := findFirstError(root)
	if node == nil {
		return &ParseError{Path: path, Line: 1, Column: 1, Message: "syntax error"}
	}
	return newParseError(path, node, src)
}

func findFirstError(node *sitter.Node) *sitter.Node {
	if node == nil {
		return nil
	}
	if node.IsError() || node.IsMissing() {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if found := findFirstError(node.Child(i)); found != nil {
			return found
		}
	}
	return nil
}

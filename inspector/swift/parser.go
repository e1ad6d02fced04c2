package swift

import (
	"context"
	"fmt"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/swift"
	"github.com/viant/interlinked/inspector/graph"
)

// Parse parses swift source into a file model, declarations other than types, variables and
// initializers are kept as opaque members
func Parse(path string, src []byte) (*graph.File, error) {
	return ParseContext(context.Background(), path, src)
}

// ParseContext parses swift source with the tree-sitter swift grammar and builds the file model.
// Syntax errors inside opaque members are tolerated, any other ERROR or MISSING node fails the parse
func ParseContext(ctx context.Context, path string, src []byte) (*graph.File, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(swift.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	defer tree.Close()
	root := tree.RootNode()

	file := &graph.File{Path: path, Source: src}
	if idx := strings.LastIndex(path, "/"); idx != -1 {
		file.Name = path[idx+1:]
	} else {
		file.Name = path
	}
	b := newBuilder(src)
	b.indexComments(root)
	for i := uint32(0); i < root.NamedChildCount(); i++ {
		child := root.NamedChild(int(i))
		switch child.Type() {
		case "class_declaration", "protocol_declaration":
			file.Types = append(file.Types, b.parseTypeDeclaration(child))
		case "ERROR", "comment", "multiline_comment":
		default:
			b.opaque = append(b.opaque, b.span(child))
		}
	}
	if node := b.firstError(root); node != nil {
		return nil, newParseError(path, node, src)
	}
	file.IndexTypes()
	if file.Hash, err = graph.Hash(src); err != nil {
		return nil, fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return file, nil
}

// builder converts tree-sitter nodes into the graph model
type builder struct {
	src      []byte
	comments []graph.Span // Comment spans in source order
	trailing map[int]int  // Comment start to comment end
	opaque   []graph.Span // Members kept as text, syntax errors inside are tolerated
}

func newBuilder(src []byte) *builder {
	return &builder{src: src, trailing: make(map[int]int)}
}

func (b *builder) span(node *sitter.Node) graph.Span {
	return graph.Span{Start: int(node.StartByte()), End: int(node.EndByte())}
}

func (b *builder) text(node *sitter.Node) string {
	return node.Content(b.src)
}

// identifier returns identifier text without backticks
func (b *builder) identifier(node *sitter.Node) string {
	return strings.Trim(node.Content(b.src), "`")
}

func isComment(node *sitter.Node) bool {
	switch node.Type() {
	case "comment", "multiline_comment":
		return true
	}
	return false
}

// indexComments records every comment of the tree
func (b *builder) indexComments(node *sitter.Node) {
	if isComment(node) {
		span := b.span(node)
		b.comments = append(b.comments, span)
		b.trailing[span.Start] = span.End
		return
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		b.indexComments(node.Child(i))
	}
}

// trailingEnd extends end over comments following it on the same line
func (b *builder) trailingEnd(end int) int {
	for {
		pos := end
		for pos < len(b.src) && (b.src[pos] == ' ' || b.src[pos] == '\t') {
			pos++
		}
		commentEnd, ok := b.trailing[pos]
		if !ok {
			return end
		}
		end = commentEnd
	}
}

// gapStart skips semicolons following end together with their trailing comments
func (b *builder) gapStart(end int) int {
	pos := end
	for pos < len(b.src) && (b.src[pos] == ' ' || b.src[pos] == '\t') {
		pos++
	}
	if pos < len(b.src) && b.src[pos] == ';' {
		return b.gapStart(b.trailingEnd(pos + 1))
	}
	return end
}

// leadingComment returns start of the first comment within [from, to)
func (b *builder) leadingComment(from, to int) (int, bool) {
	idx := sort.Search(len(b.comments), func(i int) bool {
		return b.comments[i].Start >= from
	})
	if idx < len(b.comments) && b.comments[idx].Start < to {
		return b.comments[idx].Start, true
	}
	return 0, false
}

// lineIndent returns leading whitespace of the line holding offset
func (b *builder) lineIndent(offset int) string {
	start := offset
	for start > 0 && b.src[start-1] != '\n' {
		start--
	}
	end := start
	for end < len(b.src) && (b.src[end] == ' ' || b.src[end] == '\t') {
		end++
	}
	return string(b.src[start:end])
}

// firstError returns the first ERROR or MISSING node outside opaque members
func (b *builder) firstError(node *sitter.Node) *sitter.Node {
	if !node.HasError() || b.isOpaque(node) {
		return nil
	}
	if node.IsMissing() {
		return node
	}
	if node.IsError() && !isRecoverable(node) {
		return node
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if found := b.firstError(node.Child(i)); found != nil {
			return found
		}
	}
	return nil
}

func (b *builder) isOpaque(node *sitter.Node) bool {
	span := b.span(node)
	for _, opaque := range b.opaque {
		if opaque.Contains(span) {
			return true
		}
	}
	return false
}

// isRecoverable returns true for errors the grammar reports on valid code, i.e. case patterns
// listing several bindings
func isRecoverable(node *sitter.Node) bool {
	parent := node.Parent()
	return parent != nil && parent.Type() == "switch_entry"
}

// childrenOf returns node children with ERROR nodes replaced by their own children
func childrenOf(node *sitter.Node) []*sitter.Node {
	var result []*sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.IsError() {
			result = append(result, childrenOf(child)...)
			continue
		}
		result = append(result, child)
	}
	return result
}

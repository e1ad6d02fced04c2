package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/viant/interlinked/config"
	"github.com/viant/interlinked/inspector/graph"
	"github.com/viant/interlinked/synthesizer"
)

// Rewriter collects initializer changes and splices them into the original source
type Rewriter struct {
	config  *config.Config
	clause  clauseFormatter
	changes []*synthesizer.Change
}

// New creates rewriter
func New(cfg *config.Config) *Rewriter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Rewriter{config: cfg, clause: newClauseFormatter(cfg.FormatterStyle)}
}

// Rewrite records a change
func (r *Rewriter) Rewrite(change *synthesizer.Change) error {
	if change == nil || change.Type == nil || change.Initializer == nil {
		return fmt.Errorf("invalid change")
	}
	r.changes = append(r.changes, change)
	return nil
}

// Changed returns true if any change was recorded
func (r *Rewriter) Changed() bool {
	return len(r.changes) > 0
}

// Emit prints file source with recorded changes applied
func (r *Rewriter) Emit(file *graph.File) ([]byte, error) {
	p := &printer{config: r.config, clause: r.clause, src: file.Source}
	for _, change := range r.changes {
		if err := p.add(change); err != nil {
			return nil, err
		}
	}
	sort.SliceStable(p.edits, func(i, j int) bool {
		if p.edits[i].span.Start != p.edits[j].span.Start {
			return p.edits[i].span.Start < p.edits[j].span.Start
		}
		return p.edits[i].span.End > p.edits[j].span.End
	})
	return []byte(p.render(graph.Span{Start: 0, End: len(file.Source)})), nil
}

// edit replaces span with rendered text
type edit struct {
	span graph.Span
	text func() string
}

type printer struct {
	config *config.Config
	clause clauseFormatter
	src    []byte
	edits  []*edit
}

func (p *printer) add(change *synthesizer.Change) error {
	init := change.Initializer
	switch {
	case init.IsSynthetic:
		p.insert(change)
	case change.Deleted:
		p.edits = append(p.edits, &edit{span: p.deletion(init.Span, true), text: func() string { return "" }})
	default:
		if init.Span.End > len(p.src) {
			return fmt.Errorf("initializer of %s is out of source range", change.Type.Name)
		}
		memberIndent := lineIndent(p.src, init.Span.Start)
		p.edits = append(p.edits, &edit{span: init.Span, text: func() string {
			return p.initializer(change, memberIndent)
		}})
	}
	for _, stmt := range change.Statements {
		for _, removed := range stmt.RemovedStatements() {
			p.edits = append(p.edits, &edit{span: p.deletion(removed.Extent, false), text: func() string { return "" }})
		}
	}
	return nil
}

// insert adds an inserted initializer after the anchor member, or at the end of the member block
func (p *printer) insert(change *synthesizer.Change) {
	typ := change.Type
	if anchor := change.Anchor; anchor != nil {
		memberIndent := lineIndent(p.src, anchor.Span.Start)
		at := lineEnd(p.src, anchor.Span.End)
		trailing := ""
		if next := typ.MemberAfter(anchor); next != nil && !p.hasBlankLine(at, next.Span.Start) {
			trailing = "\n"
		}
		p.edits = append(p.edits, &edit{span: graph.Span{Start: at, End: at}, text: func() string {
			return "\n\n" + memberIndent + p.initializer(change, memberIndent) + trailing
		}})
		return
	}
	closing := typ.Body.End - 1
	memberIndent := typ.Indent + p.indentUnit(typ.Indent)
	at := lineStart(p.src, closing)
	if !isBlank(string(p.src[at:closing])) {
		p.edits = append(p.edits, &edit{span: graph.Span{Start: closing, End: closing}, text: func() string {
			return "\n" + memberIndent + p.initializer(change, memberIndent) + "\n" + typ.Indent
		}})
		return
	}
	p.edits = append(p.edits, &edit{span: graph.Span{Start: at, End: at}, text: func() string {
		return memberIndent + p.initializer(change, memberIndent) + "\n"
	}})
}

// hasBlankLine returns true if an empty line lies between offsets
func (p *printer) hasBlankLine(from, to int) bool {
	if from >= to {
		return false
	}
	lines := strings.Split(string(p.src[from:to]), "\n")
	for i := 1; i < len(lines)-1; i++ {
		if isBlank(lines[i]) {
			return true
		}
	}
	return false
}

// deletion returns span removing the lines of target. Member deletions take attached comment lines
// and one surrounding blank line with them
func (p *printer) deletion(target graph.Span, member bool) graph.Span {
	start := lineStart(p.src, target.Start)
	end := lineEnd(p.src, target.End)
	if !isBlank(string(p.src[start:target.Start])) || !isBlank(p.trailingText(target.End, end)) {
		return target
	}
	if end < len(p.src) {
		end++
	}
	if !member {
		return graph.Span{Start: start, End: end}
	}
	for {
		prevStart, prevEnd, ok := previousLine(p.src, start)
		if !ok || !strings.HasPrefix(strings.TrimSpace(string(p.src[prevStart:prevEnd])), "//") {
			break
		}
		start = prevStart
	}
	if prevStart, prevEnd, ok := previousLine(p.src, start); ok && isBlank(string(p.src[prevStart:prevEnd])) {
		return graph.Span{Start: prevStart, End: end}
	}
	if end < len(p.src) {
		if nextEnd := lineEnd(p.src, end); isBlank(string(p.src[end:nextEnd])) && nextEnd < len(p.src) {
			return graph.Span{Start: start, End: nextEnd + 1}
		}
	}
	return graph.Span{Start: start, End: end}
}

// trailingText returns text between offsets without a trailing line comment
func (p *printer) trailingText(from, to int) string {
	text := string(p.src[from:to])
	if idx := strings.Index(text, "//"); idx != -1 {
		text = text[:idx]
	}
	return text
}

// render returns span text with the outermost contained edits applied
func (p *printer) render(span graph.Span) string {
	builder := strings.Builder{}
	pos := span.Start
	for _, e := range p.edits {
		if !span.Contains(e.span) || e.span == span && e.span.Len() > 0 || e.span.Start < pos {
			continue
		}
		builder.Write(p.src[pos:e.span.Start])
		builder.WriteString(e.text())
		pos = e.span.End
	}
	builder.Write(p.src[pos:span.End])
	return builder.String()
}

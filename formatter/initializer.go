package formatter

import (
	"strings"

	"github.com/viant/interlinked/synthesizer"
)

// initializer prints initializer text starting at its head, the first line is not indented
func (p *printer) initializer(change *synthesizer.Change, memberIndent string) string {
	init := change.Initializer
	head := "init"
	effects := ""
	if !init.IsSynthetic {
		head = init.Head.Text(p.src)
		effects = init.Effects
	}
	params := make([]string, len(change.Parameters))
	for i, param := range change.Parameters {
		params[i] = param.Content()
	}
	suffix := " {"
	if effects != "" {
		suffix = " " + effects + suffix
	}
	singleLine := "(" + strings.Join(params, ", ") + ")"
	multiline := len(params) > 0 && (init.IsMultiline && !init.IsSynthetic || !p.fits(lastLine(memberIndent+head)+singleLine+suffix))

	builder := strings.Builder{}
	builder.WriteString(head)
	if multiline {
		builder.WriteString(p.clause.format(head, params, memberIndent, p.indentUnit(memberIndent)))
	} else {
		builder.WriteString(singleLine)
	}
	builder.WriteString(suffix)
	builder.WriteString("\n")

	bodyIndent := memberIndent + p.indentUnit(memberIndent)
	for i, stmt := range change.Statements {
		if stmt.Synthetic != "" {
			builder.WriteString(bodyIndent + stmt.Synthetic + "\n")
			continue
		}
		if i > 0 && stmt.BlankLine {
			builder.WriteString("\n")
		}
		text := p.render(stmt.Extent)
		builder.WriteString(reindent(text, lineIndent(p.src, stmt.Extent.Start), bodyIndent))
		builder.WriteString("\n")
	}
	builder.WriteString(memberIndent + "}")
	return builder.String()
}

// indentUnit returns one indentation level in the whitespace of indent, tab indented code keeps tabs
func (p *printer) indentUnit(indent string) string {
	if strings.Contains(indent, "\t") {
		return "\t"
	}
	return p.config.Indent()
}

// fits returns true if line is within the configured limit, zero disables wrapping
func (p *printer) fits(line string) bool {
	return p.config.MaxLineLength == 0 || len(line) <= p.config.MaxLineLength
}

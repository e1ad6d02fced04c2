package formatter

import (
	"strings"

	"github.com/viant/interlinked/config"
)

// clauseFormatter lays out a parameter clause spread over multiple lines; head is the initializer text
// up to the clause, starting at memberIndent
type clauseFormatter interface {
	format(head string, params []string, memberIndent, indent string) string
}

func newClauseFormatter(style config.Style) clauseFormatter {
	switch style {
	case config.StyleAirbnb:
		return airbnbClause{}
	case config.StyleLinkedIn:
		return linkedInClause{}
	}
	return googleClause{}
}

// googleClause puts every parameter on its own line and the closing parenthesis under the declaration
type googleClause struct{}

func (googleClause) format(head string, params []string, memberIndent, indent string) string {
	builder := strings.Builder{}
	builder.WriteString("(\n")
	for i, param := range params {
		builder.WriteString(memberIndent + indent + param)
		if i < len(params)-1 {
			builder.WriteString(",")
		}
		builder.WriteString("\n")
	}
	builder.WriteString(memberIndent + ")")
	return builder.String()
}

// airbnbClause puts every parameter on its own line and closes after the last one
type airbnbClause struct{}

func (airbnbClause) format(head string, params []string, memberIndent, indent string) string {
	lines := make([]string, len(params))
	for i, param := range params {
		lines[i] = memberIndent + indent + param
	}
	return "(\n" + strings.Join(lines, ",\n") + ")"
}

// linkedInClause keeps the first parameter after the parenthesis and aligns the rest under it
type linkedInClause struct{}

func (linkedInClause) format(head string, params []string, memberIndent, indent string) string {
	column := len(lastLine(memberIndent+head)) + 1
	align := memberIndent + strings.Repeat(" ", column-len(memberIndent))
	if strings.Contains(head, "\n") {
		align = strings.Repeat(" ", column)
	}
	return "(" + strings.Join(params, ",\n"+align) + ")"
}

package formatter

import (
	"strings"
)

// lineStart returns offset of the first byte of the line holding offset
func lineStart(src []byte, offset int) int {
	for offset > 0 && src[offset-1] != '\n' {
		offset--
	}
	return offset
}

// lineEnd returns offset of the line feed ending the line holding offset, or len(src)
func lineEnd(src []byte, offset int) int {
	for offset < len(src) && src[offset] != '\n' {
		offset++
	}
	return offset
}

// lineIndent returns leading whitespace of the line holding offset
func lineIndent(src []byte, offset int) string {
	start := lineStart(src, offset)
	end := start
	for end < len(src) && (src[end] == ' ' || src[end] == '\t') {
		end++
	}
	return string(src[start:end])
}

func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// previousLine returns span of the line before the line starting at offset
func previousLine(src []byte, offset int) (int, int, bool) {
	if offset == 0 {
		return 0, 0, false
	}
	end := offset - 1
	return lineStart(src, end), end, true
}

// reindent shifts lines following the first one from one indentation to another
func reindent(text, from, to string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		switch {
		case i == 0:
			lines[i] = to + line
		case isBlank(line):
			lines[i] = ""
		case strings.HasPrefix(line, from):
			lines[i] = to + line[len(from):]
		default:
			lines[i] = to + strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(lines, "\n")
}

// lastLine returns text after the last line feed
func lastLine(text string) string {
	if idx := strings.LastIndex(text, "\n"); idx != -1 {
		return text[idx+1:]
	}
	return text
}

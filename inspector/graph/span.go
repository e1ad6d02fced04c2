package graph

// Span represents a byte range [Start, End) within File.Source
type Span struct {
	Start int
	End   int
}

// Len returns span length
func (s Span) Len() int {
	return s.End - s.Start
}

// IsZero returns true for unset span
func (s Span) IsZero() bool {
	return s.Start == 0 && s.End == 0
}

// Contains returns true if other lies within s
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Text returns span text
func (s Span) Text(src []byte) string {
	if s.Start < 0 || s.End > len(src) || s.Start > s.End {
		return ""
	}
	return string(src[s.Start:s.End])
}

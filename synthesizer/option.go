package synthesizer

import "log/slog"

// Mode represents handling of special initializer forms
type Mode int

const (
	// ModeSync leaves recognized initializers untouched
	ModeSync Mode = iota
	// ModeInterlink fails on decoder, coder and convenience initializers
	ModeInterlink
)

func (m Mode) String() string {
	if m == ModeInterlink {
		return "interlink"
	}
	return "sync"
}

type Option func(*Synthesizer)

// WithLogger sets structured logger, discarded by default
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synthesizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMode sets special initializer handling mode
func WithMode(mode Mode) Option {
	return func(s *Synthesizer) {
		s.mode = mode
	}
}

// WithRecognizers replaces the recognizers of the selected mode
func WithRecognizers(recognizers ...Recognizer) Option {
	return func(s *Synthesizer) {
		s.recognizers = append([]Recognizer{}, recognizers...)
	}
}

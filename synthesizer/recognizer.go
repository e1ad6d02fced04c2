package synthesizer

import "github.com/viant/interlinked/inspector/graph"

// Recognizer represents special initializer form
type Recognizer struct {
	Name   string
	Reason string // Rejection reason in interlink mode
	Match  func(init *graph.Initializer) bool
}

var (
	decoderRecognizer = Recognizer{
		Name:   "decoder",
		Reason: "Decodable initializers are unsupported at the moment.",
		Match:  withSingleParameter("decoder", "Decoder"),
	}
	coderRecognizer = Recognizer{
		Name:   "coder",
		Reason: "ViewController's NSCoder initializers are unsupported at the moment.",
		Match:  withSingleParameter("coder", "NSCoder"),
	}
	convenienceRecognizer = Recognizer{
		Name:   "convenience",
		Reason: "Convenience initializers are unsupported at the moment.",
		Match:  withModifier("convenience"),
	}
	overrideRecognizer = Recognizer{
		Name:  "override",
		Match: withModifier("override"),
	}
)

// SkipRecognizers returns recognizers of initializers left untouched in sync mode
func SkipRecognizers() []Recognizer {
	return []Recognizer{decoderRecognizer, coderRecognizer, convenienceRecognizer, overrideRecognizer}
}

// RejectRecognizers returns recognizers of initializers failing interlink mode, any parameter count matches
func RejectRecognizers() []Recognizer {
	return []Recognizer{
		{Name: decoderRecognizer.Name, Reason: decoderRecognizer.Reason, Match: withParameter("decoder", "Decoder")},
		{Name: coderRecognizer.Name, Reason: coderRecognizer.Reason, Match: withParameter("coder", "NSCoder")},
		convenienceRecognizer,
	}
}

// isDecoder returns true for init(from decoder: Decoder)
func isDecoder(init *graph.Initializer) bool {
	return decoderRecognizer.Match(init)
}

func withParameter(name, typeName string) func(init *graph.Initializer) bool {
	return func(init *graph.Initializer) bool {
		for _, param := range init.Parameters {
			if param.Name() == name && param.Type != nil && param.Type.Unwrapped().Text == typeName {
				return true
			}
		}
		return false
	}
}

func withSingleParameter(name, typeName string) func(init *graph.Initializer) bool {
	match := withParameter(name, typeName)
	return func(init *graph.Initializer) bool {
		return len(init.Parameters) == 1 && match(init)
	}
}

func withModifier(modifier string) func(init *graph.Initializer) bool {
	return func(init *graph.Initializer) bool {
		return init.HasModifier(modifier)
	}
}

package synthesizer

import "errors"

// ErrUnsupportedInitializerFormat is matched by UnsupportedInitializerFormatError
var ErrUnsupportedInitializerFormat = errors.New("unsupported initializer format")

// UnsupportedInitializerFormatError is returned in interlink mode for initializers that cannot be reconciled
type UnsupportedInitializerFormatError struct {
	Type   string // Owning type name
	Reason string
}

func (e *UnsupportedInitializerFormatError) Error() string {
	return "Interlinking couldn't be performed. " + e.Reason
}

func (e *UnsupportedInitializerFormatError) Is(target error) bool {
	return target == ErrUnsupportedInitializerFormat
}

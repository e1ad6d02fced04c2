package inspector

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/viant/interlinked/config"
	"github.com/viant/interlinked/inspector/graph"
	"github.com/viant/interlinked/inspector/swift"
)

// Inspector provides an interface for inspecting source code
type Inspector interface {
	// InspectSource parses source code from a byte slice and extracts type information
	InspectSource(src []byte) (*graph.File, error)

	// InspectFile parses a source file and extracts type information
	InspectFile(ctx context.Context, URL string) (*graph.File, error)
}

// Factory creates appropriate inspectors based on language
type Factory struct {
	config *config.Config
}

// NewFactory creates a new inspector factory with the given config
func NewFactory(cfg *config.Config) *Factory {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Factory{config: cfg}
}

// Supports returns true if filename has an extension handled by the factory
func Supports(filename string) bool {
	switch strings.ToLower(path.Ext(filename)) {
	case ".swift":
		return true
	}
	return false
}

// GetInspector returns an appropriate inspector based on file extension
func (f *Factory) GetInspector(filename string) (Inspector, error) {
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".swift":
		return swift.NewInspector(f.config), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

// InspectFile is a convenience method that gets the appropriate inspector and inspects the file
func (f *Factory) InspectFile(ctx context.Context, URL string) (*graph.File, error) {
	inspector, err := f.GetInspector(URL)
	if err != nil {
		return nil, err
	}
	return inspector.InspectFile(ctx, URL)
}

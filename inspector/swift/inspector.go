package swift

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/interlinked/config"
	"github.com/viant/interlinked/inspector/graph"
)

const defaultFilename = "source.swift"

// Inspector parses swift sources into graph files
type Inspector struct {
	config *config.Config
	fs     afs.Service
}

// NewInspector creates an inspector, nil config means defaults
func NewInspector(cfg *config.Config) *Inspector {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Inspector{config: cfg, fs: afs.New()}
}

// InspectSource parses source code from a byte slice
func (i *Inspector) InspectSource(src []byte) (*graph.File, error) {
	return i.inspect(context.Background(), defaultFilename, src)
}

// InspectFile reads and parses a source file, URL can use any afs scheme
func (i *Inspector) InspectFile(ctx context.Context, URL string) (*graph.File, error) {
	src, err := i.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", URL, err)
	}
	return i.inspect(ctx, URL, src)
}

func (i *Inspector) inspect(ctx context.Context, path string, src []byte) (*graph.File, error) {
	if i.config.ValidateSyntax {
		if err := Validate(ctx, path, src); err != nil {
			return nil, err
		}
	}
	return ParseContext(ctx, path, src)
}

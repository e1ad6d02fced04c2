package interlink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/viant/afs"
	"github.com/viant/interlinked/config"
	"github.com/viant/interlinked/formatter"
	"github.com/viant/interlinked/inspector"
	"github.com/viant/interlinked/inspector/graph"
	"github.com/viant/interlinked/inspector/swift"
	"github.com/viant/interlinked/synthesizer"
)

// Result represents synthesis output
type Result struct {
	Output  []byte
	Changed bool
	Hash    uint64 // Output hash
}

// Service synthesizes initializers of swift sources
type Service struct {
	config  *config.Config
	fs      afs.Service
	logger  *slog.Logger
	factory *inspector.Factory
}

type Option func(*Service)

// WithLogger sets structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFS sets file system used by URL variants
func WithFS(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// New creates service
func New(cfg *config.Config, opts ...Option) *Service {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := &Service{
		config: cfg,
		fs:     afs.New(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.factory = inspector.NewFactory(cfg)
	return s
}

// Sync reconciles initializers leaving decoder, coder, convenience and override initializers untouched
func (s *Service) Sync(ctx context.Context, src []byte) (*Result, error) {
	file, err := swift.NewInspector(s.config).InspectSource(src)
	if err != nil {
		return nil, err
	}
	return s.synthesize(ctx, file, synthesizer.ModeSync)
}

// Interlink reconciles initializers, failing on decoder, coder and convenience initializers
func (s *Service) Interlink(ctx context.Context, src []byte) (*Result, error) {
	file, err := swift.NewInspector(s.config).InspectSource(src)
	if err != nil {
		return nil, err
	}
	return s.synthesize(ctx, file, synthesizer.ModeInterlink)
}

// SyncURL syncs source at URL, a changed output is written back when write is set
func (s *Service) SyncURL(ctx context.Context, URL string, write bool) (*Result, error) {
	return s.runURL(ctx, URL, write, synthesizer.ModeSync)
}

// InterlinkURL interlinks source at URL, a changed output is written back when write is set
func (s *Service) InterlinkURL(ctx context.Context, URL string, write bool) (*Result, error) {
	return s.runURL(ctx, URL, write, synthesizer.ModeInterlink)
}

func (s *Service) runURL(ctx context.Context, URL string, write bool, mode synthesizer.Mode) (*Result, error) {
	file, err := s.factory.InspectFile(ctx, URL)
	if err != nil {
		return nil, err
	}
	result, err := s.synthesize(ctx, file, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to %v %s: %w", mode, URL, err)
	}
	if write && result.Changed {
		if err = s.fs.Upload(ctx, URL, os.FileMode(0644), bytes.NewReader(result.Output)); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", URL, err)
		}
		s.logger.Info("file updated", slog.String("file", URL))
	}
	return result, nil
}

func (s *Service) synthesize(ctx context.Context, file *graph.File, mode synthesizer.Mode) (*Result, error) {
	rewriter := formatter.New(s.config)
	engine := synthesizer.New(s.config, synthesizer.WithMode(mode), synthesizer.WithLogger(s.logger))
	if err := engine.Synthesize(ctx, file, rewriter); err != nil {
		return nil, err
	}
	output, err := file.Content(rewriter)
	if err != nil {
		return nil, err
	}
	hash, err := graph.Hash(output)
	if err != nil {
		return nil, err
	}
	return &Result{Output: output, Changed: hash != file.Hash, Hash: hash}, nil
}

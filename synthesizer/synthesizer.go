package synthesizer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/viant/interlinked/config"
	"github.com/viant/interlinked/inspector/graph"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Change represents reconciled initializer of a type
type Change struct {
	Type        *graph.Type
	Initializer *graph.Initializer // IsSynthetic for inserted initializers
	Anchor      *graph.Member      // Member an inserted initializer follows, nil appends it
	Parameters  []*graph.Parameter
	Statements  []*graph.Statement
	Deleted     bool
}

// Rewriter applies initializer changes to the source
type Rewriter interface {
	Rewrite(change *Change) error
}

// Synthesizer keeps initializers in sync with stored properties
type Synthesizer struct {
	config      *config.Config
	mode        Mode
	logger      *slog.Logger
	recognizers []Recognizer
	passes      []Pass
}

// New creates synthesizer
func New(cfg *config.Config, opts ...Option) *Synthesizer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := &Synthesizer{
		config: cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.recognizers == nil {
		if s.mode == ModeInterlink {
			s.recognizers = RejectRecognizers()
		} else {
			s.recognizers = SkipRecognizers()
		}
	}
	s.passes = []Pass{&ParameterRemover{}, &AssignmentRemover{}, &DeclarationRemover{}, &ParameterRemover{}, &Injector{}}
	if cfg.EnableSorting {
		s.passes = append(s.passes, &Sorter{})
	}
	return s
}

// Synthesize reconciles initializers of every class, struct and actor of the file, nested ones included.
// In interlink mode the first unsupported initializer aborts the file before any change reaches rewriter
func (s *Synthesizer) Synthesize(ctx context.Context, file *graph.File, rewriter Rewriter) error {
	started := time.Now()
	ctx, span := tracer.Start(ctx, "synthesizer.Synthesize", trace.WithAttributes(
		attribute.String("file", file.Path),
		attribute.String("mode", s.mode.String()),
	))
	defer span.End()

	var changes []*Change
	err := file.Walk(func(typ *graph.Type) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		typeChanges, err := s.synthesizeType(ctx, typ)
		if err != nil {
			return err
		}
		changes = append(changes, typeChanges...)
		return nil
	})
	recordSynthesis(ctx, s.mode, time.Since(started), err != nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	for _, change := range changes {
		if err := rewriter.Rewrite(change); err != nil {
			return fmt.Errorf("failed to rewrite %s initializer: %w", change.Type.Name, err)
		}
	}
	span.SetAttributes(attribute.Int("changes", len(changes)))
	return nil
}

func (s *Synthesizer) synthesizeType(ctx context.Context, typ *graph.Type) ([]*Change, error) {
	if !typ.IsSynthesizable() {
		return nil, nil
	}
	ctx, span := tracer.Start(ctx, "synthesizer.type", trace.WithAttributes(attribute.String("type", typ.Name)))
	defer span.End()

	variables := Variables(typ)
	initializers := typ.Initializers()
	var result []*Change
	if shouldInsert(initializers) {
		change := s.reconcile(typ, variables, &graph.Initializer{IsSynthetic: true})
		if !change.Deleted {
			change.Anchor = typ.LastVariable()
			result = append(result, change)
			recordInitializer(ctx, s.mode, outcomeInserted)
		}
	}
	for _, init := range initializers {
		if init.Body == nil {
			continue
		}
		if recognizer, ok := s.recognize(init); ok {
			if s.mode == ModeInterlink {
				return nil, &UnsupportedInitializerFormatError{Type: typ.Name, Reason: recognizer.Reason}
			}
			s.logger.Debug("initializer skipped",
				slog.String("type", typ.Name),
				slog.String("recognizer", recognizer.Name))
			recordInitializer(ctx, s.mode, outcomeSkipped)
			continue
		}
		change := s.reconcile(typ, variables, init)
		result = append(result, change)
		if change.Deleted {
			recordInitializer(ctx, s.mode, outcomeDeleted)
		} else {
			recordInitializer(ctx, s.mode, outcomeReconciled)
		}
	}
	return result, nil
}

func (s *Synthesizer) recognize(init *graph.Initializer) (Recognizer, bool) {
	for _, recognizer := range s.recognizers {
		if recognizer.Match(init) {
			return recognizer, true
		}
	}
	return Recognizer{}, false
}

// reconcile runs the passes over the initializer
func (s *Synthesizer) reconcile(typ *graph.Type, variables []*Variable, init *graph.Initializer) *Change {
	var statements []*graph.Statement
	if init.Body != nil {
		statements = init.Body.Statements
	}
	definitions := NewDefinitions(variables, init.Parameters, statements)
	for _, pass := range s.passes {
		pass.Apply(definitions)
		s.logger.Debug("pass applied",
			slog.String("type", typ.Name),
			slog.String("pass", pass.Name()),
			slog.String("definitions", definitions.String()))
	}
	change := &Change{
		Type:        typ,
		Initializer: init,
		Parameters:  definitions.GraphParameters(),
		Statements:  definitions.GraphStatements(),
	}
	change.Deleted = len(change.Parameters) == 0 && len(change.Statements) == 0
	return change
}

// shouldInsert returns true if type has no initializer other than decoder ones
func shouldInsert(initializers []*graph.Initializer) bool {
	for _, init := range initializers {
		if !isDecoder(init) {
			return false
		}
	}
	return true
}

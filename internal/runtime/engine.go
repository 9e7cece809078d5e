// Package runtime implements the decision workflow over an explicitly passed state document.
//
// Every operation takes the document it works on and, when it mutates, returns
// a new one. Loading and saving belong to the caller.
package runtime

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/figspec/internal/export"
	"github.com/aretw0/figspec/internal/indexer"
	"github.com/aretw0/figspec/internal/validator"
	"github.com/aretw0/figspec/pkg/domain"
)

// Engine runs workflow operations.
type Engine struct {
	logger *slog.Logger
	index  indexer.Options
	absorb bool
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger used for per-item warnings.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithIndexOptions sets visibility and fact extraction options for Index.
func WithIndexOptions(opts indexer.Options) EngineOption {
	return func(e *Engine) {
		e.index = opts
	}
}

// WithAbsorb toggles child absorption during export.
func WithAbsorb(enabled bool) EngineOption {
	return func(e *Engine) {
		e.absorb = enabled
	}
}

// NewEngine creates an engine with default options.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		index:  indexer.DefaultOptions(),
		absorb: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Index builds a fresh state document from a decoded design payload.
func (e *Engine) Index(payload any, uiSystem string) (*domain.State, []string, error) {
	if _, ok := domain.LookupProfile(uiSystem); !ok {
		return nil, nil, fmt.Errorf("%w: unsupported ui system %q (want one of %v)", domain.ErrInvalidInput, uiSystem, domain.UISystems)
	}
	root, err := indexer.SelectRoot(payload)
	if err != nil {
		return nil, nil, err
	}
	res, err := indexer.Index(root, e.index)
	if err != nil {
		return nil, nil, err
	}
	for _, w := range res.Warnings {
		e.logger.Warn(w)
	}
	e.logger.Debug("indexed design tree", "root", res.RootID, "nodes", len(res.Nodes), "bfs", len(res.BFS))
	return domain.NewState(uiSystem, res.RootID, res.Nodes, res.BFS), res.Warnings, nil
}

// Validate checks every decision in state.
func (e *Engine) Validate(state *domain.State) *domain.ValidationReport {
	return validator.Validate(state)
}

// Export reassembles the specification tree. absorb overrides the engine default when non-nil.
func (e *Engine) Export(state *domain.State, absorb *bool) *domain.ExportDocument {
	enabled := e.absorb
	if absorb != nil {
		enabled = *absorb
	}
	return export.Build(state, export.Options{Absorb: enabled})
}

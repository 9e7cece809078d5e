package figspec

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/figspec/internal/indexer"
	"github.com/aretw0/figspec/internal/runtime"
	"github.com/aretw0/figspec/pkg/domain"
	"github.com/aretw0/figspec/pkg/ports"
)

// DefaultLockTTL bounds how long a crashed writer can hold a state key.
const DefaultLockTTL = 30 * time.Second

// Engine is the high-level entry point for the figspec library.
// It owns one state key in a store and runs every operation as
// load, operate and (for writes) save.
type Engine struct {
	runtime *runtime.Engine
	store   ports.StateStore
	key     string
	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
	index   indexer.Options
	absorb  bool
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLocker serializes writers of the same key. Without one, concurrent
// apply calls on the same key may lose updates.
func WithLocker(l ports.DistributedLocker, ttl time.Duration) Option {
	return func(e *Engine) {
		e.locker = l
		e.lockTTL = ttl
	}
}

// WithMaxTextLen bounds TEXT characters kept in facts; a negative value disables the bound.
func WithMaxTextLen(n int) Option {
	return func(e *Engine) {
		e.index.Facts.MaxTextLen = n
	}
}

// WithIncludeInvisible indexes hidden nodes too.
func WithIncludeInvisible(include bool) Option {
	return func(e *Engine) {
		e.index.IncludeInvisible = include
	}
}

// WithAbsorb sets whether Export folds labels and images into their parents by default.
func WithAbsorb(enabled bool) Option {
	return func(e *Engine) {
		e.absorb = enabled
	}
}

// New creates an engine bound to key in store.
func New(store ports.StateStore, key string, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if key == "" {
		return nil, fmt.Errorf("state key is required")
	}

	eng := &Engine{
		store:   store,
		key:     key,
		lockTTL: DefaultLockTTL,
		index:   indexer.DefaultOptions(),
		absorb:  true,
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	eng.logger = eng.logger.With("state", key)

	eng.runtime = runtime.NewEngine(
		runtime.WithLogger(eng.logger),
		runtime.WithIndexOptions(eng.index),
		runtime.WithAbsorb(eng.absorb),
	)
	return eng, nil
}

// Key returns the state key the engine operates on.
func (e *Engine) Key() string {
	return e.key
}

// Store returns the underlying store.
func (e *Engine) Store() ports.StateStore {
	return e.store
}

// State loads the current document.
func (e *Engine) State(ctx context.Context) (*domain.State, error) {
	return e.store.Load(ctx, e.key)
}

// write runs fn under the key lock, if a locker is configured.
func (e *Engine) write(ctx context.Context, fn func() error) error {
	if e.locker == nil {
		return fn()
	}
	unlock, err := e.locker.Lock(ctx, e.key, e.lockTTL)
	if err != nil {
		return fmt.Errorf("lock state %s: %w", e.key, err)
	}
	defer func() {
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			e.logger.Warn("failed to release state lock", "error", err)
		}
	}()
	return fn()
}

// Index replaces the stored document with a fresh index of payload.
// Existing decisions are discarded.
func (e *Engine) Index(ctx context.Context, payload any, uiSystem string) (*domain.IndexResult, error) {
	state, warnings, err := e.runtime.Index(payload, uiSystem)
	if err != nil {
		return nil, err
	}
	if err := e.write(ctx, func() error { return e.store.Save(ctx, e.key, state) }); err != nil {
		return nil, err
	}
	e.logger.Info("indexed design", "root", state.RootID, "nodes", len(state.Nodes))
	return &domain.IndexResult{
		OK:        true,
		State:     e.key,
		RootID:    state.RootID,
		NodeCount: len(state.Nodes),
		BFSCount:  len(state.BFS),
		Warnings:  warnings,
	}, nil
}

// Apply parses patch and merges it into the stored document.
// A malformed patch fails before the document is touched.
func (e *Engine) Apply(ctx context.Context, patch []byte) (*domain.ApplyResult, error) {
	p, err := runtime.ParsePatch(patch)
	if err != nil {
		return nil, err
	}

	var res *domain.ApplyResult
	err = e.write(ctx, func() error {
		state, err := e.State(ctx)
		if err != nil {
			return err
		}
		next, r := e.runtime.Apply(state, p)
		res = r
		if r.AppliedCount == 0 {
			return nil
		}
		return e.store.Save(ctx, e.key, next)
	})
	if err != nil {
		return nil, err
	}
	e.logger.Debug("applied patch", "applied", res.AppliedCount, "skipped", len(res.Skipped))
	return res, nil
}

// Next returns the context bundle for the next undecided node.
func (e *Engine) Next(ctx context.Context) (*domain.NextResult, error) {
	state, err := e.State(ctx)
	if err != nil {
		return nil, err
	}
	return e.runtime.Next(state)
}

// Skeleton returns the tree under id (the root when empty) down to depth levels.
func (e *Engine) Skeleton(ctx context.Context, id string, depth int) (*domain.SkeletonResult, error) {
	state, err := e.State(ctx)
	if err != nil {
		return nil, err
	}
	return e.runtime.Skeleton(state, id, depth)
}

// Children lists the direct children of id.
func (e *Engine) Children(ctx context.Context, id string) (*domain.ChildrenResult, error) {
	state, err := e.State(ctx)
	if err != nil {
		return nil, err
	}
	return e.runtime.Children(state, id)
}

// Facts returns the stored facts of id.
func (e *Engine) Facts(ctx context.Context, id string) (*domain.FactsResult, error) {
	state, err := e.State(ctx)
	if err != nil {
		return nil, err
	}
	return e.runtime.Facts(state, id)
}

// Status summarizes progress.
func (e *Engine) Status(ctx context.Context) (*domain.StatusReport, error) {
	state, err := e.State(ctx)
	if err != nil {
		return nil, err
	}
	return e.runtime.Status(state), nil
}

// Batch returns a slice of the breadth-first order.
func (e *Engine) Batch(ctx context.Context, start, count int) (*domain.BatchResult, error) {
	state, err := e.State(ctx)
	if err != nil {
		return nil, err
	}
	return e.runtime.Batch(state, start, count)
}

// Validate checks every recorded decision.
func (e *Engine) Validate(ctx context.Context) (*domain.ValidationReport, error) {
	state, err := e.State(ctx)
	if err != nil {
		return nil, err
	}
	return e.runtime.Validate(state), nil
}

// Export reassembles the specification tree. absorb overrides WithAbsorb when non-nil.
func (e *Engine) Export(ctx context.Context, absorb *bool) (*domain.ExportDocument, error) {
	state, err := e.State(ctx)
	if err != nil {
		return nil, err
	}
	return e.runtime.Export(state, absorb), nil
}

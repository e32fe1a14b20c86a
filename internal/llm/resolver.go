package llm

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/muhammadolammi/hrworkflow/internal/logging"
)

// ErrNoProviderAvailable is returned when every provider was skipped or failed.
var ErrNoProviderAvailable = errors.New("no available LLM provider: set GEMINI_API_KEY, DEEPSEEK_API_KEY or ANTHROPIC_API_KEY")

// Provider is one candidate backend. New is only called when Credential is set.
type Provider struct {
	Name       string
	Credential string
	New        func(ctx context.Context) (Model, error)
}

// Source hands out a Model for one invocation.
type Source interface {
	Model(ctx context.Context) (Model, error)
}

// Resolve returns the first provider in order that constructs successfully.
func Resolve(ctx context.Context, providers []Provider, logger logrus.FieldLogger) (Model, error) {
	logger = logging.OrDiscard(logger)
	for _, p := range providers {
		if p.Credential == "" || p.New == nil {
			logger.WithField("provider", p.Name).Debug("skipping provider without credential")
			continue
		}
		m, err := p.New(ctx)
		if err != nil {
			logger.WithField("provider", p.Name).WithError(err).Warn("failed to initialize provider")
			continue
		}
		logger.WithField("provider", p.Name).Debug("using provider")
		return m, nil
	}
	return nil, ErrNoProviderAvailable
}

// Resolver resolves a fresh model on every call.
type Resolver struct {
	Providers []Provider
	Logger    logrus.FieldLogger
}

// Model implements Source.
func (r *Resolver) Model(ctx context.Context) (Model, error) {
	return Resolve(ctx, r.Providers, r.Logger)
}

// Cached resolves once and reuses the model for the life of the process.
// A failed resolution is not cached.
type Cached struct {
	src Source

	mu    sync.Mutex
	model Model
}

// NewCached wraps src.
func NewCached(src Source) *Cached {
	return &Cached{src: src}
}

// Model implements Source.
func (c *Cached) Model(ctx context.Context) (Model, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.model != nil {
		return c.model, nil
	}
	m, err := c.src.Model(ctx)
	if err != nil {
		return nil, err
	}
	c.model = m
	return m, nil
}

// Static always returns the same model. Mostly useful in tests.
type Static struct {
	M Model
}

// Model implements Source.
func (s Static) Model(context.Context) (Model, error) {
	if s.M == nil {
		return nil, ErrNoProviderAvailable
	}
	return s.M, nil
}

// Package source builds item sources from board profiles.
package source

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/DLICWCPA/monday-report-app/pkg/models/domain"
)

var ErrUnknownSource = errors.New("unknown source")

// ItemSource delivers the raw items of one board.
type ItemSource interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.RawItem, error)
}

// Factory creates an ItemSource from a profile.
type Factory func(ctx context.Context, profile domain.ConfigProfile) (ItemSource, error)

// Registry manages item source factories
type Registry interface {
	// Register adds a new source factory
	Register(source domain.SourceType, factory Factory) error
	// Create instantiates the source named by the profile
	Create(ctx context.Context, profile domain.ConfigProfile) (ItemSource, error)
	// ListSources returns the registered source types, sorted
	ListSources() []domain.SourceType
}

type registry struct {
	mu        sync.RWMutex
	factories map[domain.SourceType]Factory
}

// NewRegistry creates an empty source registry
func NewRegistry() Registry {
	return &registry{
		factories: make(map[domain.SourceType]Factory),
	}
}

func (r *registry) Register(source domain.SourceType, factory Factory) error {
	if source == "" {
		return fmt.Errorf("source name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[source]; exists {
		return fmt.Errorf("source %q is already registered", source)
	}

	r.factories[source] = factory
	return nil
}

func (r *registry) Create(ctx context.Context, profile domain.ConfigProfile) (ItemSource, error) {
	r.mu.RLock()
	factory, exists := r.factories[profile.Source]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w %q in profile %s", ErrUnknownSource, profile.Source, profile.Name)
	}

	src, err := factory(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s source for profile %s: %w", profile.Source, profile.Name, err)
	}
	return src, nil
}

func (r *registry) ListSources() []domain.SourceType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sources := make([]domain.SourceType, 0, len(r.factories))
	for s := range r.factories {
		sources = append(sources, s)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })
	return sources
}

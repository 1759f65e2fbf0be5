package source

import (
	"fmt"
	"sort"

	"NewsToChat/internal/ports"
)

// Registry keeps a mapping from source names to their implementations.
type Registry struct {
	sources map[string]ports.ArticleSource
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{sources: map[string]ports.ArticleSource{}}
}

// Register adds or replaces a source.
func (r *Registry) Register(src ports.ArticleSource) {
	if r.sources == nil {
		r.sources = map[string]ports.ArticleSource{}
	}
	r.sources[src.Name()] = src
}

// Resolve returns a source by name or an error if it is absent.
func (r *Registry) Resolve(name string) (ports.ArticleSource, error) {
	if src, ok := r.sources[name]; ok {
		return src, nil
	}
	return nil, fmt.Errorf("article source %s is not registered (have %v)", name, r.Names())
}

// Names lists registered sources in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

package render

import (
	"errors"
	"fmt"
	"mime"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// ErrUnknownRenderer is returned when a renderer name is not registered.
var ErrUnknownRenderer = errors.New("render: unknown renderer")

// Registry stores renderers by name, providing discovery and duplication
// safeguards. The first registered renderer is the default.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	fallback  string
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
	}
}

// Register adds a renderer by its Name(). Duplicate names return an error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := renderer.Name()
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}

	r.renderers[name] = renderer
	if r.fallback == "" {
		r.fallback = name
	}
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// SetDefault makes name the renderer returned by Negotiate when nothing in
// the Accept header matches.
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.renderers[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRenderer, name)
	}
	r.fallback = name
	return nil
}

// Get retrieves a renderer by name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRenderer, name)
	}
	return renderer, nil
}

// Negotiate picks the renderer preferred by the Accept header. Media ranges
// are weighted by their q parameter, ties keep header order and q=0 excludes
// a range. Empty headers and bare wildcards select the default renderer. A
// header that matches no renderer returns ErrUnknownRenderer.
func (r *Registry) Negotiate(accept string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if strings.TrimSpace(accept) == "" {
		return r.fallbackLocked()
	}

	type mediaRange struct {
		mediaType string
		q         float64
	}
	var ranges []mediaRange
	excluded := make(map[string]struct{})
	for _, part := range strings.Split(accept, ",") {
		mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil || mediaType == "" {
			continue
		}
		q := qualityOf(params)
		if q <= 0 {
			excluded[mediaType] = struct{}{}
		}
		ranges = append(ranges, mediaRange{mediaType: mediaType, q: q})
	}
	anyRange := len(ranges) > 0

	var (
		best  Renderer
		bestQ float64
	)
	for _, mr := range ranges {
		if mr.q <= 0 || mr.q <= bestQ {
			continue
		}
		if renderer := r.matchLocked(mr.mediaType, excluded); renderer != nil {
			best, bestQ = renderer, mr.q
		}
	}
	if best != nil {
		return best, nil
	}
	if !anyRange {
		return r.fallbackLocked()
	}
	return nil, fmt.Errorf("%w: nothing matches %q", ErrUnknownRenderer, accept)
}

// matchLocked finds a renderer for one media range, preferring the default.
// Renderers whose content type is in excluded never match.
func (r *Registry) matchLocked(mediaType string, excluded map[string]struct{}) Renderer {
	wildcard := strings.HasSuffix(mediaType, "/*")
	prefix := strings.TrimSuffix(mediaType, "*")
	if mediaType == "*/*" {
		prefix = ""
	}
	candidates := append([]string{r.fallback}, r.sortedNamesLocked()...)
	for _, name := range candidates {
		renderer, ok := r.renderers[name]
		if !ok {
			continue
		}
		contentType, _, err := mime.ParseMediaType(renderer.ContentType())
		if err != nil {
			continue
		}
		if _, skip := excluded[contentType]; skip {
			continue
		}
		if wildcard && strings.HasPrefix(contentType, prefix) {
			return renderer
		}
		if !wildcard && contentType == mediaType {
			return renderer
		}
	}
	return nil
}

func (r *Registry) fallbackLocked() (Renderer, error) {
	renderer, ok := r.renderers[r.fallback]
	if !ok {
		return nil, fmt.Errorf("%w: no default renderer", ErrUnknownRenderer)
	}
	return renderer, nil
}

// qualityOf reads the q parameter of a media range. Missing or malformed
// weights count as 1.
func qualityOf(params map[string]string) float64 {
	raw, ok := params["q"]
	if !ok {
		return 1
	}
	q, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || q > 1 {
		return 1
	}
	return q
}

// List returns a sorted list of renderer names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedNamesLocked()
}

// Has reports whether a renderer is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.renderers[name]
	return ok
}

func (r *Registry) sortedNamesLocked() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

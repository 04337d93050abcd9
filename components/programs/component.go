package programs

import (
	"fmt"
	"net/http"

	"github.com/goliatone/go-regform/pkg/catalog"
)

// Mux is satisfied by *http.ServeMux and chi routers.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Component serves one catalog under a route path.
type Component struct {
	opts    Options
	catalog *catalog.Catalog
}

// New constructs a component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	opts := NewOptions(fns...)
	source := opts.Catalog
	if source == nil {
		source = catalog.MustDefault()
	}
	return &Component{opts: opts, catalog: source}
}

// Handler returns the net/http handler for program queries.
func (c *Component) Handler() http.Handler {
	return newHandler(c.catalog, c.opts)
}

// RegisterRoutes mounts the handler under basePath and returns the pattern.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("programs: missing mux")
	}
	pattern := MountPath(basePath, c.opts.RoutePath)
	mux.Handle(pattern, c.Handler())
	return pattern, nil
}

package programs

import "github.com/goliatone/go-regform/pkg/catalog"

const (
	defaultRoutePath = "/api/programs"
	defaultLimit     = 20
	defaultMaxLimit  = 100
)

// Options configures the programs component.
type Options struct {
	RoutePath    string
	DefaultLimit int
	MaxLimit     int

	// Catalog defaults to the embedded catalog.
	Catalog *catalog.Catalog
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:    defaultRoutePath,
		DefaultLimit: defaultLimit,
		MaxLimit:     defaultMaxLimit,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = defaultLimit
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = defaultMaxLimit
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) { o.RoutePath = path }
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) { o.DefaultLimit = limit }
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) { o.MaxLimit = limit }
}

// WithCatalog replaces the embedded catalog.
func WithCatalog(c *catalog.Catalog) OptionFn {
	return func(o *Options) { o.Catalog = c }
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}

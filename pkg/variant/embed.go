package variant

import (
	"embed"
	"io/fs"
	"sync"
)

//go:embed forms/*.yaml
var embeddedForms embed.FS

// EmbeddedFS returns the bundled variant documents. Callers may pass this
// filesystem to LoadFS to use the default variants.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedForms, "forms")
	if err != nil {
		panic(err)
	}
	return sub
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// Default returns the registry built from the embedded documents: basic,
// contact, academic, profile and complete.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = LoadFS(EmbeddedFS())
	})
	return defaultRegistry, defaultErr
}

// MustDefault panics when the embedded documents fail to load.
func MustDefault() *Registry {
	r, err := Default()
	if err != nil {
		panic(err)
	}
	return r
}

package regform

import (
	"io/fs"

	htmlrenderer "github.com/goliatone/go-regform/pkg/renderers/html"
	"github.com/goliatone/go-regform/pkg/variant"
)

// EmbeddedTemplates exposes the built-in HTML renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return htmlrenderer.TemplatesFS()
}

// EmbeddedAssets exposes the bundled stylesheet.
func EmbeddedAssets() fs.FS {
	return htmlrenderer.AssetsFS()
}

// EmbeddedVariants exposes the bundled variant documents.
func EmbeddedVariants() fs.FS {
	return variant.EmbeddedFS()
}

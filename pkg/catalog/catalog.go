// Package catalog holds the static program lookup used to turn a submitted
// program code into a display name and presentation accent.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/programs.yaml
var dataFS embed.FS

const defaultCatalogPath = "data/programs.yaml"

// UnknownProgramName is shown when a code is not in the catalog.
const UnknownProgramName = "Unknown Program"

// Neutral accent used for unknown programs.
const (
	NeutralEmoji = "📋"
	NeutralColor = "#6b7280"
)

// Program is one catalog entry.
type Program struct {
	Code  string `json:"code" yaml:"code"`
	Name  string `json:"name" yaml:"name"`
	Emoji string `json:"emoji,omitempty" yaml:"emoji"`
	Color string `json:"color,omitempty" yaml:"color"`
}

// Known reports whether the program came from the catalog rather than the
// unknown fallback.
func (p Program) Known() bool {
	return p.Code != "" && p.Name != UnknownProgramName
}

// Catalog is a read-only, ordered set of programs.
type Catalog struct {
	order    []string
	programs map[string]Program
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded catalog (CS, IT, EC).
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultCatalogPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()
		defaultCatalog, defaultErr = Load(f)
	})
	return defaultCatalog, defaultErr
}

// MustDefault panics when the embedded catalog cannot be parsed.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

type document struct {
	Programs []Program `json:"programs" yaml:"programs"`
}

// Load parses a YAML or JSON catalog document.
func Load(r io.Reader) (*Catalog, error) {
	if r == nil {
		return nil, fmt.Errorf("catalog: missing reader")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("catalog: read: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("catalog: document is empty")
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		if yamlErr := yaml.Unmarshal(data, &doc); yamlErr != nil {
			return nil, fmt.Errorf("catalog: parse: invalid JSON or YAML: %w", yamlErr)
		}
	}
	return New(doc.Programs...)
}

// LoadFile reads a catalog document from path. An empty path yields the
// bundled default catalog.
func LoadFile(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

// New builds a catalog from programs, preserving their order. Codes must be
// non-empty and unique.
func New(programs ...Program) (*Catalog, error) {
	c := &Catalog{
		order:    make([]string, 0, len(programs)),
		programs: make(map[string]Program, len(programs)),
	}
	for _, program := range programs {
		code := strings.TrimSpace(program.Code)
		if code == "" {
			return nil, fmt.Errorf("catalog: program %q has an empty code", program.Name)
		}
		if _, exists := c.programs[code]; exists {
			return nil, fmt.Errorf("catalog: duplicate program code %q", code)
		}
		program.Code = code
		program.Name = strings.TrimSpace(program.Name)
		if program.Name == "" {
			program.Name = code
		}
		if program.Color == "" {
			program.Color = NeutralColor
		}
		c.programs[code] = program
		c.order = append(c.order, code)
	}
	return c, nil
}

// Resolve looks up code. Unrecognised codes resolve to the "Unknown Program"
// entry with a neutral accent; the lookup never fails.
func (c *Catalog) Resolve(code string) Program {
	trimmed := strings.TrimSpace(code)
	if c != nil {
		if program, ok := c.programs[trimmed]; ok {
			return program
		}
	}
	return Program{
		Code:  trimmed,
		Name:  UnknownProgramName,
		Emoji: NeutralEmoji,
		Color: NeutralColor,
	}
}

// Lookup returns the program for code and whether it exists.
func (c *Catalog) Lookup(code string) (Program, bool) {
	if c == nil {
		return Program{}, false
	}
	program, ok := c.programs[strings.TrimSpace(code)]
	return program, ok
}

// Programs returns the catalog entries in declaration order.
func (c *Catalog) Programs() []Program {
	if c == nil {
		return nil
	}
	out := make([]Program, 0, len(c.order))
	for _, code := range c.order {
		out = append(out, c.programs[code])
	}
	return out
}

// Codes returns the program codes in declaration order.
func (c *Catalog) Codes() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.order...)
}

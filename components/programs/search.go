package programs

import (
	"sort"
	"strings"

	"github.com/goliatone/go-regform/pkg/catalog"
)

// Option is one program as served to choice inputs and API clients.
type Option struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Emoji string `json:"emoji,omitempty"`
	Color string `json:"color"`
	Known bool   `json:"known"`
}

// NewOption converts a catalog entry, including the unknown fallback.
func NewOption(program catalog.Program) Option {
	return Option{
		Code:  program.Code,
		Name:  program.Name,
		Emoji: program.Emoji,
		Color: program.Color,
		Known: program.Known(),
	}
}

// Search filters programs by query. Matches on the code or name prefix come
// first, then other substring matches; ties keep catalog order. An empty
// query returns the catalog up to limit.
func Search(programs []catalog.Program, query string, limit int) []Option {
	if limit <= 0 {
		return []Option{}
	}

	q := strings.ToLower(strings.TrimSpace(query))
	matches := make([]matchedProgram, 0, len(programs))
	for _, program := range programs {
		code := strings.ToLower(program.Code)
		name := strings.ToLower(program.Name)
		if q != "" && !strings.Contains(code, q) && !strings.Contains(name, q) {
			continue
		}
		matches = append(matches, matchedProgram{
			program:  program,
			isPrefix: q == "" || strings.HasPrefix(code, q) || strings.HasPrefix(name, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].isPrefix && !matches[j].isPrefix
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]Option, 0, len(matches))
	for _, match := range matches {
		out = append(out, NewOption(match.program))
	}
	return out
}

type matchedProgram struct {
	program  catalog.Program
	isPrefix bool
}

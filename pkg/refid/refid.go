// Package refid builds the display reference shown on confirmation pages.
// References are a fixed prefix followed by a random five digit number; they
// are not guaranteed unique.
package refid

import (
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
)

const (
	// Min and Max bound the random part, inclusive.
	Min = 10000
	Max = 99999

	// DefaultPrefix is the prefix of the basic registration form.
	DefaultPrefix = "REG-"
)

// Source supplies random integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Global returns the process-wide random source. It is safe for concurrent
// use.
func Global() Source { return globalSource{} }

// Seeded returns a deterministic source, mainly for tests. The returned source
// is not safe for concurrent use.
func Seeded(seed1, seed2 uint64) Source {
	return rand.New(rand.NewPCG(seed1, seed2))
}

// Generator draws reference ids from a Source.
type Generator struct {
	source Source
}

// New returns a Generator reading from source, or from the process-wide
// source when source is nil.
func New(source Source) *Generator {
	if source == nil {
		source = Global()
	}
	return &Generator{source: source}
}

// Generate concatenates prefix with a fresh number in [Min, Max].
func (g *Generator) Generate(prefix string) string {
	source := Global()
	if g != nil && g.source != nil {
		source = g.source
	}
	n := Min + source.IntN(Max-Min+1)
	return prefix + strconv.Itoa(n)
}

var digitsPattern = regexp.MustCompile(`^[0-9]{5}$`)

// Matches reports whether id is prefix followed by a number in [Min, Max].
func Matches(prefix, id string) bool {
	if !strings.HasPrefix(id, prefix) {
		return false
	}
	rest := strings.TrimPrefix(id, prefix)
	if !digitsPattern.MatchString(rest) {
		return false
	}
	n, err := strconv.Atoi(rest)
	return err == nil && n >= Min && n <= Max
}

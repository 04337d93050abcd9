package refid

import "testing"

type fixedSource struct{ values []int }

func (f *fixedSource) IntN(n int) int {
	v := f.values[0]
	f.values = f.values[1:]
	if v >= n {
		panic("fixed value out of range")
	}
	return v
}

func TestGenerateBounds(t *testing.T) {
	src := &fixedSource{values: []int{0, Max - Min}}
	gen := New(src)

	if got := gen.Generate("REG-"); got != "REG-10000" {
		t.Fatalf("lower bound: got %q", got)
	}
	if got := gen.Generate("APP-"); got != "APP-99999" {
		t.Fatalf("upper bound: got %q", got)
	}
}

func TestGenerateSeededIsDeterministic(t *testing.T) {
	a := New(Seeded(1, 2))
	b := New(Seeded(1, 2))
	for i := 0; i < 20; i++ {
		first, second := a.Generate(DefaultPrefix), b.Generate(DefaultPrefix)
		if first != second {
			t.Fatalf("seeded generators diverged at %d: %q vs %q", i, first, second)
		}
		if !Matches(DefaultPrefix, first) {
			t.Fatalf("generated id %q does not match the reference shape", first)
		}
	}
}

func TestGenerateDefaultsToGlobalSource(t *testing.T) {
	var gen *Generator
	if id := gen.Generate("X-"); !Matches("X-", id) {
		t.Fatalf("nil generator produced %q", id)
	}
	if id := New(nil).Generate(""); !Matches("", id) {
		t.Fatalf("global source produced %q", id)
	}
}

func TestMatches(t *testing.T) {
	cases := map[string]bool{
		"REG-12345":  true,
		"REG-09999":  false,
		"REG-1234":   false,
		"REG-123456": false,
		"APP-12345":  false,
		"REG-1234a":  false,
	}
	for id, want := range cases {
		if got := Matches("REG-", id); got != want {
			t.Fatalf("Matches(%q) = %v, want %v", id, got, want)
		}
	}
}

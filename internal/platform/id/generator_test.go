package id

import "testing"

func TestRandomGenerator_NewID(t *testing.T) {
	g := NewRandomGenerator()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id, err := g.NewID()
		if err != nil {
			t.Fatalf("generate id: %v", err)
		}
		if len(id) != 32 {
			t.Fatalf("expected 32 hex chars, got %d (%s)", len(id), id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = struct{}{}
	}
}

package document

import "context"

// The two documents the whole system revolves around. Each one is a plain
// JSON array persisted and replaced as a unit.
const (
	NameTeams     = "teams"
	NameMatchDays = "matchdays"
)

// EmptyArray is what a never-written document reads back as.
var EmptyArray = []byte("[]")

// Store describes document persistence needs from use cases and the gateway.
// Writes are full replacements; there is no partial or merge write, and the
// store never retries on its own.
type Store interface {
	// ReadDocument returns the persisted JSON for a named document. A
	// document that was never written is initialized to an empty array
	// and that array is returned.
	ReadDocument(ctx context.Context, name string) ([]byte, error)
	// WriteDocument atomically replaces the whole named document.
	WriteDocument(ctx context.Context, name string, payload []byte) error
}

// KnownName reports whether name is one of the two managed documents.
func KnownName(name string) bool {
	return name == NameTeams || name == NameMatchDays
}

package descriptions

import "context"

// Service exposes the description resolution and curation use cases.
type Service interface {
	// Resolve looks a description up across tiers: remote first, local
	// snapshot on remote miss or failure. Absence is a normal outcome, not
	// an error; the returned Resolution reports the tier that answered.
	Resolve(ctx context.Context, holidayName, countryIdentifier, locale string) (Resolution, error)
	// Exists performs an existence-only probe using the same key space as
	// Resolve. It avoids fetching record payloads on the remote tier.
	Exists(ctx context.Context, holidayName, countryIdentifier, locale string) (bool, error)
	// Save validates and persists a record on the authoritative tier. Manual
	// entries are forced to full confidence. The local snapshot is a
	// build-time artifact and is not updated in-process.
	Save(ctx context.Context, req SaveRequest) (*Record, error)
	// List pages through persisted records for the admin surface.
	List(ctx context.Context, filter ListFilter) ([]*Record, int, error)
	// Stats returns a snapshot of the process-lifetime resolution counters.
	Stats() Stats
}

// Repository is the narrow contract the core consumes from the remote
// authoritative store. Implementations must return NotFoundError (not nil
// records) for absent rows so the resolver can distinguish miss from outage.
type Repository interface {
	FindOne(ctx context.Context, q Query) (*Record, error)
	Exists(ctx context.Context, q Query) (bool, error)
	Upsert(ctx context.Context, record *Record) (*Record, error)
	List(ctx context.Context, filter ListFilter) ([]*Record, int, error)
}

// SnapshotReader is the synchronous read surface of the local fallback tier.
type SnapshotReader interface {
	Get(key string) (*Record, bool)
	Len() int
}

package interfaces

import "context"

// AuthProvider resolves the acting user for write operations. The admin
// surface owns session/JWT mechanics; the core only needs an identity to
// stamp on curated records and audit entries.
type AuthProvider interface {
	CurrentUserID(ctx context.Context) (string, error)
	HasPermission(ctx context.Context, permission string) (bool, error)
}

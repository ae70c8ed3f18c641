package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// DescriptionUUID derives the record ID for a description from its canonical
// key, so re-saves of the same entity keep a stable identifier.
func DescriptionUUID(canonicalKey string) uuid.UUID {
	return UUID("go-holidays:description:" + strings.TrimSpace(canonicalKey))
}

// AuditUUID derives an identifier for audit entries tied to a canonical key.
func AuditUUID(canonicalKey string) uuid.UUID {
	return UUID("go-holidays:audit:" + strings.TrimSpace(canonicalKey))
}

package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDIsDeterministic(t *testing.T) {
	a := DescriptionUUID("good friday|BA|ko")
	b := DescriptionUUID("good friday|BA|ko")
	if a == uuid.Nil {
		t.Fatal("expected non-nil uuid")
	}
	if a != b {
		t.Fatalf("expected stable uuid, got %s and %s", a, b)
	}
}

func TestUUIDSeparatesDomains(t *testing.T) {
	if DescriptionUUID("carnival|AD|ko") == AuditUUID("carnival|AD|ko") {
		t.Fatal("domain prefixes must separate key spaces")
	}
}

func TestUUIDEmptyKey(t *testing.T) {
	if UUID("  ") != uuid.Nil {
		t.Fatal("blank keys must map to uuid.Nil")
	}
}

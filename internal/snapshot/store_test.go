package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-holidays/descriptions"
)

const sampleSnapshot = `{
  "carnival|AD|ko": {
    "holidayName": "carnival",
    "countryName": "AD",
    "locale": "ko",
    "description": "카니발은 사순절 직전의 축제 기간입니다.",
    "confidence": 1.0,
    "isManual": false,
    "generatedAt": "2024-02-10T08:00:00Z"
  },
  "Good Friday_Bosnia and Herzegovina_ko": {
    "holidayName": "Good Friday",
    "countryName": "Bosnia and Herzegovina",
    "locale": "ko",
    "description": "성금요일은 예수의 수난을 기념하는 날입니다.",
    "confidence": 0.4,
    "isManual": true,
    "generatedAt": "2023-11-01T08:00:00Z"
  },
  "epiphany|AD|ko": {
    "holidayName": "epiphany",
    "countryName": "AD",
    "locale": "ko",
    "description": "draft text that never passed review",
    "confidence": 0.7,
    "isManual": false
  }
}`

func writeSnapshot(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "descriptions_snapshot.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write snapshot fixture: %v", err)
	}
	return path
}

func TestLoadAppliesCurationFilter(t *testing.T) {
	store := NewStore(writeSnapshot(t, sampleSnapshot))
	store.Load(context.Background())

	if got := store.Len(); got != 2 {
		t.Fatalf("expected 2 curated records, got %d", got)
	}

	if _, ok := store.Get("carnival|AD|ko"); !ok {
		t.Fatal("full-confidence record must survive the filter")
	}
	if _, ok := store.Get("Good Friday_Bosnia and Herzegovina_ko"); !ok {
		t.Fatal("manual record must survive the filter regardless of confidence")
	}
	if _, ok := store.Get("epiphany|AD|ko"); ok {
		t.Fatal("low-confidence generated record must be filtered out")
	}
}

func TestLoadFailsSoftOnMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nope.json"))
	store.Load(context.Background())

	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d records", store.Len())
	}
	if _, ok := store.Get("carnival|AD|ko"); ok {
		t.Fatal("empty store must miss every key")
	}
}

func TestLoadFailsSoftOnCorruptFile(t *testing.T) {
	store := NewStore(writeSnapshot(t, `{"broken":`))
	store.Load(context.Background())

	if store.Len() != 0 {
		t.Fatalf("expected empty store after corrupt load, got %d", store.Len())
	}
}

func TestGetReturnsCopies(t *testing.T) {
	store := NewStore(writeSnapshot(t, sampleSnapshot))
	store.Load(context.Background())

	first, ok := store.Get("carnival|AD|ko")
	if !ok {
		t.Fatal("expected record")
	}
	first.Description = "mutated"

	second, _ := store.Get("carnival|AD|ko")
	if second.Description == "mutated" {
		t.Fatal("Get must hand out independent copies")
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	fixed := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	path := writeSnapshot(t, `{
	  "constitution day|AD|en": {
	    "description": "Constitution Day marks the 1993 constitution.",
	    "isManual": true
	  }
	}`)
	store := NewStore(path, WithClock(func() time.Time { return fixed }))
	store.Load(context.Background())

	record, ok := store.Get("constitution day|AD|en")
	if !ok {
		t.Fatal("expected record")
	}
	if record.HolidayName != "constitution day" || record.CountryName != "AD" || record.Locale != "en" {
		t.Fatalf("identity fields must be recovered from the key: %+v", record)
	}
	if !record.GeneratedAt.Equal(fixed) {
		t.Fatalf("expected generatedAt %s, got %s", fixed, record.GeneratedAt)
	}
	if record.ID == uuid.Nil {
		t.Fatal("expected deterministic id for key-only record")
	}
}

func TestRefreshReportsErrorsAndKeepsState(t *testing.T) {
	path := writeSnapshot(t, sampleSnapshot)
	store := NewStore(path)
	store.Load(context.Background())

	if err := os.WriteFile(path, []byte(`not json`), 0o644); err != nil {
		t.Fatalf("corrupt snapshot: %v", err)
	}
	if err := store.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh error for corrupt file")
	}
	if store.Len() != 2 {
		t.Fatalf("refresh failure must keep the previous map, got %d records", store.Len())
	}
}

func TestReplaceFiltersAndCopies(t *testing.T) {
	store := NewStore("")
	source := &descriptions.Record{
		HolidayName: "carnival",
		CountryName: "AD",
		Locale:      "ko",
		Description: "replaced",
		IsManual:    true,
	}
	store.Replace(Document{
		"carnival|AD|ko": source,
		"epiphany|AD|ko": {HolidayName: "epiphany", Confidence: 0.2},
	})

	if store.Len() != 1 {
		t.Fatalf("expected 1 curated record, got %d", store.Len())
	}
	source.Description = "mutated"
	record, _ := store.Get("carnival|AD|ko")
	if record.Description != "replaced" {
		t.Fatal("Replace must copy records, not share pointers")
	}
}

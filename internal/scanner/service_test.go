package scanner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-holidays/calendar"
	internaldescriptions "github.com/goliatone/go-holidays/internal/descriptions"
)

type fakeSnapshot map[string]*internaldescriptions.Record

func (f fakeSnapshot) Get(key string) (*internaldescriptions.Record, bool) {
	record, ok := f[key]
	if !ok {
		return nil, false
	}
	return record.Clone(), true
}

func (f fakeSnapshot) Len() int { return len(f) }

func andorraCalendar(t *testing.T, names ...string) *calendar.StaticProvider {
	t.Helper()
	provider := calendar.NewStaticProvider()
	holidays := make([]calendar.Holiday, 0, len(names))
	for i, name := range names {
		holidays = append(holidays, calendar.Holiday{
			ID:     name,
			Name:   name,
			Date:   calendar.NewDate(2024, time.Month(i+1), 10),
			Type:   "public",
			Global: true,
		})
	}
	provider.Add("AD", 2024, holidays...)
	return provider
}

func newScanner(provider calendar.Provider, snapshot internaldescriptions.SnapshotReader, seed ...*internaldescriptions.Record) Service {
	repo := internaldescriptions.NewMemoryRepository()
	repo.Seed(seed...)
	resolver := internaldescriptions.NewService(repo, snapshot)
	return NewService(provider, resolver)
}

func TestScanReportsPartialCoverage(t *testing.T) {
	snapshot := fakeSnapshot{
		"Carnival|AD|ko": {
			HolidayName: "Carnival",
			CountryName: "AD",
			Locale:      "ko",
			Description: "카니발 축제",
			IsManual:    true,
		},
	}
	svc := newScanner(andorraCalendar(t, "Carnival"), snapshot)

	result, err := svc.Scan(context.Background(), "AD", 2024, []string{"ko", "en"}, 1, 20)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if result.Total != 1 || len(result.Entries) != 1 {
		t.Fatalf("expected one backlog entry, got %+v", result)
	}

	entry := result.Entries[0]
	if entry.Holiday.Name != "Carnival" {
		t.Fatalf("unexpected holiday %q", entry.Holiday.Name)
	}
	if !entry.LanguageStatus["ko"] || entry.LanguageStatus["en"] {
		t.Fatalf("expected ko covered and en missing, got %v", entry.LanguageStatus)
	}
}

func TestScanExcludesFullyCoveredHolidays(t *testing.T) {
	// Coverage stored under different legacy forms still counts.
	snapshot := fakeSnapshot{
		"Carnival_Andorra_ko": {HolidayName: "Carnival", CountryName: "Andorra", Locale: "ko", IsManual: true},
	}
	seed := &internaldescriptions.Record{
		HolidayName: "Carnival",
		CountryName: "Andorra",
		Locale:      "en",
		Description: "Carnival festivities before Lent.",
		Confidence:  1.0,
	}
	svc := newScanner(andorraCalendar(t, "Carnival", "Constitution Day"), snapshot, seed)

	result, err := svc.Scan(context.Background(), "AD", 2024, []string{"ko", "en"}, 1, 20)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if result.Total != 1 {
		t.Fatalf("fully covered holiday must be excluded, got %+v", result)
	}
	if result.Entries[0].Holiday.Name != "Constitution Day" {
		t.Fatalf("unexpected backlog entry %q", result.Entries[0].Holiday.Name)
	}
}

func TestScanKeepsCalendarOrderAndPaginates(t *testing.T) {
	names := []string{"New Year", "Epiphany", "Carnival", "Constitution Day", "Assumption Day"}
	svc := newScanner(andorraCalendar(t, names...), fakeSnapshot{})

	first, err := svc.Scan(context.Background(), "AD", 2024, []string{"ko"}, 1, 2)
	if err != nil {
		t.Fatalf("Scan page 1: %v", err)
	}
	if first.Total != 5 || first.TotalPages != 3 || len(first.Entries) != 2 {
		t.Fatalf("unexpected page shape: %+v", first)
	}
	if first.Entries[0].Holiday.Name != "New Year" || first.Entries[1].Holiday.Name != "Epiphany" {
		t.Fatalf("entries must follow calendar order, got %q/%q",
			first.Entries[0].Holiday.Name, first.Entries[1].Holiday.Name)
	}

	last, err := svc.Scan(context.Background(), "AD", 2024, []string{"ko"}, 3, 2)
	if err != nil {
		t.Fatalf("Scan page 3: %v", err)
	}
	if len(last.Entries) != 1 || last.Entries[0].Holiday.Name != "Assumption Day" {
		t.Fatalf("unexpected final page: %+v", last)
	}

	beyond, err := svc.Scan(context.Background(), "AD", 2024, []string{"ko"}, 4, 2)
	if err != nil {
		t.Fatalf("Scan page 4: %v", err)
	}
	if len(beyond.Entries) != 0 || beyond.Total != 5 {
		t.Fatalf("pages past the end must be empty with the full total: %+v", beyond)
	}
}

func TestScanIsDeterministic(t *testing.T) {
	svc := newScanner(andorraCalendar(t, "New Year", "Epiphany", "Carnival"), fakeSnapshot{})

	first, err := svc.Scan(context.Background(), "AD", 2024, []string{"ko", "en"}, 1, 20)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := svc.Scan(context.Background(), "AD", 2024, []string{"ko", "en"}, 1, 20)
		if err != nil {
			t.Fatalf("Scan repeat: %v", err)
		}
		if len(again.Entries) != len(first.Entries) {
			t.Fatal("missing set size changed between identical scans")
		}
		for j := range first.Entries {
			if again.Entries[j].Holiday.Name != first.Entries[j].Holiday.Name {
				t.Fatalf("order changed at %d: %q vs %q",
					j, first.Entries[j].Holiday.Name, again.Entries[j].Holiday.Name)
			}
		}
	}
}

func TestScanValidation(t *testing.T) {
	svc := newScanner(andorraCalendar(t, "Carnival"), fakeSnapshot{})

	if _, err := svc.Scan(context.Background(), "", 2024, []string{"ko"}, 1, 20); !errors.Is(err, ErrCountryRequired) {
		t.Fatalf("expected ErrCountryRequired, got %v", err)
	}
	if _, err := svc.Scan(context.Background(), "AD", 0, []string{"ko"}, 1, 20); !errors.Is(err, ErrYearInvalid) {
		t.Fatalf("expected ErrYearInvalid, got %v", err)
	}
	if _, err := svc.Scan(context.Background(), "AD", 2024, nil, 1, 20); !errors.Is(err, ErrLocalesRequired) {
		t.Fatalf("expected ErrLocalesRequired, got %v", err)
	}
}

func TestScanPropagatesCalendarErrors(t *testing.T) {
	svc := newScanner(calendar.NewStaticProvider(), fakeSnapshot{})

	if _, err := svc.Scan(context.Background(), "AD", 2024, []string{"ko"}, 1, 20); !errors.Is(err, calendar.ErrCalendarNotFound) {
		t.Fatalf("expected calendar error to propagate, got %v", err)
	}
}

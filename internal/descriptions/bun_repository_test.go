package descriptions

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-holidays/internal/descriptionkey"
	"github.com/goliatone/go-holidays/pkg/testsupport"
)

func newBunTestRepo(t *testing.T) *BunRepository {
	t.Helper()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	db := bun.NewDB(sqlDB, sqlitedialect.New())
	db.SetMaxOpenConns(1)

	if _, err := db.NewCreateTable().Model((*Record)(nil)).IfNotExists().Exec(context.Background()); err != nil {
		t.Fatalf("create holiday_descriptions table: %v", err)
	}
	if _, err := db.NewDelete().Model((*Record)(nil)).Where("1 = 1").Exec(context.Background()); err != nil {
		t.Fatalf("reset holiday_descriptions table: %v", err)
	}
	return NewBunRepository(db)
}

func storedRecord(holiday, country, locale string) *Record {
	return &Record{
		ID:          uuid.New(),
		HolidayName: holiday,
		CountryName: country,
		Locale:      locale,
		Description: "stored description",
		Confidence:  1.0,
		IsManual:    true,
		GeneratedAt: time.Date(2024, time.February, 10, 8, 0, 0, 0, time.UTC),
	}
}

func TestBunRepositoryFindOneMatchesSpellingSet(t *testing.T) {
	ctx := context.Background()
	repo := newBunTestRepo(t)

	if _, err := repo.Upsert(ctx, storedRecord("Carnival", "Andorra", "ko")); err != nil {
		t.Fatalf("seed record: %v", err)
	}

	found, err := repo.FindOne(ctx, Query{
		HolidayName:  "carnival",
		CountryNames: descriptionkey.CountryForms("AD"),
		Locale:       "ko",
	})
	if err != nil {
		t.Fatalf("find one: %v", err)
	}
	if found.CountryName != "Andorra" {
		t.Fatalf("expected stored spelling back, got %q", found.CountryName)
	}

	_, err = repo.FindOne(ctx, Query{
		HolidayName:  "carnival",
		CountryNames: descriptionkey.CountryForms("AD"),
		Locale:       "en",
	})
	if !IsNotFound(err) {
		t.Fatalf("expected not found for absent locale, got %v", err)
	}

	ok, err := repo.Exists(ctx, Query{
		HolidayName:  "CARNIVAL",
		CountryNames: descriptionkey.CountryForms("Andorra"),
		Locale:       "ko",
	})
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !ok {
		t.Fatal("expected existence probe to match case-insensitively")
	}
}

func TestBunRepositoryUpsertOverwritesLegacySpelling(t *testing.T) {
	ctx := context.Background()
	repo := newBunTestRepo(t)

	legacy := storedRecord("Carnival", "AD", "ko")
	if _, err := repo.Upsert(ctx, legacy); err != nil {
		t.Fatalf("seed legacy row: %v", err)
	}

	replacement := storedRecord("Carnival", "Andorra", "ko")
	replacement.Description = "updated description"

	saved, err := repo.Upsert(ctx, replacement)
	if err != nil {
		t.Fatalf("upsert replacement: %v", err)
	}
	if saved.ID != legacy.ID {
		t.Fatalf("expected overwrite to keep stored ID %s, got %s", legacy.ID, saved.ID)
	}

	records, total, err := repo.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(records) != 1 {
		t.Fatalf("expected single row after overwrite, got total=%d len=%d", total, len(records))
	}
	if records[0].Description != "updated description" || records[0].CountryName != "Andorra" {
		t.Fatalf("unexpected surviving row: %+v", records[0])
	}
}

func TestBunRepositoryListFiltersAndPaging(t *testing.T) {
	ctx := context.Background()
	repo := newBunTestRepo(t)

	carnivalDate := time.Date(2024, time.February, 12, 0, 0, 0, 0, time.UTC)
	carnival := storedRecord("Carnival", "Andorra", "ko")
	carnival.HolidayDate = &carnivalDate

	carnivalEN := storedRecord("Carnival", "Andorra", "en")
	carnivalEN.IsManual = false
	carnivalEN.Confidence = 0.8

	epiphanyDate := time.Date(2023, time.January, 6, 0, 0, 0, 0, time.UTC)
	epiphany := storedRecord("Epiphany", "Bosnia and Herzegovina", "ko")
	epiphany.HolidayDate = &epiphanyDate

	for _, record := range []*Record{carnival, carnivalEN, epiphany} {
		if _, err := repo.Upsert(ctx, record); err != nil {
			t.Fatalf("seed %s/%s: %v", record.HolidayName, record.Locale, err)
		}
	}

	records, total, err := repo.List(ctx, ListFilter{Country: "AD"})
	if err != nil {
		t.Fatalf("list by country: %v", err)
	}
	if total != 2 || len(records) != 2 {
		t.Fatalf("expected two Andorra rows, got total=%d len=%d", total, len(records))
	}

	records, total, err = repo.List(ctx, ListFilter{Year: 2024})
	if err != nil {
		t.Fatalf("list by year: %v", err)
	}
	if total != 1 || records[0].HolidayName != "Carnival" || records[0].Locale != "ko" {
		t.Fatalf("expected the dated 2024 row, got total=%d records=%+v", total, records)
	}

	manual := false
	records, total, err = repo.List(ctx, ListFilter{IsManual: &manual})
	if err != nil {
		t.Fatalf("list generated rows: %v", err)
	}
	if total != 1 || records[0].Locale != "en" {
		t.Fatalf("expected the generated row, got total=%d records=%+v", total, records)
	}

	records, total, err = repo.List(ctx, ListFilter{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("list second page: %v", err)
	}
	if total != 3 || len(records) != 1 {
		t.Fatalf("expected one row on the second page of three, got total=%d len=%d", total, len(records))
	}
	if records[0].CountryName != "Bosnia and Herzegovina" {
		t.Fatalf("expected lexical ordering to place Bosnia last, got %+v", records[0])
	}
}

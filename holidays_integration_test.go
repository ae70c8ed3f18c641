package holidays_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	holidays "github.com/goliatone/go-holidays"
	"github.com/goliatone/go-holidays/calendar"
	"github.com/goliatone/go-holidays/descriptions"
	holidaysdescriptions "github.com/goliatone/go-holidays/internal/descriptions"
	"github.com/goliatone/go-holidays/internal/di"
)

func memoryConfig() holidays.Config {
	cfg := holidays.DefaultConfig()
	cfg.Storage.Provider = "memory"
	cfg.Snapshot.Enabled = false
	cfg.Cache.Enabled = false
	return cfg
}

func TestModuleCurationLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	module, err := holidays.New(memoryConfig())
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	saved, err := module.Descriptions().Save(ctx, descriptions.SaveRequest{
		HolidayName: "Carnival",
		CountryName: "AD",
		Locale:      "ko",
		Description: "카니발은 사순절 직전의 축제 기간입니다.",
		Confidence:  0.4,
		IsManual:    true,
		ModifiedBy:  "curator@example.com",
	})
	if err != nil {
		t.Fatalf("save description: %v", err)
	}
	if !saved.IsManual || saved.Confidence != 1.0 {
		t.Fatalf("expected manual full-confidence record, got manual=%v confidence=%v", saved.IsManual, saved.Confidence)
	}
	if saved.CountryName != "Andorra" {
		t.Fatalf("expected canonical country name, got %q", saved.CountryName)
	}

	// The write canonicalized the country, so equivalent spellings resolve.
	for _, country := range []string{"AD", "Andorra", "andorra"} {
		res, err := module.Descriptions().Resolve(ctx, "Carnival", country, "ko")
		if err != nil {
			t.Fatalf("resolve %q: %v", country, err)
		}
		if res.Tier != descriptions.TierRemote || !res.Found() {
			t.Fatalf("resolve %q: expected remote hit, got tier=%s found=%v", country, res.Tier, res.Found())
		}
	}

	res, err := module.Descriptions().Resolve(ctx, "Carnival", "AD", "en")
	if err != nil {
		t.Fatalf("resolve absent locale: %v", err)
	}
	if res.Tier != descriptions.TierNone || res.Found() {
		t.Fatalf("expected quiet miss, got tier=%s found=%v", res.Tier, res.Found())
	}

	records, total, err := module.Descriptions().List(ctx, descriptions.ListFilter{Country: "AD"})
	if err != nil {
		t.Fatalf("list descriptions: %v", err)
	}
	if total != 1 || len(records) != 1 {
		t.Fatalf("expected single listed record, got total=%d len=%d", total, len(records))
	}

	stats := module.Stats()
	if stats.RemoteHits != 3 || stats.Misses != 1 || stats.Errors != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if !stats.RemoteAvailable {
		t.Fatalf("expected remote to stay available: %+v", stats)
	}
}

func TestModuleSnapshotFallbackDuringOutage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	snapshotPath := filepath.Join(t.TempDir(), "descriptions_snapshot.json")
	fixture := `{
  "carnival|AD|ko": {
    "holidayName": "carnival",
    "countryName": "AD",
    "locale": "ko",
    "description": "카니발은 사순절 직전의 축제 기간입니다.",
    "confidence": 1.0,
    "generatedAt": "2024-02-10T08:00:00Z"
  }
}`
	if err := os.WriteFile(snapshotPath, []byte(fixture), 0o644); err != nil {
		t.Fatalf("write snapshot fixture: %v", err)
	}

	repo := holidaysdescriptions.NewMemoryRepository()
	repo.FailWith(errors.New("connection refused"))

	cfg := memoryConfig()
	cfg.Snapshot.Enabled = true
	cfg.Snapshot.Path = snapshotPath

	module, err := holidays.New(cfg, di.WithRepository(repo))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	if module.Snapshot() == nil || module.Snapshot().Len() != 1 {
		t.Fatalf("expected loaded snapshot store")
	}

	res, err := module.Descriptions().Resolve(ctx, "Carnival", "Andorra", "ko")
	if err != nil {
		t.Fatalf("resolve during outage: %v", err)
	}
	if res.Tier != descriptions.TierLocal || !res.Found() {
		t.Fatalf("expected local fallback, got tier=%s found=%v", res.Tier, res.Found())
	}

	stats := module.Stats()
	if stats.Errors != 1 || stats.LocalHits != 1 || stats.RemoteAvailable {
		t.Fatalf("unexpected outage stats: %+v", stats)
	}
}

func TestModuleScanBacklog(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	provider := calendar.NewStaticProvider()
	provider.Add("AD", 2024,
		calendar.Holiday{ID: "ad-carnival", Name: "Carnival", Date: calendar.NewDate(2024, time.February, 12)},
		calendar.Holiday{ID: "ad-constitution", Name: "Constitution Day", Date: calendar.NewDate(2024, time.March, 14)},
	)

	module, err := holidays.New(memoryConfig(), di.WithCalendarProvider(provider))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	for _, locale := range []string{"ko", "en"} {
		if _, err := module.Descriptions().Save(ctx, descriptions.SaveRequest{
			HolidayName: "Carnival",
			CountryName: "AD",
			Locale:      locale,
			Description: "covered",
			IsManual:    true,
		}); err != nil {
			t.Fatalf("seed %s description: %v", locale, err)
		}
	}

	result, err := module.Scanner().Scan(ctx, "AD", 2024, []string{"ko", "en"}, 1, 20)
	if err != nil {
		t.Fatalf("scan backlog: %v", err)
	}
	if result.Total != 1 || len(result.Entries) != 1 {
		t.Fatalf("expected one backlog entry, got total=%d len=%d", result.Total, len(result.Entries))
	}
	entry := result.Entries[0]
	if entry.Holiday.Name != "Constitution Day" {
		t.Fatalf("expected uncovered holiday, got %q", entry.Holiday.Name)
	}
	if entry.LanguageStatus["ko"] || entry.LanguageStatus["en"] {
		t.Fatalf("expected both locales missing, got %+v", entry.LanguageStatus)
	}
}

func TestModuleRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.Locales = nil

	if _, err := holidays.New(cfg); !errors.Is(err, holidays.ErrLocalesRequired) {
		t.Fatalf("expected locales validation error, got %v", err)
	}
}

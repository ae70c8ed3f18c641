// Package scanner computes the admin backlog: for each holiday in a
// calendar scope, which required locales still lack a description. It
// probes existence through the resolver so both layers see the exact same
// key space and a legacy-keyed record never shows up as a false gap.
package scanner

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-holidays/calendar"
	"github.com/goliatone/go-holidays/descriptions"
	"github.com/goliatone/go-holidays/internal/logging"
	"github.com/goliatone/go-holidays/pkg/interfaces"
)

const defaultPageLimit = 20

// Option mutates the service configuration.
type Option func(*service)

// WithLogger installs a logger provider for the scanner.
func WithLogger(provider interfaces.LoggerProvider) Option {
	return func(s *service) {
		s.logger = logging.ScannerLogger(provider)
	}
}

type service struct {
	provider calendar.Provider
	resolver descriptions.Service
	logger   interfaces.Logger
}

// NewService constructs a scanner over the given calendar source and
// description resolver.
func NewService(provider calendar.Provider, resolver descriptions.Service, opts ...Option) Service {
	svc := &service{
		provider: provider,
		resolver: resolver,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

func (s *service) Scan(ctx context.Context, countryCode string, year int, requiredLocales []string, page, limit int) (Result, error) {
	countryCode = strings.TrimSpace(countryCode)
	if countryCode == "" {
		return Result{}, ErrCountryRequired
	}
	if year <= 0 {
		return Result{}, ErrYearInvalid
	}
	locales := dedupeLocales(requiredLocales)
	if len(locales) == 0 {
		return Result{}, ErrLocalesRequired
	}

	holidays, err := s.provider.Holidays(ctx, countryCode, year)
	if err != nil {
		return Result{}, err
	}

	started := time.Now()
	missing := make([]MissingEntry, 0, len(holidays))
	for _, holiday := range holidays {
		status, gap, err := s.languageStatus(ctx, holiday.Name, countryCode, locales)
		if err != nil {
			return Result{}, err
		}
		if gap {
			missing = append(missing, MissingEntry{Holiday: holiday, LanguageStatus: status})
		}
	}

	s.logger.Debug("scan complete",
		"country", countryCode,
		"year", year,
		"holidays", len(holidays),
		"missing", len(missing),
		"took", time.Since(started),
	)

	return paginate(missing, page, limit), nil
}

// languageStatus probes existence for every required locale, in the order
// the caller listed them. A holiday belongs in the backlog when at least one
// locale has no coverage.
func (s *service) languageStatus(ctx context.Context, holidayName, countryCode string, locales []string) (map[string]bool, bool, error) {
	status := make(map[string]bool, len(locales))
	gap := false
	for _, locale := range locales {
		exists, err := s.resolver.Exists(ctx, holidayName, countryCode, locale)
		if err != nil {
			return nil, false, err
		}
		status[locale] = exists
		if !exists {
			gap = true
		}
	}
	return status, gap, nil
}

// paginate slices the computed set in memory. The set is derived, not
// stored, so there is no database offset to lean on.
func paginate(missing []MissingEntry, page, limit int) Result {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}

	total := len(missing)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	entries := []MissingEntry{}
	if start < total {
		end := start + limit
		if end > total {
			end = total
		}
		entries = missing[start:end]
	}

	return Result{
		Entries:    entries,
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		Limit:      limit,
	}
}

func dedupeLocales(locales []string) []string {
	out := make([]string, 0, len(locales))
	seen := make(map[string]struct{}, len(locales))
	for _, locale := range locales {
		locale = strings.TrimSpace(locale)
		if locale == "" {
			continue
		}
		if _, dup := seen[locale]; dup {
			continue
		}
		seen[locale] = struct{}{}
		out = append(out, locale)
	}
	return out
}

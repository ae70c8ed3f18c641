package scanner

import (
	"context"
	"errors"

	"github.com/goliatone/go-holidays/calendar"
)

var (
	ErrCountryRequired = errors.New("scanner: country code is required")
	ErrYearInvalid     = errors.New("scanner: year must be positive")
	ErrLocalesRequired = errors.New("scanner: at least one required locale is needed")
)

// MissingEntry is one holiday lacking a description in at least one required
// locale. It is computed fresh on each scan, never persisted. LanguageStatus
// reports coverage per locale so the admin backlog can show partial coverage
// instead of a binary flag.
type MissingEntry struct {
	Holiday        calendar.Holiday `json:"holiday"`
	LanguageStatus map[string]bool  `json:"languageStatus"`
}

// Result is one page of the computed missing set. Page boundaries are stable
// only as long as the calendar and the description tiers are unchanged
// between calls.
type Result struct {
	Entries    []MissingEntry `json:"entries"`
	Total      int            `json:"total"`
	TotalPages int            `json:"totalPages"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
}

// Service computes the description backlog for a calendar scope.
type Service interface {
	// Scan walks the holiday calendar for (countryCode, year) and returns
	// the holidays missing a description in at least one required locale,
	// sliced to the requested page. Entries follow the calendar's natural
	// holiday order so pagination is meaningful across requests.
	Scan(ctx context.Context, countryCode string, year int, requiredLocales []string, page, limit int) (Result, error)
}

package descriptions

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-holidays/internal/descriptionkey"
)

// MemoryRepository is an in-memory authoritative store for scaffolding and
// tests. FailWith turns every call into a remote outage, which the resolver
// tests use to exercise the fallback path.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*Record
	failure error
}

// NewMemoryRepository constructs the repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[uuid.UUID]*Record)}
}

// FailWith makes every subsequent call return err. Pass nil to recover.
func (m *MemoryRepository) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failure = err
}

// Seed inserts records directly, bypassing upsert identity matching.
func (m *MemoryRepository) Seed(records ...*Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, record := range records {
		if record == nil {
			continue
		}
		copied := record.Clone()
		if copied.ID == uuid.Nil {
			copied.ID = uuid.New()
		}
		m.records[copied.ID] = copied
	}
}

// FindOne returns the first record matching the query, in stable order.
func (m *MemoryRepository) FindOne(_ context.Context, q Query) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failure != nil {
		return nil, m.failure
	}
	matches := m.match(q)
	if len(matches) == 0 {
		return nil, &NotFoundError{Resource: "description", Key: q.HolidayName}
	}
	return matches[0].Clone(), nil
}

// Exists reports whether any record matches the query.
func (m *MemoryRepository) Exists(_ context.Context, q Query) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failure != nil {
		return false, m.failure
	}
	return len(m.match(q)) > 0, nil
}

// Upsert creates or overwrites the record for its identity triple.
func (m *MemoryRepository) Upsert(_ context.Context, record *Record) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return nil, m.failure
	}

	copied := record.Clone()
	q := Query{
		HolidayName:  record.HolidayName,
		CountryNames: descriptionkey.CountryForms(record.CountryName),
		Locale:       record.Locale,
	}
	if matches := m.match(q); len(matches) > 0 {
		copied.ID = matches[0].ID
		if copied.GeneratedAt.IsZero() {
			copied.GeneratedAt = matches[0].GeneratedAt
		}
	} else if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	m.records[copied.ID] = copied
	return copied.Clone(), nil
}

// List pages through stored records in lexical order.
func (m *MemoryRepository) List(_ context.Context, filter ListFilter) ([]*Record, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.failure != nil {
		return nil, 0, m.failure
	}

	countryForms := map[string]struct{}{}
	if identifier := strings.TrimSpace(filter.Country); identifier != "" {
		for _, form := range descriptionkey.CountryForms(identifier) {
			countryForms[form] = struct{}{}
		}
	}

	matched := make([]*Record, 0, len(m.records))
	for _, record := range m.records {
		if len(countryForms) > 0 {
			if _, ok := countryForms[record.CountryName]; !ok {
				continue
			}
		}
		if filter.Year > 0 {
			if record.HolidayDate == nil || record.HolidayDate.Year() != filter.Year {
				continue
			}
		}
		if filter.IsManual != nil && record.IsManual != *filter.IsManual {
			continue
		}
		matched = append(matched, record.Clone())
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.CountryName != b.CountryName {
			return a.CountryName < b.CountryName
		}
		an, bn := strings.ToLower(a.HolidayName), strings.ToLower(b.HolidayName)
		if an != bn {
			return an < bn
		}
		return a.Locale < b.Locale
	})

	total := len(matched)
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = defaultListLimit
	}
	start := (page - 1) * limit
	if start >= total {
		return []*Record{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (m *MemoryRepository) match(q Query) []*Record {
	name := strings.ToLower(strings.TrimSpace(q.HolidayName))
	forms := make(map[string]struct{}, len(q.CountryNames))
	for _, form := range q.CountryNames {
		forms[form] = struct{}{}
	}

	matches := make([]*Record, 0, 1)
	for _, record := range m.records {
		if strings.ToLower(record.HolidayName) != name {
			continue
		}
		if record.Locale != q.Locale {
			continue
		}
		if _, ok := forms[record.CountryName]; !ok {
			continue
		}
		matches = append(matches, record)
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CountryName < matches[j].CountryName
	})
	return matches
}

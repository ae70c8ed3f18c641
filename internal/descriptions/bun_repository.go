package descriptions

import (
	"context"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-holidays/internal/country"
	"github.com/goliatone/go-holidays/internal/descriptionkey"
)

const defaultListLimit = 50

// BunRepository is the authoritative-tier store backed by bun, with optional
// read-through caching.
type BunRepository struct {
	db   *bun.DB
	repo repository.Repository[*Record]
}

// NewBunRepository creates a description repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache creates a description repository with caching services.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunRepository {
	base := NewRecordRepository(db)
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
	}
	return &BunRepository{db: db, repo: base}
}

// FindOne returns the single record matching the query's key space. The
// holiday name matches case-insensitively; the country_name column is
// matched against every spelling the query enumerates, so legacy rows keyed
// by code or by full name both answer.
func (r *BunRepository) FindOne(ctx context.Context, q Query) (*Record, error) {
	key := queryKey(q)
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(sq *bun.SelectQuery) *bun.SelectQuery {
			return applyQuery(sq, q).OrderExpr("?TableAlias.country_name ASC")
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, "description", key)
	}
	if len(records) == 0 {
		return nil, &NotFoundError{Resource: "description", Key: key}
	}
	return records[0], nil
}

// Exists probes for a matching row without returning its payload.
func (r *BunRepository) Exists(ctx context.Context, q Query) (bool, error) {
	count, err := applyQuery(r.db.NewSelect().Model((*Record)(nil)), q).Count(ctx)
	if err != nil {
		return false, mapRepositoryError(err, "description", queryKey(q))
	}
	return count > 0, nil
}

// Upsert creates or overwrites the record identified by its
// (holiday_name, country_name, locale) triple, keeping the stored row's ID
// on overwrite.
func (r *BunRepository) Upsert(ctx context.Context, record *Record) (*Record, error) {
	if record == nil {
		return nil, fmt.Errorf("description repository error: nil record")
	}

	// Probe the full spelling set so a re-save overwrites a legacy row
	// instead of creating a duplicate entity under the new spelling.
	existing, err := r.FindOne(ctx, Query{
		HolidayName:  record.HolidayName,
		CountryNames: descriptionkey.CountryForms(record.CountryName),
		Locale:       record.Locale,
	})
	switch {
	case err == nil:
		record.ID = existing.ID
		if record.GeneratedAt.IsZero() {
			record.GeneratedAt = existing.GeneratedAt
		}
		return r.repo.Update(ctx, record)
	case IsNotFound(err):
		return r.repo.Create(ctx, record)
	default:
		return nil, err
	}
}

// List pages through persisted records with optional country, year and
// curation filters. Ordering is lexical so pages stay stable across
// requests.
func (r *BunRepository) List(ctx context.Context, filter ListFilter) ([]*Record, int, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = defaultListLimit
	}

	total, err := applyListFilter(r.db.NewSelect().Model((*Record)(nil)), filter).Count(ctx)
	if err != nil {
		return nil, 0, mapRepositoryError(err, "description", "list")
	}

	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(sq *bun.SelectQuery) *bun.SelectQuery {
			return applyListFilter(sq, filter).
				OrderExpr("?TableAlias.country_name ASC").
				OrderExpr("lower(?TableAlias.holiday_name) ASC").
				OrderExpr("?TableAlias.locale ASC")
		}),
		repository.SelectPaginate(limit, (page-1)*limit),
	)
	if err != nil {
		return nil, 0, mapRepositoryError(err, "description", "list")
	}
	return records, total, nil
}

func applyQuery(sq *bun.SelectQuery, q Query) *bun.SelectQuery {
	return sq.
		Where("lower(?TableAlias.holiday_name) = ?", strings.ToLower(strings.TrimSpace(q.HolidayName))).
		Where("?TableAlias.country_name IN (?)", bun.In(q.CountryNames)).
		Where("?TableAlias.locale = ?", q.Locale)
}

func applyListFilter(sq *bun.SelectQuery, filter ListFilter) *bun.SelectQuery {
	if identifier := strings.TrimSpace(filter.Country); identifier != "" {
		sq = sq.Where("?TableAlias.country_name IN (?)", bun.In(descriptionkey.CountryForms(identifier)))
	}
	if filter.Year > 0 {
		from := time.Date(filter.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		sq = sq.Where("?TableAlias.holiday_date >= ?", from).
			Where("?TableAlias.holiday_date < ?", from.AddDate(1, 0, 0))
	}
	if filter.IsManual != nil {
		sq = sq.Where("?TableAlias.is_manual = ?", *filter.IsManual)
	}
	return sq
}

func queryKey(q Query) string {
	code := ""
	if len(q.CountryNames) > 0 {
		code = q.CountryNames[0]
	}
	if resolved, err := country.Normalize(code); err == nil {
		code = resolved.Code
	}
	return descriptionkey.Key{
		HolidayName: strings.ToLower(strings.TrimSpace(q.HolidayName)),
		CountryCode: code,
		Locale:      q.Locale,
	}.String()
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

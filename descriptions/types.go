package descriptions

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record is the stored description artifact for one (holiday, country,
// locale) entity. The JSON field names match the snapshot document format, so
// the same shape round-trips through both tiers.
type Record struct {
	bun.BaseModel `bun:"table:holiday_descriptions,alias:hd"`

	ID          uuid.UUID  `bun:",pk,type:uuid"             json:"holidayId"`
	HolidayName string     `bun:"holiday_name,notnull"      json:"holidayName"`
	CountryName string     `bun:"country_name,notnull"      json:"countryName"`
	Locale      string     `bun:"locale,notnull"            json:"locale"`
	Description string     `bun:"description,notnull"       json:"description"`
	Confidence  float64    `bun:"confidence,notnull,default:0" json:"confidence"`
	IsManual    bool       `bun:"is_manual,notnull,default:false" json:"isManual"`
	HolidayDate *time.Time `bun:"holiday_date,nullzero"     json:"holidayDate,omitempty"`
	GeneratedAt time.Time  `bun:"generated_at,nullzero,default:current_timestamp" json:"generatedAt"`
	LastUsed    *time.Time `bun:"last_used,nullzero"        json:"lastUsed,omitempty"`
	ModifiedAt  *time.Time `bun:"modified_at,nullzero"      json:"modifiedAt,omitempty"`
	ModifiedBy  *string    `bun:"modified_by"               json:"modifiedBy,omitempty"`
}

// Clone returns a deep copy so tiers can hand out records without sharing
// mutable pointers.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	copied := *r
	copied.HolidayDate = cloneTime(r.HolidayDate)
	copied.LastUsed = cloneTime(r.LastUsed)
	copied.ModifiedAt = cloneTime(r.ModifiedAt)
	if r.ModifiedBy != nil {
		modifiedBy := *r.ModifiedBy
		copied.ModifiedBy = &modifiedBy
	}
	return &copied
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	copied := *t
	return &copied
}

// Tier identifies which storage layer satisfied a resolution.
type Tier string

const (
	// TierRemote is the authoritative relational store.
	TierRemote Tier = "remote"
	// TierLocal is the file-backed snapshot fallback.
	TierLocal Tier = "local"
	// TierNone marks a resolution that found no record.
	TierNone Tier = "none"
)

// Resolution is the outcome of one lookup: the record (nil when absent) and
// the tier that produced it.
type Resolution struct {
	Record *Record
	Tier   Tier
}

// Found reports whether the resolution carries a record.
func (r Resolution) Found() bool {
	return r.Record != nil
}

// Stats is a point-in-time snapshot of the resolver counters. Counters reset
// only on process restart.
type Stats struct {
	RemoteHits      int64 `json:"remoteHits"`
	LocalHits       int64 `json:"localHits"`
	Misses          int64 `json:"misses"`
	Errors          int64 `json:"errors"`
	RemoteAvailable bool  `json:"remoteAvailable"`
}

// SaveRequest captures the fields required to create or overwrite a
// description through the write path.
type SaveRequest struct {
	HolidayName string
	CountryName string
	Locale      string
	Description string
	Confidence  float64
	IsManual    bool
	HolidayDate *time.Time
	ModifiedBy  string
}

// ListFilter narrows paged listings of persisted records.
type ListFilter struct {
	Country  string
	Year     int
	IsManual *bool
	Page     int
	Limit    int
}

// Query describes a remote-tier lookup: the holiday name matched
// case-insensitively, the set of country_name spellings to accept, and the
// locale. The variant set comes from the key generator so the remote and
// local tiers probe the same historical key space.
type Query struct {
	HolidayName  string
	CountryNames []string
	Locale       string
}

// Package descriptions implements the tiered description resolver: the
// authoritative relational store is consulted first, the curated snapshot
// answers when the remote tier misses or is unreachable, and absence is a
// normal terminal state rather than an error.
package descriptions

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/goliatone/go-holidays/internal/country"
	"github.com/goliatone/go-holidays/internal/descriptionkey"
	"github.com/goliatone/go-holidays/internal/identity"
	"github.com/goliatone/go-holidays/internal/jobs"
	"github.com/goliatone/go-holidays/internal/logging"
	"github.com/goliatone/go-holidays/pkg/interfaces"
)

// Option mutates the service configuration.
type Option func(*service)

// WithLogger installs a logger provider for the resolver.
func WithLogger(provider interfaces.LoggerProvider) Option {
	return func(s *service) {
		s.logger = logging.DescriptionsLogger(provider)
	}
}

// WithClock overrides the clock used for write timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLocales restricts resolution and writes to the given locale codes.
// With no restriction configured every locale is accepted.
func WithLocales(locales ...string) Option {
	return func(s *service) {
		s.locales = make(map[string]struct{}, len(locales))
		for _, locale := range locales {
			locale = strings.TrimSpace(locale)
			if locale != "" {
				s.locales[locale] = struct{}{}
			}
		}
	}
}

// WithLegacyKeys toggles probing of the historical key variants. When off,
// only the canonical key form is consulted on both tiers; turn it off once
// legacy records have been re-keyed.
func WithLegacyKeys(enabled bool) Option {
	return func(s *service) {
		s.legacyKeys = enabled
	}
}

// WithCoalescing collapses concurrent lookups for the same identity into a
// single remote call.
func WithCoalescing(enabled bool) Option {
	return func(s *service) {
		if enabled {
			s.flight = &singleflight.Group{}
		} else {
			s.flight = nil
		}
	}
}

// WithAuditRecorder installs an audit sink for the write path.
func WithAuditRecorder(recorder jobs.AuditRecorder) Option {
	return func(s *service) {
		s.audit = recorder
	}
}

type service struct {
	repo       Repository
	snapshot   SnapshotReader
	stats      *statistics
	logger     interfaces.Logger
	clock      func() time.Time
	locales    map[string]struct{}
	legacyKeys bool
	flight     *singleflight.Group
	audit      jobs.AuditRecorder
}

// NewService constructs the resolver over the given tiers. The snapshot
// reader may be nil, in which case resolution is remote-only.
func NewService(repo Repository, snapshot SnapshotReader, opts ...Option) Service {
	svc := &service{
		repo:       repo,
		snapshot:   snapshot,
		stats:      newStatistics(),
		logger:     logging.NoOp(),
		clock:      time.Now,
		legacyKeys: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

func (s *service) Resolve(ctx context.Context, holidayName, countryIdentifier, locale string) (Resolution, error) {
	id, err := s.identity(holidayName, countryIdentifier, locale)
	if err != nil {
		return Resolution{Tier: TierNone}, err
	}

	if s.flight == nil {
		return s.lookup(ctx, id), nil
	}

	// Coalesce on the canonical key plus the raw country form: identities
	// that normalize identically share one remote call, while unresolvable
	// identifiers keep their own flight.
	flightKey := descriptionkey.Canonical(id).String() + "\x00" + id.CountryIdentifier
	result, _, _ := s.flight.Do(flightKey, func() (any, error) {
		return s.lookup(ctx, id), nil
	})
	resolution := result.(Resolution)
	if resolution.Record != nil {
		resolution.Record = resolution.Record.Clone()
	}
	return resolution, nil
}

func (s *service) Exists(ctx context.Context, holidayName, countryIdentifier, locale string) (bool, error) {
	id, err := s.identity(holidayName, countryIdentifier, locale)
	if err != nil {
		return false, err
	}

	found, remoteErr := s.repo.Exists(ctx, s.remoteQuery(id))
	switch {
	case remoteErr == nil:
		s.stats.recordRemoteMiss()
		if found {
			return true, nil
		}
	case IsNotFound(remoteErr):
		s.stats.recordRemoteMiss()
	default:
		// Existence probes share the resolver's outage accounting but do
		// not move the hit/miss counters; the scanner would swamp them.
		s.stats.recordRemoteError()
		s.warnRemote(id, &RemoteUnavailableError{Err: remoteErr})
	}

	if s.snapshot != nil {
		for _, key := range s.probeKeys(id) {
			if _, ok := s.snapshot.Get(key); ok {
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *service) Save(ctx context.Context, req SaveRequest) (*Record, error) {
	if err := s.validateSave(req); err != nil {
		return nil, err
	}

	countryName := strings.TrimSpace(req.CountryName)
	if resolved, err := country.Normalize(countryName); err == nil {
		countryName = resolved.Name
	}

	confidence := req.Confidence
	if req.IsManual {
		confidence = 1.0
	}

	canonical := descriptionkey.Canonical(descriptionkey.Identity{
		HolidayName:       req.HolidayName,
		CountryIdentifier: req.CountryName,
		Locale:            req.Locale,
	})

	now := s.clock().UTC()
	record := &Record{
		ID:          identity.DescriptionUUID(canonical.String()),
		HolidayName: strings.TrimSpace(req.HolidayName),
		CountryName: countryName,
		Locale:      strings.TrimSpace(req.Locale),
		Description: strings.TrimSpace(req.Description),
		Confidence:  confidence,
		IsManual:    req.IsManual,
		HolidayDate: req.HolidayDate,
		ModifiedAt:  &now,
	}
	if modifiedBy := strings.TrimSpace(req.ModifiedBy); modifiedBy != "" {
		record.ModifiedBy = &modifiedBy
	}

	stored, err := s.repo.Upsert(ctx, record)
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, jobs.AuditEvent{
		ID:         identity.AuditUUID(canonical.String()),
		EntityType: "holiday_description",
		EntityID:   canonical.String(),
		Action:     "description_saved",
		OccurredAt: now,
		Metadata: map[string]any{
			"country":     stored.CountryName,
			"locale":      stored.Locale,
			"is_manual":   stored.IsManual,
			"confidence":  stored.Confidence,
			"modified_by": req.ModifiedBy,
		},
	})

	logging.WithIdentityContext(s.logger, stored.HolidayName, stored.CountryName, stored.Locale).
		Info("description saved", "is_manual", stored.IsManual)
	return stored, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]*Record, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Stats() Stats {
	return s.stats.snapshot()
}

// lookup runs the two-tier state machine for one identity. Remote first; a
// reachable miss or an outage both hand over to the snapshot, but only the
// outage counts as an error.
func (s *service) lookup(ctx context.Context, id descriptionkey.Identity) Resolution {
	record, err := s.repo.FindOne(ctx, s.remoteQuery(id))
	switch {
	case err == nil:
		s.stats.recordRemoteHit()
		return Resolution{Record: record, Tier: TierRemote}
	case IsNotFound(err):
		s.stats.recordRemoteMiss()
	default:
		s.stats.recordRemoteError()
		s.warnRemote(id, &RemoteUnavailableError{Err: err})
	}

	if s.snapshot != nil {
		for _, key := range s.probeKeys(id) {
			if record, ok := s.snapshot.Get(key); ok {
				s.stats.recordLocalHit()
				return Resolution{Record: record, Tier: TierLocal}
			}
		}
	}

	s.stats.recordMiss()
	return Resolution{Tier: TierNone}
}

func (s *service) identity(holidayName, countryIdentifier, locale string) (descriptionkey.Identity, error) {
	holidayName = strings.TrimSpace(holidayName)
	countryIdentifier = strings.TrimSpace(countryIdentifier)
	locale = strings.TrimSpace(locale)

	switch {
	case holidayName == "":
		return descriptionkey.Identity{}, ErrHolidayNameRequired
	case countryIdentifier == "":
		return descriptionkey.Identity{}, ErrCountryRequired
	case locale == "":
		return descriptionkey.Identity{}, ErrLocaleRequired
	}
	if err := s.checkLocale(locale); err != nil {
		return descriptionkey.Identity{}, err
	}

	return descriptionkey.Identity{
		HolidayName:       holidayName,
		CountryIdentifier: countryIdentifier,
		Locale:            locale,
	}, nil
}

func (s *service) checkLocale(locale string) error {
	if len(s.locales) == 0 {
		return nil
	}
	if _, ok := s.locales[locale]; !ok {
		return ErrLocaleUnsupported
	}
	return nil
}

func (s *service) validateSave(req SaveRequest) error {
	switch {
	case strings.TrimSpace(req.HolidayName) == "":
		return ErrHolidayNameRequired
	case strings.TrimSpace(req.CountryName) == "":
		return ErrCountryRequired
	case strings.TrimSpace(req.Locale) == "":
		return ErrLocaleRequired
	case strings.TrimSpace(req.Description) == "":
		return ErrDescriptionRequired
	case req.Confidence < 0 || req.Confidence > 1:
		return ErrConfidenceInvalid
	}
	return s.checkLocale(strings.TrimSpace(req.Locale))
}

// remoteQuery maps an identity onto the relational key space: the country
// column is matched against every spelling still in play, or just the
// canonical pair once legacy probing is off.
func (s *service) remoteQuery(id descriptionkey.Identity) Query {
	q := Query{HolidayName: id.HolidayName, Locale: id.Locale}
	if s.legacyKeys {
		q.CountryNames = descriptionkey.CountryForms(id.CountryIdentifier)
		return q
	}
	if resolved, err := country.Normalize(id.CountryIdentifier); err == nil {
		q.CountryNames = []string{resolved.Name, resolved.Code}
	} else {
		q.CountryNames = []string{strings.TrimSpace(id.CountryIdentifier)}
	}
	return q
}

func (s *service) probeKeys(id descriptionkey.Identity) []string {
	if s.legacyKeys {
		return descriptionkey.Variants(id)
	}
	return []string{descriptionkey.Canonical(id).String()}
}

func (s *service) warnRemote(id descriptionkey.Identity, err error) {
	logging.WithIdentityContext(s.logger, id.HolidayName, id.CountryIdentifier, id.Locale).
		Warn("remote tier unavailable, falling back to snapshot", "error", err)
}

func (s *service) recordAudit(ctx context.Context, event jobs.AuditEvent) {
	if s.audit == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.clock()
	}
	_ = s.audit.Record(ctx, event)
}

// Package admindescriptions backs the curation surface of the host admin:
// authenticated saves, the paged record listing and the per-country backlog
// view produced by the scanner.
package admindescriptions

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-holidays/descriptions"
	"github.com/goliatone/go-holidays/internal/logging"
	"github.com/goliatone/go-holidays/pkg/interfaces"
	"github.com/goliatone/go-holidays/scanner"
)

var (
	// ErrServiceRequired indicates the admin surface was constructed without
	// a description service.
	ErrServiceRequired = errors.New("admindescriptions: description service is required")
	// ErrPermissionDenied indicates the caller may not curate descriptions.
	ErrPermissionDenied = errors.New("admindescriptions: permission denied")
)

// PermissionCurate gates description writes on the admin surface.
const PermissionCurate = "holidays.descriptions.curate"

// Option mutates the service configuration.
type Option func(*Service)

// WithClock overrides the clock used for curation timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithAuth installs the auth collaborator that attributes and gates writes.
// Without one, writes are attributed to the request's explicit curator only.
func WithAuth(auth interfaces.AuthProvider) Option {
	return func(s *Service) {
		s.auth = auth
	}
}

// WithScanner installs the backlog scanner.
func WithScanner(scan scanner.Service) Option {
	return func(s *Service) {
		s.scanner = scan
	}
}

// WithLogger installs a logger provider for the admin surface.
func WithLogger(provider interfaces.LoggerProvider) Option {
	return func(s *Service) {
		s.logger = logging.AdminLogger(provider)
	}
}

// SaveInput captures a curation write from the admin UI.
type SaveInput struct {
	HolidayName string
	CountryName string
	Locale      string
	Description string
	HolidayDate *time.Time
	CuratedBy   string
}

// Service is the admin curation surface over the description core.
type Service struct {
	descriptions descriptions.Service
	scanner      scanner.Service
	auth         interfaces.AuthProvider
	logger       interfaces.Logger
	clock        func() time.Time
}

// NewService constructs the admin surface.
func NewService(svc descriptions.Service, opts ...Option) *Service {
	admin := &Service{
		descriptions: svc,
		logger:       logging.NoOp(),
		clock:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(admin)
		}
	}
	return admin
}

// Save persists a manually curated description. Admin saves are always
// manual, so the core forces full confidence; attribution comes from the
// auth collaborator when the input names no curator.
func (s *Service) Save(ctx context.Context, input SaveInput) (*descriptions.Record, error) {
	if s == nil || s.descriptions == nil {
		return nil, ErrServiceRequired
	}
	if ctx == nil {
		ctx = context.Background()
	}

	curatedBy := strings.TrimSpace(input.CuratedBy)
	if s.auth != nil {
		allowed, err := s.auth.HasPermission(ctx, PermissionCurate)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, ErrPermissionDenied
		}
		if curatedBy == "" {
			userID, err := s.auth.CurrentUserID(ctx)
			if err != nil {
				return nil, err
			}
			curatedBy = userID
		}
	}

	record, err := s.descriptions.Save(ctx, descriptions.SaveRequest{
		HolidayName: input.HolidayName,
		CountryName: input.CountryName,
		Locale:      input.Locale,
		Description: input.Description,
		IsManual:    true,
		HolidayDate: input.HolidayDate,
		ModifiedBy:  curatedBy,
	})
	if err != nil {
		return nil, err
	}

	logging.WithIdentityContext(s.logger, record.HolidayName, record.CountryName, record.Locale).
		Info("description curated", "curated_by", curatedBy)
	return record, nil
}

// List pages through persisted records for the admin table view.
func (s *Service) List(ctx context.Context, filter descriptions.ListFilter) ([]*descriptions.Record, int, error) {
	if s == nil || s.descriptions == nil {
		return nil, 0, ErrServiceRequired
	}
	return s.descriptions.List(ctx, filter)
}

// Backlog returns the paged missing set for one calendar scope.
func (s *Service) Backlog(ctx context.Context, countryCode string, year int, requiredLocales []string, page, limit int) (scanner.Result, error) {
	if s == nil || s.scanner == nil {
		return scanner.Result{}, errors.New("admindescriptions: scanner is required")
	}
	return s.scanner.Scan(ctx, countryCode, year, requiredLocales, page, limit)
}

// Stats surfaces the resolver counters for the admin dashboard.
func (s *Service) Stats() (descriptions.Stats, error) {
	if s == nil || s.descriptions == nil {
		return descriptions.Stats{}, ErrServiceRequired
	}
	return s.descriptions.Stats(), nil
}

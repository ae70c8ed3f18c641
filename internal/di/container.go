// Package di wires the module's services from configuration: storage tier,
// snapshot tier, resolver, scanner and the admin surface. Hosts override
// individual bindings through options; everything else gets a sensible
// in-memory default so the module is usable without external infrastructure.
package di

import (
	"context"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-holidays/calendar"
	admindescriptions "github.com/goliatone/go-holidays/internal/admin/descriptions"
	"github.com/goliatone/go-holidays/internal/commands"
	descriptionscmd "github.com/goliatone/go-holidays/internal/commands/descriptions"
	"github.com/goliatone/go-holidays/internal/descriptions"
	"github.com/goliatone/go-holidays/internal/jobs"
	"github.com/goliatone/go-holidays/internal/logging"
	"github.com/goliatone/go-holidays/internal/logging/console"
	"github.com/goliatone/go-holidays/internal/logging/gologger"
	"github.com/goliatone/go-holidays/internal/runtimeconfig"
	"github.com/goliatone/go-holidays/internal/scanner"
	"github.com/goliatone/go-holidays/internal/snapshot"
	"github.com/goliatone/go-holidays/pkg/interfaces"
)

// Container wires module dependencies.
type Container struct {
	Config runtimeconfig.Config

	bunDB         *bun.DB
	cacheTTL      time.Duration
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	loggerProvider interfaces.LoggerProvider
	auth           interfaces.AuthProvider
	clock          func() time.Time

	repo     descriptions.Repository
	snapshot *snapshot.Store
	calendar calendar.Provider
	audit    jobs.AuditRecorder

	descriptionSvc descriptions.Service
	scannerSvc     scanner.Service
	adminSvc       *admindescriptions.Service

	saveCmd    *descriptionscmd.SaveDescriptionHandler
	refreshCmd *descriptionscmd.RefreshSnapshotHandler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithBunDB binds the relational database used by the authoritative tier.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default repository cache bindings.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithRepository overrides the authoritative-tier repository binding.
func WithRepository(repo descriptions.Repository) Option {
	return func(c *Container) {
		c.repo = repo
	}
}

// WithSnapshotStore overrides the local snapshot binding.
func WithSnapshotStore(store *snapshot.Store) Option {
	return func(c *Container) {
		c.snapshot = store
	}
}

// WithCalendarProvider overrides the calendar source binding.
func WithCalendarProvider(provider calendar.Provider) Option {
	return func(c *Container) {
		c.calendar = provider
	}
}

// WithAuditRecorder overrides the audit sink binding.
func WithAuditRecorder(recorder jobs.AuditRecorder) Option {
	return func(c *Container) {
		c.audit = recorder
	}
}

// WithLoggerProvider overrides the logger provider binding.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithAuth binds the auth collaborator used by the admin surface.
func WithAuth(auth interfaces.AuthProvider) Option {
	return func(c *Container) {
		c.auth = auth
	}
}

// WithClock overrides the clock used across services.
func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithDescriptionService overrides the default resolver binding.
func WithDescriptionService(svc descriptions.Service) Option {
	return func(c *Container) {
		c.descriptionSvc = svc
	}
}

// WithScannerService overrides the default scanner binding.
func WithScannerService(svc scanner.Service) Option {
	return func(c *Container) {
		c.scannerSvc = svc
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) *Container {
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	cacheTTL := cfg.Cache.DefaultTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	c := &Container{
		Config:   cfg,
		cacheTTL: cacheTTL,
		clock:    time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	c.configureLogging()
	c.configureCacheDefaults()
	c.configureRepository()
	c.configureSnapshot()
	c.configureCalendar()
	c.configureAudit()

	if c.descriptionSvc == nil {
		svcOpts := []descriptions.Option{
			descriptions.WithLocales(cfg.Locales...),
			descriptions.WithLegacyKeys(cfg.Features.LegacyKeys),
			descriptions.WithCoalescing(cfg.Features.Coalescing),
			descriptions.WithClock(c.clock),
		}
		if c.loggerProvider != nil {
			svcOpts = append(svcOpts, descriptions.WithLogger(c.loggerProvider))
		}
		if c.audit != nil {
			svcOpts = append(svcOpts, descriptions.WithAuditRecorder(c.audit))
		}
		c.descriptionSvc = descriptions.NewService(c.repo, c.snapshotReader(), svcOpts...)
	}

	if c.scannerSvc == nil && c.calendar != nil {
		scanOpts := []scanner.Option{}
		if c.loggerProvider != nil {
			scanOpts = append(scanOpts, scanner.WithLogger(c.loggerProvider))
		}
		c.scannerSvc = scanner.NewService(c.calendar, c.descriptionSvc, scanOpts...)
	}

	adminOpts := []admindescriptions.Option{
		admindescriptions.WithClock(c.clock),
	}
	if c.scannerSvc != nil {
		adminOpts = append(adminOpts, admindescriptions.WithScanner(c.scannerSvc))
	}
	if c.auth != nil {
		adminOpts = append(adminOpts, admindescriptions.WithAuth(c.auth))
	}
	if c.loggerProvider != nil {
		adminOpts = append(adminOpts, admindescriptions.WithLogger(c.loggerProvider))
	}
	c.adminSvc = admindescriptions.NewService(c.descriptionSvc, adminOpts...)

	c.configureCommands()

	return c
}

func (c *Container) configureCommands() {
	if !c.Config.Commands.Enabled {
		return
	}

	logger := logging.NoOp()
	if c.loggerProvider != nil {
		logger = logging.ModuleLogger(c.loggerProvider, "holidays.commands")
	}

	var handlerOpts []commands.HandlerOption[descriptionscmd.SaveDescriptionCommand]
	var refreshOpts []commands.HandlerOption[descriptionscmd.RefreshSnapshotCommand]
	if timeout := c.Config.Commands.Timeout; timeout > 0 {
		handlerOpts = append(handlerOpts, commands.WithTimeout[descriptionscmd.SaveDescriptionCommand](timeout))
		refreshOpts = append(refreshOpts, commands.WithTimeout[descriptionscmd.RefreshSnapshotCommand](timeout))
	}

	c.saveCmd = descriptionscmd.NewSaveDescriptionHandler(c.descriptionSvc, logger, handlerOpts...)
	if c.snapshot != nil {
		c.refreshCmd = descriptionscmd.NewRefreshSnapshotHandler(c.snapshot, logger, refreshOpts...)
	}
}

func (c *Container) configureLogging() {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return
	}

	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err == nil {
			c.loggerProvider = provider
		}
	default:
		minLevel := consoleLevel(logCfg.Level)
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: &minLevel})
	}
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.cacheTTL > 0 {
			cfg.TTL = c.cacheTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepository() {
	if c.repo != nil {
		return
	}
	if strings.EqualFold(strings.TrimSpace(c.Config.Storage.Provider), "bun") {
		if c.bunDB == nil {
			db, err := openDatabase(c.Config.Storage)
			if err != nil {
				panic(err)
			}
			c.bunDB = db
		}
		if c.bunDB != nil {
			c.repo = descriptions.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
			return
		}
	}
	c.repo = descriptions.NewMemoryRepository()
}

func (c *Container) configureSnapshot() {
	if c.snapshot != nil || !c.Config.Snapshot.Enabled {
		return
	}

	storeOpts := []snapshot.Option{snapshot.WithClock(c.clock)}
	if c.loggerProvider != nil {
		storeOpts = append(storeOpts, snapshot.WithLogger(c.loggerProvider))
	}
	store := snapshot.NewStore(c.Config.Snapshot.Path, storeOpts...)
	store.Load(context.Background())
	c.snapshot = store
}

func (c *Container) configureCalendar() {
	if c.calendar != nil {
		return
	}
	dir := strings.TrimSpace(c.Config.Calendar.Dir)
	if dir == "" {
		return
	}
	provider, err := calendar.NewFileProvider(dir, calendar.WithValidation(c.Config.Calendar.ValidateSchema))
	if err != nil {
		panic(err)
	}
	c.calendar = provider
}

func (c *Container) configureAudit() {
	if c.audit != nil || !c.Config.Features.Audit {
		return
	}
	c.audit = jobs.NewInMemoryAuditRecorder()
}

func (c *Container) snapshotReader() descriptions.SnapshotReader {
	if c.snapshot == nil {
		return nil
	}
	return c.snapshot
}

// SaveDescriptionHandler returns the save command handler, or nil when
// commands are disabled.
func (c *Container) SaveDescriptionHandler() *descriptionscmd.SaveDescriptionHandler {
	return c.saveCmd
}

// RefreshSnapshotHandler returns the snapshot refresh command handler, or nil
// when commands are disabled or the snapshot tier is off.
func (c *Container) RefreshSnapshotHandler() *descriptionscmd.RefreshSnapshotHandler {
	return c.refreshCmd
}

// DescriptionService returns the configured resolver.
func (c *Container) DescriptionService() descriptions.Service {
	return c.descriptionSvc
}

// ScannerService returns the configured scanner, nil when no calendar source
// is bound.
func (c *Container) ScannerService() scanner.Service {
	return c.scannerSvc
}

// AdminService returns the configured admin curation surface.
func (c *Container) AdminService() *admindescriptions.Service {
	return c.adminSvc
}

// SnapshotStore exposes the local snapshot tier, nil when disabled.
func (c *Container) SnapshotStore() *snapshot.Store {
	return c.snapshot
}

// Repository exposes the authoritative-tier repository.
func (c *Container) Repository() descriptions.Repository {
	return c.repo
}

// AuditRecorder exposes the configured audit sink.
func (c *Container) AuditRecorder() jobs.AuditRecorder {
	return c.audit
}

// LoggerProvider exposes the configured logger provider, nil when logging is
// disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

func consoleLevel(level string) console.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return console.LevelTrace
	case "debug":
		return console.LevelDebug
	case "", "info":
		return console.LevelInfo
	case "warn", "warning":
		return console.LevelWarn
	case "error":
		return console.LevelError
	case "fatal":
		return console.LevelFatal
	default:
		return console.LevelInfo
	}
}

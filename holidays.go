package holidays

import (
	"github.com/goliatone/go-holidays/calendar"
	"github.com/goliatone/go-holidays/descriptions"
	admindescriptions "github.com/goliatone/go-holidays/internal/admin/descriptions"
	"github.com/goliatone/go-holidays/internal/di"
	"github.com/goliatone/go-holidays/internal/snapshot"
	"github.com/goliatone/go-holidays/scanner"
)

// DescriptionService exports the description resolution contract for consumers of the holidays package.
type DescriptionService = descriptions.Service

// ScannerService exports the missing-description scanner contract.
type ScannerService = scanner.Service

// CalendarProvider exports the holiday calendar provider contract.
type CalendarProvider = calendar.Provider

// AdminService exports the curation admin helper contract.
type AdminService = *admindescriptions.Service

// Module represents the top level holidays runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a holidays module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Module{container: di.NewContainer(cfg, opts...)}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Descriptions returns the configured description resolution service.
func (m *Module) Descriptions() DescriptionService {
	return m.container.DescriptionService()
}

// Scanner returns the missing-description scanner, or nil when no calendar source is configured.
func (m *Module) Scanner() ScannerService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.ScannerService()
}

// DescriptionsAdmin returns the curation admin helper service.
func (m *Module) DescriptionsAdmin() AdminService {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.AdminService()
}

// Snapshot returns the local snapshot store, or nil when the snapshot tier is disabled.
func (m *Module) Snapshot() *snapshot.Store {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.SnapshotStore()
}

// Stats reports resolution counters accumulated by the description service.
func (m *Module) Stats() descriptions.Stats {
	return m.container.DescriptionService().Stats()
}

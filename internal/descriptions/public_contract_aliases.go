package descriptions

import holidaysdescriptions "github.com/goliatone/go-holidays/descriptions"

type (
	Service                = holidaysdescriptions.Service
	Repository             = holidaysdescriptions.Repository
	SnapshotReader         = holidaysdescriptions.SnapshotReader
	Record                 = holidaysdescriptions.Record
	Resolution             = holidaysdescriptions.Resolution
	Tier                   = holidaysdescriptions.Tier
	Stats                  = holidaysdescriptions.Stats
	SaveRequest            = holidaysdescriptions.SaveRequest
	ListFilter             = holidaysdescriptions.ListFilter
	Query                  = holidaysdescriptions.Query
	NotFoundError          = holidaysdescriptions.NotFoundError
	RemoteUnavailableError = holidaysdescriptions.RemoteUnavailableError
)

const (
	TierRemote = holidaysdescriptions.TierRemote
	TierLocal  = holidaysdescriptions.TierLocal
	TierNone   = holidaysdescriptions.TierNone
)

var (
	ErrHolidayNameRequired = holidaysdescriptions.ErrHolidayNameRequired
	ErrCountryRequired     = holidaysdescriptions.ErrCountryRequired
	ErrLocaleRequired      = holidaysdescriptions.ErrLocaleRequired
	ErrLocaleUnsupported   = holidaysdescriptions.ErrLocaleUnsupported
	ErrDescriptionRequired = holidaysdescriptions.ErrDescriptionRequired
	ErrConfidenceInvalid   = holidaysdescriptions.ErrConfidenceInvalid
	ErrNotFound            = holidaysdescriptions.ErrNotFound
	ErrRemoteUnavailable   = holidaysdescriptions.ErrRemoteUnavailable
)

// IsNotFound re-exports the public helper for internal callers.
func IsNotFound(err error) bool {
	return holidaysdescriptions.IsNotFound(err)
}

package scanner

import holidaysscanner "github.com/goliatone/go-holidays/scanner"

type (
	Service      = holidaysscanner.Service
	MissingEntry = holidaysscanner.MissingEntry
	Result       = holidaysscanner.Result
)

var (
	ErrCountryRequired = holidaysscanner.ErrCountryRequired
	ErrYearInvalid     = holidaysscanner.ErrYearInvalid
	ErrLocalesRequired = holidaysscanner.ErrLocalesRequired
)

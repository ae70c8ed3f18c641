package descriptions

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrHolidayNameRequired = errors.New("descriptions: holiday name is required")
	ErrCountryRequired     = errors.New("descriptions: country name is required")
	ErrLocaleRequired      = errors.New("descriptions: locale is required")
	ErrLocaleUnsupported   = errors.New("descriptions: locale is not supported")
	ErrDescriptionRequired = errors.New("descriptions: description is required")
	ErrConfidenceInvalid   = errors.New("descriptions: confidence must be between 0 and 1")
	ErrNotFound            = errors.New("descriptions: record not found")
	ErrRemoteUnavailable   = errors.New("descriptions: remote tier unavailable")
)

// NotFoundError reports an absent record for a specific lookup key.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return ErrNotFound.Error()
	}
	key := strings.TrimSpace(e.Key)
	if key == "" {
		return ErrNotFound.Error()
	}
	return fmt.Sprintf("%s: %s=%s", ErrNotFound.Error(), e.Resource, key)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// IsNotFound reports whether err denotes an absent record rather than a
// storage failure. The resolver treats the former as a clean miss and the
// latter as a tier outage.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// RemoteUnavailableError wraps a remote-tier failure. It is recorded in the
// resolver statistics and never surfaced to resolution callers.
type RemoteUnavailableError struct {
	Err error
}

func (e *RemoteUnavailableError) Error() string {
	if e == nil || e.Err == nil {
		return ErrRemoteUnavailable.Error()
	}
	return fmt.Sprintf("%s: %v", ErrRemoteUnavailable.Error(), e.Err)
}

func (e *RemoteUnavailableError) Unwrap() error {
	return ErrRemoteUnavailable
}

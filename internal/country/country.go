package country

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCountry indicates the identifier maps to no supported country.
// Callers must keep the raw identifier as a key component so legacy records
// stored under unrecognized strings remain reachable.
var ErrUnknownCountry = errors.New("country: unknown country identifier")

// Country pairs an ISO-3166 alpha-2 code with its canonical English name.
type Country struct {
	Code string
	Name string
}

// UnknownCountryError carries the identifier that failed to resolve.
type UnknownCountryError struct {
	Identifier string
}

func (e *UnknownCountryError) Error() string {
	if e == nil || strings.TrimSpace(e.Identifier) == "" {
		return ErrUnknownCountry.Error()
	}
	return fmt.Sprintf("%s: %q", ErrUnknownCountry.Error(), e.Identifier)
}

func (e *UnknownCountryError) Unwrap() error {
	return ErrUnknownCountry
}

// Normalize resolves a free-form country identifier into its canonical form.
// It accepts ISO-3166 alpha-2 codes in any case, and country names in any
// case with hyphens and spaces treated as interchangeable. The lookup is a
// pure function over the static table; it performs no I/O.
func Normalize(identifier string) (Country, error) {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return Country{}, &UnknownCountryError{Identifier: identifier}
	}

	if len(trimmed) == 2 {
		code := strings.ToUpper(trimmed)
		if name, ok := codeToName[code]; ok {
			return Country{Code: code, Name: name}, nil
		}
	}

	if code, ok := nameIndex[nameKey(trimmed)]; ok {
		return Country{Code: code, Name: codeToName[code]}, nil
	}

	return Country{}, &UnknownCountryError{Identifier: identifier}
}

// Name returns the canonical English name for an alpha-2 code, or the code
// itself when it is not part of the table.
func Name(code string) string {
	if name, ok := codeToName[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return name
	}
	return code
}

// IsCode reports whether the identifier is a known alpha-2 code.
func IsCode(identifier string) bool {
	trimmed := strings.TrimSpace(identifier)
	if len(trimmed) != 2 {
		return false
	}
	_, ok := codeToName[strings.ToUpper(trimmed)]
	return ok
}

// nameKey folds a country name into its index form: lowercase with hyphens
// collapsed to spaces and runs of whitespace squeezed.
func nameKey(name string) string {
	folded := strings.ToLower(strings.TrimSpace(name))
	folded = strings.ReplaceAll(folded, "-", " ")
	return strings.Join(strings.Fields(folded), " ")
}

var nameIndex = buildNameIndex()

func buildNameIndex() map[string]string {
	index := make(map[string]string, len(codeToName)+len(nameAliases))
	for code, name := range codeToName {
		index[nameKey(name)] = code
	}
	for alias, code := range nameAliases {
		index[nameKey(alias)] = code
	}
	return index
}

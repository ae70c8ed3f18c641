// Package descriptionkey serializes holiday identities into the storage keys
// used by the description tiers. Persisted records were written by several
// tools over time with different conventions (country name vs. code, three
// delimiter styles), so the read path must probe the full historical key
// space while new writes standardize on the canonical form.
package descriptionkey

import (
	"strings"

	"github.com/goliatone/go-holidays/internal/country"
)

// Delimiters enumerates the serialization styles found in persisted records,
// in probe order. The pipe style is the canonical one.
var Delimiters = []string{"|", "_", "-"}

// Identity is the logical lookup key for one description: the holiday name as
// supplied by the calendar source, a country identifier in whatever form the
// caller holds (name, code, any case), and a locale code.
type Identity struct {
	HolidayName       string
	CountryIdentifier string
	Locale            string
}

// Key is the canonical, normalized form of an Identity. It is used for
// equality and deduplication and as the serialization for new writes; it is
// never trusted to be the only key a legacy record lives under.
type Key struct {
	HolidayName string
	CountryCode string
	Locale      string
}

// Canonical normalizes an identity into its canonical key: lowercase holiday
// name, ISO-3166 alpha-2 code, locale. When the country identifier resolves
// to no known country the raw identifier is retained so the identity still
// produces a stable, probe-able key.
func Canonical(id Identity) Key {
	key := Key{
		HolidayName: strings.ToLower(strings.TrimSpace(id.HolidayName)),
		CountryCode: strings.TrimSpace(id.CountryIdentifier),
		Locale:      strings.TrimSpace(id.Locale),
	}
	if resolved, err := country.Normalize(id.CountryIdentifier); err == nil {
		key.CountryCode = resolved.Code
	}
	return key
}

// String serializes the canonical key using the pipe delimiter.
func (k Key) String() string {
	return strings.Join([]string{k.HolidayName, k.CountryCode, k.Locale}, "|")
}

// Equal reports whether two identities denote the same real-world entity:
// holiday names match case-insensitively, country identifiers resolve to the
// same country, and locales are equal.
func Equal(a, b Identity) bool {
	ka, kb := Canonical(a), Canonical(b)
	return ka == kb
}

// Variants generates every serialized key the identity may be stored under:
// the cross product of the usable country-identifier forms (raw as given,
// alpha-2 code, canonical name, lowercase code) and the three delimiter
// styles, with the holiday name as given. The result is deduplicated
// case-sensitively and ordered deterministically, canonical key first.
func Variants(id Identity) []string {
	name := strings.TrimSpace(id.HolidayName)
	locale := strings.TrimSpace(id.Locale)

	countryForms := countryForms(id.CountryIdentifier)

	seen := make(map[string]struct{}, len(countryForms)*len(Delimiters)+1)
	variants := make([]string, 0, len(countryForms)*len(Delimiters)+1)

	appendVariant := func(key string) {
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		variants = append(variants, key)
	}

	appendVariant(Canonical(id).String())

	for _, form := range countryForms {
		for _, delim := range Delimiters {
			appendVariant(strings.Join([]string{name, form, locale}, delim))
		}
	}
	return variants
}

// Parse splits a serialized key back into its components, trying each
// delimiter style in probe order. Keys that do not split into three parts
// come back with only HolidayName set, so callers degrade gracefully on
// hand-edited snapshot entries.
func Parse(serialized string) Key {
	for _, delim := range Delimiters {
		parts := strings.Split(serialized, delim)
		if len(parts) == 3 {
			return Key{
				HolidayName: strings.TrimSpace(parts[0]),
				CountryCode: strings.TrimSpace(parts[1]),
				Locale:      strings.TrimSpace(parts[2]),
			}
		}
	}
	return Key{HolidayName: strings.TrimSpace(serialized)}
}

// CountryForms enumerates the country-identifier spellings legacy tools used
// when persisting records for an identity: the raw identifier, the alpha-2
// code, the canonical name, and the lowercase code, deduplicated in that
// order. The remote tier matches its country_name column against this set.
func CountryForms(identifier string) []string {
	return countryForms(identifier)
}

func countryForms(identifier string) []string {
	raw := strings.TrimSpace(identifier)

	forms := make([]string, 0, 4)
	appendForm := func(form string) {
		if form == "" {
			return
		}
		for _, existing := range forms {
			if existing == form {
				return
			}
		}
		forms = append(forms, form)
	}

	appendForm(raw)
	if resolved, err := country.Normalize(raw); err == nil {
		appendForm(resolved.Code)
		appendForm(resolved.Name)
		appendForm(strings.ToLower(resolved.Code))
	}
	return forms
}

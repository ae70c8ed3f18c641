package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrCalendarNotFound indicates no calendar document exists for the scope.
var ErrCalendarNotFound = errors.New("calendar: no calendar for country/year")

// ErrCalendarInvalid indicates the calendar document failed schema validation.
var ErrCalendarInvalid = errors.New("calendar: document failed validation")

// documentSchema is the contract calendar files must satisfy. Calendar data
// is ground truth, so unlike the snapshot tier it is validated strictly.
const documentSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"id":       {"type": "string"},
			"name":     {"type": "string", "minLength": 1},
			"date":     {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}"},
			"type":     {"type": "string"},
			"global":   {"type": "boolean"},
			"counties": {"type": "array", "items": {"type": "string"}}
		},
		"required": ["name", "date"]
	}
}`

// FileOption mutates the file provider configuration.
type FileOption func(*FileProvider)

// WithValidation toggles schema validation of loaded documents.
func WithValidation(enabled bool) FileOption {
	return func(p *FileProvider) {
		p.validate = enabled
	}
}

// FileProvider serves calendars from one JSON document per (country, year)
// scope, named <CODE>-<year>.json. Documents are parsed once and cached for
// the life of the provider.
type FileProvider struct {
	dir      string
	validate bool
	schema   *jsonschema.Schema

	mu    sync.RWMutex
	cache map[string][]Holiday
}

// NewFileProvider constructs a provider rooted at dir. Validation is enabled
// by default.
func NewFileProvider(dir string, opts ...FileOption) (*FileProvider, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("calendar: provider directory cannot be empty")
	}
	provider := &FileProvider{
		dir:      dir,
		validate: true,
		cache:    map[string][]Holiday{},
	}
	for _, opt := range opts {
		opt(provider)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("calendar.json", bytes.NewReader([]byte(documentSchema))); err != nil {
		return nil, fmt.Errorf("calendar: compile schema: %w", err)
	}
	schema, err := compiler.Compile("calendar.json")
	if err != nil {
		return nil, fmt.Errorf("calendar: compile schema: %w", err)
	}
	provider.schema = schema
	return provider, nil
}

// Holidays returns the ordered holiday list for the scope. Order is the
// document order, unchanged.
func (p *FileProvider) Holidays(ctx context.Context, countryCode string, year int) ([]Holiday, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	scope := fmt.Sprintf("%s-%d", strings.ToUpper(strings.TrimSpace(countryCode)), year)

	p.mu.RLock()
	cached, ok := p.cache[scope]
	p.mu.RUnlock()
	if ok {
		return cloneHolidays(cached), nil
	}

	path := filepath.Join(p.dir, scope+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrCalendarNotFound, scope)
		}
		return nil, fmt.Errorf("calendar: read %q: %w", path, err)
	}

	if p.validate {
		var document any
		if err := json.Unmarshal(data, &document); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCalendarInvalid, scope, err)
		}
		if err := p.schema.Validate(document); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCalendarInvalid, scope, err)
		}
	}

	var holidays []Holiday
	if err := json.Unmarshal(data, &holidays); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCalendarInvalid, scope, err)
	}

	p.mu.Lock()
	p.cache[scope] = holidays
	p.mu.Unlock()

	return cloneHolidays(holidays), nil
}

// StaticProvider serves a fixed in-memory calendar, primarily for tests and
// embedding hosts that already hold calendar data.
type StaticProvider struct {
	mu        sync.RWMutex
	calendars map[string][]Holiday
}

// NewStaticProvider constructs an empty static provider.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{calendars: map[string][]Holiday{}}
}

// Add registers the holiday list for a scope, replacing any existing entry.
func (p *StaticProvider) Add(countryCode string, year int, holidays ...Holiday) {
	p.mu.Lock()
	defer p.mu.Unlock()
	scope := fmt.Sprintf("%s-%d", strings.ToUpper(strings.TrimSpace(countryCode)), year)
	p.calendars[scope] = cloneHolidays(holidays)
}

// Holidays implements Provider.
func (p *StaticProvider) Holidays(_ context.Context, countryCode string, year int) ([]Holiday, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	scope := fmt.Sprintf("%s-%d", strings.ToUpper(strings.TrimSpace(countryCode)), year)
	holidays, ok := p.calendars[scope]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCalendarNotFound, scope)
	}
	return cloneHolidays(holidays), nil
}

func cloneHolidays(src []Holiday) []Holiday {
	if src == nil {
		return nil
	}
	out := make([]Holiday, len(src))
	copy(out, src)
	for i := range out {
		if src[i].Counties != nil {
			out[i].Counties = append([]string(nil), src[i].Counties...)
		}
	}
	return out
}

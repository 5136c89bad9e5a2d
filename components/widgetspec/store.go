package widgetspec

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ettle/strcase"
	"github.com/google/uuid"
)

// ErrWidgetNotFound is returned for lookups of unknown widget IDs.
var ErrWidgetNotFound = fmt.Errorf("widgetspec: widget not found")

// ValidationFailedError carries the full validation result when a store
// operation rejects a document. The store never partially accepts a spec.
type ValidationFailedError struct {
	Result ValidationResult
}

func (e *ValidationFailedError) Error() string {
	if len(e.Result.Errors) == 0 {
		return "widgetspec: spec failed validation"
	}
	first := e.Result.Errors[0]
	return fmt.Sprintf("widgetspec: spec failed validation: %s at %q (%d error(s))", first.Message, first.Path, len(e.Result.Errors))
}

// StoredWidget is a validated widget spec persisted under a generated ID.
// The document is immutable once stored except through Update, which
// re-validates the whole spec.
type StoredWidget struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Spec        WidgetSpec `json:"spec"`
	SpecVersion string     `json:"specVersion"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Icon        string     `json:"icon,omitempty"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags,omitempty"`
	Version     int        `json:"version"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CreateWidgetInput configures new stored widgets. Meta overrides fall back
// to the spec's own meta block.
type CreateWidgetInput struct {
	Spec        *WidgetSpec
	Name        string
	Description string
	Icon        string
	Category    string
	Tags        []string
}

// UpdateWidgetInput carries partial updates; a nil Spec keeps the stored one.
type UpdateWidgetInput struct {
	Spec        *WidgetSpec
	Name        string
	Description string
	Category    string
	Tags        []string
}

// ListWidgetsOptions filters List results.
type ListWidgetsOptions struct {
	Category string
	Tag      string
	Search   string
	Limit    int
	Offset   int
}

// WidgetStore persists widget spec documents.
type WidgetStore interface {
	Create(ctx context.Context, input CreateWidgetInput) (StoredWidget, error)
	Get(ctx context.Context, id string) (StoredWidget, error)
	Update(ctx context.Context, id string, input UpdateWidgetInput) (StoredWidget, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts ListWidgetsOptions) ([]StoredWidget, int, error)
}

// InMemoryWidgetStore is a concurrency-safe default store.
type InMemoryWidgetStore struct {
	mu        sync.RWMutex
	widgets   map[string]StoredWidget
	telemetry Telemetry
	now       func() time.Time
}

// StoreOption customizes store construction.
type StoreOption func(*InMemoryWidgetStore)

// WithStoreTelemetry wires a telemetry sink into the store.
func WithStoreTelemetry(t Telemetry) StoreOption {
	return func(s *InMemoryWidgetStore) { s.telemetry = t }
}

// WithStoreClock overrides the store clock; used by tests.
func WithStoreClock(now func() time.Time) StoreOption {
	return func(s *InMemoryWidgetStore) { s.now = now }
}

// NewInMemoryWidgetStore creates an empty widget store.
func NewInMemoryWidgetStore(opts ...StoreOption) *InMemoryWidgetStore {
	s := &InMemoryWidgetStore{
		widgets: make(map[string]StoredWidget),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.telemetry = normalizeTelemetry(s.telemetry)
	return s
}

// Create validates the spec and stores it under a fresh ID.
func (s *InMemoryWidgetStore) Create(ctx context.Context, input CreateWidgetInput) (StoredWidget, error) {
	if input.Spec == nil {
		return StoredWidget{}, fmt.Errorf("widgetspec: create requires a spec")
	}
	if err := revalidate(input.Spec); err != nil {
		return StoredWidget{}, err
	}

	now := s.now()
	widget := StoredWidget{
		ID:          uuid.NewString(),
		Spec:        *input.Spec,
		SpecVersion: input.Spec.Version,
		Name:        firstNonEmpty(input.Name, input.Spec.Meta.Name),
		Description: firstNonEmpty(input.Description, input.Spec.Meta.Description),
		Icon:        firstNonEmpty(input.Icon, input.Spec.Meta.Icon),
		Category:    firstNonEmpty(input.Category, input.Spec.Meta.Category, "custom"),
		Tags:        input.Tags,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if len(widget.Tags) == 0 {
		widget.Tags = input.Spec.Meta.Tags
	}
	widget.Slug = strcase.ToKebab(widget.Name)

	s.mu.Lock()
	s.widgets[widget.ID] = widget
	s.mu.Unlock()

	s.telemetry.Record(ctx, "widgetspec.store.create", map[string]any{
		"widget_id": widget.ID,
		"name":      widget.Name,
	})
	return widget, nil
}

// Get fetches a stored widget by ID.
func (s *InMemoryWidgetStore) Get(_ context.Context, id string) (StoredWidget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	widget, ok := s.widgets[id]
	if !ok {
		return StoredWidget{}, ErrWidgetNotFound
	}
	return widget, nil
}

// Update replaces stored fields, re-validating the whole document whenever
// the spec changes, and bumps the version counter.
func (s *InMemoryWidgetStore) Update(ctx context.Context, id string, input UpdateWidgetInput) (StoredWidget, error) {
	s.mu.Lock()
	widget, ok := s.widgets[id]
	s.mu.Unlock()
	if !ok {
		return StoredWidget{}, ErrWidgetNotFound
	}

	if input.Spec != nil {
		if err := revalidate(input.Spec); err != nil {
			return StoredWidget{}, err
		}
		widget.Spec = *input.Spec
		widget.SpecVersion = input.Spec.Version
	}
	if input.Name != "" {
		widget.Name = input.Name
		widget.Slug = strcase.ToKebab(input.Name)
	}
	if input.Description != "" {
		widget.Description = input.Description
	}
	if input.Category != "" {
		widget.Category = input.Category
	}
	if input.Tags != nil {
		widget.Tags = input.Tags
	}
	widget.Version++
	widget.UpdatedAt = s.now()

	s.mu.Lock()
	s.widgets[id] = widget
	s.mu.Unlock()

	s.telemetry.Record(ctx, "widgetspec.store.update", map[string]any{
		"widget_id": id,
		"version":   widget.Version,
	})
	return widget, nil
}

// Delete removes a widget. Dashboards referencing the ID keep working; their
// render path degrades to a placeholder for the dangling reference.
func (s *InMemoryWidgetStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	_, ok := s.widgets[id]
	delete(s.widgets, id)
	s.mu.Unlock()
	if !ok {
		return ErrWidgetNotFound
	}
	s.telemetry.Record(ctx, "widgetspec.store.delete", map[string]any{"widget_id": id})
	return nil
}

// List returns matching widgets ordered by creation time, newest first,
// along with the total match count before pagination.
func (s *InMemoryWidgetStore) List(_ context.Context, opts ListWidgetsOptions) ([]StoredWidget, int, error) {
	s.mu.RLock()
	matched := make([]StoredWidget, 0, len(s.widgets))
	for _, widget := range s.widgets {
		if matchesList(widget, opts) {
			matched = append(matched, widget)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if opts.Offset > 0 {
		if opts.Offset >= len(matched) {
			return nil, total, nil
		}
		matched = matched[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(matched) {
		matched = matched[:opts.Limit]
	}
	return matched, total, nil
}

func matchesList(widget StoredWidget, opts ListWidgetsOptions) bool {
	if opts.Category != "" && widget.Category != opts.Category {
		return false
	}
	if opts.Tag != "" {
		found := false
		for _, tag := range widget.Tags {
			if tag == opts.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if opts.Search != "" {
		needle := strings.ToLower(opts.Search)
		if !strings.Contains(strings.ToLower(widget.Name), needle) &&
			!strings.Contains(strings.ToLower(widget.Description), needle) {
			return false
		}
	}
	return true
}

// revalidate runs the typed spec back through document validation, so stored
// specs satisfy exactly the same gate as imported ones.
func revalidate(spec *WidgetSpec) error {
	data, err := json.Marshal(spec)
	if err != nil {
		return fmt.Errorf("widgetspec: encode spec for validation: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("widgetspec: normalize spec for validation: %w", err)
	}
	result := Validate(doc)
	if !result.Valid {
		return &ValidationFailedError{Result: result}
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

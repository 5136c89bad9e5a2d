package queries

import (
	"context"
	"errors"
	"testing"
	"time"

	widgetspec "github.com/goliatone/go-timedash/components/widgetspec"
)

type stubStore struct {
	widgets  map[string]widgetspec.StoredWidget
	lastList widgetspec.ListWidgetsOptions
}

func newStubStore(widgets ...widgetspec.StoredWidget) *stubStore {
	s := &stubStore{widgets: make(map[string]widgetspec.StoredWidget)}
	for _, w := range widgets {
		s.widgets[w.ID] = w
	}
	return s
}

func (s *stubStore) Get(_ context.Context, id string) (widgetspec.StoredWidget, error) {
	widget, ok := s.widgets[id]
	if !ok {
		return widgetspec.StoredWidget{}, widgetspec.ErrWidgetNotFound
	}
	return widget, nil
}

func (s *stubStore) List(_ context.Context, opts widgetspec.ListWidgetsOptions) ([]widgetspec.StoredWidget, int, error) {
	s.lastList = opts
	out := make([]widgetspec.StoredWidget, 0, len(s.widgets))
	for _, w := range s.widgets {
		out = append(out, w)
	}
	return out, len(out), nil
}

func storedClock() widgetspec.StoredWidget {
	spec, _ := widgetspec.Preset("office-clocks")
	return widgetspec.StoredWidget{ID: "w1", Name: "Office Clocks", Slug: "office-clocks", Spec: spec}
}

func TestWidgetQuery(t *testing.T) {
	store := newStubStore(storedClock())
	query := NewWidgetQuery(store)

	widget, err := query.Query(context.Background(), WidgetInput{WidgetID: "w1"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if widget.Name != "Office Clocks" {
		t.Fatalf("unexpected widget: %+v", widget)
	}

	if _, err := query.Query(context.Background(), WidgetInput{WidgetID: "missing"}); !errors.Is(err, widgetspec.ErrWidgetNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestWidgetListQuery(t *testing.T) {
	store := newStubStore(storedClock())
	query := NewWidgetListQuery(store)

	result, err := query.Query(context.Background(), WidgetListInput{Category: "clocks", Limit: 10})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if result.Total != 1 || len(result.Widgets) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if store.lastList.Category != "clocks" || store.lastList.Limit != 10 {
		t.Fatalf("filters not forwarded: %+v", store.lastList)
	}
}

func TestRenderQuery(t *testing.T) {
	store := newStubStore(storedClock())
	query := NewRenderQuery(store, nil)

	now := time.Date(2026, time.March, 2, 12, 0, 0, 0, time.UTC)
	result, err := query.Query(context.Background(), RenderInput{
		WidgetID: "w1",
		Slots:    []widgetspec.Slot{{ID: "s1", Timezone: "UTC", Label: "UTC"}},
		Prefs:    widgetspec.FormatPrefs{TimeFormat: widgetspec.TimeFormat24h},
		Now:      now,
	})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if result.State != widgetspec.StateOK {
		t.Fatalf("expected ok render, got %s", result.State)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected one item, got %d", len(result.Items))
	}
	if result.Items[0].Data.Time != "12:00" {
		t.Fatalf("unexpected rendered time %q", result.Items[0].Data.Time)
	}
}

func TestRenderQueryEmptySlots(t *testing.T) {
	query := NewRenderQuery(newStubStore(storedClock()), nil)
	result, err := query.Query(context.Background(), RenderInput{WidgetID: "w1"})
	if err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if result.State != widgetspec.StateEmpty {
		t.Fatalf("expected empty state without slots, got %s", result.State)
	}
}

func TestRenderQueryUnknownWidget(t *testing.T) {
	query := NewRenderQuery(newStubStore(), nil)
	if _, err := query.Query(context.Background(), RenderInput{WidgetID: "missing"}); !errors.Is(err, widgetspec.ErrWidgetNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

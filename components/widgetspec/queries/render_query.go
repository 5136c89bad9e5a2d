package queries

import (
	"context"
	"time"

	gocommand "github.com/goliatone/go-command"
	widgetspec "github.com/goliatone/go-timedash/components/widgetspec"
)

// RenderInput describes one render pass: the stored widget plus the viewer's
// timezone slots and format preferences.
type RenderInput struct {
	WidgetID string
	Slots    []widgetspec.Slot
	Prefs    widgetspec.FormatPrefs
	// Now overrides the render instant; zero means time.Now.
	Now time.Time
}

type renderStore interface {
	Get(ctx context.Context, id string) (widgetspec.StoredWidget, error)
}

// RenderQuery executes one render pass for a stored widget.
type RenderQuery struct {
	store    renderStore
	renderer *widgetspec.SpecRenderer
}

// NewRenderQuery builds the query.
func NewRenderQuery(store renderStore, renderer *widgetspec.SpecRenderer) *RenderQuery {
	if renderer == nil {
		renderer = widgetspec.NewSpecRenderer(widgetspec.RendererOptions{})
	}
	return &RenderQuery{store: store, renderer: renderer}
}

var _ gocommand.Querier[RenderInput, widgetspec.RenderResult] = (*RenderQuery)(nil)

// Query loads the spec and renders it against the supplied slots.
func (q *RenderQuery) Query(ctx context.Context, input RenderInput) (widgetspec.RenderResult, error) {
	widget, err := q.store.Get(ctx, input.WidgetID)
	if err != nil {
		return widgetspec.RenderResult{}, err
	}
	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}
	return q.renderer.Render(ctx, &widget.Spec, input.Slots, now, input.Prefs), nil
}

package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	widgetspec "github.com/goliatone/go-timedash/components/widgetspec"
)

// WidgetInput identifies one stored widget.
type WidgetInput struct {
	WidgetID string
}

type widgetStore interface {
	Get(ctx context.Context, id string) (widgetspec.StoredWidget, error)
	List(ctx context.Context, opts widgetspec.ListWidgetsOptions) ([]widgetspec.StoredWidget, int, error)
}

// WidgetQuery fetches a single stored widget.
type WidgetQuery struct {
	store widgetStore
}

// NewWidgetQuery builds the query.
func NewWidgetQuery(store widgetStore) *WidgetQuery {
	return &WidgetQuery{store: store}
}

var _ gocommand.Querier[WidgetInput, widgetspec.StoredWidget] = (*WidgetQuery)(nil)

// Query resolves the widget by ID.
func (q *WidgetQuery) Query(ctx context.Context, input WidgetInput) (widgetspec.StoredWidget, error) {
	return q.store.Get(ctx, input.WidgetID)
}

// WidgetListInput filters the widget listing.
type WidgetListInput struct {
	Category string
	Tag      string
	Search   string
	Limit    int
	Offset   int
}

// WidgetListResult pairs one page of widgets with the total match count.
type WidgetListResult struct {
	Widgets []widgetspec.StoredWidget
	Total   int
}

// WidgetListQuery lists stored widgets.
type WidgetListQuery struct {
	store widgetStore
}

// NewWidgetListQuery builds the query.
func NewWidgetListQuery(store widgetStore) *WidgetListQuery {
	return &WidgetListQuery{store: store}
}

var _ gocommand.Querier[WidgetListInput, WidgetListResult] = (*WidgetListQuery)(nil)

// Query lists widgets matching the filters.
func (q *WidgetListQuery) Query(ctx context.Context, input WidgetListInput) (WidgetListResult, error) {
	widgets, total, err := q.store.List(ctx, widgetspec.ListWidgetsOptions{
		Category: input.Category,
		Tag:      input.Tag,
		Search:   input.Search,
		Limit:    input.Limit,
		Offset:   input.Offset,
	})
	if err != nil {
		return WidgetListResult{}, err
	}
	return WidgetListResult{Widgets: widgets, Total: total}, nil
}

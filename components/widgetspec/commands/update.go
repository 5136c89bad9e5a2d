package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	widgetspec "github.com/goliatone/go-timedash/components/widgetspec"
)

// UpdateWidgetRequest carries a partial update for a stored widget. A
// non-empty Raw replaces the stored spec after re-validation.
type UpdateWidgetRequest struct {
	WidgetID    string
	Raw         string
	Name        string
	Description string
	Category    string
	Tags        []string
}

type updateStore interface {
	Update(ctx context.Context, id string, input widgetspec.UpdateWidgetInput) (widgetspec.StoredWidget, error)
}

// UpdateWidgetCommand applies metadata and spec updates to stored widgets.
type UpdateWidgetCommand struct {
	store     updateStore
	telemetry Telemetry
}

// NewUpdateWidgetCommand creates a command instance.
func NewUpdateWidgetCommand(store updateStore, telemetry Telemetry) *UpdateWidgetCommand {
	return &UpdateWidgetCommand{store: store, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateWidgetRequest] = (*UpdateWidgetCommand)(nil)

// Execute validates any replacement spec before touching the stored record.
func (c *UpdateWidgetCommand) Execute(ctx context.Context, msg UpdateWidgetRequest) error {
	if c.store == nil {
		return errors.New("update command requires store")
	}
	input := widgetspec.UpdateWidgetInput{
		Name:        msg.Name,
		Description: msg.Description,
		Category:    msg.Category,
		Tags:        msg.Tags,
	}
	if msg.Raw != "" {
		spec, result := widgetspec.ParseSpec(msg.Raw)
		if !result.Valid {
			return &widgetspec.ValidationFailedError{Result: result}
		}
		input.Spec = spec
	}
	updated, err := c.store.Update(ctx, msg.WidgetID, input)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "widgetspec.widget.update", map[string]any{
		"widget_id": updated.ID,
		"version":   updated.Version,
	})
	return nil
}

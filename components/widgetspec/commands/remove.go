package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// RemoveWidgetRequest identifies the widget to delete.
type RemoveWidgetRequest struct {
	WidgetID string
}

type removeStore interface {
	Delete(ctx context.Context, id string) error
}

// RemoveWidgetCommand deletes a stored widget.
type RemoveWidgetCommand struct {
	store     removeStore
	telemetry Telemetry
}

// NewRemoveWidgetCommand creates a command instance.
func NewRemoveWidgetCommand(store removeStore, telemetry Telemetry) *RemoveWidgetCommand {
	return &RemoveWidgetCommand{store: store, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RemoveWidgetRequest] = (*RemoveWidgetCommand)(nil)

// Execute deletes the widget. Instances referencing it degrade at render time.
func (c *RemoveWidgetCommand) Execute(ctx context.Context, msg RemoveWidgetRequest) error {
	if c.store == nil {
		return errors.New("remove command requires store")
	}
	if err := c.store.Delete(ctx, msg.WidgetID); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "widgetspec.widget.remove", map[string]any{
		"widget_id": msg.WidgetID,
	})
	return nil
}

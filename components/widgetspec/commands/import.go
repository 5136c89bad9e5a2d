package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	widgetspec "github.com/goliatone/go-timedash/components/widgetspec"
)

// ImportWidgetRequest carries a raw spec document plus optional metadata
// overrides for the stored record.
type ImportWidgetRequest struct {
	Raw         string
	Name        string
	Description string
	Category    string
	Tags        []string
}

type importStore interface {
	Create(ctx context.Context, input widgetspec.CreateWidgetInput) (widgetspec.StoredWidget, error)
}

// ImportWidgetCommand parses, validates, and stores a widget spec document.
type ImportWidgetCommand struct {
	store     importStore
	telemetry Telemetry
}

// NewImportWidgetCommand creates a command instance.
func NewImportWidgetCommand(store importStore, telemetry Telemetry) *ImportWidgetCommand {
	return &ImportWidgetCommand{store: store, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ImportWidgetRequest] = (*ImportWidgetCommand)(nil)

// Execute runs the full import gate. Invalid documents never reach storage.
func (c *ImportWidgetCommand) Execute(ctx context.Context, msg ImportWidgetRequest) error {
	if c.store == nil {
		return errors.New("import command requires store")
	}
	spec, result := widgetspec.ParseSpec(msg.Raw)
	if !result.Valid {
		return &widgetspec.ValidationFailedError{Result: result}
	}
	stored, err := c.store.Create(ctx, widgetspec.CreateWidgetInput{
		Spec:        spec,
		Name:        msg.Name,
		Description: msg.Description,
		Category:    msg.Category,
		Tags:        msg.Tags,
	})
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "widgetspec.widget.import", map[string]any{
		"widget_id": stored.ID,
		"name":      stored.Name,
	})
	return nil
}

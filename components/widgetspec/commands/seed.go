package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	widgetspec "github.com/goliatone/go-timedash/components/widgetspec"
)

// SeedPresetsRequest selects which built-in presets to store. An empty ID
// list seeds every preset.
type SeedPresetsRequest struct {
	IDs []string
}

type seedStore interface {
	Create(ctx context.Context, input widgetspec.CreateWidgetInput) (widgetspec.StoredWidget, error)
}

// SeedPresetsCommand stores built-in preset widgets so they become editable
// documents.
type SeedPresetsCommand struct {
	store     seedStore
	telemetry Telemetry
}

// NewSeedPresetsCommand creates a command instance.
func NewSeedPresetsCommand(store seedStore, telemetry Telemetry) *SeedPresetsCommand {
	return &SeedPresetsCommand{store: store, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SeedPresetsRequest] = (*SeedPresetsCommand)(nil)

// Execute stores the requested presets.
func (c *SeedPresetsCommand) Execute(ctx context.Context, msg SeedPresetsRequest) error {
	if c.store == nil {
		return errors.New("seed command requires store")
	}
	wanted := make(map[string]bool, len(msg.IDs))
	for _, id := range msg.IDs {
		wanted[id] = true
	}
	seeded := 0
	for _, preset := range widgetspec.PresetWidgets() {
		if len(wanted) > 0 && !wanted[preset.ID] {
			continue
		}
		spec := preset.Spec
		if _, err := c.store.Create(ctx, widgetspec.CreateWidgetInput{Spec: &spec}); err != nil {
			return err
		}
		seeded++
	}
	c.telemetry.Record(ctx, "widgetspec.presets.seed", map[string]any{
		"count": seeded,
	})
	return nil
}

package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	widgetspec "github.com/goliatone/go-timedash/components/widgetspec"
)

// RefreshWidgetRequest forces an immediate render tick for one widget.
type RefreshWidgetRequest struct {
	WidgetID string
}

// TickEngine computes one snapshot on demand, outside the timer loop.
type TickEngine interface {
	Tick(ctx context.Context) widgetspec.Snapshot
}

// EngineRegistry resolves the live engine for a widget instance.
type EngineRegistry interface {
	Engine(widgetID string) (TickEngine, bool)
}

// RefreshWidgetCommand triggers an out-of-band render and pushes the
// snapshot to subscribers.
type RefreshWidgetCommand struct {
	engines   EngineRegistry
	broadcast *widgetspec.SnapshotBroadcaster
	telemetry Telemetry
}

// NewRefreshWidgetCommand creates a command instance. The broadcaster may be
// nil when no transport subscribes to snapshots.
func NewRefreshWidgetCommand(engines EngineRegistry, broadcast *widgetspec.SnapshotBroadcaster, telemetry Telemetry) *RefreshWidgetCommand {
	return &RefreshWidgetCommand{
		engines:   engines,
		broadcast: broadcast,
		telemetry: normalizeTelemetry(telemetry),
	}
}

var _ gocommand.Commander[RefreshWidgetRequest] = (*RefreshWidgetCommand)(nil)

// Execute renders immediately, outside the timer loop.
func (c *RefreshWidgetCommand) Execute(ctx context.Context, msg RefreshWidgetRequest) error {
	if c.engines == nil {
		return errors.New("refresh command requires engine registry")
	}
	engine, ok := c.engines.Engine(msg.WidgetID)
	if !ok {
		return widgetspec.ErrWidgetNotFound
	}
	snapshot := engine.Tick(ctx)
	if c.broadcast != nil {
		c.broadcast.SnapshotSink(msg.WidgetID)(snapshot)
	}
	c.telemetry.Record(ctx, "widgetspec.widget.refresh", map[string]any{
		"widget_id": msg.WidgetID,
		"state":     string(snapshot.Result.State),
	})
	return nil
}

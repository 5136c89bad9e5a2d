package widgetspec

import "context"

// Telemetry records widget engine events (render diagnostics, store
// activity) for observability. Implementations must be safe for concurrent
// use.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

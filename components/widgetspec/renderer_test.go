package widgetspec

import (
	"context"
	"testing"
	"time"
)

type recordingTelemetry struct {
	events []string
}

func (r *recordingTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	r.events = append(r.events, event)
}

func clockSpec() *WidgetSpec {
	return &WidgetSpec{
		Version: SpecVersion,
		Meta:    WidgetMeta{Name: "Office Clocks"},
		Data: DataConfig{
			Source: SourceTimezones,
			Fields: []DataField{FieldTime, FieldLabel},
		},
		Layout: LayoutConfig{Type: LayoutGrid, Columns: gridCols(2), Gap: GapMD},
		Display: []DisplayConfig{
			{Component: ComponentDigitalClock, Bindings: Bindings{"time": "time"}},
			{Component: ComponentText, Bindings: Bindings{"content": "label"}},
		},
	}
}

func renderSlots() []Slot {
	return []Slot{
		{ID: "s1", Timezone: "UTC", Label: "UTC"},
		{ID: "s2", Timezone: "Asia/Tokyo", Label: "Tokyo"},
	}
}

func TestRenderTerminalStates(t *testing.T) {
	renderer := NewSpecRenderer(RendererOptions{})
	ctx := context.Background()
	now := utcInstant(12, 0)

	nilSpec := renderer.Render(ctx, nil, renderSlots(), now, FormatPrefs{})
	if nilSpec.State != StateEmpty {
		t.Fatalf("nil spec: expected empty state, got %s", nilSpec.State)
	}

	noSlots := renderer.Render(ctx, clockSpec(), nil, now, FormatPrefs{})
	if noSlots.State != StateEmpty {
		t.Fatalf("no slots: expected empty state, got %s", noSlots.State)
	}
	if noSlots.Message != "No timezones selected. Add timezones to this widget to see data." {
		t.Fatalf("unexpected empty message: %q", noSlots.Message)
	}

	loading := renderer.Render(ctx, clockSpec(), renderSlots(), time.Time{}, FormatPrefs{})
	if loading.State != StateLoading || loading.Message != "Loading..." {
		t.Fatalf("zero now: expected loading state, got %+v", loading)
	}
}

func TestRenderWalksEverySlot(t *testing.T) {
	renderer := NewSpecRenderer(RendererOptions{})
	result := renderer.Render(context.Background(), clockSpec(), renderSlots(), utcInstant(12, 0), FormatPrefs{TimeFormat: TimeFormat24h})

	if result.State != StateOK {
		t.Fatalf("expected ok state, got %s", result.State)
	}
	if result.LayoutClasses != "grid grid-cols-2 gap-3 p-0" {
		t.Fatalf("unexpected layout classes: %q", result.LayoutClasses)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected one item per slot, got %d", len(result.Items))
	}
	first := result.Items[0]
	if len(first.Nodes) != 2 {
		t.Fatalf("expected both display nodes, got %d", len(first.Nodes))
	}
	if first.Nodes[0].Text != "12:00" {
		t.Fatalf("unexpected clock text: %q", first.Nodes[0].Text)
	}
	if result.Items[1].Nodes[0].Text != "21:00" {
		t.Fatalf("unexpected Tokyo clock text: %q", result.Items[1].Nodes[0].Text)
	}
	if result.Items[1].Nodes[1].Text != "Tokyo" {
		t.Fatalf("unexpected label text: %q", result.Items[1].Nodes[1].Text)
	}
}

func TestRenderHeaderFollowsSettings(t *testing.T) {
	renderer := NewSpecRenderer(RendererOptions{})
	ctx := context.Background()
	now := utcInstant(12, 0)

	spec := clockSpec()
	result := renderer.Render(ctx, spec, renderSlots(), now, FormatPrefs{})
	if result.Header != "" {
		t.Fatalf("header must stay empty without showHeader, got %q", result.Header)
	}

	spec.Settings = &WidgetSettings{ShowHeader: true}
	withHeader := renderer.Render(ctx, spec, renderSlots(), now, FormatPrefs{})
	if withHeader.Header != "Office Clocks" {
		t.Fatalf("expected meta name as header, got %q", withHeader.Header)
	}
}

func TestRenderPrunesHiddenNodes(t *testing.T) {
	renderer := NewSpecRenderer(RendererOptions{})
	spec := clockSpec()
	spec.Display = []DisplayConfig{
		{
			Component: ComponentText,
			Bindings:  Bindings{"content": "label"},
			ShowIf:    &DisplayCondition{Field: FieldIsWorkingTime, Operator: OpTruthy},
		},
		{Component: ComponentDigitalClock, Bindings: Bindings{"time": "time"}},
	}
	result := renderer.Render(context.Background(), spec, []Slot{{ID: "s1", Timezone: "UTC", Label: "UTC"}}, utcInstant(12, 0), FormatPrefs{})

	nodes := result.Items[0].Nodes
	if len(nodes) != 1 {
		t.Fatalf("hidden node must be pruned, got %d nodes", len(nodes))
	}
	if nodes[0].Component != ComponentDigitalClock {
		t.Fatalf("surviving node should be the clock, got %s", nodes[0].Component)
	}
}

func TestRenderSkipsUnknownComponents(t *testing.T) {
	telemetry := &recordingTelemetry{}
	renderer := NewSpecRenderer(RendererOptions{Telemetry: telemetry})
	spec := clockSpec()
	spec.Display = []DisplayConfig{
		{Component: "blink-tag"},
		{Component: ComponentDigitalClock, Bindings: Bindings{"time": "time"}},
	}
	result := renderer.Render(context.Background(), spec, []Slot{{ID: "s1", Timezone: "UTC"}}, utcInstant(12, 0), FormatPrefs{})

	if len(result.Items[0].Nodes) != 1 {
		t.Fatalf("unknown component must be skipped, got %d nodes", len(result.Items[0].Nodes))
	}
	if len(telemetry.events) != 1 || telemetry.events[0] != "widgetspec.render.unknown_component" {
		t.Fatalf("expected telemetry for the skip, got %v", telemetry.events)
	}
}

func TestRenderNestedContainers(t *testing.T) {
	renderer := NewSpecRenderer(RendererOptions{})
	spec := clockSpec()
	spec.Display = []DisplayConfig{
		{
			Component: ComponentContainer,
			Layout:    &LayoutConfig{Type: LayoutFlex, Direction: "row", Gap: GapSM},
			Children: []DisplayConfig{
				{Component: ComponentColorDot, Bindings: Bindings{"color": "color"}},
				{Component: ComponentText, Bindings: Bindings{"content": "label"}},
			},
		},
	}
	result := renderer.Render(context.Background(), spec, []Slot{{ID: "s1", Timezone: "UTC", Label: "UTC"}}, utcInstant(12, 0), FormatPrefs{})

	container := result.Items[0].Nodes[0]
	if len(container.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(container.Children))
	}
	if container.Classes != "flex flex-row gap-2 p-0" {
		t.Fatalf("container classes must include its layout, got %q", container.Classes)
	}
	if container.Children[1].Text != "UTC" {
		t.Fatalf("child must see the parent item's data, got %q", container.Children[1].Text)
	}
}

package widgetspec

import (
	"context"
	"time"
)

// RenderState classifies the top-level outcome of a render pass.
type RenderState string

const (
	StateOK      RenderState = "ok"
	StateEmpty   RenderState = "empty"
	StateLoading RenderState = "loading"
)

// Terminal leaf-state messages; not part of the tree walk.
const (
	emptyStateMessage   = "No timezones selected. Add timezones to this widget to see data."
	loadingStateMessage = "Loading..."
)

// RenderedNode is one visible node of the output tree.
type RenderedNode struct {
	Component ComponentType `json:"component"`
	Props     Props         `json:"props,omitempty"`
	Text      string        `json:"text,omitempty"` // primitive's formatted content
	Classes   string        `json:"classes,omitempty"`
	Style     *DisplayStyle `json:"style,omitempty"`
	Layout    *LayoutConfig `json:"layout,omitempty"`
	Children  []RenderedNode `json:"children,omitempty"`
}

// RenderedItem holds the rendered sub-tree for one resolved data item.
type RenderedItem struct {
	Data  ResolvedDataItem `json:"data"`
	Nodes []RenderedNode   `json:"nodes"`
}

// RenderResult is the full output of one render pass.
type RenderResult struct {
	State         RenderState    `json:"state"`
	Message       string         `json:"message,omitempty"` // set for empty/loading states
	Header        string         `json:"header,omitempty"`
	LayoutClasses string         `json:"layoutClasses,omitempty"`
	Items         []RenderedItem `json:"items,omitempty"`
}

// RendererOptions configures a SpecRenderer. Collaborators are interfaces so
// applications can swap implementations.
type RendererOptions struct {
	Holidays  HolidayLookup
	Telemetry Telemetry
}

// SpecRenderer interprets a validated widget spec against resolved timezone
// data. It holds no per-widget state; each Render call is independent.
type SpecRenderer struct {
	resolver  DataResolver
	telemetry Telemetry
}

// NewSpecRenderer builds a renderer with safe defaults.
func NewSpecRenderer(opts RendererOptions) *SpecRenderer {
	return &SpecRenderer{
		resolver:  DataResolver{Holidays: opts.Holidays},
		telemetry: normalizeTelemetry(opts.Telemetry),
	}
}

// Render executes one full pass: resolve every slot, then walk the display
// forest once per resolved item. Anomalies degrade to skipped nodes or
// terminal messages; they never abort sibling rendering.
func (r *SpecRenderer) Render(ctx context.Context, spec *WidgetSpec, slots []Slot, now time.Time, prefs FormatPrefs) RenderResult {
	if spec == nil {
		return RenderResult{State: StateEmpty, Message: emptyStateMessage}
	}
	if len(slots) == 0 {
		return RenderResult{State: StateEmpty, Message: emptyStateMessage}
	}
	if now.IsZero() {
		// Time data not available yet on the first tick.
		return RenderResult{State: StateLoading, Message: loadingStateMessage}
	}

	result := RenderResult{
		State:         StateOK,
		LayoutClasses: LayoutClasses(spec.Layout),
	}
	if spec.Settings != nil && spec.Settings.ShowHeader && spec.Meta.Name != "" {
		result.Header = spec.Meta.Name
	}

	for _, slot := range slots {
		item := r.resolver.Resolve(slot, now, prefs)
		rendered := RenderedItem{Data: item}
		for _, config := range spec.Display {
			if node := r.renderNode(ctx, config, item); node != nil {
				rendered.Nodes = append(rendered.Nodes, *node)
			}
		}
		result.Items = append(result.Items, rendered)
	}
	return result
}

// renderNode walks one display node depth-first. It returns nil when the
// node is hidden by its condition or its component tag is unregistered; the
// parent composes skips silently.
func (r *SpecRenderer) renderNode(ctx context.Context, config DisplayConfig, item ResolvedDataItem) *RenderedNode {
	if !ShouldShow(config.ShowIf, item) {
		return nil
	}

	info, ok := Component(config.Component)
	if !ok {
		// Unreachable if validation ran; render-time defense in depth.
		r.telemetry.Record(ctx, "widgetspec.render.unknown_component", map[string]any{
			"component": string(config.Component),
		})
		return nil
	}

	props := ResolveNodeProps(config, item)
	classes := StyleClasses(config.Style)

	node := &RenderedNode{
		Component: config.Component,
		Props:     props,
		Text:      info.Format(props),
		Style:     config.Style,
		Layout:    config.Layout,
	}

	if len(config.Children) > 0 {
		if config.Layout != nil {
			classes = cn(classes, LayoutClasses(*config.Layout))
		}
		for _, childConfig := range config.Children {
			// Children always see their parent item's resolved data;
			// there is no cross-item nesting.
			if child := r.renderNode(ctx, childConfig, item); child != nil {
				node.Children = append(node.Children, *child)
			}
		}
	}
	node.Classes = classes
	return node
}

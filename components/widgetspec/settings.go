package widgetspec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// WidgetInstance places a stored widget on a surface with per-instance
// settings. Instances reference widgets by ID; a dangling reference degrades
// to a placeholder at render time rather than failing the surface.
type WidgetInstance struct {
	ID       string         `json:"id"`
	WidgetID string         `json:"widgetId"`
	Slots    []Slot         `json:"slots,omitempty"`
	Settings map[string]any `json:"settings,omitempty"`
}

// instanceSettingsSchema constrains per-instance overrides. It intentionally
// allows unknown keys so widget packs can carry extra settings.
const instanceSettingsSchema = `{
	"type": "object",
	"properties": {
		"refreshInterval": {"type": "integer", "minimum": 100},
		"showHeader": {"type": "boolean"},
		"showBorder": {"type": "boolean"},
		"timeFormat": {"enum": ["12h", "24h"]},
		"showSeconds": {"type": "boolean"}
	}
}`

// SettingsValidator validates widget instance settings payloads.
type SettingsValidator interface {
	ValidateSettings(settings map[string]any) error
}

// JSONSchemaSettingsValidator validates instance settings against the
// built-in schema, compiled once.
type JSONSchemaSettingsValidator struct {
	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

// NewSettingsValidator builds a validator backed by jsonschema v5.
func NewSettingsValidator() *JSONSchemaSettingsValidator {
	return &JSONSchemaSettingsValidator{}
}

// ValidateSettings ensures the settings map satisfies the instance schema.
func (v *JSONSchemaSettingsValidator) ValidateSettings(settings map[string]any) error {
	v.once.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("instance-settings.json", bytes.NewReader([]byte(instanceSettingsSchema))); err != nil {
			v.err = fmt.Errorf("widgetspec: load instance settings schema: %w", err)
			return
		}
		v.schema, v.err = compiler.Compile("instance-settings.json")
		if v.err != nil {
			v.err = fmt.Errorf("widgetspec: compile instance settings schema: %w", v.err)
		}
	})
	if v.err != nil {
		return v.err
	}

	payload := map[string]any{}
	if settings != nil {
		data, err := json.Marshal(settings)
		if err != nil {
			return fmt.Errorf("widgetspec: marshal instance settings: %w", err)
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return fmt.Errorf("widgetspec: normalize instance settings: %w", err)
		}
	}
	if err := v.schema.Validate(payload); err != nil {
		return fmt.Errorf("widgetspec: instance settings failed validation: %w", err)
	}
	return nil
}

// ApplySettings layers instance settings over the spec's own settings block
// and returns the effective values used by the engine and renderer.
func ApplySettings(spec *WidgetSpec, overrides map[string]any) (WidgetSettings, FormatPrefs) {
	settings := WidgetSettings{}
	if spec != nil && spec.Settings != nil {
		settings = *spec.Settings
	}
	prefs := FormatPrefs{TimeFormat: TimeFormat24h}

	if v, ok := overrides["refreshInterval"]; ok {
		if n, ok := asNumber(v); ok && n >= 100 {
			settings.RefreshInterval = int(n)
		}
	}
	if v, ok := overrides["showHeader"].(bool); ok {
		settings.ShowHeader = v
	}
	if v, ok := overrides["showBorder"].(bool); ok {
		settings.ShowBorder = v
	}
	if v, ok := overrides["timeFormat"].(string); ok && v == string(TimeFormat12h) {
		prefs.TimeFormat = TimeFormat12h
	}
	if v, ok := overrides["showSeconds"].(bool); ok {
		prefs.ShowSeconds = v
	}
	return settings, prefs
}

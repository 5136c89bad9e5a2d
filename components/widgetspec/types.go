package widgetspec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// SpecVersion is the only widget spec format version this package accepts.
const SpecVersion = "1.0"

// DataSource selects which collaborator feeds resolved data items.
type DataSource string

const (
	SourceTimezones DataSource = "timezones"
	SourceHolidays  DataSource = "holidays"
)

// DataField names one of the flat fields available on a ResolvedDataItem.
// Bindings, conditions, and data.fields may only reference these names.
type DataField string

const (
	FieldTime             DataField = "time"
	FieldDate             DataField = "date"
	FieldTimezone         DataField = "timezone"
	FieldLabel            DataField = "label"
	FieldCountry          DataField = "country"
	FieldColor            DataField = "color"
	FieldOffset           DataField = "offset"
	FieldAbbreviation     DataField = "abbreviation"
	FieldWorkingHours     DataField = "workingHours"
	FieldIsWorkingTime    DataField = "isWorkingTime"
	FieldHoursUntilStart  DataField = "hoursUntilStart"
	FieldHoursUntilEnd    DataField = "hoursUntilEnd"
	FieldNextHoliday      DataField = "nextHoliday"
	FieldDaysUntilHoliday DataField = "daysUntilHoliday"
	FieldHolidays         DataField = "holidays"
)

// DataConfig declares what data a widget consumes.
type DataConfig struct {
	Source DataSource  `json:"source" yaml:"source"`
	Fields []DataField `json:"fields" yaml:"fields"`
	Filter *DataFilter `json:"filter,omitempty" yaml:"filter,omitempty"`
	Sort   *DataSort   `json:"sort,omitempty" yaml:"sort,omitempty"`
}

// DataFilter is part of the schema but not enforced by the renderer itself.
type DataFilter struct {
	Field    DataField `json:"field" yaml:"field"`
	Operator string    `json:"operator" yaml:"operator"`
	Value    any       `json:"value" yaml:"value"`
}

// DataSort orders resolved items before rendering.
type DataSort struct {
	Field     DataField `json:"field" yaml:"field"`
	Direction string    `json:"direction" yaml:"direction"`
}

// LayoutType selects the arrangement strategy for children.
type LayoutType string

const (
	LayoutGrid   LayoutType = "grid"
	LayoutFlex   LayoutType = "flex"
	LayoutStack  LayoutType = "stack"
	LayoutSingle LayoutType = "single"
)

// GapSize is the six-step spacing ladder shared by gap and padding.
type GapSize string

const (
	GapNone GapSize = "none"
	GapXS   GapSize = "xs"
	GapSM   GapSize = "sm"
	GapMD   GapSize = "md"
	GapLG   GapSize = "lg"
	GapXL   GapSize = "xl"
)

// FlexAlign maps to cross-axis alignment.
type FlexAlign string

const (
	AlignStart    FlexAlign = "start"
	AlignCenter   FlexAlign = "center"
	AlignEnd      FlexAlign = "end"
	AlignStretch  FlexAlign = "stretch"
	AlignBaseline FlexAlign = "baseline"
)

// FlexJustify maps to main-axis alignment.
type FlexJustify string

const (
	JustifyStart   FlexJustify = "start"
	JustifyCenter  FlexJustify = "center"
	JustifyEnd     FlexJustify = "end"
	JustifyBetween FlexJustify = "between"
	JustifyAround  FlexJustify = "around"
	JustifyEvenly  FlexJustify = "evenly"
)

// GridTracks models the JSON union `number | "auto"` used by grid
// columns/rows. The zero value means "not set".
type GridTracks struct {
	Auto  bool
	Count int
}

// IsZero reports whether the value was absent from the document.
func (g GridTracks) IsZero() bool { return !g.Auto && g.Count == 0 }

// UnmarshalJSON accepts either a positive integer or the literal "auto".
func (g *GridTracks) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte(`"auto"`)) {
		*g = GridTracks{Auto: true}
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("widgetspec: grid tracks must be a number or \"auto\": %w", err)
	}
	*g = GridTracks{Count: n}
	return nil
}

// MarshalJSON keeps exported documents round-trippable.
func (g GridTracks) MarshalJSON() ([]byte, error) {
	if g.Auto {
		return []byte(`"auto"`), nil
	}
	return json.Marshal(g.Count)
}

// UnmarshalYAML mirrors the JSON union for preset pack files.
func (g *GridTracks) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil && s == "auto" {
		*g = GridTracks{Auto: true}
		return nil
	}
	var n int
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("widgetspec: grid tracks must be a number or \"auto\": %w", err)
	}
	*g = GridTracks{Count: n}
	return nil
}

// MarshalYAML mirrors MarshalJSON.
func (g GridTracks) MarshalYAML() (any, error) {
	if g.Auto {
		return "auto", nil
	}
	return g.Count, nil
}

// LayoutConfig describes how a node arranges its children.
type LayoutConfig struct {
	Type LayoutType `json:"type" yaml:"type"`
	// Grid-specific
	Columns *GridTracks `json:"columns,omitempty" yaml:"columns,omitempty"`
	Rows    *GridTracks `json:"rows,omitempty" yaml:"rows,omitempty"`
	// Flex-specific
	Direction string      `json:"direction,omitempty" yaml:"direction,omitempty"`
	Wrap      bool        `json:"wrap,omitempty" yaml:"wrap,omitempty"`
	Align     FlexAlign   `json:"align,omitempty" yaml:"align,omitempty"`
	Justify   FlexJustify `json:"justify,omitempty" yaml:"justify,omitempty"`
	// Common
	Gap     GapSize `json:"gap,omitempty" yaml:"gap,omitempty"`
	Padding GapSize `json:"padding,omitempty" yaml:"padding,omitempty"`
}

// Bindings maps a component prop name to either a recognized data field or a
// literal string. Membership in the field set decides which; there is no
// escaping syntax, so a literal equal to a field name always binds.
type Bindings map[string]string

// StyleToggle models JSON unions like `boolean | 'sm' | 'md' | 'lg'`.
// A bare `true` decodes to "default", `false` to the empty string.
type StyleToggle string

// StyleToggleOn is the decoded form of a bare JSON `true`.
const StyleToggleOn StyleToggle = "default"

// UnmarshalJSON accepts a bool or a string size label.
func (t *StyleToggle) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("true")):
		*t = StyleToggleOn
		return nil
	case bytes.Equal(data, []byte("false")):
		*t = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("widgetspec: style toggle must be a bool or string: %w", err)
	}
	*t = StyleToggle(s)
	return nil
}

// MarshalJSON emits `true` for the bare-toggle form.
func (t StyleToggle) MarshalJSON() ([]byte, error) {
	if t == StyleToggleOn {
		return []byte("true"), nil
	}
	return json.Marshal(string(t))
}

// UnmarshalYAML mirrors the JSON union for preset pack files.
func (t *StyleToggle) UnmarshalYAML(value *yaml.Node) error {
	var b bool
	if err := value.Decode(&b); err == nil {
		if b {
			*t = StyleToggleOn
		} else {
			*t = ""
		}
		return nil
	}
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("widgetspec: style toggle must be a bool or string: %w", err)
	}
	*t = StyleToggle(s)
	return nil
}

// MarshalYAML mirrors MarshalJSON.
func (t StyleToggle) MarshalYAML() (any, error) {
	if t == StyleToggleOn {
		return true, nil
	}
	return string(t), nil
}

// DisplayStyle is purely presentational and opaque to the render logic.
type DisplayStyle struct {
	Size        string      `json:"size,omitempty" yaml:"size,omitempty"`
	Width       string      `json:"width,omitempty" yaml:"width,omitempty"`
	Height      string      `json:"height,omitempty" yaml:"height,omitempty"`
	TextColor   string      `json:"textColor,omitempty" yaml:"textColor,omitempty"`
	BgColor     string      `json:"bgColor,omitempty" yaml:"bgColor,omitempty"`
	BorderColor string      `json:"borderColor,omitempty" yaml:"borderColor,omitempty"`
	FontWeight  string      `json:"fontWeight,omitempty" yaml:"fontWeight,omitempty"`
	TextAlign   string      `json:"textAlign,omitempty" yaml:"textAlign,omitempty"`
	Padding     GapSize     `json:"padding,omitempty" yaml:"padding,omitempty"`
	Margin      GapSize     `json:"margin,omitempty" yaml:"margin,omitempty"`
	Rounded     StyleToggle `json:"rounded,omitempty" yaml:"rounded,omitempty"`
	Shadow      StyleToggle `json:"shadow,omitempty" yaml:"shadow,omitempty"`
	Border      bool        `json:"border,omitempty" yaml:"border,omitempty"`
	Opacity     *float64    `json:"opacity,omitempty" yaml:"opacity,omitempty"`
}

// ConditionOperator is the closed predicate set for showIf conditions.
type ConditionOperator string

const (
	OpEq     ConditionOperator = "eq"
	OpNeq    ConditionOperator = "neq"
	OpGt     ConditionOperator = "gt"
	OpLt     ConditionOperator = "lt"
	OpGte    ConditionOperator = "gte"
	OpLte    ConditionOperator = "lte"
	OpTruthy ConditionOperator = "truthy"
	OpFalsy  ConditionOperator = "falsy"
)

// DisplayCondition gates a display node's visibility. Value is required for
// the comparison operators and absent for truthy/falsy.
type DisplayCondition struct {
	Field    DataField         `json:"field" yaml:"field"`
	Operator ConditionOperator `json:"operator" yaml:"operator"`
	Value    any               `json:"value,omitempty" yaml:"value,omitempty"`
}

// DisplayConfig is one node of the recursive render tree.
type DisplayConfig struct {
	Component ComponentType     `json:"component" yaml:"component"`
	Bindings  Bindings          `json:"bindings,omitempty" yaml:"bindings,omitempty"`
	Style     *DisplayStyle     `json:"style,omitempty" yaml:"style,omitempty"`
	ShowIf    *DisplayCondition `json:"showIf,omitempty" yaml:"showIf,omitempty"`
	// Static, non-bound values
	Content *string `json:"content,omitempty" yaml:"content,omitempty"`
	Icon    *string `json:"icon,omitempty" yaml:"icon,omitempty"`
	// Nested children, only meaningful for container-class components
	Children []DisplayConfig `json:"children,omitempty" yaml:"children,omitempty"`
	Layout   *LayoutConfig   `json:"layout,omitempty" yaml:"layout,omitempty"`
}

// WidgetMeta carries authoring metadata. Only Name is required.
type WidgetMeta struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Icon        string   `json:"icon,omitempty" yaml:"icon,omitempty"`
	Category    string   `json:"category,omitempty" yaml:"category,omitempty"`
	Author      string   `json:"author,omitempty" yaml:"author,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// WidgetSettings tunes widget-level behavior.
type WidgetSettings struct {
	RefreshInterval  int      `json:"refreshInterval,omitempty" yaml:"refreshInterval,omitempty"` // milliseconds
	ShowHeader       bool     `json:"showHeader,omitempty" yaml:"showHeader,omitempty"`
	ShowBorder       bool     `json:"showBorder,omitempty" yaml:"showBorder,omitempty"`
	DefaultTimezones []string `json:"defaultTimezones,omitempty" yaml:"defaultTimezones,omitempty"`
}

// WidgetSpec is the user-authored declarative widget document.
type WidgetSpec struct {
	Version  string          `json:"version" yaml:"version"`
	Meta     WidgetMeta      `json:"meta" yaml:"meta"`
	Data     DataConfig      `json:"data" yaml:"data"`
	Layout   LayoutConfig    `json:"layout" yaml:"layout"`
	Display  []DisplayConfig `json:"display" yaml:"display"`
	Settings *WidgetSettings `json:"settings,omitempty" yaml:"settings,omitempty"`
}

// RefreshInterval returns the configured tick interval in milliseconds,
// falling back to the 1000ms default.
func (s *WidgetSpec) RefreshInterval() int {
	if s.Settings != nil && s.Settings.RefreshInterval > 0 {
		return s.Settings.RefreshInterval
	}
	return 1000
}

// ErrorCode classifies validation failures.
type ErrorCode string

const (
	CodeInvalidType       ErrorCode = "INVALID_TYPE"
	CodeMissingRequired   ErrorCode = "MISSING_REQUIRED"
	CodeInvalidValue      ErrorCode = "INVALID_VALUE"
	CodeSecurityViolation ErrorCode = "SECURITY_VIOLATION"
)

// ValidationError locates one validation failure inside a spec document.
type ValidationError struct {
	Path    string    `json:"path"`
	Message string    `json:"message"`
	Code    ErrorCode `json:"code"`
}

// ValidationResult aggregates every error found in a document. Valid is true
// iff Errors is empty; warnings never affect Valid.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors"`
	Warnings []string          `json:"warnings,omitempty"`
}

// WorkingHours is a daily "HH:MM" open/close pair in the slot's local zone.
type WorkingHours struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// HolidayRef names an upcoming holiday on a resolved item.
type HolidayRef struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// ResolvedDataItem is the flat record of computed values for one timezone at
// one instant. It is rebuilt every tick and never mutated in place.
type ResolvedDataItem struct {
	Time             string        `json:"time"`
	Date             string        `json:"date"`
	Timezone         string        `json:"timezone"`
	Label            string        `json:"label"`
	Country          string        `json:"country"`
	Color            string        `json:"color"`
	Offset           string        `json:"offset"`
	Abbreviation     string        `json:"abbreviation"`
	WorkingHours     *WorkingHours `json:"workingHours"`
	IsWorkingTime    bool          `json:"isWorkingTime"`
	HoursUntilStart  *int          `json:"hoursUntilStart"`
	HoursUntilEnd    *int          `json:"hoursUntilEnd"`
	NextHoliday      *string       `json:"nextHoliday"`
	DaysUntilHoliday *int          `json:"daysUntilHoliday"`
	Holidays         []HolidayRef  `json:"holidays"`
}

// Field looks up a data field by name. The second return is false for names
// outside the recognized set. Nil-able fields come back as untyped nil so
// condition evaluation can treat them as absent.
func (item ResolvedDataItem) Field(name DataField) (any, bool) {
	switch name {
	case FieldTime:
		return item.Time, true
	case FieldDate:
		return item.Date, true
	case FieldTimezone:
		return item.Timezone, true
	case FieldLabel:
		return item.Label, true
	case FieldCountry:
		return item.Country, true
	case FieldColor:
		return item.Color, true
	case FieldOffset:
		return item.Offset, true
	case FieldAbbreviation:
		return item.Abbreviation, true
	case FieldWorkingHours:
		if item.WorkingHours == nil {
			return nil, true
		}
		return *item.WorkingHours, true
	case FieldIsWorkingTime:
		return item.IsWorkingTime, true
	case FieldHoursUntilStart:
		return derefInt(item.HoursUntilStart), true
	case FieldHoursUntilEnd:
		return derefInt(item.HoursUntilEnd), true
	case FieldNextHoliday:
		if item.NextHoliday == nil {
			return nil, true
		}
		return *item.NextHoliday, true
	case FieldDaysUntilHoliday:
		return derefInt(item.DaysUntilHoliday), true
	case FieldHolidays:
		return item.Holidays, true
	}
	return nil, false
}

func derefInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

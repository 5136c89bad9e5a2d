package widgetspec

import (
	"fmt"
	"strings"
)

// ComponentType tags one of the closed set of renderable primitives. The
// registry is a compile-time table; there is no runtime registration, which
// keeps the DSL's attack surface closed and validation decidable.
type ComponentType string

const (
	// Clock components
	ComponentDigitalClock ComponentType = "digital-clock"
	ComponentAnalogClock  ComponentType = "analog-clock"
	ComponentTimeLabel    ComponentType = "time-label"
	ComponentDateLabel    ComponentType = "date-label"
	// Info components
	ComponentTimezoneBadge    ComponentType = "timezone-badge"
	ComponentOffsetBadge      ComponentType = "offset-badge"
	ComponentHolidayCountdown ComponentType = "holiday-countdown"
	ComponentWorkingStatus    ComponentType = "working-status"
	// Stats components
	ComponentStatCard      ComponentType = "stat-card"
	ComponentComparisonBar ComponentType = "comparison-bar"
	// Basic components
	ComponentColorDot ComponentType = "color-dot"
	ComponentText     ComponentType = "text"
	ComponentDivider  ComponentType = "divider"
	ComponentSpacer   ComponentType = "spacer"
	// Container components
	ComponentContainer ComponentType = "container"
	ComponentCard      ComponentType = "card"
)

// Props holds the resolved prop values handed to a primitive.
type Props map[string]any

// Primitive formats resolved props into the component's textual content.
// Containers and purely visual components return the empty string.
type Primitive func(Props) string

// ComponentInfo describes one registry entry.
type ComponentInfo struct {
	Type      ComponentType
	Props     []string // ordered prop names the primitive expects via bindings
	Container bool
	Format    Primitive
}

var componentTable = map[ComponentType]ComponentInfo{
	ComponentDigitalClock: {
		Type:   ComponentDigitalClock,
		Props:  []string{"time"},
		Format: func(p Props) string { return propString(p, "time") },
	},
	ComponentAnalogClock: {
		Type:   ComponentAnalogClock,
		Props:  []string{"time"},
		Format: func(p Props) string { return propString(p, "time") },
	},
	ComponentTimeLabel: {
		Type:  ComponentTimeLabel,
		Props: []string{"time", "label"},
		Format: func(p Props) string {
			label := propString(p, "label")
			if label == "" {
				return propString(p, "time")
			}
			return label + " " + propString(p, "time")
		},
	},
	ComponentDateLabel: {
		Type:   ComponentDateLabel,
		Props:  []string{"date"},
		Format: func(p Props) string { return propString(p, "date") },
	},
	ComponentTimezoneBadge: {
		Type:   ComponentTimezoneBadge,
		Props:  []string{"abbreviation"},
		Format: func(p Props) string { return propString(p, "abbreviation") },
	},
	ComponentOffsetBadge: {
		Type:   ComponentOffsetBadge,
		Props:  []string{"offset"},
		Format: func(p Props) string { return propString(p, "offset") },
	},
	ComponentHolidayCountdown: {
		Type:   ComponentHolidayCountdown,
		Props:  []string{"nextHoliday", "daysUntilHoliday"},
		Format: formatHolidayCountdown,
	},
	ComponentWorkingStatus: {
		Type:   ComponentWorkingStatus,
		Props:  []string{"isWorkingTime", "hoursUntilStart", "hoursUntilEnd"},
		Format: formatWorkingStatus,
	},
	ComponentStatCard: {
		Type:  ComponentStatCard,
		Props: []string{"label", "value", "icon"},
		Format: func(p Props) string {
			return strings.TrimSpace(propString(p, "label") + " " + propString(p, "value"))
		},
	},
	ComponentComparisonBar: {
		Type:   ComponentComparisonBar,
		Props:  []string{"time", "workingHours", "color", "label"},
		Format: func(p Props) string { return propString(p, "label") },
	},
	ComponentColorDot: {
		Type:   ComponentColorDot,
		Props:  []string{"color"},
		Format: func(Props) string { return "" },
	},
	ComponentText: {
		Type:   ComponentText,
		Props:  []string{"content"},
		Format: func(p Props) string { return propString(p, "content") },
	},
	ComponentDivider: {
		Type:   ComponentDivider,
		Props:  []string{"orientation"},
		Format: func(Props) string { return "" },
	},
	ComponentSpacer: {
		Type:   ComponentSpacer,
		Props:  []string{},
		Format: func(Props) string { return "" },
	},
	ComponentContainer: {
		Type:      ComponentContainer,
		Props:     []string{},
		Container: true,
		Format:    func(Props) string { return "" },
	},
	ComponentCard: {
		Type:      ComponentCard,
		Props:     []string{},
		Container: true,
		Format:    func(Props) string { return "" },
	},
}

// AvailableComponentTypes lists every registered tag in a stable order.
var AvailableComponentTypes = []ComponentType{
	ComponentDigitalClock, ComponentAnalogClock, ComponentTimeLabel, ComponentDateLabel,
	ComponentTimezoneBadge, ComponentOffsetBadge, ComponentHolidayCountdown, ComponentWorkingStatus,
	ComponentStatCard, ComponentComparisonBar,
	ComponentColorDot, ComponentText, ComponentDivider, ComponentSpacer,
	ComponentContainer, ComponentCard,
}

// IsValidComponentType reports whether tag names a registered primitive.
func IsValidComponentType(tag string) bool {
	_, ok := componentTable[ComponentType(tag)]
	return ok
}

// Component returns the registry entry for tag.
func Component(tag ComponentType) (ComponentInfo, bool) {
	info, ok := componentTable[tag]
	return info, ok
}

// PropBindings returns the ordered prop names the primitive expects to
// receive via bindings. Nil for unknown tags.
func PropBindings(tag ComponentType) []string {
	info, ok := componentTable[tag]
	if !ok {
		return nil
	}
	return info.Props
}

func componentTypeNames() []string {
	names := make([]string, len(AvailableComponentTypes))
	for i, c := range AvailableComponentTypes {
		names[i] = string(c)
	}
	return names
}

func propString(p Props, name string) string {
	v, ok := p[name]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func propInt(p Props, name string) (int, bool) {
	switch v := p[name].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

func propBool(p Props, name string) bool {
	b, _ := p[name].(bool)
	return b
}

func formatWorkingStatus(p Props) string {
	if propBool(p, "isWorkingTime") {
		if left, ok := propInt(p, "hoursUntilEnd"); ok {
			return fmt.Sprintf("Working (%dh left)", left)
		}
		return "Working"
	}
	if until, ok := propInt(p, "hoursUntilStart"); ok {
		return fmt.Sprintf("Off (starts in %dh)", until)
	}
	return "Off"
}

func formatHolidayCountdown(p Props) string {
	name := propString(p, "nextHoliday")
	if name == "" {
		return ""
	}
	days, ok := propInt(p, "daysUntilHoliday")
	if !ok {
		return name
	}
	switch days {
	case 0:
		return name + " (Today)"
	case 1:
		return name + " (Tomorrow)"
	default:
		return fmt.Sprintf("%s (in %dd)", name, days)
	}
}

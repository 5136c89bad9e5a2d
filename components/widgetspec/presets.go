package widgetspec

// PresetWidget pairs a stable preset ID with a ready-to-use spec.
type PresetWidget struct {
	ID   string     `json:"id"`
	Spec WidgetSpec `json:"spec"`
}

func gridCols(n int) *GridTracks { return &GridTracks{Count: n} }
func gridAuto() *GridTracks      { return &GridTracks{Auto: true} }

// presetWidgets are the built-in widget templates. Every preset must pass
// document validation; TestPresetWidgetsAreValid enforces that.
var presetWidgets = []PresetWidget{
	{
		ID: "office-clocks",
		Spec: WidgetSpec{
			Version: SpecVersion,
			Meta: WidgetMeta{
				Name:        "Office Clocks",
				Description: "Digital clocks for selected timezones with holiday countdown",
				Icon:        "clock",
				Category:    "clocks",
				Tags:        []string{"clock", "digital", "office"},
			},
			Data: DataConfig{
				Source: SourceTimezones,
				Fields: []DataField{FieldTime, FieldLabel, FieldColor, FieldAbbreviation, FieldNextHoliday, FieldDaysUntilHoliday},
			},
			Layout: LayoutConfig{Type: LayoutGrid, Columns: gridCols(3), Gap: GapMD},
			Display: []DisplayConfig{
				{Component: ComponentColorDot, Bindings: Bindings{"color": "color"}},
				{Component: ComponentText, Bindings: Bindings{"content": "label"}, Style: &DisplayStyle{FontWeight: "medium", Size: "sm"}},
				{Component: ComponentDigitalClock, Bindings: Bindings{"time": "time"}, Style: &DisplayStyle{Size: "lg"}},
				{Component: ComponentTimezoneBadge, Bindings: Bindings{"abbreviation": "abbreviation"}},
				{Component: ComponentHolidayCountdown, Bindings: Bindings{"nextHoliday": "nextHoliday", "daysUntilHoliday": "daysUntilHoliday"}},
			},
		},
	},
	{
		ID: "compact-clocks",
		Spec: WidgetSpec{
			Version: SpecVersion,
			Meta: WidgetMeta{
				Name:        "Compact Clock List",
				Description: "Space-efficient clock display with timezone info",
				Icon:        "list",
				Category:    "clocks",
				Tags:        []string{"clock", "compact", "list"},
			},
			Data: DataConfig{
				Source: SourceTimezones,
				Fields: []DataField{FieldTime, FieldLabel, FieldColor, FieldOffset},
			},
			Layout: LayoutConfig{Type: LayoutStack, Gap: GapSM},
			Display: []DisplayConfig{
				{
					Component: ComponentContainer,
					Layout:    &LayoutConfig{Type: LayoutFlex, Direction: "row", Align: AlignCenter, Justify: JustifyBetween, Gap: GapMD},
					Children: []DisplayConfig{
						{
							Component: ComponentContainer,
							Layout:    &LayoutConfig{Type: LayoutFlex, Direction: "row", Align: AlignCenter, Gap: GapSM},
							Children: []DisplayConfig{
								{Component: ComponentColorDot, Bindings: Bindings{"color": "color"}, Style: &DisplayStyle{Size: "sm"}},
								{Component: ComponentText, Bindings: Bindings{"content": "label"}, Style: &DisplayStyle{FontWeight: "medium"}},
							},
						},
						{
							Component: ComponentContainer,
							Layout:    &LayoutConfig{Type: LayoutFlex, Direction: "row", Align: AlignCenter, Gap: GapSM},
							Children: []DisplayConfig{
								{Component: ComponentDigitalClock, Bindings: Bindings{"time": "time"}, Style: &DisplayStyle{Size: "md"}},
								{Component: ComponentOffsetBadge, Bindings: Bindings{"offset": "offset"}, Style: &DisplayStyle{Size: "xs"}},
							},
						},
					},
				},
			},
		},
	},
	{
		ID: "analog-clocks",
		Spec: WidgetSpec{
			Version: SpecVersion,
			Meta: WidgetMeta{
				Name:        "Analog Clocks",
				Description: "Classic analog clock display for multiple timezones",
				Icon:        "clock",
				Category:    "clocks",
				Tags:        []string{"clock", "analog", "classic"},
			},
			Data: DataConfig{
				Source: SourceTimezones,
				Fields: []DataField{FieldTime, FieldLabel, FieldAbbreviation},
			},
			Layout: LayoutConfig{Type: LayoutGrid, Columns: gridCols(3), Gap: GapLG},
			Display: []DisplayConfig{
				{Component: ComponentAnalogClock, Bindings: Bindings{"time": "time"}, Style: &DisplayStyle{Size: "lg"}},
				{Component: ComponentText, Bindings: Bindings{"content": "label"}, Style: &DisplayStyle{FontWeight: "medium", TextAlign: "center", Size: "sm"}},
				{Component: ComponentTimezoneBadge, Bindings: Bindings{"abbreviation": "abbreviation"}, Style: &DisplayStyle{Size: "xs"}},
			},
		},
	},
	{
		ID: "working-status",
		Spec: WidgetSpec{
			Version: SpecVersion,
			Meta: WidgetMeta{
				Name:        "Working Status",
				Description: "See who is currently working and their status",
				Icon:        "users",
				Category:    "stats",
				Tags:        []string{"status", "working", "team"},
			},
			Data: DataConfig{
				Source: SourceTimezones,
				Fields: []DataField{FieldTime, FieldLabel, FieldColor, FieldIsWorkingTime, FieldHoursUntilStart, FieldHoursUntilEnd},
			},
			Layout: LayoutConfig{Type: LayoutGrid, Columns: gridCols(2), Gap: GapMD},
			Display: []DisplayConfig{
				{
					Component: ComponentContainer,
					Layout:    &LayoutConfig{Type: LayoutFlex, Direction: "row", Align: AlignCenter, Justify: JustifyBetween, Gap: GapSM},
					Style:     &DisplayStyle{Padding: GapSM},
					Children: []DisplayConfig{
						{
							Component: ComponentContainer,
							Layout:    &LayoutConfig{Type: LayoutFlex, Direction: "row", Align: AlignCenter, Gap: GapSM},
							Children: []DisplayConfig{
								{Component: ComponentColorDot, Bindings: Bindings{"color": "color"}},
								{Component: ComponentText, Bindings: Bindings{"content": "label"}, Style: &DisplayStyle{FontWeight: "medium"}},
							},
						},
						{
							Component: ComponentWorkingStatus,
							Bindings: Bindings{
								"isWorkingTime":   "isWorkingTime",
								"hoursUntilStart": "hoursUntilStart",
								"hoursUntilEnd":   "hoursUntilEnd",
							},
						},
					},
				},
			},
		},
	},
	{
		ID: "holiday-countdown",
		Spec: WidgetSpec{
			Version: SpecVersion,
			Meta: WidgetMeta{
				Name:        "Holiday Countdown",
				Description: "Track upcoming holidays for each timezone",
				Icon:        "calendar",
				Category:    "holidays",
				Tags:        []string{"holiday", "countdown", "calendar"},
			},
			Data: DataConfig{
				Source: SourceTimezones,
				Fields: []DataField{FieldLabel, FieldColor, FieldCountry, FieldNextHoliday, FieldDaysUntilHoliday},
			},
			Layout: LayoutConfig{Type: LayoutStack, Gap: GapMD},
			Display: []DisplayConfig{
				{
					Component: ComponentCard,
					Style:     &DisplayStyle{Padding: GapMD},
					Layout:    &LayoutConfig{Type: LayoutStack, Gap: GapSM},
					Children: []DisplayConfig{
						{
							Component: ComponentContainer,
							Layout:    &LayoutConfig{Type: LayoutFlex, Direction: "row", Align: AlignCenter, Gap: GapSM},
							Children: []DisplayConfig{
								{Component: ComponentColorDot, Bindings: Bindings{"color": "color"}},
								{Component: ComponentText, Bindings: Bindings{"content": "label"}, Style: &DisplayStyle{FontWeight: "semibold"}},
							},
						},
						{
							Component: ComponentHolidayCountdown,
							Bindings:  Bindings{"nextHoliday": "nextHoliday", "daysUntilHoliday": "daysUntilHoliday"},
							Style:     &DisplayStyle{Size: "md"},
						},
					},
				},
			},
		},
	},
	{
		ID: "time-comparison",
		Spec: WidgetSpec{
			Version: SpecVersion,
			Meta: WidgetMeta{
				Name:        "Time Comparison",
				Description: "24-hour timeline bars for comparing time across zones",
				Icon:        "chart",
				Category:    "timelines",
				Tags:        []string{"timeline", "comparison", "bar"},
			},
			Data: DataConfig{
				Source: SourceTimezones,
				Fields: []DataField{FieldTime, FieldLabel, FieldColor, FieldWorkingHours},
			},
			Layout: LayoutConfig{Type: LayoutStack, Gap: GapLG, Padding: GapMD},
			Display: []DisplayConfig{
				{
					Component: ComponentComparisonBar,
					Bindings: Bindings{
						"time":         "time",
						"label":        "label",
						"color":        "color",
						"workingHours": "workingHours",
					},
					Style: &DisplayStyle{Size: "md"},
				},
			},
		},
	},
	{
		ID: "minimal-clock",
		Spec: WidgetSpec{
			Version: SpecVersion,
			Meta: WidgetMeta{
				Name:        "Minimal Clocks",
				Description: "Clean, minimalist time display",
				Icon:        "clock",
				Category:    "clocks",
				Tags:        []string{"minimal", "clean", "simple"},
			},
			Data: DataConfig{
				Source: SourceTimezones,
				Fields: []DataField{FieldTime, FieldLabel},
			},
			Layout: LayoutConfig{Type: LayoutGrid, Columns: gridAuto(), Gap: GapLG},
			Display: []DisplayConfig{
				{Component: ComponentDigitalClock, Bindings: Bindings{"time": "time"}, Style: &DisplayStyle{Size: "2xl", FontWeight: "semibold"}},
				{Component: ComponentText, Bindings: Bindings{"content": "label"}, Style: &DisplayStyle{Size: "sm", TextAlign: "center"}},
			},
		},
	},
}

// PresetWidgets returns all built-in presets in registration order.
func PresetWidgets() []PresetWidget {
	out := make([]PresetWidget, len(presetWidgets))
	copy(out, presetWidgets)
	return out
}

// Preset returns the preset spec registered under id.
func Preset(id string) (WidgetSpec, bool) {
	for _, preset := range presetWidgets {
		if preset.ID == id {
			return preset.Spec, true
		}
	}
	return WidgetSpec{}, false
}

// PresetsByCategory filters presets by their meta category.
func PresetsByCategory(category string) []PresetWidget {
	var out []PresetWidget
	for _, preset := range presetWidgets {
		if preset.Spec.Meta.Category == category {
			out = append(out, preset)
		}
	}
	return out
}

package widgetspec

import "strings"

// ValidDataFields lists every recognized data field, in the order used by
// validator messages and documentation.
var ValidDataFields = []DataField{
	FieldTime, FieldDate, FieldTimezone, FieldLabel, FieldCountry, FieldColor,
	FieldOffset, FieldAbbreviation, FieldWorkingHours, FieldIsWorkingTime,
	FieldHoursUntilStart, FieldHoursUntilEnd, FieldNextHoliday,
	FieldDaysUntilHoliday, FieldHolidays,
}

// ValidDataSources lists the closed data source enum.
var ValidDataSources = []DataSource{SourceTimezones, SourceHolidays}

// ValidLayoutTypes lists the closed layout enum.
var ValidLayoutTypes = []LayoutType{LayoutGrid, LayoutFlex, LayoutStack, LayoutSingle}

// ValidGapSizes lists the spacing ladder.
var ValidGapSizes = []GapSize{GapNone, GapXS, GapSM, GapMD, GapLG, GapXL}

var dataFieldSet = func() map[DataField]struct{} {
	set := make(map[DataField]struct{}, len(ValidDataFields))
	for _, f := range ValidDataFields {
		set[f] = struct{}{}
	}
	return set
}()

// IsValidDataField reports whether name is one of the 15 recognized fields.
func IsValidDataField(name string) bool {
	_, ok := dataFieldSet[DataField(name)]
	return ok
}

// closestField returns a recognized field matching name case-insensitively.
// Used for the validator's did-you-mean suggestion; best effort only.
func closestField(name string) (DataField, bool) {
	for _, f := range ValidDataFields {
		if strings.EqualFold(string(f), name) {
			return f, true
		}
	}
	return "", false
}

func fieldNames() []string {
	names := make([]string, len(ValidDataFields))
	for i, f := range ValidDataFields {
		names[i] = string(f)
	}
	return names
}

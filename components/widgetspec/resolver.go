package widgetspec

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Slot describes one configured timezone as supplied by the timezone
// provider collaborator. The core never mutates slots.
type Slot struct {
	ID           string        `json:"id" yaml:"id"`
	Timezone     string        `json:"timezone" yaml:"timezone"` // IANA name
	Label        string        `json:"label" yaml:"label"`
	Country      string        `json:"country,omitempty" yaml:"country,omitempty"` // ISO code
	Color        string        `json:"color,omitempty" yaml:"color,omitempty"`
	WorkingHours *WorkingHours `json:"workingHours,omitempty" yaml:"workingHours,omitempty"`
}

// TimeFormat selects 12- or 24-hour clock rendering.
type TimeFormat string

const (
	TimeFormat12h TimeFormat = "12h"
	TimeFormat24h TimeFormat = "24h"
)

// FormatPrefs carries the viewer's display preferences.
type FormatPrefs struct {
	TimeFormat  TimeFormat
	ShowSeconds bool
}

// UpcomingHoliday is the holiday provider's answer for one country.
type UpcomingHoliday struct {
	Name      string
	DaysUntil int
}

// HolidayLookup is the holiday provider collaborator. Implementations serve
// from cache and never block; a miss returns nil and refreshes out of band.
type HolidayLookup interface {
	NextHoliday(countryCode string) *UpcomingHoliday
}

// DefaultSlotColor is used when a slot specifies no color.
const DefaultSlotColor = "#3B82F6"

// DataResolver converts timezone slots plus the current instant into
// resolved data items. Resolve is a pure function of its inputs given a
// fixed now.
type DataResolver struct {
	Holidays HolidayLookup
}

// Resolve builds the flat named-field record for one slot at one instant.
func (r DataResolver) Resolve(slot Slot, now time.Time, prefs FormatPrefs) ResolvedDataItem {
	loc, err := time.LoadLocation(slot.Timezone)
	if err != nil {
		loc = time.UTC
	}
	local := now.In(loc)

	item := ResolvedDataItem{
		Time:         local.Format(timeLayout(prefs)),
		Date:         local.Format("Mon, Jan 2"),
		Timezone:     slot.Timezone,
		Label:        slot.Label,
		Country:      slot.Country,
		Color:        slot.Color,
		Offset:       formatOffset(local),
		Abbreviation: zoneAbbreviation(local),
		WorkingHours: slot.WorkingHours,
		Holidays:     []HolidayRef{},
	}
	if item.Color == "" {
		item.Color = DefaultSlotColor
	}

	r.resolveWorkingStatus(&item, local, slot.WorkingHours)

	if slot.Country != "" && r.Holidays != nil {
		if next := r.Holidays.NextHoliday(slot.Country); next != nil {
			name := next.Name
			days := next.DaysUntil
			item.NextHoliday = &name
			item.DaysUntilHoliday = &days
		}
	}
	return item
}

// resolveWorkingStatus compares minutes-since-midnight against the slot's
// working hours. The interval is half-open: start inclusive, end exclusive.
// Overnight spans (start > end) report not-working; see DESIGN.md.
func (DataResolver) resolveWorkingStatus(item *ResolvedDataItem, local time.Time, hours *WorkingHours) {
	if hours == nil {
		return
	}
	startMinutes, ok := clockMinutes(hours.Start)
	if !ok {
		return
	}
	endMinutes, ok := clockMinutes(hours.End)
	if !ok {
		return
	}
	currentMinutes := local.Hour()*60 + local.Minute()

	item.IsWorkingTime = currentMinutes >= startMinutes && currentMinutes < endMinutes

	if !item.IsWorkingTime && currentMinutes < startMinutes {
		until := ceilHours(startMinutes - currentMinutes)
		item.HoursUntilStart = &until
	}
	if item.IsWorkingTime {
		left := ceilHours(endMinutes - currentMinutes)
		item.HoursUntilEnd = &left
	}
}

// timeLayout picks from the fixed 4-way table keyed by format x seconds.
func timeLayout(prefs FormatPrefs) string {
	if prefs.TimeFormat == TimeFormat12h {
		if prefs.ShowSeconds {
			return "03:04:05 PM"
		}
		return "03:04 PM"
	}
	if prefs.ShowSeconds {
		return "15:04:05"
	}
	return "15:04"
}

// formatOffset renders a UTC offset like "UTC+5:30" or "UTC-8".
func formatOffset(local time.Time) string {
	_, offsetSeconds := local.Zone()
	offsetMinutes := offsetSeconds / 60
	sign := "+"
	if offsetMinutes < 0 {
		sign = "-"
		offsetMinutes = -offsetMinutes
	}
	hours := offsetMinutes / 60
	minutes := offsetMinutes % 60
	if minutes > 0 {
		return fmt.Sprintf("UTC%s%d:%02d", sign, hours, minutes)
	}
	return fmt.Sprintf("UTC%s%d", sign, hours)
}

// zoneAbbreviation returns the short zone name (EST, JST) and falls back to
// the numeric offset when the platform only reports one.
func zoneAbbreviation(local time.Time) string {
	name, _ := local.Zone()
	if name == "" || strings.HasPrefix(name, "+") || strings.HasPrefix(name, "-") {
		return formatOffset(local)
	}
	return name
}

// clockMinutes parses "HH:MM" into minutes since midnight.
func clockMinutes(clock string) (int, bool) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return hour*60 + minute, true
}

func ceilHours(minutes int) int {
	return (minutes + 59) / 60
}

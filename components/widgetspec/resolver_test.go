package widgetspec

import (
	"testing"
	"time"
)

type stubHolidays struct {
	next  *UpcomingHoliday
	calls []string
}

func (s *stubHolidays) NextHoliday(countryCode string) *UpcomingHoliday {
	s.calls = append(s.calls, countryCode)
	return s.next
}

func utcInstant(hour, minute int) time.Time {
	return time.Date(2026, time.January, 5, hour, minute, 0, 0, time.UTC)
}

func TestResolveTimeLayouts(t *testing.T) {
	resolver := DataResolver{}
	slot := Slot{ID: "s1", Timezone: "UTC", Label: "UTC"}
	now := time.Date(2026, time.January, 5, 14, 5, 7, 0, time.UTC)

	cases := []struct {
		prefs FormatPrefs
		want  string
	}{
		{FormatPrefs{TimeFormat: TimeFormat24h}, "14:05"},
		{FormatPrefs{TimeFormat: TimeFormat24h, ShowSeconds: true}, "14:05:07"},
		{FormatPrefs{TimeFormat: TimeFormat12h}, "02:05 PM"},
		{FormatPrefs{TimeFormat: TimeFormat12h, ShowSeconds: true}, "02:05:07 PM"},
	}
	for _, tc := range cases {
		item := resolver.Resolve(slot, now, tc.prefs)
		if item.Time != tc.want {
			t.Fatalf("prefs %+v: got %q, want %q", tc.prefs, item.Time, tc.want)
		}
	}

	item := resolver.Resolve(slot, now, FormatPrefs{TimeFormat: TimeFormat24h})
	if item.Date != "Mon, Jan 5" {
		t.Fatalf("unexpected date %q", item.Date)
	}
}

func TestResolveOffsetAndAbbreviation(t *testing.T) {
	resolver := DataResolver{}
	now := utcInstant(12, 0)

	kolkata := resolver.Resolve(Slot{Timezone: "Asia/Kolkata"}, now, FormatPrefs{})
	if kolkata.Offset != "UTC+5:30" {
		t.Fatalf("expected UTC+5:30, got %q", kolkata.Offset)
	}

	la := resolver.Resolve(Slot{Timezone: "America/Los_Angeles"}, now, FormatPrefs{})
	if la.Offset != "UTC-8" {
		t.Fatalf("expected UTC-8 in January, got %q", la.Offset)
	}
	if la.Abbreviation != "PST" {
		t.Fatalf("expected PST, got %q", la.Abbreviation)
	}

	tokyo := resolver.Resolve(Slot{Timezone: "Asia/Tokyo"}, now, FormatPrefs{})
	if tokyo.Offset != "UTC+9" {
		t.Fatalf("expected UTC+9, got %q", tokyo.Offset)
	}
}

func TestResolveUnknownTimezoneFallsBackToUTC(t *testing.T) {
	resolver := DataResolver{}
	item := resolver.Resolve(Slot{Timezone: "Mars/Olympus_Mons"}, utcInstant(8, 0), FormatPrefs{TimeFormat: TimeFormat24h})
	if item.Time != "08:00" {
		t.Fatalf("expected UTC fallback, got %q", item.Time)
	}
	if item.Offset != "UTC+0" {
		t.Fatalf("expected UTC+0, got %q", item.Offset)
	}
}

func TestResolveDefaultColor(t *testing.T) {
	resolver := DataResolver{}
	plain := resolver.Resolve(Slot{Timezone: "UTC"}, utcInstant(8, 0), FormatPrefs{})
	if plain.Color != DefaultSlotColor {
		t.Fatalf("expected default color, got %q", plain.Color)
	}
	colored := resolver.Resolve(Slot{Timezone: "UTC", Color: "#10B981"}, utcInstant(8, 0), FormatPrefs{})
	if colored.Color != "#10B981" {
		t.Fatalf("expected slot color preserved, got %q", colored.Color)
	}
}

func TestResolveWorkingStatus(t *testing.T) {
	resolver := DataResolver{}
	hours := &WorkingHours{Start: "09:00", End: "17:00"}
	slot := Slot{Timezone: "UTC", WorkingHours: hours}

	// Start boundary is inclusive.
	atStart := resolver.Resolve(slot, utcInstant(9, 0), FormatPrefs{})
	if !atStart.IsWorkingTime {
		t.Fatal("09:00 must be inside working hours")
	}
	if atStart.HoursUntilEnd == nil || *atStart.HoursUntilEnd != 8 {
		t.Fatalf("expected 8h left at start, got %v", atStart.HoursUntilEnd)
	}
	if atStart.HoursUntilStart != nil {
		t.Fatalf("expected no hoursUntilStart while working, got %v", atStart.HoursUntilStart)
	}

	// End boundary is exclusive.
	atEnd := resolver.Resolve(slot, utcInstant(17, 0), FormatPrefs{})
	if atEnd.IsWorkingTime {
		t.Fatal("17:00 must be outside working hours")
	}
	if atEnd.HoursUntilStart != nil {
		t.Fatalf("after end, hoursUntilStart stays unset, got %v", atEnd.HoursUntilStart)
	}

	// Partial hours round up.
	early := resolver.Resolve(slot, utcInstant(6, 30), FormatPrefs{})
	if early.IsWorkingTime {
		t.Fatal("06:30 must be outside working hours")
	}
	if early.HoursUntilStart == nil || *early.HoursUntilStart != 3 {
		t.Fatalf("expected 3h until start, got %v", early.HoursUntilStart)
	}

	midday := resolver.Resolve(slot, utcInstant(14, 30), FormatPrefs{})
	if midday.HoursUntilEnd == nil || *midday.HoursUntilEnd != 3 {
		t.Fatalf("expected ceil(2.5h)=3h left, got %v", midday.HoursUntilEnd)
	}
}

func TestResolveWorkingStatusEdgeCases(t *testing.T) {
	resolver := DataResolver{}

	// No working hours configured.
	none := resolver.Resolve(Slot{Timezone: "UTC"}, utcInstant(12, 0), FormatPrefs{})
	if none.IsWorkingTime || none.HoursUntilStart != nil || none.HoursUntilEnd != nil {
		t.Fatalf("unexpected status without working hours: %+v", none)
	}

	// Overnight spans report not-working.
	overnight := resolver.Resolve(Slot{
		Timezone:     "UTC",
		WorkingHours: &WorkingHours{Start: "22:00", End: "06:00"},
	}, utcInstant(23, 0), FormatPrefs{})
	if overnight.IsWorkingTime {
		t.Fatal("overnight span must report not-working")
	}

	// Malformed clock strings are ignored.
	malformed := resolver.Resolve(Slot{
		Timezone:     "UTC",
		WorkingHours: &WorkingHours{Start: "nine", End: "17:00"},
	}, utcInstant(12, 0), FormatPrefs{})
	if malformed.IsWorkingTime {
		t.Fatal("malformed working hours must be ignored")
	}
}

func TestResolveHolidayLookup(t *testing.T) {
	lookup := &stubHolidays{next: &UpcomingHoliday{Name: "Golden Week", DaysUntil: 12}}
	resolver := DataResolver{Holidays: lookup}

	item := resolver.Resolve(Slot{Timezone: "Asia/Tokyo", Country: "JP"}, utcInstant(8, 0), FormatPrefs{})
	if item.NextHoliday == nil || *item.NextHoliday != "Golden Week" {
		t.Fatalf("expected holiday name, got %v", item.NextHoliday)
	}
	if item.DaysUntilHoliday == nil || *item.DaysUntilHoliday != 12 {
		t.Fatalf("expected 12 days, got %v", item.DaysUntilHoliday)
	}
	if len(lookup.calls) != 1 || lookup.calls[0] != "JP" {
		t.Fatalf("unexpected lookup calls: %v", lookup.calls)
	}

	// No country means no lookup.
	lookup.calls = nil
	noCountry := resolver.Resolve(Slot{Timezone: "UTC"}, utcInstant(8, 0), FormatPrefs{})
	if noCountry.NextHoliday != nil || len(lookup.calls) != 0 {
		t.Fatalf("expected no holiday lookup without country, calls %v", lookup.calls)
	}
}

func TestResolveHolidayMissKeepsFieldsNil(t *testing.T) {
	lookup := &stubHolidays{}
	resolver := DataResolver{Holidays: lookup}
	item := resolver.Resolve(Slot{Timezone: "UTC", Country: "US"}, utcInstant(8, 0), FormatPrefs{})
	if item.NextHoliday != nil || item.DaysUntilHoliday != nil {
		t.Fatalf("cache miss must leave holiday fields nil, got %+v", item)
	}
}

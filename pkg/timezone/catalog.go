package timezone

import (
	widgetspec "github.com/goliatone/go-timedash/components/widgetspec"
)

// CatalogEntry describes one well-known timezone users can add as a slot.
type CatalogEntry struct {
	Timezone string `json:"timezone"`
	Label    string `json:"label"`
	Country  string `json:"country"`
	Color    string `json:"color"`
}

// catalog covers the common office locations. Users can still add any IANA
// zone by hand; these are just the quick picks.
var catalog = []CatalogEntry{
	{Timezone: "America/Los_Angeles", Label: "San Francisco", Country: "US", Color: "#3B82F6"},
	{Timezone: "America/New_York", Label: "New York", Country: "US", Color: "#8B5CF6"},
	{Timezone: "America/Sao_Paulo", Label: "São Paulo", Country: "BR", Color: "#10B981"},
	{Timezone: "Europe/London", Label: "London", Country: "GB", Color: "#F59E0B"},
	{Timezone: "Europe/Berlin", Label: "Berlin", Country: "DE", Color: "#EF4444"},
	{Timezone: "Europe/Madrid", Label: "Madrid", Country: "ES", Color: "#EC4899"},
	{Timezone: "Asia/Kolkata", Label: "Bengaluru", Country: "IN", Color: "#14B8A6"},
	{Timezone: "Asia/Singapore", Label: "Singapore", Country: "SG", Color: "#F97316"},
	{Timezone: "Asia/Tokyo", Label: "Tokyo", Country: "JP", Color: "#6366F1"},
	{Timezone: "Australia/Sydney", Label: "Sydney", Country: "AU", Color: "#84CC16"},
}

// Catalog returns the quick-pick timezone entries.
func Catalog() []CatalogEntry {
	out := make([]CatalogEntry, len(catalog))
	copy(out, catalog)
	return out
}

// DefaultWorkingHours is the nine-to-five span applied to new slots.
var DefaultWorkingHours = widgetspec.WorkingHours{Start: "09:00", End: "17:00"}

// SlotFromCatalog builds a slot from a catalog entry with default working
// hours. Returns false when the timezone is not in the catalog.
func SlotFromCatalog(tz string) (widgetspec.Slot, bool) {
	for _, entry := range catalog {
		if entry.Timezone == tz {
			hours := DefaultWorkingHours
			return widgetspec.Slot{
				Timezone:     entry.Timezone,
				Label:        entry.Label,
				Country:      entry.Country,
				Color:        entry.Color,
				WorkingHours: &hours,
			}, true
		}
	}
	return widgetspec.Slot{}, false
}

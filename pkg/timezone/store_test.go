package timezone

import (
	"errors"
	"testing"

	widgetspec "github.com/goliatone/go-timedash/components/widgetspec"
)

func TestSlotStoreAddDefaults(t *testing.T) {
	store := NewSlotStore()
	slot, err := store.Add(widgetspec.Slot{Timezone: "Europe/Berlin"})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if slot.ID == "" {
		t.Fatal("expected generated ID")
	}
	if slot.Label != "Europe/Berlin" {
		t.Fatalf("label must default to the timezone, got %q", slot.Label)
	}
	if slot.Color != widgetspec.DefaultSlotColor {
		t.Fatalf("color must default, got %q", slot.Color)
	}
}

func TestSlotStoreAddRejectsUnknownTimezone(t *testing.T) {
	store := NewSlotStore()
	if _, err := store.Add(widgetspec.Slot{Timezone: "Mars/Olympus_Mons"}); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
	if len(store.List()) != 0 {
		t.Fatal("rejected slot must not be stored")
	}
}

func TestSlotStoreRemoveAndUpdate(t *testing.T) {
	store := NewSlotStore()
	slot, _ := store.Add(widgetspec.Slot{Timezone: "Asia/Tokyo"})

	slot.Label = "HQ Tokyo"
	if err := store.Update(slot); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if store.List()[0].Label != "HQ Tokyo" {
		t.Fatal("update not applied")
	}

	slot.Timezone = "Not/A_Zone"
	if err := store.Update(slot); err == nil {
		t.Fatal("expected error for unknown timezone on update")
	}

	if err := store.Remove(slot.ID); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if err := store.Remove(slot.ID); !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("expected ErrSlotNotFound, got %v", err)
	}
	if err := store.Update(widgetspec.Slot{ID: "missing", Timezone: "UTC"}); !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("expected ErrSlotNotFound, got %v", err)
	}
}

func TestSlotStoreReorder(t *testing.T) {
	store := NewSlotStore()
	a, _ := store.Add(widgetspec.Slot{ID: "a", Timezone: "UTC"})
	b, _ := store.Add(widgetspec.Slot{ID: "b", Timezone: "Asia/Tokyo"})
	c, _ := store.Add(widgetspec.Slot{ID: "c", Timezone: "Europe/London"})

	store.Reorder([]string{c.ID, a.ID, "unknown"})
	order := store.List()
	if order[0].ID != c.ID || order[1].ID != a.ID || order[2].ID != b.ID {
		t.Fatalf("unexpected order: %s %s %s", order[0].ID, order[1].ID, order[2].ID)
	}
}

func TestSlotStoreListReturnsCopy(t *testing.T) {
	store := NewSlotStore()
	store.Add(widgetspec.Slot{ID: "a", Timezone: "UTC", Label: "UTC"})
	list := store.List()
	list[0].Label = "mutated"
	if store.List()[0].Label == "mutated" {
		t.Fatal("List must return a copy")
	}
}

func TestSlotFromCatalog(t *testing.T) {
	slot, ok := SlotFromCatalog("Asia/Tokyo")
	if !ok {
		t.Fatal("expected catalog hit")
	}
	if slot.Label != "Tokyo" || slot.Country != "JP" {
		t.Fatalf("unexpected slot: %+v", slot)
	}
	if slot.WorkingHours == nil || slot.WorkingHours.Start != "09:00" || slot.WorkingHours.End != "17:00" {
		t.Fatalf("expected default working hours, got %+v", slot.WorkingHours)
	}

	if _, ok := SlotFromCatalog("Antarctica/Troll"); ok {
		t.Fatal("expected miss for zone outside the catalog")
	}
}

func TestCatalogEntriesResolve(t *testing.T) {
	entries := Catalog()
	if len(entries) != 10 {
		t.Fatalf("expected 10 catalog entries, got %d", len(entries))
	}
	for _, entry := range entries {
		slot, ok := SlotFromCatalog(entry.Timezone)
		if !ok {
			t.Fatalf("catalog entry %q must resolve", entry.Timezone)
		}
		if slot.Color == "" {
			t.Fatalf("catalog entry %q must carry a color", entry.Timezone)
		}
	}
}

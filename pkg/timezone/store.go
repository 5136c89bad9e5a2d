package timezone

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	widgetspec "github.com/goliatone/go-timedash/components/widgetspec"
)

// ErrSlotNotFound is returned for lookups of unknown slot IDs.
var ErrSlotNotFound = fmt.Errorf("timezone: slot not found")

// SlotStore keeps the viewer's configured timezone slots in display order.
type SlotStore struct {
	mu    sync.RWMutex
	slots []widgetspec.Slot
}

// NewSlotStore creates an empty slot store.
func NewSlotStore() *SlotStore {
	return &SlotStore{}
}

// Add validates the timezone name and appends a slot. Missing labels default
// to the timezone name, missing colors to the shared default.
func (s *SlotStore) Add(slot widgetspec.Slot) (widgetspec.Slot, error) {
	if _, err := time.LoadLocation(slot.Timezone); err != nil {
		return widgetspec.Slot{}, fmt.Errorf("timezone: unknown timezone %q: %w", slot.Timezone, err)
	}
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	if slot.Label == "" {
		slot.Label = slot.Timezone
	}
	if slot.Color == "" {
		slot.Color = widgetspec.DefaultSlotColor
	}
	s.mu.Lock()
	s.slots = append(s.slots, slot)
	s.mu.Unlock()
	return slot, nil
}

// Remove deletes a slot by ID, preserving the order of the rest.
func (s *SlotStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, slot := range s.slots {
		if slot.ID == id {
			s.slots = append(s.slots[:i], s.slots[i+1:]...)
			return nil
		}
	}
	return ErrSlotNotFound
}

// Update replaces a slot in place.
func (s *SlotStore) Update(slot widgetspec.Slot) error {
	if _, err := time.LoadLocation(slot.Timezone); err != nil {
		return fmt.Errorf("timezone: unknown timezone %q: %w", slot.Timezone, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.slots {
		if existing.ID == slot.ID {
			s.slots[i] = slot
			return nil
		}
	}
	return ErrSlotNotFound
}

// Reorder rearranges slots to match the given ID order. IDs not present are
// ignored; slots not named keep their relative order at the end.
func (s *SlotStore) Reorder(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index := make(map[string]widgetspec.Slot, len(s.slots))
	for _, slot := range s.slots {
		index[slot.ID] = slot
	}
	reordered := make([]widgetspec.Slot, 0, len(s.slots))
	taken := make(map[string]bool, len(ids))
	for _, id := range ids {
		if slot, ok := index[id]; ok {
			reordered = append(reordered, slot)
			taken[id] = true
		}
	}
	for _, slot := range s.slots {
		if !taken[slot.ID] {
			reordered = append(reordered, slot)
		}
	}
	s.slots = reordered
}

// List returns a copy of the slots in display order.
func (s *SlotStore) List() []widgetspec.Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]widgetspec.Slot, len(s.slots))
	copy(out, s.slots)
	return out
}

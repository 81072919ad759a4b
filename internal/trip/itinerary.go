package trip

import (
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The ordering engine maintains the (day, order) composite key for
// itinerary items. Dense per-day ordering is only guaranteed immediately
// after a reorder or a renumbering day-delete; between those operations
// order values may be non-dense or collide across days, so every consumer
// sorts by (day, order) instead of assuming density.

// SortItinerary sorts items by (day, order) in place. The sort is stable
// so items with equal keys keep their relative positions.
func SortItinerary(items []ItineraryItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Day != items[j].Day {
			return items[i].Day < items[j].Day
		}
		return items[i].Order < items[j].Order
	})
}

// NextAppendOrder returns the order value for a newly appended item:
// the current total item count across the whole trip, not the count
// within the target day. New items therefore always sort last within
// their day, but per-day order values stop being dense after heavy
// editing until an explicit reorder. This mirrors the behavior clients
// already depend on; see DESIGN.md.
func NextAppendOrder(t *Trip) int {
	return len(t.Itinerary)
}

// ReorderDay assigns dense 0-based order values to the items of one day
// following the supplied id permutation. Ids in the permutation that do
// not match an item of that day are skipped; items of the day missing
// from the permutation keep their order. The slice is re-sorted by
// (day, order) before returning.
func ReorderDay(items []ItineraryItem, day int, orderedIDs []primitive.ObjectID) ([]ItineraryItem, error) {
	if day <= 0 {
		return nil, ErrInvalidArgument
	}
	if len(orderedIDs) == 0 {
		return nil, ErrInvalidArgument
	}

	byID := make(map[primitive.ObjectID]int, len(items))
	for i, it := range items {
		byID[it.ID] = i
	}

	next := 0
	for _, id := range orderedIDs {
		idx, ok := byID[id]
		if !ok || items[idx].Day != day {
			continue
		}
		items[idx].Order = next
		next++
	}

	SortItinerary(items)
	return items, nil
}

// DuplicateDay copies every item of fromDay into toDay. Copies keep their
// source order relative to each other, get fresh ids, and reset status to
// planned. Their order values continue from the highest existing order of
// the destination day.
func DuplicateDay(items []ItineraryItem, fromDay, toDay int) ([]ItineraryItem, []ItineraryItem, error) {
	if fromDay <= 0 || toDay <= 0 {
		return nil, nil, ErrInvalidArgument
	}

	var source []ItineraryItem
	maxOrder := -1
	for _, it := range items {
		if it.Day == fromDay {
			source = append(source, it)
		}
		if it.Day == toDay && it.Order > maxOrder {
			maxOrder = it.Order
		}
	}
	if len(source) == 0 {
		return nil, nil, ErrInvalidArgument
	}

	sort.SliceStable(source, func(i, j int) bool { return source[i].Order < source[j].Order })

	copies := make([]ItineraryItem, 0, len(source))
	for i, it := range source {
		dup := it
		dup.ID = primitive.NewObjectID()
		dup.Day = toDay
		dup.Order = maxOrder + 1 + i
		dup.Status = StatusPlanned
		copies = append(copies, dup)
	}

	out := append(append([]ItineraryItem{}, items...), copies...)
	SortItinerary(out)
	return out, copies, nil
}

// DeleteDay removes every item of the given day. With renumber set,
// later days shift down by one and each surviving day is reassigned
// dense 0-based order values following its existing order. Without
// renumber, later days keep their numbers and a gap remains.
func DeleteDay(items []ItineraryItem, day int, renumber bool) ([]ItineraryItem, int, error) {
	if day <= 0 {
		return nil, 0, ErrInvalidArgument
	}

	out := make([]ItineraryItem, 0, len(items))
	removed := 0
	for _, it := range items {
		if it.Day == day {
			removed++
			continue
		}
		if renumber && it.Day > day {
			it.Day--
		}
		out = append(out, it)
	}

	if renumber {
		SortItinerary(out)
		counts := make(map[int]int)
		for i := range out {
			out[i].Order = counts[out[i].Day]
			counts[out[i].Day]++
		}
	}

	SortItinerary(out)
	return out, removed, nil
}

// FindItem returns the index of the item with the given id, or -1
func FindItem(items []ItineraryItem, id primitive.ObjectID) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

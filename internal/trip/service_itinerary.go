package trip

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AddItem appends an itinerary item. The order value is the current
// total item count of the trip (see NextAppendOrder).
func (s *Service) AddItem(ctx context.Context, actorID int64, id, origin string, req *AddItemRequest) (*ItineraryItem, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanEditContent(t, actorID) {
		return nil, ErrPermissionDenied
	}

	day := req.Day
	if day == 0 {
		day = 1
	}
	if day < 0 {
		return nil, ErrInvalidArgument
	}

	item := ItineraryItem{
		ID:        primitive.NewObjectID(),
		Title:     req.Title,
		Location:  req.Location,
		Day:       day,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Notes:     req.Notes,
		Status:    StatusPlanned,
		Order:     NextAppendOrder(t),
		Lat:       req.Lat,
		Lng:       req.Lng,
		Cost:      req.Cost,
	}

	updated, err := s.store.PushElement(ctx, t.ID, "itinerary", item)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrTripNotFound
	}

	s.events.Publish(id, EventItemAdded, map[string]interface{}{
		"trip_id":    id,
		"item":       item,
		"updated_by": actorID,
	}, origin)

	return &item, nil
}

// UpdateItem patches a single item's fields by id. Setting Day or Order
// directly is allowed and does not renumber any other item.
func (s *Service) UpdateItem(ctx context.Context, actorID int64, id, itemID, origin string, req *UpdateItemRequest) (*ItineraryItem, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanEditContent(t, actorID) {
		return nil, ErrPermissionDenied
	}

	oid, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return nil, ErrInvalidArgument
	}
	if FindItem(t.Itinerary, oid) < 0 {
		return nil, ErrItemNotFound
	}

	fields := bson.M{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.Day != nil {
		if *req.Day < 1 {
			return nil, ErrInvalidArgument
		}
		fields["day"] = *req.Day
	}
	if req.StartTime != nil {
		fields["startTime"] = *req.StartTime
	}
	if req.EndTime != nil {
		fields["endTime"] = *req.EndTime
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Order != nil {
		if *req.Order < 0 {
			return nil, ErrInvalidArgument
		}
		fields["order"] = *req.Order
	}
	if req.Lat != nil {
		fields["lat"] = *req.Lat
	}
	if req.Lng != nil {
		fields["lng"] = *req.Lng
	}
	if req.Cost != nil {
		fields["cost"] = *req.Cost
	}

	updated, err := s.store.SetElementFields(ctx, t.ID, "itinerary", oid, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrTripNotFound
	}

	idx := FindItem(updated.Itinerary, oid)
	if idx < 0 {
		return nil, ErrItemNotFound
	}
	item := updated.Itinerary[idx]

	s.events.Publish(id, EventItemUpdated, map[string]interface{}{
		"trip_id":    id,
		"item":       item,
		"updated_by": actorID,
	}, origin)

	return &item, nil
}

// DeleteItem removes one item by id. Peers are not renumbered; only a
// renumbering day-delete compacts order values.
func (s *Service) DeleteItem(ctx context.Context, actorID int64, id, itemID, origin string) error {
	t, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !CanEditContent(t, actorID) {
		return ErrPermissionDenied
	}

	oid, err := primitive.ObjectIDFromHex(itemID)
	if err != nil {
		return ErrInvalidArgument
	}
	if FindItem(t.Itinerary, oid) < 0 {
		return ErrItemNotFound
	}

	updated, err := s.store.PullElementByID(ctx, t.ID, "itinerary", oid)
	if err != nil {
		return err
	}
	if updated == nil {
		return ErrTripNotFound
	}

	s.events.Publish(id, EventItemDeleted, map[string]interface{}{
		"trip_id":    id,
		"item_id":    itemID,
		"updated_by": actorID,
	}, origin)

	return nil
}

// Reorder applies a full id permutation for one day, assigning dense
// 0-based order values in the given sequence
func (s *Service) Reorder(ctx context.Context, actorID int64, id, origin string, req *ReorderRequest) ([]ItineraryItem, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanEditContent(t, actorID) {
		return nil, ErrPermissionDenied
	}

	ids := make([]primitive.ObjectID, 0, len(req.ItemIDs))
	for _, raw := range req.ItemIDs {
		oid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, ErrInvalidArgument
		}
		ids = append(ids, oid)
	}

	items, err := ReorderDay(append([]ItineraryItem{}, t.Itinerary...), req.Day, ids)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.ReplaceItinerary(ctx, t.ID, items)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrTripNotFound
	}

	s.events.Publish(id, EventItemsReordered, map[string]interface{}{
		"trip_id":    id,
		"day":        req.Day,
		"item_ids":   req.ItemIDs,
		"updated_by": actorID,
	}, origin)

	return updated.Itinerary, nil
}

// DuplicateDay copies all items of fromDay into toDay. Copies reset
// status to planned and continue the destination day's order sequence.
func (s *Service) DuplicateDay(ctx context.Context, actorID int64, id string, fromDay int, origin string, req *DuplicateDayRequest) ([]ItineraryItem, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanEditContent(t, actorID) {
		return nil, ErrPermissionDenied
	}

	items, copies, err := DuplicateDay(t.Itinerary, fromDay, req.ToDay)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.ReplaceItinerary(ctx, t.ID, items)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrTripNotFound
	}

	s.events.Publish(id, EventDayDuplicated, map[string]interface{}{
		"trip_id":    id,
		"from_day":   fromDay,
		"to_day":     req.ToDay,
		"items":      copies,
		"updated_by": actorID,
	}, origin)

	return copies, nil
}

// DeleteDay removes all items of a day. With renumber, later days shift
// down and every surviving day is compacted to dense 0-based orders.
func (s *Service) DeleteDay(ctx context.Context, actorID int64, id string, day int, renumber bool, origin string) (int, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return 0, err
	}
	if !CanEditContent(t, actorID) {
		return 0, ErrPermissionDenied
	}

	items, removed, err := DeleteDay(t.Itinerary, day, renumber)
	if err != nil {
		return 0, err
	}

	updated, err := s.store.ReplaceItinerary(ctx, t.ID, items)
	if err != nil {
		return 0, err
	}
	if updated == nil {
		return 0, ErrTripNotFound
	}

	s.events.Publish(id, EventDayDeleted, map[string]interface{}{
		"trip_id":    id,
		"day":        day,
		"renumber":   renumber,
		"removed":    removed,
		"updated_by": actorID,
	}, origin)

	return removed, nil
}

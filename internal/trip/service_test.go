package trip

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore is an in-memory Store. It applies the same field-level
// updates the Mongo repository would, so service tests exercise the real
// business rules without a database.
type fakeStore struct {
	trips map[primitive.ObjectID]*Trip
}

var _ Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{trips: make(map[primitive.ObjectID]*Trip)}
}

func (f *fakeStore) get(id primitive.ObjectID) *Trip {
	t, ok := f.trips[id]
	if !ok {
		return nil
	}
	cp := *t
	cp.Members = append([]Member{}, t.Members...)
	cp.Itinerary = append([]ItineraryItem{}, t.Itinerary...)
	cp.Comments = append([]Comment{}, t.Comments...)
	cp.Expenses = append([]Expense{}, t.Expenses...)
	cp.Receipts = append([]Receipt{}, t.Receipts...)
	return &cp
}

func (f *fakeStore) Insert(_ context.Context, t *Trip) (*Trip, error) {
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	f.trips[t.ID] = t
	return f.get(t.ID), nil
}

func (f *fakeStore) FindByID(_ context.Context, id primitive.ObjectID) (*Trip, error) {
	return f.get(id), nil
}

func (f *fakeStore) FindByShareToken(_ context.Context, token string) (*Trip, error) {
	for id, t := range f.trips {
		if t.PublicShare.Enabled && t.PublicShare.Token == token {
			return f.get(id), nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListForUser(_ context.Context, userID int64, opts ListOptions) ([]Trip, int64, error) {
	var out []Trip
	for _, t := range f.trips {
		if !CanRead(t, userID) {
			continue
		}
		if opts.FavoriteOnly && !t.IsFavorite {
			continue
		}
		out = append(out, *f.get(t.ID))
	}
	sort.Slice(out, func(i, j int) bool {
		if opts.SortDesc {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	total := int64(len(out))
	start := (opts.Page - 1) * opts.PerPage
	if start >= len(out) {
		return []Trip{}, total, nil
	}
	end := start + opts.PerPage
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], total, nil
}

func (f *fakeStore) SetFields(_ context.Context, id primitive.ObjectID, fields bson.M) (*Trip, error) {
	t, ok := f.trips[id]
	if !ok {
		return nil, nil
	}
	for k, v := range fields {
		switch k {
		case "title":
			t.Title = v.(string)
		case "country":
			t.Country = v.(Country)
		case "notes":
			t.Notes = v.(string)
		case "plannedDates":
			t.PlannedDates = v.(PlannedDates)
		case "isFavorite":
			t.IsFavorite = v.(bool)
		case "budget":
			t.Budget = v.(Budget)
		case "publicShare":
			t.PublicShare = v.(PublicShare)
		}
	}
	t.UpdatedAt = time.Now().UTC()
	return f.get(id), nil
}

func (f *fakeStore) PushElement(_ context.Context, id primitive.ObjectID, field string, value interface{}) (*Trip, error) {
	t, ok := f.trips[id]
	if !ok {
		return nil, nil
	}
	switch field {
	case "itinerary":
		t.Itinerary = append(t.Itinerary, value.(ItineraryItem))
	case "members":
		t.Members = append(t.Members, value.(Member))
	case "comments":
		t.Comments = append(t.Comments, value.(Comment))
	case "expenses":
		t.Expenses = append(t.Expenses, value.(Expense))
	case "receipts":
		t.Receipts = append(t.Receipts, value.(Receipt))
	}
	return f.get(id), nil
}

func (f *fakeStore) PullElementByID(_ context.Context, id primitive.ObjectID, field string, elemID primitive.ObjectID) (*Trip, error) {
	t, ok := f.trips[id]
	if !ok {
		return nil, nil
	}
	switch field {
	case "itinerary":
		out := t.Itinerary[:0]
		for _, it := range t.Itinerary {
			if it.ID != elemID {
				out = append(out, it)
			}
		}
		t.Itinerary = out
	case "comments":
		out := t.Comments[:0]
		for _, c := range t.Comments {
			if c.ID != elemID {
				out = append(out, c)
			}
		}
		t.Comments = out
	case "expenses":
		out := t.Expenses[:0]
		for _, e := range t.Expenses {
			if e.ID != elemID {
				out = append(out, e)
			}
		}
		t.Expenses = out
	case "receipts":
		out := t.Receipts[:0]
		for _, r := range t.Receipts {
			if r.ID != elemID {
				out = append(out, r)
			}
		}
		t.Receipts = out
	}
	return f.get(id), nil
}

func (f *fakeStore) PullMember(_ context.Context, id primitive.ObjectID, userID int64) (*Trip, error) {
	t, ok := f.trips[id]
	if !ok {
		return nil, nil
	}
	out := t.Members[:0]
	for _, m := range t.Members {
		if m.UserID != userID {
			out = append(out, m)
		}
	}
	t.Members = out
	return f.get(id), nil
}

func (f *fakeStore) SetElementFields(_ context.Context, id primitive.ObjectID, field string, elemID primitive.ObjectID, fields bson.M) (*Trip, error) {
	t, ok := f.trips[id]
	if !ok {
		return nil, nil
	}
	switch field {
	case "itinerary":
		for i := range t.Itinerary {
			if t.Itinerary[i].ID == elemID {
				applyItemFields(&t.Itinerary[i], fields)
			}
		}
	case "expenses":
		for i := range t.Expenses {
			if t.Expenses[i].ID == elemID {
				applyExpenseFields(&t.Expenses[i], fields)
			}
		}
	}
	return f.get(id), nil
}

func applyItemFields(it *ItineraryItem, fields bson.M) {
	for k, v := range fields {
		switch k {
		case "title":
			it.Title = v.(string)
		case "location":
			it.Location = v.(string)
		case "day":
			it.Day = v.(int)
		case "startTime":
			it.StartTime = v.(string)
		case "endTime":
			it.EndTime = v.(string)
		case "notes":
			it.Notes = v.(string)
		case "status":
			it.Status = v.(ItemStatus)
		case "order":
			it.Order = v.(int)
		case "lat":
			lat := v.(float64)
			it.Lat = &lat
		case "lng":
			lng := v.(float64)
			it.Lng = &lng
		case "cost":
			it.Cost = v.(float64)
		}
	}
}

func applyExpenseFields(e *Expense, fields bson.M) {
	for k, v := range fields {
		switch k {
		case "title":
			e.Title = v.(string)
		case "amount":
			e.Amount = v.(float64)
		case "category":
			e.Category = v.(string)
		case "date":
			e.Date = v.(time.Time)
		case "notes":
			e.Notes = v.(string)
		case "currency":
			e.Currency = v.(string)
		}
	}
}

func (f *fakeStore) ReplaceItinerary(_ context.Context, id primitive.ObjectID, items []ItineraryItem) (*Trip, error) {
	t, ok := f.trips[id]
	if !ok {
		return nil, nil
	}
	t.Itinerary = append([]ItineraryItem{}, items...)
	return f.get(id), nil
}

func (f *fakeStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.trips[id]; !ok {
		return ErrTripNotFound
	}
	delete(f.trips, id)
	return nil
}

func (f *fakeStore) DeleteManyOwned(_ context.Context, ids []primitive.ObjectID, ownerID int64) (int64, error) {
	var n int64
	for _, id := range ids {
		if t, ok := f.trips[id]; ok && t.OwnerID == ownerID {
			delete(f.trips, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) Stats(_ context.Context, userID int64) (*StatsResponse, error) {
	stats := &StatsResponse{CountriesVisited: []string{}, RecentTrips: []Trip{}}
	seen := map[string]bool{}
	for _, t := range f.trips {
		if t.OwnerID != userID {
			continue
		}
		stats.TotalTrips++
		if t.IsFavorite {
			stats.FavoriteTrips++
		}
		if !seen[t.Country.Name] {
			seen[t.Country.Name] = true
			stats.CountriesVisited = append(stats.CountriesVisited, t.Country.Name)
		}
	}
	stats.CountriesCount = len(stats.CountriesVisited)
	return stats, nil
}

// recordingPublisher captures events for assertions
type recordingPublisher struct {
	events []publishedEvent
}

type publishedEvent struct {
	tripID    string
	eventType string
	exclude   string
}

func (r *recordingPublisher) Publish(tripID, eventType string, _ interface{}, excludeConnID string) {
	r.events = append(r.events, publishedEvent{tripID: tripID, eventType: eventType, exclude: excludeConnID})
}

func newTestService(t *testing.T) (*Service, *fakeStore, *recordingPublisher) {
	t.Helper()
	store := newFakeStore()
	events := &recordingPublisher{}
	return NewService(store, events), store, events
}

func createTrip(t *testing.T, svc *Service, ownerID int64) *Trip {
	t.Helper()
	tr, err := svc.Create(context.Background(), ownerID, &CreateTripRequest{
		Title:   "Japan 2026",
		Country: Country{Name: "Japan", Capital: "Tokyo"},
	})
	require.NoError(t, err)
	return tr
}

func TestCreateTrip(t *testing.T) {
	svc, _, _ := newTestService(t)

	tr := createTrip(t, svc, 1)
	assert.Equal(t, int64(1), tr.OwnerID)
	assert.Equal(t, "USD", tr.Budget.Currency)
	assert.Empty(t, tr.Members)
	assert.NotNil(t, tr.Itinerary)
	assert.False(t, tr.PublicShare.Enabled)
}

func TestCreateTripRequiresTitleAndCountry(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), 1, &CreateTripRequest{Country: Country{Name: "Japan"}})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Create(context.Background(), 1, &CreateTripRequest{Title: "Japan 2026"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestGetEnforcesRead(t *testing.T) {
	svc, _, _ := newTestService(t)
	tr := createTrip(t, svc, 1)
	id := tr.ID.Hex()

	_, err := svc.Get(context.Background(), 99, id)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.Get(context.Background(), 1, id)
	assert.NoError(t, err)

	_, err = svc.Get(context.Background(), 1, "not-a-hex-id")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.Get(context.Background(), 1, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrTripNotFound)
}

func TestViewerCannotMutate(t *testing.T) {
	svc, store, events := newTestService(t)
	tr := createTrip(t, svc, 1)
	id := tr.ID.Hex()

	_, err := svc.AddMember(context.Background(), 1, id, "", &AddMemberRequest{UserID: 3, Role: RoleViewer})
	require.NoError(t, err)
	events.events = nil

	_, err = svc.AddItem(context.Background(), 3, id, "", &AddItemRequest{Title: "Museum"})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	title := "renamed"
	_, err = svc.Update(context.Background(), 3, id, "", &UpdateTripRequest{Title: &title})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.ToggleFavorite(context.Background(), 3, id, "")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// Nothing changed and nothing was published
	stored := store.trips[tr.ID]
	assert.Empty(t, stored.Itinerary)
	assert.Equal(t, "Japan 2026", stored.Title)
	assert.Empty(t, events.events)
}

func TestAddItemAssignsGlobalCountOrder(t *testing.T) {
	svc, _, events := newTestService(t)
	tr := createTrip(t, svc, 1)
	id := tr.ID.Hex()

	day2 := 2
	for i := 0; i < 3; i++ {
		_, err := svc.AddItem(context.Background(), 1, id, "", &AddItemRequest{Title: "stop", Day: day2})
		require.NoError(t, err)
	}

	it, err := svc.AddItem(context.Background(), 1, id, "conn-1", &AddItemRequest{Title: "late addition", Day: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, it.Day)
	assert.Equal(t, 3, it.Order)
	assert.Equal(t, StatusPlanned, it.Status)

	last := events.events[len(events.events)-1]
	assert.Equal(t, EventItemAdded, last.eventType)
	assert.Equal(t, "conn-1", last.exclude)
}

func TestUpdateItemDoesNotRenumberPeers(t *testing.T) {
	svc, store, _ := newTestService(t)
	tr := createTrip(t, svc, 1)
	id := tr.ID.Hex()

	a, err := svc.AddItem(context.Background(), 1, id, "", &AddItemRequest{Title: "a", Day: 1})
	require.NoError(t, err)
	b, err := svc.AddItem(context.Background(), 1, id, "", &AddItemRequest{Title: "b", Day: 1})
	require.NoError(t, err)

	day := 5
	moved, err := svc.UpdateItem(context.Background(), 1, id, a.ID.Hex(), "", &UpdateItemRequest{Day: &day})
	require.NoError(t, err)
	assert.Equal(t, 5, moved.Day)
	assert.Equal(t, 0, moved.Order)

	// The peer keeps its order untouched
	stored := store.trips[tr.ID]
	idx := FindItem(stored.Itinerary, b.ID)
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, 1, stored.Itinerary[idx].Order)
}

func TestUpdateItemRejectsNegativeValues(t *testing.T) {
	svc, store, _ := newTestService(t)
	tr := createTrip(t, svc, 1)
	id := tr.ID.Hex()

	it, err := svc.AddItem(context.Background(), 1, id, "", &AddItemRequest{Title: "a", Day: 1})
	require.NoError(t, err)

	order := -1
	_, err = svc.UpdateItem(context.Background(), 1, id, it.ID.Hex(), "", &UpdateItemRequest{Order: &order})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	day := 0
	_, err = svc.UpdateItem(context.Background(), 1, id, it.ID.Hex(), "", &UpdateItemRequest{Day: &day})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	stored := store.trips[tr.ID]
	idx := FindItem(stored.Itinerary, it.ID)
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, 0, stored.Itinerary[idx].Order)
	assert.Equal(t, 1, stored.Itinerary[idx].Day)
}

func TestReorderPersistsDenseOrders(t *testing.T) {
	svc, store, events := newTestService(t)
	tr := createTrip(t, svc, 1)
	id := tr.ID.Hex()

	var ids []string
	for _, title := range []string{"a", "b", "c"} {
		it, err := svc.AddItem(context.Background(), 1, id, "", &AddItemRequest{Title: title, Day: 1})
		require.NoError(t, err)
		ids = append(ids, it.ID.Hex())
	}

	items, err := svc.Reorder(context.Background(), 1, id, "conn-2", &ReorderRequest{
		Day:     1,
		ItemIDs: []string{ids[2], ids[0], ids[1]},
	})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "c", items[0].Title)
	assert.Equal(t, "a", items[1].Title)
	assert.Equal(t, "b", items[2].Title)
	for i, it := range items {
		assert.Equal(t, i, it.Order)
	}

	stored := store.trips[tr.ID]
	SortItinerary(stored.Itinerary)
	assert.Equal(t, "c", stored.Itinerary[0].Title)

	last := events.events[len(events.events)-1]
	assert.Equal(t, EventItemsReordered, last.eventType)
	assert.Equal(t, "conn-2", last.exclude)
}

func TestMembershipLifecycle(t *testing.T) {
	svc, _, _ := newTestService(t)
	tr := createTrip(t, svc, 1)
	id := tr.ID.Hex()

	m, err := svc.AddMember(context.Background(), 1, id, "", &AddMemberRequest{UserID: 2, Role: RoleEditor})
	require.NoError(t, err)
	assert.Equal(t, RoleEditor, m.Role)

	// Duplicates and the owner are rejected
	_, err = svc.AddMember(context.Background(), 1, id, "", &AddMemberRequest{UserID: 2, Role: RoleViewer})
	assert.ErrorIs(t, err, ErrMemberExists)
	_, err = svc.AddMember(context.Background(), 1, id, "", &AddMemberRequest{UserID: 1, Role: RoleEditor})
	assert.ErrorIs(t, err, ErrMemberExists)

	// Only the owner manages membership
	_, err = svc.AddMember(context.Background(), 2, id, "", &AddMemberRequest{UserID: 3, Role: RoleViewer})
	assert.ErrorIs(t, err, ErrPermissionDenied)

	err = svc.RemoveMember(context.Background(), 1, id, 2, "")
	require.NoError(t, err)
	err = svc.RemoveMember(context.Background(), 1, id, 2, "")
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestCommentDeleteAuthorOrOwner(t *testing.T) {
	svc, _, _ := newTestService(t)
	tr := createTrip(t, svc, 1)
	id := tr.ID.Hex()

	_, err := svc.AddMember(context.Background(), 1, id, "", &AddMemberRequest{UserID: 2, Role: RoleEditor})
	require.NoError(t, err)
	_, err = svc.AddMember(context.Background(), 1, id, "", &AddMemberRequest{UserID: 3, Role: RoleEditor})
	require.NoError(t, err)

	c, err := svc.AddComment(context.Background(), 2, id, "", &AddCommentRequest{Content: "looks great"})
	require.NoError(t, err)

	// A different editor cannot delete someone else's comment
	err = svc.DeleteComment(context.Background(), 3, id, c.ID.Hex(), "")
	assert.ErrorIs(t, err, ErrPermissionDenied)

	// The author can
	err = svc.DeleteComment(context.Background(), 2, id, c.ID.Hex(), "")
	require.NoError(t, err)

	// And so can the owner
	c2, err := svc.AddComment(context.Background(), 2, id, "", &AddCommentRequest{Content: "second"})
	require.NoError(t, err)
	err = svc.DeleteComment(context.Background(), 1, id, c2.ID.Hex(), "")
	require.NoError(t, err)
}

func TestExpenseDefaultsAndValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	tr := createTrip(t, svc, 1)
	id := tr.ID.Hex()

	e, err := svc.AddExpense(context.Background(), 1, id, "", &AddExpenseRequest{Title: "Ramen", Amount: 12.5})
	require.NoError(t, err)
	assert.Equal(t, "miscellaneous", e.Category)
	assert.Equal(t, "USD", e.Currency)
	assert.False(t, e.Date.IsZero())

	_, err = svc.AddExpense(context.Background(), 1, id, "", &AddExpenseRequest{Title: "Bad", Amount: 1, Category: "bribes"})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	bad := "bribes"
	_, err = svc.UpdateExpense(context.Background(), 1, id, e.ID.Hex(), "", &UpdateExpenseRequest{Category: &bad})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestShareTokenRotation(t *testing.T) {
	svc, _, _ := newTestService(t)
	tr := createTrip(t, svc, 1)
	id := tr.ID.Hex()

	first, err := svc.EnableShare(context.Background(), 1, id)
	require.NoError(t, err)
	assert.Len(t, first, 32)

	_, err = svc.ResolvePublic(context.Background(), first)
	require.NoError(t, err)

	// Enabling again rotates: the old link silently dies
	second, err := svc.EnableShare(context.Background(), 1, id)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	_, err = svc.ResolvePublic(context.Background(), first)
	assert.ErrorIs(t, err, ErrTripNotFound)
	_, err = svc.ResolvePublic(context.Background(), second)
	assert.NoError(t, err)
}

func TestShareRequiresOwner(t *testing.T) {
	svc, _, _ := newTestService(t)
	tr := createTrip(t, svc, 1)
	id := tr.ID.Hex()

	_, err := svc.AddMember(context.Background(), 1, id, "", &AddMemberRequest{UserID: 2, Role: RoleEditor})
	require.NoError(t, err)

	_, err = svc.EnableShare(context.Background(), 2, id)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	err = svc.DisableShare(context.Background(), 2, id)
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestResolvePublicStripsPrivateData(t *testing.T) {
	svc, _, _ := newTestService(t)
	tr := createTrip(t, svc, 1)
	id := tr.ID.Hex()

	_, err := svc.AddMember(context.Background(), 1, id, "", &AddMemberRequest{UserID: 2, Role: RoleViewer})
	require.NoError(t, err)
	_, err = svc.AddComment(context.Background(), 1, id, "", &AddCommentRequest{Content: "secret"})
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), 1, id, "", &AddItemRequest{Title: "Temple", Day: 2})
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), 1, id, "", &AddItemRequest{Title: "Market", Day: 1})
	require.NoError(t, err)

	token, err := svc.EnableShare(context.Background(), 1, id)
	require.NoError(t, err)

	pub, err := svc.ResolvePublic(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "Japan 2026", pub.Title)

	// Itinerary comes sorted by (day, order)
	require.Len(t, pub.Itinerary, 2)
	assert.Equal(t, "Market", pub.Itinerary[0].Title)
	assert.Equal(t, "Temple", pub.Itinerary[1].Title)
}

func TestResolvePublicDisabledAndUnknown(t *testing.T) {
	svc, _, _ := newTestService(t)
	tr := createTrip(t, svc, 1)
	id := tr.ID.Hex()

	token, err := svc.EnableShare(context.Background(), 1, id)
	require.NoError(t, err)

	require.NoError(t, svc.DisableShare(context.Background(), 1, id))

	// Disabled, unknown, and empty tokens are indistinguishable
	_, err = svc.ResolvePublic(context.Background(), token)
	assert.ErrorIs(t, err, ErrTripNotFound)
	_, err = svc.ResolvePublic(context.Background(), "0123456789abcdef0123456789abcdef")
	assert.ErrorIs(t, err, ErrTripNotFound)
	_, err = svc.ResolvePublic(context.Background(), "")
	assert.ErrorIs(t, err, ErrTripNotFound)
}

func TestDeleteOwnerOnly(t *testing.T) {
	svc, _, _ := newTestService(t)
	tr := createTrip(t, svc, 1)
	id := tr.ID.Hex()

	_, err := svc.AddMember(context.Background(), 1, id, "", &AddMemberRequest{UserID: 2, Role: RoleEditor})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), 2, id)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	err = svc.Delete(context.Background(), 1, id)
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), 1, id)
	assert.ErrorIs(t, err, ErrTripNotFound)
}

func TestBulkDeleteSkipsNonOwned(t *testing.T) {
	svc, _, _ := newTestService(t)
	mine := createTrip(t, svc, 1)
	theirs := createTrip(t, svc, 2)

	deleted, err := svc.BulkDelete(context.Background(), 1, &BulkDeleteRequest{
		TripIDs: []string{mine.ID.Hex(), theirs.ID.Hex()},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = svc.Get(context.Background(), 2, theirs.ID.Hex())
	assert.NoError(t, err)
}

func TestToggleFavorite(t *testing.T) {
	svc, _, _ := newTestService(t)
	tr := createTrip(t, svc, 1)
	id := tr.ID.Hex()

	fav, err := svc.ToggleFavorite(context.Background(), 1, id, "")
	require.NoError(t, err)
	assert.True(t, fav)

	fav, err = svc.ToggleFavorite(context.Background(), 1, id, "")
	require.NoError(t, err)
	assert.False(t, fav)
}

func TestCanReadTrip(t *testing.T) {
	svc, _, _ := newTestService(t)
	tr := createTrip(t, svc, 1)
	id := tr.ID.Hex()

	assert.True(t, svc.CanReadTrip(context.Background(), id, 1))
	assert.False(t, svc.CanReadTrip(context.Background(), id, 99))
	assert.False(t, svc.CanReadTrip(context.Background(), "garbage", 1))
	assert.False(t, svc.CanReadTrip(context.Background(), primitive.NewObjectID().Hex(), 1))
}

func TestDeleteDayServiceRenumbers(t *testing.T) {
	svc, _, events := newTestService(t)
	tr := createTrip(t, svc, 1)
	id := tr.ID.Hex()

	for _, d := range []int{1, 2, 2, 3, 4} {
		_, err := svc.AddItem(context.Background(), 1, id, "", &AddItemRequest{Title: "stop", Day: d})
		require.NoError(t, err)
	}

	removed, err := svc.DeleteDay(context.Background(), 1, id, 2, true, "conn-3")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	got, err := svc.Get(context.Background(), 1, id)
	require.NoError(t, err)
	var days []int
	for _, it := range got.Itinerary {
		days = append(days, it.Day)
	}
	assert.Equal(t, []int{1, 2, 3}, days)
	for _, it := range got.Itinerary {
		assert.Equal(t, 0, it.Order)
	}

	last := events.events[len(events.events)-1]
	assert.Equal(t, EventDayDeleted, last.eventType)
	assert.Equal(t, "conn-3", last.exclude)
}

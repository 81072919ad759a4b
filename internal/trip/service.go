package trip

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store defines the persistence operations the trip service depends on.
// Defining the interface on the consumer side lets tests inject an
// in-memory fake; Repository is the Mongo implementation.
type Store interface {
	Insert(ctx context.Context, t *Trip) (*Trip, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*Trip, error)
	FindByShareToken(ctx context.Context, token string) (*Trip, error)
	ListForUser(ctx context.Context, userID int64, opts ListOptions) ([]Trip, int64, error)
	SetFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*Trip, error)
	PushElement(ctx context.Context, id primitive.ObjectID, field string, value interface{}) (*Trip, error)
	PullElementByID(ctx context.Context, id primitive.ObjectID, field string, elemID primitive.ObjectID) (*Trip, error)
	PullMember(ctx context.Context, id primitive.ObjectID, userID int64) (*Trip, error)
	SetElementFields(ctx context.Context, id primitive.ObjectID, field string, elemID primitive.ObjectID, fields bson.M) (*Trip, error)
	ReplaceItinerary(ctx context.Context, id primitive.ObjectID, items []ItineraryItem) (*Trip, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteManyOwned(ctx context.Context, ids []primitive.ObjectID, ownerID int64) (int64, error)
	Stats(ctx context.Context, userID int64) (*StatsResponse, error)
}

var _ Store = (*Repository)(nil)

// Service implements trip business logic: permission checks, the
// itinerary ordering rules, and event fan-out after each mutation.
type Service struct {
	store  Store
	events EventPublisher
}

// NewService creates a trip service. Pass NopPublisher{} when no
// realtime hub is wired.
func NewService(store Store, events EventPublisher) *Service {
	if events == nil {
		events = NopPublisher{}
	}
	return &Service{store: store, events: events}
}

// load parses a trip id and fetches the document, mapping malformed ids
// to ErrInvalidArgument and missing documents to ErrTripNotFound.
func (s *Service) load(ctx context.Context, id string) (*Trip, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidArgument
	}
	t, err := s.store.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTripNotFound
	}
	return t, nil
}

// Create persists a new trip with the actor as owner. The owner is
// implicit via OwnerID; no explicit owner member record is inserted,
// though RoleOf tolerates documents that carry one.
func (s *Service) Create(ctx context.Context, actorID int64, req *CreateTripRequest) (*Trip, error) {
	if req.Title == "" || req.Country.Name == "" {
		return nil, ErrInvalidArgument
	}

	t := &Trip{
		OwnerID:    actorID,
		Title:      req.Title,
		Country:    req.Country,
		Notes:      req.Notes,
		IsFavorite: req.IsFavorite,
		Members:    []Member{},
		Itinerary:  []ItineraryItem{},
		Comments:   []Comment{},
		Expenses:   []Expense{},
		Receipts:   []Receipt{},
	}
	if req.PlannedDates != nil {
		t.PlannedDates = *req.PlannedDates
	}
	if req.Budget != nil {
		t.Budget = *req.Budget
	}
	if t.Budget.Currency == "" {
		t.Budget.Currency = "USD"
	}

	return s.store.Insert(ctx, t)
}

// Get returns a trip the actor may read, with the itinerary in
// (day, order) display sequence
func (s *Service) Get(ctx context.Context, actorID int64, id string) (*Trip, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanRead(t, actorID) {
		return nil, ErrPermissionDenied
	}
	SortItinerary(t.Itinerary)
	return t, nil
}

// List returns trips where the actor is owner or member
func (s *Service) List(ctx context.Context, actorID int64, opts ListOptions) ([]Trip, int, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PerPage < 1 || opts.PerPage > 50 {
		opts.PerPage = 10
	}

	trips, total, err := s.store.ListForUser(ctx, actorID, opts)
	if err != nil {
		return nil, 0, err
	}
	return trips, int(total), nil
}

// Update patches trip metadata. Requires edit rights.
func (s *Service) Update(ctx context.Context, actorID int64, id, origin string, req *UpdateTripRequest) (*Trip, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanEditContent(t, actorID) {
		return nil, ErrPermissionDenied
	}

	fields := bson.M{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Country != nil {
		fields["country"] = *req.Country
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if req.PlannedDates != nil {
		fields["plannedDates"] = *req.PlannedDates
	}
	if req.IsFavorite != nil {
		fields["isFavorite"] = *req.IsFavorite
	}
	if len(fields) == 0 {
		SortItinerary(t.Itinerary)
		return t, nil
	}

	updated, err := s.store.SetFields(ctx, t.ID, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrTripNotFound
	}

	s.events.Publish(id, EventTripUpdated, map[string]interface{}{
		"trip_id":    id,
		"updated_by": actorID,
	}, origin)

	SortItinerary(updated.Itinerary)
	return updated, nil
}

// Delete removes a trip. Owner only.
func (s *Service) Delete(ctx context.Context, actorID int64, id string) error {
	t, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !CanManageMembership(t, actorID) {
		return ErrPermissionDenied
	}
	return s.store.Delete(ctx, t.ID)
}

// BulkDelete removes up to 50 trips owned by the actor. Ids the actor
// does not own are silently skipped, matching the single-owner filter
// semantics of Delete.
func (s *Service) BulkDelete(ctx context.Context, actorID int64, req *BulkDeleteRequest) (int64, error) {
	ids := make([]primitive.ObjectID, 0, len(req.TripIDs))
	for _, raw := range req.TripIDs {
		oid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return 0, ErrInvalidArgument
		}
		ids = append(ids, oid)
	}
	return s.store.DeleteManyOwned(ctx, ids, actorID)
}

// ToggleFavorite flips the favorite flag. Requires edit rights.
func (s *Service) ToggleFavorite(ctx context.Context, actorID int64, id, origin string) (bool, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return false, err
	}
	if !CanEditContent(t, actorID) {
		return false, ErrPermissionDenied
	}

	updated, err := s.store.SetFields(ctx, t.ID, bson.M{"isFavorite": !t.IsFavorite})
	if err != nil {
		return false, err
	}
	if updated == nil {
		return false, ErrTripNotFound
	}

	s.events.Publish(id, EventFavoriteToggle, map[string]interface{}{
		"trip_id":     id,
		"is_favorite": updated.IsFavorite,
		"updated_by":  actorID,
	}, origin)

	return updated.IsFavorite, nil
}

// Stats aggregates the actor's dashboard overview
func (s *Service) Stats(ctx context.Context, actorID int64) (*StatsResponse, error) {
	return s.store.Stats(ctx, actorID)
}

// CanReadTrip reports whether the user may read the trip. Used by the
// realtime layer to authorize room joins; unknown and malformed ids are
// simply unreadable.
func (s *Service) CanReadTrip(ctx context.Context, tripID string, userID int64) bool {
	t, err := s.load(ctx, tripID)
	if err != nil {
		return false
	}
	return CanRead(t, userID)
}

// EnableShare turns on public sharing and returns a fresh capability
// token. Owner only. Calling it again rotates the token, silently
// breaking previously shared links; one active token per trip.
func (s *Service) EnableShare(ctx context.Context, actorID int64, id string) (string, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return "", err
	}
	if !CanManageMembership(t, actorID) {
		return "", ErrPermissionDenied
	}

	token, err := NewShareToken()
	if err != nil {
		return "", err
	}

	updated, err := s.store.SetFields(ctx, t.ID, bson.M{
		"publicShare": PublicShare{Enabled: true, Token: token},
	})
	if err != nil {
		return "", err
	}
	if updated == nil {
		return "", ErrTripNotFound
	}
	return token, nil
}

// DisableShare turns off public sharing and clears the token. Owner only.
func (s *Service) DisableShare(ctx context.Context, actorID int64, id string) error {
	t, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !CanManageMembership(t, actorID) {
		return ErrPermissionDenied
	}

	updated, err := s.store.SetFields(ctx, t.ID, bson.M{
		"publicShare": PublicShare{Enabled: false},
	})
	if err != nil {
		return err
	}
	if updated == nil {
		return ErrTripNotFound
	}
	return nil
}

// ResolvePublic returns the anonymized projection for a share token.
// Wrong and disabled tokens both come back as ErrTripNotFound so the
// response does not reveal which it was.
func (s *Service) ResolvePublic(ctx context.Context, token string) (*PublicTrip, error) {
	if token == "" {
		return nil, ErrTripNotFound
	}
	t, err := s.store.FindByShareToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTripNotFound
	}
	return t.PublicView(), nil
}

package trip

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository persists trips as single Mongo documents. Each update is a
// field-level operator on one document, so the store gives per-document
// atomicity and nothing more; concurrent mutations to different
// sub-collections are last-write-wins at the document level.
type Repository struct {
	coll *mongo.Collection
}

// NewRepository creates a trip repository on the given database
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{coll: db.Collection("trips")}
}

// Insert stores a new trip document
func (r *Repository) Insert(ctx context.Context, t *Trip) (*Trip, error) {
	now := time.Now().UTC()
	t.ID = primitive.NewObjectID()
	t.CreatedAt = now
	t.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to insert trip: %w", err)
	}
	return t, nil
}

// FindByID retrieves a trip, returning (nil, nil) when absent
func (r *Repository) FindByID(ctx context.Context, id primitive.ObjectID) (*Trip, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByShareToken retrieves a trip by an enabled public-share token.
// Disabled and unknown tokens are indistinguishable: both return nil.
func (r *Repository) FindByShareToken(ctx context.Context, token string) (*Trip, error) {
	return r.findOne(ctx, bson.M{
		"publicShare.token":   token,
		"publicShare.enabled": true,
	})
}

func (r *Repository) findOne(ctx context.Context, filter bson.M) (*Trip, error) {
	var t Trip
	err := r.coll.FindOne(ctx, filter).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find trip: %w", err)
	}
	return &t, nil
}

// ListForUser retrieves trips where the user is the owner or a member
func (r *Repository) ListForUser(ctx context.Context, userID int64, opts ListOptions) ([]Trip, int64, error) {
	filter := bson.M{
		"$or": bson.A{
			bson.M{"ownerId": userID},
			bson.M{"members.userId": userID},
		},
	}
	if opts.FavoriteOnly {
		filter["isFavorite"] = true
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count trips: %w", err)
	}

	sortDir := 1
	if opts.SortDesc {
		sortDir = -1
	}
	findOpts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: sortDir}}).
		SetSkip(int64((opts.Page - 1) * opts.PerPage)).
		SetLimit(int64(opts.PerPage))

	cur, err := r.coll.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list trips: %w", err)
	}
	defer cur.Close(ctx)

	var trips []Trip
	if err := cur.All(ctx, &trips); err != nil {
		return nil, 0, fmt.Errorf("failed to decode trips: %w", err)
	}
	return trips, total, nil
}

// SetFields applies a field-level $set and returns the updated document
func (r *Repository) SetFields(ctx context.Context, id primitive.ObjectID, fields bson.M) (*Trip, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": set}, nil)
}

// PushElement appends a value to an embedded array field
func (r *Repository) PushElement(ctx context.Context, id primitive.ObjectID, field string, value interface{}) (*Trip, error) {
	update := bson.M{
		"$push": bson.M{field: value},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	return r.findOneAndUpdate(ctx, id, update, nil)
}

// PullElementByID removes the embedded array element with the given id
func (r *Repository) PullElementByID(ctx context.Context, id primitive.ObjectID, field string, elemID primitive.ObjectID) (*Trip, error) {
	update := bson.M{
		"$pull": bson.M{field: bson.M{"_id": elemID}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	return r.findOneAndUpdate(ctx, id, update, nil)
}

// PullMember removes a member record by user id
func (r *Repository) PullMember(ctx context.Context, id primitive.ObjectID, userID int64) (*Trip, error) {
	update := bson.M{
		"$pull": bson.M{"members": bson.M{"userId": userID}},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}
	return r.findOneAndUpdate(ctx, id, update, nil)
}

// SetElementFields patches fields of one embedded array element by id.
// field is the array name ("itinerary", "expenses"); fields are keyed by
// the element field name.
func (r *Repository) SetElementFields(ctx context.Context, id primitive.ObjectID, field string, elemID primitive.ObjectID, fields bson.M) (*Trip, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[field+".$[elem]."+k] = v
	}

	arrayFilters := options.ArrayFilters{
		Filters: bson.A{bson.M{"elem._id": elemID}},
	}
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": set}, &arrayFilters)
}

// ReplaceItinerary overwrites the whole itinerary array. Used by the
// ordering engine after reorder, duplicate-day and delete-day, where
// many elements change at once.
func (r *Repository) ReplaceItinerary(ctx context.Context, id primitive.ObjectID, items []ItineraryItem) (*Trip, error) {
	if items == nil {
		items = []ItineraryItem{}
	}
	return r.SetFields(ctx, id, bson.M{"itinerary": items})
}

func (r *Repository) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M, arrayFilters *options.ArrayFilters) (*Trip, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if arrayFilters != nil {
		opts.SetArrayFilters(*arrayFilters)
	}

	var t Trip
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update trip: %w", err)
	}
	return &t, nil
}

// Delete removes a trip document
func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrTripNotFound
	}
	return nil
}

// DeleteManyOwned removes up to 50 trips owned by the given user and
// reports how many were deleted
func (r *Repository) DeleteManyOwned(ctx context.Context, ids []primitive.ObjectID, ownerID int64) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{
		"_id":     bson.M{"$in": ids},
		"ownerId": ownerID,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to bulk delete trips: %w", err)
	}
	return res.DeletedCount, nil
}

// Stats aggregates the dashboard overview for one user
func (r *Repository) Stats(ctx context.Context, userID int64) (*StatsResponse, error) {
	owned := bson.M{"ownerId": userID}

	total, err := r.coll.CountDocuments(ctx, owned)
	if err != nil {
		return nil, fmt.Errorf("failed to count trips: %w", err)
	}

	favorites, err := r.coll.CountDocuments(ctx, bson.M{"ownerId": userID, "isFavorite": true})
	if err != nil {
		return nil, fmt.Errorf("failed to count favorite trips: %w", err)
	}

	rawCountries, err := r.coll.Distinct(ctx, "country.name", owned)
	if err != nil {
		return nil, fmt.Errorf("failed to collect countries: %w", err)
	}
	countries := make([]string, 0, len(rawCountries))
	for _, c := range rawCountries {
		if s, ok := c.(string); ok && s != "" {
			countries = append(countries, s)
		}
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(5).
		SetProjection(bson.M{"title": 1, "country": 1, "createdAt": 1, "isFavorite": 1})
	cur, err := r.coll.Find(ctx, owned, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent trips: %w", err)
	}
	defer cur.Close(ctx)

	var recent []Trip
	if err := cur.All(ctx, &recent); err != nil {
		return nil, fmt.Errorf("failed to decode recent trips: %w", err)
	}

	shown := countries
	if len(shown) > 10 {
		shown = shown[:10]
	}

	return &StatsResponse{
		TotalTrips:       int(total),
		FavoriteTrips:    int(favorites),
		CountriesCount:   len(countries),
		CountriesVisited: shown,
		RecentTrips:      recent,
	}, nil
}

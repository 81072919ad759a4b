package trip

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is a user's permission level on a trip
type Role string

const (
	RoleOwner  Role = "owner"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
	// RoleNone is returned for users with no relationship to a trip.
	// It is never persisted.
	RoleNone Role = "none"
)

// ItemStatus represents the lifecycle state of an itinerary item
type ItemStatus string

const (
	StatusPlanned   ItemStatus = "planned"
	StatusDone      ItemStatus = "done"
	StatusCancelled ItemStatus = "cancelled"
)

// Trip is the shared planning document collaborators edit.
// It is stored as a single Mongo document; sub-collections are arrays of
// embedded documents with their own generated ids.
type Trip struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OwnerID      int64              `json:"owner_id" bson:"ownerId"`
	Title        string             `json:"title" bson:"title"`
	Country      Country            `json:"country" bson:"country"`
	Notes        string             `json:"notes,omitempty" bson:"notes,omitempty"`
	PlannedDates PlannedDates       `json:"planned_dates" bson:"plannedDates"`
	Budget       Budget             `json:"budget" bson:"budget"`
	Members      []Member           `json:"members" bson:"members"`
	Itinerary    []ItineraryItem    `json:"itinerary" bson:"itinerary"`
	Comments     []Comment          `json:"comments" bson:"comments"`
	Expenses     []Expense          `json:"expenses" bson:"expenses"`
	Receipts     []Receipt          `json:"receipts" bson:"receipts"`
	IsFavorite   bool               `json:"is_favorite" bson:"isFavorite"`
	PublicShare  PublicShare        `json:"public_share" bson:"publicShare"`
	CreatedAt    time.Time          `json:"created_at" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updatedAt"`
}

// Country holds destination metadata captured at trip creation
type Country struct {
	Name     string `json:"name" bson:"name"`
	Capital  string `json:"capital,omitempty" bson:"capital,omitempty"`
	Region   string `json:"region,omitempty" bson:"region,omitempty"`
	Currency string `json:"currency,omitempty" bson:"currency,omitempty"`
	Flag     string `json:"flag,omitempty" bson:"flag,omitempty"`
}

// PlannedDates is the intended travel window
type PlannedDates struct {
	StartDate *time.Time `json:"start_date,omitempty" bson:"startDate,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty" bson:"endDate,omitempty"`
}

// Budget is a free-form estimate; no cross-field invariants are enforced
type Budget struct {
	Currency       string  `json:"currency" bson:"currency"`
	TotalEstimated float64 `json:"total_estimated" bson:"totalEstimated"`
	Planned        struct {
		Flights float64 `json:"flights" bson:"flights"`
		Hotels  float64 `json:"hotels" bson:"hotels"`
		Food    float64 `json:"food" bson:"food"`
	} `json:"planned" bson:"planned"`
}

// Member is a user's membership record on a trip. The owner is implicitly
// a member via Trip.OwnerID; an explicit owner-role record may also exist
// and both representations must be tolerated.
type Member struct {
	UserID int64 `json:"user_id" bson:"userId"`
	Role   Role  `json:"role" bson:"role"`
}

// ItineraryItem is a single activity within a trip, positioned by the
// (day, order) composite key. Callers must always sort by (day, order);
// order values are not guaranteed dense per day between renumberings.
type ItineraryItem struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Title     string             `json:"title" bson:"title"`
	Location  string             `json:"location,omitempty" bson:"location,omitempty"`
	Day       int                `json:"day" bson:"day"`
	StartTime string             `json:"start_time,omitempty" bson:"startTime,omitempty"`
	EndTime   string             `json:"end_time,omitempty" bson:"endTime,omitempty"`
	Notes     string             `json:"notes,omitempty" bson:"notes,omitempty"`
	Status    ItemStatus         `json:"status" bson:"status"`
	Order     int                `json:"order" bson:"order"`
	Lat       *float64           `json:"lat,omitempty" bson:"lat,omitempty"`
	Lng       *float64           `json:"lng,omitempty" bson:"lng,omitempty"`
	Cost      float64            `json:"cost" bson:"cost"`
}

// Comment is an append-only note on a trip
type Comment struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	UserID    int64              `json:"user_id" bson:"userId"`
	Content   string             `json:"content" bson:"content"`
	CreatedAt time.Time          `json:"created_at" bson:"createdAt"`
}

// Expense is a recorded cost against a trip
type Expense struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Title     string             `json:"title" bson:"title"`
	Amount    float64            `json:"amount" bson:"amount"`
	Category  string             `json:"category" bson:"category"`
	Date      time.Time          `json:"date" bson:"date"`
	Notes     string             `json:"notes,omitempty" bson:"notes,omitempty"`
	Currency  string             `json:"currency" bson:"currency"`
	CreatedAt time.Time          `json:"created_at" bson:"createdAt"`
}

// Receipt is uploaded-file metadata; binary storage is handled elsewhere
type Receipt struct {
	ID           primitive.ObjectID `json:"id" bson:"_id"`
	Filename     string             `json:"filename" bson:"filename"`
	OriginalName string             `json:"original_name" bson:"originalName"`
	Size         int64              `json:"size" bson:"size"`
	MimeType     string             `json:"mime_type" bson:"mimeType"`
	UploadedAt   time.Time          `json:"uploaded_at" bson:"uploadedAt"`
	UploadedBy   int64              `json:"uploaded_by" bson:"uploadedBy"`
}

// PublicShare is the anonymous read-only access capability for a trip.
// Presence of a token with Enabled=true is the sole access predicate.
type PublicShare struct {
	Enabled bool   `json:"enabled" bson:"enabled"`
	Token   string `json:"token,omitempty" bson:"token,omitempty"`
}

// ExpenseCategories are the accepted expense category values
var ExpenseCategories = []string{
	"food", "transport", "accommodation", "activities",
	"shopping", "health", "entertainment", "miscellaneous",
}

// ValidExpenseCategory reports whether c is an accepted category
func ValidExpenseCategory(c string) bool {
	for _, v := range ExpenseCategories {
		if v == c {
			return true
		}
	}
	return false
}

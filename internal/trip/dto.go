package trip

import "time"

// CreateTripRequest represents the request to create a trip
type CreateTripRequest struct {
	Title        string        `json:"title" validate:"required,max=100"`
	Country      Country       `json:"country"`
	Notes        string        `json:"notes,omitempty" validate:"max=1000"`
	PlannedDates *PlannedDates `json:"planned_dates,omitempty"`
	Budget       *Budget       `json:"budget,omitempty"`
	IsFavorite   bool          `json:"is_favorite,omitempty"`
}

// UpdateTripRequest represents a partial trip metadata update
type UpdateTripRequest struct {
	Title        *string       `json:"title,omitempty" validate:"omitempty,min=1,max=100"`
	Country      *Country      `json:"country,omitempty"`
	Notes        *string       `json:"notes,omitempty" validate:"omitempty,max=1000"`
	PlannedDates *PlannedDates `json:"planned_dates,omitempty"`
	IsFavorite   *bool         `json:"is_favorite,omitempty"`
}

// AddItemRequest represents the request to append an itinerary item
type AddItemRequest struct {
	Title     string   `json:"title" validate:"required,max=200"`
	Location  string   `json:"location,omitempty"`
	Day       int      `json:"day,omitempty" validate:"omitempty,gte=1"`
	StartTime string   `json:"start_time,omitempty"`
	EndTime   string   `json:"end_time,omitempty"`
	Notes     string   `json:"notes,omitempty" validate:"max=500"`
	Lat       *float64 `json:"lat,omitempty"`
	Lng       *float64 `json:"lng,omitempty"`
	Cost      float64  `json:"cost,omitempty"`
}

// UpdateItemRequest represents a partial itinerary item patch. Day and
// Order may be set directly; doing so bypasses day-scoped renumbering.
type UpdateItemRequest struct {
	Title     *string     `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Location  *string     `json:"location,omitempty"`
	Day       *int        `json:"day,omitempty" validate:"omitempty,gte=1"`
	StartTime *string     `json:"start_time,omitempty"`
	EndTime   *string     `json:"end_time,omitempty"`
	Notes     *string     `json:"notes,omitempty" validate:"omitempty,max=500"`
	Status    *ItemStatus `json:"status,omitempty" validate:"omitempty,oneof=planned done cancelled"`
	Order     *int        `json:"order,omitempty"`
	Lat       *float64    `json:"lat,omitempty"`
	Lng       *float64    `json:"lng,omitempty"`
	Cost      *float64    `json:"cost,omitempty"`
}

// ReorderRequest supplies the full permutation of item ids for one day
type ReorderRequest struct {
	Day     int      `json:"day" validate:"required,gte=1"`
	ItemIDs []string `json:"item_ids" validate:"required,min=1"`
}

// DuplicateDayRequest names the destination day for a day copy
type DuplicateDayRequest struct {
	ToDay int `json:"to_day" validate:"required,gte=1"`
}

// AddMemberRequest adds a collaborator with a role
type AddMemberRequest struct {
	UserID int64 `json:"user_id" validate:"required"`
	Role   Role  `json:"role" validate:"required,oneof=editor viewer"`
}

// AddCommentRequest appends a comment
type AddCommentRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

// AddExpenseRequest records an expense
type AddExpenseRequest struct {
	Title    string     `json:"title" validate:"required,max=200"`
	Amount   float64    `json:"amount" validate:"required,gt=0"`
	Category string     `json:"category,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
	Notes    string     `json:"notes,omitempty" validate:"max=500"`
	Currency string     `json:"currency,omitempty"`
}

// UpdateExpenseRequest is a partial expense patch
type UpdateExpenseRequest struct {
	Title    *string    `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Amount   *float64   `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Category *string    `json:"category,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
	Notes    *string    `json:"notes,omitempty" validate:"omitempty,max=500"`
	Currency *string    `json:"currency,omitempty"`
}

// AddReceiptRequest registers uploaded-file metadata
type AddReceiptRequest struct {
	Filename     string `json:"filename" validate:"required"`
	OriginalName string `json:"original_name" validate:"required"`
	Size         int64  `json:"size" validate:"gte=0"`
	MimeType     string `json:"mime_type,omitempty"`
}

// BulkDeleteRequest names the trips to delete
type BulkDeleteRequest struct {
	TripIDs []string `json:"trip_ids" validate:"required,min=1,max=50"`
}

// ListOptions control trip listing
type ListOptions struct {
	Page         int
	PerPage      int
	FavoriteOnly bool
	SortDesc     bool
}

// StatsResponse is the dashboard overview for one user
type StatsResponse struct {
	TotalTrips       int      `json:"total_trips"`
	FavoriteTrips    int      `json:"favorite_trips"`
	CountriesCount   int      `json:"countries_count"`
	CountriesVisited []string `json:"countries_visited"`
	RecentTrips      []Trip   `json:"recent_trips"`
}

package trip

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// shareTokenBytes gives 128 bits of entropy, hex-encoded to 32 chars
const shareTokenBytes = 16

// NewShareToken generates an unguessable public-share capability token
func NewShareToken() (string, error) {
	buf := make([]byte, shareTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate share token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// PublicTrip is the anonymized read-only projection served for a valid
// share token. Members, comments, receipts and the owner reference are
// stripped.
type PublicTrip struct {
	Title        string          `json:"title"`
	Country      Country         `json:"country"`
	Notes        string          `json:"notes,omitempty"`
	PlannedDates PlannedDates    `json:"planned_dates"`
	Budget       Budget          `json:"budget"`
	Itinerary    []ItineraryItem `json:"itinerary"`
	Expenses     []Expense       `json:"expenses"`
	IsFavorite   bool            `json:"is_favorite"`
}

// PublicView builds the anonymized projection of a trip. The itinerary is
// returned in (day, order) display sequence.
func (t *Trip) PublicView() *PublicTrip {
	items := append([]ItineraryItem{}, t.Itinerary...)
	SortItinerary(items)

	return &PublicTrip{
		Title:        t.Title,
		Country:      t.Country,
		Notes:        t.Notes,
		PlannedDates: t.PlannedDates,
		Budget:       t.Budget,
		Itinerary:    items,
		Expenses:     t.Expenses,
		IsFavorite:   t.IsFavorite,
	}
}

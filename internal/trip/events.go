package trip

// Event types fanned out to a trip's room on successful mutations.
// Payloads carry the minimal delta; clients already hold trip state and
// apply deltas, or refetch on ambiguity.
const (
	EventItemAdded      = "trip:item_added"
	EventItemUpdated    = "trip:item_updated"
	EventItemDeleted    = "trip:item_deleted"
	EventItemsReordered = "trip:items_reordered"
	EventDayDuplicated  = "trip:day_duplicated"
	EventDayDeleted     = "trip:day_deleted"
	EventMemberAdded    = "trip:member_added"
	EventMemberRemoved  = "trip:member_removed"
	EventCommentAdded   = "trip:comment_added"
	EventCommentRemoved = "trip:comment_removed"
	EventExpenseAdded   = "trip:expense_added"
	EventExpenseUpdated = "trip:expense_updated"
	EventExpenseDeleted = "trip:expense_deleted"
	EventBudgetUpdated  = "trip:budget_updated"
	EventReceiptAdded   = "trip:receipt_added"
	EventReceiptRemoved = "trip:receipt_removed"
	EventTripUpdated    = "trip:updated"
	EventFavoriteToggle = "trip:favorite_toggled"
)

// EventPublisher fans a mutation event out to the subscribers of a trip's
// room, excluding the originating connection. Implementations must not
// block; delivery is best-effort and failures stay inside the publisher.
type EventPublisher interface {
	Publish(tripID, eventType string, payload interface{}, excludeConnID string)
}

// NopPublisher discards all events. Used in tests and as a default when
// no realtime hub is wired.
type NopPublisher struct{}

// Publish implements EventPublisher
func (NopPublisher) Publish(tripID, eventType string, payload interface{}, excludeConnID string) {}

package trip

import "errors"

// Common errors. Handlers map these onto the HTTP error envelope;
// services return them wrapped or bare.
var (
	ErrTripNotFound     = errors.New("trip not found")
	ErrItemNotFound     = errors.New("itinerary item not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrMemberNotFound   = errors.New("member not found")
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrReceiptNotFound  = errors.New("receipt not found")
	ErrMemberExists     = errors.New("user is already a member of this trip")
	ErrPermissionDenied = errors.New("permission denied")
	ErrInvalidArgument  = errors.New("invalid argument")
)

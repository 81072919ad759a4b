package trip

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AddMember grants a user a role on the trip. Owner only. The owner
// cannot be added as an explicit member and duplicates are rejected.
func (s *Service) AddMember(ctx context.Context, actorID int64, id, origin string, req *AddMemberRequest) (*Member, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanManageMembership(t, actorID) {
		return nil, ErrPermissionDenied
	}
	if req.Role != RoleEditor && req.Role != RoleViewer {
		return nil, ErrInvalidArgument
	}
	if req.UserID == t.OwnerID {
		return nil, ErrMemberExists
	}
	for _, m := range t.Members {
		if m.UserID == req.UserID {
			return nil, ErrMemberExists
		}
	}

	member := Member{UserID: req.UserID, Role: req.Role}
	updated, err := s.store.PushElement(ctx, t.ID, "members", member)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrTripNotFound
	}

	s.events.Publish(id, EventMemberAdded, map[string]interface{}{
		"trip_id":    id,
		"member":     member,
		"updated_by": actorID,
	}, origin)

	return &member, nil
}

// RemoveMember revokes a user's membership. Owner only.
func (s *Service) RemoveMember(ctx context.Context, actorID int64, id string, userID int64, origin string) error {
	t, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !CanManageMembership(t, actorID) {
		return ErrPermissionDenied
	}

	found := false
	for _, m := range t.Members {
		if m.UserID == userID {
			found = true
			break
		}
	}
	if !found {
		return ErrMemberNotFound
	}

	updated, err := s.store.PullMember(ctx, t.ID, userID)
	if err != nil {
		return err
	}
	if updated == nil {
		return ErrTripNotFound
	}

	s.events.Publish(id, EventMemberRemoved, map[string]interface{}{
		"trip_id":    id,
		"user_id":    userID,
		"updated_by": actorID,
	}, origin)

	return nil
}

// AddComment appends a comment. Requires edit rights.
func (s *Service) AddComment(ctx context.Context, actorID int64, id, origin string, req *AddCommentRequest) (*Comment, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanEditContent(t, actorID) {
		return nil, ErrPermissionDenied
	}

	comment := Comment{
		ID:        primitive.NewObjectID(),
		UserID:    actorID,
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
	}

	updated, err := s.store.PushElement(ctx, t.ID, "comments", comment)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrTripNotFound
	}

	s.events.Publish(id, EventCommentAdded, map[string]interface{}{
		"trip_id":    id,
		"comment":    comment,
		"updated_by": actorID,
	}, origin)

	return &comment, nil
}

// DeleteComment removes a comment by id. Allowed for the comment's
// author and the trip owner.
func (s *Service) DeleteComment(ctx context.Context, actorID int64, id, commentID, origin string) error {
	t, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	oid, err := primitive.ObjectIDFromHex(commentID)
	if err != nil {
		return ErrInvalidArgument
	}

	var target *Comment
	for i := range t.Comments {
		if t.Comments[i].ID == oid {
			target = &t.Comments[i]
			break
		}
	}
	if target == nil {
		if !CanRead(t, actorID) {
			return ErrPermissionDenied
		}
		return ErrCommentNotFound
	}
	if target.UserID != actorID && RoleOf(t, actorID) != RoleOwner {
		return ErrPermissionDenied
	}

	updated, err := s.store.PullElementByID(ctx, t.ID, "comments", oid)
	if err != nil {
		return err
	}
	if updated == nil {
		return ErrTripNotFound
	}

	s.events.Publish(id, EventCommentRemoved, map[string]interface{}{
		"trip_id":    id,
		"comment_id": commentID,
		"updated_by": actorID,
	}, origin)

	return nil
}

// AddExpense records an expense. Requires edit rights.
func (s *Service) AddExpense(ctx context.Context, actorID int64, id, origin string, req *AddExpenseRequest) (*Expense, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanEditContent(t, actorID) {
		return nil, ErrPermissionDenied
	}

	category := req.Category
	if category == "" {
		category = "miscellaneous"
	}
	if !ValidExpenseCategory(category) {
		return nil, ErrInvalidArgument
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	date := time.Now().UTC()
	if req.Date != nil {
		date = *req.Date
	}

	expense := Expense{
		ID:        primitive.NewObjectID(),
		Title:     req.Title,
		Amount:    req.Amount,
		Category:  category,
		Date:      date,
		Notes:     req.Notes,
		Currency:  currency,
		CreatedAt: time.Now().UTC(),
	}

	updated, err := s.store.PushElement(ctx, t.ID, "expenses", expense)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrTripNotFound
	}

	s.events.Publish(id, EventExpenseAdded, map[string]interface{}{
		"trip_id":    id,
		"expense":    expense,
		"updated_by": actorID,
	}, origin)

	return &expense, nil
}

// UpdateExpense patches an expense's fields by id. Requires edit rights.
func (s *Service) UpdateExpense(ctx context.Context, actorID int64, id, expenseID, origin string, req *UpdateExpenseRequest) (*Expense, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanEditContent(t, actorID) {
		return nil, ErrPermissionDenied
	}

	oid, err := primitive.ObjectIDFromHex(expenseID)
	if err != nil {
		return nil, ErrInvalidArgument
	}
	if findExpense(t.Expenses, oid) < 0 {
		return nil, ErrExpenseNotFound
	}

	fields := bson.M{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Amount != nil {
		fields["amount"] = *req.Amount
	}
	if req.Category != nil {
		if !ValidExpenseCategory(*req.Category) {
			return nil, ErrInvalidArgument
		}
		fields["category"] = *req.Category
	}
	if req.Date != nil {
		fields["date"] = *req.Date
	}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if req.Currency != nil {
		fields["currency"] = *req.Currency
	}

	updated, err := s.store.SetElementFields(ctx, t.ID, "expenses", oid, fields)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrTripNotFound
	}

	idx := findExpense(updated.Expenses, oid)
	if idx < 0 {
		return nil, ErrExpenseNotFound
	}
	expense := updated.Expenses[idx]

	s.events.Publish(id, EventExpenseUpdated, map[string]interface{}{
		"trip_id":    id,
		"expense":    expense,
		"updated_by": actorID,
	}, origin)

	return &expense, nil
}

// DeleteExpense removes an expense by id. Requires edit rights.
func (s *Service) DeleteExpense(ctx context.Context, actorID int64, id, expenseID, origin string) error {
	t, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !CanEditContent(t, actorID) {
		return ErrPermissionDenied
	}

	oid, err := primitive.ObjectIDFromHex(expenseID)
	if err != nil {
		return ErrInvalidArgument
	}
	if findExpense(t.Expenses, oid) < 0 {
		return ErrExpenseNotFound
	}

	updated, err := s.store.PullElementByID(ctx, t.ID, "expenses", oid)
	if err != nil {
		return err
	}
	if updated == nil {
		return ErrTripNotFound
	}

	s.events.Publish(id, EventExpenseDeleted, map[string]interface{}{
		"trip_id":    id,
		"expense_id": expenseID,
		"updated_by": actorID,
	}, origin)

	return nil
}

// UpdateBudget replaces the budget estimate. Requires edit rights.
// No cross-field invariants are enforced on the figures.
func (s *Service) UpdateBudget(ctx context.Context, actorID int64, id, origin string, budget *Budget) (*Budget, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanEditContent(t, actorID) {
		return nil, ErrPermissionDenied
	}

	if budget.Currency == "" {
		budget.Currency = "USD"
	}

	updated, err := s.store.SetFields(ctx, t.ID, bson.M{"budget": *budget})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrTripNotFound
	}

	s.events.Publish(id, EventBudgetUpdated, map[string]interface{}{
		"trip_id":    id,
		"budget":     updated.Budget,
		"updated_by": actorID,
	}, origin)

	return &updated.Budget, nil
}

// AddReceipt registers uploaded-file metadata. Requires edit rights.
func (s *Service) AddReceipt(ctx context.Context, actorID int64, id, origin string, req *AddReceiptRequest) (*Receipt, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanEditContent(t, actorID) {
		return nil, ErrPermissionDenied
	}

	receipt := Receipt{
		ID:           primitive.NewObjectID(),
		Filename:     req.Filename,
		OriginalName: req.OriginalName,
		Size:         req.Size,
		MimeType:     req.MimeType,
		UploadedAt:   time.Now().UTC(),
		UploadedBy:   actorID,
	}

	updated, err := s.store.PushElement(ctx, t.ID, "receipts", receipt)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrTripNotFound
	}

	s.events.Publish(id, EventReceiptAdded, map[string]interface{}{
		"trip_id":    id,
		"receipt":    receipt,
		"updated_by": actorID,
	}, origin)

	return &receipt, nil
}

// DeleteReceipt removes a receipt record by id. Requires edit rights.
func (s *Service) DeleteReceipt(ctx context.Context, actorID int64, id, receiptID, origin string) error {
	t, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !CanEditContent(t, actorID) {
		return ErrPermissionDenied
	}

	oid, err := primitive.ObjectIDFromHex(receiptID)
	if err != nil {
		return ErrInvalidArgument
	}

	found := false
	for _, rec := range t.Receipts {
		if rec.ID == oid {
			found = true
			break
		}
	}
	if !found {
		return ErrReceiptNotFound
	}

	updated, err := s.store.PullElementByID(ctx, t.ID, "receipts", oid)
	if err != nil {
		return err
	}
	if updated == nil {
		return ErrTripNotFound
	}

	s.events.Publish(id, EventReceiptRemoved, map[string]interface{}{
		"trip_id":    id,
		"receipt_id": receiptID,
		"updated_by": actorID,
	}, origin)

	return nil
}

func findExpense(expenses []Expense, id primitive.ObjectID) int {
	for i, e := range expenses {
		if e.ID == id {
			return i
		}
	}
	return -1
}

package trip

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mfadel/tripcollab/pkg/middleware"
	"github.com/mfadel/tripcollab/pkg/response"
	"github.com/mfadel/tripcollab/pkg/validate"
)

// AddMember handles POST /trips/{id}/members
// @Summary      Add a collaborator
// @Description  Grant editor or viewer access; owner only
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        id path string true "Trip ID"
// @Param        request body AddMemberRequest true "User and role"
// @Success      201 {object} response.APIResponse{data=Member}
// @Failure      403 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /trips/{id}/members [post]
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	member, err := h.service.AddMember(r.Context(), userID, chi.URLParam(r, "id"), origin(r), &req)
	if err != nil {
		writeServiceError(w, err, "Failed to add member")
		return
	}

	response.JSON(w, http.StatusCreated, member)
}

// RemoveMember handles DELETE /trips/{id}/members/{userId}
// @Summary      Remove a collaborator
// @Tags         members
// @Produce      json
// @Param        id path string true "Trip ID"
// @Param        userId path int true "User ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /trips/{id}/members/{userId} [delete]
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	targetID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	if err := h.service.RemoveMember(r.Context(), userID, chi.URLParam(r, "id"), targetID, origin(r)); err != nil {
		writeServiceError(w, err, "Failed to remove member")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Member removed"})
}

// AddComment handles POST /trips/{id}/comments
// @Summary      Add a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        id path string true "Trip ID"
// @Param        request body AddCommentRequest true "Comment content"
// @Success      201 {object} response.APIResponse{data=Comment}
// @Failure      403 {object} response.APIResponse
// @Router       /trips/{id}/comments [post]
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	comment, err := h.service.AddComment(r.Context(), userID, chi.URLParam(r, "id"), origin(r), &req)
	if err != nil {
		writeServiceError(w, err, "Failed to add comment")
		return
	}

	response.JSON(w, http.StatusCreated, comment)
}

// DeleteComment handles DELETE /trips/{id}/comments/{commentId}
// @Summary      Delete a comment
// @Description  Allowed for the comment's author and the trip owner
// @Tags         comments
// @Produce      json
// @Param        id path string true "Trip ID"
// @Param        commentId path string true "Comment ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /trips/{id}/comments/{commentId} [delete]
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	if err := h.service.DeleteComment(r.Context(), userID, chi.URLParam(r, "id"), chi.URLParam(r, "commentId"), origin(r)); err != nil {
		writeServiceError(w, err, "Failed to delete comment")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Comment deleted"})
}

// AddExpense handles POST /trips/{id}/expenses
// @Summary      Record an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id path string true "Trip ID"
// @Param        request body AddExpenseRequest true "Expense to record"
// @Success      201 {object} response.APIResponse{data=Expense}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Router       /trips/{id}/expenses [post]
func (h *Handler) AddExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req AddExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	expense, err := h.service.AddExpense(r.Context(), userID, chi.URLParam(r, "id"), origin(r), &req)
	if err != nil {
		writeServiceError(w, err, "Failed to add expense")
		return
	}

	response.JSON(w, http.StatusCreated, expense)
}

// UpdateExpense handles PUT /trips/{id}/expenses/{expenseId}
// @Summary      Update an expense
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id path string true "Trip ID"
// @Param        expenseId path string true "Expense ID"
// @Param        request body UpdateExpenseRequest true "Fields to update"
// @Success      200 {object} response.APIResponse{data=Expense}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /trips/{id}/expenses/{expenseId} [put]
func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	expense, err := h.service.UpdateExpense(r.Context(), userID, chi.URLParam(r, "id"), chi.URLParam(r, "expenseId"), origin(r), &req)
	if err != nil {
		writeServiceError(w, err, "Failed to update expense")
		return
	}

	response.JSON(w, http.StatusOK, expense)
}

// DeleteExpense handles DELETE /trips/{id}/expenses/{expenseId}
// @Summary      Delete an expense
// @Tags         expenses
// @Produce      json
// @Param        id path string true "Trip ID"
// @Param        expenseId path string true "Expense ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /trips/{id}/expenses/{expenseId} [delete]
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	if err := h.service.DeleteExpense(r.Context(), userID, chi.URLParam(r, "id"), chi.URLParam(r, "expenseId"), origin(r)); err != nil {
		writeServiceError(w, err, "Failed to delete expense")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Expense deleted"})
}

// UpdateBudget handles PUT /trips/{id}/budget
// @Summary      Update the budget estimate
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id path string true "Trip ID"
// @Param        request body Budget true "Budget figures"
// @Success      200 {object} response.APIResponse{data=Budget}
// @Failure      403 {object} response.APIResponse
// @Router       /trips/{id}/budget [put]
func (h *Handler) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var budget Budget
	if err := json.NewDecoder(r.Body).Decode(&budget); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateBudget(r.Context(), userID, chi.URLParam(r, "id"), origin(r), &budget)
	if err != nil {
		writeServiceError(w, err, "Failed to update budget")
		return
	}

	response.JSON(w, http.StatusOK, updated)
}

// AddReceipt handles POST /trips/{id}/receipts
// @Summary      Register receipt metadata
// @Description  Records metadata for an uploaded file; binary storage is out of band
// @Tags         receipts
// @Accept       json
// @Produce      json
// @Param        id path string true "Trip ID"
// @Param        request body AddReceiptRequest true "Receipt metadata"
// @Success      201 {object} response.APIResponse{data=Receipt}
// @Failure      403 {object} response.APIResponse
// @Router       /trips/{id}/receipts [post]
func (h *Handler) AddReceipt(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req AddReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	receipt, err := h.service.AddReceipt(r.Context(), userID, chi.URLParam(r, "id"), origin(r), &req)
	if err != nil {
		writeServiceError(w, err, "Failed to add receipt")
		return
	}

	response.JSON(w, http.StatusCreated, receipt)
}

// DeleteReceipt handles DELETE /trips/{id}/receipts/{receiptId}
// @Summary      Delete a receipt record
// @Tags         receipts
// @Produce      json
// @Param        id path string true "Trip ID"
// @Param        receiptId path string true "Receipt ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /trips/{id}/receipts/{receiptId} [delete]
func (h *Handler) DeleteReceipt(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	if err := h.service.DeleteReceipt(r.Context(), userID, chi.URLParam(r, "id"), chi.URLParam(r, "receiptId"), origin(r)); err != nil {
		writeServiceError(w, err, "Failed to delete receipt")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Receipt deleted"})
}

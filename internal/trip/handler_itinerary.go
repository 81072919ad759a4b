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

// AddItem handles POST /trips/{id}/itinerary
// @Summary      Add an itinerary item
// @Tags         itinerary
// @Accept       json
// @Produce      json
// @Param        id path string true "Trip ID"
// @Param        request body AddItemRequest true "Item to add"
// @Success      201 {object} response.APIResponse{data=ItineraryItem}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /trips/{id}/itinerary [post]
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	item, err := h.service.AddItem(r.Context(), userID, chi.URLParam(r, "id"), origin(r), &req)
	if err != nil {
		writeServiceError(w, err, "Failed to add item")
		return
	}

	response.JSON(w, http.StatusCreated, item)
}

// UpdateItem handles PUT /trips/{id}/itinerary/{itemId}
// @Summary      Update an itinerary item
// @Description  Partial update; day and order may be set directly, no renumbering occurs
// @Tags         itinerary
// @Accept       json
// @Produce      json
// @Param        id path string true "Trip ID"
// @Param        itemId path string true "Item ID"
// @Param        request body UpdateItemRequest true "Fields to update"
// @Success      200 {object} response.APIResponse{data=ItineraryItem}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /trips/{id}/itinerary/{itemId} [put]
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	item, err := h.service.UpdateItem(r.Context(), userID, chi.URLParam(r, "id"), chi.URLParam(r, "itemId"), origin(r), &req)
	if err != nil {
		writeServiceError(w, err, "Failed to update item")
		return
	}

	response.JSON(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /trips/{id}/itinerary/{itemId}
// @Summary      Delete an itinerary item
// @Description  Remaining orders are left untouched; ordering stays correct, density is not restored
// @Tags         itinerary
// @Produce      json
// @Param        id path string true "Trip ID"
// @Param        itemId path string true "Item ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /trips/{id}/itinerary/{itemId} [delete]
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	if err := h.service.DeleteItem(r.Context(), userID, chi.URLParam(r, "id"), chi.URLParam(r, "itemId"), origin(r)); err != nil {
		writeServiceError(w, err, "Failed to delete item")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Item deleted"})
}

// Reorder handles PUT /trips/{id}/itinerary/reorder
// @Summary      Reorder a day's items
// @Description  Assigns dense orders 0..n-1 following the supplied id permutation
// @Tags         itinerary
// @Accept       json
// @Produce      json
// @Param        id path string true "Trip ID"
// @Param        request body ReorderRequest true "Day and item id permutation"
// @Success      200 {object} response.APIResponse{data=[]ItineraryItem}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /trips/{id}/itinerary/reorder [put]
func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req ReorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	items, err := h.service.Reorder(r.Context(), userID, chi.URLParam(r, "id"), origin(r), &req)
	if err != nil {
		writeServiceError(w, err, "Failed to reorder items")
		return
	}

	response.JSON(w, http.StatusOK, items)
}

// DuplicateDay handles POST /trips/{id}/itinerary/days/{day}/duplicate
// @Summary      Duplicate a day's items onto another day
// @Description  Copies get fresh ids, planned status, and orders appended after the destination day's items
// @Tags         itinerary
// @Accept       json
// @Produce      json
// @Param        id path string true "Trip ID"
// @Param        day path int true "Source day"
// @Param        request body DuplicateDayRequest true "Destination day"
// @Success      200 {object} response.APIResponse{data=[]ItineraryItem}
// @Failure      400 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Router       /trips/{id}/itinerary/days/{day}/duplicate [post]
func (h *Handler) DuplicateDay(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		response.BadRequest(w, "Invalid day")
		return
	}

	var req DuplicateDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	copies, err := h.service.DuplicateDay(r.Context(), userID, chi.URLParam(r, "id"), day, origin(r), &req)
	if err != nil {
		writeServiceError(w, err, "Failed to duplicate day")
		return
	}

	response.JSON(w, http.StatusOK, copies)
}

// DeleteDay handles DELETE /trips/{id}/itinerary/days/{day}
// @Summary      Delete all items on a day
// @Description  With ?renumber=true later days shift down by one and per-day orders are compacted
// @Tags         itinerary
// @Produce      json
// @Param        id path string true "Trip ID"
// @Param        day path int true "Day to clear"
// @Param        renumber query bool false "Shift later days down"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /trips/{id}/itinerary/days/{day} [delete]
func (h *Handler) DeleteDay(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		response.BadRequest(w, "Invalid day")
		return
	}
	renumber := r.URL.Query().Get("renumber") == "true"

	removed, err := h.service.DeleteDay(r.Context(), userID, chi.URLParam(r, "id"), day, renumber, origin(r))
	if err != nil {
		writeServiceError(w, err, "Failed to delete day")
		return
	}

	response.JSON(w, http.StatusOK, map[string]int{"removed": removed})
}

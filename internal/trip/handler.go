package trip

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mfadel/tripcollab/pkg/middleware"
	"github.com/mfadel/tripcollab/pkg/response"
	"github.com/mfadel/tripcollab/pkg/validate"
)

// Handler handles HTTP requests for trip operations
type Handler struct {
	service *Service
}

// NewHandler creates a new trip handler with service dependency injected
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for trip endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Post("/bulk-delete", h.BulkDelete)
	r.Get("/stats/overview", h.Stats)

	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Patch("/{id}/favorite", h.ToggleFavorite)

	r.Post("/{id}/share/enable", h.EnableShare)
	r.Post("/{id}/share/disable", h.DisableShare)

	r.Post("/{id}/itinerary", h.AddItem)
	r.Put("/{id}/itinerary/reorder", h.Reorder)
	r.Put("/{id}/itinerary/{itemId}", h.UpdateItem)
	r.Delete("/{id}/itinerary/{itemId}", h.DeleteItem)
	r.Post("/{id}/itinerary/days/{day}/duplicate", h.DuplicateDay)
	r.Delete("/{id}/itinerary/days/{day}", h.DeleteDay)

	r.Post("/{id}/members", h.AddMember)
	r.Delete("/{id}/members/{userId}", h.RemoveMember)

	r.Post("/{id}/comments", h.AddComment)
	r.Delete("/{id}/comments/{commentId}", h.DeleteComment)

	r.Post("/{id}/expenses", h.AddExpense)
	r.Put("/{id}/expenses/{expenseId}", h.UpdateExpense)
	r.Delete("/{id}/expenses/{expenseId}", h.DeleteExpense)
	r.Put("/{id}/budget", h.UpdateBudget)

	r.Post("/{id}/receipts", h.AddReceipt)
	r.Delete("/{id}/receipts/{receiptId}", h.DeleteReceipt)

	return r
}

// origin returns the caller's realtime connection id, if any. Mutations
// carry it so the hub can skip echoing the change back to its author.
func origin(r *http.Request) string {
	return r.Header.Get("X-Connection-ID")
}

// writeServiceError maps trip service sentinels onto HTTP responses.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrTripNotFound),
		errors.Is(err, ErrItemNotFound),
		errors.Is(err, ErrCommentNotFound),
		errors.Is(err, ErrMemberNotFound),
		errors.Is(err, ErrExpenseNotFound),
		errors.Is(err, ErrReceiptNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrPermissionDenied):
		response.PermissionDenied(w, err.Error())
	case errors.Is(err, ErrInvalidArgument):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrMemberExists):
		response.Conflict(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}

// List handles GET /trips
// @Summary      List trips
// @Description  List trips where the caller is owner or member
// @Tags         trips
// @Produce      json
// @Param        page query int false "Page number (default 1)"
// @Param        per_page query int false "Page size (1-50, default 10)"
// @Param        favorite query bool false "Only favorite trips"
// @Param        sort query string false "createdAt sort: asc or desc (default desc)"
// @Success      200 {object} response.APIResponse{data=[]Trip}
// @Failure      401 {object} response.APIResponse
// @Router       /trips [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	q := r.URL.Query()
	opts := ListOptions{SortDesc: true}
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		opts.Page = v
	}
	if v, err := strconv.Atoi(q.Get("per_page")); err == nil {
		opts.PerPage = v
	}
	if q.Get("favorite") == "true" {
		opts.FavoriteOnly = true
	}
	if q.Get("sort") == "asc" {
		opts.SortDesc = false
	}

	trips, total, err := h.service.List(r.Context(), userID, opts)
	if err != nil {
		response.InternalError(w, "Failed to list trips")
		return
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	perPage := opts.PerPage
	if perPage < 1 || perPage > 50 {
		perPage = 10
	}
	totalPages := (total + perPage - 1) / perPage

	response.JSONWithMeta(w, http.StatusOK, trips, &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	})
}

// Create handles POST /trips
// @Summary      Create a trip
// @Description  Create a trip; the caller becomes its owner
// @Tags         trips
// @Accept       json
// @Produce      json
// @Param        request body CreateTripRequest true "Trip creation request"
// @Success      201 {object} response.APIResponse{data=Trip}
// @Failure      400 {object} response.APIResponse
// @Router       /trips [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	t, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, err, "Failed to create trip")
		return
	}

	response.JSON(w, http.StatusCreated, t)
}

// Get handles GET /trips/{id}
// @Summary      Get a trip
// @Tags         trips
// @Produce      json
// @Param        id path string true "Trip ID"
// @Success      200 {object} response.APIResponse{data=Trip}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /trips/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	t, err := h.service.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "Failed to get trip")
		return
	}

	response.JSON(w, http.StatusOK, t)
}

// Update handles PUT /trips/{id}
// @Summary      Update trip metadata
// @Tags         trips
// @Accept       json
// @Produce      json
// @Param        id path string true "Trip ID"
// @Param        request body UpdateTripRequest true "Fields to update"
// @Success      200 {object} response.APIResponse{data=Trip}
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /trips/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req UpdateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	t, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), origin(r), &req)
	if err != nil {
		writeServiceError(w, err, "Failed to update trip")
		return
	}

	response.JSON(w, http.StatusOK, t)
}

// Delete handles DELETE /trips/{id}
// @Summary      Delete a trip
// @Description  Delete a trip; owner only
// @Tags         trips
// @Produce      json
// @Param        id path string true "Trip ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /trips/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err, "Failed to delete trip")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Trip deleted"})
}

// BulkDelete handles POST /trips/bulk-delete
// @Summary      Delete multiple trips
// @Description  Delete up to 50 owned trips in one call; non-owned ids are skipped
// @Tags         trips
// @Accept       json
// @Produce      json
// @Param        request body BulkDeleteRequest true "Trip ids to delete"
// @Success      200 {object} response.APIResponse
// @Failure      400 {object} response.APIResponse
// @Router       /trips/bulk-delete [post]
func (h *Handler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req BulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	deleted, err := h.service.BulkDelete(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, err, "Failed to delete trips")
		return
	}

	response.JSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

// ToggleFavorite handles PATCH /trips/{id}/favorite
// @Summary      Toggle favorite flag
// @Tags         trips
// @Produce      json
// @Param        id path string true "Trip ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /trips/{id}/favorite [patch]
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	fav, err := h.service.ToggleFavorite(r.Context(), userID, chi.URLParam(r, "id"), origin(r))
	if err != nil {
		writeServiceError(w, err, "Failed to toggle favorite")
		return
	}

	response.JSON(w, http.StatusOK, map[string]bool{"is_favorite": fav})
}

// Stats handles GET /trips/stats/overview
// @Summary      Trip statistics overview
// @Tags         trips
// @Produce      json
// @Success      200 {object} response.APIResponse{data=StatsResponse}
// @Failure      401 {object} response.APIResponse
// @Router       /trips/stats/overview [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	stats, err := h.service.Stats(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to compute stats")
		return
	}

	response.JSON(w, http.StatusOK, stats)
}

// EnableShare handles POST /trips/{id}/share/enable
// @Summary      Enable public sharing
// @Description  Generate a fresh share token, invalidating any previous one; owner only
// @Tags         sharing
// @Produce      json
// @Param        id path string true "Trip ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /trips/{id}/share/enable [post]
func (h *Handler) EnableShare(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	token, err := h.service.EnableShare(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err, "Failed to enable sharing")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"token": token})
}

// DisableShare handles POST /trips/{id}/share/disable
// @Summary      Disable public sharing
// @Tags         sharing
// @Produce      json
// @Param        id path string true "Trip ID"
// @Success      200 {object} response.APIResponse
// @Failure      403 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /trips/{id}/share/disable [post]
func (h *Handler) DisableShare(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	if err := h.service.DisableShare(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err, "Failed to disable sharing")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Sharing disabled"})
}

// ResolvePublic handles GET /public/trips/{token}. Anonymous; not mounted
// behind the auth middleware. Missing, unknown and disabled tokens are
// indistinguishable to the caller.
// @Summary      View a publicly shared trip
// @Tags         sharing
// @Produce      json
// @Param        token path string true "Share token"
// @Success      200 {object} response.APIResponse{data=PublicTrip}
// @Failure      404 {object} response.APIResponse
// @Router       /public/trips/{token} [get]
func (h *Handler) ResolvePublic(w http.ResponseWriter, r *http.Request) {
	t, err := h.service.ResolvePublic(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		if errors.Is(err, ErrTripNotFound) {
			response.NotFound(w, "Trip not found")
			return
		}
		response.InternalError(w, "Failed to load trip")
		return
	}

	response.JSON(w, http.StatusOK, t)
}

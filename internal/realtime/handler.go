package realtime

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/mfadel/tripcollab/internal/auth"
	"github.com/mfadel/tripcollab/pkg/response"
)

// AccessChecker answers whether a user may read a trip, and therefore
// join its room. Satisfied by the trip service.
type AccessChecker interface {
	CanReadTrip(ctx context.Context, tripID string, userID int64) bool
}

// Handler upgrades authenticated HTTP requests to websocket sessions
type Handler struct {
	hub      *Hub
	tokens   *auth.TokenManager
	access   AccessChecker
	logger   zerolog.Logger
	upgrader websocket.Upgrader
}

// NewHandler creates a websocket handler. checkOrigin decides which
// browser origins may connect; nil allows all.
func NewHandler(hub *Hub, tokens *auth.TokenManager, access AccessChecker, logger zerolog.Logger, checkOrigin func(r *http.Request) bool) *Handler {
	if checkOrigin == nil {
		checkOrigin = func(*http.Request) bool { return true }
	}
	return &Handler{
		hub:    hub,
		tokens: tokens,
		access: access,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// ServeHTTP handles GET /ws?token=JWT. Browser websocket clients cannot
// set an Authorization header, so the token rides in the query string
// and is checked before the upgrade.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		response.Error(w, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication token required")
		return
	}

	userID, err := h.tokens.Verify(token)
	if err != nil {
		response.Error(w, http.StatusUnauthorized, "AUTH_FAILED", "Invalid authentication token")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response
		h.logger.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := newClient(uuid.NewString(), userID, h.hub, h.access, conn)
	client.start()

	client.trySend(Message{
		Type: MessageTypeConnected,
		Data: ConnectedData{ConnectionID: client.ID, UserID: userID},
	})

	h.logger.Info().
		Str("connection_id", client.ID).
		Int64("user_id", userID).
		Msg("websocket client connected")
}

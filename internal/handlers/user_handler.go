package handlers

import (
	"context"
	"net/http"

	"github.com/citywatch/backend/internal/auth"
	"github.com/citywatch/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AccountService is the interface that wraps methods for account profile business logic.
type AccountService interface {
	// Method GetProfile retrieves the account behind an authenticated request.
	//
	// If no account with such ID exists, the error will be returned together with "nil" value.
	GetProfile(ctx context.Context, accountID int) (*models.Account, error)
	// Method ListCitizens retrieves all citizen accounts, newest first.
	ListCitizens(ctx context.Context) ([]models.Account, error)
}

// UserHandler handles HTTP requests for account profiles
type UserHandler struct {
	BaseHandler
	service AccountService
}

// NewUserHandler creates a new user handler
func NewUserHandler(svc AccountService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all user handler routes.
// The citizen directory is restricted to police accounts.
func (h *UserHandler) RegisterRoutes(r chi.Router, authMiddleware, policeMiddleware func(http.Handler) http.Handler) {
	r.Route("/user", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Get("/profile", h.GetProfile)
		})

		r.Group(func(r chi.Router) {
			r.Use(policeMiddleware)
			r.Get("/citizens", h.ListCitizens)
		})
	})
}

// GetProfile handles GET /user/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.GetAccountID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	account, err := h.service.GetProfile(r.Context(), accountID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"user":    account,
	})
}

// ListCitizens handles GET /user/citizens
func (h *UserHandler) ListCitizens(w http.ResponseWriter, r *http.Request) {
	citizens, err := h.service.ListCitizens(r.Context())
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	if citizens == nil {
		citizens = []models.Account{}
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"citizens": citizens,
	})
}

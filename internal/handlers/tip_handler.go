package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/citywatch/backend/internal/auth"
	"github.com/citywatch/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TipService is the interface that wraps methods for tip business logic.
type TipService interface {
	// Method SubmitAnonymous validates and stores an anonymous tip.
	//
	// No authentication is required and no account is linked to the record.
	//
	// If validation fails or the tip cannot be stored, the error will be returned.
	SubmitAnonymous(ctx context.Context, req *models.SubmitTipRequest) error
	// Method SubmitSOS stores a high-priority tip for the authenticated account
	// and dispatches an alert to police accounts.
	SubmitSOS(ctx context.Context, accountID int, req *models.SubmitSOSRequest) error
	// Method ListByAccount retrieves the authenticated account's tips, newest first.
	ListByAccount(ctx context.Context, accountID int) ([]models.TipListItem, error)
	// Method UpdateStatus transitions a tip's status.
	UpdateStatus(ctx context.Context, tipID int, status string) error
}

// TipHandler handles HTTP requests for tips
type TipHandler struct {
	BaseHandler
	service TipService
}

// NewTipHandler creates a new tip handler
func NewTipHandler(svc TipService, logger *zap.Logger) *TipHandler {
	return &TipHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all tip handler routes.
// Submission is public; listing and SOS require authentication and
// status updates are restricted to police accounts.
func (h *TipHandler) RegisterRoutes(r chi.Router, authMiddleware, policeMiddleware func(http.Handler) http.Handler) {
	r.Route("/tips", func(r chi.Router) {
		r.Post("/submit", h.Submit)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Get("/", h.List)
			r.Post("/sos", h.SubmitSOS)
		})

		r.Group(func(r chi.Router) {
			r.Use(policeMiddleware)
			r.Patch("/{id}/status", h.UpdateStatus)
		})
	})
}

// Submit handles POST /tips/submit
func (h *TipHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitTipRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	if err := h.service.SubmitAnonymous(r.Context(), &req); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Tip submitted successfully",
	})
}

// List handles GET /tips
func (h *TipHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.GetAccountID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	tips, err := h.service.ListByAccount(r.Context(), accountID)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}
	if tips == nil {
		tips = []models.TipListItem{}
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"tips":    tips,
	})
}

// SubmitSOS handles POST /tips/sos
func (h *TipHandler) SubmitSOS(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.GetAccountID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req models.SubmitSOSRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	if err := h.service.SubmitSOS(r.Context(), accountID, &req); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "SOS submitted successfully",
	})
}

// UpdateStatus handles PATCH /tips/{id}/status
func (h *TipHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	tipID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid tip id")
		return
	}

	var req models.UpdateTipStatusRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	if err := h.service.UpdateStatus(r.Context(), tipID, req.Status); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Tip status updated",
	})
}

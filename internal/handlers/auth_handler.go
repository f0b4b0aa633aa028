package handlers

import (
	"context"
	"net/http"

	"github.com/citywatch/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for account signup and login business logic.
type AuthService interface {
	// Method SignupCitizen validates and creates a citizen account.
	//
	// "req" parameter carries the citizen registration fields.
	//
	// If validation fails or the email is already registered, the error will be returned.
	SignupCitizen(ctx context.Context, req *models.CitizenSignupRequest) error
	// Method SignupPolice validates and creates a police account.
	//
	// Please reference SignupCitizen method for more information about error values.
	// Police accounts additionally require a unique badge number.
	SignupPolice(ctx context.Context, req *models.PoliceSignupRequest) error
	// Method Login authenticates an account of the given role and issues a bearer token.
	//
	// If the credentials do not match any account, the error will be returned together with empty values.
	Login(ctx context.Context, role models.Role, req *models.LoginRequest) (string, *models.Account, error)
}

// AuthHandler handles HTTP requests for signup and login
type AuthHandler struct {
	BaseHandler
	service AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(svc AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service:     svc,
		BaseHandler: BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all auth handler routes
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/citizen/signup", h.CitizenSignup)
		r.Post("/citizen/login", h.CitizenLogin)
		r.Post("/police/signup", h.PoliceSignup)
		r.Post("/police/login", h.PoliceLogin)
	})
}

// CitizenSignup handles POST /auth/citizen/signup
func (h *AuthHandler) CitizenSignup(w http.ResponseWriter, r *http.Request) {
	var req models.CitizenSignupRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	if err := h.service.SignupCitizen(r.Context(), &req); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Account created successfully",
	})
}

// CitizenLogin handles POST /auth/citizen/login
func (h *AuthHandler) CitizenLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	token, _, err := h.service.Login(r.Context(), models.RoleCitizen, &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Login successful",
		"token":   token,
	})
}

// PoliceSignup handles POST /auth/police/signup
func (h *AuthHandler) PoliceSignup(w http.ResponseWriter, r *http.Request) {
	var req models.PoliceSignupRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	if err := h.service.SignupPolice(r.Context(), &req); err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Account created successfully",
	})
}

// PoliceLogin handles POST /auth/police/login
//
// The response carries an isPolice marker so clients can store the session role.
func (h *AuthHandler) PoliceLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.DecodeJSON(w, r, &req) {
		return
	}

	token, _, err := h.service.Login(r.Context(), models.RolePolice, &req)
	if err != nil {
		h.RespondServiceError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  "Login successful",
		"token":    token,
		"isPolice": true,
	})
}

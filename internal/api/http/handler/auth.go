package handler

import (
	"net/http"

	"github.com/dtroode/udon-shop-server/internal/logger"
	"github.com/dtroode/udon-shop-server/internal/model"
	"github.com/dtroode/udon-shop-server/internal/service"
)

// Auth exposes registration, login and logout.
type Auth struct {
	authService *service.Auth
	sessions    *service.Sessions
	ctxManager  model.ContextManager
	logger      *logger.Logger
}

func NewAuth(authService *service.Auth, sessions *service.Sessions, ctxManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		sessions:    sessions,
		ctxManager:  ctxManager,
		logger:      logger,
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string         `json:"token"`
	User  model.Identity `json:"user"`
}

// Register handles POST /api/register.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	identity, err := h.authService.Register(r.Context(), service.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Phone:    req.Phone,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, identity)
}

// Login handles POST /api/login.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	identity, token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.sessions.For(identity.ID).Set(r.Context(), identity); err != nil {
		h.logger.Warn("Auth handler: failed to persist session",
			"user_id", identity.ID,
			"error", err.Error())
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: identity})
}

// Logout handles POST /api/logout (authenticated).
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ctxManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := h.sessions.For(userID).Clear(r.Context()); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/me (authenticated).
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ctxManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	identity, err := h.authService.GetUserByID(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, identity)
}

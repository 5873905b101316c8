package authhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"epms/internal/domain/auth"
	"epms/internal/domain/payroll"
	"epms/internal/transport/http/api"
	"epms/internal/transport/http/middleware"
	"epms/internal/transport/http/shared"
	"epms/internal/validate"
)

type Handler struct {
	Store      *auth.Store
	JWTSecret  string
	SessionTTL time.Duration
}

func NewHandler(store *auth.Store, jwtSecret string, sessionTTL time.Duration) *Handler {
	return &Handler{Store: store, JWTSecret: jwtSecret, SessionTTL: sessionTTL}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/register-admin", h.handleRegisterAdmin)
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.Get("/check-auth", h.handleCheckAuth)
}

type credentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// handleRegisterAdmin creates the first and only administrator. The
// existence pre-check gives a friendly 403; the partial unique index in
// the users table is what actually closes the door under concurrency.
func (h *Handler) handleRegisterAdmin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		shared.DecodeError(w, requestID)
		return
	}

	var errs payroll.FieldErrors
	if !validate.String(payload.Username, 3, 50) {
		errs = append(errs, payroll.FieldError{
			Field:   "username",
			Kind:    payroll.KindInvalidFormat,
			Message: "username must be between 3 and 50 characters",
		})
	}
	if !validate.String(payload.Password, 8, 72) {
		errs = append(errs, payroll.FieldError{
			Field:   "password",
			Kind:    payroll.KindInvalidFormat,
			Message: "password must be between 8 and 72 characters",
		})
	}
	if len(errs) > 0 {
		shared.WriteDomainError(w, requestID, errs)
		return
	}

	exists, err := h.Store.AdminExists(r.Context())
	if err != nil {
		slog.Error("admin existence check failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "database_error", "database error", requestID)
		return
	}
	if exists {
		api.Fail(w, http.StatusForbidden, "registration_closed", "admin already exists, registration is disabled", requestID)
		return
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "hash_error", "could not hash password", requestID)
		return
	}

	userID, err := h.Store.CreateAdmin(r.Context(), payload.Username, hash)
	if err != nil {
		if errors.Is(err, auth.ErrRegistrationClosed) {
			api.Fail(w, http.StatusForbidden, "registration_closed", "admin already exists, registration is disabled", requestID)
			return
		}
		slog.Error("admin registration failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "database_error", "database error", requestID)
		return
	}

	api.Created(w, map[string]any{"userId": userID, "message": "admin registration successful, please login"}, requestID)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		shared.DecodeError(w, requestID)
		return
	}
	if payload.Username == "" || payload.Password == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "username and password are required", requestID)
		return
	}

	user, err := h.Store.FindUserByUsername(r.Context(), payload.Username)
	if err != nil {
		if auth.IsNoRows(err) {
			api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password", requestID)
			return
		}
		slog.Error("user lookup failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "database_error", "database error", requestID)
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, payload.Password); err != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid username or password", requestID)
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, auth.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, h.SessionTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_error", "could not issue token", requestID)
		return
	}

	expires := time.Now().Add(h.SessionTTL)
	if err := h.Store.CreateSession(r.Context(), user.ID, middleware.HashToken(token), expires); err != nil {
		slog.Error("session create failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "database_error", "database error", requestID)
		return
	}

	api.Success(w, map[string]any{
		"token": token,
		"user":  userResponse{ID: user.ID, Username: user.Username, Role: user.Role},
	}, requestID)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "please login", requestID)
		return
	}

	if err := h.Store.RevokeSession(r.Context(), user.UserID, middleware.GetTokenHash(r.Context())); err != nil {
		slog.Error("session revoke failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "database_error", "database error", requestID)
		return
	}

	api.Success(w, map[string]any{"message": "logout successful"}, requestID)
}

func (h *Handler) handleCheckAuth(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Success(w, map[string]any{"isAuthenticated": false}, requestID)
		return
	}

	api.Success(w, map[string]any{
		"isAuthenticated": true,
		"user":            userResponse{ID: user.UserID, Username: user.Username, Role: user.Role},
	}, requestID)
}

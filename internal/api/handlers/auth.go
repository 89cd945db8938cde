package handlers

import (
	"net/http"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/middleware"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/request"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/response"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/validation"
)

// AuthHandler handles account and session HTTP requests
type AuthHandler struct {
	authService *service.AuthService
	cookie      middleware.SessionCookie
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService, cookie middleware.SessionCookie) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
	}
}

// SessionResponse is returned after a successful register or login.
// The token is also set as the session cookie.
type SessionResponse struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func (h *AuthHandler) startSession(w http.ResponseWriter, status int, session service.Session) {
	h.cookie.Set(w, session.Token, h.authService.TokenTTL())
	response.RespondJSON(w, status, SessionResponse{User: session.User, Token: session.Token})
}

// Register handles POST requests to create an account.
//
// Endpoint: POST /api/auth/register
// Request Body: RegisterRequest (name, email, password, confirm_password)
// Response: 201 Created with SessionResponse and the session cookie
// Error: 400 Bad Request if validation fails
// Error: 409 Conflict if the email is already registered
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.RegisterRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateRegister(req); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToCreateUser)
		return
	}

	session, err := h.authService.Register(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToCreateUser)
		return
	}

	h.startSession(w, http.StatusCreated, session)
}

// Login handles POST requests to sign in.
//
// Endpoint: POST /api/auth/login
// Request Body: LoginRequest (email, password)
// Response: 200 OK with SessionResponse and the session cookie
// Error: 401 Unauthorized for an unknown email or a wrong password
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.LoginRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateLogin(req); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveUser)
		return
	}

	session, err := h.authService.Login(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveUser)
		return
	}

	h.startSession(w, http.StatusOK, session)
}

// Logout clears the session cookie. It never fails.
func (h *AuthHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	h.cookie.Clear(w)
	response.RespondJSON(w, http.StatusOK, MessageResponse{Message: "logged out"})
}

// Me returns the signed-in user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	user, err := h.authService.GetUser(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveUser)
		return
	}

	response.RespondJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT requests to change name and email.
//
// Endpoint: PUT /api/auth/profile
// Request Body: UpdateProfileRequest (name, email)
// Response: 200 OK with the updated user
// Error: 400 Bad Request if validation fails
// Error: 409 Conflict if another account uses the email
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	req, err := parseJSON[request.UpdateProfileRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateProfile(req); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToUpdateUser)
		return
	}

	user, err := h.authService.UpdateProfile(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToUpdateUser)
		return
	}

	response.RespondJSON(w, http.StatusOK, user)
}

// UpdatePassword handles PUT requests to change the password.
//
// Endpoint: PUT /api/auth/password
// Request Body: UpdatePasswordRequest (current_password, new_password)
// Response: 200 OK with a confirmation message
// Error: 400 Bad Request if validation fails
// Error: 401 Unauthorized if the current password is wrong
func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	req, err := parseJSON[request.UpdatePasswordRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdatePassword(req); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToUpdateUser)
		return
	}

	if err := h.authService.UpdatePassword(r.Context(), id, req); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToUpdateUser)
		return
	}

	response.RespondJSON(w, http.StatusOK, MessageResponse{Message: "password updated"})
}

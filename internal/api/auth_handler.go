package api

import (
	"net/http"

	"github.com/Nivlac17/jwt-pizza-service/internal/api/shared"
	"github.com/Nivlac17/jwt-pizza-service/internal/service"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/auth.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req, msgRegisterRequired) {
		return
	}

	result, err := h.authService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to register user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		User:  userToResponse(result.User),
		Token: result.Token,
	})
}

// Login handles PUT /api/auth.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req, "email and password are required") {
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to authenticate user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		User:  userToResponse(result.User),
		Token: result.Token,
	})
}

// Logout handles DELETE /api/auth. It revokes the token used for the request.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	if err := h.authService.Logout(r.Context(), p.TokenID); err != nil {
		HandleAPIError(w, r, err, "Failed to log out")
		return
	}
	shared.RespondWithMessage(w, r, "logout successful")
}

package api

import (
	"net/http"

	"github.com/Nivlac17/jwt-pizza-service/internal/api/shared"
	"github.com/Nivlac17/jwt-pizza-service/internal/service"
)

// UserHandler serves /api/user.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers handles GET /api/user. Non-admins receive an empty object.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	page, name := pageFromQuery(r)
	result, err := h.userService.ListUsers(r.Context(), p.User, page, name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list users")
		return
	}
	if result == nil {
		shared.RespondWithJSON(w, r, http.StatusOK, struct{}{})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, UserListResponse{
		Users: usersToResponse(result.Users),
		More:  result.More,
	})
}

// GetMe handles GET /api/user/me.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(p.User))
}

// UpdateUser handles PUT /api/user/{userID}.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	ids, ok := handlePathUUIDs(w, r, "userID")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !decodeAndValidate(w, r, &req, "") {
		return
	}

	result, err := h.userService.UpdateUser(r.Context(), p.User, p.TokenID, ids[0], service.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		User:  userToResponse(result.User),
		Token: result.Token,
	})
}

// DeleteUser handles DELETE /api/user/{userID}.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	ids, ok := handlePathUUIDs(w, r, "userID")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(r.Context(), p.User, ids[0]); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithMessage(w, r, "not implemented")
}

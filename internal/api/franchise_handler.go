package api

import (
	"net/http"

	"github.com/Nivlac17/jwt-pizza-service/internal/api/shared"
	"github.com/Nivlac17/jwt-pizza-service/internal/service"
)

// FranchiseHandler serves /api/franchise and its stores.
type FranchiseHandler struct {
	franchiseService service.FranchiseService
}

// NewFranchiseHandler creates a FranchiseHandler.
func NewFranchiseHandler(franchiseService service.FranchiseService) *FranchiseHandler {
	return &FranchiseHandler{franchiseService: franchiseService}
}

// ListFranchises handles GET /api/franchise.
func (h *FranchiseHandler) ListFranchises(w http.ResponseWriter, r *http.Request) {
	page, name := pageFromQuery(r)
	result, err := h.franchiseService.ListFranchises(r.Context(), page, name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list franchises")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, FranchiseListResponse{
		Franchises: result.Franchises,
		More:       result.More,
	})
}

// ListUserFranchises handles GET /api/franchise/{userID}. Callers that may
// not see the list get an empty array.
func (h *FranchiseHandler) ListUserFranchises(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	ids, ok := handlePathUUIDs(w, r, "userID")
	if !ok {
		return
	}

	list, err := h.franchiseService.ListForUser(r.Context(), p.User, ids[0])
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list franchises")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, list)
}

// CreateFranchise handles POST /api/franchise.
func (h *FranchiseHandler) CreateFranchise(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	var req CreateFranchiseRequest
	if !decodeAndValidate(w, r, &req, "") {
		return
	}
	emails := make([]string, 0, len(req.Admins))
	for _, a := range req.Admins {
		emails = append(emails, a.Email)
	}

	franchise, err := h.franchiseService.CreateFranchise(r.Context(), p.User, req.Name, emails)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create franchise")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, franchise)
}

// DeleteFranchise handles DELETE /api/franchise/{franchiseID}. The route is open.
func (h *FranchiseHandler) DeleteFranchise(w http.ResponseWriter, r *http.Request) {
	ids, ok := handlePathUUIDs(w, r, "franchiseID")
	if !ok {
		return
	}

	if err := h.franchiseService.DeleteFranchise(r.Context(), ids[0]); err != nil {
		HandleAPIError(w, r, err, "Failed to delete franchise")
		return
	}
	shared.RespondWithMessage(w, r, "franchise deleted")
}

// CreateStore handles POST /api/franchise/{franchiseID}/store.
func (h *FranchiseHandler) CreateStore(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	ids, ok := handlePathUUIDs(w, r, "franchiseID")
	if !ok {
		return
	}

	var req CreateStoreRequest
	if !decodeAndValidate(w, r, &req, "") {
		return
	}

	st, err := h.franchiseService.CreateStore(r.Context(), p.User, ids[0], req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create store")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, st)
}

// GetStore handles GET /api/franchise/{franchiseID}/store/{storeID}.
func (h *FranchiseHandler) GetStore(w http.ResponseWriter, r *http.Request) {
	ids, ok := handlePathUUIDs(w, r, "franchiseID", "storeID")
	if !ok {
		return
	}

	st, err := h.franchiseService.GetStore(r.Context(), ids[0], ids[1])
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, st)
}

// DeleteStore handles DELETE /api/franchise/{franchiseID}/store/{storeID}.
func (h *FranchiseHandler) DeleteStore(w http.ResponseWriter, r *http.Request) {
	p, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	ids, ok := handlePathUUIDs(w, r, "franchiseID", "storeID")
	if !ok {
		return
	}

	if err := h.franchiseService.DeleteStore(r.Context(), p.User, ids[0], ids[1]); err != nil {
		HandleAPIError(w, r, err, "Failed to delete store")
		return
	}
	shared.RespondWithMessage(w, r, "store deleted")
}

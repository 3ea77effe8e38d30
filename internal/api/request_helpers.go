package api

import (
	"log/slog"
	"net/http"

	"github.com/Nivlac17/jwt-pizza-service/internal/api/shared"
	"github.com/Nivlac17/jwt-pizza-service/internal/domain"
	"github.com/Nivlac17/jwt-pizza-service/internal/platform/logger"
	"github.com/Nivlac17/jwt-pizza-service/internal/service"
	"github.com/Nivlac17/jwt-pizza-service/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// requirePrincipal returns the authenticated principal placed in the context
// by the auth middleware. It writes a 401 and returns false when none is present.
func requirePrincipal(w http.ResponseWriter, r *http.Request) (*service.Principal, bool) {
	p := shared.GetPrincipal(r.Context())
	if p == nil || p.User == nil {
		logger.FromContextOrDefault(r.Context(), slog.Default()).
			Warn("principal not found in request context")
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return nil, false
	}
	return p, true
}

// getPathUUID extracts a UUID from the URL path parameters.
// It parses and validates the UUID, handling common error cases.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}

// handlePathUUIDs extracts every named path UUID in order. It writes a 400
// and returns false on the first invalid parameter.
func handlePathUUIDs(w http.ResponseWriter, r *http.Request, paramNames ...string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, 0, len(paramNames))
	for _, name := range paramNames {
		id, err := getPathUUID(r, name)
		if err != nil {
			logger.FromContextOrDefault(r.Context(), slog.Default()).
				Debug("invalid path parameter",
					slog.String("param_name", name),
					slog.String("value", chi.URLParam(r, name)))
			HandleAPIError(w, r, err, "")
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// decodeAndValidate parses the JSON body into v and validates it. On failure
// it writes a 400, using requiredMsg for validation failures when set.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}, requiredMsg string) bool {
	if err := shared.DecodeJSON(w, r, v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidBody, err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		if requiredMsg != "" && isMissingField(err) {
			shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, requiredMsg, err)
		} else {
			HandleValidationError(w, r, err)
		}
		return false
	}
	return true
}

// pageFromQuery reads the page, limit and name query parameters.
func pageFromQuery(r *http.Request) (store.Page, string) {
	page := store.Page{
		Number: shared.QueryInt(r, "page", 1),
		Limit:  shared.QueryInt(r, "limit", service.DefaultPageLimit),
	}
	return page, r.URL.Query().Get("name")
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/rishav-ranjan/healthlocker/internal/api/middleware"
	"github.com/rishav-ranjan/healthlocker/internal/records"
	"github.com/rishav-ranjan/healthlocker/internal/repositories"
	"github.com/rishav-ranjan/healthlocker/internal/store"
	"github.com/rishav-ranjan/healthlocker/internal/utils"
)

// svc builds the ownership engine over the connected database. The
// engine is a stateless wrapper, so constructing one per request is free.
func svc() *records.Service {
	return records.NewService(store.NewGorm(repositories.DB))
}

// requireActor pulls the authenticated actor out of the request context,
// writing a 401 if the auth middleware did not run.
func requireActor(w http.ResponseWriter, r *http.Request) (records.Actor, bool) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
			Success: false,
			Message: "Unauthorized",
		})
	}
	return actor, ok
}

// respondError maps engine and store failures onto the HTTP status
// taxonomy: validation and conflicts 400, forbidden 403, absence 404,
// everything else a bare 500.
func respondError(w http.ResponseWriter, err error) {
	var verr *records.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: verr.Message,
			Field:   verr.Field,
		})
	case errors.Is(err, store.ErrConflict):
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Already exists",
		})
	case errors.Is(err, store.ErrNotFound):
		utils.JSONResponse(w, http.StatusNotFound, utils.Payload{
			Success: false,
			Message: "Not found",
		})
	case errors.Is(err, records.ErrForbidden):
		utils.JSONResponse(w, http.StatusForbidden, utils.Payload{
			Success: false,
			Message: "Forbidden",
		})
	default:
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Internal server error",
		})
	}
}

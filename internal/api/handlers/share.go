package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rishav-ranjan/healthlocker/internal/utils"
)

// POST /api/shares
// CreateShare godoc
// @Summary Share a report with another user
// @Description Grants the target username read access to one of the actor's reports. Repeating the call creates another grant.
// @Tags Shares
// @Accept json
// @Produce json
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Failure 404 {object} utils.Payload "Report not owned or target username unknown"
// @Router /api/shares [post]
func CreateShare(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var input struct {
		ReportID           uint   `json:"reportId"`
		SharedWithUsername string `json:"sharedWithUsername"`
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid input",
		})
		return
	}

	share, err := svc().CreateShare(r.Context(), actor, input.ReportID, input.SharedWithUsername)
	if err != nil {
		respondError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "Report shared successfully",
		Data:    share,
	})
}

// GET /api/shares
// ListShares godoc
// @Summary List reports shared with me
// @Description Returns shares targeting the actor's username joined with their reports, newest first.
// @Tags Shares
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /api/shares [get]
func ListShares(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	shared, err := svc().ListSharedWith(r.Context(), actor.Username)
	if err != nil {
		respondError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Shared reports retrieved successfully",
		Data:    shared,
	})
}

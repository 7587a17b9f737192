package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/rishav-ranjan/healthlocker/internal/records"
	"github.com/rishav-ranjan/healthlocker/internal/utils"
)

// GET /api/vitals
func ListVitals(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	query := records.VitalQuery{Type: r.URL.Query().Get("type")}
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		days, err := strconv.Atoi(daysStr)
		if err != nil || days < 0 {
			utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
				Success: false,
				Message: "must be a non-negative integer",
				Field:   "days",
			})
			return
		}
		query.SinceDays = days
	}

	vitals, err := svc().ListVitals(r.Context(), actor, query)
	if err != nil {
		respondError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Vitals retrieved successfully",
		Data:    vitals,
	})
}

// POST /api/vitals
func CreateVital(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	var input struct {
		Type       string `json:"type"`
		Value      string `json:"value"`
		Unit       string `json:"unit"`
		ObservedAt string `json:"observedAt"`
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

	observedAt, err := parseObservedAt(input.ObservedAt)
	if err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "must be an RFC 3339 timestamp or YYYY-MM-DD date",
			Field:   "observedAt",
		})
		return
	}

	vital, err := svc().RecordVital(r.Context(), actor, records.VitalInput{
		Type:       input.Type,
		Value:      input.Value,
		Unit:       input.Unit,
		ObservedAt: observedAt,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "Vital recorded successfully",
		Data:    vital,
	})
}

// GET /api/vitals/latest
func LatestVitals(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	latest, err := svc().CurrentReadings(r.Context(), actor)
	if err != nil {
		respondError(w, err)
		return
	}

	// Attach the numeric value charts plot; readings that don't parse get
	// no chartValue and render nothing client-side.
	readings := make([]map[string]any, 0, len(latest))
	for _, v := range latest {
		entry := map[string]any{"vital": v}
		if n, ok := records.ChartValue(v.Value); ok {
			entry["chartValue"] = n
		}
		readings = append(readings, entry)
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Latest vitals retrieved successfully",
		Data:    readings,
	})
}

func parseObservedAt(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

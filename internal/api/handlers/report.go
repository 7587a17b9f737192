package handlers

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rishav-ranjan/healthlocker/internal/config"
	"github.com/rishav-ranjan/healthlocker/internal/records"
	"github.com/rishav-ranjan/healthlocker/internal/repositories"
	"github.com/rishav-ranjan/healthlocker/internal/store"
	"github.com/rishav-ranjan/healthlocker/internal/utils"
)

// reportID parses the {id} path segment. Returns 0 when it is not a
// positive integer; the caller turns that into a 404.
func reportID(r *http.Request) uint {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil || id == 0 {
		return 0
	}
	return uint(id)
}

// GET /api/reports
// ListReports godoc
// @Summary List the actor's own reports
// @Description Returns reports owned by the authenticated user, newest report date first.
// @Tags Reports
// @Produce json
// @Param type query string false "Report type filter"
// @Param from query string false "Earliest report date (YYYY-MM-DD)"
// @Param to query string false "Latest report date (YYYY-MM-DD)"
// @Success 200 {object} utils.Payload
// @Router /api/reports [get]
func ListReports(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	filter := store.ReportFilter{
		Type: r.URL.Query().Get("type"),
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}

	reports, err := svc().ListReports(r.Context(), actor, filter)
	if err != nil {
		respondError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Reports retrieved successfully",
		Data:    reports,
	})
}

// POST /api/reports
// CreateReport godoc
// @Summary Upload a medical report
// @Description Creates a report from multipart fields (title, type, reportDate, summary) plus the report file (≤10 MB).
// @Tags Reports
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /api/reports [post]
func CreateReport(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	const maxUploadSize = 10 << 20 // 10 MB
	// Hard cap on the request body; ParseMultipartForm alone only bounds
	// the in-memory buffer and would spill bigger uploads to temp files.
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
				Success: false,
				Message: "File exceeds the 10 MB upload limit",
				Field:   "file",
			})
			return
		}
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "Invalid file upload form",
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.JSONResponse(w, http.StatusBadRequest, utils.Payload{
			Success: false,
			Message: "No file uploaded",
			Field:   "file",
		})
		return
	}
	defer file.Close()

	var summary *string
	if s := r.FormValue("summary"); s != "" {
		summary = &s
	}
	input := records.CreateReportInput{
		Title:      r.FormValue("title"),
		Type:       r.FormValue("type"),
		ReportDate: r.FormValue("reportDate"),
		Summary:    summary,
	}

	uploadDir := config.Envs.UploadDir
	_ = os.MkdirAll(uploadDir, os.ModePerm)

	storedName := uuid.New().String() + "_" + filepath.Base(header.Filename)
	dstPath := filepath.Join(uploadDir, storedName)

	dst, err := os.Create(dstPath)
	if err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Failed to store file",
		})
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
			Success: false,
			Message: "Failed to store file",
		})
		return
	}

	// Opaque path reference; the engine never looks at the bytes.
	input.FilePath = "/uploads/" + storedName

	report, err := svc().CreateReport(r.Context(), actor, input)
	if err != nil {
		_ = os.Remove(dstPath)
		respondError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusCreated, utils.Payload{
		Success: true,
		Message: "Report created successfully",
		Data:    report,
	})
}

// GET /api/reports/{id}
// GetReport godoc
// @Summary Fetch a single report
// @Description Returns a report the actor owns or that has been shared with their username.
// @Tags Reports
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} utils.Payload
// @Failure 403 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /api/reports/{id} [get]
func GetReport(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	id := reportID(r)
	if id == 0 {
		respondError(w, store.ErrNotFound)
		return
	}

	report, err := svc().AuthorizeRead(r.Context(), actor, id)
	if err != nil {
		respondError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Report retrieved successfully",
		Data:    report,
	})
}

// DELETE /api/reports/{id}
func DeleteReport(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	id := reportID(r)
	if id == 0 {
		respondError(w, store.ErrNotFound)
		return
	}

	if err := svc().DeleteReport(r.Context(), actor, id); err != nil {
		respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GET /api/reports/{id}/download
// DownloadReport godoc
// @Summary Download a report file
// @Description Returns a presigned URL when the object store is configured, otherwise streams the local file.
// @Tags Reports
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} utils.Payload
// @Failure 404 {object} utils.Payload
// @Router /api/reports/{id}/download [get]
func DownloadReport(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	id := reportID(r)
	if id == 0 {
		respondError(w, store.ErrNotFound)
		return
	}

	report, err := svc().AuthorizeRead(r.Context(), actor, id)
	if err != nil {
		respondError(w, err)
		return
	}

	storedName := path.Base(report.FilePath)

	if repositories.ObjectStoreEnabled() {
		url, err := repositories.GeneratePresignedGetURL(r.Context(), storedName, 15*time.Minute)
		if err != nil {
			utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
				Success: false,
				Message: "Failed to generate download URL",
			})
			return
		}
		utils.JSONResponse(w, http.StatusOK, utils.Payload{
			Success: true,
			Message: "Presigned download URL generated successfully",
			Data: map[string]any{
				"url":   url,
				"title": report.Title,
			},
		})
		return
	}

	localPath := filepath.Join(config.Envs.UploadDir, storedName)
	if _, err := os.Stat(localPath); err != nil {
		respondError(w, store.ErrNotFound)
		return
	}
	http.ServeFile(w, r, localPath)
}

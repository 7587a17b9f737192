package handlers

import (
	"net/http"

	"github.com/rishav-ranjan/healthlocker/internal/models"
	"github.com/rishav-ranjan/healthlocker/internal/store"
	"github.com/rishav-ranjan/healthlocker/internal/utils"
	"golang.org/x/sync/errgroup"
)

// GET /api/dashboard
// Dashboard fans out the three reads the landing page needs. The queries
// are independent, so they run concurrently.
func Dashboard(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}

	s := svc()
	var (
		reports  []models.Report
		readings []models.Vital
		shared   []store.SharedReport
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		reports, err = s.ListReports(ctx, actor, store.ReportFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		readings, err = s.CurrentReadings(ctx, actor)
		return err
	})
	g.Go(func() error {
		var err error
		shared, err = s.ListSharedWith(ctx, actor.Username)
		return err
	})
	if err := g.Wait(); err != nil {
		respondError(w, err)
		return
	}

	utils.JSONResponse(w, http.StatusOK, utils.Payload{
		Success: true,
		Message: "Dashboard retrieved successfully",
		Data: map[string]any{
			"reports":         reports,
			"currentReadings": readings,
			"sharedWithMe":    len(shared),
		},
	})
}

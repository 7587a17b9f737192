package records

import (
	"context"
	"time"

	"github.com/rishav-ranjan/healthlocker/internal/models"
	"github.com/rishav-ranjan/healthlocker/internal/store"
)

// Actor is the authenticated identity an operation runs as. It is passed
// explicitly on every call; the engine keeps no ambient session state.
type Actor struct {
	ID       uint
	Username string
}

// Service decides, for every record-scoped operation, whether the actor
// may perform it, and applies the mutation through the store.
type Service struct {
	store store.Store
}

func NewService(s store.Store) *Service {
	return &Service{store: s}
}

// Store exposes the underlying record store for operations that sit
// outside the ownership model (user lookup at login and such).
func (s *Service) Store() store.Store {
	return s.store
}

// ---------- Reports ----------

type CreateReportInput struct {
	Title      string
	Type       string
	ReportDate string // ISO date, e.g. 2024-01-10
	Summary    *string
	FilePath   string
}

func (in *CreateReportInput) Validate() error {
	if err := required("title", in.Title); err != nil {
		return err
	}
	if err := required("type", in.Type); err != nil {
		return err
	}
	if err := required("reportDate", in.ReportDate); err != nil {
		return err
	}
	if _, err := time.Parse("2006-01-02", in.ReportDate); err != nil {
		return &ValidationError{Field: "reportDate", Message: "must be a YYYY-MM-DD date"}
	}
	if err := required("filePath", in.FilePath); err != nil {
		return err
	}
	return nil
}

func (s *Service) CreateReport(ctx context.Context, actor Actor, in CreateReportInput) (*models.Report, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	report := &models.Report{
		UserID:     actor.ID,
		Title:      in.Title,
		Type:       in.Type,
		ReportDate: in.ReportDate,
		FilePath:   in.FilePath,
		Summary:    in.Summary,
	}
	if err := s.store.CreateReport(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *Service) ListReports(ctx context.Context, actor Actor, f store.ReportFilter) ([]models.Report, error) {
	return s.store.ListReports(ctx, actor.ID, f)
}

// AuthorizeRead resolves a report the actor may read: its owner, or any
// user the report was shared with by current username. Both the direct
// fetch and the download route go through this one predicate.
func (s *Service) AuthorizeRead(ctx context.Context, actor Actor, reportID uint) (*models.Report, error) {
	report, err := s.store.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.UserID == actor.ID {
		return report, nil
	}
	shared, err := s.store.HasShare(ctx, reportID, actor.Username)
	if err != nil {
		return nil, err
	}
	if !shared {
		return nil, ErrForbidden
	}
	return report, nil
}

// AuthorizeWrite resolves a report the actor may mutate. Sharing never
// grants write or delete rights.
func (s *Service) AuthorizeWrite(ctx context.Context, actor Actor, reportID uint) (*models.Report, error) {
	report, err := s.store.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.UserID != actor.ID {
		return nil, ErrForbidden
	}
	return report, nil
}

// DeleteReport removes an owned report. Share rows pointing at it are
// left in place; the inner join in ListSharedWith hides them.
func (s *Service) DeleteReport(ctx context.Context, actor Actor, reportID uint) error {
	if _, err := s.AuthorizeWrite(ctx, actor, reportID); err != nil {
		return err
	}
	return s.store.DeleteReport(ctx, reportID)
}

// ---------- Shares ----------

// CreateShare grants targetUsername read access to an owned report.
// A missing report and a report owned by someone else both come back as
// store.ErrNotFound, so a non-owner cannot probe which report ids exist.
// Duplicate shares to the same target are allowed and create new rows.
func (s *Service) CreateShare(ctx context.Context, actor Actor, reportID uint, targetUsername string) (*models.Share, error) {
	if err := required("sharedWithUsername", targetUsername); err != nil {
		return nil, err
	}
	report, err := s.store.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.UserID != actor.ID {
		return nil, store.ErrNotFound
	}
	if _, err := s.store.GetUserByUsername(ctx, targetUsername); err != nil {
		return nil, err
	}
	share := &models.Share{
		ReportID:           reportID,
		SharedByUserID:     actor.ID,
		SharedWithUsername: targetUsername,
	}
	if err := s.store.CreateShare(ctx, share); err != nil {
		return nil, err
	}
	return share, nil
}

func (s *Service) ListSharedWith(ctx context.Context, username string) ([]store.SharedReport, error) {
	return s.store.ListSharedWith(ctx, username)
}

// ---------- Vitals ----------

type VitalInput struct {
	Type       string
	Value      string
	Unit       string
	ObservedAt time.Time
}

func (in *VitalInput) Validate() error {
	if err := required("type", in.Type); err != nil {
		return err
	}
	if err := required("value", in.Value); err != nil {
		return err
	}
	if err := required("unit", in.Unit); err != nil {
		return err
	}
	if in.ObservedAt.IsZero() {
		return &ValidationError{Field: "observedAt", Message: "is required"}
	}
	return nil
}

// RecordVital appends a measurement. Value stays opaque text; composite
// readings like "120/80" are never parsed here.
func (s *Service) RecordVital(ctx context.Context, actor Actor, in VitalInput) (*models.Vital, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	vital := &models.Vital{
		UserID:     actor.ID,
		Type:       in.Type,
		Value:      in.Value,
		Unit:       in.Unit,
		ObservedAt: in.ObservedAt,
	}
	if err := s.store.CreateVital(ctx, vital); err != nil {
		return nil, err
	}
	return vital, nil
}

// VitalQuery filters a vitals listing. SinceDays restricts to readings
// observed within the last N days.
type VitalQuery struct {
	Type      string
	SinceDays int
}

const defaultVitalLimit = 50

func (s *Service) ListVitals(ctx context.Context, actor Actor, q VitalQuery) ([]models.Vital, error) {
	f := store.VitalFilter{Type: q.Type}
	if q.SinceDays > 0 {
		f.Since = time.Now().AddDate(0, 0, -q.SinceDays)
	}
	if q.Type == "" && q.SinceDays == 0 {
		f.Limit = defaultVitalLimit
	}
	return s.store.ListVitals(ctx, actor.ID, f)
}

// CurrentReadings returns the most recent vital per type, newest first.
func (s *Service) CurrentReadings(ctx context.Context, actor Actor) ([]models.Vital, error) {
	vitals, err := s.store.ListVitals(ctx, actor.ID, store.VitalFilter{})
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	latest := []models.Vital{}
	for _, v := range vitals {
		if seen[v.Type] {
			continue
		}
		seen[v.Type] = true
		latest = append(latest, v)
	}
	return latest, nil
}

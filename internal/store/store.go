package store

import (
	"context"
	"errors"
	"time"

	"github.com/rishav-ranjan/healthlocker/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

// ReportFilter narrows a report listing. From/To bound ReportDate
// (inclusive, ISO date strings compare lexicographically).
type ReportFilter struct {
	Type string
	From string
	To   string
}

// VitalFilter narrows a vitals listing. Zero Since means no time bound;
// zero Limit means no cap.
type VitalFilter struct {
	Type  string
	Since time.Time
	Limit int
}

// SharedReport is one row of the shared-with-me listing: a share joined
// with the report it points at.
type SharedReport struct {
	Share  models.Share  `json:"share"`
	Report models.Report `json:"report"`
}

// Store is the durable record store for users, reports, vitals and shares.
// Callers are responsible for referential validity: it never checks that a
// UserID or ReportID written through it resolves.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error // ErrConflict on duplicate username
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	CreateReport(ctx context.Context, report *models.Report) error
	GetReport(ctx context.Context, id uint) (*models.Report, error)
	ListReports(ctx context.Context, userID uint, f ReportFilter) ([]models.Report, error) // report_date desc
	DeleteReport(ctx context.Context, id uint) error // no cascade to shares

	CreateVital(ctx context.Context, vital *models.Vital) error
	ListVitals(ctx context.Context, userID uint, f VitalFilter) ([]models.Vital, error) // observed_at desc

	CreateShare(ctx context.Context, share *models.Share) error
	HasShare(ctx context.Context, reportID uint, username string) (bool, error)
	ListSharedWith(ctx context.Context, username string) ([]SharedReport, error) // created_at desc, inner join
}

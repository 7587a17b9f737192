package store

import (
	"context"
	"errors"
	"time"

	"github.com/rishav-ranjan/healthlocker/internal/models"
	"gorm.io/gorm"
)

// Gorm is the relational Store implementation.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (g *Gorm) CreateUser(ctx context.Context, user *models.User) error {
	// The username uniqueIndex is the source of truth; a SELECT-first
	// check would still race with concurrent registrations.
	err := g.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	return err
}

func (g *Gorm) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := g.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (g *Gorm) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := g.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (g *Gorm) CreateReport(ctx context.Context, report *models.Report) error {
	return g.db.WithContext(ctx).Create(report).Error
}

func (g *Gorm) GetReport(ctx context.Context, id uint) (*models.Report, error) {
	var report models.Report
	if err := g.db.WithContext(ctx).First(&report, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (g *Gorm) ListReports(ctx context.Context, userID uint, f ReportFilter) ([]models.Report, error) {
	q := g.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.From != "" {
		q = q.Where("report_date >= ?", f.From)
	}
	if f.To != "" {
		q = q.Where("report_date <= ?", f.To)
	}
	reports := []models.Report{}
	err := q.Order("report_date DESC, id DESC").Find(&reports).Error
	return reports, err
}

func (g *Gorm) DeleteReport(ctx context.Context, id uint) error {
	res := g.db.WithContext(ctx).Delete(&models.Report{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *Gorm) CreateVital(ctx context.Context, vital *models.Vital) error {
	return g.db.WithContext(ctx).Create(vital).Error
}

func (g *Gorm) ListVitals(ctx context.Context, userID uint, f VitalFilter) ([]models.Vital, error) {
	q := g.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if !f.Since.IsZero() {
		q = q.Where("observed_at >= ?", f.Since)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	vitals := []models.Vital{}
	err := q.Order("observed_at DESC, id DESC").Find(&vitals).Error
	return vitals, err
}

func (g *Gorm) CreateShare(ctx context.Context, share *models.Share) error {
	return g.db.WithContext(ctx).Create(share).Error
}

func (g *Gorm) HasShare(ctx context.Context, reportID uint, username string) (bool, error) {
	var n int64
	err := g.db.WithContext(ctx).Model(&models.Share{}).
		Where("report_id = ? AND shared_with_username = ?", reportID, username).
		Count(&n).Error
	return n > 0, err
}

// sharedRow flattens the shares/reports join; aliases keep the two id and
// created_at columns apart.
type sharedRow struct {
	ShareID            uint      `gorm:"column:share_id"`
	ReportID           uint      `gorm:"column:report_id"`
	SharedByUserID     uint      `gorm:"column:shared_by_user_id"`
	SharedWithUsername string    `gorm:"column:shared_with_username"`
	SharedAt           time.Time `gorm:"column:shared_at"`
	OwnerUserID        uint      `gorm:"column:owner_user_id"`
	Title              string    `gorm:"column:title"`
	ReportType         string    `gorm:"column:report_type"`
	ReportDate         string    `gorm:"column:report_date"`
	FilePath           string    `gorm:"column:file_path"`
	Summary            *string   `gorm:"column:summary"`
	ReportCreatedAt    time.Time `gorm:"column:report_created_at"`
}

func (g *Gorm) ListSharedWith(ctx context.Context, username string) ([]SharedReport, error) {
	// Inner join: shares whose report has since been deleted drop out of
	// the listing.
	rows := []sharedRow{}
	err := g.db.WithContext(ctx).Raw(`
		SELECT s.id AS share_id, s.report_id, s.shared_by_user_id,
		       s.shared_with_username, s.created_at AS shared_at,
		       r.user_id AS owner_user_id, r.title, r.type AS report_type,
		       r.report_date, r.file_path, r.summary,
		       r.created_at AS report_created_at
		FROM shares s
		INNER JOIN reports r ON r.id = s.report_id
		WHERE s.shared_with_username = ?
		ORDER BY s.created_at DESC, s.id DESC`, username).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]SharedReport, 0, len(rows))
	for _, row := range rows {
		out = append(out, SharedReport{
			Share: models.Share{
				ID:                 row.ShareID,
				ReportID:           row.ReportID,
				SharedByUserID:     row.SharedByUserID,
				SharedWithUsername: row.SharedWithUsername,
				CreatedAt:          row.SharedAt,
			},
			Report: models.Report{
				ID:         row.ReportID,
				UserID:     row.OwnerUserID,
				Title:      row.Title,
				Type:       row.ReportType,
				ReportDate: row.ReportDate,
				FilePath:   row.FilePath,
				Summary:    row.Summary,
				CreatedAt:  row.ReportCreatedAt,
			},
		})
	}
	return out, nil
}

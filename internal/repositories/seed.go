package repositories

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/rishav-ranjan/healthlocker/internal/models"
	"github.com/rishav-ranjan/healthlocker/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// SeedDevData bootstraps an empty development database with an admin
// account, one sample report and two vitals. No-op once admin exists.
func SeedDevData(ctx context.Context) error {
	s := store.NewGorm(DB)

	if _, err := s.GetUserByUsername(ctx, "admin"); err == nil {
		return nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: "admin",
		Password: string(hashed),
		Role:     models.RoleOwner,
	}
	if err := s.CreateUser(ctx, admin); err != nil {
		return err
	}

	summary := "All values within normal range."
	report := &models.Report{
		UserID:     admin.ID,
		Title:      "Annual Blood Work",
		Type:       "Blood Test",
		ReportDate: time.Now().Format("2006-01-02"),
		FilePath:   "/uploads/sample-report.pdf",
		Summary:    &summary,
	}
	if err := s.CreateReport(ctx, report); err != nil {
		return err
	}

	now := time.Now()
	vitals := []models.Vital{
		{UserID: admin.ID, Type: "Blood Pressure", Value: "120/80", Unit: "mmHg", ObservedAt: now},
		{UserID: admin.ID, Type: "Heart Rate", Value: "72", Unit: "bpm", ObservedAt: now},
	}
	for i := range vitals {
		if err := s.CreateVital(ctx, &vitals[i]); err != nil {
			return err
		}
	}

	log.Println("Seeded development data (admin account)")
	return nil
}

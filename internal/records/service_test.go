package records

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rishav-ranjan/healthlocker/internal/models"
	"github.com/rishav-ranjan/healthlocker/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Report{},
		&models.Vital{},
		&models.Share{},
	))
	return NewService(store.NewGorm(db))
}

func mustUser(t *testing.T, s *Service, username string) Actor {
	t.Helper()
	user := &models.User{Username: username, Password: "x", Role: models.RoleOwner}
	require.NoError(t, s.Store().CreateUser(context.Background(), user))
	return Actor{ID: user.ID, Username: user.Username}
}

func mustReport(t *testing.T, s *Service, actor Actor, title string) *models.Report {
	t.Helper()
	report, err := s.CreateReport(context.Background(), actor, CreateReportInput{
		Title:      title,
		Type:       "Blood Test",
		ReportDate: "2024-01-10",
		FilePath:   "/uploads/sample.pdf",
	})
	require.NoError(t, err)
	return report
}

func TestAuthorizeWriteForbiddenForNonOwner(t *testing.T) {
	s := newTestService(t)
	alice := mustUser(t, s, "alice")
	bob := mustUser(t, s, "bob")
	report := mustReport(t, s, alice, "Annual Physical")

	_, err := s.AuthorizeWrite(context.Background(), bob, report.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := s.AuthorizeWrite(context.Background(), alice, report.ID)
	require.NoError(t, err)
	assert.Equal(t, report.ID, got.ID)
}

func TestAuthorizeWriteMissingReport(t *testing.T) {
	s := newTestService(t)
	alice := mustUser(t, s, "alice")

	_, err := s.AuthorizeWrite(context.Background(), alice, 9999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestShareGrantsRead(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	alice := mustUser(t, s, "alice")
	bob := mustUser(t, s, "bob")
	report := mustReport(t, s, alice, "Annual Physical")

	// bob has no grant yet
	_, err := s.AuthorizeRead(ctx, bob, report.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = s.CreateShare(ctx, alice, report.ID, "bob")
	require.NoError(t, err)

	got, err := s.AuthorizeRead(ctx, bob, report.ID)
	require.NoError(t, err)
	assert.Equal(t, "Annual Physical", got.Title)

	shared, err := s.ListSharedWith(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, shared, 1)
	assert.Equal(t, "Annual Physical", shared[0].Report.Title)
	assert.Equal(t, alice.ID, shared[0].Share.SharedByUserID)

	// sharing never grants write
	_, err = s.AuthorizeWrite(ctx, bob, report.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateShareUnknownTargetUser(t *testing.T) {
	s := newTestService(t)
	alice := mustUser(t, s, "alice")
	report := mustReport(t, s, alice, "Annual Physical")

	_, err := s.CreateShare(context.Background(), alice, report.ID, "nobody")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateShareNotOwnedOrMissingReport(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	alice := mustUser(t, s, "alice")
	bob := mustUser(t, s, "bob")
	report := mustReport(t, s, alice, "Annual Physical")

	// Not owned and missing collapse into the same NotFound, so a
	// non-owner cannot probe which report ids exist.
	_, err := s.CreateShare(ctx, bob, report.ID, "alice")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.CreateShare(ctx, alice, 9999, "bob")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDuplicateSharesAllowed(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	alice := mustUser(t, s, "alice")
	mustUser(t, s, "bob")
	report := mustReport(t, s, alice, "Annual Physical")

	first, err := s.CreateShare(ctx, alice, report.ID, "bob")
	require.NoError(t, err)
	second, err := s.CreateShare(ctx, alice, report.ID, "bob")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	shared, err := s.ListSharedWith(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, shared, 2)
}

// Deleting a report leaves its share rows behind but the inner join hides
// them from the listing. Deliberate behavior, not an oversight.
func TestDeleteReportHidesShare(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	alice := mustUser(t, s, "alice")
	bob := mustUser(t, s, "bob")
	report := mustReport(t, s, alice, "Annual Physical")

	_, err := s.CreateShare(ctx, alice, report.ID, "bob")
	require.NoError(t, err)

	shared, err := s.ListSharedWith(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, shared, 1)

	require.NoError(t, s.DeleteReport(ctx, alice, report.ID))

	shared, err = s.ListSharedWith(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, shared)

	_, err = s.AuthorizeRead(ctx, bob, report.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteReportForbiddenForNonOwner(t *testing.T) {
	s := newTestService(t)
	alice := mustUser(t, s, "alice")
	bob := mustUser(t, s, "bob")
	report := mustReport(t, s, alice, "Annual Physical")

	err := s.DeleteReport(context.Background(), bob, report.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListSharedWithIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	alice := mustUser(t, s, "alice")
	mustUser(t, s, "bob")
	for i := 0; i < 3; i++ {
		report := mustReport(t, s, alice, fmt.Sprintf("Report %d", i))
		_, err := s.CreateShare(ctx, alice, report.ID, "bob")
		require.NoError(t, err)
	}

	first, err := s.ListSharedWith(ctx, "bob")
	require.NoError(t, err)
	second, err := s.ListSharedWith(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestListVitalsTypeAndWindow(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	alice := mustUser(t, s, "alice")

	now := time.Now()
	inputs := []VitalInput{
		{Type: "Heart Rate", Value: "72", Unit: "bpm", ObservedAt: now.AddDate(0, 0, -1)},
		{Type: "Heart Rate", Value: "80", Unit: "bpm", ObservedAt: now.AddDate(0, 0, -3)},
		{Type: "Heart Rate", Value: "68", Unit: "bpm", ObservedAt: now.AddDate(0, 0, -10)}, // outside window
		{Type: "Blood Pressure", Value: "120/80", Unit: "mmHg", ObservedAt: now},           // wrong type
	}
	for _, in := range inputs {
		_, err := s.RecordVital(ctx, alice, in)
		require.NoError(t, err)
	}

	vitals, err := s.ListVitals(ctx, alice, VitalQuery{Type: "Heart Rate", SinceDays: 7})
	require.NoError(t, err)
	require.Len(t, vitals, 2)
	// most recent observation first
	assert.Equal(t, "72", vitals[0].Value)
	assert.Equal(t, "80", vitals[1].Value)
}

func TestCurrentReadings(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	alice := mustUser(t, s, "alice")

	now := time.Now()
	inputs := []VitalInput{
		{Type: "Heart Rate", Value: "80", Unit: "bpm", ObservedAt: now.AddDate(0, 0, -2)},
		{Type: "Heart Rate", Value: "72", Unit: "bpm", ObservedAt: now},
		{Type: "Weight", Value: "70", Unit: "kg", ObservedAt: now.AddDate(0, 0, -1)},
	}
	for _, in := range inputs {
		_, err := s.RecordVital(ctx, alice, in)
		require.NoError(t, err)
	}

	latest, err := s.CurrentReadings(ctx, alice)
	require.NoError(t, err)
	require.Len(t, latest, 2)

	byType := map[string]string{}
	for _, v := range latest {
		byType[v.Type] = v.Value
	}
	assert.Equal(t, "72", byType["Heart Rate"])
	assert.Equal(t, "70", byType["Weight"])
}

func TestRecordVitalValidation(t *testing.T) {
	s := newTestService(t)
	alice := mustUser(t, s, "alice")

	_, err := s.RecordVital(context.Background(), alice, VitalInput{
		Type:       "Heart Rate",
		Value:      "72",
		ObservedAt: time.Now(),
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "unit", verr.Field)
}

func TestCreateReportValidation(t *testing.T) {
	s := newTestService(t)
	alice := mustUser(t, s, "alice")

	_, err := s.CreateReport(context.Background(), alice, CreateReportInput{
		Title:      "Annual Physical",
		Type:       "Blood Test",
		ReportDate: "10/01/2024", // not ISO
		FilePath:   "/uploads/sample.pdf",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "reportDate", verr.Field)
}

func TestVitalsListVisibleToOwnerOnly(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t)
	alice := mustUser(t, s, "alice")
	bob := mustUser(t, s, "bob")

	_, err := s.RecordVital(ctx, alice, VitalInput{
		Type: "Heart Rate", Value: "72", Unit: "bpm", ObservedAt: time.Now(),
	})
	require.NoError(t, err)

	vitals, err := s.ListVitals(ctx, bob, VitalQuery{})
	require.NoError(t, err)
	assert.Empty(t, vitals)
}

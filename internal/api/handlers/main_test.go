package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/rishav-ranjan/healthlocker/internal/api/middleware"
	"github.com/rishav-ranjan/healthlocker/internal/config"
	"github.com/rishav-ranjan/healthlocker/internal/models"
	"github.com/rishav-ranjan/healthlocker/internal/records"
	"github.com/rishav-ranjan/healthlocker/internal/repositories"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTest points the global DB at a fresh in-memory database and the
// upload dir at a temp dir, the same way main wires the real ones.
func setupTest(t *testing.T) {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, repositories.Migrate(db))
	repositories.DB = db
	config.Envs.UploadDir = t.TempDir()
}

// asActor injects an authenticated actor the way AuthMiddleware would.
func asActor(r *http.Request, actor records.Actor) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.ActorKey, actor)
	return r.WithContext(ctx)
}

func createTestUser(t *testing.T, username, password string) (*models.User, records.Actor) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{Username: username, Password: string(hashed), Role: models.RoleOwner}
	require.NoError(t, svc().Store().CreateUser(context.Background(), user))
	return user, records.Actor{ID: user.ID, Username: user.Username}
}

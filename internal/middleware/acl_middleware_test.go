package middleware

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tripnest_backend/internal/model"
	"tripnest_backend/internal/repository"
	"tripnest_backend/internal/store"
	"tripnest_backend/pkg/utils/jwt"
)

func setupGuard(t *testing.T) (*fiber.App, *jwt.Manager, *repository.ProfileRepository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&model.Profile{}))

	profiles := repository.NewProfileRepository(store.NewGormStore[model.Profile](db, store.Profiles))
	tokens := jwt.NewManager("test-secret", time.Hour)

	app := fiber.New()
	app.Get("/admin", AdminGuard(tokens, profiles), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"email": CurrentProfile(c).Email})
	})
	app.Get("/me", AuthMiddleware(tokens, profiles), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"role": CurrentProfile(c).Role})
	})
	return app, tokens, profiles
}

func createProfile(t *testing.T, profiles *repository.ProfileRepository, email string, role model.Role) *model.Profile {
	p := &model.Profile{Email: email, Role: role}
	require.NoError(t, p.SetPassword("password"))
	require.NoError(t, profiles.Create(context.Background(), p))
	return p
}

func call(t *testing.T, app *fiber.App, path, token string) (int, map[string]interface{}) {
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body := map[string]interface{}{}
	json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

func TestAdminGuard(t *testing.T) {
	app, tokens, profiles := setupGuard(t)
	admin := createProfile(t, profiles, "admin@example.com", model.RoleAdmin)
	user := createProfile(t, profiles, "user@example.com", model.RoleUser)

	status, body := call(t, app, "/admin", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, LoginRoute, body["redirect"])

	status, _ = call(t, app, "/admin", "not-a-token")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	userToken, err := tokens.GenerateToken(user.ID, user.Email, string(user.Role))
	require.NoError(t, err)
	status, body = call(t, app, "/admin", userToken)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, LoginRoute, body["redirect"])

	// a forged role claim does not matter, the stored role does
	forged, err := tokens.GenerateToken(user.ID, user.Email, "admin")
	require.NoError(t, err)
	status, _ = call(t, app, "/admin", forged)
	assert.Equal(t, fiber.StatusForbidden, status)

	adminToken, err := tokens.GenerateToken(admin.ID, admin.Email, string(admin.Role))
	require.NoError(t, err)
	status, body = call(t, app, "/admin", adminToken)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "admin@example.com", body["email"])

	ghost, err := tokens.GenerateToken("deleted-id", "ghost@example.com", "admin")
	require.NoError(t, err)
	status, _ = call(t, app, "/admin", ghost)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAuthMiddlewareAllowsAnyRole(t *testing.T) {
	app, tokens, profiles := setupGuard(t)
	user := createProfile(t, profiles, "user@example.com", model.RoleUser)

	token, err := tokens.GenerateToken(user.ID, user.Email, string(user.Role))
	require.NoError(t, err)
	status, body := call(t, app, "/me", token)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "user", body["role"])
}

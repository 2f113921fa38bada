package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tripnest_backend/internal/inquiry"
	"tripnest_backend/internal/middleware"
	"tripnest_backend/internal/model"
	"tripnest_backend/internal/repository"
	"tripnest_backend/internal/store"
	"tripnest_backend/pkg/config"
	"tripnest_backend/pkg/objectstore"
	"tripnest_backend/pkg/utils/jwt"
)

type fiberMap = map[string]interface{}

type testEnv struct {
	app     *fiber.App
	db      *gorm.DB
	repos   repository.Repositories
	tokens  *jwt.Manager
	objects *fakeObjects
	admin   string // bearer token of an admin profile
	user    string // bearer token of a non-admin profile
}

// fakeObjects records every call that reaches the object store.
type fakeObjects struct {
	uploads []objectstore.Object
	deletes []string
}

func (f *fakeObjects) Upload(_ context.Context, obj objectstore.Object) (objectstore.Result, error) {
	f.uploads = append(f.uploads, obj)
	key := obj.Folder + "/" + obj.Filename
	return objectstore.Result{URL: "https://cdn.tripnest.travel/" + key, Key: key}, nil
}

func (f *fakeObjects) Delete(_ context.Context, key string) error {
	f.deletes = append(f.deletes, key)
	return nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(repository.Models()...))
	return db
}

// newTestEnv mounts the routes the way cmd/api does, over an in-memory database.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)
	repos, err := repository.NewRepositories(config.RecordStoreConfig{Driver: store.DriverGorm}, db, nil)
	require.NoError(t, err)
	tokens := jwt.NewManager("test-secret", time.Hour)
	objects := &fakeObjects{}
	inquiries := inquiry.NewService(repos, nil)

	catalog := NewCatalogController(repos, inquiries)
	themes := NewThemeController(repos.Themes)
	leads := NewLeadController(repos.Leads, inquiries)
	bookings := NewBookingController(repos.Bookings)
	uploads := NewUploadController(objects)
	auth := NewAuthController(repos.Profiles, tokens)
	stats := NewStatsController(repos)
	gateway := NewGatewayController(store.NewGateway(db))

	app := fiber.New()
	api := app.Group("/api")
	api.Post("/rpc/:collection", middleware.GatewayKey("gw-key"), gateway.Handle)

	api.Post("/auth/login", auth.Login)
	api.Get("/auth/me", middleware.AuthMiddleware(tokens, repos.Profiles), auth.GetMe)

	api.Get("/destinations", catalog.ListDestinations)
	api.Get("/destinations/:id", catalog.GetDestination)
	api.Get("/destinations/:id/package", catalog.GetPackage)
	api.Post("/destinations/:id/package/quote", catalog.QuotePackage)
	api.Get("/hotels", catalog.ListHotels)
	api.Get("/activities", catalog.ListActivities)
	api.Get("/themes", themes.ListThemes)
	api.Get("/themes/:slug", themes.GetThemeBySlug)
	api.Post("/inquiries", leads.CreateInquiry)
	api.Post("/contact", leads.CreateContact)

	admin := api.Group("/admin", middleware.AdminGuard(tokens, repos.Profiles))
	admin.Get("/dashboard", stats.GetDashboardStats)
	admin.Post("/destinations", catalog.CreateDestination)
	admin.Put("/destinations/:id", catalog.UpdateDestination)
	admin.Delete("/destinations/:id", catalog.DeleteDestination)
	admin.Post("/hotels", catalog.CreateHotel)
	admin.Put("/hotels/:id", catalog.UpdateHotel)
	admin.Post("/themes", themes.CreateTheme)
	admin.Put("/themes/:id", themes.UpdateTheme)
	admin.Delete("/themes/:id", themes.DeleteTheme)
	admin.Get("/leads", leads.ListLeads)
	admin.Put("/leads/:id/status", leads.UpdateLeadStatus)
	admin.Delete("/leads/:id", leads.DeleteLead)
	admin.Get("/bookings", bookings.ListBookings)
	admin.Post("/bookings", bookings.CreateBooking)
	admin.Put("/bookings/:id/status", bookings.UpdateBookingStatus)
	admin.Post("/uploads", uploads.UploadImage)
	admin.Delete("/uploads", uploads.DeleteImage)
	admin.Post("/uploads/validate-url", uploads.ValidateURL)

	env := &testEnv{app: app, db: db, repos: repos, tokens: tokens, objects: objects}
	env.admin = env.profileToken(t, "admin@tripnest.travel", model.RoleAdmin)
	env.user = env.profileToken(t, "agent@tripnest.travel", model.RoleUser)
	return env
}

func (env *testEnv) profileToken(t *testing.T, email string, role model.Role) string {
	t.Helper()
	p := &model.Profile{Email: email, FullName: "Test", Role: role}
	require.NoError(t, p.SetPassword("password123"))
	require.NoError(t, env.repos.Profiles.Create(context.Background(), p))
	token, err := env.tokens.GenerateToken(p.ID, p.Email, string(p.Role))
	require.NoError(t, err)
	return token
}

func (env *testEnv) do(t *testing.T, method, path string, body interface{}, token string) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return env.send(t, req)
}

func (env *testEnv) send(t *testing.T, req *http.Request) (int, map[string]interface{}) {
	t.Helper()
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	}
	return resp.StatusCode, body
}

// seedPackage stores the Bali scenario: a 2000 destination with a 300 hotel and
// a 150 activity.
func (env *testEnv) seedPackage(t *testing.T) (*model.Destination, *model.Hotel, *model.Activity) {
	t.Helper()
	ctx := context.Background()
	d := &model.Destination{Name: "Bali", Location: "Indonesia", Price: 2000, Category: model.CategoryBeach, Featured: true}
	require.NoError(t, env.repos.Destinations.Create(ctx, d))
	h := &model.Hotel{Name: "Ayana", DestinationID: d.ID, Price: 300}
	require.NoError(t, env.repos.Hotels.Create(ctx, h))
	a := &model.Activity{Name: "Snorkeling", DestinationID: d.ID, Category: "Water Sports", Price: 150}
	require.NoError(t, env.repos.Activities.Create(ctx, a))
	return d, h, a
}

package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"tripnest_backend/internal/controller"
	"tripnest_backend/internal/inquiry"
	"tripnest_backend/internal/middleware"
	"tripnest_backend/internal/repository"
	"tripnest_backend/internal/store"
	"tripnest_backend/pkg/config"
	"tripnest_backend/pkg/cron"
	"tripnest_backend/pkg/database"
	"tripnest_backend/pkg/email"
	"tripnest_backend/pkg/live"
	"tripnest_backend/pkg/objectstore"
	"tripnest_backend/pkg/utils/jwt"
)

type handlers struct {
	catalog   *controller.CatalogController
	themes    *controller.ThemeController
	leads     *controller.LeadController
	bookings  *controller.BookingController
	uploads   *controller.UploadController
	auth      *controller.AuthController
	stats     *controller.StatsController
	live      *controller.LiveController
	gateway   *controller.GatewayController
	admin     fiber.Handler
	signedIn  fiber.Handler
	gatewayIn fiber.Handler
}

func setupRoutes(app *fiber.App, h handlers) {
	api := app.Group("/api")

	// Service gateway, only when this instance owns the database
	if h.gateway != nil {
		api.Post("/rpc/:collection", h.gatewayIn, h.gateway.Handle)
	}

	// Auth Routes
	auth := api.Group("/auth")
	auth.Post("/login", h.auth.Login)
	auth.Get("/me", h.signedIn, h.auth.GetMe)

	// Public catalog
	api.Get("/destinations", h.catalog.ListDestinations)
	api.Get("/destinations/:id", h.catalog.GetDestination)
	api.Get("/destinations/:id/package", h.catalog.GetPackage)
	api.Post("/destinations/:id/package/quote", h.catalog.QuotePackage)
	api.Get("/hotels", h.catalog.ListHotels)
	api.Get("/hotels/:id", h.catalog.GetHotel)
	api.Get("/activities", h.catalog.ListActivities)
	api.Get("/activities/:id", h.catalog.GetActivity)
	api.Get("/themes", h.themes.ListThemes)
	api.Get("/themes/:slug", h.themes.GetThemeBySlug)

	api.Post("/inquiries", h.leads.CreateInquiry)
	api.Post("/contact", h.leads.CreateContact)

	api.Get("/live/:collection", h.live.Upgrade, websocket.New(h.live.Stream))

	// Admin Routes
	admin := api.Group("/admin", h.admin)
	admin.Get("/dashboard", h.stats.GetDashboardStats)

	admin.Get("/destinations", h.catalog.ListDestinations)
	admin.Post("/destinations", h.catalog.CreateDestination)
	admin.Put("/destinations/:id", h.catalog.UpdateDestination)
	admin.Delete("/destinations/:id", h.catalog.DeleteDestination)

	admin.Get("/hotels", h.catalog.ListHotels)
	admin.Post("/hotels", h.catalog.CreateHotel)
	admin.Put("/hotels/:id", h.catalog.UpdateHotel)
	admin.Delete("/hotels/:id", h.catalog.DeleteHotel)

	admin.Get("/activities", h.catalog.ListActivities)
	admin.Post("/activities", h.catalog.CreateActivity)
	admin.Put("/activities/:id", h.catalog.UpdateActivity)
	admin.Delete("/activities/:id", h.catalog.DeleteActivity)

	admin.Get("/themes", h.themes.ListThemes)
	admin.Get("/themes/:id", h.themes.GetTheme)
	admin.Post("/themes", h.themes.CreateTheme)
	admin.Put("/themes/:id", h.themes.UpdateTheme)
	admin.Delete("/themes/:id", h.themes.DeleteTheme)

	admin.Get("/leads", h.leads.ListLeads)
	admin.Get("/leads/:id", h.leads.GetLead)
	admin.Put("/leads/:id/status", h.leads.UpdateLeadStatus)
	admin.Delete("/leads/:id", h.leads.DeleteLead)

	admin.Get("/bookings", h.bookings.ListBookings)
	admin.Get("/bookings/:id", h.bookings.GetBooking)
	admin.Post("/bookings", h.bookings.CreateBooking)
	admin.Put("/bookings/:id/status", h.bookings.UpdateBookingStatus)
	admin.Delete("/bookings/:id", h.bookings.DeleteBooking)

	admin.Post("/uploads", h.uploads.UploadImage)
	admin.Delete("/uploads", h.uploads.DeleteImage)
	admin.Post("/uploads/validate-url", h.uploads.ValidateURL)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Could not load configuration:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.URL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	db, err := database.InitDB(cfg.Database)
	if err != nil {
		log.Fatal("Could not connect to database:", err)
	}
	if err := database.MigrateDatabase(db, repository.Models()...); err != nil {
		log.Printf("Migration warning: %v", err)
	}

	hub := live.NewHub()
	var publisher live.Publisher = live.Local{Hub: hub}
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		publisher = live.NewRedisPublisher(client)
		go live.Relay(ctx, client, hub)
		log.Printf("Live events relayed through Redis at %s", cfg.Redis.Addr)
	}

	repos, err := repository.NewRepositories(cfg.RecordStore, db, publisher)
	if err != nil {
		log.Fatal(err)
	}

	var notifier inquiry.Notifier
	if cfg.Mail.Enabled() {
		mailer, err := email.NewEmailService(cfg.Mail, cfg.Server.SiteURL)
		if err != nil {
			log.Fatal("Could not initialize email service:", err)
		}
		notifier = mailer

		runner, err := cron.NewLeadDigest(repos.Leads, mailer).Schedule(cfg.Cron.LeadDigest)
		if err != nil {
			log.Printf("Could not initialize lead digest cron: %v", err)
		} else {
			defer runner.Stop()
		}
	} else {
		log.Println("SMTP_HOST not set, inquiry emails disabled")
	}

	objects, err := objectstore.Open(ctx, cfg.ObjectStore)
	if err != nil {
		log.Printf("Object store unavailable, uploads disabled: %v", err)
	}

	tokens := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TTL)
	inquiries := inquiry.NewService(repos, notifier)

	h := handlers{
		catalog:   controller.NewCatalogController(repos, inquiries),
		themes:    controller.NewThemeController(repos.Themes),
		leads:     controller.NewLeadController(repos.Leads, inquiries),
		bookings:  controller.NewBookingController(repos.Bookings),
		uploads:   controller.NewUploadController(objects),
		auth:      controller.NewAuthController(repos.Profiles, tokens),
		stats:     controller.NewStatsController(repos),
		live:      controller.NewLiveController(hub),
		admin:     middleware.AdminGuard(tokens, repos.Profiles),
		signedIn:  middleware.AuthMiddleware(tokens, repos.Profiles),
		gatewayIn: middleware.GatewayKey(cfg.RecordStore.GatewayKey),
	}
	if cfg.RecordStore.Driver != store.DriverRemote && cfg.RecordStore.GatewayKey != "" {
		h.gateway = controller.NewGatewayController(store.NewGateway(db))
	}

	app := fiber.New(fiber.Config{
		BodyLimit: cfg.Server.BodyLimitMB * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	setupRoutes(app, h)

	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		if err := app.Shutdown(); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Server is running on port %s", cfg.Server.Port)
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		log.Fatal(err)
	}
}

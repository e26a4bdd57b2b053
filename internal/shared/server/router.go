package server

import (
	"context"
	"database/sql"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"jobtrack-backend/internal/ai"
	"jobtrack-backend/internal/ai/anthropic"
	"jobtrack-backend/internal/applications"
	"jobtrack-backend/internal/gmail"
	"jobtrack-backend/internal/jobsearch"
	"jobtrack-backend/internal/postings"
	"jobtrack-backend/internal/profile"
	"jobtrack-backend/internal/shared/config"
	"jobtrack-backend/internal/shared/server/middleware"
	"jobtrack-backend/internal/shared/server/respond"
	"jobtrack-backend/internal/shared/storage/db"
	localstore "jobtrack-backend/internal/shared/storage/object/local"
	"jobtrack-backend/internal/shared/telemetry"
	"jobtrack-backend/resume/export"
	"jobtrack-backend/resume/render"
	"jobtrack-backend/resume/template"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	// Dependencies
	store := localstore.New(cfg.LocalStoreDir)
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		opts := db.OptionsFromEnv(db.DefaultServerOptions())
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, opts)
		if err != nil {
			telemetry.Error("db.connect_failed", map[string]any{"error": err.Error()})
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				telemetry.Error("db.migrate_failed", map[string]any{"error": err.Error()})
				dbConn.Close()
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var aiClient ai.Client
	if cfg.AnthropicAPIKey != "" {
		client, err := anthropic.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		if err != nil {
			telemetry.Error("anthropic.init_failed", map[string]any{"error": err.Error()})
			aiClient = ai.PlaceholderClient{}
		} else {
			aiClient = client
		}
	} else {
		telemetry.Warn("anthropic.not_configured", nil)
		aiClient = ai.PlaceholderClient{}
	}
	aiSvc := ai.NewService(aiClient)

	registry := template.NewRegistry()
	exporter := &export.Service{
		Registry: registry,
		PDF:      &render.ChromePDFRenderer{ExecPath: cfg.ChromePath},
		Store:    store,
	}

	var appRepo applications.Repo
	if sqlDB != nil {
		appRepo = &applications.PGRepo{DB: sqlDB}
	} else {
		appRepo = applications.NewFileRepo(filepath.Join(cfg.LocalStoreDir, "applications.json"))
	}
	appSvc := applications.NewService(appRepo, aiSvc, aiSvc)
	appHandler := applications.NewHandler(appSvc, exporter)

	var profileRepo profile.Repo
	if sqlDB != nil {
		profileRepo = &profile.PGRepo{DB: sqlDB}
	} else {
		profileRepo = profile.NewFileRepo(filepath.Join(cfg.LocalStoreDir, "profile.json"))
	}
	profileHandler := profile.NewHandler(profile.NewService(profileRepo, store))

	postingsHandler := postings.NewHandler(postings.NewService(aiSvc))
	jobsearchHandler := jobsearch.NewHandler(jobsearch.NewService(cfg.JobSearchScript, cfg.PythonCandidates))

	gmailAuth, err := gmail.NewAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.GmailTokenFile)
	if err != nil {
		telemetry.Warn("gmail.not_configured", nil)
		gmailAuth = nil
	}
	gmailHandler := gmail.NewHandler(gmailAuth, gmail.NewService(gmailAuth))

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, gin.H{"ok": true})
	})
	api.GET("/templates", func(c *gin.Context) {
		list := registry.List()
		out := make([]gin.H, 0, len(list))
		for _, tpl := range list {
			out = append(out, gin.H{
				"id":          tpl.ID(),
				"name":        tpl.Name(),
				"description": tpl.Description(),
			})
		}
		c.JSON(http.StatusOK, out)
	})

	appHandler.RegisterRoutes(api)
	profileHandler.RegisterRoutes(api)
	gmailHandler.RegisterRoutes(api)
	jobsearchHandler.RegisterRoutes(api)

	// Routes that fan out to the LLM get a token-bucket limit.
	limited := api.Group("")
	limited.Use(middleware.RateLimit(cfg.AIRateLimit, cfg.AIRateBurst))
	ai.NewHandler(aiSvc).RegisterRoutes(limited)
	postingsHandler.RegisterRoutes(limited)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}

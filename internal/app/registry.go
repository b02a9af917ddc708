package app

import (
	"database/sql"
	"strings"

	"go-bizdocs/internal/asset"
	"go-bizdocs/internal/cashbook"
	"go-bizdocs/internal/client"
	"go-bizdocs/internal/company"
	"go-bizdocs/internal/config"
	"go-bizdocs/internal/messaging/kafka"
	"go-bizdocs/internal/middleware"
	"go-bizdocs/internal/pdfrender"
	"go-bizdocs/internal/rbac"
	"go-bizdocs/internal/rbac/infra"
	"go-bizdocs/internal/salesdoc"
	"go-bizdocs/internal/shared/counter"
	"go-bizdocs/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// documentServices holds what both the API and the PDF consumer need.
type documentServices struct {
	company  company.Service
	salesdoc salesdoc.Service
	renderer pdfrender.Renderer
}

func buildDocumentServices(
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) documentServices {
	assets := asset.NewStore(rdb, asset.NewHTTPFetcher(cfg.StorageDir), cfg.AssetCacheTTL, logger)
	companyService := company.NewServiceWithAssets(company.NewRepository(gormDB), rdb, assets, logger)
	renderer := pdfrender.New()

	salesdocService := salesdoc.NewService(
		db,
		salesdoc.NewRepository(gormDB),
		counter.NewRepository(gormDB),
		kafka.NewOutboxRepository(db),
		salesdoc.RenderDeps{
			Profiles: companyService,
			Assets:   assets,
			Renderer: renderer,
			Storage:  storage.NewLocal(cfg.StorageDir, cfg.PublicBaseURL),
			Measurer: pdfrender.NewFontMetrics(""),
			Locale:   cfg.Locale,
			Currency: cfg.CurrencyCode,
		},
		logger,
	)

	return documentServices{company: companyService, salesdoc: salesdocService, renderer: renderer}
}

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(cfg.CasbinModel)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbac.NewRepository(gormDB), enforcer, logger)

	// --- Services ---
	docs := buildDocumentServices(cfg, db, gormDB, rdb, logger)
	clientService := client.NewService(db, client.NewRepository(gormDB), rdb, logger)
	cashbookService := cashbook.NewService(
		cashbook.NewRepository(gormDB),
		docs.company,
		docs.renderer,
		cfg.Locale,
		cfg.CurrencyCode,
		logger,
	)

	// --- Handlers ---
	rbacHandler := rbac.NewHandler(rbacService, logger)
	companyHandler := company.NewHandler(docs.company, logger)
	clientHandler := client.NewHandler(clientService, logger)
	salesdocHandler := salesdoc.NewHandler(docs.salesdoc, logger)
	cashbookHandler := cashbook.NewHandler(cashbookService, logger)

	router.Use(middleware.RequestID())

	// Generated PDFs are served from disk under the URL prefix the storage returns.
	if strings.HasPrefix(cfg.PublicBaseURL, "/") {
		router.Static(cfg.PublicBaseURL, cfg.StorageDir)
	}

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		rbac.RegisterRoutes(api, rbacHandler, cfg.JWTSecret)
		company.RegisterRoutes(api, companyHandler, rbacService, cfg.JWTSecret, logger)
		client.RegisterRoutes(api, clientHandler, rbacService, cfg.JWTSecret, logger)
		salesdoc.RegisterRoutes(api, salesdocHandler, rbacService, rdb, cfg.JWTSecret, logger)
		cashbook.RegisterRoutes(api, cashbookHandler, rbacService, rdb, cfg.JWTSecret, logger)
	}

	return nil
}

// Package container wires every singleton the server and CLI need.
package container

import (
	"fmt"

	"github.com/AtRiskMedia/monster-widget/internal/application/services"
	"github.com/AtRiskMedia/monster-widget/internal/domain/monster"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/caching"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/caching/cleanup"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/database"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/formatting"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/i18n"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/media"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/messaging"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/observability/metrics"
	contentpersistence "github.com/AtRiskMedia/monster-widget/internal/infrastructure/persistence/content"
	persistence "github.com/AtRiskMedia/monster-widget/internal/infrastructure/persistence/database"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/security"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/sidebars"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/widgets"
	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/widgets/builtin"
	"github.com/AtRiskMedia/monster-widget/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application services
	MenuService    *services.MenuService
	SidebarService *services.SidebarService
	AuthService    *services.AuthService

	// Widget host
	Monster    *monster.Widget
	Widgets    *widgets.Registry
	Sidebars   *sidebars.Registry
	Translator *i18n.Translator
	Library    *builtin.Library

	// Infrastructure
	DB          *persistence.DB
	Metrics     *metrics.Metrics
	PreviewHub  *messaging.PreviewHub
	Cleanup     *cleanup.Worker
	Placeholder *media.Placeholder
	Logger      *logging.ChanneledLogger
}

// NewLogger builds the channeled logger from the environment settings.
func NewLogger() (*logging.ChanneledLogger, error) {
	cfg := logging.DefaultLoggerConfig()
	cfg.DefaultLevel = logging.ParseLevel(config.LogLevel)
	cfg.JSONFormat = config.LogJSON
	cfg.OutputToFile = config.LogToFile
	cfg.LogDirectory = config.LogDirectory
	return logging.NewChanneledLogger(cfg)
}

// NewContainer opens the database, prepares the schema and wires every
// service on top of it.
func NewContainer(logger *logging.ChanneledLogger) (*Container, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	opts := persistence.Options{
		SQLitePath:   config.SQLitePath,
		TursoURL:     config.TursoDatabaseURL,
		TursoToken:   config.TursoAuthToken,
		MaxOpenConns: config.DBMaxOpenConns,
		MaxIdleConns: config.DBMaxIdleConns,
	}
	// Every connection to :memory: is a separate database.
	if opts.TursoURL == "" && opts.SQLitePath == ":memory:" {
		opts.MaxOpenConns = 1
	}

	db, err := persistence.Open(opts, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	c, err := newContainer(db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func newContainer(db *persistence.DB, logger *logging.ChanneledLogger) (*Container, error) {
	tables := database.NewTableCreator()
	if err := tables.CreateSchema(db.DB); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	if config.SeedSampleMenus {
		if err := tables.SeedInitialContent(db.DB); err != nil {
			return nil, fmt.Errorf("failed to seed menus: %w", err)
		}
	}

	sidebarRegistry, err := sidebars.LoadFile(config.SidebarsFile, logger)
	if err != nil {
		return nil, err
	}

	translator := i18n.NewTranslator(config.Language)
	if err := translator.LoadFile(config.TranslationsFile); err != nil {
		return nil, err
	}

	menuRepo := contentpersistence.NewMenuRepository(db.DB, config.ContentCacheTTL, logger)
	menuService := services.NewMenuService(menuRepo, logger)

	library := builtin.SampleLibrary()
	feeds := builtin.NewHTTPFeedFetcher(config.ServerReadTimeout, config.ContentCacheTTL)
	postsCache := caching.NewStore[string](config.ContentCacheTTL)
	widgetRegistry := widgets.NewRegistry(logger)
	builtin.RegisterAll(widgetRegistry, builtin.Deps{
		Library:     library,
		Menus:       menuRepo,
		Feeds:       feeds,
		PostsCache:  postsCache,
		Logger:      logger,
		EnableLinks: config.EnableLinksWidget,
	})

	sweeper := cleanup.NewWorker(cleanup.NewConfig(), logger)
	sweeper.Add("recent-posts", postsCache)
	sweeper.Add("feeds", feeds.Cache())
	sweeper.Add("menu-summaries", menuRepo.SummaryCache())

	counter := monster.NewCounter()
	m := metrics.New(counter.Current)

	monsterWidget := monster.Register(widgetRegistry, monster.Config{
		Sidebars:        sidebarRegistry,
		Menus:           menuService,
		Translator:      translator,
		Smilies:         formatting.ConvertSmilies,
		Counter:         counter,
		Observer:        m,
		Logger:          logger,
		BreakerImageURL: config.BreakerImageURL,
	})

	sidebarService := services.NewSidebarService(sidebarRegistry, widgetRegistry, m, logger)

	jwtSecret := config.JWTSecret
	if jwtSecret == "" {
		jwtSecret, err = security.GenerateSecureKey(32)
		if err != nil {
			return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		logger.Auth().Warn("JWT_SECRET not set, generated an ephemeral secret")
	}
	authService := services.NewAuthService(jwtSecret, config.AdminPasswordHash, config.AdminPassword, logger)

	hub := messaging.NewPreviewHub(sidebarService.RenderSidebarHTML, m, logger)
	menuService.OnChange(hub.Refresh)

	return &Container{
		MenuService:    menuService,
		SidebarService: sidebarService,
		AuthService:    authService,
		Monster:        monsterWidget,
		Widgets:        widgetRegistry,
		Sidebars:       sidebarRegistry,
		Translator:     translator,
		Library:        library,
		DB:             db,
		Metrics:        m,
		PreviewHub:     hub,
		Cleanup:        sweeper,
		Placeholder:    media.NewPlaceholder(),
		Logger:         logger,
	}, nil
}

// Close releases the database connection.
func (c *Container) Close() error {
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

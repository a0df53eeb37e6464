package container

import (
	"context"
	"fmt"

	"sukuyo/adapters/catalog"
	"sukuyo/adapters/ephemeris"
	"sukuyo/adapters/postgres"
	"sukuyo/app"
	"sukuyo/internal/config"
	"sukuyo/internal/errors"
	"sukuyo/internal/migration"
	"sukuyo/internal/render"
	"sukuyo/ports"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	// Infrastructure
	DB       *sqlx.DB
	Migrator migration.Migrator

	Ephemeris ports.Ephemeris
	Catalog   ports.CatalogRepository
	Renderer  *render.Renderer

	DiagnosisService *app.DiagnosisService
}

// New creates a new dependency injection container backed by the embedded
// catalog. Call InitWithDatabase to switch to a SQL catalog.
func New(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Container{
		Config:   cfg,
		Logger:   logger,
		Migrator: migration.NewRunner(),
	}

	var err error
	if c.Ephemeris, err = ephemeris.New(cfg.Astro.Ephemeris); err != nil {
		return nil, err
	}
	if c.Renderer, err = render.New(); err != nil {
		return nil, errors.Wrap(err, "failed to load templates")
	}
	if c.Catalog, err = catalog.NewEmbedded(); err != nil {
		return nil, errors.Wrap(err, "failed to load embedded catalog")
	}

	c.initServices()
	return c, nil
}

// InitWithDatabase opens the configured catalog database, if any, and rewires
// the services onto it
func (c *Container) InitWithDatabase(ctx context.Context) error {
	if c.Config.Catalog.DSN == "" {
		c.Logger.Info("using embedded shuku catalog")
		return nil
	}

	db, err := postgres.Open(ctx, c.Config.Catalog.Driver, c.Config.Catalog.DSN, c.Migrator)
	if err != nil {
		return err
	}

	c.DB = db
	c.Catalog = postgres.NewCatalogRepository(db)
	c.initServices()

	c.Logger.Info("using database shuku catalog",
		zap.String("driver", c.Config.Catalog.Driver),
		zap.String("schema_version", c.Migrator.Version()))
	return nil
}

func (c *Container) initServices() {
	c.DiagnosisService = app.NewDiagnosisService(
		c.Ephemeris,
		c.Catalog,
		c.Renderer,
		c.Config.Astro.Location(),
		c.Logger,
	)
}

// Close releases the database connection, if one was opened
func (c *Container) Close() error {
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}

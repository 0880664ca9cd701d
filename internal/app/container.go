package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/source/file" // Required for file-based migrations
	_ "github.com/go-sql-driver/mysql"                   // MySQL driver
	_ "github.com/lib/pq"                                // PostgreSQL driver
	"github.com/mkhoa1412/code-challenge-sub003/internal/config"
	"github.com/mkhoa1412/code-challenge-sub003/internal/metrics"
	"github.com/mkhoa1412/code-challenge-sub003/internal/ports"
	"github.com/mkhoa1412/code-challenge-sub003/internal/repository"
	"github.com/mkhoa1412/code-challenge-sub003/internal/repository/db"
	"github.com/mkhoa1412/code-challenge-sub003/internal/service"
	_ "modernc.org/sqlite" // SQLite driver
)

// Container holds application dependencies / Contient les dépendances de l'application
type Container struct {
	DB              *sql.DB
	ResourceRepo    ports.ResourceRepository
	ResourceService *service.ResourceService
	AuthService     *service.AuthService
	Config          *config.Config
	Metrics         *metrics.Metrics
	ctxCancel       context.CancelFunc
}

// NewContainer initializes application container / Initialise le conteneur de l'application
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{}
	c.Config = cfg

	// Initialize metrics first (no dependencies)
	c.Metrics = metrics.NewMetrics(nil)

	if err := c.initDatabase(); err != nil {
		return nil, fmt.Errorf("database init: %w", err)
	}

	if err := c.runMigrations(); err != nil {
		c.Close() // Ensure database connection is closed on migration failure
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	c.initRepositories()
	c.initServices()

	c.startPoolMonitor()

	return c, nil
}

// initDatabase initializes database connection / Initialise la connexion à la base de données
func (c *Container) initDatabase() error {
	// Parse database type
	dbType := db.DatabaseType(strings.ToLower(c.Config.Database.Type))
	if dbType == "" {
		dbType = db.SQLite
	}

	// Create database configuration
	dbConfig := db.DatabaseConfig{
		Type:         dbType,
		DSN:          c.Config.Database.DSN,
		MaxOpenConns: c.Config.Database.MaxOpenConns,
		MaxIdleConns: c.Config.Database.MaxIdleConns,
	}

	// Use Factory Pattern to create appropriate initializer
	initializer := db.NewDatabaseInitializer(dbType)

	// Initialize database connection
	database, err := initializer.Initialize(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize %s database: %w", dbType, err)
	}

	c.DB = database
	return nil
}

// runMigrations applies database migrations / Applique les migrations de base de données
func (c *Container) runMigrations() error {
	// Parse database type
	dbType := db.DatabaseType(strings.ToLower(c.Config.Database.Type))
	if dbType == "" {
		dbType = db.SQLite
	}

	// Create migration driver registry (Dependency Injection)
	registry := db.NewMigrationDriverRegistry()

	// Get the appropriate migration driver factory (NO SWITCH!)
	driverFactory, err := registry.GetFactory(dbType)
	if err != nil {
		return err
	}

	// Create the migration driver using the factory
	driver, err := driverFactory.CreateDriver(c.DB)
	if err != nil {
		return fmt.Errorf("could not create %s migration driver: %w", dbType, err)
	}

	// Create migrate instance
	m, err := migrate.NewWithDatabaseInstance(
		"file://"+c.Config.Database.MigrationsPath,
		driverFactory.DriverName(),
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	slog.Info("applying database migrations", "type", dbType)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations applied")
	return nil
}

// initRepositories initializes repositories / Initialise les repositories
func (c *Container) initRepositories() {
	// Use Adapter Pattern for clean database abstraction
	adapter := repository.NewAdapter(c.DB, c.Config.Database.Type)
	c.ResourceRepo = adapter.ResourceRepository()

	slog.Info("repositories initialized", "database", c.Config.Database.Type)
}

// initServices initializes application services / Initialise les services applicatifs
func (c *Container) initServices() {
	c.ResourceService = service.NewResourceService(c.ResourceRepo)
	c.AuthService = service.NewAuthService(c.Config)
}

// startPoolMonitor periodically reflects the connection pool size in the
// metrics gauge / Reflète périodiquement la taille du pool dans la jauge
func (c *Container) startPoolMonitor() {
	ctx, cancel := context.WithCancel(context.Background())
	c.ctxCancel = cancel

	c.updateDatabaseMetrics()

	go func() {
		c.Metrics.SetBackgroundTaskStatus("pool_monitor", true)
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.updateDatabaseMetrics()
			case <-ctx.Done():
				c.Metrics.SetBackgroundTaskStatus("pool_monitor", false)
				return
			}
		}
	}()
}

// updateDatabaseMetrics updates database metrics / Met à jour les métriques de la BD
func (c *Container) updateDatabaseMetrics() {
	stats := c.DB.Stats()
	c.Metrics.UpdateDatabaseConnections(stats.OpenConnections)
}

// Close performs graceful shutdown / Effectue un arrêt gracieux
func (c *Container) Close() error {
	if c.ctxCancel != nil {
		c.ctxCancel()
	}
	if c.DB != nil {
		slog.Info("closing database")
		return c.DB.Close()
	}
	return nil
}

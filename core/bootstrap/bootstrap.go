package bootstrap

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	coreconfig "github.com/SI1V/GymStars/core/config"
	coredatabase "github.com/SI1V/GymStars/core/database"
	"github.com/SI1V/GymStars/core/logger"
)

// Options control the generic bootstrap pipeline shared between bots.
type Options struct {
	Config   *coreconfig.Config
	Database coredatabase.Config

	LoggerInit func(*coreconfig.Config) error
	Connect    func(coredatabase.Config) (*sqlx.DB, error)
	Migrate    func(coredatabase.Config) error

	// NewStorage builds the application's storage gateway over the open
	// pool. Required when Modules carries seeders.
	NewStorage func(*sqlx.DB) Storage
	Modules    Modules
}

// Result exposes infrastructure initialized by the bootstrap pipeline.
type Result struct {
	DB      *sqlx.DB
	Storage Storage
}

// Run initializes the logger, connects to the database, applies migrations
// and executes the configured module seeders.
func Run(opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}

	loggerInit := opts.LoggerInit
	if loggerInit == nil {
		loggerInit = logger.InitLogger
	}
	if err := loggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	connect := opts.Connect
	if connect == nil {
		connect = coredatabase.Connect
	}
	db, err := connect(opts.Database)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: database initialization failed: %w", err)
	}

	migrate := opts.Migrate
	if migrate == nil {
		migrate = coredatabase.RunMigrations
	}
	if err := migrate(opts.Database); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: migrations failed: %w", err)
	}

	res := &Result{DB: db}
	if opts.NewStorage != nil {
		res.Storage = opts.NewStorage(db)
	}
	if len(opts.Modules.Seeders) > 0 {
		if res.Storage == nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap: seeders configured without storage")
		}
		ctx := context.Background()
		for _, seeder := range opts.Modules.Seeders {
			if err := seeder.Seed(ctx, res.Storage); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("bootstrap: seeding failed: %w", err)
			}
		}
	}
	return res, nil
}

// Package app assembles the tracker: infrastructure bootstrap, storage,
// services, flows, and the bot runtime options.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	tele "gopkg.in/telebot.v4"

	"github.com/SI1V/GymStars/core/bootstrap"
	corecmd "github.com/SI1V/GymStars/core/cmd"
	coretelegram "github.com/SI1V/GymStars/core/telegram"
	"github.com/SI1V/GymStars/core/telegram/router"
	"github.com/SI1V/GymStars/core/telegram/state"
	"github.com/SI1V/GymStars/internal/bot"
	"github.com/SI1V/GymStars/internal/config"
	"github.com/SI1V/GymStars/internal/ops"
	"github.com/SI1V/GymStars/internal/service"
	"github.com/SI1V/GymStars/internal/storage"
	"github.com/SI1V/GymStars/internal/storage/postgres"
)

// App is the assembled application.
type App struct {
	cfg   *config.Config
	db    *sqlx.DB
	store storage.Store

	users     *service.Users
	exercises *service.Exercises
	workouts  *service.Workouts
	sessions  state.Manager

	collector *ops.Collector
	opsServer *ops.Server
}

// LoadConfig adapts config.Load to the cmd runner.
func LoadConfig(path string) (corecmd.ConfigCarrier, error) {
	return config.Load(path)
}

// Bootstrap initializes infrastructure and wires the application together.
func Bootstrap(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
	cfg, ok := carrier.(*config.Config)
	if !ok {
		return nil, fmt.Errorf("app: unexpected config type %T", carrier)
	}

	res, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
		NewStorage: func(db *sqlx.DB) bootstrap.Storage {
			return postgres.New(db)
		},
		Modules: bootstrap.Modules{
			Seeders: []bootstrap.Seeder{DefaultExerciseSeeder()},
		},
	})
	if err != nil {
		return nil, err
	}

	store, ok := res.Storage.(storage.Store)
	if !ok {
		return nil, fmt.Errorf("app: unexpected storage type %T", res.Storage)
	}

	sessions, err := newSessionManager(cfg.Sessions)
	if err != nil {
		return nil, err
	}

	collector := ops.NewCollector()
	return &App{
		cfg:       cfg,
		db:        res.DB,
		store:     store,
		users:     service.NewUsers(store),
		exercises: service.NewExercises(store),
		workouts:  service.NewWorkouts(store),
		sessions:  sessions,
		collector: collector,
		opsServer: ops.NewServer(cfg.Ops.Listen, collector, res.DB),
	}, nil
}

func newSessionManager(cfg config.SessionsConfig) (state.Manager, error) {
	switch cfg.Backend {
	case config.SessionsRedis:
		client := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("app: redis sessions unreachable: %w", err)
		}
		return state.NewRedisManager(client, state.RedisOptions{
			TTL: time.Duration(cfg.TTLMinutes) * time.Minute,
		}), nil
	default:
		return state.NewMemoryManager(), nil
	}
}

// TelegramRunOptions builds the bot runtime: registry, routes, middlewares
// and lifecycle hooks.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()

	handlers := bot.New(a.users, a.exercises, a.workouts, a.sessions, a.cfg.Bot.PageSize)
	handlers.Register(reg)

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: a.cfg.Core.Telegram.AdminID,
	})
	routes = append(routes, router.TextRoutes(a.sessions, reg, router.TextOptions{})...)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))

	onLimited := func(tele.Context) error {
		a.collector.RecordRateLimited()
		return nil
	}
	mws := coretelegram.DefaultMiddlewares(a.cfg.CoreConfig(), onLimited)
	mws = append(mws,
		coretelegram.Middleware{Name: "session", Use: state.WithSession(a.sessions)},
		a.collector.Middleware(),
	)

	return coretelegram.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    reg,
		Middlewares: mws,
		Routes:      routes,
		OnStart: func(ctx context.Context, rt coretelegram.Runtime) error {
			a.opsServer.Start()
			return nil
		},
		OnStop: func(ctx context.Context, rt coretelegram.Runtime) error {
			err := a.opsServer.Stop(ctx)
			if closeErr := a.db.Close(); closeErr != nil && err == nil {
				err = closeErr
			}
			return err
		},
	}, nil
}

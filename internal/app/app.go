// Package app wires the roster services to storage and the Telegram runtime.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/m3rciful/rosterbot/core/bootstrap"
	coredatabase "github.com/m3rciful/rosterbot/core/database"
	"github.com/m3rciful/rosterbot/core/health"
	"github.com/m3rciful/rosterbot/core/logger"
	tg "github.com/m3rciful/rosterbot/core/telegram"
	"github.com/m3rciful/rosterbot/core/telegram/router"
	"github.com/m3rciful/rosterbot/core/telegram/sender"
	"github.com/m3rciful/rosterbot/core/telegram/sequencer"
	"github.com/m3rciful/rosterbot/core/telegram/state"
	"github.com/m3rciful/rosterbot/internal/access"
	"github.com/m3rciful/rosterbot/internal/actions"
	"github.com/m3rciful/rosterbot/internal/bot"
	"github.com/m3rciful/rosterbot/internal/directory"
	"github.com/m3rciful/rosterbot/internal/directory/memstore"
	"github.com/m3rciful/rosterbot/internal/directory/sqlstore"
	"github.com/m3rciful/rosterbot/internal/dispatch"
	"github.com/m3rciful/rosterbot/internal/registration"
)

// App holds the wired services for one process.
type App struct {
	cfg   *Config
	infra *bootstrap.Result

	Users      *directory.Gateway
	Sessions   state.Manager
	Engine     *registration.Engine
	Dispatcher *dispatch.Dispatcher
	Registry   *tg.Registry

	seq    *sequencer.Sequencer
	cancel context.CancelFunc
	bg     sync.WaitGroup
}

// Bootstrap initialises logging and storage, seeds operators and builds the services.
func Bootstrap(ctx context.Context, cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config")
	}
	infra, err := bootstrap.Run(ctx, bootstrap.Options{
		Config:   &cfg.Config,
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}
	a, err := Build(ctx, cfg, storeFor(cfg.Database.Driver, infra))
	if err != nil {
		_ = infra.Close()
		return nil, err
	}
	a.infra = infra
	return a, nil
}

func storeFor(driver string, infra *bootstrap.Result) directory.Store {
	if driver == coredatabase.DriverMemory || infra.DB == nil {
		return memstore.New()
	}
	return sqlstore.New(infra.DB)
}

// Build wires the services on top of store and seeds the configured operators.
func Build(ctx context.Context, cfg *Config, store directory.Store) (*App, error) {
	users := directory.New(store)
	if err := bootstrap.RunSeeders(ctx, OperatorSeeder(users, cfg.Telegram.OperatorIDs)); err != nil {
		return nil, err
	}

	sessions := state.NewMemoryManager()
	gate := access.New(users)
	engine := registration.New(users, sessions)
	disp := dispatch.New(dispatch.Deps{
		Users:    users,
		Gate:     gate,
		Dialogue: engine,
		Actions: actions.New(actions.Deps{
			Users:    users,
			Gate:     gate,
			Sessions: sessions,
			PageSize: cfg.Listing.PageSize,
		}),
	})

	reg := tg.NewRegistry()
	bot.New(disp).Register(reg, disp.Commands())

	return &App{
		cfg:        cfg,
		Users:      users,
		Sessions:   sessions,
		Engine:     engine,
		Dispatcher: disp,
		Registry:   reg,
		seq:        sequencer.New(cfg.Workers.Inbound, 0),
	}, nil
}

// TelegramRunOptions assembles the runtime: middleware chain, routes and hooks.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	routes := router.CommandRoutes(a.Registry)
	routes = append(routes, router.CallbackRoute(a.Registry))
	routes = append(routes, router.TextRoutes(a.Registry)...)

	return tg.RunOptions{
		Config:   &a.cfg.Config,
		Registry: a.Registry,
		DispatcherOptions: sender.Options{
			Workers:    a.cfg.Workers.Outbound,
			MaxRetries: 2,
		},
		Sequencer:   a.seq,
		Middlewares: tg.DefaultMiddlewares(&a.cfg.Config, a.seq, bot.LimitedReply),
		Routes:      routes,
		OnStart:     a.start,
		OnStop:      a.stop,
	}, nil
}

func (a *App) start(ctx context.Context, _ tg.Runtime) error {
	bgCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	a.cancel = cancel

	state.StartJanitor(bgCtx, a.Sessions, a.cfg.Session.SweepInterval, a.cfg.Session.TTL, a.Engine.Expire)

	if a.cfg.Health.Listen != "" {
		srv := health.New(health.Options{Listen: a.cfg.Health.Listen, Ready: a.Users})
		a.bg.Add(1)
		go func() {
			defer a.bg.Done()
			if err := srv.Run(bgCtx); err != nil {
				logger.Error(bgCtx, "http", "serve.fail", logger.Err(err))
			}
		}()
	}

	logger.Info(ctx, "app", "services.started",
		slog.String("db_driver", a.cfg.Database.Driver),
		slog.Int("page_size", a.cfg.Listing.PageSize),
		slog.Int("operators_configured", len(a.cfg.Telegram.OperatorIDs)),
	)
	return nil
}

func (a *App) stop(context.Context, tg.Runtime) error {
	if a.cancel != nil {
		a.cancel()
	}
	a.bg.Wait()
	return nil
}

// Close releases storage.
func (a *App) Close() error {
	return a.infra.Close()
}

package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/finboard/finboard/internal/config"
	"github.com/finboard/finboard/internal/database"
	"github.com/finboard/finboard/internal/notify"
	"github.com/finboard/finboard/internal/utils"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Application wires configuration, record store, router, and server lifecycle.
type Application struct {
	cfg       config.Application
	deps      *Dependencies
	router    *mux.Router
	srv       *http.Server
	db        *pgxpool.Pool
	publisher *notify.Publisher
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication(ctx context.Context, cfg config.Application) (*Application, error) {
	location, err := time.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid server timezone %q: %w", cfg.Server.Timezone, err)
	}
	clock := utils.SystemClock{Location: location}

	a := &Application{cfg: cfg}

	var repos Repositories
	switch cfg.Store.Backend {
	case "", config.BackendMemory:
		log.Info("Using in-memory record store")
		repos = MemoryRepositories()
	case config.BackendPostgres:
		a.db, err = database.Setup(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		log.Infof("Using Postgres record store at %s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
		repos = PostgresRepositories(a.db)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	a.deps = BuildDependencies(repos, clock, cfg)

	if cfg.Amqp.Enabled {
		a.publisher, err = notify.Dial(cfg.Amqp.Url, cfg.Amqp.Exchange)
		if err != nil {
			a.close()
			return nil, err
		}
		a.publisher.Attach(a.deps.EventBus)
		log.Infof("Publishing record changes to exchange %s", cfg.Amqp.Exchange)
	}

	if err := a.deps.Seeder.Seed(ctx, cfg.Store.Seed, cfg.Categories.Expense, cfg.Categories.Income); err != nil {
		a.close()
		return nil, err
	}

	a.router = mux.NewRouter()
	SetupMiddleware(a.router)
	RegisterRoutes(a.router, a.deps, cfg)

	a.srv = &http.Server{
		Handler:      a.router,
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return a, nil
}

// Run serves HTTP until ctx is cancelled, then shuts the server down gracefully.
func (a *Application) Run(ctx context.Context) error {
	defer a.close()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("Starting server on %s", a.srv.Addr)
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down server")
		timeout := time.Duration(a.cfg.Server.ShutdownTimeoutSec) * time.Second
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
		defer cancel()
		return a.srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (a *Application) close() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			log.Warnf("failed to close amqp publisher: %v", err)
		}
	}
	if a.db != nil {
		a.db.Close()
	}
}

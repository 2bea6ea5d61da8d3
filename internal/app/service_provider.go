package app

import (
	"context"
	"net/http"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	authAPI "rabbits_den/internal/api/auth"
	cascadeAPI "rabbits_den/internal/api/cascade"
	"rabbits_den/internal/config"
	"rabbits_den/internal/config/env"
	"rabbits_den/internal/engine"
	"rabbits_den/internal/logger"
	"rabbits_den/internal/metrics"
	"rabbits_den/internal/middleware"
	"rabbits_den/internal/repository"
	"rabbits_den/internal/repository/auth_repo"
	"rabbits_den/internal/repository/cascade_repo"
	"rabbits_den/internal/repository/cascade_stats_repo"
	"rabbits_den/internal/repository/user_repo"
	"rabbits_den/internal/service"
	"rabbits_den/internal/service/auth"
	"rabbits_den/internal/service/cascade"
	"rabbits_den/pkg/resp"
)

// statsWindow число последних спинов в скользящей статистике
const statsWindow = 10000

type ServiceProvider struct {
	// Logging and metrics
	logCfg   config.LogConfig
	log      *zap.Logger
	registry *prometheus.Registry
	metrics  *metrics.Metrics

	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Auth bits
	jwtCfg   config.JWTConfig
	authRepo repository.AuthRepository
	authServ service.AuthService
	authHand *authAPI.Handler

	// User bits
	userRepo repository.UserRepository

	// Cascade bits
	cascadeCfg       config.CascadeConfig
	engine           *engine.Engine
	cascadeRepo      repository.CascadeRepository
	cascadeStatsRepo repository.CascadeStatsRepository
	cascadeServ      service.CascadeService
	cascadeHand      *cascadeAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		cfg, err := env.NewLogConfig()
		if err != nil {
			panic("failed to get log config: " + err.Error())
		}
		sp.logCfg = cfg
	}
	return sp.logCfg
}

func (sp *ServiceProvider) Logger() *zap.Logger {
	if sp.log == nil {
		log, err := logger.New(sp.LogCfg())
		if err != nil {
			panic("failed to create logger: " + err.Error())
		}
		sp.log = log
	}
	return sp.log
}

func (sp *ServiceProvider) Registry() *prometheus.Registry {
	if sp.registry == nil {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		sp.registry = reg
	}
	return sp.registry
}

func (sp *ServiceProvider) Metrics() *metrics.Metrics {
	if sp.metrics == nil {
		sp.metrics = metrics.New(sp.Registry())
	}
	return sp.metrics
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		poolCfg, err := pgxpool.ParseConfig(sp.PgConfig().DSN())
		if err != nil {
			panic("failed to parse db dsn: " + err.Error())
		}
		if n := sp.PgConfig().MaxConns(); n > 0 {
			poolCfg.MaxConns = n
		}
		dbc, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}
		sp.txManager = m
	}
	return sp.txManager
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) AuthRepo(ctx context.Context) repository.AuthRepository {
	if sp.authRepo == nil {
		sp.authRepo = auth_repo.NewAuthRepository(sp.DBClient(ctx))
	}
	return sp.authRepo
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx))
	}
	return sp.userRepo
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authServ == nil {
		sp.authServ = auth.NewService(
			sp.TXManager(ctx),
			sp.UserRepo(ctx),
			sp.AuthRepo(ctx),
			sp.JWTCfg(),
			sp.Logger().Named("auth"),
		)
	}
	return sp.authServ
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{
			Serv: sp.AuthService(ctx),
			Log:  sp.Logger().Named("auth_api"),
		})
	}
	return sp.authHand
}

func (sp *ServiceProvider) CascadeCfg() config.CascadeConfig {
	if sp.cascadeCfg == nil {
		cfg, err := env.NewCascadeConfigFromEnv()
		if err != nil {
			panic("failed to get cascade config: " + err.Error())
		}
		sp.cascadeCfg = cfg
	}
	return sp.cascadeCfg
}

func (sp *ServiceProvider) Engine() *engine.Engine {
	if sp.engine == nil {
		cfg, err := cascade.EngineConfig(sp.CascadeCfg())
		if err != nil {
			panic("failed to build engine config: " + err.Error())
		}
		eng, err := engine.New(cfg, sp.Logger().Named("engine"))
		if err != nil {
			panic("failed to create engine: " + err.Error())
		}
		sp.engine = eng
	}
	return sp.engine
}

func (sp *ServiceProvider) CascadeRepository(ctx context.Context) repository.CascadeRepository {
	if sp.cascadeRepo == nil {
		sp.cascadeRepo = cascade_repo.NewCascadeRepository(sp.DBClient(ctx))
	}
	return sp.cascadeRepo
}

func (sp *ServiceProvider) CascadeStatsRepository() repository.CascadeStatsRepository {
	if sp.cascadeStatsRepo == nil {
		sp.cascadeStatsRepo = cascade_stats_repo.NewCascadeStatsRepository(statsWindow)
	}
	return sp.cascadeStatsRepo
}

func (sp *ServiceProvider) CascadeService(ctx context.Context) service.CascadeService {
	if sp.cascadeServ == nil {
		sp.cascadeServ = cascade.NewCascadeService(
			sp.CascadeCfg(),
			sp.Engine(),
			sp.TXManager(ctx),
			sp.CascadeRepository(ctx),
			sp.UserRepo(ctx),
			sp.CascadeStatsRepository(),
			cascade.WithMetrics(sp.Metrics()),
			cascade.WithLogger(sp.Logger().Named("cascade")),
		)
	}
	return sp.cascadeServ
}

func (sp *ServiceProvider) CascadeHandler(ctx context.Context) *cascadeAPI.Handler {
	if sp.cascadeHand == nil {
		sp.cascadeHand = cascadeAPI.NewHandler(cascadeAPI.HandlerDeps{
			Serv: sp.CascadeService(ctx),
			Log:  sp.Logger().Named("cascade_api"),
		})
	}
	return sp.cascadeHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}
	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()
		r.Use(chimw.RequestID)
		r.Use(chimw.Recoverer)

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   sp.HTTPCfg().AllowedOrigins(),
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: true,
			MaxAge:           60 * 15,
		}))

		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			resp.WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Handle("/metrics", promhttp.HandlerFor(sp.Registry(), promhttp.HandlerOpts{}))

		// Auth endpoints
		authHandler := sp.AuthHandler(ctx)
		r.Route("/auth", func(rr chi.Router) {
			rr.Post("/register", authHandler.Register)
			rr.Post("/login", authHandler.Login)
			rr.Post("/refresh", authHandler.Refresh)
			rr.Post("/logout", authHandler.Logout)
		})

		// Cascade endpoints
		cascadeHandler := sp.CascadeHandler(ctx)
		r.Route("/cascade", func(rr chi.Router) {
			rr.Post("/replay", cascadeHandler.Replay)
			rr.Get("/stats", cascadeHandler.Stats)

			rr.Group(func(pr chi.Router) {
				pr.Use(middleware.Auth(sp.JWTCfg().AccessTokenSecretKey()))
				pr.Post("/spin", cascadeHandler.Spin)
				pr.Post("/buy-bonus", cascadeHandler.BuyBonus)
				pr.Post("/deposit", cascadeHandler.Deposit)
				pr.Get("/check-data", cascadeHandler.CheckData)
			})
		})

		sp.router = r
	}
	return sp.router
}

// Close освобождает пул и сбрасывает буфер логгера
func (sp *ServiceProvider) Close() {
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
	if sp.log != nil {
		_ = sp.log.Sync()
	}
}

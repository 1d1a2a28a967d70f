package api

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/Harshitk-cp/voxbridge/internal/api/handlers"
	mw "github.com/Harshitk-cp/voxbridge/internal/api/middleware"
	"github.com/Harshitk-cp/voxbridge/internal/buildconfig"
	"github.com/Harshitk-cp/voxbridge/internal/config"
	"github.com/Harshitk-cp/voxbridge/internal/domain"
	"github.com/Harshitk-cp/voxbridge/internal/provider"
	"github.com/Harshitk-cp/voxbridge/internal/service"
	"github.com/Harshitk-cp/voxbridge/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// App holds the router and request counters.
type App struct {
	Router        *chi.Mux
	startTime     time.Time
	requestCount  atomic.Int64
	errorCount    atomic.Int64
	upstreamCount atomic.Int64
	limiter       *mw.RateLimiter
}

// Deps are the collaborators NewApp wires together. DB is optional; when
// nil, created LLM resources are only logged.
type Deps struct {
	Providers  config.Providers
	DB         *pgxpool.Pool
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func NewApp(deps Deps) (*App, error) {
	logger := deps.Logger

	var ledger domain.LLMLedger
	var llmStore *store.LLMResourceStore
	if deps.DB != nil {
		llmStore = store.NewLLMResourceStore(deps.DB)
		ledger = llmStore
	}

	registry, err := provider.NewRegistry(deps.Providers,
		provider.WithHTTPClient(deps.HTTPClient),
		provider.WithObserver(service.NewPhaseLogger(ledger, logger)),
	)
	if err != nil {
		return nil, err
	}
	logger.Info("provider clients initialized", zap.Int("providers", len(domain.Providers())))

	agentSvc := service.NewAgentService(registry, logger)
	agentHandler := handlers.NewAgentHandler(agentSvc)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		startTime: time.Now(),
		limiter:   mw.NewRateLimiter(config.RateLimitRPS(), config.RateLimitBurst()),
	}

	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount, &app.upstreamCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.CORSAllowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", mw.RequestIDHeader},
		ExposedHeaders:   []string{mw.RequestIDHeader, handlers.UpstreamPhaseHeader, handlers.UpstreamProviderHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(app.limiter.Middleware)

	r.Get("/health", healthHandler(deps.DB))
	r.Get("/metrics", app.metricsHandler())
	r.Get("/version", versionHandler)

	r.Post("/create-agent", agentHandler.Create)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/agents", agentHandler.Create)

		if llmStore != nil {
			llmHandler := handlers.NewLLMResourceHandler(llmStore)
			r.Get("/llm-resources/unattached", llmHandler.ListUnattached)
		}
	})

	return app, nil
}

// StartCleanup drops idle rate limiter entries in the background until ctx
// is done.
func (app *App) StartCleanup(ctx context.Context) {
	go app.limiter.RunCleanup(ctx, rateLimitCleanupInterval, rateLimitCleanupInterval)
}

const rateLimitCleanupInterval = 10 * time.Minute

func healthHandler(db *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func versionHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(buildconfig.VersionInfo())
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"upstream_count": app.upstreamCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb": float64(memStats.Alloc) / 1024 / 1024,
				"sys_mb":   float64(memStats.Sys) / 1024 / 1024,
				"num_gc":   memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure implementations satisfy interfaces at compile time.
var (
	_ domain.LLMLedger          = (*store.LLMResourceStore)(nil)
	_ handlers.UnattachedLister = (*store.LLMResourceStore)(nil)
	_ domain.PhaseObserver      = (*service.PhaseLogger)(nil)
	_ domain.AgentCreator       = (*provider.VapiClient)(nil)
	_ domain.AgentCreator       = (*provider.RetellClient)(nil)
	_ domain.AgentCreator       = (*provider.MockCreator)(nil)
	_ service.CreatorLookup     = (*provider.Registry)(nil)
)

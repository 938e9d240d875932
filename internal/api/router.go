package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/ascleon/ascleon-backend/internal/api/handlers"
	"github.com/ascleon/ascleon-backend/internal/api/middleware"
	"github.com/ascleon/ascleon-backend/internal/auth"
	"github.com/ascleon/ascleon-backend/internal/cache"
	"github.com/ascleon/ascleon-backend/internal/config"
	"github.com/ascleon/ascleon-backend/internal/document"
	"github.com/ascleon/ascleon-backend/internal/llm"
	"github.com/ascleon/ascleon-backend/internal/querylog"
	"github.com/ascleon/ascleon-backend/internal/queue"
	"github.com/ascleon/ascleon-backend/internal/rag"
	"github.com/ascleon/ascleon-backend/internal/skincheck"
	"github.com/ascleon/ascleon-backend/internal/storage"
	"github.com/ascleon/ascleon-backend/internal/vectorstore"
)

type Router struct {
	mux    *chi.Mux
	db     *pgxpool.Pool
	redis  *redis.Client
	cfg    *config.Config
	gemini *llm.GeminiClient
	jwt    *auth.Middleware
}

func NewRouter(db *pgxpool.Pool, rdb *redis.Client, cfg *config.Config, gemini *llm.GeminiClient) *Router {
	return &Router{
		mux:    chi.NewRouter(),
		db:     db,
		redis:  rdb,
		cfg:    cfg,
		gemini: gemini,
		jwt:    auth.NewMiddleware(cfg.Auth.JWTSecret),
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	rl := middleware.NewRateLimiter(100, 200)
	r.Use(rl.Limit)

	// Health endpoints (no auth)
	health := handlers.NewHealthHandler(rt.db, rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// Initialize services
	store := storage.NewSupabaseStorage(rt.cfg.Storage.SupabaseURL, rt.cfg.Storage.ServiceKey, rt.cfg.Storage.Bucket)
	docSvc := document.NewService(rt.db, store)
	extractor := document.NewExtractor(rt.gemini)
	vs := vectorstore.NewPgStore(rt.db)
	logSvc := querylog.NewService(rt.db)
	queueClient := queue.NewClient(rt.cfg.Redis)

	ingestor := rag.NewIngestor(extractor, rt.gemini, vs, docSvc, rt.cfg.RAG.ChunkSize)

	answers := cache.NewAnswerCache(rt.redis, time.Duration(rt.cfg.RAG.AnswerCacheTTLSec)*time.Second)
	querySvc := rag.NewQueryService(rt.gemini, rt.gemini, vs, logSvc, answers, rt.cfg.RAG)
	skinSvc := skincheck.NewService(rt.gemini, logSvc)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.jwt.Authenticate)

		queryH := handlers.NewQueryHandler(querySvc)
		r.Post("/query", queryH.Query)

		skinH := handlers.NewSkinHandler(skinSvc)
		r.Post("/skin-analysis", skinH.Analyze)

		// Document routes (admin only; mutations touch the knowledge base)
		docH := handlers.NewDocumentHandler(docSvc, ingestor, queueClient)
		r.Route("/documents", func(r chi.Router) {
			r.Use(rt.jwt.RequireAdmin)
			r.Post("/", docH.Upload)
			r.Get("/", docH.List)
			r.Get("/{id}", docH.Get)
			r.Get("/{id}/status", docH.Status)
			r.Delete("/{id}", docH.Delete)
			r.Post("/{id}/reprocess", docH.Reprocess)
		})

		// Admin routes
		adminH := handlers.NewAdminHandler(logSvc)
		r.Route("/admin", func(r chi.Router) {
			r.Use(rt.jwt.RequireAdmin)
			r.Get("/queries", adminH.ListQueries)
		})
	})

	return r
}

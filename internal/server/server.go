package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/FactorySim_Go/internal/handler"
	"github.com/osse101/FactorySim_Go/internal/logger"
	"github.com/osse101/FactorySim_Go/internal/metrics"
	"github.com/osse101/FactorySim_Go/internal/mod"
	"github.com/osse101/FactorySim_Go/internal/naming"
	"github.com/osse101/FactorySim_Go/internal/session"
)

// MaxRequestBytes bounds request bodies, bundles included
const MaxRequestBytes = 1 << 20

// Deps are the collaborators the HTTP surface is built from
type Deps struct {
	Session *session.Session
	Loader  *mod.Loader
	Names   naming.Resolver
	// Ready is pinged by /readyz; nil means saves are not configured
	Ready handler.Pinger

	FactoryName string
	Version     string
}

// Server is the HTTP host of one facility
type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance. An empty apiKey disables authentication.
func NewServer(port int, apiKey string, trustedProxies []string, deps Deps) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(apiKey, trustedProxies, deps),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// NewRouter builds the middleware stack and routes
func NewRouter(apiKey string, trustedProxies []string, deps Deps) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	trust := NewProxyTrust(trustedProxies)
	guard := NewGuard()

	r.Use(HeadersMiddleware)
	r.Use(RateLimitMiddleware(trust, guard))
	if apiKey != "" {
		r.Use(AuthMiddleware(apiKey, trust, guard))
	}
	r.Use(BodyLimitMiddleware(MaxRequestBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Ready))
	r.Get("/version", handler.HandleVersion(deps.FactoryName, deps.Version))
	r.Handle("/metrics", promhttp.Handler())

	fh := handler.NewFactoryHandler(deps.Session)
	oh := handler.NewOperatorHandler(deps.Session)
	ph := handler.NewPersistenceHandler(deps.Session, deps.Loader)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", fh.HandleStatus)
		r.Get("/recipes", fh.HandleRecipes)

		r.Route("/time", func(r chi.Router) {
			r.Post("/advance", fh.HandleAdvanceTime)
			r.Post("/next-day", fh.HandleNextDay)
		})

		r.Route("/materials", func(r chi.Router) {
			r.Get("/", fh.HandleMaterials)
			r.Post("/purchase", fh.HandlePurchase)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", fh.HandleProducts)
			r.Post("/sell", fh.HandleSell)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", fh.HandleOrders)
			r.Post("/", fh.HandleCreateOrder)
		})

		r.Route("/workers", func(r chi.Router) {
			r.Get("/", fh.HandleWorkers)
			r.Post("/", fh.HandleHire)
		})

		r.Route("/lines", func(r chi.Router) {
			r.Get("/", fh.HandleLines)
			r.Post("/", fh.HandleAddLine)
			r.Post("/{id}/worker", fh.HandleAssignWorkerToLine)
			r.Post("/{id}/product", fh.HandleAssignProductToLine)
		})

		r.Route("/stations", func(r chi.Router) {
			r.Get("/", fh.HandleStations)
			r.Post("/", fh.HandleAddStation)
			r.Post("/{id}/worker", fh.HandleAssignWorkerToStation)
			r.Post("/{id}/recipe", fh.HandleAssignRecipeToStation)
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Post("/products", fh.HandleAddProduct)
			r.Delete("/products/{name}", fh.HandleRemoveProduct)
			r.Post("/materials", fh.HandleAddMaterial)
			r.Delete("/materials/{name}", fh.HandleRemoveMaterial)
			r.Put("/requirements", fh.HandleSetRequirement)
			r.Delete("/requirements", fh.HandleRemoveRequirement)
		})

		r.Route("/operator", func(r chi.Router) {
			r.Get("/", oh.HandleGetOperator)
			r.Post("/start", oh.HandleStart)
			r.Post("/stop", oh.HandleStop)
			r.Post("/step", oh.HandleStep)
			r.Put("/strategy", oh.HandleSetStrategy)
			r.Get("/analysis", oh.HandleAnalysis)
		})

		r.Route("/saves", func(r chi.Router) {
			r.Get("/", ph.HandleListSaves)
			r.Post("/{slot}", ph.HandleSave)
			r.Post("/{slot}/load", ph.HandleLoad)
			r.Delete("/{slot}", ph.HandleDeleteSave)
		})

		r.Route("/bundle", func(r chi.Router) {
			r.Get("/", ph.HandleExportBundle)
			r.Post("/", ph.HandleImportBundle)
		})

		if deps.Names != nil {
			r.Post("/admin/reload-aliases", handler.HandleReloadAliases(deps.Names))
		}
	})

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// redactHeaders copies h with credentials masked
func redactHeaders(h http.Header) http.Header {
	out := h.Clone()
	for _, k := range []string{HeaderAPIKey, HeaderAuthorization} {
		if out.Get(k) != "" {
			out.Set(k, RedactedValue)
		}
	}
	return out
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if quietPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		ctx = logger.WithAttrs(ctx, "method", r.Method, "path", r.URL.Path)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		if log.Enabled(ctx, slog.LevelDebug) {
			log.Debug(LogMsgRequestHeaders, "headers", redactHeaders(r.Header))
		}

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start serves until Stop is called
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

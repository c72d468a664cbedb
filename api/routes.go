package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/payments-portal/internal/auth"
	"github.com/carson-networks/payments-portal/internal/handlers/v1/account"
	"github.com/carson-networks/payments-portal/internal/handlers/v1/admin"
	"github.com/carson-networks/payments-portal/internal/handlers/v1/status"
	"github.com/carson-networks/payments-portal/internal/handlers/v1/transaction"
	"github.com/carson-networks/payments-portal/internal/logging"
	"github.com/carson-networks/payments-portal/internal/metrics"
	"github.com/carson-networks/payments-portal/internal/service"
	"github.com/carson-networks/payments-portal/internal/storage"
)

// APIPrefix is accepted in front of every route for the browser frontend.
const APIPrefix = "/api"

type Rest struct {
	Logger             *logrus.Logger
	Port               string
	Service            *service.Service
	Storage            *storage.Storage
	Metrics            *metrics.Metrics
	CORSAllowedOrigins []string
}

// Router builds the full handler tree. It is separate from Serve so tests can
// drive it through httptest.
func (r *Rest) Router() http.Handler {
	router := chi.NewMux()
	router.Use(
		stripAPIPrefix,
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins: r.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
			MaxAge:         300,
		}),
	)

	statusHandler := status.NewHandler(r.Storage)
	router.Get("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))
	router.Handle("/metrics", r.Metrics.Handler())

	router.Group(func(group chi.Router) {
		group.Use(logging.Middleware(r.Logger), r.observe)

		config := huma.DefaultConfig("Payments Portal API", "1.0.0")
		config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
			auth.SecurityScheme: {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
		}
		humaAPI := humachi.New(group, config)
		humaAPI.UseMiddleware(auth.Middleware(humaAPI, r.Service.Auth))

		account.NewRegisterHandler(r.Service.Auth).Register(humaAPI)
		account.NewLoginHandler(r.Service.Auth).Register(humaAPI)
		account.NewLogoutHandler(r.Service.Auth).Register(humaAPI)
		transaction.NewSubmitPaymentHandler(r.Service.Payment).Register(humaAPI)
		transaction.NewLedgerHandler(r.Service.Ledger).Register(humaAPI)
		admin.NewApprovalHandler(r.Service.Payment).Register(humaAPI)
		admin.NewAddAdminHandler(r.Service.Auth).Register(humaAPI)
	})

	return router
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Router(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func (r *Rest) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)

		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
		}
		var route string
		if routeCtx := chi.RouteContext(req.Context()); routeCtx != nil {
			route = routeCtx.RoutePattern()
		}
		r.Metrics.ObserveRequest(route, req.Method, code, time.Since(start))
	})
}

func stripAPIPrefix(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if rest, ok := strings.CutPrefix(req.URL.Path, APIPrefix+"/"); ok {
			req.URL.Path = "/" + rest
			req.URL.RawPath = ""
		}
		next.ServeHTTP(w, req)
	})
}

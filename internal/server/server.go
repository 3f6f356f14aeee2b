// Package server assembles the HTTP handler serving every RPC service.
package server

import (
	"log/slog"
	"net/http"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/fairshare/internal/auth"
	"github.com/mmynk/fairshare/internal/config"
	"github.com/mmynk/fairshare/internal/metrics"
	"github.com/mmynk/fairshare/internal/middleware"
	"github.com/mmynk/fairshare/internal/service"
	"github.com/mmynk/fairshare/internal/storage"
	"github.com/mmynk/fairshare/pkg/api/apiconnect"
)

// New returns the root handler: Connect services, /metrics and /healthz,
// wrapped in CORS and h2c. reg receives the server's collectors.
func New(cfg *config.Config, store storage.Store, logger *slog.Logger, reg *prometheus.Registry) http.Handler {
	m := metrics.New(reg)
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store, cfg.BcryptCost)

	// Outermost first: metrics and logging see auth failures too.
	common := []connect.Interceptor{
		middleware.MetricsInterceptor(m),
		middleware.LoggingInterceptor(logger),
	}
	public := connect.WithInterceptors(append(common, middleware.OptionalAuth(jwtManager))...)
	private := connect.WithInterceptors(append(common, middleware.RequireAuth(jwtManager))...)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewAuthServiceHandler(
		service.NewAuthService(authenticator, jwtManager, store, logger), public))
	mux.Handle(apiconnect.NewGroupServiceHandler(
		service.NewGroupService(store, logger), private))
	mux.Handle(apiconnect.NewExpenseServiceHandler(
		service.NewExpenseService(store, m, logger), private))
	mux.Handle(apiconnect.NewSettlementServiceHandler(
		service.NewSettlementService(store, logger), private))

	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	handler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Connect-Protocol-Version", "Connect-Timeout-Ms"},
		ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms"},
	}).Handler(mux)

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	return h2c.NewHandler(handler, &http2.Server{})
}

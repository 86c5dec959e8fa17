package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ivan-chernow/ZaraHome-sub000/internal/domain"
	"github.com/ivan-chernow/ZaraHome-sub000/internal/observability"
)

//go:generate mockgen -source=httpapi.go -destination=httpapi_mock_test.go -package=httpapi

type OrderService interface {
	CreateOrder(ctx context.Context, payload domain.CreateOrderPayload, userID string) (*domain.Order, error)
	GetUserOrders(ctx context.Context, userID string, p domain.PageRequest) (domain.Paginated[*domain.Order], error)
	GetActiveOrder(ctx context.Context, userID string) (*domain.Order, error)
	GetOrderByID(ctx context.Context, orderID, userID string) (*domain.Order, error)
	UpdateOrder(ctx context.Context, orderID string, patch domain.OrderPatch, userID string) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status domain.Status, userID string) (*domain.Order, error)
	CancelOrder(ctx context.Context, orderID, userID string) (*domain.Order, error)
	GetOrdersByStatus(ctx context.Context, status domain.Status, p domain.PageRequest) (domain.Paginated[*domain.Order], error)
	SearchOrders(ctx context.Context, query string, p domain.PageRequest) (domain.Paginated[*domain.Order], error)
	GetOrdersStatistics(ctx context.Context) (domain.OrdersStatistics, error)
}

type Server struct {
	service OrderService
	router  chi.Router
	logger  *zap.Logger
	metrics observability.Metrics
	auth    *Authenticator
}

// New wires the routes. metricsHandler may be nil, in which case /metrics is not served.
func New(service OrderService, auth *Authenticator, logger *zap.Logger, metrics observability.Metrics, metricsHandler http.Handler) *Server {
	s := &Server{
		service: service,
		router:  chi.NewRouter(),
		logger:  logger,
		metrics: metrics,
		auth:    auth,
	}
	s.routes(metricsHandler)
	return s
}

func (s *Server) routes(metricsHandler http.Handler) {
	r := s.router
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		ServerTimingApp(s.metrics),
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(s.auth.Middleware)

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", s.createOrder)
			r.Get("/", s.getUserOrders)
			r.Get("/active", s.getActiveOrder)
			r.Get("/{id}", s.getOrder)
			r.Patch("/{id}", s.updateOrder)
			r.Patch("/{id}/status", s.updateOrderStatus)
			r.Post("/{id}/cancel", s.cancelOrder)
		})

		r.Route("/admin/orders", func(r chi.Router) {
			r.Use(RequireAdmin)
			r.Get("/", s.getOrdersByStatus)
			r.Get("/search", s.searchOrders)
			r.Get("/statistics", s.getOrdersStatistics)
		})
	})
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve handles requests on ln until ctx is cancelled. It returns only after
// in-flight requests have finished or the shutdown timeout has passed.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	err := srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return <-shutdownErr
	}
	return err
}

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// writeError maps domain errors onto status codes. Anything unrecognised is a
// 500 with a generic message; the cause goes to the log only.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: verr.Reason, Field: verr.Field})
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorBody{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errorBody{Error: err.Error()})
	default:
		s.logger.Error("Request failed",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

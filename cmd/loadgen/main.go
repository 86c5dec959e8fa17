package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ivan-chernow/ZaraHome-sub000/internal/domain"
	"github.com/ivan-chernow/ZaraHome-sub000/internal/httpapi"
)

// Loadgen drives the order API with a mix of new orders, repeated carts and
// status changes.
type Loadgen struct {
	baseURL string
	token   string
	client  *http.Client
	logger  *zap.Logger

	mu       sync.Mutex
	lastCart []map[string]any

	sent     atomic.Int64
	byStatus sync.Map
}

type order struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func NewLoadgen(baseURL, token string, logger *zap.Logger) *Loadgen {
	return &Loadgen{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 5 * time.Second},
		logger:  logger,
	}
}

func (l *Loadgen) Run(ctx context.Context, rate int, duration time.Duration) {
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	timer := time.NewTimer(duration)
	defer timer.Stop()

	for {
		select {
		case <-ticker.C:
			l.step(ctx)
		case <-timer.C:
			l.logger.Info("Load run completed", l.stats()...)
			return
		case <-ctx.Done():
			l.logger.Info("Load run stopped", l.stats()...)
			return
		}
	}
}

func (l *Loadgen) step(ctx context.Context) {
	cart := l.cart()
	var created order
	if !l.call(ctx, http.MethodPost, "/api/orders", map[string]any{"items": cart}, &created) {
		return
	}
	if created.ID == "" || rand.Intn(4) != 0 {
		return
	}
	next := domain.StatusPaid
	if rand.Intn(2) == 0 {
		next = domain.StatusCancelled
	}
	l.call(ctx, http.MethodPatch, "/api/orders/"+created.ID+"/status", map[string]any{"status": next}, nil)
}

// cart repeats the previous cart a third of the time so the idempotent path gets traffic.
func (l *Loadgen) cart() []map[string]any {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.lastCart != nil && rand.Intn(3) == 0 {
		return l.lastCart
	}
	n := rand.Intn(3) + 1
	items := make([]map[string]any, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, map[string]any{
			"product_id": i*1000 + rand.Intn(1000) + 1,
			"quantity":   rand.Intn(3) + 1,
			"unit_price": fmt.Sprintf("%d.%02d", rand.Intn(500)+50, rand.Intn(100)),
			"size":       "M",
		})
	}
	l.lastCart = items
	return items
}

func (l *Loadgen) call(ctx context.Context, method, path string, body any, out any) bool {
	data, err := json.Marshal(body)
	if err != nil {
		l.logger.Error("Error marshaling request", zap.Error(err))
		return false
	}
	req, err := http.NewRequestWithContext(ctx, method, l.baseURL+path, bytes.NewReader(data))
	if err != nil {
		l.logger.Error("Error building request", zap.Error(err))
		return false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+l.token)

	l.sent.Add(1)
	resp, err := l.client.Do(req)
	if err != nil {
		l.count("error")
		l.logger.Warn("Request failed", zap.Error(err), zap.String("path", path))
		return false
	}
	defer resp.Body.Close()
	l.count(strconv.Itoa(resp.StatusCode))

	if resp.StatusCode >= 300 {
		return false
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			l.logger.Warn("Error decoding response", zap.Error(err), zap.String("path", path))
			return false
		}
	}
	return true
}

func (l *Loadgen) count(key string) {
	v, _ := l.byStatus.LoadOrStore(key, new(atomic.Int64))
	v.(*atomic.Int64).Add(1)
}

func (l *Loadgen) stats() []zap.Field {
	fields := []zap.Field{zap.Int64("total_sent", l.sent.Load())}
	l.byStatus.Range(func(k, v any) bool {
		fields = append(fields, zap.Int64("status_"+k.(string), v.(*atomic.Int64).Load()))
		return true
	})
	return fields
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Fatal("JWT_SECRET is required to mint a token")
	}
	token, err := httpapi.NewAuthenticator(secret).Issue(env("LOADGEN_USER", "demo-user"), domain.RoleUser, time.Hour)
	if err != nil {
		logger.Fatal("Error while issuing token", zap.Error(err))
	}

	rate, err := strconv.Atoi(env("LOADGEN_RATE", "10"))
	if err != nil || rate <= 0 {
		rate = 10
	}
	duration, err := time.ParseDuration(env("LOADGEN_DURATION", "30s"))
	if err != nil {
		logger.Fatal("Invalid LOADGEN_DURATION", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	baseURL := env("LOADGEN_URL", "http://localhost:8081")
	logger.Info("Starting load", zap.String("url", baseURL), zap.Int("rate", rate), zap.Duration("duration", duration))
	NewLoadgen(baseURL, token, logger).Run(ctx, rate, duration)
}

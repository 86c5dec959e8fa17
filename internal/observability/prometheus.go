package observability

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Prometheus struct {
	gatherer prometheus.Gatherer

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
	kafkaEvents  *prometheus.CounterVec
	kafkaLatency prometheus.Histogram
	mutations    *prometheus.CounterVec
	promocodes   *prometheus.CounterVec
	invalidated  prometheus.Counter
	cacheLookups *prometheus.CounterVec
}

func NewPrometheus(reg *prometheus.Registry) *Prometheus {
	const ns = "shop"
	p := &Prometheus{
		gatherer: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Subsystem: "http", Name: "requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns, Subsystem: "http", Name: "request_duration_ms",
			Help:    "HTTP request latency in milliseconds.",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"method", "route"}),
		kafkaEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Subsystem: "events", Name: "published_total",
			Help: "Order events handed to Kafka, by result.",
		}, []string{"result"}),
		kafkaLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns, Subsystem: "events", Name: "publish_duration_ms",
			Help:    "Order event publish latency in milliseconds.",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 1000},
		}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Subsystem: "orders", Name: "mutations_total",
			Help: "Order lifecycle operations by kind.",
		}, []string{"kind"}),
		promocodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Subsystem: "orders", Name: "promocodes_total",
			Help: "Promocode checks by outcome.",
		}, []string{"outcome"}),
		invalidated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns, Subsystem: "cache", Name: "invalidated_keys_total",
			Help: "Cache entries removed by invalidation.",
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns, Subsystem: "cache", Name: "lookups_total",
			Help: "Cache lookups by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		p.httpRequests, p.httpLatency,
		p.kafkaEvents, p.kafkaLatency,
		p.mutations, p.promocodes,
		p.invalidated, p.cacheLookups,
	)
	return p
}

func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.gatherer, promhttp.HandlerOpts{})
}

func (p *Prometheus) ObserveHTTP(method, route string, status int, durMs float64) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpLatency.WithLabelValues(method, route).Observe(durMs)
}

func (p *Prometheus) ObserveKafka(processMs float64, ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	p.kafkaEvents.WithLabelValues(result).Inc()
	p.kafkaLatency.Observe(processMs)
}

func (p *Prometheus) ObserveOrderMutation(kind string) {
	p.mutations.WithLabelValues(kind).Inc()
}

func (p *Prometheus) ObservePromocode(outcome string) {
	p.promocodes.WithLabelValues(outcome).Inc()
}

func (p *Prometheus) ObserveInvalidation(removed int) {
	p.invalidated.Add(float64(removed))
}

func (p *Prometheus) IncCacheHit()  { p.cacheLookups.WithLabelValues("hit").Inc() }
func (p *Prometheus) IncCacheMiss() { p.cacheLookups.WithLabelValues("miss").Inc() }

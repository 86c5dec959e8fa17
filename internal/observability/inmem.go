package observability

import "sync"

type observe struct {
	Kind   string
	Label  string
	Status int
	Value  float64
	OK     bool
}

// Inmem keeps the last max observations and running cache totals. Useful in dev
// and tests where no Prometheus scraper runs.
type Inmem struct {
	mu     sync.Mutex
	last   []*observe
	max    int
	totals struct {
		cacheHits, cacheMiss, invalidated int
	}
}

func NewInmem(max int) *Inmem {
	return &Inmem{
		max: max,
	}
}

func (m *Inmem) push(v *observe) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = append(m.last, v)
	if len(m.last) > m.max {
		m.last = m.last[1:]
	}
}

func (m *Inmem) ObserveHTTP(method, route string, status int, durMs float64) {
	m.push(&observe{Kind: "http", Label: method + " " + route, Status: status, Value: durMs})
}

func (m *Inmem) ObserveKafka(processMs float64, ok bool) {
	m.push(&observe{Kind: "kafka", Value: processMs, OK: ok})
}

func (m *Inmem) ObserveOrderMutation(kind string) {
	m.push(&observe{Kind: "order", Label: kind})
}

func (m *Inmem) ObservePromocode(outcome string) {
	m.push(&observe{Kind: "promocode", Label: outcome})
}

func (m *Inmem) ObserveInvalidation(removed int) {
	m.mu.Lock()
	m.totals.invalidated += removed
	m.mu.Unlock()
	m.push(&observe{Kind: "invalidation", Value: float64(removed)})
}

func (m *Inmem) IncCacheHit() {
	m.mu.Lock()
	m.totals.cacheHits++
	m.mu.Unlock()
}

func (m *Inmem) IncCacheMiss() {
	m.mu.Lock()
	m.totals.cacheMiss++
	m.mu.Unlock()
}

// CacheTotals returns hits, misses and invalidated keys seen so far.
func (m *Inmem) CacheTotals() (hits, misses, invalidated int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totals.cacheHits, m.totals.cacheMiss, m.totals.invalidated
}

// Count returns how many retained observations have the given kind and label.
func (m *Inmem) Count(kind, label string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, o := range m.last {
		if o.Kind == kind && o.Label == label {
			n++
		}
	}
	return n
}

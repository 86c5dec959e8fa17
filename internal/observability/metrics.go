package observability

// Metrics is what the order service, the cache and the HTTP layer report to.
type Metrics interface {
	ObserveHTTP(method, route string, status int, durMs float64)
	ObserveKafka(processMs float64, ok bool)
	ObserveOrderMutation(kind string)
	ObservePromocode(outcome string)
	ObserveInvalidation(removed int)
	IncCacheHit()
	IncCacheMiss()
}

const (
	MutationCreated       = "created"
	MutationReplaced      = "replaced"
	MutationIdempotent    = "idempotent"
	MutationStatusChanged = "status_changed"
	MutationUpdated       = "updated"

	PromocodeApplied  = "applied"
	PromocodeRejected = "rejected"
	PromocodeFailed   = "failed"
)

type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) ObserveHTTP(string, string, int, float64) {}
func (Noop) ObserveKafka(float64, bool)               {}
func (Noop) ObserveOrderMutation(string)              {}
func (Noop) ObservePromocode(string)                  {}
func (Noop) ObserveInvalidation(int)                  {}
func (Noop) IncCacheHit()                             {}
func (Noop) IncCacheMiss()                            {}

package cache

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const DefaultTTL = time.Hour

// Factory computes a value on a cache miss.
type Factory func(ctx context.Context) (any, error)

// Recorder receives hit/miss notifications. observability.Metrics satisfies it.
type Recorder interface {
	IncCacheHit()
	IncCacheMiss()
}

type entry struct {
	value     any
	expiresAt time.Time
}

// Store is an in-process key/value cache with per-entry expiry and prefix-scoped
// deletion. Expired entries are dropped lazily when read. Capacity is bounded by
// the underlying LRU.
//
// Every deletion bumps a generation counter. GetOrSet only stores a computed
// value if no deletion happened while the factory ran, and concurrent misses are
// collapsed per key and generation, so a read issued after an invalidation never
// receives a value computed before it.
type Store struct {
	mu         sync.Mutex
	lru        *lru.Cache[string, entry]
	gen        atomic.Uint64
	group      singleflight.Group
	defaultTTL time.Duration
	now        func() time.Time
	logger     *zap.Logger
	recorder   Recorder
}

type StoreOption func(*Store)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func WithDefaultTTL(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.defaultTTL = d
		}
	}
}

func WithLogger(l *zap.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

func WithRecorder(r Recorder) StoreOption {
	return func(s *Store) { s.recorder = r }
}

func New(size int, opts ...StoreOption) (*Store, error) {
	c, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	s := &Store{
		lru:        c,
		defaultTTL: DefaultTTL,
		now:        time.Now,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

type options struct {
	ttl    time.Duration
	prefix string
}

type Option func(*options)

func WithTTL(d time.Duration) Option {
	return func(o *options) { o.ttl = d }
}

func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

func (s *Store) options(opts []Option) options {
	o := options{ttl: s.defaultTTL}
	for _, opt := range opts {
		opt(&o)
	}
	if o.ttl <= 0 {
		o.ttl = s.defaultTTL
	}
	return o
}

// Key joins prefix and key the way the store does internally.
func Key(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + ":" + key
}

func (s *Store) Get(key string, opts ...Option) (any, bool) {
	return s.get(Key(s.options(opts).prefix, key))
}

func (s *Store) get(k string) (any, bool) {
	e, ok := s.lru.Get(k)
	if !ok {
		return nil, false
	}
	if s.now().After(e.expiresAt) {
		s.dropExpired(k)
		return nil, false
	}
	return e.value, true
}

func (s *Store) dropExpired(k string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// the entry may have been refreshed since it was read
	if e, ok := s.lru.Peek(k); ok && s.now().After(e.expiresAt) {
		s.lru.Remove(k)
	}
}

func (s *Store) Set(key string, value any, opts ...Option) {
	o := s.options(opts)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lru.Add(Key(o.prefix, key), entry{value: value, expiresAt: s.now().Add(o.ttl)})
}

func (s *Store) setIfGeneration(k string, value any, ttl time.Duration, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen.Load() != gen {
		return false
	}
	s.lru.Add(k, entry{value: value, expiresAt: s.now().Add(ttl)})
	return true
}

func (s *Store) Delete(key string, opts ...Option) {
	k := Key(s.options(opts).prefix, key)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen.Add(1)
	s.lru.Remove(k)
}

// DeleteByPrefix removes every entry whose key starts with prefix + ":" and
// returns how many were removed.
func (s *Store) DeleteByPrefix(prefix string) int {
	p := prefix + ":"
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen.Add(1)
	removed := 0
	for _, k := range s.lru.Keys() {
		if strings.HasPrefix(k, p) && s.lru.Remove(k) {
			removed++
		}
	}
	return removed
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen.Add(1)
	s.lru.Purge()
}

func (s *Store) Len() int { return s.lru.Len() }

// GetOrSet returns the cached value for key or runs factory, stores and returns
// its result. Factory errors are returned as is and nothing is stored.
func (s *Store) GetOrSet(ctx context.Context, key string, factory Factory, opts ...Option) (any, error) {
	o := s.options(opts)
	k := Key(o.prefix, key)

	if v, ok := s.get(k); ok {
		s.hit()
		return v, nil
	}
	s.miss()

	gen := s.gen.Load()
	v, err, shared := s.group.Do(k+"#"+strconv.FormatUint(gen, 10), func() (any, error) {
		v, err := factory(ctx)
		if err != nil {
			return nil, err
		}
		if !s.setIfGeneration(k, v, o.ttl, gen) {
			s.logger.Debug("cache invalidated while computing, result not stored", zap.String("cache_key", k))
		}
		return v, nil
	})
	if shared {
		s.logger.Debug("cache miss collapsed into in-flight computation", zap.String("cache_key", k))
	}
	return v, err
}

// Fetch is GetOrSet with a typed result. A cached value of another type is
// logged, dropped and treated as a miss.
func Fetch[T any](ctx context.Context, s *Store, key string, factory func(ctx context.Context) (T, error), opts ...Option) (T, error) {
	v, err := s.GetOrSet(ctx, key, func(ctx context.Context) (any, error) {
		return factory(ctx)
	}, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	if t, ok := v.(T); ok {
		return t, nil
	}

	s.logger.Warn("unexpected cached value type, treating as miss", zap.String("cache_key", Key(s.options(opts).prefix, key)))
	s.Delete(key, opts...)
	return factory(ctx)
}

func (s *Store) hit() {
	if s.recorder != nil {
		s.recorder.IncCacheHit()
	}
}

func (s *Store) miss() {
	if s.recorder != nil {
		s.recorder.IncCacheMiss()
	}
}

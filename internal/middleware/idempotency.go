package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/forgo/shepherd/api/internal/model"
)

// CachedResponse is a stored response replayed for a repeated idempotency key
type CachedResponse struct {
	Status  int         `json:"status"`
	Headers http.Header `json:"headers"`
	Body    []byte      `json:"body"`
}

// IdempotencyStore persists responses keyed by idempotency fingerprint
type IdempotencyStore interface {
	// Get returns the completed response for key, if any
	Get(ctx context.Context, key string) (*CachedResponse, error)
	// Reserve marks key in flight. It returns false when the key is already
	// reserved or completed.
	Reserve(ctx context.Context, key string) (bool, error)
	// Save stores the response and ends the reservation
	Save(ctx context.Context, key string, resp *CachedResponse) error
	// Release drops a reservation without storing a response
	Release(ctx context.Context, key string) error
}

// IdempotencyConfig holds configuration for idempotency stores
type IdempotencyConfig struct {
	TTL     time.Duration // How long to keep responses (default 24h)
	Cleanup time.Duration // Cleanup interval for the memory store (default 1h)
	LockTTL time.Duration // How long a reservation may stay in flight (default 1m)
}

func (c *IdempotencyConfig) defaults() {
	if c.TTL == 0 {
		c.TTL = 24 * time.Hour
	}
	if c.Cleanup == 0 {
		c.Cleanup = time.Hour
	}
	if c.LockTTL == 0 {
		c.LockTTL = time.Minute
	}
}

// MemoryIdempotencyStore keeps responses in process memory
type MemoryIdempotencyStore struct {
	mu       sync.Mutex
	entries  map[string]*idempotencyEntry
	ttl      time.Duration
	lockTTL  time.Duration
	now      func() time.Time
	stopChan chan struct{}
	stopOnce sync.Once
}

type idempotencyEntry struct {
	resp      *CachedResponse
	expiresAt time.Time
}

// NewMemoryIdempotencyStore creates a store and starts its cleanup loop
func NewMemoryIdempotencyStore(cfg IdempotencyConfig) *MemoryIdempotencyStore {
	cfg.defaults()

	store := &MemoryIdempotencyStore{
		entries:  make(map[string]*idempotencyEntry),
		ttl:      cfg.TTL,
		lockTTL:  cfg.LockTTL,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	go store.cleanupLoop(cfg.Cleanup)

	return store
}

// Stop stops the cleanup goroutine
func (s *MemoryIdempotencyStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopChan) })
}

func (s *MemoryIdempotencyStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopChan:
			return
		}
	}
}

func (s *MemoryIdempotencyStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, entry := range s.entries {
		if entry.expiresAt.Before(now) {
			delete(s.entries, key)
		}
	}
}

func (s *MemoryIdempotencyStore) live(key string) *idempotencyEntry {
	entry, ok := s.entries[key]
	if !ok {
		return nil
	}
	if entry.expiresAt.Before(s.now()) {
		delete(s.entries, key)
		return nil
	}
	return entry
}

// Get implements IdempotencyStore
func (s *MemoryIdempotencyStore) Get(ctx context.Context, key string) (*CachedResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry := s.live(key); entry != nil {
		return entry.resp, nil
	}
	return nil, nil
}

// Reserve implements IdempotencyStore
func (s *MemoryIdempotencyStore) Reserve(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.live(key) != nil {
		return false, nil
	}
	s.entries[key] = &idempotencyEntry{expiresAt: s.now().Add(s.lockTTL)}
	return true, nil
}

// Save implements IdempotencyStore
func (s *MemoryIdempotencyStore) Save(ctx context.Context, key string, resp *CachedResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = &idempotencyEntry{resp: resp, expiresAt: s.now().Add(s.ttl)}
	return nil
}

// Release implements IdempotencyStore
func (s *MemoryIdempotencyStore) Release(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// generateKey creates a unique key from user ID, idempotency key, and request fingerprint
func generateKey(userID, idempotencyKey, method, path string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(userID))
	h.Write([]byte{0})
	h.Write([]byte(idempotencyKey))
	h.Write([]byte{0})
	h.Write([]byte(method))
	h.Write([]byte(path))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// maxIdempotentBody caps the request body read for fingerprinting
const maxIdempotentBody int64 = 1 << 20

// volatileHeaders are set per request by outer middleware and are never
// stored with a cached response
var volatileHeaders = []string{
	"Content-Encoding",
	"Content-Length",
	"X-Request-Id",
	"X-Ratelimit-Limit",
	"X-Ratelimit-Remaining",
	"X-Ratelimit-Reset",
	"Retry-After",
	"X-Idempotency-Replayed",
}

// idempotencyResponseWriter captures the response for caching
type idempotencyResponseWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *idempotencyResponseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *idempotencyResponseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func storedHeaders(h http.Header) http.Header {
	out := h.Clone()
	for _, k := range volatileHeaders {
		out.Del(k)
	}
	return out
}

func replay(w http.ResponseWriter, resp *CachedResponse) {
	for k, v := range storedHeaders(resp.Headers) {
		w.Header()[k] = append([]string(nil), v...)
	}
	w.Header().Set("X-Idempotency-Replayed", "true")
	w.WriteHeader(resp.Status)
	_, _ = w.Write(resp.Body)
}

// Idempotency returns middleware that replays responses for repeated
// Idempotency-Key headers on POST and PATCH. Responses are scoped to the
// caller set by OptionalAuth; anonymous requests are never cached. Server
// errors are not stored so the client can retry.
func Idempotency(store IdempotencyStore) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost && r.Method != http.MethodPatch {
				next.ServeHTTP(w, r)
				return
			}

			idempotencyKey := r.Header.Get("Idempotency-Key")
			userID := GetUserID(r.Context())
			if idempotencyKey == "" || userID == "" {
				next.ServeHTTP(w, r)
				return
			}

			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxIdempotentBody))
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					model.NewPayloadTooLargeError(tooLarge.Limit).WriteJSON(w)
					return
				}
				model.NewBadRequestError("could not read request body").WriteJSON(w)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			ctx := r.Context()
			key := generateKey(userID, idempotencyKey, r.Method, r.URL.Path, body)

			cached, err := store.Get(ctx, key)
			if err != nil {
				slog.Warn("idempotency lookup failed", slog.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}
			if cached != nil {
				replay(w, cached)
				return
			}

			reserved, err := store.Reserve(ctx, key)
			if err != nil {
				slog.Warn("idempotency reserve failed", slog.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}
			if !reserved {
				model.NewConflictError("a request with this Idempotency-Key is already in progress").WriteJSON(w)
				return
			}

			irw := &idempotencyResponseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(irw, r)

			if irw.status >= http.StatusInternalServerError {
				if err := store.Release(ctx, key); err != nil {
					slog.Warn("idempotency release failed", slog.String("error", err.Error()))
				}
				return
			}

			resp := &CachedResponse{
				Status:  irw.status,
				Headers: storedHeaders(irw.Header()),
				Body:    append([]byte(nil), irw.body.Bytes()...),
			}
			if err := store.Save(ctx, key, resp); err != nil {
				slog.Warn("idempotency save failed", slog.String("error", err.Error()))
			}
		})
	}
}

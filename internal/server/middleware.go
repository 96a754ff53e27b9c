package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/fracshare/rwaledger/internal/domain"
)

// CallerHeader carries the caller identity, resolved by the deployment's
// authenticating front door before requests reach this service.
const CallerHeader = "X-Caller-ID"

type contextKey int

const callerKey contextKey = iota

// callerIdentity extracts, if present, the caller identity placed in the
// request context by withCaller.
func callerIdentity(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(callerKey).(domain.Identity)
	return id, ok
}

// withCaller parses the caller header into the request context. Requests
// without a caller stay anonymous; operations that need one reject later.
func withCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if raw := r.Header.Get(CallerHeader); raw != "" {
			id, err := domain.ParseIdentity(raw)
			if err != nil {
				writeError(w, domain.Errorf(domain.KindUnauthorized, "malformed %s header", CallerHeader))
				return
			}
			r = r.WithContext(context.WithValue(r.Context(), callerKey, id))
		}
		next.ServeHTTP(w, r)
	})
}

// requireCaller fetches the caller identity or writes an Unauthorized
// response. Mutating operations always need an identified caller.
func requireCaller(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	id, ok := callerIdentity(r.Context())
	if !ok {
		writeError(w, domain.Errorf(domain.KindUnauthorized, "caller identity is required (%s header)", CallerHeader))
	}
	return id, ok
}

// executionGate serializes all ledger operations: each call runs to
// completion against all ledger state before the next begins, mirroring the
// deterministic single-writer execution the ledger was designed for.
func executionGate(next http.Handler) http.Handler {
	var mu sync.Mutex
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs each request with its outcome at debug/info level.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.status).
				Dur("duration", time.Since(start)).
				Msg("Handled request")
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// rateLimit applies a token-bucket limit across all requests.
func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

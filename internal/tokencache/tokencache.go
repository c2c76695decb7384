// Package tokencache provides a single-flight cached credential source for
// upstreams that issue short-lived bearer tokens. One Source is constructed
// per credential identity and shared by reference between all callers.
package tokencache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultExpiryBuffer is subtracted from the upstream expiry before a cached
// token is considered stale, to absorb clock skew against the issuer.
const DefaultExpiryBuffer = 60 * time.Second

// Token is an opaque bearer credential with its expiry instant.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// RefreshFunc obtains a fresh token from the upstream issuer.
type RefreshFunc func(ctx context.Context) (Token, error)

// Source caches one credential's token and guarantees at most one in-flight
// refresh. Callers arriving during a refresh share its outcome: on success
// they all receive the new token, on failure they all receive the same error
// and nothing is cached.
type Source struct {
	refresh RefreshFunc
	buffer  time.Duration
	log     *slog.Logger
	now     func() time.Time

	mu    sync.Mutex
	token Token
	set   bool

	group singleflight.Group
}

// NewSource creates a Source around the given refresh call.
func NewSource(logger *slog.Logger, refresh RefreshFunc) *Source {
	return &Source{
		refresh: refresh,
		buffer:  DefaultExpiryBuffer,
		log:     logger.With("component", "tokencache"),
		now:     time.Now,
	}
}

// Token returns a valid bearer token, refreshing through the issuer when the
// cached one is absent or within the expiry buffer.
func (s *Source) Token(ctx context.Context) (string, error) {
	if tok, ok := s.cached(); ok {
		return tok.Value, nil
	}

	// All concurrent callers funnel into one refresh; the shared key makes
	// singleflight collapse them onto the first caller's flight.
	v, err, _ := s.group.Do("refresh", func() (any, error) {
		// A caller that raced past the staleness check just after a
		// completed refresh must not trigger another one.
		if tok, ok := s.cached(); ok {
			return tok, nil
		}

		tok, err := s.refresh(ctx)
		if err != nil {
			return Token{}, fmt.Errorf("token refresh: %w", err)
		}

		s.mu.Lock()
		s.token = tok
		s.set = true
		s.mu.Unlock()

		s.log.DebugContext(ctx, "token refreshed", slog.Time("expires_at", tok.ExpiresAt))
		return tok, nil
	})
	if err != nil {
		return "", err
	}

	return v.(Token).Value, nil
}

// cached returns the stored token when it is still comfortably valid.
func (s *Source) cached() (Token, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return Token{}, false
	}
	if s.now().Before(s.token.ExpiresAt.Add(-s.buffer)) {
		return s.token, true
	}
	return Token{}, false
}

// Package identity decides who the storefront is acting as: an
// authenticated user carrying a bearer credential, or an anonymous visitor
// identified by a persistent session id. Exactly one of the two is ever sent
// on a request.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/storage"
)

const HeaderAuthorization = "Authorization"

type Kind int

const (
	Anonymous Kind = iota
	Authenticated
)

type Identity struct {
	credential string
	sessionId  string
	kind       Kind
}

func NewAuthenticated(credential string) Identity {
	return Identity{kind: Authenticated, credential: credential}
}

func NewAnonymous(sessionId string) Identity {
	return Identity{kind: Anonymous, sessionId: sessionId}
}

func (i Identity) Kind() Kind {
	return i.kind
}

func (i Identity) SessionId() string {
	return i.sessionId
}

// Apply sets exactly one identity header: a credential always suppresses the
// session header.
func (i Identity) Apply(header http.Header, sessionHeader string) {
	if i.kind == Authenticated {
		header.Set(HeaderAuthorization, "Bearer "+i.credential)
		header.Del(sessionHeader)
		return
	}
	header.Set(sessionHeader, i.sessionId)
	header.Del(HeaderAuthorization)
}

// Resolver reads the credential and session id from the local store. The
// session id is created lazily on first resolve and never regenerated while
// present. When the store cannot persist a fresh session id the resolver
// degrades to an in-memory id for the lifetime of the process.
type Resolver struct {
	store        storage.Store
	logger       zerolog.Logger
	memSessionId string
	mu           sync.Mutex
}

func NewResolver(store storage.Store, logger zerolog.Logger) *Resolver {
	return &Resolver{store: store, logger: logger}
}

func (r *Resolver) Resolve(c context.Context) Identity {
	logger := r.logger.With().
		Str(log.KeyTag, "Resolver Resolve").
		Logger()

	credential, err := r.store.Get(storage.KeyToken)
	if err == nil && credential != "" {
		if expired(credential) {
			logger.Info().
				Str(log.KeyProcess, "checking credential").
				Msg("stored credential is expired, falling back to anonymous session")
		} else {
			return NewAuthenticated(credential)
		}
	}
	if err != nil && !errors.Is(err, storage.ErrKeyNotFound) {
		err = fmt.Errorf("failed reading credential with error=%w", err)
		logger.Warn().Err(err).Msg(err.Error())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	sessionId, err := r.store.Get(storage.KeySessionId)
	if err == nil && sessionId != "" {
		return NewAnonymous(sessionId)
	}
	if r.memSessionId != "" {
		return NewAnonymous(r.memSessionId)
	}

	sessionId = uuid.NewString()
	logger = logger.With().
		Str(log.KeyProcess, "creating session id").
		Str(log.KeySessionId, sessionId).
		Logger()
	logger.Info().Msg("creating session id")
	if err := r.store.Set(storage.KeySessionId, sessionId); err != nil {
		// Storage being unavailable is degraded but non fatal: keep the id
		// in memory so this process still presents a stable session.
		err = fmt.Errorf("failed persisting session id with error=%w", err)
		logger.Warn().Err(err).Msg(err.Error())
		r.memSessionId = sessionId
	}
	logger.Info().Msg("created session id")

	return NewAnonymous(sessionId)
}

// expired reports whether the credential is a JWT whose expiry has passed.
// Opaque or unparseable credentials are passed through untouched; the server
// remains the final arbiter of credential validity.
func expired(credential string) bool {
	claims := jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(credential, &claims)
	if err != nil || claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}

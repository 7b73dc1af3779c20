package identity

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/Alturino/storefront/internal/storage"
)

const sessionHeader = "X-Session-Id"

type brokenStore struct{}

func (brokenStore) Get(key string) (string, error) { return "", storage.ErrKeyNotFound }
func (brokenStore) Set(key, value string) error    { return errors.New("storage unavailable") }
func (brokenStore) Remove(key string) error        { return nil }

func signedToken(t *testing.T, expiresAt time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("failed signing token with error: %s", err)
	}
	return signed
}

func TestResolveExactlyOneIdentityHeader(t *testing.T) {
	tests := []struct {
		name          string
		setup         func(t *testing.T, store storage.Store)
		authenticated bool
	}{
		{
			name:          "given no credential should send only the session header",
			setup:         func(t *testing.T, store storage.Store) {},
			authenticated: false,
		},
		{
			name: "given a credential should send only the authorization header",
			setup: func(t *testing.T, store storage.Store) {
				if err := store.Set(storage.KeyToken, "opaque-credential"); err != nil {
					t.Fatalf("failed seeding credential with error: %s", err)
				}
			},
			authenticated: true,
		},
		{
			name: "given a credential and an existing session id the credential wins",
			setup: func(t *testing.T, store storage.Store) {
				if err := store.Set(storage.KeySessionId, "stale-session"); err != nil {
					t.Fatalf("failed seeding session id with error: %s", err)
				}
				if err := store.Set(storage.KeyToken, "opaque-credential"); err != nil {
					t.Fatalf("failed seeding credential with error: %s", err)
				}
			},
			authenticated: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			tt.setup(t, store)
			resolver := NewResolver(store, zerolog.Nop())

			who := resolver.Resolve(context.Background())
			header := http.Header{}
			who.Apply(header, sessionHeader)

			if tt.authenticated {
				assert.Equal(t, Authenticated, who.Kind())
				assert.NotEmpty(t, header.Get(HeaderAuthorization))
				assert.Empty(t, header.Get(sessionHeader))
				return
			}
			assert.Equal(t, Anonymous, who.Kind())
			assert.NotEmpty(t, header.Get(sessionHeader))
			assert.Empty(t, header.Get(HeaderAuthorization))
		})
	}
}

func TestResolveSessionIdIsDurable(t *testing.T) {
	store := storage.NewMemoryStore()
	resolver := NewResolver(store, zerolog.Nop())

	first := resolver.Resolve(context.Background())
	second := resolver.Resolve(context.Background())

	assert.Equal(t, Anonymous, first.Kind())
	assert.NotEmpty(t, first.SessionId())
	assert.Equal(t, first.SessionId(), second.SessionId())

	persisted, err := store.Get(storage.KeySessionId)
	assert.NoError(t, err)
	assert.Equal(t, first.SessionId(), persisted)
}

func TestResolveFallsBackToMemoryWhenStorageUnavailable(t *testing.T) {
	resolver := NewResolver(brokenStore{}, zerolog.Nop())

	first := resolver.Resolve(context.Background())
	second := resolver.Resolve(context.Background())

	assert.Equal(t, Anonymous, first.Kind())
	assert.NotEmpty(t, first.SessionId())
	assert.Equal(t, first.SessionId(), second.SessionId())
}

func TestResolveDemotesExpiredBearerToken(t *testing.T) {
	store := storage.NewMemoryStore()
	expired := signedToken(t, time.Now().Add(-time.Hour))
	if err := store.Set(storage.KeyToken, expired); err != nil {
		t.Fatalf("failed seeding credential with error: %s", err)
	}
	resolver := NewResolver(store, zerolog.Nop())

	who := resolver.Resolve(context.Background())
	assert.Equal(t, Anonymous, who.Kind())

	live := signedToken(t, time.Now().Add(time.Hour))
	if err := store.Set(storage.KeyToken, live); err != nil {
		t.Fatalf("failed replacing credential with error: %s", err)
	}
	who = resolver.Resolve(context.Background())
	assert.Equal(t, Authenticated, who.Kind())
}

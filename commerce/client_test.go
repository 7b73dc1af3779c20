package commerce

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/Alturino/storefront/cart/pkg/response"
	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/identity"
	"github.com/Alturino/storefront/internal/storage"
)

const testSessionHeader = "X-Session-Id"

type recordedHeaders struct {
	authorization string
	sessionId     string
}

func newTestClient(
	t *testing.T,
	handler http.Handler,
) (*Client, storage.Store, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := storage.NewMemoryStore()
	resolver := identity.NewResolver(store, zerolog.Nop())
	client, err := NewClient(
		config.Commerce{BaseUrl: server.URL, SessionHeader: testSessionHeader, TimeoutSecond: 5},
		resolver,
		zerolog.Nop(),
	)
	if err != nil {
		t.Fatalf("failed creating client with error: %s", err)
	}
	return client, store, server
}

func TestEveryRequestCarriesExactlyOneIdentityHeader(t *testing.T) {
	recorded := []recordedHeaders{}
	r := mux.NewRouter()
	r.HandleFunc("/cart", func(w http.ResponseWriter, req *http.Request) {
		recorded = append(recorded, recordedHeaders{
			authorization: req.Header.Get("Authorization"),
			sessionId:     req.Header.Get(testSessionHeader),
		})
		json.NewEncoder(w).Encode(response.Cart{})
	}).Methods(http.MethodGet)

	client, store, _ := newTestClient(t, r)

	// Anonymous: session header only.
	_, err := client.FindCart(context.Background())
	assert.NoError(t, err)

	// Authenticated: authorization only.
	if err := store.Set(storage.KeyToken, "opaque-credential"); err != nil {
		t.Fatalf("failed seeding credential with error: %s", err)
	}
	_, err = client.FindCart(context.Background())
	assert.NoError(t, err)

	if assert.Len(t, recorded, 2) {
		assert.Empty(t, recorded[0].authorization)
		assert.NotEmpty(t, recorded[0].sessionId)

		assert.Equal(t, "Bearer opaque-credential", recorded[1].authorization)
		assert.Empty(t, recorded[1].sessionId)
	}
}

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name            string
		handler         http.HandlerFunc
		closeServer     bool
		expectedKind    errors.Kind
		expectedMessage string
	}{
		{
			name: "given 400 with message should map to validation with server message",
			handler: func(w http.ResponseWriter, req *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]string{"message": "Yetersiz stok"})
			},
			expectedKind:    errors.KindValidation,
			expectedMessage: "Yetersiz stok",
		},
		{
			name: "given 400 without message should map to validation with fallback",
			handler: func(w http.ResponseWriter, req *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
			},
			expectedKind:    errors.KindValidation,
			expectedMessage: MsgFetchFailed,
		},
		{
			name: "given 500 should map to unknown with fallback",
			handler: func(w http.ResponseWriter, req *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			expectedKind:    errors.KindUnknown,
			expectedMessage: MsgFetchFailed,
		},
		{
			name: "given unreachable server should map to transport with fallback",
			handler: func(w http.ResponseWriter, req *http.Request) {
			},
			closeServer:     true,
			expectedKind:    errors.KindTransport,
			expectedMessage: MsgFetchFailed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _, server := newTestClient(t, tt.handler)
			if tt.closeServer {
				server.Close()
			}

			_, err := client.FindCart(context.Background())
			assert.Error(t, err)

			intentErr := &errors.IntentError{}
			if assert.ErrorAs(t, err, &intentErr) {
				assert.Equal(t, tt.expectedKind, intentErr.Kind)
				assert.Equal(t, tt.expectedMessage, intentErr.Message)
			}
		})
	}
}

func TestRemoveCartItemAcceptsEmptyBody(t *testing.T) {
	cartItemId := uuid.New()
	r := mux.NewRouter()
	r.HandleFunc("/cart/remove/{cartItemId}", func(w http.ResponseWriter, req *http.Request) {
		assert.Equal(t, cartItemId.String(), mux.Vars(req)["cartItemId"])
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodDelete)

	client, _, _ := newTestClient(t, r)
	err := client.RemoveCartItem(context.Background(), cartItemId)
	assert.NoError(t, err)
}

func TestCheckStock(t *testing.T) {
	productVariantId := uuid.New()
	r := mux.NewRouter()
	r.HandleFunc(
		"/products/variants/{productVariantId}/stock/{quantity}",
		func(w http.ResponseWriter, req *http.Request) {
			assert.Equal(t, productVariantId.String(), mux.Vars(req)["productVariantId"])
			assert.Equal(t, "3", mux.Vars(req)["quantity"])
			fmt.Fprint(w, `{"isAvailable":true}`)
		},
	).Methods(http.MethodGet)

	client, _, _ := newTestClient(t, r)
	isAvailable, err := client.CheckStock(context.Background(), productVariantId, 3)
	assert.NoError(t, err)
	assert.True(t, isAvailable)
}

func TestMergeOnLoginIsNotSupported(t *testing.T) {
	client, _, _ := newTestClient(t, http.NotFoundHandler())
	err := client.MergeOnLogin(context.Background(), "session-1")
	assert.ErrorIs(t, err, errors.ErrMergeNotSupported)
}

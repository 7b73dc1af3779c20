// Package storage is the persistent local store backing the storefront
// client: a durable key/value area holding the anonymous session id, the
// serialized wishlist and the cross-flow markers. It is the host-local
// analogue of the browser storage the storefront web client uses.
package storage

import "errors"

const (
	KeySessionId              = "sessionId"
	KeyToken                  = "token"
	KeyWishlist               = "wishlist"
	KeyAddingAddress          = "addingAddress"
	KeyAddingAddressTimestamp = "addingAddressTimestamp"
)

var ErrKeyNotFound = errors.New("key not found in storage")

// Store is deliberately thin: no TTL, no quota, stringly valued. Callers own
// their value encoding.
type Store interface {
	Get(key string) (string, error)
	Set(key string, value string) error
	Remove(key string) error
}

// Package wishlist is the pure local favorites store: no server round-trip,
// set semantics keyed on product id, insertion order preserved for display.
// Entries are full product snapshots so the view renders without a second
// fetch. Every mutation serializes the whole sequence to the local store
// before returning.
package wishlist

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/storage"
	productResponse "github.com/Alturino/storefront/product/pkg/response"
)

type Store struct {
	storage storage.Store
	logger  zerolog.Logger
	items   []productResponse.Product
	mu      sync.Mutex
}

func New(store storage.Store, logger zerolog.Logger) (*Store, error) {
	logger = logger.With().
		Str(log.KeyTag, "wishlist New").
		Str(log.KeyStorageKey, storage.KeyWishlist).
		Logger()

	items := []productResponse.Product{}
	raw, err := store.Get(storage.KeyWishlist)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			err = fmt.Errorf("failed reading wishlist with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		logger.Info().Msg("no persisted wishlist, starting empty")
	} else if raw != "" {
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			err = fmt.Errorf("failed unmarshaling wishlist with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
	}

	return &Store{storage: store, logger: logger, items: items}, nil
}

// Add appends the product unless it is already present. Reports whether the
// wishlist changed.
func (s *Store) Add(product productResponse.Product) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(product)
}

func (s *Store) Remove(productId uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(productId)
}

// Toggle flips membership. Toggling twice restores membership but not the
// original position: a re-added product appends at the end. Intentional
// quirk, kept for display parity with the storefront.
func (s *Store) Toggle(product productResponse.Product) (added bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(product.ID) >= 0 {
		_, err = s.removeLocked(product.ID)
		return false, err
	}
	_, err = s.addLocked(product)
	return err == nil, err
}

func (s *Store) addLocked(product productResponse.Product) (bool, error) {
	if s.indexOf(product.ID) >= 0 {
		return false, nil
	}
	s.items = append(s.items, product)
	if err := s.persist(); err != nil {
		s.items = s.items[:len(s.items)-1]
		return false, err
	}
	return true, nil
}

func (s *Store) removeLocked(productId uuid.UUID) (bool, error) {
	index := s.indexOf(productId)
	if index < 0 {
		return false, nil
	}
	previous := s.items
	s.items = append(append([]productResponse.Product{}, previous[:index]...), previous[index+1:]...)
	if err := s.persist(); err != nil {
		s.items = previous
		return false, err
	}
	return true, nil
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.items
	s.items = []productResponse.Product{}
	if err := s.persist(); err != nil {
		s.items = previous
		return err
	}
	return nil
}

func (s *Store) Contains(productId uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexOf(productId) >= 0
}

func (s *Store) Items() []productResponse.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]productResponse.Product(nil), s.items...)
}

func (s *Store) indexOf(productId uuid.UUID) int {
	for i, item := range s.items {
		if item.ID == productId {
			return i
		}
	}
	return -1
}

func (s *Store) persist() error {
	logger := s.logger.With().
		Str(log.KeyProcess, "persisting wishlist").
		Int(log.KeyWishlistCount, len(s.items)).
		Logger()

	encoded, err := json.Marshal(s.items)
	if err != nil {
		err = fmt.Errorf("failed marshaling wishlist with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if err := s.storage.Set(storage.KeyWishlist, string(encoded)); err != nil {
		err = fmt.Errorf("failed persisting wishlist with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	return nil
}

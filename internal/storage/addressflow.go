package storage

import (
	"errors"
	"strconv"
	"time"
)

// The address-collection flow uses the local store as a mailbox to detect
// that the user navigated away mid flow and came back. The cart engine never
// reads or writes these keys; only the view layer does, through the helpers
// below.

func MarkAddingAddress(s Store, now time.Time) error {
	if err := s.Set(KeyAddingAddress, "true"); err != nil {
		return err
	}
	return s.Set(KeyAddingAddressTimestamp, strconv.FormatInt(now.UnixMilli(), 10))
}

func AddingAddress(s Store) (bool, time.Time, error) {
	value, err := s.Get(KeyAddingAddress)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return false, time.Time{}, nil
		}
		return false, time.Time{}, err
	}
	if value != "true" {
		return false, time.Time{}, nil
	}

	raw, err := s.Get(KeyAddingAddressTimestamp)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return true, time.Time{}, nil
		}
		return false, time.Time{}, err
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return true, time.Time{}, nil
	}
	return true, time.UnixMilli(millis), nil
}

func ClearAddingAddress(s Store) error {
	if err := s.Remove(KeyAddingAddress); err != nil {
		return err
	}
	return s.Remove(KeyAddingAddressTimestamp)
}

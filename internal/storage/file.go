package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/internal/log"
)

// FileStore persists every mutation to a single JSON file via a
// write-to-temp-then-rename so a crash mid write never loses the previous
// snapshot.
type FileStore struct {
	logger zerolog.Logger
	values map[string]string
	path   string
	mu     sync.Mutex
}

func NewFileStore(path string, logger zerolog.Logger) (*FileStore, error) {
	logger = logger.With().
		Str(log.KeyTag, "storage NewFileStore").
		Str("path", path).
		Logger()

	values := map[string]string{}
	content, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("failed reading storage file with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		logger.Info().Msg("storage file does not exist yet, starting empty")
	} else if len(content) > 0 {
		if err := json.Unmarshal(content, &values); err != nil {
			err = fmt.Errorf("failed unmarshaling storage file with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
	}

	return &FileStore{path: path, values: values, logger: logger}, nil
}

func (s *FileStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("failed getting key=%s with error=%w", key, ErrKeyNotFound)
	}
	return value, nil
}

func (s *FileStore) Set(key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, hadPrevious := s.values[key]
	s.values[key] = value
	if err := s.flush(); err != nil {
		if hadPrevious {
			s.values[key] = previous
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, hadPrevious := s.values[key]
	if !hadPrevious {
		return nil
	}
	delete(s.values, key)
	if err := s.flush(); err != nil {
		s.values[key] = previous
		return err
	}
	return nil
}

func (s *FileStore) flush() error {
	logger := s.logger.With().Str(log.KeyProcess, "flushing storage").Logger()

	content, err := json.Marshal(s.values)
	if err != nil {
		err = fmt.Errorf("failed marshaling storage with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".storefront-*")
	if err != nil {
		err = fmt.Errorf("failed creating temp storage file with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if _, err = tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		err = fmt.Errorf("failed writing temp storage file with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		err = fmt.Errorf("failed closing temp storage file with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if err = os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		err = fmt.Errorf("failed renaming temp storage file with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	return nil
}

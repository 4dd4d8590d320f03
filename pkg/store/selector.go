package store

import (
	"errors"
	"fmt"
	"strings"
)

const (
	ModeMemory   = "memory"
	ModePostgres = "postgres"
)

// ErrUnknownMode is returned by Open for an unrecognized storage mode.
var ErrUnknownMode = errors.New("unknown storage mode")

// Open builds the backend named by mode. An empty mode selects memory.
func Open(mode, dsn string, options ...GormStoreOption) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeMemory:
		return NewMemoryStore(), nil
	case ModePostgres:
		if strings.TrimSpace(dsn) == "" {
			return nil, errors.New("postgres storage requires a database url")
		}
		s, err := NewGormStore(dsn, options...)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// ModeOf names the backend behind s.
func ModeOf(s Store) string {
	switch v := s.(type) {
	case *SwitchableStore:
		return ModeOf(v.Current())
	case *GormStore:
		return ModePostgres
	case *MemoryStore:
		return ModeMemory
	default:
		return "custom"
	}
}

// Package store persists finalized brand profiles under a session key.
// Three backends share one contract: a JSON file pair in the data dir, a
// JetStream KV bucket on an embedded NATS server, and Redis.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"github.com/icyhq/icy/internal/brand"
	"github.com/icyhq/icy/internal/config"
)

var (
	// ErrCorrupt is returned when a stored blob does not have the shape of
	// a brand profile.
	ErrCorrupt = errors.New("stored brand profile is corrupt")
	// ErrInvalidKey is returned for keys that normalize to nothing.
	ErrInvalidKey = errors.New("invalid store key")
)

// Store saves and loads brand profiles by key.
type Store interface {
	// Save records p as the newest revision under key.
	Save(ctx context.Context, key string, p brand.Profile) error
	// Load returns the newest revision under key. ok is false when nothing
	// has been saved.
	Load(ctx context.Context, key string) (p brand.Profile, ok bool, err error)
	// History returns the retained revisions under key, newest first.
	History(ctx context.Context, key string) ([]Revision, error)
	Close() error
}

// Revision is one saved version of a profile.
type Revision struct {
	Number  uint64        `json:"revision"`
	SavedAt time.Time     `json:"savedAt"`
	Profile brand.Profile `json:"profile"`
}

// Open builds the backend selected by cfg.Store.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store {
	case config.StoreFile:
		return NewFileStore(cfg.DataDir, cfg.History)
	case config.StoreNATS:
		return NewKVStore(ctx, cfg.DataDir, cfg.History)
	case config.StoreRedis:
		return NewRedisStore(ctx, cfg.RedisAddr, cfg.History)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}

// NormalizeKey slugs a session key so every backend can use it verbatim as
// a file name, KV key or redis key segment.
func NormalizeKey(key string) (string, error) {
	s := slug.Make(key)
	if s == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return s, nil
}

func encode(p brand.Profile) ([]byte, error) {
	return json.Marshal(p.Clone())
}

// decode checks the blob shape before unmarshaling so a hand-edited or
// foreign value surfaces as ErrCorrupt instead of a half-filled profile.
func decode(data []byte) (brand.Profile, error) {
	if err := checkShape(data); err != nil {
		return brand.Profile{}, err
	}
	var p brand.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return brand.Profile{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return p.Clone(), nil
}

func decodeRevision(data []byte) (Revision, error) {
	var raw struct {
		Number  uint64          `json:"revision"`
		SavedAt time.Time       `json:"savedAt"`
		Profile json.RawMessage `json:"profile"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Revision{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	p, err := decode(raw.Profile)
	if err != nil {
		return Revision{}, err
	}
	return Revision{Number: raw.Number, SavedAt: raw.SavedAt, Profile: p}, nil
}

package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/icyhq/icy/internal/brand"
	"github.com/icyhq/icy/internal/logger"
	inats "github.com/icyhq/icy/internal/nats"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// KVStore keeps profiles in a JetStream KV bucket. The bucket's per-key
// history provides the revision list.
type KVStore struct {
	kv jetstream.KeyValue
	nc *nats.Conn
	ns *server.Server
}

// NewKVStore starts an embedded NATS server persisting under
// <dataDir>/nats and opens the brand bucket on it.
func NewKVStore(ctx context.Context, dataDir string, history int) (*KVStore, error) {
	ns, err := inats.StartEmbeddedNATS(filepath.Join(dataDir, "nats"))
	if err != nil {
		return nil, fmt.Errorf("starting nats: %w", err)
	}
	nc, err := inats.ConnectInProcess(ns)
	if err != nil {
		_ = inats.Shutdown(nil, ns)
		return nil, fmt.Errorf("connecting to nats: %w", err)
	}

	s, err := newKVStore(ctx, nc, history)
	if err != nil {
		_ = inats.Shutdown(nc, ns)
		return nil, err
	}
	s.ns = ns
	return s, nil
}

// newKVStore opens the bucket over an existing connection. The caller keeps
// ownership of the server.
func newKVStore(ctx context.Context, nc *nats.Conn, history int) (*KVStore, error) {
	js, err := inats.CreateJetStream(nc)
	if err != nil {
		return nil, fmt.Errorf("creating jetstream context: %w", err)
	}
	kv, err := inats.SetupBucket(ctx, js, history)
	if err != nil {
		return nil, fmt.Errorf("setting up %s bucket: %w", inats.BrandBucket, err)
	}
	return &KVStore{kv: kv, nc: nc}, nil
}

func (s *KVStore) Save(ctx context.Context, key string, p brand.Profile) error {
	k, err := NormalizeKey(key)
	if err != nil {
		return err
	}
	data, err := encode(p)
	if err != nil {
		return fmt.Errorf("marshaling brand profile: %w", err)
	}
	rev, err := s.kv.Put(ctx, k, data)
	if err != nil {
		return fmt.Errorf("putting %s: %w", k, err)
	}
	logger.Debug("store: saved %s revision %d to bucket %s", k, rev, inats.BrandBucket)
	return nil
}

func (s *KVStore) Load(ctx context.Context, key string) (brand.Profile, bool, error) {
	k, err := NormalizeKey(key)
	if err != nil {
		return brand.Profile{}, false, err
	}
	entry, err := s.kv.Get(ctx, k)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return brand.Profile{}, false, nil
	}
	if err != nil {
		return brand.Profile{}, false, fmt.Errorf("getting %s: %w", k, err)
	}
	p, err := decode(entry.Value())
	if err != nil {
		return brand.Profile{}, false, err
	}
	return p, true, nil
}

func (s *KVStore) History(ctx context.Context, key string) ([]Revision, error) {
	k, err := NormalizeKey(key)
	if err != nil {
		return nil, err
	}
	entries, err := s.kv.History(ctx, k)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("history of %s: %w", k, err)
	}

	revs := make([]Revision, 0, len(entries))
	for _, e := range entries {
		if e.Operation() != jetstream.KeyValuePut {
			continue
		}
		p, err := decode(e.Value())
		if err != nil {
			return nil, err
		}
		revs = append(revs, Revision{Number: e.Revision(), SavedAt: e.Created().UTC(), Profile: p})
	}
	slices.Reverse(revs)
	return revs, nil
}

// Close drains the connection and stops the embedded server if this store
// started it.
func (s *KVStore) Close() error {
	if s.ns == nil {
		s.nc.Close()
		return nil
	}
	return inats.Shutdown(s.nc, s.ns)
}

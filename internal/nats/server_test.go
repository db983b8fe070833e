package nats

import (
	"context"
	"testing"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedBucketRoundTrip(t *testing.T) {
	ns, err := StartEmbeddedNATS(t.TempDir())
	require.NoError(t, err)

	nc, err := ConnectInProcess(ns)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Shutdown(nc, ns) })

	js, err := CreateJetStream(nc)
	require.NoError(t, err)

	ctx := context.Background()
	kv, err := SetupBucket(ctx, js, 3)
	require.NoError(t, err)

	for _, v := range []string{"a", "b", "c", "d"} {
		_, err := kv.Put(ctx, "brand", []byte(v))
		require.NoError(t, err)
	}

	entry, err := kv.Get(ctx, "brand")
	require.NoError(t, err)
	require.Equal(t, "d", string(entry.Value()))

	hist, err := kv.History(ctx, "brand")
	require.NoError(t, err)
	require.Len(t, hist, 3, "bucket keeps only the configured history depth")

	_, err = kv.Get(ctx, "missing")
	require.ErrorIs(t, err, jetstream.ErrKeyNotFound)
}

func TestShutdownNil(t *testing.T) {
	require.NoError(t, Shutdown(nil, nil))
}

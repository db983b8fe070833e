package nats

import (
	"context"

	"github.com/nats-io/nats.go/jetstream"
)

// BrandBucket is the KV bucket holding saved brand profiles, one key per
// slugged session key.
const BrandBucket = "icy_brands"

// SetupBucket creates or updates the brand KV bucket, keeping up to history
// revisions per key on disk.
func SetupBucket(ctx context.Context, js jetstream.JetStream, history int) (jetstream.KeyValue, error) {
	return js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      BrandBucket,
		Description: "icy brand profiles",
		History:     uint8(history),
		Storage:     jetstream.FileStorage,
	})
}

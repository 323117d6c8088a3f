package nats

import (
	"context"

	"github.com/nats-io/nats.go/jetstream"
)

// draftBucket is the JetStream key-value bucket holding listing drafts.
// One bucket, file-backed, single-revision history: a save overwrites the
// previous draft outright.
const draftBucket = "khidma_drafts"

// SetupDraftBucket creates or opens the drafts key-value bucket.
func SetupDraftBucket(ctx context.Context, js jetstream.JetStream) (jetstream.KeyValue, error) {
	return js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      draftBucket,
		Description: "khidma service-listing drafts",
		Storage:     jetstream.FileStorage,
		History:     1,
	})
}

// Package draft persists the wizard's listing draft: one serializable
// projection under one well-known key in the drafts key-value bucket.
//
// The store is deliberately forgiving. Saves that fail to serialize or hit a
// storage limit are logged and swallowed (the user-visible effect is only
// that the last-saved stamp does not move), and a missing or unparseable
// draft loads as "absent". Nothing in here crashes the wizard session.
package draft

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/khidmahq/khidma/internal/listing"
	"github.com/khidmahq/khidma/internal/logger"
	"github.com/nats-io/nats.go/jetstream"
)

// draftKey is the single well-known key for the service-listing draft.
// No other component writes to it.
const draftKey = "service-listing"

// Store persists listing drafts in a JetStream key-value bucket.
type Store struct {
	kv jetstream.KeyValue
}

// NewStore creates a Store backed by the given bucket.
func NewStore(kv jetstream.KeyValue) *Store {
	return &Store{kv: kv}
}

// Save serializes the projection and overwrites the draft key. Failures are
// logged and swallowed; the return value reports whether the draft was
// actually written so callers can decide whether to update a last-saved
// stamp.
func (s *Store) Save(ctx context.Context, p listing.Projection) bool {
	data, err := json.Marshal(p)
	if err != nil {
		logger.Error("Failed to serialize draft: %v", err)
		return false
	}

	if _, err := s.kv.Put(ctx, draftKey, data); err != nil {
		logger.Error("Failed to store draft (%d bytes): %v", len(data), err)
		return false
	}

	logger.Debug("Draft saved (%d bytes)", len(data))
	return true
}

// Load reads the draft key. A missing key or an unparseable value both
// return ok=false; a corrupt draft is treated exactly like no draft.
func (s *Store) Load(ctx context.Context) (listing.Projection, bool) {
	entry, err := s.kv.Get(ctx, draftKey)
	if err != nil {
		if !errors.Is(err, jetstream.ErrKeyNotFound) {
			logger.Warn("Failed to read draft: %v", err)
		}
		return listing.Projection{}, false
	}

	var p listing.Projection
	if err := json.Unmarshal(entry.Value(), &p); err != nil {
		logger.Warn("Discarding unparseable draft: %v", err)
		return listing.Projection{}, false
	}

	logger.Debug("Draft loaded")
	return p, true
}

// Clear removes the draft key. Clearing an absent draft is not an error.
func (s *Store) Clear(ctx context.Context) {
	if err := s.kv.Delete(ctx, draftKey); err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		logger.Warn("Failed to clear draft: %v", err)
		return
	}
	logger.Debug("Draft cleared")
}

package repository

import (
	"context"
	"encoding/json"
)

type SongCache interface {
	// Get the cached song document, or nil if there is none.
	Get(ctx context.Context, videoId string) (json.RawMessage, error)
	// Save a song document to the cache.
	Put(ctx context.Context, videoId string, doc json.RawMessage) error
}

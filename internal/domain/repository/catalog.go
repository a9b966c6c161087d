package repository

import (
	"context"
	"encoding/json"
)

// Catalog is the music catalog the API delegates to.
// Documents are returned as opaque JSON and must not be reshaped by callers.
type Catalog interface {
	// Get the home feed with at least limit sections when the upstream has them.
	GetHome(ctx context.Context, limit int) (json.RawMessage, error)
	// Get the playback and metadata document of a song by its video ID.
	GetSong(ctx context.Context, videoId string) (json.RawMessage, error)
}

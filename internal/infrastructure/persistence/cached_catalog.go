package persistence

import (
	"context"
	"encoding/json"

	"github.com/molpadia/ytmusic-gateway/internal/domain/repository"
	"github.com/rs/zerolog"
)

// CachedCatalog reads song documents through a cache. The home feed is
// personalised and changes often, so it always goes to the catalog.
type CachedCatalog struct {
	repository.Catalog
	cache repository.SongCache
}

func NewCachedCatalog(catalog repository.Catalog, cache repository.SongCache) *CachedCatalog {
	return &CachedCatalog{catalog, cache}
}

// Cache failures are logged and never fail the lookup.
func (c *CachedCatalog) GetSong(ctx context.Context, videoId string) (json.RawMessage, error) {
	logger := zerolog.Ctx(ctx)

	doc, err := c.cache.Get(ctx, videoId)
	if err != nil {
		logger.Warn().Err(err).Str("video_id", videoId).Msg("song cache lookup failed")
	} else if doc != nil {
		logger.Debug().Str("video_id", videoId).Msg("song cache hit")
		return doc, nil
	}

	doc, err = c.Catalog.GetSong(ctx, videoId)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Put(ctx, videoId, doc); err != nil {
		logger.Warn().Err(err).Str("video_id", videoId).Msg("failed to save song to cache")
	}
	return doc, nil
}

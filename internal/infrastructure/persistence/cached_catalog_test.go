package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedCatalogGetSong(t *testing.T) {
	tests := []struct {
		name     string
		cached   json.RawMessage
		cacheErr error
		upstream json.RawMessage
		err      error
		expected json.RawMessage
		calls    int
		stored   bool
	}{
		{"hit", json.RawMessage(`{"cached":true}`), nil, json.RawMessage(`{}`), nil, json.RawMessage(`{"cached":true}`), 0, false},
		{"miss", nil, nil, json.RawMessage(`{"cached":false}`), nil, json.RawMessage(`{"cached":false}`), 1, true},
		{"cache failure", nil, errors.New("dynamodb down"), json.RawMessage(`{"cached":false}`), nil, json.RawMessage(`{"cached":false}`), 1, false},
		{"upstream failure", nil, nil, nil, errors.New("bad id"), nil, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := &mockCatalog{song: tt.upstream, err: tt.err}
			cache := &mockSongCache{doc: tt.cached, err: tt.cacheErr}
			c := NewCachedCatalog(catalog, cache)

			doc, err := c.GetSong(context.Background(), "4NRXx6U8ABQ")
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			} else {
				require.NoError(t, err)
				assert.JSONEq(t, string(tt.expected), string(doc))
			}
			assert.Equal(t, tt.calls, catalog.songCalls)
			assert.Equal(t, tt.stored, cache.stored != nil)
		})
	}
}

func TestCachedCatalogGetHome(t *testing.T) {
	catalog := &mockCatalog{home: json.RawMessage(`[]`)}
	cache := &mockSongCache{}
	c := NewCachedCatalog(catalog, cache)

	doc, err := c.GetHome(context.Background(), 3)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(doc))
	assert.Nil(t, cache.stored)
}

type mockCatalog struct {
	home      json.RawMessage
	song      json.RawMessage
	err       error
	songCalls int
}

func (c *mockCatalog) GetHome(ctx context.Context, limit int) (json.RawMessage, error) {
	return c.home, c.err
}

func (c *mockCatalog) GetSong(ctx context.Context, videoId string) (json.RawMessage, error) {
	c.songCalls++
	return c.song, c.err
}

type mockSongCache struct {
	doc    json.RawMessage
	err    error
	stored json.RawMessage
}

func (c *mockSongCache) Get(ctx context.Context, videoId string) (json.RawMessage, error) {
	return c.doc, c.err
}

func (c *mockSongCache) Put(ctx context.Context, videoId string, doc json.RawMessage) error {
	if c.err != nil {
		return c.err
	}
	c.stored = doc
	return nil
}

package ytmusic

import (
	"context"
	"encoding/json"
	"time"

	"github.com/molpadia/ytmusic-gateway/internal/domain/entity"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// GetSong fetches the player document of a song.
func (c *Client) GetSong(ctx context.Context, videoId string) (json.RawMessage, error) {
	body, err := c.post(ctx, "player", map[string]interface{}{
		"videoId": videoId,
		"playbackContext": map[string]interface{}{
			"contentPlaybackContext": map[string]interface{}{
				"signatureTimestamp": signatureTimestamp(time.Now()),
			},
		},
	}, "")
	if err != nil {
		return nil, err
	}

	status := gjson.GetBytes(body, "playabilityStatus")
	if status.Get("status").String() == "ERROR" && !c.passUnplayable {
		reason := status.Get("reason").String()
		if reason == "" {
			reason = "video unavailable"
		}
		return nil, entity.NewFault(entity.KindNotFound, "player", reason, nil)
	}

	doc := make(map[string]json.RawMessage, len(entity.SongKeys))
	for _, key := range entity.SongKeys {
		if v := gjson.GetBytes(body, key); v.Exists() {
			doc[key] = json.RawMessage(v.Raw)
		}
	}
	if len(doc) == 0 {
		return nil, entity.NewFault(entity.KindInternal, "player", "unexpected layout of player response", nil)
	}
	keys := maps.Keys(doc)
	slices.Sort(keys)
	zerolog.Ctx(ctx).Debug().Str("video_id", videoId).Strs("keys", keys).Msg("song fetched")

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, entity.NewFault(entity.KindInternal, "player", "", err)
	}
	return out, nil
}

// Days since the epoch, lagging one day behind to match the published player.
func signatureTimestamp(now time.Time) int64 {
	return now.Unix()/86400 - 1
}

package ytmusic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/molpadia/ytmusic-gateway/internal/domain/entity"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/exp/slices"
)

const (
	homeBrowseId = "FEmusic_home"

	sectionListPath  = "contents.singleColumnBrowseResultsRenderer.tabs.0.tabRenderer.content.sectionListRenderer"
	continuationPath = "continuationContents.sectionListContinuation"
	nextTokenPath    = "continuations.0.nextContinuationData.continuation"
	pageTypePath     = "browseEndpointContextSupportedConfigs.browseEndpointContextMusicConfig.pageType"
	videoTypePath    = "watchEndpointMusicSupportedConfigs.watchEndpointMusicConfig.musicVideoType"
)

// Release types shown as the first subtitle run of album cards.
var albumTypes = []string{"Album", "Single", "EP"}

// GetHome fetches the home feed. Continuations are followed until at least
// limit sections were collected; a non-positive limit returns the first page.
func (c *Client) GetHome(ctx context.Context, limit int) (json.RawMessage, error) {
	body, err := c.post(ctx, "browse", map[string]interface{}{"browseId": homeBrowseId}, "")
	if err != nil {
		return nil, err
	}
	list := gjson.GetBytes(body, sectionListPath)
	if !list.Exists() {
		return nil, entity.NewFault(entity.KindInternal, "browse", "unexpected layout of home feed response", nil)
	}
	sections := append([]*entity.Section{}, parseSections(list.Get("contents"))...)
	token := list.Get(nextTokenPath).String()

	for len(sections) < limit && token != "" {
		body, err = c.post(ctx, "browse", map[string]interface{}{}, continuationParams(token))
		if err != nil {
			return nil, err
		}
		next := gjson.GetBytes(body, continuationPath)
		if !next.Exists() {
			break
		}
		sections = append(sections, parseSections(next.Get("contents"))...)
		token = next.Get(nextTokenPath).String()
	}
	zerolog.Ctx(ctx).Debug().Int("limit", limit).Int("sections", len(sections)).Msg("home feed fetched")

	out, err := json.Marshal(sections)
	if err != nil {
		return nil, entity.NewFault(entity.KindInternal, "browse", "", err)
	}
	return out, nil
}

func continuationParams(token string) string {
	t := url.QueryEscape(token)
	return fmt.Sprintf("&ctoken=%s&continuation=%s&type=next", t, t)
}

func parseSections(contents gjson.Result) []*entity.Section {
	var sections []*entity.Section
	contents.ForEach(func(_, shelf gjson.Result) bool {
		if s := parseShelf(shelf); s != nil {
			sections = append(sections, s)
		}
		return true
	})
	return sections
}

// Parse a carousel shelf, other shelf renderers are skipped.
func parseShelf(shelf gjson.Result) *entity.Section {
	var r gjson.Result
	var title string
	if r = shelf.Get("musicCarouselShelfRenderer"); r.Exists() {
		title = r.Get("header.musicCarouselShelfBasicHeaderRenderer.title.runs.0.text").String()
	} else if r = shelf.Get("musicImmersiveCarouselShelfRenderer"); r.Exists() {
		title = r.Get("header.musicImmersiveCarouselShelfBasicHeaderRenderer.title.runs.0.text").String()
	} else {
		return nil
	}
	section := &entity.Section{Title: title, Contents: []*entity.Item{}}
	r.Get("contents").ForEach(func(_, v gjson.Result) bool {
		if item := parseItem(v); item != nil {
			section.Contents = append(section.Contents, item)
		}
		return true
	})
	return section
}

func parseItem(v gjson.Result) *entity.Item {
	if r := v.Get("musicTwoRowItemRenderer"); r.Exists() {
		return parseTwoRowItem(r)
	}
	if r := v.Get("musicResponsiveListItemRenderer"); r.Exists() {
		return parseListItem(r)
	}
	return nil
}

// Cards of albums, playlists, artists and videos.
func parseTwoRowItem(r gjson.Result) *entity.Item {
	item := &entity.Item{
		Title:       r.Get("title.runs.0.text").String(),
		Description: joinRuns(r.Get("subtitle.runs")),
		Thumbnails:  parseThumbnails(r.Get("thumbnailRenderer.musicThumbnailRenderer.thumbnail.thumbnails")),
	}
	if watch := r.Get("navigationEndpoint.watchEndpoint"); watch.Exists() {
		item.VideoId = watch.Get("videoId").String()
		item.PlaylistId = watch.Get("playlistId").String()
		switch {
		case item.VideoId == "" && item.PlaylistId != "":
			item.Type = entity.ItemTypePlaylist
		case watch.Get(videoTypePath).String() == "MUSIC_VIDEO_TYPE_ATV":
			item.Type = entity.ItemTypeSong
		default:
			item.Type = entity.ItemTypeVideo
		}
		return item
	}
	// Mixes start playback of a whole playlist without a browse page.
	if watch := r.Get("navigationEndpoint.watchPlaylistEndpoint"); watch.Exists() {
		item.PlaylistId = watch.Get("playlistId").String()
		item.Type = entity.ItemTypePlaylist
		return item
	}

	browse := r.Get("navigationEndpoint.browseEndpoint")
	item.BrowseId = browse.Get("browseId").String()
	switch browse.Get(pageTypePath).String() {
	case "MUSIC_PAGE_TYPE_ALBUM":
		item.Type = entity.ItemTypeAlbum
		if kind := r.Get("subtitle.runs.0.text").String(); slices.Contains(albumTypes, kind) {
			item.Type = kind
		}
	case "MUSIC_PAGE_TYPE_ARTIST", "MUSIC_PAGE_TYPE_USER_CHANNEL":
		item.Type = entity.ItemTypeArtist
	case "MUSIC_PAGE_TYPE_PLAYLIST":
		item.Type = entity.ItemTypePlaylist
		item.PlaylistId = strings.TrimPrefix(item.BrowseId, "VL")
	}
	return item
}

// Rows of the "Quick picks" shelf.
func parseListItem(r gjson.Result) *entity.Item {
	column := func(i int) gjson.Result {
		return r.Get(fmt.Sprintf("flexColumns.%d.musicResponsiveListItemFlexColumnRenderer.text.runs", i))
	}
	item := &entity.Item{
		Title:       column(0).Get("0.text").String(),
		Type:        entity.ItemTypeSong,
		VideoId:     r.Get("playlistItemData.videoId").String(),
		Description: joinRuns(column(1)),
		Thumbnails:  parseThumbnails(r.Get("thumbnail.musicThumbnailRenderer.thumbnail.thumbnails")),
	}
	if item.VideoId == "" {
		item.VideoId = column(0).Get("0.navigationEndpoint.watchEndpoint.videoId").String()
	}
	return item
}

func joinRuns(runs gjson.Result) string {
	var sb strings.Builder
	runs.ForEach(func(_, run gjson.Result) bool {
		sb.WriteString(run.Get("text").String())
		return true
	})
	return sb.String()
}

func parseThumbnails(v gjson.Result) []entity.Thumbnail {
	thumbnails := []entity.Thumbnail{}
	if v.IsArray() {
		if err := json.Unmarshal([]byte(v.Raw), &thumbnails); err != nil {
			return []entity.Thumbnail{}
		}
	}
	return thumbnails
}

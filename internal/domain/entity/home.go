package entity

const (
	ItemTypeAlbum    = "Album"
	ItemTypeArtist   = "Artist"
	ItemTypePlaylist = "Playlist"
	ItemTypeSong     = "Song"
	ItemTypeVideo    = "Video"
)

// A titled shelf of the home feed.
type Section struct {
	Title    string  `json:"title"`
	Contents []*Item `json:"contents"`
}

// A single card inside a home feed section.
// Only the identifiers that apply to the item's type are set.
type Item struct {
	Title       string      `json:"title"`
	Type        string      `json:"type,omitempty"`
	VideoId     string      `json:"videoId,omitempty"`
	PlaylistId  string      `json:"playlistId,omitempty"`
	BrowseId    string      `json:"browseId,omitempty"`
	Description string      `json:"description,omitempty"`
	Thumbnails  []Thumbnail `json:"thumbnails"`
}

type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

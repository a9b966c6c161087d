package entity

// The top-level keys of a player response kept in a song document.
var SongKeys = []string{
	"videoDetails",
	"playabilityStatus",
	"streamingData",
	"microformat",
	"playbackTracking",
}

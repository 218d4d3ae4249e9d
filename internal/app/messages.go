package app

import (
	"golang.org/x/oauth2"

	"github.com/mixcrew/mixcrew/internal/chart"
	"github.com/mixcrew/mixcrew/internal/spotify"
)

// playlistsLoadedMsg carries the user's playlists. token is the client's
// current token so silent refreshes get re-persisted.
type playlistsLoadedMsg struct {
	playlists []spotify.Playlist
	token     *oauth2.Token
	err       error
}

// chartLoadedMsg carries a built chart. gen is the request generation the
// fetch was started under; results from a superseded generation are dropped
// on arrival.
type chartLoadedMsg struct {
	gen  int
	info *chart.PlaylistInfo
	err  error
}

// serverClosedMsg reports that the login callback server shut down.
type serverClosedMsg struct{}

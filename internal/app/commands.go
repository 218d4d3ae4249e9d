package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mixcrew/mixcrew/internal/auth"
	"github.com/mixcrew/mixcrew/internal/chart"
	"github.com/mixcrew/mixcrew/internal/resolve"
	"github.com/mixcrew/mixcrew/internal/spotify"
)

const fetchTimeout = 60 * time.Second

// loadPlaylistsCmd fetches the user's playlists and reports the token the
// client ended up with, which may be a refreshed one.
func loadPlaylistsCmd(client *spotify.Client) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		playlists, err := client.Playlists(ctx)
		if err != nil {
			return playlistsLoadedMsg{err: err}
		}

		token, _ := client.Token()
		return playlistsLoadedMsg{playlists: playlists, token: token}
	}
}

// loadChartCmd runs the full pipeline for one playlist: snapshot, resolve
// contributor names, build the chart. The result carries gen so stale
// fetches are discarded when they arrive.
func loadChartCmd(client *spotify.Client, id string, gen int, horizon time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		snap, err := client.Snapshot(ctx, id)
		if err != nil {
			return chartLoadedMsg{gen: gen, err: err}
		}

		names := resolve.Names(ctx, resolve.LookupFunc(client.User), snap.Contributors())

		info := chart.Build(snap, names, chart.Options{
			Now:     time.Now(),
			Horizon: horizon,
		})
		return chartLoadedMsg{gen: gen, info: &info}
	}
}

// shutdownServerCmd stops the login callback server off the update loop.
func shutdownServerCmd(server *auth.CallbackServer) tea.Cmd {
	return func() tea.Msg {
		server.Shutdown()
		return serverClosedMsg{}
	}
}

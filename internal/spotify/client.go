// Package spotify adapts the Spotify Web API to the domain types the
// aggregation pipeline consumes. The client is handed in fully
// authenticated; token acquisition lives in internal/auth.
package spotify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	spot "github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"

	"github.com/mixcrew/mixcrew/internal/chart"
	"github.com/mixcrew/mixcrew/internal/resolve"
)

// pageLimit is the page size for paginated endpoints (Spotify's maximum).
const pageLimit = 50

// Playlist is one row of the playlist picker.
type Playlist struct {
	ID            string
	Name          string
	Collaborative bool
	TrackTotal    int
}

// Client wraps an authenticated Spotify API client.
type Client struct {
	api *spot.Client
}

// New builds a Client on top of an authenticated HTTP client.
func New(httpClient *http.Client) *Client {
	return &Client{api: spot.New(httpClient)}
}

// Token returns the current OAuth token, including any refresh the
// underlying transport performed since the client was built. Callers use it
// to re-persist refreshed tokens.
func (c *Client) Token() (*oauth2.Token, error) {
	return c.api.Token()
}

// Playlists returns all playlists of the current user.
func (c *Client) Playlists(ctx context.Context) ([]Playlist, error) {
	var all []Playlist
	for offset := 0; ; offset += pageLimit {
		page, err := c.api.CurrentUsersPlaylists(ctx, spot.Limit(pageLimit), spot.Offset(offset))
		if err != nil {
			return nil, fmt.Errorf("list playlists: %w", err)
		}
		for _, p := range page.Playlists {
			all = append(all, Playlist{
				ID:            string(p.ID),
				Name:          p.Name,
				Collaborative: p.Collaborative,
				TrackTotal:    int(p.Tracks.Total),
			})
		}
		if len(page.Playlists) < pageLimit {
			return all, nil
		}
	}
}

// Snapshot fetches a playlist and all of its items in playlist order.
func (c *Client) Snapshot(ctx context.Context, id string) (chart.Snapshot, error) {
	full, err := c.api.GetPlaylist(ctx, spot.ID(id))
	if err != nil {
		return chart.Snapshot{}, fmt.Errorf("get playlist: %w", err)
	}

	snap := chart.Snapshot{ID: id, Name: full.Name}
	for offset := 0; ; offset += pageLimit {
		page, err := c.api.GetPlaylistItems(ctx, spot.ID(id), spot.Limit(pageLimit), spot.Offset(offset))
		if err != nil {
			return chart.Snapshot{}, fmt.Errorf("get playlist items: %w", err)
		}
		for i := range page.Items {
			snap.Tracks = append(snap.Tracks, mapItem(&page.Items[i]))
		}
		if len(page.Items) < pageLimit {
			return snap, nil
		}
	}
}

// User fetches a public user profile.
func (c *Client) User(ctx context.Context, id string) (resolve.User, error) {
	u, err := c.api.GetUsersPublicProfile(ctx, spot.ID(id))
	if err != nil {
		return resolve.User{}, fmt.Errorf("get user %s: %w", id, err)
	}
	return resolve.User{ID: u.ID, DisplayName: u.DisplayName}, nil
}

// mapItem converts one playlist item to a domain track. Episodes, local
// files and removed tracks carry no usable track payload and map to the
// placeholder the aggregation step excludes.
func mapItem(item *spot.PlaylistItem) chart.Track {
	ft := item.Track.Track
	if ft == nil || item.IsLocal || ft.ID == "" {
		return chart.Track{}
	}

	var addedAt time.Time
	if t, err := time.Parse(spot.TimestampLayout, item.AddedAt); err == nil {
		addedAt = t
	}

	return chart.Track{
		ID:       string(ft.ID),
		Name:     ft.Name,
		Duration: ft.TimeDuration(),
		AddedAt:  addedAt,
		AddedBy:  item.AddedBy.ID,
	}
}

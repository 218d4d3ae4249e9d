// Package app is the Bubble Tea application: login, playlist picker and the
// contribution chart, glued to the auth flow and the persisted state.
package app

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	spotifyauth "github.com/zmb3/spotify/v2/auth"

	"github.com/mixcrew/mixcrew/internal/auth"
	"github.com/mixcrew/mixcrew/internal/chart"
	"github.com/mixcrew/mixcrew/internal/config"
	"github.com/mixcrew/mixcrew/internal/spotify"
	"github.com/mixcrew/mixcrew/internal/state"
)

// screen identifies which view is active.
type screen int

const (
	screenLogin screen = iota
	screenPlaylists
	screenChart
)

// Params carries everything the model needs at startup.
type Params struct {
	Config *config.Config
	States state.Interface
	Auth   *spotifyauth.Authenticator
	Flow   auth.Flow

	// RestorePlaylist is the last viewed playlist id, restored once after
	// the playlist list loads. Empty disables restoration.
	RestorePlaylist string
}

// Model is the root Bubble Tea model.
type Model struct {
	cfg    *config.Config
	states state.Interface
	auth   *spotifyauth.Authenticator
	flow   auth.Flow
	client *spotify.Client

	screen  screen
	spinner spinner.Model

	// Login state
	server     *auth.CallbackServer
	oauthState string
	loggingIn  bool

	// Playlist picker state
	playlists        []spotify.Playlist
	cursor           int
	loadingPlaylists bool
	restoreID        string

	// Chart state. generation increments on every chart request and on
	// navigation away; async results carry the generation they were
	// requested under and are dropped when it no longer matches, so a slow
	// fetch can never overwrite a newer selection.
	generation   int
	playlistID   string
	playlistName string
	info         *chart.PlaylistInfo
	loadingChart bool
	scroll       int

	statusMsg string
	errorMsg  string

	width  int
	height int
}

// New builds the root model. When the stored flow already holds a token the
// model starts on the playlist picker, otherwise on the login screen.
func New(p Params) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))

	m := &Model{
		cfg:       p.Config,
		states:    p.States,
		auth:      p.Auth,
		flow:      p.Flow,
		spinner:   sp,
		screen:    screenLogin,
		restoreID: p.RestorePlaylist,
	}

	if p.Flow.Authenticated() {
		m.client = spotify.New(p.Auth.Client(context.Background(), p.Flow.Token))
		m.screen = screenPlaylists
		m.loadingPlaylists = true
	}

	return m
}

// Init starts the spinner and, when already authenticated, the initial
// playlist load.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.client != nil {
		cmds = append(cmds, loadPlaylistsCmd(m.client))
	}
	return tea.Batch(cmds...)
}

// loading reports whether any async work is in flight.
func (m *Model) loading() bool {
	return m.loggingIn || m.loadingPlaylists || m.loadingChart
}

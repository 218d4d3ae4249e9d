package app

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mixcrew/mixcrew/internal/auth"
	"github.com/mixcrew/mixcrew/internal/errmsg"
	"github.com/mixcrew/mixcrew/internal/spotify"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case auth.BrowserOpenedMsg:
		return m.handleBrowserOpened(msg)

	case auth.CallbackMsg:
		return m.handleCallback(msg)

	case auth.TokenExchangedMsg:
		return m.handleTokenExchanged(msg)

	case playlistsLoadedMsg:
		return m.handlePlaylistsLoaded(msg)

	case chartLoadedMsg:
		return m.handleChartLoaded(msg)

	case serverClosedMsg:
		m.server = nil
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.screen == screenChart && msg.String() == "q" {
			return m.backToPlaylists()
		}
		return m, tea.Quit
	}

	switch m.screen {
	case screenLogin:
		return m.handleLoginKey(msg)
	case screenPlaylists:
		return m.handlePlaylistsKey(msg)
	case screenChart:
		return m.handleChartKey(msg)
	}
	return m, nil
}

func (m *Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "l":
		if m.loggingIn {
			return m, nil
		}
		return m.startLogin()
	}
	return m, nil
}

func (m *Model) handlePlaylistsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.playlists)-1 {
			m.cursor++
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		if len(m.playlists) > 0 {
			m.cursor = len(m.playlists) - 1
		}
	case "r":
		if m.client != nil && !m.loadingPlaylists {
			m.loadingPlaylists = true
			m.errorMsg = ""
			return m, loadPlaylistsCmd(m.client)
		}
	case "enter":
		if m.cursor < len(m.playlists) {
			return m.openPlaylist(m.playlists[m.cursor])
		}
	}
	return m, nil
}

func (m *Model) handleChartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace", "h", "left":
		return m.backToPlaylists()
	case "up", "k":
		if m.scroll > 0 {
			m.scroll--
		}
	case "down", "j":
		m.scroll++
	case "g", "home":
		m.scroll = 0
	case "r":
		if m.loadingChart {
			return m, nil
		}
		return m, m.requestChart()
	}
	return m, nil
}

// startLogin begins the PKCE flow: start the local callback server, persist
// the verifier, send the browser to Spotify and wait for the redirect.
func (m *Model) startLogin() (tea.Model, tea.Cmd) {
	m.errorMsg = ""

	if m.server == nil {
		server, err := auth.StartCallbackServer(m.cfg.RedirectPort)
		if err != nil {
			m.errorMsg = errmsg.Format(errmsg.OpLoginStart, err)
			return m, nil
		}
		m.server = server
	}

	pair, err := auth.NewPKCEPair()
	if err != nil {
		m.errorMsg = errmsg.Format(errmsg.OpLoginStart, err)
		return m, nil
	}
	oauthState, err := auth.GenerateState()
	if err != nil {
		m.errorMsg = errmsg.Format(errmsg.OpLoginStart, err)
		return m, nil
	}

	m.oauthState = oauthState
	m.flow = auth.RequestAuthorization(pair.Verifier)
	if err := m.states.SaveAuthFlow(m.flow); err != nil {
		m.errorMsg = errmsg.Format(errmsg.OpStateSave, err)
	}

	m.loggingIn = true
	m.statusMsg = "Waiting for authorization in your browser..."

	url := m.auth.AuthURL(oauthState, auth.ChallengeOptions(pair)...)
	return m, tea.Batch(
		auth.OpenBrowserCmd(url),
		auth.WaitForCallbackCmd(m.server.ResultChan()),
		m.spinner.Tick,
	)
}

func (m *Model) handleBrowserOpened(msg auth.BrowserOpenedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		// Keep waiting for the callback; the user can open the URL by hand.
		m.statusMsg = "Could not open a browser. Visit:\n" + msg.URL
	}
	return m, nil
}

func (m *Model) handleCallback(msg auth.CallbackMsg) (tea.Model, tea.Cmd) {
	fail := func(err error) (tea.Model, tea.Cmd) {
		m.loggingIn = false
		m.statusMsg = ""
		m.errorMsg = errmsg.Format(errmsg.OpLoginCallback, err)
		m.flow = auth.FirstVisit()
		_ = m.states.SaveAuthFlow(m.flow)
		return m, nil
	}

	if msg.Err != nil {
		return fail(msg.Err)
	}
	if msg.Code == "" {
		return fail(errors.New("no authorization code received"))
	}
	if msg.State != m.oauthState {
		return fail(errors.New("state parameter mismatch"))
	}

	m.statusMsg = "Exchanging authorization code..."
	return m, auth.ExchangeTokenCmd(m.auth, msg.Code, m.flow.Verifier)
}

func (m *Model) handleTokenExchanged(msg auth.TokenExchangedMsg) (tea.Model, tea.Cmd) {
	m.loggingIn = false
	m.statusMsg = ""

	if msg.Err != nil {
		m.errorMsg = errmsg.Format(errmsg.OpLoginExchange, msg.Err)
		m.flow = auth.FirstVisit()
		_ = m.states.SaveAuthFlow(m.flow)
		return m, nil
	}

	m.flow = auth.GotToken(msg.Token)
	if err := m.states.SaveAuthFlow(m.flow); err != nil {
		m.errorMsg = errmsg.Format(errmsg.OpStateSave, err)
	}

	m.client = spotify.New(m.auth.Client(context.Background(), msg.Token))
	m.screen = screenPlaylists
	m.loadingPlaylists = true

	cmds := []tea.Cmd{loadPlaylistsCmd(m.client), m.spinner.Tick}
	if m.server != nil {
		cmds = append(cmds, shutdownServerCmd(m.server))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handlePlaylistsLoaded(msg playlistsLoadedMsg) (tea.Model, tea.Cmd) {
	m.loadingPlaylists = false

	if msg.err != nil {
		m.errorMsg = errmsg.Format(errmsg.OpPlaylistsLoad, msg.err)
		return m, nil
	}

	m.errorMsg = ""
	m.playlists = msg.playlists
	if m.cursor >= len(m.playlists) {
		m.cursor = 0
	}

	// The transport refreshes tokens silently; persist the current one so
	// the next run does not depend on the old refresh token.
	if msg.token != nil && m.tokenChanged(msg.token.AccessToken) {
		m.flow = auth.GotToken(msg.token)
		_ = m.states.SaveAuthFlow(m.flow)
	}

	// One-shot restore of the playlist viewed last session.
	if m.restoreID != "" {
		id := m.restoreID
		m.restoreID = ""
		for i, p := range m.playlists {
			if p.ID == id {
				m.cursor = i
				return m.openPlaylist(p)
			}
		}
	}

	return m, nil
}

func (m *Model) tokenChanged(accessToken string) bool {
	return m.flow.Token == nil || m.flow.Token.AccessToken != accessToken
}

// openPlaylist switches to the chart screen and starts the fetch pipeline
// under a fresh generation.
func (m *Model) openPlaylist(p spotify.Playlist) (tea.Model, tea.Cmd) {
	m.screen = screenChart
	m.playlistID = p.ID
	m.playlistName = p.Name
	m.info = nil
	m.scroll = 0
	m.errorMsg = ""

	if err := m.states.SaveLastPlaylist(p.ID); err != nil {
		m.errorMsg = errmsg.Format(errmsg.OpStateSave, err)
	}

	return m, m.requestChart()
}

// requestChart bumps the generation and starts a chart fetch under it.
func (m *Model) requestChart() tea.Cmd {
	m.generation++
	m.loadingChart = true
	return tea.Batch(
		loadChartCmd(m.client, m.playlistID, m.generation, m.cfg.StaleHorizon()),
		m.spinner.Tick,
	)
}

func (m *Model) handleChartLoaded(msg chartLoadedMsg) (tea.Model, tea.Cmd) {
	// A result from a superseded request; the user has moved on.
	if msg.gen != m.generation {
		return m, nil
	}

	m.loadingChart = false
	if msg.err != nil {
		m.errorMsg = errmsg.FormatWith(errmsg.OpPlaylistLoad, m.playlistName, msg.err)
		return m, nil
	}

	m.info = msg.info
	return m, nil
}

// backToPlaylists leaves the chart. Bumping the generation here makes any
// in-flight chart fetch stale, so it cannot pop the chart screen back open.
func (m *Model) backToPlaylists() (tea.Model, tea.Cmd) {
	m.generation++
	m.loadingChart = false
	m.screen = screenPlaylists
	m.info = nil
	m.playlistID = ""
	m.playlistName = ""
	m.errorMsg = ""
	return m, nil
}

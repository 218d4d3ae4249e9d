package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mixcrew/mixcrew/internal/app"
	"github.com/mixcrew/mixcrew/internal/auth"
	"github.com/mixcrew/mixcrew/internal/config"
	"github.com/mixcrew/mixcrew/internal/errmsg"
	"github.com/mixcrew/mixcrew/internal/state"
)

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpConfigLoad, err))
	}
	if !cfg.HasClientID() {
		return fmt.Errorf("no Spotify client id configured: set client_id in ~/.config/mixcrew/config.toml")
	}

	states, err := state.Open()
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpInitialize, err))
	}
	defer states.Close()

	flow, err := states.GetAuthFlow()
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpStateLoad, err))
	}

	lastPlaylist, err := states.GetLastPlaylist()
	if err != nil {
		lastPlaylist = ""
	}

	m := app.New(app.Params{
		Config:          cfg,
		States:          states,
		Auth:            auth.NewAuthenticator(cfg.ClientID, cfg.RedirectURL()),
		Flow:            flow,
		RestorePlaylist: lastPlaylist,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package state

import (
	"github.com/mixcrew/mixcrew/internal/auth"
)

// Mock is an in-memory Interface implementation for tests.
type Mock struct {
	Flow         auth.Flow
	LastPlaylist string

	SavedFlows     []auth.Flow
	SavedPlaylists []string
}

var _ Interface = (*Mock)(nil)

func (m *Mock) GetAuthFlow() (auth.Flow, error) {
	return m.Flow, nil
}

func (m *Mock) SaveAuthFlow(flow auth.Flow) error {
	m.Flow = flow
	m.SavedFlows = append(m.SavedFlows, flow)
	return nil
}

func (m *Mock) GetLastPlaylist() (string, error) {
	return m.LastPlaylist, nil
}

func (m *Mock) SaveLastPlaylist(id string) error {
	m.LastPlaylist = id
	m.SavedPlaylists = append(m.SavedPlaylists, id)
	return nil
}

func (m *Mock) Close() error {
	return nil
}

package state

import (
	"github.com/mixcrew/mixcrew/internal/auth"
)

// Interface defines the state manager contract for dependency injection and
// testing.
type Interface interface {
	GetAuthFlow() (auth.Flow, error)
	SaveAuthFlow(flow auth.Flow) error
	GetLastPlaylist() (string, error)
	SaveLastPlaylist(id string) error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)

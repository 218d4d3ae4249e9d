package resolve

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingLookup records how often each id was requested.
type countingLookup struct {
	mu    sync.Mutex
	calls map[string]int
	users map[string]User
	fail  map[string]error
}

func newCountingLookup() *countingLookup {
	return &countingLookup{
		calls: make(map[string]int),
		users: make(map[string]User),
		fail:  make(map[string]error),
	}
}

func (l *countingLookup) User(_ context.Context, id string) (User, error) {
	l.mu.Lock()
	l.calls[id]++
	l.mu.Unlock()

	if err, ok := l.fail[id]; ok {
		return User{}, err
	}
	if u, ok := l.users[id]; ok {
		return u, nil
	}
	return User{}, errors.New("not found")
}

func TestNamesResolvesAll(t *testing.T) {
	lookup := newCountingLookup()
	lookup.users["alice"] = User{ID: "alice", DisplayName: "Alice"}
	lookup.users["bob"] = User{ID: "bob", DisplayName: "Bob"}

	names := Names(context.Background(), lookup, []string{"alice", "bob"})

	assert.Equal(t, "Alice", names["alice"])
	assert.Equal(t, "Bob", names["bob"])
	assert.Len(t, names, 2)
}

func TestNamesDedupesAndSkipsEmpty(t *testing.T) {
	lookup := newCountingLookup()
	lookup.users["alice"] = User{ID: "alice", DisplayName: "Alice"}

	names := Names(context.Background(), lookup, []string{"alice", "", "alice", "alice"})

	require.Len(t, names, 1)
	assert.Equal(t, 1, lookup.calls["alice"], "each id must be looked up exactly once")
	assert.Equal(t, 0, lookup.calls[""], "empty ids must never trigger a lookup")
}

func TestNamesFailureIsolation(t *testing.T) {
	lookup := newCountingLookup()
	lookup.users["alice"] = User{ID: "alice", DisplayName: "Alice"}
	lookup.users["carol"] = User{ID: "carol", DisplayName: "Carol"}
	lookup.fail["bob"] = errors.New("network down")

	names := Names(context.Background(), lookup, []string{"alice", "bob", "carol"})

	require.Len(t, names, 3)
	assert.Equal(t, "Alice", names["alice"])
	assert.Equal(t, FailedName, names["bob"])
	assert.Equal(t, "Carol", names["carol"])
}

func TestNamesEmptyDisplayNameFallsBackToID(t *testing.T) {
	lookup := newCountingLookup()
	lookup.users["u123"] = User{ID: "u123"}

	names := Names(context.Background(), lookup, []string{"u123"})

	assert.Equal(t, "u123", names["u123"])
}

func TestNamesEmptyInput(t *testing.T) {
	lookup := newCountingLookup()

	names := Names(context.Background(), lookup, nil)

	assert.NotNil(t, names)
	assert.Empty(t, names)
}

func TestLookupFunc(t *testing.T) {
	fn := LookupFunc(func(_ context.Context, id string) (User, error) {
		return User{ID: id, DisplayName: "X"}, nil
	})

	names := Names(context.Background(), fn, []string{"a"})
	assert.Equal(t, "X", names["a"])
}

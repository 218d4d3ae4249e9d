// Package resolve maps contributor ids to display names using the music
// service's user-lookup endpoint.
package resolve

import (
	"context"
	"sync"

	"github.com/mixcrew/mixcrew/internal/chart"
)

// FailedName labels contributors whose profile lookup failed.
const FailedName = "Failed to get user"

// User is the subset of a service user profile the resolver needs.
type User struct {
	ID          string
	DisplayName string
}

// Lookup fetches a single user profile.
type Lookup interface {
	User(ctx context.Context, id string) (User, error)
}

// LookupFunc adapts a plain function to the Lookup interface.
type LookupFunc func(ctx context.Context, id string) (User, error)

func (f LookupFunc) User(ctx context.Context, id string) (User, error) {
	return f(ctx, id)
}

// Names resolves every distinct non-empty id to a display name. Each id is
// looked up exactly once; lookups run concurrently and are all joined before
// the map is returned. A failed lookup maps its id to FailedName instead of
// failing the batch, and a profile without a display name falls back to the
// raw id, so Names itself never fails.
func Names(ctx context.Context, lookup Lookup, ids []string) chart.NameMap {
	distinct := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}

	names := make(chart.NameMap, len(distinct))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, id := range distinct {
		wg.Add(1)
		go func() {
			defer wg.Done()

			name := FailedName
			if u, err := lookup.User(ctx, id); err == nil {
				name = u.DisplayName
				if name == "" {
					name = id
				}
			}

			mu.Lock()
			names[id] = name
			mu.Unlock()
		}()
	}
	wg.Wait()

	return names
}

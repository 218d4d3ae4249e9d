// Package chart turns a raw playlist snapshot into a chart-ready breakdown
// of who contributed what: tracks grouped per contributor, sized relative to
// the playlist total, colored per contributor and faded by age.
package chart

import (
	"sort"
	"time"
)

// DefaultStaleHorizon is the age at which a track counts as fully stale.
const DefaultStaleHorizon = 200 * 24 * time.Hour

// staleThreshold is the age factor above which a track gets a cobweb marker.
const staleThreshold = 0.99

// UnknownName labels the bucket of tracks whose contributor is not known
// (removed account, or the service did not report one).
const UnknownName = "Unknown"

// Track is a single playlist entry as fetched from the music service.
// Entries that are not resolvable music tracks (local files, removed tracks,
// podcast episodes) are represented with an empty ID; Build excludes them
// from every total and from the output.
type Track struct {
	ID       string
	Name     string
	Duration time.Duration
	AddedAt  time.Time // zero when the service did not report it
	AddedBy  string    // contributor id, empty when unknown
}

// Snapshot is one immutable fetch of a playlist, tracks in playlist order.
type Snapshot struct {
	ID     string
	Name   string
	Tracks []Track
}

// Contributors returns the distinct non-empty contributor ids, in first-seen
// order. The result is what the identity resolver takes as input.
func (s Snapshot) Contributors() []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, t := range s.Tracks {
		if t.ID == "" || t.AddedBy == "" {
			continue
		}
		if _, ok := seen[t.AddedBy]; ok {
			continue
		}
		seen[t.AddedBy] = struct{}{}
		ids = append(ids, t.AddedBy)
	}
	return ids
}

// NameMap maps contributor ids to resolved display names.
type NameMap map[string]string

// TrackInfo is one rendered track row.
type TrackInfo struct {
	Name         string
	Duration     time.Duration
	RelativeSize float64   // fraction of the playlist total, in [0,1]
	Color        string    // hex, inherited from the contributor group
	AgeFactor    float64   // in [0,1], 1.0 = at or past the stale horizon
	AddedAt      time.Time // zero when unknown
}

// Stale reports whether the track should carry a cobweb marker. It is
// recomputed from the age factor rather than stored.
func (t TrackInfo) Stale() bool {
	return t.AgeFactor > staleThreshold
}

// UserInfo is one contributor group.
type UserInfo struct {
	Name          string
	RelativeSize  float64 // fraction of the playlist total, in [0,1]
	TotalDuration time.Duration
	TrackCount    int
	Color         string // hex
}

// PlaylistInfo is the chart-ready output. Tracks is partitioned into
// contiguous runs, one run per entry of Users and in the same order, so
// the sum of TrackCount over Users always equals len(Tracks).
type PlaylistInfo struct {
	Name          string
	TotalDuration time.Duration
	Tracks        []TrackInfo
	Users         []UserInfo
}

// Options parameterizes Build. Now is the reference time for age factors;
// a zero Horizon means DefaultStaleHorizon.
type Options struct {
	Now     time.Time
	Horizon time.Duration
}

// Build computes the contribution breakdown for a snapshot. It is a pure
// function of its inputs and never fails: placeholder entries are dropped,
// a zero-duration playlist yields all-zero relative sizes, and contributors
// missing from the name map fall back to their raw id.
//
// Ordering is deterministic: tracks within a contributor ascend by duration,
// contributors ascend by total duration, and ties keep first-encounter order.
func Build(s Snapshot, names NameMap, opts Options) PlaylistInfo {
	horizon := opts.Horizon
	if horizon <= 0 {
		horizon = DefaultStaleHorizon
	}

	// Drop placeholders and total up durations in playlist order. The total
	// is summed as time.Duration so the denominator carries no float drift.
	included := make([]Track, 0, len(s.Tracks))
	var total time.Duration
	for _, t := range s.Tracks {
		if t.ID == "" {
			continue
		}
		included = append(included, t)
		total += t.Duration
	}

	// Group by contributor, first-seen order. Tracks without a contributor
	// share the empty-id bucket.
	type group struct {
		id     string
		tracks []Track
		total  time.Duration
	}
	byID := make(map[string]*group)
	var groups []*group
	for _, t := range included {
		g, ok := byID[t.AddedBy]
		if !ok {
			g = &group{id: t.AddedBy}
			byID[t.AddedBy] = g
			groups = append(groups, g)
		}
		g.tracks = append(g.tracks, t)
		g.total += t.Duration
	}

	// Shortest first; stable sort keeps playlist order for equal durations.
	for _, g := range groups {
		sort.SliceStable(g.tracks, func(i, j int) bool {
			return g.tracks[i].Duration < g.tracks[j].Duration
		})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].total < groups[j].total
	})

	info := PlaylistInfo{
		Name:          s.Name,
		TotalDuration: total,
		Tracks:        make([]TrackInfo, 0, len(included)),
		Users:         make([]UserInfo, 0, len(groups)),
	}

	for _, g := range groups {
		color := ColorFor(g.id)
		info.Users = append(info.Users, UserInfo{
			Name:          displayName(g.id, names),
			RelativeSize:  fraction(g.total, total),
			TotalDuration: g.total,
			TrackCount:    len(g.tracks),
			Color:         color,
		})
		for _, t := range g.tracks {
			info.Tracks = append(info.Tracks, TrackInfo{
				Name:         t.Name,
				Duration:     t.Duration,
				RelativeSize: fraction(t.Duration, total),
				Color:        color,
				AgeFactor:    ageFactor(opts.Now, t.AddedAt, horizon),
				AddedAt:      t.AddedAt,
			})
		}
	}

	return info
}

func displayName(id string, names NameMap) string {
	if id == "" {
		return UnknownName
	}
	if name, ok := names[id]; ok && name != "" {
		return name
	}
	return id
}

// fraction returns d/total, or 0 when the total is zero so an empty or
// all-zero-duration playlist never divides by zero.
func fraction(d, total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	return float64(d) / float64(total)
}

// ageFactor normalizes a track's age against the stale horizon and clamps
// to [0,1]. An unknown or future AddedAt counts as brand new.
func ageFactor(now, addedAt time.Time, horizon time.Duration) float64 {
	if addedAt.IsZero() || !now.After(addedAt) {
		return 0
	}
	f := float64(now.Sub(addedAt)) / float64(horizon)
	if f > 1 {
		return 1
	}
	return f
}

package chart

import (
	"hash/fnv"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorFor derives a stable hex color for a contributor id. The id seeds a
// PRNG, so the same id maps to the same color on every run; distinct ids are
// not guaranteed distinct colors. The empty id (unknown bucket) is a fixed
// key and therefore a fixed color.
func ColorFor(id string) string {
	h := fnv.New64a()
	h.Write([]byte(id))
	rng := rand.New(rand.NewSource(int64(h.Sum64()))) //nolint:gosec // deterministic chart colors, not crypto

	// Saturation and value are kept in a band that reads well on both dark
	// and light terminals.
	hue := rng.Float64() * 360
	sat := 0.45 + 0.35*rng.Float64()
	val := 0.65 + 0.25*rng.Float64()
	return colorful.Hsv(hue, sat, val).Hex()
}

// Package noise implements 2D cellular (Worley) noise that returns the value
// of the nearest feature cell, giving flat Voronoi-like regions.
package noise

import "math"

// Cellular is a seeded cell-value noise field with Manhattan distance.
type Cellular struct {
	seed      uint32
	frequency float64
	jitter    float64
}

// NewCellular returns a field for seed. frequency scales input coordinates;
// 0.08 gives regions roughly a dozen tiles across.
func NewCellular(seed int64, frequency float64) *Cellular {
	return &Cellular{seed: uint32(seed) ^ uint32(seed>>32), frequency: frequency, jitter: 0.45}
}

// At returns the value in [-1, 1] of the feature cell nearest (x, y).
func (c *Cellular) At(x, y float64) float64 {
	x *= c.frequency
	y *= c.frequency
	cx := int(math.Round(x))
	cy := int(math.Round(y))

	best := math.MaxFloat64
	var bestHash uint32
	for yi := cy - 1; yi <= cy+1; yi++ {
		for xi := cx - 1; xi <= cx+1; xi++ {
			h := hash2(c.seed, xi, yi)
			jx := (float64(h&0xffff)/0xffff*2 - 1) * c.jitter
			jy := (float64(h>>16)/0xffff*2 - 1) * c.jitter
			d := math.Abs(float64(xi)+jx-x) + math.Abs(float64(yi)+jy-y)
			if d < best {
				best = d
				bestHash = h
			}
		}
	}
	return float64(int32(mix(bestHash))) / 2147483648.0
}

func hash2(seed uint32, x, y int) uint32 {
	h := seed
	h ^= uint32(x) * 0x27d4eb2d
	h = mix(h)
	h ^= uint32(y) * 0x165667b1
	return mix(h)
}

// mix is the murmur3 finalizer.
func mix(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}

// Package shelfpack implements a 2D rectangle bin packer using the Shelf
// Best Height Fit heuristic.
//
// Bins are packed onto horizontal shelves: strips of fixed height stacked
// top to bottom across the surface. Each request reuses the existing shelf
// whose height is closest to (but not less than) the requested height,
// opening a new shelf only when no existing one fits. The surface can
// optionally grow when it runs out of room.
//
// Shelf packing trades some packing density for speed and is a good fit for
// texture/sprite atlases where many bins share a small number of heights.
// Individual bins cannot be freed; the only way to reclaim space is Clear.
//
// A ShelfPack is not safe for concurrent use without external locking.
package shelfpack

import "math"

// DefaultSize is the initial surface width/height used when the dimensions
// given to NewShelfPack are zero or negative.
const DefaultSize = 64

// Options configures a ShelfPack at construction.
type Options struct {
	// AutoResize enables growing the surface when a request does not fit.
	//
	// Default: false
	AutoResize bool

	// IDSource supplies identifiers for bins packed without one. When nil,
	// the packer owns a sequential source starting at 1.
	//
	// Default: nil
	IDSource IDSource
}

// PackOptions configures a single batch Pack call.
type PackOptions struct {
	// InPlace writes the assigned ID, X, and Y back onto the caller's bins
	// in addition to returning the placements.
	//
	// Default: false
	InPlace bool
}

// ShelfPack contains the state of a shelf-based 2D bin packer.
type ShelfPack struct {
	// shelves in creation order, which is also increasing-y order since
	// every new shelf is appended at the current vertical extent.
	shelves []shelf
	// stats counts successful allocations keyed by exact requested height.
	stats map[int]int
	// ids supplies identifiers for bins packed without one.
	ids IDSource
	// seq is the packer-owned default source, nil when one was injected.
	seq *sequentialSource

	w          int
	h          int
	usedArea   int
	placed     int
	autoResize bool
}

// NewShelfPack creates a new bin packer with the given initial surface
// dimensions. Dimensions of zero or less default to DefaultSize.
func NewShelfPack(w, h int, opts Options) *ShelfPack {
	if w <= 0 {
		w = DefaultSize
	}
	if h <= 0 {
		h = DefaultSize
	}
	p := &ShelfPack{
		w:          w,
		h:          h,
		autoResize: opts.AutoResize,
		stats:      make(map[int]int),
		ids:        opts.IDSource,
	}
	if p.ids == nil {
		p.seq = &sequentialSource{}
		p.ids = p.seq
	}
	return p
}

// PackOne packs a single bin of the given dimensions into the surface.
//
// An id of 0 or less requests an auto-assigned identifier. The second
// return value reports success; on failure the returned bin carries the
// request with Unplaced coordinates. Running out of room is an expected
// outcome, not an error.
func (p *ShelfPack) PackOne(id, w, h int) (Bin, bool) {
	if w <= 0 || h <= 0 {
		return NewBin(id, w, h), false
	}
	if id <= 0 {
		id = p.ids.NextID()
	}

	// The retry loop only repeats after growing the surface, and every
	// growth strictly increases at least one dimension, so it terminates.
	for {
		// y accumulates the heights of the shelves visited so far; it is
		// only needed to know where a new shelf would start.
		y := 0
		best := -1
		bestWaste := math.MaxInt

		for i := range p.shelves {
			s := &p.shelves[i]
			y += s.h

			// Exactly the right height with width to spare, pack it.
			if h == s.h && w <= s.wfree {
				p.count(w, h)
				return s.alloc(id, w, h), true
			}
			// Not enough height or width, skip it.
			if h > s.h || w > s.wfree {
				continue
			}
			// Taller than needed: minimize waste, first seen wins ties.
			if waste := s.h - h; waste < bestWaste {
				bestWaste = waste
				best = i
			}
		}

		if best >= 0 {
			p.count(w, h)
			return p.shelves[best].alloc(id, w, h), true
		}

		// Open a new shelf at the current vertical extent.
		if h <= p.h-y && w <= p.w {
			p.count(w, h)
			p.shelves = append(p.shelves, newShelf(y, p.w, h))
			return p.shelves[len(p.shelves)-1].alloc(id, w, h), true
		}

		if !p.autoResize {
			return NewBin(id, w, h), false
		}

		// Grow the surface: double whichever dimension is smaller, width
		// first on a square surface, and accommodate oversized requests by
		// growing from the request rather than blind doubling.
		w2, h2 := p.w, p.h
		if p.w <= p.h || w > p.w {
			w2 = max(w, p.w) * 2
		}
		if p.h < p.w || h > p.h {
			h2 = max(h, p.h) * 2
		}
		p.Resize(w2, h2)
	}
}

// Pack packs a batch of bins, calling PackOne for each in input order.
// Earlier placements affect later ones, so batch order changes outcomes.
//
// Bins with zero width or height, and bins that cannot be placed, are
// omitted from the result; relative order is preserved among successes.
// With opts.InPlace the assigned ID, X, and Y are also written back onto
// the caller's bins.
//
// When auto-resize is enabled, the surface is shrunk afterwards to the
// bounding box of the placed shelves, compensating for over-growth from
// the doubling policy. No bin is ever moved by the shrink.
func (p *ShelfPack) Pack(bins []Bin, opts PackOptions) []Bin {
	results := make([]Bin, 0, len(bins))
	for i := range bins {
		if bins[i].W <= 0 || bins[i].H <= 0 {
			continue
		}
		allocated, ok := p.PackOne(bins[i].ID, bins[i].W, bins[i].H)
		if !ok {
			continue
		}
		if opts.InPlace {
			bins[i].ID = allocated.ID
			bins[i].X = allocated.X
			bins[i].Y = allocated.Y
		}
		results = append(results, allocated)
	}
	if p.autoResize {
		p.Shrink()
	}
	return results
}

// Resize grows the surface to the given dimensions and widens every shelf
// to the new width. Requests smaller than the current surface on either
// axis are rejected and leave all state unchanged.
func (p *ShelfPack) Resize(w, h int) bool {
	if w < p.w || h < p.h {
		return false
	}
	p.w = w
	p.h = h
	for i := range p.shelves {
		p.shelves[i].resize(w)
	}
	return true
}

// Shrink reduces the recorded surface dimensions to the minimal bounding
// box containing all placed shelves: the widest used extent and the sum of
// shelf heights. It never moves a bin and never grows a dimension. A packer
// with no shelves is left unchanged.
func (p *ShelfPack) Shrink() {
	if len(p.shelves) == 0 {
		return
	}
	w, h := 0, 0
	for i := range p.shelves {
		w = max(w, p.shelves[i].w-p.shelves[i].wfree)
		h += p.shelves[i].h
	}
	p.w = w
	p.h = h
}

// Clear discards all shelves and allocation statistics, returning the
// packer to its initial pre-allocation state. The configured dimensions
// and auto-resize flag are preserved, and the packer-owned ID source is
// rewound; an injected IDSource is caller-owned and left untouched.
func (p *ShelfPack) Clear() {
	p.shelves = p.shelves[:0]
	p.stats = make(map[int]int)
	p.usedArea = 0
	p.placed = 0
	if p.seq != nil {
		p.seq.next = 0
	}
}

// Width returns the current surface width.
func (p *ShelfPack) Width() int {
	return p.w
}

// Height returns the current surface height.
func (p *ShelfPack) Height() int {
	return p.h
}

// Count returns the number of bins placed since the last Clear.
func (p *ShelfPack) Count() int {
	return p.placed
}

// Stats returns a copy of the allocation counts keyed by exact requested
// height. The counts are diagnostic only and never influence placement.
func (p *ShelfPack) Stats() map[int]int {
	stats := make(map[int]int, len(p.stats))
	for h, n := range p.stats {
		stats[h] = n
	}
	return stats
}

// Occupancy returns the ratio of placed bin area to total surface area,
// between 0.0 (empty) and 1.0 (perfect utilization).
func (p *ShelfPack) Occupancy() float64 {
	return float64(p.usedArea) / float64(p.w*p.h)
}

func (p *ShelfPack) count(w, h int) {
	p.stats[h]++
	p.usedArea += w * h
	p.placed++
}

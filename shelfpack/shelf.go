package shelfpack

// shelf is a horizontal strip of the surface with a fixed vertical offset
// and a fixed height. Bins are allocated left to right; freed space is never
// reclaimed, so the used width only grows.
type shelf struct {
	x     int // allocation cursor, equals w-wfree
	y     int // vertical offset, fixed at creation
	w     int // current width, grow-only
	h     int // height, fixed at creation
	wfree int // remaining unallocated width
}

func newShelf(y, w, h int) shelf {
	return shelf{y: y, w: w, h: h, wfree: w}
}

// alloc places a single bin onto the shelf, immediately to the right of all
// previous allocations. The returned bin is unplaced if the bin is wider
// than the remaining free width or taller than the shelf.
func (s *shelf) alloc(id, w, h int) Bin {
	if w > s.wfree || h > s.h {
		return NewBin(id, w, h)
	}
	x := s.x
	s.x += w
	s.wfree -= w
	return Bin{ID: id, W: w, H: h, X: x, Y: s.y}
}

// resize grows the shelf to the given width, extending the free width by the
// delta. Requests narrower than the current width are rejected without
// effect, so placed bins always remain within bounds.
func (s *shelf) resize(w int) bool {
	if w < s.w {
		return false
	}
	s.wfree += w - s.w
	s.w = w
	return true
}

package shelfpack

import "fmt"

// Unplaced is the coordinate value marking a bin that has no position yet.
// Both X and Y of a bin are Unplaced until an allocation succeeds.
const Unplaced = -1

// Bin describes a requested or placed rectangle.
//
// W and H are the requested dimensions. X and Y are filled in by the packer
// and remain Unplaced while the bin has no position. A bin returned from a
// successful allocation is a plain value; mutating it has no effect on the
// packer state.
type Bin struct {
	// ID distinguishes this bin from others. IDs of 0 or less are replaced
	// with an auto-assigned sequential value during packing.
	ID int `json:"id"`
	// W is the width of the bin.
	W int `json:"w"`
	// H is the height of the bin.
	H int `json:"h"`
	// X is the horizontal position within the surface, or Unplaced.
	X int `json:"x"`
	// Y is the vertical position within the surface, or Unplaced.
	Y int `json:"y"`
}

// NewBin creates an unplaced bin with the given identifier and dimensions.
// Pass an id of 0 or less to have the packer assign one.
func NewBin(id, w, h int) Bin {
	return Bin{ID: id, W: w, H: h, X: Unplaced, Y: Unplaced}
}

// Placed reports whether the bin has been assigned a position.
func (b Bin) Placed() bool {
	return b.X != Unplaced && b.Y != Unplaced
}

// String returns a string representation of the bin.
func (b Bin) String() string {
	return fmt.Sprintf("id:%d,x:%d,y:%d,w:%d,h:%d", b.ID, b.X, b.Y, b.W, b.H)
}

// IDSource produces bin identifiers for requests that do not carry one.
//
// The default source owned by a ShelfPack emits 1, 2, 3, ... and is rewound
// by Clear. Supplying a custom source through Options allows identifiers to
// be coordinated across several packers.
type IDSource interface {
	// NextID returns the next identifier. Implementations should never
	// return the same value twice between resets.
	NextID() int
}

// sequentialSource is the default packer-owned IDSource. Not safe for
// concurrent use, same as the packer that owns it.
type sequentialSource struct {
	next int
}

func (s *sequentialSource) NextID() int {
	s.next++
	return s.next
}

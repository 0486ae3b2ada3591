package shelfpack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShelfAllocLeftToRight(t *testing.T) {
	s := newShelf(0, 64, 10)

	a := s.alloc(1, 10, 10)
	require.True(t, a.Placed())
	assert.Equal(t, 0, a.X)
	assert.Equal(t, 0, a.Y)

	b := s.alloc(2, 12, 8)
	require.True(t, b.Placed())
	assert.Equal(t, 10, b.X, "next bin starts at prior used width")
	assert.Equal(t, 0, b.Y)
	assert.Equal(t, 64-22, s.wfree)
}

func TestShelfAllocRejectsTooTall(t *testing.T) {
	s := newShelf(5, 64, 10)
	bin := s.alloc(1, 10, 11)
	assert.False(t, bin.Placed())
	assert.Equal(t, 64, s.wfree, "failed alloc must not consume width")
}

func TestShelfAllocRejectsTooWide(t *testing.T) {
	s := newShelf(0, 20, 10)
	require.True(t, s.alloc(1, 15, 10).Placed())
	bin := s.alloc(2, 6, 10)
	assert.False(t, bin.Placed())
	assert.Equal(t, 5, s.wfree)
}

func TestShelfResizeGrow(t *testing.T) {
	s := newShelf(0, 64, 10)
	s.alloc(1, 10, 10)

	require.True(t, s.resize(100))
	assert.Equal(t, 100, s.w)
	assert.Equal(t, 90, s.wfree)

	// The cursor is unaffected; the next bin continues where it left off.
	bin := s.alloc(2, 10, 10)
	assert.Equal(t, 10, bin.X)
}

func TestShelfResizeRejectsShrink(t *testing.T) {
	s := newShelf(0, 64, 10)
	s.alloc(1, 10, 10)

	require.False(t, s.resize(32))
	assert.Equal(t, 64, s.w)
	assert.Equal(t, 54, s.wfree)
}

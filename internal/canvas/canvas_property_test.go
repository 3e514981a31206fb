package canvas

import (
	"testing"
	"testing/quick"
)

// TestNewDimensionRounding verifies that New() always rounds dimensions
// to whole braille cells.
func TestNewDimensionRounding(t *testing.T) {
	property := func(width, height uint8) bool {
		w, h := int(width), int(height)
		c := New(w, h)

		// Property: whole cells that cover the request without a spare cell
		if c.Width() != c.Cols()*2 || c.Height() != c.Rows()*4 {
			return false
		}
		if c.Width() < w || c.Height() < h {
			return false
		}
		return c.Width() <= w+1 && c.Height() <= h+3
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// TestSetGetRoundTrip verifies that Set followed by Get returns true
// for any in-bounds coordinate, and Clear undoes it.
func TestSetGetRoundTrip(t *testing.T) {
	property := func(width, height, x, y uint8) bool {
		c := New(int(width)+2, int(height)+4)
		px, py := int(x), int(y)
		if px >= c.Width() || py >= c.Height() {
			return true // Skip out-of-bounds
		}

		c.Set(px, py)
		if !c.Get(px, py) || c.Count() != 1 {
			return false
		}
		c.Clear(px, py)
		return !c.Get(px, py) && c.Count() == 0
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// TestGlyphRange verifies that every cell renders as a braille character.
func TestGlyphRange(t *testing.T) {
	property := func(pixels [8]bool) bool {
		c := New(2, 4)
		for i, on := range pixels {
			if on {
				c.Set(i/4, i%4)
			}
		}
		r := Glyph(c.Dots(0, 0))
		return r >= '⠀' && r <= '⣿'
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// TestCountMatchesGet verifies that Count agrees with a pixel-by-pixel scan.
func TestCountMatchesGet(t *testing.T) {
	property := func(points []uint16) bool {
		c := New(16, 16)
		for _, p := range points {
			c.Set(int(p%20)-2, int(p/20%20)-2)
		}
		n := 0
		for y := 0; y < c.Height(); y++ {
			for x := 0; x < c.Width(); x++ {
				if c.Get(x, y) {
					n++
				}
			}
		}
		return n == c.Count()
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

// TestOutOfBoundsGetReturnsFalse verifies that Get returns false outside the canvas.
func TestOutOfBoundsGetReturnsFalse(t *testing.T) {
	property := func(x, y int16) bool {
		c := New(8, 8)
		for py := 0; py < c.Height(); py++ {
			for px := 0; px < c.Width(); px++ {
				c.Set(px, py)
			}
		}
		inBounds := x >= 0 && int(x) < c.Width() && y >= 0 && int(y) < c.Height()
		return c.Get(int(x), int(y)) == inBounds
	}

	if err := quick.Check(property, nil); err != nil {
		t.Error(err)
	}
}

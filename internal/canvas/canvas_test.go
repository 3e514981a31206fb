package canvas

import (
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name               string
		width, height      int
		wantW, wantH       int
		wantCols, wantRows int
	}{
		{"one cell", 2, 4, 2, 4, 1, 1},
		{"spinner size", 16, 16, 16, 16, 8, 4},
		{"round up width", 3, 4, 4, 4, 2, 1},
		{"round up height", 2, 5, 2, 8, 1, 2},
		{"empty", 0, 0, 0, 0, 0, 0},
		{"negative", -3, -1, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.width, tt.height)
			if c.Width() != tt.wantW || c.Height() != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", c.Width(), c.Height(), tt.wantW, tt.wantH)
			}
			if c.Cols() != tt.wantCols || c.Rows() != tt.wantRows {
				t.Errorf("cells = %dx%d, want %dx%d", c.Cols(), c.Rows(), tt.wantCols, tt.wantRows)
			}
		})
	}
}

func TestSetGetClear(t *testing.T) {
	c := New(4, 8)

	c.Set(1, 2)
	c.Set(2, 5)
	if !c.Get(1, 2) || !c.Get(2, 5) {
		t.Error("pixels should be on after Set")
	}
	if c.Get(0, 2) || c.Get(1, 1) {
		t.Error("Set should not raise neighbouring dots")
	}

	c.Clear(1, 2)
	if c.Get(1, 2) {
		t.Error("pixel should be off after Clear")
	}
	if !c.Get(2, 5) {
		t.Error("Clear should leave other cells alone")
	}

	// Out of bounds is ignored
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Clear(0, 8)
	if c.Get(-1, 0) || c.Get(4, 0) {
		t.Error("out-of-bounds Get should be false")
	}
	if got := c.Count(); got != 1 {
		t.Errorf("Count() = %d, want 1", got)
	}

	c.Reset()
	if got := c.Count(); got != 0 {
		t.Errorf("Count() after Reset = %d, want 0", got)
	}
}

func TestDotsPerPixel(t *testing.T) {
	// Every pixel of a cell raises its own dot.
	tests := []struct {
		x, y int
		want rune
	}{
		{0, 0, '⠁'}, // dot 1
		{0, 1, '⠂'}, // dot 2
		{0, 2, '⠄'}, // dot 3
		{0, 3, '⡀'}, // dot 7
		{1, 0, '⠈'}, // dot 4
		{1, 1, '⠐'}, // dot 5
		{1, 2, '⠠'}, // dot 6
		{1, 3, '⢀'}, // dot 8
	}

	for _, tt := range tests {
		c := New(2, 4)
		c.Set(tt.x, tt.y)
		if got := Glyph(c.Dots(0, 0)); got != tt.want {
			t.Errorf("Set(%d,%d): got %U, want %U", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestDotsOverlay(t *testing.T) {
	a, b := New(2, 4), New(2, 4)
	a.Set(0, 0)
	b.Set(1, 3)

	if got := Glyph(a.Dots(0, 0) | b.Dots(0, 0)); got != '⢁' {
		t.Errorf("overlay = %U, want U+2881", got)
	}
	if got := a.Dots(1, 0); got != 0 {
		t.Errorf("Dots outside the canvas = %#x, want 0", got)
	}
	if got := Glyph(0); got != brailleBase {
		t.Errorf("Glyph(0) = %U, want blank", got)
	}
}

func TestString(t *testing.T) {
	c := New(4, 8) // 2x2 braille characters

	c.Set(0, 0) // top-left char, dot 1
	c.Set(3, 3) // top-right char, dot 8
	c.Set(0, 4) // bottom-left char, dot 1
	c.Set(3, 7) // bottom-right char, dot 8

	if got, want := c.String(), "⠁⢀\n⠁⢀"; got != want {
		t.Errorf("String():\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRow(t *testing.T) {
	c := New(4, 8)
	c.Set(0, 0)
	c.Set(3, 7)

	if got := c.Row(0); got != "⠁⠀" {
		t.Errorf("Row(0) = %q, want %q", got, "⠁⠀")
	}
	if got := c.Row(1); got != "⠀⢀" {
		t.Errorf("Row(1) = %q, want %q", got, "⠀⢀")
	}
	if c.Row(-1) != "" || c.Row(2) != "" {
		t.Error("out-of-range rows should be empty")
	}
}

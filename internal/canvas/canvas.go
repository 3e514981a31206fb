// Package canvas provides a braille-based drawing canvas for terminal graphics.
package canvas

import "strings"

// brailleBase is the Unicode code point for an empty braille character.
const brailleBase = '\u2800'

// dotBit maps (x, y) within a 2x4 braille cell to its dot bit.
// x: 0-1 (column), y: 0-3 (row)
//
// Braille dot layout:
//
//	┌───┬───┐
//	│ 1 │ 4 │  Row 0
//	├───┼───┤
//	│ 2 │ 5 │  Row 1
//	├───┼───┤
//	│ 3 │ 6 │  Row 2
//	├───┼───┤
//	│ 7 │ 8 │  Row 3
//	└───┴───┘
//	Col 0  Col 1
var dotBit = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40}, // column 0: dots 1, 2, 3, 7
	{0x08, 0x10, 0x20, 0x80}, // column 1: dots 4, 5, 6, 8
}

// Canvas is a grid of braille cells addressed in pixels, each cell covering a
// 2x4 pixel area. Cells store their raised dots, so two canvases of the same size
// can be overlaid cell by cell.
type Canvas struct {
	width, height int     // in pixels
	cols, rows    int     // in cells
	dots          []uint8 // raised dots per cell, row-major
}

// New creates a new canvas with the given pixel dimensions.
// Width and height are rounded up to whole cells (width to a multiple of 2,
// height to a multiple of 4).
func New(width, height int) *Canvas {
	cols := (max(width, 0) + 1) / 2
	rows := (max(height, 0) + 3) / 4
	return &Canvas{
		width:  cols * 2,
		height: rows * 4,
		cols:   cols,
		rows:   rows,
		dots:   make([]uint8, cols*rows),
	}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// Cols returns the canvas width in braille characters.
func (c *Canvas) Cols() int {
	return c.cols
}

// Rows returns the canvas height in braille characters.
func (c *Canvas) Rows() int {
	return c.rows
}

// cell returns the index of the cell holding pixel (x, y) and the pixel's bit,
// or -1 when the pixel is outside the canvas.
func (c *Canvas) cell(x, y int) (int, uint8) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return -1, 0
	}
	return (y/4)*c.cols + x/2, dotBit[x%2][y%4]
}

// Set turns on the pixel at (x, y).
func (c *Canvas) Set(x, y int) {
	if i, bit := c.cell(x, y); i >= 0 {
		c.dots[i] |= bit
	}
}

// Clear turns off the pixel at (x, y).
func (c *Canvas) Clear(x, y int) {
	if i, bit := c.cell(x, y); i >= 0 {
		c.dots[i] &^= bit
	}
}

// Get returns the pixel state at (x, y).
// Returns false for out-of-bounds coordinates.
func (c *Canvas) Get(x, y int) bool {
	i, bit := c.cell(x, y)
	return i >= 0 && c.dots[i]&bit != 0
}

// Reset turns off all pixels.
func (c *Canvas) Reset() {
	clear(c.dots)
}

// Dots returns the raised dots of the cell at character position (cx, cy), zero
// outside the canvas.
func (c *Canvas) Dots(cx, cy int) uint8 {
	if cx < 0 || cx >= c.cols || cy < 0 || cy >= c.rows {
		return 0
	}
	return c.dots[cy*c.cols+cx]
}

// Count returns the number of pixels that are on.
func (c *Canvas) Count() int {
	n := 0
	for _, d := range c.dots {
		for ; d != 0; d &= d - 1 {
			n++
		}
	}
	return n
}

// Glyph returns the braille character with the given raised dots.
func Glyph(dots uint8) rune {
	return brailleBase + rune(dots)
}

// Row renders a single row of braille characters at the given character row index.
func (c *Canvas) Row(cy int) string {
	if cy < 0 || cy >= c.rows {
		return ""
	}

	var sb strings.Builder
	sb.Grow(c.cols * 3)
	for _, d := range c.dots[cy*c.cols : (cy+1)*c.cols] {
		sb.WriteRune(Glyph(d))
	}
	return sb.String()
}

// String renders the entire canvas as a multi-line braille string.
func (c *Canvas) String() string {
	rows := make([]string, c.rows)
	for cy := range rows {
		rows[cy] = c.Row(cy)
	}
	return strings.Join(rows, "\n")
}

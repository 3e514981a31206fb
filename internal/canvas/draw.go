package canvas

import "math"

// arcStep is the distance in pixels between two samples along a stroked curve.
const arcStep = 0.5

// Plot turns on the pixel containing the point (x, y).
func (c *Canvas) Plot(x, y float64) {
	c.Set(int(math.Floor(x)), int(math.Floor(y)))
}

// Dot turns on every pixel whose center lies within width/2 of (x, y). The pixel
// containing the point is always set.
func (c *Canvas) Dot(x, y, width float64) {
	c.Plot(x, y)
	r := width / 2
	if r <= 0.5 {
		return
	}
	for py := int(math.Floor(y - r)); py <= int(math.Floor(y+r)); py++ {
		for px := int(math.Floor(x - r)); px <= int(math.Floor(x+r)); px++ {
			if math.Hypot(float64(px)+0.5-x, float64(py)+0.5-y) <= r {
				c.Set(px, py)
			}
		}
	}
}

// Line strokes a straight line from (x0, y0) to (x1, y1).
func (c *Canvas) Line(x0, y0, x1, y1, width float64) {
	n := int(math.Ceil(math.Hypot(x1-x0, y1-y0) / arcStep))
	c.Dot(x0, y0, width)
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		c.Dot(x0+(x1-x0)*t, y0+(y1-y0)*t, width)
	}
}

// Arc strokes a circular arc centered at (cx, cy). Angles are in degrees,
// counter-clockwise from 3 o'clock; a negative sweep runs clockwise. Pixel rows grow
// downwards, so a point at angle a is (cx + r·cos a, cy - r·sin a).
func (c *Canvas) Arc(cx, cy, radius, start, sweep, width float64) {
	if radius <= 0 || sweep == 0 {
		return
	}
	sweep = math.Max(-360, math.Min(360, sweep))
	span := math.Abs(sweep) * math.Pi / 180 * radius
	n := int(math.Ceil(span / arcStep))
	for i := 0; i <= n; i++ {
		a := (start + sweep*float64(i)/float64(n)) * math.Pi / 180
		c.Dot(cx+radius*math.Cos(a), cy-radius*math.Sin(a), width)
	}
}

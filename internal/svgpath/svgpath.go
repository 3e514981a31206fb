// Package svgpath parses SVG path data into polylines that can be stroked with a dash
// pattern.
//
// Supported commands are M, L, H, V, Q, C and Z in absolute and relative form. Curves
// are flattened into straight segments as they are parsed.
package svgpath

import (
	"errors"
	"fmt"
	"math"
)

// curveSegments is the number of straight segments a curve is flattened into.
const curveSegments = 16

// ErrEmpty is returned for path data without any drawing command.
var ErrEmpty = errors.New("svgpath: empty path")

// Point is a position in path units.
type Point struct {
	X, Y float64
}

func (p Point) add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

func (p Point) dist(q Point) float64 { return math.Hypot(q.X-p.X, q.Y-p.Y) }

func lerp(a, b Point, t float64) Point {
	return Point{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// Subpath is a connected polyline started by a move command. A dash pattern restarts
// at the beginning of every subpath.
type Subpath struct {
	Points []Point
	// distances[i] is the length of the polyline up to Points[i].
	distances []float64
}

func (s *Subpath) lineTo(p Point) {
	last := s.Points[len(s.Points)-1]
	s.Points = append(s.Points, p)
	s.distances = append(s.distances, s.distances[len(s.distances)-1]+last.dist(p))
}

// Length returns the length of the subpath.
func (s Subpath) Length() float64 {
	if len(s.distances) == 0 {
		return 0
	}
	return s.distances[len(s.distances)-1]
}

// Walk calls fn for points spaced at most step apart along the subpath, including both
// ends of every segment. at is the distance from the start of the subpath.
// A lone move draws nothing.
func (s Subpath) Walk(step float64, fn func(p Point, at float64)) {
	if len(s.Points) < 2 {
		return
	}
	if step <= 0 {
		step = 1
	}
	fn(s.Points[0], 0)
	for i := 1; i < len(s.Points); i++ {
		a, b := s.Points[i-1], s.Points[i]
		segment := s.distances[i] - s.distances[i-1]
		n := int(math.Ceil(segment / step))
		for k := 1; k <= n; k++ {
			t := float64(k) / float64(n)
			fn(lerp(a, b, t), s.distances[i-1]+segment*t)
		}
	}
}

// Path is parsed path data.
type Path struct {
	Subpaths []Subpath
}

// Length returns the summed length of all subpaths.
func (p *Path) Length() float64 {
	var total float64
	for _, s := range p.Subpaths {
		total += s.Length()
	}
	return total
}

// Bounds returns the bounding box of every point of the path.
func (p *Path) Bounds() (min, max Point) {
	min = Point{math.Inf(1), math.Inf(1)}
	max = Point{math.Inf(-1), math.Inf(-1)}
	for _, s := range p.Subpaths {
		for _, pt := range s.Points {
			min.X, min.Y = math.Min(min.X, pt.X), math.Min(min.Y, pt.Y)
			max.X, max.Y = math.Max(max.X, pt.X), math.Max(max.Y, pt.Y)
		}
	}
	if math.IsInf(min.X, 1) {
		return Point{}, Point{}
	}
	return min, max
}

// Center returns the center of the bounding box.
func (p *Path) Center() Point {
	min, max := p.Bounds()
	return lerp(min, max, 0.5)
}

// DashVisible reports whether the point at distance at along a subpath is drawn by a
// dash pattern of equal dash and gap length, shifted by offset. A non-positive length
// draws everything.
func DashVisible(at, offset, length float64) bool {
	if length <= 0 {
		return true
	}
	period := 2 * length
	phase := math.Mod(at+offset, period)
	if phase < 0 {
		phase += period
	}
	return phase < length
}

// Parse parses SVG path data.
func Parse(data string) (*Path, error) {
	p := &parser{tokens: newScanner(data)}
	if err := p.run(); err != nil {
		return nil, err
	}
	if len(p.path.Subpaths) == 0 {
		return nil, ErrEmpty
	}
	return &p.path, nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(data string) *Path {
	p, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return p
}

type parser struct {
	tokens  *scanner
	path    Path
	current Point
	start   Point
	closed  bool
}

func (p *parser) run() error {
	var cmd byte
	for {
		p.tokens.skipSeparators()
		if p.tokens.done() {
			return nil
		}
		if c, ok := p.tokens.command(); ok {
			cmd = c
		} else if cmd == 0 {
			return fmt.Errorf("svgpath: expected command at offset %d", p.tokens.pos)
		}
		if err := p.apply(cmd); err != nil {
			return err
		}
		// extra coordinate pairs after a move are implicit line commands
		switch cmd {
		case 'M':
			cmd = 'L'
		case 'm':
			cmd = 'l'
		case 'Z', 'z':
			cmd = 0
		}
	}
}

func (p *parser) apply(cmd byte) error {
	relative := cmd >= 'a'
	offset := Point{}
	if relative {
		offset = p.current
	}

	switch cmd {
	case 'M', 'm':
		pts, err := p.tokens.points(1)
		if err != nil {
			return err
		}
		p.current = pts[0].add(offset)
		p.start = p.current
		p.closed = false
		p.path.Subpaths = append(p.path.Subpaths, Subpath{
			Points:    []Point{p.current},
			distances: []float64{0},
		})
	case 'L', 'l':
		pts, err := p.tokens.points(1)
		if err != nil {
			return err
		}
		p.lineTo(pts[0].add(offset))
	case 'H', 'h':
		x, err := p.tokens.number()
		if err != nil {
			return err
		}
		if relative {
			x += p.current.X
		}
		p.lineTo(Point{x, p.current.Y})
	case 'V', 'v':
		y, err := p.tokens.number()
		if err != nil {
			return err
		}
		if relative {
			y += p.current.Y
		}
		p.lineTo(Point{p.current.X, y})
	case 'Q', 'q':
		pts, err := p.tokens.points(2)
		if err != nil {
			return err
		}
		p.quadTo(pts[0].add(offset), pts[1].add(offset))
	case 'C', 'c':
		pts, err := p.tokens.points(3)
		if err != nil {
			return err
		}
		p.cubicTo(pts[0].add(offset), pts[1].add(offset), pts[2].add(offset))
	case 'Z', 'z':
		p.lineTo(p.start)
		p.closed = true
	default:
		return fmt.Errorf("svgpath: unsupported command %q", cmd)
	}
	return nil
}

// subpath returns the open subpath, starting one at the current point if needed.
// Drawing after a close starts a new subpath.
func (p *parser) subpath() *Subpath {
	if len(p.path.Subpaths) == 0 || p.closed {
		p.closed = false
		p.path.Subpaths = append(p.path.Subpaths, Subpath{
			Points:    []Point{p.current},
			distances: []float64{0},
		})
	}
	return &p.path.Subpaths[len(p.path.Subpaths)-1]
}

func (p *parser) lineTo(to Point) {
	p.subpath().lineTo(to)
	p.current = to
}

func (p *parser) quadTo(ctrl, to Point) {
	from := p.current
	s := p.subpath()
	for i := 1; i <= curveSegments; i++ {
		t := float64(i) / curveSegments
		s.lineTo(lerp(lerp(from, ctrl, t), lerp(ctrl, to, t), t))
	}
	p.current = to
}

func (p *parser) cubicTo(c1, c2, to Point) {
	from := p.current
	s := p.subpath()
	for i := 1; i <= curveSegments; i++ {
		t := float64(i) / curveSegments
		a, b, c := lerp(from, c1, t), lerp(c1, c2, t), lerp(c2, to, t)
		s.lineTo(lerp(lerp(a, b, t), lerp(b, c, t), t))
	}
	p.current = to
}

package svgpath

import (
	"fmt"
	"strconv"
)

// scanner splits path data into command letters and numbers.
type scanner struct {
	data string
	pos  int
}

func newScanner(data string) *scanner {
	return &scanner{data: data}
}

func (s *scanner) done() bool {
	return s.pos >= len(s.data)
}

func (s *scanner) skipSeparators() {
	for !s.done() {
		switch s.data[s.pos] {
		case ' ', '\t', '\n', '\r', '\f', ',':
			s.pos++
		default:
			return
		}
	}
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// command consumes a command letter if one is next. Exponent markers never start a
// token, so every letter here is a command.
func (s *scanner) command() (byte, bool) {
	if s.done() || !isLetter(s.data[s.pos]) {
		return 0, false
	}
	c := s.data[s.pos]
	s.pos++
	return c, true
}

// number consumes one number such as "-1.5e3", ".5" or "+2".
func (s *scanner) number() (float64, error) {
	s.skipSeparators()
	start := s.pos
	if !s.done() && (s.data[s.pos] == '+' || s.data[s.pos] == '-') {
		s.pos++
	}
	digits := s.digits()
	if !s.done() && s.data[s.pos] == '.' {
		s.pos++
		digits += s.digits()
	}
	if digits == 0 {
		s.pos = start
		return 0, fmt.Errorf("svgpath: expected number at offset %d", start)
	}
	if !s.done() && (s.data[s.pos] == 'e' || s.data[s.pos] == 'E') {
		mark := s.pos
		s.pos++
		if !s.done() && (s.data[s.pos] == '+' || s.data[s.pos] == '-') {
			s.pos++
		}
		if s.digits() == 0 {
			s.pos = mark
		}
	}
	v, err := strconv.ParseFloat(s.data[start:s.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("svgpath: invalid number %q: %w", s.data[start:s.pos], err)
	}
	return v, nil
}

func (s *scanner) digits() int {
	n := 0
	for !s.done() && s.data[s.pos] >= '0' && s.data[s.pos] <= '9' {
		s.pos++
		n++
	}
	return n
}

// points consumes n coordinate pairs.
func (s *scanner) points(n int) ([]Point, error) {
	pts := make([]Point, n)
	for i := range pts {
		x, err := s.number()
		if err != nil {
			return nil, err
		}
		y, err := s.number()
		if err != nil {
			return nil, err
		}
		pts[i] = Point{x, y}
	}
	return pts, nil
}

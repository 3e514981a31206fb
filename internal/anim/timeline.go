// Package anim provides keyframe timelines and exclusively owned animation channels.
//
// A Timeline is a set of keyframes over animatable properties. Each property
// interpolates linearly from its value when the timeline begins (or from an explicit
// keyframe at time zero) through every keyframe that mentions it. Timelines do not
// track wall time themselves: a Channel plays one timeline at a time against an
// externally supplied clock.
package anim

import (
	"sort"
	"time"
)

// Property is an animatable value slot. Timelines write to it through Set.
type Property[T any] struct {
	value    T
	lerp     func(a, b T, t float64) T
	onChange func(T)
}

// NewProperty creates a property with the given initial value and interpolator.
func NewProperty[T any](initial T, lerp func(a, b T, t float64) T) *Property[T] {
	return &Property[T]{value: initial, lerp: lerp}
}

// NewFloat creates a linearly interpolated float property.
func NewFloat(initial float64) *Property[float64] {
	return NewProperty(initial, Lerp)
}

// Get returns the current value.
func (p *Property[T]) Get() T {
	return p.value
}

// Set stores a value and invokes the change hook, if any.
func (p *Property[T]) Set(v T) {
	p.value = v
	if p.onChange != nil {
		p.onChange(v)
	}
}

// OnChange installs fn as the single change hook; nil removes it.
func (p *Property[T]) OnChange(fn func(T)) {
	p.onChange = fn
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// KeyValue is a target value for one property inside a KeyFrame.
type KeyValue interface {
	bind(tracks *trackSet, at time.Duration)
}

type keyValue[T any] struct {
	property *Property[T]
	value    T
}

// Set returns a KeyValue that drives p towards v.
func Set[T any](p *Property[T], v T) KeyValue {
	return keyValue[T]{property: p, value: v}
}

func (kv keyValue[T]) bind(ts *trackSet, at time.Duration) {
	tr, ok := ts.byProperty[kv.property].(*track[T])
	if !ok {
		tr = &track[T]{property: kv.property}
		ts.byProperty[kv.property] = tr
		ts.order = append(ts.order, tr)
	}
	tr.points = append(tr.points, point[T]{at: at, value: kv.value})
}

// KeyFrame groups the values reached at a given offset from the timeline start.
type KeyFrame struct {
	At     time.Duration
	Values []KeyValue
}

// At builds a KeyFrame.
func At(offset time.Duration, values ...KeyValue) KeyFrame {
	return KeyFrame{At: offset, Values: values}
}

type point[T any] struct {
	at    time.Duration
	value T
}

type runner interface {
	begin()
	apply(t time.Duration)
}

// track interpolates one property across its keyframes.
type track[T any] struct {
	property *Property[T]
	points   []point[T]
	start    T
}

func (tr *track[T]) begin() {
	tr.start = tr.property.Get()
}

func (tr *track[T]) apply(t time.Duration) {
	if len(tr.points) == 0 {
		return
	}
	from := point[T]{at: 0, value: tr.start}
	for _, to := range tr.points {
		if t < to.at {
			span := to.at - from.at
			frac := 1.0
			if span > 0 {
				frac = float64(t-from.at) / float64(span)
			}
			tr.property.Set(tr.property.lerp(from.value, to.value, frac))
			return
		}
		from = to
	}
	tr.property.Set(from.value)
}

type trackSet struct {
	byProperty map[any]runner
	order      []runner
}

// Timeline is an immutable-once-started sequence of keyframes.
type Timeline struct {
	tracks     []runner
	duration   time.Duration
	delay      time.Duration
	onFinished func()
}

// NewTimeline builds a timeline from keyframes. Frames may be given in any order.
func NewTimeline(frames ...KeyFrame) *Timeline {
	sorted := append([]KeyFrame(nil), frames...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })

	ts := &trackSet{byProperty: make(map[any]runner)}
	var duration time.Duration
	for _, frame := range sorted {
		for _, kv := range frame.Values {
			kv.bind(ts, frame.At)
		}
		if frame.At > duration {
			duration = frame.At
		}
	}
	return &Timeline{tracks: ts.order, duration: duration}
}

// WithDelay sets the start delay and returns the timeline.
func (tl *Timeline) WithDelay(delay time.Duration) *Timeline {
	if delay < 0 {
		delay = 0
	}
	tl.delay = delay
	return tl
}

// OnFinished sets the completion callback and returns the timeline.
func (tl *Timeline) OnFinished(fn func()) *Timeline {
	tl.onFinished = fn
	return tl
}

// Duration returns the time of the last keyframe, excluding the delay.
func (tl *Timeline) Duration() time.Duration {
	return tl.duration
}

// Delay returns the start delay.
func (tl *Timeline) Delay() time.Duration {
	return tl.delay
}

// Total returns delay plus duration.
func (tl *Timeline) Total() time.Duration {
	return tl.delay + tl.duration
}

func (tl *Timeline) begin() {
	for _, tr := range tl.tracks {
		tr.begin()
	}
}

func (tl *Timeline) apply(t time.Duration) {
	for _, tr := range tl.tracks {
		tr.apply(t)
	}
}

package spinner

import (
	"context"
	"time"
)

// DefaultFrameInterval is the frame period of an Animator (~30 FPS).
const DefaultFrameInterval = 33 * time.Millisecond

// Animation defines the interface for spinner visual behavior.
// Implementations own a Skin and all terminal output. The Animator only handles
// timing and lifecycle.
type Animation interface {
	// Start is called on the animation goroutine before the first frame.
	// It should handle any setup (e.g., hiding cursor) and render the initial frame.
	Start()

	// Stop is called on the animation goroutine when the animation ends.
	// It should handle any cleanup (e.g., clearing lines, showing cursor).
	Stop()

	// Render advances the skin to now and prints the current frame.
	Render(now time.Duration)
}

// Animator manages the animation loop and timing for a spinner.
// It owns the single goroutine a Skin may be used from; other goroutines reach the
// skin and its control through Do.
type Animator struct {
	interval  time.Duration      // time between frames
	cancel    context.CancelFunc // cancels the animation goroutine
	done      chan struct{}      // signals animation goroutine has exited
	requests  chan func()        // functions to run on the animation goroutine
	animation Animation          // the visual implementation
	started   time.Time
}

// AnimatorOption configures an Animator.
type AnimatorOption func(*Animator)

// WithFrameInterval sets the time between frames. Non-positive values are ignored.
func WithFrameInterval(interval time.Duration) AnimatorOption {
	return func(a *Animator) {
		if interval > 0 {
			a.interval = interval
		}
	}
}

// NewAnimator creates a new Animator with the given Animation implementation.
func NewAnimator(animation Animation, opts ...AnimatorOption) *Animator {
	a := &Animator{
		interval:  DefaultFrameInterval,
		animation: animation,
		requests:  make(chan func()),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start begins the animation in a background goroutine.
// If the animation is already running, this is a no-op.
func (a *Animator) Start() {
	if a.cancel != nil {
		return // already running
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.done = make(chan struct{})
	a.started = time.Now()

	go a.run(ctx)
}

// run is the animation loop goroutine. It calls Animation.Start() once,
// then calls Animation.Render() on each tick until the context is cancelled,
// at which point it calls Animation.Stop() and exits.
func (a *Animator) run(ctx context.Context) {
	defer close(a.done)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	a.animation.Start()

	for {
		select {
		case <-ctx.Done():
			a.animation.Stop()
			return
		case fn := <-a.requests:
			fn()
		case <-ticker.C:
			a.animation.Render(time.Since(a.started))
		}
	}
}

// Do runs fn on the animation goroutine and waits for it to return. When the
// animator is not running fn runs on the calling goroutine. Do returns the
// context error if ctx ends first.
func (a *Animator) Do(ctx context.Context, fn func()) error {
	if a.cancel == nil {
		fn()
		return nil
	}

	finished := make(chan struct{})
	request := func() {
		defer close(finished)
		fn()
	}
	select {
	case a.requests <- request:
	case <-a.done:
		fn()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
	<-finished
	return nil
}

// Elapsed returns the animation clock, zero before Start.
func (a *Animator) Elapsed() time.Duration {
	if a.started.IsZero() {
		return 0
	}
	return time.Since(a.started)
}

// Stop stops the animation and waits for the goroutine to exit.
// If the animation is not running, this is a no-op.
func (a *Animator) Stop() {
	if a.cancel == nil {
		return // not running
	}

	a.cancel()
	<-a.done
	a.cancel = nil
}

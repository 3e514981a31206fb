package anim

import (
	"time"

	"github.com/rs/zerolog"
)

// Channel is an exclusively owned slot that plays at most one Timeline.
// Starting a new timeline discards the previous one without running its callback.
type Channel struct {
	name      string
	log       zerolog.Logger
	timeline  *Timeline
	startedAt time.Duration
	begun     bool
	held      bool
	heldAt    time.Duration
}

// NewChannel creates an idle channel.
func NewChannel(name string, log zerolog.Logger) *Channel {
	return &Channel{name: name, log: log}
}

// Name returns the channel name.
func (c *Channel) Name() string {
	return c.name
}

// Active reports whether a timeline is installed.
func (c *Channel) Active() bool {
	return c.timeline != nil
}

// Held reports whether the channel is paused.
func (c *Channel) Held() bool {
	return c.held
}

// Start discards any running timeline and installs tl at time now.
// Values at offset zero are applied immediately unless the timeline is delayed
// or the channel is held. Completion is only ever signalled from Advance.
func (c *Channel) Start(tl *Timeline, now time.Duration) {
	c.Stop()
	c.timeline = tl
	c.startedAt = now
	c.begun = false
	if c.held {
		c.heldAt = now
	}
	c.log.Debug().
		Str("channel", c.name).
		Dur("duration", tl.duration).
		Dur("delay", tl.delay).
		Bool("held", c.held).
		Msg("timeline started")

	if !c.held && tl.delay == 0 {
		c.timeline.begin()
		c.begun = true
		c.timeline.apply(0)
	}
}

// Stop discards the running timeline, if any, without invoking its callback.
func (c *Channel) Stop() {
	if c.timeline == nil {
		return
	}
	c.log.Debug().Str("channel", c.name).Msg("timeline discarded")
	c.timeline = nil
}

// Hold pauses the channel. Time spent held does not count towards the timeline.
func (c *Channel) Hold(now time.Duration) {
	if c.held {
		return
	}
	c.held = true
	c.heldAt = now
}

// Release resumes a held channel.
func (c *Channel) Release(now time.Duration) {
	if !c.held {
		return
	}
	c.held = false
	if c.timeline != nil && now > c.heldAt {
		c.startedAt += now - c.heldAt
	}
}

// Advance applies the timeline state for time now. When the timeline is complete the
// channel is cleared before the callback runs, so the callback may start a new
// timeline on this same channel.
func (c *Channel) Advance(now time.Duration) {
	if c.timeline == nil || c.held {
		return
	}
	tl := c.timeline
	elapsed := now - c.startedAt
	if elapsed < tl.delay {
		return
	}
	t := elapsed - tl.delay
	if !c.begun {
		tl.begin()
		c.begun = true
	}
	if t < tl.duration {
		tl.apply(t)
		return
	}

	tl.apply(tl.duration)
	c.timeline = nil
	c.log.Debug().Str("channel", c.name).Msg("timeline finished")
	if tl.onFinished != nil {
		tl.onFinished()
	}
}

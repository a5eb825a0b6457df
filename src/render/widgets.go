package render

import (
	"fmt"
	"time"
)

// Thin display collaborators around the board: countdown clocks, the
// player bar and the win/draw/loss bar. They draw through the same
// Surface the board uses.

// FormatClock renders remaining seconds as mm:ss, or h:mm:ss past an
// hour. Negative remainders clamp to zero.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := seconds % 3600 / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// Countdown is a wall clock that ticks down only while running. Time is
// injected so redraw logic never needs real elapsed time in tests.
type Countdown struct {
	remaining float64
	running   bool
	last      time.Time
	now       func() time.Time
}

func NewCountdown(now func() time.Time) *Countdown {
	if now == nil {
		now = time.Now
	}
	return &Countdown{now: now}
}

// Set replaces the remaining time, as feed clock updates do.
func (c *Countdown) Set(seconds int, running bool) {
	c.remaining = float64(seconds)
	c.running = running
	c.last = c.now()
}

// Remaining advances the countdown to the current instant and returns
// whole seconds left.
func (c *Countdown) Remaining() int {
	t := c.now()
	if c.running {
		c.remaining -= t.Sub(c.last).Seconds()
		if c.remaining < 0 {
			c.remaining = 0
		}
	}
	c.last = t
	return int(c.remaining)
}

// Player is the feed's per-player record.
type Player struct {
	Name   string
	Rating int
	Fed    string
}

// DrawPlayerBar draws a name/rating line with the player's clock at the
// right edge.
func DrawPlayerBar(s Surface, p Player, clock string, x, y, w, h float64, active bool) {
	tag := "panel"
	if active {
		tag = "panel-active"
	}
	s.FillRect(x, y, w, h, tag)

	label := p.Name
	if p.Fed != "" {
		label = p.Fed + " " + label
	}
	if p.Rating > 0 {
		label = fmt.Sprintf("%s (%d)", label, p.Rating)
	}
	s.Text(label, x+8, y+h*0.7, "panel-text")
	s.Text(clock, x+w-70, y+h*0.7, "panel-text")
}

// DrawWDLBar draws the white/draw/black probability split as three
// proportional bands. Scores are per-mille; a zero sum draws nothing.
func DrawWDLBar(s Surface, win, draw, loss int, x, y, w, h float64) {
	total := win + draw + loss
	if total <= 0 {
		return
	}
	ww := w * float64(win) / float64(total)
	dw := w * float64(draw) / float64(total)
	s.FillRect(x, y, ww, h, "wdl-win")
	s.FillRect(x+ww, y, dw, h, "wdl-draw")
	s.FillRect(x+ww+dw, y, w-ww-dw, h, "wdl-loss")
}

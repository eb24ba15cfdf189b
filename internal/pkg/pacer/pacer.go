// Package pacer provides randomized inter-request delays for politeness
// toward external services. Each wait is drawn uniformly from a fixed
// interval so sequential uploads never hit the remote portal in a
// machine-regular rhythm.
package pacer

import (
	"math/rand"
	"time"
)

// Pacer draws uniform random delays from [min, max].
type Pacer struct {
	min time.Duration
	max time.Duration
}

// New creates a Pacer for the given interval. If the interval is
// inverted or unset, the defaults (3s to 7s) are used.
func New(min, max time.Duration) *Pacer {
	if min <= 0 || max <= min {
		min = 3 * time.Second
		max = 7 * time.Second
	}
	return &Pacer{min: min, max: max}
}

// Delay returns one randomized delay in [min, max].
func (p *Pacer) Delay() time.Duration {
	spread := float64(p.max - p.min)
	return p.min + time.Duration(rand.Float64()*spread)
}

// Wait blocks for one randomized delay. The wait is unconditional:
// pacing happens after an item's result is already finalized, so there
// is nothing to cancel.
func (p *Pacer) Wait() time.Duration {
	d := p.Delay()
	timer := time.NewTimer(d)
	<-timer.C
	return d
}

package world

import "time"

// pacer spaces frames at a fixed interval.
type pacer struct {
	interval time.Duration
	next     time.Time
}

func newPacer(interval time.Duration) *pacer {
	return &pacer{interval: interval}
}

// Wait blocks until the next frame is due. A zero interval never blocks.
func (p *pacer) Wait() {
	if p.interval <= 0 {
		p.next = time.Time{}
		return
	}

	if p.next.IsZero() {
		p.next = time.Now().Add(p.interval)
	} else {
		p.next = p.next.Add(p.interval)
	}

	if remaining := time.Until(p.next); remaining > 0 {
		time.Sleep(remaining)
	}

	// resync after a hitch so a slow frame is not followed by a burst
	if late := -time.Until(p.next); late > p.interval {
		p.next = time.Now()
	}
}

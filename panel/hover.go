package panel

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	hoverRate  = rate.Limit(10) // hover records per second
	hoverBurst = 3
)

// hoverGate rate-limits hover records
// A record denied a slot is held and the newest held one goes out when the next slot frees
type hoverGate struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	publish func(Record) bool
	pending *Record
	timer   *time.Timer
	shown   bool // a label is up on the feed
}

func newHoverGate(publish func(Record) bool) *hoverGate {
	return &hoverGate{
		limiter: rate.NewLimiter(hoverRate, hoverBurst),
		publish: publish,
	}
}

func (g *hoverGate) show(r Record) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.shown = true
	if g.timer != nil {
		g.pending = &r
		return
	}
	if g.limiter.Allow() {
		g.publish(r)
		return
	}
	g.pending = &r
	g.timer = time.AfterFunc(g.limiter.Reserve().Delay(), g.flush)
}

func (g *hoverGate) flush() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.timer = nil
	if g.pending != nil {
		g.publish(*g.pending)
		g.pending = nil
	}
}

// hide clears the label once; repeats while nothing is shown are dropped
func (g *hoverGate) hide() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.shown {
		return
	}
	g.shown = false
	g.pending = nil
	g.publish(HideRecord(TargetLabel))
}

func (g *hoverGate) stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.pending = nil
}

package input

import (
	"github.com/lixenwraith/orrery/terminal"
)

// Source delivers input events
type Source interface {
	Events() <-chan terminal.Event
}

// ChanSource adapts a plain channel to Source
type ChanSource chan terminal.Event

func (c ChanSource) Events() <-chan terminal.Event { return c }

// Reader polls a terminal on its own goroutine and forwards events
type Reader struct {
	term    terminal.Terminal
	events  chan terminal.Event
	onPanic func(any)
}

// NewReader creates a reader with the given channel capacity
func NewReader(term terminal.Terminal, capacity int) *Reader {
	return &Reader{
		term:   term,
		events: make(chan terminal.Event, capacity),
	}
}

// SetCrashHandler installs the handler called if polling panics
func (r *Reader) SetCrashHandler(fn func(any)) {
	r.onPanic = fn
}

// Events implements Source. The channel closes when the terminal does
func (r *Reader) Events() <-chan terminal.Event {
	return r.events
}

// Start begins polling
func (r *Reader) Start() {
	go r.run()
}

func (r *Reader) run() {
	defer func() {
		if p := recover(); p != nil && r.onPanic != nil {
			r.onPanic(p)
		}
	}()
	defer close(r.events)

	for {
		ev := r.term.PollEvent()
		if ev.Type == terminal.EventClosed || ev.Type == terminal.EventError {
			return
		}
		r.events <- ev
	}
}

// Package input decouples event delivery from handling.
//
// A Source yields terminal events on a channel; the Reader is the source
// backed by a live terminal and a ChanSource feeds canned events in tests.
// The Dispatcher routes each event to the registered Handlers on the
// caller's goroutine, so handlers may touch simulation state directly.
package input

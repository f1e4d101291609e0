// Package panel mirrors display records to remote viewers over a websocket
// and exposes runtime metrics for scraping.
//
// The feed is one-way: the frame loop publishes select, hover and hide
// records, and every connected client receives them as JSON text frames.
// Nothing sent by clients is read beyond connection control.
package panel

// Package poller implements the Price Poller component.
//
// The Price Poller:
//   - Fetches prices right after Start and then once per interval (5s by default)
//   - Runs manual refreshes on the caller's goroutine without touching the schedule
//   - Keeps a single timer; Stop prevents further ticks but lets an in-flight fetch finish
//   - Never backs off: a failed tick waits for the next one
package poller

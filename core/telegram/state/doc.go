// Package state keeps per-chat session state in memory: the registration stage with the
// fields collected so far, and the last viewed listing page. Idle sessions are evicted by
// Sweep, usually driven by StartJanitor.
package state

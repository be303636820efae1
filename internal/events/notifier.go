// Package events delivers the best-effort "data changed" push signal to
// connected frontend clients. The channel carries no contract beyond "refetch
// now": delivery is at-most-once and ordering is not guaranteed.
package events

// EventIPOUpdate is emitted after any IPO create, update, delete or sync.
const EventIPOUpdate = "ipoUpdate"

// Notifier is the event sink mutation handlers call after a successful
// commit. Implementations must never block the caller.
type Notifier interface {
	Notify(event string, payload any)
}

// NopNotifier discards all events. Used in tests and when the push channel
// is disabled.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(string, any) {}

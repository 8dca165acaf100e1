// Package notify carries the transient, user-facing messages the stores emit
// ("added to cart", "removed from wishlist"). None of them signal failure.
package notify

import "log"

type Notifier interface {
	Notify(message string)
}

// LogNotifier writes notifications to the process log. The HTTP layer relays
// the same text to clients, so this is mostly an operational trace.
type LogNotifier struct{}

func (LogNotifier) Notify(message string) {
	log.Printf("notify: %s", message)
}

// Discard drops every notification. Useful where no UI listens.
type Discard struct{}

func (Discard) Notify(string) {}

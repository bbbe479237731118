// Package notify delivers desktop notifications.
package notify

import (
	"github.com/gen2brain/beeep"
)

// Notifier shows a notification with a title and body.
type Notifier interface {
	Notify(title, body string) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(title, body string) error

func (f NotifierFunc) Notify(title, body string) error { return f(title, body) }

// Native posts through the operating system notification center.
type Native struct {
	// Icon is an optional path to an image shown with the notification.
	Icon string
}

func (n Native) Notify(title, body string) error {
	return beeep.Notify(title, body, n.Icon)
}

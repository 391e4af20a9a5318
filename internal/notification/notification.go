// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"github.com/gen2brain/beeep"

	"github.com/kboone/vigil/internal/logger"
)

// notifier is the function used to deliver notifications. Tests swap it out.
type notifier func(title, message, icon string) error

// beeepNotify adapts beeep.Notify (whose icon parameter is `any` as of
// beeep v0.10) to the string-icon notifier signature used here.
func beeepNotify(title, message, icon string) error {
	return beeep.Notify(title, message, icon)
}

var notify notifier = beeepNotify

// SetNotifier replaces the delivery function. For testing.
func SetNotifier(fn func(title, message, icon string) error) {
	notify = fn
}

// ResetNotifier restores the default beeep-backed delivery.
func ResetNotifier() {
	notify = beeepNotify
}

// Send sends a desktop notification with the given title and message.
// icon is a path to an image file; empty means the platform default.
func Send(title, message, icon string) error {
	logger.Log("Notification: Sending notification - title=%q, message=%q", title, message)
	err := notify(title, message, icon)
	if err != nil {
		logger.Log("Notification: Failed to send notification: %v", err)
	}
	return err
}

// CommandExited announces that a profile's supervised command finished.
// summary is the same exit line shown in the log view.
func CommandExited(profile, summary, icon string) error {
	return Send("Vigil", profile+": "+summary, icon)
}

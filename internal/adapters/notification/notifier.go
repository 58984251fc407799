// Package notification provides desktop notification utilities.
package notification

import (
	"github.com/gen2brain/beeep"
	"github.com/google/uuid"

	"github.com/ronak-kumar-sing/makeit/internal/config"
	"github.com/ronak-kumar-sing/makeit/internal/ports"
)

// Notifier posts desktop notifications via beeep.
type Notifier struct {
	cfg *config.NotificationConfig
}

var _ ports.Notifier = (*Notifier)(nil)

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return &Notifier{cfg: cfg}
}

// Show displays a desktop notification and returns its identifier.
// When notifications are disabled it returns an empty identifier and
// no error.
func (n *Notifier) Show(title, body string) (string, error) {
	if !n.IsEnabled() {
		return "", nil
	}

	var err error
	if n.cfg.Sound {
		err = beeep.Alert(title, body, "")
	} else {
		err = beeep.Notify(title, body, "")
	}
	if err != nil {
		return "", err
	}
	return uuid.New().String(), nil
}

// Replace cancels the previous notification and posts a fresh one.
// Desktop toasts cannot be updated in place, so the identifier changes
// on every call.
func (n *Notifier) Replace(id, title, body string) (string, error) {
	if id != "" {
		if err := n.Cancel(id); err != nil {
			return "", err
		}
	}
	return n.Show(title, body)
}

// Cancel dismisses a previously shown notification. Desktop toasts are
// transient and expire on their own, so there is nothing to tear down.
func (n *Notifier) Cancel(id string) error {
	return nil
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.cfg != nil && n.cfg.Enabled
}

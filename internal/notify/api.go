package notify

import (
	apperrors "github.com/AreteDriver/Gorgon/internal/errors"
	"github.com/AreteDriver/Gorgon/internal/logging"
)

// API exposes send_notification to the frontend via Wails binding.
type API struct {
	notifier Notifier
	enabled  bool
	log      logging.Logger
}

// NewAPI wraps n. With enabled false every notification is dropped after logging.
func NewAPI(n Notifier, enabled bool, logger logging.Logger) *API {
	if logger == nil {
		logger = logging.Nop()
	}
	if n == nil {
		n = Native{}
	}
	return &API{notifier: n, enabled: enabled, log: logger}
}

func (a *API) SendNotification(title string, body string) error {
	done := logging.Track(a.log, "send_notification", "title", title)
	if !a.enabled {
		a.log.Debug("notifications disabled, dropping", "title", title)
		return done(nil)
	}
	if err := a.notifier.Notify(title, body); err != nil {
		return done(apperrors.Custom(err.Error()))
	}
	return done(nil)
}

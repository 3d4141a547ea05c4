// Package emailsvc provides the core.EmailService implementations: console output for development and SendGrid.
package emailsvc

import (
	"github.com/pkg/errors"

	"github.com/trezcool/orientation/core"
)

// render prepares msg for sending; messages without recipient or content are dropped.
func render(msg *core.EmailMessage, logger core.Logger) bool {
	if err := msg.Render(); err != nil {
		err = errors.Wrapf(err, "rendering email %q", msg.Subject)
		logger.Error(err.Error(), err)
		return false
	}
	if !msg.HasRecipients() {
		logger.Warn("dropping email without recipient: " + msg.Subject)
		return false
	}
	return msg.HasContent()
}

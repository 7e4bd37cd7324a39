package worker

import (
	"github.com/spec-kit/lead-intake-service/internal/service"
)

// StartNotificationWorker registers lead event handlers.
func StartNotificationWorker(notifier *service.EventNotifier) {
	if notifier == nil {
		return
	}
	notifier.RegisterHandlers()
}

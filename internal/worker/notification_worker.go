package worker

import (
	"github.com/thallyson03/ceapdesk/internal/service"
)

// StartNotificationWorker subscribes the notification fan-out to ticket,
// SLA and holiday events.
func StartNotificationWorker(notificationService *service.NotificationService) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
}

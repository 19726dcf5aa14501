package worker

import (
	"github.com/spec-kit/justiceconnect/internal/events"
	"github.com/spec-kit/justiceconnect/internal/service"
)

// StartNotificationWorker subscribes the notification service to case events.
func StartNotificationWorker(dispatcher events.Dispatcher, notificationService *service.NotificationService) {
	if dispatcher == nil || notificationService == nil {
		return
	}
	notificationService.RegisterSubscribers(dispatcher)
}

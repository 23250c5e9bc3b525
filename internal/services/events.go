package services

import (
	"github.com/sirupsen/logrus"
)

// Event types published after successful writes.
const (
	EventProfileUpserted   = "profile.upserted"
	EventExperienceAdded   = "experience.added"
	EventExperienceRemoved = "experience.removed"
	EventAccountDeleted    = "account.deleted"
)

// EventPublisher delivers domain events to interested consumers.
type EventPublisher interface {
	PublishEvent(eventType string, payload map[string]interface{}) error
}

// publish sends an event if a publisher is configured. Failures are logged, never returned:
// the write they describe has already been committed.
func publish(p EventPublisher, eventType string, payload map[string]interface{}) {
	if p == nil {
		return
	}
	if err := p.PublishEvent(eventType, payload); err != nil {
		logrus.WithFields(logrus.Fields{"event": eventType, "error": err.Error()}).Warn("failed to publish event")
	}
}

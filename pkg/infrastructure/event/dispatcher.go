package event

import (
	log "github.com/sirupsen/logrus"

	"inventory/pkg/domain/service"
)

// LogDispatcher writes every domain event to the structured log. It is the
// production EventDispatcher; tests use recording mocks instead.
type LogDispatcher struct{}

func NewLogDispatcher() *LogDispatcher {
	return &LogDispatcher{}
}

func (d *LogDispatcher) Dispatch(e service.Event) error {
	log.WithFields(log.Fields{
		"event":   e.Type(),
		"payload": e,
	}).Info("domain event")
	return nil
}

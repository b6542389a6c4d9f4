package event

import (
	"github.com/sirupsen/logrus"
)

/*
return nil if not support
*/
type EventHandler func(e *EventRecord) *EventHandleResult

type EventHandleResult struct {
	Success           bool
	Message           string
	HandlerIdentifier string
}

var EventHandlers []EventHandler

var InvokeHandlersFunc = invokeHandlers

// InvokeHandlersAsync dispatches the handlers without blocking the caller:
// notification failures are logged, never surfaced to the triggering request.
func InvokeHandlersAsync(record *EventRecord) {
	go InvokeHandlersFunc(record)
}

func invokeHandlers(record *EventRecord) []EventHandleResult {
	results := []EventHandleResult{}
	for _, handler := range EventHandlers {
		logrus.Debug("pre handle event ", record.Event)
		r := handler(record)

		if r == nil {
			continue
		}

		results = append(results, *r)

		if r.Success {
			logrus.Info("post handle event. ", r)
		} else {
			logrus.Error("post handler error. ", r)
		}
	}
	return results
}

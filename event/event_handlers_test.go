package event_test

import (
	"solarflow/event"
	"testing"
	"time"

	. "github.com/onsi/gomega"
)

func TestInvokeHandlers(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should invoke all registered event handlers", func(t *testing.T) {
		defer func() {
			event.EventHandlers = nil
		}()
		event.EventHandlers = append(event.EventHandlers, func(e *event.EventRecord) *event.EventHandleResult {
			return nil
		})
		event.EventHandlers = append(event.EventHandlers, func(e *event.EventRecord) *event.EventHandleResult {
			return &event.EventHandleResult{Success: true, Message: "success", HandlerIdentifier: "all-success-handler"}
		})
		event.EventHandlers = append(event.EventHandlers, func(e *event.EventRecord) *event.EventHandleResult {
			return &event.EventHandleResult{Success: false, Message: "failure", HandlerIdentifier: "all-failure-handler"}
		})

		ev := event.EventRecord{
			Event: event.Event{
				SourceType: "TASK",
				SourceId:   1234,
				SourceDesc: "task1234",

				EventCategory: event.EventCategoryCreated,

				CreatorId:   333,
				CreatorName: "user333",
			},
			Synced: true,
		}

		ret := event.InvokeHandlersFunc(&ev)
		Expect(ret).To(Equal([]event.EventHandleResult{
			{Success: true, Message: "success", HandlerIdentifier: "all-success-handler"},
			{Success: false, Message: "failure", HandlerIdentifier: "all-failure-handler"},
		}))
	})
}

func TestInvokeHandlersAsync(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should dispatch handlers without blocking the caller", func(t *testing.T) {
		invoked := make(chan *event.EventRecord, 1)
		event.InvokeHandlersFunc = func(record *event.EventRecord) []event.EventHandleResult {
			invoked <- record
			return nil
		}

		ev := event.EventRecord{ID: 1234, Event: event.Event{SourceType: "TASK", SourceId: 1234}}
		event.InvokeHandlersAsync(&ev)

		select {
		case got := <-invoked:
			Expect(got).To(Equal(&ev))
		case <-time.After(time.Second):
			t.Fatal("handlers were not dispatched")
		}
	})
}

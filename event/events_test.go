package event_test

import (
	"errors"
	"solarflow/event"
	"solarflow/session"
	"testing"

	"github.com/jinzhu/gorm"
	. "github.com/onsi/gomega"
)

func TestCreateEvent(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should return error when failed to persist event", func(t *testing.T) {
		testErr := errors.New("test error")
		event.EventPersistCreateFunc = func(record *event.EventRecord, tx *gorm.DB) error {
			return testErr
		}

		var tx = &gorm.DB{Value: 10000}
		ret, err := event.CreateEvent("TASK", 1234, "task1234", event.EventCategoryCreated,
			[]event.UpdatedProperty{{PropertyName: "Status", PropertyDesc: "Status",
				OldValue: "pending", OldValueDesc: "pending", NewValue: "inprogress", NewValueDesc: "inprogress"}},
			&session.Identity{ID: 333, Name: "user333"},
			tx,
		)
		Expect(ret).To(BeNil())
		Expect(err).To(Equal(testErr))
	})

	t.Run("should be able to create events", func(t *testing.T) {
		var ev event.EventRecord
		var db *gorm.DB
		event.EventPersistCreateFunc = func(record *event.EventRecord, tx *gorm.DB) error {
			ev = *record
			db = tx
			return nil
		}

		var tx = &gorm.DB{Value: 10000}
		ret, err := event.CreateEvent("TASK", 1234, "task1234", event.EventCategoryPropertyUpdated,
			[]event.UpdatedProperty{{PropertyName: "Status", PropertyDesc: "Status",
				OldValue: "pending", OldValueDesc: "pending", NewValue: "inprogress", NewValueDesc: "inprogress"}},
			&session.Identity{ID: 333, Name: "user333"},
			tx,
		)
		Expect(err).To(BeNil())

		expectEvent := event.Event{
			SourceType: "TASK",
			SourceId:   1234,
			SourceDesc: "task1234",

			EventCategory: event.EventCategoryPropertyUpdated,
			UpdatedProperties: event.UpdatedProperties{{PropertyName: "Status", PropertyDesc: "Status",
				OldValue: "pending", OldValueDesc: "pending", NewValue: "inprogress", NewValueDesc: "inprogress"}},

			CreatorId:   333,
			CreatorName: "user333",
		}

		Expect(ev.Event).To(Equal(expectEvent))
		Expect(ev.ID).ToNot(BeZero())
		Expect(ev.Timestamp).ToNot(BeZero())
		Expect(ev.Synced).To(BeFalse())
		Expect(*ret).To(Equal(ev))

		Expect(db).To(Equal(tx))
	})
}

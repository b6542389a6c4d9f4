package event

import (
	"context"
	"solarflow/persistence"
	"solarflow/testinfra"
	"testing"
	"time"

	"github.com/fundwit/go-commons/types"
	. "github.com/onsi/gomega"
)

func TestEventPersistCreate(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should be able to persist event create", func(t *testing.T) {
		testDatabase := testinfra.StartMysqlTestDatabase("solarflow")
		defer testinfra.StopMysqlTestDatabase(testDatabase)
		persistence.ActiveDataSourceManager = testDatabase.DS

		db := testDatabase.DS.GormDB(context.Background())
		Expect(db.AutoMigrate(&EventRecord{}).Error).To(BeNil())

		record := EventRecord{
			ID: 10001,
			Event: Event{
				SourceType: "TASK",
				SourceId:   1234,
				SourceDesc: "task1234",

				EventCategory: EventCategoryCreated,
				UpdatedProperties: UpdatedProperties{{PropertyName: "Status", PropertyDesc: "Status",
					OldValue: "pending", OldValueDesc: "pending", NewValue: "completed", NewValueDesc: "completed"}},

				CreatorId:   333,
				CreatorName: "user333",
			},
			Timestamp: types.TimestampOfDate(2021, 1, 1, 12, 12, 12, 0, time.Local),
			Synced:    true,
		}

		Expect(eventPersistCreate(&record, db)).To(BeNil())

		records := []EventRecord{}
		Expect(db.Model(&EventRecord{}).Find(&records).Error).To(BeNil())
		Expect(len(records)).To(Equal(1))
		Expect(records[0]).To(Equal(record))
	})
}

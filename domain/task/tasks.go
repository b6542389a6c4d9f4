package task

import (
	"errors"
	"fmt"
	"solarflow/bizerror"
	"solarflow/domain/customer"
	"solarflow/domain/employee"
	"solarflow/domain/state"
	"solarflow/event"
	"solarflow/idgen"
	"solarflow/persistence"
	"solarflow/session"

	"github.com/fundwit/go-commons/types"
	"github.com/go-sql-driver/mysql"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "inprogress"
	StatusCompleted  = "completed"
)

var TaskStateMachine = state.NewStateMachine(
	[]state.State{
		{Name: StatusPending, Category: state.InBacklog, Order: 1},
		{Name: StatusInProgress, Category: state.InProcess, Order: 2},
		{Name: StatusCompleted, Category: state.Done, Order: 3},
	},
	[]state.Transition{
		{Name: "begin", From: state.State{Name: StatusPending, Category: state.InBacklog, Order: 1},
			To: state.State{Name: StatusInProgress, Category: state.InProcess, Order: 2}},
		{Name: "finish", From: state.State{Name: StatusInProgress, Category: state.InProcess, Order: 2},
			To: state.State{Name: StatusCompleted, Category: state.Done, Order: 3}},
	},
)

// Task is one unit of pipeline work assigned to a single employee. The
// customer, work type and assignee together form the business key: the same
// stage is never handed to the same person twice for one customer.
type Task struct {
	ID types.ID `json:"id" gorm:"primary_key"`

	RegisteredCustomerID types.ID `json:"registeredCustomerId" gorm:"unique_index:uni_task_triple"`
	WorkType             WorkType `json:"workType" gorm:"unique_index:uni_task_triple"`
	AssignedToID         types.ID `json:"assignedToId" gorm:"unique_index:uni_task_triple"`

	Description    string `json:"description"`
	Status         string `json:"status"`
	AssignedToName string `json:"assignedToName"`
	AssignedRole   string `json:"assignedRole"`

	CreatedBy    types.ID         `json:"createdBy"`
	CreateTime   types.Timestamp  `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
	UpdateTime   types.Timestamp  `json:"updateTime" sql:"type:DATETIME(6) NOT NULL"`
	CompleteTime *types.Timestamp `json:"completeTime" sql:"type:DATETIME(6)"`
}

type TaskCreation struct {
	RegisteredCustomerID types.ID `json:"registeredCustomerId" binding:"required"`
	WorkType             WorkType `json:"workType" binding:"required"`
	AssignedToID         types.ID `json:"assignedToId" binding:"required"`
	AssignedRole         string   `json:"assignedRole"`
}

type TaskUpdating struct {
	Status       string   `json:"status"`
	AssignedToID types.ID `json:"assignedToId"`
}

type TaskQuery struct {
	RegisteredCustomerID types.ID `json:"registeredCustomerId" form:"customerId"`
	AssignedToID         types.ID `json:"assignedToId" form:"assignedToId"`
	Status               string   `json:"status" form:"status"`
	WorkType             WorkType `json:"workType" form:"workType"`
}

var (
	taskIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	CreateTaskFunc = CreateTask
	UpdateTaskFunc = UpdateTask
	DetailTaskFunc = DetailTask
	QueryTasksFunc = QueryTasks

	ListTasksByCustomerFunc = ListTasksByCustomer
)

// BuildDescription renders the standard task text. Missing customer fields
// degrade to placeholders instead of failing the creation.
func BuildDescription(workType WorkType, c *customer.RegisteredCustomer) string {
	name := c.ApplicantName
	if name == "" {
		name = "customer"
	}
	mobile := c.MobileNumber
	if mobile == "" {
		mobile = "unknown"
	}
	district := c.District
	if district == "" {
		district = "district unknown"
	}
	return fmt.Sprintf("%s for %s (Mobile: %s) in %s", workType.Words(), name, mobile, district)
}

// CreateTask persists a pending task for the given customer, work type and
// assignee. A task with the same triple already on record yields ErrConflict,
// whether caught by the pre-check or by the unique index.
func CreateTask(c TaskCreation, s *session.Session) (*Task, error) {
	if !c.WorkType.IsValid() {
		return nil, bizerror.ErrUnknownWorkType
	}

	cust, err := customer.DetailCustomerFunc(c.RegisteredCustomerID, s)
	if err != nil {
		return nil, translateNotFound(err)
	}
	assignee, err := employee.DetailEmployeeFunc(c.AssignedToID, s)
	if err != nil {
		return nil, translateNotFound(err)
	}

	now := types.CurrentTimestamp()
	r := Task{
		ID: idgen.NextID(taskIdWorker),

		RegisteredCustomerID: cust.ID,
		WorkType:             c.WorkType,
		AssignedToID:         assignee.ID,

		Description:    BuildDescription(c.WorkType, cust),
		Status:         StatusPending,
		AssignedToName: assignee.Name,
		AssignedRole:   defaultIfEmpty(c.AssignedRole, assignee.EmployeeRole),

		CreatedBy:  s.Identity.ID,
		CreateTime: now,
		UpdateTime: now,
	}

	var ev *event.EventRecord
	err = persistence.ActiveDataSourceManager.GormDB(s.Context).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Task{}).Where(&Task{RegisteredCustomerID: cust.ID, WorkType: c.WorkType,
			AssignedToID: assignee.ID}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return bizerror.ErrConflict
		}
		if err := tx.Create(&r).Error; err != nil {
			return translateDuplicateKey(err)
		}
		ev, err = event.CreateEvent("TASK", r.ID, r.Description, event.EventCategoryCreated, nil, &s.Identity, tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	event.InvokeHandlersAsync(ev)
	return &r, nil
}

// UpdateTask applies a status change and/or a reassignment. The second return
// value reports whether this call moved the task onto completed, so the caller
// can run the follow-up workflow exactly once.
func UpdateTask(id types.ID, u TaskUpdating, s *session.Session) (*Task, bool, error) {
	var r Task
	var ev *event.EventRecord
	completedEdge := false

	err := persistence.ActiveDataSourceManager.GormDB(s.Context).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&Task{ID: id}).First(&r).Error; err != nil {
			return err
		}

		var changes []event.UpdatedProperty

		if u.AssignedToID != 0 && u.AssignedToID != r.AssignedToID {
			assignee, err := employee.DetailEmployeeFunc(u.AssignedToID, s)
			if err != nil {
				return translateNotFound(err)
			}
			changes = append(changes, event.UpdatedProperty{
				PropertyName: "AssignedTo", PropertyDesc: "AssignedTo",
				OldValue: r.AssignedToID.String(), OldValueDesc: r.AssignedToName,
				NewValue: assignee.ID.String(), NewValueDesc: assignee.Name,
			})
			r.AssignedToID = assignee.ID
			r.AssignedToName = assignee.Name
			r.AssignedRole = assignee.EmployeeRole
		}

		if u.Status != "" && u.Status != r.Status {
			if _, found := TaskStateMachine.FindState(u.Status); !found {
				return &bizerror.ErrInvalidTransition{From: r.Status, To: u.Status}
			}
			if len(TaskStateMachine.AvailableTransitions(r.Status, u.Status)) == 0 {
				return &bizerror.ErrInvalidTransition{From: r.Status, To: u.Status}
			}
			if u.Status == StatusCompleted {
				if err := checkCompletionGate(&r, s); err != nil {
					return err
				}
				now := types.CurrentTimestamp()
				r.CompleteTime = &now
				completedEdge = true
			}
			changes = append(changes, event.UpdatedProperty{
				PropertyName: "Status", PropertyDesc: "Status",
				OldValue: r.Status, OldValueDesc: r.Status,
				NewValue: u.Status, NewValueDesc: u.Status,
			})
			r.Status = u.Status
		}

		if len(changes) == 0 {
			// same-state update or empty body, idempotent no-op
			return nil
		}

		r.UpdateTime = types.CurrentTimestamp()
		if err := tx.Save(&r).Error; err != nil {
			return translateDuplicateKey(err)
		}

		var err error
		ev, err = event.CreateEvent("TASK", r.ID, r.Description, event.EventCategoryPropertyUpdated, changes,
			&s.Identity, tx)
		return err
	})
	if err != nil {
		return nil, false, err
	}

	if ev != nil {
		event.InvokeHandlersAsync(ev)
	}
	return &r, completedEdge, nil
}

func DetailTask(id types.ID, s *session.Session) (*Task, error) {
	var r Task
	if err := persistence.ActiveDataSourceManager.GormDB(s.Context).Where(&Task{ID: id}).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func QueryTasks(q TaskQuery, s *session.Session) ([]Task, error) {
	records := []Task{}
	db := persistence.ActiveDataSourceManager.GormDB(s.Context)

	query := db.Order("create_time ASC")
	if q.RegisteredCustomerID != 0 {
		query = query.Where(&Task{RegisteredCustomerID: q.RegisteredCustomerID})
	}
	if q.AssignedToID != 0 {
		query = query.Where(&Task{AssignedToID: q.AssignedToID})
	}
	if q.Status != "" {
		query = query.Where(&Task{Status: q.Status})
	}
	if q.WorkType != "" {
		query = query.Where(&Task{WorkType: q.WorkType})
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ListTasksByCustomer is the workflow engine's view of a customer's pipeline.
func ListTasksByCustomer(customerID types.ID, s *session.Session) ([]Task, error) {
	return QueryTasksFunc(TaskQuery{RegisteredCustomerID: customerID}, s)
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return bizerror.ErrNotFound
	}
	return err
}

func translateDuplicateKey(err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return bizerror.ErrConflict
	}
	return err
}

func defaultIfEmpty(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

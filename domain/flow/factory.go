package flow

import (
	"solarflow/domain/customer"
	"solarflow/domain/task"
	"solarflow/session"

	"github.com/fundwit/go-commons/types"
)

var CreateTaskForWorkTypeFunc = CreateTaskForWorkType

// CreateTaskForWorkType builds a pending task of the given stage for the
// customer. A nil task with a nil error means the stage does not apply to
// this customer at all, which callers report as skipped rather than failed.
func CreateTaskForWorkType(workType task.WorkType, customerID, assigneeID types.ID, requiredRole string,
	s *session.Session) (*task.Task, error) {

	// financed purchases never collect a remaining amount
	if workType == task.WorkTypeCollectRemainingAmount {
		cust, err := customer.DetailCustomerFunc(customerID, s)
		if err != nil {
			return nil, err
		}
		if cust.PaymentMode == customer.PaymentModeFinance {
			return nil, nil
		}
	}

	return task.CreateTaskFunc(task.TaskCreation{
		RegisteredCustomerID: customerID,
		WorkType:             workType,
		AssignedToID:         assigneeID,
		AssignedRole:         requiredRole,
	}, s)
}

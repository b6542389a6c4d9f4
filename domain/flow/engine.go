package flow

import (
	"errors"
	"solarflow/bizerror"
	"solarflow/domain/assign"
	"solarflow/domain/customer"
	"solarflow/domain/employee"
	"solarflow/domain/task"
	"solarflow/session"

	"github.com/fundwit/go-commons/types"
	"github.com/sirupsen/logrus"
)

type CreatedTask struct {
	TaskID       types.ID      `json:"taskId"`
	WorkType     task.WorkType `json:"workType"`
	RequiredRole string        `json:"requiredRole"`
	AssignedToID types.ID      `json:"assignedToId"`
}

type BranchError struct {
	WorkType     task.WorkType `json:"workType"`
	RequiredRole string        `json:"requiredRole"`
	Message      string        `json:"message"`
}

// WorkflowResult aggregates the per-branch outcomes of one engine invocation.
// Branch failures never propagate: the completed task stays completed.
type WorkflowResult struct {
	CreatedTasks []CreatedTask   `json:"createdTasks"`
	Skipped      []task.WorkType `json:"skipped"`
	Errors       []BranchError   `json:"errors"`
	Terminal     bool            `json:"terminal"`
}

var HandleTaskCompletionFunc = HandleTaskCompletion

// HandleTaskCompletion runs the workflow fan-out for a task that just reached
// completed: it consults the graph, checks each successor's precondition,
// resolves an assignee and asks the factory for the new task. Preconditions
// not yet met and duplicate creations count as skipped, everything else that
// goes wrong on a branch is collected as a non-fatal error.
func HandleTaskCompletion(completed *task.Task, cust *customer.RegisteredCustomer, s *session.Session) *WorkflowResult {
	result := newWorkflowResult()

	successors, found := WorkflowGraph[completed.WorkType]
	if !found {
		logrus.Warnf("no workflow successors configured for work type '%s'", completed.WorkType)
		result.Terminal = true
		return result
	}
	if len(successors) == 0 {
		result.Terminal = true
		return result
	}

	customerTasks, err := task.ListTasksByCustomerFunc(cust.ID, s)
	if err != nil {
		result.Errors = append(result.Errors, BranchError{Message: err.Error()})
		return result
	}

	for _, successor := range successors {
		if successor.Precondition != nil && !successor.Precondition(customerTasks) {
			result.Skipped = append(result.Skipped, successor.WorkType)
			continue
		}
		createBranchTask(result, successor.WorkType, successor.RequiredRole, cust, s)
	}
	return result
}

func newWorkflowResult() *WorkflowResult {
	return &WorkflowResult{CreatedTasks: []CreatedTask{}, Skipped: []task.WorkType{}, Errors: []BranchError{}}
}

// createBranchTask resolves the assignee and creates one successor task,
// recording the outcome on the result.
func createBranchTask(result *WorkflowResult, workType task.WorkType, requiredRole string,
	cust *customer.RegisteredCustomer, s *session.Session) {

	assigneeID, err := resolveBranchAssignee(requiredRole, cust, s)
	if err != nil {
		result.Errors = append(result.Errors, BranchError{WorkType: workType, RequiredRole: requiredRole,
			Message: err.Error()})
		return
	}
	if assigneeID == 0 {
		result.Errors = append(result.Errors, BranchError{WorkType: workType, RequiredRole: requiredRole,
			Message: "no available employee found for this role"})
		return
	}

	created, err := CreateTaskForWorkTypeFunc(workType, cust.ID, assigneeID, requiredRole, s)
	if errors.Is(err, bizerror.ErrConflict) {
		result.Skipped = append(result.Skipped, workType)
		return
	}
	if err != nil {
		logrus.Warnf("failed to create '%s' task for customer %v: %v", workType, cust.ID, err)
		result.Errors = append(result.Errors, BranchError{WorkType: workType, RequiredRole: requiredRole,
			Message: err.Error()})
		return
	}
	if created == nil {
		result.Skipped = append(result.Skipped, workType)
		return
	}

	logrus.Infof("created task '%s' (%v) for customer %v, assigned to %v",
		workType, created.ID, cust.ID, assigneeID)
	result.CreatedTasks = append(result.CreatedTasks, CreatedTask{TaskID: created.ID, WorkType: workType,
		RequiredRole: requiredRole, AssignedToID: assigneeID})
}

// The sale executive branch always goes back to whoever registered the
// customer; the generic directory rules only apply when that record is gone.
func resolveBranchAssignee(requiredRole string, cust *customer.RegisteredCustomer, s *session.Session) (types.ID, error) {
	if requiredRole == employee.RoleSaleExecutive && cust.CreatedBy != 0 {
		return cust.CreatedBy, nil
	}
	return assign.ResolveAssigneeFunc(requiredRole, cust, s)
}

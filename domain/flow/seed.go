package flow

import (
	"solarflow/domain/assign"
	"solarflow/domain/customer"
	"solarflow/domain/employee"
	"solarflow/domain/task"
	"solarflow/domain/transaction"
	"solarflow/session"

	"github.com/fundwit/go-commons/types"
	"github.com/sirupsen/logrus"
)

var SeedCustomerTasksFunc = SeedCustomerTasks

// SeedCustomerTasks opens the pipeline for a freshly registered customer: the
// transaction log, the always-present opening tasks and the conditional ones
// driven by the registration flags. Seeding failures never fail the customer
// registration itself.
func SeedCustomerTasks(cust *customer.RegisteredCustomer, s *session.Session) *WorkflowResult {
	result := newWorkflowResult()

	if _, err := transaction.CreateTransactionLogFunc(cust.ID, cust.PlantPrice, cust.MarginMoney, s); err != nil {
		logrus.Warnf("failed to create transaction log for customer %v: %v", cust.ID, err)
		result.Errors = append(result.Errors, BranchError{Message: "transaction log: " + err.Error()})
	}

	saleExecutiveID := cust.CreatedBy
	if saleExecutiveID == 0 {
		saleExecutiveID = s.Identity.ID
	}
	systemAdminID := resolveSeedAssignee(employee.RoleSystemAdmin, cust, s)
	electricianID := resolveSeedAssignee(employee.RoleElectrician, cust, s)

	seedTask(result, task.WorkTypeCustomerDataGathering, employee.RoleSaleExecutive, saleExecutiveID, cust, s)
	seedTask(result, task.WorkTypeCollectRemainingAmount, employee.RoleSaleExecutive, saleExecutiveID, cust, s)
	seedTask(result, task.WorkTypeCompleteRegistration, employee.RoleSystemAdmin, systemAdminID, cust, s)

	if cust.CotRequired == customer.ChoiceYes {
		seedTask(result, task.WorkTypeCotRequest, employee.RoleElectrician, electricianID, cust, s)
	}
	if cust.LoadEnhancementRequired == customer.RequirementRequired {
		seedTask(result, task.WorkTypeLoadRequest, employee.RoleElectrician, electricianID, cust, s)
	}
	if cust.NameCorrectionRequired == customer.RequirementRequired {
		seedTask(result, task.WorkTypeNameCorrectionRequest, employee.RoleElectrician, electricianID, cust, s)
	}

	if cust.PaymentMode == customer.PaymentModeFinance || cust.SpecialFinanceRequired == customer.ChoiceYes {
		seedTask(result, task.WorkTypeFinanceRegistration, employee.RoleSystemAdmin, systemAdminID, cust, s)
	}

	return result
}

func seedTask(result *WorkflowResult, workType task.WorkType, requiredRole string, assigneeID types.ID,
	cust *customer.RegisteredCustomer, s *session.Session) {

	created, err := CreateTaskForWorkTypeFunc(workType, cust.ID, assigneeID, requiredRole, s)
	if err != nil {
		logrus.Warnf("failed to seed '%s' task for customer %v: %v", workType, cust.ID, err)
		result.Errors = append(result.Errors, BranchError{WorkType: workType, RequiredRole: requiredRole,
			Message: err.Error()})
		return
	}
	if created == nil {
		result.Skipped = append(result.Skipped, workType)
		return
	}
	result.CreatedTasks = append(result.CreatedTasks, CreatedTask{TaskID: created.ID, WorkType: workType,
		RequiredRole: requiredRole, AssignedToID: assigneeID})
}

// Seeding prefers the configured role holders but never blocks registration
// on a missing one: the acting user picks up the task instead.
func resolveSeedAssignee(role string, cust *customer.RegisteredCustomer, s *session.Session) types.ID {
	id, err := assign.ResolveAssigneeFunc(role, cust, s)
	if err != nil || id == 0 {
		logrus.Warnf("no '%s' available for customer %v, assigning to acting user", role, cust.ID)
		return s.Identity.ID
	}
	return id
}

package flow_test

import (
	"solarflow/domain/assign"
	"solarflow/domain/customer"
	"solarflow/domain/employee"
	"solarflow/domain/flow"
	"solarflow/domain/task"
	"solarflow/domain/transaction"
	"solarflow/session"
	"testing"

	"github.com/fundwit/go-commons/types"
	. "github.com/onsi/gomega"
)

type seededTask struct {
	workType task.WorkType
	assignee types.ID
}

func TestSeedCustomerTasks(t *testing.T) {
	RegisterTestingT(t)

	s := &session.Session{Token: "test", Identity: session.Identity{ID: 999, Name: "tester"}}

	seed := func(cust *customer.RegisteredCustomer, directory map[string]types.ID) ([]seededTask, *flow.WorkflowResult, []float64) {
		defer resetSeedStubs()
		amounts := []float64{}
		transaction.CreateTransactionLogFunc = func(customerID types.ID, totalAmount, paidAmount float64,
			s *session.Session) (*transaction.TransactionLog, error) {
			amounts = append(amounts, totalAmount, paidAmount)
			return &transaction.TransactionLog{ID: 1, RegisteredCustomerID: customerID}, nil
		}
		assign.ResolveAssigneeFunc = func(role string, cust *customer.RegisteredCustomer, s *session.Session) (types.ID, error) {
			return directory[role], nil
		}
		seeded := []seededTask{}
		flow.CreateTaskForWorkTypeFunc = func(workType task.WorkType, customerID, assigneeID types.ID,
			requiredRole string, s *session.Session) (*task.Task, error) {
			if workType == task.WorkTypeCollectRemainingAmount && cust.PaymentMode == customer.PaymentModeFinance {
				return nil, nil
			}
			seeded = append(seeded, seededTask{workType: workType, assignee: assigneeID})
			return &task.Task{ID: types.ID(len(seeded)), WorkType: workType, AssignedToID: assigneeID}, nil
		}

		result := flow.SeedCustomerTasks(cust, s)
		return seeded, result, amounts
	}

	t.Run("should always seed the opening tasks and the transaction log", func(t *testing.T) {
		cust := &customer.RegisteredCustomer{ID: 100, District: "Varanasi", PaymentMode: customer.PaymentModeCash,
			PlantPrice: 250000, MarginMoney: 50000, CreatedBy: 42,
			CotRequired: customer.ChoiceNo, LoadEnhancementRequired: customer.RequirementNotRequired,
			NameCorrectionRequired: customer.RequirementNotRequired, SpecialFinanceRequired: customer.ChoiceNo}
		directory := map[string]types.ID{employee.RoleSystemAdmin: 7, employee.RoleElectrician: 8}

		seeded, result, amounts := seed(cust, directory)
		Expect(amounts).To(Equal([]float64{250000, 50000}))
		Expect(seeded).To(Equal([]seededTask{
			{workType: task.WorkTypeCustomerDataGathering, assignee: 42},
			{workType: task.WorkTypeCollectRemainingAmount, assignee: 42},
			{workType: task.WorkTypeCompleteRegistration, assignee: 7},
		}))
		Expect(result.Errors).To(BeEmpty())
		Expect(result.Skipped).To(BeEmpty())
	})

	t.Run("should skip collect remaining amount for financed customers and seed finance registration", func(t *testing.T) {
		cust := &customer.RegisteredCustomer{ID: 100, PaymentMode: customer.PaymentModeFinance, CreatedBy: 42,
			CotRequired: customer.ChoiceNo, LoadEnhancementRequired: customer.RequirementNotRequired,
			NameCorrectionRequired: customer.RequirementNotRequired, SpecialFinanceRequired: customer.ChoiceNo}
		directory := map[string]types.ID{employee.RoleSystemAdmin: 7, employee.RoleElectrician: 8}

		seeded, result, _ := seed(cust, directory)
		Expect(seeded).To(Equal([]seededTask{
			{workType: task.WorkTypeCustomerDataGathering, assignee: 42},
			{workType: task.WorkTypeCompleteRegistration, assignee: 7},
			{workType: task.WorkTypeFinanceRegistration, assignee: 7},
		}))
		Expect(result.Skipped).To(Equal([]task.WorkType{task.WorkTypeCollectRemainingAmount}))
	})

	t.Run("should seed correction tasks to the district electrician when the flags ask for them", func(t *testing.T) {
		cust := &customer.RegisteredCustomer{ID: 100, District: "Varanasi", PaymentMode: customer.PaymentModeCash,
			CreatedBy: 42, CotRequired: customer.ChoiceYes,
			LoadEnhancementRequired: customer.RequirementRequired,
			NameCorrectionRequired:  customer.RequirementRequired,
			SpecialFinanceRequired:  customer.ChoiceYes}
		directory := map[string]types.ID{employee.RoleSystemAdmin: 7, employee.RoleElectrician: 8}

		seeded, result, _ := seed(cust, directory)
		Expect(seeded).To(Equal([]seededTask{
			{workType: task.WorkTypeCustomerDataGathering, assignee: 42},
			{workType: task.WorkTypeCollectRemainingAmount, assignee: 42},
			{workType: task.WorkTypeCompleteRegistration, assignee: 7},
			{workType: task.WorkTypeCotRequest, assignee: 8},
			{workType: task.WorkTypeLoadRequest, assignee: 8},
			{workType: task.WorkTypeNameCorrectionRequest, assignee: 8},
			{workType: task.WorkTypeFinanceRegistration, assignee: 7},
		}))
		Expect(result.Errors).To(BeEmpty())
	})

	t.Run("should fall back to the acting user when a role has no holder", func(t *testing.T) {
		cust := &customer.RegisteredCustomer{ID: 100, PaymentMode: customer.PaymentModeCash,
			CotRequired: customer.ChoiceNo, LoadEnhancementRequired: customer.RequirementNotRequired,
			NameCorrectionRequired: customer.RequirementNotRequired, SpecialFinanceRequired: customer.ChoiceNo}

		seeded, result, _ := seed(cust, map[string]types.ID{})
		Expect(seeded).To(Equal([]seededTask{
			{workType: task.WorkTypeCustomerDataGathering, assignee: 999},
			{workType: task.WorkTypeCollectRemainingAmount, assignee: 999},
			{workType: task.WorkTypeCompleteRegistration, assignee: 999},
		}))
		Expect(result.Errors).To(BeEmpty())
	})
}

func resetSeedStubs() {
	transaction.CreateTransactionLogFunc = transaction.CreateTransactionLog
	assign.ResolveAssigneeFunc = assign.ResolveAssignee
	flow.CreateTaskForWorkTypeFunc = flow.CreateTaskForWorkType
}

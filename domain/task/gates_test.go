package task

import (
	"solarflow/bizerror"
	"solarflow/domain/document"
	"solarflow/domain/plant"
	"solarflow/domain/transaction"
	"solarflow/session"
	"testing"

	"github.com/fundwit/go-commons/types"
	. "github.com/onsi/gomega"
)

func TestCheckCompletionGate(t *testing.T) {
	RegisterTestingT(t)

	s := &session.Session{Token: "test", Identity: session.Identity{ID: 999}}

	t.Run("ungated stages should always pass", func(t *testing.T) {
		Expect(checkCompletionGate(&Task{WorkType: WorkTypeCustomerDataGathering, RegisteredCustomerID: 100}, s)).To(BeNil())
		Expect(checkCompletionGate(&Task{WorkType: WorkTypeMeterInstallation, RegisteredCustomerID: 100}, s)).To(BeNil())
	})

	t.Run("finance registration should require both finance documents", func(t *testing.T) {
		defer resetGateStubs()
		docs := &document.AdditionalDocument{RegisteredCustomerID: 100}
		document.FindDocumentsByCustomerFunc = func(customerID types.ID, s *session.Session) (*document.AdditionalDocument, error) {
			return docs, nil
		}

		gate := &Task{WorkType: WorkTypeFinanceRegistration, RegisteredCustomerID: 100}
		err := checkCompletionGate(gate, s)
		Expect(err).To(BeAssignableToTypeOf(&bizerror.ErrDocumentsRequired{}))

		docs.FinanceQuotationDocument = "http://files/quotation.pdf"
		Expect(checkCompletionGate(gate, s)).ToNot(BeNil())

		docs.FinanceDigitalApproval = "http://files/approval.pdf"
		Expect(checkCompletionGate(gate, s)).To(BeNil())
	})

	t.Run("complete registration should require the four registration documents", func(t *testing.T) {
		defer resetGateStubs()
		docs := &document.AdditionalDocument{RegisteredCustomerID: 100,
			ApplicationForm: "a", FeasibilityForm: "b", EtokenDocument: "c"}
		document.FindDocumentsByCustomerFunc = func(customerID types.ID, s *session.Session) (*document.AdditionalDocument, error) {
			return docs, nil
		}

		gate := &Task{WorkType: WorkTypeCompleteRegistration, RegisteredCustomerID: 100}
		Expect(checkCompletionGate(gate, s)).To(BeAssignableToTypeOf(&bizerror.ErrDocumentsRequired{}))

		docs.NetMeteringDocument = "d"
		Expect(checkCompletionGate(gate, s)).To(BeNil())
	})

	t.Run("document gates should fail when the customer has no documents at all", func(t *testing.T) {
		defer resetGateStubs()
		document.FindDocumentsByCustomerFunc = func(customerID types.ID, s *session.Session) (*document.AdditionalDocument, error) {
			return nil, nil
		}

		for _, workType := range []WorkType{WorkTypeFinanceRegistration, WorkTypeCompleteRegistration,
			WorkTypeHardCopyIndentCreation, WorkTypeGenerateBill} {
			err := checkCompletionGate(&Task{WorkType: workType, RegisteredCustomerID: 100}, s)
			Expect(err).To(BeAssignableToTypeOf(&bizerror.ErrDocumentsRequired{}), "gate for %s", workType)
		}
	})

	t.Run("payment collection approval should require submitted proofs", func(t *testing.T) {
		defer resetGateStubs()
		log := &transaction.TransactionLog{RegisteredCustomerID: 100,
			AmountSubmittedDetails: "[]", AmountSubmittedImagesURL: "[]"}
		transaction.FindTransactionLogByCustomerFunc = func(customerID types.ID, s *session.Session) (*transaction.TransactionLog, error) {
			return log, nil
		}

		gate := &Task{WorkType: WorkTypeApprovalOfPaymentCollection, RegisteredCustomerID: 100}
		Expect(checkCompletionGate(gate, s)).To(BeAssignableToTypeOf(&bizerror.ErrDocumentsRequired{}))

		log.AmountSubmittedDetails = `["UPI ref 123"]`
		log.AmountSubmittedImagesURL = `["http://files/proof.jpg"]`
		Expect(checkCompletionGate(gate, s)).To(BeNil())
	})

	t.Run("plant installation should require the recorded installation details", func(t *testing.T) {
		defer resetGateStubs()
		installation := &plant.PlantInstallation{RegisteredCustomerID: 100}
		plant.FindPlantInstallationByCustomerFunc = func(customerID types.ID, s *session.Session) (*plant.PlantInstallation, error) {
			return installation, nil
		}

		gate := &Task{WorkType: WorkTypePlantInstallation, RegisteredCustomerID: 100}
		Expect(checkCompletionGate(gate, s)).To(BeAssignableToTypeOf(&bizerror.ErrDocumentsRequired{}))

		now := types.CurrentTimestamp()
		installation.DateOfInstallation = &now
		installation.PhotoTakerEmployeeID = 7
		Expect(checkCompletionGate(gate, s)).To(BeNil())
	})
}

func resetGateStubs() {
	document.FindDocumentsByCustomerFunc = document.FindDocumentsByCustomer
	transaction.FindTransactionLogByCustomerFunc = transaction.FindTransactionLogByCustomer
	plant.FindPlantInstallationByCustomerFunc = plant.FindPlantInstallationByCustomer
}

package task

import (
	"solarflow/bizerror"
	"solarflow/domain/document"
	"solarflow/domain/plant"
	"solarflow/domain/transaction"
	"solarflow/session"
)

// Some stages may not be completed until the supporting records exist. Each
// gate inspects the customer's documents, payments or installation details and
// returns ErrDocumentsRequired when something is still missing.
type completionGate func(t *Task, s *session.Session) error

var completionGates = map[WorkType]completionGate{
	WorkTypeFinanceRegistration:         financeDocumentsGate,
	WorkTypeCompleteRegistration:        registrationDocumentsGate,
	WorkTypeHardCopyIndentCreation:      indentDocumentGate,
	WorkTypeGenerateBill:                paybillDocumentGate,
	WorkTypeApprovalOfPaymentCollection: paymentProofGate,
	WorkTypePlantInstallation:           plantInstallationGate,
}

func checkCompletionGate(t *Task, s *session.Session) error {
	gate, found := completionGates[t.WorkType]
	if !found {
		return nil
	}
	return gate(t, s)
}

func financeDocumentsGate(t *Task, s *session.Session) error {
	docs, err := document.FindDocumentsByCustomerFunc(t.RegisteredCustomerID, s)
	if err != nil {
		return err
	}
	if docs == nil || docs.FinanceQuotationDocument == "" || docs.FinanceDigitalApproval == "" {
		return &bizerror.ErrDocumentsRequired{
			Message: "finance quotation document and finance digital approval are required"}
	}
	return nil
}

func registrationDocumentsGate(t *Task, s *session.Session) error {
	docs, err := document.FindDocumentsByCustomerFunc(t.RegisteredCustomerID, s)
	if err != nil {
		return err
	}
	if docs == nil || docs.ApplicationForm == "" || docs.FeasibilityForm == "" ||
		docs.EtokenDocument == "" || docs.NetMeteringDocument == "" {
		return &bizerror.ErrDocumentsRequired{
			Message: "application form, feasibility form, etoken document and net metering document are required"}
	}
	return nil
}

func indentDocumentGate(t *Task, s *session.Session) error {
	docs, err := document.FindDocumentsByCustomerFunc(t.RegisteredCustomerID, s)
	if err != nil {
		return err
	}
	if docs == nil || docs.IndentDocument == "" {
		return &bizerror.ErrDocumentsRequired{Message: "indent document is required"}
	}
	return nil
}

func paybillDocumentGate(t *Task, s *session.Session) error {
	docs, err := document.FindDocumentsByCustomerFunc(t.RegisteredCustomerID, s)
	if err != nil {
		return err
	}
	if docs == nil || docs.PaybillDocument == "" {
		return &bizerror.ErrDocumentsRequired{Message: "paybill document is required"}
	}
	return nil
}

func paymentProofGate(t *Task, s *session.Session) error {
	log, err := transaction.FindTransactionLogByCustomerFunc(t.RegisteredCustomerID, s)
	if err != nil {
		return err
	}
	if log == nil || !log.HasPaymentProof() {
		return &bizerror.ErrDocumentsRequired{Message: "payment proof details and images are required"}
	}
	return nil
}

func plantInstallationGate(t *Task, s *session.Session) error {
	installation, err := plant.FindPlantInstallationByCustomerFunc(t.RegisteredCustomerID, s)
	if err != nil {
		return err
	}
	if installation == nil || !installation.IsComplete() {
		return &bizerror.ErrDocumentsRequired{
			Message: "installation date and photo taker are required"}
	}
	return nil
}

package document

import (
	"solarflow/idgen"
	"solarflow/persistence"
	"solarflow/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

// AdditionalDocument holds the uploaded document references of one customer.
// Completing some task stages is blocked until specific columns are filled.
type AdditionalDocument struct {
	ID types.ID `json:"id" gorm:"primary_key"`

	RegisteredCustomerID types.ID `json:"registeredCustomerId" gorm:"unique_index:uni_document_customer"`

	ApplicationForm     string `json:"applicationForm"`
	FeasibilityForm     string `json:"feasibilityForm"`
	EtokenDocument      string `json:"etokenDocument"`
	NetMeteringDocument string `json:"netMeteringDocument"`

	FinanceQuotationDocument string `json:"financeQuotationDocument"`
	FinanceDigitalApproval   string `json:"financeDigitalApproval"`

	IndentDocument  string `json:"indentDocument"`
	PaybillDocument string `json:"paybillDocument"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
	UpdateTime types.Timestamp `json:"updateTime" sql:"type:DATETIME(6) NOT NULL"`
}

type DocumentPatch struct {
	RegisteredCustomerID types.ID `json:"registeredCustomerId" binding:"required"`

	ApplicationForm     string `json:"applicationForm"`
	FeasibilityForm     string `json:"feasibilityForm"`
	EtokenDocument      string `json:"etokenDocument"`
	NetMeteringDocument string `json:"netMeteringDocument"`

	FinanceQuotationDocument string `json:"financeQuotationDocument"`
	FinanceDigitalApproval   string `json:"financeDigitalApproval"`

	IndentDocument  string `json:"indentDocument"`
	PaybillDocument string `json:"paybillDocument"`
}

var (
	documentIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	SaveDocumentsFunc           = SaveDocuments
	FindDocumentsByCustomerFunc = FindDocumentsByCustomer
)

// SaveDocuments updates the customer's document row, creating it on first
// upload. Empty patch fields leave the stored value untouched.
func SaveDocuments(p DocumentPatch, s *session.Session) (*AdditionalDocument, error) {
	var r AdditionalDocument
	err := persistence.ActiveDataSourceManager.GormDB(s.Context).Transaction(func(tx *gorm.DB) error {
		err := tx.Where(&AdditionalDocument{RegisteredCustomerID: p.RegisteredCustomerID}).First(&r).Error
		if gorm.IsRecordNotFoundError(err) {
			now := types.CurrentTimestamp()
			r = AdditionalDocument{ID: idgen.NextID(documentIdWorker), RegisteredCustomerID: p.RegisteredCustomerID,
				CreateTime: now, UpdateTime: now}
			applyPatch(&r, &p)
			return tx.Create(&r).Error
		}
		if err != nil {
			return err
		}
		applyPatch(&r, &p)
		r.UpdateTime = types.CurrentTimestamp()
		return tx.Save(&r).Error
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func FindDocumentsByCustomer(customerID types.ID, s *session.Session) (*AdditionalDocument, error) {
	var r AdditionalDocument
	err := persistence.ActiveDataSourceManager.GormDB(s.Context).
		Where(&AdditionalDocument{RegisteredCustomerID: customerID}).First(&r).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func applyPatch(r *AdditionalDocument, p *DocumentPatch) {
	if p.ApplicationForm != "" {
		r.ApplicationForm = p.ApplicationForm
	}
	if p.FeasibilityForm != "" {
		r.FeasibilityForm = p.FeasibilityForm
	}
	if p.EtokenDocument != "" {
		r.EtokenDocument = p.EtokenDocument
	}
	if p.NetMeteringDocument != "" {
		r.NetMeteringDocument = p.NetMeteringDocument
	}
	if p.FinanceQuotationDocument != "" {
		r.FinanceQuotationDocument = p.FinanceQuotationDocument
	}
	if p.FinanceDigitalApproval != "" {
		r.FinanceDigitalApproval = p.FinanceDigitalApproval
	}
	if p.IndentDocument != "" {
		r.IndentDocument = p.IndentDocument
	}
	if p.PaybillDocument != "" {
		r.PaybillDocument = p.PaybillDocument
	}
}

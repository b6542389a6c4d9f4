package transaction

import (
	"encoding/json"
	"solarflow/idgen"
	"solarflow/persistence"
	"solarflow/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

// TransactionLog tracks the money side of one customer: the agreed total, the
// amount paid so far and the submitted payment proofs (JSON arrays).
type TransactionLog struct {
	ID types.ID `json:"id" gorm:"primary_key"`

	RegisteredCustomerID types.ID `json:"registeredCustomerId" gorm:"unique_index:uni_transaction_customer"`

	TotalAmount float64 `json:"totalAmount"`
	PaidAmount  float64 `json:"paidAmount"`

	AmountSubmittedDetails   string `json:"amountSubmittedDetails" sql:"type:TEXT"`
	AmountSubmittedImagesURL string `json:"amountSubmittedImagesUrl" sql:"type:TEXT"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
	UpdateTime types.Timestamp `json:"updateTime" sql:"type:DATETIME(6) NOT NULL"`
}

type PaymentProof struct {
	RegisteredCustomerID types.ID `json:"registeredCustomerId" binding:"required"`

	Detail   string  `json:"detail" binding:"required"`
	ImageURL string  `json:"imageUrl" binding:"required"`
	Amount   float64 `json:"amount"`
}

var (
	transactionIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	CreateTransactionLogFunc         = CreateTransactionLog
	FindTransactionLogByCustomerFunc = FindTransactionLogByCustomer
	AppendPaymentProofFunc           = AppendPaymentProof
)

func CreateTransactionLog(customerID types.ID, totalAmount, paidAmount float64, s *session.Session) (*TransactionLog, error) {
	now := types.CurrentTimestamp()
	r := TransactionLog{ID: idgen.NextID(transactionIdWorker), RegisteredCustomerID: customerID,
		TotalAmount: totalAmount, PaidAmount: paidAmount,
		AmountSubmittedDetails: "[]", AmountSubmittedImagesURL: "[]",
		CreateTime: now, UpdateTime: now}
	if err := persistence.ActiveDataSourceManager.GormDB(s.Context).Create(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func FindTransactionLogByCustomer(customerID types.ID, s *session.Session) (*TransactionLog, error) {
	var r TransactionLog
	err := persistence.ActiveDataSourceManager.GormDB(s.Context).
		Where(&TransactionLog{RegisteredCustomerID: customerID}).First(&r).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// AppendPaymentProof records one payment proof entry on the customer's
// transaction log and bumps the paid amount.
func AppendPaymentProof(p PaymentProof, s *session.Session) (*TransactionLog, error) {
	var r TransactionLog
	err := persistence.ActiveDataSourceManager.GormDB(s.Context).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(&TransactionLog{RegisteredCustomerID: p.RegisteredCustomerID}).First(&r).Error; err != nil {
			return err
		}

		details, err := appendJSONArray(r.AmountSubmittedDetails, p.Detail)
		if err != nil {
			return err
		}
		images, err := appendJSONArray(r.AmountSubmittedImagesURL, p.ImageURL)
		if err != nil {
			return err
		}

		r.AmountSubmittedDetails = details
		r.AmountSubmittedImagesURL = images
		r.PaidAmount += p.Amount
		r.UpdateTime = types.CurrentTimestamp()
		return tx.Save(&r).Error
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// HasPaymentProof reports whether both proof arrays carry at least one entry.
func (t *TransactionLog) HasPaymentProof() bool {
	return jsonArrayLen(t.AmountSubmittedDetails) > 0 && jsonArrayLen(t.AmountSubmittedImagesURL) > 0
}

func appendJSONArray(raw, value string) (string, error) {
	entries := []string{}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &entries); err != nil {
			return "", err
		}
	}
	entries = append(entries, value)
	bytes, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func jsonArrayLen(raw string) int {
	entries := []json.RawMessage{}
	if raw == "" {
		return 0
	}
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return 0
	}
	return len(entries)
}

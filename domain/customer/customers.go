package customer

import (
	"solarflow/bizerror"
	"solarflow/idgen"
	"solarflow/persistence"
	"solarflow/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

const (
	PaymentModeCash    = "Cash"
	PaymentModeOnline  = "Online"
	PaymentModeFinance = "Finance"
	PaymentModeCheque  = "Cheque"
	PaymentModeUPI     = "UPI"

	RequirementRequired    = "Required"
	RequirementNotRequired = "Not Required"

	ChoiceYes = "Yes"
	ChoiceNo  = "No"

	ApplicationStatusDraft = "DRAFT"
)

// RegisteredCustomer is the solar-installation applicant. The boolean-like
// requirement fields drive which tasks get seeded and which workflow branches
// apply later on.
type RegisteredCustomer struct {
	ID types.ID `json:"id" gorm:"primary_key"`

	ApplicantName string `json:"applicantName"`
	MobileNumber  string `json:"mobileNumber" gorm:"unique_index:uni_customer_mobile"`
	EmailID       string `json:"emailId"`

	SolarPlantType string  `json:"solarPlantType"`
	PlantCategory  string  `json:"plantCategory"`
	PlantSizeKw    float64 `json:"plantSizeKw"`
	PlantPrice     float64 `json:"plantPrice"`

	District            string `json:"district"`
	InstallationPincode string `json:"installationPincode"`
	SiteAddress         string `json:"siteAddress"`
	MeterType           string `json:"meterType"`

	NameCorrectionRequired  string `json:"nameCorrectionRequired"`
	CorrectName             string `json:"correctName"`
	LoadEnhancementRequired string `json:"loadEnhancementRequired"`
	CurrentLoad             string `json:"currentLoad"`
	RequiredLoad            string `json:"requiredLoad"`
	CotRequired             string `json:"cotRequired"`
	CotType                 string `json:"cotType"`

	PaymentMode            string  `json:"paymentMode"`
	AdvancePaymentMode     string  `json:"advancePaymentMode"`
	MarginMoney            float64 `json:"marginMoney"`
	SpecialFinanceRequired string  `json:"specialFinanceRequired"`

	ApplicationStatus string `json:"applicationStatus"`

	CreatedBy  types.ID        `json:"createdBy"`
	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
	UpdateTime types.Timestamp `json:"updateTime" sql:"type:DATETIME(6) NOT NULL"`
}

type CustomerCreation struct {
	ApplicantName string `json:"applicantName" binding:"required"`
	MobileNumber  string `json:"mobileNumber" binding:"required"`
	EmailID       string `json:"emailId"`

	SolarPlantType string  `json:"solarPlantType" binding:"required"`
	PlantCategory  string  `json:"plantCategory" binding:"required"`
	PlantSizeKw    float64 `json:"plantSizeKw" binding:"required"`
	PlantPrice     float64 `json:"plantPrice"`

	District            string `json:"district" binding:"required"`
	InstallationPincode string `json:"installationPincode" binding:"required"`
	SiteAddress         string `json:"siteAddress"`
	MeterType           string `json:"meterType"`

	NameCorrectionRequired  string `json:"nameCorrectionRequired"`
	CorrectName             string `json:"correctName"`
	LoadEnhancementRequired string `json:"loadEnhancementRequired"`
	CurrentLoad             string `json:"currentLoad"`
	RequiredLoad            string `json:"requiredLoad"`
	CotRequired             string `json:"cotRequired"`
	CotType                 string `json:"cotType"`

	PaymentMode            string  `json:"paymentMode"`
	AdvancePaymentMode     string  `json:"advancePaymentMode"`
	MarginMoney            float64 `json:"marginMoney"`
	SpecialFinanceRequired string  `json:"specialFinanceRequired"`
}

type CustomerQuery struct {
	District string `json:"district" form:"district"`
	Status   string `json:"status" form:"status"`
	Search   string `json:"search" form:"search"`
}

var (
	customerIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	CreateCustomerFunc = CreateCustomer
	DetailCustomerFunc = DetailCustomer
	QueryCustomersFunc = QueryCustomers
)

func CreateCustomer(c CustomerCreation, s *session.Session) (*RegisteredCustomer, error) {
	now := types.CurrentTimestamp()
	r := RegisteredCustomer{
		ID: idgen.NextID(customerIdWorker),

		ApplicantName: c.ApplicantName,
		MobileNumber:  c.MobileNumber,
		EmailID:       c.EmailID,

		SolarPlantType: c.SolarPlantType,
		PlantCategory:  c.PlantCategory,
		PlantSizeKw:    c.PlantSizeKw,
		PlantPrice:     c.PlantPrice,

		District:            c.District,
		InstallationPincode: c.InstallationPincode,
		SiteAddress:         c.SiteAddress,
		MeterType:           defaultIfEmpty(c.MeterType, "Electric Meter"),

		NameCorrectionRequired:  defaultIfEmpty(c.NameCorrectionRequired, RequirementNotRequired),
		CorrectName:             c.CorrectName,
		LoadEnhancementRequired: defaultIfEmpty(c.LoadEnhancementRequired, RequirementNotRequired),
		CurrentLoad:             c.CurrentLoad,
		RequiredLoad:            c.RequiredLoad,
		CotRequired:             defaultIfEmpty(c.CotRequired, ChoiceNo),
		CotType:                 c.CotType,

		PaymentMode:            defaultIfEmpty(c.PaymentMode, PaymentModeCash),
		AdvancePaymentMode:     defaultIfEmpty(c.AdvancePaymentMode, PaymentModeCash),
		MarginMoney:            c.MarginMoney,
		SpecialFinanceRequired: defaultIfEmpty(c.SpecialFinanceRequired, ChoiceNo),

		ApplicationStatus: ApplicationStatusDraft,

		CreatedBy:  s.Identity.ID,
		CreateTime: now,
		UpdateTime: now,
	}

	err := persistence.ActiveDataSourceManager.GormDB(s.Context).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&RegisteredCustomer{}).Where(&RegisteredCustomer{MobileNumber: c.MobileNumber}).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return bizerror.ErrConflict
		}
		return tx.Create(&r).Error
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func DetailCustomer(id types.ID, s *session.Session) (*RegisteredCustomer, error) {
	var r RegisteredCustomer
	if err := persistence.ActiveDataSourceManager.GormDB(s.Context).
		Where(&RegisteredCustomer{ID: id}).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func QueryCustomers(q CustomerQuery, s *session.Session) ([]RegisteredCustomer, error) {
	records := []RegisteredCustomer{}
	db := persistence.ActiveDataSourceManager.GormDB(s.Context)

	query := db.Order("create_time DESC")
	if q.District != "" {
		query = query.Where(&RegisteredCustomer{District: q.District})
	}
	if q.Status != "" {
		query = query.Where(&RegisteredCustomer{ApplicationStatus: q.Status})
	}
	if q.Search != "" {
		query = query.Where("applicant_name like ? OR mobile_number like ?", "%"+q.Search+"%", "%"+q.Search+"%")
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func defaultIfEmpty(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

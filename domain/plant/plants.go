package plant

import (
	"solarflow/idgen"
	"solarflow/persistence"
	"solarflow/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

// PlantInstallation records the on-site installation details of one customer.
// Completing the plant_installation task requires this record to be filled.
type PlantInstallation struct {
	ID types.ID `json:"id" gorm:"primary_key"`

	RegisteredCustomerID types.ID `json:"registeredCustomerId" gorm:"unique_index:uni_plant_customer"`

	DateOfInstallation   *types.Timestamp `json:"dateOfInstallation" sql:"type:DATETIME(6)"`
	PhotoTakerEmployeeID types.ID         `json:"photoTakerEmployeeId"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
	UpdateTime types.Timestamp `json:"updateTime" sql:"type:DATETIME(6) NOT NULL"`
}

type PlantInstallationRecording struct {
	RegisteredCustomerID types.ID         `json:"registeredCustomerId" binding:"required"`
	DateOfInstallation   *types.Timestamp `json:"dateOfInstallation" binding:"required"`
	PhotoTakerEmployeeID types.ID         `json:"photoTakerEmployeeId" binding:"required"`
}

var (
	plantIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	SavePlantInstallationFunc           = SavePlantInstallation
	FindPlantInstallationByCustomerFunc = FindPlantInstallationByCustomer
)

func SavePlantInstallation(rec PlantInstallationRecording, s *session.Session) (*PlantInstallation, error) {
	var r PlantInstallation
	err := persistence.ActiveDataSourceManager.GormDB(s.Context).Transaction(func(tx *gorm.DB) error {
		err := tx.Where(&PlantInstallation{RegisteredCustomerID: rec.RegisteredCustomerID}).First(&r).Error
		if gorm.IsRecordNotFoundError(err) {
			now := types.CurrentTimestamp()
			r = PlantInstallation{ID: idgen.NextID(plantIdWorker), RegisteredCustomerID: rec.RegisteredCustomerID,
				DateOfInstallation: rec.DateOfInstallation, PhotoTakerEmployeeID: rec.PhotoTakerEmployeeID,
				CreateTime: now, UpdateTime: now}
			return tx.Create(&r).Error
		}
		if err != nil {
			return err
		}
		r.DateOfInstallation = rec.DateOfInstallation
		r.PhotoTakerEmployeeID = rec.PhotoTakerEmployeeID
		r.UpdateTime = types.CurrentTimestamp()
		return tx.Save(&r).Error
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func FindPlantInstallationByCustomer(customerID types.ID, s *session.Session) (*PlantInstallation, error) {
	var r PlantInstallation
	err := persistence.ActiveDataSourceManager.GormDB(s.Context).
		Where(&PlantInstallation{RegisteredCustomerID: customerID}).First(&r).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// IsComplete reports whether the details required before the installation task
// may be completed are present.
func (p *PlantInstallation) IsComplete() bool {
	return p.DateOfInstallation != nil && p.PhotoTakerEmployeeID != 0
}

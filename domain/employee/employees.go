package employee

import (
	"crypto/sha256"
	"fmt"
	"solarflow/bizerror"
	"solarflow/idgen"
	"solarflow/persistence"
	"solarflow/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/sony/sonyflake"
)

const (
	RoleSaleExecutive        = "Sale Executive"
	RoleSystemAdmin          = "System Admin"
	RoleElectrician          = "Electrician"
	RoleAccountant           = "Accountant"
	RoleMasterAdmin          = "Master Admin"
	RoleOperationManager     = "Operation Manager"
	RoleTechnician           = "Technician"
	RoleSFDCAdmin            = "SFDC Admin"
	RoleTechnicalAssistant   = "Technical Assistant"
	RoleElectricianAssistant = "Electrician Assistant"
)

var Roles = []string{
	RoleSaleExecutive, RoleSystemAdmin, RoleElectrician, RoleAccountant, RoleMasterAdmin,
	RoleOperationManager, RoleTechnician, RoleSFDCAdmin, RoleTechnicalAssistant, RoleElectricianAssistant,
}

func IsValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

type Employee struct {
	ID types.ID `json:"id" gorm:"primary_key"`

	Name         string `json:"name" binding:"required"`
	PhoneNumber  string `json:"phoneNumber" binding:"required" gorm:"unique_index:uni_employee_phone"`
	District     string `json:"district"`
	EmployeeRole string `json:"employeeRole" binding:"required"`

	Secret string `json:"-"`

	CreateTime types.Timestamp `json:"createTime" sql:"type:DATETIME(6) NOT NULL"`
	UpdateTime types.Timestamp `json:"updateTime" sql:"type:DATETIME(6) NOT NULL"`
}

type EmployeeCreation struct {
	Name         string `json:"name" binding:"required"`
	PhoneNumber  string `json:"phoneNumber" binding:"required"`
	District     string `json:"district"`
	EmployeeRole string `json:"employeeRole" binding:"required"`
	Password     string `json:"password" binding:"required"`
}

type EmployeeQuery struct {
	EmployeeRole string `json:"employeeRole" form:"employeeRole"`
	District     string `json:"district" form:"district"`
}

var (
	employeeIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	CreateEmployeeFunc = CreateEmployee
	DetailEmployeeFunc = DetailEmployee
	QueryEmployeesFunc = QueryEmployees

	FindByRoleFunc            = FindByRole
	FindByRoleAndDistrictFunc = FindByRoleAndDistrict
	FindByPhoneFunc           = FindByPhone
	FindSingleByRoleFunc      = FindSingleByRole
)

func HashSha256(raw string) string {
	h := sha256.New()
	h.Write([]byte(raw))
	return fmt.Sprintf("%x", h.Sum(nil))
}

func CreateEmployee(c EmployeeCreation, s *session.Session) (*Employee, error) {
	if !IsValidRole(c.EmployeeRole) {
		return nil, &bizerror.ErrBadParam{Cause: fmt.Errorf("invalid employee role '%s'", c.EmployeeRole)}
	}

	now := types.CurrentTimestamp()
	r := Employee{ID: idgen.NextID(employeeIdWorker), Name: c.Name, PhoneNumber: c.PhoneNumber,
		District: c.District, EmployeeRole: c.EmployeeRole, Secret: HashSha256(c.Password),
		CreateTime: now, UpdateTime: now}

	err := persistence.ActiveDataSourceManager.GormDB(s.Context).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Employee{}).Where(&Employee{PhoneNumber: c.PhoneNumber}).Count(&count).Error; err != nil {
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

func DetailEmployee(id types.ID, s *session.Session) (*Employee, error) {
	var r Employee
	if err := persistence.ActiveDataSourceManager.GormDB(s.Context).Where(&Employee{ID: id}).First(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func QueryEmployees(q EmployeeQuery, s *session.Session) ([]Employee, error) {
	if q.EmployeeRole != "" && !IsValidRole(q.EmployeeRole) {
		return []Employee{}, nil
	}

	records := []Employee{}
	db := persistence.ActiveDataSourceManager.GormDB(s.Context)
	query := db.Order("id ASC")
	if q.EmployeeRole != "" {
		query = query.Where(&Employee{EmployeeRole: q.EmployeeRole})
	}
	if q.District != "" {
		query = query.Where(&Employee{District: q.District})
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func FindByRole(role string, s *session.Session) ([]Employee, error) {
	return QueryEmployeesFunc(EmployeeQuery{EmployeeRole: role}, s)
}

func FindByRoleAndDistrict(role, district string, s *session.Session) ([]Employee, error) {
	if district == "" {
		return []Employee{}, nil
	}
	return QueryEmployeesFunc(EmployeeQuery{EmployeeRole: role, District: district}, s)
}

func FindByPhone(phone string, s *session.Session) (*Employee, error) {
	if phone == "" {
		return nil, nil
	}
	var r Employee
	err := persistence.ActiveDataSourceManager.GormDB(s.Context).Where(&Employee{PhoneNumber: phone}).First(&r).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func FindSingleByRole(role string, s *session.Session) (*Employee, error) {
	if !IsValidRole(role) {
		return nil, nil
	}
	var r Employee
	err := persistence.ActiveDataSourceManager.GormDB(s.Context).Where(&Employee{EmployeeRole: role}).
		Order("id ASC").First(&r).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

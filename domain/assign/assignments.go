package assign

import (
	"solarflow/domain/customer"
	"solarflow/domain/employee"
	"solarflow/session"

	"github.com/fundwit/go-commons/types"
	"github.com/sirupsen/logrus"
)

// Role assignment configuration. Some roles are held by a specific person
// identified by phone number, with per-district overrides for the operation
// managers. Changing who holds a seat means changing a phone number here.
var (
	SystemAdminPhone = "7275094145"

	OperationManagerDistrictPhones = map[string]string{
		"Varanasi": "7905692846",
	}
	OperationManagerDefaultPhone = "9795108581"
)

type resolver func(cust *customer.RegisteredCustomer, s *session.Session) (types.ID, error)

var roleResolvers = map[string]resolver{
	employee.RoleSaleExecutive:      resolveSaleExecutive,
	employee.RoleSystemAdmin:        resolveSystemAdmin,
	employee.RoleOperationManager:   resolveOperationManager,
	employee.RoleElectrician:        resolveElectrician,
	employee.RoleAccountant:         anyHolderResolver(employee.RoleAccountant),
	employee.RoleTechnician:         anyHolderResolver(employee.RoleTechnician),
	employee.RoleTechnicalAssistant: anyHolderResolver(employee.RoleTechnicalAssistant),
	employee.RoleMasterAdmin:        singletonResolver(employee.RoleMasterAdmin),
	employee.RoleSFDCAdmin:          singletonResolver(employee.RoleSFDCAdmin),
}

var ResolveAssigneeFunc = ResolveAssignee

// ResolveAssignee maps a required role to a concrete employee for the given
// customer. A zero ID with a nil error means nobody holds the role right now,
// which the caller treats as a non-fatal branch failure.
func ResolveAssignee(role string, cust *customer.RegisteredCustomer, s *session.Session) (types.ID, error) {
	r, found := roleResolvers[role]
	if !found {
		logrus.Warnf("no assignment rule for role '%s', customer %v", role, cust.ID)
		return 0, nil
	}
	return r(cust, s)
}

// The sale executive seat belongs to whoever registered the customer. When
// that record is missing the acting user takes it.
func resolveSaleExecutive(cust *customer.RegisteredCustomer, s *session.Session) (types.ID, error) {
	if cust != nil && cust.CreatedBy != 0 {
		return cust.CreatedBy, nil
	}
	return s.Identity.ID, nil
}

func resolveSystemAdmin(cust *customer.RegisteredCustomer, s *session.Session) (types.ID, error) {
	found, err := employee.FindByPhoneFunc(SystemAdminPhone, s)
	if err != nil {
		return 0, err
	}
	if found != nil {
		return found.ID, nil
	}
	return anyHolder(employee.RoleSystemAdmin, s)
}

// Operation managers are regional: a configured phone per district, a default
// phone for everywhere else, and any holder of the role as the last resort.
func resolveOperationManager(cust *customer.RegisteredCustomer, s *session.Session) (types.ID, error) {
	district := ""
	if cust != nil {
		district = cust.District
	}
	if phone, ok := OperationManagerDistrictPhones[district]; ok {
		found, err := employee.FindByPhoneFunc(phone, s)
		if err != nil {
			return 0, err
		}
		if found != nil {
			return found.ID, nil
		}
	}
	found, err := employee.FindByPhoneFunc(OperationManagerDefaultPhone, s)
	if err != nil {
		return 0, err
	}
	if found != nil {
		return found.ID, nil
	}
	return anyHolder(employee.RoleOperationManager, s)
}

func resolveElectrician(cust *customer.RegisteredCustomer, s *session.Session) (types.ID, error) {
	if cust != nil && cust.District != "" {
		candidates, err := employee.FindByRoleAndDistrictFunc(employee.RoleElectrician, cust.District, s)
		if err != nil {
			return 0, err
		}
		if len(candidates) > 0 {
			return candidates[0].ID, nil
		}
	}
	return anyHolder(employee.RoleElectrician, s)
}

func anyHolderResolver(role string) resolver {
	return func(cust *customer.RegisteredCustomer, s *session.Session) (types.ID, error) {
		return anyHolder(role, s)
	}
}

func singletonResolver(role string) resolver {
	return func(cust *customer.RegisteredCustomer, s *session.Session) (types.ID, error) {
		found, err := employee.FindSingleByRoleFunc(role, s)
		if err != nil {
			return 0, err
		}
		if found == nil {
			return 0, nil
		}
		return found.ID, nil
	}
}

func anyHolder(role string, s *session.Session) (types.ID, error) {
	candidates, err := employee.FindByRoleFunc(role, s)
	if err != nil {
		return 0, err
	}
	if len(candidates) == 0 {
		return 0, nil
	}
	return candidates[0].ID, nil
}

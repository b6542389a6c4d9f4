package flow

import (
	"solarflow/domain/employee"
	"solarflow/domain/task"
)

// Precondition decides whether a successor stage may start now, judged against
// every task currently on record for the customer. A false result skips the
// branch without error so a later completion can pick it up again.
type Precondition func(customerTasks []task.Task) bool

type Successor struct {
	WorkType     task.WorkType
	RequiredRole string
	Precondition Precondition
}

// WorkflowGraph is the static pipeline: for each completed work type, the
// stages to spawn next. An empty successor list marks a terminal stage. The
// graph is fixed at startup and never mutated.
var WorkflowGraph = map[task.WorkType][]Successor{
	task.WorkTypeCustomerDataGathering: {},

	task.WorkTypeCollectRemainingAmount: {
		{WorkType: task.WorkTypeApprovalOfPaymentCollection, RequiredRole: employee.RoleMasterAdmin},
	},
	task.WorkTypeApprovalOfPaymentCollection: {
		{WorkType: task.WorkTypeGenerateBill, RequiredRole: employee.RoleAccountant},
	},

	task.WorkTypeCompleteRegistration: {
		{WorkType: task.WorkTypeHardCopyIndentCreation, RequiredRole: employee.RoleSystemAdmin,
			Precondition: hardCopyIndentReady},
		{WorkType: task.WorkTypeApprovalOfPlantInstallation, RequiredRole: employee.RoleMasterAdmin},
	},
	task.WorkTypeApprovalOfPlantInstallation: {
		{WorkType: task.WorkTypePlantInstallation, RequiredRole: employee.RoleOperationManager},
	},

	task.WorkTypeCotRequest: {
		{WorkType: task.WorkTypeHardCopyIndentCreation, RequiredRole: employee.RoleSystemAdmin,
			Precondition: hardCopyIndentReady},
	},
	task.WorkTypeLoadRequest: {
		{WorkType: task.WorkTypeHardCopyIndentCreation, RequiredRole: employee.RoleSystemAdmin,
			Precondition: hardCopyIndentReady},
	},
	task.WorkTypeNameCorrectionRequest: {
		{WorkType: task.WorkTypeHardCopyIndentCreation, RequiredRole: employee.RoleSystemAdmin,
			Precondition: hardCopyIndentReady},
	},

	task.WorkTypeFinanceRegistration: {
		{WorkType: task.WorkTypeSubmitFinanceToBank, RequiredRole: employee.RoleSaleExecutive},
	},
	task.WorkTypeSubmitFinanceToBank: {
		{WorkType: task.WorkTypeApprovalOfPaymentCollection, RequiredRole: employee.RoleMasterAdmin},
	},

	task.WorkTypeHardCopyIndentCreation: {
		{WorkType: task.WorkTypeSubmitIndentToElectricalDept, RequiredRole: employee.RoleElectrician},
	},
	task.WorkTypeSubmitIndentToElectricalDept: {
		{WorkType: task.WorkTypeMeterInstallation, RequiredRole: employee.RoleElectrician},
	},

	task.WorkTypeMeterInstallation: {
		{WorkType: task.WorkTypeInspection, RequiredRole: employee.RoleElectrician,
			Precondition: inspectionReady},
	},
	task.WorkTypePlantInstallation: {
		{WorkType: task.WorkTypeTakeInstalledItemPhotos, RequiredRole: employee.RoleTechnician},
	},

	task.WorkTypeTakeInstalledItemPhotos: {
		{WorkType: task.WorkTypeUploadInstalledItemSerialNumber, RequiredRole: employee.RoleSystemAdmin},
	},
	task.WorkTypeUploadInstalledItemSerialNumber: {
		{WorkType: task.WorkTypeInspection, RequiredRole: employee.RoleElectrician,
			Precondition: inspectionReady},
		{WorkType: task.WorkTypeAssignQA, RequiredRole: employee.RoleSFDCAdmin},
	},

	task.WorkTypeInspection: {
		{WorkType: task.WorkTypeApplySubsidy, RequiredRole: employee.RoleSystemAdmin,
			Precondition: applySubsidyReady},
	},
	task.WorkTypeApplySubsidy: {
		{WorkType: task.WorkTypeSubsidyRedemption, RequiredRole: employee.RoleSystemAdmin},
	},
	task.WorkTypeSubsidyRedemption: {
		{WorkType: task.WorkTypeDocumentHandover, RequiredRole: employee.RoleSaleExecutive},
	},
	task.WorkTypeDocumentHandover: {},

	task.WorkTypeAssignQA: {
		{WorkType: task.WorkTypeQualityAssurance, RequiredRole: employee.RoleTechnicalAssistant},
	},
	task.WorkTypeQualityAssurance: {
		{WorkType: task.WorkTypeSubmitWarrantyDocument, RequiredRole: employee.RoleSFDCAdmin},
	},
	task.WorkTypeSubmitWarrantyDocument: {},

	task.WorkTypeGenerateBill: {
		{WorkType: task.WorkTypeCreateCdr, RequiredRole: employee.RoleMasterAdmin},
	},
	task.WorkTypeCreateCdr: {
		{WorkType: task.WorkTypeApplySubsidy, RequiredRole: employee.RoleSystemAdmin,
			Precondition: applySubsidyReady},
	},
}

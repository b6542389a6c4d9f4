package task

import "strings"

// WorkType names one stage of the installation pipeline.
type WorkType string

const (
	WorkTypeCustomerDataGathering  WorkType = "customer_data_gathering"
	WorkTypeCollectRemainingAmount WorkType = "collect_remaining_amount"
	WorkTypeCompleteRegistration   WorkType = "complete_registration"

	WorkTypeCotRequest            WorkType = "cot_request"
	WorkTypeLoadRequest           WorkType = "load_request"
	WorkTypeNameCorrectionRequest WorkType = "name_correction_request"

	WorkTypeFinanceRegistration WorkType = "finance_registration"
	WorkTypeSubmitFinanceToBank WorkType = "submit_finance_to_bank"

	WorkTypeApprovalOfPaymentCollection WorkType = "approval_of_payment_collection"
	WorkTypeApprovalOfPlantInstallation WorkType = "approval_of_plant_installation"

	WorkTypeHardCopyIndentCreation       WorkType = "hard_copy_indent_creation"
	WorkTypeSubmitIndentToElectricalDept WorkType = "submit_indent_to_electrical_department"

	WorkTypeMeterInstallation WorkType = "meter_installation"
	WorkTypePlantInstallation WorkType = "plant_installation"

	WorkTypeGenerateBill WorkType = "generate_bill"
	WorkTypeCreateCdr    WorkType = "create_cdr"

	WorkTypeTakeInstalledItemPhotos         WorkType = "take_installed_item_photos"
	WorkTypeUploadInstalledItemSerialNumber WorkType = "upload_installed_item_serial_number"

	WorkTypeInspection        WorkType = "inspection"
	WorkTypeApplySubsidy      WorkType = "apply_subsidy"
	WorkTypeSubsidyRedemption WorkType = "subsidy_redemption"
	WorkTypeDocumentHandover  WorkType = "document_handover"

	WorkTypeAssignQA               WorkType = "assign_qa"
	WorkTypeQualityAssurance       WorkType = "quality_assurance"
	WorkTypeSubmitWarrantyDocument WorkType = "submit_warranty_document"
)

var AllWorkTypes = []WorkType{
	WorkTypeCustomerDataGathering, WorkTypeCollectRemainingAmount, WorkTypeCompleteRegistration,
	WorkTypeCotRequest, WorkTypeLoadRequest, WorkTypeNameCorrectionRequest,
	WorkTypeFinanceRegistration, WorkTypeSubmitFinanceToBank,
	WorkTypeApprovalOfPaymentCollection, WorkTypeApprovalOfPlantInstallation,
	WorkTypeHardCopyIndentCreation, WorkTypeSubmitIndentToElectricalDept,
	WorkTypeMeterInstallation, WorkTypePlantInstallation,
	WorkTypeGenerateBill, WorkTypeCreateCdr,
	WorkTypeTakeInstalledItemPhotos, WorkTypeUploadInstalledItemSerialNumber,
	WorkTypeInspection, WorkTypeApplySubsidy, WorkTypeSubsidyRedemption, WorkTypeDocumentHandover,
	WorkTypeAssignQA, WorkTypeQualityAssurance, WorkTypeSubmitWarrantyDocument,
}

func (wt WorkType) IsValid() bool {
	for _, known := range AllWorkTypes {
		if known == wt {
			return true
		}
	}
	return false
}

// Words renders the work type for human readable task descriptions.
func (wt WorkType) Words() string {
	return strings.ReplaceAll(string(wt), "_", " ")
}

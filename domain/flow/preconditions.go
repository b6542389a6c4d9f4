package flow

import "solarflow/domain/task"

// hardCopyIndentReady gates the indent stage behind registration completion
// and the conditional correction stages. The correction tasks are only seeded
// when the customer asked for them, so the gate passes vacuously when none
// were ever created.
func hardCopyIndentReady(customerTasks []task.Task) bool {
	if taskExists(customerTasks, task.WorkTypeHardCopyIndentCreation) {
		return false
	}
	if !taskCompleted(customerTasks, task.WorkTypeCompleteRegistration) {
		return false
	}
	conditional := []task.WorkType{task.WorkTypeCotRequest, task.WorkTypeLoadRequest, task.WorkTypeNameCorrectionRequest}
	for _, workType := range conditional {
		for _, t := range customerTasks {
			if t.WorkType == workType && t.Status != task.StatusCompleted {
				return false
			}
		}
	}
	return true
}

// inspectionReady is a fan-in join: the serial-number upload and the meter
// installation must both be complete before inspection starts.
func inspectionReady(customerTasks []task.Task) bool {
	if taskExists(customerTasks, task.WorkTypeInspection) {
		return false
	}
	return taskCompleted(customerTasks, task.WorkTypeUploadInstalledItemSerialNumber) &&
		taskCompleted(customerTasks, task.WorkTypeMeterInstallation)
}

// applySubsidyReady is a fan-in join on the CDR and the inspection.
func applySubsidyReady(customerTasks []task.Task) bool {
	if taskExists(customerTasks, task.WorkTypeApplySubsidy) {
		return false
	}
	return taskCompleted(customerTasks, task.WorkTypeCreateCdr) &&
		taskCompleted(customerTasks, task.WorkTypeInspection)
}

func taskExists(customerTasks []task.Task, workType task.WorkType) bool {
	for _, t := range customerTasks {
		if t.WorkType == workType {
			return true
		}
	}
	return false
}

func taskCompleted(customerTasks []task.Task, workType task.WorkType) bool {
	for _, t := range customerTasks {
		if t.WorkType == workType && t.Status == task.StatusCompleted {
			return true
		}
	}
	return false
}

package bizerror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrUnknownWorkType = errors.New("unknown work type")
)

type BizError interface {
	Respond() *BizErrorDetail
}

type BizErrorDetail struct {
	Status  int
	Code    string
	Message string

	Data  interface{}
	Cause error
}

type ErrBadParam struct {
	Cause error
}

func (e *ErrBadParam) Unwrap() error {
	return e.Cause
}
func (e *ErrBadParam) Error() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "common.bad_param"
}
func (e *ErrBadParam) Respond() *BizErrorDetail {
	message := "common.bad_param"
	if e.Cause != nil {
		message = e.Cause.Error()
	}
	return &BizErrorDetail{Status: http.StatusBadRequest, Code: "common.bad_param", Message: message, Data: nil}
}

// ErrInvalidTransition indicates a task status update which is not a forward
// move along pending -> inprogress -> completed.
type ErrInvalidTransition struct {
	From string
	To   string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("invalid status transition from '%s' to '%s'", e.From, e.To)
}
func (e *ErrInvalidTransition) Respond() *BizErrorDetail {
	return &BizErrorDetail{Status: http.StatusBadRequest, Code: "task.invalid_transition", Message: e.Error(), Data: nil}
}

// ErrDocumentsRequired blocks completing a task until the named customer
// documents have been uploaded.
type ErrDocumentsRequired struct {
	Message string
}

func (e *ErrDocumentsRequired) Error() string {
	return e.Message
}
func (e *ErrDocumentsRequired) Respond() *BizErrorDetail {
	return &BizErrorDetail{Status: http.StatusBadRequest, Code: "task.documents_required", Message: e.Message, Data: nil}
}

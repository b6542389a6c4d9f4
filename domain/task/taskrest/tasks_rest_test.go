package taskrest_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"solarflow/bizerror"
	"solarflow/domain/customer"
	"solarflow/domain/flow"
	"solarflow/domain/task"
	"solarflow/domain/task/taskrest"
	"solarflow/session"
	"solarflow/testinfra"
	"testing"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
)

func TestTasksRestAPI(t *testing.T) {
	RegisterTestingT(t)

	router := gin.New()
	router.Use(bizerror.ErrorHandling())
	taskrest.RegisterTasksRestAPI(router, testinfra.SessionFilter(testinfra.BuildSession(999, "tester", "Sale Executive")))

	ts := types.CurrentTimestamp()
	tsBytes, _ := json.Marshal(ts)
	timeString := string(tsBytes)

	t.Run("should create a task", func(t *testing.T) {
		defer resetTaskRestStubs()
		task.CreateTaskFunc = func(c task.TaskCreation, s *session.Session) (*task.Task, error) {
			Expect(c).To(Equal(task.TaskCreation{RegisteredCustomerID: 100,
				WorkType: task.WorkTypeInspection, AssignedToID: 7}))
			Expect(s.Identity.ID).To(Equal(types.ID(999)))
			return &task.Task{ID: 1, RegisteredCustomerID: 100, WorkType: c.WorkType,
				AssignedToID: 7, Status: task.StatusPending, CreateTime: ts, UpdateTime: ts}, nil
		}

		req := httptest.NewRequest(http.MethodPost, "/v1/tasks",
			bytes.NewReader([]byte(`{"registeredCustomerId":"100","workType":"inspection","assignedToId":"7"}`)))
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusCreated))
		Expect(body).To(MatchJSON(`{"id":"1","registeredCustomerId":"100","workType":"inspection",
			"assignedToId":"7","description":"","status":"pending","assignedToName":"","assignedRole":"",
			"createdBy":"0","createTime":` + timeString + `,"updateTime":` + timeString + `,"completeTime":null}`))
	})

	t.Run("should return 400 for a bad creation body", func(t *testing.T) {
		defer resetTaskRestStubs()
		req := httptest.NewRequest(http.MethodPost, "/v1/tasks", bytes.NewReader([]byte(`bad json`)))
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(body).To(MatchJSON(`{"code":"common.bad_param",
			"message":"invalid character 'b' looking for beginning of value","data":null}`))
	})

	t.Run("should return 409 for a duplicate triple", func(t *testing.T) {
		defer resetTaskRestStubs()
		task.CreateTaskFunc = func(c task.TaskCreation, s *session.Session) (*task.Task, error) {
			return nil, bizerror.ErrConflict
		}

		req := httptest.NewRequest(http.MethodPost, "/v1/tasks",
			bytes.NewReader([]byte(`{"registeredCustomerId":"100","workType":"inspection","assignedToId":"7"}`)))
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusConflict))
		Expect(body).To(MatchJSON(`{"code":"common.conflict","message":"conflict","data":null}`))
	})

	t.Run("should query tasks with filters", func(t *testing.T) {
		defer resetTaskRestStubs()
		task.QueryTasksFunc = func(q task.TaskQuery, s *session.Session) ([]task.Task, error) {
			Expect(q.AssignedToID).To(Equal(types.ID(7)))
			Expect(q.Status).To(Equal(task.StatusPending))
			return []task.Task{}, nil
		}

		req := httptest.NewRequest(http.MethodGet, "/v1/tasks?assignedToId=7&status=pending", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(MatchJSON(`{"list":[],"total":0}`))
	})

	t.Run("should update status without workflow when no completion happened", func(t *testing.T) {
		defer resetTaskRestStubs()
		task.UpdateTaskFunc = func(id types.ID, u task.TaskUpdating, s *session.Session) (*task.Task, bool, error) {
			Expect(id).To(Equal(types.ID(1)))
			Expect(u.Status).To(Equal(task.StatusInProgress))
			return &task.Task{ID: 1, Status: task.StatusInProgress, CreateTime: ts, UpdateTime: ts}, false, nil
		}
		flow.HandleTaskCompletionFunc = func(completed *task.Task, cust *customer.RegisteredCustomer,
			s *session.Session) *flow.WorkflowResult {
			t.Fatal("workflow should not run without a completion edge")
			return nil
		}

		req := httptest.NewRequest(http.MethodPatch, "/v1/tasks/1",
			bytes.NewReader([]byte(`{"status":"inprogress"}`)))
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(body).To(MatchJSON(`{"task":{"id":"1","registeredCustomerId":"0","workType":"",
			"assignedToId":"0","description":"","status":"inprogress","assignedToName":"","assignedRole":"",
			"createdBy":"0","createTime":` + timeString + `,"updateTime":` + timeString + `,"completeTime":null}}`))
	})

	t.Run("should run the workflow once on the completion edge", func(t *testing.T) {
		defer resetTaskRestStubs()
		task.UpdateTaskFunc = func(id types.ID, u task.TaskUpdating, s *session.Session) (*task.Task, bool, error) {
			return &task.Task{ID: 1, RegisteredCustomerID: 100, WorkType: task.WorkTypeGenerateBill,
				Status: task.StatusCompleted, CreateTime: ts, UpdateTime: ts}, true, nil
		}
		customer.DetailCustomerFunc = func(id types.ID, s *session.Session) (*customer.RegisteredCustomer, error) {
			Expect(id).To(Equal(types.ID(100)))
			return &customer.RegisteredCustomer{ID: 100, District: "Varanasi"}, nil
		}
		invocations := 0
		flow.HandleTaskCompletionFunc = func(completed *task.Task, cust *customer.RegisteredCustomer,
			s *session.Session) *flow.WorkflowResult {
			invocations++
			Expect(completed.WorkType).To(Equal(task.WorkTypeGenerateBill))
			Expect(cust.ID).To(Equal(types.ID(100)))
			return &flow.WorkflowResult{
				CreatedTasks: []flow.CreatedTask{{TaskID: 2, WorkType: task.WorkTypeCreateCdr,
					RequiredRole: "Master Admin", AssignedToID: 7}},
				Skipped: []task.WorkType{}, Errors: []flow.BranchError{},
			}
		}

		req := httptest.NewRequest(http.MethodPatch, "/v1/tasks/1",
			bytes.NewReader([]byte(`{"status":"completed"}`)))
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusOK))
		Expect(invocations).To(Equal(1))
		Expect(body).To(MatchJSON(`{"task":{"id":"1","registeredCustomerId":"100","workType":"generate_bill",
			"assignedToId":"0","description":"","status":"completed","assignedToName":"","assignedRole":"",
			"createdBy":"0","createTime":` + timeString + `,"updateTime":` + timeString + `,"completeTime":null},
			"workflow":{"createdTasks":[{"taskId":"2","workType":"create_cdr","requiredRole":"Master Admin",
			"assignedToId":"7"}],"skipped":[],"errors":[],"terminal":false}}`))
	})

	t.Run("should return 400 for an invalid transition", func(t *testing.T) {
		defer resetTaskRestStubs()
		task.UpdateTaskFunc = func(id types.ID, u task.TaskUpdating, s *session.Session) (*task.Task, bool, error) {
			return nil, false, &bizerror.ErrInvalidTransition{From: task.StatusPending, To: task.StatusCompleted}
		}

		req := httptest.NewRequest(http.MethodPatch, "/v1/tasks/1",
			bytes.NewReader([]byte(`{"status":"completed"}`)))
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(body).To(MatchJSON(`{"code":"task.invalid_transition",
			"message":"invalid status transition from 'pending' to 'completed'","data":null}`))
	})

	t.Run("should return 400 for a bad task id", func(t *testing.T) {
		defer resetTaskRestStubs()
		req := httptest.NewRequest(http.MethodGet, "/v1/tasks/abc", nil)
		status, body, _ := testinfra.ExecuteRequest(req, router)
		Expect(status).To(Equal(http.StatusBadRequest))
		Expect(body).To(MatchJSON(`{"code":"common.bad_param","message":"invalid id 'abc'","data":null}`))
	})
}

func resetTaskRestStubs() {
	task.CreateTaskFunc = task.CreateTask
	task.UpdateTaskFunc = task.UpdateTask
	task.QueryTasksFunc = task.QueryTasks
	task.DetailTaskFunc = task.DetailTask
	customer.DetailCustomerFunc = customer.DetailCustomer
	flow.HandleTaskCompletionFunc = flow.HandleTaskCompletion
}

package taskrest

import (
	"errors"
	"net/http"
	"solarflow/bizerror"
	"solarflow/domain/customer"
	"solarflow/domain/flow"
	"solarflow/domain/task"
	"solarflow/misc"
	"solarflow/session"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathTasks = "/v1/tasks"
)

// TaskUpdatedBody carries the updated task plus the workflow fan-out outcome
// when the update completed the task.
type TaskUpdatedBody struct {
	Task     *task.Task           `json:"task"`
	Workflow *flow.WorkflowResult `json:"workflow,omitempty"`
}

func RegisterTasksRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathTasks, middleWares...)
	g.POST("", handleCreateTask)
	g.GET("", handleQueryTasks)
	g.GET(":id", handleDetailTask)
	g.PATCH(":id", handleUpdateTask)
}

func handleCreateTask(c *gin.Context) {
	creation := task.TaskCreation{}
	err := c.ShouldBindBodyWith(&creation, binding.JSON)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := task.CreateTaskFunc(creation, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, record)
}

func handleQueryTasks(c *gin.Context) {
	query := task.TaskQuery{}
	err := c.MustBindWith(&query, binding.Query)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	records, err := task.QueryTasksFunc(query, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, &misc.PagedBody{List: records, Total: uint64(len(records))})
}

func handleDetailTask(c *gin.Context) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: errors.New("invalid id '" + c.Param("id") + "'")})
	}
	record, err := task.DetailTaskFunc(id, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}

// handleUpdateTask applies the status change or reassignment. When the update
// moves the task onto completed, the workflow engine runs once for the edge
// and its result is attached to the response.
func handleUpdateTask(c *gin.Context) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: errors.New("invalid id '" + c.Param("id") + "'")})
	}
	updating := task.TaskUpdating{}
	if err := c.ShouldBindBodyWith(&updating, binding.JSON); err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	s := session.ExtractSessionFromGinContext(c)
	record, completedEdge, err := task.UpdateTaskFunc(id, updating, s)
	if err != nil {
		panic(err)
	}

	body := TaskUpdatedBody{Task: record}
	if completedEdge {
		cust, err := customer.DetailCustomerFunc(record.RegisteredCustomerID, s)
		if err != nil {
			panic(err)
		}
		body.Workflow = flow.HandleTaskCompletionFunc(record, cust, s)
	}
	c.JSON(http.StatusOK, &body)
}

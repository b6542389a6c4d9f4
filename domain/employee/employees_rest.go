package employee

import (
	"errors"
	"net/http"
	"solarflow/bizerror"
	"solarflow/misc"
	"solarflow/session"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathEmployees = "/v1/employees"
)

func RegisterEmployeesRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathEmployees, middleWares...)
	g.POST("", handleCreateEmployee)
	g.GET("", handleQueryEmployees)
	g.GET(":id", handleDetailEmployee)
}

func handleCreateEmployee(c *gin.Context) {
	creation := EmployeeCreation{}
	err := c.ShouldBindBodyWith(&creation, binding.JSON)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := CreateEmployeeFunc(creation, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusCreated, record)
}

func handleQueryEmployees(c *gin.Context) {
	query := EmployeeQuery{}
	err := c.MustBindWith(&query, binding.Query)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	records, err := QueryEmployeesFunc(query, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, &misc.PagedBody{List: records, Total: uint64(len(records))})
}

func handleDetailEmployee(c *gin.Context) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: errors.New("invalid id '" + c.Param("id") + "'")})
	}
	record, err := DetailEmployeeFunc(id, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}

package customerrest

import (
	"errors"
	"net/http"
	"solarflow/bizerror"
	"solarflow/domain/customer"
	"solarflow/domain/flow"
	"solarflow/misc"
	"solarflow/session"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathCustomers = "/v1/registered-customers"
)

// CustomerCreatedBody carries the created customer plus the outcome of the
// initial task seeding.
type CustomerCreatedBody struct {
	Customer *customer.RegisteredCustomer `json:"customer"`
	Seeding  *flow.WorkflowResult         `json:"seeding"`
}

func RegisterCustomersRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathCustomers, middleWares...)
	g.POST("", handleCreateCustomer)
	g.GET("", handleQueryCustomers)
	g.GET(":id", handleDetailCustomer)
}

func handleCreateCustomer(c *gin.Context) {
	creation := customer.CustomerCreation{}
	err := c.ShouldBindBodyWith(&creation, binding.JSON)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}

	s := session.ExtractSessionFromGinContext(c)
	record, err := customer.CreateCustomerFunc(creation, s)
	if err != nil {
		panic(err)
	}

	seeding := flow.SeedCustomerTasksFunc(record, s)
	c.JSON(http.StatusCreated, &CustomerCreatedBody{Customer: record, Seeding: seeding})
}

func handleQueryCustomers(c *gin.Context) {
	query := customer.CustomerQuery{}
	err := c.MustBindWith(&query, binding.Query)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	records, err := customer.QueryCustomersFunc(query, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, &misc.PagedBody{List: records, Total: uint64(len(records))})
}

func handleDetailCustomer(c *gin.Context) {
	id, err := types.ParseID(c.Param("id"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: errors.New("invalid id '" + c.Param("id") + "'")})
	}
	record, err := customer.DetailCustomerFunc(id, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}

package document

import (
	"errors"
	"net/http"
	"solarflow/bizerror"
	"solarflow/session"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	PathDocuments = "/v1/documents"
)

func RegisterDocumentsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathDocuments, middleWares...)
	g.PUT("", handleSaveDocuments)
	g.GET("", handleFindDocuments)
}

func handleSaveDocuments(c *gin.Context) {
	patch := DocumentPatch{}
	err := c.ShouldBindBodyWith(&patch, binding.JSON)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := SaveDocumentsFunc(patch, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}

func handleFindDocuments(c *gin.Context) {
	customerID, err := types.ParseID(c.Query("customerId"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: errors.New("invalid customerId '" + c.Query("customerId") + "'")})
	}
	record, err := FindDocumentsByCustomerFunc(customerID, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	if record == nil {
		panic(bizerror.ErrNotFound)
	}
	c.JSON(http.StatusOK, record)
}

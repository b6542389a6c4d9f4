package transaction

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
	PathTransactions = "/v1/transactions"
)

func RegisterTransactionsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathTransactions, middleWares...)
	g.POST("payment-proofs", handleAppendPaymentProof)
	g.GET("", handleFindTransactionLog)
}

func handleAppendPaymentProof(c *gin.Context) {
	proof := PaymentProof{}
	err := c.ShouldBindBodyWith(&proof, binding.JSON)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := AppendPaymentProofFunc(proof, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}

func handleFindTransactionLog(c *gin.Context) {
	customerID, err := types.ParseID(c.Query("customerId"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: errors.New("invalid customerId '" + c.Query("customerId") + "'")})
	}
	record, err := FindTransactionLogByCustomerFunc(customerID, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	if record == nil {
		panic(bizerror.ErrNotFound)
	}
	c.JSON(http.StatusOK, record)
}

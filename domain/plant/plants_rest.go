package plant

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
	PathPlantInstallations = "/v1/plant-installations"
)

func RegisterPlantInstallationsRestAPI(r *gin.Engine, middleWares ...gin.HandlerFunc) {
	g := r.Group(PathPlantInstallations, middleWares...)
	g.PUT("", handleSavePlantInstallation)
	g.GET("", handleFindPlantInstallation)
}

func handleSavePlantInstallation(c *gin.Context) {
	recording := PlantInstallationRecording{}
	err := c.ShouldBindBodyWith(&recording, binding.JSON)
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: err})
	}
	record, err := SavePlantInstallationFunc(recording, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	c.JSON(http.StatusOK, record)
}

func handleFindPlantInstallation(c *gin.Context) {
	customerID, err := types.ParseID(c.Query("customerId"))
	if err != nil {
		panic(&bizerror.ErrBadParam{Cause: errors.New("invalid customerId '" + c.Query("customerId") + "'")})
	}
	record, err := FindPlantInstallationByCustomerFunc(customerID, session.ExtractSessionFromGinContext(c))
	if err != nil {
		panic(err)
	}
	if record == nil {
		panic(bizerror.ErrNotFound)
	}
	c.JSON(http.StatusOK, record)
}

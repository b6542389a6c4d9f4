package sessions

import (
	"net/http"
	"solarflow/bizerror"
	"solarflow/domain/employee"
	"solarflow/misc"
	"solarflow/persistence"
	"solarflow/session"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	"github.com/patrickmn/go-cache"
)

func RegisterSessionsHandler(r *gin.Engine) {
	g := r.Group("/v1/sessions")
	g.POST("", SimpleLoginHandler)
	g.DELETE("", SimpleLogoutHandler)
}

func SimpleLogoutHandler(c *gin.Context) {
	token, _ := c.Cookie(session.KeySecToken) // ErrNoCookie
	if token != "" {
		session.TokenCache.Delete(token)
	}
	c.SetCookie(session.KeySecToken, "", -1, "/", "", false, false)
	c.AbortWithStatus(http.StatusNoContent)
}

func SimpleLoginHandler(c *gin.Context) {
	login := session.LoginRequest{}
	if err := c.ShouldBindBodyWith(&login, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, &misc.ErrorBody{Code: "common.bad_param", Message: err.Error()})
		return
	}

	var record employee.Employee
	db := persistence.ActiveDataSourceManager.GormDB(c.Request.Context())
	err := db.Where(&employee.Employee{PhoneNumber: login.PhoneNumber, Secret: employee.HashSha256(login.Password)}).
		First(&record).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			panic(bizerror.ErrUnauthenticated)
		}
		c.JSON(http.StatusInternalServerError, &misc.ErrorBody{Code: "common.internal_server_error", Message: err.Error()})
		return
	}

	token := uuid.New().String()
	identity := session.Identity{ID: record.ID, Name: record.Name, Role: record.EmployeeRole}
	s := session.Session{Token: token, Identity: identity, SigningTime: time.Now()}
	session.TokenCache.Set(token, &s, cache.DefaultExpiration)

	c.SetCookie(session.KeySecToken, token, int(session.TokenExpiration/time.Second), "/", "", false, false)
	c.JSON(http.StatusOK, &s)
}

package testinfra

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"solarflow/session"

	"github.com/fundwit/go-commons/types"
	"github.com/gin-gonic/gin"
)

// ExecuteRequest runs the request against the router and collects status,
// body and response for assertions.
func ExecuteRequest(req *http.Request, router *gin.Engine) (int, string, *http.Response) {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	resp := w.Result()
	defer func() {
		_ = resp.Body.Close()
	}()
	bodyBytes, _ := ioutil.ReadAll(resp.Body)
	return resp.StatusCode, string(bodyBytes), resp
}

// BuildSession builds a signed-in session for the given employee.
func BuildSession(uid types.ID, name, role string) *session.Session {
	return &session.Session{Token: "test_token_" + uid.String(),
		Identity: session.Identity{ID: uid, Name: name, Role: role}}
}

// SessionFilter injects a fixed session into every request, standing in for
// the auth filter in handler tests.
func SessionFilter(s *session.Session) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		session.InjectSessionIntoGinContext(ctx, s)
		ctx.Next()
	}
}

package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestEnvelope(t *testing.T) {
	assert.Equal(t, Resp{Code: 200, Msg: "OK", Data: struct{}{}}, OK(nil))
	assert.Equal(t, "Created", Success(CodeCreated, 1).Msg)
	assert.Equal(t, "Not Found", Error(CodeNotFound, "").Msg)
	assert.Equal(t, "user not found", Error(CodeNotFound, "user not found").Msg)
}

func TestAbort(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Abort(c, CodeTooManyRequests, "")

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"code":429,"msg":"Too Many Requests","data":{}}`, w.Body.String())
}

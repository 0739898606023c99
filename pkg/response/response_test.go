package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deniskimskku/writing-hub/pkg/domain/repository"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/public/articles/x", nil)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSuccess(t *testing.T) {
	c, w := newContext()
	Success(c, map[string]int{"n": 1}, "获取成功")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, 200, resp.Code)
	assert.Equal(t, "获取成功", resp.Message)
	assert.Equal(t, map[string]interface{}{"n": float64(1)}, resp.Data)
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"文章不存在", repository.ErrArticleNotFound, http.StatusNotFound, repository.ErrArticleNotFound.Error()},
		{"包装后的不存在", fmt.Errorf("wrap: %w", repository.ErrArticleNotFound), http.StatusNotFound, "wrap: " + repository.ErrArticleNotFound.Error()},
		{"其它错误不暴露细节", errors.New("disk on fire"), http.StatusInternalServerError, "获取文章失败"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newContext()
			Error(c, tt.err, "获取文章失败")

			assert.Equal(t, tt.wantCode, w.Code)
			resp := decode(t, w)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Equal(t, tt.wantMsg, resp.Message)
			assert.Nil(t, resp.Data)
		})
	}
}

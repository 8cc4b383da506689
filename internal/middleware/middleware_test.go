package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/task-board-api/internal/models"
	"github.com/yukikurage/task-board-api/internal/services"
)

type stubFinder map[string]models.Task

func (f stubFinder) GetTask(ctx context.Context, id string) (*models.Task, error) {
	if id == "broken" {
		return nil, errors.New("connection reset")
	}
	task, ok := f[id]
	if !ok {
		return nil, services.ErrTaskNotFound
	}
	return &task, nil
}

func newRouter(finder TaskFinder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/tasks/:id", RequireTask(finder), func(c *gin.Context) {
		task, ok := GetTask(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, task.Title)
	})
	return r
}

func TestRequireTask(t *testing.T) {
	r := newRouter(stubFinder{"abc": {ID: "abc", Title: "Found me"}})

	tests := []struct {
		name   string
		id     string
		status int
		body   string
	}{
		{"found", "abc", http.StatusOK, "Found me"},
		{"missing", "nope", http.StatusNotFound, "NOT_FOUND"},
		{"store error", "broken", http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks/"+tt.id, nil))

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestGetTask_NotSet(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := GetTask(c)
	assert.False(t, ok)
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, hook := test.NewNullLogger()

	r := gin.New()
	r.Use(RequestID(), RequestLogger(logger))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
		c.Status(http.StatusInternalServerError)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(requestIDHeader, "req-1")
	r.ServeHTTP(w, req)

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "/ok", entry.Data["path"])
	assert.Equal(t, http.StatusNoContent, entry.Data["status"])
	assert.Equal(t, "req-1", entry.Data["request_id"])
	assert.Equal(t, "req-1", w.Header().Get(requestIDHeader))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	entry = hook.LastEntry()
	assert.Equal(t, logrus.ErrorLevel, entry.Level)
	assert.Contains(t, entry.Data["errors"], "boom")
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

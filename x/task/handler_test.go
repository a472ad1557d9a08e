package task

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/securetaskhub/taskhub/core"
	mock_core "github.com/securetaskhub/taskhub/core/mock"
)

func TestHandlerGetHidesStoreFailureDetail(t *testing.T) {

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cause := errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")

	mockService := mock_core.NewMockTaskService(ctrl)
	mockService.EXPECT().
		Get(gomock.Any(), "5", gomock.Any()).
		Return(core.Task{}, core.NewErrorStoreUnavailable(cause))

	h := NewHandler(mockService)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("5")
	alice := core.NewSubject("alice", core.RoleUser)
	c.Set(core.SubjectCtxKey, &alice)

	err := h.Get(c)
	if assert.NoError(t, err) {
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.False(t, strings.Contains(rec.Body.String(), "10.0.0.5"))
		assert.False(t, strings.Contains(rec.Body.String(), "connection refused"))
	}
}

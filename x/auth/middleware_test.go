package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/securetaskhub/taskhub/core"
	mock_core "github.com/securetaskhub/taskhub/core/mock"
	"github.com/securetaskhub/taskhub/internal/testutil"
	"github.com/securetaskhub/taskhub/util"
	"github.com/securetaskhub/taskhub/x/policy"
	"github.com/securetaskhub/taskhub/x/token"
)

func newTestConfig() util.Config {
	config := util.Config{}
	config.Auth.SigningKey = "0123456789abcdef0123456789abcdef"
	config.Auth.Issuer = "taskhub"
	config.Auth.Audience = "taskhub-api"
	config.Auth.TokenTTL = "1h"
	return config
}

func newTestService(t *testing.T, ctrl *gomock.Controller) (core.AuthService, core.TokenService) {
	t.Helper()

	config := newTestConfig()
	tokens := token.NewService(nil, config)
	policies := policy.NewService(config)
	identity := mock_core.NewMockIdentityProvider(ctrl)

	return NewService(tokens, policies, identity, config), tokens
}

func invoke(service core.AuthService, req *http.Request) (echo.Context, *httptest.ResponseRecorder, error) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := service.IdentifySubject(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	err := h(c)
	return c, rec, err
}

func TestIdentifySubject(t *testing.T) {

	testutil.SetupMockTraceProvider()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, tokens := newTestService(t, ctrl)

	subject := core.NewSubject("alice", core.RoleUser)
	subject.AddClaim("department", "Engineering")

	signed, err := tokens.Issue(context.Background(), subject, time.Hour)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)

	c, _, err := invoke(service, req)
	if assert.NoError(t, err) {
		got, ok := c.Get(core.SubjectCtxKey).(*core.Subject)
		if assert.True(t, ok) {
			assert.Equal(t, "alice", got.ID)
			assert.True(t, got.HasRole(core.RoleUser))
			department, _ := got.ClaimValue("department")
			assert.Equal(t, "Engineering", department)
		}
		assert.Equal(t, "alice", c.Get(core.RequesterIdCtxKey))
		assert.Equal(t, signed, c.Get(core.TokenCtxKey))
	}
}

func TestIdentifySubjectAnonymous(t *testing.T) {

	testutil.SetupMockTraceProvider()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _ := newTestService(t, ctrl)

	// no header at all
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c, rec, err := invoke(service, req)
	if assert.NoError(t, err) {
		assert.Nil(t, c.Get(core.SubjectCtxKey))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	// garbage token passes through anonymous rather than failing the request
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	c, rec, err = invoke(service, req)
	if assert.NoError(t, err) {
		assert.Nil(t, c.Get(core.SubjectCtxKey))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	// wrong scheme
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	c, _, err = invoke(service, req)
	if assert.NoError(t, err) {
		assert.Nil(t, c.Get(core.SubjectCtxKey))
	}
}

func TestRestrict(t *testing.T) {

	testutil.SetupMockTraceProvider()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service, _ := newTestService(t, ctrl)

	e := echo.New()
	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	run := func(principal int, subject *core.Subject) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if subject != nil {
			c.Set(core.SubjectCtxKey, subject)
		}
		err := service.Restrict(principal)(next)(c)
		assert.NoError(t, err)
		return rec.Code
	}

	user := core.NewSubject("alice", core.RoleUser)
	admin := core.NewSubject("root", core.RoleAdmin)

	assert.Equal(t, http.StatusUnauthorized, run(ISAUTHED, nil))
	assert.Equal(t, http.StatusOK, run(ISAUTHED, &user))

	assert.Equal(t, http.StatusUnauthorized, run(ISADMIN, nil))
	assert.Equal(t, http.StatusForbidden, run(ISADMIN, &user))
	assert.Equal(t, http.StatusOK, run(ISADMIN, &admin))
}

package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/securetaskhub/taskhub/core"
)

// Handler is the interface for handling HTTP requests
type Handler interface {
	Login(c echo.Context) error
	Logout(c echo.Context) error
	Me(c echo.Context) error
}

type handler struct {
	service core.AuthService
}

// NewHandler creates a new handler
func NewHandler(service core.AuthService) Handler {
	return &handler{
		service: service,
	}
}

// Login exchanges email and password for a bearer token
func (h *handler) Login(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Auth.Handler.Login")
	defer span.End()

	var request loginRequest
	err := c.Bind(&request)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": err.Error()})
	}

	if request.Email == "" || request.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "email and password are required"})
	}

	token, subject, err := h.service.Login(ctx, request.Email, request.Password)
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusUnauthorized, echo.Map{"status": "error", "message": "invalid credentials"})
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": echo.Map{
		"token":   token,
		"subject": subject,
	}})
}

// Logout revokes the presented bearer token
func (h *handler) Logout(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Auth.Handler.Logout")
	defer span.End()

	token, ok := c.Get(core.TokenCtxKey).(string)
	if !ok {
		// the middleware skipped an unverifiable header; fall back to it raw
		split := strings.Split(c.Request().Header.Get("authorization"), " ")
		if len(split) == 2 && split[0] == "Bearer" {
			token = split[1]
		}
	}

	if token == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"status": "error", "message": "authentication required"})
	}

	err := h.service.Logout(ctx, token)
	if err != nil {
		span.RecordError(err)
		return c.JSON(http.StatusUnauthorized, echo.Map{"status": "error", "message": "token could not be revoked"})
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// Me returns the verified subject of the presented token
func (h *handler) Me(c echo.Context) error {
	_, span := tracer.Start(c.Request().Context(), "Auth.Handler.Me")
	defer span.End()

	subject, ok := c.Get(core.SubjectCtxKey).(*core.Subject)
	if !ok || subject.ID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"status": "error", "message": "authentication required"})
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": subject})
}

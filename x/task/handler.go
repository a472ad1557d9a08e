package task

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/securetaskhub/taskhub/core"
)

// Handler is the interface for handling HTTP requests
type Handler interface {
	GetMine(c echo.Context) error
	GetAll(c echo.Context) error
	Get(c echo.Context) error
	Create(c echo.Context) error
	Update(c echo.Context) error
	Delete(c echo.Context) error
}

type handler struct {
	service core.TaskService
}

// NewHandler creates a new handler
func NewHandler(service core.TaskService) Handler {
	return &handler{
		service: service,
	}
}

func subjectFrom(c echo.Context) *core.Subject {
	subject, _ := c.Get(core.SubjectCtxKey).(*core.Subject)
	return subject
}

func mapError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, core.ErrorNotFound{}):
		return c.JSON(http.StatusNotFound, echo.Map{"status": "error", "message": "task not found"})
	case errors.Is(err, core.ErrorUnauthenticated{}):
		return c.JSON(http.StatusUnauthorized, echo.Map{"status": "error", "message": "authentication required"})
	case errors.Is(err, core.ErrorPermissionDenied{}):
		return c.JSON(http.StatusForbidden, echo.Map{"status": "error", "message": "you are not authorized to perform this action"})
	case errors.Is(err, core.ErrorInvalidStatus{}):
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "invalid task status"})
	default:
		// the wrapped cause stays on the span; clients get no detail
		return c.JSON(http.StatusInternalServerError, echo.Map{"status": "error", "message": "internal server error"})
	}
}

// GetMine returns the requester's own tasks
func (h *handler) GetMine(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Task.Handler.GetMine")
	defer span.End()

	tasks, err := h.service.GetMine(ctx, subjectFrom(c))
	if err != nil {
		span.RecordError(err)
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": tasks})
}

// GetAll returns every task. Admin only.
func (h *handler) GetAll(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Task.Handler.GetAll")
	defer span.End()

	tasks, err := h.service.GetAll(ctx, subjectFrom(c))
	if err != nil {
		span.RecordError(err)
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": tasks})
}

// Get returns a task by ID
func (h *handler) Get(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Task.Handler.Get")
	defer span.End()

	id := c.Param("id")

	task, err := h.service.Get(ctx, id, subjectFrom(c))
	if err != nil {
		span.RecordError(err)
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": task})
}

// Create registers a new task owned by the requester
func (h *handler) Create(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Task.Handler.Create")
	defer span.End()

	var request createRequest
	err := c.Bind(&request)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": err.Error()})
	}

	if request.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": "title is required"})
	}

	created, err := h.service.Create(ctx, subjectFrom(c), request.Title, request.Description, request.Status)
	if err != nil {
		span.RecordError(err)
		return mapError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"status": "ok", "content": created})
}

// Update patches a task
func (h *handler) Update(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Task.Handler.Update")
	defer span.End()

	id := c.Param("id")

	var request updateRequest
	err := c.Bind(&request)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"status": "error", "message": err.Error()})
	}

	updated, err := h.service.Update(ctx, id, request.patch(), subjectFrom(c))
	if err != nil {
		span.RecordError(err)
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": updated})
}

// Delete removes a task
func (h *handler) Delete(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Task.Handler.Delete")
	defer span.End()

	id := c.Param("id")

	err := h.service.Delete(ctx, id, subjectFrom(c))
	if err != nil {
		span.RecordError(err)
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

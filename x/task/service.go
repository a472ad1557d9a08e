package task

import (
	"context"

	"github.com/google/uuid"

	"github.com/securetaskhub/taskhub/core"
)

type service struct {
	repo   core.TaskRepository
	policy core.PolicyService
}

// NewService creates a new task service
func NewService(repo core.TaskRepository, policy core.PolicyService) core.TaskService {
	return &service{repo, policy}
}

func (s *service) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Task.Service.Count")
	defer span.End()

	return s.repo.Count(ctx)
}

// GetMine returns the subject's own tasks
func (s *service) GetMine(ctx context.Context, subject *core.Subject) ([]core.Task, error) {
	ctx, span := tracer.Start(ctx, "Task.Service.GetMine")
	defer span.End()

	if s.policy.Evaluate(ctx, subject, core.CapabilityList, nil) != core.DecisionAllow {
		return nil, core.NewErrorUnauthenticated()
	}

	return s.repo.ListOwned(ctx, subject.ID)
}

// GetAll returns every task. An ownerless descriptor admits only admins,
// so the role gate is derived from the evaluator like everything else.
func (s *service) GetAll(ctx context.Context, subject *core.Subject) ([]core.Task, error) {
	ctx, span := tracer.Start(ctx, "Task.Service.GetAll")
	defer span.End()

	if subject == nil {
		return nil, core.NewErrorUnauthenticated()
	}

	if s.policy.Evaluate(ctx, subject, core.CapabilityRead, &core.Resource{}) != core.DecisionAllow {
		return nil, core.NewErrorPermissionDenied()
	}

	return s.repo.ListAll(ctx)
}

// Get returns a task the subject may read. Absent and denied are the same
// answer here on purpose.
func (s *service) Get(ctx context.Context, id string, subject *core.Subject) (core.Task, error) {
	ctx, span := tracer.Start(ctx, "Task.Service.Get")
	defer span.End()

	if subject == nil {
		return core.Task{}, core.NewErrorUnauthenticated()
	}

	return s.repo.GetIfAuthorized(ctx, id, subject)
}

// Create registers a new task owned by the subject
func (s *service) Create(ctx context.Context, subject *core.Subject, title, description string, status core.TaskStatus) (core.Task, error) {
	ctx, span := tracer.Start(ctx, "Task.Service.Create")
	defer span.End()

	if s.policy.Evaluate(ctx, subject, core.CapabilityCreate, nil) != core.DecisionAllow {
		return core.Task{}, core.NewErrorUnauthenticated()
	}

	if status == "" {
		status = core.TaskStatusNew
	}
	if !status.IsValid() {
		return core.Task{}, core.NewErrorInvalidStatus()
	}

	task := core.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Status:      status,
	}

	return s.repo.Create(ctx, task, subject.ID)
}

// Update patches a task and returns the new state
func (s *service) Update(ctx context.Context, id string, patch core.TaskPatch, subject *core.Subject) (core.Task, error) {
	ctx, span := tracer.Start(ctx, "Task.Service.Update")
	defer span.End()

	if subject == nil {
		return core.Task{}, core.NewErrorUnauthenticated()
	}

	if patch.Status != nil && !patch.Status.IsValid() {
		return core.Task{}, core.NewErrorInvalidStatus()
	}

	ok, err := s.repo.Update(ctx, id, patch, subject)
	if err != nil {
		span.RecordError(err)
		return core.Task{}, err
	}
	if !ok {
		return core.Task{}, core.NewErrorNotFound()
	}

	return s.repo.GetIfAuthorized(ctx, id, subject)
}

// Delete removes a task
func (s *service) Delete(ctx context.Context, id string, subject *core.Subject) error {
	ctx, span := tracer.Start(ctx, "Task.Service.Delete")
	defer span.End()

	if subject == nil {
		return core.NewErrorUnauthenticated()
	}

	ok, err := s.repo.Delete(ctx, id, subject)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if !ok {
		return core.NewErrorNotFound()
	}

	return nil
}

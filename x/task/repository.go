package task

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/securetaskhub/taskhub/core"
)

var tracer = otel.Tracer("task")

type repository struct {
	db     *gorm.DB
	policy core.PolicyService
}

// NewRepository creates a task repository backed by postgres. Decisions
// are re-derived here from the subject on every call; the repository never
// trusts an upstream verdict.
func NewRepository(db *gorm.DB, policy core.PolicyService) core.TaskRepository {
	return &repository{db, policy}
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	ctx, span := tracer.Start(ctx, "Task.Repository.Count")
	defer span.End()

	var count int64
	err := r.db.WithContext(ctx).Model(&core.Task{}).Count(&count).Error
	if err != nil {
		span.RecordError(err)
		return 0, core.NewErrorStoreUnavailable(err)
	}

	return count, nil
}

// ListOwned returns the subject's own tasks, newest first
func (r *repository) ListOwned(ctx context.Context, ownerID string) ([]core.Task, error) {
	ctx, span := tracer.Start(ctx, "Task.Repository.ListOwned")
	defer span.End()

	var tasks []core.Task
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("c_date desc").
		Find(&tasks).Error
	if err != nil {
		span.RecordError(err)
		return nil, core.NewErrorStoreUnavailable(err)
	}

	return tasks, nil
}

// ListAll returns every task, newest first. It performs no authorization;
// the caller must hold an Allow for a role-gated capability already.
func (r *repository) ListAll(ctx context.Context) ([]core.Task, error) {
	ctx, span := tracer.Start(ctx, "Task.Repository.ListAll")
	defer span.End()

	var tasks []core.Task
	err := r.db.WithContext(ctx).
		Order("c_date desc").
		Find(&tasks).Error
	if err != nil {
		span.RecordError(err)
		return nil, core.NewErrorStoreUnavailable(err)
	}

	return tasks, nil
}

// GetIfAuthorized fetches by id, then applies the ownership rules. A
// missing row and a denied subject are indistinguishable to the caller.
func (r *repository) GetIfAuthorized(ctx context.Context, id string, subject *core.Subject) (core.Task, error) {
	ctx, span := tracer.Start(ctx, "Task.Repository.GetIfAuthorized")
	defer span.End()

	var task core.Task
	err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return core.Task{}, core.NewErrorNotFound()
		}
		span.RecordError(err)
		return core.Task{}, core.NewErrorStoreUnavailable(err)
	}

	descriptor := task.Descriptor()
	if r.policy.Evaluate(ctx, subject, core.CapabilityRead, &descriptor) != core.DecisionAllow {
		return core.Task{}, core.NewErrorNotFound()
	}

	return task, nil
}

// Create persists a task. The owner is always stamped from ownerID,
// never from caller-supplied fields.
func (r *repository) Create(ctx context.Context, task core.Task, ownerID string) (core.Task, error) {
	ctx, span := tracer.Start(ctx, "Task.Repository.Create")
	defer span.End()

	task.OwnerID = ownerID

	err := r.db.WithContext(ctx).Create(&task).Error
	if err != nil {
		span.RecordError(err)
		return core.Task{}, core.NewErrorStoreUnavailable(err)
	}

	return task, nil
}

// Update applies the mutable fields of patch inside a row-locked
// transaction. The ownership check runs against the locked row so a
// concurrent delete cannot slip between check and write.
func (r *repository) Update(ctx context.Context, id string, patch core.TaskPatch, subject *core.Subject) (bool, error) {
	ctx, span := tracer.Start(ctx, "Task.Repository.Update")
	defer span.End()

	updated := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task core.Task
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&task, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		descriptor := task.Descriptor()
		if r.policy.Evaluate(ctx, subject, core.CapabilityUpdate, &descriptor) != core.DecisionAllow {
			return nil
		}

		if patch.Title != nil {
			task.Title = *patch.Title
		}
		if patch.Description != nil {
			task.Description = *patch.Description
		}
		if patch.Status != nil {
			task.Status = *patch.Status
		}

		// owner_id is not among the mutable columns on this path
		err = tx.Model(&core.Task{}).
			Where("id = ?", id).
			Select("title", "description", "status").
			Updates(core.Task{
				Title:       task.Title,
				Description: task.Description,
				Status:      task.Status,
			}).Error
		if err != nil {
			return err
		}

		updated = true
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return false, core.NewErrorStoreUnavailable(err)
	}

	return updated, nil
}

// Delete removes the task after re-checking ownership against the locked
// row. Returns whether a deletion occurred.
func (r *repository) Delete(ctx context.Context, id string, subject *core.Subject) (bool, error) {
	ctx, span := tracer.Start(ctx, "Task.Repository.Delete")
	defer span.End()

	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task core.Task
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&task, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		descriptor := task.Descriptor()
		if r.policy.Evaluate(ctx, subject, core.CapabilityDelete, &descriptor) != core.DecisionAllow {
			return nil
		}

		err = tx.Delete(&core.Task{}, "id = ?", id).Error
		if err != nil {
			return err
		}

		deleted = true
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return false, core.NewErrorStoreUnavailable(err)
	}

	return deleted, nil
}

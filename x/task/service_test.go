package task

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/securetaskhub/taskhub/core"
	mock_core "github.com/securetaskhub/taskhub/core/mock"
	"github.com/securetaskhub/taskhub/x/policy"
	"github.com/securetaskhub/taskhub/util"
)

var ctx = context.Background()

func TestGetMineRequiresAuthentication(t *testing.T) {

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_core.NewMockTaskRepository(ctrl)
	service := NewService(mockRepo, policy.NewService(util.Config{}))

	_, err := service.GetMine(ctx, nil)
	assert.True(t, errors.Is(err, core.ErrorUnauthenticated{}))
}

func TestGetMineListsOwnTasks(t *testing.T) {

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	alice := core.NewSubject("alice", core.RoleUser)
	owned := []core.Task{{ID: "5", Title: "write report", OwnerID: "alice"}}

	mockRepo := mock_core.NewMockTaskRepository(ctrl)
	mockRepo.EXPECT().ListOwned(gomock.Any(), "alice").Return(owned, nil)

	service := NewService(mockRepo, policy.NewService(util.Config{}))

	tasks, err := service.GetMine(ctx, &alice)
	assert.NoError(t, err)
	assert.Equal(t, owned, tasks)
}

func TestGetAllIsAdminGated(t *testing.T) {

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mock_core.NewMockTaskRepository(ctrl)
	service := NewService(mockRepo, policy.NewService(util.Config{}))

	_, err := service.GetAll(ctx, nil)
	assert.True(t, errors.Is(err, core.ErrorUnauthenticated{}))

	bob := core.NewSubject("bob", core.RoleUser)
	_, err = service.GetAll(ctx, &bob)
	assert.True(t, errors.Is(err, core.ErrorPermissionDenied{}))

	admin := core.NewSubject("root", core.RoleAdmin)
	mockRepo.EXPECT().ListAll(gomock.Any()).Return([]core.Task{}, nil)
	_, err = service.GetAll(ctx, &admin)
	assert.NoError(t, err)
}

func TestCreateStampsOwnerFromSubject(t *testing.T) {

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	alice := core.NewSubject("alice", core.RoleUser)

	mockRepo := mock_core.NewMockTaskRepository(ctrl)
	mockRepo.EXPECT().
		Create(gomock.Any(), gomock.Any(), "alice").
		DoAndReturn(func(ctx context.Context, task core.Task, ownerID string) (core.Task, error) {
			task.OwnerID = ownerID
			return task, nil
		})

	service := NewService(mockRepo, policy.NewService(util.Config{}))

	created, err := service.Create(ctx, &alice, "write report", "", core.TaskStatusNew)
	assert.NoError(t, err)
	assert.Equal(t, "alice", created.OwnerID)
	assert.NotEmpty(t, created.ID)
}

func TestCreateRejectsUnknownStatus(t *testing.T) {

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	alice := core.NewSubject("alice", core.RoleUser)

	mockRepo := mock_core.NewMockTaskRepository(ctrl)
	service := NewService(mockRepo, policy.NewService(util.Config{}))

	_, err := service.Create(ctx, &alice, "write report", "", core.TaskStatus("archived"))
	assert.True(t, errors.Is(err, core.ErrorInvalidStatus{}))
}

func TestUpdateMapsMissToNotFound(t *testing.T) {

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	bob := core.NewSubject("bob", core.RoleUser)

	// the repository answers identically for absent rows and denied
	// subjects, so the caller learns nothing either way
	mockRepo := mock_core.NewMockTaskRepository(ctrl)
	mockRepo.EXPECT().Update(gomock.Any(), "5", gomock.Any(), &bob).Return(false, nil)

	service := NewService(mockRepo, policy.NewService(util.Config{}))

	title := "hijacked"
	_, err := service.Update(ctx, "5", core.TaskPatch{Title: &title}, &bob)
	assert.True(t, errors.Is(err, core.ErrorNotFound{}))
}

func TestDeleteMapsMissToNotFound(t *testing.T) {

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	bob := core.NewSubject("bob", core.RoleUser)

	mockRepo := mock_core.NewMockTaskRepository(ctrl)
	mockRepo.EXPECT().Delete(gomock.Any(), "5", &bob).Return(false, nil)

	service := NewService(mockRepo, policy.NewService(util.Config{}))

	err := service.Delete(ctx, "5", &bob)
	assert.True(t, errors.Is(err, core.ErrorNotFound{}))
}

package task

import (
	"github.com/securetaskhub/taskhub/core"
)

type createRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      core.TaskStatus `json:"status"`
}

type updateRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Status      *core.TaskStatus `json:"status"`
}

func (r updateRequest) patch() core.TaskPatch {
	return core.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
	}
}

package core

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusNew        TaskStatus = "new"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusNew, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// Task is an owned resource. OwnerID is set at creation and is never
// reachable through the authorization-aware update path.
type Task struct {
	ID          string     `json:"id" gorm:"primaryKey;type:char(36)"`
	Title       string     `json:"title" gorm:"type:text;not null"`
	Description string     `json:"description" gorm:"type:text"`
	Status      TaskStatus `json:"status" gorm:"type:text;not null;default:'new'"`
	OwnerID     string     `json:"ownerId" gorm:"type:text;not null;index"`
	CDate       time.Time  `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate       time.Time  `json:"mdate" gorm:"autoUpdateTime"`
}

// Resource is the minimal view of a protected entity sufficient for a
// policy decision.
type Resource struct {
	OwnerID string `json:"ownerId"`
}

func (t Task) Descriptor() Resource {
	return Resource{OwnerID: t.OwnerID}
}

// TaskPatch carries the mutable fields of a task. Absent fields are left
// untouched. Ownership is deliberately not representable here.
type TaskPatch struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Status      *TaskStatus `json:"status,omitempty"`
}

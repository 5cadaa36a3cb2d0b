package model

import (
	"time"

	"github.com/google/uuid"
)

// Task statuses.
const (
	TaskStatusTodo       = "To Do"
	TaskStatusInProgress = "In Progress"
	TaskStatusDone       = "Done"
)

// Task is a superadmin work item assignable to multiple accounts via the
// task_assignments join table.
type Task struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title     string    `gorm:"not null"`
	Status    string    `gorm:"type:varchar(20);not null;default:'To Do'"`
	Deadline  *time.Time
	Notes     string
	Urgent    bool      `gorm:"not null;default:false"`
	Assignees []Account `gorm:"many2many:task_assignments"`
	CreatedAt time.Time
}

package dto

import "time"

// Superadmin console DTOs.

type CreateUserRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role"     validate:"required,oneof=user owner superadmin 'tech lead' dev 'junior dev'"`
}

type CreateTaskRequest struct {
	Title    string     `json:"title"    validate:"required,min=1,max=200"`
	UserIDs  []string   `json:"userIds"  validate:"required,min=1,dive,uuid"`
	Deadline *time.Time `json:"deadline"`
	Notes    string     `json:"notes"    validate:"max=2000"`
	Urgent   bool       `json:"urgent"`
}

type TaskResponse struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Status    string         `json:"status"`
	Deadline  *time.Time     `json:"deadline"`
	Notes     string         `json:"notes"`
	Urgent    bool           `json:"urgent"`
	Assignees []UserResponse `json:"assignees"`
	CreatedAt string         `json:"created_at"`
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fullbootcamp/pos-saas-sub000/internal/auth"
	"github.com/fullbootcamp/pos-saas-sub000/internal/dto"
	"github.com/fullbootcamp/pos-saas-sub000/internal/model"
	"github.com/fullbootcamp/pos-saas-sub000/internal/repository"
)

// AdminService backs the superadmin console: user management and the
// shared task board.
type AdminService interface {
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error)
	ListTasks(ctx context.Context) ([]dto.TaskResponse, error)
	CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*dto.TaskResponse, error)
}

type adminService struct {
	accounts repository.AccountRepository
	tasks    repository.TaskRepository
}

func NewAdminService(accounts repository.AccountRepository, tasks repository.TaskRepository) AdminService {
	return &adminService{accounts: accounts, tasks: tasks}
}

func (s *adminService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UserResponse, len(accounts))
	for i := range accounts {
		resp[i] = toUserResponse(&accounts[i])
	}
	return resp, nil
}

func (s *adminService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if _, err := s.accounts.FindByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	// Console-created accounts skip the verification flow.
	now := time.Now()
	acct := &model.Account{
		Email:           req.Email,
		Name:            req.Name,
		PasswordHash:    hash,
		Role:            model.Role(req.Role),
		EmailVerifiedAt: &now,
	}
	if err := s.accounts.Create(ctx, acct); err != nil {
		return nil, err
	}
	resp := toUserResponse(acct)
	return &resp, nil
}

func (s *adminService) ListTasks(ctx context.Context) ([]dto.TaskResponse, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TaskResponse, len(tasks))
	for i := range tasks {
		resp[i] = toTaskResponse(&tasks[i])
	}
	return resp, nil
}

func (s *adminService) CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if len(req.UserIDs) == 0 {
		return nil, ErrNoAssignees
	}
	assignees := make([]model.Account, 0, len(req.UserIDs))
	for _, raw := range req.UserIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, ErrNotFound
		}
		acct, err := s.accounts.FindByID(ctx, id)
		if err != nil {
			return nil, ErrNotFound
		}
		assignees = append(assignees, *acct)
	}

	task := &model.Task{
		Title:     req.Title,
		Status:    model.TaskStatusTodo,
		Deadline:  req.Deadline,
		Notes:     req.Notes,
		Urgent:    req.Urgent,
		Assignees: assignees,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	resp := toTaskResponse(task)
	return &resp, nil
}

func toTaskResponse(t *model.Task) dto.TaskResponse {
	assignees := make([]dto.UserResponse, len(t.Assignees))
	for i := range t.Assignees {
		assignees[i] = toUserResponse(&t.Assignees[i])
	}
	return dto.TaskResponse{
		ID:        t.ID.String(),
		Title:     t.Title,
		Status:    t.Status,
		Deadline:  t.Deadline,
		Notes:     t.Notes,
		Urgent:    t.Urgent,
		Assignees: assignees,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/familyllc/recipe-manager/backend/internal/apperr"
	"github.com/familyllc/recipe-manager/backend/internal/logger"
	"github.com/familyllc/recipe-manager/backend/internal/model"
	"github.com/familyllc/recipe-manager/backend/internal/repository"
	"github.com/familyllc/recipe-manager/backend/internal/types"
)

// TaskService manages the shared kitchen to-do list.
type TaskService struct {
	tasks    repository.TaskRepository
	validate *validator.Validate
	log      *logger.Logger
	now      func() time.Time
}

func NewTaskService(tasks repository.TaskRepository, baseLog *logger.Logger) *TaskService {
	return &TaskService{
		tasks:    tasks,
		validate: newValidator(),
		log:      baseLog.With("service", "TaskService"),
		now:      time.Now,
	}
}

func (s *TaskService) ListTasks(ctx context.Context) ([]*types.TaskView, error) {
	tasks, err := s.tasks.FindAll(ctx)
	if err != nil {
		return nil, apperr.Wrap("list tasks", err)
	}
	views := make([]*types.TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, ToTaskView(t))
	}
	return views, nil
}

func (s *TaskService) GetTask(ctx context.Context, id uuid.UUID) (*types.TaskView, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap("get task", err)
	}
	return ToTaskView(task), nil
}

func (s *TaskService) CreateTask(ctx context.Context, req *types.CreateTaskRequest) (*types.TaskView, error) {
	if req == nil {
		return nil, apperr.Validation(apperr.FieldError{Field: "body", Message: "must not be empty"})
	}
	input := types.CreateTaskRequest{Name: strings.TrimSpace(req.Name)}
	if fields := fieldErrors(s.validate.Struct(&input)); len(fields) > 0 {
		return nil, apperr.Validation(fields...)
	}

	now := s.now().UTC().Truncate(time.Microsecond)
	task := &model.Task{Name: input.Name, CreatedAt: now, UpdatedAt: now}
	if err := s.tasks.Create(ctx, task); err != nil {
		s.log.Error("Failed to create task", "error", err)
		return nil, apperr.Wrap("create task", err)
	}

	s.log.Info("Task created", "task_id", task.ID)
	return ToTaskView(task), nil
}

// CompleteTask marks the task done. Completing a finished task is a no-op.
func (s *TaskService) CompleteTask(ctx context.Context, id uuid.UUID) (*types.TaskView, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap("complete task", err)
	}
	if task.Complete {
		return ToTaskView(task), nil
	}

	task.Complete = true
	if now := s.now().UTC().Truncate(time.Microsecond); now.After(task.CreatedAt) {
		task.UpdatedAt = now
	} else {
		task.UpdatedAt = task.CreatedAt
	}
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, apperr.Wrap("complete task", err)
	}

	s.log.Info("Task completed", "task_id", id)
	return ToTaskView(task), nil
}

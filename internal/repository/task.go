package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/familyllc/recipe-manager/backend/internal/apperr"
	"github.com/familyllc/recipe-manager/backend/internal/logger"
	"github.com/familyllc/recipe-manager/backend/internal/model"
)

type TaskRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	FindAll(ctx context.Context) ([]*model.Task, error)
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
}

type taskRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTaskRepository(db *gorm.DB, baseLog *logger.Logger) TaskRepository {
	return &taskRepository{db: db, log: baseLog.With("repo", "TaskRepository")}
}

func (r *taskRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("task", id)
		}
		return nil, apperr.Persistence("find task", err)
	}
	return &task, nil
}

func (r *taskRepository) FindAll(ctx context.Context) ([]*model.Task, error) {
	var tasks []*model.Task
	if err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, apperr.Persistence("find all tasks", err)
	}
	return tasks, nil
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return apperr.Persistence("create task", err)
	}
	return nil
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", task.ID).Updates(map[string]interface{}{
		"name":       task.Name,
		"complete":   task.Complete,
		"updated_at": task.UpdatedAt,
	})
	if res.Error != nil {
		return apperr.Persistence("update task", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("task", task.ID)
	}
	return nil
}

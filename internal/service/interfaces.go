package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/familyllc/recipe-manager/backend/internal/types"
)

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	ListRecipes(ctx context.Context, filter types.RecipeFilter) ([]*types.RecipeView, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*types.RecipeView, error)
	CreateRecipe(ctx context.Context, req *types.RecipeCreateRequest) (*types.RecipeView, error)
	UpdateRecipe(ctx context.Context, id uuid.UUID, req *types.RecipeUpdateRequest) (*types.RecipeView, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID) error
}

// IImageService defines the interface for recipe photo uploads
type IImageService interface {
	Enabled() bool
	UploadRecipeImage(ctx context.Context, recipeID uuid.UUID, body io.Reader) (*types.RecipeView, error)
}

// ITaskService defines the interface for task list operations
type ITaskService interface {
	ListTasks(ctx context.Context) ([]*types.TaskView, error)
	GetTask(ctx context.Context, id uuid.UUID) (*types.TaskView, error)
	CreateTask(ctx context.Context, req *types.CreateTaskRequest) (*types.TaskView, error)
	CompleteTask(ctx context.Context, id uuid.UUID) (*types.TaskView, error)
}

// ITokenService defines the interface for bearer token handling
type ITokenService interface {
	IssueToken(subject string, ttl time.Duration) (string, error)
	ValidateToken(tokenString string) (*types.TokenClaims, error)
}

var (
	_ IRecipeService = (*RecipeService)(nil)
	_ IImageService  = (*ImageService)(nil)
	_ ITaskService   = (*TaskService)(nil)
	_ ITokenService  = (*TokenService)(nil)
)

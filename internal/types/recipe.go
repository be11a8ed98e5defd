package types

import (
	"time"

	"github.com/google/uuid"
)

// RecipeView is the response shape for a recipe and its children.
type RecipeView struct {
	ID           uuid.UUID         `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	PrepTime     int               `json:"prepTime"`
	CookTime     int               `json:"cookTime"`
	TotalTime    int               `json:"totalTime"`
	Servings     int               `json:"servings"`
	Category     string            `json:"category"`
	ImageURL     string            `json:"imageUrl,omitempty"`
	Ingredients  []IngredientView  `json:"ingredients"`
	Instructions []InstructionView `json:"instructions"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

type IngredientView struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Quantity string    `json:"quantity"`
	Unit     string    `json:"unit"`
}

type InstructionView struct {
	ID          uuid.UUID `json:"id"`
	StepNumber  int       `json:"stepNumber"`
	Description string    `json:"description"`
}

// RecipeFilter selects which listing dimension to apply. The first non-empty
// field in the order Search, Category, SortBy wins.
type RecipeFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	SortBy   string `form:"sortBy"`
}

// TaskView is the response shape for a task.
type TaskView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Complete  bool      `json:"complete"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

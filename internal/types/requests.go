package types

// RecipeCreateRequest represents the request body for creating a recipe.
// Children are described by their fields only; ids are always assigned server side.
// Integer fields are capped at the range of the INTEGER columns that store them.
type RecipeCreateRequest struct {
	Title        string             `json:"title" validate:"required,max=255"`
	Description  string             `json:"description"`
	PrepTime     int                `json:"prepTime" validate:"gte=0,lte=2147483647"`
	CookTime     int                `json:"cookTime" validate:"gte=0,lte=2147483647"`
	Servings     int                `json:"servings" validate:"gte=1,lte=2147483647"`
	Category     string             `json:"category" validate:"max=100"`
	ImageURL     string             `json:"imageUrl" validate:"omitempty,url,max=1024"`
	Ingredients  []IngredientInput  `json:"ingredients" validate:"dive"`
	Instructions []InstructionInput `json:"instructions" validate:"dive"`
}

// RecipeUpdateRequest carries the full replacement state of a recipe.
type RecipeUpdateRequest struct {
	Title        string             `json:"title" validate:"required,max=255"`
	Description  string             `json:"description"`
	PrepTime     int                `json:"prepTime" validate:"gte=0,lte=2147483647"`
	CookTime     int                `json:"cookTime" validate:"gte=0,lte=2147483647"`
	Servings     int                `json:"servings" validate:"gte=1,lte=2147483647"`
	Category     string             `json:"category" validate:"max=100"`
	ImageURL     string             `json:"imageUrl" validate:"omitempty,url,max=1024"`
	Ingredients  []IngredientInput  `json:"ingredients" validate:"dive"`
	Instructions []InstructionInput `json:"instructions" validate:"dive"`
}

type IngredientInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Quantity string `json:"quantity" validate:"max=64"`
	Unit     string `json:"unit" validate:"max=64"`
}

type InstructionInput struct {
	StepNumber  int    `json:"stepNumber" validate:"gte=1,lte=2147483647"`
	Description string `json:"description" validate:"required"`
}

// CreateTaskRequest represents the request body for creating a task.
type CreateTaskRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

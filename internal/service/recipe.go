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

// RecipeService handles recipe operations
type RecipeService struct {
	recipes  repository.RecipeRepository
	validate *validator.Validate
	log      *logger.Logger
	now      func() time.Time
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(recipes repository.RecipeRepository, baseLog *logger.Logger) *RecipeService {
	return &RecipeService{
		recipes:  recipes,
		validate: newValidator(),
		log:      baseLog.With("service", "RecipeService"),
		now:      time.Now,
	}
}

// WithClock replaces the time source used for createdAt/updatedAt.
func (s *RecipeService) WithClock(now func() time.Time) *RecipeService {
	s.now = now
	return s
}

// timestamp is truncated to what every supported database stores.
func (s *RecipeService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// ListRecipes honours exactly one filter dimension: search, then category,
// then sortBy. With none set it returns every recipe.
func (s *RecipeService) ListRecipes(ctx context.Context, filter types.RecipeFilter) ([]*types.RecipeView, error) {
	search := strings.TrimSpace(filter.Search)
	category := strings.TrimSpace(filter.Category)
	sortBy := strings.TrimSpace(filter.SortBy)

	var err error
	var views []*types.RecipeView
	switch {
	case search != "":
		views, err = s.list(s.recipes.SearchByTitleOrDescription(ctx, search))
	case category != "":
		views, err = s.list(s.recipes.FindByCategory(ctx, category))
	case sortBy != "":
		if !repository.IsKnownSortField(sortBy) {
			s.log.Debug("Unknown sort field, returning unordered list", "sort_by", sortBy)
		}
		views, err = s.list(s.recipes.FindAllOrderedBy(ctx, sortBy))
	default:
		views, err = s.list(s.recipes.FindAll(ctx))
	}
	if err != nil {
		s.log.Error("Failed to list recipes", "error", err)
		return nil, apperr.Wrap("list recipes", err)
	}
	return views, nil
}

func (s *RecipeService) list(recipes []*model.Recipe, err error) ([]*types.RecipeView, error) {
	if err != nil {
		return nil, err
	}
	return ToRecipeViews(recipes), nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*types.RecipeView, error) {
	recipe, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap("get recipe", err)
	}
	return ToRecipeView(recipe), nil
}

// CreateRecipe validates req and persists a new aggregate
func (s *RecipeService) CreateRecipe(ctx context.Context, req *types.RecipeCreateRequest) (*types.RecipeView, error) {
	input, err := s.prepareRecipe(req)
	if err != nil {
		return nil, err
	}

	saved, err := s.recipes.Save(ctx, newRecipe(input, s.timestamp()))
	if err != nil {
		s.log.Error("Failed to create recipe", "title", input.Title, "error", err)
		return nil, apperr.Wrap("create recipe", err)
	}

	s.log.Info("Recipe created", "recipe_id", saved.ID, "ingredients", len(saved.Ingredients), "instructions", len(saved.Instructions))
	return ToRecipeView(saved), nil
}

// UpdateRecipe overwrites every scalar and replaces both child collections.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id uuid.UUID, req *types.RecipeUpdateRequest) (*types.RecipeView, error) {
	var input *types.RecipeCreateRequest
	if req != nil {
		create := types.RecipeCreateRequest(*req)
		input = &create
	}
	input, err := s.prepareRecipe(input)
	if err != nil {
		return nil, err
	}

	recipe, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap("update recipe", err)
	}

	applyRecipeInput(recipe, input)
	recipe.Touch(s.timestamp())

	saved, err := s.recipes.Save(ctx, recipe)
	if err != nil {
		s.log.Error("Failed to update recipe", "recipe_id", id, "error", err)
		return nil, apperr.Wrap("update recipe", err)
	}

	s.log.Info("Recipe updated", "recipe_id", id)
	return ToRecipeView(saved), nil
}

// DeleteRecipe removes the recipe and all of its children
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	exists, err := s.recipes.ExistsByID(ctx, id)
	if err != nil {
		return apperr.Wrap("delete recipe", err)
	}
	if !exists {
		return apperr.NotFound("recipe", id)
	}

	if err := s.recipes.DeleteByID(ctx, id); err != nil {
		s.log.Error("Failed to delete recipe", "recipe_id", id, "error", err)
		return apperr.Wrap("delete recipe", err)
	}

	s.log.Info("Recipe deleted", "recipe_id", id)
	return nil
}

// SetRecipeImage stores imageURL on the recipe and returns the refreshed view.
func (s *RecipeService) SetRecipeImage(ctx context.Context, id uuid.UUID, imageURL string) (*types.RecipeView, error) {
	recipe, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Wrap("set recipe image", err)
	}
	recipe.Touch(s.timestamp())

	if err := s.recipes.UpdateImageURL(ctx, id, imageURL, recipe.UpdatedAt); err != nil {
		return nil, apperr.Wrap("set recipe image", err)
	}
	recipe.ImageURL = imageURL

	s.log.Info("Recipe image updated", "recipe_id", id)
	return ToRecipeView(recipe), nil
}

// Exists reports whether a recipe with id is stored.
func (s *RecipeService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := s.recipes.ExistsByID(ctx, id)
	return exists, apperr.Wrap("check recipe exists", err)
}

// prepareRecipe returns a trimmed copy of req, or a ValidationError listing
// every offending field.
func (s *RecipeService) prepareRecipe(req *types.RecipeCreateRequest) (*types.RecipeCreateRequest, error) {
	if req == nil {
		return nil, apperr.Validation(apperr.FieldError{Field: "body", Message: "must not be empty"})
	}
	input := normalizeRecipe(req)

	fields := fieldErrors(s.validate.Struct(input))
	fields = append(fields, duplicateSteps(input.Instructions)...)
	if len(fields) > 0 {
		return nil, apperr.Validation(fields...)
	}
	return input, nil
}

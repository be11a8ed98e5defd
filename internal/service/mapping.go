package service

import (
	"sort"
	"time"

	"github.com/familyllc/recipe-manager/backend/internal/model"
	"github.com/familyllc/recipe-manager/backend/internal/types"
)

// ToRecipeView renders a recipe with ingredients in entry order and
// instructions in ascending step order.
func ToRecipeView(r *model.Recipe) *types.RecipeView {
	ingredients := make([]model.Ingredient, len(r.Ingredients))
	copy(ingredients, r.Ingredients)
	sort.SliceStable(ingredients, func(i, j int) bool {
		return ingredients[i].Position < ingredients[j].Position
	})

	instructions := make([]model.Instruction, len(r.Instructions))
	copy(instructions, r.Instructions)
	sort.SliceStable(instructions, func(i, j int) bool {
		return instructions[i].StepNumber < instructions[j].StepNumber
	})

	view := &types.RecipeView{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		TotalTime:    r.PrepTime + r.CookTime,
		Servings:     r.Servings,
		Category:     r.Category,
		ImageURL:     r.ImageURL,
		Ingredients:  make([]types.IngredientView, 0, len(ingredients)),
		Instructions: make([]types.InstructionView, 0, len(instructions)),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	for _, ing := range ingredients {
		view.Ingredients = append(view.Ingredients, types.IngredientView{
			ID:       ing.ID,
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		})
	}
	for _, ins := range instructions {
		view.Instructions = append(view.Instructions, types.InstructionView{
			ID:          ins.ID,
			StepNumber:  ins.StepNumber,
			Description: ins.Description,
		})
	}
	return view
}

func ToRecipeViews(recipes []*model.Recipe) []*types.RecipeView {
	views := make([]*types.RecipeView, 0, len(recipes))
	for _, r := range recipes {
		views = append(views, ToRecipeView(r))
	}
	return views
}

// applyRecipeInput overwrites the recipe's scalars and rebuilds its children
// from req. Child ids are never taken from input.
func applyRecipeInput(r *model.Recipe, req *types.RecipeCreateRequest) {
	r.Title = req.Title
	r.Description = req.Description
	r.PrepTime = req.PrepTime
	r.CookTime = req.CookTime
	r.Servings = req.Servings
	r.Category = req.Category
	r.ImageURL = req.ImageURL

	r.Ingredients = make([]model.Ingredient, 0, len(req.Ingredients))
	for _, in := range req.Ingredients {
		r.Ingredients = append(r.Ingredients, model.Ingredient{
			Name:     in.Name,
			Quantity: in.Quantity,
			Unit:     in.Unit,
		})
	}
	r.Instructions = make([]model.Instruction, 0, len(req.Instructions))
	for _, in := range req.Instructions {
		r.Instructions = append(r.Instructions, model.Instruction{
			StepNumber:  in.StepNumber,
			Description: in.Description,
		})
	}
}

// newRecipe builds an unsaved aggregate stamped with now.
func newRecipe(req *types.RecipeCreateRequest, now time.Time) *model.Recipe {
	r := &model.Recipe{CreatedAt: now, UpdatedAt: now}
	applyRecipeInput(r, req)
	return r
}

func ToTaskView(t *model.Task) *types.TaskView {
	return &types.TaskView{
		ID:        t.ID,
		Name:      t.Name,
		Complete:  t.Complete,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

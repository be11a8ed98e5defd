package testhelpers

import (
	"github.com/familyllc/recipe-manager/backend/internal/types"
)

// TeaRequest is the smallest complete recipe: one ingredient, one step.
func TeaRequest() *types.RecipeCreateRequest {
	return &types.RecipeCreateRequest{
		Title:    "Tea",
		PrepTime: 2,
		CookTime: 0,
		Servings: 1,
		Category: "Beverage",
		Ingredients: []types.IngredientInput{
			{Name: "Tea bag", Quantity: "1"},
		},
		Instructions: []types.InstructionInput{
			{StepNumber: 1, Description: "Steep"},
		},
	}
}

// SpaghettiRequest returns a recipe with several children, steps given out of order.
func SpaghettiRequest() *types.RecipeCreateRequest {
	return &types.RecipeCreateRequest{
		Title:       "Spaghetti Carbonara",
		Description: "Classic Roman pasta with eggs and pecorino",
		PrepTime:    10,
		CookTime:    15,
		Servings:    4,
		Category:    "Dinner",
		Ingredients: []types.IngredientInput{
			{Name: "Spaghetti", Quantity: "400", Unit: "g"},
			{Name: "Guanciale", Quantity: "150", Unit: "g"},
			{Name: "Eggs", Quantity: "4"},
		},
		Instructions: []types.InstructionInput{
			{StepNumber: 3, Description: "Toss the pasta with the egg mixture."},
			{StepNumber: 1, Description: "Boil the pasta."},
			{StepNumber: 2, Description: "Crisp the guanciale."},
		},
	}
}

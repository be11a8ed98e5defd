package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/familyllc/recipe-manager/backend/internal/apperr"
	"github.com/familyllc/recipe-manager/backend/internal/logger"
	"github.com/familyllc/recipe-manager/backend/internal/model"
	"github.com/familyllc/recipe-manager/backend/internal/repository"
	"github.com/familyllc/recipe-manager/backend/internal/testhelpers"
	"github.com/familyllc/recipe-manager/backend/internal/types"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func setupRecipeService(t *testing.T) (*RecipeService, *gorm.DB, *fakeClock) {
	db := testhelpers.SetupTestDatabase(t)
	clock := &fakeClock{t: time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)}
	svc := NewRecipeService(repository.NewRecipeRepository(db, logger.NewNop()), logger.NewNop()).
		WithClock(clock.Now)
	return svc, db, clock
}

func TestCreateRecipeTea(t *testing.T) {
	svc, _, clock := setupRecipeService(t)

	view, err := svc.CreateRecipe(context.Background(), testhelpers.TeaRequest())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, view.ID)
	assert.Equal(t, "Tea", view.Title)
	assert.Equal(t, 2, view.TotalTime)
	assert.Len(t, view.Ingredients, 1)
	assert.Len(t, view.Instructions, 1)
	assert.Equal(t, view.CreatedAt, view.UpdatedAt)
	assert.Equal(t, clock.t, view.CreatedAt)
}

func TestCreateRecipeRoundTrip(t *testing.T) {
	svc, _, _ := setupRecipeService(t)
	ctx := context.Background()
	req := testhelpers.SpaghettiRequest()

	created, err := svc.CreateRecipe(ctx, req)
	require.NoError(t, err)
	require.Len(t, created.Ingredients, len(req.Ingredients))
	require.Len(t, created.Instructions, len(req.Instructions))

	got, err := svc.GetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, req.Title, got.Title)
	assert.Equal(t, req.Description, got.Description)
	assert.Equal(t, req.PrepTime, got.PrepTime)
	assert.Equal(t, req.CookTime, got.CookTime)
	assert.Equal(t, req.Servings, got.Servings)
	assert.Equal(t, req.Category, got.Category)

	names := make([]string, 0, len(got.Ingredients))
	for _, ing := range got.Ingredients {
		names = append(names, ing.Name)
	}
	assert.Equal(t, []string{"Spaghetti", "Guanciale", "Eggs"}, names)

	for i, ins := range got.Instructions {
		assert.Equal(t, i+1, ins.StepNumber)
	}
	assert.Equal(t, "Boil the pasta.", got.Instructions[0].Description)
	assert.WithinDuration(t, created.CreatedAt, got.CreatedAt, 0)
}

func TestCreateRecipeDoesNotModifyRequest(t *testing.T) {
	svc, _, _ := setupRecipeService(t)
	req := testhelpers.TeaRequest()
	req.Title = "  Tea  "

	view, err := svc.CreateRecipe(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Tea", view.Title)
	assert.Equal(t, "  Tea  ", req.Title)
}

func TestCreateRecipeValidation(t *testing.T) {
	svc, db, _ := setupRecipeService(t)

	cases := []struct {
		name   string
		mutate func(*types.RecipeCreateRequest)
		field  string
	}{
		{"blank title", func(r *types.RecipeCreateRequest) { r.Title = "   " }, "title"},
		{"negative prep time", func(r *types.RecipeCreateRequest) { r.PrepTime = -1 }, "prepTime"},
		{"negative cook time", func(r *types.RecipeCreateRequest) { r.CookTime = -5 }, "cookTime"},
		{"zero servings", func(r *types.RecipeCreateRequest) { r.Servings = 0 }, "servings"},
		{"blank ingredient", func(r *types.RecipeCreateRequest) { r.Ingredients[0].Name = "" }, "ingredients[0].name"},
		{"blank step", func(r *types.RecipeCreateRequest) { r.Instructions[0].Description = " " }, "instructions[0].description"},
		{"step zero", func(r *types.RecipeCreateRequest) { r.Instructions[0].StepNumber = 0 }, "instructions[0].stepNumber"},
		{"duplicate step", func(r *types.RecipeCreateRequest) {
			r.Instructions = append(r.Instructions, types.InstructionInput{StepNumber: 1, Description: "Again"})
		}, "instructions[1].stepNumber"},
		{"bad image url", func(r *types.RecipeCreateRequest) { r.ImageURL = "not a url" }, "imageUrl"},
		{"prep time overflows column", func(r *types.RecipeCreateRequest) { r.PrepTime = 3_000_000_000 }, "prepTime"},
		{"cook time overflows column", func(r *types.RecipeCreateRequest) { r.CookTime = math.MaxInt32 + 1 }, "cookTime"},
		{"servings overflow column", func(r *types.RecipeCreateRequest) { r.Servings = 5_000_000_000 }, "servings"},
		{"step number overflows column", func(r *types.RecipeCreateRequest) { r.Instructions[0].StepNumber = math.MaxInt32 + 1 }, "instructions[0].stepNumber"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := testhelpers.TeaRequest()
			tc.mutate(req)

			_, err := svc.CreateRecipe(context.Background(), req)
			require.Error(t, err)

			var verr *apperr.ValidationError
			require.ErrorAs(t, err, &verr)
			fields := make([]string, 0, len(verr.Fields))
			for _, f := range verr.Fields {
				fields = append(fields, f.Field)
			}
			assert.Contains(t, fields, tc.field)
		})
	}

	var count int64
	require.NoError(t, db.Model(&model.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)

	_, err := svc.CreateRecipe(context.Background(), nil)
	assert.True(t, apperr.IsValidation(err))
}

func TestUpdateRecipeReplacesChildren(t *testing.T) {
	svc, db, clock := setupRecipeService(t)
	ctx := context.Background()

	req := testhelpers.SpaghettiRequest()
	created, err := svc.CreateRecipe(ctx, req)
	require.NoError(t, err)
	require.Len(t, created.Ingredients, 3)

	clock.Advance(time.Hour)
	updated, err := svc.UpdateRecipe(ctx, created.ID, &types.RecipeUpdateRequest{
		Title:        "Aglio e Olio",
		PrepTime:     5,
		CookTime:     10,
		Servings:     2,
		Category:     "Dinner",
		Ingredients:  []types.IngredientInput{{Name: "Garlic", Quantity: "4", Unit: "cloves"}},
		Instructions: []types.InstructionInput{{StepNumber: 1, Description: "Fry the garlic."}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Aglio e Olio", updated.Title)
	assert.Equal(t, "", updated.Description)
	assert.Len(t, updated.Ingredients, 1)
	assert.WithinDuration(t, created.CreatedAt, updated.CreatedAt, 0)
	assert.Equal(t, clock.t, updated.UpdatedAt)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	var ingredients int64
	require.NoError(t, db.Model(&model.Ingredient{}).Where("recipe_id = ?", created.ID).Count(&ingredients).Error)
	assert.EqualValues(t, 1, ingredients)

	got, err := svc.GetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Garlic", got.Ingredients[0].Name)
	assert.Equal(t, "Fry the garlic.", got.Instructions[0].Description)
}

func TestUnknownIDIsNotFound(t *testing.T) {
	svc, _, _ := setupRecipeService(t)
	ctx := context.Background()
	id := uuid.New()

	_, err := svc.GetRecipe(ctx, id)
	assert.True(t, apperr.IsNotFound(err))

	update := types.RecipeUpdateRequest(*testhelpers.TeaRequest())
	_, err = svc.UpdateRecipe(ctx, id, &update)
	assert.True(t, apperr.IsNotFound(err))

	err = svc.DeleteRecipe(ctx, id)
	assert.True(t, apperr.IsNotFound(err))
}

func TestDeleteRecipeCascades(t *testing.T) {
	svc, db, _ := setupRecipeService(t)
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, testhelpers.SpaghettiRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRecipe(ctx, created.ID))

	var ingredients, instructions int64
	require.NoError(t, db.Model(&model.Ingredient{}).Where("recipe_id = ?", created.ID).Count(&ingredients).Error)
	require.NoError(t, db.Model(&model.Instruction{}).Where("recipe_id = ?", created.ID).Count(&instructions).Error)
	assert.Zero(t, ingredients)
	assert.Zero(t, instructions)

	_, err = svc.GetRecipe(ctx, created.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestListRecipesFilterPrecedence(t *testing.T) {
	svc, _, clock := setupRecipeService(t)
	ctx := context.Background()

	create := func(title, description, category string, prep int) {
		req := testhelpers.TeaRequest()
		req.Title, req.Description, req.Category, req.PrepTime = title, description, category, prep
		_, err := svc.CreateRecipe(ctx, req)
		require.NoError(t, err)
		clock.Advance(time.Minute)
	}
	create("Pancakes", "Fluffy", "Breakfast", 10)
	create("Omelette", "Quick breakfast eggs", "Breakfast", 5)
	create("Chili", "Spicy", "Dinner", 20)

	titles := func(views []*types.RecipeView) []string {
		out := make([]string, 0, len(views))
		for _, v := range views {
			out = append(out, v.Title)
		}
		return out
	}

	all, err := svc.ListRecipes(ctx, types.RecipeFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	found, err := svc.ListRecipes(ctx, types.RecipeFilter{Search: "chili", Category: "Breakfast", SortBy: "title"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Chili"}, titles(found))

	found, err = svc.ListRecipes(ctx, types.RecipeFilter{Search: "breakfast"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Omelette"}, titles(found))

	found, err = svc.ListRecipes(ctx, types.RecipeFilter{Category: "Breakfast", SortBy: "prepTime"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Pancakes", "Omelette"}, titles(found))

	found, err = svc.ListRecipes(ctx, types.RecipeFilter{SortBy: "prepTime"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Omelette", "Pancakes", "Chili"}, titles(found))

	found, err = svc.ListRecipes(ctx, types.RecipeFilter{SortBy: "newest"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Chili", "Omelette", "Pancakes"}, titles(found))

	found, err = svc.ListRecipes(ctx, types.RecipeFilter{Search: "   ", SortBy: "title"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Chili", "Omelette", "Pancakes"}, titles(found))

	found, err = svc.ListRecipes(ctx, types.RecipeFilter{SortBy: "calories"})
	require.NoError(t, err)
	assert.Len(t, found, 3)
}

func TestListRecipesSearchIgnoresAccentedCase(t *testing.T) {
	svc, _, _ := setupRecipeService(t)
	ctx := context.Background()

	req := testhelpers.TeaRequest()
	req.Title = "ÉCLAIR au chocolat"
	_, err := svc.CreateRecipe(ctx, req)
	require.NoError(t, err)

	for _, term := range []string{"éclair", "ÉCLAIR", "ÉCLAIR au chocolat"} {
		found, err := svc.ListRecipes(ctx, types.RecipeFilter{Search: term})
		require.NoError(t, err)
		assert.Len(t, found, 1, term)
	}
}

type failingRepo struct {
	repository.RecipeRepository
}

func (failingRepo) FindAll(context.Context) ([]*model.Recipe, error) {
	return nil, assert.AnError
}

func TestListRecipesWrapsUnknownErrors(t *testing.T) {
	svc := NewRecipeService(failingRepo{}, logger.NewNop())

	_, err := svc.ListRecipes(context.Background(), types.RecipeFilter{})
	require.Error(t, err)
	assert.True(t, apperr.IsPersistence(err))
	assert.ErrorIs(t, err, assert.AnError)
}

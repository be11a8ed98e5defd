package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/familyllc/recipe-manager/backend/internal/logger"
	"github.com/familyllc/recipe-manager/backend/internal/repository"
	"github.com/familyllc/recipe-manager/backend/internal/service"
	"github.com/familyllc/recipe-manager/backend/internal/testhelpers"
	"github.com/familyllc/recipe-manager/backend/internal/types"
)

func TestParseDefaultFixtures(t *testing.T) {
	fixtures, err := parseFixtures(defaultRecipes)
	require.NoError(t, err)
	require.Len(t, fixtures, 2)

	req := fixtures[1].request()
	assert.Equal(t, "Homemade Chocolate Chip Cookies", req.Title)
	assert.Len(t, req.Ingredients, 9)
	assert.Equal(t, "2 1/4", req.Ingredients[5].Quantity)
	require.Len(t, req.Instructions, 8)
	assert.Equal(t, 8, req.Instructions[7].StepNumber)
}

func TestSeedIsIdempotent(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	log := logger.NewNop()
	recipes := service.NewRecipeService(repository.NewRecipeRepository(db, log), log)
	fixtures, err := parseFixtures(defaultRecipes)
	require.NoError(t, err)

	created, err := seed(context.Background(), recipes, fixtures, log)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	created, err = seed(context.Background(), recipes, fixtures, log)
	require.NoError(t, err)
	assert.Zero(t, created)

	all, err := recipes.ListRecipes(context.Background(), types.RecipeFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestParseFixturesRejectsGarbage(t *testing.T) {
	_, err := parseFixtures([]byte("title: [unclosed"))
	assert.Error(t, err)
}

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/familyllc/recipe-manager/backend/config"
	"github.com/familyllc/recipe-manager/backend/internal/api"
	"github.com/familyllc/recipe-manager/backend/internal/apperr"
	"github.com/familyllc/recipe-manager/backend/internal/logger"
	"github.com/familyllc/recipe-manager/backend/internal/model"
	"github.com/familyllc/recipe-manager/backend/internal/repository"
	"github.com/familyllc/recipe-manager/backend/internal/server"
	"github.com/familyllc/recipe-manager/backend/internal/service"
	"github.com/familyllc/recipe-manager/backend/internal/testhelpers"
	"github.com/familyllc/recipe-manager/backend/internal/types"
)

func childCounts(t *testing.T, db *gorm.DB, id uuid.UUID) (int64, int64) {
	t.Helper()
	var ingredients, instructions int64
	require.NoError(t, db.Model(&model.Ingredient{}).Where("recipe_id = ?", id).Count(&ingredients).Error)
	require.NoError(t, db.Model(&model.Instruction{}).Where("recipe_id = ?", id).Count(&instructions).Error)
	return ingredients, instructions
}

func TestRecipeLifecycleOnPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	db := testhelpers.SetupPostgresDatabase(t)
	log := logger.NewNop()
	ctx := context.Background()
	svc := service.NewRecipeService(repository.NewRecipeRepository(db, log), log)

	tea, err := svc.CreateRecipe(ctx, testhelpers.TeaRequest())
	require.NoError(t, err)
	assert.Equal(t, tea.CreatedAt, tea.UpdatedAt)

	created, err := svc.CreateRecipe(ctx, testhelpers.SpaghettiRequest())
	require.NoError(t, err)

	got, err := svc.GetRecipe(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, "Boil the pasta.", got.Instructions[0].Description)

	update := types.RecipeUpdateRequest(*testhelpers.TeaRequest())
	_, err = svc.UpdateRecipe(ctx, created.ID, &update)
	require.NoError(t, err)
	ingredients, instructions := childCounts(t, db, created.ID)
	assert.EqualValues(t, 1, ingredients)
	assert.EqualValues(t, 1, instructions)

	found, err := svc.ListRecipes(ctx, types.RecipeFilter{Search: "TEA", Category: "Dinner"})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	require.NoError(t, svc.DeleteRecipe(ctx, created.ID))
	ingredients, instructions = childCounts(t, db, created.ID)
	assert.Zero(t, ingredients)
	assert.Zero(t, instructions)

	err = svc.DeleteRecipe(ctx, created.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestForeignKeyCascadeOnPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	db := testhelpers.SetupPostgresDatabase(t)
	log := logger.NewNop()
	ctx := context.Background()
	svc := service.NewRecipeService(repository.NewRecipeRepository(db, log), log)

	created, err := svc.CreateRecipe(ctx, testhelpers.SpaghettiRequest())
	require.NoError(t, err)

	// Bypass the repository so only the schema's ON DELETE CASCADE removes children.
	require.NoError(t, db.Exec("DELETE FROM recipes WHERE id = ?", created.ID).Error)
	ingredients, instructions := childCounts(t, db, created.ID)
	assert.Zero(t, ingredients)
	assert.Zero(t, instructions)

	err = db.Exec("INSERT INTO ingredients (id, recipe_id, position, name) VALUES (?, ?, 0, 'Orphan')",
		uuid.New(), uuid.New()).Error
	assert.Error(t, err)
}

func TestHTTPOnPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupPostgresDatabase(t)
	log := logger.NewNop()
	recipes := service.NewRecipeService(repository.NewRecipeRepository(db, log), log)

	srv := server.New(&config.Config{ServerHost: "localhost", ServerPort: "0"}, server.Dependencies{
		Services: api.Services{
			DB:      db,
			Recipes: recipes,
			Images:  service.NewImageService(nil, recipes, log),
			Tasks:   service.NewTaskService(repository.NewTaskRepository(db, log), log),
		},
	}, log)

	body, err := json.Marshal(testhelpers.SpaghettiRequest())
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/recipes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created types.RecipeView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/recipes/"+created.ID.String(), nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

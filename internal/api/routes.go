package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/familyllc/recipe-manager/backend/internal/logger"
	"github.com/familyllc/recipe-manager/backend/internal/service"
)

// Services bundles everything the HTTP layer calls into.
type Services struct {
	DB      *gorm.DB
	Recipes service.IRecipeService
	Images  service.IImageService
	Tasks   service.ITaskService
}

// Guards are middleware placed in front of mutating routes.
type Guards struct {
	// Write runs before every route that modifies data.
	Write []gin.HandlerFunc
	// RecipeWrite additionally runs before recipe and recipe image writes.
	RecipeWrite []gin.HandlerFunc
}

// RegisterRoutes mounts every endpoint on router.
func RegisterRoutes(router gin.IRouter, svc Services, guards Guards, baseLog *logger.Logger) {
	recipeGuards := make([]gin.HandlerFunc, 0, len(guards.Write)+len(guards.RecipeWrite))
	recipeGuards = append(recipeGuards, guards.Write...)
	recipeGuards = append(recipeGuards, guards.RecipeWrite...)

	NewHealthHandler(svc.DB, baseLog).RegisterRoutes(router)
	NewRecipeHandler(svc.Recipes, baseLog).RegisterRoutes(router, recipeGuards...)
	NewImageHandler(svc.Images, baseLog).RegisterRoutes(router, recipeGuards...)
	NewTaskHandler(svc.Tasks, baseLog).RegisterRoutes(router, guards.Write...)
}

func withGuards(guards []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(guards)+1)
	chain = append(chain, guards...)
	return append(chain, handler)
}

package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/familyllc/recipe-manager/backend/config"
	"github.com/familyllc/recipe-manager/backend/internal/database"
	"github.com/familyllc/recipe-manager/backend/internal/logger"
	"github.com/familyllc/recipe-manager/backend/internal/repository"
	"github.com/familyllc/recipe-manager/backend/internal/service"
	"github.com/familyllc/recipe-manager/backend/internal/types"
	"github.com/familyllc/recipe-manager/backend/migrations"
)

//go:embed recipes.yaml
var defaultRecipes []byte

// RecipeFixture is one sample recipe. Steps are numbered in list order.
type RecipeFixture struct {
	Title       string                  `yaml:"title"`
	Description string                  `yaml:"description"`
	PrepTime    int                     `yaml:"prepTime"`
	CookTime    int                     `yaml:"cookTime"`
	Servings    int                     `yaml:"servings"`
	Category    string                  `yaml:"category"`
	ImageURL    string                  `yaml:"imageUrl"`
	Ingredients []types.IngredientInput `yaml:"ingredients"`
	Steps       []string                `yaml:"steps"`
}

func (f RecipeFixture) request() *types.RecipeCreateRequest {
	req := &types.RecipeCreateRequest{
		Title:       f.Title,
		Description: f.Description,
		PrepTime:    f.PrepTime,
		CookTime:    f.CookTime,
		Servings:    f.Servings,
		Category:    f.Category,
		ImageURL:    f.ImageURL,
		Ingredients: f.Ingredients,
	}
	for i, step := range f.Steps {
		req.Instructions = append(req.Instructions, types.InstructionInput{StepNumber: i + 1, Description: step})
	}
	return req
}

func parseFixtures(data []byte) ([]RecipeFixture, error) {
	var fixtures []RecipeFixture
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("failed to parse recipe fixtures: %w", err)
	}
	return fixtures, nil
}

// seed creates every fixture whose title is not stored yet and returns how
// many were created.
func seed(ctx context.Context, recipes *service.RecipeService, fixtures []RecipeFixture, log *logger.Logger) (int, error) {
	created := 0
	for _, f := range fixtures {
		existing, err := recipes.ListRecipes(ctx, types.RecipeFilter{Search: f.Title})
		if err != nil {
			return created, err
		}
		if hasTitle(existing, f.Title) {
			log.Info("Recipe already present, skipping", "title", f.Title)
			continue
		}

		view, err := recipes.CreateRecipe(ctx, f.request())
		if err != nil {
			return created, fmt.Errorf("failed to seed %q: %w", f.Title, err)
		}
		log.Info("Seeded recipe", "recipe_id", view.ID, "title", view.Title)
		created++
	}
	return created, nil
}

func hasTitle(views []*types.RecipeView, title string) bool {
	for _, v := range views {
		if strings.EqualFold(strings.TrimSpace(v.Title), strings.TrimSpace(title)) {
			return true
		}
	}
	return false
}

func main() {
	file := flag.String("file", "", "YAML file of recipes to load (defaults to the built-in samples)")
	flag.Parse()

	data := defaultRecipes
	if *file != "" {
		var err error
		if data, err = os.ReadFile(*file); err != nil {
			log.Fatalf("Failed to read %s: %v", *file, err)
		}
	}
	fixtures, err := parseFixtures(data)
	if err != nil {
		log.Fatal(err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	db, err := database.Open(cfg, appLog)
	if err != nil {
		appLog.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close(db)

	if err := database.Migrate(db, migrations.FS, appLog); err != nil {
		appLog.Fatal("Failed to migrate database", "error", err)
	}

	recipes := service.NewRecipeService(repository.NewRecipeRepository(db, appLog), appLog)
	created, err := seed(context.Background(), recipes, fixtures, appLog)
	if err != nil {
		appLog.Fatal("Seeding failed", "error", err, "created", created)
	}
	appLog.Info("Seeding complete", "created", created, "total", len(fixtures))
}

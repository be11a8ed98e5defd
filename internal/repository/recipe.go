package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/familyllc/recipe-manager/backend/internal/apperr"
	"github.com/familyllc/recipe-manager/backend/internal/logger"
	"github.com/familyllc/recipe-manager/backend/internal/model"
)

const recipeResource = "recipe"

// RecipeRepository is the persistence boundary of the recipe aggregate.
// Every mutating call writes the parent and its children in one transaction.
type RecipeRepository interface {
	FindAll(ctx context.Context) ([]*model.Recipe, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	FindByTitleContaining(ctx context.Context, substring string, caseInsensitive bool) ([]*model.Recipe, error)
	SearchByTitleOrDescription(ctx context.Context, term string) ([]*model.Recipe, error)
	FindByCategory(ctx context.Context, category string) ([]*model.Recipe, error)
	FindAllOrderedBy(ctx context.Context, field string) ([]*model.Recipe, error)
	Save(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
	UpdateImageURL(ctx context.Context, id uuid.UUID, imageURL string, updatedAt time.Time) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

type recipeRepository struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeRepository(db *gorm.DB, baseLog *logger.Logger) RecipeRepository {
	return &recipeRepository{db: db, log: baseLog.With("repo", "RecipeRepository")}
}

// orderings maps accepted sort keys (lower-cased) to ORDER BY clauses.
var orderings = map[string]string{
	"title":      "title ASC",
	"category":   "category ASC",
	"preptime":   "prep_time ASC",
	"prep_time":  "prep_time ASC",
	"newest":     "created_at DESC",
	"createdat":  "created_at DESC",
	"created_at": "created_at DESC",
}

// IsKnownSortField reports whether FindAllOrderedBy applies an ordering for field.
func IsKnownSortField(field string) bool {
	_, ok := orderings[strings.ToLower(strings.TrimSpace(field))]
	return ok
}

func (r *recipeRepository) withChildren(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Instructions", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_number ASC").Order("position ASC")
		})
}

func (r *recipeRepository) find(ctx context.Context, op string, scope func(*gorm.DB) *gorm.DB) ([]*model.Recipe, error) {
	var recipes []*model.Recipe
	if err := scope(r.withChildren(ctx)).Find(&recipes).Error; err != nil {
		return nil, apperr.Persistence(op, err)
	}
	return recipes, nil
}

func (r *recipeRepository) FindAll(ctx context.Context) ([]*model.Recipe, error) {
	return r.find(ctx, "find all recipes", func(db *gorm.DB) *gorm.DB { return db })
}

func (r *recipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := r.withChildren(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(recipeResource, id)
		}
		return nil, apperr.Persistence("find recipe", err)
	}
	return &recipe, nil
}

func (r *recipeRepository) FindByTitleContaining(ctx context.Context, substring string, caseInsensitive bool) ([]*model.Recipe, error) {
	return r.find(ctx, "find recipes by title", func(db *gorm.DB) *gorm.DB {
		if caseInsensitive {
			return db.Where(`LOWER(title) LIKE LOWER(?) ESCAPE '\'`, likePattern(substring))
		}
		// SQLite's LIKE ignores ASCII case, so exact matching goes through the
		// dialect's substring function instead.
		if r.db.Dialector.Name() == "postgres" {
			return db.Where("strpos(title, ?) > 0", substring)
		}
		return db.Where("instr(title, ?) > 0", substring)
	})
}

func (r *recipeRepository) SearchByTitleOrDescription(ctx context.Context, term string) ([]*model.Recipe, error) {
	like := likePattern(term)
	return r.find(ctx, "search recipes", func(db *gorm.DB) *gorm.DB {
		return db.Where(`LOWER(title) LIKE LOWER(?) ESCAPE '\' OR LOWER(description) LIKE LOWER(?) ESCAPE '\'`, like, like)
	})
}

func (r *recipeRepository) FindByCategory(ctx context.Context, category string) ([]*model.Recipe, error) {
	return r.find(ctx, "find recipes by category", func(db *gorm.DB) *gorm.DB {
		return db.Where("category = ?", category)
	})
}

func (r *recipeRepository) FindAllOrderedBy(ctx context.Context, field string) ([]*model.Recipe, error) {
	order, ok := orderings[strings.ToLower(strings.TrimSpace(field))]
	if !ok {
		return r.FindAll(ctx)
	}
	return r.find(ctx, "find ordered recipes", func(db *gorm.DB) *gorm.DB {
		return db.Order(order).Order("id ASC")
	})
}

// Save inserts the recipe when it has no id yet and otherwise overwrites the
// stored row and replaces its children wholesale. Updating an id that is no
// longer stored fails with NotFound rather than re-inserting it.
func (r *recipeRepository) Save(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if recipe.ID == uuid.Nil {
			recipe.ID = uuid.New()
			if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
				return err
			}
			return createChildren(tx, recipe)
		}

		res := tx.Model(&model.Recipe{}).Where("id = ?", recipe.ID).Updates(map[string]interface{}{
			"title":       recipe.Title,
			"description": recipe.Description,
			"prep_time":   recipe.PrepTime,
			"cook_time":   recipe.CookTime,
			"servings":    recipe.Servings,
			"category":    recipe.Category,
			"image_url":   recipe.ImageURL,
			"updated_at":  recipe.UpdatedAt,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound(recipeResource, recipe.ID)
		}
		if err := deleteChildren(tx, recipe.ID); err != nil {
			return err
		}
		return createChildren(tx, recipe)
	})
	if err != nil {
		return nil, apperr.Wrap("save recipe", err)
	}
	return recipe, nil
}

func (r *recipeRepository) UpdateImageURL(ctx context.Context, id uuid.UUID, imageURL string, updatedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", id).Updates(map[string]interface{}{
		"image_url":  imageURL,
		"updated_at": updatedAt,
	})
	if res.Error != nil {
		return apperr.Persistence("update recipe image", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(recipeResource, id)
	}
	return nil
}

func (r *recipeRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteChildren(tx, id); err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Recipe{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound(recipeResource, id)
		}
		return nil
	})
	return apperr.Wrap("delete recipe", err)
}

func (r *recipeRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Recipe{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, apperr.Persistence("check recipe exists", err)
	}
	return count > 0, nil
}

func createChildren(tx *gorm.DB, recipe *model.Recipe) error {
	recipe.AdoptChildren()
	if len(recipe.Ingredients) > 0 {
		if err := tx.Create(&recipe.Ingredients).Error; err != nil {
			return err
		}
	}
	if len(recipe.Instructions) > 0 {
		if err := tx.Create(&recipe.Instructions).Error; err != nil {
			return err
		}
	}
	return nil
}

func deleteChildren(tx *gorm.DB, recipeID uuid.UUID) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&model.Ingredient{}).Error; err != nil {
		return err
	}
	return tx.Where("recipe_id = ?", recipeID).Delete(&model.Instruction{}).Error
}

// likePattern escapes LIKE wildcards in s and wraps it for substring matching.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

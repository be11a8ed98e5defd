package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe is the aggregate root. Ingredients and Instructions are owned
// exclusively and reference the recipe only through RecipeID.
type Recipe struct {
	ID           uuid.UUID     `gorm:"type:varchar(36);primarykey"`
	Title        string        `gorm:"size:255;not null"`
	Description  string        `gorm:"type:text"`
	PrepTime     int           `gorm:"column:prep_time;not null"`
	CookTime     int           `gorm:"column:cook_time;not null"`
	Servings     int           `gorm:"not null"`
	Category     string        `gorm:"size:100;index"`
	ImageURL     string        `gorm:"column:image_url;size:1024"`
	Ingredients  []Ingredient  `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Instructions []Instruction `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time     `gorm:"not null;autoCreateTime:false"`
	UpdatedAt    time.Time     `gorm:"not null;autoUpdateTime:false"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// BeforeCreate assigns an id when the caller did not.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// AdoptChildren points every child at the recipe and gives new children ids.
func (r *Recipe) AdoptChildren() {
	for i := range r.Ingredients {
		r.Ingredients[i].RecipeID = r.ID
		r.Ingredients[i].Position = i
		if r.Ingredients[i].ID == uuid.Nil {
			r.Ingredients[i].ID = uuid.New()
		}
	}
	for i := range r.Instructions {
		r.Instructions[i].RecipeID = r.ID
		r.Instructions[i].Position = i
		if r.Instructions[i].ID == uuid.Nil {
			r.Instructions[i].ID = uuid.New()
		}
	}
}

// Touch refreshes UpdatedAt without letting it fall behind CreatedAt.
func (r *Recipe) Touch(now time.Time) {
	if now.Before(r.CreatedAt) {
		now = r.CreatedAt
	}
	r.UpdatedAt = now
}

type Ingredient struct {
	ID       uuid.UUID `gorm:"type:varchar(36);primarykey"`
	RecipeID uuid.UUID `gorm:"type:varchar(36);not null;index"`
	Position int       `gorm:"not null"`
	Name     string    `gorm:"size:255;not null"`
	Quantity string    `gorm:"size:64"`
	Unit     string    `gorm:"size:64"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type Instruction struct {
	ID          uuid.UUID `gorm:"type:varchar(36);primarykey"`
	RecipeID    uuid.UUID `gorm:"type:varchar(36);not null;index"`
	Position    int       `gorm:"not null"`
	StepNumber  int       `gorm:"column:step_number;not null"`
	Description string    `gorm:"type:text;not null"`
}

func (Instruction) TableName() string {
	return "instructions"
}

func (i *Instruction) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

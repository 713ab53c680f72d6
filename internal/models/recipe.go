package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Association names used with gorm's association mode.
const (
	AssocTags        = "Tags"
	AssocIngredients = "Ingredients"
)

// Recipe belongs to exactly one user and holds sets of tags and ingredients.
type Recipe struct {
	ID          uuid.UUID       `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	UserID      uuid.UUID       `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Title       string          `gorm:"size:255;not null" json:"title"`
	TimeMinutes int             `gorm:"not null" json:"time_minutes"`
	Price       decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"price"`
	Link        string          `gorm:"size:255" json:"link"`
	Description string          `gorm:"type:text" json:"description"`
	Image       string          `gorm:"size:255" json:"image"`
	Tags        []Tag           `gorm:"many2many:recipe_tags;" json:"tags"`
	Ingredients []Ingredient    `gorm:"many2many:recipe_ingredients;" json:"ingredients"`
}

// BeforeCreate assigns an ID when the caller did not set one.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = NewUUID()
	}
	return nil
}

func (r Recipe) String() string {
	return r.Title
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is a per-user label for grouping recipes.
type Tag struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_tags_user_name" json:"-"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_tags_user_name" json:"name"`
}

// BeforeCreate assigns an ID when the caller did not set one.
func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = NewUUID()
	}
	return nil
}

func (t Tag) String() string {
	return t.Name
}

// Ingredient is a per-user ingredient name shared across that user's recipes.
type Ingredient struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_ingredients_user_name" json:"-"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_ingredients_user_name" json:"name"`
}

// BeforeCreate assigns an ID when the caller did not set one.
func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = NewUUID()
	}
	return nil
}

func (i Ingredient) String() string {
	return i.Name
}

// Label is satisfied by the two kinds of per-user names a recipe links to.
type Label interface {
	Tag | Ingredient
}

// NewLabel returns an unsaved label of kind T owned by userID.
func NewLabel[T Label](userID uuid.UUID, name string) *T {
	var label T
	switch l := any(&label).(type) {
	case *Tag:
		l.UserID, l.Name = userID, name
	case *Ingredient:
		l.UserID, l.Name = userID, name
	}
	return &label
}

// LabelID returns the primary key of a tag or ingredient.
func LabelID[T Label](label *T) uuid.UUID {
	switch l := any(label).(type) {
	case *Tag:
		return l.ID
	case *Ingredient:
		return l.ID
	}
	return uuid.Nil
}

// LabelName returns the name of a tag or ingredient.
func LabelName[T Label](label *T) string {
	switch l := any(label).(type) {
	case *Tag:
		return l.Name
	case *Ingredient:
		return l.Name
	}
	return ""
}

// SetLabelName renames a tag or ingredient in memory.
func SetLabelName[T Label](label *T, name string) {
	switch l := any(label).(type) {
	case *Tag:
		l.Name = name
	case *Ingredient:
		l.Name = name
	}
}

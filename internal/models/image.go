package models

import (
	"path"

	"github.com/google/uuid"
)

// RecipeImageDir is the storage prefix for uploaded recipe images.
const RecipeImageDir = "uploads/recipe"

// NewUUID generates identifiers for records and uploaded files.
// Tests replace it to get deterministic values.
var NewUUID = uuid.New

// RecipeImagePath builds a collision-free storage path for an uploaded file,
// keeping the original extension verbatim.
func RecipeImagePath(filename string) string {
	return path.Join(RecipeImageDir, NewUUID().String()+path.Ext(filename))
}

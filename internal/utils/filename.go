package utils

import (
	"path/filepath"

	"github.com/google/uuid"
)

// RandomFileName returns a collision-safe name for storing an uploaded file
// on disk, preserving the original extension.
func RandomFileName(original string) string {
	return uuid.NewString() + filepath.Ext(original)
}

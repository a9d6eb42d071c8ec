package model

import (
	"fmt"

	"gorm.io/gorm"
)

// Source is a named file whose tail can be requested.
type Source struct {
	Name        string `gorm:"primaryKey" json:"name" validate:"required,excludesall=/\\"`
	Path        string `json:"path" validate:"required"`
	Description string `json:"description,omitempty"`
	// sqlite3 does not have builtin datetime type
	CreatedAt int64 `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt int64 `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Migrate creates or updates the tables of all models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Source{}); err != nil {
		return fmt.Errorf("migrate sources: %w", err)
	}
	return nil
}

package models

import "time"

// --- Domain Models ---

// Category defines the struct for the 'categories' table.
// Categories are shared by the shop and the recipe catalog.
type Category struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	ParentID  *int64    `json:"parentId,omitempty" db:"parent_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Virtual field (not in DB) - used for the tree view in the admin UI
	Children []Category `json:"children,omitempty" db:"-"`
}

// --- API Input Structs ---

type CreateCategoryInput struct {
	Name     string `json:"name" binding:"required"`
	ParentID *int64 `json:"parentId"` // Pointer allows sending null for root categories
}

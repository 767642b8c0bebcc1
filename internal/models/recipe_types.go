package models

import "time"

// Recipe is the model for the 'recipes' table.
type Recipe struct {
	ID           int64  `json:"id" db:"id"`
	Title        string `json:"title" db:"title"`
	Slug         string `json:"slug" db:"slug"`
	Summary      string `json:"summary" db:"summary"`
	Instructions string `json:"instructions" db:"instructions"`
	ImageURL     string `json:"imageUrl" db:"image_url"`

	// Same dual categorization as products: structured link plus the legacy
	// free-text field for rows imported before the taxonomy existed.
	CategoryID *int64 `json:"categoryId,omitempty" db:"category_id"`
	Category   string `json:"category,omitempty" db:"category"`

	Published bool `json:"published" db:"published"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

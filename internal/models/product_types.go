package models

import (
	"time"
)

// Product is the model for the 'products' table.
// Pointers are used for nullable columns so JSON serialization stays clean.
type Product struct {
	ID int64 `json:"id" db:"id"`

	// Title is the site-owned display title; SourceTitle is the title as it
	// appears at the affiliate merchant, kept for admin cross-referencing.
	Title       string `json:"title" db:"title"`
	SourceTitle string `json:"sourceTitle" db:"source_title"`

	ShortDescription string `json:"shortDescription" db:"short_description"`
	Description      string `json:"description" db:"description"`

	ImageURL     string  `json:"imageUrl" db:"image_url"`
	AffiliateURL string  `json:"affiliateUrl" db:"affiliate_url"`
	ProductCode  *string `json:"productCode,omitempty" db:"product_code"`

	// CategoryID links into the categories table. Category is the legacy
	// free-text field still carried by products created before the structured
	// taxonomy existed; the shop filter falls back to it when a category token
	// matches no structured category.
	CategoryID *int64 `json:"categoryId,omitempty" db:"category_id"`
	Category   string `json:"category,omitempty" db:"category"`

	// --- Lifecycle ---
	Approved   bool       `json:"approved" db:"approved"`
	ArchivedAt *time.Time `json:"archivedAt,omitempty" db:"archived_at"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

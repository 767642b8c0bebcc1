package handlers

import (
	"database/sql"

	"github.com/spiceshelf/spiceshelf-golang/internal/ai"
	"github.com/spiceshelf/spiceshelf-golang/internal/catalog"
	"github.com/spiceshelf/spiceshelf-golang/internal/email"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	DB         *sql.DB
	Categories *catalog.SQLCategoryStore
	Mailer     *email.Mailer
	AIService  *ai.Service // nil when GEMINI_API_KEY is not configured
}

// categoryLookup returns the category store as a catalog.CategoryLookup,
// mapping a nil store to a nil interface so the resolver's nil check holds
// (a typed nil stored in the interface would slip past it).
func (h *Handlers) categoryLookup() catalog.CategoryLookup {
	if h.Categories == nil {
		return nil
	}
	return h.Categories
}

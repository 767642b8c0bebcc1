package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spiceshelf/spiceshelf-golang/internal/catalog"
	"github.com/spiceshelf/spiceshelf-golang/internal/models"
)

// --- Category Handlers ---

// CreateCategory is the handler for POST /v1/admin/categories
//
// Slug uniqueness is enforced by looking up the slug *before* inserting: if a
// category with the computed slug already exists, the stored row is returned
// with existed=true instead of creating a duplicate. The two steps are not
// atomic; two identical concurrent requests can still race. The UNIQUE index
// on the slug column turns that race into an insert error rather than a
// silent duplicate.
func (h *Handlers) CreateCategory(c *gin.Context) {
	var input models.CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slug := catalog.MakeSlug(input.Name)
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category name produces an empty slug"})
		return
	}

	// 1. Lookup by exact slug first.
	var existing models.Category
	err := h.DB.QueryRow(
		"SELECT id, name, slug, parent_id FROM categories WHERE slug = ?", slug,
	).Scan(&existing.ID, &existing.Name, &existing.Slug, &existing.ParentID)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"category": existing, "existed": true})
		return
	}
	if err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking slug", "details": err.Error()})
		return
	}

	// 2. Not found: insert.
	now := time.Now()
	res, err := h.DB.Exec(
		"INSERT INTO categories (name, slug, parent_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		input.Name, slug, input.ParentID, now, now,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category", "details": err.Error()})
		return
	}

	id, _ := res.LastInsertId()
	newCat := models.Category{
		ID:        id,
		Name:      input.Name,
		Slug:      slug,
		ParentID:  input.ParentID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	c.JSON(http.StatusCreated, gin.H{"category": newCat, "existed": false})
}

// GetAllCategories is the handler for GET /v1/categories
// Returns the category tree for navigation menus.
func (h *Handlers) GetAllCategories(c *gin.Context) {
	allCats, err := h.listCategoriesFlat()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error", "details": err.Error()})
		return
	}

	// Build the tree: map for O(1) parent lookup, then hang children off
	// their parents. Pointers into the slice, not copies.
	catMap := make(map[int64]*models.Category)
	for i := range allCats {
		catMap[allCats[i].ID] = &allCats[i]
	}

	for i := range allCats {
		cat := &allCats[i]
		if cat.ParentID != nil {
			if parent, exists := catMap[*cat.ParentID]; exists {
				parent.Children = append(parent.Children, *cat)
			}
		}
	}

	var rootCats []models.Category
	for _, cat := range allCats {
		if cat.ParentID == nil {
			rootCats = append(rootCats, cat)
		}
	}

	c.JSON(http.StatusOK, gin.H{"categories": rootCats})
}

// DeleteCategory is the handler for DELETE /v1/admin/categories/:id
// Products keep their legacy free-text category, so deleting a structured
// category never orphans a product's display label.
func (h *Handlers) DeleteCategory(c *gin.Context) {
	id := c.Param("id")

	_, err := h.DB.Exec("DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// listCategoriesFlat fetches all categories ordered by name.
func (h *Handlers) listCategoriesFlat() ([]models.Category, error) {
	rows, err := h.DB.Query("SELECT id, name, slug, parent_id FROM categories ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cats := []models.Category{}
	for rows.Next() {
		var cat models.Category
		cat.Children = []models.Category{}
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.ParentID); err != nil {
			return nil, err
		}
		cats = append(cats, cat)
	}
	return cats, rows.Err()
}

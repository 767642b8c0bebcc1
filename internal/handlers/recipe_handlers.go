package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spiceshelf/spiceshelf-golang/internal/catalog"
	"github.com/spiceshelf/spiceshelf-golang/internal/highlight"
	"github.com/spiceshelf/spiceshelf-golang/internal/models"
)

//
// --- Recipe Catalog ---
//

// Recipes reuse the shop's filter machinery: the Approved column maps to the
// published flag, and recipes have no archive lifecycle.
var recipeColumns = catalog.SearchColumns{
	Text:           []string{"r.title", "r.summary"},
	Approved:       "r.published",
	CategoryID:     "r.category_id",
	LegacyCategory: "r.category",
}

const recipeSelect = `
	SELECT
		r.id, r.title, r.slug, r.summary, r.instructions, r.image_url,
		r.category_id, r.category, r.published, r.created_at, r.updated_at
	FROM recipes r`

// ListRecipes is the handler for GET /v1/recipes
// Public catalog: published recipes only, newest first.
func (h *Handlers) ListRecipes(c *gin.Context) {
	params := catalog.Params{
		Query:    c.Query("q"),
		Category: c.Query("cat"),
		Limit:    c.Query("limit"),
	}

	f := catalog.Resolve(c.Request.Context(), params, h.categoryLookup())
	f.ApprovedOnly = true // published = 1

	clause, args := f.Clause(recipeColumns)
	query := recipeSelect + clause + " ORDER BY r.created_at DESC LIMIT ?"
	args = append(args, f.Limit)

	rows, err := h.DB.QueryContext(c.Request.Context(), query, args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed", "details": err.Error()})
		return
	}
	defer rows.Close()

	recipes := []*models.Recipe{}
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan recipe row"})
			return
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating recipe rows"})
		return
	}

	if c.Query("hl") == "1" {
		mark := highlight.NewDecorator(f.Query)
		for _, r := range recipes {
			r.Title = mark(r.Title)
			r.Summary = mark(r.Summary)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"items": recipes,
		"count": len(recipes),
	})
}

// GetRecipe is the handler for GET /v1/recipes/:slug
func (h *Handlers) GetRecipe(c *gin.Context) {
	slug := c.Param("slug")

	recipe, err := scanRecipe(h.DB.QueryRow(recipeSelect+" WHERE r.slug = ? AND r.published = 1", slug))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

//
// --- Admin: Recipe Management ---
//

type CreateRecipeInput struct {
	Title        string `json:"title" binding:"required"`
	Summary      string `json:"summary"`
	Instructions string `json:"instructions"`
	ImageURL     string `json:"imageUrl"`
	CategoryID   *int64 `json:"categoryId"`
	Category     string `json:"category"`
}

// AdminCreateRecipe is the handler for POST /v1/admin/recipes
// Recipes are created unpublished; the slug is derived from the title and
// must be free (recipes are addressed by slug, so collisions are an error
// here rather than a merge).
func (h *Handlers) AdminCreateRecipe(c *gin.Context) {
	var input CreateRecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slug := catalog.MakeSlug(input.Title)
	if slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title produces an empty slug"})
		return
	}

	var existingID int64
	err := h.DB.QueryRow("SELECT id FROM recipes WHERE slug = ?", slug).Scan(&existingID)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A recipe with this slug already exists", "details": slug})
		return
	}
	if err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking slug", "details": err.Error()})
		return
	}

	now := time.Now()
	res, err := h.DB.Exec(`
		INSERT INTO recipes
		(title, slug, summary, instructions, image_url, category_id, category,
		published, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`,
		input.Title, slug, input.Summary, input.Instructions, input.ImageURL,
		input.CategoryID, input.Category, now, now,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe", "details": err.Error()})
		return
	}

	id, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{"message": "Recipe created as draft", "recipeId": id, "slug": slug})
}

type UpdateRecipeInput struct {
	Title        *string `json:"title"`
	Summary      *string `json:"summary"`
	Instructions *string `json:"instructions"`
	ImageURL     *string `json:"imageUrl"`
	CategoryID   *int64  `json:"categoryId"`
	Category     *string `json:"category"`
}

// AdminUpdateRecipe is the handler for PUT /v1/admin/recipes/:id
// The slug is stable once created; retitling does not move the page.
func (h *Handlers) AdminUpdateRecipe(c *gin.Context) {
	recipeIDStr := c.Param("id")

	var input UpdateRecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	querySet := "updated_at = ?"
	queryArgs := []interface{}{time.Now()}

	if input.Title != nil {
		querySet += ", title = ?"
		queryArgs = append(queryArgs, *input.Title)
	}
	if input.Summary != nil {
		querySet += ", summary = ?"
		queryArgs = append(queryArgs, *input.Summary)
	}
	if input.Instructions != nil {
		querySet += ", instructions = ?"
		queryArgs = append(queryArgs, *input.Instructions)
	}
	if input.ImageURL != nil {
		querySet += ", image_url = ?"
		queryArgs = append(queryArgs, *input.ImageURL)
	}
	if input.CategoryID != nil {
		querySet += ", category_id = ?"
		queryArgs = append(queryArgs, *input.CategoryID)
	}
	if input.Category != nil {
		querySet += ", category = ?"
		queryArgs = append(queryArgs, *input.Category)
	}

	queryArgs = append(queryArgs, recipeIDStr)
	query := fmt.Sprintf("UPDATE recipes SET %s WHERE id = ?", querySet)

	result, err := h.DB.Exec(query, queryArgs...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe", "details": err.Error()})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe updated successfully"})
}

// AdminPublishRecipe is the handler for PATCH /v1/admin/recipes/:id/publish
func (h *Handlers) AdminPublishRecipe(c *gin.Context) {
	h.setRecipePublished(c, true, "Recipe published")
}

// AdminUnpublishRecipe is the handler for PATCH /v1/admin/recipes/:id/unpublish
func (h *Handlers) AdminUnpublishRecipe(c *gin.Context) {
	h.setRecipePublished(c, false, "Recipe unpublished")
}

func (h *Handlers) setRecipePublished(c *gin.Context, published bool, message string) {
	recipeIDStr := c.Param("id")

	result, err := h.DB.Exec(
		"UPDATE recipes SET published = ?, updated_at = ? WHERE id = ?",
		published, time.Now(), recipeIDStr,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update recipe", "details": err.Error()})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// AdminDeleteRecipe is the handler for DELETE /v1/admin/recipes/:id
func (h *Handlers) AdminDeleteRecipe(c *gin.Context) {
	recipeIDStr := c.Param("id")

	result, err := h.DB.Exec("DELETE FROM recipes WHERE id = ?", recipeIDStr)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully"})
}

func scanRecipe(row rowScanner) (*models.Recipe, error) {
	var r models.Recipe
	err := row.Scan(
		&r.ID,
		&r.Title,
		&r.Slug,
		&r.Summary,
		&r.Instructions,
		&r.ImageURL,
		&r.CategoryID,
		&r.Category,
		&r.Published,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

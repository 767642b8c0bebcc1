package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spiceshelf/spiceshelf-golang/internal/catalog"
)

//
// --- Admin: Product Search & Moderation ---
//

// The admin search matches two extra columns: the legacy free-text category
// and the merchant product code.
var adminColumns = catalog.SearchColumns{
	Text:           []string{"p.title", "p.source_title", "p.category", "p.product_code"},
	ArchivedAt:     "p.archived_at",
	Approved:       "p.approved",
	CategoryID:     "p.category_id",
	LegacyCategory: "p.category",
}

// AdminSearchProducts is the handler for GET /v1/admin/products
// Unlike the public listing it honors the 'state' parameter and returns
// unapproved and archived rows.
func (h *Handlers) AdminSearchProducts(c *gin.Context) {
	params := catalog.Params{
		State:    c.Query("state"),
		Query:    c.Query("q"),
		Category: c.Query("cat"),
		Limit:    c.Query("limit"),
	}

	f := catalog.Resolve(c.Request.Context(), params, h.categoryLookup())

	products, err := h.queryProducts(c, f, adminColumns)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed", "details": err.Error()})
		return
	}

	if c.Query("hl") == "1" {
		decorateProducts(products, f.Query)
	}

	c.JSON(http.StatusOK, gin.H{
		"items": products,
		"count": len(products),
	})
}

type CreateProductInput struct {
	Title            string  `json:"title" binding:"required"`
	SourceTitle      string  `json:"sourceTitle"`
	ShortDescription string  `json:"shortDescription"`
	Description      string  `json:"description"`
	ImageURL         string  `json:"imageUrl"`
	AffiliateURL     string  `json:"affiliateUrl" binding:"required,url"`
	ProductCode      *string `json:"productCode"`
	CategoryID       *int64  `json:"categoryId"`
	Category         string  `json:"category"` // legacy free-text, for unmigrated feeds
}

// AdminCreateProduct is the handler for POST /v1/admin/products
// New products land unapproved; a second moderator approves them before they
// reach the storefront.
func (h *Handlers) AdminCreateProduct(c *gin.Context) {
	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.CategoryID != nil {
		var exists int
		err := h.DB.QueryRow("SELECT 1 FROM categories WHERE id = ?", *input.CategoryID).Scan(&exists)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid categoryId"})
			return
		}
	}

	query := `
		INSERT INTO products
		(title, source_title, short_description, description, image_url,
		affiliate_url, product_code, category_id, category, approved,
		created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`

	now := time.Now()
	result, err := h.DB.Exec(query,
		input.Title, input.SourceTitle, input.ShortDescription, input.Description,
		input.ImageURL, input.AffiliateURL, input.ProductCode,
		input.CategoryID, input.Category, now, now,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to insert product", "details": err.Error()})
		return
	}

	productID, err := result.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get ID"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Product saved, pending approval", "productId": productID})
}

type UpdateProductInput struct {
	Title            *string `json:"title"`
	SourceTitle      *string `json:"sourceTitle"`
	ShortDescription *string `json:"shortDescription"`
	Description      *string `json:"description"`
	ImageURL         *string `json:"imageUrl"`
	AffiliateURL     *string `json:"affiliateUrl" binding:"omitempty,url"`
	ProductCode      *string `json:"productCode"`
	CategoryID       *int64  `json:"categoryId"`
	Category         *string `json:"category"`
}

// AdminUpdateProduct is the handler for PUT /v1/admin/products/:id
func (h *Handlers) AdminUpdateProduct(c *gin.Context) {
	productIDStr := c.Param("id")

	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// --- Dynamically Build UPDATE Query ---
	querySet := "updated_at = ?"
	queryArgs := []interface{}{time.Now()}

	if input.Title != nil {
		querySet += ", title = ?"
		queryArgs = append(queryArgs, *input.Title)
	}
	if input.SourceTitle != nil {
		querySet += ", source_title = ?"
		queryArgs = append(queryArgs, *input.SourceTitle)
	}
	if input.ShortDescription != nil {
		querySet += ", short_description = ?"
		queryArgs = append(queryArgs, *input.ShortDescription)
	}
	if input.Description != nil {
		querySet += ", description = ?"
		queryArgs = append(queryArgs, *input.Description)
	}
	if input.ImageURL != nil {
		querySet += ", image_url = ?"
		queryArgs = append(queryArgs, *input.ImageURL)
	}
	if input.AffiliateURL != nil {
		querySet += ", affiliate_url = ?"
		queryArgs = append(queryArgs, *input.AffiliateURL)
	}
	if input.ProductCode != nil {
		querySet += ", product_code = ?"
		queryArgs = append(queryArgs, *input.ProductCode)
	}
	if input.CategoryID != nil {
		querySet += ", category_id = ?"
		queryArgs = append(queryArgs, *input.CategoryID)
	}
	if input.Category != nil {
		querySet += ", category = ?"
		queryArgs = append(queryArgs, *input.Category)
	}

	queryArgs = append(queryArgs, productIDStr)
	query := fmt.Sprintf("UPDATE products SET %s WHERE id = ?", querySet)

	result, err := h.DB.Exec(query, queryArgs...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product", "details": err.Error()})
		return
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check affected rows"})
		return
	}
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully"})
}

// AdminApproveProduct is the handler for PATCH /v1/admin/products/:id/approve
func (h *Handlers) AdminApproveProduct(c *gin.Context) {
	h.setProductLifecycle(c, "approved = 1", "Product approved")
}

// AdminArchiveProduct is the handler for PATCH /v1/admin/products/:id/archive
// Archiving stamps archived_at; the row stays queryable via state=archived.
func (h *Handlers) AdminArchiveProduct(c *gin.Context) {
	h.setProductLifecycle(c, "archived_at = NOW()", "Product archived")
}

// AdminRestoreProduct is the handler for PATCH /v1/admin/products/:id/restore
func (h *Handlers) AdminRestoreProduct(c *gin.Context) {
	h.setProductLifecycle(c, "archived_at = NULL", "Product restored")
}

func (h *Handlers) setProductLifecycle(c *gin.Context, set string, message string) {
	productIDStr := c.Param("id")

	query := fmt.Sprintf("UPDATE products SET %s, updated_at = ? WHERE id = ?", set)
	result, err := h.DB.Exec(query, time.Now(), productIDStr)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product", "details": err.Error()})
		return
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check affected rows"})
		return
	}
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// AdminGetProduct is the handler for GET /v1/admin/products/:id
// Unlike the public detail view it returns unapproved and archived rows.
func (h *Handlers) AdminGetProduct(c *gin.Context) {
	productID := c.Param("id")

	product, err := scanProduct(h.DB.QueryRow(productSelect+" WHERE p.id = ?", productID))
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

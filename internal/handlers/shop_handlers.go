package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spiceshelf/spiceshelf-golang/internal/catalog"
	"github.com/spiceshelf/spiceshelf-golang/internal/highlight"
	"github.com/spiceshelf/spiceshelf-golang/internal/models"
)

// Columns the public shop listing searches. The public surface matches titles
// only; the legacy category and product code columns are admin-search extras.
var shopColumns = catalog.SearchColumns{
	Text:           []string{"p.title", "p.source_title"},
	ArchivedAt:     "p.archived_at",
	Approved:       "p.approved",
	CategoryID:     "p.category_id",
	LegacyCategory: "p.category",
}

const productSelect = `
	SELECT
		p.id, p.title, p.source_title, p.short_description, p.description,
		p.image_url, p.affiliate_url, p.product_code,
		p.category_id, p.category, p.approved, p.archived_at,
		p.created_at, p.updated_at
	FROM products p`

// ShopList is the handler for GET /v1/shop
// Public storefront listing: only approved, non-archived products, newest
// first. There is no 'state' parameter here; lifecycle filtering is an
// admin-only capability.
func (h *Handlers) ShopList(c *gin.Context) {
	params := catalog.Params{
		Query:    c.Query("q"),
		Category: c.Query("cat"),
		Limit:    c.Query("limit"),
	}

	f := catalog.Resolve(c.Request.Context(), params, h.categoryLookup())
	f.State = catalog.StateActive
	f.ApprovedOnly = true

	products, err := h.queryProducts(c, f, shopColumns)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed", "details": err.Error()})
		return
	}

	if c.Query("hl") == "1" {
		decorateProducts(products, f.Query)
	}

	// Ship the flat category list alongside so the storefront can render its
	// filter sidebar without a second round trip.
	cats, err := h.listCategoriesFlat()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": products,
		"count": len(products),
		"cats":  cats,
	})
}

// GetShopProduct is the handler for GET /v1/shop/products/:id
func (h *Handlers) GetShopProduct(c *gin.Context) {
	productID := c.Param("id")

	query := productSelect + ` WHERE p.id = ? AND p.approved = 1 AND p.archived_at IS NULL`

	product, err := scanProduct(h.DB.QueryRow(query, productID))
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

// queryProducts executes a product listing for the given filter and columns.
func (h *Handlers) queryProducts(c *gin.Context, f catalog.Filter, cols catalog.SearchColumns) ([]*models.Product, error) {
	clause, args := f.Clause(cols)
	query := productSelect + clause + " ORDER BY p.created_at DESC LIMIT ?"
	args = append(args, f.Limit)

	rows, err := h.DB.QueryContext(c.Request.Context(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []*models.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// rowScanner lets scanProduct work for both QueryRow and Query results.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.SourceTitle,
		&p.ShortDescription,
		&p.Description,
		&p.ImageURL,
		&p.AffiliateURL,
		&p.ProductCode,
		&p.CategoryID,
		&p.Category,
		&p.Approved,
		&p.ArchivedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// decorateProducts wraps search-term matches in the display fields.
// Applied once, to freshly scanned rows only.
func decorateProducts(products []*models.Product, query string) {
	mark := highlight.NewDecorator(query)
	for _, p := range products {
		p.Title = mark(p.Title)
		p.SourceTitle = mark(p.SourceTitle)
		p.ShortDescription = mark(p.ShortDescription)
	}
}

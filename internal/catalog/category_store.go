package catalog

import (
	"context"
	"database/sql"
	"strings"

	"github.com/spiceshelf/spiceshelf-golang/internal/models"
)

// SQLCategoryStore is the MySQL-backed CategoryLookup.
type SQLCategoryStore struct {
	DB *sql.DB
}

// FindByToken returns the category whose slug equals the token exactly, or whose
// name contains it case-insensitively. Ties break on lowest id so the result is
// deterministic regardless of insertion order.
func (s *SQLCategoryStore) FindByToken(ctx context.Context, token string) (*models.Category, error) {
	query := `
		SELECT id, name, slug, parent_id
		FROM categories
		WHERE slug = ? OR LOWER(name) LIKE ?
		ORDER BY id ASC
		LIMIT 1`

	var cat models.Category
	err := s.DB.QueryRowContext(ctx, query, token, "%"+strings.ToLower(token)+"%").Scan(
		&cat.ID,
		&cat.Name,
		&cat.Slug,
		&cat.ParentID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

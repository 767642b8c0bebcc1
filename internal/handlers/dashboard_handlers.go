package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

//
// --- Admin Dashboard Stats ---
//

type AdminStats struct {
	PendingProducts     int `json:"pendingProducts"`
	ArchivedProducts    int `json:"archivedProducts"`
	PublishedRecipes    int `json:"publishedRecipes"`
	DraftRecipes        int `json:"draftRecipes"`
	TotalCategories     int `json:"totalCategories"`
	TotalUsers          int `json:"totalUsers"`
	ActiveSubscriptions int `json:"activeSubscriptions"`
}

// GetAdminStats returns KPI data for the back-office dashboard.
// GET /v1/admin/dashboard-stats
func (h *Handlers) GetAdminStats(c *gin.Context) {
	stats := AdminStats{}

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM products WHERE approved = 0 AND archived_at IS NULL", &stats.PendingProducts},
		{"SELECT COUNT(*) FROM products WHERE archived_at IS NOT NULL", &stats.ArchivedProducts},
		{"SELECT COUNT(*) FROM recipes WHERE published = 1", &stats.PublishedRecipes},
		{"SELECT COUNT(*) FROM recipes WHERE published = 0", &stats.DraftRecipes},
		{"SELECT COUNT(*) FROM categories", &stats.TotalCategories},
		{"SELECT COUNT(*) FROM users", &stats.TotalUsers},
		{"SELECT COUNT(*) FROM user_subscriptions WHERE status = 'active' AND expires_at > NOW()", &stats.ActiveSubscriptions},
	}

	for _, count := range counts {
		if err := h.DB.QueryRow(count.query).Scan(count.dest); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute dashboard stats", "details": err.Error()})
			return
		}
	}

	c.JSON(http.StatusOK, stats)
}

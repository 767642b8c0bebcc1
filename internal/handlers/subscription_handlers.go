package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spiceshelf/spiceshelf-golang/internal/models"
)

//
// --- Subscription Tiers ---
//

// GetSubscriptionPlans is the handler for GET /v1/plans
// Public: lists the visible tiers for the pricing page.
func (h *Handlers) GetSubscriptionPlans(c *gin.Context) {
	rows, err := h.DB.Query(`
		SELECT id, name, description, price, duration_days, is_public, created_at, updated_at
		FROM plans
		WHERE is_public = 1
		ORDER BY price ASC`)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	plans := []models.Plan{}
	for rows.Next() {
		var p models.Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.DurationDays,
			&p.IsPublic, &p.CreatedAt, &p.UpdatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan plan row"})
			return
		}
		plans = append(plans, p)
	}

	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// GetMySubscription is the handler for GET /v1/subscriptions/me
func (h *Handlers) GetMySubscription(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	var sub models.UserSubscription
	err := h.DB.QueryRow(`
		SELECT s.id, s.user_id, s.plan_id, s.status, s.expires_at,
		       s.created_at, s.updated_at, p.name
		FROM user_subscriptions s
		JOIN plans p ON s.plan_id = p.id
		WHERE s.user_id = ? AND s.status = 'active' AND s.expires_at > ?
		ORDER BY s.expires_at DESC
		LIMIT 1`,
		userID, time.Now(),
	).Scan(&sub.ID, &sub.UserID, &sub.PlanID, &sub.Status, &sub.ExpiresAt,
		&sub.CreatedAt, &sub.UpdatedAt, &sub.PlanName)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusOK, gin.H{"subscription": nil})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscription": sub})
}

type AssignSubscriptionInput struct {
	PlanID int64 `json:"planId" binding:"required"`
}

// AssignSubscription is the handler for POST /v1/admin/users/:id/subscription
// Any previously active subscription for the user is superseded.
func (h *Handlers) AssignSubscription(c *gin.Context) {
	targetUserID := c.Param("id")

	var input AssignSubscriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var plan models.Plan
	err := h.DB.QueryRow(
		"SELECT id, name, duration_days FROM plans WHERE id = ?", input.PlanID,
	).Scan(&plan.ID, &plan.Name, &plan.DurationDays)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking plan"})
		return
	}

	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start transaction"})
		return
	}
	defer tx.Rollback()

	now := time.Now()
	_, err = tx.Exec(
		"UPDATE user_subscriptions SET status = 'superseded', updated_at = ? WHERE user_id = ? AND status = 'active'",
		now, targetUserID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to supersede old subscription"})
		return
	}

	expiresAt := now.AddDate(0, 0, plan.DurationDays)
	_, err = tx.Exec(`
		INSERT INTO user_subscriptions (user_id, plan_id, status, expires_at, created_at, updated_at)
		VALUES (?, ?, 'active', ?, ?, ?)`,
		targetUserID, plan.ID, expiresAt, now, now,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign subscription"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to commit transaction"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Subscription assigned",
		"plan":      plan.Name,
		"expiresAt": expiresAt,
	})
}

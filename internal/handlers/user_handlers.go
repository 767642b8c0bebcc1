package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spiceshelf/spiceshelf-golang/internal/auth"
	"github.com/spiceshelf/spiceshelf-golang/internal/models"
)

// --- User Registration ---

// Separate input struct so callers can never set an 'id' or 'role'.
type RegisterUserInput struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register is the handler for POST /v1/register
func (h *Handlers) Register(c *gin.Context) {
	var input RegisterUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var password models.Password
	if err := password.Set(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	var existingID int64
	err := h.DB.QueryRow("SELECT id FROM users WHERE email = ?", input.Email).Scan(&existingID)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	}
	if err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking email"})
		return
	}

	now := time.Now()
	res, err := h.DB.Exec(`
		INSERT INTO users (role, email, password_hash, full_name, created_at, updated_at)
		VALUES ('member', ?, ?, ?, ?, ?)`,
		input.Email, password.Hash, input.FullName, now, now,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	userID, _ := res.LastInsertId()
	c.JSON(http.StatusCreated, gin.H{
		"message": "Registered successfully",
		"userId":  userID,
	})
}

// --- Login ---

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login is the handler for POST /v1/login
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	err := h.DB.QueryRow(
		"SELECT id, role, email, password_hash, full_name FROM users WHERE email = ?",
		input.Email,
	).Scan(&user.ID, &user.Role, &user.Email, &user.PasswordHash, &user.FullName)
	if err != nil {
		// Same message for unknown email and wrong password
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	password := models.Password{Hash: user.PasswordHash}
	match, err := password.Matches(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify password"})
		return
	}
	if !match {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// Whoami is the handler for GET /v1/auth/whoami
// Returns the authenticated user's profile projection.
func (h *Handlers) Whoami(c *gin.Context) {
	userIDRaw, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}
	userID := userIDRaw.(int64)

	var user models.User
	err := h.DB.QueryRow(
		"SELECT id, role, email, full_name, created_at, updated_at FROM users WHERE id = ?",
		userID,
	).Scan(&user.ID, &user.Role, &user.Email, &user.FullName, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

//
// --- Email Change Workflow ---
//
// Two steps: the user requests a change (we store the pending address plus a
// one-time token and mail the token to the *current* inbox), then confirms
// with the token to commit the swap.
//

type RequestEmailChangeInput struct {
	NewEmail string `json:"newEmail" binding:"required,email"`
}

// RequestEmailChange is the handler for POST /v1/auth/request-email-change
func (h *Handlers) RequestEmailChange(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	var input RequestEmailChangeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var currentEmail string
	err := h.DB.QueryRow("SELECT email FROM users WHERE id = ?", userID).Scan(&currentEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error loading user"})
		return
	}

	if input.NewEmail == currentEmail {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New email must differ from the current one"})
		return
	}

	var takenID int64
	err = h.DB.QueryRow("SELECT id FROM users WHERE email = ?", input.NewEmail).Scan(&takenID)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	}
	if err != sql.ErrNoRows {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking email"})
		return
	}

	token := uuid.NewString()
	expiry := time.Now().Add(1 * time.Hour)

	_, err = h.DB.Exec(`
		UPDATE users
		SET pending_email = ?, email_change_token = ?, email_change_expiry = ?, updated_at = ?
		WHERE id = ?`,
		input.NewEmail, token, expiry, time.Now(), userID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store email change request"})
		return
	}

	if err := h.Mailer.SendEmailChangeConfirmation(currentEmail, input.NewEmail, token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send confirmation email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Confirmation token sent to your current email address"})
}

type ConfirmEmailChangeInput struct {
	Token string `json:"token" binding:"required"`
}

// ConfirmEmailChange is the handler for POST /v1/auth/confirm-email-change
func (h *Handlers) ConfirmEmailChange(c *gin.Context) {
	userIDRaw, _ := c.Get("userID")
	userID := userIDRaw.(int64)

	var input ConfirmEmailChangeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var pendingEmail sql.NullString
	var expiry sql.NullTime
	err := h.DB.QueryRow(`
		SELECT pending_email, email_change_expiry
		FROM users
		WHERE id = ? AND email_change_token = ?`,
		userID, input.Token,
	).Scan(&pendingEmail, &expiry)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "No matching email change request"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking token"})
		return
	}

	if !pendingEmail.Valid || !expiry.Valid || time.Now().After(expiry.Time) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email change token has expired"})
		return
	}

	_, err = h.DB.Exec(`
		UPDATE users
		SET email = ?, pending_email = NULL, email_change_token = NULL,
		    email_change_expiry = NULL, updated_at = ?
		WHERE id = ?`,
		pendingEmail.String, time.Now(), userID,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email updated successfully", "email": pendingEmail.String})
}

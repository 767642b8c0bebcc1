package handlers

import (
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmEmailChange_ExpiredTokenLeavesRowUntouched(t *testing.T) {
	t.Parallel()

	h, mock := newTestHandlers(t)

	mock.ExpectQuery("SELECT pending_email, email_change_expiry FROM users").
		WithArgs(int64(7), "tok-expired").
		WillReturnRows(sqlmock.NewRows([]string{"pending_email", "email_change_expiry"}).
			AddRow("new@example.com", time.Now().Add(-time.Minute)))

	c, w := testContext(t, jsonRequest(http.MethodPost, "/v1/auth/confirm-email-change", `{"token":"tok-expired"}`))
	c.Set("userID", int64(7))
	h.ConfirmEmailChange(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "expired")

	// Only the SELECT was expected: a stray UPDATE would surface here.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmEmailChange_UnknownTokenIsNotFound(t *testing.T) {
	t.Parallel()

	h, mock := newTestHandlers(t)

	mock.ExpectQuery("SELECT pending_email, email_change_expiry FROM users").
		WithArgs(int64(7), "tok-bogus").
		WillReturnError(sql.ErrNoRows)

	c, w := testContext(t, jsonRequest(http.MethodPost, "/v1/auth/confirm-email-change", `{"token":"tok-bogus"}`))
	c.Set("userID", int64(7))
	h.ConfirmEmailChange(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmEmailChange_ValidTokenSwapsEmail(t *testing.T) {
	t.Parallel()

	h, mock := newTestHandlers(t)

	mock.ExpectQuery("SELECT pending_email, email_change_expiry FROM users").
		WithArgs(int64(7), "tok-valid").
		WillReturnRows(sqlmock.NewRows([]string{"pending_email", "email_change_expiry"}).
			AddRow("new@example.com", time.Now().Add(30*time.Minute)))
	mock.ExpectExec("UPDATE users SET email").
		WithArgs("new@example.com", sqlmock.AnyArg(), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, w := testContext(t, jsonRequest(http.MethodPost, "/v1/auth/confirm-email-change", `{"token":"tok-valid"}`))
	c.Set("userID", int64(7))
	h.ConfirmEmailChange(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "new@example.com")
	require.NoError(t, mock.ExpectationsWereMet())
}

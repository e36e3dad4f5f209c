package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

func newTestContext(t *testing.T) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	return c
}

func TestRequireSelfOrAdmin_Self(t *testing.T) {
	// Arrange
	c := newTestContext(t)
	c.Set(ContextUserID, uint(42))
	c.Set(ContextIsAdmin, false)

	// Act & Assert
	assert.NoError(t, RequireSelfOrAdmin(c, 42))
}

func TestRequireSelfOrAdmin_Admin(t *testing.T) {
	// Arrange: an admin may read any user's resources
	c := newTestContext(t)
	c.Set(ContextUserID, uint(1))
	c.Set(ContextIsAdmin, true)

	// Act & Assert
	assert.NoError(t, RequireSelfOrAdmin(c, 42))
}

func TestRequireSelfOrAdmin_OtherUser(t *testing.T) {
	// Arrange
	c := newTestContext(t)
	c.Set(ContextUserID, uint(7))
	c.Set(ContextIsAdmin, false)

	// Act
	err := RequireSelfOrAdmin(c, 42)

	// Assert
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestRequireSelfOrAdmin_Unauthenticated(t *testing.T) {
	// Arrange: no identity in the context at all
	c := newTestContext(t)

	// Act & Assert
	assert.ErrorIs(t, RequireSelfOrAdmin(c, 42), apperrors.ErrUnauthorized)
}

func TestCallerID(t *testing.T) {
	c := newTestContext(t)

	_, ok := CallerID(c)
	assert.False(t, ok, "no identity set yet")

	c.Set(ContextUserID, uint(5))
	id, ok := CallerID(c)
	assert.True(t, ok)
	assert.Equal(t, uint(5), id)
}

func TestCallerIsAdmin(t *testing.T) {
	c := newTestContext(t)
	assert.False(t, CallerIsAdmin(c))

	c.Set(ContextIsAdmin, true)
	assert.True(t, CallerIsAdmin(c))
}

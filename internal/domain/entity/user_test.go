package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUser_CheckPassword(t *testing.T) {
	// Arrange
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &User{Password: string(hash)}

	// Act & Assert
	assert.True(t, user.CheckPassword("secret123"))
	assert.False(t, user.CheckPassword("wrong"))
	assert.False(t, user.CheckPassword(""))
}

func TestUser_BeforeSave_HashesPlaintext(t *testing.T) {
	// Arrange
	user := &User{Email: "ana@example.com", Password: "secret123"}

	// Act
	err := user.BeforeSave(nil)

	// Assert
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", user.Password, "plaintext must never be persisted")
	assert.True(t, user.CheckPassword("secret123"))
}

func TestUser_BeforeSave_SkipsExistingHash(t *testing.T) {
	// Arrange: an already hashed password must not be hashed twice
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &User{Email: "ana@example.com", Password: string(hash)}

	// Act
	err = user.BeforeSave(nil)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, string(hash), user.Password)
}

func TestUser_IsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.False(t, (&User{Role: RoleUser}).IsAdmin())
	assert.False(t, (&User{}).IsAdmin())
}

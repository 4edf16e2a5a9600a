package authtoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestManager_GenerateAndParse(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	token, err := manager.Generate("user-1", "ada@example.com", "Ada")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Parse(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "ada@example.com", claims.Email)
	require.Equal(t, "Ada", claims.DisplayName)
}

func TestManager_Parse_WrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Hour).Generate("user-1", "ada@example.com", "Ada")
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Hour).Parse(token)
	require.Error(t, err)
}

func TestManager_Parse_Expired(t *testing.T) {
	manager := NewManager("test-secret", -time.Minute)

	token, err := manager.Generate("user-1", "ada@example.com", "Ada")
	require.NoError(t, err)

	_, err = manager.Parse(token)
	require.Error(t, err)
}

func TestManager_Parse_Garbage(t *testing.T) {
	_, err := NewManager("test-secret", time.Hour).Parse("not-a-token")
	require.Error(t, err)
}

func TestManager_Parse_MissingUserID(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	token, err := manager.Generate("", "ada@example.com", "Ada")
	require.NoError(t, err)

	_, err = manager.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

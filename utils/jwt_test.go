package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndValidateToken(t *testing.T) {
	token, expires, err := CreateToken("s3cret", time.Hour, 7, "admin@travel.local", "admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := ValidateJWT("s3cret", token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.AdminID)
	assert.Equal(t, "admin@travel.local", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateJWTRejects(t *testing.T) {
	token, _, err := CreateToken("s3cret", time.Hour, 1, "a", "admin")
	require.NoError(t, err)
	expired, _, err := CreateToken("s3cret", -time.Minute, 1, "a", "admin")
	require.NoError(t, err)

	_, err = ValidateJWT("other", token)
	assert.Error(t, err)
	_, err = ValidateJWT("s3cret", expired)
	assert.Error(t, err)
	_, err = ValidateJWT("s3cret", "")
	assert.Error(t, err)
	_, err = ValidateJWT("s3cret", "not.a.token")
	assert.Error(t, err)

	_, _, err = CreateToken("", time.Hour, 1, "a", "admin")
	assert.Error(t, err)
}

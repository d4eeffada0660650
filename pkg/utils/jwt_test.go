package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, expiresAt, err := NewAccessToken("secret", userID, "organizer", 2)
	require.NoError(t, err)
	assert.Greater(t, time.Until(expiresAt), time.Hour)

	claims, err := ParseAccessToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "organizer", claims.Role)
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	token, _, err := NewAccessToken("secret", uuid.New(), "standard", 1)
	require.NoError(t, err)

	_, err = ParseAccessToken("other-secret", token)
	assert.Error(t, err)
}

func TestParseAccessToken_Garbage(t *testing.T) {
	_, err := ParseAccessToken("secret", "not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", hash)

	assert.True(t, CheckPasswordHash("hunter22", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestGenerateOTP(t *testing.T) {
	otp := GenerateOTP(6)
	require.Len(t, otp, 6)
	for _, r := range otp {
		assert.True(t, r >= '0' && r <= '9', "OTP %q contains non-digit", otp)
	}
}

func TestGenerateBookingRef(t *testing.T) {
	ref := GenerateBookingRef()
	require.NotEmpty(t, ref)
	assert.Regexp(t, `^TIX-\d{8}-\d{6}-\d{4}$`, ref)
}

package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(7, "barista")
	assert.NoError(t, err)

	claims, err := ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "barista", claims.Role)
}

func TestParseTokenRejectsOtherSigningMethods(t *testing.T) {
	// Signed with the right secret but the wrong algorithm; only HS256 is
	// accepted.
	claims := &CustomClaims{
		UserID: 7,
		Role:   "barista",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "coffee-shop",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS384, claims)
	signed, err := token.SignedString(JWTSecret)
	assert.NoError(t, err)

	_, err = ParseToken(signed)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestBlacklistSweepsExpiredEntries(t *testing.T) {
	blacklistMutex.Lock()
	blacklistedTokens["stale-token"] = time.Now().Add(-time.Minute)
	blacklistMutex.Unlock()

	BlacklistToken("fresh-token")

	assert.True(t, IsTokenBlacklisted("fresh-token"))
	assert.False(t, IsTokenBlacklisted("stale-token"))

	blacklistMutex.Lock()
	_, staleStillStored := blacklistedTokens["stale-token"]
	blacklistMutex.Unlock()
	assert.False(t, staleStillStored)
}

package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("utils-secret")

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(secret, "64b7f0c2e4b0a1a2b3c4d5e6", "client", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "64b7f0c2e4b0a1a2b3c4d5e6", claims.UserID)
	assert.Equal(t, "client", claims.Role)
}

func TestValidateTokenRejects(t *testing.T) {
	expired, err := GenerateToken(secret, "u1", "client", -time.Minute)
	require.NoError(t, err)

	otherKey, err := GenerateToken([]byte("nope"), "u1", "client", time.Hour)
	require.NoError(t, err)

	noSubject, err := GenerateToken(secret, "", "client", time.Hour)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: "u1"}).SignedString(secret)
	require.NoError(t, err)

	wrongAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS384, &Claims{
		UserID:           "u1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(secret)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":    expired,
		"other key":  otherKey,
		"no subject": noSubject,
		"no expiry":  noExpiry,
		"wrong alg":  wrongAlg,
		"garbage":    "not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ValidateToken(secret, token)
			assert.True(t, errors.Is(err, ErrInvalidToken), "got %v", err)
		})
	}
}

func TestRespondSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, RespondSuccess(rec, http.StatusCreated, map[string]string{"id": "1"}, "Created"))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"statusCode":201,"data":{"id":"1"},"message":"Created","success":true}`, rec.Body.String())
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, RespondError(rec, http.StatusForbidden, "Nope"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]interface{}{"statusCode": 403.0, "message": "Nope", "success": false}, body)
}

func TestNewAPIResponseSuccessFlag(t *testing.T) {
	assert.True(t, NewAPIResponse(http.StatusOK, nil, "").Success)
	assert.False(t, NewAPIResponse(http.StatusNotFound, nil, "").Success)
}

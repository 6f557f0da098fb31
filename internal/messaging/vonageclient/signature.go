package vonageclient

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// JWTVerifier checks the HS256 bearer tokens Vonage attaches to webhooks,
// signed with the account's signature secret.
type JWTVerifier struct{}

// Verify reports whether token carries a valid signature for secret.
func (JWTVerifier) Verify(token, secret string) bool {
	return VerifySignature(token, secret)
}

// VerifyPayloadHash is Verify plus a check that the token's payload_hash
// claim matches the SHA-256 of body.
func (JWTVerifier) VerifyPayloadHash(token, secret string, body []byte) bool {
	return VerifyPayloadHash(token, secret, body)
}

// VerifySignature reports whether token carries a valid signature for secret.
// Empty tokens and secrets never verify.
func VerifySignature(token, secret string) bool {
	_, ok := parseWebhookToken(token, secret)
	return ok
}

// VerifyPayloadHash verifies the signature and compares the payload_hash
// claim with the hex SHA-256 digest of body.
func VerifyPayloadHash(token, secret string, body []byte) bool {
	claims, ok := parseWebhookToken(token, secret)
	if !ok {
		return false
	}
	claimed, _ := claims["payload_hash"].(string)
	if claimed == "" {
		return false
	}
	sum := sha256.Sum256(body)
	expected := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(claimed))) == 1
}

func parseWebhookToken(token, secret string) (jwt.MapClaims, bool) {
	token = strings.TrimSpace(token)
	if token == "" || secret == "" {
		return nil, false
	}
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, false
	}
	return claims, true
}

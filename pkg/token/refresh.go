package token

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
)

const refreshTokenBytes = 32

func GenerateRefreshToken() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// HashRefreshToken хэш привязан к сессии: токен другой сессии не совпадет
func HashRefreshToken(sessionID, token string) string {
	h := sha256.New()
	h.Write([]byte(sessionID))
	h.Write([]byte{0})
	h.Write([]byte(token))
	return hex.EncodeToString(h.Sum(nil))
}

func VerifyRefreshToken(sessionID, token, hash string) bool {
	return subtle.ConstantTimeCompare([]byte(HashRefreshToken(sessionID, token)), []byte(hash)) == 1
}

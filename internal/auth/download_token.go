package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// DownloadTokenManager issues short-lived signed tokens for attachment
// download URLs, so stored files are never served from a guessable path.
type DownloadTokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewDownloadTokenManager builds a manager with the given secret and TTL.
func NewDownloadTokenManager(secret string, ttlMinutes int) *DownloadTokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 15
	}
	return &DownloadTokenManager{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

// DownloadClaims scopes a token to one file of one case.
type DownloadClaims struct {
	CaseID   string `json:"case_id"`
	FileName string `json:"file_name"`
	jwt.RegisteredClaims
}

// Generate signs a download token for the given case attachment.
func (tm *DownloadTokenManager) Generate(caseID, fileName string) (string, error) {
	claims := &DownloadClaims{
		CaseID:   caseID,
		FileName: fileName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tm.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Parse validates a download token and returns its claims.
func (tm *DownloadTokenManager) Parse(tokenStr string) (*DownloadClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &DownloadClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*DownloadClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

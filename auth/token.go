// Package auth issues and validates the bearer tokens that carry caller
// identity and role. Tokens are HS256 JWTs; logout and refresh revoke the
// token's jti into a denylist table so invalidation survives restarts.
package auth

import (
	"errors"
	"time"

	"hydrolink/db"
	"hydrolink/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")

	secret   = []byte("hydrolink-dev-secret")
	tokenTTL = 72 * time.Hour
)

// Configure sets the signing secret and token lifetime. Called once at
// startup from config.
func Configure(jwtSecret string, ttlHours int) {
	secret = []byte(jwtSecret)
	if ttlHours > 0 {
		tokenTTL = time.Duration(ttlHours) * time.Hour
	}
}

type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

// Issue signs a fresh token for the given user.
func Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.New().String(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(tokenTTL).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Parse validates the signed token string and checks the denylist. Returns
// ErrInvalidToken for malformed, expired or revoked tokens.
func Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}

	var revoked models.RevokedToken
	err = db.DB.Where("jti = ?", claims.Id).First(&revoked).Error
	if err == nil {
		return nil, ErrInvalidToken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return claims, nil
}

// Revoke adds the token's jti to the denylist. Revoking an already revoked
// token is a no-op.
func Revoke(claims *Claims) error {
	row := models.RevokedToken{
		JTI:       claims.Id,
		ExpiresAt: time.Unix(claims.ExpiresAt, 0),
	}
	if err := db.DB.Create(&row).Error; err != nil {
		var existing models.RevokedToken
		if db.DB.Where("jti = ?", claims.Id).First(&existing).Error == nil {
			return nil
		}
		return err
	}
	return nil
}

// Refresh exchanges a still-valid set of claims for a new token bound to the
// same user, revoking the old one.
func Refresh(claims *Claims) (string, error) {
	var user models.User
	if err := db.DB.First(&user, claims.UserID).Error; err != nil {
		return "", ErrInvalidToken
	}
	if err := Revoke(claims); err != nil {
		return "", err
	}
	return Issue(&user)
}

package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"StockKeeper/internal/model"
)

const tokenTTL = 24 * time.Hour

var (
	// ErrNoToken — заголовок Authorization отсутствует или не в формате Bearer.
	ErrNoToken = errors.New("missing bearer token")
	// ErrInvalidToken — подпись не сошлась, токен истёк или повреждён.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims — полезная нагрузка токена. Сознательно урезана до id и username:
// полная запись пользователя (включая хеш пароля) в токен не попадает.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// IssueToken подписывает JWT (HS256) с личностью пользователя и сроком действия.
func IssueToken(user *model.User, secret string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
		UserID:   user.ID,
		Username: user.Username,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken проверяет подпись и срок действия, возвращает claims.
func ParseToken(raw string, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ParseBearer выделяет сырой токен из значения заголовка Authorization.
func ParseBearer(headerValue string) (string, error) {
	if headerValue == "" {
		return "", ErrNoToken
	}
	parts := strings.SplitN(headerValue, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrNoToken
	}
	return parts[1], nil
}

package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"stockroom/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims — полезная нагрузка access-токена. Subject — id пользователя.
type Claims struct {
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenProvider выпускает и проверяет bearer-токены. Сервисному слою
// важен только контракт claims+TTL, механика подписи — забота провайдера.
type TokenProvider interface {
	Issue(u *models.User) (token string, expiresIn int, err error)
	Verify(token string) (*Claims, error)
}

// JWTProvider — HS256 поверх общего секрета из конфига.
type JWTProvider struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTProvider(secret string, ttlMinutes int) *JWTProvider {
	return &JWTProvider{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

func (p *JWTProvider) Issue(u *models.User) (string, int, error) {
	now := time.Now().UTC()
	claims := Claims{
		Username: u.Username,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(u.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", 0, fmt.Errorf("sign token: %w", err)
	}
	return tok, int(p.ttl.Seconds()), nil
}

func (p *JWTProvider) Verify(raw string) (*Claims, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// UserID разбирает Subject обратно в id пользователя.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

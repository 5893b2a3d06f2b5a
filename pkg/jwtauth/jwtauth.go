// Package jwtauth issues and verifies the HS256 bearer tokens that guard
// the assistant API. There is a single owner subject, so there is no
// refresh flow: tokens are short-lived and re-issued by logging in again.
package jwtauth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const SubjectOwner = "owner"

var ErrInvalidToken = errors.New("jwtauth: invalid token")

type Config struct {
	Secret   string
	Issuer   string
	TokenTTL time.Duration
}

type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

type Claims struct {
	jwt.RegisteredClaims
}

func New(cfg Config) *Manager {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    ttl,
	}
}

func (m *Manager) Generate() (token string, expiresAt time.Time, err error) {
	now := time.Now().UTC()
	expiresAt = now.Add(m.ttl)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   SubjectOwner,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	return token, expiresAt, err
}

func (m *Manager) ParseAndVerify(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	tok, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if m.issuer != "" && claims.Issuer != m.issuer {
		return nil, ErrInvalidToken
	}
	if claims.Subject != SubjectOwner {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (m *Manager) ExpiresIn() int64 { return int64(m.ttl / time.Second) }

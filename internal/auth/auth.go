package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lshigami/schooltest/config"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

const issuer = "schooltest"

var ErrInvalidToken = errors.New("invalid token")

// Principal is the authenticated caller.
type Principal struct {
	SubjectID string
	Role      Role
}

func (p Principal) IsStaff() bool {
	return p.Role == RoleTeacher || p.Role == RoleAdmin
}

func (p Principal) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}

type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	hmac []byte
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{hmac: []byte(cfg.Auth.JWTSecret)}
}

// IssueJWT signs an HS256 token for the principal.
func (a *AuthService) IssueJWT(p Principal, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.SubjectID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(a.hmac)
}

func (a *AuthService) Parse(tokenStr string) (Principal, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return a.hmac, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	c, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Principal{}, ErrInvalidToken
	}
	switch c.Role {
	case RoleStudent, RoleTeacher, RoleAdmin:
	default:
		return Principal{}, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, c.Role)
	}
	if c.Subject == "" {
		return Principal{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return Principal{SubjectID: c.Subject, Role: c.Role}, nil
}

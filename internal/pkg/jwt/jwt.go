package jwt

import (
	"errors"
	"time"

	"roomboard/internal/domain/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	// ErrMissingOrganization marks org admin claims without organization_id.
	ErrMissingOrganization = errors.New("org admin token has no organization")
)

// Claims are issued by the identity service. OrganizationID is present for
// organization admins and for users that belong to an organization.
type Claims struct {
	UserID         uuid.UUID  `json:"user_id"`
	Role           string     `json:"role"`
	OrganizationID *uuid.UUID `json:"organization_id,omitempty"`
	jwt.RegisteredClaims
}

type Service struct {
	secretKey     []byte
	tokenDuration time.Duration
	now           func() time.Time
}

func NewService(secretKey string, tokenDuration time.Duration) *Service {
	return &Service{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
		now:           time.Now,
	}
}

// GenerateToken signs a token for p. Production tokens come from the identity
// service; this is used by tooling and tests.
func (s *Service) GenerateToken(p user.Principal) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:         p.UserID,
		Role:           p.Role.String(),
		OrganizationID: p.OrganizationID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Principal converts validated claims into the caller identity.
func (c *Claims) Principal() (user.Principal, error) {
	role, err := user.NewRole(c.Role)
	if err != nil {
		return user.Principal{}, err
	}
	if c.UserID == uuid.Nil {
		return user.Principal{}, ErrInvalidToken
	}
	if role == user.RoleOrgAdmin && (c.OrganizationID == nil || *c.OrganizationID == uuid.Nil) {
		return user.Principal{}, ErrMissingOrganization
	}
	return user.Principal{UserID: c.UserID, Role: role, OrganizationID: c.OrganizationID}, nil
}

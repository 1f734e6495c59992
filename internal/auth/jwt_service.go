package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"razzrel/internal/model"
)

// DefaultTokenTTL is the lifetime of an issued token.
const DefaultTokenTTL = 24 * time.Hour

var (
	// ErrInvalidToken is returned when a token is malformed or its signature does not verify.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired is returned when the token's expiry is not after the current time.
	ErrTokenExpired = errors.New("token expired")
)

// Identity is the set of user attributes embedded in a token.
type Identity struct {
	UserID         uint       `json:"id"`
	Email          string     `json:"email"`
	Role           model.Role `json:"role"`
	FullName       string     `json:"fullName"`
	ContactNo      string     `json:"contactNo"`
	ProfilePicture string     `json:"profilePicture,omitempty"`
}

// IdentityOf extracts the token identity of a stored user.
func IdentityOf(u *model.User) Identity {
	return Identity{
		UserID:         u.ID,
		Email:          u.Email,
		Role:           u.Role,
		FullName:       u.FullName,
		ContactNo:      u.ContactNo,
		ProfilePicture: u.ProfilePicture,
	}
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
}

// Claims represents JWT claims.
type Claims struct {
	Identity
	jwt.RegisteredClaims
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService creates a new JWT service with the given secret. A non-positive
// ttl falls back to DefaultTokenTTL.
func NewJWTService(secret string, ttl time.Duration) *JWTService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL returns the lifetime applied to issued tokens.
func (s *JWTService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for identity, valid for the configured TTL from now.
func (s *JWTService) Issue(identity Identity) (string, *Claims, error) {
	now := s.now().Truncate(time.Second)
	claims := &Claims{
		Identity: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   fmt.Sprint(identity.UserID),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

// Verify checks the signature and expiry of tokenString and returns its claims.
// A token whose expiry equals the current second is already expired.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.ExpiresAt == nil || claims.ID == "" || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	if !s.now().Before(claims.ExpiresAt.Time) {
		return nil, ErrTokenExpired
	}
	return claims, nil
}

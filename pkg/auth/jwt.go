package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrExpiredToken indicates the token is past its expiry
	ErrExpiredToken = errors.New("token has expired")
	// ErrInvalidSignature indicates the token signature check failed
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrInvalidToken indicates the token is malformed or fails a claim check
	ErrInvalidToken = errors.New("invalid token")
)

// Claims holds the identity carried by an access token
type Claims struct {
	UserID   string   `json:"uid"`
	ClientID string   `json:"cid"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// JWTConfig holds the configuration for token validation
type JWTConfig struct {
	SecretKey string
	Issuer    string
	Audience  []string
}

// JWTValidator validates HS256 access tokens
type JWTValidator struct {
	config JWTConfig
}

// NewJWTValidator creates a new JWT validator
func NewJWTValidator(config JWTConfig) (*JWTValidator, error) {
	if config.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}
	return &JWTValidator{config: config}, nil
}

// ValidateToken parses and validates a token string
func (v *JWTValidator) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(v.config.SecretKey), nil
	},
		jwt.WithIssuer(v.config.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrInvalidToken
		}
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if len(v.config.Audience) > 0 && !hasAudience(claims.Audience, v.config.Audience) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func hasAudience(tokenAud jwt.ClaimStrings, allowed []string) bool {
	for _, want := range allowed {
		for _, have := range tokenAud {
			if have == want {
				return true
			}
		}
	}
	return false
}

// JWTGenerator issues HS256 access tokens
type JWTGenerator struct {
	config JWTConfig
	expiry time.Duration
}

// NewJWTGenerator creates a new JWT generator
func NewJWTGenerator(config JWTConfig, expiry time.Duration) (*JWTGenerator, error) {
	if config.SecretKey == "" {
		return nil, errors.New("secret key is required")
	}
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &JWTGenerator{config: config, expiry: expiry}, nil
}

// GenerateToken issues a token for the given identity
func (g *JWTGenerator) GenerateToken(userID, clientID string, roles []string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		ClientID: clientID,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.config.Issuer,
			Audience:  g.config.Audience,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(g.config.SecretKey))
}

// UserContext is the authenticated identity attached to a request
type UserContext struct {
	UserID   string
	ClientID string
	Roles    []string
}

type userContextKey struct{}

// SetUserInContext attaches the authenticated identity to the context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUserFromContext retrieves the authenticated identity from the context
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey{}).(*UserContext)
	if !ok || user == nil {
		return nil, errors.New("no authenticated user in context")
	}
	return user, nil
}

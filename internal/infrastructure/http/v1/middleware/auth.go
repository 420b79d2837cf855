package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"stockyard/internal/core/apperror"
	"stockyard/internal/core/appctx"
)

// JWTValidator validates a bearer token and returns the caller identity.
type JWTValidator interface {
	ValidateToken(tokenString string) (*appctx.Identity, error)
}

// Auth middleware validates JWT tokens and populates the caller identity.
// The token subject keys the per-identity pagination cursor cache.
func Auth(validator JWTValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		ident, err := validator.ValidateToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		ctx := appctx.WithIdentity(c.Request.Context(), ident)
		c.Request = c.Request.WithContext(ctx)
		c.Set("subject", ident.Subject)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	_ = c.Error(apperror.NewUnauthorized(message))
	c.Abort()
}

// HMACValidator validates HS256-signed tokens with a shared secret.
type HMACValidator struct {
	secret []byte
}

// NewHMACValidator creates a validator for the given shared secret.
func NewHMACValidator(secret string) *HMACValidator {
	return &HMACValidator{secret: []byte(secret)}
}

// ValidateToken parses and verifies the token, returning its subject.
func (v *HMACValidator) ValidateToken(tokenString string) (*appctx.Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, err
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return nil, jwt.ErrTokenRequiredClaimMissing
	}

	return &appctx.Identity{Subject: subject}, nil
}

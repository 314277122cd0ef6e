package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Hala-ashour/Restaurant98/internal/domain/access"
	"github.com/Hala-ashour/Restaurant98/pkg/logger"
)

const principalKey = "principal"

var errMissingToken = errors.New("missing bearer token")

// AuthRequired validates an HS256 bearer token and stores the caller's Principal.
// The user id comes from the user_id claim, falling back to sub.
func AuthRequired(secret []byte, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := parsePrincipal(c.GetHeader("Authorization"), secret)
		if err != nil {
			log.WithContext(c.Request.Context()).Debug("rejected token", logger.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
			return
		}
		c.Set(principalKey, p)
		c.Next()
	}
}

func parsePrincipal(header string, secret []byte) (access.Principal, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return access.Principal{}, errMissingToken
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return access.Principal{}, err
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		userID, _ = claims.GetSubject()
	}
	if userID == "" {
		return access.Principal{}, fmt.Errorf("token has no subject")
	}

	rawRole, _ := claims["role"].(string)
	role, err := access.ParseRole(rawRole)
	if err != nil {
		return access.Principal{}, err
	}
	return access.Principal{UserID: userID, Role: role}, nil
}

// Require aborts with 403 unless the caller holds capability. Must run after AuthRequired.
func Require(capability access.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token"})
			return
		}
		if err := p.Authorize(capability); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":               "permission denied",
				"required_permission": capability.Name,
			})
			return
		}
		c.Next()
	}
}

func PrincipalFrom(c *gin.Context) (access.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return access.Principal{}, false
	}
	p, ok := v.(access.Principal)
	return p, ok
}

// SignToken issues an HS256 token for p. Used by tooling and tests.
func SignToken(secret []byte, p access.Principal, claims jwt.MapClaims) (string, error) {
	all := jwt.MapClaims{"user_id": p.UserID, "sub": p.UserID, "role": string(p.Role)}
	for k, v := range claims {
		all[k] = v
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, all).SignedString(secret)
}

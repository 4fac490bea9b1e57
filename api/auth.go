package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
)

type adminClaims struct {
	Role      string `json:"role"`
	Subject   string `json:"sub"`
	ExpiresAt int64  `json:"exp"`
}

func parseAdminJWT(jwtStr string, secret string) (*adminClaims, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("failed to parse claims")
	}

	parsed := adminClaims{}
	if role, ok := claims["role"].(string); ok {
		parsed.Role = role
	}
	if sub, ok := claims["sub"].(string); ok {
		parsed.Subject = sub
	}
	if exp, ok := claims["exp"].(float64); ok {
		parsed.ExpiresAt = int64(exp)
	}

	if time.Now().UTC().Unix() > parsed.ExpiresAt {
		return nil, fmt.Errorf("jwt is expired")
	}

	return &parsed, nil
}

// requireAdmin guards endpoints that move money. Tokens are HS256
// signed with the shared secret and must carry role=admin.
func (m ApiHandler) requireAdmin(ctx *gin.Context) {
	if m.JwtSecret == "" {
		returnErrorJsonCode(fmt.Errorf("admin endpoints are disabled"), ctx, 403)
		return
	}

	header := ctx.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		returnErrorJsonCode(fmt.Errorf("missing bearer token"), ctx, 401)
		return
	}
	jwtStr := strings.TrimPrefix(header, "Bearer ")

	claims, err := parseAdminJWT(jwtStr, m.JwtSecret)
	if err != nil {
		returnErrorJsonCode(err, ctx, 401)
		return
	}
	if claims.Role != "admin" {
		returnErrorJsonCode(fmt.Errorf("insufficient permissions"), ctx, 403)
		return
	}

	ctx.Next()
}

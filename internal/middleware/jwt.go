package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/iqac-report-api/internal/utils"
)

// principal is the caller identity a report request is authorised against.
type principal struct {
	UserID       uint
	Role         string
	DepartmentID uint
}

// JWTProtected validates HMAC bearer tokens and exposes user_id, user_role and
// department_id claims as request locals.
func JWTProtected(secret string) fiber.Handler {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithLeeway(30*time.Second),
	)
	key := []byte(secret)

	return func(c *fiber.Ctx) error {
		raw, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "missing or malformed bearer token")
		}

		claims := jwt.MapClaims{}
		if _, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
			return key, nil
		}); err != nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		p := principalFromClaims(claims)
		if p.UserID != 0 {
			c.Locals("user_id", p.UserID)
		}
		if p.Role != "" {
			c.Locals("user_role", p.Role)
		}
		if p.DepartmentID != 0 {
			c.Locals("department_id", p.DepartmentID)
		}

		return c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func principalFromClaims(claims jwt.MapClaims) principal {
	return principal{
		UserID:       claimUint(claims, "sub", "user_id", "id"),
		Role:         claimRole(claims, "role", "roles"),
		DepartmentID: claimUint(claims, "department_id", "dept_id", "department"),
	}
}

// claimUint returns the first positive integer found under keys. JSON numbers decode as float64.
func claimUint(claims jwt.MapClaims, keys ...string) uint {
	for _, key := range keys {
		switch v := claims[key].(type) {
		case float64:
			if v > 0 {
				return uint(v)
			}
		case string:
			if parsed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64); err == nil && parsed > 0 {
				return uint(parsed)
			}
		}
	}
	return 0
}

// claimRole accepts either a single role or a role list, using the first non-blank entry.
func claimRole(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		switch v := claims[key].(type) {
		case string:
			if role := strings.ToLower(strings.TrimSpace(v)); role != "" {
				return role
			}
		case []interface{}:
			for _, item := range v {
				if s, ok := item.(string); ok {
					if role := strings.ToLower(strings.TrimSpace(s)); role != "" {
						return role
					}
				}
			}
		}
	}
	return ""
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestJWTProtectedExposesClaims(t *testing.T) {
	var userID, role, departmentID interface{}
	app := fiber.New()
	app.Use(JWTProtected(testSecret))
	app.Get("/", func(c *fiber.Ctx) error {
		userID, role, departmentID = c.Locals("user_id"), c.Locals("user_role"), c.Locals("department_id")
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{
		"sub":           "42",
		"role":          "HOD",
		"department_id": float64(3),
		"exp":           time.Now().Add(time.Hour).Unix(),
	}))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	require.Equal(t, uint(42), userID)
	require.Equal(t, "hod", role)
	require.Equal(t, uint(3), departmentID)
}

func TestJWTProtectedRejectsForeignSignature(t *testing.T) {
	app := fiber.New()
	app.Use(JWTProtected(testSecret))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1"})
	signed, err := token.SignedString([]byte("other-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedRequiresHeader(t *testing.T) {
	app := fiber.New()
	app.Use(JWTProtected(testSecret))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedRejectsExpiredToken(t *testing.T) {
	app := fiber.New()
	app.Use(JWTProtected(testSecret))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedRejectsUnsignedToken(t *testing.T) {
	app := fiber.New()
	app.Use(JWTProtected(testSecret))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "1", "role": "admin"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+unsigned)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestPrincipalFromClaims(t *testing.T) {
	p := principalFromClaims(jwt.MapClaims{
		"user_id":    float64(7),
		"roles":      []interface{}{" ", "Faculty", "hod"},
		"dept_id":    "12",
		"sub":        "not-a-number",
		"ignored":    true,
		"department": float64(-1),
	})
	require.Equal(t, principal{UserID: 7, Role: "faculty", DepartmentID: 12}, p)

	require.Equal(t, principal{}, principalFromClaims(jwt.MapClaims{}))
}

func TestBearerToken(t *testing.T) {
	token, ok := bearerToken("bearer abc.def")
	require.True(t, ok)
	require.Equal(t, "abc.def", token)

	_, ok = bearerToken("Basic dXNlcg==")
	require.False(t, ok)
	_, ok = bearerToken("Bearer ")
	require.False(t, ok)
}

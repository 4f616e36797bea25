package middleware

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/noah-isme/iqac-report-api/internal/utils"
)

// RateLimit throttles report generation per authenticated user, falling back to the client IP
// for anonymous callers. Rejections use the standard error envelope with a Retry-After hint.
func RateLimit(bucket string, max int, window time.Duration) fiber.Handler {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	retryAfter := strconv.Itoa(int(math.Ceil(window.Seconds())))

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if id, ok := c.Locals("user_id").(uint); ok && id != 0 {
				return fmt.Sprintf("%s:user:%d", bucket, id)
			}
			return fmt.Sprintf("%s:ip:%s", bucket, c.IP())
		},
		LimitReached: func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderRetryAfter, retryAfter)
			return utils.Fail(c, fiber.StatusTooManyRequests, "report generation rate limit exceeded", fiber.Map{
				"limit":          max,
				"window_seconds": int(window.Seconds()),
			})
		},
	})
}

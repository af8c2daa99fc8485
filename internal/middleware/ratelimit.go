// Package middleware holds shared gin middleware.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"codeberg.org/semtools/sparqld/internal/errors"
	"codeberg.org/semtools/sparqld/internal/logger"
)

// RateLimit returns a per-client-IP rate limiter backed by an in-memory
// store. The format follows ulule/limiter notation ("30-M" is 30
// requests per minute).
func RateLimit(format string) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(format)
	if err != nil {
		logger.FatalErr(err, "invalid rate limit format", "format", format)
	}

	instance := limiter.New(memory.NewStore(), rate)

	return mgin.NewMiddleware(instance,
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			errors.TooManyRequests(c, "rate limit exceeded")
		}),
	)
}

package middleware

import (
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/event-ticketing/internal/config"
)

// cachedResponse is the envelope stored in Redis for a cacheable response.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// bodyCapture buffers the response body while still streaming it to the
// client.  Responses larger than limit are passed through uncached.
type bodyCapture struct {
	http.ResponseWriter
	status   int
	buf      bytes.Buffer
	overflow bool
	limit    int
}

func (bc *bodyCapture) WriteHeader(code int) {
	bc.status = code
	bc.ResponseWriter.WriteHeader(code)
}

func (bc *bodyCapture) Write(b []byte) (int, error) {
	if !bc.overflow {
		if bc.buf.Len()+len(b) > bc.limit {
			bc.overflow = true
			bc.buf.Reset()
		} else {
			bc.buf.Write(b)
		}
	}
	return bc.ResponseWriter.Write(b)
}

// NewResponseCache caches successful GET responses in Redis for cfg.TTL.
// It is intended for read-heavy endpoints like the public seat map, where
// a few seconds of staleness is acceptable.  Non-GET requests and error
// responses are never cached, and a missing Redis client disables the
// middleware entirely.
func NewResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method != http.MethodGet {
				return next(c)
			}

			sum := sha1.Sum([]byte(c.Path() + "?" + req.URL.RawQuery))
			key := fmt.Sprintf("%s:%x", cfg.Prefix, sum)
			ctx := req.Context()

			if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var cached cachedResponse
				if json.Unmarshal(raw, &cached) == nil {
					c.Response().Header().Set(echo.HeaderContentType, cached.ContentType)
					c.Response().Header().Set("X-Cache", "HIT")
					return c.Blob(cached.Status, cached.ContentType, cached.Body)
				}
			}

			cw := &bodyCapture{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
			c.Response().Writer = cw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			if cw.status == http.StatusOK && !cw.overflow && cw.buf.Len() > 0 {
				payload, err := json.Marshal(cachedResponse{
					Status:      cw.status,
					ContentType: c.Response().Header().Get(echo.HeaderContentType),
					Body:        cw.buf.Bytes(),
				})
				if err == nil {
					// Best effort; a failed SET only costs a cache miss.
					rdb.Set(ctx, key, payload, cfg.TTL)
				}
			}
			return nil
		}
	}
}

package httpserver

import (
	"fmt"
	"log"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"valinor/internal/metrics"
)

const (
	headerRequestID = "X-Request-Id"
	localRequestID  = "request_id"
)

var (
	reqStartUnix = time.Now().UnixNano()
	reqCounter   uint64
)

// makeReqID returns external X-Request-Id if provided, otherwise generates UUIDv4;
// if uuid generation fails, fallback to timestamp+counter.
func makeReqID(c *fiber.Ctx) string {
	if hdr := c.Get(headerRequestID); hdr != "" {
		return hdr
	}
	if v, err := uuid.NewRandom(); err == nil {
		return v.String()
	}
	n := atomic.AddUint64(&reqCounter, 1)
	return fmt.Sprintf("%x-%x", reqStartUnix, n)
}

// requestID stores the request id in locals and echoes it on the response.
func requestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := makeReqID(c)
		c.Locals(localRequestID, id)
		c.Set(headerRequestID, id)
		return c.Next()
	}
}

func countRequests() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		metrics.IncRequest(c.Route().Path, strconv.Itoa(status))
		return err
	}
}

// reqLogger returns printf-style logger prefixed with request id.
func reqLogger(c *fiber.Ctx) func(format string, args ...any) {
	reqID, _ := c.Locals(localRequestID).(string)
	if reqID == "" {
		reqID = makeReqID(c)
	}
	return func(format string, args ...any) {
		log.Printf("[req=%s]"+format, append([]any{reqID}, args...)...)
	}
}

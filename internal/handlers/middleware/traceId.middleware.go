package middleware

import (
	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// TraceIDHeader carries the trace ID between client and server.
	TraceIDHeader = "X-Trace-ID"

	// TraceIDLocalKey is where the trace ID lives in Fiber locals.
	TraceIDLocalKey = "traceID"
)

// TraceID tags every request with a trace ID so log lines across the
// handler, controller, and repository layers can be correlated. Clients
// that send their own X-Trace-ID keep it; everyone else gets a fresh UUID.
func (m *Middleware) TraceID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceID := c.Get(TraceIDHeader)
		if traceID == "" {
			traceID = uuid.New().String()
		}

		// Echo it back so clients can quote the ID when reporting issues.
		c.Set(TraceIDHeader, traceID)
		c.Locals(TraceIDLocalKey, traceID)

		// The logger picks it up from the request context downstream.
		c.SetUserContext(logger.ContextWithTraceID(c.UserContext(), traceID))

		return c.Next()
	}
}

// GetTraceID returns the request's trace ID, or "" outside the middleware.
func GetTraceID(c *fiber.Ctx) string {
	if traceID, ok := c.Locals(TraceIDLocalKey).(string); ok {
		return traceID
	}
	return ""
}

package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.RecordError("/api/orders", "POST", "VALIDATION_FAILED")
	m.RecordError("/api/orders", "POST", "VALIDATION_FAILED")
	m.RecordError("/api/orders", "DELETE", "NOT_OWNER")

	assert.EqualValues(t, 2, m.ErrorCount("/api/orders", "POST", "VALIDATION_FAILED"))
	assert.EqualValues(t, 1, m.ErrorCount("/api/orders", "DELETE", "NOT_OWNER"))
	assert.EqualValues(t, 0, m.ErrorCount("/api/orders", "GET", "NOT_FOUND"))
}

func TestMetricsNilReceiverSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/x", "GET", 200, time.Millisecond)
	m.RecordError("/x", "GET", "INTERNAL_ERROR")
	assert.EqualValues(t, 0, m.ErrorCount("/x", "GET", "INTERNAL_ERROR"))
}

func TestRequestLoggerRecordsRequests(t *testing.T) {
	m := NewMetrics()
	app := fiber.New()
	app.Use(RequestLogger(zap.NewNop(), m))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.EqualValues(t, 1, m.requestCount["/ping|GET|200"])
}

package middleware

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/foundit/internal/pkg/logger"
)

func TestRequestIDAssignsAndPropagates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		c.String(200, c.GetString(RequestIDKey))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	assigned := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(assigned)
	require.NoError(t, err)
	require.Equal(t, assigned, w.Body.String())

	incoming := uuid.New().String()
	w = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	r.ServeHTTP(w, req)
	require.Equal(t, incoming, w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	r.ServeHTTP(w, req)
	require.NotEqual(t, "<script>", w.Header().Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS("http://localhost:3000"))
	r.GET("/", func(c *gin.Context) { c.Status(200) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("OPTIONS", "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)
	require.Equal(t, 204, w.Code)
	require.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "http://evil.example")
	r.ServeHTTP(w, req)
	require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_OriginList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS("http://localhost:3000, https://foundit.example/"))
	r.GET("/", func(c *gin.Context) { c.Status(200) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "https://foundit.example")
	r.ServeHTTP(w, req)
	require.Equal(t, "https://foundit.example", w.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "X-Request-ID")
}

func TestLoggerHelpers(t *testing.T) {
	require.Equal(t, "512B", formatSize(512))
	require.Equal(t, "1.5KB", formatSize(1536))
	require.True(t, isSensitiveField("accesstoken"))
	require.False(t, isSensitiveField("itemname"))
	require.Equal(t, "abc...", truncateString("abcdef", 3))
}

func TestLoggerWritesOneLinePerRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	cfg := DefaultLoggerConfig()
	cfg.EnableColors = false
	cfg.Output = logger.NewWithWriter(logger.DEBUG, &buf)

	r := gin.New()
	r.Use(RequestID(), LoggerWithConfig(cfg))
	r.POST("/api/v1/reports", func(c *gin.Context) {
		c.JSON(422, gin.H{"code": "VALIDATION_FAILED"})
	})
	r.GET("/health", func(c *gin.Context) { c.Status(200) })

	req := httptest.NewRequest("POST", "/api/v1/reports", strings.NewReader(`{"itemName":"Keys","token":"abc"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(httptest.NewRecorder(), req)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/health", nil))

	out := buf.String()
	require.Contains(t, out, "[WARN] [http] POST /api/v1/reports -> 422")
	require.Contains(t, out, `"token":"********"`)
	require.Contains(t, out, "VALIDATION_FAILED")
	require.Contains(t, out, "request=")
	require.NotContains(t, out, "/health")
}

func TestLoggerLeavesChunkedBodyIntact(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	cfg := DefaultLoggerConfig()
	cfg.EnableColors = false
	cfg.Output = logger.NewWithWriter(logger.DEBUG, &buf)

	var received map[string]string
	r := gin.New()
	r.Use(LoggerWithConfig(cfg))
	r.POST("/api/v1/reports", func(c *gin.Context) {
		if err := c.ShouldBindJSON(&received); err != nil {
			c.Status(400)
			return
		}
		c.Status(201)
	})

	details := strings.Repeat("d", 3000)
	req := httptest.NewRequest("POST", "/api/v1/reports", strings.NewReader(`{"itemName":"Keys","details":"`+details+`"}`))
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = -1
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, 201, w.Code)
	require.Equal(t, details, received["details"])
	require.Contains(t, buf.String(), "body=[unknown length]")
}

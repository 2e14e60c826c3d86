package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/foundit/internal/pkg/logger"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorPurple = "\033[35m"
	ColorCyan   = "\033[36m"
	ColorWhite  = "\033[37m"
)

// Logger configuration
type LoggerConfig struct {
	EnableColors    bool
	LogRequestBody  bool
	LogResponseBody bool
	MaxBodySize     int64 // Max body size to log (in bytes)
	SkipPaths       []string
	Output          *logger.Logger
}

// DefaultLoggerConfig logs JSON request bodies and error response bodies only
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		EnableColors:    true,
		LogRequestBody:  true,
		LogResponseBody: false, // Only for errors
		MaxBodySize:     2048,  // 2KB limit
		SkipPaths:       []string{"/health", "/metrics"},
		Output:          logger.Default().Named("http"),
	}
}

func Logger() gin.HandlerFunc {
	return LoggerWithConfig(DefaultLoggerConfig())
}

func LoggerWithConfig(config LoggerConfig) gin.HandlerFunc {
	if config.Output == nil {
		config.Output = logger.Default().Named("http")
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		for _, skipPath := range config.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		method := c.Request.Method
		contentType := c.GetHeader("Content-Type")

		var requestBody string
		if config.LogRequestBody {
			requestBody = captureRequestBody(c, contentType, config.MaxBodySize)
		}

		writer := &limitedResponseWriter{
			ResponseWriter: c.Writer,
			maxSize:        config.MaxBodySize,
		}
		c.Writer = writer

		c.Next()

		status := writer.Status()
		entry := fmt.Sprintf("%s %s -> %s %v %s ip=%s",
			colorize(config, getMethodColor(method), method),
			path,
			colorize(config, getStatusColor(status), fmt.Sprint(status)),
			time.Since(start).Round(time.Microsecond),
			formatSize(writer.size),
			c.ClientIP())

		if id := c.GetString(RequestIDKey); id != "" {
			entry += " request=" + id
		}
		if userID := c.GetString("userID"); userID != "" {
			entry += " user=" + userID
		}
		if requestBody != "" {
			entry += " body=" + requestBody
		}
		if writer.body.Len() > 0 && (config.LogResponseBody || status >= 400) {
			entry += " response=" + sanitizeResponseBody(writer.body.String())
		}

		switch {
		case status >= 500:
			config.Output.Error("%s", entry)
		case status >= 400:
			config.Output.Warn("%s", entry)
		default:
			config.Output.Info("%s", entry)
		}
	}
}

// captureRequestBody reads and restores small JSON bodies. Multipart uploads
// carry photos and are summarised instead.
func captureRequestBody(c *gin.Context, contentType string, maxSize int64) string {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return ""
	}
	// chunked bodies are never buffered, a partial copy would replace the real one
	if c.Request.ContentLength < 0 {
		return "[unknown length]"
	}
	if strings.HasPrefix(contentType, "multipart/") {
		return fmt.Sprintf("[multipart %s]", formatSize(c.Request.ContentLength))
	}
	if c.Request.ContentLength > maxSize {
		return "[Request body too large to log]"
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(c.Request.Body, maxSize))
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	return sanitizeBody(string(bodyBytes), contentType)
}

// Size-limited response writer - prevents memory issues
type limitedResponseWriter struct {
	gin.ResponseWriter
	body    bytes.Buffer
	size    int64
	maxSize int64
}

func (w *limitedResponseWriter) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)

	if w.size+int64(len(b)) <= w.maxSize {
		w.body.Write(b[:n])
	}
	w.size += int64(n)

	return n, err
}

func colorize(config LoggerConfig, color, s string) string {
	if !config.EnableColors {
		return s
	}
	return color + s + ColorReset
}

func formatSize(bytes int64) string {
	if bytes < 1024 {
		return fmt.Sprintf("%dB", bytes)
	} else if bytes < 1024*1024 {
		return fmt.Sprintf("%.1fKB", float64(bytes)/1024)
	}
	return fmt.Sprintf("%.1fMB", float64(bytes)/(1024*1024))
}

func getMethodColor(method string) string {
	switch method {
	case "GET":
		return ColorGreen
	case "POST":
		return ColorBlue
	case "OPTIONS":
		return ColorPurple
	default:
		return ColorWhite
	}
}

func getStatusColor(status int) string {
	switch {
	case status >= 200 && status < 300:
		return ColorGreen
	case status >= 300 && status < 400:
		return ColorCyan
	case status >= 400 && status < 500:
		return ColorYellow
	case status >= 500:
		return ColorRed
	default:
		return ColorWhite
	}
}

func sanitizeBody(body, contentType string) string {
	if len(body) == 0 {
		return ""
	}

	if len(body) > 1024 {
		return "[Body too large to log]"
	}

	if strings.Contains(contentType, "application/json") {
		var jsonData interface{}
		if json.Unmarshal([]byte(body), &jsonData) == nil {
			sanitized := hideSensitiveFields(jsonData)
			if formatted, err := json.Marshal(sanitized); err == nil {
				return string(formatted)
			}
		}
	}

	return truncateString(body, 200)
}

func hideSensitiveFields(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{})
		for key, value := range v {
			if isSensitiveField(strings.ToLower(key)) {
				result[key] = "********"
			} else {
				result[key] = hideSensitiveFields(value)
			}
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = hideSensitiveFields(item)
		}
		return result
	default:
		return v
	}
}

func isSensitiveField(field string) bool {
	sensitive := []string{"password", "token", "secret", "key", "auth", "credential"}
	for _, s := range sensitive {
		if strings.Contains(field, s) {
			return true
		}
	}
	return false
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

func sanitizeResponseBody(body string) string {
	if len(body) == 0 {
		return ""
	}

	var jsonData interface{}
	if json.Unmarshal([]byte(body), &jsonData) == nil {
		if formatted, err := json.Marshal(jsonData); err == nil {
			return truncateString(string(formatted), 500)
		}
	}

	return truncateString(body, 200)
}

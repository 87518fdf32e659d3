package http

import (
	"encoding/json"
	"log"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	requestBodyLogKey  = "http.request.body.summary"
	responseBodyLogKey = "http.response.body.summary"
	maxLoggedBody      = 2048
	maxPreviewItems    = 3
)

// sensitiveKeys are redacted wherever they appear as JSON keys.
var sensitiveKeys = []string{"token", "secret", "api_key", "authorization"}

type requestLogLine struct {
	Time      string `json:"time"`
	ProfileID string `json:"profile_id"`
	LatencyMS int64  `json:"latency_ms"`
	Request   struct {
		Method string `json:"method"`
		URI    string `json:"uri"`
		Body   any    `json:"body,omitempty"`
	} `json:"request"`
	Response struct {
		Status int    `json:"status"`
		Body   any    `json:"body,omitempty"`
		Error  string `json:"error,omitempty"`
	} `json:"response"`
}

func registerLogging(e *echo.Echo) {
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			line := requestLogLine{
				Time:      v.StartTime.Format(time.RFC3339),
				ProfileID: "anonymous",
				LatencyMS: v.Latency.Milliseconds(),
			}
			if id, ok := c.Get(contextProfileKey).(uuid.UUID); ok {
				line.ProfileID = id.String()
			}
			line.Request.Method = v.Method
			line.Request.URI = redactQuery(v.URI)
			line.Request.Body = c.Get(requestBodyLogKey)
			line.Response.Status = v.Status
			line.Response.Body = c.Get(responseBodyLogKey)
			if v.Error != nil {
				line.Response.Error = v.Error.Error()
			}

			buf, err := json.Marshal(line)
			if err != nil {
				return err
			}
			log.Println(string(buf))
			return nil
		},
	}))

	e.Use(middleware.BodyDump(func(c echo.Context, reqBody, resBody []byte) {
		if summary := summarizeBody(reqBody); summary != nil {
			c.Set(requestBodyLogKey, summary)
		}
		if summary := summarizeBody(resBody); summary != nil {
			c.Set(responseBodyLogKey, summary)
		}
	}))
}

func summarizeBody(body []byte) any {
	if len(body) == 0 {
		return nil
	}
	var data any
	if json.Valid(body) && json.Unmarshal(body, &data) == nil {
		return limitJSONSize(redactJSON(data, ""))
	}
	if containsBinaryBytes(body) {
		return "binary"
	}
	return clampString(string(body))
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

func redactJSON(value any, key string) any {
	if key != "" && isSensitiveKey(key) {
		return "redacted"
	}
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = redactJSON(val, k)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = redactJSON(item, "")
		}
		return out
	case string:
		return clampString(v)
	default:
		return v
	}
}

// redactQuery masks sensitive query parameters in a request URI.
func redactQuery(uri string) string {
	path, query, ok := strings.Cut(uri, "?")
	if !ok {
		return uri
	}
	parts := strings.Split(query, "&")
	for i, part := range parts {
		name, _, _ := strings.Cut(part, "=")
		if isSensitiveKey(name) {
			parts[i] = name + "=redacted"
		}
	}
	return path + "?" + strings.Join(parts, "&")
}

func limitJSONSize(value any) any {
	buf, err := json.Marshal(value)
	if err != nil || len(buf) <= maxLoggedBody {
		return value
	}
	return map[string]any{
		"_truncated": true,
		"_preview":   preview(value, 0),
	}
}

func preview(value any, depth int) any {
	if depth >= 3 {
		return "...(omitted)..."
	}
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make(map[string]any, len(keys))
		for _, k := range keys {
			out[k] = preview(v[k], depth+1)
		}
		return out
	case []any:
		sample := make([]any, 0, maxPreviewItems)
		for i := 0; i < len(v) && i < maxPreviewItems; i++ {
			sample = append(sample, preview(v[i], depth+1))
		}
		return map[string]any{"_total_items": len(v), "_sample": sample}
	default:
		return v
	}
}

func containsBinaryBytes(data []byte) bool {
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			return true
		}
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return true
		}
		data = data[size:]
	}
	return false
}

func clampString(value string) string {
	if len(value) <= maxLoggedBody {
		return value
	}
	truncated := value[:maxLoggedBody]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated + "...(truncated)"
}

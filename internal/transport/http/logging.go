package http

import (
	"encoding/json"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ininsico/voyago-api/internal/domain"
)

const (
	requestBodyLogKey  = "http.request.body.summary"
	responseBodyLogKey = "http.response.body.summary"
	maxLoggedBody      = 2048
)

func registerLogging(e *echo.Echo) {
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			userID := "anonymous"
			if user, ok := c.Get(contextUserKey).(*domain.User); ok && user != nil {
				userID = user.ID.String()
			}

			payload := struct {
				Time      string `json:"time"`
				UserUUID  string `json:"user_uuid"`
				LatencyMS int64  `json:"latency_ms"`
				Method    string `json:"method"`
				URI       string `json:"uri"`
				Status    int    `json:"status"`
				ReqBody   any    `json:"request_body,omitempty"`
				ResBody   any    `json:"response_body,omitempty"`
				Error     string `json:"error,omitempty"`
			}{
				Time:      v.StartTime.Format(time.RFC3339),
				UserUUID:  userID,
				LatencyMS: v.Latency.Milliseconds(),
				Method:    v.Method,
				URI:       v.URI,
				Status:    v.Status,
				ReqBody:   c.Get(requestBodyLogKey),
				ResBody:   c.Get(responseBodyLogKey),
			}
			if v.Error != nil {
				payload.Error = v.Error.Error()
			}

			buf, err := json.Marshal(payload)
			if err != nil {
				return err
			}
			log.Println(string(buf))
			return nil
		},
	}))

	e.Use(middleware.BodyDump(func(c echo.Context, reqBody, resBody []byte) {
		if summary := sanitizeBody(reqBody); summary != nil {
			c.Set(requestBodyLogKey, summary)
		}
		if summary := sanitizeBody(resBody); summary != nil {
			c.Set(responseBodyLogKey, summary)
		}
	}))
}

// sanitizeBody produces a log-safe summary of a request or response body.
// JSON bodies get credential fields redacted; anything non-JSON is reduced to
// a clamped string or a "binary" marker.
func sanitizeBody(body []byte) any {
	if len(body) == 0 {
		return nil
	}
	if json.Valid(body) {
		var data any
		if err := json.Unmarshal(body, &data); err == nil {
			return redactJSON(data, "")
		}
	}
	if !utf8.Valid(body) {
		return "binary"
	}
	return clampString(string(body))
}

func redactJSON(value any, keyHint string) any {
	switch v := value.(type) {
	case map[string]any:
		result := make(map[string]any, len(v))
		for key, val := range v {
			lowerKey := strings.ToLower(key)
			if sensitiveKey(lowerKey) {
				result[key] = "redacted"
				continue
			}
			result[key] = redactJSON(val, lowerKey)
		}
		return result
	case []any:
		result := make([]any, len(v))
		for i, item := range v {
			result[i] = redactJSON(item, keyHint)
		}
		return result
	case string:
		if sensitiveKey(keyHint) {
			return "redacted"
		}
		return clampString(v)
	default:
		return v
	}
}

func sensitiveKey(key string) bool {
	return strings.Contains(key, "password") || strings.Contains(key, "token")
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

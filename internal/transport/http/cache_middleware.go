package http

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ininsico/voyago-api/internal/cache"
)

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// CacheGET serves successful GET responses from the store, keyed by request
// URI. Only anonymous requests are cached; anything carrying an Authorization
// header passes through.
func CacheGET(store *cache.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet || c.Request().Header.Get("Authorization") != "" {
				return next(c)
			}

			key := c.Request().RequestURI
			if raw, ok := store.Get(key); ok {
				var cached cachedResponse
				if err := json.Unmarshal(raw, &cached); err == nil {
					return c.Blob(cached.Status, cached.ContentType, cached.Body)
				}
				store.Delete(key)
			}

			rec := &responseRecorder{ResponseWriter: c.Response().Writer}
			c.Response().Writer = rec
			if err := next(c); err != nil {
				return err
			}

			if rec.status == http.StatusOK {
				raw, err := json.Marshal(cachedResponse{
					Status:      rec.status,
					ContentType: rec.Header().Get(echo.HeaderContentType),
					Body:        rec.body.Bytes(),
				})
				if err == nil {
					store.Set(key, raw)
				}
			}
			return nil
		}
	}
}

type responseRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

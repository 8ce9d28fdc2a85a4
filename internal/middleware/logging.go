package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/RafiurRahmanSaikat/house-rent-backend/internal/handlers"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/errors"
	"github.com/RafiurRahmanSaikat/house-rent-backend/pkg/logger"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

// RequestLogger logs one line per request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		kv := []interface{}{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"bytes", rec.bytes,
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", ClientIP(r),
		}
		switch {
		case rec.status >= 500:
			logger.Error("HTTP request", kv...)
		case rec.status >= 400:
			logger.Warn("HTTP request", kv...)
		default:
			logger.Info("HTTP request", kv...)
		}
	})
}

// Recoverer turns a handler panic into a 500 response.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("Panic serving request",
					"path", r.URL.Path,
					"panic", fmt.Sprint(rec),
					"stack", string(debug.Stack()),
				)
				handlers.WriteError(w, errors.New(errors.ErrCodeInternalError, "Internal server error."))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

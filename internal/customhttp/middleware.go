package customhttp

import (
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
)

type Middleware func(next httpCommandFunc) httpCommandFunc

func chainMiddleware(m ...Middleware) Middleware {
	return func(final httpCommandFunc) httpCommandFunc {
		last := final
		for i := len(m) - 1; i >= 0; i-- {
			last = m[i](last)
		}

		return func(req *http.Request) (resp *http.Response, err error) {
			return last(req)
		}
	}
}

// ObserverFunc receives the outcome of every outbound call. status is "error" when no
// response was received.
type ObserverFunc func(method string, status string, duration time.Duration)

// ObserveMiddleware reports each call to the observer, typically a metrics recorder.
func ObserveMiddleware(observe ObserverFunc) Middleware {
	return func(next httpCommandFunc) httpCommandFunc {
		return func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next(req)
			status := "error"
			if resp != nil {
				status = strconv.Itoa(resp.StatusCode)
			}
			observe(req.Method, status, time.Since(start))
			return resp, err
		}
	}
}

// LoggingMiddleware writes a debug line per outbound call.
func LoggingMiddleware() Middleware {
	return func(next httpCommandFunc) httpCommandFunc {
		return func(req *http.Request) (*http.Response, error) {
			start := time.Now()
			resp, err := next(req)
			entry := log.WithContext(req.Context()).WithFields(log.Fields{
				"method":   req.Method,
				"url":      req.URL.String(),
				"duration": time.Since(start).String(),
			})
			if err != nil {
				entry.WithError(err).Debug("outbound request failed")
				return resp, err
			}
			entry.WithField("status", resp.StatusCode).Debug("outbound request completed")
			return resp, err
		}
	}
}

package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

type Kind int

const (
	KindTransport Kind = iota + 1
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindServer
	KindOther
	KindDecode
)

const (
	msgUnauthorized = "Please login to continue."
	msgForbidden    = "You do not have permission to perform this action."
	msgNotFound     = "Resource not found."
	msgServer       = "Server error. Please try again later."
	msgDefault      = "An error occurred. Please try again."
)

var (
	ErrTransport    = &Error{Kind: KindTransport}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
	ErrForbidden    = &Error{Kind: KindForbidden}
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrServer       = &Error{Kind: KindServer}
	ErrOther        = &Error{Kind: KindOther}
	ErrDecode       = &Error{Kind: KindDecode}
)

var now = time.Now

// Error is what every failed backend call returns. Only the display message is exposed,
// the cause goes to the log.
type Error struct {
	Kind       Kind
	Operation  string
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches any Error of the same Kind, so errors.Is(err, ErrNotFound) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// HTTPStatus is the status a gateway should answer with when relaying this error.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindServer:
		return http.StatusInternalServerError
	case KindOther:
		if e.StatusCode >= http.StatusBadRequest {
			return e.StatusCode
		}
	}
	return http.StatusBadGateway
}

// HandleError classifies a failed call, logs the diagnostic record and returns the error
// to hand back to the caller. resp is nil when no response was received.
func HandleError(ctx context.Context, operation string, url string, resp *http.Response, cause error) *Error {
	e := &Error{Operation: operation}
	status := 0

	switch {
	case resp == nil:
		e.Kind = KindTransport
		if cause == nil {
			cause = errors.New("no response received")
		}
		e.Message = "Error: " + cause.Error()
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		status = resp.StatusCode
		e.Kind = KindDecode
		e.StatusCode = status
		e.Message = msgDefault
	default:
		status = resp.StatusCode
		e.StatusCode = status
		e.Kind, e.Message = classifyStatus(resp.StatusCode, resp.Status)
		if cause == nil {
			cause = fmt.Errorf("http failure response for %s: %s", url, resp.Status)
		}
	}

	if cause == nil {
		cause = errors.New(e.Message)
	}
	logError(ctx, operation, url, status, cause)
	return e
}

func classifyStatus(code int, status string) (Kind, string) {
	switch code {
	case http.StatusUnauthorized:
		return KindUnauthorized, msgUnauthorized
	case http.StatusForbidden:
		return KindForbidden, msgForbidden
	case http.StatusNotFound:
		return KindNotFound, msgNotFound
	case http.StatusInternalServerError:
		return KindServer, msgServer
	}
	return KindOther, fmt.Sprintf("Server Error: %d - %s", code, statusText(code, status))
}

// statusText prefers the reason phrase without the leading code, "404 Not Found" -> "Not Found".
func statusText(code int, status string) string {
	prefix := fmt.Sprintf("%d ", code)
	if len(status) > len(prefix) && status[:len(prefix)] == prefix {
		return status[len(prefix):]
	}
	if status != "" {
		return status
	}
	return http.StatusText(code)
}

func logError(ctx context.Context, operation string, url string, status int, cause error) {
	log.WithContext(ctx).WithFields(log.Fields{
		"operation": operation,
		"timestamp": now().UTC().Format(time.RFC3339),
		"error":     cause.Error(),
		"url":       url,
		"status":    status,
	}).Errorf("%s failed", operation)
}

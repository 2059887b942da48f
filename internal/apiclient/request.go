package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"

	log "github.com/sirupsen/logrus"

	"github.com/syrilster/employee-directory/internal/model"
)

// Request describes one call against the backend.
type Request struct {
	Operation string
	Method    string
	URL       string
	Query     url.Values
	// JSON is encoded as the request body when set.
	JSON any
	// Body is sent as is with ContentType when JSON is nil.
	Body        io.Reader
	ContentType string
	Accept      string
}

func (c *Config) newHTTPRequest(ctx context.Context, r Request) (*http.Request, error) {
	target := r.URL
	if len(r.Query) > 0 {
		target = target + "?" + r.Query.Encode()
	}

	var body io.Reader
	switch {
	case r.JSON != nil:
		payload, err := json.Marshal(r.JSON)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s request body: %w", r.Operation, err)
		}
		body = bytes.NewBuffer(payload)
	case r.Body != nil:
		body = r.Body
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", r.Operation, err)
	}

	if r.Body != nil && r.JSON == nil {
		// multipart and other raw bodies carry their own content type
		if r.ContentType != "" {
			req.Header.Set("Content-Type", r.ContentType)
		}
	} else {
		for key, vals := range c.Headers {
			for _, v := range vals {
				req.Header.Add(key, v)
			}
		}
	}
	if r.Accept != "" {
		req.Header.Set("Accept", r.Accept)
	}
	return req, nil
}

// Send executes the request and returns the body of a 2xx response. Any other outcome
// goes through HandleError.
func (c *Config) Send(ctx context.Context, r Request) ([]byte, error) {
	contextLogger := log.WithContext(ctx)

	req, err := c.newHTTPRequest(ctx, r)
	if err != nil {
		contextLogger.WithError(err).Error("failed to build HTTP request")
		return nil, err
	}

	resp, err := c.HTTPCommand.Do(req)
	if err != nil {
		return nil, HandleError(ctx, r.Operation, req.URL.String(), nil, err)
	}

	defer func() {
		if err = resp.Body.Close(); err != nil {
			contextLogger.WithError(err).Errorf("Error closing the ioReader. %v", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, HandleError(ctx, r.Operation, req.URL.String(), resp, nil)
	}

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, HandleError(ctx, r.Operation, req.URL.String(), nil, fmt.Errorf("error reading %s resp body: %w", r.Operation, err))
	}
	return body, nil
}

// Envelope sends the request and decodes the whole {data: T} envelope.
func Envelope[T any](ctx context.Context, c *Config, r Request) (*model.ApiResponse[T], error) {
	body, err := c.Send(ctx, r)
	if err != nil {
		return nil, err
	}
	res := &model.ApiResponse[T]{}
	if err := decode(ctx, r, body, res); err != nil {
		return nil, err
	}
	return res, nil
}

// Data sends the request and returns the unwrapped envelope payload.
func Data[T any](ctx context.Context, c *Config, r Request) (T, error) {
	var zero T
	res, err := Envelope[T](ctx, c, r)
	if err != nil {
		return zero, err
	}
	return res.Data, nil
}

// Page sends the request and decodes a paginated envelope.
func Page[T any](ctx context.Context, c *Config, r Request) (*model.PaginatedResponse[T], error) {
	body, err := c.Send(ctx, r)
	if err != nil {
		return nil, err
	}
	res := &model.PaginatedResponse[T]{}
	if err := decode(ctx, r, body, res); err != nil {
		return nil, err
	}
	return res, nil
}

func decode(ctx context.Context, r Request, body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		cause := fmt.Errorf("there was an error un marshalling the %s resp. cause: %w", r.Operation, err)
		return HandleError(ctx, r.Operation, r.URL, &http.Response{StatusCode: http.StatusOK, Status: "200 OK"}, cause)
	}
	return nil
}

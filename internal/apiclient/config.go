// Package apiclient holds what every resource client of the employee backend shares: the
// injected connection settings, query filter flattening, the error policy and the
// request/envelope plumbing.
package apiclient

import (
	"net/http"
	"strings"

	"github.com/syrilster/employee-directory/internal/customhttp"
)

const DefaultBaseURL = "http://localhost:8080/api/public"

// Config is built once and handed to each resource client.
type Config struct {
	BaseURL     string
	Headers     http.Header
	HTTPCommand customhttp.HTTPCommand
}

// NewConfig returns a Config with the JSON headers every typed call sends.
func NewConfig(baseURL string, c customhttp.HTTPCommand) *Config {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if c == nil {
		c = customhttp.New().Build()
	}
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("Accept", "application/json")
	return &Config{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		Headers:     headers,
		HTTPCommand: c,
	}
}

// URL joins the base URL and the given path segments with "/".
func (c *Config) URL(segments ...string) string {
	var b strings.Builder
	b.WriteString(c.BaseURL)
	for _, s := range segments {
		b.WriteString("/")
		b.WriteString(strings.Trim(s, "/"))
	}
	return b.String()
}

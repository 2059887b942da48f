package config

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/syrilster/employee-directory/internal/middlewares"
)

func TestNewEnvironmentConfigDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("EMPLOYEE_API_BASE_URL", "http://backend:8080/api/public")

	cfg := NewEnvironmentConfig()
	require.Equal(t, 8081, cfg.ServerPort)
	require.Equal(t, "v1", cfg.Version)
	require.Equal(t, "http://backend:8080/api/public", cfg.EmployeeAPIBaseURL)
	require.Equal(t, 10, cfg.HTTPTimeoutSeconds)
}

func TestNewApplicationConfigWithoutEmail(t *testing.T) {
	t.Setenv("EMAIL_TO", "")
	t.Setenv("VERSION", "v2")

	cfg, err := NewApplicationConfig()
	require.NoError(t, err)
	require.Nil(t, cfg.EmailClient())
	require.NotNil(t, cfg.EmployeeEndpoint())
	require.Equal(t, "v2", cfg.Version())
}

func TestConfigureLogging(t *testing.T) {
	defer ConfigureLogging("info", "text")

	ConfigureLogging("debug", "json")
	require.Equal(t, log.DebugLevel, log.GetLevel())
	require.IsType(t, &log.JSONFormatter{}, log.StandardLogger().Formatter)

	ConfigureLogging("nonsense", "text")
	require.Equal(t, log.InfoLevel, log.GetLevel())
}

func TestServerRoutes(t *testing.T) {
	s := NewServer(WithMetrics()).WithRoutes("/v1", Route{
		Path:   "/ping",
		Method: http.MethodGet,
		Handler: func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		},
	})
	h := s.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NotEmpty(t, rec.Header().Get(middlewares.HeaderRequestID))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/ping", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "employee_directory_http_requests_total")
}

func TestNewHTTPCommand(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer s.Close()

	req, err := http.NewRequest(http.MethodGet, s.URL, nil)
	require.NoError(t, err)
	resp, err := NewHTTPCommand(time.Second).Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

package config

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/aws/aws-sdk-go/service/ses/sesiface"
	log "github.com/sirupsen/logrus"

	"github.com/syrilster/employee-directory/internal/apiclient"
	"github.com/syrilster/employee-directory/internal/customhttp"
	"github.com/syrilster/employee-directory/internal/employee"
	"github.com/syrilster/employee-directory/internal/metrics"
	"github.com/syrilster/employee-directory/internal/middlewares"
)

var requestIDHookOnce sync.Once

type ApplicationConfig struct {
	envValues      *envConfig
	employeeClient employee.ClientInterface
	emailClient    sesiface.SESAPI
}

// Version returns application version
func (cfg *ApplicationConfig) Version() string {
	return cfg.envValues.Version
}

// ServerPort returns the port no to listen for requests
func (cfg *ApplicationConfig) ServerPort() int {
	return cfg.envValues.ServerPort
}

// EmployeeEndpoint returns the employee backend client
func (cfg *ApplicationConfig) EmployeeEndpoint() employee.ClientInterface {
	return cfg.employeeClient
}

// EmailClient returns the ses client, nil when no report recipients are configured
func (cfg *ApplicationConfig) EmailClient() sesiface.SESAPI {
	return cfg.emailClient
}

// EmailTo returns the to email address
func (cfg *ApplicationConfig) EmailTo() string {
	return cfg.envValues.EmailTo
}

// EmailFrom returns the From email address
func (cfg *ApplicationConfig) EmailFrom() string {
	return cfg.envValues.EmailFrom
}

// NewApplicationConfig loads config values from environment and initialises config
func NewApplicationConfig() (*ApplicationConfig, error) {
	envValues := NewEnvironmentConfig()
	ConfigureLogging(envValues.LogLevel, envValues.LogFormat)

	httpCommand := NewHTTPCommand(time.Duration(envValues.HTTPTimeoutSeconds) * time.Second)
	employeeClient := employee.NewClient(apiclient.NewConfig(envValues.EmployeeAPIBaseURL, httpCommand))

	var emailClient sesiface.SESAPI
	if envValues.EmailTo != "" && envValues.EmailFrom != "" {
		sess, err := session.NewSession(aws.NewConfig().WithRegion(envValues.AWSRegion))
		if err != nil {
			return nil, err
		}
		emailClient = ses.New(sess)
	}

	return &ApplicationConfig{
		envValues:      envValues,
		employeeClient: employeeClient,
		emailClient:    emailClient,
	}, nil
}

// NewHTTPCommand returns the HTTP client used for backend calls
func NewHTTPCommand(timeout time.Duration) customhttp.HTTPCommand {
	httpCommand := customhttp.New(
		customhttp.WithHTTPClient(&http.Client{Timeout: timeout}),
		customhttp.WithMiddleware(
			customhttp.ObserveMiddleware(metrics.ObserveBackendRequest),
			customhttp.LoggingMiddleware(),
		),
	).Build()

	return httpCommand
}

// ConfigureLogging sets the logrus level and formatter; unknown levels fall back to info
func ConfigureLogging(level string, format string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.WithError(err).Warnf("unknown LOG_LEVEL %q, using info", level)
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	requestIDHookOnce.Do(func() {
		log.AddHook(middlewares.RequestIDHook{})
	})
}

package internal

import (
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go/service/ses/sesiface"

	"github.com/syrilster/employee-directory/internal/config"
	"github.com/syrilster/employee-directory/internal/employee"
	"github.com/syrilster/employee-directory/internal/middlewares"
)

// StatusRoute health check route
func StatusRoute() (route config.Route) {
	route = config.Route{
		Path:    "/health",
		Method:  http.MethodGet,
		Handler: middlewares.RuntimeHealthCheck(),
	}
	return route
}

type ServerConfig interface {
	Version() string
	EmployeeEndpoint() employee.ClientInterface
	EmailClient() sesiface.SESAPI
	EmailTo() string
	EmailFrom() string
}

func SetupServer(cfg ServerConfig) *config.Server {
	basePath := fmt.Sprintf("/%v", cfg.Version())

	var reporter Reporter
	if cfg.EmailClient() != nil {
		reporter = NewSESReporter(cfg.EmailClient(), cfg.EmailTo(), cfg.EmailFrom())
	}
	service := NewService(cfg.EmployeeEndpoint(), reporter)

	server := config.NewServer(config.WithMetrics()).
		WithRoutes(
			"", StatusRoute(),
		).
		WithRoutes(
			basePath,
			Routes(service)...,
		)
	return server
}

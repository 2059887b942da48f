package employee

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/syrilster/employee-directory/internal/apiclient"
	"github.com/syrilster/employee-directory/internal/model"
)

const resourcePath = "employees"

const (
	opList          = "getEmployees"
	opListPage      = "getEmployeesPage"
	opGetByID       = "getEmployeeById"
	opCreate        = "createEmployee"
	opUpdate        = "updateEmployee"
	opDelete        = "deleteEmployee"
	opSearch        = "searchEmployees"
	opListByManager = "getEmployeesByManager"
	opNextID        = "generateNextEmployeeId"
	opStats         = "getEmployeeStats"
	opValidate      = "validateEmployee"
	opImport        = "importEmployees"
	opExport        = "exportEmployees"
)

var ErrInvalidID = errors.New("employee id must be a positive number")

type ClientInterface interface {
	List(ctx context.Context, filters apiclient.Filters) ([]model.Employee, error)
	ListPage(ctx context.Context, page int, limit int, filters apiclient.Filters) (*model.PaginatedResponse[model.Employee], error)
	GetByID(ctx context.Context, id int64) (*model.Employee, error)
	Create(ctx context.Context, e model.Employee) (*model.Employee, error)
	Update(ctx context.Context, id int64, e model.Employee) (*model.Employee, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Search(ctx context.Context, query string, filters apiclient.Filters) []model.Employee
	ListByManager(ctx context.Context, managerID int64) []model.Employee
	NextEmployeeID(ctx context.Context) (string, error)
	Stats(ctx context.Context) (json.RawMessage, error)
	Validate(ctx context.Context, e model.Employee) (*model.ValidationResult, error)
	Import(ctx context.Context, filename string, file io.Reader) (*model.ApiResponse[json.RawMessage], error)
	Export(ctx context.Context, filters apiclient.Filters) ([]byte, error)
}

func NewClient(cfg *apiclient.Config) *client {
	return &client{
		Config: cfg,
	}
}

type client struct {
	*apiclient.Config
}

func (c *client) buildEmployeesEndpoint(segments ...string) string {
	return c.URL(append([]string{resourcePath}, segments...)...)
}

func (c *client) buildEmployeeEndpoint(id int64) string {
	return c.buildEmployeesEndpoint(strconv.FormatInt(id, 10))
}

func validateID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidID, id)
	}
	return nil
}

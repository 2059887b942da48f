package internal

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/syrilster/employee-directory/internal/apiclient"
	"github.com/syrilster/employee-directory/internal/config"
	"github.com/syrilster/employee-directory/internal/employee"
	"github.com/syrilster/employee-directory/internal/model"
)

type EmployeeAPIHandler interface {
	employee.ClientInterface
	BulkDelete(ctx context.Context, ids []int64) (*BulkDeleteResult, error)
	ExportWorkbook(ctx context.Context, filters apiclient.Filters) ([]byte, error)
	ImportFile(ctx context.Context, filename string, data []byte) (*model.ApiResponse[json.RawMessage], error)
}

// Routes are registered in order; fixed paths come before /employees/{id}.
func Routes(h EmployeeAPIHandler) []config.Route {
	return []config.Route{
		{Path: "/departments", Method: http.MethodGet, Handler: DepartmentsHandler()},
		{Path: "/employees", Method: http.MethodGet, Handler: ListHandler(h)},
		{Path: "/employees", Method: http.MethodPost, Handler: CreateHandler(h)},
		{Path: "/employees/search", Method: http.MethodGet, Handler: SearchHandler(h)},
		{Path: "/employees/next-id", Method: http.MethodGet, Handler: NextIDHandler(h)},
		{Path: "/employees/stats", Method: http.MethodGet, Handler: StatsHandler(h)},
		{Path: "/employees/validate", Method: http.MethodPost, Handler: ValidateHandler(h)},
		{Path: "/employees/import", Method: http.MethodPost, Handler: ImportHandler(h)},
		{Path: "/employees/export", Method: http.MethodGet, Handler: ExportHandler(h)},
		{Path: "/employees/bulk-delete", Method: http.MethodPost, Handler: BulkDeleteHandler(h)},
		{Path: "/employees/manager/{id:[0-9]+}", Method: http.MethodGet, Handler: ManagerHandler(h)},
		{Path: "/employees/{id}", Method: http.MethodGet, Handler: GetHandler(h)},
		{Path: "/employees/{id}", Method: http.MethodPut, Handler: UpdateHandler(h)},
		{Path: "/employees/{id}", Method: http.MethodDelete, Handler: DeleteHandler(h)},
	}
}

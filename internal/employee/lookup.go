package employee

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/syrilster/employee-directory/internal/apiclient"
	"github.com/syrilster/employee-directory/internal/model"
)

// Search never fails: any error is logged by the error policy and an empty slice returned.
func (c *client) Search(ctx context.Context, query string, filters apiclient.Filters) []model.Employee {
	params := filters.Values()
	params.Set("q", query)

	res, err := apiclient.Data[[]model.Employee](ctx, c.Config, apiclient.Request{
		Operation: opSearch,
		Method:    http.MethodGet,
		URL:       c.buildEmployeesEndpoint("search"),
		Query:     params,
	})
	if err != nil || res == nil {
		return []model.Employee{}
	}
	return res
}

// ListByManager degrades to an empty slice like Search.
func (c *client) ListByManager(ctx context.Context, managerID int64) []model.Employee {
	res, err := apiclient.Data[[]model.Employee](ctx, c.Config, apiclient.Request{
		Operation: opListByManager,
		Method:    http.MethodGet,
		URL:       c.buildEmployeesEndpoint("manager", strconv.FormatInt(managerID, 10)),
	})
	if err != nil || res == nil {
		return []model.Employee{}
	}
	return res
}

func (c *client) NextEmployeeID(ctx context.Context) (string, error) {
	return apiclient.Data[string](ctx, c.Config, apiclient.Request{
		Operation: opNextID,
		Method:    http.MethodGet,
		URL:       c.buildEmployeesEndpoint("next-id"),
	})
}

// Stats returns the backend's statistics payload undecoded; its shape is not fixed.
func (c *client) Stats(ctx context.Context) (json.RawMessage, error) {
	return apiclient.Data[json.RawMessage](ctx, c.Config, apiclient.Request{
		Operation: opStats,
		Method:    http.MethodGet,
		URL:       c.buildEmployeesEndpoint("stats"),
	})
}

func (c *client) Validate(ctx context.Context, e model.Employee) (*model.ValidationResult, error) {
	return apiclient.Data[*model.ValidationResult](ctx, c.Config, apiclient.Request{
		Operation: opValidate,
		Method:    http.MethodPost,
		URL:       c.buildEmployeesEndpoint("validate"),
		JSON:      e,
	})
}

package employee

import (
	"context"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/syrilster/employee-directory/internal/apiclient"
	"github.com/syrilster/employee-directory/internal/model"
)

// List returns the envelope payload of GET /employees as is.
func (c *client) List(ctx context.Context, filters apiclient.Filters) ([]model.Employee, error) {
	return apiclient.Data[[]model.Employee](ctx, c.Config, apiclient.Request{
		Operation: opList,
		Method:    http.MethodGet,
		URL:       c.buildEmployeesEndpoint(),
		Query:     filters.Values(),
	})
}

func (c *client) ListPage(ctx context.Context, page int, limit int, filters apiclient.Filters) (*model.PaginatedResponse[model.Employee], error) {
	query := filters.Values()
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	return apiclient.Page[model.Employee](ctx, c.Config, apiclient.Request{
		Operation: opListPage,
		Method:    http.MethodGet,
		URL:       c.buildEmployeesEndpoint(),
		Query:     query,
	})
}

func (c *client) GetByID(ctx context.Context, id int64) (*model.Employee, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return apiclient.Data[*model.Employee](ctx, c.Config, apiclient.Request{
		Operation: opGetByID,
		Method:    http.MethodGet,
		URL:       c.buildEmployeeEndpoint(id),
	})
}

// Create posts the employee without an id and returns the stored record.
func (c *client) Create(ctx context.Context, e model.Employee) (*model.Employee, error) {
	e.ID = 0
	created, err := apiclient.Data[*model.Employee](ctx, c.Config, apiclient.Request{
		Operation: opCreate,
		Method:    http.MethodPost,
		URL:       c.buildEmployeesEndpoint(),
		JSON:      e,
	})
	if err != nil {
		return nil, err
	}
	if created != nil {
		log.WithContext(ctx).Infof("Created employee: %d", created.ID)
	}
	return created, nil
}

// Update replaces the employee with the given id. Whether id exists is the caller's concern.
func (c *client) Update(ctx context.Context, id int64, e model.Employee) (*model.Employee, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	updated, err := apiclient.Data[*model.Employee](ctx, c.Config, apiclient.Request{
		Operation: opUpdate,
		Method:    http.MethodPut,
		URL:       c.buildEmployeeEndpoint(id),
		JSON:      e,
	})
	if err != nil {
		return nil, err
	}
	log.WithContext(ctx).Infof("Updated employee: %d", id)
	return updated, nil
}

func (c *client) Delete(ctx context.Context, id int64) (bool, error) {
	if err := validateID(id); err != nil {
		return false, err
	}
	deleted, err := apiclient.Data[bool](ctx, c.Config, apiclient.Request{
		Operation: opDelete,
		Method:    http.MethodDelete,
		URL:       c.buildEmployeeEndpoint(id),
	})
	if err != nil {
		return false, err
	}
	log.WithContext(ctx).Infof("Deleted employee: %d", id)
	return deleted, nil
}

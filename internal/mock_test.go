package internal

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/syrilster/employee-directory/internal/apiclient"
	"github.com/syrilster/employee-directory/internal/model"
)

type MockEmployeeClient struct {
	mock.Mock
}

func (m *MockEmployeeClient) List(ctx context.Context, filters apiclient.Filters) ([]model.Employee, error) {
	args := m.Called(ctx, filters)
	res, _ := args.Get(0).([]model.Employee)
	return res, args.Error(1)
}

func (m *MockEmployeeClient) ListPage(ctx context.Context, page int, limit int, filters apiclient.Filters) (*model.PaginatedResponse[model.Employee], error) {
	args := m.Called(ctx, page, limit, filters)
	res, _ := args.Get(0).(*model.PaginatedResponse[model.Employee])
	return res, args.Error(1)
}

func (m *MockEmployeeClient) GetByID(ctx context.Context, id int64) (*model.Employee, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*model.Employee)
	return res, args.Error(1)
}

func (m *MockEmployeeClient) Create(ctx context.Context, e model.Employee) (*model.Employee, error) {
	args := m.Called(ctx, e)
	res, _ := args.Get(0).(*model.Employee)
	return res, args.Error(1)
}

func (m *MockEmployeeClient) Update(ctx context.Context, id int64, e model.Employee) (*model.Employee, error) {
	args := m.Called(ctx, id, e)
	res, _ := args.Get(0).(*model.Employee)
	return res, args.Error(1)
}

func (m *MockEmployeeClient) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeClient) Search(ctx context.Context, query string, filters apiclient.Filters) []model.Employee {
	args := m.Called(ctx, query, filters)
	return args.Get(0).([]model.Employee)
}

func (m *MockEmployeeClient) ListByManager(ctx context.Context, managerID int64) []model.Employee {
	args := m.Called(ctx, managerID)
	return args.Get(0).([]model.Employee)
}

func (m *MockEmployeeClient) NextEmployeeID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockEmployeeClient) Stats(ctx context.Context) (json.RawMessage, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).(json.RawMessage)
	return res, args.Error(1)
}

func (m *MockEmployeeClient) Validate(ctx context.Context, e model.Employee) (*model.ValidationResult, error) {
	args := m.Called(ctx, e)
	res, _ := args.Get(0).(*model.ValidationResult)
	return res, args.Error(1)
}

func (m *MockEmployeeClient) Import(ctx context.Context, filename string, file io.Reader) (*model.ApiResponse[json.RawMessage], error) {
	args := m.Called(ctx, filename, file)
	res, _ := args.Get(0).(*model.ApiResponse[json.RawMessage])
	return res, args.Error(1)
}

func (m *MockEmployeeClient) Export(ctx context.Context, filters apiclient.Filters) ([]byte, error) {
	args := m.Called(ctx, filters)
	res, _ := args.Get(0).([]byte)
	return res, args.Error(1)
}

// recordingReporter hands every report to a channel so tests can wait for the async send.
type recordingReporter struct {
	mu      sync.Mutex
	reports chan Report
	err     error
}

func newRecordingReporter() *recordingReporter {
	return &recordingReporter{reports: make(chan Report, 4)}
}

func (r *recordingReporter) SendReport(ctx context.Context, report Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports <- report
	return r.err
}

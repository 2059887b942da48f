package internal

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/syrilster/employee-directory/internal/apiclient"
	"github.com/syrilster/employee-directory/internal/config"
	"github.com/syrilster/employee-directory/internal/model"
)

func newTestRouter(mockClient *MockEmployeeClient) http.Handler {
	return config.NewServer().
		WithRoutes("", StatusRoute()).
		WithRoutes("/v1", Routes(NewService(mockClient, nil))...).
		Handler()
}

func serve(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthRoute(t *testing.T) {
	rec := serve(t, newTestRouter(new(MockEmployeeClient)), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListHandler(t *testing.T) {
	t.Run("wraps employees in the data envelope", func(t *testing.T) {
		mockClient := new(MockEmployeeClient)
		mockClient.On("List", mock.Anything, apiclient.Filters{"department": "HR"}).
			Return([]model.Employee{{ID: 1, EmployeeID: "EMP001", FullName: "Asha Rao"}}, nil)

		rec := serve(t, newTestRouter(mockClient), httptest.NewRequest(http.MethodGet, "/v1/employees?department=HR", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var body model.ApiResponse[[]model.Employee]
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Data, 1)
		assert.Equal(t, "Asha Rao", body.Data[0].FullName)
	})

	t.Run("page and limit use the paginated endpoint", func(t *testing.T) {
		mockClient := new(MockEmployeeClient)
		mockClient.On("ListPage", mock.Anything, 2, 10, apiclient.Filters{}).
			Return(&model.PaginatedResponse[model.Employee]{Data: []model.Employee{{ID: 11}}, Page: 2, Limit: 10, Total: 11}, nil)

		rec := serve(t, newTestRouter(mockClient), httptest.NewRequest(http.MethodGet, "/v1/employees?page=2&limit=10", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var body model.PaginatedResponse[model.Employee]
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 11, body.Total)
		assert.Equal(t, int64(11), body.Data[0].ID)
		mockClient.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "not found",
			err:     &apiclient.Error{Kind: apiclient.KindNotFound, StatusCode: 404, Message: "Resource not found."},
			status:  http.StatusNotFound,
			message: "Resource not found.",
		},
		{
			name:    "unauthorized",
			err:     &apiclient.Error{Kind: apiclient.KindUnauthorized, StatusCode: 401, Message: "Please login to continue."},
			status:  http.StatusUnauthorized,
			message: "Please login to continue.",
		},
		{
			name:    "other status is relayed",
			err:     &apiclient.Error{Kind: apiclient.KindOther, StatusCode: 409, Message: "Server Error: 409 - Conflict"},
			status:  http.StatusConflict,
			message: "Server Error: 409 - Conflict",
		},
		{
			name:    "transport",
			err:     &apiclient.Error{Kind: apiclient.KindTransport, Message: "Error: connection refused"},
			status:  http.StatusBadGateway,
			message: "Error: connection refused",
		},
		{
			name:    "unexpected",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			message: "boom",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockClient := new(MockEmployeeClient)
			mockClient.On("GetByID", mock.Anything, int64(5)).Return(nil, tc.err)

			rec := serve(t, newTestRouter(mockClient), httptest.NewRequest(http.MethodGet, "/v1/employees/5", nil))
			assert.Equal(t, tc.status, rec.Code)
			assert.JSONEq(t, `{"error":"`+tc.message+`"}`, rec.Body.String())
		})
	}
}

func TestGetHandlerInvalidID(t *testing.T) {
	mockClient := new(MockEmployeeClient)
	rec := serve(t, newTestRouter(mockClient), httptest.NewRequest(http.MethodGet, "/v1/employees/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockClient.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestCreateHandler(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		mockClient := new(MockEmployeeClient)
		mockClient.On("Create", mock.Anything, mock.MatchedBy(func(e model.Employee) bool {
			return e.FullName == "New Hire" && e.Department == "HR"
		})).Return(&model.Employee{ID: 7, FullName: "New Hire", Department: "HR"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/employees", strings.NewReader(`{"fullName":"New Hire","department":"HR"}`))
		rec := serve(t, newTestRouter(mockClient), req)
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":7`)
	})

	t.Run("bad payload", func(t *testing.T) {
		mockClient := new(MockEmployeeClient)
		req := httptest.NewRequest(http.MethodPost, "/v1/employees", strings.NewReader(`{"fullName":`))
		rec := serve(t, newTestRouter(mockClient), req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockClient.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUpdateAndDeleteHandlers(t *testing.T) {
	mockClient := new(MockEmployeeClient)
	mockClient.On("Update", mock.Anything, int64(3), mock.AnythingOfType("model.Employee")).
		Return(&model.Employee{ID: 3, FullName: "Renamed"}, nil)
	mockClient.On("Delete", mock.Anything, int64(3)).Return(true, nil)
	router := newTestRouter(mockClient)

	rec := serve(t, router, httptest.NewRequest(http.MethodPut, "/v1/employees/3", strings.NewReader(`{"fullName":"Renamed"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"fullName":"Renamed"`)

	rec = serve(t, router, httptest.NewRequest(http.MethodDelete, "/v1/employees/3", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":true}`, rec.Body.String())
}

func TestSearchHandlerAlwaysSucceeds(t *testing.T) {
	mockClient := new(MockEmployeeClient)
	mockClient.On("Search", mock.Anything, "asha", apiclient.Filters{}).Return([]model.Employee{})

	rec := serve(t, newTestRouter(mockClient), httptest.NewRequest(http.MethodGet, "/v1/employees/search?q=asha", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestManagerHandler(t *testing.T) {
	mockClient := new(MockEmployeeClient)
	mockClient.On("ListByManager", mock.Anything, int64(4)).Return([]model.Employee{{ID: 8}})

	rec := serve(t, newTestRouter(mockClient), httptest.NewRequest(http.MethodGet, "/v1/employees/manager/4", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":8`)
}

func TestLookupHandlers(t *testing.T) {
	mockClient := new(MockEmployeeClient)
	mockClient.On("NextEmployeeID", mock.Anything).Return("EMP042", nil)
	mockClient.On("Stats", mock.Anything).Return(json.RawMessage(`{"total":3}`), nil)
	mockClient.On("Validate", mock.Anything, mock.AnythingOfType("model.Employee")).
		Return(&model.ValidationResult{Valid: false, Errors: []string{"fullName is required"}}, nil)
	router := newTestRouter(mockClient)

	rec := serve(t, router, httptest.NewRequest(http.MethodGet, "/v1/employees/next-id", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":"EMP042"}`, rec.Body.String())

	rec = serve(t, router, httptest.NewRequest(http.MethodGet, "/v1/employees/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"total":3}}`, rec.Body.String())

	rec = serve(t, router, httptest.NewRequest(http.MethodPost, "/v1/employees/validate", strings.NewReader(`{}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"valid":false,"errors":["fullName is required"]}}`, rec.Body.String())

	rec = serve(t, router, httptest.NewRequest(http.MethodGet, "/v1/departments", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[`)
}

func TestExportHandler(t *testing.T) {
	csvData := []byte("employeeId,fullName\nEMP001,Asha Rao\n")

	t.Run("csv", func(t *testing.T) {
		mockClient := new(MockEmployeeClient)
		mockClient.On("Export", mock.Anything, apiclient.Filters{}).Return(csvData, nil)

		rec := serve(t, newTestRouter(mockClient), httptest.NewRequest(http.MethodGet, "/v1/employees/export", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, contentTypeCSV, rec.Header().Get("Content-Type"))
		assert.Equal(t, csvData, rec.Body.Bytes())
	})

	t.Run("xlsx", func(t *testing.T) {
		mockClient := new(MockEmployeeClient)
		mockClient.On("Export", mock.Anything, apiclient.Filters{}).Return(csvData, nil)

		rec := serve(t, newTestRouter(mockClient), httptest.NewRequest(http.MethodGet, "/v1/employees/export?format=xlsx", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, contentTypeXLSX, rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "employees.xlsx")
		assert.NoError(t, checkImportFile("employees.xlsx", rec.Body.Bytes()))
	})
}

func newUpload(t *testing.T, filename string, data []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/employees/import", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestImportHandler(t *testing.T) {
	t.Run("relays the backend envelope", func(t *testing.T) {
		mockClient := new(MockEmployeeClient)
		mockClient.On("Import", mock.Anything, "employees.csv", mock.Anything).
			Return(&model.ApiResponse[json.RawMessage]{Data: json.RawMessage(`{"imported":1,"failed":0}`)}, nil)

		rec := serve(t, newTestRouter(mockClient), newUpload(t, "employees.csv", []byte("employeeId\nEMP001\n")))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"data":{"imported":1,"failed":0}}`, rec.Body.String())
	})

	t.Run("unsupported extension", func(t *testing.T) {
		mockClient := new(MockEmployeeClient)
		rec := serve(t, newTestRouter(mockClient), newUpload(t, "employees.json", []byte("[]")))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockClient.AssertNotCalled(t, "Import", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not multipart", func(t *testing.T) {
		mockClient := new(MockEmployeeClient)
		req := httptest.NewRequest(http.MethodPost, "/v1/employees/import", strings.NewReader("x"))
		rec := serve(t, newTestRouter(mockClient), req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestBulkDeleteHandler(t *testing.T) {
	t.Run("deletes and refreshes", func(t *testing.T) {
		mockClient := new(MockEmployeeClient)
		mockClient.On("Delete", mock.Anything, int64(1)).Return(true, nil)
		mockClient.On("Delete", mock.Anything, int64(2)).Return(true, nil)
		mockClient.On("List", mock.Anything, apiclient.Filters(nil)).Return([]model.Employee{{ID: 3}}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/employees/bulk-delete", strings.NewReader(`{"ids":[1,2]}`))
		rec := serve(t, newTestRouter(mockClient), req)
		require.Equal(t, http.StatusOK, rec.Code)

		var body model.ApiResponse[BulkDeleteResult]
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, []DeleteResult{{ID: 1, Deleted: true}, {ID: 2, Deleted: true}}, body.Data.Results)
		assert.Equal(t, []model.Employee{{ID: 3}}, body.Data.Employees)
	})

	t.Run("empty selection", func(t *testing.T) {
		rec := serve(t, newTestRouter(new(MockEmployeeClient)),
			httptest.NewRequest(http.MethodPost, "/v1/employees/bulk-delete", strings.NewReader(`{"ids":[]}`)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"no employees selected"}`, rec.Body.String())
	})
}

func TestRequestIDIsEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/departments", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := serve(t, newTestRouter(new(MockEmployeeClient)), req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

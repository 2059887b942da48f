package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/syrilster/employee-directory/internal/apiclient"
	"github.com/syrilster/employee-directory/internal/employee"
	"github.com/syrilster/employee-directory/internal/model"
	"github.com/syrilster/employee-directory/internal/util"
)

const (
	maxUploadSize   = 32 << 20
	contentTypeCSV  = "text/csv"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type errorBody struct {
	Error string `json:"error"`
}

type bulkDeleteRequest struct {
	IDs []int64 `json:"ids"`
}

func writeData(data interface{}, status int, res http.ResponseWriter) {
	util.WithBodyAndStatus(model.ApiResponse[interface{}]{Data: data}, status, res)
}

// writeError answers with the mapped message only; the cause was logged where it happened.
func writeError(ctx context.Context, err error, res http.ResponseWriter) {
	status := http.StatusInternalServerError
	var apiErr *apiclient.Error
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatus()
	case errors.Is(err, employee.ErrInvalidID),
		errors.Is(err, ErrUnsupportedImportFile),
		errors.Is(err, ErrInvalidImportFile),
		errors.Is(err, ErrNoEmployeesSelected):
		status = http.StatusBadRequest
	default:
		log.WithContext(ctx).WithError(err).Error("Unexpected error handling request")
	}
	util.WithBodyAndStatus(errorBody{Error: err.Error()}, status, res)
}

func pathID(req *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(req)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, employee.ErrInvalidID
	}
	return id, nil
}

func decodeEmployee(req *http.Request) (model.Employee, error) {
	var e model.Employee
	if err := json.NewDecoder(req.Body).Decode(&e); err != nil {
		return e, err
	}
	return e, nil
}

func DepartmentsHandler() func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		writeData(model.Departments(), http.StatusOK, res)
	}
}

// ListHandler lists employees; page and limit together switch to the paginated endpoint
func ListHandler(h EmployeeAPIHandler) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		query := req.URL.Query()
		filters := apiclient.FiltersFromQuery(query, "page", "limit")

		page, pageErr := strconv.Atoi(query.Get("page"))
		limit, limitErr := strconv.Atoi(query.Get("limit"))
		if pageErr == nil && limitErr == nil && page > 0 && limit > 0 {
			resp, err := h.ListPage(ctx, page, limit, filters)
			if err != nil {
				writeError(ctx, err, res)
				return
			}
			util.WithBodyAndStatus(resp, http.StatusOK, res)
			return
		}

		employees, err := h.List(ctx, filters)
		if err != nil {
			writeError(ctx, err, res)
			return
		}
		writeData(employees, http.StatusOK, res)
	}
}

func GetHandler(h EmployeeAPIHandler) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		id, err := pathID(req)
		if err != nil {
			writeError(ctx, err, res)
			return
		}
		e, err := h.GetByID(ctx, id)
		if err != nil {
			writeError(ctx, err, res)
			return
		}
		writeData(e, http.StatusOK, res)
	}
}

func CreateHandler(h EmployeeAPIHandler) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		e, err := decodeEmployee(req)
		if err != nil {
			log.WithContext(ctx).WithError(err).Error("Failed to parse request body")
			util.WithBodyAndStatus(errorBody{Error: "invalid employee payload"}, http.StatusBadRequest, res)
			return
		}
		created, err := h.Create(ctx, e)
		if err != nil {
			writeError(ctx, err, res)
			return
		}
		writeData(created, http.StatusCreated, res)
	}
}

func UpdateHandler(h EmployeeAPIHandler) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		id, err := pathID(req)
		if err != nil {
			writeError(ctx, err, res)
			return
		}
		e, err := decodeEmployee(req)
		if err != nil {
			log.WithContext(ctx).WithError(err).Error("Failed to parse request body")
			util.WithBodyAndStatus(errorBody{Error: "invalid employee payload"}, http.StatusBadRequest, res)
			return
		}
		updated, err := h.Update(ctx, id, e)
		if err != nil {
			writeError(ctx, err, res)
			return
		}
		writeData(updated, http.StatusOK, res)
	}
}

func DeleteHandler(h EmployeeAPIHandler) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		id, err := pathID(req)
		if err != nil {
			writeError(ctx, err, res)
			return
		}
		deleted, err := h.Delete(ctx, id)
		if err != nil {
			writeError(ctx, err, res)
			return
		}
		writeData(deleted, http.StatusOK, res)
	}
}

// SearchHandler always answers 200; a failed search is an empty result
func SearchHandler(h EmployeeAPIHandler) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		query := req.URL.Query()
		employees := h.Search(req.Context(), query.Get("q"), apiclient.FiltersFromQuery(query, "q"))
		writeData(employees, http.StatusOK, res)
	}
}

func ManagerHandler(h EmployeeAPIHandler) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		id, err := pathID(req)
		if err != nil {
			writeError(ctx, err, res)
			return
		}
		writeData(h.ListByManager(ctx, id), http.StatusOK, res)
	}
}

func NextIDHandler(h EmployeeAPIHandler) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		id, err := h.NextEmployeeID(ctx)
		if err != nil {
			writeError(ctx, err, res)
			return
		}
		writeData(id, http.StatusOK, res)
	}
}

func StatsHandler(h EmployeeAPIHandler) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		stats, err := h.Stats(ctx)
		if err != nil {
			writeError(ctx, err, res)
			return
		}
		writeData(stats, http.StatusOK, res)
	}
}

func ValidateHandler(h EmployeeAPIHandler) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		e, err := decodeEmployee(req)
		if err != nil {
			log.WithContext(ctx).WithError(err).Error("Failed to parse request body")
			util.WithBodyAndStatus(errorBody{Error: "invalid employee payload"}, http.StatusBadRequest, res)
			return
		}
		result, err := h.Validate(ctx, e)
		if err != nil {
			writeError(ctx, err, res)
			return
		}
		writeData(result, http.StatusOK, res)
	}
}

// ImportHandler forwards the uploaded file and relays the backend envelope untouched
func ImportHandler(h EmployeeAPIHandler) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		contextLogger := log.WithContext(ctx)

		if err := req.ParseMultipartForm(maxUploadSize); err != nil {
			contextLogger.WithError(err).Error("Failed to parse request body")
			util.WithBodyAndStatus(errorBody{Error: "expected a multipart upload"}, http.StatusBadRequest, res)
			return
		}

		file, fileHeader, err := req.FormFile("file")
		if err != nil {
			contextLogger.WithError(err).Error("Failed to get the file from request")
			util.WithBodyAndStatus(errorBody{Error: "missing file"}, http.StatusBadRequest, res)
			return
		}
		defer file.Close()

		buf := bytes.NewBuffer(nil)
		if _, err := io.Copy(buf, file); err != nil {
			contextLogger.WithError(err).Error("Failed to copy file contents to buffer")
			util.WithBodyAndStatus(nil, http.StatusInternalServerError, res)
			return
		}

		result, err := h.ImportFile(ctx, fileHeader.Filename, buf.Bytes())
		if err != nil {
			writeError(ctx, err, res)
			return
		}
		util.WithBodyAndStatus(result, http.StatusOK, res)
	}
}

// ExportHandler returns the export as csv, or as xlsx when format=xlsx
func ExportHandler(h EmployeeAPIHandler) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		query := req.URL.Query()
		filters := apiclient.FiltersFromQuery(query, "format")

		if query.Get("format") == "xlsx" {
			data, err := h.ExportWorkbook(ctx, filters)
			if err != nil {
				writeError(ctx, err, res)
				return
			}
			util.WithAttachment(data, contentTypeXLSX, "employees.xlsx", res)
			return
		}

		data, err := h.Export(ctx, filters)
		if err != nil {
			writeError(ctx, err, res)
			return
		}
		util.WithAttachment(data, contentTypeCSV, "employees.csv", res)
	}
}

func BulkDeleteHandler(h EmployeeAPIHandler) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		var body bulkDeleteRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			log.WithContext(ctx).WithError(err).Error("Failed to parse request body")
			util.WithBodyAndStatus(errorBody{Error: "invalid bulk delete payload"}, http.StatusBadRequest, res)
			return
		}

		result, err := h.BulkDelete(ctx, body.IDs)
		if err != nil {
			writeError(ctx, err, res)
			return
		}
		writeData(result, http.StatusOK, res)
	}
}

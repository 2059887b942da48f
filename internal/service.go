package internal

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/tealeg/xlsx"
	"github.com/xuri/excelize/v2"

	"github.com/syrilster/employee-directory/internal/apiclient"
	appcontext "github.com/syrilster/employee-directory/internal/context"
	"github.com/syrilster/employee-directory/internal/employee"
	"github.com/syrilster/employee-directory/internal/metrics"
	"github.com/syrilster/employee-directory/internal/model"
)

const (
	csvFileFormat  = ".csv"
	xlsxFileFormat = ".xlsx"
	exportSheet    = "Sheet1"
)

var (
	ErrUnsupportedImportFile = errors.New("only .csv and .xlsx files can be imported")
	ErrInvalidImportFile     = errors.New("unable to open the uploaded file")
	ErrNoEmployeesSelected   = errors.New("no employees selected")
)

// Service is the employee client plus the operations the console builds on top of it.
type Service struct {
	employee.ClientInterface
	reporter Reporter
}

type DeleteResult struct {
	ID      int64  `json:"id"`
	Deleted bool   `json:"deleted"`
	Error   string `json:"error,omitempty"`
}

type BulkDeleteResult struct {
	Results      []DeleteResult   `json:"results"`
	Employees    []model.Employee `json:"employees"`
	RefreshError string           `json:"refreshError,omitempty"`
}

// NewService wires the client; reporter may be nil when no report mail is configured.
func NewService(c employee.ClientInterface, reporter Reporter) *Service {
	return &Service{
		ClientInterface: c,
		reporter:        reporter,
	}
}

// BulkDelete deletes every id concurrently and waits for all of them before reloading the
// list, so the returned employees never include a record whose delete was still in flight.
func (service Service) BulkDelete(ctx context.Context, ids []int64) (*BulkDeleteResult, error) {
	if len(ids) == 0 {
		return nil, ErrNoEmployeesSelected
	}
	ctxLogger := log.WithContext(ctx)
	ctxLogger.Infof("Deleting %d employees", len(ids))

	var wg sync.WaitGroup
	results := make([]DeleteResult, len(ids))
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			results[i] = service.deleteOne(ctx, id)
		}(i, id)
	}
	wg.Wait()

	res := &BulkDeleteResult{Results: results}
	employees, err := service.List(ctx, nil)
	if err != nil {
		ctxLogger.WithError(err).Error("Failed to refresh employees after bulk delete")
		res.RefreshError = err.Error()
		res.Employees = []model.Employee{}
	} else {
		res.Employees = employees
	}

	service.sendStatusReport(ctx, bulkDeleteReport(results))
	return res, nil
}

func (service Service) deleteOne(ctx context.Context, id int64) DeleteResult {
	deleted, err := service.Delete(ctx, id)
	if err != nil {
		metrics.ObserveBulkDelete("error")
		return DeleteResult{ID: id, Error: err.Error()}
	}
	if !deleted {
		metrics.ObserveBulkDelete("not_deleted")
		return DeleteResult{ID: id}
	}
	metrics.ObserveBulkDelete("deleted")
	return DeleteResult{ID: id, Deleted: true}
}

// ExportWorkbook fetches the CSV export and converts it to an xlsx workbook.
func (service Service) ExportWorkbook(ctx context.Context, filters apiclient.Filters) ([]byte, error) {
	ctxLogger := log.WithContext(ctx)
	data, err := service.Export(ctx, filters)
	if err != nil {
		return nil, err
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		ctxLogger.WithError(err).Error("Failed to parse the exported CSV")
		return nil, fmt.Errorf("failed to parse employee export: %w", err)
	}

	f, err := newWorkbook(rows)
	if err != nil {
		ctxLogger.WithError(err).Error("Failed to build the export workbook")
		return nil, err
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write export workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ImportFile checks the upload before forwarding it. xlsx files must open, csv files must
// not be empty; anything else is refused without calling the backend.
func (service Service) ImportFile(ctx context.Context, filename string, data []byte) (*model.ApiResponse[json.RawMessage], error) {
	ctxLogger := log.WithContext(ctx)
	if err := checkImportFile(filename, data); err != nil {
		ctxLogger.WithError(err).Errorf("Rejected import file %s", filename)
		return nil, err
	}

	res, err := service.Import(ctx, filename, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	service.sendStatusReport(ctx, importReport(filename, res.Data))
	return res, nil
}

func checkImportFile(filename string, data []byte) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case xlsxFileFormat:
		if _, err := xlsx.OpenBinary(data); err != nil {
			return fmt.Errorf("%w: %s is not a valid xlsx file", ErrInvalidImportFile, filename)
		}
	case csvFileFormat:
		if len(bytes.TrimSpace(data)) == 0 {
			return fmt.Errorf("%w: %s is empty", ErrInvalidImportFile, filename)
		}
	default:
		return fmt.Errorf("%w: got %q", ErrUnsupportedImportFile, filepath.Ext(filename))
	}
	return nil
}

func newWorkbook(rows [][]string) (*excelize.File, error) {
	f := excelize.NewFile()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, err
		}
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		lastCol, err := excelize.ColumnNumberToName(len(rows[0]))
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(exportSheet, "A", lastCol, 20); err != nil {
			return nil, err
		}
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(exportSheet, "A1", lastCol+"1", bold); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (service Service) sendStatusReport(ctx context.Context, report Report) {
	if service.reporter == nil {
		return
	}
	detached := appcontext.Detach(ctx)
	go func() {
		if err := service.reporter.SendReport(detached, report); err != nil {
			log.WithContext(detached).WithError(err).Errorf("Failed to send report %q", report.Subject)
		}
	}()
}

func bulkDeleteReport(results []DeleteResult) Report {
	var deleted, failed int
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		status := "Deleted"
		switch {
		case r.Error != "":
			status = "Failed"
			failed++
		case !r.Deleted:
			status = "Not deleted"
			failed++
		default:
			deleted++
		}
		rows = append(rows, []string{strconv.FormatInt(r.ID, 10), status, r.Error})
	}

	summary := fmt.Sprintf("%d of %d employees deleted.", deleted, len(results))
	if failed == 0 {
		summary += " No errors found during processing. Please check attached report for audit trail."
	}
	return Report{
		Subject: "Report: Bulk employee delete",
		Summary: summary,
		Header:  []string{"Employee", "Result", "Error"},
		Rows:    rows,
	}
}

func importReport(filename string, data json.RawMessage) Report {
	return Report{
		Subject: "Report: Employee import",
		Summary: fmt.Sprintf("Import of %s completed. Backend response:\n%s", filename, string(data)),
	}
}

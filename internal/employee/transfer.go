package employee

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/syrilster/employee-directory/internal/apiclient"
	"github.com/syrilster/employee-directory/internal/model"
)

const importFormField = "file"

// Import uploads the file as multipart form field "file". The data in the returned
// envelope is whatever the backend reports per row; it is left undecoded.
func (c *client) Import(ctx context.Context, filename string, file io.Reader) (*model.ApiResponse[json.RawMessage], error) {
	contextLogger := log.WithContext(ctx)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(importFormField, filename)
	if err != nil {
		contextLogger.WithError(err).Error("Failed to create multipart form file")
		return nil, fmt.Errorf("failed to build %s request: %w", opImport, err)
	}
	if _, err := io.Copy(part, file); err != nil {
		contextLogger.WithError(err).Error("Failed to copy file contents to multipart body")
		return nil, fmt.Errorf("failed to build %s request: %w", opImport, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", opImport, err)
	}

	return apiclient.Envelope[json.RawMessage](ctx, c.Config, apiclient.Request{
		Operation:   opImport,
		Method:      http.MethodPost,
		URL:         c.buildEmployeesEndpoint("import"),
		Body:        body,
		ContentType: writer.FormDataContentType(),
	})
}

// Export returns the raw CSV the backend produces for the given filters.
func (c *client) Export(ctx context.Context, filters apiclient.Filters) ([]byte, error) {
	return c.Send(ctx, apiclient.Request{
		Operation: opExport,
		Method:    http.MethodGet,
		URL:       c.buildEmployeesEndpoint("export"),
		Query:     filters.Values(),
		Accept:    "text/csv",
	})
}

package util

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// WithBodyAndStatus writes body as JSON with the given status code
func WithBodyAndStatus(body interface{}, status int, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("Failed to write response body")
	}
}

// WithAttachment writes raw bytes as a file download
func WithAttachment(data []byte, contentType string, filename string, w http.ResponseWriter) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.WithError(err).Error("Failed to write attachment")
	}
}

// File: internal/handlers/helpers.go
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/yuin/goldmark"
)

// writeJSON is a helper for sending JSON responses.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError is a helper for sending JSON error responses.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeMissingFields reports required request fields that were absent.
func writeMissingFields(w http.ResponseWriter, missing []string) {
	writeError(w, "Missing fields: "+strings.Join(missing, ", "), http.StatusBadRequest)
}

// renderMarkdown converts assistant markdown to HTML for clients that want
// it pre-rendered. A render failure falls back to the raw text.
func renderMarkdown(md string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return md
	}
	return buf.String()
}

// datePart truncates an ISO-8601 timestamp to its date portion. Both the
// "T" and space separators appear in stored visit dates.
func datePart(ts string) string {
	if i := strings.IndexAny(ts, "T "); i >= 0 {
		return ts[:i]
	}
	return ts
}

// readUploadedFile pulls the multipart "file" field into memory.
func readUploadedFile(r *http.Request) ([]byte, string, string, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, "", "", fmt.Errorf("no file uploaded")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", "", fmt.Errorf("reading upload: %w", err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return data, header.Filename, contentType, nil
}

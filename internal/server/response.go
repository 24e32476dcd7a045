package server

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/arllen133/sqldemo"
	"github.com/arllen133/sqldemo/internal/models"
)

type usersResponse struct {
	Success bool           `json:"success"`
	Query   string         `json:"query"`
	Users   []*models.User `json:"users"`
}

type queryResponse struct {
	Success bool             `json:"success"`
	Query   string           `json:"query"`
	Results []sqldemo.Record `json:"results"`
	Count   int              `json:"count"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Query   string `json:"query,omitempty"`
}

type notFoundResponse struct {
	Error string `json:"error"`
}

// writeJSON writes v as the response body with the given status. HTML
// characters are not escaped: statements routinely contain '<' and '>'.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = marshal(errorResponse{Error: "Encoding error", Message: err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

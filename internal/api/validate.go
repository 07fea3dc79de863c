package api

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
)

// ValidateParameters checks that the request carries every required
// parameter: query arguments for GET, JSON body keys for POST. It
// returns nil on success, or an error envelope listing every missing
// name. The body is restored so handlers can read it again.
func ValidateParameters(r *http.Request, required ...string) map[string]string {
	var missing []string

	switch {
	case r.Method == http.MethodGet:
		query := r.URL.Query()
		for _, param := range required {
			if !query.Has(param) {
				missing = append(missing, param)
			}
		}

	case isJSON(r):
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return map[string]string{"error": "Request body could not be read"}
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		var doc map[string]any
		if err := json.Unmarshal(body, &doc); err != nil {
			return map[string]string{"error": "Request must be either GET with query parameters or POST with JSON body"}
		}
		for _, param := range required {
			if _, ok := doc[param]; !ok {
				missing = append(missing, param)
			}
		}

	default:
		return map[string]string{"error": "Request must be either GET with query parameters or POST with JSON body"}
	}

	if len(missing) > 0 {
		return map[string]string{"error": "Missing required parameters: " + strings.Join(missing, ", ")}
	}
	return nil
}

// DecodeBody decodes a JSON request body into dst, restoring the body
// afterwards.
func DecodeBody(r *http.Request, dst any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	r.Body = io.NopCloser(bytes.NewReader(body))
	return json.Unmarshal(body, dst)
}

func isJSON(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/json")
}

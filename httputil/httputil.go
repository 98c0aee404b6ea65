package httputil

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigFastest

// WriteJSON writes v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, r *http.Request, code int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		GetLogger(r).WithError(err).Warn("Failed to encode json response.")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if _, err := w.Write(body); err != nil {
		GetLogger(r).WithError(err).Warn("Failed to write json response.")
	}
}

// ReadJSON decodes the body of resp into v.
func ReadJSON(resp *http.Response, v interface{}) error {
	return json.NewDecoder(resp.Body).Decode(v)
}

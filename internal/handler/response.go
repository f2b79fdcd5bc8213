package handler

import (
	"encoding/json"
	"net/http"

	"github.com/forgo/statline/api/internal/model"
)

// DataResponse wraps a successful response with optional HATEOAS links
type DataResponse struct {
	Data  interface{}       `json:"data"`
	Links map[string]string `json:"_links,omitempty"`
}

// CollectionResponse wraps a search result
type CollectionResponse struct {
	Data  interface{}       `json:"data"`
	Meta  *CollectionMeta   `json:"meta,omitempty"`
	Links map[string]string `json:"_links,omitempty"`
}

// CollectionMeta describes how a collection was produced
type CollectionMeta struct {
	Entity  string   `json:"entity"`
	Count   int      `json:"count"`
	Filters []string `json:"filters"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteData writes a successful data response
func WriteData(w http.ResponseWriter, status int, data interface{}, links map[string]string) {
	response := DataResponse{
		Data:  data,
		Links: links,
	}
	WriteJSON(w, status, response)
}

// WriteCollection writes a collection response
func WriteCollection(w http.ResponseWriter, status int, data interface{}, meta *CollectionMeta, links map[string]string) {
	response := CollectionResponse{
		Data:  data,
		Meta:  meta,
		Links: links,
	}
	WriteJSON(w, status, response)
}

// WriteError writes an error response using RFC 9457 Problem Details
func WriteError(w http.ResponseWriter, err *model.ProblemDetails) {
	err.WriteJSON(w)
}

// DecodeJSON decodes a JSON request body into the given struct. Numbers
// landing in interface values are kept as json.Number so large integers
// survive intact.
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	decoder.UseNumber()
	return decoder.Decode(v)
}

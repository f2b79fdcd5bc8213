// Package helpers provides common test utilities for API tests.
//
// This package includes HTTP request builders, response validators,
// and assertion helpers for testing API endpoints.
package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/forgo/statline/api/internal/model"
	"github.com/forgo/statline/api/internal/search"
)

// AdminKeyHeader mirrors the header checked by the admin middleware
const AdminKeyHeader = "X-Admin-Key"

// ============================================================================
// HTTP Request Helpers
// ============================================================================

// RequestBuilder helps construct HTTP requests for testing
type RequestBuilder struct {
	t       *testing.T
	method  string
	path    string
	body    interface{}
	headers map[string]string
}

// NewRequest creates a new request builder
func NewRequest(t *testing.T, method, path string) *RequestBuilder {
	t.Helper()
	return &RequestBuilder{
		t:       t,
		method:  method,
		path:    path,
		headers: make(map[string]string),
	}
}

// WithBody sets the request body (will be JSON encoded)
func (rb *RequestBuilder) WithBody(body interface{}) *RequestBuilder {
	rb.body = body
	return rb
}

// WithHeader adds a header to the request
func (rb *RequestBuilder) WithHeader(key, value string) *RequestBuilder {
	rb.headers[key] = value
	return rb
}

// WithAdminKey authenticates the request for the seeding endpoints
func (rb *RequestBuilder) WithAdminKey(key string) *RequestBuilder {
	return rb.WithHeader(AdminKeyHeader, key)
}

// Build creates the HTTP request
func (rb *RequestBuilder) Build() *http.Request {
	rb.t.Helper()

	var bodyReader io.Reader
	if rb.body != nil {
		bodyBytes, err := json.Marshal(rb.body)
		if err != nil {
			rb.t.Fatalf("helpers: failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(rb.method, rb.path, bodyReader)
	if rb.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range rb.headers {
		req.Header.Set(k, v)
	}
	return req
}

// Do builds the request and serves it through h
func (rb *RequestBuilder) Do(h http.Handler) *httptest.ResponseRecorder {
	rb.t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, rb.Build())
	return rr
}

// ============================================================================
// Response Assertion Helpers
// ============================================================================

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, resp *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if resp.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, resp.Code, resp.Body.String())
	}
}

// AssertProblemDetails validates an RFC 9457 Problem Details error response
func AssertProblemDetails(t *testing.T, resp *httptest.ResponseRecorder, expectedStatus int, expectedCode model.ErrorCode) {
	t.Helper()

	AssertStatus(t, resp, expectedStatus)

	if ct := resp.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("expected problem content type, got %q", ct)
	}

	var problem model.ProblemDetails
	bodyBytes := resp.Body.Bytes()
	if err := json.Unmarshal(bodyBytes, &problem); err != nil {
		t.Fatalf("failed to decode problem details: %v. Body: %s", err, string(bodyBytes))
	}

	if problem.Status != expectedStatus {
		t.Errorf("expected problem.status %d, got %d", expectedStatus, problem.Status)
	}
	if expectedCode != 0 && problem.Code != expectedCode {
		t.Errorf("expected problem.code %d, got %d", expectedCode, problem.Code)
	}
}

// AssertValidationError checks for a validation error on a specific field
func AssertValidationError(t *testing.T, resp *httptest.ResponseRecorder, field string) {
	t.Helper()

	AssertStatus(t, resp, http.StatusUnprocessableEntity)

	var problem model.ProblemDetails
	if err := json.Unmarshal(resp.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to decode problem details: %v", err)
	}

	for _, fe := range problem.Errors {
		if fe.Field == field {
			return
		}
	}

	t.Errorf("expected validation error on field %q, but not found. Errors: %+v", field, problem.Errors)
}

// DecodeResponse decodes the response body into the given struct
func DecodeResponse(t *testing.T, resp *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	bodyBytes := resp.Body.Bytes()
	if err := json.Unmarshal(bodyBytes, v); err != nil {
		t.Fatalf("failed to decode response: %v. Body: %s", err, string(bodyBytes))
	}
}

// Collection is the decoded shape of a search response
type Collection struct {
	Data []map[string]interface{} `json:"data"`
	Meta struct {
		Entity  string   `json:"entity"`
		Count   int      `json:"count"`
		Filters []string `json:"filters"`
	} `json:"meta"`
	Links map[string]string `json:"links"`
}

// GetCollection decodes a search response and checks its count matches
func GetCollection(t *testing.T, resp *httptest.ResponseRecorder) Collection {
	t.Helper()

	var c Collection
	DecodeResponse(t, resp, &c)
	if c.Meta.Count != len(c.Data) {
		t.Errorf("meta.count %d does not match %d rows", c.Meta.Count, len(c.Data))
	}
	return c
}

// AssertRows checks that every row carries the expected key-value pairs
func AssertRows(t *testing.T, rows []map[string]interface{}, expected map[string]interface{}) {
	t.Helper()

	for i, row := range rows {
		for key, want := range expected {
			got, ok := row[key]
			if !ok {
				t.Errorf("row %d: key %q not found", i, key)
				continue
			}
			if !jsonEqual(want, got) {
				t.Errorf("row %d: for key %q expected %v, got %v", i, key, want, got)
			}
		}
	}
}

// ============================================================================
// Store Assertion Helpers
// ============================================================================

// AssertRecordCount checks how many records of spec match req
func AssertRecordCount(t *testing.T, store search.RecordStore, spec *search.Spec, req search.Request, expected int) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cond, err := search.Compose(spec, req)
	if err != nil {
		t.Fatalf("failed to compose %s condition: %v", spec.Entity, err)
	}
	recs, err := search.NewExecutor(store).Execute(ctx, cond)
	if err != nil {
		t.Fatalf("failed to query %s: %v", spec.Entity, err)
	}
	if len(recs) != expected {
		t.Errorf("expected %d %s records for %s, got %d", expected, spec.Entity, cond, len(recs))
	}
}

// ============================================================================
// Utility Helpers
// ============================================================================

// jsonEqual compares two JSON values for equality
func jsonEqual(a, b interface{}) bool {
	aBytes, _ := json.Marshal(a)
	bBytes, _ := json.Marshal(b)
	return string(aBytes) == string(bBytes)
}

// Int64Ptr returns a pointer to the int64
func Int64Ptr(i int64) *int64 {
	return &i
}

// StringPtr returns a pointer to the string
func StringPtr(s string) *string {
	return &s
}

// BoolPtr returns a pointer to the bool
func BoolPtr(b bool) *bool {
	return &b
}

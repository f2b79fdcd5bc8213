// Package helpers provides test utility functions for the Statline API.
//
// # Request Builder
//
// Build and serve requests against any handler:
//
//	rr := helpers.NewRequest(t, http.MethodGet, "/v1/teams?year=2010").Do(h)
//	rr := helpers.NewRequest(t, http.MethodPost, "/v1/admin/seed/team").
//		WithAdminKey(key).
//		WithBody(body).
//		Do(h)
//
// # Assertion Helpers
//
//	helpers.AssertStatus(t, rr, http.StatusOK)
//	helpers.AssertProblemDetails(t, rr, http.StatusBadRequest, model.ErrCodeUnknownField)
//	helpers.AssertValidationError(t, rr, "game_type")
//	helpers.AssertRecordCount(t, store, model.TeamSpec, req, 2)
//
// # Collections
//
//	c := helpers.GetCollection(t, rr)
//	helpers.AssertRows(t, c.Data, map[string]interface{}{"year": 2010})
package helpers

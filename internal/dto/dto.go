// Package dto holds the transfer representations exchanged over the REST API.
//
// They mirror the entities in internal/model but:
//   - identifiers are strings
//   - related entities appear only as summaries (id + a few display fields)
//   - request-scoped fields such as IsLikedByCurrentUser and CommentsCount are
//     computed per request and never stored
//
// Both the HTTP client and the dev API use these types, so the wire contract is
// defined in exactly one place. The `validate` tags are checked by
// internal/validation: on requests by the dev API, on responses by the client
// (a missing required field is a decoding failure, not a zero value).
package dto

// APIError is the body of every response with status >= 400.
type APIError struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

// StringPtr returns nil for an empty string, or a pointer to s.
// Forms use it to turn blank optional fields into JSON-absent values.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

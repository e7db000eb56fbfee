package graph

import (
	"errors"
	"fmt"
)

// ErrMalformedDelta marks a delta page carrying neither a next link nor a
// delta link. Fetching stops without returning a cursor so the stored one
// cannot be corrupted.
var ErrMalformedDelta = errors.New("graph: delta response has neither nextLink nor deltaLink")

// AuthError is returned when the OAuth2 token endpoint denies the client
// credentials grant. Fatal for the run.
type AuthError struct {
	Reason      string
	Description string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("graph: token acquisition failed: %s: %s", e.Reason, e.Description)
}

// APIError is returned when the Graph API responds with a non-2xx status.
// Fatal for the run.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("graph: api error %d: %s", e.Status, e.Message)
}

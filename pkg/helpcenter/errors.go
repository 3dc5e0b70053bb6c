package helpcenter

import "fmt"

// APIError is returned for any non-2xx response from the help-center API.
// It carries the HTTP status and raw response body so callers can log
// actionable diagnostics.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("help center API returned status %d: %s", e.StatusCode, e.Body)
}

// IsClientError reports whether the failure was a 4xx rejection, e.g. a
// locale that is not enabled on the destination tenant.
func (e *APIError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

package timeapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrConnectivityCheckFailed marks a failed health check. It only ever
	// downgrades the status indicator.
	ErrConnectivityCheckFailed = errors.New("connectivity check failed")

	// ErrQueryFailed marks a failed time lookup: transport error, non-2xx
	// status or an undecodable body.
	ErrQueryFailed = errors.New("time lookup failed")
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Op         string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %s", e.Op, e.Status)
}

// LookupRequest is the POST /time body.
type LookupRequest struct {
	Location string `json:"location"`
}

// LookupResponse is the POST /time success body. The service either returns
// a preformatted Answer or the individual fields.
type LookupResponse struct {
	Answer   string `json:"answer,omitempty"`
	Location string `json:"location,omitempty"`
	Time     string `json:"time,omitempty"`
	Date     string `json:"date,omitempty"`
	Day      string `json:"day,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// Message returns the text shown to the user: the answer verbatim when the
// service provided one, otherwise a multi-line summary of the fields.
func (r *LookupResponse) Message() string {
	if r.Answer != "" {
		return r.Answer
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Current time in %s:\n", r.Location)
	fmt.Fprintf(&sb, "🕒 Time: %s\n", r.Time)
	fmt.Fprintf(&sb, "📅 Date: %s\n", r.Date)
	fmt.Fprintf(&sb, "📆 Day: %s\n", r.Day)
	fmt.Fprintf(&sb, "🌍 Timezone: %s", r.Timezone)
	return sb.String()
}

func isSuccess(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}

package news

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"
)

// UpstreamError is returned when an upstream service answers with a non-2xx status.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// EmptyResponseError is returned when an upstream service answers 2xx with
// no body. Callers that forward raw bodies can reply with StatusCode alone.
type EmptyResponseError struct {
	StatusCode int
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("upstream returned status %d with an empty body", e.StatusCode)
}

// TimeoutError is returned when an upstream call exceeds its time budget.
type TimeoutError struct {
	Op    string
	After time.Duration
	Err   error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Op, e.After)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// ConfigurationError reports a missing credential or setting.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not configured", e.Setting)
}

// InvalidInputError reports a caller-supplied value that failed validation.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func transportError(op string, budget time.Duration, err error) error {
	err = redactURL(err)

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &TimeoutError{Op: op, After: budget, Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// redactURL strips the query string and userinfo from a *url.Error.
func redactURL(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}

	redacted := ""
	if u, parseErr := url.Parse(urlErr.URL); parseErr == nil {
		u.RawQuery = ""
		u.User = nil
		u.Fragment = ""
		redacted = u.String()
	}

	return &url.Error{Op: urlErr.Op, URL: redacted, Err: urlErr.Err}
}

package client

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyResponse   = errors.New("empty response")
	ErrProfileNotFound = errors.New("profile not found")
)

// SubmissionError reports that the backend rejected a unit of work or was
// unreachable when it was submitted.
type SubmissionError struct {
	Op  string
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// StatusQueryError reports a failed task status query.
type StatusQueryError struct {
	TaskID string
	Err    error
}

func (e *StatusQueryError) Error() string {
	return fmt.Sprintf("query status of task %s: %v", e.TaskID, e.Err)
}

func (e *StatusQueryError) Unwrap() error { return e.Err }

// ResultFetchError reports a failed result fetch for a completed task.
type ResultFetchError struct {
	TaskID string
	Err    error
}

func (e *ResultFetchError) Error() string {
	return fmt.Sprintf("fetch result of task %s: %v", e.TaskID, e.Err)
}

func (e *ResultFetchError) Unwrap() error { return e.Err }

// ClientDataError is the 4xx-class rejection of the data itself: the backend
// completed the task but cannot produce a result from the given input. It is
// carried inside a ResultFetchError and is never retried.
type ClientDataError struct {
	TaskID     string
	StatusCode int
	Body       string
}

func (e *ClientDataError) Error() string {
	return fmt.Sprintf("backend rejected data for task %s (status %d)", e.TaskID, e.StatusCode)
}

// MalformedResponseError reports a 2xx response whose body does not carry
// what the protocol promises (missing task id, unknown status string, bad
// JSON).
type MalformedResponseError struct {
	Op     string
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %s", e.Op, e.Reason)
}

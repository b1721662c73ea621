package poller

import "fmt"

// TimeoutError reports that a task was still pending after the configured
// number of status samples.
type TimeoutError struct {
	TaskID   string
	Attempts int
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("task %s still pending after %d attempts", e.TaskID, e.Attempts)
}

// TaskFailedError reports that the backend marked the task FAILURE. The
// backend does not expose a failure reason.
type TaskFailedError struct {
	TaskID string
}

func (e *TaskFailedError) Error() string {
	return fmt.Sprintf("task %s failed", e.TaskID)
}

// UnexpectedStatusError reports a terminal status outside the known set.
// ParseTaskStatus keeps this from happening on the wire path; the type exists
// so a future status value degrades loudly instead of being treated as
// success.
type UnexpectedStatusError struct {
	TaskID string
	Status string
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("task %s reported unexpected status %q", e.TaskID, e.Status)
}

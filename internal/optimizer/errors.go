package optimizer

import (
	"errors"
	"fmt"

	"github.com/tapmytalent/resume-optimizer/internal/client"
	"github.com/tapmytalent/resume-optimizer/internal/poller"
)

// ValidationError reports user input the wizard refuses to submit. Its
// message is shown to the user as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// UserMessage folds the error taxonomy into the single message a stage
// displays. Backend rejections of the data itself get a distinct message so
// the user knows retrying the same file is pointless.
func UserMessage(err error) string {
	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation.Message
	}

	var clientData *client.ClientDataError
	if errors.As(err, &clientData) {
		return "Your resume could not be processed. Please check the file and try a different one."
	}

	var timeout *poller.TimeoutError
	if errors.As(err, &timeout) {
		return "This is taking longer than expected. Please try again."
	}

	var failed *poller.TaskFailedError
	if errors.As(err, &failed) {
		return "Processing failed. Please try again."
	}

	return fmt.Sprintf("An error occurred: %v", err)
}

// Package poller drives a submitted backend task to completion: it samples
// the task status at a fixed interval and fetches the result only after
// observing SUCCESS.
package poller

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lthibault/jitterbug/v2"
	"go.uber.org/zap"

	api "github.com/tapmytalent/resume-optimizer/api/v1alpha1"
	"github.com/tapmytalent/resume-optimizer/internal/client"
	"github.com/tapmytalent/resume-optimizer/pkg/metrics"
)

type Poller struct {
	client      client.Builder
	maxAttempts int
	interval    time.Duration
	log         *zap.SugaredLogger
}

// New returns a Poller sampling at the given fixed interval. Backend jobs
// finish within a few seconds, so there is no backoff; the interval only
// carries a little jitter to keep concurrent polls from aligning.
func New(c client.Builder, maxAttempts int, interval time.Duration) *Poller {
	return &Poller{
		client:      c,
		maxAttempts: maxAttempts,
		interval:    interval,
		log:         zap.S().Named("poller"),
	}
}

// WaitForStatus blocks until the task reaches a terminal status, the attempt
// budget runs out, or ctx is canceled. The first sample happens immediately;
// only a PENDING answer waits for the next tick. On timeout the task may
// still complete server side; the returned TimeoutError says only that this
// wait gave up.
func (p *Poller) WaitForStatus(ctx context.Context, taskID string) (api.TaskStatus, error) {
	ticker := jitterbug.New(p.interval, &jitterbug.Norm{Stdev: p.interval / 20})
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		status, err := p.client.CheckStatus(ctx, taskID)
		if err != nil {
			return "", err
		}
		metrics.IncPollAttempt(string(status))

		if status.Terminal() {
			p.log.Debugf("task %s reached %s after %d attempts", taskID, status, attempt)
			return status, nil
		}
		p.log.Debugf("task %s pending, attempt %d/%d", taskID, attempt, p.maxAttempts)

		if attempt == p.maxAttempts {
			return "", &TimeoutError{TaskID: taskID, Attempts: p.maxAttempts}
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}

// WaitForResult waits for the task to finish and fetches its payload. The
// result endpoint is only consulted after SUCCESS has been observed.
func (p *Poller) WaitForResult(ctx context.Context, taskID string) (json.RawMessage, error) {
	status, err := p.WaitForStatus(ctx, taskID)
	if err != nil {
		return nil, err
	}

	switch status {
	case api.TaskStatusSuccess:
		return p.client.GetResult(ctx, taskID)
	case api.TaskStatusFailure:
		return nil, &TaskFailedError{TaskID: taskID}
	default:
		return nil, &UnexpectedStatusError{TaskID: taskID, Status: string(status)}
	}
}

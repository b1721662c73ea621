package poller

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	api "github.com/tapmytalent/resume-optimizer/api/v1alpha1"
	"github.com/tapmytalent/resume-optimizer/internal/client"
)

// scriptedStatus returns each status in sequence, repeating the last one.
func scriptedStatus(statuses ...api.TaskStatus) func(context.Context, string) (api.TaskStatus, error) {
	var calls atomic.Int64
	return func(ctx context.Context, taskID string) (api.TaskStatus, error) {
		n := int(calls.Add(1)) - 1
		if n >= len(statuses) {
			n = len(statuses) - 1
		}
		return statuses[n], nil
	}
}

func TestWaitForStatus(t *testing.T) {
	t.Run("returns the first terminal status", func(t *testing.T) {
		mock := &client.BuilderMock{
			CheckStatusFunc: scriptedStatus(api.TaskStatusPending, api.TaskStatusPending, api.TaskStatusSuccess),
		}
		p := New(mock, 15, time.Millisecond)

		status, err := p.WaitForStatus(context.Background(), "task-1")
		require.NoError(t, err)
		require.Equal(t, api.TaskStatusSuccess, status)
		require.Len(t, mock.CheckStatusCalls(), 3)
	})

	t.Run("samples immediately, a finished task never waits a tick", func(t *testing.T) {
		mock := &client.BuilderMock{
			CheckStatusFunc: scriptedStatus(api.TaskStatusSuccess),
		}
		p := New(mock, 15, time.Minute)

		start := time.Now()
		status, err := p.WaitForStatus(context.Background(), "task-1")
		require.NoError(t, err)
		require.Equal(t, api.TaskStatusSuccess, status)
		require.Less(t, time.Since(start), time.Second)
	})

	t.Run("stops on FAILURE without further sampling", func(t *testing.T) {
		mock := &client.BuilderMock{
			CheckStatusFunc: scriptedStatus(api.TaskStatusFailure),
		}
		p := New(mock, 15, time.Millisecond)

		status, err := p.WaitForStatus(context.Background(), "task-1")
		require.NoError(t, err)
		require.Equal(t, api.TaskStatusFailure, status)
		require.Len(t, mock.CheckStatusCalls(), 1)
	})

	t.Run("gives up after the attempt budget", func(t *testing.T) {
		mock := &client.BuilderMock{
			CheckStatusFunc: scriptedStatus(api.TaskStatusPending),
		}
		p := New(mock, 4, time.Millisecond)

		_, err := p.WaitForStatus(context.Background(), "task-1")
		timeout := &TimeoutError{}
		require.ErrorAs(t, err, &timeout)
		require.Equal(t, "task-1", timeout.TaskID)
		require.Equal(t, 4, timeout.Attempts)
		require.Len(t, mock.CheckStatusCalls(), 4)
	})

	t.Run("propagates status query errors immediately", func(t *testing.T) {
		queryErr := &client.StatusQueryError{TaskID: "task-1", Err: errors.New("boom")}
		mock := &client.BuilderMock{
			CheckStatusFunc: func(ctx context.Context, taskID string) (api.TaskStatus, error) {
				return "", queryErr
			},
		}
		p := New(mock, 15, time.Millisecond)

		_, err := p.WaitForStatus(context.Background(), "task-1")
		require.ErrorIs(t, err, queryErr)
		require.Len(t, mock.CheckStatusCalls(), 1)
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		mock := &client.BuilderMock{
			CheckStatusFunc: scriptedStatus(api.TaskStatusPending),
		}
		p := New(mock, 1000, 10*time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(25 * time.Millisecond)
			cancel()
		}()

		_, err := p.WaitForStatus(ctx, "task-1")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestWaitForResult(t *testing.T) {
	t.Run("fetches the result only after SUCCESS", func(t *testing.T) {
		var sawSuccess atomic.Bool
		mock := &client.BuilderMock{
			CheckStatusFunc: func(ctx context.Context, taskID string) (api.TaskStatus, error) {
				sawSuccess.Store(true)
				return api.TaskStatusSuccess, nil
			},
			GetResultFunc: func(ctx context.Context, taskID string) (json.RawMessage, error) {
				require.True(t, sawSuccess.Load())
				return json.RawMessage(`{"match_rate":0.8}`), nil
			},
		}
		p := New(mock, 15, time.Millisecond)

		payload, err := p.WaitForResult(context.Background(), "task-1")
		require.NoError(t, err)
		require.JSONEq(t, `{"match_rate":0.8}`, string(payload))
		require.Len(t, mock.GetResultCalls(), 1)
		require.Equal(t, "task-1", mock.GetResultCalls()[0].TaskID)
	})

	t.Run("maps FAILURE to TaskFailedError without fetching", func(t *testing.T) {
		mock := &client.BuilderMock{
			CheckStatusFunc: scriptedStatus(api.TaskStatusPending, api.TaskStatusFailure),
			GetResultFunc: func(ctx context.Context, taskID string) (json.RawMessage, error) {
				t.Fatal("result fetched for a failed task")
				return nil, nil
			},
		}
		p := New(mock, 15, time.Millisecond)

		_, err := p.WaitForResult(context.Background(), "task-1")
		failed := &TaskFailedError{}
		require.ErrorAs(t, err, &failed)
		require.Equal(t, "task-1", failed.TaskID)
	})

	t.Run("propagates a timeout", func(t *testing.T) {
		mock := &client.BuilderMock{
			CheckStatusFunc: scriptedStatus(api.TaskStatusPending),
		}
		p := New(mock, 3, time.Millisecond)

		_, err := p.WaitForResult(context.Background(), "task-1")
		timeout := &TimeoutError{}
		require.ErrorAs(t, err, &timeout)
		require.Len(t, mock.GetResultCalls(), 0)
	})

	t.Run("propagates result fetch errors", func(t *testing.T) {
		mock := &client.BuilderMock{
			CheckStatusFunc: scriptedStatus(api.TaskStatusSuccess),
			GetResultFunc: func(ctx context.Context, taskID string) (json.RawMessage, error) {
				return nil, &client.ResultFetchError{TaskID: taskID, Err: client.ErrEmptyResponse}
			},
		}
		p := New(mock, 15, time.Millisecond)

		_, err := p.WaitForResult(context.Background(), "task-1")
		require.ErrorIs(t, err, client.ErrEmptyResponse)
	})
}

package job

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRemover struct {
	calls []string
	err   error
}

func (f *fakeRemover) RemoveAllForUser(_ context.Context, userID string) error {
	f.calls = append(f.calls, userID)
	return f.err
}

func TestRemoveUserMediaHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("removes folder", func(t *testing.T) {
		remover := &fakeRemover{}
		h := NewRemoveUserMediaHandler(remover)
		require.NoError(t, h.ProcessTask(ctx, asynq.NewTask("media:remove_user_folder", []byte(`{"userId":"u-1"}`))))
		assert.Equal(t, []string{"u-1"}, remover.calls)
	})

	t.Run("malformed payload skips retry", func(t *testing.T) {
		h := NewRemoveUserMediaHandler(&fakeRemover{})
		err := h.ProcessTask(ctx, asynq.NewTask("media:remove_user_folder", []byte(`{`)))
		assert.ErrorIs(t, err, asynq.SkipRetry)

		err = h.ProcessTask(ctx, asynq.NewTask("media:remove_user_folder", []byte(`{}`)))
		assert.ErrorIs(t, err, asynq.SkipRetry)
	})

	t.Run("storage error is retried", func(t *testing.T) {
		boom := errors.New("minio down")
		h := NewRemoveUserMediaHandler(&fakeRemover{err: boom})
		err := h.ProcessTask(ctx, asynq.NewTask("media:remove_user_folder", []byte(`{"userId":"u-1"}`)))
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, asynq.SkipRetry)
	})
}

package notify_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/niksmo/storefront/internal/adapter/notify"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotifier struct {
	mock.Mock
}

func (n *MockNotifier) Notify(ctx context.Context, v domain.Notification) error {
	args := n.Called(ctx, v)
	return args.Error(0)
}

func TestInbox(t *testing.T) {
	t.Run("NewestFirstAndBounded", func(t *testing.T) {
		inbox := notify.NewInbox(3)
		for i := range 5 {
			require.NoError(t, inbox.Notify(t.Context(), domain.Notification{
				ID: fmt.Sprint(i), SessionID: "s1",
			}))
		}
		require.NoError(t, inbox.Notify(t.Context(), domain.Notification{
			ID: "other", SessionID: "s2",
		}))

		got, err := inbox.Recent(t.Context(), "s1")
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "4", got[0].ID)
		assert.Equal(t, "2", got[2].ID)
	})

	t.Run("UnknownSession", func(t *testing.T) {
		got, err := notify.NewInbox(0).Recent(t.Context(), "none")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestFanout(t *testing.T) {
	failing := new(MockNotifier)
	failing.On("Notify", mock.Anything, mock.Anything).Return(errors.New("down"))
	inbox := notify.NewInbox(10)

	f := notify.Fanout{failing, notify.Log{}, inbox}
	err := f.Notify(t.Context(), domain.Notification{ID: "n", SessionID: "s"})
	assert.ErrorContains(t, err, "down")

	got, err := inbox.Recent(t.Context(), "s")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	failing.AssertExpectations(t)
}

package api

import (
	"context"
	"sync"
	"testing"

	"github.com/Veraticus/cashiering/internal/dashboard"
	"github.com/Veraticus/cashiering/internal/model"
	"github.com/Veraticus/cashiering/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions_SerializesPerAccount(t *testing.T) {
	repo := testutil.NewFakeRepository()
	repo.Items["a"] = testutil.SampleItems()
	repo.Items["b"] = testutil.SampleItems()

	created := 0
	sessions := NewSessions(func(accountID string) *dashboard.Session {
		return dashboard.NewSession(accountID, repo)
	})
	sessions.onNew = func() { created++ }

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			account := "a"
			if i%2 == 1 {
				account = "b"
			}
			err := sessions.Do(context.Background(), account, func(s *dashboard.Session) error {
				_, err := s.Toggle("1")
				return err
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 2, sessions.Len())
	assert.Equal(t, 2, created)
	assert.Equal(t, 2, repo.ItemCalls, "each session loads once")

	// ten toggles per account leave the item deselected
	for _, account := range []string{"a", "b"} {
		require.NoError(t, sessions.Do(context.Background(), account, func(s *dashboard.Session) error {
			assert.False(t, s.IsSelected("1"))
			return nil
		}))
	}
}

func TestSessions_DropReloads(t *testing.T) {
	repo := testutil.NewFakeRepository()
	sessions := NewSessions(func(accountID string) *dashboard.Session {
		return dashboard.NewSession(accountID, repo)
	})

	noop := func(*dashboard.Session) error { return nil }
	require.NoError(t, sessions.Do(context.Background(), "a", noop))
	sessions.Drop("a")
	assert.Zero(t, sessions.Len())
	require.NoError(t, sessions.Do(context.Background(), "a", noop))
	assert.Equal(t, 2, repo.ItemCalls)
}

func TestSessions_LoadIgnoresRequestCancellation(t *testing.T) {
	repo := testutil.NewFakeRepository()
	repo.Items["a"] = testutil.SampleItems()
	sessions := NewSessions(func(accountID string) *dashboard.Session {
		return dashboard.NewSession(accountID, &contextRepo{FakeRepository: repo})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, sessions.Do(ctx, "a", func(s *dashboard.Session) error {
		assert.NoError(t, s.LoadError())
		assert.Len(t, s.Items(), len(testutil.SampleItems()))
		return nil
	}))
}

func TestSessions_RetriesTimedOutLoad(t *testing.T) {
	repo := testutil.NewFakeRepository()
	repo.Items["a"] = testutil.SampleItems()
	repo.SetItemsErr(context.DeadlineExceeded)
	sessions := NewSessions(func(accountID string) *dashboard.Session {
		return dashboard.NewSession(accountID, repo)
	})

	require.NoError(t, sessions.Do(context.Background(), "a", func(s *dashboard.Session) error {
		assert.Empty(t, s.Items())
		return nil
	}))

	repo.SetItemsErr(nil)
	require.NoError(t, sessions.Do(context.Background(), "a", func(s *dashboard.Session) error {
		assert.Len(t, s.Items(), len(testutil.SampleItems()))
		return nil
	}))
	assert.Equal(t, 2, repo.ItemCalls)

	require.NoError(t, sessions.Do(context.Background(), "a", func(*dashboard.Session) error { return nil }))
	assert.Equal(t, 2, repo.ItemCalls, "a completed load is kept")
}

// contextRepo fails item fetches on a done context, as a real store would.
type contextRepo struct {
	*testutil.FakeRepository
}

func (r *contextRepo) FetchItems(ctx context.Context, accountID string) ([]model.ConsignmentItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.FakeRepository.FetchItems(ctx, accountID)
}

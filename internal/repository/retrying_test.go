package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Veraticus/cashiering/internal/common"
	"github.com/Veraticus/cashiering/internal/model"
	"github.com/Veraticus/cashiering/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyRepo struct {
	err      error
	failures int
	calls    int
}

func (f *flakyRepo) attempt() error {
	f.calls++
	if f.calls <= f.failures {
		return f.err
	}
	return nil
}

func (f *flakyRepo) FetchItems(context.Context, string) ([]model.ConsignmentItem, error) {
	if err := f.attempt(); err != nil {
		return nil, err
	}
	return []model.ConsignmentItem{{Key: "1"}}, nil
}

func (f *flakyRepo) FetchDetail(_ context.Context, id string) (*model.ConsignmentItem, error) {
	if err := f.attempt(); err != nil {
		return nil, err
	}
	return &model.ConsignmentItem{Key: id}, nil
}

func (f *flakyRepo) FetchAddresses(context.Context, string) ([]model.Address, error) {
	if err := f.attempt(); err != nil {
		return nil, err
	}
	return []model.Address{{ID: "a1"}}, nil
}

func (f *flakyRepo) FetchCart(_ context.Context, accountID string) (*model.Cart, error) {
	if err := f.attempt(); err != nil {
		return nil, err
	}
	return &model.Cart{ID: "c1", AccountID: accountID}, nil
}

type countingCounter struct{ n int }

func (c *countingCounter) Inc() { c.n++ }

func fastOpts() service.RetryOptions {
	return service.RetryOptions{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond}
}

func TestRetrying_RecoversFromTransientFailures(t *testing.T) {
	repo := &flakyRepo{err: fmt.Errorf("query items: %w", common.ErrFetchFailed), failures: 2}
	retries := &countingCounter{}
	r := NewRetrying(repo, nil, retries, fastOpts())

	items, err := r.FetchItems(context.Background(), "acct")

	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 3, repo.calls)
	assert.Equal(t, 2, retries.n)
}

func TestRetrying_GivesUp(t *testing.T) {
	repo := &flakyRepo{err: errors.New("database is locked"), failures: 10}
	r := NewRetrying(repo, nil, nil, fastOpts())

	_, err := r.FetchAddresses(context.Background(), "acct")

	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMaxRetries)
	assert.Equal(t, 3, repo.calls)
}

func TestRetrying_NotFoundIsFinal(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "not found", err: fmt.Errorf("item x: %w", common.ErrNotFound)},
		{name: "no open cart", err: common.ErrNoOpenCart},
		{name: "explicitly final", err: &common.RetryableError{Err: errors.New("bad"), Retryable: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &flakyRepo{err: tt.err, failures: 10}
			retries := &countingCounter{}
			r := NewRetrying(repo, nil, retries, fastOpts())

			_, err := r.FetchDetail(context.Background(), "x")

			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, 1, repo.calls)
			assert.Zero(t, retries.n)
		})
	}
}

func TestRetrying_Cart(t *testing.T) {
	repo := &flakyRepo{}
	r := NewRetrying(repo, nil, nil, fastOpts())

	cart, err := r.FetchCart(context.Background(), "acct")
	require.NoError(t, err)
	assert.Equal(t, "acct", cart.AccountID)
}

func TestNewRetrying_NilNext(t *testing.T) {
	assert.Nil(t, NewRetrying(nil, nil, nil, fastOpts()))
}

// Package repository decorates item repositories with cross-cutting behavior.
package repository

import (
	"context"
	"log/slog"

	"github.com/Veraticus/cashiering/internal/common"
	"github.com/Veraticus/cashiering/internal/model"
	"github.com/Veraticus/cashiering/internal/service"
)

var _ service.ItemRepository = (*Retrying)(nil)

type counter interface {
	Inc()
}

// Retrying retries failed fetches of the wrapped repository with exponential backoff.
type Retrying struct {
	next    service.ItemRepository
	logger  *slog.Logger
	retries counter
	opts    service.RetryOptions
}

// NewRetrying wraps next. retries, when non-nil, is incremented once per failed attempt.
func NewRetrying(next service.ItemRepository, logger *slog.Logger, retries counter, opts service.RetryOptions) *Retrying {
	if next == nil {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Retrying{next: next, logger: logger, retries: retries, opts: opts}
}

// FetchItems implements service.ItemRepository.
func (r *Retrying) FetchItems(ctx context.Context, accountID string) ([]model.ConsignmentItem, error) {
	var items []model.ConsignmentItem
	err := r.do(ctx, "FetchItems", func() error {
		var err error
		items, err = r.next.FetchItems(ctx, accountID)
		return err
	})
	return items, err
}

// FetchDetail implements service.ItemRepository.
func (r *Retrying) FetchDetail(ctx context.Context, itemID string) (*model.ConsignmentItem, error) {
	var item *model.ConsignmentItem
	err := r.do(ctx, "FetchDetail", func() error {
		var err error
		item, err = r.next.FetchDetail(ctx, itemID)
		return err
	})
	return item, err
}

// FetchAddresses implements service.ItemRepository.
func (r *Retrying) FetchAddresses(ctx context.Context, accountID string) ([]model.Address, error) {
	var addresses []model.Address
	err := r.do(ctx, "FetchAddresses", func() error {
		var err error
		addresses, err = r.next.FetchAddresses(ctx, accountID)
		return err
	})
	return addresses, err
}

// FetchCart implements service.ItemRepository.
func (r *Retrying) FetchCart(ctx context.Context, accountID string) (*model.Cart, error) {
	var cart *model.Cart
	err := r.do(ctx, "FetchCart", func() error {
		var err error
		cart, err = r.next.FetchCart(ctx, accountID)
		return err
	})
	return cart, err
}

func (r *Retrying) do(ctx context.Context, method string, op func() error) error {
	return common.WithRetry(ctx, func() error {
		err := op()
		if err != nil && common.IsRetryable(err) {
			if r.retries != nil {
				r.retries.Inc()
			}
			r.logger.Debug("repository attempt failed", "method", method, "error", err)
		}
		return err
	}, r.opts)
}

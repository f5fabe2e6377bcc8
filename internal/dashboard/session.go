// Package dashboard owns the state of one account's cashiering dashboard:
// the loaded items, the four view parameters, the selection and the delivery
// workflow. Every derived list and total is recomputed from that state on read.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/cashiering/internal/common"
	"github.com/Veraticus/cashiering/internal/consignment"
	"github.com/Veraticus/cashiering/internal/delivery"
	"github.com/Veraticus/cashiering/internal/model"
	"github.com/Veraticus/cashiering/internal/selection"
	"github.com/Veraticus/cashiering/internal/service"
)

// ErrUnknownItem is returned for an item key that is not in the loaded list.
var ErrUnknownItem = fmt.Errorf("item %w", common.ErrNotFound)

// LoadResult is the outcome of fetching an account's items. It is applied as a whole.
type LoadResult struct {
	Err       error
	Cart      *model.Cart
	Items     []model.ConsignmentItem
	Addresses []model.Address
}

// Session is the single owner of a dashboard's mutable state. It is not safe
// for concurrent use; callers deliver events one at a time.
type Session struct {
	repo      service.ItemRepository
	logger    *slog.Logger
	selection *selection.Set
	delivery  *delivery.Controller
	cart      *model.Cart
	loadErr   error
	accountID string
	items     []model.ConsignmentItem
	cats      consignment.Categories
	params    consignment.ViewParams
	loading   bool
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithViewParams sets the initial view parameters.
func WithViewParams(params consignment.ViewParams) Option {
	return func(s *Session) {
		s.params = params
	}
}

// WithDelivery replaces the delivery controller.
func WithDelivery(c *delivery.Controller) Option {
	return func(s *Session) {
		if c != nil {
			s.delivery = c
		}
	}
}

// NewSession creates an empty session for accountID backed by repo.
func NewSession(accountID string, repo service.ItemRepository, opts ...Option) *Session {
	s := &Session{
		accountID: accountID,
		repo:      repo,
		logger:    slog.Default(),
		selection: selection.New(),
		params:    consignment.DefaultViewParams(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.delivery == nil {
		s.delivery = delivery.NewController(delivery.NewLogSink(s.logger), delivery.WithLogger(s.logger))
	}
	return s
}

// AccountID returns the account the session belongs to.
func (s *Session) AccountID() string { return s.accountID }

// Fetch reads the account's cart, items and titling addresses. It reads only
// the repository, logger and account, which never change, so it may run off
// the event loop.
func (s *Session) Fetch(ctx context.Context) LoadResult {
	repo, accountID := s.repo, s.accountID
	if repo == nil {
		return LoadResult{Err: fmt.Errorf("no repository: %w", common.ErrFetchFailed)}
	}

	items, err := repo.FetchItems(ctx, accountID)
	if err != nil {
		return LoadResult{Err: fmt.Errorf("fetch items for %s: %w", accountID, err)}
	}

	result := LoadResult{Items: items}

	cart, err := repo.FetchCart(ctx, accountID)
	switch {
	case err == nil:
		result.Cart = cart
	case errors.Is(err, common.ErrNoOpenCart), errors.Is(err, common.ErrNotFound):
	default:
		s.logger.Warn("Failed to fetch cart", "account_id", accountID, "error", err)
	}

	addresses, err := repo.FetchAddresses(ctx, accountID)
	if err != nil {
		s.logger.Warn("Failed to fetch titling addresses, using defaults", "account_id", accountID, "error", err)
	} else {
		result.Addresses = addresses
	}

	return result
}

// BeginLoad marks a fetch as outstanding. The previous list stays visible until Apply.
func (s *Session) BeginLoad() {
	s.loading = true
}

// Apply replaces the working item list with a fetch result. A failed fetch
// leaves an empty list. The selection is cleared and an open review is cancelled
// either way, since both refer to the previous list.
func (s *Session) Apply(result LoadResult) {
	s.loading = false
	s.selection.Clear()
	s.delivery.Cancel()

	if result.Err != nil {
		s.logger.Warn("Item fetch failed, showing empty list",
			"account_id", s.accountID,
			"error", result.Err)
		s.items = nil
		s.cart = nil
		s.loadErr = result.Err
		s.cats = consignment.Categories{}
		s.delivery.SetAddressOptions(nil)
		return
	}

	s.items = result.Items
	s.cart = result.Cart
	s.loadErr = nil
	s.cats = consignment.Categorize(s.items)

	options := make([]model.Option, 0, len(result.Addresses))
	for _, addr := range result.Addresses {
		if addr.Active {
			options = append(options, addr.AsOption())
		}
	}
	s.delivery.SetAddressOptions(options)

	s.logger.Debug("Loaded items",
		"account_id", s.accountID,
		"item_count", len(s.items),
		"categorized", s.cats.Len())
}

// Load fetches and applies the account's items.
func (s *Session) Load(ctx context.Context) {
	s.BeginLoad()
	s.Apply(s.Fetch(ctx))
}

// Loading reports whether a fetch is outstanding.
func (s *Session) Loading() bool { return s.loading }

// LoadError returns the error of the last fetch, if it failed.
func (s *Session) LoadError() error { return s.loadErr }

// Cart returns the account's open cart, if known.
func (s *Session) Cart() *model.Cart { return s.cart }

// Items returns the loaded items in repository order.
func (s *Session) Items() []model.ConsignmentItem { return s.items }

// Categories returns the categorization of the loaded items.
func (s *Session) Categories() consignment.Categories { return s.cats }

// Params returns the current view parameters.
func (s *Session) Params() consignment.ViewParams { return s.params }

// SetParams replaces all four view parameters.
func (s *Session) SetParams(params consignment.ViewParams) { s.params = params }

// SetPivot changes the active tab.
func (s *Session) SetPivot(p consignment.Pivot) { s.params.Pivot = p }

// SetSearch changes the search query.
func (s *Session) SetSearch(query string) { s.params.Search = query }

// SetFilter changes the consign type filter.
func (s *Session) SetFilter(f consignment.FilterOption) { s.params.Filter = f }

// SetSort changes the sort order.
func (s *Session) SetSort(o consignment.SortOption) { s.params.Sort = o }

// View returns the visible items for the current parameters.
func (s *Session) View() []model.ConsignmentItem {
	return consignment.DeriveViewFrom(s.items, s.cats, s.params)
}

// Toggle flips the selection of the item with key and reports whether it is now selected.
func (s *Session) Toggle(key string) (bool, error) {
	if _, ok := s.find(key); !ok {
		return false, fmt.Errorf("%s: %w", key, ErrUnknownItem)
	}
	return s.selection.Toggle(key), nil
}

// ClearSelection unchecks every item.
func (s *Session) ClearSelection() {
	s.selection.Clear()
}

// IsSelected reports whether the item with key is selected.
func (s *Session) IsSelected(key string) bool {
	return s.selection.IsSelected(key)
}

// SelectedCount returns the number of selected items.
func (s *Session) SelectedCount() int {
	return s.selection.Count()
}

// SelectedItems returns the selected items in repository order.
func (s *Session) SelectedItems() []model.ConsignmentItem {
	return s.selection.Items(s.items)
}

// Totals returns totals over the selection, or over the visible view when nothing is selected.
func (s *Session) Totals() consignment.Totals {
	return consignment.TotalsFor(s.SelectedItems(), s.View())
}

// Delivery returns the delivery controller for read access.
func (s *Session) Delivery() *delivery.Controller { return s.delivery }

// OpenDelivery opens the review panel. It does nothing without a selection.
func (s *Session) OpenDelivery() bool {
	return s.delivery.Open(s.selection.Count())
}

// SetDeliveryAddress drafts the delivery address.
func (s *Session) SetDeliveryAddress(key string) error {
	return s.delivery.SetAddress(key)
}

// SetDeliveryCarrier drafts the carrier.
func (s *Session) SetDeliveryCarrier(key string) error {
	return s.delivery.SetCarrier(key)
}

// SetDeliveryComments drafts the comments.
func (s *Session) SetDeliveryComments(comments string) error {
	return s.delivery.SetComments(comments)
}

// CancelDelivery closes the review panel and drops the drafts.
func (s *Session) CancelDelivery() {
	s.delivery.Cancel()
}

// ConfirmDelivery emits a delivery request for the selection. The selection is kept.
func (s *Session) ConfirmDelivery(ctx context.Context) (model.DeliveryRequest, bool) {
	selected := s.SelectedItems()
	total := consignment.ComputeTotals(selected).TotalOwed
	return s.delivery.Confirm(ctx, s.accountID, selected, total)
}

// Item returns the loaded item with key.
func (s *Session) Item(key string) (model.ConsignmentItem, bool) {
	return s.find(key)
}

// DetailItem returns the item with key, refreshed from the repository when possible.
func (s *Session) DetailItem(ctx context.Context, key string) (model.ConsignmentItem, error) {
	item, ok := s.find(key)
	if !ok {
		return model.ConsignmentItem{}, fmt.Errorf("%s: %w", key, ErrUnknownItem)
	}
	return s.FetchDetail(ctx, item), nil
}

// FetchDetail attaches the vehicle and seller records to a copy of item. A
// failed lookup returns the item as loaded. Like Fetch it may run off the event loop.
func (s *Session) FetchDetail(ctx context.Context, item model.ConsignmentItem) model.ConsignmentItem {
	repo := s.repo
	if repo == nil || item.ID == "" {
		return item
	}

	detail, err := repo.FetchDetail(ctx, item.ID)
	if err != nil {
		s.logger.Debug("Item detail refresh failed", "item_id", item.ID, "error", err)
		return item
	}
	if detail.Vehicle != nil {
		item.Vehicle = detail.Vehicle
	}
	if detail.Seller != nil {
		item.Seller = detail.Seller
	}
	return item
}

func (s *Session) find(key string) (model.ConsignmentItem, bool) {
	for _, item := range s.items {
		if item.Key == key {
			return item, true
		}
	}
	return model.ConsignmentItem{}, false
}

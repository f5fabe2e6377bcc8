// Package delivery drives the review-and-confirm workflow that requests
// delivery of the selected consignment items.
package delivery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/Veraticus/cashiering/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// State is the workflow state of a Controller.
type State int

const (
	// StateIdle means the review panel is closed.
	StateIdle State = iota
	// StateReviewing means the review panel is open and drafts are editable.
	StateReviewing
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateReviewing:
		return "Reviewing"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

var (
	// ErrNotReviewing is returned when a draft field is edited while the panel is closed.
	ErrNotReviewing = errors.New("delivery review is not open")
	// ErrUnknownOption is returned when an address or carrier key is not in the offered set.
	ErrUnknownOption = errors.New("unknown delivery option")
)

// Draft holds the fields being edited while reviewing.
type Draft struct {
	Address  model.Option
	Carrier  model.Option
	Comments string
}

// Controller is the Idle/Reviewing state machine. It is not safe for
// concurrent use; callers serialize events.
type Controller struct {
	sink      Sink
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
	carriers  []model.Option
	addresses []model.Option
	fallback  []model.Option
	draft     Draft
	state     State
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for rejected transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the time source stamped on requests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithIDGenerator overrides how request ids are generated.
func WithIDGenerator(newID func() string) Option {
	return func(c *Controller) {
		if newID != nil {
			c.newID = newID
		}
	}
}

// WithCarriers replaces the carrier set.
func WithCarriers(carriers []model.Option) Option {
	return func(c *Controller) {
		if len(carriers) > 0 {
			c.carriers = slices.Clone(carriers)
		}
	}
}

// WithAddresses replaces the address set, including the set offered when an
// account has no titling addresses.
func WithAddresses(addresses []model.Option) Option {
	return func(c *Controller) {
		if len(addresses) > 0 {
			c.addresses = slices.Clone(addresses)
			c.fallback = slices.Clone(addresses)
		}
	}
}

// NewController returns an idle controller emitting to sink. A nil sink discards requests.
func NewController(sink Sink, opts ...Option) *Controller {
	c := &Controller{
		sink:      sink,
		logger:    slog.Default(),
		now:       time.Now,
		newID:     uuid.NewString,
		carriers:  slices.Clone(model.DefaultCarriers),
		addresses: slices.Clone(model.DefaultAddresses),
		fallback:  model.DefaultAddresses,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.sink == nil {
		c.sink = Discard{}
	}
	return c
}

// State returns the current workflow state.
func (c *Controller) State() State { return c.state }

// Draft returns the current draft fields.
func (c *Controller) Draft() Draft { return c.draft }

// Carriers returns the offered carriers.
func (c *Controller) Carriers() []model.Option { return slices.Clone(c.carriers) }

// Addresses returns the offered addresses.
func (c *Controller) Addresses() []model.Option { return slices.Clone(c.addresses) }

// SetAddressOptions replaces the offered addresses, falling back to the
// configured default set when addresses is empty. A drafted address no longer offered is cleared.
func (c *Controller) SetAddressOptions(addresses []model.Option) {
	if len(addresses) == 0 {
		addresses = c.fallback
	}
	c.addresses = slices.Clone(addresses)
	if c.draft.Address.Key != "" {
		if _, ok := model.FindOption(c.addresses, c.draft.Address.Key); !ok {
			c.draft.Address = model.Option{}
		}
	}
}

// CanOpen reports whether the review panel may be opened for selectedCount items.
func CanOpen(selectedCount int) bool {
	return selectedCount > 0
}

// Open enters Reviewing. It is a no-op returning false when nothing is selected.
func (c *Controller) Open(selectedCount int) bool {
	if !CanOpen(selectedCount) {
		c.logger.Debug("delivery review rejected", "reason", "empty selection")
		return false
	}
	if c.state == StateReviewing {
		return true
	}
	c.state = StateReviewing
	c.draft = Draft{}
	return true
}

// SetAddress drafts the address with the given key.
func (c *Controller) SetAddress(key string) error {
	if c.state != StateReviewing {
		return ErrNotReviewing
	}
	opt, ok := model.FindOption(c.addresses, key)
	if !ok {
		return fmt.Errorf("address %q: %w", key, ErrUnknownOption)
	}
	c.draft.Address = opt
	return nil
}

// SetCarrier drafts the carrier with the given key.
func (c *Controller) SetCarrier(key string) error {
	if c.state != StateReviewing {
		return ErrNotReviewing
	}
	opt, ok := model.FindOption(c.carriers, key)
	if !ok {
		return fmt.Errorf("carrier %q: %w", key, ErrUnknownOption)
	}
	c.draft.Carrier = opt
	return nil
}

// SetComments drafts free-text comments.
func (c *Controller) SetComments(comments string) error {
	if c.state != StateReviewing {
		return ErrNotReviewing
	}
	c.draft.Comments = comments
	return nil
}

// CanConfirm reports whether Confirm would emit for selectedCount items.
func (c *Controller) CanConfirm(selectedCount int) bool {
	return c.state == StateReviewing && CanOpen(selectedCount) &&
		c.draft.Address.Key != "" && c.draft.Carrier.Key != ""
}

// Confirm emits a DeliveryRequest for items and returns to Idle. Without items,
// an address and a carrier it emits nothing, stays in Reviewing and returns
// false. The caller's selection is left as it is.
func (c *Controller) Confirm(ctx context.Context, accountID string, items []model.ConsignmentItem, total decimal.Decimal) (model.DeliveryRequest, bool) {
	if !c.CanConfirm(len(items)) {
		c.logger.Debug("delivery confirm rejected",
			"state", c.state.String(),
			"item_count", len(items),
			"has_address", c.draft.Address.Key != "",
			"has_carrier", c.draft.Carrier.Key != "")
		return model.DeliveryRequest{}, false
	}

	req := model.DeliveryRequest{
		RequestedAt: c.now(),
		ID:          c.newID(),
		AccountID:   accountID,
		Address:     c.draft.Address,
		Carrier:     c.draft.Carrier,
		Comments:    c.draft.Comments,
		Items:       slices.Clone(items),
		TotalAmount: total,
	}

	c.sink.Emit(ctx, req)

	c.state = StateIdle
	c.draft = Draft{}
	return req, true
}

// Cancel discards the drafts and returns to Idle.
func (c *Controller) Cancel() {
	c.state = StateIdle
	c.draft = Draft{}
}

package delivery

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/Veraticus/cashiering/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, 1, 20, 15, 4, 5, 0, time.UTC)

func newTestController(t *testing.T, opts ...Option) (*Controller, *Recorder) {
	t.Helper()
	rec := NewRecorder(0)
	opts = append([]Option{
		WithClock(func() time.Time { return fixedTime }),
		WithIDGenerator(func() string { return "req-1" }),
	}, opts...)
	return NewController(rec, opts...), rec
}

func testItems() []model.ConsignmentItem {
	return []model.ConsignmentItem{
		{Key: "1", Name: "1967 Shelby GT500", Total: decimal.NewFromInt(150000)},
		{Key: "2", Name: "Gulf Oil Sign", Total: decimal.NewFromInt(2500)},
	}
}

func TestController_OpenRequiresSelection(t *testing.T) {
	c, _ := newTestController(t)

	assert.False(t, c.Open(0))
	assert.Equal(t, StateIdle, c.State())

	assert.True(t, c.Open(2))
	assert.Equal(t, StateReviewing, c.State())
}

func TestController_OpenTwiceKeepsDraft(t *testing.T) {
	c, _ := newTestController(t)
	require.True(t, c.Open(1))
	require.NoError(t, c.SetCarrier("ups"))

	assert.True(t, c.Open(1))
	assert.Equal(t, "ups", c.Draft().Carrier.Key)
}

func TestController_DraftEditsRequireReviewing(t *testing.T) {
	c, _ := newTestController(t)

	assert.ErrorIs(t, c.SetAddress("address1"), ErrNotReviewing)
	assert.ErrorIs(t, c.SetCarrier("fedex"), ErrNotReviewing)
	assert.ErrorIs(t, c.SetComments("hi"), ErrNotReviewing)
	assert.Equal(t, Draft{}, c.Draft())
}

func TestController_UnknownOptions(t *testing.T) {
	c, _ := newTestController(t)
	require.True(t, c.Open(1))

	err := c.SetAddress("moon base")
	require.ErrorIs(t, err, ErrUnknownOption)
	assert.Contains(t, err.Error(), "moon base")
	assert.ErrorIs(t, c.SetCarrier("pony express"), ErrUnknownOption)
	assert.False(t, c.CanConfirm(1))
}

func TestController_ConfirmGuards(t *testing.T) {
	tests := []struct {
		name    string
		address string
		carrier string
	}{
		{name: "nothing set"},
		{name: "address only", address: "address2"},
		{name: "carrier only", carrier: "montway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestController(t)
			require.True(t, c.Open(2))
			if tt.address != "" {
				require.NoError(t, c.SetAddress(tt.address))
			}
			if tt.carrier != "" {
				require.NoError(t, c.SetCarrier(tt.carrier))
			}

			_, ok := c.Confirm(context.Background(), "acct-1", testItems(), decimal.NewFromInt(1))

			assert.False(t, ok)
			assert.Equal(t, StateReviewing, c.State())
			assert.Empty(t, rec.Requests())
		})
	}
}

func TestController_ConfirmWithoutItems(t *testing.T) {
	c, rec := newTestController(t)
	require.True(t, c.Open(1))
	require.NoError(t, c.SetAddress("address1"))
	require.NoError(t, c.SetCarrier("fedex"))
	require.True(t, c.CanConfirm(1))
	assert.False(t, c.CanConfirm(0))

	_, ok := c.Confirm(context.Background(), "acct-1", nil, decimal.Zero)

	assert.False(t, ok)
	assert.Equal(t, StateReviewing, c.State())
	assert.Equal(t, "fedex", c.Draft().Carrier.Key, "draft survives the rejected confirm")
	assert.Empty(t, rec.Requests())
}

func TestController_ConfirmWhileIdle(t *testing.T) {
	c, rec := newTestController(t)
	_, ok := c.Confirm(context.Background(), "acct-1", testItems(), decimal.Zero)
	assert.False(t, ok)
	assert.Empty(t, rec.Requests())
}

func TestController_Confirm(t *testing.T) {
	c, rec := newTestController(t)
	items := testItems()
	require.True(t, c.Open(len(items)))
	require.NoError(t, c.SetAddress("address3"))
	require.NoError(t, c.SetCarrier("reliable"))
	require.NoError(t, c.SetComments("gate code 4411"))
	require.True(t, c.CanConfirm(len(items)))

	req, ok := c.Confirm(context.Background(), "acct-1", items, decimal.NewFromInt(152500))
	require.True(t, ok)

	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, Draft{}, c.Draft())

	want := model.DeliveryRequest{
		RequestedAt: fixedTime,
		ID:          "req-1",
		AccountID:   "acct-1",
		Address:     model.Option{Key: "address3", Label: "789 Pine Rd, Tucson, AZ 85701"},
		Carrier:     model.Option{Key: "reliable", Label: "Reliable Carriers"},
		Comments:    "gate code 4411",
		Items:       items,
		TotalAmount: decimal.NewFromInt(152500),
	}
	assert.Equal(t, want, req)
	require.Len(t, rec.Requests(), 1)
	assert.Equal(t, want, rec.Requests()[0])

	items[0].Name = "changed"
	assert.Equal(t, "1967 Shelby GT500", rec.Requests()[0].Items[0].Name, "request holds a snapshot")
}

func TestController_Cancel(t *testing.T) {
	c, rec := newTestController(t)
	require.True(t, c.Open(1))
	require.NoError(t, c.SetAddress("address1"))
	require.NoError(t, c.SetCarrier("fedex"))

	c.Cancel()

	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, Draft{}, c.Draft())
	assert.Empty(t, rec.Requests())

	require.True(t, c.Open(1))
	assert.False(t, c.CanConfirm(1), "reopening starts from an empty draft")
}

func TestController_SetAddressOptions(t *testing.T) {
	c, _ := newTestController(t)
	titling := []model.Option{{Key: "addr-9", Label: "1 Barrett Way, Scottsdale, AZ 85260"}}

	require.True(t, c.Open(1))
	require.NoError(t, c.SetAddress("address1"))

	c.SetAddressOptions(titling)
	assert.Equal(t, titling, c.Addresses())
	assert.Empty(t, c.Draft().Address.Key, "address no longer offered is dropped")
	require.NoError(t, c.SetAddress("addr-9"))

	c.SetAddressOptions(nil)
	assert.Equal(t, model.DefaultAddresses, c.Addresses())
}

func TestController_ConfiguredAddressFallback(t *testing.T) {
	configured := []model.Option{{Key: "yard", Label: "Auction Yard, Scottsdale, AZ 85258"}}
	c, _ := newTestController(t, WithAddresses(configured))

	c.SetAddressOptions([]model.Option{{Key: "addr-9", Label: "1 Barrett Way"}})
	c.SetAddressOptions(nil)
	assert.Equal(t, configured, c.Addresses())
}

func TestController_CustomCarriers(t *testing.T) {
	carriers := []model.Option{{Key: "inhouse", Label: "In-house Transport"}}
	c, _ := newTestController(t, WithCarriers(carriers))

	assert.Equal(t, carriers, c.Carriers())
	require.True(t, c.Open(1))
	assert.ErrorIs(t, c.SetCarrier("fedex"), ErrUnknownOption)
	assert.NoError(t, c.SetCarrier("inhouse"))
}

func TestController_NilSinkDiscards(t *testing.T) {
	c := NewController(nil)
	require.True(t, c.Open(1))
	require.NoError(t, c.SetAddress("address1"))
	require.NoError(t, c.SetCarrier("uship"))

	req, ok := c.Confirm(context.Background(), "acct", testItems(), decimal.Zero)
	assert.True(t, ok)
	assert.NotEmpty(t, req.ID)
}

func TestSinks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	rec := NewRecorder(1)
	var called int
	multi := NewMultiSink(NewLogSink(logger), rec, nil, SinkFunc(func(context.Context, model.DeliveryRequest) { called++ }))

	multi.Emit(context.Background(), model.DeliveryRequest{ID: "a", AccountID: "acct-1", Items: testItems()})
	multi.Emit(context.Background(), model.DeliveryRequest{ID: "b", AccountID: "acct-2"})

	assert.Equal(t, 2, called)
	assert.Contains(t, buf.String(), "delivery requested")
	assert.Contains(t, buf.String(), "request_id=a")

	require.Len(t, rec.Requests(), 1, "limit keeps the newest")
	_, ok := rec.Find("a")
	assert.False(t, ok)
	last, ok := rec.Last("acct-2")
	require.True(t, ok)
	assert.Equal(t, "b", last.ID)
	_, ok = rec.Last("acct-1")
	assert.False(t, ok)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "Idle", StateIdle.String())
	assert.Equal(t, "Reviewing", StateReviewing.String())
	assert.Equal(t, "Unknown(7)", State(7).String())
}

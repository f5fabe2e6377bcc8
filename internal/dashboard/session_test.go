package dashboard

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/Veraticus/cashiering/internal/common"
	"github.com/Veraticus/cashiering/internal/consignment"
	"github.com/Veraticus/cashiering/internal/delivery"
	"github.com/Veraticus/cashiering/internal/model"
	"github.com/Veraticus/cashiering/internal/testutil"
	"github.com/Veraticus/cashiering/internal/tui/viewmodel"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const account = "acct-1"

func newLoadedSession(t *testing.T) (*Session, *testutil.FakeRepository, *delivery.Recorder) {
	t.Helper()
	repo := testutil.NewFakeRepository()
	repo.Items[account] = testutil.SampleItems()
	repo.Carts[account] = model.Cart{ID: "cart-1", AccountID: account, EventName: "Scottsdale 2024", Open: true}

	rec := delivery.NewRecorder(0)
	s := NewSession(account, repo, WithDelivery(delivery.NewController(rec)))
	s.Load(context.Background())
	require.NoError(t, s.LoadError())
	return s, repo, rec
}

func viewKeys(items []model.ConsignmentItem) []string {
	keys := make([]string, 0, len(items))
	for _, it := range items {
		keys = append(keys, it.Key)
	}
	return keys
}

func TestSession_DefaultsShowSalesCompleted(t *testing.T) {
	s, _, _ := newLoadedSession(t)

	assert.Equal(t, consignment.DefaultViewParams(), s.Params())
	assert.Empty(t, s.View())
	assert.Equal(t, "Scottsdale 2024", s.Cart().EventName)
}

func TestSession_Pivots(t *testing.T) {
	s, _, _ := newLoadedSession(t)

	tests := []struct {
		pivot consignment.Pivot
		want  []string
	}{
		{pivot: consignment.PivotBoughtVehicles, want: []string{"1"}},
		{pivot: consignment.PivotSoldVehicles, want: []string{"2"}},
		{pivot: consignment.PivotUnsoldVehicles, want: []string{"3"}},
		{pivot: consignment.PivotBoughtAutomobilia, want: []string{"4"}},
		{pivot: consignment.PivotSoldAutomobilia, want: []string{"6"}},
		{pivot: consignment.PivotUnsoldAutomobilia, want: []string{"7"}},
		{pivot: consignment.PivotAll, want: []string{"2", "1", "3", "4", "6", "7", "5"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.pivot), func(t *testing.T) {
			s.SetPivot(tt.pivot)
			assert.Equal(t, tt.want, viewKeys(s.View()))
		})
	}
}

func TestSession_SelectionSurvivesViewChanges(t *testing.T) {
	s, _, _ := newLoadedSession(t)
	s.SetPivot(consignment.PivotAll)

	selected, err := s.Toggle("4")
	require.NoError(t, err)
	require.True(t, selected)

	s.SetSearch("shelby")
	s.SetFilter(consignment.FilterVehicle)
	s.SetSort(consignment.SortPriceDesc)
	s.SetPivot(consignment.PivotSoldVehicles)
	assert.NotContains(t, viewKeys(s.View()), "4")
	assert.True(t, s.IsSelected("4"))

	s.SetParams(consignment.ViewParams{Pivot: consignment.PivotAll})
	assert.Contains(t, viewKeys(s.View()), "4")
	assert.True(t, s.IsSelected("4"))
	assert.Equal(t, 1, s.SelectedCount())
}

func TestSession_ToggleUnknownItem(t *testing.T) {
	s, _, _ := newLoadedSession(t)

	_, err := s.Toggle("nope")
	assert.ErrorIs(t, err, ErrUnknownItem)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Zero(t, s.SelectedCount())
}

func TestSession_TotalsPrecedence(t *testing.T) {
	s, _, _ := newLoadedSession(t)
	s.SetPivot(consignment.PivotSoldAutomobilia)

	totals := s.Totals()
	assert.False(t, totals.FromSelection)
	assert.True(t, decimal.NewFromInt(1000).Equal(totals.TotalOwed))

	_, err := s.Toggle("1")
	require.NoError(t, err)
	_, err = s.Toggle("2")
	require.NoError(t, err)

	totals = s.Totals()
	assert.True(t, totals.FromSelection)
	assert.Equal(t, 2, totals.ItemCount)
	assert.True(t, decimal.NewFromInt(165100+76600).Equal(totals.TotalOwed), "hidden selected items still total")

	s.ClearSelection()
	assert.False(t, s.Totals().FromSelection)
}

func TestSession_SelectedItemsUseRepositoryOrder(t *testing.T) {
	s, _, _ := newLoadedSession(t)
	for _, key := range []string{"6", "2", "4"} {
		_, err := s.Toggle(key)
		require.NoError(t, err)
	}
	s.SetPivot(consignment.PivotAll)
	s.SetSort(consignment.SortNameDesc)

	assert.Equal(t, []string{"2", "4", "6"}, viewKeys(s.SelectedItems()))
}

func TestSession_FetchFailure(t *testing.T) {
	s, repo, _ := newLoadedSession(t)
	_, err := s.Toggle("2")
	require.NoError(t, err)

	repo.SetItemsErr(errors.New("crm unavailable"))
	s.Load(context.Background())

	require.Error(t, s.LoadError())
	assert.Empty(t, s.Items())
	assert.Zero(t, s.SelectedCount())
	s.SetPivot(consignment.PivotAll)
	assert.Empty(t, s.View())

	totals := s.Totals()
	assert.True(t, totals.TotalOwed.IsZero())
	assert.True(t, totals.TotalHammerPrice.IsZero())
	assert.True(t, totals.TotalFees.IsZero())
	assert.True(t, consignment.PlaceholderBidderDeposit.Equal(totals.BidderDeposit))

	snap := s.Snapshot()
	assert.Equal(t, viewmodel.StateError, snap.State)
	assert.NotEmpty(t, snap.LoadError)
	assert.Empty(t, snap.Items)
}

func TestSession_RefreshClearsSelection(t *testing.T) {
	s, _, _ := newLoadedSession(t)
	_, err := s.Toggle("2")
	require.NoError(t, err)
	require.True(t, s.OpenDelivery())

	s.Load(context.Background())

	assert.False(t, s.IsSelected("2"), "same key after refresh is not reselected")
	assert.Equal(t, delivery.StateIdle, s.Delivery().State())
}

func TestSession_LoadingKeepsPreviousList(t *testing.T) {
	s, _, _ := newLoadedSession(t)
	s.SetPivot(consignment.PivotAll)
	before := len(s.View())

	s.BeginLoad()

	assert.True(t, s.Loading())
	assert.Len(t, s.View(), before)
	assert.Equal(t, viewmodel.StateLoading, s.Snapshot().State)
}

func TestSession_NilRepository(t *testing.T) {
	s := NewSession(account, nil)
	s.Load(context.Background())

	assert.ErrorIs(t, s.LoadError(), common.ErrFetchFailed)
	assert.Empty(t, s.Items())
}

func TestSession_TitlingAddresses(t *testing.T) {
	repo := testutil.NewFakeRepository()
	repo.Items[account] = testutil.SampleItems()
	repo.Addresses[account] = []model.Address{
		{ID: "a1", Line1: "7400 E Butherus Dr", City: "Scottsdale", StateProvince: "AZ", PostalCode: "85260", Active: true},
		{ID: "a2", Line1: "Old Ranch Rd", City: "Tucson", StateProvince: "AZ", Active: false},
	}
	s := NewSession(account, repo)
	s.Load(context.Background())

	assert.Equal(t, []model.Option{{Key: "a1", Label: "7400 E Butherus Dr, Scottsdale, AZ 85260"}}, s.Delivery().Addresses())

	repo.AddressesErr = errors.New("boom")
	s.Load(context.Background())
	assert.Equal(t, model.DefaultAddresses, s.Delivery().Addresses())
	assert.NoError(t, s.LoadError(), "address failures do not fail the load")
}

func TestSession_FetchLogsThroughSessionLogger(t *testing.T) {
	repo := testutil.NewFakeRepository()
	repo.Items[account] = testutil.SampleItems()
	repo.CartErr = errors.New("cart service down")
	repo.AddressesErr = errors.New("address service down")
	repo.DetailErr = errors.New("detail service down")

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := NewSession(account, repo, WithLogger(logger))

	result := s.Fetch(context.Background())
	require.NoError(t, result.Err)
	assert.Len(t, result.Items, len(testutil.SampleItems()))
	s.Apply(result)

	item, ok := s.Item("2")
	require.True(t, ok)
	assert.Equal(t, item, s.FetchDetail(context.Background(), item))

	out := buf.String()
	assert.Contains(t, out, "cart service down")
	assert.Contains(t, out, "address service down")
	assert.Contains(t, out, "detail service down")
}

func TestSession_DeliveryWorkflow(t *testing.T) {
	s, _, rec := newLoadedSession(t)
	ctx := context.Background()

	assert.False(t, s.OpenDelivery(), "no selection")

	_, err := s.Toggle("2")
	require.NoError(t, err)
	_, err = s.Toggle("6")
	require.NoError(t, err)
	require.True(t, s.OpenDelivery())
	require.NoError(t, s.SetDeliveryAddress("address4"))

	_, ok := s.ConfirmDelivery(ctx)
	assert.False(t, ok, "carrier missing")
	assert.Equal(t, delivery.StateReviewing, s.Delivery().State())
	assert.Empty(t, rec.Requests())

	require.NoError(t, s.SetDeliveryCarrier("sherpa"))
	require.NoError(t, s.SetDeliveryComments("call on arrival"))
	req, ok := s.ConfirmDelivery(ctx)
	require.True(t, ok)

	assert.Equal(t, account, req.AccountID)
	assert.Equal(t, []string{"2", "6"}, req.ItemKeys())
	assert.Equal(t, "Sherpa Auto Transport", req.Carrier.Label)
	assert.Equal(t, "321 Maple Dr, Mesa, AZ 85201", req.Address.Label)
	assert.Equal(t, "call on arrival", req.Comments)
	assert.True(t, decimal.NewFromInt(76600+1000).Equal(req.TotalAmount))
	assert.Len(t, rec.Requests(), 1)

	assert.Equal(t, delivery.StateIdle, s.Delivery().State())
	assert.Equal(t, 2, s.SelectedCount(), "selection kept after confirm")
}

func TestSession_ConfirmAfterSelectionEmptied(t *testing.T) {
	s, _, rec := newLoadedSession(t)
	ctx := context.Background()

	_, err := s.Toggle("2")
	require.NoError(t, err)
	require.True(t, s.OpenDelivery())
	_, err = s.Toggle("2")
	require.NoError(t, err)
	require.NoError(t, s.SetDeliveryAddress("address1"))
	require.NoError(t, s.SetDeliveryCarrier("fedex"))

	assert.False(t, s.Snapshot().Delivery.CanConfirm)
	_, ok := s.ConfirmDelivery(ctx)
	assert.False(t, ok)
	assert.Equal(t, delivery.StateReviewing, s.Delivery().State())
	assert.Empty(t, rec.Requests())

	_, err = s.Toggle("2")
	require.NoError(t, err)
	assert.True(t, s.Snapshot().Delivery.CanConfirm)
	req, ok := s.ConfirmDelivery(ctx)
	require.True(t, ok)
	assert.Equal(t, []string{"2"}, req.ItemKeys())
	assert.Len(t, rec.Requests(), 1)
}

func TestSession_CancelDelivery(t *testing.T) {
	s, _, rec := newLoadedSession(t)
	_, err := s.Toggle("1")
	require.NoError(t, err)
	require.True(t, s.OpenDelivery())
	require.NoError(t, s.SetDeliveryCarrier("fedex"))

	s.CancelDelivery()

	assert.Equal(t, delivery.StateIdle, s.Delivery().State())
	assert.True(t, s.IsSelected("1"))
	assert.Empty(t, rec.Requests())
}

func TestSession_DetailItem(t *testing.T) {
	s, repo, _ := newLoadedSession(t)
	repo.Details["ci-2"] = model.ConsignmentItem{
		Vehicle: &model.VehicleDetail{Year: "1957", Make: "Chevrolet", Model: "Bel Air", VIN: "VC57K123456"},
		Seller:  &model.SellerDetail{Name: "Jane Consignor"},
	}

	item, err := s.DetailItem(context.Background(), "2")
	require.NoError(t, err)
	require.NotNil(t, item.Vehicle)
	assert.Equal(t, "1957 Chevrolet Bel Air", item.Vehicle.Title())
	assert.Equal(t, "Jane Consignor", item.Seller.Name)
	assert.Equal(t, "1957 Chevrolet Bel Air", item.Name, "list fields come from the loaded item")

	item, err = s.DetailItem(context.Background(), "3")
	require.NoError(t, err, "missing detail falls back to the loaded item")
	assert.Nil(t, item.Vehicle)

	_, err = s.DetailItem(context.Background(), "zzz")
	assert.ErrorIs(t, err, ErrUnknownItem)
}

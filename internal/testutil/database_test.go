package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/cashiering/internal/model"
	"github.com/Veraticus/cashiering/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestDB_SeedCart(t *testing.T) {
	db := SetupTestDB(t)
	cart := db.SeedCart("acc1", SampleItems())
	ctx := context.Background()

	got, err := db.Storage.FetchCart(ctx, "acc1")
	require.NoError(t, err)
	assert.Equal(t, cart.ID, got.ID)

	items, err := db.Storage.FetchItems(ctx, "acc1")
	require.NoError(t, err)
	require.Len(t, items, len(SampleItems()))
	for i, want := range SampleItems() {
		assert.Equal(t, want.ID, items[i].Key)
		assert.Equal(t, want.Name, items[i].Name)
		assert.True(t, want.Total.Equal(items[i].Total), "total of %s", want.Name)
	}
}

func TestTestDB_WithTransactionRollsBack(t *testing.T) {
	db := SetupTestDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := db.WithTransaction(func(tx service.Transaction) error {
		if err := tx.SaveAccount(ctx, &model.Account{ID: "acc1", Name: "Temp"}); err != nil {
			return err
		}
		return boom
	}, true)
	require.ErrorIs(t, err, boom)

	accounts, err := db.Storage.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

package consignment

import (
	"github.com/Veraticus/cashiering/internal/model"
	"github.com/shopspring/decimal"
)

func item(key string, tx model.TransactionType, ct model.ConsignType, invoiced bool, hammer int64, name string) model.ConsignmentItem {
	return model.ConsignmentItem{
		Key:             key,
		ID:              "ci-" + key,
		Name:            name,
		Lot:             "L" + key,
		TransactionType: tx,
		ConsignType:     ct,
		Invoiced:        invoiced,
		HammerPrice:     decimal.NewFromInt(hammer),
	}
}

func keys(items []model.ConsignmentItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Key)
	}
	return out
}

// fixture covers every bucket plus the purchased, uninvoiced automobilia that falls in none.
func fixture() []model.ConsignmentItem {
	return []model.ConsignmentItem{
		item("1", model.TransactionPurchase, model.ConsignVehicle, false, 100, "Alpha"),
		item("2", model.TransactionSale, model.ConsignVehicle, true, 50, "Beta"),
		item("3", model.TransactionSale, model.ConsignVehicle, false, 75, "Gamma"),
		item("4", model.TransactionPurchase, model.ConsignAutomobilia, true, 20, "Delta sign"),
		item("5", model.TransactionPurchase, model.ConsignAutomobilia, false, 30, "Epsilon pump"),
		item("6", model.TransactionSale, model.ConsignAutomobilia, true, 40, "Zeta clock"),
		item("7", model.TransactionSale, model.ConsignAutomobilia, false, 10, "Eta poster"),
		item("8", model.TransactionPurchase, model.ConsignVehicle, true, 200, "Theta"),
	}
}

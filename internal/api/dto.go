package api

import (
	"time"

	"github.com/Veraticus/cashiering/internal/consignment"
	"github.com/Veraticus/cashiering/internal/model"
	"github.com/Veraticus/cashiering/internal/tui/viewmodel"
)

// viewRequest changes any subset of the four view parameters.
type viewRequest struct {
	Pivot  *string `json:"pivot"`
	Search *string `json:"search"`
	Filter *string `json:"filter"`
	Sort   *string `json:"sort"`
}

func (v viewRequest) apply(params consignment.ViewParams) consignment.ViewParams {
	if v.Pivot != nil {
		params.Pivot = consignment.Pivot(*v.Pivot)
	}
	if v.Search != nil {
		params.Search = *v.Search
	}
	if v.Filter != nil {
		params.Filter = consignment.FilterOption(*v.Filter)
	}
	if v.Sort != nil {
		params.Sort = consignment.SortOption(*v.Sort)
	}
	return params
}

// deliveryPatch edits the delivery draft.
type deliveryPatch struct {
	Address  *string `json:"address"`
	Carrier  *string `json:"carrier"`
	Comments *string `json:"comments"`
}

type toggleResponse struct {
	Dashboard viewmodel.DashboardView `json:"dashboard"`
	Key       string                  `json:"key"`
	Selected  bool                    `json:"selected"`
}

type optionDTO struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

type deliveryResponse struct {
	RequestedAt time.Time `json:"requested_at"`
	ID          string    `json:"id"`
	AccountID   string    `json:"account_id"`
	Comments    string    `json:"comments"`
	TotalAmount string    `json:"total_amount"`
	ManifestURL string    `json:"manifest_url"`
	Address     optionDTO `json:"address"`
	Carrier     optionDTO `json:"carrier"`
	ItemKeys    []string  `json:"item_keys"`
}

func toDeliveryResponse(req model.DeliveryRequest) deliveryResponse {
	return deliveryResponse{
		RequestedAt: req.RequestedAt,
		ID:          req.ID,
		AccountID:   req.AccountID,
		Comments:    req.Comments,
		TotalAmount: consignment.FormatCurrency(req.TotalAmount),
		ManifestURL: "/deliveries/" + req.ID + "/manifest.pdf",
		Address:     optionDTO{Key: req.Address.Key, Label: req.Address.Label},
		Carrier:     optionDTO{Key: req.Carrier.Key, Label: req.Carrier.Label},
		ItemKeys:    req.ItemKeys(),
	}
}

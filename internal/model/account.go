package model

// Account is a bidder or consignor account.
type Account struct {
	ID                      string
	Name                    string
	Phone                   string
	Email                   string
	BillingAddress          string
	TaxID                   string
	TaxIDState              string
	TaxIDExpiration         string
	DealerLicenseExpiration string
}

// SellerDetail returns the account as the seller shown on an item.
func (a Account) SellerDetail() *SellerDetail {
	return &SellerDetail{
		AccountID:               a.ID,
		Name:                    a.Name,
		Phone:                   a.Phone,
		Email:                   a.Email,
		Address:                 a.BillingAddress,
		TaxID:                   a.TaxID,
		TaxIDState:              a.TaxIDState,
		TaxIDExpiration:         a.TaxIDExpiration,
		DealerLicenseExpiration: a.DealerLicenseExpiration,
	}
}

// CartItem is the stored form of one consignment line in a cart.
type CartItem struct {
	ID               string
	CartID           string
	VehicleID        string
	SellerAccountID  string
	Name             string
	Lot              string
	ImageURL         string
	StageLabel       string
	Comments         string
	TransactionType  TransactionType
	ConsignType      ConsignType
	HammerPrice      string
	Commission       string
	DocumentationFee string
	TaxFee           string
	Total            string
	Invoiced         bool
	Ship             bool
	Drive            bool
}

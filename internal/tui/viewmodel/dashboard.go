package viewmodel

// DashboardView is everything the dashboard shows for one account.
type DashboardView struct {
	AccountID       string       `json:"account_id"`
	EventName       string       `json:"event_name,omitempty"`
	LoadError       string       `json:"load_error,omitempty"`
	Search          string       `json:"search"`
	Filter          string       `json:"filter"`
	Sort            string       `json:"sort"`
	Pivot           string       `json:"pivot"`
	Tabs            []TabView    `json:"tabs"`
	Items           []ItemView   `json:"items"`
	Totals          TotalsView   `json:"totals"`
	Delivery        DeliveryView `json:"delivery"`
	SelectedCount   int          `json:"selected_count"`
	TotalCount      int          `json:"total_count"`
	State           AppState     `json:"state"`
	CanOpenDelivery bool         `json:"can_open_delivery"`
}

// TabView is one pivot tab with its item count.
type TabView struct {
	Pivot  string `json:"pivot"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
	Active bool   `json:"active"`
}

// ItemView is one row of the item list.
type ItemView struct {
	Key             string `json:"key"`
	Name            string `json:"name"`
	Lot             string `json:"lot"`
	Stage           string `json:"stage"`
	ConsignType     string `json:"consign_type"`
	TransactionType string `json:"transaction_type"`
	ImageURL        string `json:"image_url,omitempty"`
	HammerPrice     string `json:"hammer_price"`
	Fees            string `json:"fees"`
	Total           string `json:"total"`
	IsSelected      bool   `json:"is_selected"`
	Invoiced        bool   `json:"invoiced"`
}

// TotalsView is the totals panel.
type TotalsView struct {
	TotalOwed        string `json:"total_owed"`
	TotalHammerPrice string `json:"total_hammer_price"`
	TotalFees        string `json:"total_fees"`
	BidderDeposit    string `json:"bidder_deposit"`
	EscrowAmount     string `json:"escrow_amount"`
	Credits          string `json:"credits"`
	ItemCount        int    `json:"item_count"`
	FromSelection    bool   `json:"from_selection"`
}

// OptionView is one choice in an address or carrier dropdown.
type OptionView struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// DeliveryView is the delivery review panel.
type DeliveryView struct {
	State      string       `json:"state"`
	Comments   string       `json:"comments"`
	Addresses  []OptionView `json:"addresses"`
	Carriers   []OptionView `json:"carriers"`
	Items      []ItemView   `json:"items,omitempty"`
	Breakdown  TotalsView   `json:"breakdown"`
	Open       bool         `json:"open"`
	CanConfirm bool         `json:"can_confirm"`
}

// DetailView is the item detail panel.
type DetailView struct {
	Item      ItemView        `json:"item"`
	Vehicle   []DetailField   `json:"vehicle,omitempty"`
	Seller    []DetailField   `json:"seller,omitempty"`
	Breakdown []DetailField   `json:"breakdown"`
	Total     string          `json:"total"`
	Flags     map[string]bool `json:"flags"`
}

// DetailField is one label/value line of the detail panel.
type DetailField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ActiveTab returns the active tab, if any.
func (v DashboardView) ActiveTab() (TabView, bool) {
	for _, tab := range v.Tabs {
		if tab.Active {
			return tab, true
		}
	}
	return TabView{}, false
}

// IsEmpty returns true if the list shows no items.
func (v DashboardView) IsEmpty() bool {
	return len(v.Items) == 0
}

// HasFilter returns true if search or a type filter narrows the list.
func (v DashboardView) HasFilter() bool {
	return v.Search != "" || (v.Filter != "" && v.Filter != "all")
}

// SelectedItems returns the visible rows that are selected.
func (v DashboardView) SelectedItems() []ItemView {
	var selected []ItemView
	for _, item := range v.Items {
		if item.IsSelected {
			selected = append(selected, item)
		}
	}
	return selected
}

// Selected returns the selected option, if any.
func Selected(options []OptionView) (OptionView, bool) {
	for _, opt := range options {
		if opt.Selected {
			return opt, true
		}
	}
	return OptionView{}, false
}

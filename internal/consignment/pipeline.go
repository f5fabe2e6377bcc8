package consignment

import (
	"slices"
	"strings"

	"github.com/Veraticus/cashiering/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FilterOption restricts the view to one consign type.
type FilterOption string

// Filter options. Unknown values behave like FilterAll.
const (
	FilterAll         FilterOption = "all"
	FilterVehicle     FilterOption = "vehicle"
	FilterAutomobilia FilterOption = "automobilia"
)

// FilterOptions lists the filter choices in display order.
var FilterOptions = []FilterOption{FilterAll, FilterVehicle, FilterAutomobilia}

// Label returns the dropdown text for the filter.
func (f FilterOption) Label() string {
	switch f {
	case FilterVehicle:
		return "Vehicle"
	case FilterAutomobilia:
		return "Automobilia"
	default:
		return "All"
	}
}

// SortOption orders the view. The empty value keeps the incoming order.
type SortOption string

// Sort options.
const (
	SortNone      SortOption = ""
	SortPriceAsc  SortOption = "priceAsc"
	SortPriceDesc SortOption = "priceDesc"
	SortNameAsc   SortOption = "nameAsc"
	SortNameDesc  SortOption = "nameDesc"
)

// SortOptions lists the sort choices in display order.
var SortOptions = []SortOption{SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc}

// Label returns the dropdown text for the sort option.
func (s SortOption) Label() string {
	switch s {
	case SortPriceAsc:
		return "Price (Low to High)"
	case SortPriceDesc:
		return "Price (High to Low)"
	case SortNameAsc:
		return "Name (A-Z)"
	case SortNameDesc:
		return "Name (Z-A)"
	default:
		return "Unsorted"
	}
}

// ViewParams are the four presentation inputs of the view pipeline.
type ViewParams struct {
	Pivot  Pivot
	Search string
	Filter FilterOption
	Sort   SortOption
}

// DefaultViewParams returns the parameters a fresh dashboard starts with.
func DefaultViewParams() ViewParams {
	return ViewParams{
		Pivot:  PivotSalesCompleted,
		Filter: FilterAll,
		Sort:   SortNameAsc,
	}
}

// DeriveView runs pivot selection, search, type filter and sort, in that order.
// The result never aliases items, so callers may keep both.
func DeriveView(items []model.ConsignmentItem, params ViewParams) []model.ConsignmentItem {
	return DeriveViewFrom(items, Categorize(items), params)
}

// DeriveViewFrom is DeriveView with a precomputed categorization of items.
func DeriveViewFrom(items []model.ConsignmentItem, cats Categories, params ViewParams) []model.ConsignmentItem {
	view := SelectPivot(items, cats, params.Pivot)
	view = Search(view, params.Search)
	view = FilterByType(view, params.Filter)
	return SortItems(view, params.Sort)
}

// SelectPivot returns the bucket for the pivot, or all items for an unknown pivot.
func SelectPivot(items []model.ConsignmentItem, cats Categories, p Pivot) []model.ConsignmentItem {
	bucket, ok := cats.Bucket(p)
	if !ok {
		bucket = items
	}
	return slices.Clone(bucket)
}

// Search keeps items whose name or lot contains query, ignoring case.
func Search(items []model.ConsignmentItem, query string) []model.ConsignmentItem {
	if query == "" {
		return items
	}

	needle := strings.ToLower(query)
	var matched []model.ConsignmentItem
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), needle) ||
			strings.Contains(strings.ToLower(item.Lot), needle) {
			matched = append(matched, item)
		}
	}
	return matched
}

// FilterByType keeps items of the consign type named by filter.
func FilterByType(items []model.ConsignmentItem, filter FilterOption) []model.ConsignmentItem {
	var want model.ConsignType
	switch filter {
	case FilterVehicle:
		want = model.ConsignVehicle
	case FilterAutomobilia:
		want = model.ConsignAutomobilia
	default:
		return items
	}

	var kept []model.ConsignmentItem
	for _, item := range items {
		if item.ConsignType == want {
			kept = append(kept, item)
		}
	}
	return kept
}

// SortItems orders items in place with a stable sort and returns them.
// Ties keep their incoming relative order.
func SortItems(items []model.ConsignmentItem, sortBy SortOption) []model.ConsignmentItem {
	switch sortBy {
	case SortPriceAsc:
		slices.SortStableFunc(items, func(a, b model.ConsignmentItem) int {
			return a.HammerPrice.Cmp(b.HammerPrice)
		})
	case SortPriceDesc:
		slices.SortStableFunc(items, func(a, b model.ConsignmentItem) int {
			return b.HammerPrice.Cmp(a.HammerPrice)
		})
	case SortNameAsc:
		// Collators keep internal buffers; one per call keeps DeriveView safe to share.
		c := collate.New(language.English)
		slices.SortStableFunc(items, func(a, b model.ConsignmentItem) int {
			return c.CompareString(a.Name, b.Name)
		})
	case SortNameDesc:
		c := collate.New(language.English)
		slices.SortStableFunc(items, func(a, b model.ConsignmentItem) int {
			return c.CompareString(b.Name, a.Name)
		})
	}
	return items
}

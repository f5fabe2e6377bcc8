package dashboard

import (
	"time"

	"github.com/Veraticus/cashiering/internal/export"
)

// Report freezes the current view and its totals for export.
func (s *Session) Report(now time.Time) export.Report {
	view := s.View()
	selected := make(map[string]bool, s.selection.Count())
	for _, key := range s.selection.Keys(s.items) {
		selected[key] = true
	}

	r := export.Report{
		GeneratedAt: now,
		Selected:    selected,
		AccountID:   s.accountID,
		Params:      s.params,
		Items:       view,
		Totals:      s.Totals(),
	}
	if s.cart != nil {
		r.EventName = s.cart.EventName
	}
	return r
}

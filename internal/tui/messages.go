package tui

import (
	"github.com/Veraticus/cashiering/internal/dashboard"
	"github.com/Veraticus/cashiering/internal/model"
)

// Data loading messages.
type itemsLoadedMsg struct {
	result dashboard.LoadResult
}

type detailLoadedMsg struct {
	key  string
	item model.ConsignmentItem
}

// Async operation results.
type exportDoneMsg struct {
	err    error
	path   string
	format string
}

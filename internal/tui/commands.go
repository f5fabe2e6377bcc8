package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Veraticus/cashiering/internal/export"
	"github.com/Veraticus/cashiering/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

// fetchItems loads the account's cart off the event loop.
func (m Model) fetchItems() tea.Cmd {
	ctx, session, timeout := m.ctx, m.session, m.config.FetchTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		return itemsLoadedMsg{result: session.Fetch(ctx)}
	}
}

// fetchDetail attaches vehicle and seller records to a copy of the item.
func (m Model) fetchDetail(key string, item model.ConsignmentItem) tea.Cmd {
	ctx, session, timeout := m.ctx, m.session, m.config.FetchTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		return detailLoadedMsg{key: key, item: session.FetchDetail(ctx, item)}
	}
}

// exportView writes the current view as an xlsx workbook or a pdf report.
func (m Model) exportView(format string) tea.Cmd {
	report := m.session.Report(m.config.Now())
	dir := m.config.ExportDir
	return func() tea.Msg {
		data, err := export.Render(report, format)
		if err != nil {
			return exportDoneMsg{format: format, err: err}
		}

		path := filepath.Join(dir, report.FileName(format))
		if err := os.WriteFile(path, data, 0600); err != nil {
			return exportDoneMsg{format: format, err: fmt.Errorf("failed to write export: %w", err)}
		}
		return exportDoneMsg{format: format, path: path}
	}
}

package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameRecorder writes every rendered frame and the message that produced it
// to a directory, for debugging layouts.
type FrameRecorder struct {
	logFile  *os.File
	frameDir string
	frameNum int
}

// NewFrameRecorder creates a recorder writing under dir. It returns nil when
// dir is empty or cannot be created; a nil recorder records nothing.
func NewFrameRecorder(dir string) *FrameRecorder {
	if dir == "" {
		return nil
	}

	recordDir := filepath.Join(dir, fmt.Sprintf("cashier-frames-%d", time.Now().Unix()))
	if err := os.MkdirAll(recordDir, 0750); err != nil {
		return nil
	}

	logFile, err := os.Create(filepath.Join(recordDir, "frames.log")) // #nosec G304 -- constructed path
	if err != nil {
		return nil
	}

	r := &FrameRecorder{logFile: logFile, frameDir: recordDir}
	r.Log("Frame recorder started at %s", recordDir)
	return r
}

// Record captures the model after msg was applied.
func (r *FrameRecorder) Record(m Model, msg tea.Msg) {
	if r == nil {
		return
	}
	r.frameNum++

	snap := m.snapshot
	r.Log("\n=== Frame %d ===", r.frameNum)
	r.Log("Message: %T", msg)
	r.Log("Mode: %s  Pivot: %s  Search: %q  Filter: %s  Sort: %s",
		m.mode, snap.Pivot, snap.Search, snap.Filter, snap.Sort)
	r.Log("Visible: %d  Selected: %d  Delivery: %s", len(snap.Items), snap.SelectedCount, snap.Delivery.State)

	framePath := filepath.Join(r.frameDir, fmt.Sprintf("frame-%04d.txt", r.frameNum))
	if err := os.WriteFile(framePath, []byte(m.View()), 0600); err != nil {
		r.Log("Error saving frame: %v", err)
	}
}

// Log writes a line to the frame log.
func (r *FrameRecorder) Log(format string, args ...any) {
	if r == nil || r.logFile == nil {
		return
	}
	_, _ = fmt.Fprintf(r.logFile, format+"\n", args...)
}

// Close closes the frame log.
func (r *FrameRecorder) Close() {
	if r == nil || r.logFile == nil {
		return
	}
	r.Log("Recording complete. %d frames captured.", r.frameNum)
	_ = r.logFile.Close()
}

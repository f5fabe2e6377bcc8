// Package viewmodel holds the plain data the dashboard renders. Views carry
// preformatted strings so every presentation surface shows the same text.
package viewmodel

import (
	"errors"
	"fmt"
)

// AppState represents the overall dashboard state.
type AppState int

const (
	// StateLoading indicates the item list is being fetched.
	StateLoading AppState = iota
	// StateReady indicates the dashboard is showing a loaded item list.
	StateReady
	// StateReviewing indicates the delivery review panel is open.
	StateReviewing
	// StateError indicates the last load failed and an empty list is shown.
	StateError
)

// String returns a string representation of the app state.
func (s AppState) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StateReady:
		return "Ready"
	case StateReviewing:
		return "Reviewing"
	case StateError:
		return "Error"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// MarshalText renders the state by name.
func (s AppState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ErrUnknownState is returned when decoding a state name that is not recognized.
var ErrUnknownState = errors.New("unknown app state")

// UnmarshalText parses a state name produced by MarshalText.
func (s *AppState) UnmarshalText(text []byte) error {
	for _, candidate := range []AppState{StateLoading, StateReady, StateReviewing, StateError} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownState, text)
}

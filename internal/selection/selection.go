// Package selection tracks which consignment items a clerk has checked.
//
// A Set is scoped to one loaded item list. It is keyed by item key and is
// independent of what the view currently shows, so hiding an item through
// search, filter, sort or pivot changes never deselects it.
package selection

import (
	"github.com/Veraticus/cashiering/internal/model"
)

// Set is the set of selected item keys. The zero value is an empty set.
type Set struct {
	keys map[string]struct{}
}

// New returns an empty selection.
func New() *Set {
	return &Set{keys: make(map[string]struct{})}
}

// Toggle flips the membership of key and reports whether it is now selected.
func (s *Set) Toggle(key string) bool {
	if s.keys == nil {
		s.keys = make(map[string]struct{})
	}
	if _, ok := s.keys[key]; ok {
		delete(s.keys, key)
		return false
	}
	s.keys[key] = struct{}{}
	return true
}

// Clear empties the set.
func (s *Set) Clear() {
	clear(s.keys)
}

// IsSelected reports whether key is selected.
func (s *Set) IsSelected(key string) bool {
	_, ok := s.keys[key]
	return ok
}

// Count returns the number of selected keys.
func (s *Set) Count() int {
	return len(s.keys)
}

// Items returns the selected items of all in the order they appear in all,
// not in view order. Selected keys missing from all are skipped.
func (s *Set) Items(all []model.ConsignmentItem) []model.ConsignmentItem {
	if len(s.keys) == 0 {
		return nil
	}
	selected := make([]model.ConsignmentItem, 0, len(s.keys))
	for _, item := range all {
		if _, ok := s.keys[item.Key]; ok {
			selected = append(selected, item)
		}
	}
	return selected
}

// Keys returns the selected keys in the order they appear in all.
func (s *Set) Keys(all []model.ConsignmentItem) []string {
	keys := make([]string, 0, len(s.keys))
	for _, item := range s.Items(all) {
		keys = append(keys, item.Key)
	}
	return keys
}

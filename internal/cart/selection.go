package cart

import (
	"github.com/hatbazar/marketplace-api/internal/domain"
	"github.com/hatbazar/marketplace-api/internal/pricing"
)

// Selection tracks which cart lines are chosen for checkout. Derived
// aggregates are pure functions of (lines, selection); the selection itself
// carries no pricing state.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection creates an empty selection
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Toggle flips the selected state of one line
func (s *Selection) Toggle(id string) {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// IsSelected reports whether a line id is currently selected
func (s *Selection) IsSelected(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// SelectAll selects or deselects every given line. Calling it twice with the
// same arguments yields the same selected set as calling it once.
func (s *Selection) SelectAll(lines []domain.CartLine, selected bool) {
	if !selected {
		s.ids = make(map[string]struct{})
		return
	}
	s.ids = make(map[string]struct{}, len(lines))
	for _, line := range lines {
		s.ids[line.ID] = struct{}{}
	}
}

// AllSelected reports true only when every line is selected. Partial
// selection counts as "not all selected".
func (s *Selection) AllSelected(lines []domain.CartLine) bool {
	if len(lines) == 0 {
		return false
	}
	for _, line := range lines {
		if !s.IsSelected(line.ID) {
			return false
		}
	}
	return true
}

// Selected returns the subset of lines currently selected, in input order
func (s *Selection) Selected(lines []domain.CartLine) []domain.CartLine {
	selected := make([]domain.CartLine, 0, len(s.ids))
	for _, line := range lines {
		if s.IsSelected(line.ID) {
			selected = append(selected, line)
		}
	}
	return selected
}

// Summary holds the derived aggregates over the selected subset
type Summary struct {
	Subtotal  float64
	Savings   float64
	ItemCount int
}

// Summarize computes subtotal, savings and item count over the selected lines
func Summarize(lines []domain.CartLine, s *Selection) Summary {
	selected := s.Selected(lines)

	var count int
	for _, line := range selected {
		count += line.Quantity
	}

	return Summary{
		Subtotal:  pricing.Subtotal(selected),
		Savings:   pricing.ComputeSavings(selected),
		ItemCount: count,
	}
}

package model

// Selection is the set of seat identifiers the user has toggled on for the
// trip in progress. Iteration order is first-selected order, which is also
// the order passenger drafts are evaluated in.
//
// A Selection never admits a booked seat; callers supply the booked predicate
// so the set itself stays independent of seat map generation.
type Selection struct {
	ids []string
}

func NewSelection() *Selection {
	return &Selection{}
}

// Toggle adds the identifier if absent and removes it if present. Booked
// seats are rejected silently: the UI disables them, but the operation must
// stay safe when invoked anyway. Returns true if the selection changed.
func (s *Selection) Toggle(id string, booked func(string) bool) bool {
	if booked != nil && booked(id) {
		return false
	}
	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return true
		}
	}
	s.ids = append(s.ids, id)
	return true
}

// ReplaceAll bulk-sets the selection, excluding booked identifiers rather
// than failing the whole operation. Duplicates keep their first position.
func (s *Selection) ReplaceAll(ids []string, booked func(string) bool) {
	s.ids = s.ids[:0]
	for _, id := range ids {
		if booked != nil && booked(id) {
			continue
		}
		if s.Contains(id) {
			continue
		}
		s.ids = append(s.ids, id)
	}
}

func (s *Selection) Contains(id string) bool {
	for _, existing := range s.ids {
		if existing == id {
			return true
		}
	}
	return false
}

// Seats returns a copy of the selected identifiers in selection order.
func (s *Selection) Seats() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *Selection) Len() int {
	return len(s.ids)
}

func (s *Selection) Clear() {
	s.ids = s.ids[:0]
}

// Total is the pre-tax fare for the current selection.
func (s *Selection) Total(trip *Trip) int {
	if trip == nil {
		return 0
	}
	return trip.FarePerSeat * len(s.ids)
}

package engine

import "sort"

// Selection is the set of checked member IDs. The zero value is not usable;
// create one with NewSelection. Selection is not safe for concurrent use.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection returns an empty Selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// Toggle flips the checkbox of id and reports whether it is now selected.
func (s *Selection) Toggle(id string) bool {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Has reports whether id is selected.
func (s *Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Count returns the number of selected IDs.
func (s *Selection) Count() int {
	return len(s.ids)
}

// Clear unselects everything.
func (s *Selection) Clear() {
	clear(s.ids)
}

// SelectAll selects every member in members.
func (s *Selection) SelectAll(members []Member) {
	for _, m := range members {
		s.ids[m.ID] = struct{}{}
	}
}

// Remove unselects the given IDs.
func (s *Selection) Remove(ids ...string) {
	for _, id := range ids {
		delete(s.ids, id)
	}
}

// AllSelected reports whether every member is selected. It is false for an
// empty list.
func (s *Selection) AllSelected(members []Member) bool {
	if len(members) == 0 {
		return false
	}
	for _, m := range members {
		if !s.Has(m.ID) {
			return false
		}
	}
	return true
}

// TogglePage selects every member of the page, or unselects them all when
// the page is already fully selected.
func (s *Selection) TogglePage(members []Member) {
	if s.AllSelected(members) {
		for _, m := range members {
			s.Remove(m.ID)
		}
		return
	}
	s.SelectAll(members)
}

// IDs returns the selected IDs in ascending order.
func (s *Selection) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DeleteSelected returns a new slice without the selected members. The
// selection itself is left unchanged.
func DeleteSelected(members []Member, sel *Selection) []Member {
	out := make([]Member, 0, len(members))
	for _, m := range members {
		if sel != nil && sel.Has(m.ID) {
			continue
		}
		out = append(out, m)
	}
	return out
}

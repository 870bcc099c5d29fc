package engine

import "strings"

// Filter returns the members whose name, email or role contains search,
// compared case-insensitively. An empty search returns the input as is;
// otherwise matching rows are copied into a new slice.
func Filter(members []Member, search string) []Member {
	if search == "" {
		return members
	}

	needle := strings.ToLower(search)
	out := make([]Member, 0, len(members))
	for _, m := range members {
		if matches(m, needle) {
			out = append(out, m)
		}
	}
	return out
}

func matches(m Member, needle string) bool {
	return strings.Contains(strings.ToLower(m.Name), needle) ||
		strings.Contains(strings.ToLower(m.Email), needle) ||
		strings.Contains(strings.ToLower(m.Role), needle)
}

package engine

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sortable member fields.
const (
	SortFieldName  = "name"
	SortFieldEmail = "email"
)

// Sort directions. Anything other than SortAsc sorts descending.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Sorter defines the interface for ordering members.
type Sorter interface {
	// Sort returns members ordered by field and order.
	Sort(members []Member, field, order string) []Member
	// IsValidField checks if the given field name is valid for sorting.
	IsValidField(field string) bool
	// GetValidFields returns the valid field names in a stable order.
	GetValidFields() []string
}

// MemberSorter orders members with locale-aware collation.
type MemberSorter struct {
	validFields map[string]bool
	tag         language.Tag
}

// NewMemberSorter creates a MemberSorter using the root collation order.
func NewMemberSorter() *MemberSorter {
	return NewMemberSorterForLanguage(language.Und)
}

// NewMemberSorterForLanguage creates a MemberSorter collating for tag.
func NewMemberSorterForLanguage(tag language.Tag) *MemberSorter {
	return &MemberSorter{
		validFields: map[string]bool{
			SortFieldName:  true,
			SortFieldEmail: true,
		},
		tag: tag,
	}
}

// IsValidField checks if the field is valid for sorting.
func (s *MemberSorter) IsValidField(field string) bool {
	return s.validFields[field]
}

// GetValidFields returns all valid sort fields.
func (s *MemberSorter) GetValidFields() []string {
	fields := make([]string, 0, len(s.validFields))
	for field := range s.validFields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Sort returns a sorted copy of members. Equal keys keep their input order.
// An invalid or empty field returns members unchanged.
func (s *MemberSorter) Sort(members []Member, field, order string) []Member {
	if !s.IsValidField(field) {
		return members
	}

	sorted := make([]Member, len(members))
	copy(sorted, members)

	// Collators keep internal buffers and are not safe for concurrent use.
	col := collate.New(s.tag)
	key := sortKey(field)
	desc := order != SortAsc

	sort.SliceStable(sorted, func(i, j int) bool {
		c := col.CompareString(key(sorted[i]), key(sorted[j]))
		if desc {
			return c > 0
		}
		return c < 0
	})

	return sorted
}

func sortKey(field string) func(Member) string {
	if field == SortFieldEmail {
		return func(m Member) string { return m.Email }
	}
	return func(m Member) string { return m.Name }
}

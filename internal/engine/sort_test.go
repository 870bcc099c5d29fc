package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func names(members []Member) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.Name
	}
	return out
}

func TestMemberSorter_Fields(t *testing.T) {
	s := NewMemberSorter()
	assert.Equal(t, []string{"email", "name"}, s.GetValidFields())
	assert.True(t, s.IsValidField("name"))
	assert.False(t, s.IsValidField("role"))
	assert.False(t, s.IsValidField(""))
}

func TestMemberSorter_Sort(t *testing.T) {
	members := []Member{
		{ID: "1", Name: "charlie", Email: "c@x.io"},
		{ID: "2", Name: "Bob", Email: "z@x.io"},
		{ID: "3", Name: "alice", Email: "a@x.io"},
		{ID: "4", Name: "Émile", Email: "e@x.io"},
		{ID: "5", Name: "Eve", Email: "f@x.io"},
	}
	s := NewMemberSorter()

	tests := []struct {
		name  string
		field string
		order string
		want  []string
	}{
		{"name asc is case and accent aware", "name", "asc", []string{"alice", "Bob", "charlie", "Émile", "Eve"}},
		{"name desc", "name", "desc", []string{"Eve", "Émile", "charlie", "Bob", "alice"}},
		{"non-asc order sorts descending", "name", "down", []string{"Eve", "Émile", "charlie", "Bob", "alice"}},
		{"email asc", "email", "asc", []string{"alice", "charlie", "Émile", "Eve", "Bob"}},
		{"role is not sortable", "role", "asc", []string{"charlie", "Bob", "alice", "Émile", "Eve"}},
		{"empty field leaves order", "", "asc", []string{"charlie", "Bob", "alice", "Émile", "Eve"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(s.Sort(members, tt.field, tt.order)))
		})
	}

	assert.Equal(t, "charlie", members[0].Name, "input must not be reordered")
}

func TestMemberSorter_Stable(t *testing.T) {
	members := []Member{
		{ID: "1", Name: "Sam"},
		{ID: "2", Name: "Ann"},
		{ID: "3", Name: "Sam"},
		{ID: "4", Name: "Sam"},
	}

	asc := NewMemberSorter().Sort(members, "name", "asc")
	assert.Equal(t, []string{"2", "1", "3", "4"}, []string{asc[0].ID, asc[1].ID, asc[2].ID, asc[3].ID})

	desc := NewMemberSorter().Sort(members, "name", "desc")
	assert.Equal(t, []string{"1", "3", "4", "2"}, []string{desc[0].ID, desc[1].ID, desc[2].ID, desc[3].ID})
}

func TestMemberSorter_Language(t *testing.T) {
	members := []Member{
		{ID: "1", Name: "Zed"},
		{ID: "2", Name: "Örjan"},
		{ID: "3", Name: "Olle"},
	}

	assert.Equal(t, []string{"Olle", "Örjan", "Zed"}, names(NewMemberSorter().Sort(members, "name", "asc")))
	assert.Equal(t, []string{"Olle", "Zed", "Örjan"},
		names(NewMemberSorterForLanguage(language.Swedish).Sort(members, "name", "asc")))
}

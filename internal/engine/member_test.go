package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMember_UnmarshalJSON_ID(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantID string
	}{
		{"string id", `{"id":"7","name":"Ann"}`, "7"},
		{"numeric id", `{"id":42,"name":"Ann"}`, "42"},
		{"null id", `{"id":null,"name":"Ann"}`, ""},
		{"missing id", `{"name":"Ann"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Member
			require.NoError(t, json.Unmarshal([]byte(tt.input), &m))
			assert.Equal(t, tt.wantID, m.ID)
			assert.Equal(t, "Ann", m.Name)
		})
	}
}

func TestMember_UnmarshalJSON_BadID(t *testing.T) {
	var m Member
	err := json.Unmarshal([]byte(`{"id":{"nested":true}}`), &m)
	assert.Error(t, err)
}

func TestDecodeMembers(t *testing.T) {
	payload := `[
		{"id":"1","name":"Aaron Miles","email":"aaron@mailinator.com","role":"member"},
		{"id":"2","name":"Aishwarya Naik","email":"aishwarya@mailinator.com","role":"admin"}
	]`

	members, err := DecodeMembers([]byte(payload))
	require.NoError(t, err)
	assert.Equal(t, []Member{
		{ID: "1", Name: "Aaron Miles", Email: "aaron@mailinator.com", Role: "member"},
		{ID: "2", Name: "Aishwarya Naik", Email: "aishwarya@mailinator.com", Role: "admin"},
	}, members)
}

func TestDecodeMembers_Errors(t *testing.T) {
	_, err := DecodeMembers([]byte(`{"members":[]}`))
	assert.ErrorIs(t, err, ErrNotMemberList)

	_, err = DecodeMembers([]byte(`not json`))
	assert.ErrorIs(t, err, ErrInvalidMemberJSON)

	_, err = DecodeMembers([]byte(`[{"id":1,"name":`))
	assert.Error(t, err)
}

func TestDecodeMembers_EmptyArray(t *testing.T) {
	members, err := DecodeMembers([]byte(" [] "))
	require.NoError(t, err)
	assert.NotNil(t, members)
	assert.Empty(t, members)
}

func TestParseOutputFormat(t *testing.T) {
	for _, in := range []string{"table", "JSON", " ndjson "} {
		f, err := ParseOutputFormat(in)
		require.NoError(t, err, in)
		assert.True(t, f.IsValid())
	}

	_, err := ParseOutputFormat("yaml")
	assert.ErrorIs(t, err, ErrInvalidOutputFormat)
}

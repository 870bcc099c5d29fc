package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNotMemberList is returned when a payload is valid JSON but not an array.
var ErrNotMemberList = errors.New("member payload is not a JSON array")

// ErrInvalidMemberJSON is returned when a payload is not valid JSON at all.
var ErrInvalidMemberJSON = errors.New("member payload is not valid JSON")

// Member is one user record of the dataset.
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UnmarshalJSON accepts the id as either a JSON string or a JSON number.
func (m *Member) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID    json.RawMessage `json:"id"`
		Name  string          `json:"name"`
		Email string          `json:"email"`
		Role  string          `json:"role"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	id, err := decodeID(raw.ID)
	if err != nil {
		return err
	}

	*m = Member{ID: id, Name: raw.Name, Email: raw.Email, Role: raw.Role}
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("decoding member id: %w", err)
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("member id must be a string or number, got %s", raw)
	}
	return n.String(), nil
}

// DecodeMembers parses a JSON array of member records.
func DecodeMembers(data []byte) ([]Member, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		if !json.Valid(trimmed) {
			return nil, ErrInvalidMemberJSON
		}
		return nil, ErrNotMemberList
	}

	var members []Member
	if err := json.Unmarshal(trimmed, &members); err != nil {
		return nil, fmt.Errorf("decoding members: %w", err)
	}
	if members == nil {
		members = []Member{}
	}
	return members, nil
}

// OutputFormat selects how a derived view is written by RenderView.
type OutputFormat string

// Supported output formats.
const (
	OutputTable  OutputFormat = "table"
	OutputJSON   OutputFormat = "json"
	OutputNDJSON OutputFormat = "ndjson"
)

// ErrInvalidOutputFormat is returned by ParseOutputFormat for unknown names.
var ErrInvalidOutputFormat = errors.New("invalid output format")

// IsValid reports whether f is a supported format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputTable, OutputJSON, OutputNDJSON:
		return true
	default:
		return false
	}
}

// String returns the format name.
func (f OutputFormat) String() string {
	return string(f)
}

// ParseOutputFormat converts a case-insensitive name into an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q (use table, json or ndjson)", ErrInvalidOutputFormat, s)
	}
	return f, nil
}

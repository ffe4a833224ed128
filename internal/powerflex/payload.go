package powerflex

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pfxtools/seshis/internal/domain"
)

// PayloadError reports a top-level response shape the analyzer does not
// understand. The run cannot proceed past it.
type PayloadError struct {
	Got string
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("unexpected sessions payload: want an array or an object with a rows array, got %s", e.Got)
}

// Normalized holds the well-formed session records extracted from one API
// response. Total counts every entry the payload carried, including the
// entries that were dropped for not being JSON objects.
type Normalized struct {
	Sessions []domain.Session
	Total    int
}

// Valid is the number of records that survived normalization.
func (n *Normalized) Valid() int { return len(n.Sessions) }

// Dropped is the number of entries excluded during normalization.
func (n *Normalized) Dropped() int { return n.Total - len(n.Sessions) }

// Normalize extracts session records from a raw sessions response. The
// API returns either a bare array or a paginated envelope whose rows
// field holds the array; any other top-level shape is a *PayloadError.
// Entries that are not JSON objects, or whose fields cannot be decoded,
// are dropped silently but still counted in Total.
func Normalize(body []byte) (*Normalized, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, &PayloadError{Got: "an empty response"}
	}

	var entries []json.RawMessage
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("failed to decode sessions array: %w", err)
		}
	case '{':
		var envelope struct {
			Rows *[]json.RawMessage `json:"rows"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("failed to decode sessions envelope: %w", err)
		}
		if envelope.Rows == nil {
			return nil, &PayloadError{Got: "an object without a rows array"}
		}
		entries = *envelope.Rows
	default:
		return nil, &PayloadError{Got: describeJSON(trimmed)}
	}

	n := &Normalized{Total: len(entries)}
	for _, raw := range entries {
		entry := bytes.TrimSpace(raw)
		if len(entry) == 0 || entry[0] != '{' {
			continue
		}
		var s domain.Session
		if err := json.Unmarshal(entry, &s); err != nil {
			continue
		}
		s.Raw = append(json.RawMessage(nil), entry...)
		n.Sessions = append(n.Sessions, s)
	}
	return n, nil
}

func describeJSON(b []byte) string {
	switch b[0] {
	case '"':
		return "a string"
	case 't', 'f':
		return "a boolean"
	case 'n':
		return "null"
	default:
		if (b[0] >= '0' && b[0] <= '9') || b[0] == '-' {
			return "a number"
		}
		return "malformed JSON"
	}
}

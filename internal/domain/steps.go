package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// RecentWindowDays is how many calendar days an addition stays flagged as recent.
const RecentWindowDays = 7

// ContentAddition is a supplementary block appended to an item after publication.
type ContentAddition struct {
	ID            string    `json:"id"`
	Title         string    `json:"title,omitempty"`
	Content       string    `json:"content"`
	FilePath      string    `json:"filePath,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedByName string    `json:"createdByName,omitempty"`
}

// ContentSteps is the typed form of the item's steps field.
type ContentSteps struct {
	Additions []ContentAddition `json:"additions"`
}

// ParseSteps decodes the steps field, which the backend stores either as an
// object or as a JSON-encoded string of that object. Any failure yields empty
// steps together with the error so callers can log it and carry on.
func ParseSteps(raw json.RawMessage) (ContentSteps, error) {
	empty := ContentSteps{Additions: []ContentAddition{}}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return empty, nil
	}

	payload := []byte(raw)
	if raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return empty, fmt.Errorf("decode steps string: %w", err)
		}
		if len(bytes.TrimSpace([]byte(encoded))) == 0 {
			return empty, nil
		}
		payload = []byte(encoded)
	}

	var steps ContentSteps
	if err := json.Unmarshal(payload, &steps); err != nil {
		return empty, fmt.Errorf("decode steps: %w", err)
	}
	if steps.Additions == nil {
		steps.Additions = []ContentAddition{}
	}
	return steps, nil
}

// Append returns a copy of s with addition at the end. Existing additions are
// kept in order.
func (s ContentSteps) Append(addition ContentAddition) ContentSteps {
	additions := make([]ContentAddition, 0, len(s.Additions)+1)
	additions = append(additions, s.Additions...)
	additions = append(additions, addition)
	return ContentSteps{Additions: additions}
}

// Encode serialises the steps as the JSON string sent to the backend.
func (s ContentSteps) Encode() (string, error) {
	if s.Additions == nil {
		s.Additions = []ContentAddition{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// IsRecent reports whether createdAt lies within the recent window of now.
// Elapsed time is rounded up to whole days, so exactly seven days is recent
// and one second more is not.
func IsRecent(createdAt, now time.Time) bool {
	const day = 24 * time.Hour

	elapsed := now.Sub(createdAt)
	days := elapsed / day
	if elapsed > 0 && elapsed%day != 0 {
		days++
	}
	return days <= RecentWindowDays
}

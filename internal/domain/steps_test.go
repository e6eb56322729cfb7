package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSteps(t *testing.T) {
	object := `{"additions":[{"id":"a1","title":"Update","content":"New step","createdAt":"2026-10-01T10:00:00Z","createdByName":"Ana"}]}`
	encoded, _ := json.Marshal(object)

	tests := []struct {
		name      string
		raw       string
		wantCount int
		wantErr   bool
	}{
		{"empty", ``, 0, false},
		{"null", `null`, 0, false},
		{"object", object, 1, false},
		{"json string", string(encoded), 1, false},
		{"empty string", `""`, 0, false},
		{"object without additions", `{}`, 0, false},
		{"garbage string", `"not json"`, 0, true},
		{"wrong shape", `{"additions":"nope"}`, 0, true},
		{"number", `42`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps, err := ParseSteps(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			require.NotNil(t, steps.Additions)
			assert.Len(t, steps.Additions, tt.wantCount)
		})
	}
}

func TestParseSteps_KeepsAdditionFields(t *testing.T) {
	raw := `{"additions":[{"id":"a1","title":"Update","content":"New step","filePath":"img/x.png","createdAt":"2026-10-01T10:00:00Z","createdByName":"Ana"}]}`

	steps, err := ParseSteps(json.RawMessage(raw))

	require.NoError(t, err)
	a := steps.Additions[0]
	assert.Equal(t, "a1", a.ID)
	assert.Equal(t, "Update", a.Title)
	assert.Equal(t, "New step", a.Content)
	assert.Equal(t, "img/x.png", a.FilePath)
	assert.Equal(t, "Ana", a.CreatedByName)
	assert.True(t, a.CreatedAt.Equal(time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC)))
}

func TestContentSteps_AppendPreservesOrder(t *testing.T) {
	original := ContentSteps{Additions: []ContentAddition{{ID: "1"}, {ID: "2"}}}

	next := original.Append(ContentAddition{ID: "3"})

	assert.Len(t, original.Additions, 2)
	require.Len(t, next.Additions, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{next.Additions[0].ID, next.Additions[1].ID, next.Additions[2].ID})

	encoded, err := next.Encode()
	require.NoError(t, err)
	decoded, err := ParseSteps(json.RawMessage(encoded))
	require.NoError(t, err)
	assert.Len(t, decoded.Additions, 3)
}

func TestContentSteps_EncodeEmpty(t *testing.T) {
	encoded, err := ContentSteps{}.Encode()

	require.NoError(t, err)
	assert.JSONEq(t, `{"additions":[]}`, encoded)
}

func TestIsRecent(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	tests := []struct {
		name      string
		createdAt time.Time
		want      bool
	}{
		{"just now", now, true},
		{"one hour ago", now.Add(-time.Hour), true},
		{"six days twenty three hours", now.Add(-(6*day + 23*time.Hour)), true},
		{"exactly seven days", now.Add(-7 * day), true},
		{"seven days and one second", now.Add(-(7*day + time.Second)), false},
		{"thirty days", now.Add(-30 * day), false},
		{"future timestamp", now.Add(time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRecent(tt.createdAt, now))
		})
	}
}

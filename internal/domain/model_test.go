package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalStringOrNumber(t *testing.T) {
	var item struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}

	err := json.Unmarshal([]byte(`{"a":"abc-1","b":42,"c":null}`), &item)

	require.NoError(t, err)
	assert.Equal(t, ID("abc-1"), item.A)
	assert.Equal(t, ID("42"), item.B)
	assert.Equal(t, ID(""), item.C)
}

func TestID_RejectsObjects(t *testing.T) {
	var id ID
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &id))
}

func TestContentItem_DecodesBackendPayload(t *testing.T) {
	payload := `{
		"id": 7,
		"type": "tutorial",
		"sector": "noc",
		"title": "Reset da ONU",
		"textContent": "1. Passo",
		"priority": 3,
		"complexity": 5,
		"views": 12,
		"createdBy": 2,
		"creator": {"id": 2, "name": "Ana", "email": "ana@example.com"},
		"createdAt": "2026-10-01T10:00:00Z",
		"steps": "{\"additions\":[]}"
	}`

	var item ContentItem
	require.NoError(t, json.Unmarshal([]byte(payload), &item))

	assert.Equal(t, ID("7"), item.ID)
	assert.Equal(t, TypeTutorial, item.Type)
	assert.Equal(t, SectorNOC, item.Sector)
	assert.Equal(t, "Ana", item.CreatorName())
	require.NotNil(t, item.CreatedAt)

	steps, err := ParseSteps(item.Steps)
	require.NoError(t, err)
	assert.Empty(t, steps.Additions)
}

func TestContentType_PayloadRules(t *testing.T) {
	for _, ct := range ContentTypes {
		assert.NotEqual(t, ct.RequiresFile(), ct.RequiresText(), ct)
	}
	assert.False(t, ContentType("audio").Valid())
	assert.True(t, SectorAdm.Valid())
	assert.False(t, Sector("rh").Valid())
	assert.True(t, RoleAdmin.Valid())
}

func TestInferCategory(t *testing.T) {
	tests := []struct {
		name string
		item *ContentItem
		want Category
	}{
		{"nil", nil, ""},
		{"explicit category wins", &ContentItem{Title: "Tutorial de VPN", Category: CategoryConfiguration}, CategoryConfiguration},
		{"tutorial type", &ContentItem{Type: TypeTutorial, Title: "Reset"}, CategoryTutorial},
		{"title keyword tutorial", &ContentItem{Type: TypeText, Title: "TUTORIAL: roteador"}, CategoryTutorial},
		{"title keyword procedure", &ContentItem{Type: TypeText, Title: "Procedimento de troca"}, CategoryProcedure},
		{"title keyword configuration accented", &ContentItem{Type: TypeText, Title: "Configuração da OLT"}, CategoryConfiguration},
		{"no keyword", &ContentItem{Type: TypePhoto, Title: "Foto do rack"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InferCategory(tt.item))
		})
	}
}

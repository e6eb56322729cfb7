package structure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructure_NumberedText(t *testing.T) {
	blocks := Structure("1. Intro\nSome text\n1.1. Detail\nMore text")

	assert.Equal(t, []Block{
		{Kind: KindSection, Number: "1", Title: "Intro"},
		{Kind: KindParagraph, Text: "Some text"},
		{Kind: KindSubsection, Number: "1.1", Title: "Detail"},
		{Kind: KindParagraph, Text: "More text"},
	}, blocks)
}

func TestStructure_NumberedTextSkipsBlankLines(t *testing.T) {
	blocks := Structure("Preface\r\n\r\n1. First\n\n  2. Second  \n2.1. Sub\n")

	assert.Equal(t, []Block{
		{Kind: KindParagraph, Text: "Preface"},
		{Kind: KindSection, Number: "1", Title: "First"},
		{Kind: KindSection, Number: "2", Title: "Second"},
		{Kind: KindSubsection, Number: "2.1", Title: "Sub"},
	}, blocks)
}

func TestStructure_SubsectionsAloneAreNotNumbering(t *testing.T) {
	blocks := Structure("1.1. Only a subsection")

	require.Len(t, blocks, 1)
	assert.Equal(t, Block{Kind: KindSection, Title: "Conteúdo", Text: "1.1. Only a subsection"}, blocks[0])
}

func TestStructure_SingleParagraph(t *testing.T) {
	blocks := Structure("Just one block of text.")

	assert.Equal(t, []Block{{Kind: KindSection, Title: "Conteúdo", Text: "Just one block of text."}}, blocks)
}

func TestStructure_FourParagraphs(t *testing.T) {
	blocks := Structure("A\n\nB\n\nC\n\nD")

	assert.Equal(t, []Block{
		{Kind: KindSection, Number: "1", Title: "Introdução", Text: "A"},
		{Kind: KindSection, Number: "2", Title: "Procedimento"},
		{Kind: KindSubsection, Number: "2.1", Title: "Etapa 1", Text: "B"},
		{Kind: KindSubsection, Number: "2.2", Title: "Etapa 2", Text: "C"},
		{Kind: KindSection, Number: "3", Title: "Conclusão", Text: "D"},
	}, blocks)
}

func TestStructure_TwoAndThreeParagraphs(t *testing.T) {
	assert.Equal(t, []Block{
		{Kind: KindSection, Number: "1", Title: "Introdução", Text: "A"},
		{Kind: KindSection, Number: "2", Title: "Conclusão", Text: "B"},
	}, Structure("A\n\nB"))

	assert.Equal(t, []Block{
		{Kind: KindSection, Number: "1", Title: "Introdução", Text: "A"},
		{Kind: KindSection, Number: "2", Title: "Parte 2", Text: "B"},
		{Kind: KindSection, Number: "3", Title: "Conclusão", Text: "C"},
	}, Structure("A\n\n\nB\n\nC\n\n"))
}

func TestStructure_Segments(t *testing.T) {
	blocks := Structure("1. Numbered\n\n---\n\nSecond part\n\n---\n\n")

	assert.Equal(t, []Block{
		{Kind: KindSegment, Text: "1. Numbered"},
		{Kind: KindSegment, Text: "Second part"},
	}, blocks)
}

func TestStructure_Empty(t *testing.T) {
	assert.Empty(t, Structure(""))
	assert.Empty(t, Structure(" \n\n "))
	assert.NotNil(t, Structure(""))
}

func TestStructure_Deterministic(t *testing.T) {
	inputs := []string{
		"1. Intro\nSome text\n1.1. Detail\nMore text",
		"A\n\nB\n\nC\n\nD\n\nE",
		"Just text",
		"x\n\n---\n\ny",
	}

	for _, input := range inputs {
		first := Structure(input)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, Structure(input))
		}
	}
}

func TestStructureWith_EnglishLabels(t *testing.T) {
	labels := Labels{
		Content: "Content", Introduction: "Introduction", Procedure: "Procedure",
		Step: "Step", Part: "Part", Conclusion: "Conclusion",
	}

	blocks := StructureWith("A\n\nB\n\nC\n\nD", labels)

	require.Len(t, blocks, 5)
	assert.Equal(t, "Introduction", blocks[0].Title)
	assert.Equal(t, "Step 2", blocks[3].Title)
	assert.Equal(t, "Conclusion", blocks[4].Title)
}

// Package structure turns the plain text of a content item into an outline of
// render blocks. The transform is pure and deterministic and never changes the
// stored text.
package structure

import (
	"fmt"
	"regexp"
	"strings"
)

type Kind string

const (
	KindSection    Kind = "section"
	KindSubsection Kind = "subsection"
	KindParagraph  Kind = "paragraph"
	// KindSegment is a block of pre-segmented text rendered as is.
	KindSegment Kind = "segment"
)

type Block struct {
	Kind   Kind   `json:"kind"`
	Number string `json:"number,omitempty"`
	Title  string `json:"title,omitempty"`
	Text   string `json:"text,omitempty"`
}

// Labels names the synthesized sections used when the text has no numbering.
type Labels struct {
	Content      string
	Introduction string
	Procedure    string
	Step         string
	Part         string
	Conclusion   string
}

var DefaultLabels = Labels{
	Content:      "Conteúdo",
	Introduction: "Introdução",
	Procedure:    "Procedimento",
	Step:         "Etapa",
	Part:         "Parte",
	Conclusion:   "Conclusão",
}

// SegmentSeparator splits text that is already divided into sections.
const SegmentSeparator = "\n\n---\n\n"

var (
	hasNumberingPattern = regexp.MustCompile(`(?m)^\d+\.\s`)
	sectionPattern      = regexp.MustCompile(`^(\d+)\.\s+(.*)$`)
	subsectionPattern   = regexp.MustCompile(`^(\d+\.\d+)\.\s+(.*)$`)
)

// Structure applies the heuristic with the Portuguese labels.
func Structure(text string) []Block {
	return StructureWith(text, DefaultLabels)
}

func StructureWith(text string, labels Labels) []Block {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return []Block{}
	}

	if strings.Contains(text, SegmentSeparator) {
		return segments(text)
	}
	if hasNumberingPattern.MatchString(text) {
		return numbered(text)
	}
	return paragraphs(text, labels)
}

func segments(text string) []Block {
	blocks := []Block{}
	for _, part := range strings.Split(text, SegmentSeparator) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		blocks = append(blocks, Block{Kind: KindSegment, Text: part})
	}
	return blocks
}

func numbered(text string) []Block {
	blocks := []Block{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := subsectionPattern.FindStringSubmatch(line); m != nil {
			blocks = append(blocks, Block{Kind: KindSubsection, Number: m[1], Title: m[2]})
			continue
		}
		if m := sectionPattern.FindStringSubmatch(line); m != nil {
			blocks = append(blocks, Block{Kind: KindSection, Number: m[1], Title: m[2]})
			continue
		}
		blocks = append(blocks, Block{Kind: KindParagraph, Text: line})
	}
	return blocks
}

func paragraphs(text string, labels Labels) []Block {
	var parts []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	n := len(parts)
	switch {
	case n == 1:
		return []Block{{Kind: KindSection, Title: labels.Content, Text: parts[0]}}

	case n >= 4:
		blocks := []Block{
			{Kind: KindSection, Number: "1", Title: labels.Introduction, Text: parts[0]},
			{Kind: KindSection, Number: "2", Title: labels.Procedure},
		}
		for i, p := range parts[1 : n-1] {
			blocks = append(blocks, Block{
				Kind:   KindSubsection,
				Number: fmt.Sprintf("2.%d", i+1),
				Title:  fmt.Sprintf("%s %d", labels.Step, i+1),
				Text:   p,
			})
		}
		return append(blocks, Block{Kind: KindSection, Number: "3", Title: labels.Conclusion, Text: parts[n-1]})

	default:
		blocks := make([]Block, 0, n)
		for i, p := range parts {
			title := fmt.Sprintf("%s %d", labels.Part, i+1)
			switch i {
			case 0:
				title = labels.Introduction
			case n - 1:
				title = labels.Conclusion
			}
			blocks = append(blocks, Block{Kind: KindSection, Number: fmt.Sprint(i + 1), Title: title, Text: p})
		}
		return blocks
	}
}

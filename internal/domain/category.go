package domain

import "strings"

var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryTutorial, []string{"tutorial"}},
	{CategoryProcedure, []string{"procedimento", "procedure"}},
	{CategoryConfiguration, []string{"configuração", "configuracao", "configuration", "config"}},
}

// InferCategory classifies an item. A category sent by the backend always
// wins; tutorials are tutorials; otherwise the title is matched against
// keywords, first match in declaration order.
func InferCategory(item *ContentItem) Category {
	if item == nil {
		return ""
	}
	if item.Category != "" {
		return item.Category
	}
	if item.Type == TypeTutorial {
		return CategoryTutorial
	}

	title := strings.ToLower(item.Title)
	for _, entry := range categoryKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(title, keyword) {
				return entry.category
			}
		}
	}
	return ""
}

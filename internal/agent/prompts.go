package agent

import (
	"fmt"
	"strings"

	"bookmarkchat/internal/domain"
)

// qaPrompt builds the grounded question-answering prompt. The sources block
// is the only context the model gets; it is instructed not to invent
// information beyond it.
func qaPrompt(question string, sources []domain.Record) string {
	blocks := make([]string, 0, len(sources))
	for _, r := range sources {
		blocks = append(blocks, fmt.Sprintf("URL: %s\nAuthor: %s (%s)\nContent: %s",
			orNA(r.URL), orNA(r.Author), orNA(r.AuthorHandle), r.Text))
	}
	return fmt.Sprintf(`You are a helpful assistant summarizing the user's Twitter bookmarks.
Do not make up information. Use only the following tweets as sources.

---
%s
---

User question: %s
Answer:`, strings.Join(blocks, "\n\n"), question)
}

// summaryPrompt asks for a bulleted topics/hashtags/themes summary over the
// concatenated source content.
func summaryPrompt(sources []domain.Record) string {
	texts := make([]string, 0, len(sources))
	for _, r := range sources {
		texts = append(texts, r.Text)
	}
	return fmt.Sprintf(`You are analyzing the user's Twitter bookmarks.
Extract the main topics, hashtags and themes from the tweets below and
present them as a short bulleted summary.

---
%s
---

Bulleted summary:`, strings.Join(texts, "\n\n"))
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

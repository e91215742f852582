package enhance

import (
	"fmt"
	"strings"

	"github.com/poiesic/distill/core"
)

const enhancePromptTemplate = `You are maintaining a project glossary. Some term definitions below were extracted with low confidence and need another pass.

Trusted definitions, for context only (do not redefine these unless the review list contains them):
%s

Definitions under review:
%s

For every term under review, produce your best definition. You may also add terms that are clearly defined by the context but missing from both lists.

Respond with only a valid JSON object, no additional text or formatting:
{"terms": [{"term": "...", "definition": "...", "category": "...", "confidence": "high|medium|low", "needs_review": false, "domain_hints": ["..."], "keywords": ["..."]}]}`

func enhancePrompt(trusted, toReview []core.SemanticRecord, extraContext string) string {
	prompt := fmt.Sprintf(enhancePromptTemplate, formatTerms(trusted), formatTerms(toReview))
	if extraContext = strings.TrimSpace(extraContext); extraContext != "" {
		prompt = "Background on the project:\n" + extraContext + "\n\n" + prompt
	}
	return prompt
}

func formatTerms(records []core.SemanticRecord) string {
	if len(records) == 0 {
		return "(none)"
	}
	var b strings.Builder
	for _, record := range records {
		fmt.Fprintf(&b, "- %s: %s", record.Term, record.Definition)
		if record.TermCategory != "" {
			fmt.Fprintf(&b, " [%s]", record.TermCategory)
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

package extract

import (
	"fmt"
	"strings"

	"github.com/poiesic/distill/core"
)

const jsonOnlyRule = `Respond with ONLY the JSON object. Do not include any preamble, explanation,
greeting, or markdown fences. Start your response with the opening brace {
and end with the closing brace }.`

const qnaPromptTemplate = `Analyze the question and answer from the chat thread below and refine them
into a Q&A worth documenting.

Question: %s
Answer: %s

Respond with a JSON object of this shape:
{
  "is_valuable": true/false,  // whether this exchange is worth documenting
  "question": "the refined question",
  "answer": "the refined answer",
  "keywords": ["keyword1", "keyword2"]
}

Set "is_valuable" to false for small talk, unresolved questions, or
answers that only make sense inside the thread.

%s`

func qnaPrompt(question, answer string) string {
	return fmt.Sprintf(qnaPromptTemplate, question, answer, jsonOnlyRule)
}

const threadInsightPromptTemplate = `Extract noteworthy insights from the chat thread below.

Thread:
%s

Respond with a JSON object of this shape:
{
  "insights": [
    {
      "type": "insight",          // one of "insight", "feedback", "reference"
      "content": "the insight",
      "keywords": ["keyword1", "keyword2"],
      "reference_type": "link"    // only when type is "reference": link, code, api or doc
    }
  ]
}

Return an empty array if there are no insights.

%s`

func threadInsightPrompt(thread *core.Thread) string {
	return fmt.Sprintf(threadInsightPromptTemplate, thread.Text(), jsonOnlyRule)
}

const sectionInsightPromptTemplate = `Extract noteworthy insights from the document section below.

Title: %s
Content:
%s

Respond with a JSON object of this shape:
{
  "insights": [
    {
      "type": "insight",          // one of "insight", "feedback"
      "content": "the insight",
      "keywords": ["keyword1", "keyword2"]
    }
  ]
}

Return an empty array if there are no insights.

%s`

func sectionInsightPrompt(section *core.DocumentSection) string {
	return fmt.Sprintf(sectionInsightPromptTemplate, section.SectionTitle, section.Text(), jsonOnlyRule)
}

const instructionPromptTemplate = `Extract work instructions or step-by-step guidance from the document
section below.

Title: %s
Content:
%s

Respond with a JSON object of this shape:
{
  "instructions": [
    {
      "content": "the instruction",
      "keywords": ["keyword1", "keyword2"]
    }
  ]
}

Return an empty array if there are no instructions.

%s`

func instructionPrompt(section *core.DocumentSection) string {
	return fmt.Sprintf(instructionPromptTemplate, section.SectionTitle, section.Text(), jsonOnlyRule)
}

const referencePromptTemplate = `Extract reference material such as links, API references, code snippets
or document pointers from the document section below.

Title: %s
Content:
%s

Respond with a JSON object of this shape:
{
  "references": [
    {
      "content": "the reference",
      "reference_type": "link",   // one of link, api, code, doc
      "keywords": ["keyword1", "keyword2"]
    }
  ]
}

Return an empty array if there are no references.

%s`

func referencePrompt(section *core.DocumentSection) string {
	return fmt.Sprintf(referencePromptTemplate, section.SectionTitle, section.Text(), jsonOnlyRule)
}

const glossaryPromptTemplate = `Extract terms worth adding to a team glossary from the text below.
Include internal project names, service names, abbreviations and domain
jargon. Skip everyday words.

%s

Respond with a JSON object of this shape:
{
  "terms": [
    {
      "term": "the term",
      "definition": "what the term means, based on the text",
      "category": "development",     // one of service, development, design, marketing, business, etc
      "confidence": "high",          // one of high, medium, low: how certain the definition is
      "needs_review": false,         // true when a human should verify the definition
      "domain_hints": ["backend"],   // optional domains the term belongs to
      "keywords": ["keyword1", "keyword2"]
    }
  ]
}

Use "low" confidence and set "needs_review" when the text only hints at the
meaning. Return an empty array if there are no terms.

%s`

func glossaryPrompt(text string) string {
	return fmt.Sprintf(glossaryPromptTemplate, text, jsonOnlyRule)
}

// glossaryMarkers are phrases suggesting a text defines something. Used by
// the glossary strategies' short-circuit heuristic.
var glossaryMarkers = []string{
	"is a", "is an", "is the",
	"stands for", "short for", "refers to", "means",
	"glossary", "terminology", "definition",
}

// looksDefinitional reports whether the text plausibly defines a term.
func looksDefinitional(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range glossaryMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

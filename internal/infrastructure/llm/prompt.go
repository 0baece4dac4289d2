package llm

import (
	"fmt"
	"strings"

	"github.com/lexhub/legal-case-assistant/internal/core/domain"
)

func buildClassificationPrompt(snippet string) string {
	var labels strings.Builder
	for _, docType := range domain.DocumentTypes() {
		labels.WriteString("- ")
		labels.WriteString(string(docType))
		labels.WriteString("\n")
	}

	return fmt.Sprintf(`You are a legal document classifier.
Pick exactly one label from this list:
%s
Return a strict JSON object with keys:
type (string, one of the labels above), confidence (number from 0 to 100).
No markdown, no extra keys, no explanation.

Document:
%s`, labels.String(), snippet)
}

func buildSummaryPrompt(docType domain.DocumentType, tpl SummaryTemplate, snippet string) string {
	var fields strings.Builder
	for _, field := range tpl.Fields {
		fields.WriteString(fmt.Sprintf("- %s: %s\n", field.Name, field.Description))
	}

	return fmt.Sprintf(`You are a legal analyst summarizing a document classified as %q.
Return a strict JSON object with exactly these keys:
%s
Fill every key from the document; use "" when the document does not say.
No markdown, no extra keys.

Document:
%s`, string(docType), fields.String(), snippet)
}

func buildCaseReportPrompt(kase *domain.Case, contexts []domain.DocumentContext) string {
	var docs strings.Builder
	if len(contexts) == 0 {
		docs.WriteString("(no documents processed yet)\n")
	}
	for idx, docCtx := range contexts {
		docs.WriteString(fmt.Sprintf(
			"[%d] document=%s type=%s\n%s\n\n",
			idx+1,
			docCtx.Name,
			docCtx.Type,
			docCtx.Content,
		))
	}

	return fmt.Sprintf(`You are a senior litigation strategist. Build a full case report from the
case metadata and the document contexts below.

Return a strict JSON object with exactly these keys:
overview (string), parties (array of {name, role}),
sections (array of {title, narrative, source_document, excerpt} — excerpt is a verbatim quote from the cited document),
timeline (array of {date, event}), strategy ({strengths, weaknesses, opportunities, threats} as string arrays),
critical_points (array of strings), risks (array of strings),
suggested_thesis (string), missing_documents (array of strings),
next_steps (array of strings).
No markdown, no extra keys.

Case:
title: %s
number: %s
description: %s

Documents:
%s`, kase.Title, kase.Number, kase.Description, docs.String())
}

// headTail keeps the opening and closing of a long text, which is where
// legal documents identify themselves and state their outcome.
func headTail(text string, head, tail int) string {
	runes := []rune(text)
	if head < 0 {
		head = 0
	}
	if tail < 0 {
		tail = 0
	}
	if len(runes) <= head+tail {
		return text
	}
	return string(runes[:head]) + "\n[...]\n" + string(runes[len(runes)-tail:])
}

package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// maxEnrichInput caps the text sent to the LLM per call. Longer bodies are
// truncated; the head of a note or article carries most of its signal.
const maxEnrichInput = 24_000

// SuggestedConnection is one candidate relation between a newly extracted
// concept and an existing vocabulary label. Strength and reason are
// produced by the model and passed through without interpretation.
type SuggestedConnection struct {
	Source   string  `json:"source"`
	Target   string  `json:"target"`
	Strength float64 `json:"strength"`
	Reason   string  `json:"reason"`
}

// Completer is the LLM capability Enricher needs. *LLMClient satisfies it.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Enricher derives summaries, concept labels, and connection suggestions
// from content text via an LLM.
type Enricher struct {
	llm Completer
}

// NewEnricher creates an Enricher backed by the given completer.
func NewEnricher(llm Completer) *Enricher {
	return &Enricher{llm: llm}
}

const summarizeSystem = `You summarize personal notes and articles.
Reply with a plain-text summary of two to three sentences. No preamble, no markdown.`

// Summarize produces a short natural-language summary of the text.
func (e *Enricher) Summarize(ctx context.Context, text string) (string, error) {
	reply, err := e.llm.Complete(ctx, summarizeSystem, truncate(text))
	if err != nil {
		return "", &SummarizationError{Err: err}
	}

	summary := strings.TrimSpace(reply)
	if summary == "" {
		return "", &SummarizationError{Err: fmt.Errorf("model returned an empty summary")}
	}

	return summary, nil
}

const extractSystem = `You extract key concepts from personal notes and articles.
Reply with a JSON array of three to five short concept labels, most important first.
Labels are lowercase noun phrases of at most four words. Example: ["spaced repetition","memory consolidation"]
Reply with the JSON array only.`

// ExtractConcepts produces an ordered list of concept labels for the text.
// An empty list is a valid result.
func (e *Enricher) ExtractConcepts(ctx context.Context, text string) ([]string, error) {
	reply, err := e.llm.Complete(ctx, extractSystem, truncate(text))
	if err != nil {
		return nil, &ExtractionError{Err: err}
	}

	raw := extractJSONArray(reply)
	if raw == "" {
		return nil, &ExtractionError{Err: fmt.Errorf("no JSON array in model reply")}
	}

	var labels []string
	if err := json.Unmarshal([]byte(raw), &labels); err != nil {
		return nil, &ExtractionError{Err: fmt.Errorf("decoding concept list: %w", err)}
	}

	out := make([]string, 0, len(labels))

	for _, l := range labels {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}

	return out, nil
}

const suggestSystem = `You connect new concepts to a person's existing knowledge base.
Given new concepts and existing concepts, propose connections between a new concept and an existing one
where a real intellectual relationship exists. Do not force connections.
Reply with a JSON array of objects: {"source": <new concept>, "target": <existing concept>, "strength": <0.0-1.0>, "reason": <one sentence>}.
An empty array is a valid answer. Reply with the JSON array only.`

// SuggestConnections asks the model which of the new concepts relate to the
// existing vocabulary. Both lists must be non-empty; callers skip the call
// otherwise.
func (e *Enricher) SuggestConnections(ctx context.Context, newConcepts, existing []string) ([]SuggestedConnection, error) {
	prompt := fmt.Sprintf("New concepts:\n%s\n\nExisting concepts:\n%s",
		strings.Join(newConcepts, "\n"), strings.Join(existing, "\n"))

	reply, err := e.llm.Complete(ctx, suggestSystem, prompt)
	if err != nil {
		return nil, &SuggestionError{Err: err}
	}

	raw := extractJSONArray(reply)
	if raw == "" {
		// Models sometimes answer with a single bare object instead of a
		// one-element array.
		if obj := extractJSONObject(reply); obj != "" {
			raw = "[" + obj + "]"
		}
	}

	if raw == "" {
		return nil, &SuggestionError{Err: fmt.Errorf("no JSON array in model reply")}
	}

	var conns []SuggestedConnection
	if err := json.Unmarshal([]byte(raw), &conns); err != nil {
		return nil, &SuggestionError{Err: fmt.Errorf("decoding connection list: %w", err)}
	}

	out := make([]SuggestedConnection, 0, len(conns))

	for _, c := range conns {
		if strings.TrimSpace(c.Source) == "" || strings.TrimSpace(c.Target) == "" {
			continue
		}

		out = append(out, c)
	}

	return out, nil
}

func truncate(text string) string {
	if len(text) <= maxEnrichInput {
		return text
	}

	return text[:maxEnrichInput]
}

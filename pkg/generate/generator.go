package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-resume-be/pkg/document"
	"ai-resume-be/pkg/facts"
	"ai-resume-be/pkg/llm"
)

// Generator produces a full resume document from gathered facts plus the
// user's latest instruction.
type Generator interface {
	Generate(ctx context.Context, data facts.Resume, instruction string) (document.Document, error)
}

// LLMGenerator is the production implementation on top of an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
}

var _ Generator = &LLMGenerator{}

func NewLLMGenerator(provider llm.Provider) *LLMGenerator {
	return &LLMGenerator{provider: provider}
}

const generatorSystemPrompt = `You are a professional resume writer.

Write a complete resume in markdown with this exact structure:
- One "# Full Name" line at the top
- Contact details on the following lines (email, phone, links)
- "## " section headings (Summary, Experience, Education, Skills, and any
  other section the facts justify)
- "- " bullet points for achievements, one concrete accomplishment per bullet

Rules:
- Use only the facts provided. Never invent employers, dates or credentials.
- Keep bullets action-led and quantified where the facts allow.
- Output the markdown only, with no commentary before or after.`

func (g *LLMGenerator) Generate(ctx context.Context, data facts.Resume, instruction string) (document.Document, error) {
	if data.IsEmpty() {
		return document.Document{}, fmt.Errorf("no facts gathered yet")
	}

	factsJSON, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return document.Document{}, fmt.Errorf("marshal facts: %w", err)
	}

	var prompt strings.Builder
	prompt.WriteString("Facts:\n")
	prompt.Write(factsJSON)
	if strings.TrimSpace(instruction) != "" {
		prompt.WriteString("\n\nUser instruction: ")
		prompt.WriteString(instruction)
	}

	raw, err := g.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: generatorSystemPrompt},
		{Role: "user", Content: prompt.String()},
	}, llm.WithTemperature(0.4))
	if err != nil {
		return document.Document{}, fmt.Errorf("generate resume: %w", err)
	}

	doc := document.New(cleanMarkdown(raw))
	if err := validate(doc); err != nil {
		return document.Document{}, err
	}
	return doc, nil
}

// cleanMarkdown strips code fences some models wrap markdown in.
func cleanMarkdown(raw string) string {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, "```") {
		if idx := strings.Index(text, "\n"); idx != -1 {
			text = text[idx+1:]
		}
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}
	return strings.TrimSpace(text)
}

// validate rejects replies that are not a plausible resume document.
func validate(doc document.Document) error {
	if doc.IsEmpty() {
		return fmt.Errorf("model returned an empty document")
	}
	idx := doc.BuildIndex()
	if idx.NameLine == -1 {
		return fmt.Errorf("generated document has no name line")
	}
	if len(idx.HeadingLines) == 0 {
		return fmt.Errorf("generated document has no sections")
	}
	return nil
}

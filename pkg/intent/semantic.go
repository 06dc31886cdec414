package intent

import (
	"context"
	"fmt"
	"strings"

	"ai-resume-be/pkg/llm"

	"github.com/tidwall/gjson"
)

// LLMClassifier implements the semantic tier on top of an LLM provider.
type LLMClassifier struct {
	provider llm.Provider
}

var _ SemanticClassifier = &LLMClassifier{}

func NewLLMClassifier(provider llm.Provider) *LLMClassifier {
	return &LLMClassifier{provider: provider}
}

const semanticSystemPrompt = `You are a query classification expert for an AI resume assistant.

Classify the user message into exactly one type:

1. UI_MODIFICATION: visual/styling changes only (colors, fonts, layout, spacing)
2. CONTENT_UPDATE: modifying existing resume data ("change my name", "add experience at Google")
3. DATA_GATHERING: providing new information ("I worked at Microsoft", "my name is John")
4. GENERATION_REQUEST: ready to generate or regenerate the resume
5. QUESTION: questions about the system or process
6. GREETING: social interaction
7. UNCLEAR: ambiguous intent

Rules:
- If a message mixes UI and content changes, always prioritize the content type.
- Confidence: 0.9+ for clear requests, 0.7-0.9 for somewhat clear, below 0.7 for unclear.

Reply with JSON only:
{"intent_type": "UI_MODIFICATION", "confidence": 0.95, "categories": ["font"], "rationale": "short reason"}`

func (s *LLMClassifier) Classify(ctx context.Context, message string, sctx SessionContext) (Classification, error) {
	userPrompt := fmt.Sprintf("Classify this message: %q\nContext: has_document=%t has_facts=%t",
		message, sctx.HasDocument, sctx.HasFacts)

	reply, err := s.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: semanticSystemPrompt},
		{Role: "user", Content: userPrompt},
	}, llm.WithTemperature(0.3), llm.WithMaxTokens(300), llm.WithJSONMode())
	if err != nil {
		return Classification{}, fmt.Errorf("semantic classify: %w", err)
	}

	return parseSemanticReply(reply)
}

// parseSemanticReply extracts the structured answer from the model reply.
// gjson tolerates surrounding prose as long as a JSON object is present.
func parseSemanticReply(reply string) (Classification, error) {
	body := extractJSONObject(reply)
	if body == "" || !gjson.Valid(body) {
		return Classification{}, fmt.Errorf("malformed semantic reply: %q", truncate(reply, 80))
	}

	intentType := Type(strings.ToUpper(gjson.Get(body, "intent_type").String()))
	if !intentType.Valid() {
		return Classification{}, fmt.Errorf("unknown intent %q in semantic reply", intentType)
	}

	var categories []string
	for _, c := range gjson.Get(body, "categories").Array() {
		if c.String() != "" {
			categories = append(categories, c.String())
		}
	}

	return Classification{
		Intent:     intentType,
		Confidence: gjson.Get(body, "confidence").Float(),
		Categories: categories,
		Rationale:  gjson.Get(body, "rationale").String(),
		Source:     SourceSemantic,
	}, nil
}

func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

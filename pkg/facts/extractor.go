package facts

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-resume-be/pkg/llm"

	"github.com/tidwall/gjson"
)

// Extraction is the result of mining one user message for resume facts.
type Extraction struct {
	Facts Resume

	// Reply is the assistant's conversational acknowledgement, including any
	// follow-up question about missing information.
	Reply string
}

// Extractor pulls structured resume facts out of free-text messages.
type Extractor struct {
	provider llm.Provider
}

func NewExtractor(provider llm.Provider) *Extractor {
	return &Extractor{provider: provider}
}

const extractorSystemPrompt = `You are a data gathering assistant for a resume builder.

Extract resume facts from the user's message. Only include what the message
actually states; never invent companies, dates or skills.

Reply with JSON only:
{
  "facts": {
    "profile": {"name": "", "email": "", "phone": "", "location": "", "linkedin": "", "github": "", "website": ""},
    "summary": "",
    "experience": [{"company": "", "position": "", "start_date": "", "end_date": "", "location": "", "description": []}],
    "education": [{"institution": "", "degree": "", "field": "", "start_date": "", "end_date": "", "gpa": "", "location": ""}],
    "skills": [],
    "projects": [{"name": "", "description": "", "technologies": [], "url": ""}],
    "certifications": [],
    "languages": []
  },
  "reply": "one short, friendly acknowledgement plus one question about the most important missing detail"
}

Omit empty fields rather than sending blank strings.`

// Extract mines the message and returns the new facts plus a conversational
// reply. Known facts are passed along so the follow-up question does not ask
// for information the user already gave.
func (e *Extractor) Extract(ctx context.Context, message string, known Resume) (Extraction, error) {
	knownJSON, err := json.Marshal(known)
	if err != nil {
		return Extraction{}, fmt.Errorf("marshal known facts: %w", err)
	}

	userPrompt := fmt.Sprintf("Known facts so far: %s\n\nUser message: %q", knownJSON, message)

	raw, err := e.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: extractorSystemPrompt},
		{Role: "user", Content: userPrompt},
	}, llm.WithTemperature(0.2), llm.WithJSONMode())
	if err != nil {
		return Extraction{}, fmt.Errorf("extract facts: %w", err)
	}

	return parseExtraction(raw)
}

func parseExtraction(raw string) (Extraction, error) {
	body := extractJSONObject(raw)
	if body == "" || !gjson.Valid(body) {
		return Extraction{}, fmt.Errorf("malformed extraction reply")
	}

	var out Extraction
	if factsJSON := gjson.Get(body, "facts"); factsJSON.Exists() {
		if err := json.Unmarshal([]byte(factsJSON.Raw), &out.Facts); err != nil {
			return Extraction{}, fmt.Errorf("unmarshal facts: %w", err)
		}
	}
	out.Reply = gjson.Get(body, "reply").String()
	return out, nil
}

func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

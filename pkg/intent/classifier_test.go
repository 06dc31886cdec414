package intent

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"
)

type stubSemantic struct {
	result Classification
	err    error
	delay  time.Duration
	calls  int
}

func (s *stubSemantic) Classify(ctx context.Context, _ string, _ SessionContext) (Classification, error) {
	s.calls++
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return Classification{}, ctx.Err()
		}
	}
	return s.result, s.err
}

func newTestClassifier(semantic SemanticClassifier, cfg Config) *Classifier {
	return NewClassifier(DefaultTaxonomy(), semantic, cfg, log.New(io.Discard, "", 0))
}

func TestFastPathClassifications(t *testing.T) {
	c := newTestClassifier(nil, Config{})

	tests := []struct {
		message string
		want    Type
	}{
		{"make the name bold", TypeUIModification},
		{"change the heading color to navy", TypeUIModification},
		{"use tighter spacing", TypeUIModification},
		{"I worked at Acme for 3 years", TypeDataGathering},
		{"my name is Jane Doe", TypeDataGathering},
		{"add my internship at Acme", TypeContentUpdate},
		{"remove the second job from my experience", TypeContentUpdate},
		{"generate my resume", TypeGenerationRequest},
		{"i'm ready", TypeGenerationRequest},
		{"hello", TypeGreeting},
		{"good morning", TypeGreeting},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got := c.Classify(context.Background(), tt.message, SessionContext{})
			if got.Intent != tt.want {
				t.Errorf("intent = %s (%.2f, %s), want %s", got.Intent, got.Confidence, got.Rationale, tt.want)
			}
			if got.Source != SourceFastPath {
				t.Errorf("source = %s, want fast-path", got.Source)
			}
		})
	}
}

// A message mixing cosmetic and factual signals must classify as the factual
// intent, never as a UI change.
func TestContentTakesPrecedenceOverStyle(t *testing.T) {
	c := newTestClassifier(nil, Config{})

	got := c.Classify(context.Background(),
		"make the headers blue and add my internship at Acme", SessionContext{})

	if !got.IsFactual() {
		t.Fatalf("intent = %s, want a factual type", got.Intent)
	}
	if got.Intent != TypeContentUpdate {
		t.Errorf("intent = %s, want CONTENT_UPDATE", got.Intent)
	}
}

// The precedence rule also overrides a cosmetic verdict from the semantic tier.
func TestContentPrecedenceOverridesSemanticVerdict(t *testing.T) {
	semantic := &stubSemantic{result: Classification{
		Intent:     TypeUIModification,
		Confidence: 0.9,
	}}
	// A high threshold forces every message onto the slow path.
	c := newTestClassifier(semantic, Config{FastPathThreshold: 0.99})

	got := c.Classify(context.Background(),
		"make it look nicer, by the way I worked at Globex as a data analyst",
		SessionContext{})

	if !got.IsFactual() {
		t.Fatalf("intent = %s, want a factual type", got.Intent)
	}
}

func TestGreetingOnlyMatchesShortMessages(t *testing.T) {
	semantic := &stubSemantic{result: Classification{Intent: TypeQuestion, Confidence: 0.8}}
	c := newTestClassifier(semantic, Config{})

	got := c.Classify(context.Background(),
		"hello there, can you explain what details you need from me first", SessionContext{})

	if got.Intent == TypeGreeting {
		t.Fatalf("long message classified as greeting")
	}
	if semantic.calls == 0 {
		t.Fatal("semantic tier not consulted")
	}
}

func TestSlowPathUsedBelowThreshold(t *testing.T) {
	semantic := &stubSemantic{result: Classification{Intent: TypeQuestion, Confidence: 0.85}}
	c := newTestClassifier(semantic, Config{})

	got := c.Classify(context.Background(), "what do you need from me?", SessionContext{})

	if got.Intent != TypeQuestion {
		t.Fatalf("intent = %s, want QUESTION", got.Intent)
	}
	if got.Source != SourceSemantic {
		t.Errorf("source = %s, want semantic", got.Source)
	}
}

func TestSemanticFailureDegradesToUnclear(t *testing.T) {
	tests := []struct {
		name     string
		semantic SemanticClassifier
		cfg      Config
	}{
		{"no semantic tier", nil, Config{}},
		{"semantic error", &stubSemantic{err: errors.New("model down")}, Config{}},
		{"semantic timeout", &stubSemantic{
			delay:  200 * time.Millisecond,
			result: Classification{Intent: TypeQuestion, Confidence: 0.9},
		}, Config{SemanticTimeout: 10 * time.Millisecond}},
		{"unknown intent", &stubSemantic{
			result: Classification{Intent: Type("SOMETHING_NEW"), Confidence: 0.9},
		}, Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClassifier(tt.semantic, tt.cfg)
			got := c.Classify(context.Background(), "what do you need from me?", SessionContext{})

			if got.Intent != TypeUnclear {
				t.Errorf("intent = %s, want UNCLEAR", got.Intent)
			}
			if got.Confidence != 0.2 {
				t.Errorf("confidence = %.2f, want 0.2", got.Confidence)
			}
		})
	}
}

func TestEmptyMessageIsUnclear(t *testing.T) {
	c := newTestClassifier(nil, Config{})
	got := c.Classify(context.Background(), "   ", SessionContext{})
	if got.Intent != TypeUnclear {
		t.Fatalf("intent = %s, want UNCLEAR", got.Intent)
	}
}

func TestConfidenceIsClamped(t *testing.T) {
	semantic := &stubSemantic{result: Classification{Intent: TypeQuestion, Confidence: 3.2}}
	c := newTestClassifier(semantic, Config{})

	got := c.Classify(context.Background(), "how does this work exactly?", SessionContext{})
	if got.Confidence != 1.0 {
		t.Fatalf("confidence = %.2f, want clamped to 1.0", got.Confidence)
	}
}

func TestStyleCategoriesReported(t *testing.T) {
	c := newTestClassifier(nil, Config{})
	got := c.Classify(context.Background(), "make the font bigger and the headings blue", SessionContext{})

	if got.Intent != TypeUIModification {
		t.Fatalf("intent = %s", got.Intent)
	}
	want := map[string]bool{"font": true, "size": true, "color": true}
	found := 0
	for _, cat := range got.Categories {
		if want[cat] {
			found++
		}
	}
	if found < 3 {
		t.Errorf("categories = %v, want font, size and color present", got.Categories)
	}
}

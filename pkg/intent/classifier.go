package intent

import (
	"context"
	"log"
	"strings"
	"time"
)

// SemanticClassifier is the external slow-path collaborator. Implementations
// may call an LLM; the classifier treats any failure as "no answer".
type SemanticClassifier interface {
	Classify(ctx context.Context, message string, sctx SessionContext) (Classification, error)
}

// Config carries the tunables. Zero values fall back to the defaults below.
type Config struct {
	// FastPathThreshold is the confidence a fast-path match needs to short
	// circuit the semantic tier.
	FastPathThreshold float64

	// SemanticTimeout bounds one slow-path call.
	SemanticTimeout time.Duration
}

const (
	defaultFastPathThreshold = 0.8
	defaultSemanticTimeout   = 10 * time.Second

	// unclearConfidence is what any internal failure degrades to.
	unclearConfidence = 0.2
)

// Classifier maps a message to a Classification. Classify never returns an
// error: every failure path degrades to UNCLEAR.
type Classifier struct {
	taxonomy  Taxonomy
	semantic  SemanticClassifier
	threshold float64
	timeout   time.Duration
	logger    *log.Logger
}

func NewClassifier(taxonomy Taxonomy, semantic SemanticClassifier, cfg Config, logger *log.Logger) *Classifier {
	if cfg.FastPathThreshold <= 0 {
		cfg.FastPathThreshold = defaultFastPathThreshold
	}
	if cfg.SemanticTimeout <= 0 {
		cfg.SemanticTimeout = defaultSemanticTimeout
	}
	return &Classifier{
		taxonomy:  taxonomy,
		semantic:  semantic,
		threshold: cfg.FastPathThreshold,
		timeout:   cfg.SemanticTimeout,
		logger:    logger,
	}
}

func (c *Classifier) Classify(ctx context.Context, message string, sctx SessionContext) Classification {
	if strings.TrimSpace(message) == "" {
		return unclear("empty message")
	}

	if fast, ok := c.fastPath(message); ok && fast.Confidence >= c.threshold {
		c.logger.Printf("[INTENT] fast-path %s (%.2f): %s", fast.Intent, fast.Confidence, truncate(message, 60))
		return fast
	}

	result := c.slowPath(ctx, message, sctx)

	// Content-precedence guard: a cosmetic verdict on a message that also
	// states facts would silently drop those facts. Deferring a cosmetic
	// tweak is the cheaper mistake, so factual categories win.
	if result.Intent == TypeUIModification {
		if lower := padded(message); c.taxonomy.HasContentSignal(lower) {
			result = c.factualClassification(lower, result.Confidence, SourceSemantic,
				"content-precedence override of cosmetic verdict")
			c.logger.Printf("[INTENT] content precedence: %s -> %s", TypeUIModification, result.Intent)
		}
	}

	return result
}

// fastPath runs the deterministic keyword tier. A false second return means
// no rule matched and the semantic tier should decide.
func (c *Classifier) fastPath(message string) (Classification, bool) {
	lower := padded(message)

	hasStyle := c.taxonomy.HasStyleSignal(lower)
	hasContent := c.taxonomy.HasContentSignal(lower)

	switch {
	case hasContent:
		// Wins even when style words are present (mandatory tie-break).
		return c.factualClassification(lower, 0.82, SourceFastPath, "factual keywords"), true

	case hasStyle:
		return Classification{
			Intent:     TypeUIModification,
			Confidence: 0.85,
			Categories: c.taxonomy.StyleCategories(lower),
			Rationale:  "cosmetic keywords only",
			Source:     SourceFastPath,
		}, true

	case c.taxonomy.HasGenerationPhrase(lower):
		return Classification{
			Intent:     TypeGenerationRequest,
			Confidence: 0.85,
			Rationale:  "generation phrase",
			Source:     SourceFastPath,
		}, true

	case c.taxonomy.HasGreeting(lower) && len(strings.Fields(message)) <= 4:
		return Classification{
			Intent:     TypeGreeting,
			Confidence: 0.9,
			Rationale:  "greeting",
			Source:     SourceFastPath,
		}, true
	}

	return Classification{}, false
}

// slowPath delegates to the semantic collaborator with a bounded timeout.
func (c *Classifier) slowPath(ctx context.Context, message string, sctx SessionContext) Classification {
	if c.semantic == nil {
		return unclear("no semantic classifier configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.semantic.Classify(ctx, message, sctx)
	if err != nil {
		c.logger.Printf("[INTENT] semantic tier failed, degrading to UNCLEAR: %v", err)
		return unclear("semantic classifier unavailable")
	}

	if !result.Intent.Valid() {
		c.logger.Printf("[INTENT] semantic tier returned unknown intent %q", result.Intent)
		return unclear("semantic classifier returned unknown intent")
	}
	result.Confidence = clamp01(result.Confidence)
	result.Source = SourceSemantic
	return result
}

func (c *Classifier) factualClassification(lower string, confidence float64, source Source, rationale string) Classification {
	intentType := TypeDataGathering
	if c.taxonomy.HasContentVerb(lower) {
		intentType = TypeContentUpdate
	}
	return Classification{
		Intent:     intentType,
		Confidence: clamp01(confidence),
		Categories: c.taxonomy.SectionCategories(lower),
		Rationale:  rationale,
		Source:     source,
	}
}

func unclear(rationale string) Classification {
	return Classification{
		Intent:     TypeUnclear,
		Confidence: unclearConfidence,
		Rationale:  rationale,
		Source:     SourceFastPath,
	}
}

// padded lowercases and pads the message so word-boundary keywords like
// "hi " match at the edges too.
func padded(message string) string {
	return " " + strings.ToLower(strings.TrimSpace(message)) + " "
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

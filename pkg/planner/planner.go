package planner

import (
	"fmt"
	"math"
	"strings"

	"ai-resume-be/pkg/document"
	"ai-resume-be/pkg/intent"
)

// Impact is the size class of the requested change.
type Impact string

const (
	ImpactSmall   Impact = "small"
	ImpactMedium  Impact = "medium"
	ImpactLarge   Impact = "large"
	ImpactUnknown Impact = "unknown"
)

// Scope says how the change will be carried out.
type Scope string

const (
	// ScopeStyleOnly applies a cosmetic transform to the current document.
	ScopeStyleOnly Scope = "STYLE_ONLY"

	// ScopeTargeted applies a structural transform to one element.
	ScopeTargeted Scope = "TARGETED"

	// ScopeEscalate hands the change to full regeneration.
	ScopeEscalate Scope = "ESCALATE"
)

// Plan is the planner's verdict for one classified message.
type Plan struct {
	Scope     Scope
	Impact    Impact
	Transform Transform // nil when Scope is ESCALATE
	Rationale string
}

// Result is the outcome of applying a plan's transform.
type Result struct {
	Document document.Document
	Applied  bool
	Rejected bool // integrity check failed, Document is the input unchanged
	Reason   string
}

// ImpactKeywords is the injected vocabulary for impact estimation.
type ImpactKeywords struct {
	Small  []string
	Medium []string
	Large  []string

	// AdditiveVerbs count as large only when aimed at resume content:
	// "add my internship" brings new material, "add more space" is a
	// spacing request.
	AdditiveVerbs []string
	ContentNouns  []string
}

// DefaultImpactKeywords returns the stock vocabulary.
func DefaultImpactKeywords() ImpactKeywords {
	return ImpactKeywords{
		Small: []string{
			"bold", "italic", "color", "colour", "font", "bigger", "larger",
			"smaller", "size", "spacing", "compact", "tighter", "more space",
		},
		Medium: []string{
			"layout", "reorder", "rearrange", "move", "format", "style",
			"table", "column", "contact",
		},
		Large: []string{
			"remove", "delete", "rewrite", "new section", "restructure",
			"another job", "more experience",
		},
		AdditiveVerbs: []string{"add ", "include"},
		ContentNouns: []string{
			"experience", "job", "intern", "position", "company", "role",
			"skill", "education", "degree", "project", "certification",
			"summary",
		},
	}
}

// Config carries the planner tunables. Zero values fall back to the
// defaults below.
type Config struct {
	// MinConfidence is the floor below which the planner refuses to apply a
	// local transform. Stricter than the classifier's fast-path threshold.
	MinConfidence float64

	// MaxWordDelta is the relative word-count change the integrity check
	// tolerates, markup excluded.
	MaxWordDelta float64
}

const (
	defaultMinConfidence = 0.6
	defaultMaxWordDelta  = 0.10
)

// Planner turns a classified message into a Plan and applies local
// transforms under an integrity check.
type Planner struct {
	keywords      ImpactKeywords
	minConfidence float64
	maxWordDelta  float64
}

func NewPlanner(keywords ImpactKeywords, cfg Config) *Planner {
	if cfg.MinConfidence <= 0 {
		cfg.MinConfidence = defaultMinConfidence
	}
	if cfg.MaxWordDelta <= 0 {
		cfg.MaxWordDelta = defaultMaxWordDelta
	}
	return &Planner{
		keywords:      keywords,
		minConfidence: cfg.MinConfidence,
		maxWordDelta:  cfg.MaxWordDelta,
	}
}

// EstimateImpact classifies the change size from the message vocabulary.
// Large wins over medium wins over small when several match.
func (p *Planner) EstimateImpact(message string) Impact {
	lower := " " + strings.ToLower(strings.TrimSpace(message)) + " "
	additive := containsAnyWord(lower, p.keywords.AdditiveVerbs) &&
		containsAnyWord(lower, p.keywords.ContentNouns)
	switch {
	case containsAnyWord(lower, p.keywords.Large) || additive:
		return ImpactLarge
	case containsAnyWord(lower, p.keywords.Medium):
		return ImpactMedium
	case containsAnyWord(lower, p.keywords.Small):
		return ImpactSmall
	}
	return ImpactUnknown
}

// Plan decides whether the change can be applied locally. It never errors;
// anything it cannot handle safely becomes an ESCALATE plan.
func (p *Planner) Plan(cls intent.Classification, message string, doc document.Document) Plan {
	impact := p.EstimateImpact(message)

	switch {
	case cls.Intent == intent.TypeGenerationRequest:
		return escalate(impact, "explicit generation request")
	case cls.IsFactual():
		return escalate(impact, "factual change requires regeneration")
	case cls.Confidence < p.minConfidence:
		return escalate(impact, fmt.Sprintf("confidence %.2f below planning floor", cls.Confidence))
	case doc.IsEmpty():
		return escalate(impact, "no document to edit yet")
	case impact == ImpactLarge:
		return escalate(impact, "large structural change")
	}

	transform, rationale := p.selectTransform(message)
	if transform == nil {
		return escalate(impact, "no local transform matches the request")
	}

	scope := ScopeStyleOnly
	if impact == ImpactMedium {
		scope = ScopeTargeted
	}
	return Plan{Scope: scope, Impact: impact, Transform: transform, Rationale: rationale}
}

// CanApplyLocally is a convenience wrapper for callers that only need the
// yes/no answer.
func (p *Planner) CanApplyLocally(cls intent.Classification, message string, doc document.Document) bool {
	return p.Plan(cls, message, doc).Scope != ScopeEscalate
}

// Apply runs the plan's transform and verifies document integrity: a
// cosmetic or targeted edit must not change the prose word count by more
// than the configured fraction. On rejection the input document is returned
// untouched.
func (p *Planner) Apply(plan Plan, doc document.Document) Result {
	if plan.Transform == nil {
		return Result{Document: doc, Reason: "plan has no transform"}
	}

	out := plan.Transform(doc)

	before := document.WordCount(doc.Text())
	after := document.WordCount(out.Text())
	if exceedsDelta(before, after, p.maxWordDelta) {
		return Result{
			Document: doc,
			Rejected: true,
			Reason:   fmt.Sprintf("integrity check: word count %d -> %d", before, after),
		}
	}

	return Result{Document: out, Applied: true}
}

// selectTransform maps the request vocabulary to one concrete transform.
// Order matters: the most specific match wins.
func (p *Planner) selectTransform(message string) (Transform, string) {
	lower := strings.ToLower(message)

	mentionsName := strings.Contains(lower, "name") || strings.Contains(lower, "header") ||
		strings.Contains(lower, "title")

	switch {
	case strings.Contains(lower, "bold") && mentionsName:
		return BoldNameLine, "bold the name line"

	case strings.Contains(lower, "italic") && mentionsName:
		return ItalicNameLine, "italicize the name line"

	case (strings.Contains(lower, "color") || strings.Contains(lower, "colour")) &&
		detectColor(lower) != "":
		color := detectColor(lower)
		return ColorHeadings(color), "color section headings " + color

	case strings.Contains(lower, "contact") &&
		(strings.Contains(lower, "compact") || strings.Contains(lower, "one line") ||
			strings.Contains(lower, "merge")):
		return CompactContactLines, "merge contact details onto one line"

	case strings.Contains(lower, "compact") || strings.Contains(lower, "tighter") ||
		strings.Contains(lower, "less space"):
		return TightenSectionSpacing, "tighten section spacing"

	case strings.Contains(lower, "more space") || strings.Contains(lower, "spacious") ||
		strings.Contains(lower, "breathing room"):
		return EnsureSectionBreaks, "add breathing room between sections"

	case strings.Contains(lower, "blank lines") || strings.Contains(lower, "empty lines"):
		return CollapseBlankLines, "collapse runs of blank lines"
	}

	return nil, ""
}

func escalate(impact Impact, rationale string) Plan {
	return Plan{Scope: ScopeEscalate, Impact: impact, Rationale: rationale}
}

func exceedsDelta(before, after int, maxDelta float64) bool {
	if before == 0 {
		return after != 0
	}
	delta := math.Abs(float64(after-before)) / float64(before)
	return delta > maxDelta
}

func containsAnyWord(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

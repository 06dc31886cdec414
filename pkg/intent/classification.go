package intent

// Type is the canonical intent category for one user message.
type Type string

const (
	TypeUIModification    Type = "UI_MODIFICATION"
	TypeContentUpdate     Type = "CONTENT_UPDATE"
	TypeDataGathering     Type = "DATA_GATHERING"
	TypeGenerationRequest Type = "GENERATION_REQUEST"
	TypeQuestion          Type = "QUESTION"
	TypeGreeting          Type = "GREETING"
	TypeUnclear           Type = "UNCLEAR"
)

// Source tells which tier produced the classification.
type Source string

const (
	SourceFastPath Source = "fast-path"
	SourceSemantic Source = "semantic"
)

// Classification is the immutable result for one message.
type Classification struct {
	Intent     Type
	Confidence float64
	Categories []string
	Rationale  string
	Source     Source
}

// IsFactual reports whether the intent carries factual content that must not
// be lost to a cosmetic interpretation.
func (c Classification) IsFactual() bool {
	return c.Intent == TypeContentUpdate || c.Intent == TypeDataGathering
}

// SessionContext is the per-session signal the classifier may use.
type SessionContext struct {
	HasDocument bool
	HasFacts    bool
	LastIntent  Type
}

// Valid reports whether t is one of the canonical categories.
func (t Type) Valid() bool {
	switch t {
	case TypeUIModification, TypeContentUpdate, TypeDataGathering,
		TypeGenerationRequest, TypeQuestion, TypeGreeting, TypeUnclear:
		return true
	}
	return false
}

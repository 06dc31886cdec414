package intent

import "strings"

// Taxonomy holds the keyword vocabulary the fast path matches against. It is
// injected rather than kept as package state so tests and tenants can tune it
// without touching the classifier.
type Taxonomy struct {
	Greetings []string

	// Cosmetic vocabulary, split by category tag.
	StyleFont    []string
	StyleColor   []string
	StyleSize    []string
	StyleSpacing []string
	StyleLayout  []string

	// Verbs that change existing facts ("add", "update", "change my", ...).
	ContentVerbs []string

	// Phrases that state new facts ("worked at", "my name is", ...).
	FactSignals []string

	// Section vocabulary, split by category tag.
	SectionExperience []string
	SectionEducation  []string
	SectionSkills     []string
	SectionPersonal   []string

	GenerationPhrases []string
}

// DefaultTaxonomy returns the stock vocabulary.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		Greetings: []string{"hello", "hi ", "hey", "good morning", "good afternoon", "thanks", "thank you"},

		StyleFont:    []string{"bold", "italic", "underline", "font"},
		StyleColor:   []string{"color", "colour", "blue", "red", "green", "navy"},
		StyleSize:    []string{"larger", "smaller", "bigger", "size"},
		StyleSpacing: []string{"spacing", "compact", "tighter", "margins", "more space"},
		StyleLayout:  []string{"layout", "style", "format", "table", "column", "reorder"},

		ContentVerbs: []string{"add ", "update", "change my", "remove", "delete"},

		FactSignals: []string{
			"worked at", "worked as", "studied at", "graduated from",
			"my name is", "my email", "my phone", "i have experience",
			"my skills", "i interned",
		},

		SectionExperience: []string{"experience", "worked", "job", "intern", "position", "company"},
		SectionEducation:  []string{"education", "studied", "degree", "university", "school"},
		SectionSkills:     []string{"skill", "skills", "technologies"},
		SectionPersonal:   []string{"name", "phone", "email", "address", "linkedin"},

		GenerationPhrases: []string{
			"generate resume", "generate my resume", "create resume",
			"create my resume", "build resume", "build my resume",
			"make my resume", "i'm ready", "im ready", "let's generate",
		},
	}
}

// StyleCategories returns the cosmetic category tags present in the message.
func (t Taxonomy) StyleCategories(lower string) []string {
	var cats []string
	for tag, words := range map[string][]string{
		"font":    t.StyleFont,
		"color":   t.StyleColor,
		"size":    t.StyleSize,
		"spacing": t.StyleSpacing,
		"layout":  t.StyleLayout,
	} {
		if containsAny(lower, words) {
			cats = append(cats, tag)
		}
	}
	return cats
}

// SectionCategories returns the factual category tags present in the message.
func (t Taxonomy) SectionCategories(lower string) []string {
	var cats []string
	for tag, words := range map[string][]string{
		"experience":    t.SectionExperience,
		"education":     t.SectionEducation,
		"skills":        t.SectionSkills,
		"personal_info": t.SectionPersonal,
	} {
		if containsAny(lower, words) {
			cats = append(cats, tag)
		}
	}
	return cats
}

func (t Taxonomy) HasStyleSignal(lower string) bool {
	return containsAny(lower, t.StyleFont) ||
		containsAny(lower, t.StyleColor) ||
		containsAny(lower, t.StyleSize) ||
		containsAny(lower, t.StyleSpacing) ||
		containsAny(lower, t.StyleLayout)
}

func (t Taxonomy) HasContentSignal(lower string) bool {
	if containsAny(lower, t.FactSignals) {
		return true
	}
	// A content verb only counts when aimed at a factual section; "make the
	// header larger" must not trip on "larger".
	return containsAny(lower, t.ContentVerbs) && len(t.SectionCategories(lower)) > 0
}

func (t Taxonomy) HasFactStatement(lower string) bool {
	return containsAny(lower, t.FactSignals)
}

func (t Taxonomy) HasContentVerb(lower string) bool {
	return containsAny(lower, t.ContentVerbs)
}

func (t Taxonomy) HasGenerationPhrase(lower string) bool {
	return containsAny(lower, t.GenerationPhrases)
}

func (t Taxonomy) HasGreeting(lower string) bool {
	return containsAny(lower, t.Greetings)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

package layout

import (
	"fmt"

	"ai-resume-be/pkg/document"
)

// Metrics are the raw density inputs measured from a document.
type Metrics struct {
	LineCount    int `json:"line_count"`
	HeadingCount int `json:"heading_count"`
	BulletCount  int `json:"bullet_count"`
	WordCount    int `json:"word_count"`
}

// Analyze measures a document. Blank lines do not count toward LineCount.
func Analyze(doc document.Document) Metrics {
	m := Metrics{WordCount: doc.WordCount()}
	for _, line := range doc.Lines() {
		switch {
		case document.IsHeadingLine(line):
			m.HeadingCount++
			m.LineCount++
		case document.IsBulletLine(line):
			m.BulletCount++
			m.LineCount++
		case len(line) > 0:
			m.LineCount++
		}
	}
	return m
}

// Score folds the metrics into one density number.
func (w Weights) Score(m Metrics) float64 {
	return w.Lines*float64(m.LineCount) +
		w.Headings*float64(m.HeadingCount) +
		w.Bullets*float64(m.BulletCount) +
		w.Words*float64(m.WordCount)
}

// Fit is the chosen typography for one document on one target.
type Fit struct {
	Target      Target  `json:"target"`
	Tier        Tier    `json:"tier"`
	Score       float64 `json:"score"`
	Metrics     Metrics `json:"metrics"`
	Fonts       FontSet `json:"fonts"`
	LineSpacing float64 `json:"line_spacing"`
	MarginScale float64 `json:"margin_scale"`
}

// Fitter maps documents to fits under one validated policy. It is safe for
// concurrent use.
type Fitter struct {
	cfg   Config
	scale float64
}

// NewFitter validates the policy once so Fit can never fail.
func NewFitter(cfg Config) (*Fitter, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("new fitter: %w", err)
	}
	scale, _ := cfg.Profile.scale()
	return &Fitter{cfg: cfg, scale: scale}, nil
}

// Fit scores the document and picks the first tier whose scaled ceiling
// admits it. Denser documents can only move toward tighter tiers.
func (f *Fitter) Fit(doc document.Document) Fit {
	metrics := Analyze(doc)
	score := f.cfg.Weights.Score(metrics)

	tier := f.cfg.Tiers[len(f.cfg.Tiers)-1]
	for _, candidate := range f.cfg.Tiers {
		if score < candidate.MaxScore*f.scale {
			tier = candidate
			break
		}
	}

	return Fit{
		Target:      f.cfg.Target,
		Tier:        tier.Tier,
		Score:       score,
		Metrics:     metrics,
		Fonts:       tier.Fonts,
		LineSpacing: tier.LineSpacing,
		MarginScale: tier.MarginScale,
	}
}

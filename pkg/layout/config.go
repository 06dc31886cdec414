package layout

import (
	"fmt"
	"math"
)

// Target is the render format a fit is computed for.
type Target string

const (
	TargetPDF  Target = "pdf"
	TargetDOCX Target = "docx"
)

// Tier names one density band, from roomiest to tightest.
type Tier string

const (
	TierComfortable Tier = "comfortable"
	TierBalanced    Tier = "balanced"
	TierCompact     Tier = "compact"
	TierDense       Tier = "dense"
	TierUltraDense  Tier = "ultra_dense"
)

// Weights are the per-metric multipliers of the density score.
type Weights struct {
	Lines    float64 `json:"lines"`
	Headings float64 `json:"headings"`
	Bullets  float64 `json:"bullets"`
	Words    float64 `json:"words"`
}

// DefaultWeights returns the stock score weights.
func DefaultWeights() Weights {
	return Weights{Lines: 1.2, Headings: 2.5, Bullets: 1.8, Words: 0.12}
}

// FontSet is one pre-authored typography tuple, in points.
type FontSet struct {
	Name    float64 `json:"name"`
	Heading float64 `json:"heading"`
	Body    float64 `json:"body"`
	Caption float64 `json:"caption"`
}

// TierSpec binds a tier to its score ceiling and typography. MaxScore is
// exclusive; the last tier should use +Inf as the catch-all.
type TierSpec struct {
	Tier        Tier    `json:"tier"`
	MaxScore    float64 `json:"max_score"`
	Fonts       FontSet `json:"fonts"`
	LineSpacing float64 `json:"line_spacing"`
	MarginScale float64 `json:"margin_scale"`
}

// Profile scales the tier ceilings: conservative drops into denser tiers
// later, aggressive earlier.
type Profile string

const (
	ProfileConservative Profile = "conservative"
	ProfileBalanced     Profile = "balanced"
	ProfileAggressive   Profile = "aggressive"
)

func (p Profile) scale() (float64, error) {
	switch p {
	case ProfileConservative:
		return 1.15, nil
	case ProfileBalanced, "":
		return 1.0, nil
	case ProfileAggressive:
		return 0.85, nil
	}
	return 0, fmt.Errorf("unknown sensitivity profile %q", p)
}

// Config is a complete, per-target fitting policy.
type Config struct {
	Target  Target   `json:"target"`
	Weights Weights  `json:"weights"`
	Profile Profile  `json:"profile"`
	Tiers   []TierSpec `json:"tiers"`

	// Hard typography bounds every tier must respect.
	MinBodyFont    float64 `json:"min_body_font"`
	MaxBodyFont    float64 `json:"max_body_font"`
	MaxHeaderRatio float64 `json:"max_header_ratio"`
}

// DefaultPDFConfig returns the stock PDF policy.
func DefaultPDFConfig() Config {
	return Config{
		Target:         TargetPDF,
		Weights:        DefaultWeights(),
		Profile:        ProfileBalanced,
		MinBodyFont:    8.0,
		MaxBodyFont:    11.0,
		MaxHeaderRatio: 1.6,
		Tiers: []TierSpec{
			{
				Tier:        TierComfortable,
				MaxScore:    110,
				Fonts:       FontSet{Name: 16.5, Heading: 13.0, Body: 10.5, Caption: 9.0},
				LineSpacing: 1.4,
				MarginScale: 1.0,
			},
			{
				Tier:        TierBalanced,
				MaxScore:    150,
				Fonts:       FontSet{Name: 16.0, Heading: 12.5, Body: 10.0, Caption: 8.5},
				LineSpacing: 1.3,
				MarginScale: 0.9,
			},
			{
				Tier:        TierCompact,
				MaxScore:    190,
				Fonts:       FontSet{Name: 15.0, Heading: 11.5, Body: 9.5, Caption: 8.0},
				LineSpacing: 1.2,
				MarginScale: 0.8,
			},
			{
				Tier:        TierDense,
				MaxScore:    230,
				Fonts:       FontSet{Name: 14.0, Heading: 11.0, Body: 9.0, Caption: 7.5},
				LineSpacing: 1.12,
				MarginScale: 0.7,
			},
			{
				Tier:        TierUltraDense,
				MaxScore:    math.Inf(1),
				Fonts:       FontSet{Name: 13.0, Heading: 10.5, Body: 8.5, Caption: 7.0},
				LineSpacing: 1.05,
				MarginScale: 0.6,
			},
		},
	}
}

// DefaultDOCXConfig returns the stock DOCX policy. Word pages hold a little
// less text per point than the PDF renderer, so the ceilings sit lower.
func DefaultDOCXConfig() Config {
	cfg := DefaultPDFConfig()
	cfg.Target = TargetDOCX
	for i := range cfg.Tiers {
		if !math.IsInf(cfg.Tiers[i].MaxScore, 1) {
			cfg.Tiers[i].MaxScore -= 10
		}
		cfg.Tiers[i].LineSpacing += 0.05
	}
	return cfg
}

// DefaultConfig returns the stock policy for a target.
func DefaultConfig(target Target) (Config, error) {
	switch target {
	case TargetPDF:
		return DefaultPDFConfig(), nil
	case TargetDOCX:
		return DefaultDOCXConfig(), nil
	}
	return Config{}, fmt.Errorf("unknown render target %q", target)
}

// validate rejects any policy that could produce a non-monotonic or
// out-of-bounds fit at runtime.
func (c Config) validate() error {
	if len(c.Tiers) == 0 {
		return fmt.Errorf("layout config %s: no tiers", c.Target)
	}
	if !math.IsInf(c.Tiers[len(c.Tiers)-1].MaxScore, 1) {
		return fmt.Errorf("layout config %s: last tier must be the catch-all", c.Target)
	}
	if c.MaxHeaderRatio <= 1 {
		return fmt.Errorf("layout config %s: max header ratio %.2f must exceed 1", c.Target, c.MaxHeaderRatio)
	}

	prev := TierSpec{MaxScore: math.Inf(-1), Fonts: FontSet{
		Name: math.Inf(1), Heading: math.Inf(1), Body: math.Inf(1), Caption: math.Inf(1),
	}, LineSpacing: math.Inf(1), MarginScale: math.Inf(1)}

	for _, tier := range c.Tiers {
		if tier.MaxScore <= prev.MaxScore {
			return fmt.Errorf("layout config %s: tier %s ceiling %.1f is not increasing", c.Target, tier.Tier, tier.MaxScore)
		}
		f, pf := tier.Fonts, prev.Fonts
		if f.Name > pf.Name || f.Heading > pf.Heading || f.Body > pf.Body || f.Caption > pf.Caption {
			return fmt.Errorf("layout config %s: tier %s fonts grow against density", c.Target, tier.Tier)
		}
		if f.Body < c.MinBodyFont || f.Body > c.MaxBodyFont {
			return fmt.Errorf("layout config %s: tier %s body font %.1f outside [%.1f, %.1f]",
				c.Target, tier.Tier, f.Body, c.MinBodyFont, c.MaxBodyFont)
		}
		if f.Body <= 0 || f.Name/f.Body > c.MaxHeaderRatio {
			return fmt.Errorf("layout config %s: tier %s name/body ratio %.2f exceeds %.2f",
				c.Target, tier.Tier, f.Name/f.Body, c.MaxHeaderRatio)
		}
		if tier.LineSpacing > prev.LineSpacing {
			return fmt.Errorf("layout config %s: tier %s line spacing grows against density", c.Target, tier.Tier)
		}
		if tier.MarginScale <= 0 || tier.MarginScale > 1 {
			return fmt.Errorf("layout config %s: tier %s margin scale %.2f outside (0, 1]",
				c.Target, tier.Tier, tier.MarginScale)
		}
		if tier.MarginScale > prev.MarginScale {
			return fmt.Errorf("layout config %s: tier %s margin scale grows against density", c.Target, tier.Tier)
		}
		prev = tier
	}

	if _, err := c.Profile.scale(); err != nil {
		return fmt.Errorf("layout config %s: %w", c.Target, err)
	}
	return nil
}

package layout

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"ai-resume-be/pkg/document"
)

// syntheticResume builds a document with the given number of sections, each
// carrying the given number of bullets.
func syntheticResume(sections, bulletsPerSection int) document.Document {
	var b strings.Builder
	b.WriteString("# Jane Doe\njane@example.com\n")
	for s := 0; s < sections; s++ {
		fmt.Fprintf(&b, "\n## Section %d\n", s+1)
		for i := 0; i < bulletsPerSection; i++ {
			fmt.Fprintf(&b, "- Delivered measurable outcome number %d for the team\n", i+1)
		}
	}
	return document.New(b.String())
}

func TestAnalyze(t *testing.T) {
	doc := document.New("# Jane Doe\njane@example.com\n\n## Experience\n- one thing\n- another thing\nplain paragraph")

	m := Analyze(doc)

	if m.HeadingCount != 1 {
		t.Errorf("HeadingCount = %d, want 1", m.HeadingCount)
	}
	if m.BulletCount != 2 {
		t.Errorf("BulletCount = %d, want 2", m.BulletCount)
	}
	// Blank line is excluded.
	if m.LineCount != 6 {
		t.Errorf("LineCount = %d, want 6", m.LineCount)
	}
	if m.WordCount == 0 {
		t.Error("WordCount = 0")
	}
}

func TestScoreUsesAllWeights(t *testing.T) {
	w := DefaultWeights()
	m := Metrics{LineCount: 10, HeadingCount: 4, BulletCount: 5, WordCount: 100}

	want := 1.2*10 + 2.5*4 + 1.8*5 + 0.12*100
	if got := w.Score(m); math.Abs(got-want) > 1e-9 {
		t.Fatalf("Score = %.4f, want %.4f", got, want)
	}
}

func TestFitTierSelection(t *testing.T) {
	fitter, err := NewFitter(DefaultPDFConfig())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		doc  document.Document
		want Tier
	}{
		{"short resume", syntheticResume(2, 3), TierComfortable},
		{"long resume", syntheticResume(6, 8), TierDense},
		{"oversized resume", syntheticResume(10, 14), TierUltraDense},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fit := fitter.Fit(tt.doc)
			if fit.Tier != tt.want {
				t.Errorf("tier = %s (score %.1f), want %s", fit.Tier, fit.Score, tt.want)
			}
		})
	}
}

// Growing a document must never yield larger fonts or looser spacing.
func TestFitIsMonotonic(t *testing.T) {
	fitter, err := NewFitter(DefaultPDFConfig())
	if err != nil {
		t.Fatal(err)
	}

	prev := fitter.Fit(syntheticResume(1, 1))
	for bullets := 2; bullets <= 60; bullets += 3 {
		fit := fitter.Fit(syntheticResume(4, bullets))
		if fit.Score < prev.Score {
			continue
		}
		if fit.Fonts.Body > prev.Fonts.Body ||
			fit.Fonts.Name > prev.Fonts.Name ||
			fit.LineSpacing > prev.LineSpacing {
			t.Fatalf("denser document got roomier typography: %+v after %+v", fit, prev)
		}
		prev = fit
	}
}

func TestFitRespectsBounds(t *testing.T) {
	for _, target := range []Target{TargetPDF, TargetDOCX} {
		cfg, err := DefaultConfig(target)
		if err != nil {
			t.Fatal(err)
		}
		fitter, err := NewFitter(cfg)
		if err != nil {
			t.Fatal(err)
		}

		for bullets := 1; bullets <= 80; bullets += 7 {
			fit := fitter.Fit(syntheticResume(5, bullets))
			if fit.Fonts.Body < cfg.MinBodyFont || fit.Fonts.Body > cfg.MaxBodyFont {
				t.Fatalf("%s: body font %.1f outside bounds", target, fit.Fonts.Body)
			}
			if ratio := fit.Fonts.Name / fit.Fonts.Body; ratio > cfg.MaxHeaderRatio+1e-9 {
				t.Fatalf("%s: name/body ratio %.3f exceeds %.1f", target, ratio, cfg.MaxHeaderRatio)
			}
		}
	}
}

func TestProfilesOrderTierPressure(t *testing.T) {
	doc := syntheticResume(4, 6)

	tierRank := map[Tier]int{
		TierComfortable: 0, TierBalanced: 1, TierCompact: 2, TierDense: 3, TierUltraDense: 4,
	}

	fitFor := func(p Profile) Fit {
		cfg := DefaultPDFConfig()
		cfg.Profile = p
		fitter, err := NewFitter(cfg)
		if err != nil {
			t.Fatal(err)
		}
		return fitter.Fit(doc)
	}

	conservative := fitFor(ProfileConservative)
	balanced := fitFor(ProfileBalanced)
	aggressive := fitFor(ProfileAggressive)

	if tierRank[conservative.Tier] > tierRank[balanced.Tier] {
		t.Errorf("conservative (%s) tighter than balanced (%s)", conservative.Tier, balanced.Tier)
	}
	if tierRank[balanced.Tier] > tierRank[aggressive.Tier] {
		t.Errorf("balanced (%s) tighter than aggressive (%s)", balanced.Tier, aggressive.Tier)
	}
}

func TestNewFitterRejectsBrokenConfigs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no tiers", func(c *Config) { c.Tiers = nil }},
		{"no catch-all", func(c *Config) { c.Tiers[len(c.Tiers)-1].MaxScore = 500 }},
		{"non-increasing ceilings", func(c *Config) { c.Tiers[1].MaxScore = c.Tiers[0].MaxScore }},
		{"fonts grow with density", func(c *Config) { c.Tiers[2].Fonts.Body = 12.0; c.MaxBodyFont = 13 }},
		{"body font below floor", func(c *Config) {
			for i := range c.Tiers {
				if c.Tiers[i].Fonts.Body > 7 {
					c.Tiers[i].Fonts.Body = 7.0
				}
			}
		}},
		{"header ratio too high", func(c *Config) { c.Tiers[0].Fonts.Name = 20.0 }},
		{"margin scale above one", func(c *Config) { c.Tiers[0].MarginScale = 1.2 }},
		{"margin scale non-positive", func(c *Config) { c.Tiers[3].MarginScale = 0 }},
		{"margin scale grows with density", func(c *Config) { c.Tiers[2].MarginScale = 0.95 }},
		{"unknown profile", func(c *Config) { c.Profile = Profile("reckless") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultPDFConfig()
			tt.mutate(&cfg)
			if _, err := NewFitter(cfg); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestDOCXTiersAreTighterThanPDF(t *testing.T) {
	pdf := DefaultPDFConfig()
	docx := DefaultDOCXConfig()

	for i := range pdf.Tiers {
		if math.IsInf(pdf.Tiers[i].MaxScore, 1) {
			continue
		}
		if docx.Tiers[i].MaxScore >= pdf.Tiers[i].MaxScore {
			t.Errorf("tier %s: docx ceiling %.1f not below pdf %.1f",
				pdf.Tiers[i].Tier, docx.Tiers[i].MaxScore, pdf.Tiers[i].MaxScore)
		}
	}
}

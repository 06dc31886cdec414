package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"ai-resume-be/pkg/document"
	"ai-resume-be/pkg/intent"
	"ai-resume-be/pkg/layout"
	"ai-resume-be/pkg/planner"

	"github.com/fatih/color"
)

// Offline walkthrough of the change pipeline: classify, plan, apply and fit a
// handful of requests against a sample resume. No database, Redis or LLM
// needed; messages outside the keyword fast path simply degrade to UNCLEAR.
const sampleResume = `# Jane Doe
jane.doe@example.com
(555) 123-4567 | Portland, OR

## Experience
- Senior Engineer at Initech, led a team of four
- Engineer at Globex, shipped the billing pipeline
- Junior Developer at Hooli

## Education
- B.S. Computer Science, State University

## Skills
- Go, PostgreSQL, Redis
- Distributed systems
`

var requests = []string{
	"make my name bold",
	"make the headers blue",
	"tighten up the spacing",
	"restructure the whole layout",
	"make the headers green and add my internship at Acme",
}

func main() {
	classifier := intent.NewClassifier(
		intent.DefaultTaxonomy(),
		nil, // keyword tier only
		intent.Config{},
		log.New(os.Stderr, "", 0),
	)
	plan := planner.NewPlanner(planner.DefaultImpactKeywords(), planner.Config{})
	fitters := newFitters()

	doc := document.New(sampleResume)
	sctx := intent.SessionContext{HasDocument: true, HasFacts: true}

	color.Cyan("Resume change pipeline walkthrough\n")

	for _, message := range requests {
		color.Yellow("\nUSER: %s", message)

		cls := classifier.Classify(context.Background(), message, sctx)
		fmt.Printf("  intent: %s (%.2f, %s)\n", cls.Intent, cls.Confidence, cls.Source)

		if cls.Intent != intent.TypeUIModification {
			color.Magenta("  handled outside the local-edit path")
			continue
		}

		p := plan.Plan(cls, message, doc)
		fmt.Printf("  plan: scope=%s impact=%s (%s)\n", p.Scope, p.Impact, p.Rationale)
		if p.Scope == planner.ScopeEscalate {
			color.Magenta("  escalated to full regeneration")
			continue
		}

		res := plan.Apply(p, doc)
		if res.Rejected {
			color.Red("  rejected: %s", res.Reason)
			continue
		}
		color.Green("  applied, first line now: %q", res.Document.Lines()[0])
		doc = res.Document
	}

	color.Cyan("\nLayout fits for the final document:")
	for target, fitter := range fitters {
		fit := fitter.Fit(doc)
		fmt.Printf("  %-4s score=%.1f tier=%s body=%.1fpt spacing=%.2f\n",
			target, fit.Score, fit.Tier, fit.Fonts.Body, fit.LineSpacing)
	}
}

func newFitters() map[layout.Target]*layout.Fitter {
	fitters := make(map[layout.Target]*layout.Fitter, 2)
	for _, target := range []layout.Target{layout.TargetPDF, layout.TargetDOCX} {
		cfg, err := layout.DefaultConfig(target)
		if err != nil {
			color.Red("unknown target %q: %v", target, err)
			os.Exit(1)
		}
		fitter, err := layout.NewFitter(cfg)
		if err != nil {
			color.Red("invalid layout policy: %v", err)
			os.Exit(1)
		}
		fitters[target] = fitter
	}
	return fitters
}

// FILE: test/integration/pipeline_integration_test.go
// PURPOSE: End-to-end exercise of the change pipeline without external
//          services: classify a request, plan it, apply the transform and fit
//          the result for both render targets.

package integration

import (
	"context"
	"io"
	"log"
	"testing"

	"ai-resume-be/pkg/document"
	"ai-resume-be/pkg/intent"
	"ai-resume-be/pkg/layout"
	"ai-resume-be/pkg/planner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resumeFixture = `# Jane Doe
jane.doe@example.com
(555) 123-4567 | Portland, OR

## Experience
- Senior Engineer at Initech, led a team of four
- Engineer at Globex, shipped the billing pipeline

## Education
- B.S. Computer Science, State University

## Skills
- Go, PostgreSQL, Redis
`

func newPipeline(t *testing.T) (*intent.Classifier, *planner.Planner, map[layout.Target]*layout.Fitter) {
	t.Helper()

	classifier := intent.NewClassifier(
		intent.DefaultTaxonomy(),
		nil, // keyword tier only, no LLM in this test
		intent.Config{},
		log.New(io.Discard, "", 0),
	)
	plan := planner.NewPlanner(planner.DefaultImpactKeywords(), planner.Config{})

	fitters := make(map[layout.Target]*layout.Fitter, 2)
	for _, target := range []layout.Target{layout.TargetPDF, layout.TargetDOCX} {
		cfg, err := layout.DefaultConfig(target)
		require.NoError(t, err)
		fitter, err := layout.NewFitter(cfg)
		require.NoError(t, err)
		fitters[target] = fitter
	}

	return classifier, plan, fitters
}

func TestLocalStyleChangeEndToEnd(t *testing.T) {
	classifier, plan, fitters := newPipeline(t)

	doc := document.New(resumeFixture)
	sctx := intent.SessionContext{HasDocument: true, HasFacts: true}

	cls := classifier.Classify(context.Background(), "make my name bold", sctx)
	require.Equal(t, intent.TypeUIModification, cls.Intent)
	require.Equal(t, intent.SourceFastPath, cls.Source)

	p := plan.Plan(cls, "make my name bold", doc)
	require.Equal(t, planner.ScopeStyleOnly, p.Scope)
	require.NotNil(t, p.Transform)

	res := plan.Apply(p, doc)
	require.True(t, res.Applied)
	require.False(t, res.Rejected)
	assert.Equal(t, "# **Jane Doe**", res.Document.Lines()[0])

	// Word count must survive a cosmetic change.
	assert.Equal(t, doc.WordCount(), res.Document.WordCount())

	// Both targets must produce a fit within the typography bounds.
	for target, fitter := range fitters {
		fit := fitter.Fit(res.Document)
		assert.Equal(t, target, fit.Target)
		assert.GreaterOrEqual(t, fit.Fonts.Body, 8.0, "target %s", target)
		assert.LessOrEqual(t, fit.Fonts.Body, 11.0, "target %s", target)
		assert.LessOrEqual(t, fit.Fonts.Name/fit.Fonts.Body, 1.6+1e-9, "target %s", target)
	}
}

func TestStructuralChangeEscalatesEndToEnd(t *testing.T) {
	classifier, plan, _ := newPipeline(t)

	doc := document.New(resumeFixture)
	sctx := intent.SessionContext{HasDocument: true, HasFacts: true}

	message := "restructure the whole layout"
	cls := classifier.Classify(context.Background(), message, sctx)
	require.Equal(t, intent.TypeUIModification, cls.Intent)

	p := plan.Plan(cls, message, doc)
	assert.Equal(t, planner.ScopeEscalate, p.Scope)
	assert.Nil(t, p.Transform)
}

func TestFactualRequestNeverTreatedAsCosmetic(t *testing.T) {
	classifier, _, _ := newPipeline(t)

	sctx := intent.SessionContext{HasDocument: true, HasFacts: true}
	cls := classifier.Classify(context.Background(),
		"make the headers blue and add my internship at Acme", sctx)

	assert.Equal(t, intent.TypeContentUpdate, cls.Intent)
	assert.True(t, cls.IsFactual())
}

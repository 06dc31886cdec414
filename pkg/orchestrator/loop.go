package orchestrator

import (
	"context"
	"fmt"

	"ai-resume-be/pkg/document"
	"ai-resume-be/pkg/events"
	"ai-resume-be/pkg/intent"
	"ai-resume-be/pkg/planner"
	"ai-resume-be/pkg/render"
	"ai-resume-be/pkg/store"
)

// process runs one message through the state machine. It is only ever called
// from the session's worker goroutine, so the session is never shared.
func (o *Orchestrator) process(ctx context.Context, sessionID, message string) {
	sess, ok := o.deps.Sessions.Get(sessionID)
	if !ok {
		sess = &store.Session{ID: sessionID, State: store.StateIdle}
	}
	sess.InFlight = true
	sess.LastMessage = message

	o.transition(sess, store.StateClassifying)
	o.deps.Notifier.Status(sessionID, "Understanding your request...")

	cls := o.deps.Classifier.Classify(ctx, message, intent.SessionContext{
		HasDocument: sess.Document != "",
		HasFacts:    !sess.Facts.IsEmpty(),
	})
	o.deps.Logger.Printf("[LOOP] session=%s intent=%s confidence=%.2f source=%s",
		sessionID, cls.Intent, cls.Confidence, cls.Source)

	switch cls.Intent {
	case intent.TypeGreeting:
		o.deps.Notifier.Reply(sessionID, "Hi! Tell me about your work history and I'll build your resume.")
		o.settle(sess)

	case intent.TypeQuestion:
		o.deps.Notifier.Reply(sessionID, "I turn the facts you give me into a polished resume. Share your experience, education and skills, then ask me to generate it. After that I can restyle or rewrite it on request.")
		o.settle(sess)

	case intent.TypeUnclear:
		o.deps.Notifier.Reply(sessionID, "I didn't quite get that. You can give me resume details, ask me to generate the resume, or request a styling change.")
		o.settle(sess)

	case intent.TypeDataGathering, intent.TypeContentUpdate:
		o.handleFacts(ctx, sess, message, cls)

	case intent.TypeGenerationRequest:
		o.regenerate(ctx, sess, message)

	case intent.TypeUIModification:
		o.handleUIModification(ctx, sess, message, cls)

	default:
		o.deps.Logger.Printf("[LOOP] session=%s unhandled intent %q", sessionID, cls.Intent)
		o.settle(sess)
	}
}

// handleFacts extracts and merges facts. A content update against an
// existing document also regenerates it so the change becomes visible.
func (o *Orchestrator) handleFacts(ctx context.Context, sess *store.Session, message string, cls intent.Classification) {
	o.deps.Notifier.Status(sess.ID, "Noting that down...")

	extraction, err := o.deps.Extractor.Extract(ctx, message, sess.Facts)
	if err != nil {
		o.deps.Logger.Printf("[LOOP] session=%s fact extraction failed: %v", sess.ID, err)
		o.deps.Notifier.Reply(sess.ID, "I couldn't process that just now. Could you rephrase it?")
		o.settle(sess)
		return
	}

	sess.Facts = sess.Facts.Merge(extraction.Facts)

	if cls.Intent == intent.TypeContentUpdate && sess.Document != "" {
		o.regenerate(ctx, sess, message)
		return
	}

	reply := extraction.Reply
	if reply == "" {
		reply = "Got it. Anything else to add, or shall I generate the resume?"
	}
	o.deps.Notifier.Reply(sess.ID, reply)
	o.settle(sess)
}

// handleUIModification plans a local edit and falls back to regeneration
// whenever the planner or the integrity check says no.
func (o *Orchestrator) handleUIModification(ctx context.Context, sess *store.Session, message string, cls intent.Classification) {
	o.transition(sess, store.StatePlanningEdit)

	doc := document.New(sess.Document)
	plan := o.deps.Planner.Plan(cls, message, doc)
	o.deps.Logger.Printf("[LOOP] session=%s plan scope=%s impact=%s: %s",
		sess.ID, plan.Scope, plan.Impact, plan.Rationale)

	if plan.Scope == planner.ScopeEscalate {
		o.publish(ctx, events.NewChangeEscalated(sess.ID, plan.Rationale))
		o.regenerate(ctx, sess, message)
		return
	}

	o.deps.Notifier.Status(sess.ID, "Applying your change...")
	res := o.deps.Planner.Apply(plan, doc)
	if res.Rejected {
		o.deps.Logger.Printf("[LOOP] session=%s transform rejected: %s", sess.ID, res.Reason)
		o.publish(ctx, events.NewChangeEscalated(sess.ID, res.Reason))
		o.regenerate(ctx, sess, message)
		return
	}

	if o.renderAndCommit(ctx, sess, res.Document) {
		o.deps.Notifier.Reply(sess.ID, "Done, your resume has been restyled.")
	}
}

// regenerate rebuilds the document from the gathered facts, retrying once.
// On failure the session fails and the prior document is retained.
func (o *Orchestrator) regenerate(ctx context.Context, sess *store.Session, instruction string) {
	if sess.Facts.IsEmpty() {
		o.deps.Notifier.Reply(sess.ID, "I don't have enough to work with yet. Tell me about your experience, education and skills first.")
		o.settle(sess)
		return
	}

	o.transition(sess, store.StateAwaitingGeneration)
	o.deps.Notifier.Status(sess.ID, "Generating your resume...")

	var (
		doc document.Document
		err error
	)
	for attempt := 0; attempt <= o.cfg.GenerationRetries; attempt++ {
		if attempt > 0 {
			o.deps.Logger.Printf("[LOOP] session=%s generation retry %d", sess.ID, attempt)
			o.deps.Notifier.Status(sess.ID, "That took a retry, still working...")
		}
		doc, err = o.deps.Generator.Generate(ctx, sess.Facts, instruction)
		if err == nil {
			break
		}
	}
	if err != nil {
		o.fail(ctx, sess, fmt.Errorf("%w: %v", ErrGenerationFailed, err),
			"I couldn't generate the resume right now. Your previous version is untouched, please try again.")
		return
	}

	o.publish(ctx, events.NewResumeGenerated(sess.ID, doc.WordCount()))

	if o.renderAndCommit(ctx, sess, doc) {
		o.deps.Notifier.Reply(sess.ID, "Here's your updated resume.")
	}
}

// renderAndCommit renders the candidate document for every configured
// target and commits it only when all renders succeed. Returns true on
// commit.
func (o *Orchestrator) renderAndCommit(ctx context.Context, sess *store.Session, doc document.Document) bool {
	o.transition(sess, store.StateRendering)
	o.deps.Notifier.Status(sess.ID, "Rendering your documents...")

	artifacts := make([]render.Artifact, 0, len(o.deps.Fitters))
	for target, fitter := range o.deps.Fitters {
		fit := fitter.Fit(doc)
		o.deps.Logger.Printf("[LOOP] session=%s target=%s tier=%s score=%.1f",
			sess.ID, target, fit.Tier, fit.Score)

		artifact, err := o.deps.Renderer.Render(ctx, doc, fit)
		if err != nil {
			o.fail(ctx, sess, fmt.Errorf("%w: %s: %v", ErrRenderingFailed, target, err),
				"Rendering failed, so I kept your previous version. Please try again.")
			return false
		}
		artifacts = append(artifacts, artifact)
		o.publish(ctx, events.NewDocumentRendered(sess.ID, string(target), string(fit.Tier)))
	}

	sess.Document = doc.Text()
	o.transition(sess, store.StateDone)
	sess.InFlight = false
	o.deps.Sessions.Save(sess)

	o.deps.Notifier.Document(sess.ID, sess.Document)
	for _, artifact := range artifacts {
		o.deps.Notifier.Artifact(sess.ID, artifact)
	}
	return true
}

// fail parks the session in the failed state without touching its document.
func (o *Orchestrator) fail(ctx context.Context, sess *store.Session, err error, reply string) {
	o.deps.Logger.Printf("[LOOP] session=%s failed: %v", sess.ID, err)
	o.publish(ctx, events.NewSessionFailed(sess.ID, err.Error()))

	o.transition(sess, store.StateFailed)
	sess.InFlight = false
	o.deps.Sessions.Save(sess)
	o.deps.Notifier.Reply(sess.ID, reply)
}

// settle returns a session to its resting state after a non-mutating turn.
func (o *Orchestrator) settle(sess *store.Session) {
	if sess.Document != "" {
		sess.State = store.StateDone
	} else {
		sess.State = store.StateIdle
	}
	sess.InFlight = false
	o.deps.Sessions.Save(sess)
}

func (o *Orchestrator) transition(sess *store.Session, state string) {
	o.deps.Logger.Printf("[LOOP] session=%s %s -> %s", sess.ID, sess.State, state)
	sess.State = state
	o.deps.Sessions.Save(sess)
}

func (o *Orchestrator) publish(ctx context.Context, event events.Event) {
	if o.deps.Bus == nil {
		return
	}
	if err := o.deps.Bus.Publish(ctx, event); err != nil {
		o.deps.Logger.Printf("[LOOP] publish %s failed: %v", event.EventType(), err)
	}
}

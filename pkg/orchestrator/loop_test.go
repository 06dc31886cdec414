package orchestrator

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"ai-resume-be/pkg/document"
	"ai-resume-be/pkg/events"
	"ai-resume-be/pkg/facts"
	"ai-resume-be/pkg/intent"
	"ai-resume-be/pkg/layout"
	"ai-resume-be/pkg/planner"
	"ai-resume-be/pkg/render"
	"ai-resume-be/pkg/store"
)

const generatedResume = `# Jane Doe
jane@example.com

## Experience
- Software engineer at Acme

## Skills
- Go`

type fakeNotifier struct {
	mu        sync.Mutex
	replies   []string
	statuses  []string
	documents []string
	artifacts []render.Artifact
}

func (f *fakeNotifier) Reply(_, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies = append(f.replies, message)
}

func (f *fakeNotifier) Status(_, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, message)
}

func (f *fakeNotifier) Document(_, markdown string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.documents = append(f.documents, markdown)
}

func (f *fakeNotifier) Artifact(_ string, artifact render.Artifact) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.artifacts = append(f.artifacts, artifact)
}

func (f *fakeNotifier) hasStatus(substr string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.statuses {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]store.Session
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]store.Session)}
}

func (f *fakeSessionStore) Save(s *store.Session) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[s.ID] = *s
}

func (f *fakeSessionStore) Get(id string) (*store.Session, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return nil, false
	}
	copied := s
	return &copied, true
}

func (f *fakeSessionStore) Delete(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, id)
}

type fakeExtractor struct {
	extraction facts.Extraction
	err        error
}

func (f *fakeExtractor) Extract(_ context.Context, _ string, _ facts.Resume) (facts.Extraction, error) {
	return f.extraction, f.err
}

type fakeGenerator struct {
	mu       sync.Mutex
	failures int
	calls    int
	output   string
	release  chan struct{} // when set, Generate blocks until closed
}

func (f *fakeGenerator) Generate(_ context.Context, _ facts.Resume, _ string) (document.Document, error) {
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failures > 0 {
		f.failures--
		return document.Document{}, errors.New("model unavailable")
	}
	return document.New(f.output), nil
}

type fakeRenderer struct {
	err error
}

func (f *fakeRenderer) Render(_ context.Context, _ document.Document, fit layout.Fit) (render.Artifact, error) {
	if f.err != nil {
		return render.Artifact{}, f.err
	}
	return render.Artifact{Format: fit.Target, ContentType: "application/test", Data: []byte("bytes")}, nil
}

type fakeBus struct {
	mu    sync.Mutex
	types []string
}

func (f *fakeBus) Publish(_ context.Context, e events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.types = append(f.types, e.EventType())
	return nil
}

func (f *fakeBus) has(eventType string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.types {
		if t == eventType {
			return true
		}
	}
	return false
}

type harness struct {
	orch      *Orchestrator
	notifier  *fakeNotifier
	sessions  *fakeSessionStore
	generator *fakeGenerator
	renderer  *fakeRenderer
	bus       *fakeBus
	extractor *fakeExtractor
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	fitter, err := layout.NewFitter(layout.DefaultPDFConfig())
	if err != nil {
		t.Fatal(err)
	}

	h := &harness{
		notifier:  &fakeNotifier{},
		sessions:  newFakeSessionStore(),
		generator: &fakeGenerator{output: generatedResume},
		renderer:  &fakeRenderer{},
		bus:       &fakeBus{},
		extractor: &fakeExtractor{extraction: facts.Extraction{Reply: "Noted. What role did you have?"}},
	}

	h.orch = New(Deps{
		Classifier: intent.NewClassifier(intent.DefaultTaxonomy(), nil, intent.Config{}, discardLogger()),
		Planner:    planner.NewPlanner(planner.DefaultImpactKeywords(), planner.Config{}),
		Fitters:    map[layout.Target]*layout.Fitter{layout.TargetPDF: fitter},
		Generator:  h.generator,
		Extractor:  h.extractor,
		Renderer:   h.renderer,
		Sessions:   h.sessions,
		Notifier:   h.notifier,
		Bus:        h.bus,
		Logger:     discardLogger(),
	}, Config{})

	return h
}

func (h *harness) session(t *testing.T, id string) *store.Session {
	t.Helper()
	sess, ok := h.sessions.Get(id)
	if !ok {
		t.Fatalf("session %s not saved", id)
	}
	return sess
}

func someFacts() facts.Resume {
	return facts.Resume{
		Profile:    facts.Profile{Name: "Jane Doe", Email: "jane@example.com"},
		Experience: []facts.Experience{{Company: "Acme", Position: "Engineer"}},
		Skills:     []string{"Go"},
	}
}

func TestDataGatheringMergesFactsAndReplies(t *testing.T) {
	h := newHarness(t)
	h.extractor.extraction.Facts = facts.Resume{Skills: []string{"Go", "SQL"}}

	h.orch.process(context.Background(), "s1", "I worked at Acme as an engineer")

	sess := h.session(t, "s1")
	if sess.State != store.StateIdle {
		t.Errorf("state = %s, want IDLE", sess.State)
	}
	if len(sess.Facts.Skills) != 2 {
		t.Errorf("facts not merged: %+v", sess.Facts)
	}
	if len(h.notifier.replies) == 0 {
		t.Fatal("no reply sent")
	}
}

func TestGenerationWithoutFactsAsksForThem(t *testing.T) {
	h := newHarness(t)

	h.orch.process(context.Background(), "s1", "generate my resume")

	if h.generator.calls != 0 {
		t.Fatal("generator called without facts")
	}
	sess := h.session(t, "s1")
	if sess.State != store.StateIdle {
		t.Errorf("state = %s, want IDLE", sess.State)
	}
}

func TestGenerationHappyPath(t *testing.T) {
	h := newHarness(t)
	h.sessions.Save(&store.Session{ID: "s1", State: store.StateIdle, Facts: someFacts()})

	h.orch.process(context.Background(), "s1", "generate my resume")

	sess := h.session(t, "s1")
	if sess.State != store.StateDone {
		t.Fatalf("state = %s, want DONE", sess.State)
	}
	if sess.Document != generatedResume {
		t.Error("document not committed")
	}
	if len(h.notifier.artifacts) != 1 {
		t.Fatalf("artifacts pushed = %d, want 1", len(h.notifier.artifacts))
	}
	if !h.bus.has(events.TypeResumeGenerated) || !h.bus.has(events.TypeDocumentRendered) {
		t.Errorf("missing bus events: %v", h.bus.types)
	}
}

func TestGenerationRetriesOnceThenSucceeds(t *testing.T) {
	h := newHarness(t)
	h.generator.failures = 1
	h.sessions.Save(&store.Session{ID: "s1", Facts: someFacts()})

	h.orch.process(context.Background(), "s1", "generate my resume")

	if h.generator.calls != 2 {
		t.Fatalf("generator calls = %d, want 2", h.generator.calls)
	}
	if sess := h.session(t, "s1"); sess.State != store.StateDone {
		t.Fatalf("state = %s, want DONE", sess.State)
	}
}

func TestGenerationFailureRetainsPriorDocument(t *testing.T) {
	h := newHarness(t)
	h.generator.failures = 2
	prior := "# Jane Doe\n\n## Experience\n- old content"
	h.sessions.Save(&store.Session{ID: "s1", Facts: someFacts(), Document: prior})

	h.orch.process(context.Background(), "s1", "generate my resume")

	sess := h.session(t, "s1")
	if sess.State != store.StateFailed {
		t.Fatalf("state = %s, want FAILED", sess.State)
	}
	if sess.Document != prior {
		t.Error("prior document was not retained")
	}
	if !h.bus.has(events.TypeSessionFailed) {
		t.Error("session failure not published")
	}
}

func TestRenderFailureRetainsPriorDocument(t *testing.T) {
	h := newHarness(t)
	h.renderer.err = errors.New("render service down")
	prior := "# Jane Doe\n\n## Experience\n- old content"
	h.sessions.Save(&store.Session{ID: "s1", Facts: someFacts(), Document: prior})

	h.orch.process(context.Background(), "s1", "generate my resume")

	sess := h.session(t, "s1")
	if sess.State != store.StateFailed {
		t.Fatalf("state = %s, want FAILED", sess.State)
	}
	if sess.Document != prior {
		t.Error("prior document was not retained")
	}
}

func TestLocalStyleEditSkipsGeneration(t *testing.T) {
	h := newHarness(t)
	h.sessions.Save(&store.Session{ID: "s1", Facts: someFacts(), Document: generatedResume})

	h.orch.process(context.Background(), "s1", "make the name bold")

	if h.generator.calls != 0 {
		t.Fatal("local edit must not call the generator")
	}
	sess := h.session(t, "s1")
	if sess.State != store.StateDone {
		t.Fatalf("state = %s, want DONE", sess.State)
	}
	if !strings.Contains(sess.Document, "# **Jane Doe**") {
		t.Errorf("name not bolded:\n%s", sess.Document)
	}
	if len(h.notifier.artifacts) != 1 {
		t.Errorf("artifacts pushed = %d, want 1", len(h.notifier.artifacts))
	}
}

func TestLargeStyleRequestEscalatesToGeneration(t *testing.T) {
	h := newHarness(t)
	h.sessions.Save(&store.Session{ID: "s1", Facts: someFacts(), Document: generatedResume})

	h.orch.process(context.Background(), "s1", "restructure the whole layout")

	if h.generator.calls == 0 {
		t.Fatal("escalated edit must call the generator")
	}
	if !h.bus.has(events.TypeChangeEscalated) {
		t.Errorf("escalation not published: %v", h.bus.types)
	}
	if sess := h.session(t, "s1"); sess.State != store.StateDone {
		t.Fatalf("state = %s, want DONE", sess.State)
	}
}

func TestSubmitQueuesBehindInFlightMessage(t *testing.T) {
	h := newHarness(t)
	h.generator.release = make(chan struct{})
	h.sessions.Save(&store.Session{ID: "s1", Facts: someFacts()})

	ctx := context.Background()
	if err := h.orch.Submit(ctx, "s1", "generate my resume"); err != nil {
		t.Fatal(err)
	}

	// Give the worker a moment to pick up the first job before queueing.
	waitFor(t, func() bool { return h.notifier.hasStatus("Generating") })

	if err := h.orch.Submit(ctx, "s1", "generate my resume"); err != nil {
		t.Fatal(err)
	}
	waitFor(t, func() bool { return h.notifier.hasStatus("Queued, 1 request(s) ahead") })

	close(h.generator.release)
	h.orch.Shutdown()

	h.generator.mu.Lock()
	calls := h.generator.calls
	h.generator.mu.Unlock()
	if calls != 2 {
		t.Fatalf("generator calls = %d, want 2", calls)
	}
}

// The submitting request's context ends as soon as the handler returns 202;
// processing must not inherit its cancellation (or its recycled values).
func TestSubmitOutlivesCallerContext(t *testing.T) {
	h := newHarness(t)
	h.sessions.Save(&store.Session{ID: "s1", Facts: someFacts()})

	ctx, cancel := context.WithCancel(context.Background())
	if err := h.orch.Submit(ctx, "s1", "generate my resume"); err != nil {
		t.Fatal(err)
	}
	cancel()

	waitFor(t, func() bool {
		sess, ok := h.sessions.Get("s1")
		return ok && sess.State == store.StateDone
	})

	if sess := h.session(t, "s1"); sess.Document != generatedResume {
		t.Error("document not committed after caller context ended")
	}
	h.orch.Shutdown()
}

func TestSubmitRejectsCanceledContext(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := h.orch.Submit(ctx, "s1", "hello"); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestSubmitRejectsWhenQueueIsFull(t *testing.T) {
	h := newHarness(t)
	h.generator.release = make(chan struct{})
	defer close(h.generator.release)
	h.sessions.Save(&store.Session{ID: "s1", Facts: someFacts()})

	ctx := context.Background()
	// One in flight plus a full queue.
	for i := 0; i < h.orch.cfg.QueueCapacity+1; i++ {
		if err := h.orch.Submit(ctx, "s1", "generate my resume"); err != nil {
			if errors.Is(err, ErrQueueFull) && i > 0 {
				return
			}
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	if err := h.orch.Submit(ctx, "s1", "generate my resume"); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("err = %v, want ErrQueueFull", err)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

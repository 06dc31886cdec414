package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"sync/atomic"

	"ai-resume-be/pkg/facts"
	"ai-resume-be/pkg/generate"
	"ai-resume-be/pkg/intent"
	"ai-resume-be/pkg/layout"
	"ai-resume-be/pkg/planner"
	"ai-resume-be/pkg/render"
	"ai-resume-be/pkg/store"
)

// ErrQueueFull is returned when a session's request queue cannot take more.
var ErrQueueFull = errors.New("session queue is full")

// Deps are the collaborators one loop instance coordinates.
type Deps struct {
	Classifier *intent.Classifier
	Planner    *planner.Planner
	Fitters    map[layout.Target]*layout.Fitter
	Generator  generate.Generator
	Extractor  FactExtractor
	Renderer   render.Renderer
	Sessions   store.SessionStore
	Notifier   Notifier
	Bus        EventPublisher // optional
	Logger     *log.Logger
}

// FactExtractor mines resume facts from a free-text message.
type FactExtractor interface {
	Extract(ctx context.Context, message string, known facts.Resume) (facts.Extraction, error)
}

// Config carries the loop tunables. Zero values fall back to the defaults.
type Config struct {
	// QueueCapacity bounds how many messages one session may have waiting
	// behind the in-flight one.
	QueueCapacity int

	// GenerationRetries is how many extra generation attempts are made
	// before the session fails.
	GenerationRetries int
}

const (
	defaultQueueCapacity     = 8
	defaultGenerationRetries = 1
)

// Orchestrator routes each session's messages through a dedicated worker so
// at most one mutating operation runs per session, with overflow queued FIFO.
type Orchestrator struct {
	deps Deps
	cfg  Config

	mu      sync.Mutex
	workers map[string]*sessionWorker
	closed  bool
	wg      sync.WaitGroup
}

func New(deps Deps, cfg Config) *Orchestrator {
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = defaultQueueCapacity
	}
	if cfg.GenerationRetries <= 0 {
		cfg.GenerationRetries = defaultGenerationRetries
	}
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard, "", 0)
	}
	return &Orchestrator{
		deps:    deps,
		cfg:     cfg,
		workers: make(map[string]*sessionWorker),
	}
}

// Submit hands one user message to the session's worker. If the session is
// busy the message waits its turn and the client is told its queue position.
func (o *Orchestrator) Submit(ctx context.Context, sessionID, message string) error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return errors.New("orchestrator is shut down")
	}
	w, ok := o.workers[sessionID]
	if !ok {
		w = newSessionWorker(sessionID, o.cfg.QueueCapacity)
		o.workers[sessionID] = w
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w.run(o)
		}()
	}
	o.mu.Unlock()

	return w.enqueue(ctx, message, o.deps.Notifier)
}

// Shutdown stops accepting messages and waits for in-flight work to drain.
func (o *Orchestrator) Shutdown() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	for _, w := range o.workers {
		close(w.jobs)
	}
	o.mu.Unlock()

	o.wg.Wait()
}

type job struct {
	message string
}

// sessionWorker serializes one session's messages.
type sessionWorker struct {
	sessionID string
	jobs      chan job
	pending   atomic.Int32
}

func newSessionWorker(sessionID string, capacity int) *sessionWorker {
	return &sessionWorker{
		sessionID: sessionID,
		jobs:      make(chan job, capacity),
	}
}

// enqueue hands the message to the worker. The caller's context gates intake
// only: processing outlives the submitting request (the HTTP handler returns
// 202 immediately), so each job runs on its own background context.
func (w *sessionWorker) enqueue(ctx context.Context, message string, notifier Notifier) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case w.jobs <- job{message: message}:
		if ahead := w.pending.Add(1) - 1; ahead > 0 {
			notifier.Status(w.sessionID, fmt.Sprintf("Queued, %d request(s) ahead", ahead))
		}
		return nil
	default:
		return ErrQueueFull
	}
}

func (w *sessionWorker) run(o *Orchestrator) {
	for j := range w.jobs {
		o.process(context.Background(), w.sessionID, j.message)
		w.pending.Add(-1)
	}
}

package search

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Page is what the resolver learns about one URL
type Page struct {
	Title string
	Links []string // same-origin, de-duplicated, in document order
}

// Resolver fetches a page. A failure is reported as an error, never a panic.
type Resolver interface {
	Resolve(ctx context.Context, url string) (Page, error)
}

// Observer receives engine-level telemetry. All methods must be cheap.
type Observer interface {
	SearchStarted(alg Algorithm)
	PageResolved(ok bool, duration time.Duration)
	NodeExpanded()
	SearchFinished(alg Algorithm, outcome Outcome, duration time.Duration)
}

// Outcome is how a run terminated
type Outcome string

const (
	OutcomeFound          Outcome = "found"
	OutcomeExhausted      Outcome = "exhausted"
	OutcomeBudgetExceeded Outcome = "budget_exceeded"
	OutcomeAborted        Outcome = "aborted"
)

// Options bound and pace the search
type Options struct {
	MaxDepth         int           // children are only added below this depth
	BranchLimit      int           // new children inserted per expanded node
	IDSMaxDepth      int           // iterative deepening ceiling
	StepDelay        time.Duration // pause after each iteration
	ChildDelay       time.Duration // pause after each inserted child
	RestartDelay     time.Duration // pause after an IDS restart
	ReportElapsed    bool          // include wall-clock time in final events
	PlaceholderTitle string        // target title when its page cannot be resolved
}

// ClassicOptions are the bounds for plain uninformed search
func ClassicOptions() Options {
	return Options{
		MaxDepth:         6,
		BranchLimit:      4,
		IDSMaxDepth:      10,
		StepDelay:        10 * time.Millisecond,
		ChildDelay:       50 * time.Millisecond,
		RestartDelay:     500 * time.Millisecond,
		PlaceholderTitle: "TARGET",
	}
}

// ExtendedOptions widen the bounds and report elapsed time
func ExtendedOptions() Options {
	opts := ClassicOptions()
	opts.MaxDepth = 10
	opts.BranchLimit = 5
	opts.ReportElapsed = true
	return opts
}

// Result summarizes a finished run
type Result struct {
	Outcome  Outcome
	Path     []string
	Expanded int
	Elapsed  time.Duration
}

// Engine runs searches. It holds no per-request state and is safe for
// concurrent use as long as its Resolver is.
type Engine struct {
	resolver Resolver
	opts     Options
	observer Observer
	log      *logrus.Entry
}

// NewEngine creates a search engine
func NewEngine(resolver Resolver, opts Options, observer Observer, log *logrus.Entry) *Engine {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if opts.PlaceholderTitle == "" {
		opts.PlaceholderTitle = "TARGET"
	}
	return &Engine{
		resolver: resolver,
		opts:     opts,
		observer: observer,
		log:      log,
	}
}

// Run executes one search and streams its events to emit.
// The request must already be normalized. A non-nil error means the
// emitter or the context failed and the run was abandoned.
func (e *Engine) Run(ctx context.Context, req Request, alg Algorithm, emit Emitter, log *logrus.Entry) (Result, error) {
	if log == nil {
		log = e.log
	}

	r := &run{
		engine:  e,
		req:     req,
		alg:     alg,
		emit:    emit,
		log:     log,
		state:   NewState(req.StartURL),
		started: time.Now(),
	}
	if e.observer != nil {
		e.observer.SearchStarted(alg)
	}

	res, err := r.execute(ctx)
	res.Elapsed = time.Since(r.started)

	if e.observer != nil {
		e.observer.SearchFinished(alg, res.Outcome, res.Elapsed)
	}
	return res, err
}

// phase is a state of the orchestrator state machine
type phase int

const (
	phaseExpanding phase = iota
	phaseRestarting
	phaseFound
	phaseExhausted
	phaseBudgetExceeded
)

func (p phase) String() string {
	switch p {
	case phaseExpanding:
		return "expanding"
	case phaseRestarting:
		return "restarting"
	case phaseFound:
		return "found"
	case phaseExhausted:
		return "exhausted"
	case phaseBudgetExceeded:
		return "budget_exceeded"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// run is the state of a single request
type run struct {
	engine  *Engine
	req     Request
	alg     Algorithm
	emit    Emitter
	log     *logrus.Entry
	state   *State
	front   Frontier
	limit   int
	phase   phase
	started time.Time
}

func (r *run) execute(ctx context.Context) (Result, error) {
	r.front = NewFrontier(r.alg)
	r.front.Insert(Entry{URL: r.req.StartURL})
	if r.alg == IDS {
		r.limit = 1
	}

	r.phase = phaseExpanding
	if r.req.StartURL == r.req.TargetURL {
		r.phase = phaseFound
	}

	for {
		var err error
		switch r.phase {
		case phaseExpanding:
			err = r.expand(ctx)
		case phaseRestarting:
			err = r.restart(ctx)
		default:
			return r.finish(ctx)
		}

		if err != nil {
			r.log.WithError(err).Warnf("Search aborted while %s", r.phase)
			return Result{Outcome: OutcomeAborted, Expanded: r.state.Expanded()}, err
		}
	}
}

// expand performs one iteration of the main loop
func (r *run) expand(ctx context.Context) error {
	opts := r.engine.opts

	if r.state.Expanded() >= r.req.MaxNodes {
		r.phase = phaseBudgetExceeded
		return nil
	}

	entry, ok := r.front.Next()
	if !ok {
		if r.alg == IDS {
			r.phase = phaseRestarting
		} else {
			r.phase = phaseExhausted
		}
		return nil
	}

	msg := fmt.Sprintf("Crawl: %s (depth %d)", entry.URL, entry.Depth)
	if r.alg == IDS {
		msg = fmt.Sprintf("Crawl: %s (depth %d, limit %d)", entry.URL, entry.Depth, r.limit)
	}
	if err := r.send(ctx, StatusEvent(msg)); err != nil {
		return err
	}

	page, err := r.resolve(ctx, entry.URL)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		r.log.WithError(err).Debugf("Dropping %s", entry.URL)
		return r.pause(ctx, opts.StepDelay)
	}

	if err := r.send(ctx, nodeEvent(entry.URL, page.Title, entry.Depth)); err != nil {
		return err
	}
	r.state.incrementExpanded()
	if r.engine.observer != nil {
		r.engine.observer.NodeExpanded()
	}

	if r.canReach(entry.Depth) {
		for _, link := range page.Links {
			if link == r.req.TargetURL {
				return r.reachTarget(ctx, entry)
			}
		}
	}

	if r.canDeepen(entry.Depth) {
		if err := r.addChildren(ctx, entry, page.Links); err != nil {
			return err
		}
	}

	return r.pause(ctx, opts.StepDelay)
}

// canDeepen reports whether children of a node at depth may be inserted
func (r *run) canDeepen(depth int) bool {
	if depth >= r.engine.opts.MaxDepth {
		return false
	}
	return r.alg != IDS || depth < r.limit
}

// canReach reports whether a target linked from depth counts as found.
// Iterative deepening only accepts hits within the current limit.
func (r *run) canReach(depth int) bool {
	return r.alg != IDS || depth+1 <= r.limit
}

// ceiling is the last IDS limit worth running. Limits past MaxDepth
// cannot insert deeper children and would repeat the previous iteration.
func (r *run) ceiling() int {
	return min(r.engine.opts.IDSMaxDepth, r.engine.opts.MaxDepth)
}

// addChildren inserts up to BranchLimit unvisited links below entry
func (r *run) addChildren(ctx context.Context, entry Entry, links []string) error {
	added := 0
	for _, link := range links {
		if added >= r.engine.opts.BranchLimit {
			break
		}
		if !r.state.MarkVisited(link) {
			continue
		}
		r.state.RecordParent(link, entry.URL)
		r.front.Insert(r.childEntry(link, entry.Depth+1))
		added++

		if err := r.send(ctx, linkEvent(entry.URL, link)); err != nil {
			return err
		}
		if err := r.pause(ctx, r.engine.opts.ChildDelay); err != nil {
			return err
		}
	}

	r.log.Debugf("Expanded %s: %d children, frontier=%d, visited=%d", entry.URL, added, r.front.Len(), r.state.VisitedCount())
	return nil
}

func (r *run) childEntry(link string, depth int) Entry {
	child := Entry{URL: link, Depth: depth}
	switch r.alg {
	case UCS:
		child.Priority = float64(depth)
	case Greedy:
		child.Priority = 1 - Similarity(link, r.req.TargetURL)
	}
	return child
}

// reachTarget records the target below entry and emits its node and edge
func (r *run) reachTarget(ctx context.Context, entry Entry) error {
	target := r.req.TargetURL
	r.state.RecordParent(target, entry.URL)

	title := r.engine.opts.PlaceholderTitle
	if page, err := r.resolve(ctx, target); err == nil {
		title = page.Title
	} else if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := r.send(ctx, nodeEvent(target, title, entry.Depth+1)); err != nil {
		return err
	}
	if err := r.send(ctx, linkEvent(entry.URL, target)); err != nil {
		return err
	}

	r.phase = phaseFound
	return nil
}

// restart begins the next iterative deepening iteration
func (r *run) restart(ctx context.Context) error {
	r.limit++
	if r.limit > r.ceiling() {
		r.phase = phaseExhausted
		return nil
	}

	r.log.Infof("Iterative deepening: depth limit now %d", r.limit)
	if err := r.send(ctx, StatusEvent(fmt.Sprintf("IDS: increasing depth limit to %d", r.limit))); err != nil {
		return err
	}

	r.front = NewFrontier(r.alg)
	r.front.Insert(Entry{URL: r.req.StartURL})
	r.state.Reset()

	if err := r.pause(ctx, r.engine.opts.RestartDelay); err != nil {
		return err
	}
	r.phase = phaseExpanding
	return nil
}

// finish emits the terminal events for the current phase
func (r *run) finish(ctx context.Context) (Result, error) {
	res := Result{Expanded: r.state.Expanded()}
	elapsed := time.Since(r.started)

	var closing string
	switch r.phase {
	case phaseFound:
		res.Outcome = OutcomeFound
		res.Path = r.state.Path(r.req.TargetURL)

		var seconds *float64
		if r.engine.opts.ReportElapsed {
			s := elapsed.Seconds()
			seconds = &s
		}
		if err := r.send(ctx, pathEvent(res.Path, seconds)); err != nil {
			return Result{Outcome: OutcomeAborted, Expanded: res.Expanded}, err
		}

		closing = fmt.Sprintf("Target found! Path length: %d", len(res.Path))
	case phaseBudgetExceeded:
		res.Outcome = OutcomeBudgetExceeded
		closing = fmt.Sprintf("Search failed: expanded %d nodes without reaching the target", res.Expanded)
	default:
		res.Outcome = OutcomeExhausted
		closing = fmt.Sprintf("Search failed: expanded %d nodes without reaching the target", res.Expanded)
	}
	if r.engine.opts.ReportElapsed {
		closing = fmt.Sprintf("%s (%.2fs)", closing, elapsed.Seconds())
	}

	if err := r.send(ctx, StatusEvent(closing)); err != nil {
		return Result{Outcome: OutcomeAborted, Expanded: res.Expanded}, err
	}

	r.log.WithFields(logrus.Fields{
		"outcome":  res.Outcome,
		"expanded": res.Expanded,
		"path_len": len(res.Path),
	}).Infof("Search finished in %v", elapsed)

	return res, nil
}

func (r *run) resolve(ctx context.Context, url string) (Page, error) {
	began := time.Now()
	page, err := r.engine.resolver.Resolve(ctx, url)
	if r.engine.observer != nil {
		r.engine.observer.PageResolved(err == nil, time.Since(began))
	}
	return page, err
}

func (r *run) send(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.emit.Emit(ctx, event); err != nil {
		return fmt.Errorf("emit %s: %w", event.Type, err)
	}
	return nil
}

// pause suspends the run, returning early if ctx is cancelled
func (r *run) pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

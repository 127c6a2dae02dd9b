package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Runner owns the import pipeline: link discovery, the sequential driver and
// the auto-throttle controller. Operator controls only request transitions;
// the driver observes them between items.
type Runner struct {
	discoverer Discoverer
	scraper    Scraper
	submitter  Submitter
	opts       Options
	log        *slog.Logger
	newTicker  func(time.Duration) ticker

	baseCtx    context.Context
	baseCancel context.CancelFunc

	mu        sync.Mutex
	run       *run
	discovery *discovery
	gen       uint64
	lastErr   error
	closed    bool
	updates   chan Snapshot
}

// discovery is the link discovery of the latest Start, before its run exists.
type discovery struct {
	gen     uint64
	cancel  context.CancelFunc
	stopped bool
}

// run is the process-local RunState of one start() call.
type run struct {
	id         uuid.UUID
	listingURL string
	ctx        context.Context
	cancel     context.CancelFunc
	log        *slog.Logger

	items        []WorkItem
	index        int
	progress     Progress
	requestCount int
	state        State

	// looping is true while a driver goroutine owns the run.
	looping bool

	countdown    int
	stopCooldown chan struct{}

	startedAt  time.Time
	finishedAt time.Time
}

// NewRunner wires the pipeline to its collaborators.
func NewRunner(d Discoverer, s Scraper, sub Submitter, opts Options) *Runner {
	opts = opts.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		discoverer: d,
		scraper:    s,
		submitter:  sub,
		opts:       opts,
		log:        opts.Logger,
		newTicker:  newTimeTicker,
		baseCtx:    ctx,
		baseCancel: cancel,
		updates:    make(chan Snapshot, 1),
	}
}

// Updates delivers the latest snapshot after every state change. Stale
// snapshots are dropped, so a slow reader never blocks the driver. The
// channel is closed by Close.
func (r *Runner) Updates() <-chan Snapshot {
	return r.updates
}

// Snapshot returns the current state.
func (r *Runner) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Start discovers the device links on listingURL and, when at least one is
// found, begins a fresh run at index 0. Any previous run is stopped first. A
// Stop during discovery cancels it and Start returns ErrStopped.
func (r *Runner) Start(ctx context.Context, listingURL string) error {
	listingURL = strings.TrimSpace(listingURL)
	if listingURL == "" {
		return ErrEmptyListingURL
	}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return ErrClosed
	}
	r.teardownLocked()
	r.run = nil
	r.lastErr = nil
	r.gen++
	gen := r.gen
	discCtx, discCancel := context.WithCancel(ctx)
	defer discCancel()
	r.discovery = &discovery{gen: gen, cancel: discCancel}
	r.publishLocked()
	r.mu.Unlock()

	r.log.Info("discovering device links", "listing_url", listingURL)

	links, err := r.discoverer.DiscoverLinks(discCtx, listingURL)
	switch {
	case err != nil:
		err = fmt.Errorf("discover links: %w", err)
	case len(links) == 0:
		err = ErrNoLinks
	}

	var rs *run
	if err == nil {
		rs = r.newRun(listingURL, links)
	}

	r.mu.Lock()
	if overtaken := r.endDiscoveryLocked(gen); overtaken != nil {
		r.mu.Unlock()
		if rs != nil {
			rs.cancel()
		}
		r.log.Info("link discovery abandoned", "listing_url", listingURL, "reason", overtaken)
		return overtaken
	}
	if err != nil {
		r.lastErr = err
		r.publishLocked()
		r.mu.Unlock()
		if errors.Is(err, ErrNoLinks) {
			r.log.Warn("link discovery returned no links", "listing_url", listingURL)
		} else {
			r.log.Error("link discovery failed", "listing_url", listingURL, "err", err)
		}
		return err
	}
	r.run = rs
	r.publishLocked()
	r.mu.Unlock()

	rs.log.Info("import run started", "listing_url", listingURL, "total", len(rs.items))
	go r.drive(rs)
	return nil
}

func (r *Runner) newRun(listingURL string, links []string) *run {
	items := make([]WorkItem, len(links))
	for i, link := range links {
		items[i] = WorkItem{URL: link, Status: StatusQueued}
	}

	id := uuid.New()
	ctx, cancel := context.WithCancel(r.baseCtx)
	return &run{
		id:         id,
		listingURL: listingURL,
		ctx:        ctx,
		cancel:     cancel,
		log:        r.log.With("run_id", id.String()),
		items:      items,
		progress:   Progress{Total: len(items)},
		state:      StateRunning,
		looping:    true,
		startedAt:  time.Now(),
	}
}

// endDiscoveryLocked releases the discovery slot of gen. It returns the reason
// the start must not install its run: Close, a newer Start or Stop.
func (r *Runner) endDiscoveryLocked(gen uint64) error {
	d := r.discovery
	if d != nil && d.gen == gen {
		r.discovery = nil
	}
	switch {
	case r.closed:
		return ErrClosed
	case r.gen != gen:
		return ErrSuperseded
	case d != nil && d.gen == gen && d.stopped:
		return ErrStopped
	}
	return nil
}

// Pause holds the driver at its current index. Only effective while running.
func (r *Runner) Pause() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs := r.run
	if rs == nil || rs.state != StateRunning {
		return false
	}
	rs.state = StatePaused
	rs.log.Info("import run paused", "index", rs.index)
	r.publishLocked()
	return true
}

// Resume continues a manually paused run from its saved index. It is a no-op
// during an auto-throttle cool-down, which has to finish on its own. A run
// whose request counter tripped while it was paused cools down first.
func (r *Runner) Resume() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs := r.run
	if rs == nil || rs.state != StatePaused {
		return false
	}

	if rs.requestCount >= r.opts.ThrottleEvery && rs.index < len(rs.items) {
		r.beginCooldownLocked(rs)
	} else {
		rs.state = StateRunning
		r.ensureDriverLocked(rs)
		rs.log.Info("import run resumed", "index", rs.index)
	}
	r.publishLocked()
	return true
}

// Stop ends the run for good. The in-flight item, if any, is allowed to finish
// and is recorded; nothing after it starts and no pending cool-down resumes.
// While links are still being discovered, Stop cancels the discovery and no
// run is started from it.
func (r *Runner) Stop() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	rs := r.run
	if rs == nil {
		return r.stopDiscoveryLocked()
	}
	if rs.state.IsFinished() {
		return false
	}
	r.stopLocked(rs)
	rs.log.Info("import run stopped", "index", rs.index,
		"completed", rs.progress.Completed, "failed", rs.progress.Failed)
	r.publishLocked()
	return true
}

// Close tears the runner down: stops the run, cancels in-flight requests and
// timers, and closes the Updates channel.
func (r *Runner) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.teardownLocked()
	r.closed = true
	r.baseCancel()
	close(r.updates)
}

func (r *Runner) stopDiscoveryLocked() bool {
	d := r.discovery
	if d == nil || d.stopped {
		return false
	}
	d.stopped = true
	d.cancel()
	r.lastErr = ErrStopped
	r.log.Info("link discovery stopped")
	r.publishLocked()
	return true
}

func (r *Runner) stopLocked(rs *run) {
	rs.state = StateStopped
	rs.finishedAt = time.Now()
	r.cancelCooldownLocked(rs)
}

// teardownLocked stops the current run and aborts its in-flight request or
// pending discovery.
func (r *Runner) teardownLocked() {
	if d := r.discovery; d != nil {
		d.cancel()
	}
	rs := r.run
	if rs == nil {
		return
	}
	if !rs.state.IsFinished() {
		r.stopLocked(rs)
	}
	r.cancelCooldownLocked(rs)
	rs.cancel()
}

// ensureDriverLocked starts a driver goroutine unless one still owns the run.
func (r *Runner) ensureDriverLocked(rs *run) {
	if rs.looping {
		return
	}
	rs.looping = true
	go r.drive(rs)
}

func (r *Runner) publishLocked() {
	if r.closed {
		return
	}
	snap := r.snapshotLocked()
	select {
	case <-r.updates:
	default:
	}
	r.updates <- snap
}

func (r *Runner) snapshotLocked() Snapshot {
	rs := r.run
	if rs == nil {
		return Snapshot{State: StateIdle, Err: r.lastErr}
	}
	return Snapshot{
		RunID:        rs.id,
		ListingURL:   rs.listingURL,
		State:        rs.state,
		Items:        slices.Clone(rs.items),
		CurrentIndex: rs.index,
		Progress:     rs.progress,
		RequestCount: rs.requestCount,
		Countdown:    rs.countdown,
		StartedAt:    rs.startedAt,
		FinishedAt:   rs.finishedAt,
	}
}

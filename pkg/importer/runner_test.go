package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"devicehub-go/pkg/importer/mocks"
)

// fakeSite plays the scraper service and the catalog API at once.
type fakeSite struct {
	mu          sync.Mutex
	links       []string
	discoverErr error
	scrapeFail  map[string]error
	submitFail  map[string]error
	scraped     []string
	submitted   []string
	onScrape    func(url string)
	blockScrape bool
}

func newFakeSite(links []string) *fakeSite {
	return &fakeSite{
		links:      links,
		scrapeFail: map[string]error{},
		submitFail: map[string]error{},
	}
}

func (f *fakeSite) DiscoverLinks(ctx context.Context, listingURL string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.links...), f.discoverErr
}

func (f *fakeSite) Scrape(ctx context.Context, url string) (json.RawMessage, error) {
	f.mu.Lock()
	f.scraped = append(f.scraped, url)
	hook := f.onScrape
	err := f.scrapeFail[url]
	block := f.blockScrape
	f.mu.Unlock()

	if hook != nil {
		hook(url)
	}
	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(fmt.Sprintf(`{"source_url":%q}`, url)), nil
}

func (f *fakeSite) Submit(ctx context.Context, payload json.RawMessage) error {
	var p struct {
		SourceURL string `json:"source_url"`
	}
	if err := json.Unmarshal(payload, &p); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, p.SourceURL)
	return f.submitFail[p.SourceURL]
}

func (f *fakeSite) setHook(hook func(url string)) {
	f.mu.Lock()
	f.onScrape = hook
	f.mu.Unlock()
}

func (f *fakeSite) scrapedURLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.scraped...)
}

type fakeTicker struct {
	ch chan time.Time
}

func (t *fakeTicker) C() <-chan time.Time { return t.ch }
func (t *fakeTicker) Stop()               {}

func (t *fakeTicker) tick(n int) {
	for i := 0; i < n; i++ {
		t.ch <- time.Now()
	}
}

type fakeTickers struct {
	mu  sync.Mutex
	all []*fakeTicker
}

func (ts *fakeTickers) newTicker(time.Duration) ticker {
	t := &fakeTicker{ch: make(chan time.Time, 256)}
	ts.mu.Lock()
	ts.all = append(ts.all, t)
	ts.mu.Unlock()
	return t
}

func (ts *fakeTickers) count() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.all)
}

func (ts *fakeTickers) last(t *testing.T) *fakeTicker {
	t.Helper()
	ts.mu.Lock()
	defer ts.mu.Unlock()
	require.NotEmpty(t, ts.all, "Expect a cool-down ticker to exist")
	return ts.all[len(ts.all)-1]
}

func testOptions() Options {
	return Options{
		ThrottleEvery: 10,
		Cooldown:      60 * time.Second,
		Tick:          time.Second,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func newTestRunner(t *testing.T, d Discoverer, s Scraper, sub Submitter, opts Options) (*Runner, *fakeTickers) {
	t.Helper()
	ts := &fakeTickers{}
	r := NewRunner(d, s, sub, opts)
	r.newTicker = ts.newTicker
	t.Cleanup(r.Close)
	return r, ts
}

func urls(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("https://www.gsmarena.com/device_u%d-%d.php", i+1, i+1)
	}
	return out
}

func waitFor(t *testing.T, r *Runner, desc string, cond func(Snapshot) bool) Snapshot {
	t.Helper()
	var snap Snapshot
	require.Eventually(t, func() bool {
		snap = r.Snapshot()
		return cond(snap)
	}, 2*time.Second, time.Millisecond, "timed out waiting for %s", desc)
	return snap
}

func stateIs(state State) func(Snapshot) bool {
	return func(s Snapshot) bool { return s.State == state }
}

func assertConsistent(t *testing.T, snap Snapshot) {
	t.Helper()
	p := snap.Progress
	assert.GreaterOrEqual(t, p.Pending(), 0, "Expect pending never negative")
	assert.Equal(t, p.Total, p.Completed+p.Failed+p.Pending(), "Expect counters to add up")
	assert.LessOrEqual(t, p.Completed+p.Failed, p.Total, "Expect processed within total")
}

func TestStartRejectsEmptyListingURL(t *testing.T) {
	site := newFakeSite(urls(3))
	r, _ := newTestRunner(t, site, site, site, testOptions())

	err := r.Start(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyListingURL)
	assert.Equal(t, StateIdle, r.Snapshot().State)
	assert.Empty(t, site.scrapedURLs())
}

func TestStartDiscoveryFailureLeavesRunnerIdle(t *testing.T) {
	site := newFakeSite(nil)
	site.discoverErr = errors.New("connection refused")
	r, _ := newTestRunner(t, site, site, site, testOptions())

	err := r.Start(context.Background(), "https://www.gsmarena.com/samsung-phones-9.php")
	require.Error(t, err)
	assert.ErrorIs(t, err, site.discoverErr, "Expect discovery error to be wrapped")
	assert.NotErrorIs(t, err, ErrNoLinks)

	snap := r.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Empty(t, snap.Items, "Expect no items created")
	assert.ErrorIs(t, snap.Err, site.discoverErr)
}

func TestStartWithNoLinksIsDistinctOutcome(t *testing.T) {
	site := newFakeSite([]string{})
	r, _ := newTestRunner(t, site, site, site, testOptions())

	err := r.Start(context.Background(), "https://www.gsmarena.com/empty.php")
	assert.ErrorIs(t, err, ErrNoLinks)

	snap := r.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.ErrorIs(t, snap.Err, ErrNoLinks)
	assert.Empty(t, site.scrapedURLs())
}

func TestItemsProcessedInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	discoverer := mocks.NewMockDiscoverer(ctrl)
	scraper := mocks.NewMockScraper(ctrl)
	submitter := mocks.NewMockSubmitter(ctrl)

	links := urls(5)
	discoverer.EXPECT().DiscoverLinks(gomock.Any(), "https://listing").Return(links, nil)

	var calls []any
	for i, link := range links {
		payload := json.RawMessage(fmt.Sprintf(`{"n":%d}`, i))
		calls = append(calls,
			scraper.EXPECT().Scrape(gomock.Any(), link).Return(payload, nil),
			submitter.EXPECT().Submit(gomock.Any(), payload).Return(nil),
		)
	}
	gomock.InOrder(calls...)

	r, _ := newTestRunner(t, discoverer, scraper, submitter, testOptions())
	require.NoError(t, r.Start(context.Background(), "https://listing"))

	snap := waitFor(t, r, "completion", stateIs(StateCompleted))
	assert.Equal(t, Progress{Total: 5, Completed: 5}, snap.Progress)
	assert.Equal(t, 5, snap.CurrentIndex)
	assert.Equal(t, "", snap.CurrentURL())
	for i, item := range snap.Items {
		assert.Equal(t, links[i], item.URL)
		assert.Equal(t, StatusDone, item.Status)
		assert.Equal(t, msgDone, item.Message)
	}
	assert.False(t, snap.FinishedAt.IsZero(), "Expect finish time recorded")
}

func TestAutoThrottleScenario(t *testing.T) {
	links := urls(25)
	site := newFakeSite(links)
	site.scrapeFail[links[2]] = errors.New("timeout")
	site.submitFail[links[6]] = errors.New("duplicate")

	r, ts := newTestRunner(t, site, site, site, testOptions())
	require.NoError(t, r.Start(context.Background(), "https://listing"))

	snap := waitFor(t, r, "first cool-down", stateIs(StateAutoPaused))
	assert.Equal(t, Progress{Total: 25, Completed: 8, Failed: 2}, snap.Progress)
	assert.Equal(t, 10, snap.RequestCount)
	assert.Equal(t, 10, snap.CurrentIndex)
	assert.Equal(t, links[10], snap.CurrentURL())
	assert.Equal(t, 60, snap.Countdown)
	assert.Equal(t, StatusFailed, snap.Items[2].Status)
	assert.Equal(t, "Scrape failed: timeout", snap.Items[2].Message)
	assert.Equal(t, StatusFailed, snap.Items[6].Status)
	assert.Equal(t, "Import failed: duplicate", snap.Items[6].Message)
	assert.Equal(t, StatusQueued, snap.Items[10].Status)
	assert.Equal(t, "", snap.Items[10].Message, "Expect queued items to carry no message")
	assert.Equal(t, links[:10], site.scrapedURLs(), "Expect item 11 not started during cool-down")
	assertConsistent(t, snap)

	// Resume is disabled while auto-paused.
	assert.False(t, r.Resume())
	assert.False(t, r.Pause())

	first := ts.last(t)
	first.tick(59)
	waitFor(t, r, "countdown at 1", func(s Snapshot) bool { return s.Countdown == 1 })
	assert.Equal(t, StateAutoPaused, r.Snapshot().State)

	first.tick(1)
	snap = waitFor(t, r, "second cool-down", func(s Snapshot) bool {
		return s.State == StateAutoPaused && s.CurrentIndex == 20
	})
	assert.Equal(t, 10, snap.RequestCount)
	assert.Equal(t, 2, ts.count(), "Expect a fresh ticker per cool-down")

	ts.last(t).tick(60)
	snap = waitFor(t, r, "completion", stateIs(StateCompleted))
	assert.Equal(t, Progress{Total: 25, Completed: 23, Failed: 2}, snap.Progress)
	assert.Equal(t, links, site.scrapedURLs(), "Expect every item exactly once, in order")
	assert.Equal(t, 5, snap.RequestCount)
	assertConsistent(t, snap)
}

func TestStopDuringCooldownPreventsResume(t *testing.T) {
	links := urls(25)
	site := newFakeSite(links)
	r, ts := newTestRunner(t, site, site, site, testOptions())
	require.NoError(t, r.Start(context.Background(), "https://listing"))

	waitFor(t, r, "cool-down", stateIs(StateAutoPaused))
	tk := ts.last(t)
	tk.tick(20)
	waitFor(t, r, "countdown at 40", func(s Snapshot) bool { return s.Countdown == 40 })

	assert.True(t, r.Stop())
	tk.tick(40)
	time.Sleep(20 * time.Millisecond)

	snap := r.Snapshot()
	assert.Equal(t, StateStopped, snap.State)
	assert.Equal(t, 10, snap.CurrentIndex, "Expect index preserved on stop")
	assert.Equal(t, StatusQueued, snap.Items[10].Status)
	assert.Equal(t, links[:10], site.scrapedURLs(), "Expect item 11 never started")

	assert.False(t, r.Resume(), "Expect stop to be terminal")
	assert.False(t, r.Pause())
	assert.False(t, r.Stop(), "Expect second stop to be a no-op")
}

func TestManualPauseResumesAtSavedIndex(t *testing.T) {
	links := urls(8)
	site := newFakeSite(links)
	r, _ := newTestRunner(t, site, site, site, testOptions())
	site.setHook(func(url string) {
		if url == links[2] || url == links[5] {
			r.Pause()
		}
	})

	require.NoError(t, r.Start(context.Background(), "https://listing"))

	snap := waitFor(t, r, "first pause", func(s Snapshot) bool {
		return s.State == StatePaused && s.CurrentIndex == 3
	})
	assert.Equal(t, StatusDone, snap.Items[2].Status, "Expect in-flight item to finish before pausing")
	assert.Equal(t, StatusQueued, snap.Items[3].Status)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, links[:3], site.scrapedURLs())

	assert.False(t, r.Pause(), "Expect pause to be a no-op while paused")
	assert.True(t, r.Resume())

	waitFor(t, r, "second pause", func(s Snapshot) bool {
		return s.State == StatePaused && s.CurrentIndex == 6
	})
	assert.True(t, r.Resume())

	snap = waitFor(t, r, "completion", stateIs(StateCompleted))
	assert.Equal(t, links, site.scrapedURLs(), "Expect no item skipped or repeated across pauses")
	assert.Equal(t, Progress{Total: 8, Completed: 8}, snap.Progress)
	assert.False(t, r.Resume(), "Expect resume to be a no-op after completion")
}

func TestThrottleTripWhilePausedCoolsDownOnResume(t *testing.T) {
	links := urls(5)
	site := newFakeSite(links)
	opts := testOptions()
	opts.ThrottleEvery = 2
	opts.Cooldown = 3 * time.Second
	r, ts := newTestRunner(t, site, site, site, opts)
	site.setHook(func(url string) {
		if url == links[1] {
			r.Pause()
		}
	})

	require.NoError(t, r.Start(context.Background(), "https://listing"))
	snap := waitFor(t, r, "pause at trip", func(s Snapshot) bool {
		return s.State == StatePaused && s.CurrentIndex == 2
	})
	assert.Equal(t, 2, snap.RequestCount)
	assert.Equal(t, 0, ts.count(), "Expect manual pause to win over the throttle")

	assert.True(t, r.Resume())
	snap = r.Snapshot()
	assert.Equal(t, StateAutoPaused, snap.State, "Expect resume to cool down first")
	assert.Equal(t, 3, snap.Countdown)

	ts.last(t).tick(3)
	waitFor(t, r, "second cool-down", func(s Snapshot) bool {
		return s.State == StateAutoPaused && s.CurrentIndex == 4
	})
	ts.last(t).tick(3)

	snap = waitFor(t, r, "completion", stateIs(StateCompleted))
	assert.Equal(t, links, site.scrapedURLs())
	assert.Equal(t, 5, snap.Progress.Completed)
}

func TestLastItemDoesNotStartCooldown(t *testing.T) {
	site := newFakeSite(urls(10))
	r, ts := newTestRunner(t, site, site, site, testOptions())

	require.NoError(t, r.Start(context.Background(), "https://listing"))
	snap := waitFor(t, r, "completion", stateIs(StateCompleted))

	assert.Equal(t, 10, snap.RequestCount)
	assert.Equal(t, 0, ts.count(), "Expect no cool-down after the final item")
}

func TestStopLetsInFlightItemFinish(t *testing.T) {
	links := urls(5)
	site := newFakeSite(links)
	r, _ := newTestRunner(t, site, site, site, testOptions())
	site.setHook(func(url string) {
		if url == links[1] {
			r.Stop()
		}
	})

	require.NoError(t, r.Start(context.Background(), "https://listing"))
	snap := waitFor(t, r, "stopped item recorded", func(s Snapshot) bool {
		return s.State == StateStopped && s.CurrentIndex == 2
	})
	time.Sleep(10 * time.Millisecond)

	assert.Equal(t, StatusDone, snap.Items[1].Status)
	assert.Equal(t, Progress{Total: 5, Completed: 2}, r.Snapshot().Progress)
	assert.Equal(t, links[:2], site.scrapedURLs())
}

func TestStopAtThrottleBoundaryStartsNoCooldown(t *testing.T) {
	links := urls(15)
	site := newFakeSite(links)
	r, ts := newTestRunner(t, site, site, site, testOptions())
	site.setHook(func(url string) {
		if url == links[9] {
			r.Stop()
		}
	})

	require.NoError(t, r.Start(context.Background(), "https://listing"))
	snap := waitFor(t, r, "tenth item recorded", func(s Snapshot) bool {
		return s.State == StateStopped && s.CurrentIndex == 10
	})
	time.Sleep(10 * time.Millisecond)

	assert.Equal(t, 10, snap.RequestCount)
	assert.Equal(t, 0, snap.Countdown)
	assert.Equal(t, 0, ts.count(), "Expect no cool-down after a stop")
	assert.Equal(t, StateStopped, r.Snapshot().State)
	assert.Equal(t, links[:10], site.scrapedURLs())
	assert.False(t, r.Resume())
}

// blockingDiscoverer holds DiscoverLinks until release is closed, ignoring
// cancellation so the stop has to be honored after discovery returns.
type blockingDiscoverer struct {
	links   []string
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (d *blockingDiscoverer) DiscoverLinks(ctx context.Context, listingURL string) ([]string, error) {
	d.once.Do(func() { close(d.entered) })
	<-d.release
	return d.links, nil
}

func TestStopDuringDiscoveryStartsNothing(t *testing.T) {
	site := newFakeSite(nil)
	d := &blockingDiscoverer{
		links:   urls(3),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	r, _ := newTestRunner(t, d, site, site, testOptions())

	errc := make(chan error, 1)
	go func() { errc <- r.Start(context.Background(), "https://listing") }()
	<-d.entered

	assert.True(t, r.Stop(), "Expect stop to take effect during discovery")
	assert.False(t, r.Stop(), "Expect second stop to be a no-op")
	close(d.release)

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, ErrStopped)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Start to return")
	}
	time.Sleep(10 * time.Millisecond)

	snap := r.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Empty(t, snap.Items)
	assert.ErrorIs(t, snap.Err, ErrStopped)
	assert.Empty(t, site.scrapedURLs(), "Expect nothing scraped after stop")

	// A later start is unaffected.
	require.NoError(t, r.Start(context.Background(), "https://listing"))
	waitFor(t, r, "completion", stateIs(StateCompleted))
}

func TestStopDuringDiscoveryCancelsRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	discoverer := mocks.NewMockDiscoverer(ctrl)
	entered := make(chan struct{})
	discoverer.EXPECT().DiscoverLinks(gomock.Any(), "https://listing").
		DoAndReturn(func(ctx context.Context, _ string) ([]string, error) {
			close(entered)
			<-ctx.Done()
			return nil, ctx.Err()
		})

	site := newFakeSite(nil)
	r, _ := newTestRunner(t, discoverer, site, site, testOptions())

	errc := make(chan error, 1)
	go func() { errc <- r.Start(context.Background(), "https://listing") }()
	<-entered
	require.True(t, r.Stop())

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, ErrStopped)
	case <-time.After(2 * time.Second):
		t.Fatal("Expect discovery to be cancelled by stop")
	}
	assert.Empty(t, site.scrapedURLs())
}

func TestStopWithoutRunOrDiscovery(t *testing.T) {
	site := newFakeSite(urls(1))
	r, _ := newTestRunner(t, site, site, site, testOptions())
	assert.False(t, r.Stop())
	assert.Equal(t, StateIdle, r.Snapshot().State)
}

func TestRestartResetsRunState(t *testing.T) {
	first := urls(3)
	site := newFakeSite(first)
	site.scrapeFail[first[1]] = errors.New("boom")
	r, _ := newTestRunner(t, site, site, site, testOptions())

	require.NoError(t, r.Start(context.Background(), "https://listing/a"))
	prev := waitFor(t, r, "first run", stateIs(StateCompleted))
	assert.Equal(t, Progress{Total: 3, Completed: 2, Failed: 1}, prev.Progress)

	second := []string{"https://www.gsmarena.com/x-1.php", "https://www.gsmarena.com/y-2.php"}
	site.mu.Lock()
	site.links = second
	site.mu.Unlock()

	require.NoError(t, r.Start(context.Background(), "https://listing/b"))
	snap := waitFor(t, r, "second run", stateIs(StateCompleted))

	assert.NotEqual(t, prev.RunID, snap.RunID)
	assert.Equal(t, "https://listing/b", snap.ListingURL)
	assert.Equal(t, Progress{Total: 2, Completed: 2}, snap.Progress)
	assert.Equal(t, 2, snap.RequestCount)
	require.Len(t, snap.Items, 2)
	for i, item := range snap.Items {
		assert.Equal(t, second[i], item.URL)
		assert.Equal(t, StatusDone, item.Status)
	}
	assert.NoError(t, snap.Err)
}

func TestRestartAfterStop(t *testing.T) {
	links := urls(25)
	site := newFakeSite(links)
	r, ts := newTestRunner(t, site, site, site, testOptions())

	require.NoError(t, r.Start(context.Background(), "https://listing"))
	waitFor(t, r, "cool-down", stateIs(StateAutoPaused))
	require.True(t, r.Stop())

	require.NoError(t, r.Start(context.Background(), "https://listing"))
	snap := waitFor(t, r, "fresh cool-down", func(s Snapshot) bool {
		return s.State == StateAutoPaused && s.Progress.Completed == 10
	})

	assert.Equal(t, 10, snap.CurrentIndex, "Expect the new run to start from 0")
	assert.Equal(t, 60, snap.Countdown)
	assert.Equal(t, 2, ts.count())

	// The stale ticker from the stopped run must not drive the new run.
	ts.mu.Lock()
	stale := ts.all[0]
	ts.mu.Unlock()
	stale.tick(60)
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, StateAutoPaused, r.Snapshot().State)
}

func TestCloseCancelsInFlightAndClosesUpdates(t *testing.T) {
	site := newFakeSite(urls(3))
	site.blockScrape = true
	r, _ := newTestRunner(t, site, site, site, testOptions())

	require.NoError(t, r.Start(context.Background(), "https://listing"))
	waitFor(t, r, "scraping", func(s Snapshot) bool {
		return len(s.Items) > 0 && s.Items[0].Status == StatusScraping
	})

	r.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range r.Updates() {
		}
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Expect updates channel to close")
	}

	snap := waitFor(t, r, "in-flight item recorded", func(s Snapshot) bool {
		return s.Items[0].Status == StatusFailed
	})
	assert.Equal(t, StateStopped, snap.State)
	assert.Equal(t, 1, snap.CurrentIndex)
	assert.ErrorIs(t, r.Start(context.Background(), "https://listing"), ErrClosed)
}

func TestUpdatesStayConsistent(t *testing.T) {
	links := urls(12)
	site := newFakeSite(links)
	site.scrapeFail[links[0]] = errors.New("bad gateway")
	site.submitFail[links[5]] = errors.New("device already exists")
	opts := testOptions()
	opts.ThrottleEvery = 20
	r, _ := newTestRunner(t, site, site, site, opts)

	require.NoError(t, r.Start(context.Background(), "https://listing"))

	lastProcessed := 0
	timeout := time.After(2 * time.Second)
	for {
		select {
		case snap := <-r.Updates():
			assertConsistent(t, snap)
			processed := snap.Progress.Completed + snap.Progress.Failed
			assert.GreaterOrEqual(t, processed, lastProcessed, "Expect monotonic counters")
			lastProcessed = processed
			if snap.State == StateCompleted {
				assert.Equal(t, Progress{Total: 12, Completed: 10, Failed: 2}, snap.Progress)
				return
			}
		case <-timeout:
			t.Fatal("timed out waiting for completion update")
		}
	}
}

type userFacingErr struct{ msg string }

func (e *userFacingErr) Error() string       { return "status 409: " + e.msg }
func (e *userFacingErr) UserMessage() string { return e.msg }

func TestItemMessagePrefersUserMessage(t *testing.T) {
	wrapped := fmt.Errorf("create device: %w", &userFacingErr{msg: "device already exists"})
	assert.Equal(t, "device already exists", itemMessage(wrapped, "fallback"))
	assert.Equal(t, "plain", itemMessage(errors.New("plain"), "fallback"))
	assert.Equal(t, "status 409:", itemMessage(&userFacingErr{}, "fallback"), "Expect empty user message to fall back to the error text")
	assert.Equal(t, "fallback", itemMessage(errors.New(" "), "fallback"))
}

func TestStateHelpers(t *testing.T) {
	assert.True(t, StatePaused.IsPaused())
	assert.True(t, StateAutoPaused.IsPaused())
	assert.False(t, StateRunning.IsPaused())
	assert.True(t, StateStopped.IsFinished())
	assert.True(t, StateCompleted.IsFinished())
	assert.Equal(t, "auto-paused", StateAutoPaused.String())
	assert.True(t, StatusFailed.IsTerminal())
	assert.False(t, StatusImporting.IsTerminal())

	p := Progress{Total: 4, Completed: 1, Failed: 1}
	assert.Equal(t, 2, p.Pending())
	assert.InDelta(t, 0.5, p.Fraction(), 1e-9)
	assert.Equal(t, 0.0, Progress{}.Fraction())
}

package importer

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Status is the position of a single WorkItem in its scrape-then-import lifecycle.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusScraping  Status = "scraping"
	StatusImporting Status = "importing"
	StatusDone      Status = "done"
	StatusFailed    Status = "failed"
)

// String implements fmt.Stringer for logging
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the item will not transition again in this run.
func (s Status) IsTerminal() bool {
	return s == StatusDone || s == StatusFailed
}

// WorkItem is one discovered device page and its processing status.
type WorkItem struct {
	URL     string `json:"url"`
	Status  Status `json:"status"`
	Message string `json:"message"`
}

// Progress holds the aggregate counters of a run.
type Progress struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}

// Pending is the number of items without a terminal outcome.
func (p Progress) Pending() int {
	return p.Total - p.Completed - p.Failed
}

// Fraction returns the processed share of the run in [0, 1].
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Completed+p.Failed) / float64(p.Total)
}

// State is the run-level control state. Stopped wins over everything else and
// is terminal for the run; Paused and AutoPaused are mutually exclusive pause
// reasons.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateAutoPaused
	StateStopped
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateAutoPaused:
		return "auto-paused"
	case StateStopped:
		return "stopped"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// IsPaused reports whether the driver is holding its position for either reason.
func (s State) IsPaused() bool {
	return s == StatePaused || s == StateAutoPaused
}

// IsFinished reports whether the run can no longer make progress.
func (s State) IsFinished() bool {
	return s == StateStopped || s == StateCompleted
}

// Snapshot is an immutable copy of the run state handed to observers.
type Snapshot struct {
	RunID      uuid.UUID
	ListingURL string
	State      State
	Items      []WorkItem

	// CurrentIndex is the next item to process (the resumption point).
	CurrentIndex int
	Progress     Progress

	// RequestCount counts items processed since the last cool-down.
	RequestCount int

	// Countdown is the number of ticks left in the cool-down; with the
	// default one-second tick this is seconds.
	Countdown int

	// Err is the last run-level error (discovery failure or no links).
	Err error

	StartedAt  time.Time
	FinishedAt time.Time
}

// CurrentURL returns the URL at CurrentIndex, or "" when the list is exhausted.
func (s Snapshot) CurrentURL() string {
	if s.CurrentIndex >= 0 && s.CurrentIndex < len(s.Items) {
		return s.Items[s.CurrentIndex].URL
	}
	return ""
}

//go:generate mockgen -source=types.go -destination=mocks/mock_importer.go -package=mocks

// Discoverer lists the device page URLs found on a listing page.
type Discoverer interface {
	DiscoverLinks(ctx context.Context, listingURL string) ([]string, error)
}

// Scraper fetches the opaque device payload for one page.
type Scraper interface {
	Scrape(ctx context.Context, url string) (json.RawMessage, error)
}

// Submitter forwards a scraped payload to the catalog.
type Submitter interface {
	Submit(ctx context.Context, payload json.RawMessage) error
}

// Options tune the driver and the auto-throttle controller.
type Options struct {
	ThrottleEvery int           // items processed before a forced cool-down
	Cooldown      time.Duration // length of the cool-down
	Tick          time.Duration // countdown resolution
	Logger        *slog.Logger
}

const (
	DefaultThrottleEvery = 10
	DefaultCooldown      = 60 * time.Second
	DefaultTick          = time.Second
)

func (o Options) withDefaults() Options {
	if o.ThrottleEvery <= 0 {
		o.ThrottleEvery = DefaultThrottleEvery
	}
	if o.Cooldown <= 0 {
		o.Cooldown = DefaultCooldown
	}
	if o.Tick <= 0 {
		o.Tick = DefaultTick
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// cooldownTicks is the countdown start value, never less than one tick.
func (o Options) cooldownTicks() int {
	n := int(o.Cooldown / o.Tick)
	if n < 1 {
		return 1
	}
	return n
}

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"devicehub-go/pkg/cli/logger"
	"devicehub-go/pkg/cli/tui/importrun"
	"devicehub-go/pkg/importer"
	"devicehub-go/pkg/utils"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// ImportController is the part of importer.Runner the import view drives.
type ImportController interface {
	Start(ctx context.Context, listingURL string) error
	Pause() bool
	Resume() bool
	Stop() bool
	Snapshot() importer.Snapshot
	Updates() <-chan importer.Snapshot
	Close()
}

// ImportOptions configures the import flow.
type ImportOptions struct {
	ListingURL    string // prefilled listing URL
	AutoStart     bool   // start discovery immediately when ListingURL is set
	ThrottleEvery int    // shown next to the request counter
}

// importModel drives one importer through URL entry, discovery and the run.
type importModel struct {
	ctrl   ImportController
	opts   ImportOptions
	ctx    context.Context
	cancel context.CancelFunc

	step     int
	input    textinput.Model
	bar      progress.Model
	snap     importer.Snapshot
	urlErr   error  // listing URL validation failure
	inputErr error  // discovery failure shown on the input step
	notice   string // one-line feedback for the last control key
	closed   bool
	showHelp bool

	width int
}

// NewImportModel creates the import flow around ctrl. The model owns ctrl and
// closes it when the flow ends.
func NewImportModel(ctrl ImportController, opts ImportOptions) tea.Model {
	if opts.ThrottleEvery <= 0 {
		opts.ThrottleEvery = importer.DefaultThrottleEvery
	}

	input := textinput.New()
	input.Placeholder = "https://www.gsmarena.com/samsung-phones-9.php"
	input.CharLimit = 2048
	input.Width = 60
	input.SetValue(opts.ListingURL)
	input.Focus()

	ctx, cancel := context.WithCancel(context.Background())

	return &importModel{
		ctrl:   ctrl,
		opts:   opts,
		ctx:    ctx,
		cancel: cancel,
		step:   importrun.StepInput,
		input:  input,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		width:  importrun.DefaultWidth,
	}
}

func (m *importModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, waitForUpdate(m.ctrl.Updates())}
	if m.opts.AutoStart && strings.TrimSpace(m.opts.ListingURL) != "" {
		cmds = append(cmds, m.submitURL())
	}
	return tea.Batch(cmds...)
}

// waitForUpdate blocks on the importer's update channel for the next snapshot.
func waitForUpdate(updates <-chan importer.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-updates
		if !ok {
			return importrun.UpdatesClosedMsg{}
		}
		return importrun.SnapshotMsg{Snapshot: snap}
	}
}

func (m *importModel) startCmd(listingURL string) tea.Cmd {
	ctx := m.ctx
	ctrl := m.ctrl
	return func() tea.Msg {
		err := ctrl.Start(ctx, listingURL)
		return importrun.StartedMsg{ListingURL: listingURL, Err: err}
	}
}

func (m *importModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MenuNavigationMsg:
		// Only reaches the model when it runs without the root menu.
		m.teardown()
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.width == 0 {
			m.width = importrun.DefaultWidth
		}
		m.bar.Width = min(max(m.width-20, 20), 80)
		m.input.Width = min(max(m.width-10, 30), 100)
		return m, nil

	case importrun.SnapshotMsg:
		// The idle snapshot published while discovery starts can arrive late.
		if m.step != importrun.StepRunning || msg.Snapshot.RunID != uuid.Nil {
			m.snap = msg.Snapshot
		}
		return m, waitForUpdate(m.ctrl.Updates())

	case importrun.UpdatesClosedMsg:
		m.closed = true
		return m, nil

	case importrun.StartedMsg:
		return m.handleStarted(msg)

	case tea.KeyMsg:
		if m.showHelp {
			switch msg.String() {
			case "?", "esc", "q":
				m.showHelp = false
			case "ctrl+c":
				m.teardown()
				return m, tea.Quit
			}
			return m, nil
		}

		switch m.step {
		case importrun.StepInput:
			return m.handleInputKeys(msg)
		case importrun.StepDiscovering:
			switch msg.String() {
			case "ctrl+c", "q", "esc":
				m.teardown()
				return m, tea.Quit
			}
			return m, nil
		case importrun.StepRunning:
			return m.handleRunKeys(msg)
		}
	}

	if m.step == importrun.StepInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *importModel) handleStarted(msg importrun.StartedMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Err == nil:
		m.step = importrun.StepRunning
		m.snap = m.ctrl.Snapshot()
		m.notice = ""
		return m, nil
	case errors.Is(msg.Err, importer.ErrSuperseded), errors.Is(msg.Err, importer.ErrClosed):
		return m, nil
	case errors.Is(msg.Err, importer.ErrStopped):
		m.step = importrun.StepInput
		m.input.Focus()
		return m, textinput.Blink
	}

	logger.LogError(msg.Err, "import: discovery failed for %s", msg.ListingURL)
	m.step = importrun.StepInput
	m.inputErr = msg.Err
	m.input.Focus()
	return m, textinput.Blink
}

func (m *importModel) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.teardown()
		return m, tea.Quit
	case "esc":
		m.teardown()
		return m, func() tea.Msg { return MenuNavigationMsg{} }
	case "enter":
		return m, m.submitURL()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitURL validates the listing URL and kicks off discovery.
func (m *importModel) submitURL() tea.Cmd {
	listingURL, err := utils.ValidateURL(m.input.Value())
	if err != nil {
		m.urlErr = err
		return nil
	}

	m.urlErr = nil
	m.inputErr = nil
	m.step = importrun.StepDiscovering
	m.input.Blur()
	logger.Log("import: discovering links on %s", listingURL)
	return m.startCmd(listingURL)
}

func (m *importModel) handleRunKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		m.teardown()
		return m, tea.Quit
	case "m":
		m.teardown()
		return m, func() tea.Msg { return MenuNavigationMsg{} }
	case "?":
		m.showHelp = true
		return m, nil
	case "p":
		if m.ctrl.Pause() {
			m.notice = "Pausing after the current device."
		} else {
			m.notice = "Nothing to pause."
		}
	case "r":
		switch {
		case m.snap.State == importer.StateAutoPaused:
			m.notice = "Resume is disabled during the cool-down."
		case m.ctrl.Resume():
			m.notice = "Resumed."
		default:
			m.notice = "Nothing to resume."
		}
	case "s":
		if m.ctrl.Stop() {
			m.notice = "Stopped. Press 'n' for a new run."
		} else {
			m.notice = "The run has already finished."
		}
	case "n":
		if !m.snap.State.IsFinished() {
			m.notice = "Stop the run before starting a new one."
			return m, nil
		}
		m.step = importrun.StepInput
		m.notice = ""
		m.inputErr = nil
		m.input.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

// teardown cancels discovery and closes the importer. Safe to call twice.
func (m *importModel) teardown() {
	m.cancel()
	m.ctrl.Close()
}

func (m *importModel) View() string {
	if m.showHelp {
		return renderTitle("Keyboard Shortcuts") + ImportHelpContent() + "\n" +
			helpStyle.Render("Press '?' or Esc to close") + "\n"
	}

	switch m.step {
	case importrun.StepInput:
		return m.renderInput()
	case importrun.StepDiscovering:
		return renderTitle("Import Devices") +
			renderLoadingState("Discovering device links on "+truncateURL(m.input.Value(), m.width-30)+"...") + "\n" +
			helpStyle.Render("(Press q or Esc to cancel)") + "\n"
	case importrun.StepRunning:
		return m.renderRun()
	}
	return ""
}

func (m *importModel) renderInput() string {
	var b strings.Builder
	b.WriteString(renderTitle("Import Devices"))
	b.WriteString(boldStyle.Render("Listing page URL:") + "\n")
	b.WriteString(m.input.View() + "\n\n")

	switch {
	case m.urlErr != nil:
		b.WriteString(renderError(m.urlErr.Error()) + "\n\n")
	case m.inputErr != nil:
		b.WriteString(m.renderDiscoveryError() + "\n\n")
	}

	b.WriteString(helpStyle.Render("(Press Enter to discover links, Esc to go back, Ctrl+C to quit)") + "\n")
	return b.String()
}

func (m *importModel) renderDiscoveryError() string {
	if errors.Is(m.inputErr, importer.ErrNoLinks) {
		return renderWarning("No device links found on that page.")
	}
	msg := renderError(fmt.Sprintf("Link discovery failed: %v", userFacingError(m.inputErr)))
	if isRetryable(m.inputErr) {
		msg += "\n" + helpStyle.Render("Press Enter to try again.")
	}
	return msg
}

func (m *importModel) renderRun() string {
	snap := m.snap
	var b strings.Builder

	b.WriteString(renderTitle("Import Devices"))
	b.WriteString(mutedStyle.Render(truncateURL(snap.ListingURL, m.width-4)) + "\n")
	b.WriteString(renderDivider(min(m.width, 80)) + "\n\n")

	b.WriteString(renderBanner(snap) + "\n\n")
	b.WriteString(m.bar.ViewAs(snap.Progress.Fraction()))
	b.WriteString(fmt.Sprintf("  %d/%d\n\n", snap.Progress.Completed+snap.Progress.Failed, snap.Progress.Total))

	b.WriteString(fmt.Sprintf("%s %d   %s %s   %s %s   %s %d\n",
		fieldLabelStyle.Render("Total"), snap.Progress.Total,
		fieldLabelStyle.Render("Completed"), successStyle.Render(fmt.Sprint(snap.Progress.Completed)),
		fieldLabelStyle.Render("Failed"), errorStyle.Render(fmt.Sprint(snap.Progress.Failed)),
		fieldLabelStyle.Render("Pending"), snap.Progress.Pending(),
	))
	b.WriteString(fmt.Sprintf("%s %d/%d\n",
		fieldLabelStyle.Render("Requests since cool-down"), snap.RequestCount, m.opts.ThrottleEvery))

	if url := snap.CurrentURL(); url != "" {
		b.WriteString(fmt.Sprintf("%s #%d %s\n", fieldLabelStyle.Render("Current"), snap.CurrentIndex+1,
			deviceURLStyle.Render(truncateURL(url, m.width-20))))
	}
	b.WriteString("\n")

	b.WriteString(m.renderItems(snap))

	if m.notice != "" {
		b.WriteString("\n" + infoStyle.Render(m.notice) + "\n")
	}
	if m.closed {
		b.WriteString("\n" + mutedStyle.Render("Importer closed.") + "\n")
	}

	b.WriteString("\n" + helpStyle.Render(runKeyHint(snap.State)) + "\n")
	return b.String()
}

// renderItems shows a window of work items that follows the current index.
func (m *importModel) renderItems(snap importer.Snapshot) string {
	if len(snap.Items) == 0 {
		return ""
	}

	start := max(snap.CurrentIndex-importrun.VisibleItems/2, 0)
	end := min(start+importrun.VisibleItems, len(snap.Items))
	start = max(end-importrun.VisibleItems, 0)

	var b strings.Builder
	if start > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  ... %d earlier", start)) + "\n")
	}
	for i := start; i < end; i++ {
		item := snap.Items[i]
		line := fmt.Sprintf("%s %3d %s", statusIcon(item.Status), i+1, truncateURL(item.URL, m.width-30))
		if item.Message != "" {
			style := infoStyle
			if item.Status.IsTerminal() {
				style = mutedStyle
			}
			line += "  " + style.Render(item.Message)
		}
		if i == snap.CurrentIndex && !snap.State.IsFinished() {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	if end < len(snap.Items) {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  ... %d more", len(snap.Items)-end)) + "\n")
	}
	return b.String()
}

// renderBanner states what the run is doing and why.
func renderBanner(snap importer.Snapshot) string {
	banner := bannerStyle.Foreground(stateColor(snap.State))
	switch snap.State {
	case importer.StatePaused:
		return banner.Render("PAUSED") + " " +
			mutedStyle.Render("by operator, press 'r' to resume")
	case importer.StateAutoPaused:
		return banner.Render("COOLING DOWN") + " " +
			warningStyle.Render(fmt.Sprintf("auto-resuming in %ds (resume disabled)", snap.Countdown))
	default:
		return banner.Render(strings.ToUpper(snap.State.String()))
	}
}

func runKeyHint(state importer.State) string {
	switch {
	case state.IsFinished():
		return "(n new run • m menu • q quit)"
	case state == importer.StateAutoPaused:
		return "(s stop • m menu • q quit • ? help)"
	case state == importer.StatePaused:
		return "(r resume • s stop • m menu • q quit • ? help)"
	default:
		return "(p pause • s stop • m menu • q quit • ? help)"
	}
}

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// RunnerFactory builds a fresh importer for each import flow.
type RunnerFactory func() ImportController

// rootModel is the Bubble Tea model that acts as an app shell for multiple flows.
// It presents a simple menu and then hands control to a specific flow model.
type rootModel struct {
	// Shared dependencies
	devices       DeviceAPI
	newRunner     RunnerFactory
	throttleEvery int

	// Current active flow (when nil, we are in the main menu)
	current tea.Model

	// Last known window size, replayed to new flows
	size *tea.WindowSizeMsg
}

// NewRootModel constructs the root app-shell model that can launch multiple flows.
func NewRootModel(devices DeviceAPI, newRunner RunnerFactory, throttleEvery int) tea.Model {
	root := &rootModel{
		devices:       devices,
		newRunner:     newRunner,
		throttleEvery: throttleEvery,
	}

	return NewViewportWrapper(root, ViewportConfig{
		Title:       "DeviceHub",
		ShowHeader:  true,
		ShowFooter:  true,
		EnableHelp:  true,
		HelpContent: RootMenuHelpContent,
		MinWidth:    60,
		MinHeight:   10,
	})
}

func (m *rootModel) Init() tea.Cmd {
	// No async work on start; just render the menu.
	return nil
}

// IsDelegating reports whether a flow is active and renders its own chrome.
func (m *rootModel) IsDelegating() bool {
	return m.current != nil
}

func (m *rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MenuNavigationMsg:
		m.current = nil
		return m, nil
	case tea.WindowSizeMsg:
		m.size = &msg
	}

	// If we have an active flow, delegate all messages to it.
	if m.current != nil {
		var cmd tea.Cmd
		m.current, cmd = m.current.Update(msg)
		return m, cmd
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "1":
			return m.launch(NewImportModel(m.newRunner(), ImportOptions{ThrottleEvery: m.throttleEvery}))
		case "2":
			return m.launch(NewManageDevicesModel(m.devices))
		}
	}

	return m, nil
}

// launch makes flow the active model and replays the window size to it.
func (m *rootModel) launch(flow tea.Model) (tea.Model, tea.Cmd) {
	m.current = flow
	cmd := flow.Init()
	if m.size != nil {
		var sizeCmd tea.Cmd
		m.current, sizeCmd = m.current.Update(*m.size)
		cmd = tea.Batch(cmd, sizeCmd)
	}
	return m, cmd
}

func (m *rootModel) View() string {
	// When a flow is active, defer to its view.
	if m.current != nil {
		return m.current.View()
	}

	var b strings.Builder

	b.WriteString(renderDivider(60))
	b.WriteString("\n\n")
	b.WriteString(boldStyle.Render("Select an action:") + "\n\n")
	b.WriteString("  " + selectedMarkerStyle.Render("1)") + " Import devices from listing\n")
	b.WriteString("  " + selectedMarkerStyle.Render("2)") + " Manage devices (list, view, delete)\n")
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Press the number of an option, or 'q' / Esc to quit.") + "\n")

	return b.String()
}

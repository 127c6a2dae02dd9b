package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"devicehub-go/pkg/cli/logger"
)

// ViewportWrapper wraps a model with viewport and common command support
type ViewportWrapper struct {
	model    tea.Model
	viewport viewport.Model
	width    int
	height   int
	config   ViewportConfig

	showHelp    bool
	helpContent string
}

// ViewportConfig configures the wrapper behavior
type ViewportConfig struct {
	Title        string
	ShowHeader   bool
	ShowFooter   bool
	HeaderHeight int           // Fixed header height (0 = auto)
	FooterHeight int           // Fixed footer height (0 = auto)
	UseViewport  bool          // Enable scrolling (false = simple responsive)
	MinWidth     int           // Minimum terminal width
	MinHeight    int           // Minimum terminal height
	EnableHelp   bool          // Enable '?' for help
	EnableMenu   bool          // Enable 'm' to return to menu
	HelpContent  func() string // Function to generate help text
}

// NewViewportWrapper creates a new wrapper around a model
func NewViewportWrapper(model tea.Model, config ViewportConfig) *ViewportWrapper {
	return &ViewportWrapper{
		model:    model,
		viewport: viewport.New(0, 0),
		config:   config,
		width:    80,
		height:   24,
	}
}

func (w *ViewportWrapper) Init() tea.Cmd {
	if w.model == nil {
		return nil
	}
	return w.model.Init()
}

func (w *ViewportWrapper) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		w.width = max(size.Width, w.config.MinWidth)
		w.height = max(size.Height, w.config.MinHeight)
		w.calculateLayout()
		logger.Log("ViewportWrapper: resized to %dx%d, viewport=%dx%d", w.width, w.height, w.viewport.Width, w.viewport.Height)

		var vpCmd, cmd tea.Cmd
		if w.config.UseViewport {
			w.viewport, vpCmd = w.viewport.Update(size)
		}
		if w.model != nil {
			w.model, cmd = w.model.Update(size)
		}
		return w, tea.Batch(vpCmd, cmd)
	}

	// Active flows handle their own keys.
	if w.isDelegatingToWrappedModel() {
		var cmd tea.Cmd
		w.model, cmd = w.model.Update(msg)
		return w, cmd
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "?":
			if w.config.EnableHelp {
				w.showHelp = !w.showHelp
				if w.showHelp && w.config.HelpContent != nil {
					w.helpContent = w.config.HelpContent()
				}
				return w, nil
			}
		case "m":
			if w.config.EnableMenu && !w.showHelp {
				return w, func() tea.Msg { return MenuNavigationMsg{} }
			}
		case "ctrl+c", "q":
			if w.showHelp {
				w.showHelp = false
				return w, nil
			}
			return w, tea.Quit
		case "esc":
			// Esc closes help; otherwise the wrapped model decides (back or quit).
			if w.showHelp {
				w.showHelp = false
				return w, nil
			}
		}
	}

	// The help overlay swallows everything else.
	if w.showHelp {
		return w, nil
	}

	var cmd tea.Cmd
	if w.model != nil {
		w.model, cmd = w.model.Update(msg)
	}

	if w.config.UseViewport {
		var vpCmd tea.Cmd
		w.viewport, vpCmd = w.viewport.Update(msg)
		cmd = tea.Batch(cmd, vpCmd)
	}

	return w, cmd
}

func (w *ViewportWrapper) View() string {
	if w.showHelp {
		return w.renderHelpOverlay()
	}

	content := ""
	if w.model != nil {
		content = w.model.View()
		if w.isDelegatingToWrappedModel() {
			return content
		}
	}

	if w.config.UseViewport {
		w.calculateLayout()
		w.viewport.SetContent(content)
		content = w.viewport.View()
	}

	var parts []string
	if w.config.ShowHeader {
		parts = append(parts, w.renderHeader())
	}
	parts = append(parts, content)
	if w.config.ShowFooter {
		parts = append(parts, w.renderFooter())
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (w *ViewportWrapper) calculateLayout() {
	headerH := w.config.HeaderHeight
	if headerH == 0 && w.config.ShowHeader {
		headerH = 2
	}

	footerH := w.config.FooterHeight
	if footerH == 0 && w.config.ShowFooter {
		footerH = 1
	}

	if w.width <= 0 {
		w.width = 80
	}
	if w.height <= 0 {
		w.height = 24
	}

	if w.config.UseViewport {
		w.viewport.Width = w.width
		w.viewport.Height = max(w.height-headerH-footerH, 1)
	}
}

func (w *ViewportWrapper) renderHeader() string {
	var b strings.Builder

	if w.config.Title != "" {
		b.WriteString(renderTitle(w.config.Title))
	}

	switch {
	case w.config.EnableMenu && w.config.EnableHelp:
		b.WriteString(helpStyle.Render("Press 'm' for menu, '?' for help") + "\n")
	case w.config.EnableHelp:
		b.WriteString(helpStyle.Render("Press '?' for help") + "\n")
	case w.config.EnableMenu:
		b.WriteString(helpStyle.Render("Press 'm' for menu") + "\n")
	}

	return b.String()
}

func (w *ViewportWrapper) renderFooter() string {
	shortcuts := []string{}
	if w.config.EnableHelp {
		shortcuts = append(shortcuts, "? help")
	}
	if w.config.EnableMenu {
		shortcuts = append(shortcuts, "m menu")
	}
	shortcuts = append(shortcuts, "q quit")

	return helpStyle.Render(strings.Join(shortcuts, " • "))
}

// isDelegatingToWrappedModel reports whether the wrapped root model is showing
// a flow that renders its own chrome.
func (w *ViewportWrapper) isDelegatingToWrappedModel() bool {
	if root, ok := w.model.(*rootModel); ok {
		return root.IsDelegating()
	}
	return false
}

func (w *ViewportWrapper) renderHelpOverlay() string {
	helpText := w.helpContent
	if helpText == "" {
		helpText = "No help available"
	}

	overlayStyle := lipgloss.NewStyle().
		Width(w.width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Padding(1, 2).
		Foreground(lipgloss.Color("252"))

	return overlayStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Keyboard Shortcuts"),
		"",
		helpText,
		"",
		helpStyle.Render("Press '?' or Esc to close"),
	))
}

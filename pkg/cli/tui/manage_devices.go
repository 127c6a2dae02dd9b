package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"devicehub-go/pkg/cli/logger"
	"devicehub-go/pkg/cli/tui/managedevices"
	"devicehub-go/pkg/models"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// DeviceAPI is the catalog surface used by the manage devices flow.
type DeviceAPI interface {
	ListDevices(ctx context.Context) ([]models.Device, error)
	DeleteDevice(ctx context.Context, id uuid.UUID) error
}

const deviceRequestTimeout = 30 * time.Second

// manageDevicesModel lists catalog devices and lets the operator view or
// delete one.
type manageDevicesModel struct {
	api DeviceAPI

	devices  []models.Device
	selected int
	step     int
	err      error
	ready    bool
	deleted  string

	// For delete confirmation
	confirm textinput.Model

	// Viewport dimensions for proper rendering
	width int
}

// NewManageDevicesModel creates the manage devices flow.
func NewManageDevicesModel(api DeviceAPI) tea.Model {
	confirm := textinput.New()
	confirm.Placeholder = "y/N"
	confirm.CharLimit = 3
	confirm.Width = 10

	model := &manageDevicesModel{
		api:     api,
		step:    managedevices.StepListDevices,
		confirm: confirm,
	}

	// Wrap with viewport (enable scrolling for long lists)
	return NewViewportWrapper(model, ViewportConfig{
		Title:       "Manage Devices",
		ShowHeader:  true,
		ShowFooter:  true,
		UseViewport: true,
		EnableHelp:  true,
		EnableMenu:  true,
		HelpContent: ManageDevicesHelpContent,
		MinWidth:    60,
		MinHeight:   10,
	})
}

func (m *manageDevicesModel) Init() tea.Cmd {
	return m.loadDevices()
}

func (m *manageDevicesModel) loadDevices() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deviceRequestTimeout)
		defer cancel()
		devices, err := api.ListDevices(ctx)
		return managedevices.DevicesLoadedMsg{Devices: devices, Err: err}
	}
}

func (m *manageDevicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MenuNavigationMsg:
		// Standalone: no menu to return to.
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if m.width == 0 {
			m.width = managedevices.DefaultWidth
		}
		return m, nil

	case managedevices.DevicesLoadedMsg:
		m.ready = true
		if msg.Err != nil {
			logger.LogError(msg.Err, "manage devices: list failed")
			m.err = userFacingError(msg.Err)
			return m, nil
		}
		m.devices = msg.Devices
		if m.selected >= len(m.devices) {
			m.selected = max(len(m.devices)-1, 0)
		}
		return m, nil

	case managedevices.DeleteErrorMsg:
		logger.LogError(msg.Err, "manage devices: delete failed")
		m.err = userFacingError(msg.Err)
		m.step = managedevices.StepActionMenu
		return m, nil

	case managedevices.DeleteSuccessMsg:
		m.deleted = msg.Name
		m.step = managedevices.StepDone
		return m, m.loadDevices()

	case tea.KeyMsg:
		if m.err != nil {
			// Any key dismisses the error.
			m.err = nil
			if !m.ready || m.step == managedevices.StepListDevices {
				return m, tea.Quit
			}
			return m, nil
		}

		switch m.step {
		case managedevices.StepListDevices:
			return m.handleListKeys(msg)
		case managedevices.StepActionMenu:
			return m.handleActionMenuKeys(msg)
		case managedevices.StepViewDetails:
			return m.handleViewDetailsKeys(msg)
		case managedevices.StepDeleteConfirm:
			return m.handleDeleteConfirmKeys(msg)
		case managedevices.StepDone:
			m.step = managedevices.StepListDevices
			return m, nil
		}
	}

	return m, nil
}

func (m *manageDevicesModel) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if handleQuitKeys(msg.String()) {
		return m, tea.Quit
	}
	if newSelected, handled := handleListNavigation(msg.String(), m.selected, len(m.devices)); handled {
		m.selected = newSelected
		return m, nil
	}
	if msg.String() == "enter" && m.selected < len(m.devices) {
		m.step = managedevices.StepActionMenu
	}
	return m, nil
}

func (m *manageDevicesModel) handleActionMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "b":
		m.step = managedevices.StepListDevices
	case "1", "v":
		m.step = managedevices.StepViewDetails
	case "2", "d":
		m.step = managedevices.StepDeleteConfirm
		m.confirm.SetValue("")
		m.confirm.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m *manageDevicesModel) handleViewDetailsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "b", "enter":
		m.step = managedevices.StepActionMenu
	}
	return m, nil
}

func (m *manageDevicesModel) handleDeleteConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.confirm.Blur()
		m.step = managedevices.StepActionMenu
		return m, nil
	case "enter":
		m.confirm.Blur()
		answer := strings.ToLower(strings.TrimSpace(m.confirm.Value()))
		if answer == "y" || answer == "yes" {
			return m, m.deleteDevice()
		}
		m.step = managedevices.StepActionMenu
		return m, nil
	default:
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	}
}

func (m *manageDevicesModel) deleteDevice() tea.Cmd {
	if m.selected >= len(m.devices) {
		return func() tea.Msg { return managedevices.DeleteErrorMsg{Err: fmt.Errorf("invalid selection")} }
	}
	device := m.devices[m.selected]
	api := m.api

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deviceRequestTimeout)
		defer cancel()
		if err := api.DeleteDevice(ctx, device.ID); err != nil {
			return managedevices.DeleteErrorMsg{Err: err}
		}
		logger.Log("manage devices: deleted %s (%s)", device.ID, device.Name)
		return managedevices.DeleteSuccessMsg{Name: device.Name}
	}
}

func (m *manageDevicesModel) View() string {
	if !m.ready {
		return renderLoadingState("Loading devices...")
	}
	if m.err != nil {
		return renderErrorView(m.err)
	}

	switch m.step {
	case managedevices.StepListDevices:
		return m.renderList()
	case managedevices.StepActionMenu:
		return m.renderActionMenu()
	case managedevices.StepViewDetails:
		return m.renderViewDetails()
	case managedevices.StepDeleteConfirm:
		return m.renderDeleteConfirm()
	case managedevices.StepDone:
		return "\n" + renderSuccess(fmt.Sprintf("Deleted %s.", m.deleted)) + "\n\n" +
			helpStyle.Render("Press any key to return to the list...") + "\n"
	}
	return ""
}

// getMaxWidth returns the maximum width for rendering, using DefaultWidth as fallback
func (m *manageDevicesModel) getMaxWidth() int {
	if m.width > 0 {
		return m.width
	}
	return managedevices.DefaultWidth
}

func (m *manageDevicesModel) renderList() string {
	if len(m.devices) == 0 {
		return renderEmptyState("No devices found. Import some from a listing page first.")
	}

	s := renderDeviceList(m.devices, m.selected, fmt.Sprintf("Select a device (%d total):", len(m.devices)), m.getMaxWidth())
	s += helpStyle.Render("(Use ↑/↓ or j/k to navigate, Enter to select, Esc to quit)") + "\n"
	return s
}

func (m *manageDevicesModel) selectedDevice() (*models.Device, bool) {
	if m.selected < 0 || m.selected >= len(m.devices) {
		return nil, false
	}
	return &m.devices[m.selected], true
}

func (m *manageDevicesModel) renderActionMenu() string {
	device, ok := m.selectedDevice()
	if !ok {
		return renderErrorView(fmt.Errorf("invalid selection"))
	}
	maxWidth := m.getMaxWidth()

	var b strings.Builder
	b.WriteString(renderTitle("Device Actions"))
	b.WriteString(renderDivider(maxWidth))
	b.WriteString("\n\n")

	b.WriteString(boldStyle.Render("Selected Device:") + "\n")
	b.WriteString(fmt.Sprintf("  %s\n", deviceNameStyle.Render(device.Name)))
	b.WriteString(fmt.Sprintf("  %s\n\n", deviceURLStyle.Render(truncateURL(sourceOrPlaceholder(*device), max(maxWidth-10, 40)))))

	b.WriteString(boldStyle.Render("Choose an action:") + "\n\n")
	b.WriteString("  " + selectedMarkerStyle.Render("1)") + " View details\n")
	b.WriteString("  " + selectedMarkerStyle.Render("2)") + " Delete device\n")
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("(Press 1/v to view, 2/d to delete, Esc/b to go back, q to quit)") + "\n")

	return b.String()
}

func (m *manageDevicesModel) renderViewDetails() string {
	device, ok := m.selectedDevice()
	if !ok {
		return renderErrorView(fmt.Errorf("invalid selection"))
	}
	maxWidth := m.getMaxWidth()

	var b strings.Builder
	b.WriteString(renderTitle("Device Details"))
	b.WriteString(renderDivider(maxWidth))
	b.WriteString("\n\n")
	b.WriteString(renderDeviceDetailsFull(device, maxWidth))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("(Press Enter, 'b' or Esc to go back)") + "\n")

	return b.String()
}

func (m *manageDevicesModel) renderDeleteConfirm() string {
	device, ok := m.selectedDevice()
	if !ok {
		return renderErrorView(fmt.Errorf("invalid selection"))
	}

	var b strings.Builder
	b.WriteString(renderTitle("Delete Device"))
	b.WriteString(renderWarning("Confirm Deletion") + "\n\n")

	b.WriteString(boldStyle.Render("Are you sure you want to delete:") + "\n")
	b.WriteString(fmt.Sprintf("  %s\n", deviceNameStyle.Render(device.Name)))
	b.WriteString(fieldLabelStyle.Render("Source:"))
	b.WriteString(fmt.Sprintf(" %s\n\n", truncateURL(sourceOrPlaceholder(*device), max(m.getMaxWidth()-10, 40))))

	b.WriteString(boldStyle.Render("Confirm (y/N):"))
	b.WriteString(" ")
	b.WriteString(m.confirm.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("(Press Enter to confirm, Esc to cancel)") + "\n")

	return b.String()
}
